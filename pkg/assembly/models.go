package assembly

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/ftsim/capsim/pkg/obj"
)

// LoadModels loads every body mesh of the assembly from a directory of OBJ
// files. Electrode and counter-electrode meshes are required; marker sphere
// meshes exist for visualization only and are skipped with a log message
// when absent. The returned map is keyed by body name.
func LoadModels(dir string, logger *slog.Logger) (map[string]*obj.Model, error) {
	models := make(map[string]*obj.Model)

	for _, body := range bodyTable {
		path := filepath.Join(dir, body.MeshFile)

		model, err := obj.Parse(path)
		if err != nil {
			if body.Marker {
				logger.Info("marker mesh not loaded, skipping", "body", body.Name, "err", err)
				continue
			}
			return nil, fmt.Errorf("loading %s: %w", body.Name, err)
		}

		// The shared negative mesh is loaded once per placement; rename so
		// lookups and logs stay per body.
		model.Name = body.Name
		models[body.Name] = model

		logger.Debug("loaded model",
			"body", body.Name,
			"group", body.Group.String(),
			"vertices", model.VertexCount(),
			"triangles", model.TriangleCount())
	}

	return models, nil
}
