package sweep

import (
	"fmt"
	"io"

	"github.com/ftsim/capsim/pkg/assembly"
	"github.com/ftsim/capsim/pkg/geometry"
)

// CentroidStats tracks one sub-assembly's marker centroid excursion over a
// sweep run: where the centroid started, where it is now, the per-axis
// envelope and the bounding-sphere radius (maximum displacement magnitude
// from the original centroid). Lifetime is one run; reset at sweep start.
type CentroidStats struct {
	Group    assembly.SubGroup
	Original geometry.Vector3
	Current  geometry.Vector3
	Min      geometry.Vector3
	Max      geometry.Vector3
	Radius   float64
	samples  int
}

// centroid of a marker triple
func centroid(a, b, c geometry.Vector3) geometry.Vector3 {
	return a.Add(b).Add(c).Mul(1.0 / 3.0)
}

// newCentroidStats seeds the statistics from a group's rest markers
func newCentroidStats(g assembly.SubGroup) CentroidStats {
	a, b, c := assembly.RestMarkers(g)
	origin := centroid(a, b, c)
	return CentroidStats{
		Group:    g,
		Original: origin,
		Current:  origin,
		Min:      origin,
		Max:      origin,
	}
}

// update folds one row's deformed marker triple into the statistics
func (s *CentroidStats) update(a, b, c geometry.Vector3) {
	s.Current = centroid(a, b, c)
	s.Min = s.Min.Min(s.Current)
	s.Max = s.Max.Max(s.Current)
	s.samples++

	displacement := s.Current.Distance(s.Original)
	if displacement > s.Radius {
		s.Radius = displacement
	}
}

// PrintCentroidStats writes the per-group excursion summary after a run
func PrintCentroidStats(w io.Writer, stats []CentroidStats) {
	fmt.Fprintln(w, "Centroid excursion per group (mm):")
	for _, s := range stats {
		fmt.Fprintf(w, "  %-8s original (%8.3f, %8.3f, %8.3f)  current (%8.3f, %8.3f, %8.3f)\n",
			s.Group, s.Original.X, s.Original.Y, s.Original.Z,
			s.Current.X, s.Current.Y, s.Current.Z)
		fmt.Fprintf(w, "  %-8s min      (%8.3f, %8.3f, %8.3f)  max     (%8.3f, %8.3f, %8.3f)\n",
			"", s.Min.X, s.Min.Y, s.Min.Z, s.Max.X, s.Max.Y, s.Max.Z)
		fmt.Fprintf(w, "  %-8s bounding sphere radius %.4f over %d rows\n", "", s.Radius, s.samples)
	}
}
