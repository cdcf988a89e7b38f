package detect

import "fmt"

// Stats counts hits surviving each consolidation stage of one run.
type Stats struct {
	// Raw is the number of parsed backend records.
	Raw int
	// Filtered is the number of hits that passed threshold filtering.
	Filtered int
	// Clusters is the number of clusters with at least one surviving
	// hit.
	Clusters int
	// Selected is the number of best-per-cluster representatives,
	// including identity ties.
	Selected int
}

func (s Stats) String() string {
	return fmt.Sprintf("raw: %d, filtered: %d, clusters: %d, selected: %d",
		s.Raw, s.Filtered, s.Clusters, s.Selected)
}
