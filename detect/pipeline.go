package detect

import "github.com/grailbio/base/log"

// Consolidate runs the full per-(sample, database, backend) pipeline:
// threshold filtering, best-per-cluster selection and name remapping.
// Alignment attachment, where applicable, is a separate step
// (AttachAlignments) since the blocks are generated only after
// selection.
//
// A run with zero surviving hits returns an empty slice and a nil
// error; a non-nil error is always a parse or consistency failure, so
// callers can distinguish "nothing detected" from "run failed".
func Consolidate(raw []RawHit, th Thresholds, partition ClusterPartition, index *DatabaseIndex, extra *ExtraColumn) ([]Hit, Stats, error) {
	stats := Stats{Raw: len(raw)}
	filtered := Filter(raw, th)
	stats.Filtered = len(filtered)

	selected, err := SelectBest(filtered, partition)
	if err != nil {
		return nil, stats, err
	}
	stats.Selected = len(selected)
	clusters := map[string]struct{}{}
	for i := range selected {
		clusters[partition[selected[i].SeqID]] = struct{}{}
	}
	stats.Clusters = len(clusters)

	hits, err := MapNames(selected, partition, index, extra)
	if err != nil {
		return nil, stats, err
	}
	log.Printf("consolidation done: %s", stats)
	return hits, stats, nil
}
