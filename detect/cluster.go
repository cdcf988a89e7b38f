package detect

import (
	"context"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/grailbio/bio/encoding/fasta"
	"github.com/pkg/errors"
)

// ClusterPartition maps a standardized sequence id to the similarity
// cluster it belongs to. Clusters partition the full reference set:
// every indexed sequence is in exactly one cluster. The partition is
// built once per database and read-only afterwards.
type ClusterPartition map[string]string

// ReadClusterPartition builds the partition from the clustered
// reference FASTA written by the database build. Sequence names carry
// the cluster in their second "__" field.
func ReadClusterPartition(ctx context.Context, path string) (partition ClusterPartition, err error) {
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer file.CloseAndReport(ctx, in, &err)
	fa, err := fasta.New(in.Reader(ctx))
	if err != nil {
		return nil, errors.Wrapf(err, "parse clustered fasta %s", path)
	}
	partition = ClusterPartition{}
	clusters := map[string]struct{}{}
	for _, name := range fa.SeqNames() {
		cluster, seqID, err := splitSeqKey(name)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		partition[seqID] = cluster
		clusters[cluster] = struct{}{}
	}
	log.Printf("%s: %d sequences in %d clusters", path, len(partition), len(clusters))
	return partition, nil
}

// SelectBest reduces the surviving hits of each cluster to the hit(s)
// tied for the cluster's maximum percent identity. Ties are all kept:
// equally good candidates are reported rather than one being picked
// arbitrarily, so genuine ambiguity stays visible downstream. Coverage
// is never a tie-break. Clusters with no surviving hit contribute
// nothing to the output.
//
// Output order is stable: clusters appear in order of their first
// surviving hit, and tied hits keep their input order.
func SelectBest(hits []RawHit, partition ClusterPartition) ([]RawHit, error) {
	type group struct {
		best    float64
		indices []int
	}
	var order []string
	groups := map[string]*group{}
	for i := range hits {
		cluster, ok := partition[hits[i].SeqID]
		if !ok {
			return nil, consistencyErrorf(
				"sequence %q is not in the cluster partition; reference database and hit stream are out of sync",
				hits[i].SeqID)
		}
		g, ok := groups[cluster]
		if !ok {
			groups[cluster] = &group{best: hits[i].PercentIdentity, indices: []int{i}}
			order = append(order, cluster)
			continue
		}
		switch {
		case hits[i].PercentIdentity > g.best:
			g.best = hits[i].PercentIdentity
			g.indices = append(g.indices[:0], i)
		case hits[i].PercentIdentity == g.best:
			g.indices = append(g.indices, i)
		}
	}
	var out []RawHit
	for _, cluster := range order {
		for _, i := range groups[cluster].indices {
			out = append(out, hits[i])
		}
	}
	log.Printf("selected %d/%d hits across %d clusters", len(out), len(hits), len(order))
	return out, nil
}
