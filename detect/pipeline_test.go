package detect

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/grailbio/testutil/h"
)

func testPartition() ClusterPartition {
	return ClusterPartition{
		"seq_12": "blaTEM",
		"seq_13": "blaTEM",
		"seq_40": "vanA",
	}
}

func TestConsolidate(t *testing.T) {
	raw := []RawHit{
		// Best blaTEM candidate.
		{SeqID: "seq_12", Backend: BLAST, PercentIdentity: 99.5, Coverage: 100},
		// Same cluster, lower identity: selected out.
		{SeqID: "seq_13", Backend: BLAST, PercentIdentity: 95.0, Coverage: 100},
		// Below the coverage bound: filtered out.
		{SeqID: "seq_40", Backend: BLAST, PercentIdentity: 99.0, Coverage: 30},
	}
	hits, stats, err := Consolidate(raw, DefaultBlastThresholds, testPartition(), testIndex(), nil)
	assert.NoError(t, err)
	expect.EQ(t, stats, Stats{Raw: 3, Filtered: 2, Clusters: 1, Selected: 1})
	assert.EQ(t, len(hits), 1)
	expect.EQ(t, hits[0].Cluster, "blaTEM")
	expect.EQ(t, hits[0].Locus, "blaTEM-1")
	expect.EQ(t, hits[0].Accession, "AB012345")
	expect.EQ(t, hits[0].PercentIdentity, 99.5)
}

func TestConsolidateEmptyResult(t *testing.T) {
	raw := []RawHit{
		{SeqID: "seq_12", Backend: BLAST, PercentIdentity: 50, Coverage: 10},
	}
	hits, stats, err := Consolidate(raw, DefaultBlastThresholds, testPartition(), testIndex(), nil)
	// Zero surviving hits is a successful run, not an error.
	assert.NoError(t, err)
	expect.EQ(t, len(hits), 0)
	expect.EQ(t, stats, Stats{Raw: 1, Filtered: 0, Clusters: 0, Selected: 0})
}

func TestConsolidateNoInput(t *testing.T) {
	hits, _, err := Consolidate(nil, DefaultBlastThresholds, testPartition(), testIndex(), nil)
	assert.NoError(t, err)
	expect.EQ(t, len(hits), 0)
}

func TestConsolidateIndexMiss(t *testing.T) {
	// seq_77 is clustered but missing from the index: the run aborts
	// rather than silently skipping the hit.
	partition := testPartition()
	partition["seq_77"] = "blaTEM"
	raw := []RawHit{{SeqID: "seq_77", Backend: BLAST, PercentIdentity: 99, Coverage: 100}}
	_, _, err := Consolidate(raw, DefaultBlastThresholds, partition, testIndex(), nil)
	if _, ok := err.(*ConsistencyError); !ok {
		t.Errorf("got %T, want *ConsistencyError", err)
	}
}

func TestConsolidateDeterministic(t *testing.T) {
	raw := []RawHit{
		{SeqID: "seq_40", Backend: BLAST, PercentIdentity: 92, Coverage: 85},
		{SeqID: "seq_12", Backend: BLAST, PercentIdentity: 99.5, Coverage: 100},
		{SeqID: "seq_13", Backend: BLAST, PercentIdentity: 99.5, Coverage: 70},
	}
	first, _, err := Consolidate(raw, DefaultBlastThresholds, testPartition(), testIndex(), nil)
	assert.NoError(t, err)
	second, _, err := Consolidate(raw, DefaultBlastThresholds, testPartition(), testIndex(), nil)
	assert.NoError(t, err)
	expect.EQ(t, second, first)

	var loci []string
	for i := range first {
		loci = append(loci, first[i].Locus)
	}
	// vanA first (first surviving hit), then both tied blaTEM alleles in
	// input order.
	expect.That(t, loci, h.ElementsAre("vanA-4", "blaTEM-1", "blaTEM-2"))
}

func TestEndToEndBlast(t *testing.T) {
	raw, err := ParseBlastTabular(strings.NewReader(
		"98.50\t0__blaTEM__seq_12__seq_12\tATGCATGCAT\t10\tcontig_3\t100\t109\n" +
			"95.00\t0__blaTEM__seq_13__seq_13\tATGCATGCAT\t10\tcontig_3\t200\t209\n"))
	assert.NoError(t, err)
	hits, stats, err := Consolidate(raw, DefaultBlastThresholds, testPartition(), testIndex(), nil)
	assert.NoError(t, err)
	expect.EQ(t, stats.Selected, 1)
	assert.EQ(t, len(hits), 1)
	expect.EQ(t, hits[0].Locus, "blaTEM-1")
	expect.EQ(t, hits[0].Raw.Contig, "contig_3")
}
