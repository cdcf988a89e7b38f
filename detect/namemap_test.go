package detect

import (
	"testing"

	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func testIndex() *DatabaseIndex {
	return &DatabaseIndex{
		seqs: map[string]SeqInfo{
			"seq_12": {
				Header: "blaTEM-1 from pBR322", Locus: "blaTEM-1", Accession: "AB012345",
				Metadata: map[string]string{"phenotype": "ampicillin"},
			},
			"seq_13": {Header: "blaTEM-2", Locus: "blaTEM-2"},
			"seq_40": {Header: "vanA-4", Locus: "vanA-4"},
		},
		meta: DBMetadata{Name: "resistance", Title: "Acquired resistance genes"},
	}
}

func TestMapNames(t *testing.T) {
	partition := ClusterPartition{"seq_12": "blaTEM", "seq_40": "vanA"}
	hits, err := MapNames([]RawHit{
		{SeqID: "seq_12", PercentIdentity: 99.5, Coverage: 100},
		{SeqID: "seq_40", PercentIdentity: 92.0, Coverage: 85},
	}, partition, testIndex(), nil)
	assert.NoError(t, err)
	assert.EQ(t, len(hits), 2)

	expect.EQ(t, hits[0].Cluster, "blaTEM")
	expect.EQ(t, hits[0].Locus, "blaTEM-1")
	expect.EQ(t, hits[0].Accession, "AB012345")
	expect.EQ(t, hits[0].PercentIdentity, 99.5)
	expect.Nil(t, hits[0].Extra)

	// A missing accession is reported as "-", never empty.
	expect.EQ(t, hits[1].Cluster, "vanA")
	expect.EQ(t, hits[1].Locus, "vanA-4")
	expect.EQ(t, hits[1].Accession, "-")
}

func TestMapNamesExtraColumn(t *testing.T) {
	partition := ClusterPartition{"seq_12": "blaTEM", "seq_40": "vanA"}
	extra := &ExtraColumn{Name: "Phenotype", Key: "phenotype"}
	hits, err := MapNames([]RawHit{
		{SeqID: "seq_12"},
		{SeqID: "seq_40"},
	}, partition, testIndex(), extra)
	assert.NoError(t, err)
	expect.EQ(t, *hits[0].Extra, MetadataField{Name: "Phenotype", Value: "ampicillin"})
	expect.EQ(t, *hits[1].Extra, MetadataField{Name: "Phenotype", Value: "-"})
}

func TestMapNamesUnknownSequence(t *testing.T) {
	partition := ClusterPartition{"seq_99": "blaTEM"}
	_, err := MapNames([]RawHit{{SeqID: "seq_99"}}, partition, testIndex(), nil)
	if _, ok := err.(*ConsistencyError); !ok {
		t.Errorf("got %T, want *ConsistencyError", err)
	}
}
