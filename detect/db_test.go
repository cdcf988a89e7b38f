package detect

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
)

func TestParseMappingValue(t *testing.T) {
	info, err := parseMappingValue(`blaTEM-1 from pBR322 {"allele": "blaTEM-1", "accession": "AB012345", "phenotype": "ampicillin"}`)
	assert.NoError(t, err)
	expect.EQ(t, info.Header, "blaTEM-1 from pBR322")
	expect.EQ(t, info.Locus, "blaTEM-1")
	expect.EQ(t, info.Accession, "AB012345")
	expect.EQ(t, info.Metadata["phenotype"], "ampicillin")
}

func TestParseMappingValueNoMetadata(t *testing.T) {
	info, err := parseMappingValue("vanA-4 glycopeptide resistance")
	assert.NoError(t, err)
	expect.EQ(t, info.Header, "vanA-4 glycopeptide resistance")
	expect.EQ(t, info.Locus, "vanA-4")
	expect.EQ(t, info.Accession, "")
	expect.EQ(t, len(info.Metadata), 0)
}

func TestParseMappingValueNoAllele(t *testing.T) {
	// Without an allele key the header's first field names the locus.
	info, err := parseMappingValue(`mecA_1 staphylococcus {"accession": "X52593"}`)
	assert.NoError(t, err)
	expect.EQ(t, info.Locus, "mecA_1")
	expect.EQ(t, info.Accession, "X52593")
}

func TestParseMappingValueBadJSON(t *testing.T) {
	_, err := parseMappingValue(`blaTEM-1 {"allele": `)
	expect.NotNil(t, err)
}

func writeTestDB(t *testing.T, dir string) {
	assert.NoError(t, ioutil.WriteFile(filepath.Join(dir, "mapping.txt"), []byte(`{
  "seq_12": "blaTEM-1 from pBR322 {\"allele\": \"blaTEM-1\", \"accession\": \"AB012345\", \"phenotype\": \"ampicillin\"}",
  "seq_40": "vanA-4 glycopeptide resistance"
}`), 0600))
	assert.NoError(t, ioutil.WriteFile(filepath.Join(dir, "db_metadata.txt"), []byte(`{
  "name": "resistance",
  "title": "Acquired resistance genes",
  "last_updated": "2026-06-01",
  "extra_column": {"name": "Phenotype", "key": "phenotype"}
}`), 0600))
}

func TestReadDatabaseIndex(t *testing.T) {
	ctx := vcontext.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	writeTestDB(t, tempDir)

	x, err := ReadDatabaseIndex(ctx, tempDir)
	assert.NoError(t, err)
	expect.EQ(t, x.Len(), 2)
	expect.EQ(t, x.Metadata().Name, "resistance")
	expect.EQ(t, x.Metadata().Title, "Acquired resistance genes")
	expect.EQ(t, x.Metadata().LastUpdated, "2026-06-01")
	expect.EQ(t, x.Metadata().ExtraColumn.Name, "Phenotype")
	expect.EQ(t, x.Metadata().ExtraColumn.Key, "phenotype")

	info, err := x.Lookup("seq_12")
	assert.NoError(t, err)
	expect.EQ(t, info.Locus, "blaTEM-1")
	expect.EQ(t, info.Accession, "AB012345")

	info, err = x.Lookup("seq_40")
	assert.NoError(t, err)
	expect.EQ(t, info.Locus, "vanA-4")
	expect.EQ(t, info.Accession, "")
}

func TestLookupMiss(t *testing.T) {
	ctx := vcontext.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	writeTestDB(t, tempDir)

	x, err := ReadDatabaseIndex(ctx, tempDir)
	assert.NoError(t, err)
	_, err = x.Lookup("seq_99")
	if _, ok := err.(*ConsistencyError); !ok {
		t.Errorf("got %T, want *ConsistencyError", err)
	}
}

func TestReadDatabaseIndexMissingFiles(t *testing.T) {
	ctx := vcontext.Background()
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	_, err := ReadDatabaseIndex(ctx, tempDir)
	expect.NotNil(t, err)
}
