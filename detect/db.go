package detect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// SeqInfo is the database record for one standardized sequence id.
type SeqInfo struct {
	// Header is the original FASTA header, without the metadata suffix.
	Header string
	// Locus is the original allele name.
	Locus string
	// Accession is the sequence accession, or "" when none is
	// recorded.
	Accession string
	// Metadata holds the remaining per-sequence fields from the
	// database build, e.g. a resistance phenotype.
	Metadata map[string]string
}

// DBMetadata describes a reference database, as written by the build
// into db_metadata.txt.
type DBMetadata struct {
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	LastUpdated string       `json:"last_updated"`
	ExtraColumn *ExtraColumn `json:"extra_column,omitempty"`
}

// ExtraColumn names one per-sequence metadata key to surface as an
// extra report column.
type ExtraColumn struct {
	Name string `json:"name"` // column label
	Key  string `json:"key"`  // key into SeqInfo.Metadata
}

// DatabaseIndex maps standardized sequence ids back to their original
// allele names and accession metadata. It is built once per database
// and read-only afterwards; concurrent consolidation runs may share
// one index.
type DatabaseIndex struct {
	seqs map[string]SeqInfo
	meta DBMetadata
}

// Metadata returns the database description.
func (x *DatabaseIndex) Metadata() DBMetadata { return x.meta }

// Len returns the number of indexed sequences.
func (x *DatabaseIndex) Len() int { return len(x.seqs) }

// Lookup resolves a standardized id. A miss means the database and the
// hit stream have diverged, which is a consistency error.
func (x *DatabaseIndex) Lookup(seqID string) (SeqInfo, error) {
	info, ok := x.seqs[seqID]
	if !ok {
		return SeqInfo{}, consistencyErrorf(
			"sequence %q is not in the database index; reference database and hit stream are out of sync", seqID)
	}
	return info, nil
}

// parseMappingValue splits a mapping.txt value of the form
// "<original header> {json metadata}". The metadata suffix is
// optional; without it the header itself names the allele.
func parseMappingValue(s string) (SeqInfo, error) {
	i := strings.Index(s, " {")
	if i < 0 {
		return SeqInfo{Header: s, Locus: firstField(s)}, nil
	}
	info := SeqInfo{Header: s[:i]}
	var meta map[string]interface{}
	if err := json.Unmarshal([]byte(s[i+1:]), &meta); err != nil {
		return SeqInfo{}, errors.Wrap(err, "metadata")
	}
	info.Metadata = make(map[string]string, len(meta))
	for k, v := range meta {
		if str, ok := v.(string); ok {
			info.Metadata[k] = str
		} else {
			info.Metadata[k] = fmt.Sprint(v)
		}
	}
	if allele, ok := info.Metadata["allele"]; ok {
		info.Locus = allele
	} else {
		info.Locus = firstField(info.Header)
	}
	info.Accession = info.Metadata["accession"]
	return info, nil
}

func firstField(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return s
}

// ReadDatabaseIndex loads mapping.txt (standardized id -> original
// header plus metadata) and db_metadata.txt from a database directory.
func ReadDatabaseIndex(ctx context.Context, dir string) (*DatabaseIndex, error) {
	mappingPath := file.Join(dir, "mapping.txt")
	data, err := file.ReadFile(ctx, mappingPath)
	if err != nil {
		return nil, err
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(err, "parse %s", mappingPath)
	}
	x := &DatabaseIndex{seqs: make(map[string]SeqInfo, len(raw))}
	for id, v := range raw {
		info, err := parseMappingValue(v)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: entry %q", mappingPath, id)
		}
		x.seqs[id] = info
	}

	metaPath := file.Join(dir, "db_metadata.txt")
	data, err = file.ReadFile(ctx, metaPath)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &x.meta); err != nil {
		return nil, errors.Wrapf(err, "parse %s", metaPath)
	}
	log.Printf("%s: indexed %d sequences (%s, updated %s)", dir, len(x.seqs), x.meta.Title, x.meta.LastUpdated)
	return x, nil
}
