package main

// gene-detect consolidates the raw output of one detection backend
// (BLAST, SRST2 or KMA) against one or more clustered reference gene
// databases and writes one annotated hit table per database.
//
// A database directory is expected to contain the artifacts written by
// the database build:
//
//	mapping.txt       standardized id -> original header + metadata
//	db_metadata.txt   database name/title/last update, extra column
//	clustered.fasta   clustered reference, cluster in the header key
//
// Example:
//
//	gene-detect -method blast -db /data/db/amr -hits blast.tsv \
//	    -alignments blast-aln/ -output amr-hits.tsv

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/amrscan/genedetect/detect"
	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/vcontext"
)

// Collection of options set via cmdline flags.
type detectFlags struct {
	method     string
	dbDirs     string
	hitsPath   string
	alignDir   string
	outputPath string

	minIdentity         float64
	minCoverage         float64
	maxDivergence       float64
	maxMismatches       int
	maxUnalignedOverlap int
}

func thresholdsFromFlags(flags detectFlags) (detect.Thresholds, error) {
	switch flags.method {
	case "blast":
		return detect.BlastThresholds{
			MinIdentity: flags.minIdentity,
			MinCoverage: flags.minCoverage,
		}, nil
	case "srst2":
		return detect.SRST2Thresholds{
			MinIdentity:         flags.minIdentity,
			MinCoverage:         flags.minCoverage,
			MaxDivergence:       flags.maxDivergence,
			MaxMismatches:       flags.maxMismatches,
			MaxUnalignedOverlap: flags.maxUnalignedOverlap,
		}, nil
	case "kma":
		return detect.KMAThresholds{
			MinIdentity: flags.minIdentity,
			MinCoverage: flags.minCoverage,
		}, nil
	}
	return nil, fmt.Errorf("unknown detection method %q", flags.method)
}

func parseRawHits(method string, in io.Reader) ([]detect.RawHit, detect.Backend, error) {
	switch method {
	case "blast":
		hits, err := detect.ParseBlastTabular(in)
		return hits, detect.BLAST, err
	case "srst2":
		hits, err := detect.ParseSRST2FullGenes(in)
		return hits, detect.SRST2, err
	case "kma":
		hits, err := detect.ParseKMARes(in)
		return hits, detect.KMA, err
	}
	return nil, 0, fmt.Errorf("unknown detection method %q", method)
}

// readRawHits opens the backend output (transparently decompressing by
// path suffix) and normalizes it into raw hits.
func readRawHits(ctx context.Context, flags detectFlags) ([]detect.RawHit, detect.Backend, error) {
	in, err := file.Open(ctx, flags.hitsPath)
	if err != nil {
		return nil, 0, err
	}
	var r io.Reader = in.Reader(ctx)
	if u, compressed := compress.NewReaderPath(r, in.Name()); compressed {
		r = u
	}
	raw, backend, err := parseRawHits(flags.method, r)
	once := errors.Once{}
	once.Set(err)
	once.Set(in.Close(ctx))
	return raw, backend, once.Err()
}

// run consolidates one (sample, database, backend) instance.
func run(ctx context.Context, dbDir string, flags detectFlags) error {
	index, err := detect.ReadDatabaseIndex(ctx, dbDir)
	if err != nil {
		return err
	}
	meta := index.Metadata()
	partition, err := detect.ReadClusterPartition(ctx, file.Join(dbDir, "clustered.fasta"))
	if err != nil {
		return err
	}
	th, err := thresholdsFromFlags(flags)
	if err != nil {
		return err
	}
	raw, backend, err := readRawHits(ctx, flags)
	if err != nil {
		return err
	}

	hits, stats, err := detect.Consolidate(raw, th, partition, index, meta.ExtraColumn)
	if err != nil {
		return err
	}
	if flags.alignDir != "" && backend == detect.BLAST {
		blocks, err := detect.ReadAlignmentDir(flags.alignDir)
		if err != nil {
			return err
		}
		if err := detect.AttachAlignments(hits, blocks); err != nil {
			return err
		}
	}
	detect.SortHits(hits)

	outPath := strings.ReplaceAll(flags.outputPath, "{db}", meta.Name)
	out, err := file.Create(ctx, outPath)
	if err != nil {
		return err
	}
	once := errors.Once{}
	once.Set(detect.WriteHits(out.Writer(ctx), hits, backend, meta.ExtraColumn))
	once.Set(out.Close(ctx))
	if err := once.Err(); err != nil {
		return err
	}
	log.Printf("%s: wrote %d %s hits to %s (%s)", meta.Title, len(hits), flags.method, outPath, stats)
	return nil
}

func main() {
	flags := detectFlags{}
	flag.StringVar(&flags.method, "method", "blast", "Detection method that produced the raw hits: blast, srst2 or kma.")
	flag.StringVar(&flags.dbDirs, "db", "", "Comma-separated list of reference database directories.")
	flag.StringVar(&flags.hitsPath, "hits", "", "Raw tabular output of the detection method. May be gzip-compressed.")
	flag.StringVar(&flags.alignDir, "alignments", "", "Directory holding one alignment text file per selected hit (blast only).")
	flag.StringVar(&flags.outputPath, "output", "./hits-{db}.tsv", "Output hit table; {db} expands to the database name.")
	flag.Float64Var(&flags.minIdentity, "min-identity", detect.DefaultBlastThresholds.MinIdentity,
		"Minimum percent identity, inclusive.")
	flag.Float64Var(&flags.minCoverage, "min-coverage", detect.DefaultBlastThresholds.MinCoverage,
		"Minimum percent of the reference covered, inclusive.")
	flag.Float64Var(&flags.maxDivergence, "max-divergence", detect.DefaultSRST2Thresholds.MaxDivergence,
		"Maximum percent divergence, inclusive (srst2 only).")
	flag.IntVar(&flags.maxMismatches, "max-mismatches", detect.DefaultSRST2Thresholds.MaxMismatches,
		"Maximum number of mismatches, inclusive (srst2 only).")
	flag.IntVar(&flags.maxUnalignedOverlap, "max-unaligned-overlap", detect.DefaultSRST2Thresholds.MaxUnalignedOverlap,
		"Maximum number of uncovered reference bases, inclusive (srst2 only).")

	cleanup := grail.Init()
	defer cleanup()
	ctx := vcontext.Background()

	if flags.dbDirs == "" || flags.hitsPath == "" {
		log.Fatal("-db and -hits are required")
	}
	dbDirs := strings.Split(flags.dbDirs, ",")
	if len(dbDirs) > 1 && !strings.Contains(flags.outputPath, "{db}") {
		log.Fatal("-output must contain {db} when consolidating against multiple databases")
	}
	// Databases are independent; consolidate them in parallel.
	if err := traverse.Each(len(dbDirs), func(i int) error {
		return run(ctx, dbDirs[i], flags)
	}); err != nil {
		log.Fatal(err)
	}
	log.Printf("All done")
}
