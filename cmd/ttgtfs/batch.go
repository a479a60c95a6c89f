package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/tangero/tt-gtfs/gtfsexport"
	"github.com/tangero/tt-gtfs/ttbatch"
	"github.com/tangero/tt-gtfs/ttmerge"
)

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	outDir := fs.StringP("output", "o", "gtfs-out", "output directory for per-file JSON and GTFS feeds")
	merge := fs.Bool("merge", false, "additionally merge the per-category feeds into <output>/merged")
	url := fs.String("url", "", "download and extract a KOMPLET.ZIP archive from this URL before processing")
	cacheFile := fs.String("stop-id-cache", "", "bbolt file used to keep stop IDs stable across merge runs (requires --merge)")
	concurrency := fs.Int("concurrency", 4, "number of .tt files decoded concurrently")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("ttgtfs batch: expected exactly one <komplet-dir> argument")
	}
	kompletRoot := fs.Arg(0)

	if *url != "" {
		var err error
		kompletRoot, err = ttbatch.FetchKomplet(*url, kompletRoot)
		if err != nil {
			return err
		}
	}

	summary, err := ttbatch.Run(ttbatch.Options{
		KompletRoot: kompletRoot,
		OutputDir:   *outDir,
		Concurrency: *concurrency,
	})
	if err != nil {
		return err
	}

	if summary.Succeeded == 0 {
		return fmt.Errorf("ttgtfs batch: no .tt file decoded successfully")
	}

	if *merge {
		if err := mergeResults(summary, *outDir, *cacheFile); err != nil {
			return fmt.Errorf("ttgtfs batch: merge: %w", err)
		}
	}

	return nil
}

func mergeResults(summary ttbatch.Summary, outDir, cacheFile string) error {
	var cache *gtfsexport.StopIDCache
	if cacheFile != "" {
		var err error
		cache, err = gtfsexport.OpenStopIDCache(cacheFile)
		if err != nil {
			return fmt.Errorf("opening stop ID cache: %w", err)
		}
		defer cache.Close()
	}

	var feeds []*gtfsexport.Feed
	for _, r := range summary.Results {
		if r.Feed != nil {
			feeds = append(feeds, r.Feed)
		}
	}

	merged := ttmerge.New(cache).Merge(feeds...)
	mergedDir := filepath.Join(outDir, "merged")
	if err := merged.WriteCSV(mergedDir); err != nil {
		return err
	}

	log.Infof("merged %d feeds: %d agencies, %d stops, %d routes, %d trips",
		len(feeds), len(merged.Agencies), len(merged.Stops), len(merged.Routes), len(merged.Trips))

	return nil
}
