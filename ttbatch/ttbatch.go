// Package ttbatch walks a KOMPLET distribution tree (Data1/VL trains,
// Data2/BUS, Data3/MHD city transit), decodes every .tt file it finds, and
// writes one GTFS feed directory plus one JSON decode record per input.
package ttbatch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tangero/tt-gtfs/gtfsexport"
	"github.com/tangero/tt-gtfs/ttformat"
)

// categoryDirs maps a KOMPLET data root to the gtfsexport.Category it holds.
var categoryDirs = map[string]gtfsexport.Category{
	"Data1": gtfsexport.CategoryRail,
	"Data2": gtfsexport.CategoryBus,
	"Data3": gtfsexport.CategoryTransit,
}

// Options configures a Run.
type Options struct {
	// KompletRoot is the directory containing Data1/Data2/Data3.
	KompletRoot string
	// OutputDir receives per-file GTFS feed subdirectories and JSON decode
	// records.
	OutputDir string
	// Concurrency bounds how many files decode at once. Zero means 4.
	Concurrency int
}

// FileResult is the outcome of decoding and exporting one .tt file.
type FileResult struct {
	Path     string
	Category gtfsexport.Category
	Stats    ttformat.Stats
	// Feed is the per-file GTFS feed built alongside the CSV tables
	// already written to disk. Callers that want a merged, cross-category
	// feed (ttmerge) use this instead of re-reading the CSV back in.
	Feed *gtfsexport.Feed
	Err  error
}

// Summary aggregates a Run's FileResults.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Results   []FileResult
}

// Run walks opts.KompletRoot's category directories, decodes every .tt file
// it finds, and writes its GTFS feed and JSON record under opts.OutputDir.
// A per-file decode failure is logged and counted, not fatal to the run.
func Run(opts Options) (Summary, error) {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	files, err := discoverFiles(opts.KompletRoot)
	if err != nil {
		return Summary{}, fmt.Errorf("ttbatch: discovering input files: %w", err)
	}

	log.Infof("found %d .tt files under %s", len(files), opts.KompletRoot)

	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)
	results := make(chan FileResult)

	var collected []FileResult
	done := make(chan struct{})
	go func() {
		for r := range results {
			collected = append(collected, r)
		}
		close(done)
	}()

	for _, f := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(f discoveredFile) {
			defer wg.Done()
			defer func() { <-sem }()
			results <- processFile(f, opts.OutputDir)
		}(f)
	}

	wg.Wait()
	close(results)
	<-done

	summary := Summary{Total: len(collected), Results: collected}
	totals := make(map[gtfsexport.Category]ttformat.Stats)
	for _, r := range collected {
		if r.Err != nil {
			summary.Failed++
			log.Errorf("%s: %v", r.Path, r.Err)
		} else {
			summary.Succeeded++
			log.Infof("%s: %d stops, %d trips, %d edges", r.Path, r.Stats.Stops, r.Stats.Trips, r.Stats.Edges)
			t := totals[r.Category]
			t.Stops += r.Stats.Stops
			t.Trips += r.Stats.Trips
			t.Edges += r.Stats.Edges
			totals[r.Category] = t
		}
	}
	log.Infof("batch complete: %d/%d succeeded", summary.Succeeded, summary.Total)
	for _, c := range []gtfsexport.Category{gtfsexport.CategoryRail, gtfsexport.CategoryBus, gtfsexport.CategoryTransit} {
		if t, ok := totals[c]; ok {
			log.Infof("%s totals: %d stops, %d trips, %d edges", c, t.Stops, t.Trips, t.Edges)
		}
	}

	return summary, nil
}

type discoveredFile struct {
	path     string
	category gtfsexport.Category
}

// discoverFiles walks the Data1/Data2/Data3 roots for *.tt files, per the
// KOMPLET distribution layout.
func discoverFiles(root string) ([]discoveredFile, error) {
	var found []discoveredFile

	for dir, category := range categoryDirs {
		base := filepath.Join(root, dir)
		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			continue
		}

		err = filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".tt") {
				found = append(found, discoveredFile{path: path, category: category})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return found, nil
}

func processFile(f discoveredFile, outputDir string) FileResult {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return FileResult{Path: f.path, Category: f.category, Err: fmt.Errorf("reading file: %w", err)}
	}

	out, err := ttformat.Decode(data, filepath.Base(f.path))
	if err != nil {
		return FileResult{Path: f.path, Category: f.category, Err: err}
	}

	stem := strings.TrimSuffix(filepath.Base(f.path), filepath.Ext(f.path))

	if err := writeJSON(outputDir, stem, out); err != nil {
		return FileResult{Path: f.path, Category: f.category, Err: fmt.Errorf("writing JSON: %w", err)}
	}

	feed, err := gtfsexport.Build(out, f.category, stem)
	if err != nil {
		return FileResult{Path: f.path, Category: f.category, Stats: out.Stats, Err: fmt.Errorf("building GTFS feed: %w", err)}
	}

	feedDir := filepath.Join(outputDir, string(f.category), stem)
	if err := feed.WriteCSV(feedDir); err != nil {
		return FileResult{Path: f.path, Category: f.category, Stats: out.Stats, Err: fmt.Errorf("writing GTFS feed: %w", err)}
	}

	return FileResult{Path: f.path, Category: f.category, Stats: out.Stats, Feed: feed}
}

func writeJSON(outputDir, stem string, out *ttformat.DecoderOutput) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(outputDir, stem+".json")
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
