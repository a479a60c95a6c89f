package ttformat

import (
	"fmt"
	"math"
)

// Decode runs the full CHAPS .tt pipeline over data and returns the
// structured record for sourceFile (used only as a label in the output and
// in any returned DecodeError — Decode never opens files itself).
//
// Decode is pure and stateless: the same data always yields the same
// output, and no goroutine-shared state is touched.
func Decode(data []byte, sourceFile string) (*DecoderOutput, error) {
	if !verifyHeader(data) {
		return nil, newDecodeError(HeaderMismatch, sourceFile)
	}

	stopTable, ok := locateStopTable(data)
	if !ok {
		return nil, newDecodeError(NoStopTable, sourceFile)
	}

	pRecords := extractPRecords(data)

	sections := findTimeSections(data)
	selected, ok := selectTrips(data, sections, len(stopTable.names))
	if !ok {
		return nil, newDecodeError(NoTrips, sourceFile)
	}

	stops := stopTable.names
	trips := selected.trips

	// Scrubbing runs before edge extraction: once a stop is dropped, its
	// former neighbours become directly adjacent in the remapped trip, and
	// that adjacency is what the edge extractor should see (spec
	// components 7 then 8).
	scrubbedStops, scrubbedTrips, _ := scrubStops(stops, trips, nil)
	scrubbedEdges := extractEdges(scrubbedTrips)

	totalSamples := 0
	for _, samples := range scrubbedEdges {
		totalSamples += len(samples)
	}

	out := &DecoderOutput{
		SourceFile: sourceFile,
		Stops:      scrubbedStops,
		Trips:      tripsToStopEntries(scrubbedTrips),
		Stats: Stats{
			Stops:            len(scrubbedStops),
			Trips:            len(scrubbedTrips),
			Edges:            len(scrubbedEdges),
			TotalTravelTimes: totalSamples,
			PRecords:         len(pRecords),
			BestStopOffset:   stopTable.offset,
			BestTimeOffset:   selected.offset,
			StopQualityScore: stopTable.score,
		},
		Edges:    exportEdges(scrubbedEdges, scrubbedStops),
		PRecords: pRecords,
	}

	return out, nil
}

func tripsToStopEntries(trips []Trip) [][]StopEntry {
	out := make([][]StopEntry, len(trips))
	for i, trip := range trips {
		out[i] = []StopEntry(trip)
	}
	return out
}

// exportEdges turns the internal index-keyed edge map into the
// "from->to" keyed, name-resolved summary shape of the decoder output
// (spec §6).
func exportEdges(edges map[EdgeKey][]int, stops []string) map[string]ExportedEdge {
	out := make(map[string]ExportedEdge, len(edges))

	for key, samples := range edges {
		if len(samples) == 0 {
			continue
		}

		min, max, sum := samples[0], samples[0], 0
		for _, s := range samples {
			if s < min {
				min = s
			}
			if s > max {
				max = s
			}
			sum += s
		}
		avg := math.Round(float64(sum)/float64(len(samples))*10) / 10

		label := fmt.Sprintf("%d->%d", key.From, key.To)
		out[label] = ExportedEdge{
			FromStop:      stopName(stops, key.From),
			ToStop:        stopName(stops, key.To),
			TravelTimeAvg: avg,
			TravelTimeMin: min,
			TravelTimeMax: max,
			Samples:       len(samples),
		}
	}

	return out
}

func stopName(stops []string, idx StopIndex) string {
	if int(idx) < 0 || int(idx) >= len(stops) {
		return ""
	}
	return stops[idx]
}
