package ttformat

import (
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-set/v3"
)

// isBadStop applies spec §4.7's pattern-based rejection rules to a single
// stop name.
func isBadStop(name string) bool {
	if strings.TrimSpace(name) == "" {
		return true
	}
	if strings.HasPrefix(name, "¤¤") {
		return true
	}
	if strings.Contains(name, "{L}") || strings.Contains(name, "{l}") {
		return true
	}
	if isCHAPSMarker(name) {
		return true
	}

	if isServiceText(name) {
		return true
	}
	if containsAny(strings.ToLower(name), poiKeywords[:]) {
		return true
	}
	return false
}

// isCHAPSMarker matches the short internal "*xxxxx" source-format marker:
// starts with '*', length <= 6, and the remainder is entirely alphabetic.
func isCHAPSMarker(name string) bool {
	if !strings.HasPrefix(name, "*") || utf8.RuneCountInString(name) > 6 {
		return false
	}
	rest := name[1:]
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if !isAlpha(r) {
			return false
		}
	}
	return true
}

// scrubStops drops unreferenced or bad stops and rewrites trips/edges
// against the surviving, densely re-indexed set (spec §4.7). If nothing
// survives, the inputs are returned unchanged — scrubbing is a best-effort
// pass, never a cause of empty output.
func scrubStops(stops []string, trips []Trip, edges map[EdgeKey][]int) ([]string, []Trip, map[EdgeKey][]int) {
	if len(stops) == 0 || len(trips) == 0 {
		return stops, trips, edges
	}

	referenced := set.New[StopIndex](len(stops))
	for _, trip := range trips {
		for _, e := range trip {
			referenced.Insert(e.StopIndex)
		}
	}

	oldToNew := make(map[StopIndex]StopIndex)
	var newStops []string
	for oldIdx, name := range stops {
		idx := StopIndex(oldIdx)
		if !referenced.Contains(idx) {
			continue
		}
		if isBadStop(name) {
			continue
		}
		oldToNew[idx] = StopIndex(len(newStops))
		newStops = append(newStops, name)
	}

	if len(newStops) == 0 {
		return stops, trips, edges
	}

	var newTrips []Trip
	for _, trip := range trips {
		var newTrip Trip
		for _, e := range trip {
			if newIdx, ok := oldToNew[e.StopIndex]; ok {
				newTrip = append(newTrip, StopEntry{StopIndex: newIdx, Minute: e.Minute})
			}
		}
		if len(newTrip) >= tripMinLength {
			newTrips = append(newTrips, newTrip)
		}
	}

	newEdges := make(map[EdgeKey][]int, len(edges))
	for key, samples := range edges {
		fromIdx, okFrom := oldToNew[key.From]
		toIdx, okTo := oldToNew[key.To]
		if okFrom && okTo {
			newEdges[EdgeKey{From: fromIdx, To: toIdx}] = samples
		}
	}

	return newStops, newTrips, newEdges
}
