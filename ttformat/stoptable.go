package ttformat

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"
)

const (
	stopTableScanStart    = 0x40
	stopTableMinItemCount = 2
	stopTableMaxItemCount = 20_000
	stopTableMinStops     = 10
	stopTableMinScore     = 20.0
)

// stopSearchLimit returns how many bytes past stopTableScanStart to probe,
// scaled by file size (spec §4.2 "Scan range").
func stopSearchLimit(fileSize int) int {
	switch {
	case fileSize < 1_000_000:
		return fileSize
	case fileSize < 10_000_000:
		return 1_000_000
	case fileSize < 40_000_000:
		return 4_000_000
	default:
		return 8_000_000
	}
}

// stopCandidate holds the result of successfully parsing the fixed layout
// at a given offset (spec §4.2 "Layout recognised at offset O").
type stopCandidate struct {
	offset int
	names  []string
}

// extractStopCandidate attempts to parse the offset-table + blob layout at
// offset. It returns ok=false (never an error) whenever any structural
// check fails, per spec §9 "exception-driven candidate rejection" ->
// fallible arithmetic and early returns.
func extractStopCandidate(data []byte, offset int) ([]string, bool) {
	if offset+8 > len(data) {
		return nil, false
	}

	totalBytes := int(binary.LittleEndian.Uint32(data[offset : offset+4]))
	itemCount := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))

	if totalBytes != itemCount*4 {
		return nil, false
	}
	if itemCount < stopTableMinItemCount || itemCount > stopTableMaxItemCount {
		return nil, false
	}

	offsetsStart := offset + 8
	offsetsEnd := offsetsStart + totalBytes
	if offsetsEnd+8 > len(data) {
		return nil, false
	}

	offsets := make([]int, itemCount)
	prev := -1
	for i := 0; i < itemCount; i++ {
		pos := offsetsStart + i*4
		off := int(binary.LittleEndian.Uint32(data[pos : pos+4]))
		if off < prev {
			return nil, false
		}
		offsets[i] = off
		prev = off
	}

	blobStart := offsetsEnd
	blobSize1 := int(binary.LittleEndian.Uint32(data[blobStart : blobStart+4]))
	blobSize2 := int(binary.LittleEndian.Uint32(data[blobStart+4 : blobStart+8]))

	if blobSize1 != blobSize2 || blobSize1 <= 0 {
		return nil, false
	}
	if offsets[itemCount-1] != blobSize1 {
		return nil, false
	}

	blobDataStart := blobStart + 8
	blobDataEnd := blobDataStart + blobSize1
	if blobDataEnd > len(data) {
		return nil, false
	}
	blobData := data[blobDataStart:blobDataEnd]

	names := make([]string, itemCount-1)
	for i := 0; i < itemCount-1; i++ {
		start, end := offsets[i], offsets[i+1]
		if end < start || end > blobSize1 {
			return nil, false
		}
		names[i] = decodeStopName(blobData[start:end])
	}

	return names, true
}

// scoreStopCandidate computes the composite quality score of spec §4.2.
func scoreStopCandidate(names []string) float64 {
	if len(names) < stopTableMinStops {
		return negInf
	}

	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(n)
	}

	var badHits, serviceHits, noteHits, emptyCount, shortCount, veryLongCount, markupCount int
	seen := make(map[string]struct{}, len(names))
	var totalLen, alphaChars int

	for i, name := range names {
		lname := lowered[i]
		if containsAny(lname, badStopKeywords[:]) {
			badHits++
		}
		if isServiceText(name) {
			serviceHits++
		}
		if containsAny(lname, stopNoteKeywords[:]) {
			noteHits++
		}
		if name == "" {
			emptyCount++
		}
		if utf8.RuneCountInString(strings.TrimSpace(name)) <= 1 {
			shortCount++
		}
		if utf8.RuneCountInString(name) > 45 {
			veryLongCount++
		}
		if strings.ContainsAny(name, "{}¤|") {
			markupCount++
		}
		seen[name] = struct{}{}
		totalLen += utf8.RuneCountInString(name)
		for _, r := range name {
			if isAlpha(r) {
				alphaChars++
			}
		}
	}

	n := float64(len(names))
	uniqueRatio := float64(len(seen)) / n
	avgLen := float64(totalLen) / n

	totalChars := totalLen
	if totalChars == 0 {
		totalChars = 1
	}
	alphaRatio := float64(alphaChars) / float64(totalChars)

	score := n
	score += min(avgLen, 30.0) * 2.0
	score += uniqueRatio * 35.0
	score -= float64(badHits) * 15.0
	score -= float64(serviceHits) * 10.0
	score -= float64(noteHits) * 10.0
	score -= float64(emptyCount) * 20.0
	score -= float64(shortCount) * 4.0
	score -= float64(veryLongCount) * 6.0
	score -= float64(markupCount) * 15.0

	if float64(serviceHits)/n > 0.25 {
		score -= 80.0
	}
	if float64(noteHits)/n > 0.2 {
		score -= 80.0
	}
	if alphaRatio < 0.45 {
		score -= 30.0
	}
	if uniqueRatio < 0.6 {
		score -= 25.0
	}
	if float64(veryLongCount)/n > 0.2 {
		score -= 50.0
	}

	return score
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r >= 0x80 && isLetterExtended(r))
}

// isLetterExtended covers the accented Latin letters used by Czech/Slovak
// stop names without pulling in unicode.IsLetter's full table cost for the
// hot scoring loop.
func isLetterExtended(r rune) bool {
	switch {
	case r >= 0x00C0 && r <= 0x024F: // Latin Extended-A/B, incl. CZ/SK diacritics
		return true
	default:
		return false
	}
}

// foundStopTable is the accepted (possibly low-quality fallback) result of
// locateStopTable.
type foundStopTable struct {
	names      []string
	offset     int
	score      float64
	lowQuality bool
}

// locateStopTable scans the candidate offset space and selects the best
// stop-name table, per spec §4.2 "Selection".
func locateStopTable(data []byte) (foundStopTable, bool) {
	fileSize := len(data)
	searchLimit := stopSearchLimit(fileSize)
	maxOffset := stopTableScanStart + searchLimit
	if maxOffset > fileSize-8 {
		maxOffset = fileSize - 8
	}

	var best stopCandidate
	bestScore := negInf
	found := false

	for alignment := 0; alignment < 4; alignment++ {
		for offset := stopTableScanStart + alignment; offset < maxOffset; offset += 4 {
			names, ok := extractStopCandidate(data, offset)
			if !ok {
				continue
			}
			score := scoreStopCandidate(names)
			if score > bestScore {
				bestScore = score
				best = stopCandidate{offset: offset, names: names}
				found = true
			}
		}
	}

	if !found || len(best.names) < stopTableMinStops {
		return foundStopTable{}, false
	}

	return foundStopTable{
		names:      best.names,
		offset:     best.offset,
		score:      bestScore,
		lowQuality: bestScore < stopTableMinScore,
	}, true
}

const negInf = -1e18
