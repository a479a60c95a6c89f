package ttformat

import (
	"encoding/binary"
	"sort"
)

const (
	timeSectionScanStart  = 0x100
	timeSectionStride     = 0x400
	timeSectionProbeWords = 30
	timeSectionMinValid   = 10
	timeSectionMinMinutes = 5
	timeSectionMinStops   = 3
	maxMinuteOfDay        = 1440
)

// timeSectionCandidate is one probed offset that looks like it contains
// (stop_index, minute) records (spec §4.4).
type timeSectionCandidate struct {
	offset       int
	scanScore    int
	validCount   int
	uniqueTimes  int
	uniqueStops  int
}

// timeSectionScanLimit scales the probe window by file size (spec §4.4).
func timeSectionScanLimit(fileSize int) int {
	switch {
	case fileSize < 1_000_000:
		return fileSize
	case fileSize < 10_000_000:
		return 5_000_000
	default:
		return 20_000_000
	}
}

// decodeTimeWord splits a little-endian 32-bit word into the (stop_index,
// byte1, minutes) layout shared by the scanner and the trip decoder.
func decodeTimeWord(val uint32) (stopIdx int, byte1 int, minutes int) {
	stopIdx = int(val & 0xFF)
	byte1 = int((val >> 8) & 0xFF)
	minutes = int((val >> 16) & 0x7FFF)
	return
}

// findTimeSections performs the coarse sliding probe of spec §4.4,
// returning candidates sorted by scan_score descending.
func findTimeSections(data []byte) []timeSectionCandidate {
	var found []timeSectionCandidate

	fileSize := len(data)
	scanLimit := timeSectionScanLimit(fileSize)
	bound := scanLimit
	if bound > fileSize {
		bound = fileSize
	}

	for start := timeSectionScanStart; start < bound; start += timeSectionStride {
		for alignment := 0; alignment < 4; alignment++ {
			offset := start + alignment

			validCount := 0
			uniqueTimes := make(map[int]struct{})
			uniqueStops := make(map[int]struct{})

			for i := 0; i < timeSectionProbeWords; i++ {
				pos := offset + i*4
				if pos+4 > len(data) {
					break
				}

				val := binary.LittleEndian.Uint32(data[pos : pos+4])
				stopIdx, byte1, minutes := decodeTimeWord(val)

				if byte1 == 0 && minutes <= maxMinuteOfDay {
					validCount++
					uniqueTimes[minutes] = struct{}{}
					uniqueStops[stopIdx] = struct{}{}
				}
			}

			if validCount >= timeSectionMinValid &&
				len(uniqueTimes) > timeSectionMinMinutes &&
				len(uniqueStops) > timeSectionMinStops {
				found = append(found, timeSectionCandidate{
					offset:      offset,
					scanScore:   validCount * len(uniqueTimes) * len(uniqueStops),
					validCount:  validCount,
					uniqueTimes: len(uniqueTimes),
					uniqueStops: len(uniqueStops),
				})
			}
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].scanScore > found[j].scanScore
	})
	return found
}
