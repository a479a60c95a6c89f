package ttformat

import "encoding/binary"

const (
	tripDecodeWindowBytes = 50_000
	tripMinLength         = 2
	tripBoundaryJump      = 240
	sameMinuteStreakCap   = 3
)

// decodeTripsFromOffset streams 4-byte words forward from startOffset,
// applying the delimitation rules of spec §4.5, and returns the
// reconstructed trips.
func decodeTripsFromOffset(data []byte, startOffset int, stopCount int) []Trip {
	var trips []Trip
	var current Trip

	havePrevMinutes := false
	prevMinutes := 0
	sameMinuteStreak := 0

	end := startOffset + tripDecodeWindowBytes
	if end > len(data) {
		end = len(data)
	}

	for offset := startOffset; offset+4 <= end; offset += 4 {
		val := binary.LittleEndian.Uint32(data[offset : offset+4])
		stopIdx, byte1, minutes := decodeTimeWord(val)

		if byte1 != 0 {
			continue
		}
		if minutes > maxMinuteOfDay {
			continue
		}
		if stopCount == 0 || stopIdx >= stopCount {
			continue
		}

		// Boundary by regression or huge forward jump.
		if havePrevMinutes && (minutes < prevMinutes || minutes-prevMinutes > tripBoundaryJump) {
			if len(current) >= tripMinLength {
				trips = append(trips, current)
			}
			current = nil
			sameMinuteStreak = 0
		}

		// Immediate-duplicate suppression.
		if n := len(current); n > 0 && int(current[n-1].StopIndex) == stopIdx && int(current[n-1].Minute) == minutes {
			prevMinutes = minutes
			havePrevMinutes = true
			continue
		}

		if havePrevMinutes && minutes == prevMinutes {
			sameMinuteStreak++
			if sameMinuteStreak > sameMinuteStreakCap {
				prevMinutes = minutes
				havePrevMinutes = true
				continue
			}
		} else {
			sameMinuteStreak = 1
		}

		current = append(current, StopEntry{StopIndex: StopIndex(stopIdx), Minute: Minute(minutes)})
		prevMinutes = minutes
		havePrevMinutes = true
	}

	if len(current) >= tripMinLength {
		trips = append(trips, current)
	}

	return trips
}
