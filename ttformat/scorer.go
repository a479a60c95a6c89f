package ttformat

const (
	tripCandidateLimit  = 16
	longTripLength      = 6
	minAvgTripLength    = 2.2
	minUniqueStops      = 4
)

// scoreTrips computes the trip_score of spec §4.6. Trips with fewer than 2
// distinct stops are excluded before scoring.
func scoreTrips(trips []Trip) float64 {
	var validTrips []Trip
	for _, trip := range trips {
		if countUniqueStops(trip) >= 2 {
			validTrips = append(validTrips, trip)
		}
	}
	if len(validTrips) == 0 {
		return negInf
	}

	totalRecords := 0
	longTrips := 0
	uniqueStops := make(map[StopIndex]struct{})
	for _, trip := range validTrips {
		totalRecords += len(trip)
		if len(trip) >= longTripLength {
			longTrips++
		}
		for _, e := range trip {
			uniqueStops[e.StopIndex] = struct{}{}
		}
	}

	avgLen := float64(totalRecords) / float64(len(validTrips))

	score := float64(totalRecords)
	score += float64(len(validTrips)) * 5.0
	score += float64(len(uniqueStops)) * 2.0
	score += avgLen * 3.0
	score += float64(longTrips) * 8.0

	if avgLen < minAvgTripLength {
		score -= 120.0
	}
	if len(uniqueStops) < minUniqueStops {
		score -= 80.0
	}

	return score
}

func countUniqueStops(trip Trip) int {
	seen := make(map[StopIndex]struct{}, len(trip))
	for _, e := range trip {
		seen[e.StopIndex] = struct{}{}
	}
	return len(seen)
}

// selectedTrips is the chosen time-section candidate's reconstructed trips,
// alongside the section offset they were decoded from.
type selectedTrips struct {
	trips  []Trip
	offset int
}

// selectTrips runs decodeTripsFromOffset over the top candidate sections
// and picks the one with the strongest combined score (spec §4.6).
func selectTrips(data []byte, sections []timeSectionCandidate, stopCount int) (selectedTrips, bool) {
	limit := len(sections)
	if limit > tripCandidateLimit {
		limit = tripCandidateLimit
	}

	var best selectedTrips
	bestScore := negInf
	found := false

	for _, section := range sections[:limit] {
		trips := decodeTripsFromOffset(data, section.offset, stopCount)
		if len(trips) == 0 {
			continue
		}
		// Pre-filter: need at least 2 trips, or a single long trip
		// (>= 10 entries) — matches the Python reference's pre-filter.
		if len(trips) < 2 && !(len(trips) == 1 && len(trips[0]) >= 10) {
			continue
		}

		tripScore := scoreTrips(trips)
		if tripScore <= negInf {
			continue
		}
		combined := tripScore + float64(section.scanScore)/1000.0

		if combined > bestScore {
			bestScore = combined
			best = selectedTrips{trips: trips, offset: section.offset}
			found = true
		}
	}

	return best, found
}
