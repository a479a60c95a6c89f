package ttformat

const (
	minEdgeDelta = 1
	maxEdgeDelta = 60
)

// extractEdges builds the travel-time sample map of spec §4.8: for each
// adjacent stop pair within a trip, record the minute delta as a sample on
// that directed edge, provided the stops differ and the delta is plausible.
func extractEdges(trips []Trip) map[EdgeKey][]int {
	edges := make(map[EdgeKey][]int)

	for _, trip := range trips {
		for i := 0; i < len(trip)-1; i++ {
			from := trip[i]
			to := trip[i+1]

			if from.StopIndex == to.StopIndex {
				continue
			}

			delta := int(to.Minute) - int(from.Minute)
			if delta < minEdgeDelta || delta > maxEdgeDelta {
				continue
			}

			key := EdgeKey{From: from.StopIndex, To: to.StopIndex}
			edges[key] = append(edges[key], delta)
		}
	}

	return edges
}
