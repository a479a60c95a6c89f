// Package ttformat decodes the CHAPS .tt binary timetable format used by
// the Czech/Slovak IDOS KOMPLET distribution into an in-memory, GTFS-ready
// record.
//
// There is no published specification for .tt: the decoder is a set of
// heuristics that locate a stop-name table and a block of (stop, minute)
// records among candidate byte ranges, reconstruct trips from them, and
// scrub entries that turn out to be points-of-interest, legends or binary
// noise. Decoding is purely sequential: one byte slice in, one
// DecoderOutput (or error) out, with no I/O and no shared state.
package ttformat

// StopIndex references a stop in a StopTable by position.
type StopIndex uint

// Minute is a minute-of-day value in [0, 1440].
type Minute uint

// StopEntry is one (stop, minute-of-day) record within a Trip.
type StopEntry struct {
	StopIndex StopIndex
	Minute    Minute
}

// Trip is an ordered run of a service: a sequence of (stop, minute) pairs
// reconstructed by delimitation heuristics in decodeTripsFromOffset.
type Trip []StopEntry

// EdgeKey identifies a directed stop-to-stop transition.
type EdgeKey struct {
	From StopIndex
	To   StopIndex
}

// Edge accumulates observed travel-time samples (in minutes) for one
// directed stop pair.
type Edge struct {
	From    StopIndex
	To      StopIndex
	Samples []int
}

// Stats summarizes a successful decode.
type Stats struct {
	Stops             int     `json:"stops"`
	Trips             int     `json:"trips"`
	Edges             int     `json:"edges"`
	TotalTravelTimes  int     `json:"total_travel_times"`
	PRecords          int     `json:"p_records"`
	BestStopOffset    int     `json:"best_stop_offset"`
	BestTimeOffset    int     `json:"best_time_offset"`
	StopQualityScore  float64 `json:"stop_quality_score"`
}

// DecoderOutput is the structured record produced by a successful decode.
type DecoderOutput struct {
	SourceFile string                  `json:"source_file"`
	Stops      []string                `json:"stops"`
	Trips      [][]StopEntry           `json:"trips"`
	Stats      Stats                   `json:"stats"`
	Edges      map[string]ExportedEdge `json:"edges"`
	// PRecords holds the raw route-metadata text pulled from the P-record
	// band. These are hints only (spec §4.3): a decode never fails or
	// changes shape because of their content.
	PRecords []string `json:"p_records,omitempty"`
}

// ExportedEdge is the per-edge summary emitted in DecoderOutput.Edges.
type ExportedEdge struct {
	FromStop      string  `json:"from_stop"`
	ToStop        string  `json:"to_stop"`
	TravelTimeAvg float64 `json:"travel_time_avg"`
	TravelTimeMin int     `json:"travel_time_min"`
	TravelTimeMax int     `json:"travel_time_max"`
	Samples       int     `json:"samples"`
}
