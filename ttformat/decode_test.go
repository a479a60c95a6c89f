package ttformat

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDecodeRejectsBadHeader(t *testing.T) {
	data := make([]byte, 80)
	copy(data, "NOT A TT FILE")

	_, err := Decode(data, "broken.tt")
	if err == nil {
		t.Fatal("expected an error for a buffer missing the CHAPS/TT header token")
	}

	decodeErr, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if decodeErr.Kind != HeaderMismatch {
		t.Errorf("got kind %v, want HeaderMismatch", decodeErr.Kind)
	}
}

func TestDecodeRejectsMissingStopTable(t *testing.T) {
	data := validHeader(4096)
	_, err := Decode(data, "nostops.tt")
	if err == nil {
		t.Fatal("expected an error for a header-only buffer with no stop table")
	}
	decodeErr, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("expected *DecodeError, got %T", err)
	}
	if decodeErr.Kind != NoStopTable {
		t.Errorf("got kind %v, want NoStopTable", decodeErr.Kind)
	}
}

func TestDecodeEndToEnd(t *testing.T) {
	names := []string{"StopA", "StopB", "StopC", "StopD", "StopE", "StopF", "StopG", "StopH", "StopI", "StopJ"}
	buf := buildStopTable(0x40, names, 0x100+timeSectionStride*2)

	timeOffset := 0x100
	for i := 0; i < 20; i++ {
		putTimeWord(buf, timeOffset+i*4, i%len(names), 480+i)
	}
	copy(buf, "CHAPS TT TimeTable export v2")

	out, err := Decode(buf, "sample.tt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Stops) == 0 {
		t.Fatal("expected at least one surviving stop")
	}
	if len(out.Trips) == 0 {
		t.Fatal("expected at least one decoded trip")
	}

	for _, trip := range out.Trips {
		if len(trip) < 2 {
			t.Errorf("trip shorter than 2 entries: %+v", trip)
		}
		for i, e := range trip {
			if int(e.StopIndex) < 0 || int(e.StopIndex) >= len(out.Stops) {
				t.Errorf("entry %d: stop index %d out of range [0,%d)", i, e.StopIndex, len(out.Stops))
			}
			if e.Minute > maxMinuteOfDay {
				t.Errorf("entry %d: minute %d exceeds %d", i, e.Minute, maxMinuteOfDay)
			}
		}
	}

	for label, edge := range out.Edges {
		if edge.TravelTimeMin < 1 || edge.TravelTimeMax > 60 {
			t.Errorf("edge %s: travel time out of range [%d,%d]", label, edge.TravelTimeMin, edge.TravelTimeMax)
		}
	}

	out2, err := Decode(buf, "sample.tt")
	if err != nil {
		t.Fatalf("unexpected error on re-decode: %v", err)
	}
	if out2.Stats != out.Stats {
		t.Errorf("decode is not deterministic: %+v vs %+v", out.Stats, out2.Stats)
	}
}

// TestDecodeEdgesRoundTripThroughJSON checks the idempotence property of
// spec.md §8: re-decoding the emitted JSON's trip sequence back through the
// edge extractor reproduces the exported edge set exactly.
func TestDecodeEdgesRoundTripThroughJSON(t *testing.T) {
	names := []string{"StopA", "StopB", "StopC", "StopD", "StopE", "StopF", "StopG", "StopH", "StopI", "StopJ"}
	buf := buildStopTable(0x40, names, 0x100+timeSectionStride*2)

	timeOffset := 0x100
	for i := 0; i < 20; i++ {
		putTimeWord(buf, timeOffset+i*4, i%len(names), 480+i)
	}
	copy(buf, "CHAPS TT TimeTable export v2")

	out, err := Decode(buf, "sample.tt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Edges) == 0 {
		t.Fatal("expected at least one edge to round-trip")
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshaling decode output: %v", err)
	}

	var reconstructed DecoderOutput
	if err := json.Unmarshal(encoded, &reconstructed); err != nil {
		t.Fatalf("unmarshaling decode output: %v", err)
	}

	trips := make([]Trip, len(reconstructed.Trips))
	for i, entries := range reconstructed.Trips {
		trips[i] = Trip(entries)
	}

	rebuiltEdges := extractEdges(trips)
	rebuiltExported := exportEdges(rebuiltEdges, reconstructed.Stops)

	if !reflect.DeepEqual(rebuiltExported, out.Edges) {
		t.Errorf("round trip through JSON did not reproduce the edge set:\ngot  %+v\nwant %+v", rebuiltExported, out.Edges)
	}
}
