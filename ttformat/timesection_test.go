package ttformat

import "testing"

func TestDecodeTimeWord(t *testing.T) {
	stopIdx, byte1, minutes := decodeTimeWord(uint32(7) | uint32(480)<<16)
	if stopIdx != 7 || byte1 != 0 || minutes != 480 {
		t.Fatalf("got (%d,%d,%d), want (7,0,480)", stopIdx, byte1, minutes)
	}
}

func TestFindTimeSectionsLocatesDenseCandidate(t *testing.T) {
	buf := make([]byte, 0x100+timeSectionStride*2)
	offset := 0x100

	// 20 words with enough unique stops and minutes to clear the
	// coarse-probe thresholds.
	for i := 0; i < 20; i++ {
		putTimeWord(buf, offset+i*4, i%8, 480+i)
	}

	sections := findTimeSections(buf)
	if len(sections) == 0 {
		t.Fatal("expected at least one time-section candidate")
	}

	found := false
	for _, s := range sections {
		if s.offset == offset {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected a candidate at offset %#x among %d candidates", offset, len(sections))
	}
}
