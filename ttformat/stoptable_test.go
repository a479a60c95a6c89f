package ttformat

import "testing"

func TestExtractStopCandidateRoundTrips(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	buf := buildStopTable(0x40, names, 0)

	got, ok := extractStopCandidate(buf, 0x40)
	if !ok {
		t.Fatal("expected extractStopCandidate to accept a well-formed table")
	}
	if len(got) != len(names) {
		t.Fatalf("got %d names, want %d", len(got), len(names))
	}
	for i, name := range names {
		if got[i] != name {
			t.Errorf("name %d: got %q, want %q", i, got[i], name)
		}
	}
}

func TestExtractStopCandidateRejectsTruncatedBuffer(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E"}
	buf := buildStopTable(0x40, names, 0)

	truncated := buf[:len(buf)-4]
	if _, ok := extractStopCandidate(truncated, 0x40); ok {
		t.Fatal("expected extractStopCandidate to reject a truncated buffer")
	}
}

func TestScoreStopCandidatePenalizesServiceText(t *testing.T) {
	clean := []string{"Náměstí Republiky", "Hlavní nádraží", "Smíchovské nádraží", "Anděl", "Karlovo náměstí", "Muzeum", "Florenc", "Palmovka", "Invalidovna", "Českomoravská"}
	cleanScore := scoreStopCandidate(clean)

	dirty := make([]string, len(clean))
	copy(dirty, clean)
	dirty[0] = "jede v pondělí až pátek"
	dirtyScore := scoreStopCandidate(dirty)

	if dirtyScore >= cleanScore {
		t.Fatalf("expected service-text keyword to lower the score: dirty=%v clean=%v", dirtyScore, cleanScore)
	}
}

func TestLocateStopTableFindsBestCandidate(t *testing.T) {
	names := []string{"Náměstí Republiky", "Hlavní nádraží", "Smíchovské nádraží", "Anděl", "Karlovo náměstí", "Muzeum", "Florenc", "Palmovka", "Invalidovna", "Českomoravská"}
	buf := buildStopTable(0x40, names, 4096)

	found, ok := locateStopTable(buf)
	if !ok {
		t.Fatal("expected locateStopTable to find the planted candidate")
	}
	if found.offset != 0x40 {
		t.Errorf("offset: got %d, want %d", found.offset, 0x40)
	}
	if len(found.names) != len(names) {
		t.Fatalf("got %d names, want %d", len(found.names), len(names))
	}
}
