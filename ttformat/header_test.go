package ttformat

import "testing"

func TestVerifyHeaderRejectsGarbage(t *testing.T) {
	data := make([]byte, 66)
	copy(data, "NOT A TT FILE")

	if verifyHeader(data) {
		t.Fatal("expected verifyHeader to reject a buffer with no recognised token")
	}
}

func TestVerifyHeaderRejectsShortBuffer(t *testing.T) {
	data := []byte("CHAPS TT")
	if verifyHeader(data) {
		t.Fatal("expected verifyHeader to reject a buffer shorter than minFileSize")
	}
}

func TestVerifyHeaderAcceptsCHAPSToken(t *testing.T) {
	data := make([]byte, 70)
	copy(data, "CHAPS TT TimeTable export")

	if !verifyHeader(data) {
		t.Fatal("expected verifyHeader to accept a buffer containing CHAPS/TimeTable tokens")
	}
}
