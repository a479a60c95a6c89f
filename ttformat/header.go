package ttformat

import "strings"

const minFileSize = 66

// verifyHeader checks that data looks like a CHAPS .tt container: the
// first 60 bytes, decoded as cp1250, must contain "TT", "TimeTable" and
// "CHAPS".
func verifyHeader(data []byte) bool {
	if len(data) < minFileSize {
		return false
	}
	header := decodeCP1250(data[0:60])
	return strings.Contains(header, "TT") &&
		strings.Contains(header, "TimeTable") &&
		strings.Contains(header, "CHAPS")
}
