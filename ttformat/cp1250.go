package ttformat

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// decodeCP1250 decodes Windows-1250 bytes to a UTF-8 string, replacing any
// byte that has no mapping. The .tt format never uses UTF-8 or Latin-1 for
// its embedded text (spec §9 "Code-page 1250").
func decodeCP1250(b []byte) string {
	out, err := charmap.Windows1250.NewDecoder().Bytes(b)
	if err != nil {
		// NewDecoder().Bytes never actually returns an error for charmap
		// decoders (invalid bytes are replaced), but guard against a
		// future encoding change turning this into a fallible path.
		return string(b)
	}
	return string(out)
}

// decodeStopName decodes a stop-table string: strip trailing NULs left over
// from fixed-width storage, then surrounding whitespace.
func decodeStopName(b []byte) string {
	s := decodeCP1250(b)
	s = strings.TrimRight(s, "\x00")
	return strings.TrimSpace(s)
}
