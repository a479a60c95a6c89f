package ttformat

const (
	pRecordScanStart = 0x1000
	pRecordScanBytes = 50_000
	pRecordMaxCount  = 50
)

var pRecordSeparator = [2]byte{0xA4, 0xA4}

// extractPRecords pulls route-metadata strings out of the P-record band.
// This component is informational only: it never fails the decode (spec
// §4.3).
func extractPRecords(data []byte) []string {
	start := pRecordScanStart
	end := start + pRecordScanBytes
	if end > len(data) {
		end = len(data)
	}

	var records []string
	i := start
	for i < end-100 {
		if data[i] != 'P' {
			i++
			continue
		}

		recordEnd := i + 1
		for recordEnd < end {
			if recordEnd+1 < len(data) && data[recordEnd] == pRecordSeparator[0] && data[recordEnd+1] == pRecordSeparator[1] {
				break
			}
			recordEnd++
		}

		records = append(records, decodeCP1250(data[i:recordEnd]))
		i = recordEnd + 2

		if len(records) >= pRecordMaxCount {
			break
		}
	}

	return records
}
