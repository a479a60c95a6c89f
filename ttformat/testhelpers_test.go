package ttformat

import "encoding/binary"

// buildStopTable lays out the offset-table + blob structure extractStopCandidate
// expects, starting at offset, and returns the full buffer padded to at
// least minLen bytes.
func buildStopTable(offset int, names []string, minLen int) []byte {
	blobs := make([][]byte, len(names))
	blobLen := 0
	for i, n := range names {
		blobs[i] = []byte(n)
		blobLen += len(blobs[i])
	}

	itemCount := len(names) + 1
	totalBytes := itemCount * 4

	size := offset + 8 + totalBytes + 8 + blobLen
	if size < minLen {
		size = minLen
	}
	buf := make([]byte, size)

	binary.LittleEndian.PutUint32(buf[offset:offset+4], uint32(totalBytes))
	binary.LittleEndian.PutUint32(buf[offset+4:offset+8], uint32(itemCount))

	offsetsStart := offset + 8
	cum := 0
	binary.LittleEndian.PutUint32(buf[offsetsStart:offsetsStart+4], uint32(cum))
	for i, b := range blobs {
		cum += len(b)
		pos := offsetsStart + (i+1)*4
		binary.LittleEndian.PutUint32(buf[pos:pos+4], uint32(cum))
	}

	blobStart := offsetsStart + totalBytes
	binary.LittleEndian.PutUint32(buf[blobStart:blobStart+4], uint32(blobLen))
	binary.LittleEndian.PutUint32(buf[blobStart+4:blobStart+8], uint32(blobLen))

	blobDataStart := blobStart + 8
	pos := blobDataStart
	for _, b := range blobs {
		copy(buf[pos:pos+len(b)], b)
		pos += len(b)
	}

	return buf
}

// putTimeWord writes one (stopIdx, minutes) record at offset in little-endian
// layout: byte1 is always 0.
func putTimeWord(buf []byte, offset int, stopIdx int, minutes int) {
	val := uint32(stopIdx) | uint32(minutes)<<16
	binary.LittleEndian.PutUint32(buf[offset:offset+4], val)
}

func validHeader(minLen int) []byte {
	if minLen < minFileSize {
		minLen = minFileSize
	}
	buf := make([]byte, minLen)
	copy(buf, "CHAPS TT TimeTable export v2")
	return buf
}
