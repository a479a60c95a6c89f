package ttbatch

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tangero/tt-gtfs/gtfsexport"
)

func TestDiscoverFilesWalksCategoryDirs(t *testing.T) {
	root := t.TempDir()

	mustWriteFile(t, filepath.Join(root, "Data1", "a.tt"), "x")
	mustWriteFile(t, filepath.Join(root, "Data2", "sub", "b.TT"), "x")
	mustWriteFile(t, filepath.Join(root, "Data3", "c.tt"), "x")
	mustWriteFile(t, filepath.Join(root, "Data2", "notes.txt"), "x")

	found, err := discoverFiles(root)
	require.NoError(t, err)
	require.Len(t, found, 3)

	byCategory := map[gtfsexport.Category]int{}
	for _, f := range found {
		byCategory[f.category]++
	}
	require.Equal(t, 1, byCategory[gtfsexport.CategoryRail])
	require.Equal(t, 1, byCategory[gtfsexport.CategoryBus])
	require.Equal(t, 1, byCategory[gtfsexport.CategoryTransit])
}

func TestProcessFileReportsDecodeFailure(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "broken.tt")
	mustWriteFile(t, path, "not a tt file, far too short and missing tokens")

	result := processFile(discoveredFile{path: path, category: gtfsexport.CategoryBus}, t.TempDir())
	require.Error(t, result.Err)
	require.Nil(t, result.Feed)
}

// TestRunDecodesAndPopulatesFeed exercises the full Run path against a
// synthetic but well-formed .tt file, laid out per spec.md §4.1/§4.2/§4.4
// (same offsets the ttformat package itself scans for).
func TestRunDecodesAndPopulatesFeed(t *testing.T) {
	root := t.TempDir()
	ttPath := filepath.Join(root, "Data2", "sample.tt")
	require.NoError(t, os.MkdirAll(filepath.Dir(ttPath), 0o755))
	require.NoError(t, os.WriteFile(ttPath, buildSampleTT(), 0o644))

	outDir := t.TempDir()
	summary, err := Run(Options{KompletRoot: root, OutputDir: outDir, Concurrency: 2})
	require.NoError(t, err)
	require.Equal(t, 1, summary.Total)
	require.Equal(t, 1, summary.Succeeded)
	require.Len(t, summary.Results, 1)

	result := summary.Results[0]
	require.NoError(t, result.Err)
	require.Equal(t, gtfsexport.CategoryBus, result.Category)
	require.NotNil(t, result.Feed)
	require.NotEmpty(t, result.Feed.Stops)
	require.NotEmpty(t, result.Feed.Trips)

	_, err = os.Stat(filepath.Join(outDir, "sample.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, string(gtfsexport.CategoryBus), "sample", "stops.txt"))
	require.NoError(t, err)
}

// buildSampleTT lays out a minimal header + stop table + time section
// buffer that ttformat.Decode accepts, mirroring the construction in
// ttformat's own end-to-end test.
func buildSampleTT() []byte {
	const stopOffset = 0x40
	names := []string{"StopA", "StopB", "StopC", "StopD", "StopE", "StopF", "StopG", "StopH", "StopI", "StopJ"}

	blobLen := 0
	for _, n := range names {
		blobLen += len(n)
	}
	itemCount := len(names) + 1
	totalBytes := itemCount * 4

	timeOffset := 0x100
	minLen := timeOffset + 0x400*2 + 4096

	size := stopOffset + 8 + totalBytes + 8 + blobLen
	if size < minLen {
		size = minLen
	}
	buf := make([]byte, size)
	copy(buf, "CHAPS TT TimeTable export v2")

	binary.LittleEndian.PutUint32(buf[stopOffset:stopOffset+4], uint32(totalBytes))
	binary.LittleEndian.PutUint32(buf[stopOffset+4:stopOffset+8], uint32(itemCount))

	offsetsStart := stopOffset + 8
	cum := 0
	binary.LittleEndian.PutUint32(buf[offsetsStart:offsetsStart+4], uint32(cum))
	for i, n := range names {
		cum += len(n)
		pos := offsetsStart + (i+1)*4
		binary.LittleEndian.PutUint32(buf[pos:pos+4], uint32(cum))
	}

	blobStart := offsetsStart + totalBytes
	binary.LittleEndian.PutUint32(buf[blobStart:blobStart+4], uint32(blobLen))
	binary.LittleEndian.PutUint32(buf[blobStart+4:blobStart+8], uint32(blobLen))

	pos := blobStart + 8
	for _, n := range names {
		copy(buf[pos:pos+len(n)], n)
		pos += len(n)
	}

	for i := 0; i < 20; i++ {
		off := timeOffset + i*4
		val := uint32(i%len(names)) | uint32(480+i)<<16
		binary.LittleEndian.PutUint32(buf[off:off+4], val)
	}

	return buf
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
