package gtfsexport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tangero/tt-gtfs/ttformat"
)

func TestBuildSynthesizesOneRoutePerShape(t *testing.T) {
	out := &ttformat.DecoderOutput{
		SourceFile: "sample.tt",
		Stops:      []string{"A", "B", "C"},
		Trips: [][]ttformat.StopEntry{
			{{StopIndex: 0, Minute: 480}, {StopIndex: 1, Minute: 485}},
			{{StopIndex: 0, Minute: 600}, {StopIndex: 1, Minute: 605}},
			{{StopIndex: 1, Minute: 700}, {StopIndex: 2, Minute: 710}},
		},
	}

	feed, err := Build(out, CategoryBus, "Sample Agency")
	require.NoError(t, err)

	require.Len(t, feed.Agencies, 1)
	require.Len(t, feed.Stops, 3)
	require.Len(t, feed.Trips, 3)
	// Two trips share the (0,1) shape, one uses (1,2): two routes.
	require.Len(t, feed.Routes, 2)
	require.Len(t, feed.Services, 1)
	require.Equal(t, DailyServiceID, feed.Services[0].ID)

	wantStopTimes := 2 + 2 + 2
	require.Len(t, feed.StopTimes, wantStopTimes)
}

func TestBuildWritesCSVFiles(t *testing.T) {
	out := &ttformat.DecoderOutput{
		Stops: []string{"A", "B"},
		Trips: [][]ttformat.StopEntry{
			{{StopIndex: 0, Minute: 10}, {StopIndex: 1, Minute: 15}},
		},
	}
	feed, err := Build(out, CategoryRail, "Sample Rail")
	require.NoError(t, err)
	require.NoError(t, feed.WriteCSV(t.TempDir()))
}
