package gtfsexport

import (
	"fmt"
	"strings"

	"github.com/tangero/tt-gtfs/ttformat"
)

// dailyServiceStart and dailyServiceEnd bound the synthetic calendar.txt
// window applied to
// DailyServiceID: wide enough to cover any KOMPLET release without needing
// real validity dates, which the decoder never recovers.
const (
	dailyServiceStart = "20200101"
	dailyServiceEnd   = "20301231"
)

// Build converts a decoded .tt file into a Feed. agencyName is typically
// derived from the source filename; category prefixes every synthesized ID
// so per-category feeds never collide before ttmerge runs.
func Build(out *ttformat.DecoderOutput, category Category, agencyName string) (*Feed, error) {
	if out == nil {
		return nil, fmt.Errorf("gtfsexport: nil decoder output")
	}

	agencyID := Key(fmt.Sprintf("%s-agency", category))
	feed := &Feed{
		Agencies: []Agency{{
			ID:       agencyID,
			Name:     agencyName,
			URL:      "",
			Timezone: "Europe/Prague",
		}},
		Services: []Service{{
			ID:        DailyServiceID,
			Weekdays:  [7]bool{true, true, true, true, true, true, true},
			StartDate: dailyServiceStart,
			EndDate:   dailyServiceEnd,
		}},
	}

	feed.Stops = make([]Stop, len(out.Stops))
	for i, name := range out.Stops {
		feed.Stops[i] = Stop{
			ID:   stopKey(category, i),
			Name: name,
		}
	}

	longNameHint := routeHint(out)

	routeOf := make(map[string]Key)
	routeSeq := 0

	for tripSeq, trip := range out.Trips {
		shapeKey := tripShapeKey(trip)

		routeID, ok := routeOf[shapeKey]
		if !ok {
			routeSeq++
			routeID = Key(fmt.Sprintf("%s-route-%d", category, routeSeq))
			routeOf[shapeKey] = routeID

			shortName := fmt.Sprintf("%d", routeSeq)
			feed.Routes = append(feed.Routes, Route{
				ID:        routeID,
				AgencyID:  agencyID,
				ShortName: shortName,
				LongName:  longNameHint,
				Type:      3,
			})
		}

		tripID := Key(fmt.Sprintf("%s-trip-%d", category, tripSeq+1))
		var headsign string
		if n := len(trip); n > 0 {
			headsign = feed.Stops[trip[n-1].StopIndex].Name
		}

		feed.Trips = append(feed.Trips, Trip{
			ID:        tripID,
			RouteID:   routeID,
			ServiceID: DailyServiceID,
			Headsign:  headsign,
		})

		for seq, entry := range trip {
			clock := minuteOfDayToClock(int(entry.Minute))
			feed.StopTimes = append(feed.StopTimes, StopTime{
				TripID:        tripID,
				StopID:        stopKey(category, int(entry.StopIndex)),
				Sequence:      seq + 1,
				ArrivalTime:   clock,
				DepartureTime: clock,
			})
		}
	}

	return feed, nil
}

func stopKey(category Category, index int) Key {
	return Key(fmt.Sprintf("%s-stop-%d", category, index))
}

// tripShapeKey groups trips by their ordered stop-index sequence, so each
// distinct run pattern becomes one GTFS route.
func tripShapeKey(trip []ttformat.StopEntry) string {
	var b strings.Builder
	for i, e := range trip {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", e.StopIndex)
	}
	return b.String()
}

// routeHint returns the first usable P-record as a route long_name hint;
// P-records are diagnostics only and never required for a successful
// decode (spec §4.3).
func routeHint(out *ttformat.DecoderOutput) string {
	for _, rec := range out.PRecords {
		if trimmed := strings.TrimSpace(strings.TrimPrefix(rec, "P")); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// minuteOfDayToClock renders a minute-of-day value as GTFS's HH:MM:SS,
// which allows hours >= 24 for service past midnight.
func minuteOfDayToClock(minute int) string {
	h := minute / 60
	m := minute % 60
	return fmt.Sprintf("%02d:%02d:00", h, m)
}
