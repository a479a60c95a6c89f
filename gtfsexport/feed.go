package gtfsexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Agency is one row of agency.txt.
type Agency struct {
	ID       Key
	Name     string
	URL      string
	Timezone string
}

// Stop is one row of stops.txt. Build always leaves Location as the zero
// Coordinate, since the decoder recovers no geometry.
type Stop struct {
	ID       Key
	Name     string
	Location Coordinate
}

// Route is one row of routes.txt, synthesized per distinct consecutive-stop
// trip shape.
type Route struct {
	ID        Key
	AgencyID  Key
	ShortName string
	LongName  string
	Type      int // GTFS route_type; 3 = bus, used as the decoder has no mode signal
}

// Trip is one row of trips.txt.
type Trip struct {
	ID        Key
	RouteID   Key
	ServiceID Key
	Headsign  string
}

// StopTime is one row of stop_times.txt.
type StopTime struct {
	TripID        Key
	StopID        Key
	Sequence      int
	ArrivalTime   string
	DepartureTime string
}

// Service is one row of calendar.txt. The decoder never recovers calendar
// information, so Build always emits a single service that runs every day.
type Service struct {
	ID        Key
	Weekdays  [7]bool // Monday .. Sunday
	StartDate string
	EndDate   string
}

// DailyServiceID is the synthetic calendar.txt service every trip
// references, since .tt carries no day-of-week information (spec §4 data
// model: decoder reports no calendar info).
const DailyServiceID Key = "DAILY"

// Feed holds one category's worth of decoded GTFS tables.
type Feed struct {
	Agencies  []Agency
	Stops     []Stop
	Routes    []Route
	Trips     []Trip
	StopTimes []StopTime
	Services  []Service
}

// WriteCSV writes the six GTFS tables into dir, creating it if necessary.
func (f *Feed) WriteCSV(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("gtfsexport: creating output dir: %w", err)
	}

	writers := []struct {
		name string
		fn   func(io.Writer) error
	}{
		{"agency.txt", f.writeAgency},
		{"stops.txt", f.writeStops},
		{"routes.txt", f.writeRoutes},
		{"trips.txt", f.writeTrips},
		{"stop_times.txt", f.writeStopTimes},
		{"calendar.txt", f.writeCalendar},
	}

	for _, w := range writers {
		path := filepath.Join(dir, w.name)
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("gtfsexport: creating %s: %w", w.name, err)
		}
		err = w.fn(file)
		closeErr := file.Close()
		if err != nil {
			return fmt.Errorf("gtfsexport: writing %s: %w", w.name, err)
		}
		if closeErr != nil {
			return fmt.Errorf("gtfsexport: closing %s: %w", w.name, closeErr)
		}
	}

	return nil
}

func (f *Feed) writeAgency(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"agency_id", "agency_name", "agency_url", "agency_timezone"}); err != nil {
		return err
	}
	for _, a := range f.Agencies {
		if err := cw.Write([]string{string(a.ID), a.Name, a.URL, a.Timezone}); err != nil {
			return err
		}
	}
	return cw.Error()
}

func (f *Feed) writeStops(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"stop_id", "stop_name", "stop_lat", "stop_lon"}); err != nil {
		return err
	}
	for _, s := range f.Stops {
		row := []string{
			string(s.ID),
			s.Name,
			formatCoord(s.Location.Latitude),
			formatCoord(s.Location.Longitude),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

func (f *Feed) writeRoutes(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"route_id", "agency_id", "route_short_name", "route_long_name", "route_type"}); err != nil {
		return err
	}
	for _, r := range f.Routes {
		row := []string{
			string(r.ID),
			string(r.AgencyID),
			r.ShortName,
			r.LongName,
			fmt.Sprintf("%d", r.Type),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

func (f *Feed) writeTrips(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"route_id", "service_id", "trip_id", "trip_headsign"}); err != nil {
		return err
	}
	for _, t := range f.Trips {
		row := []string{string(t.RouteID), string(t.ServiceID), string(t.ID), t.Headsign}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

func (f *Feed) writeStopTimes(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"trip_id", "arrival_time", "departure_time", "stop_id", "stop_sequence"}); err != nil {
		return err
	}
	for _, st := range f.StopTimes {
		row := []string{
			string(st.TripID),
			st.ArrivalTime,
			st.DepartureTime,
			string(st.StopID),
			fmt.Sprintf("%d", st.Sequence),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

func (f *Feed) writeCalendar(w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"service_id", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday", "start_date", "end_date"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range f.Services {
		row := make([]string, 0, 10)
		row = append(row, string(s.ID))
		for _, d := range s.Weekdays {
			if d {
				row = append(row, "1")
			} else {
				row = append(row, "0")
			}
		}
		row = append(row, s.StartDate, s.EndDate)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

func formatCoord(v float64) string {
	return fmt.Sprintf("%.6f", v)
}
