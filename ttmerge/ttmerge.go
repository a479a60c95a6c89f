// Package ttmerge combines the per-category GTFS feeds that gtfsexport
// produces for VL (rail), BUS and MHD (city transit) into a single feed,
// deduplicating stops by name and remapping every entity ID so the three
// categories' synthesized IDs never collide.
//
// Grounded on original_source/scripts/integrate_all_data_fast.py's
// GTFSIntegratorFast: monotonic next_id counters per entity type and a
// stop-name -> new-ID map, both carried here as fields on Merger rather
// than Python's instance state, per spec §9 "global-feeling state ... model
// as explicit, owned context objects".
package ttmerge

import (
	"fmt"

	"github.com/tangero/tt-gtfs/gtfsexport"
)

// Merger accumulates entity ID counters and the stop-name dedup map across
// however many Feeds are merged. Create one with New: the zero value has
// nil dedup maps and panics on the first stop or service it assigns. A
// Merger is not safe for concurrent use.
type Merger struct {
	nextAgency  int
	nextStop    int
	nextRoute   int
	nextTrip    int
	nextService int

	stopIDByName map[string]gtfsexport.Key
	serviceByKey map[serviceKey]gtfsexport.Key

	// Cache, if set, persists stop-name -> stop-ID assignments across
	// separate Merger runs (see gtfsexport.StopIDCache) so re-running a
	// merge against an updated KOMPLET release doesn't renumber stop IDs
	// that already appeared in a previous run's output.
	Cache *gtfsexport.StopIDCache
}

// New returns a ready-to-use Merger. cache may be nil, in which case every
// stop gets a fresh ID scoped to this Merger only.
func New(cache *gtfsexport.StopIDCache) *Merger {
	return &Merger{
		stopIDByName: make(map[string]gtfsexport.Key),
		serviceByKey: make(map[serviceKey]gtfsexport.Key),
		Cache:        cache,
	}
}

// serviceKey identifies a calendar.txt row's content so identical synthetic
// "runs every day" services from different categories collapse into one
// shared service instead of being duplicated per category.
type serviceKey struct {
	weekdays  [7]bool
	startDate string
	endDate   string
}

// Merge combines feeds, in order, into a single Feed. Each feed keeps its
// own agency, route and trip identity (remapped to fresh IDs); stops merge
// by exact name match, and calendar rows merge by exact content match.
func (m *Merger) Merge(feeds ...*gtfsexport.Feed) *gtfsexport.Feed {
	merged := &gtfsexport.Feed{}

	for _, feed := range feeds {
		if feed == nil {
			continue
		}
		m.mergeOne(merged, feed)
	}

	return merged
}

func (m *Merger) mergeOne(merged *gtfsexport.Feed, feed *gtfsexport.Feed) {
	agencyIDs := make(map[gtfsexport.Key]gtfsexport.Key, len(feed.Agencies))
	for _, a := range feed.Agencies {
		newID := m.newAgencyID()
		agencyIDs[a.ID] = newID
		a.ID = newID
		merged.Agencies = append(merged.Agencies, a)
	}

	stopIDs := make(map[gtfsexport.Key]gtfsexport.Key, len(feed.Stops))
	for _, s := range feed.Stops {
		newID, isNew := m.stopID(s.Name)
		stopIDs[s.ID] = newID
		if isNew {
			s.ID = newID
			merged.Stops = append(merged.Stops, s)
		}
	}

	routeIDs := make(map[gtfsexport.Key]gtfsexport.Key, len(feed.Routes))
	for _, r := range feed.Routes {
		newID := m.newRouteID()
		routeIDs[r.ID] = newID
		r.ID = newID
		if newAgency, ok := agencyIDs[r.AgencyID]; ok {
			r.AgencyID = newAgency
		}
		merged.Routes = append(merged.Routes, r)
	}

	serviceIDs := make(map[gtfsexport.Key]gtfsexport.Key, len(feed.Services))
	for _, s := range feed.Services {
		newID, isNew := m.serviceID(s)
		serviceIDs[s.ID] = newID
		if isNew {
			s.ID = newID
			merged.Services = append(merged.Services, s)
		}
	}

	tripIDs := make(map[gtfsexport.Key]gtfsexport.Key, len(feed.Trips))
	for _, t := range feed.Trips {
		newID := m.newTripID()
		tripIDs[t.ID] = newID
		t.ID = newID
		if newRoute, ok := routeIDs[t.RouteID]; ok {
			t.RouteID = newRoute
		}
		if newService, ok := serviceIDs[t.ServiceID]; ok {
			t.ServiceID = newService
		}
		merged.Trips = append(merged.Trips, t)
	}

	for _, st := range feed.StopTimes {
		if newTrip, ok := tripIDs[st.TripID]; ok {
			st.TripID = newTrip
		}
		if newStop, ok := stopIDs[st.StopID]; ok {
			st.StopID = newStop
		}
		merged.StopTimes = append(merged.StopTimes, st)
	}
}

func (m *Merger) newAgencyID() gtfsexport.Key {
	m.nextAgency++
	return gtfsexport.Key(fmt.Sprintf("AG_%d", m.nextAgency))
}

func (m *Merger) newRouteID() gtfsexport.Key {
	m.nextRoute++
	return gtfsexport.Key(fmt.Sprintf("RT_%d", m.nextRoute))
}

func (m *Merger) newTripID() gtfsexport.Key {
	m.nextTrip++
	return gtfsexport.Key(fmt.Sprintf("TR_%d", m.nextTrip))
}

// stopID returns the merged stop ID for name, assigning a fresh one the
// first time that exact name is seen (the dedup rule of
// integrate_all_data_fast.py's _load_stops). isNew reports whether this
// call minted a new ID, so the caller only appends the stop row once.
func (m *Merger) stopID(name string) (id gtfsexport.Key, isNew bool) {
	if existing, ok := m.stopIDByName[name]; ok {
		return existing, false
	}
	if m.Cache != nil {
		if existing, ok := m.Cache.Lookup(name); ok {
			m.stopIDByName[name] = existing
			return existing, true
		}
	}

	m.nextStop++
	id = gtfsexport.Key(fmt.Sprintf("ST_%d", m.nextStop))
	m.stopIDByName[name] = id
	if m.Cache != nil {
		_ = m.Cache.Store(name, id)
	}
	return id, true
}

// serviceID returns the merged service ID for a calendar row, collapsing
// rows with identical weekday/date-range content (every category's
// synthetic daily service looks the same) to one shared row.
func (m *Merger) serviceID(s gtfsexport.Service) (id gtfsexport.Key, isNew bool) {
	key := serviceKey{weekdays: s.Weekdays, startDate: s.StartDate, endDate: s.EndDate}
	if existing, ok := m.serviceByKey[key]; ok {
		return existing, false
	}
	m.nextService++
	id = gtfsexport.Key(fmt.Sprintf("SV_%d", m.nextService))
	m.serviceByKey[key] = id
	return id, true
}
