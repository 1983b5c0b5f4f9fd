package memory

import (
	"context"
	"sort"

	"github.com/nasserq/raqeeb"
)

// ZoneService implements raqeeb.ZoneService over the static zone set.
type ZoneService struct {
	store *Store
}

// NewZoneService returns a new instance of ZoneService.
func NewZoneService(store *Store) *ZoneService {
	return &ZoneService{store: store}
}

var _ raqeeb.ZoneService = (*ZoneService)(nil)

func (s *ZoneService) FindZoneByID(ctx context.Context, id string) (*raqeeb.Zone, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	z, ok := s.store.zones[id]
	if !ok {
		return nil, raqeeb.NotFound("zone %q not found", id)
	}
	return copyZone(z), nil
}

func (s *ZoneService) FindZones(ctx context.Context) ([]*raqeeb.Zone, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	zones := make([]*raqeeb.Zone, 0, len(s.store.zones))
	for _, z := range s.store.zones {
		zones = append(zones, copyZone(z))
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].ID < zones[j].ID })
	return zones, nil
}

// LocationService implements raqeeb.LocationService over the location
// roster.
type LocationService struct {
	store *Store
}

// NewLocationService returns a new instance of LocationService.
func NewLocationService(store *Store) *LocationService {
	return &LocationService{store: store}
}

var _ raqeeb.LocationService = (*LocationService)(nil)

func (s *LocationService) FindLocationByID(ctx context.Context, id string) (*raqeeb.Location, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	l, ok := s.store.locations[id]
	if !ok {
		return nil, raqeeb.NotFound("location %q not found", id)
	}
	return copyLocation(l), nil
}

func (s *LocationService) FindLocations(ctx context.Context, filter raqeeb.LocationFilter) ([]*raqeeb.Location, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var locations []*raqeeb.Location
	for _, l := range s.store.locations {
		if filter.ZoneID != nil && l.ZoneID != *filter.ZoneID {
			continue
		}
		if filter.FormID != nil && l.FormID != *filter.FormID {
			continue
		}
		locations = append(locations, copyLocation(l))
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].ID < locations[j].ID })
	return locations, nil
}

// FormService implements raqeeb.FormService over the checklist set.
type FormService struct {
	store *Store
}

// NewFormService returns a new instance of FormService.
func NewFormService(store *Store) *FormService {
	return &FormService{store: store}
}

var _ raqeeb.FormService = (*FormService)(nil)

func (s *FormService) FindFormByID(ctx context.Context, id string) (*raqeeb.InspectionForm, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	f, ok := s.store.forms[id]
	if !ok {
		return nil, raqeeb.NotFound("form %q not found", id)
	}
	return copyForm(f), nil
}

func (s *FormService) FindForms(ctx context.Context) ([]*raqeeb.InspectionForm, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	forms := make([]*raqeeb.InspectionForm, 0, len(s.store.forms))
	for _, f := range s.store.forms {
		forms = append(forms, copyForm(f))
	}
	sort.Slice(forms, func(i, j int) bool { return forms[i].ID < forms[j].ID })
	return forms, nil
}
