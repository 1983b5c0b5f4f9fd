package mock

import (
	"context"

	"github.com/nasserq/raqeeb"
)

// Compile-time interface checks
var (
	_ raqeeb.ZoneService     = (*ZoneService)(nil)
	_ raqeeb.LocationService = (*LocationService)(nil)
	_ raqeeb.FormService     = (*FormService)(nil)
)

// ZoneService is a mock implementation of raqeeb.ZoneService.
type ZoneService struct {
	FindZoneByIDFn func(ctx context.Context, id string) (*raqeeb.Zone, error)
	FindZonesFn    func(ctx context.Context) ([]*raqeeb.Zone, error)
}

func (s *ZoneService) FindZoneByID(ctx context.Context, id string) (*raqeeb.Zone, error) {
	if s.FindZoneByIDFn != nil {
		return s.FindZoneByIDFn(ctx, id)
	}
	return nil, raqeeb.NotFound("Zone not found")
}

func (s *ZoneService) FindZones(ctx context.Context) ([]*raqeeb.Zone, error) {
	if s.FindZonesFn != nil {
		return s.FindZonesFn(ctx)
	}
	return []*raqeeb.Zone{}, nil
}

// LocationService is a mock implementation of raqeeb.LocationService.
type LocationService struct {
	FindLocationByIDFn func(ctx context.Context, id string) (*raqeeb.Location, error)
	FindLocationsFn    func(ctx context.Context, filter raqeeb.LocationFilter) ([]*raqeeb.Location, error)
}

func (s *LocationService) FindLocationByID(ctx context.Context, id string) (*raqeeb.Location, error) {
	if s.FindLocationByIDFn != nil {
		return s.FindLocationByIDFn(ctx, id)
	}
	return nil, raqeeb.NotFound("Location not found")
}

func (s *LocationService) FindLocations(ctx context.Context, filter raqeeb.LocationFilter) ([]*raqeeb.Location, error) {
	if s.FindLocationsFn != nil {
		return s.FindLocationsFn(ctx, filter)
	}
	return []*raqeeb.Location{}, nil
}

// FormService is a mock implementation of raqeeb.FormService.
type FormService struct {
	FindFormByIDFn func(ctx context.Context, id string) (*raqeeb.InspectionForm, error)
	FindFormsFn    func(ctx context.Context) ([]*raqeeb.InspectionForm, error)
}

func (s *FormService) FindFormByID(ctx context.Context, id string) (*raqeeb.InspectionForm, error) {
	if s.FindFormByIDFn != nil {
		return s.FindFormByIDFn(ctx, id)
	}
	return nil, raqeeb.NotFound("Form not found")
}

func (s *FormService) FindForms(ctx context.Context) ([]*raqeeb.InspectionForm, error) {
	if s.FindFormsFn != nil {
		return s.FindFormsFn(ctx)
	}
	return []*raqeeb.InspectionForm{}, nil
}
