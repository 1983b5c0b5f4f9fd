package raqeeb

import "context"

// LocalizedName carries the English and Arabic display names of a location.
// The derivation layer never localizes; callers pick the variant they need.
type LocalizedName struct {
	EN string `json:"en"`
	AR string `json:"ar"`
}

// Location is a physical area of the facility. Each location belongs to
// exactly one zone and is inspected with exactly one form. Static reference
// data.
type Location struct {
	ID     string        `json:"id"`
	Name   LocalizedName `json:"name"`
	ZoneID string        `json:"zoneId"`
	FormID string        `json:"formId"`
}

// LocationService provides read access to location reference data.
type LocationService interface {
	// FindLocationByID retrieves a location by ID.
	// Returns ENOTFOUND if the location does not exist.
	FindLocationByID(ctx context.Context, id string) (*Location, error)

	// FindLocations retrieves locations matching the filter criteria.
	FindLocations(ctx context.Context, filter LocationFilter) ([]*Location, error)
}

// LocationFilter defines criteria for filtering locations.
type LocationFilter struct {
	ZoneID *string
	FormID *string
}
