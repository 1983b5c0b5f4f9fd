package raqeeb

import "context"

// Zone groups locations by infection-control risk. Zones are static
// reference data loaded at startup and never mutated.
type Zone struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	RiskCategory RiskCategory `json:"riskCategory"`
}

// RiskCategory classifies zones and inspection forms by risk.
type RiskCategory string

const (
	RiskHigh   RiskCategory = "High"
	RiskMedium RiskCategory = "Medium"
	RiskLow    RiskCategory = "Low"
)

// Multiplier returns the weighting applied to a location's base risk score
// when predicting hotspots.
func (c RiskCategory) Multiplier() float64 {
	switch c {
	case RiskHigh:
		return 1.5
	case RiskMedium:
		return 1.2
	default:
		return 1.0
	}
}

// ZoneService provides read access to zone reference data.
type ZoneService interface {
	// FindZoneByID retrieves a zone by ID.
	// Returns ENOTFOUND if the zone does not exist.
	FindZoneByID(ctx context.Context, id string) (*Zone, error)

	// FindZones retrieves all zones.
	FindZones(ctx context.Context) ([]*Zone, error)
}
