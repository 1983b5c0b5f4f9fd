package refdata

import (
	"github.com/nasserq/raqeeb"
)

// Discrepancy option lists offered on the CDR form, grouped by category.
var (
	manpowerOptions = []string{
		"Not aware of EVS mission",
		"Poor communicator / non-English-speaking staff",
		"Uncooperative staff",
		"Unauthorized staff / No ID badge",
		"Personal hygiene",
		"Not approved uniform / No uniform",
		"Untrained staff / Not aware of chemical dilution",
		"Shortage of staff",
	}
	materialOptions = []string{
		"Using unauthorized supplies",
		"Expired items",
		"Shortage of supplies",
		"No MSDS on site",
		"Not maintaining minimum/maximum stock",
	}
	equipmentOptions = []string{
		"Equipment not clean",
		"Unauthorized / untagged equipment",
		"Improper equipment handling",
		"Default of equipment",
		"No scheduled maintenance",
	}
	onSpotActionOptions = []string{
		"Informing supervisor",
		"Stopped procedure",
		"Highlighted policy",
	}
	actionPlanOptions = []string{
		"Root cause analysis",
		"Process review",
		"Implement",
		"Involve all stakeholders",
	}
)

// ManpowerOptions returns the manpower discrepancy choices.
func ManpowerOptions() []string { return clone(manpowerOptions) }

// MaterialOptions returns the material discrepancy choices.
func MaterialOptions() []string { return clone(materialOptions) }

// EquipmentOptions returns the equipment discrepancy choices.
func EquipmentOptions() []string { return clone(equipmentOptions) }

// OnSpotActionOptions returns the on-spot action choices.
func OnSpotActionOptions() []string { return clone(onSpotActionOptions) }

// ActionPlanOptions returns the action plan choices.
func ActionPlanOptions() []string { return clone(actionPlanOptions) }

func clone(src []string) []string {
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// RateTable returns the contractual penalty amounts per violation type.
// Amounts are in SAR per occurrence; unlisted violations charge the
// default rate.
func RateTable() raqeeb.PenaltyRateTable {
	return raqeeb.PenaltyRateTable{
		Rates: map[string]float64{
			"Not aware of EVS mission":                         1000,
			"Uncooperative staff":                              500,
			"Poor communicator / non-English-speaking staff":   1000,
			"Unauthorized staff / No ID badge":                 3000,
			"Not approved uniform / No uniform":                1500,
			"Shortage of staff":                                1000,
			"Untrained staff / Not aware of chemical dilution": 2000,
			"Personal hygiene":                                 1500,

			"Using unauthorized supplies":           2500,
			"Expired items":                         300,
			"Shortage of supplies":                  800,
			"No MSDS on site":                       4000,
			"Not maintaining minimum/maximum stock": 1000,

			"Equipment not clean":               1500,
			"Unauthorized / untagged equipment": 4000,
			"Improper equipment handling":       1000,
			"Default of equipment":              2000,
			"No scheduled maintenance":          3000,
		},
		DefaultRate: 500,
	}
}
