// Package refdata holds the static reference data the application runs
// on: zones, inspection forms, the facility location roster, discrepancy
// option lists, and the contractual penalty rate table. The data is
// fixed per contract and loaded into the entity store at startup.
package refdata

import (
	"github.com/nasserq/raqeeb"
)

// Zones returns the three facility risk zones.
func Zones() []*raqeeb.Zone {
	return []*raqeeb.Zone{
		{ID: "zone_high", Name: "Critical Areas", RiskCategory: raqeeb.RiskHigh},
		{ID: "zone_medium", Name: "Medium Risk Areas", RiskCategory: raqeeb.RiskMedium},
		{ID: "zone_low", Name: "General Areas", RiskCategory: raqeeb.RiskLow},
	}
}

// Defect options selectable on any checklist line.
var predefinedDefects = []string{
	"Dust accumulation",
	"Stains",
	"Rust",
	"Needs cleaning",
	"Needs maintenance",
}

// DefectOptions returns the defect labels selectable on a checklist line.
func DefectOptions() []string {
	out := make([]string, len(predefinedDefects))
	copy(out, predefinedDefects)
	return out
}
