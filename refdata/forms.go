package refdata

import (
	"strconv"

	"github.com/nasserq/raqeeb"
)

// Form identifiers.
const (
	FormHighRisk   = "form1"
	FormMediumRisk = "form2"
	FormLowRisk    = "form3"
)

func items(prefix string, names []string, maxScores []int) []raqeeb.EvaluationItem {
	out := make([]raqeeb.EvaluationItem, len(names))
	for i := range names {
		out[i] = raqeeb.EvaluationItem{
			ID:                prefix + "_item_" + strconv.Itoa(i+1),
			Name:              names[i],
			MaxScore:          maxScores[i],
			PredefinedDefects: DefectOptions(),
		}
	}
	return out
}

// Forms returns the three inspection checklists, one per risk tier.
// Item weights sum to the form's maximum score and are fixed per
// contract.
func Forms() []*raqeeb.InspectionForm {
	return []*raqeeb.InspectionForm{
		{
			ID:       FormHighRisk,
			Name:     "High-Risk Area Inspection Form",
			RiskTier: raqeeb.RiskHigh,
			Items: items("hr", []string{
				"Floor cleaning and disinfection",
				"Walls, doors and partitions",
				"Patient bed area and furniture",
				"High-touch surface disinfection",
				"Toilets and sluice rooms",
				"Air vents and ceiling fixtures",
				"Medical waste segregation",
				"Sharps containers condition",
				"Isolation room terminal cleaning",
				"Hand hygiene stations stocked",
				"Curtains and screens",
				"Window glass and frames",
				"Cleaning trolley condition",
				"Chemical labeling and dilution",
				"Staff attendance at station",
			}, []int{6, 6, 12, 12, 6, 5, 6, 7, 10, 7, 5, 4, 5, 5, 4}),
		},
		{
			ID:       FormMediumRisk,
			Name:     "Medium-Risk Area Inspection Form",
			RiskTier: raqeeb.RiskMedium,
			Items: items("mr", []string{
				"Entrance and reception area",
				"Floor cleaning",
				"Walls and doors",
				"Furniture and fittings",
				"Toilets and washrooms",
				"High-touch surfaces",
				"Air vents and ceilings",
				"Waste collection and removal",
				"Waste room condition",
				"Corridors and stairwells",
				"Office and work areas",
				"Pantry and service rooms",
				"Window glass and frames",
				"Cleaning equipment storage",
				"Consumables stocked",
				"Staff presence and grooming",
			}, []int{3, 6, 6, 4, 10, 7, 5, 6, 6, 10, 9, 7, 5, 4, 5, 4}),
		},
		{
			ID:       FormLowRisk,
			Name:     "Low-Risk Area Inspection Form",
			RiskTier: raqeeb.RiskLow,
			Items: items("lr", []string{
				"Entrance and lobby",
				"Floor sweeping and mopping",
				"Walls and doors",
				"Furniture and seating",
				"Toilets and washrooms",
				"Waste bins emptied",
				"External litter picking",
				"Corridors and stairwells",
				"Parking and walkways",
				"Landscaping and planters",
				"Window glass and frames",
				"Signage and notice boards",
				"Prayer area cleanliness",
				"Storage room order",
				"Staff presence",
			}, []int{6, 10, 8, 4, 10, 7, 5, 7, 7, 6, 6, 5, 10, 5, 4}),
		},
	}
}
