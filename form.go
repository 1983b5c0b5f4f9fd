package raqeeb

import "context"

// EvaluationItem is one checklist line on an inspection form. Immutable.
type EvaluationItem struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	MaxScore          int      `json:"maxScore"`
	PredefinedDefects []string `json:"predefinedDefects"`
}

// InspectionForm is a per-risk-tier checklist. Exactly three forms exist
// (high, medium, low risk), statically configured and immutable at runtime.
//
// RiskTier is an explicit field; nothing is inferred from the form's ID.
type InspectionForm struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	RiskTier RiskCategory     `json:"riskTier"`
	Items    []EvaluationItem `json:"items"`
}

// MaxScore returns the maximum achievable total across all items.
func (f *InspectionForm) MaxScore() int {
	total := 0
	for _, item := range f.Items {
		total += item.MaxScore
	}
	return total
}

// Item returns the evaluation item with the given ID, or nil.
func (f *InspectionForm) Item(id string) *EvaluationItem {
	for i := range f.Items {
		if f.Items[i].ID == id {
			return &f.Items[i]
		}
	}
	return nil
}

// FormService provides read access to inspection form reference data.
type FormService interface {
	// FindFormByID retrieves a form by ID.
	// Returns ENOTFOUND if the form does not exist.
	FindFormByID(ctx context.Context, id string) (*InspectionForm, error)

	// FindForms retrieves all forms.
	FindForms(ctx context.Context) ([]*InspectionForm, error)
}
