package raqeeb

// ComplianceResult is the outcome of scoring a report against its form.
// Resolved is false when the report's location or form could not be
// resolved; callers must not fold unresolved results into averages.
type ComplianceResult struct {
	Score    float64
	Resolved bool
}

// ComputeCompliance scores a report against the form assigned to its
// location: the sum of awarded item scores over the form's maximum,
// as a percentage. A report with no items, or a form whose maximum is
// zero, scores 0. A nil form yields an unresolved result.
func ComputeCompliance(report *InspectionReport, form *InspectionForm) ComplianceResult {
	if form == nil {
		return ComplianceResult{}
	}
	max := form.MaxScore()
	if max == 0 || len(report.Items) == 0 {
		return ComplianceResult{Resolved: true}
	}
	total := 0
	for _, item := range report.Items {
		total += item.Score
	}
	return ComplianceResult{
		Score:    float64(total) / float64(max) * 100,
		Resolved: true,
	}
}
