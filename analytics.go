package raqeeb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// SnapshotService builds point-in-time snapshots for the analytics
// functions. Implementations must return copies: the snapshot must not
// alias live store state.
type SnapshotService interface {
	BuildSnapshot(ctx context.Context) (*Snapshot, error)
}

// CriticalThreshold is the compliance percentage below which a report is
// flagged as critical.
const CriticalThreshold = 75.0

// Snapshot is a point-in-time view of the entity store that the analytics
// functions operate over. Building a snapshot decouples the derivation
// math from storage; every function below is pure over its snapshot.
type Snapshot struct {
	Reports   []*InspectionReport
	CDRs      []*CDR
	Invoices  []*PenaltyInvoice
	Locations map[string]*Location
	Forms     map[string]*InspectionForm
	Zones     map[string]*Zone
	Users     map[uuid.UUID]*User

	// Now anchors the month-relative calculations.
	Now time.Time
}

// FormForLocation resolves the inspection form assigned to a location.
// Returns nil if either lookup fails.
func (s *Snapshot) FormForLocation(locationID string) *InspectionForm {
	loc, ok := s.Locations[locationID]
	if !ok {
		return nil
	}
	return s.Forms[loc.FormID]
}

// compliance scores a report against its location's form.
func (s *Snapshot) compliance(report *InspectionReport) ComplianceResult {
	return ComputeCompliance(report, s.FormForLocation(report.LocationID))
}

func sameMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

// AverageCompliance returns the mean compliance across submitted reports.
// Draft reports are excluded. A report whose reference data cannot be
// resolved contributes a zero score but still counts in the denominator,
// so totals stay consistent with report counts. Returns 0 when no report
// qualifies.
func AverageCompliance(snap *Snapshot) float64 {
	var sum float64
	var n int
	for _, r := range snap.Reports {
		if r.Status == ReportStatusDraft {
			continue
		}
		sum += snap.compliance(r).Score
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// ComplianceTrend returns the difference between the current calendar
// month's average compliance and the previous month's, anchored on
// snap.Now. A month with no qualifying reports contributes 0.
func ComplianceTrend(snap *Snapshot) float64 {
	curYear, curMonth := snap.Now.Year(), snap.Now.Month()
	prev := snap.Now.AddDate(0, -1, -snap.Now.Day()+1)
	prevYear, prevMonth := prev.Year(), prev.Month()

	var curSum, prevSum float64
	var curN, prevN int
	for _, r := range snap.Reports {
		if r.Status == ReportStatusDraft {
			continue
		}
		res := snap.compliance(r)
		switch {
		case sameMonth(r.Date, curYear, curMonth):
			curSum += res.Score
			curN++
		case sameMonth(r.Date, prevYear, prevMonth):
			prevSum += res.Score
			prevN++
		}
	}

	var cur, last float64
	if curN > 0 {
		cur = curSum / float64(curN)
	}
	if prevN > 0 {
		last = prevSum / float64(prevN)
	}
	return cur - last
}

// InspectorActivity summarizes one inspector's reporting volume and
// all-time quality.
type InspectorActivity struct {
	InspectorID  uuid.UUID  `json:"inspectorId"`
	Name         string     `json:"name"`
	MonthReports int        `json:"monthReports"`
	TotalReports int        `json:"totalReports"`
	AvgScore     float64    `json:"avgScore"`
	LastActive   *time.Time `json:"lastActive"`
}

// InspectorRanking ranks inspectors by reports filed this calendar month,
// breaking ties by all-time report count. Draft reports count: activity
// measures effort, not outcomes. AvgScore is the all-time mean compliance
// of the inspector's reports; LastActive is their most recent report date,
// nil only when an inspector has no reports at all.
func InspectorRanking(snap *Snapshot) []InspectorActivity {
	year, month := snap.Now.Year(), snap.Now.Month()

	type acc struct {
		activity InspectorActivity
		scoreSum float64
	}
	byInspector := make(map[uuid.UUID]*acc)
	var order []uuid.UUID
	for _, r := range snap.Reports {
		a, ok := byInspector[r.InspectorID]
		if !ok {
			a = &acc{activity: InspectorActivity{InspectorID: r.InspectorID}}
			if u, found := snap.Users[r.InspectorID]; found {
				a.activity.Name = u.Name
			}
			byInspector[r.InspectorID] = a
			order = append(order, r.InspectorID)
		}
		a.activity.TotalReports++
		if sameMonth(r.Date, year, month) {
			a.activity.MonthReports++
		}
		a.scoreSum += snap.compliance(r).Score
		if a.activity.LastActive == nil || r.Date.After(*a.activity.LastActive) {
			date := r.Date
			a.activity.LastActive = &date
		}
	}

	ranking := make([]InspectorActivity, 0, len(order))
	for _, id := range order {
		a := byInspector[id]
		a.activity.AvgScore = a.scoreSum / float64(a.activity.TotalReports)
		ranking = append(ranking, a.activity)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].MonthReports != ranking[j].MonthReports {
			return ranking[i].MonthReports > ranking[j].MonthReports
		}
		return ranking[i].TotalReports > ranking[j].TotalReports
	})
	return ranking
}

// LocationAverage summarizes compliance at one location.
type LocationAverage struct {
	LocationID string  `json:"locationId"`
	Name       string  `json:"name"`
	Average    float64 `json:"average"`
	Reports    int     `json:"reports"`
}

// LocationAverages computes the mean compliance per location over
// submitted reports, sorted ascending so the weakest locations lead.
// Unresolved reports count as zero.
func LocationAverages(snap *Snapshot) []LocationAverage {
	type acc struct {
		sum float64
		n   int
	}
	byLocation := make(map[string]*acc)
	var order []string
	for _, r := range snap.Reports {
		if r.Status == ReportStatusDraft {
			continue
		}
		a, ok := byLocation[r.LocationID]
		if !ok {
			a = &acc{}
			byLocation[r.LocationID] = a
			order = append(order, r.LocationID)
		}
		a.sum += snap.compliance(r).Score
		a.n++
	}

	averages := make([]LocationAverage, 0, len(order))
	for _, id := range order {
		a := byLocation[id]
		la := LocationAverage{
			LocationID: id,
			Average:    a.sum / float64(a.n),
			Reports:    a.n,
		}
		if loc, ok := snap.Locations[id]; ok {
			la.Name = loc.Name.EN
		}
		averages = append(averages, la)
	}
	sort.SliceStable(averages, func(i, j int) bool {
		return averages[i].Average < averages[j].Average
	})
	return averages
}

// lowPerformingCount caps the low-performer list on the dashboard.
const lowPerformingCount = 5

// LowPerformingLocations returns the bottom locations by average
// compliance, weakest first. The list is a bottom-N, not a threshold
// filter: even a well-performing facility surfaces its weakest areas.
func LowPerformingLocations(snap *Snapshot) []LocationAverage {
	low := LocationAverages(snap)
	if len(low) > lowPerformingCount {
		low = low[:lowPerformingCount]
	}
	return low
}

// ItemStat summarizes how one evaluation item scores across reports.
// AverageScore is the raw mean; AvgCompliance normalizes by the item's
// attainable points so items with different weights compare.
type ItemStat struct {
	ItemID        string  `json:"itemId"`
	Name          string  `json:"name"`
	MaxScore      int     `json:"maxScore"`
	AverageScore  float64 `json:"averageScore"`
	AvgCompliance float64 `json:"avgCompliance"`
	Samples       int     `json:"samples"`
}

// ItemStatsByTier averages per-item scores over submitted reports at
// locations whose form carries the given risk tier. Items are ordered by
// their position on the form. Report lines that reference no item on the
// form are skipped.
func ItemStatsByTier(snap *Snapshot, tier RiskCategory) []ItemStat {
	type acc struct {
		sum    int
		maxSum int
		n      int
	}
	byItem := make(map[string]*acc)

	var tierForms []*InspectionForm
	for _, r := range snap.Reports {
		if r.Status == ReportStatusDraft {
			continue
		}
		form := snap.FormForLocation(r.LocationID)
		if form == nil || form.RiskTier != tier {
			continue
		}
		found := false
		for _, f := range tierForms {
			if f.ID == form.ID {
				found = true
				break
			}
		}
		if !found {
			tierForms = append(tierForms, form)
		}
		for _, line := range r.Items {
			item := form.Item(line.ItemID)
			if item == nil {
				continue
			}
			a, ok := byItem[line.ItemID]
			if !ok {
				a = &acc{}
				byItem[line.ItemID] = a
			}
			a.sum += line.Score
			a.maxSum += item.MaxScore
			a.n++
		}
	}

	var stats []ItemStat
	for _, form := range tierForms {
		for _, item := range form.Items {
			a, ok := byItem[item.ID]
			if !ok {
				continue
			}
			stat := ItemStat{
				ItemID:       item.ID,
				Name:         item.Name,
				MaxScore:     item.MaxScore,
				AverageScore: float64(a.sum) / float64(a.n),
				Samples:      a.n,
			}
			if a.maxSum > 0 {
				stat.AvgCompliance = float64(a.sum) / float64(a.maxSum) * 100
			}
			stats = append(stats, stat)
		}
	}
	return stats
}

// CriticalReport is a submitted report whose compliance fell below the
// critical threshold.
type CriticalReport struct {
	Report     *InspectionReport `json:"report"`
	Compliance float64           `json:"compliance"`
}

// CriticalReports returns the submitted reports scoring below the
// critical threshold, most recent first. An unresolved report scores zero
// and therefore appears here, which is how a data integrity gap surfaces
// on the dashboard.
func CriticalReports(snap *Snapshot) []CriticalReport {
	var critical []CriticalReport
	for _, r := range snap.Reports {
		if r.Status == ReportStatusDraft {
			continue
		}
		res := snap.compliance(r)
		if res.Score >= CriticalThreshold {
			continue
		}
		critical = append(critical, CriticalReport{Report: r, Compliance: res.Score})
	}
	sort.SliceStable(critical, func(i, j int) bool {
		return critical[i].Report.Date.After(critical[j].Report.Date)
	})
	return critical
}
