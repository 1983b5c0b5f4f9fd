package raqeeb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow       = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	inspectorAmal = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	inspectorNora = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func testSnapshot() *Snapshot {
	form := testForm() // max score 20
	return &Snapshot{
		Forms: map[string]*InspectionForm{form.ID: form},
		Zones: map[string]*Zone{
			"zone-a": {ID: "zone-a", Name: "Critical Care", RiskCategory: RiskHigh},
			"zone-b": {ID: "zone-b", Name: "Outpatient", RiskCategory: RiskLow},
		},
		Locations: map[string]*Location{
			"icu-1": {ID: "icu-1", Name: LocalizedName{EN: "ICU 1"}, ZoneID: "zone-a", FormID: form.ID},
			"opd-1": {ID: "opd-1", Name: LocalizedName{EN: "OPD Clinic 1"}, ZoneID: "zone-b", FormID: form.ID},
		},
		Users: map[uuid.UUID]*User{
			inspectorAmal: {ID: inspectorAmal, Name: "Amal Hassan"},
			inspectorNora: {ID: inspectorNora, Name: "Nora Saleh"},
		},
		Now: testNow,
	}
}

func submittedReport(inspector uuid.UUID, locationID string, date time.Time, scores ...int) *InspectionReport {
	itemIDs := []string{"floors", "surfaces", "waste"}
	items := make([]InspectionResultItem, len(scores))
	for i, s := range scores {
		items[i] = InspectionResultItem{ItemID: itemIDs[i], Score: s}
	}
	return &InspectionReport{
		ID:          uuid.New(),
		InspectorID: inspector,
		LocationID:  locationID,
		Date:        date,
		Status:      ReportStatusSubmitted,
		Items:       items,
	}
}

func TestAverageCompliance(t *testing.T) {
	snap := testSnapshot()
	snap.Reports = []*InspectionReport{
		submittedReport(inspectorAmal, "icu-1", testNow, 10, 6, 4), // 100%
		submittedReport(inspectorNora, "opd-1", testNow, 5, 3, 2),  // 50%
	}

	assert.InDelta(t, 75.0, AverageCompliance(snap), 0.001)
}

func TestAverageComplianceEmpty(t *testing.T) {
	assert.Zero(t, AverageCompliance(testSnapshot()))
}

func TestAverageComplianceDraftsAndUnresolved(t *testing.T) {
	snap := testSnapshot()
	draft := submittedReport(inspectorAmal, "icu-1", testNow, 0, 0, 0)
	draft.Status = ReportStatusDraft
	orphan := submittedReport(inspectorNora, "no-such-location", testNow, 10, 6, 4)
	snap.Reports = []*InspectionReport{
		draft,
		orphan,
		submittedReport(inspectorAmal, "icu-1", testNow, 10, 6, 4),
	}

	// The draft is skipped entirely; the report at an unknown location
	// scores zero but stays in the denominator.
	assert.InDelta(t, 50.0, AverageCompliance(snap), 0.001)
}

func TestComplianceTrend(t *testing.T) {
	snap := testSnapshot()
	lastMonth := testNow.AddDate(0, -1, 0)
	snap.Reports = []*InspectionReport{
		submittedReport(inspectorAmal, "icu-1", testNow, 10, 6, 4),    // June, 100%
		submittedReport(inspectorNora, "icu-1", lastMonth, 8, 6, 2),   // May, 80%
		submittedReport(inspectorNora, "opd-1", lastMonth, 4, 3, 1),   // May, 40%
	}

	// June average 100, May average 60.
	assert.InDelta(t, 40.0, ComplianceTrend(snap), 0.001)
}

func TestComplianceTrendNoPreviousMonth(t *testing.T) {
	snap := testSnapshot()
	snap.Reports = []*InspectionReport{
		submittedReport(inspectorAmal, "icu-1", testNow, 10, 6, 4),
	}

	assert.InDelta(t, 100.0, ComplianceTrend(snap), 0.001)
}

func TestInspectorRanking(t *testing.T) {
	snap := testSnapshot()
	lastMonth := testNow.AddDate(0, -1, 0)
	snap.Reports = []*InspectionReport{
		submittedReport(inspectorAmal, "icu-1", testNow, 10, 6, 4),
		submittedReport(inspectorNora, "opd-1", testNow, 8, 5, 3),
		submittedReport(inspectorNora, "opd-1", lastMonth, 8, 5, 3),
	}

	ranking := InspectorRanking(snap)
	require.Len(t, ranking, 2)

	// Same month count; Nora leads on all-time total.
	assert.Equal(t, inspectorNora, ranking[0].InspectorID)
	assert.Equal(t, "Nora Saleh", ranking[0].Name)
	assert.Equal(t, 1, ranking[0].MonthReports)
	assert.Equal(t, 2, ranking[0].TotalReports)
	assert.InDelta(t, 80.0, ranking[0].AvgScore, 0.001)
	require.NotNil(t, ranking[0].LastActive)
	assert.True(t, ranking[0].LastActive.Equal(testNow))

	assert.Equal(t, inspectorAmal, ranking[1].InspectorID)
	assert.InDelta(t, 100.0, ranking[1].AvgScore, 0.001)
	require.NotNil(t, ranking[1].LastActive)
	assert.True(t, ranking[1].LastActive.Equal(testNow))
}

func TestLocationAveragesWeakestFirst(t *testing.T) {
	snap := testSnapshot()
	snap.Reports = []*InspectionReport{
		submittedReport(inspectorAmal, "icu-1", testNow, 10, 6, 4),
		submittedReport(inspectorNora, "opd-1", testNow, 5, 3, 2),
		submittedReport(inspectorNora, "opd-1", testNow, 7, 4, 3),
	}

	averages := LocationAverages(snap)
	require.Len(t, averages, 2)
	assert.Equal(t, "opd-1", averages[0].LocationID)
	assert.InDelta(t, 60.0, averages[0].Average, 0.001)
	assert.Equal(t, 2, averages[0].Reports)
	assert.Equal(t, "icu-1", averages[1].LocationID)
}

func TestLowPerformingLocations(t *testing.T) {
	snap := testSnapshot()
	snap.Reports = []*InspectionReport{
		submittedReport(inspectorAmal, "icu-1", testNow, 10, 6, 4), // 100%
		submittedReport(inspectorNora, "opd-1", testNow, 5, 3, 2),  // 50%
	}

	// Bottom-N, not a threshold: even locations above the critical line
	// appear, weakest first.
	low := LowPerformingLocations(snap)
	require.Len(t, low, 2)
	assert.Equal(t, "opd-1", low[0].LocationID)
	assert.Equal(t, "icu-1", low[1].LocationID)
}

func TestLowPerformingLocationsCapped(t *testing.T) {
	snap := testSnapshot()
	for i := 0; i < 7; i++ {
		id := string(rune('a'+i)) + "-ward"
		snap.Locations[id] = &Location{ID: id, ZoneID: "zone-a", FormID: "form-test"}
		snap.Reports = append(snap.Reports,
			submittedReport(inspectorAmal, id, testNow, 3+i, 3, 2))
	}

	low := LowPerformingLocations(snap)
	require.Len(t, low, 5)
	assert.Equal(t, "a-ward", low[0].LocationID)
	for i := 1; i < len(low); i++ {
		assert.LessOrEqual(t, low[i-1].Average, low[i].Average)
	}
}

func TestItemStatsByTier(t *testing.T) {
	snap := testSnapshot()
	snap.Reports = []*InspectionReport{
		submittedReport(inspectorAmal, "icu-1", testNow, 10, 6, 4),
		submittedReport(inspectorNora, "icu-1", testNow, 6, 4, 2),
	}

	stats := ItemStatsByTier(snap, RiskMedium)
	require.Len(t, stats, 3)
	assert.Equal(t, "floors", stats[0].ItemID)
	assert.InDelta(t, 8.0, stats[0].AverageScore, 0.001)
	assert.InDelta(t, 80.0, stats[0].AvgCompliance, 0.001) // 16 of 20 points
	assert.Equal(t, 2, stats[0].Samples)
	assert.Equal(t, 10, stats[0].MaxScore)

	// waste: 4 + 2 of 8 attainable points.
	assert.Equal(t, "waste", stats[2].ItemID)
	assert.InDelta(t, 75.0, stats[2].AvgCompliance, 0.001)

	assert.Empty(t, ItemStatsByTier(snap, RiskHigh))
}

func TestCriticalReports(t *testing.T) {
	snap := testSnapshot()
	older := submittedReport(inspectorAmal, "icu-1", testNow.AddDate(0, 0, -3), 5, 3, 2) // 50%
	newer := submittedReport(inspectorNora, "opd-1", testNow, 7, 4, 3)                   // 70%
	healthy := submittedReport(inspectorAmal, "icu-1", testNow, 10, 6, 4)                // 100%
	snap.Reports = []*InspectionReport{older, healthy, newer}

	critical := CriticalReports(snap)
	require.Len(t, critical, 2)
	assert.Equal(t, newer.ID, critical[0].Report.ID)
	assert.InDelta(t, 70.0, critical[0].Compliance, 0.001)
	assert.Equal(t, older.ID, critical[1].Report.ID)
}

func TestCriticalReportsExcludesDrafts(t *testing.T) {
	snap := testSnapshot()
	draft := submittedReport(inspectorAmal, "icu-1", testNow, 1, 1, 1)
	draft.Status = ReportStatusDraft
	snap.Reports = []*InspectionReport{draft}

	assert.Empty(t, CriticalReports(snap))
}

func TestCriticalReportsIncludesUnresolved(t *testing.T) {
	snap := testSnapshot()
	orphan := submittedReport(inspectorNora, "no-such-location", testNow, 10, 6, 4)
	snap.Reports = []*InspectionReport{orphan}

	// A report that cannot be scored surfaces as critical at zero, so
	// broken reference data shows up on the dashboard instead of
	// silently vanishing.
	critical := CriticalReports(snap)
	require.Len(t, critical, 1)
	assert.Equal(t, orphan.ID, critical[0].Report.ID)
	assert.Zero(t, critical[0].Compliance)
}

func TestAnalyticsPureOverSnapshot(t *testing.T) {
	snap := testSnapshot()
	lastMonth := testNow.AddDate(0, -1, 0)
	snap.Reports = []*InspectionReport{
		submittedReport(inspectorAmal, "icu-1", testNow, 10, 6, 4),
		submittedReport(inspectorNora, "opd-1", testNow, 5, 3, 2),
		submittedReport(inspectorNora, "opd-1", lastMonth, 8, 5, 3),
	}

	before := make([]InspectionReport, len(snap.Reports))
	for i, r := range snap.Reports {
		before[i] = *r
	}

	avg1, avg2 := AverageCompliance(snap), AverageCompliance(snap)
	rank1, rank2 := InspectorRanking(snap), InspectorRanking(snap)
	hot1, hot2 := RiskHotspots(snap), RiskHotspots(snap)
	crit1, crit2 := CriticalReports(snap), CriticalReports(snap)

	// Two passes over the same snapshot agree exactly.
	assert.Equal(t, avg1, avg2)
	assert.Equal(t, rank1, rank2)
	assert.Equal(t, hot1, hot2)
	assert.Equal(t, crit1, crit2)

	// And neither pass touched the snapshot's reports.
	for i, r := range snap.Reports {
		assert.Equal(t, before[i], *r)
	}
}
