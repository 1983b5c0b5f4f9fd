package raqeeb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deductedInvoice(generated time.Time, items ...PenaltyItem) *PenaltyInvoice {
	var total float64
	for _, item := range items {
		total += item.Amount
	}
	return &PenaltyInvoice{
		ID:          uuid.New(),
		CDRID:       uuid.New(),
		GeneratedAt: generated,
		Status:      PenaltyStatusDeducted,
		Items:       items,
		TotalAmount: total,
	}
}

func TestAggregateInvoicesDedup(t *testing.T) {
	may := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	invA := deductedInvoice(may,
		PenaltyItem{Description: "Expired items", Category: CategoryMaterial, Amount: 300})
	invB := deductedInvoice(may.AddDate(0, 0, 7),
		PenaltyItem{Description: "Expired items", Category: CategoryMaterial, Amount: 300},
		PenaltyItem{Description: "Shortage of staff", Category: CategoryManpower, Amount: 1000})

	agg := AggregateInvoices(time.May, 2026, []*PenaltyInvoice{invA, invB})
	require.Len(t, agg.Items, 2)
	assert.Equal(t, 2, agg.TotalInvoices)

	expired := agg.Items[0]
	assert.Equal(t, "Expired items", expired.ViolationName)
	assert.Equal(t, StatementItemApproved, expired.Status)
	assert.Equal(t, 2, expired.OccurrenceCount)
	assert.InDelta(t, 300.0, expired.PenaltyPerOccurrence, 0.001)
	assert.InDelta(t, 600.0, expired.Total, 0.001)
	assert.Len(t, expired.LinkedCDRIDs, 2)

	assert.Equal(t, "Shortage of staff", agg.Items[1].ViolationName)
	assert.Equal(t, 3, agg.TotalViolations)
	assert.InDelta(t, 1600.0, agg.TotalAmount, 0.001)
}

func TestAggregateInvoicesDistinctRatesStaySeparate(t *testing.T) {
	may := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	inv := deductedInvoice(may,
		PenaltyItem{Description: "Expired items", Category: CategoryMaterial, Amount: 300},
		PenaltyItem{Description: "Expired items", Category: CategoryMaterial, Amount: 450})

	agg := AggregateInvoices(time.May, 2026, []*PenaltyInvoice{inv})
	require.Len(t, agg.Items, 2)
	assert.InDelta(t, 300.0, agg.Items[0].PenaltyPerOccurrence, 0.001)
	assert.InDelta(t, 450.0, agg.Items[1].PenaltyPerOccurrence, 0.001)
	assert.Equal(t, 1, agg.TotalInvoices)
}

func TestAggregateInvoicesFiltersPeriodAndStatus(t *testing.T) {
	may := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	april := deductedInvoice(may.AddDate(0, -1, 0),
		PenaltyItem{Description: "Expired items", Category: CategoryMaterial, Amount: 300})
	pending := deductedInvoice(may,
		PenaltyItem{Description: "Shortage of staff", Category: CategoryManpower, Amount: 1000})
	pending.Status = PenaltyStatusPending
	counted := deductedInvoice(may,
		PenaltyItem{Description: "No MSDS on site", Category: CategoryMaterial, Amount: 4000})

	agg := AggregateInvoices(time.May, 2026, []*PenaltyInvoice{april, pending, counted})
	require.Len(t, agg.Items, 1)
	assert.Equal(t, "No MSDS on site", agg.Items[0].ViolationName)
	assert.Equal(t, 1, agg.TotalInvoices)
}

func TestAggregateInvoicesEmpty(t *testing.T) {
	agg := AggregateInvoices(time.May, 2026, nil)
	assert.Empty(t, agg.Items)
	assert.Zero(t, agg.TotalAmount)
	assert.Zero(t, agg.TotalViolations)
	assert.Zero(t, agg.TotalInvoices)
}

func TestRecalculateTotals(t *testing.T) {
	st := &GlobalPenaltyStatement{
		Month: time.May,
		Year:  2026,
		Items: []StatementItem{
			{ID: uuid.New(), ViolationName: "Expired items", PenaltyPerOccurrence: 300, OccurrenceCount: 2, Status: StatementItemApproved},
			{ID: uuid.New(), ViolationName: "Shortage of staff", PenaltyPerOccurrence: 1000, OccurrenceCount: 1, Status: StatementItemPending},
		},
	}

	RecalculateTotals(st)
	assert.Equal(t, 3, st.TotalViolations)
	assert.InDelta(t, 1600.0, st.TotalAmount, 0.001)
}

func TestRecalculateTotalsRejectedRowsRetained(t *testing.T) {
	st := &GlobalPenaltyStatement{
		Items: []StatementItem{
			{ID: uuid.New(), ViolationName: "Expired items", PenaltyPerOccurrence: 300, OccurrenceCount: 2, Status: StatementItemApproved},
			{ID: uuid.New(), ViolationName: "Uncooperative staff", PenaltyPerOccurrence: 500, OccurrenceCount: 3, Status: StatementItemRejected},
		},
	}

	RecalculateTotals(st)

	// Rejected rows stay on the statement with a zeroed total and do not
	// count toward the violation tally.
	require.Len(t, st.Items, 2)
	assert.Equal(t, 2, st.TotalViolations)
	assert.InDelta(t, 600.0, st.TotalAmount, 0.001)
	assert.Zero(t, st.Items[1].Total)
}

func TestRecalculateTotalsManualRowsParticipate(t *testing.T) {
	st := &GlobalPenaltyStatement{
		Items: []StatementItem{
			{ID: uuid.New(), ViolationName: "Expired items", PenaltyPerOccurrence: 300, OccurrenceCount: 1, Status: StatementItemApproved},
			{ID: uuid.New(), ViolationName: "Negligence during night shift", PenaltyPerOccurrence: 750, OccurrenceCount: 2, Status: StatementItemApproved, Manual: true},
		},
	}

	RecalculateTotals(st)
	assert.Equal(t, 3, st.TotalViolations)
	assert.InDelta(t, 1800.0, st.TotalAmount, 0.001)
}

func TestRecalculateTotalsIdempotent(t *testing.T) {
	st := &GlobalPenaltyStatement{
		Items: []StatementItem{
			{ID: uuid.New(), ViolationName: "Expired items", PenaltyPerOccurrence: 300, OccurrenceCount: 2, Status: StatementItemApproved},
			{ID: uuid.New(), ViolationName: "Uncooperative staff", PenaltyPerOccurrence: 500, OccurrenceCount: 1, Status: StatementItemRejected},
		},
	}

	RecalculateTotals(st)
	first := *st
	RecalculateTotals(st)
	assert.Equal(t, first.TotalViolations, st.TotalViolations)
	assert.InDelta(t, first.TotalAmount, st.TotalAmount, 0.001)
}
