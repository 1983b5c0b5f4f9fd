package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasserq/raqeeb"
)

// seedDeductedInvoices approves two penalty CDRs and deducts their
// invoices so the June 2026 period has aggregatable data.
func seedDeductedInvoices(t *testing.T, store *Store) {
	t.Helper()
	cdrs := NewCDRService(store)
	invoices := NewInvoiceService(store)
	ctx := context.Background()

	inspector := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)
	for i := 0; i < 2; i++ {
		cdr := submitTestCDR(t, store, inspector.ID)
		_, _, err := cdrs.ApproveCDR(ctx, cdr.ID, raqeeb.CDRApproval{Decision: raqeeb.DecisionPenalty})
		require.NoError(t, err)
	}

	list, _, err := invoices.FindInvoices(ctx, raqeeb.InvoiceFilter{})
	require.NoError(t, err)
	for _, inv := range list {
		_, err := invoices.ApproveDeduction(ctx, inv.ID, "Manager Ahmed")
		require.NoError(t, err)
	}
}

func TestGenerateStatement(t *testing.T) {
	store := newTestStore(t)
	seedDeductedInvoices(t, store)
	statements := NewStatementService(store)
	ctx := context.Background()

	st, err := statements.GenerateStatement(ctx, time.June, 2026, "Al-Amal Facilities Co.")
	require.NoError(t, err)
	assert.Equal(t, "GPS-2026-06-001", st.ReferenceNumber)
	assert.Equal(t, raqeeb.StatementStatusDraft, st.Status)
	assert.Equal(t, 2, st.TotalInvoices)

	// Two CDRs each charged Expired items (300) and Shortage of staff
	// (1000): two rows with occurrenceCount 2.
	require.Len(t, st.Items, 2)
	assert.Equal(t, "Expired items", st.Items[0].ViolationName)
	assert.Equal(t, 2, st.Items[0].OccurrenceCount)
	assert.InDelta(t, 600.0, st.Items[0].Total, 0.001)
	assert.Equal(t, 4, st.TotalViolations)
	assert.InDelta(t, 2600.0, st.TotalAmount, 0.001)
}

func TestGenerateStatementUniquePerPeriod(t *testing.T) {
	store := newTestStore(t)
	statements := NewStatementService(store)
	ctx := context.Background()

	_, err := statements.GenerateStatement(ctx, time.June, 2026, "Al-Amal Facilities Co.")
	require.NoError(t, err)

	_, err = statements.GenerateStatement(ctx, time.June, 2026, "Al-Amal Facilities Co.")
	assert.Equal(t, raqeeb.ECONFLICT, raqeeb.ErrorCode(err))

	// A different period is fine.
	_, err = statements.GenerateStatement(ctx, time.July, 2026, "Al-Amal Facilities Co.")
	require.NoError(t, err)
}

func TestStatementRefreshDiscardsManualEdits(t *testing.T) {
	store := newTestStore(t)
	seedDeductedInvoices(t, store)
	statements := NewStatementService(store)
	ctx := context.Background()

	st, err := statements.GenerateStatement(ctx, time.June, 2026, "Al-Amal Facilities Co.")
	require.NoError(t, err)

	st, err = statements.AddManualItem(ctx, st.ID, raqeeb.StatementItem{
		ViolationName:        "Negligence during night shift",
		Category:             raqeeb.CategoryManpower,
		OccurrenceCount:      1,
		PenaltyPerOccurrence: 750,
	})
	require.NoError(t, err)
	require.Len(t, st.Items, 3)

	preview, err := statements.PreviewRefresh(ctx, st.ID)
	require.NoError(t, err)
	assert.Len(t, preview.Items, 2)

	// Preview does not mutate the statement.
	current, err := statements.FindStatementByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Len(t, current.Items, 3)

	refreshed, err := statements.CommitRefresh(ctx, st.ID)
	require.NoError(t, err)
	assert.Len(t, refreshed.Items, 2)
}

func TestStatementItemRejectionAndTotals(t *testing.T) {
	store := newTestStore(t)
	seedDeductedInvoices(t, store)
	statements := NewStatementService(store)
	ctx := context.Background()

	st, err := statements.GenerateStatement(ctx, time.June, 2026, "Al-Amal Facilities Co.")
	require.NoError(t, err)
	require.Len(t, st.Items, 2)

	rejected := raqeeb.StatementItemRejected
	st, err = statements.UpdateItem(ctx, st.ID, st.Items[0].ID, raqeeb.StatementItemUpdate{Status: &rejected})
	require.NoError(t, err)

	// The rejected Expired items row (2 x 300) is retained but zeroed.
	require.Len(t, st.Items, 2)
	assert.Zero(t, st.Items[0].Total)
	assert.Equal(t, 2, st.TotalViolations)
	assert.InDelta(t, 2000.0, st.TotalAmount, 0.001)
}

func TestStatementApprovalTerminal(t *testing.T) {
	store := newTestStore(t)
	seedDeductedInvoices(t, store)
	statements := NewStatementService(store)
	ctx := context.Background()

	supervisor := createUser(t, store, "Manager Ahmed", "manager", raqeeb.RoleSupervisor)

	st, err := statements.GenerateStatement(ctx, time.June, 2026, "Al-Amal Facilities Co.")
	require.NoError(t, err)

	approved, err := statements.ApproveStatement(ctx, st.ID, supervisor.ID)
	require.NoError(t, err)
	assert.Equal(t, raqeeb.StatementStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, supervisor.ID, *approved.ApprovedBy)

	_, err = statements.ApproveStatement(ctx, st.ID, supervisor.ID)
	assert.Equal(t, raqeeb.ECONFLICT, raqeeb.ErrorCode(err))

	_, err = statements.CommitRefresh(ctx, st.ID)
	assert.Equal(t, raqeeb.EINVALID, raqeeb.ErrorCode(err))

	pending := raqeeb.StatementItemPending
	_, err = statements.UpdateItem(ctx, st.ID, approved.Items[0].ID, raqeeb.StatementItemUpdate{Status: &pending})
	assert.Equal(t, raqeeb.EINVALID, raqeeb.ErrorCode(err))
}
