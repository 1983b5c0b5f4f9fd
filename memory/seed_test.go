package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/refdata"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(Config{
		Clock:     raqeeb.FixedClock{T: testNow},
		RateTable: refdata.RateTable(),
	})
	store.LoadReferenceData(refdata.Zones(), refdata.Locations(), refdata.Forms())
	require.NoError(t, store.Seed(context.Background(), 2025))
	return store
}

func TestSeedRequiresReferenceData(t *testing.T) {
	store := NewStore(Config{Clock: raqeeb.FixedClock{T: testNow}})
	assert.Error(t, store.Seed(context.Background(), 2025))
}

func TestSeedDemoData(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	users := NewUserService(store)
	for _, demo := range DemoUsers() {
		u, err := users.FindUserByUsername(ctx, demo.Username)
		require.NoError(t, err)
		assert.Equal(t, demo.Role, u.Role)
		_, err = users.VerifyPassword(ctx, demo.Username, demo.Password)
		require.NoError(t, err, demo.Username)
	}

	reports, total, err := NewReportService(store).FindReports(ctx, raqeeb.ReportFilter{Limit: 50})
	require.NoError(t, err)
	assert.Greater(t, total, 300)
	assert.Len(t, reports, 50)

	// Every seeded report scores cleanly against its location's form.
	snap, err := NewSnapshotService(store).BuildSnapshot(ctx)
	require.NoError(t, err)
	for _, r := range snap.Reports {
		res := raqeeb.ComputeCompliance(r, snap.FormForLocation(r.LocationID))
		require.True(t, res.Resolved)
		assert.GreaterOrEqual(t, res.Score, 0.0)
		assert.LessOrEqual(t, res.Score, 100.0)
	}

	// Approved penalty CDRs with discrepancies have exactly one invoice.
	invoices := NewInvoiceService(store)
	for _, c := range snap.CDRs {
		if c.ManagerDecision != raqeeb.DecisionPenalty {
			continue
		}
		_, n, err := invoices.FindInvoices(ctx, raqeeb.InvoiceFilter{CDRID: &c.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, n, "CDR %s", c.ReferenceNumber)
	}
}

func TestSeedUsernamesCaseInsensitive(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	// Logins are case-insensitive, so seeded accounts must be reachable
	// regardless of how the caller cases the username.
	users := NewUserService(store)
	for _, demo := range DemoUsers() {
		u, err := users.FindUserByUsername(ctx, strings.ToUpper(demo.Username))
		require.NoError(t, err, demo.Username)
		assert.Equal(t, demo.ID, u.ID)

		_, err = users.VerifyPassword(ctx, strings.ToLower(demo.Username), demo.Password)
		require.NoError(t, err, demo.Username)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a := seededStore(t)
	b := seededStore(t)
	ctx := context.Background()

	reportsA, totalA, err := NewReportService(a).FindReports(ctx, raqeeb.ReportFilter{Limit: 10})
	require.NoError(t, err)
	reportsB, totalB, err := NewReportService(b).FindReports(ctx, raqeeb.ReportFilter{Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, totalA, totalB)
	for i := range reportsA {
		assert.Equal(t, reportsA[i].ID, reportsB[i].ID)
		assert.Equal(t, reportsA[i].ReferenceNumber, reportsB[i].ReferenceNumber)
	}
}
