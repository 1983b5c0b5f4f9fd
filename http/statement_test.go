package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/internal/queue"
)

func draftStatement() *raqeeb.GlobalPenaltyStatement {
	return &raqeeb.GlobalPenaltyStatement{
		ID:              uuid.New(),
		ReferenceNumber: "GPS-2026-06-001",
		Month:           time.June,
		Year:            2026,
		Status:          raqeeb.StatementStatusDraft,
		ContractorName:  "Al Amal Facility Services",
		Items: []raqeeb.StatementItem{
			{
				ID:                   uuid.New(),
				ViolationName:        "Shortage of staff",
				Category:             raqeeb.CategoryManpower,
				OccurrenceCount:      2,
				PenaltyPerOccurrence: 1000,
				Total:                2000,
				Status:               raqeeb.StatementItemApproved,
			},
		},
		TotalAmount:     2000,
		TotalViolations: 2,
		TotalInvoices:   2,
	}
}

func TestServer_GenerateStatement(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAs(testSupervisor())

	ts.Statements.GenerateStatementFn = func(ctx context.Context, month time.Month, year int, contractorName string) (*raqeeb.GlobalPenaltyStatement, error) {
		require.Equal(t, time.June, month)
		require.Equal(t, 2026, year)
		require.Equal(t, "Al Amal Facility Services", contractorName)
		return draftStatement(), nil
	}

	rec := ts.request(t, http.MethodPost, "/api/statements", map[string]any{
		"month":          6,
		"year":           2026,
		"contractorName": "Al Amal Facility Services",
	}, true)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got raqeeb.GlobalPenaltyStatement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "GPS-2026-06-001", got.ReferenceNumber)
}

func TestServer_GenerateStatement_DuplicatePeriod(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAs(testSupervisor())

	ts.Statements.GenerateStatementFn = func(ctx context.Context, month time.Month, year int, contractorName string) (*raqeeb.GlobalPenaltyStatement, error) {
		return nil, raqeeb.Conflict("A statement already exists for June 2026")
	}

	rec := ts.request(t, http.MethodPost, "/api/statements", map[string]any{
		"month":          6,
		"year":           2026,
		"contractorName": "Al Amal Facility Services",
	}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServer_PreviewRefresh(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAs(testSupervisor())

	stmt := draftStatement()
	ts.Statements.PreviewRefreshFn = func(ctx context.Context, id uuid.UUID) (*raqeeb.StatementAggregation, error) {
		require.Equal(t, stmt.ID, id)
		return &raqeeb.StatementAggregation{
			TotalAmount:     2300,
			TotalViolations: 3,
			TotalInvoices:   3,
		}, nil
	}

	rec := ts.request(t, http.MethodGet, "/api/statements/"+stmt.ID.String()+"/refresh-preview", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	var agg raqeeb.StatementAggregation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &agg))
	assert.Equal(t, 2300.0, agg.TotalAmount)
}

func TestServer_CommitRefresh(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAs(testSupervisor())

	stmt := draftStatement()
	ts.Statements.CommitRefreshFn = func(ctx context.Context, id uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
		require.Equal(t, stmt.ID, id)
		return stmt, nil
	}

	rec := ts.request(t, http.MethodPost, "/api/statements/"+stmt.ID.String()+"/refresh",
		map[string]bool{"confirm": true}, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_CommitRefresh_Unconfirmed(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAs(testSupervisor())

	stmt := draftStatement()
	called := false
	ts.Statements.CommitRefreshFn = func(ctx context.Context, id uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
		called = true
		return stmt, nil
	}

	// Without an explicit confirmation the destructive refresh is rejected.
	rec := ts.request(t, http.MethodPost, "/api/statements/"+stmt.ID.String()+"/refresh", nil, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, raqeeb.EINVALID, resp.Error)

	// The query-param form works for clients that cannot send a body.
	rec = ts.request(t, http.MethodPost, "/api/statements/"+stmt.ID.String()+"/refresh?confirm=true", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestServer_AddStatementItem(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAs(testSupervisor())

	stmt := draftStatement()
	ts.Statements.AddManualItemFn = func(ctx context.Context, id uuid.UUID, item raqeeb.StatementItem) (*raqeeb.GlobalPenaltyStatement, error) {
		require.True(t, item.Manual)
		require.Equal(t, "Expired items", item.ViolationName)
		require.Equal(t, 300.0, item.PenaltyPerOccurrence)
		return stmt, nil
	}

	rec := ts.request(t, http.MethodPost, "/api/statements/"+stmt.ID.String()+"/items", map[string]any{
		"violationName":        "Expired items",
		"category":             raqeeb.CategoryMaterial,
		"occurrenceCount":      1,
		"penaltyPerOccurrence": 300,
	}, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_UpdateStatementItem_Reject(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAs(testSupervisor())

	stmt := draftStatement()
	itemID := stmt.Items[0].ID
	ts.Statements.UpdateItemFn = func(ctx context.Context, id, item uuid.UUID, upd raqeeb.StatementItemUpdate) (*raqeeb.GlobalPenaltyStatement, error) {
		require.Equal(t, itemID, item)
		require.NotNil(t, upd.Status)
		require.Equal(t, raqeeb.StatementItemRejected, *upd.Status)
		return stmt, nil
	}

	rec := ts.request(t, http.MethodPut,
		"/api/statements/"+stmt.ID.String()+"/items/"+itemID.String(),
		map[string]string{"status": "rejected"}, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_ApproveStatement_EnqueuesExport(t *testing.T) {
	ts := newTestServer(t)
	supervisor := testSupervisor()
	ts.loginAs(supervisor)

	stmt := draftStatement()
	ts.Statements.ApproveStatementFn = func(ctx context.Context, id uuid.UUID, approverID uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
		require.Equal(t, supervisor.ID, approverID)
		approved := *stmt
		approved.Status = raqeeb.StatementStatusApproved
		approved.ApprovedBy = &approverID
		return &approved, nil
	}

	rec := ts.request(t, http.MethodPost, "/api/statements/"+stmt.ID.String()+"/approve", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)

	// Approval queues the export job for the email worker.
	job, err := ts.Queue.Dequeue(context.Background(), "test-worker", &queue.DequeueOptions{QueueNames: []string{"exports"}})
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "statement_export", job.JobType)
	assert.Equal(t, stmt.ID.String(), job.Payload["statement_id"])
}

func TestServer_ApproveStatement_Terminal(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAs(testSupervisor())

	stmt := draftStatement()
	ts.Statements.ApproveStatementFn = func(ctx context.Context, id uuid.UUID, approverID uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
		return nil, raqeeb.Conflict("Statement is already approved")
	}

	rec := ts.request(t, http.MethodPost, "/api/statements/"+stmt.ID.String()+"/approve", nil, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Nothing should land on the export queue when approval fails.
	job, err := ts.Queue.Dequeue(context.Background(), "test-worker", &queue.DequeueOptions{QueueNames: []string{"exports"}})
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestServer_ExportStatement(t *testing.T) {
	ts := newTestServer(t)
	ts.loginAs(testSupervisor())

	stmt := draftStatement()
	ts.Statements.FindStatementByIDFn = func(ctx context.Context, id uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
		return stmt, nil
	}

	rec := ts.request(t, http.MethodGet, "/api/statements/"+stmt.ID.String()+"/export", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "penalty-statement-2026-06.xlsx")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Penalty Statement", "B2")
	require.NoError(t, err)
	assert.Equal(t, "GPS-2026-06-001", got)
}
