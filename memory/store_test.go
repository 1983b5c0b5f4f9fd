package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/refdata"
)

var testNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(Config{
		Clock:     raqeeb.FixedClock{T: testNow},
		RateTable: refdata.RateTable(),
	})
	store.LoadReferenceData(refdata.Zones(), refdata.Locations(), refdata.Forms())
	return store
}

func createUser(t *testing.T, store *Store, name, username string, role raqeeb.UserRole) *raqeeb.User {
	t.Helper()
	u := &raqeeb.User{Name: name, Username: username, Role: role}
	require.NoError(t, NewUserService(store).CreateUser(context.Background(), u, "s3cret-pass"))
	return u
}

func TestUserServiceCreateAndVerify(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	u := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)

	found, err := svc.FindUserByUsername(ctx, "MALI")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	verified, err := svc.VerifyPassword(ctx, "mali", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, verified.ID)

	_, err = svc.VerifyPassword(ctx, "mali", "wrong")
	assert.Equal(t, raqeeb.EUNAUTHORIZED, raqeeb.ErrorCode(err))

	err = svc.CreateUser(ctx, &raqeeb.User{Name: "Other", Username: "Mali", Role: raqeeb.RoleInspector}, "pw12345")
	assert.Equal(t, raqeeb.ECONFLICT, raqeeb.ErrorCode(err))
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store)
	sessions := NewSessionService(store)
	ctx := context.Background()

	u := createUser(t, store, "Fatima Saad", "fsaad", raqeeb.RoleInspector)
	_ = users

	sess, err := sessions.CreateSession(ctx, u.ID, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	require.NotNil(t, sess.User)
	assert.Equal(t, u.ID, sess.User.ID)

	found, err := sessions.FindSessionByToken(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.UserID)

	require.NoError(t, sessions.DeleteSession(ctx, sess.Token))
	_, err = sessions.FindSessionByToken(ctx, sess.Token)
	assert.Equal(t, raqeeb.ENOTFOUND, raqeeb.ErrorCode(err))
}

func TestReportLifecycle(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportService(store)
	ctx := context.Background()

	inspector := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)
	supervisor := createUser(t, store, "Manager Ahmed", "manager", raqeeb.RoleSupervisor)

	report := &raqeeb.InspectionReport{
		InspectorID: inspector.ID,
		LocationID:  "loc_h_1",
		Date:        testNow,
		Items: []raqeeb.InspectionResultItem{
			{ItemID: "hr_item_1", Score: 6},
			{ItemID: "hr_item_2", Score: 5},
		},
	}
	require.NoError(t, reports.CreateReport(ctx, report))
	assert.Equal(t, raqeeb.DraftReferenceNumber, report.ReferenceNumber)
	assert.Equal(t, raqeeb.ReportStatusDraft, report.Status)

	submitted, err := reports.SubmitReport(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "INSP-2026-06-001", submitted.ReferenceNumber)
	assert.Equal(t, raqeeb.ReportStatusSubmitted, submitted.Status)

	// Submitting again is rejected.
	_, err = reports.SubmitReport(ctx, report.ID)
	assert.Equal(t, raqeeb.EINVALID, raqeeb.ErrorCode(err))

	// Submission notified the supervisor.
	notifications, _, err := NewNotificationService(store).FindNotifications(ctx, supervisor.ID, raqeeb.NotificationFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, notifications)
	assert.Equal(t, raqeeb.NotificationReportSubmitted, notifications[0].Type)

	// A submitted report is no longer editable.
	newDate := testNow.AddDate(0, 0, -1)
	_, err = reports.UpdateReport(ctx, report.ID, raqeeb.ReportUpdate{Date: &newDate})
	assert.Equal(t, raqeeb.EINVALID, raqeeb.ErrorCode(err))

	reviewed, err := reports.UpdateReportStatus(ctx, report.ID, raqeeb.ReportStatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, raqeeb.ReportStatusReviewed, reviewed.Status)
}

func TestReportReferenceSequencePerMonth(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportService(store)
	ctx := context.Background()

	inspector := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)

	makeReport := func(date time.Time) *raqeeb.InspectionReport {
		r := &raqeeb.InspectionReport{InspectorID: inspector.ID, LocationID: "loc_l_1", Date: date}
		require.NoError(t, reports.CreateReport(ctx, r))
		submitted, err := reports.SubmitReport(ctx, r.ID)
		require.NoError(t, err)
		return submitted
	}

	june1 := makeReport(testNow)
	june2 := makeReport(testNow.AddDate(0, 0, 1))
	july1 := makeReport(testNow.AddDate(0, 1, 0))

	assert.Equal(t, "INSP-2026-06-001", june1.ReferenceNumber)
	assert.Equal(t, "INSP-2026-06-002", june2.ReferenceNumber)
	assert.Equal(t, "INSP-2026-07-001", july1.ReferenceNumber)
}

func TestReportCreateRejectsUnknownItemAndScore(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportService(store)
	ctx := context.Background()
	inspector := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)

	err := reports.CreateReport(ctx, &raqeeb.InspectionReport{
		InspectorID: inspector.ID,
		LocationID:  "loc_h_1",
		Items:       []raqeeb.InspectionResultItem{{ItemID: "lr_item_1", Score: 3}},
	})
	assert.Equal(t, raqeeb.EINVALID, raqeeb.ErrorCode(err))

	err = reports.CreateReport(ctx, &raqeeb.InspectionReport{
		InspectorID: inspector.ID,
		LocationID:  "loc_h_1",
		Items:       []raqeeb.InspectionResultItem{{ItemID: "hr_item_1", Score: 99}},
	})
	assert.Equal(t, raqeeb.EINVALID, raqeeb.ErrorCode(err))
}

func TestBatchCreateSharesBatchLocationIDs(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportService(store)
	ctx := context.Background()
	inspector := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)

	batch := []*raqeeb.InspectionReport{
		{InspectorID: inspector.ID, LocationID: "loc_h_1", Date: testNow},
		{InspectorID: inspector.ID, LocationID: "loc_h_2", Date: testNow},
	}
	require.NoError(t, reports.CreateReports(ctx, batch))

	for _, r := range batch {
		found, err := reports.FindReportByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"loc_h_1", "loc_h_2"}, found.BatchLocationIDs)
	}
}

func submitTestCDR(t *testing.T, store *Store, employeeID uuid.UUID) *raqeeb.CDR {
	t.Helper()
	cdrs := NewCDRService(store)
	ctx := context.Background()

	cdr := &raqeeb.CDR{
		EmployeeID:            employeeID,
		LocationID:            "loc_h_3",
		Date:                  testNow,
		IncidentType:          raqeeb.IncidentFirst,
		ServiceTypes:          []raqeeb.ServiceType{raqeeb.ServiceHousekeeping},
		ManpowerDiscrepancies: []string{"Shortage of staff"},
		MaterialDiscrepancies: []string{"Expired items"},
		EmployeeSignature:     "Mohammed Ali",
	}
	require.NoError(t, cdrs.CreateCDR(ctx, cdr))
	submitted, err := cdrs.SubmitCDR(ctx, cdr.ID)
	require.NoError(t, err)
	return submitted
}

func TestCDRApprovalDerivesInvoice(t *testing.T) {
	store := newTestStore(t)
	cdrs := NewCDRService(store)
	invoices := NewInvoiceService(store)
	ctx := context.Background()

	inspector := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)
	cdr := submitTestCDR(t, store, inspector.ID)
	assert.Equal(t, "CDR-2026-06-001", cdr.ReferenceNumber)

	approved, outcome, err := cdrs.ApproveCDR(ctx, cdr.ID, raqeeb.CDRApproval{
		Decision:  raqeeb.DecisionPenalty,
		Comment:   "Approved.",
		Signature: "Manager Ahmed",
	})
	require.NoError(t, err)
	assert.Equal(t, raqeeb.DerivationProduced, outcome)
	assert.Equal(t, raqeeb.CDRStatusApproved, approved.Status)
	require.NotNil(t, approved.FinalizedAt)

	list, total, err := invoices.FindInvoices(ctx, raqeeb.InvoiceFilter{CDRID: &cdr.ID})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	inv := list[0]
	assert.Equal(t, cdr.ReferenceNumber, inv.CDRReference)
	assert.Equal(t, "Ward 6-13-14-15, ER Area", inv.LocationName)
	assert.Equal(t, "Mohammed Ali", inv.InspectorName)
	assert.InDelta(t, 1300.0, inv.TotalAmount, 0.001)

	// Approval is terminal.
	_, _, err = cdrs.ApproveCDR(ctx, cdr.ID, raqeeb.CDRApproval{Decision: raqeeb.DecisionWarning})
	assert.Equal(t, raqeeb.ECONFLICT, raqeeb.ErrorCode(err))
}

func TestCDRApprovalWarningNoInvoice(t *testing.T) {
	store := newTestStore(t)
	cdrs := NewCDRService(store)
	ctx := context.Background()

	inspector := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)
	cdr := submitTestCDR(t, store, inspector.ID)

	_, outcome, err := cdrs.ApproveCDR(ctx, cdr.ID, raqeeb.CDRApproval{Decision: raqeeb.DecisionWarning})
	require.NoError(t, err)
	assert.Equal(t, raqeeb.DerivationNotApplicable, outcome)

	_, total, err := NewInvoiceService(store).FindInvoices(ctx, raqeeb.InvoiceFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestCDRApprovalPenaltyWithoutDiscrepanciesIsNoOp(t *testing.T) {
	store := newTestStore(t)
	cdrs := NewCDRService(store)
	ctx := context.Background()

	inspector := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)
	cdr := &raqeeb.CDR{
		EmployeeID:   inspector.ID,
		LocationID:   "loc_m_4",
		Date:         testNow,
		IncidentType: raqeeb.IncidentRoutine,
	}
	require.NoError(t, cdrs.CreateCDR(ctx, cdr))
	_, err := cdrs.SubmitCDR(ctx, cdr.ID)
	require.NoError(t, err)

	approved, outcome, err := cdrs.ApproveCDR(ctx, cdr.ID, raqeeb.CDRApproval{Decision: raqeeb.DecisionPenalty})
	require.NoError(t, err)
	assert.Equal(t, raqeeb.DerivationNoChargeableItems, outcome)
	assert.Equal(t, raqeeb.CDRStatusApproved, approved.Status)

	_, total, err := NewInvoiceService(store).FindInvoices(ctx, raqeeb.InvoiceFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestInvoiceDeductionTerminal(t *testing.T) {
	store := newTestStore(t)
	cdrs := NewCDRService(store)
	invoices := NewInvoiceService(store)
	ctx := context.Background()

	inspector := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)
	cdr := submitTestCDR(t, store, inspector.ID)
	_, _, err := cdrs.ApproveCDR(ctx, cdr.ID, raqeeb.CDRApproval{Decision: raqeeb.DecisionPenalty})
	require.NoError(t, err)

	list, _, err := invoices.FindInvoices(ctx, raqeeb.InvoiceFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	deducted, err := invoices.ApproveDeduction(ctx, list[0].ID, "Manager Ahmed")
	require.NoError(t, err)
	assert.Equal(t, raqeeb.PenaltyStatusDeducted, deducted.Status)
	assert.Equal(t, "Manager Ahmed", deducted.ManagerName)
	require.NotNil(t, deducted.ApprovedAt)

	_, err = invoices.ApproveDeduction(ctx, list[0].ID, "Manager Ahmed")
	assert.Equal(t, raqeeb.ECONFLICT, raqeeb.ErrorCode(err))
}

func TestStoreCopiesAreIsolated(t *testing.T) {
	store := newTestStore(t)
	reports := NewReportService(store)
	ctx := context.Background()
	inspector := createUser(t, store, "Mohammed Ali", "mali", raqeeb.RoleInspector)

	report := &raqeeb.InspectionReport{
		InspectorID: inspector.ID,
		LocationID:  "loc_h_1",
		Date:        testNow,
		Items:       []raqeeb.InspectionResultItem{{ItemID: "hr_item_1", Score: 6}},
	}
	require.NoError(t, reports.CreateReport(ctx, report))

	found, err := reports.FindReportByID(ctx, report.ID)
	require.NoError(t, err)
	found.Items[0].Score = 0
	found.Status = raqeeb.ReportStatusReviewed

	again, err := reports.FindReportByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, again.Items[0].Score)
	assert.Equal(t, raqeeb.ReportStatusDraft, again.Status)
}
