package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// StatementService implements raqeeb.StatementService against the
// in-memory store. The (month, year) uniqueness of statements is
// enforced here at creation time.
type StatementService struct {
	store *Store
}

// NewStatementService returns a new instance of StatementService.
func NewStatementService(store *Store) *StatementService {
	return &StatementService{store: store}
}

var _ raqeeb.StatementService = (*StatementService)(nil)

func (s *StatementService) FindStatementByID(ctx context.Context, id uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	st, ok := s.store.statements[id]
	if !ok {
		return nil, raqeeb.NotFound("statement not found")
	}
	return copyStatement(st), nil
}

func (s *StatementService) FindStatements(ctx context.Context, filter raqeeb.StatementFilter) ([]*raqeeb.GlobalPenaltyStatement, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var statements []*raqeeb.GlobalPenaltyStatement
	for _, st := range s.store.statements {
		if filter.Month != nil && st.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && st.Year != *filter.Year {
			continue
		}
		if filter.Status != nil && st.Status != *filter.Status {
			continue
		}
		statements = append(statements, copyStatement(st))
	}
	sort.Slice(statements, func(i, j int) bool {
		if statements[i].Year != statements[j].Year {
			return statements[i].Year > statements[j].Year
		}
		return statements[i].Month > statements[j].Month
	})

	total := len(statements)
	lo, hi := paginate(total, filter.Offset, filter.Limit)
	return statements[lo:hi], total, nil
}

func (s *StatementService) GenerateStatement(ctx context.Context, month time.Month, year int, contractorName string) (*raqeeb.GlobalPenaltyStatement, error) {
	if month < time.January || month > time.December {
		return nil, raqeeb.Invalid("invalid month %d", month)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, existing := range s.store.statements {
		if existing.Month == month && existing.Year == year {
			return nil, raqeeb.Conflict("a statement already exists for %s %d", month, year)
		}
	}

	agg := raqeeb.AggregateInvoices(month, year, s.invoiceList())
	now := s.store.clock.Now()
	st := &raqeeb.GlobalPenaltyStatement{
		ID:              uuid.New(),
		ReferenceNumber: statementRef(year, int(month)),
		Month:           month,
		Year:            year,
		Status:          raqeeb.StatementStatusDraft,
		ContractorName:  contractorName,
		Items:           agg.Items,
		TotalAmount:     agg.TotalAmount,
		TotalViolations: agg.TotalViolations,
		TotalInvoices:   agg.TotalInvoices,
		GeneratedAt:     now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.store.statements[st.ID] = copyStatement(st)
	return copyStatement(st), nil
}

func (s *StatementService) PreviewRefresh(ctx context.Context, id uuid.UUID) (*raqeeb.StatementAggregation, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	st, ok := s.store.statements[id]
	if !ok {
		return nil, raqeeb.NotFound("statement not found")
	}
	if st.Status == raqeeb.StatementStatusApproved {
		return nil, raqeeb.Invalid("statement %s is approved and cannot be refreshed", st.ReferenceNumber)
	}

	agg := raqeeb.AggregateInvoices(st.Month, st.Year, s.invoiceList())
	return &agg, nil
}

func (s *StatementService) CommitRefresh(ctx context.Context, id uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	st, ok := s.store.statements[id]
	if !ok {
		return nil, raqeeb.NotFound("statement not found")
	}
	if st.Status == raqeeb.StatementStatusApproved {
		return nil, raqeeb.Invalid("statement %s is approved and cannot be refreshed", st.ReferenceNumber)
	}

	agg := raqeeb.AggregateInvoices(st.Month, st.Year, s.invoiceList())
	st.Items = agg.Items
	st.TotalAmount = agg.TotalAmount
	st.TotalViolations = agg.TotalViolations
	st.TotalInvoices = agg.TotalInvoices
	st.GeneratedAt = s.store.clock.Now()
	st.UpdatedAt = st.GeneratedAt
	return copyStatement(st), nil
}

func (s *StatementService) AddManualItem(ctx context.Context, id uuid.UUID, item raqeeb.StatementItem) (*raqeeb.GlobalPenaltyStatement, error) {
	if item.ViolationName == "" {
		return nil, raqeeb.Invalid("a violation name is required")
	}
	if item.OccurrenceCount <= 0 {
		return nil, raqeeb.Invalid("occurrence count must be positive")
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	st, ok := s.store.statements[id]
	if !ok {
		return nil, raqeeb.NotFound("statement not found")
	}
	if st.Status == raqeeb.StatementStatusApproved {
		return nil, raqeeb.Invalid("statement %s is approved and cannot be edited", st.ReferenceNumber)
	}

	item.ID = uuid.New()
	item.Manual = true
	if item.Status == "" {
		item.Status = raqeeb.StatementItemApproved
	}
	st.Items = append(st.Items, item)
	raqeeb.RecalculateTotals(st)
	st.UpdatedAt = s.store.clock.Now()
	return copyStatement(st), nil
}

func (s *StatementService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, upd raqeeb.StatementItemUpdate) (*raqeeb.GlobalPenaltyStatement, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	st, ok := s.store.statements[id]
	if !ok {
		return nil, raqeeb.NotFound("statement not found")
	}
	if st.Status == raqeeb.StatementStatusApproved {
		return nil, raqeeb.Invalid("statement %s is approved and cannot be edited", st.ReferenceNumber)
	}

	item := findItem(st, itemID)
	if item == nil {
		return nil, raqeeb.NotFound("statement item not found")
	}
	if upd.OccurrenceCount != nil {
		if *upd.OccurrenceCount <= 0 {
			return nil, raqeeb.Invalid("occurrence count must be positive")
		}
		item.OccurrenceCount = *upd.OccurrenceCount
	}
	if upd.PenaltyPerOccurrence != nil {
		item.PenaltyPerOccurrence = *upd.PenaltyPerOccurrence
	}
	if upd.Status != nil {
		item.Status = *upd.Status
	}
	if upd.ManagerNotes != nil {
		item.ManagerNotes = *upd.ManagerNotes
	}
	raqeeb.RecalculateTotals(st)
	st.UpdatedAt = s.store.clock.Now()
	return copyStatement(st), nil
}

func (s *StatementService) DeleteItem(ctx context.Context, id, itemID uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	st, ok := s.store.statements[id]
	if !ok {
		return nil, raqeeb.NotFound("statement not found")
	}
	if st.Status == raqeeb.StatementStatusApproved {
		return nil, raqeeb.Invalid("statement %s is approved and cannot be edited", st.ReferenceNumber)
	}

	for i := range st.Items {
		if st.Items[i].ID == itemID {
			st.Items = append(st.Items[:i], st.Items[i+1:]...)
			raqeeb.RecalculateTotals(st)
			st.UpdatedAt = s.store.clock.Now()
			return copyStatement(st), nil
		}
	}
	return nil, raqeeb.NotFound("statement item not found")
}

func (s *StatementService) SetManagerComment(ctx context.Context, id uuid.UUID, comment string) (*raqeeb.GlobalPenaltyStatement, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	st, ok := s.store.statements[id]
	if !ok {
		return nil, raqeeb.NotFound("statement not found")
	}
	if st.Status == raqeeb.StatementStatusApproved {
		return nil, raqeeb.Invalid("statement %s is approved and cannot be edited", st.ReferenceNumber)
	}
	st.ManagerComment = comment
	st.UpdatedAt = s.store.clock.Now()
	return copyStatement(st), nil
}

func (s *StatementService) ApproveStatement(ctx context.Context, id uuid.UUID, approverID uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	st, ok := s.store.statements[id]
	if !ok {
		return nil, raqeeb.NotFound("statement not found")
	}
	if st.Status == raqeeb.StatementStatusApproved {
		return nil, raqeeb.Conflict("statement %s is already approved", st.ReferenceNumber)
	}

	now := s.store.clock.Now()
	st.Status = raqeeb.StatementStatusApproved
	st.ApprovedBy = &approverID
	st.ApprovedAt = &now
	st.UpdatedAt = now

	s.store.notifySupervisors(ctx, raqeeb.NotificationStatementApproved,
		fmt.Sprintf("Statement %s approved", st.ReferenceNumber),
		fmt.Sprintf("Global penalty statement for %s %d approved, total SAR %.2f.", st.Month, st.Year, st.TotalAmount), &st.ID)

	return copyStatement(st), nil
}

// invoiceList snapshots the invoice collection. Caller must hold at
// least the read lock.
func (s *StatementService) invoiceList() []*raqeeb.PenaltyInvoice {
	invoices := make([]*raqeeb.PenaltyInvoice, 0, len(s.store.invoices))
	for _, inv := range s.store.invoices {
		invoices = append(invoices, inv)
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].GeneratedAt.Before(invoices[j].GeneratedAt) })
	return invoices
}

func findItem(st *raqeeb.GlobalPenaltyStatement, itemID uuid.UUID) *raqeeb.StatementItem {
	for i := range st.Items {
		if st.Items[i].ID == itemID {
			return &st.Items[i]
		}
	}
	return nil
}
