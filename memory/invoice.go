package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// InvoiceService implements raqeeb.InvoiceService against the in-memory
// store.
type InvoiceService struct {
	store *Store
}

// NewInvoiceService returns a new instance of InvoiceService.
func NewInvoiceService(store *Store) *InvoiceService {
	return &InvoiceService{store: store}
}

var _ raqeeb.InvoiceService = (*InvoiceService)(nil)

func (s *InvoiceService) FindInvoiceByID(ctx context.Context, id uuid.UUID) (*raqeeb.PenaltyInvoice, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	inv, ok := s.store.invoices[id]
	if !ok {
		return nil, raqeeb.NotFound("invoice not found")
	}
	return copyInvoice(inv), nil
}

func (s *InvoiceService) FindInvoices(ctx context.Context, filter raqeeb.InvoiceFilter) ([]*raqeeb.PenaltyInvoice, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var invoices []*raqeeb.PenaltyInvoice
	for _, inv := range s.store.invoices {
		if filter.CDRID != nil && inv.CDRID != *filter.CDRID {
			continue
		}
		if filter.LocationID != nil && inv.LocationID != *filter.LocationID {
			continue
		}
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}
		if filter.Month != nil && inv.GeneratedAt.Month() != *filter.Month {
			continue
		}
		if filter.Year != nil && inv.GeneratedAt.Year() != *filter.Year {
			continue
		}
		invoices = append(invoices, copyInvoice(inv))
	}
	sort.Slice(invoices, func(i, j int) bool { return invoices[i].GeneratedAt.After(invoices[j].GeneratedAt) })

	total := len(invoices)
	lo, hi := paginate(total, filter.Offset, filter.Limit)
	return invoices[lo:hi], total, nil
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, invoice *raqeeb.PenaltyInvoice) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, exists := s.store.invoiceByCDR[invoice.CDRID]; exists {
		return raqeeb.Conflict("an invoice already exists for CDR %s", invoice.CDRReference)
	}
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	now := s.store.clock.Now()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	s.store.invoices[invoice.ID] = copyInvoice(invoice)
	s.store.invoiceByCDR[invoice.CDRID] = invoice.ID
	return nil
}

func (s *InvoiceService) ApproveDeduction(ctx context.Context, id uuid.UUID, managerName string) (*raqeeb.PenaltyInvoice, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	inv, ok := s.store.invoices[id]
	if !ok {
		return nil, raqeeb.NotFound("invoice not found")
	}
	if inv.Status == raqeeb.PenaltyStatusDeducted {
		return nil, raqeeb.Conflict("invoice is already deducted")
	}

	now := s.store.clock.Now()
	inv.Status = raqeeb.PenaltyStatusDeducted
	inv.ManagerName = managerName
	inv.ApprovedAt = &now
	inv.UpdatedAt = now
	return copyInvoice(inv), nil
}
