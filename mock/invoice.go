package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// Compile-time interface check
var _ raqeeb.InvoiceService = (*InvoiceService)(nil)

// InvoiceService is a mock implementation of raqeeb.InvoiceService.
type InvoiceService struct {
	FindInvoiceByIDFn  func(ctx context.Context, id uuid.UUID) (*raqeeb.PenaltyInvoice, error)
	FindInvoicesFn     func(ctx context.Context, filter raqeeb.InvoiceFilter) ([]*raqeeb.PenaltyInvoice, int, error)
	CreateInvoiceFn    func(ctx context.Context, invoice *raqeeb.PenaltyInvoice) error
	ApproveDeductionFn func(ctx context.Context, id uuid.UUID, managerName string) (*raqeeb.PenaltyInvoice, error)
}

func (s *InvoiceService) FindInvoiceByID(ctx context.Context, id uuid.UUID) (*raqeeb.PenaltyInvoice, error) {
	if s.FindInvoiceByIDFn != nil {
		return s.FindInvoiceByIDFn(ctx, id)
	}
	return nil, raqeeb.NotFound("Invoice not found")
}

func (s *InvoiceService) FindInvoices(ctx context.Context, filter raqeeb.InvoiceFilter) ([]*raqeeb.PenaltyInvoice, int, error) {
	if s.FindInvoicesFn != nil {
		return s.FindInvoicesFn(ctx, filter)
	}
	return []*raqeeb.PenaltyInvoice{}, 0, nil
}

func (s *InvoiceService) CreateInvoice(ctx context.Context, invoice *raqeeb.PenaltyInvoice) error {
	if s.CreateInvoiceFn != nil {
		return s.CreateInvoiceFn(ctx, invoice)
	}
	return nil
}

func (s *InvoiceService) ApproveDeduction(ctx context.Context, id uuid.UUID, managerName string) (*raqeeb.PenaltyInvoice, error) {
	if s.ApproveDeductionFn != nil {
		return s.ApproveDeductionFn(ctx, id, managerName)
	}
	return nil, raqeeb.NotFound("Invoice not found")
}
