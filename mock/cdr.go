package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// Compile-time interface check
var _ raqeeb.CDRService = (*CDRService)(nil)

// CDRService is a mock implementation of raqeeb.CDRService.
type CDRService struct {
	FindCDRByIDFn func(ctx context.Context, id uuid.UUID) (*raqeeb.CDR, error)
	FindCDRsFn    func(ctx context.Context, filter raqeeb.CDRFilter) ([]*raqeeb.CDR, int, error)
	CreateCDRFn   func(ctx context.Context, cdr *raqeeb.CDR) error
	UpdateCDRFn   func(ctx context.Context, id uuid.UUID, upd raqeeb.CDRUpdate) (*raqeeb.CDR, error)
	SubmitCDRFn   func(ctx context.Context, id uuid.UUID) (*raqeeb.CDR, error)
	ApproveCDRFn  func(ctx context.Context, id uuid.UUID, approval raqeeb.CDRApproval) (*raqeeb.CDR, raqeeb.PenaltyDerivation, error)
}

func (s *CDRService) FindCDRByID(ctx context.Context, id uuid.UUID) (*raqeeb.CDR, error) {
	if s.FindCDRByIDFn != nil {
		return s.FindCDRByIDFn(ctx, id)
	}
	return nil, raqeeb.NotFound("CDR not found")
}

func (s *CDRService) FindCDRs(ctx context.Context, filter raqeeb.CDRFilter) ([]*raqeeb.CDR, int, error) {
	if s.FindCDRsFn != nil {
		return s.FindCDRsFn(ctx, filter)
	}
	return []*raqeeb.CDR{}, 0, nil
}

func (s *CDRService) CreateCDR(ctx context.Context, cdr *raqeeb.CDR) error {
	if s.CreateCDRFn != nil {
		return s.CreateCDRFn(ctx, cdr)
	}
	return nil
}

func (s *CDRService) UpdateCDR(ctx context.Context, id uuid.UUID, upd raqeeb.CDRUpdate) (*raqeeb.CDR, error) {
	if s.UpdateCDRFn != nil {
		return s.UpdateCDRFn(ctx, id, upd)
	}
	return nil, raqeeb.NotFound("CDR not found")
}

func (s *CDRService) SubmitCDR(ctx context.Context, id uuid.UUID) (*raqeeb.CDR, error) {
	if s.SubmitCDRFn != nil {
		return s.SubmitCDRFn(ctx, id)
	}
	return nil, raqeeb.NotFound("CDR not found")
}

func (s *CDRService) ApproveCDR(ctx context.Context, id uuid.UUID, approval raqeeb.CDRApproval) (*raqeeb.CDR, raqeeb.PenaltyDerivation, error) {
	if s.ApproveCDRFn != nil {
		return s.ApproveCDRFn(ctx, id, approval)
	}
	return nil, "", raqeeb.NotFound("CDR not found")
}
