package mock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// Compile-time interface check
var _ raqeeb.StatementService = (*StatementService)(nil)

// StatementService is a mock implementation of raqeeb.StatementService.
type StatementService struct {
	FindStatementByIDFn func(ctx context.Context, id uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error)
	FindStatementsFn    func(ctx context.Context, filter raqeeb.StatementFilter) ([]*raqeeb.GlobalPenaltyStatement, int, error)
	GenerateStatementFn func(ctx context.Context, month time.Month, year int, contractorName string) (*raqeeb.GlobalPenaltyStatement, error)
	PreviewRefreshFn    func(ctx context.Context, id uuid.UUID) (*raqeeb.StatementAggregation, error)
	CommitRefreshFn     func(ctx context.Context, id uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error)
	AddManualItemFn     func(ctx context.Context, id uuid.UUID, item raqeeb.StatementItem) (*raqeeb.GlobalPenaltyStatement, error)
	UpdateItemFn        func(ctx context.Context, id, itemID uuid.UUID, upd raqeeb.StatementItemUpdate) (*raqeeb.GlobalPenaltyStatement, error)
	DeleteItemFn        func(ctx context.Context, id, itemID uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error)
	SetManagerCommentFn func(ctx context.Context, id uuid.UUID, comment string) (*raqeeb.GlobalPenaltyStatement, error)
	ApproveStatementFn  func(ctx context.Context, id uuid.UUID, approverID uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error)
}

func (s *StatementService) FindStatementByID(ctx context.Context, id uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
	if s.FindStatementByIDFn != nil {
		return s.FindStatementByIDFn(ctx, id)
	}
	return nil, raqeeb.NotFound("Statement not found")
}

func (s *StatementService) FindStatements(ctx context.Context, filter raqeeb.StatementFilter) ([]*raqeeb.GlobalPenaltyStatement, int, error) {
	if s.FindStatementsFn != nil {
		return s.FindStatementsFn(ctx, filter)
	}
	return []*raqeeb.GlobalPenaltyStatement{}, 0, nil
}

func (s *StatementService) GenerateStatement(ctx context.Context, month time.Month, year int, contractorName string) (*raqeeb.GlobalPenaltyStatement, error) {
	if s.GenerateStatementFn != nil {
		return s.GenerateStatementFn(ctx, month, year, contractorName)
	}
	return nil, raqeeb.Internal("not implemented", nil)
}

func (s *StatementService) PreviewRefresh(ctx context.Context, id uuid.UUID) (*raqeeb.StatementAggregation, error) {
	if s.PreviewRefreshFn != nil {
		return s.PreviewRefreshFn(ctx, id)
	}
	return nil, raqeeb.NotFound("Statement not found")
}

func (s *StatementService) CommitRefresh(ctx context.Context, id uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
	if s.CommitRefreshFn != nil {
		return s.CommitRefreshFn(ctx, id)
	}
	return nil, raqeeb.NotFound("Statement not found")
}

func (s *StatementService) AddManualItem(ctx context.Context, id uuid.UUID, item raqeeb.StatementItem) (*raqeeb.GlobalPenaltyStatement, error) {
	if s.AddManualItemFn != nil {
		return s.AddManualItemFn(ctx, id, item)
	}
	return nil, raqeeb.NotFound("Statement not found")
}

func (s *StatementService) UpdateItem(ctx context.Context, id, itemID uuid.UUID, upd raqeeb.StatementItemUpdate) (*raqeeb.GlobalPenaltyStatement, error) {
	if s.UpdateItemFn != nil {
		return s.UpdateItemFn(ctx, id, itemID, upd)
	}
	return nil, raqeeb.NotFound("Statement not found")
}

func (s *StatementService) DeleteItem(ctx context.Context, id, itemID uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
	if s.DeleteItemFn != nil {
		return s.DeleteItemFn(ctx, id, itemID)
	}
	return nil, raqeeb.NotFound("Statement not found")
}

func (s *StatementService) SetManagerComment(ctx context.Context, id uuid.UUID, comment string) (*raqeeb.GlobalPenaltyStatement, error) {
	if s.SetManagerCommentFn != nil {
		return s.SetManagerCommentFn(ctx, id, comment)
	}
	return nil, raqeeb.NotFound("Statement not found")
}

func (s *StatementService) ApproveStatement(ctx context.Context, id uuid.UUID, approverID uuid.UUID) (*raqeeb.GlobalPenaltyStatement, error) {
	if s.ApproveStatementFn != nil {
		return s.ApproveStatementFn(ctx, id, approverID)
	}
	return nil, raqeeb.NotFound("Statement not found")
}
