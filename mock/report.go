package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// Compile-time interface check
var _ raqeeb.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of raqeeb.ReportService.
type ReportService struct {
	FindReportByIDFn       func(ctx context.Context, id uuid.UUID) (*raqeeb.InspectionReport, error)
	FindReportsFn          func(ctx context.Context, filter raqeeb.ReportFilter) ([]*raqeeb.InspectionReport, int, error)
	CreateReportFn         func(ctx context.Context, report *raqeeb.InspectionReport) error
	CreateReportsFn        func(ctx context.Context, reports []*raqeeb.InspectionReport) error
	UpdateReportFn         func(ctx context.Context, id uuid.UUID, upd raqeeb.ReportUpdate) (*raqeeb.InspectionReport, error)
	SubmitReportFn         func(ctx context.Context, id uuid.UUID) (*raqeeb.InspectionReport, error)
	SetSupervisorCommentFn func(ctx context.Context, id uuid.UUID, comment string) (*raqeeb.InspectionReport, error)
	UpdateReportStatusFn   func(ctx context.Context, id uuid.UUID, status raqeeb.ReportStatus) (*raqeeb.InspectionReport, error)
}

func (s *ReportService) FindReportByID(ctx context.Context, id uuid.UUID) (*raqeeb.InspectionReport, error) {
	if s.FindReportByIDFn != nil {
		return s.FindReportByIDFn(ctx, id)
	}
	return nil, raqeeb.NotFound("Report not found")
}

func (s *ReportService) FindReports(ctx context.Context, filter raqeeb.ReportFilter) ([]*raqeeb.InspectionReport, int, error) {
	if s.FindReportsFn != nil {
		return s.FindReportsFn(ctx, filter)
	}
	return []*raqeeb.InspectionReport{}, 0, nil
}

func (s *ReportService) CreateReport(ctx context.Context, report *raqeeb.InspectionReport) error {
	if s.CreateReportFn != nil {
		return s.CreateReportFn(ctx, report)
	}
	return nil
}

func (s *ReportService) CreateReports(ctx context.Context, reports []*raqeeb.InspectionReport) error {
	if s.CreateReportsFn != nil {
		return s.CreateReportsFn(ctx, reports)
	}
	return nil
}

func (s *ReportService) UpdateReport(ctx context.Context, id uuid.UUID, upd raqeeb.ReportUpdate) (*raqeeb.InspectionReport, error) {
	if s.UpdateReportFn != nil {
		return s.UpdateReportFn(ctx, id, upd)
	}
	return nil, raqeeb.NotFound("Report not found")
}

func (s *ReportService) SubmitReport(ctx context.Context, id uuid.UUID) (*raqeeb.InspectionReport, error) {
	if s.SubmitReportFn != nil {
		return s.SubmitReportFn(ctx, id)
	}
	return nil, raqeeb.NotFound("Report not found")
}

func (s *ReportService) SetSupervisorComment(ctx context.Context, id uuid.UUID, comment string) (*raqeeb.InspectionReport, error) {
	if s.SetSupervisorCommentFn != nil {
		return s.SetSupervisorCommentFn(ctx, id, comment)
	}
	return nil, raqeeb.NotFound("Report not found")
}

func (s *ReportService) UpdateReportStatus(ctx context.Context, id uuid.UUID, status raqeeb.ReportStatus) (*raqeeb.InspectionReport, error) {
	if s.UpdateReportStatusFn != nil {
		return s.UpdateReportStatusFn(ctx, id, status)
	}
	return nil, raqeeb.NotFound("Report not found")
}
