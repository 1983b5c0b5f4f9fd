package raqeeb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DraftReferenceNumber is the provisional reference carried by a report
// until it is first submitted.
const DraftReferenceNumber = "DRAFT"

// InspectionResultItem is one scored checklist line within a report. ItemID
// references an item on the form assigned to the report's location.
type InspectionResultItem struct {
	ItemID  string   `json:"itemId"`
	Score   int      `json:"score"`
	Comment string   `json:"comment,omitempty"`
	Defects []string `json:"defects,omitempty"`
	Photos  []string `json:"photos,omitempty"`
}

// InspectionReport is a scored inspection of one location on one date.
type InspectionReport struct {
	ID                uuid.UUID              `json:"id"`
	ReferenceNumber   string                 `json:"referenceNumber"`
	InspectorID       uuid.UUID              `json:"inspectorId"`
	LocationID        string                 `json:"locationId"`
	Date              time.Time              `json:"date"`
	Status            ReportStatus           `json:"status"`
	Items             []InspectionResultItem `json:"items"`
	SupervisorComment string                 `json:"supervisorComment,omitempty"`
	SubLocations      []string               `json:"subLocations,omitempty"`

	// BatchLocationIDs links reports created together from one batch
	// selection; each report in the batch carries the full set.
	BatchLocationIDs []string `json:"batchLocationIds,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReportStatus represents the lifecycle state of an inspection report.
type ReportStatus string

const (
	ReportStatusDraft       ReportStatus = "draft"
	ReportStatusSubmitted   ReportStatus = "submitted"
	ReportStatusReviewed    ReportStatus = "reviewed"
	ReportStatusNeedsAction ReportStatus = "needs_action"
)

// IsEditable returns true if the owning inspector can still modify the report.
func (s ReportStatus) IsEditable() bool {
	return s == ReportStatusDraft
}

// CanTransitionTo returns true if this status can transition to the target status.
func (s ReportStatus) CanTransitionTo(target ReportStatus) bool {
	switch s {
	case ReportStatusDraft:
		return target == ReportStatusSubmitted
	case ReportStatusSubmitted:
		return target == ReportStatusReviewed || target == ReportStatusNeedsAction
	case ReportStatusNeedsAction:
		return target == ReportStatusReviewed
	default:
		return false
	}
}

// TotalScore returns the sum of raw item scores.
func (r *InspectionReport) TotalScore() int {
	total := 0
	for _, item := range r.Items {
		total += item.Score
	}
	return total
}

// ReportService defines operations for managing inspection reports.
type ReportService interface {
	// FindReportByID retrieves a report by ID.
	// Returns ENOTFOUND if the report does not exist.
	FindReportByID(ctx context.Context, id uuid.UUID) (*InspectionReport, error)

	// FindReports retrieves reports matching the filter criteria.
	// Returns the matching reports and total count.
	FindReports(ctx context.Context, filter ReportFilter) ([]*InspectionReport, int, error)

	// CreateReport creates a new draft report.
	CreateReport(ctx context.Context, report *InspectionReport) error

	// CreateReports creates a batch of draft reports sharing BatchLocationIDs.
	CreateReports(ctx context.Context, reports []*InspectionReport) error

	// UpdateReport updates an existing report.
	// Returns ENOTFOUND if the report does not exist.
	// Returns EINVALID if the report is no longer editable.
	UpdateReport(ctx context.Context, id uuid.UUID, upd ReportUpdate) (*InspectionReport, error)

	// SubmitReport transitions a draft to submitted and assigns its
	// reference number.
	// Returns EINVALID if the transition is not allowed.
	SubmitReport(ctx context.Context, id uuid.UUID) (*InspectionReport, error)

	// SetSupervisorComment attaches a supervisor comment without a status
	// change. The comment is the only supervisor-writable field.
	SetSupervisorComment(ctx context.Context, id uuid.UUID, comment string) (*InspectionReport, error)

	// UpdateReportStatus changes the status of a non-draft report.
	// Returns EINVALID if the transition is not allowed.
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status ReportStatus) (*InspectionReport, error)
}

// ReportFilter defines criteria for filtering reports.
type ReportFilter struct {
	InspectorID *uuid.UUID
	LocationID  *string
	Status      *ReportStatus
	From        *time.Time
	To          *time.Time

	// Pagination
	Offset int
	Limit  int
}

// ReportUpdate defines fields that can be updated on a draft report.
type ReportUpdate struct {
	Items        *[]InspectionResultItem
	SubLocations *[]string
	Date         *time.Time
}
