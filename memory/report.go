package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// ReportService implements raqeeb.ReportService against the in-memory
// store.
type ReportService struct {
	store *Store
}

// NewReportService returns a new instance of ReportService.
func NewReportService(store *Store) *ReportService {
	return &ReportService{store: store}
}

var _ raqeeb.ReportService = (*ReportService)(nil)

func (s *ReportService) FindReportByID(ctx context.Context, id uuid.UUID) (*raqeeb.InspectionReport, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	r, ok := s.store.reports[id]
	if !ok {
		return nil, raqeeb.NotFound("report not found")
	}
	return copyReport(r), nil
}

func (s *ReportService) FindReports(ctx context.Context, filter raqeeb.ReportFilter) ([]*raqeeb.InspectionReport, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var reports []*raqeeb.InspectionReport
	for _, r := range s.store.reports {
		if filter.InspectorID != nil && r.InspectorID != *filter.InspectorID {
			continue
		}
		if filter.LocationID != nil && r.LocationID != *filter.LocationID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.From != nil && r.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && r.Date.After(*filter.To) {
			continue
		}
		reports = append(reports, copyReport(r))
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Date.After(reports[j].Date) })

	total := len(reports)
	lo, hi := paginate(total, filter.Offset, filter.Limit)
	return reports[lo:hi], total, nil
}

func (s *ReportService) CreateReport(ctx context.Context, report *raqeeb.InspectionReport) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	return s.create(report)
}

func (s *ReportService) CreateReports(ctx context.Context, reports []*raqeeb.InspectionReport) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	batch := make([]string, 0, len(reports))
	for _, r := range reports {
		batch = append(batch, r.LocationID)
	}
	for _, r := range reports {
		if len(reports) > 1 {
			r.BatchLocationIDs = append([]string(nil), batch...)
		}
		if err := s.create(r); err != nil {
			return err
		}
	}
	return nil
}

// create validates and stores a draft. Caller must hold the write lock.
func (s *ReportService) create(report *raqeeb.InspectionReport) error {
	loc, ok := s.store.locations[report.LocationID]
	if !ok {
		return raqeeb.Invalid("unknown location %q", report.LocationID)
	}
	if _, ok := s.store.users[report.InspectorID]; !ok {
		return raqeeb.Invalid("unknown inspector")
	}
	if err := s.validateItems(report, loc); err != nil {
		return err
	}

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := s.store.clock.Now()
	report.ReferenceNumber = raqeeb.DraftReferenceNumber
	report.Status = raqeeb.ReportStatusDraft
	if report.Date.IsZero() {
		report.Date = now
	}
	report.CreatedAt = now
	report.UpdatedAt = now

	s.store.reports[report.ID] = copyReport(report)
	return nil
}

// validateItems checks every scored line against the location's form.
// Caller must hold at least the read lock.
func (s *ReportService) validateItems(report *raqeeb.InspectionReport, loc *raqeeb.Location) error {
	form, ok := s.store.forms[loc.FormID]
	if !ok {
		return raqeeb.Invalid("location %q has no assigned form", loc.ID)
	}
	for _, line := range report.Items {
		item := form.Item(line.ItemID)
		if item == nil {
			return raqeeb.Invalid("item %q is not on form %q", line.ItemID, form.ID)
		}
		if line.Score < 0 || line.Score > item.MaxScore {
			return raqeeb.Invalid("score %d out of range for item %q (max %d)", line.Score, line.ItemID, item.MaxScore)
		}
	}
	return nil
}

func (s *ReportService) UpdateReport(ctx context.Context, id uuid.UUID, upd raqeeb.ReportUpdate) (*raqeeb.InspectionReport, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	r, ok := s.store.reports[id]
	if !ok {
		return nil, raqeeb.NotFound("report not found")
	}
	if !r.Status.IsEditable() {
		return nil, raqeeb.Invalid("report %s is no longer editable", r.ReferenceNumber)
	}

	if inspector := raqeeb.UserFromContext(ctx); inspector != nil && inspector.ID != r.InspectorID {
		return nil, raqeeb.Forbidden("only the owning inspector may edit a draft")
	}

	if upd.Date != nil {
		r.Date = *upd.Date
	}
	if upd.SubLocations != nil {
		r.SubLocations = cloneStrings(*upd.SubLocations)
	}
	if upd.Items != nil {
		candidate := copyReport(r)
		candidate.Items = *upd.Items
		if err := s.validateItems(candidate, s.store.locations[r.LocationID]); err != nil {
			return nil, err
		}
		r.Items = candidate.Items
	}
	r.UpdatedAt = s.store.clock.Now()
	return copyReport(r), nil
}

func (s *ReportService) SubmitReport(ctx context.Context, id uuid.UUID) (*raqeeb.InspectionReport, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	r, ok := s.store.reports[id]
	if !ok {
		return nil, raqeeb.NotFound("report not found")
	}
	if !r.Status.CanTransitionTo(raqeeb.ReportStatusSubmitted) {
		return nil, raqeeb.Invalid("report in status %q cannot be submitted", r.Status)
	}

	now := s.store.clock.Now()
	r.Status = raqeeb.ReportStatusSubmitted
	r.ReferenceNumber = s.store.nextReportRef(r.Date.Year(), int(r.Date.Month()))
	r.UpdatedAt = now

	title := fmt.Sprintf("Inspection %s submitted", r.ReferenceNumber)
	body := fmt.Sprintf("A new inspection report was submitted for %s.", s.locationName(r.LocationID))
	s.store.notifySupervisors(ctx, raqeeb.NotificationReportSubmitted, title, body, &r.ID)

	return copyReport(r), nil
}

func (s *ReportService) SetSupervisorComment(ctx context.Context, id uuid.UUID, comment string) (*raqeeb.InspectionReport, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	r, ok := s.store.reports[id]
	if !ok {
		return nil, raqeeb.NotFound("report not found")
	}
	r.SupervisorComment = comment
	r.UpdatedAt = s.store.clock.Now()
	return copyReport(r), nil
}

func (s *ReportService) UpdateReportStatus(ctx context.Context, id uuid.UUID, status raqeeb.ReportStatus) (*raqeeb.InspectionReport, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	r, ok := s.store.reports[id]
	if !ok {
		return nil, raqeeb.NotFound("report not found")
	}
	if !r.Status.CanTransitionTo(status) {
		return nil, raqeeb.Invalid("cannot transition report from %q to %q", r.Status, status)
	}
	r.Status = status
	r.UpdatedAt = s.store.clock.Now()

	switch status {
	case raqeeb.ReportStatusReviewed:
		s.store.notify(ctx, r.InspectorID, raqeeb.NotificationReportReviewed,
			fmt.Sprintf("Inspection %s reviewed", r.ReferenceNumber),
			"Your inspection report has been reviewed.", &r.ID)
	case raqeeb.ReportStatusNeedsAction:
		s.store.notify(ctx, r.InspectorID, raqeeb.NotificationReportNeedsAction,
			fmt.Sprintf("Inspection %s needs corrective action", r.ReferenceNumber),
			"Your inspection report requires corrective action.", &r.ID)
	}

	return copyReport(r), nil
}

// locationName resolves a location's display name, falling back to the
// raw ID. Caller must hold at least the read lock.
func (s *ReportService) locationName(id string) string {
	if loc, ok := s.store.locations[id]; ok {
		return loc.Name.EN
	}
	return id
}
