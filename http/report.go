package http

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
)

// CreateReportRequest is the request payload for creating an inspection report.
type CreateReportRequest struct {
	LocationID   string                        `json:"locationId" validate:"required"`
	Date         string                        `json:"date" validate:"required"`
	Items        []raqeeb.InspectionResultItem `json:"items"`
	SubLocations []string                      `json:"subLocations"`
}

func (s *Server) handleCreateReport(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req CreateReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return raqeeb.Invalid("Invalid date, expected YYYY-MM-DD")
	}

	report := &raqeeb.InspectionReport{
		InspectorID:  userID,
		LocationID:   req.LocationID,
		Date:         date,
		Items:        req.Items,
		SubLocations: req.SubLocations,
	}

	if err := s.reportService.CreateReport(ctx, report); err != nil {
		return err
	}

	s.log(c).Info("report created",
		slog.String("report_id", report.ID.String()),
		slog.String("location_id", report.LocationID),
	)

	return RespondCreated(c, report)
}

// CreateReportBatchRequest is the request payload for creating a batch of
// draft reports, one per selected location.
type CreateReportBatchRequest struct {
	LocationIDs []string `json:"locationIds" validate:"required,min=1,dive,required"`
	Date        string   `json:"date" validate:"required"`
}

func (s *Server) handleCreateReportBatch(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req CreateReportBatchRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return raqeeb.Invalid("Invalid date, expected YYYY-MM-DD")
	}

	reports := make([]*raqeeb.InspectionReport, 0, len(req.LocationIDs))
	for _, locationID := range req.LocationIDs {
		reports = append(reports, &raqeeb.InspectionReport{
			InspectorID:      userID,
			LocationID:       locationID,
			Date:             date,
			BatchLocationIDs: req.LocationIDs,
		})
	}

	if err := s.reportService.CreateReports(ctx, reports); err != nil {
		return err
	}

	s.log(c).Info("report batch created",
		slog.Int("count", len(reports)),
		slog.String("inspector_id", userID.String()),
	)

	return RespondCreated(c, reports)
}

func (s *Server) handleListReports(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	offset, limit := pagination(c)
	filter := raqeeb.ReportFilter{Offset: offset, Limit: limit}

	// Inspectors see only their own reports; supervisors see all.
	if !user.IsSupervisor() {
		filter.InspectorID = &user.ID
	}

	if locationID := c.QueryParam("locationId"); locationID != "" {
		filter.LocationID = &locationID
	}
	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := raqeeb.ReportStatus(statusStr)
		filter.Status = &status
	}
	if filter.From, err = dateQueryParam(c, "from"); err != nil {
		return err
	}
	if filter.To, err = dateQueryParam(c, "to"); err != nil {
		return err
	}

	reports, total, err := s.reportService.FindReports(ctx, filter)
	if err != nil {
		return err
	}

	return RespondList(c, reports, total, offset, limit)
}

func (s *Server) handleGetReport(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	reportID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	report, err := s.reportService.FindReportByID(ctx, reportID)
	if err != nil {
		return err
	}

	user, err := requireUser(c)
	if err != nil {
		return err
	}
	if !user.IsSupervisor() && report.InspectorID != user.ID {
		return raqeeb.Forbidden("Report belongs to another inspector")
	}

	return RespondOK(c, report)
}

// UpdateReportRequest is the request payload for updating a draft report.
type UpdateReportRequest struct {
	Items        *[]raqeeb.InspectionResultItem `json:"items"`
	SubLocations *[]string                      `json:"subLocations"`
	Date         *string                        `json:"date"`
}

func (s *Server) handleUpdateReport(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	reportID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	existing, err := s.reportService.FindReportByID(ctx, reportID)
	if err != nil {
		return err
	}
	if existing.InspectorID != user.ID {
		return raqeeb.Forbidden("Report belongs to another inspector")
	}

	var req UpdateReportRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	upd := raqeeb.ReportUpdate{
		Items:        req.Items,
		SubLocations: req.SubLocations,
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return raqeeb.Invalid("Invalid date, expected YYYY-MM-DD")
		}
		upd.Date = &date
	}

	report, err := s.reportService.UpdateReport(ctx, reportID, upd)
	if err != nil {
		return err
	}

	return RespondOK(c, report)
}

func (s *Server) handleSubmitReport(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	reportID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	existing, err := s.reportService.FindReportByID(ctx, reportID)
	if err != nil {
		return err
	}
	if existing.InspectorID != user.ID {
		return raqeeb.Forbidden("Report belongs to another inspector")
	}

	report, err := s.reportService.SubmitReport(ctx, reportID)
	if err != nil {
		return err
	}

	s.log(c).Info("report submitted",
		slog.String("report_id", report.ID.String()),
		slog.String("reference", report.ReferenceNumber),
	)

	return RespondOK(c, report)
}

// SupervisorCommentRequest is the request payload for a supervisor comment.
type SupervisorCommentRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}

func (s *Server) handleSetSupervisorComment(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	reportID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req SupervisorCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	report, err := s.reportService.SetSupervisorComment(ctx, reportID, req.Comment)
	if err != nil {
		return err
	}

	return RespondOK(c, report)
}

// UpdateReportStatusRequest is the request payload for a status change.
type UpdateReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=submitted reviewed needs_action"`
}

func (s *Server) handleUpdateReportStatus(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	reportID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateReportStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	status := raqeeb.ReportStatus(req.Status)

	report, err := s.reportService.UpdateReportStatus(ctx, reportID, status)
	if err != nil {
		return err
	}

	s.log(c).Info("report status updated",
		slog.String("report_id", reportID.String()),
		slog.String("status", string(status)),
	)

	return RespondOK(c, report)
}
