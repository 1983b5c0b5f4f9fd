package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/internal/export"
)

// GenerateStatementRequest is the request payload for generating a monthly
// penalty statement.
type GenerateStatementRequest struct {
	Month          int    `json:"month" validate:"required,gte=1,lte=12"`
	Year           int    `json:"year" validate:"required,gte=2000,lte=2100"`
	ContractorName string `json:"contractorName" validate:"required,max=200"`
}

func (s *Server) handleGenerateStatement(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var req GenerateStatementRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	stmt, err := s.statementService.GenerateStatement(ctx, time.Month(req.Month), req.Year, req.ContractorName)
	if err != nil {
		return err
	}

	s.log(c).Info("statement generated",
		slog.String("statement_id", stmt.ID.String()),
		slog.String("reference", stmt.ReferenceNumber),
	)

	return RespondCreated(c, stmt)
}

func (s *Server) handleListStatements(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	offset, limit := pagination(c)
	filter := raqeeb.StatementFilter{Offset: offset, Limit: limit}

	if monthStr := c.QueryParam("month"); monthStr != "" {
		m, err := strconv.Atoi(monthStr)
		if err != nil || m < 1 || m > 12 {
			return raqeeb.Invalid("Invalid month, expected 1-12")
		}
		month := time.Month(m)
		filter.Month = &month
	}
	if yearStr := c.QueryParam("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return raqeeb.Invalid("Invalid year")
		}
		filter.Year = &year
	}
	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := raqeeb.StatementStatus(statusStr)
		filter.Status = &status
	}

	statements, total, err := s.statementService.FindStatements(ctx, filter)
	if err != nil {
		return err
	}

	return RespondList(c, statements, total, offset, limit)
}

func (s *Server) handleGetStatement(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	statementID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	stmt, err := s.statementService.FindStatementByID(ctx, statementID)
	if err != nil {
		return err
	}

	return RespondOK(c, stmt)
}

func (s *Server) handlePreviewRefresh(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	statementID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	agg, err := s.statementService.PreviewRefresh(ctx, statementID)
	if err != nil {
		return err
	}

	return RespondOK(c, agg)
}

// CommitRefreshRequest carries the confirmation for a destructive refresh.
type CommitRefreshRequest struct {
	Confirm bool `json:"confirm"`
}

func (s *Server) handleCommitRefresh(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	statementID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	// Refresh replaces every item, discarding manual rows and edits, so
	// the caller must confirm explicitly.
	var req CommitRefreshRequest
	if err := c.Bind(&req); err != nil {
		return raqeeb.Invalid("Invalid request body")
	}
	if !req.Confirm && c.QueryParam("confirm") != "true" {
		return raqeeb.Invalid("Refresh replaces all statement items; set confirm to true to proceed")
	}

	stmt, err := s.statementService.CommitRefresh(ctx, statementID)
	if err != nil {
		return err
	}

	s.log(c).Info("statement refreshed", slog.String("statement_id", stmt.ID.String()))

	return RespondOK(c, stmt)
}

// AddStatementItemRequest is the request payload for a manual statement row.
type AddStatementItemRequest struct {
	ViolationName        string  `json:"violationName" validate:"required,max=200"`
	Category             string  `json:"category" validate:"required,max=100"`
	OccurrenceCount      int     `json:"occurrenceCount" validate:"required,gte=1"`
	PenaltyPerOccurrence float64 `json:"penaltyPerOccurrence" validate:"required,gt=0"`
	ManagerNotes         string  `json:"managerNotes" validate:"max=2000"`
}

func (s *Server) handleAddStatementItem(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	statementID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req AddStatementItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item := raqeeb.StatementItem{
		ViolationName:        req.ViolationName,
		Category:             req.Category,
		OccurrenceCount:      req.OccurrenceCount,
		PenaltyPerOccurrence: req.PenaltyPerOccurrence,
		ManagerNotes:         req.ManagerNotes,
		Manual:               true,
	}

	stmt, err := s.statementService.AddManualItem(ctx, statementID, item)
	if err != nil {
		return err
	}

	return RespondOK(c, stmt)
}

// UpdateStatementItemRequest is the request payload for editing a row.
type UpdateStatementItemRequest struct {
	OccurrenceCount      *int     `json:"occurrenceCount" validate:"omitempty,gte=1"`
	PenaltyPerOccurrence *float64 `json:"penaltyPerOccurrence" validate:"omitempty,gt=0"`
	Status               *string  `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	ManagerNotes         *string  `json:"managerNotes" validate:"omitempty,max=2000"`
}

func (s *Server) handleUpdateStatementItem(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	statementID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	itemID, err := requireUUIDParam(c, "itemId")
	if err != nil {
		return err
	}

	var req UpdateStatementItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	upd := raqeeb.StatementItemUpdate{
		OccurrenceCount:      req.OccurrenceCount,
		PenaltyPerOccurrence: req.PenaltyPerOccurrence,
		ManagerNotes:         req.ManagerNotes,
	}
	if req.Status != nil {
		status := raqeeb.StatementItemStatus(*req.Status)
		upd.Status = &status
	}

	stmt, err := s.statementService.UpdateItem(ctx, statementID, itemID, upd)
	if err != nil {
		return err
	}

	return RespondOK(c, stmt)
}

func (s *Server) handleDeleteStatementItem(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	statementID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}
	itemID, err := requireUUIDParam(c, "itemId")
	if err != nil {
		return err
	}

	stmt, err := s.statementService.DeleteItem(ctx, statementID, itemID)
	if err != nil {
		return err
	}

	return RespondOK(c, stmt)
}

// ManagerCommentRequest is the request payload for the statement comment.
type ManagerCommentRequest struct {
	Comment string `json:"comment" validate:"max=2000"`
}

func (s *Server) handleSetManagerComment(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	statementID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ManagerCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	stmt, err := s.statementService.SetManagerComment(ctx, statementID, req.Comment)
	if err != nil {
		return err
	}

	return RespondOK(c, stmt)
}

func (s *Server) handleApproveStatement(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	statementID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	stmt, err := s.statementService.ApproveStatement(ctx, statementID, user.ID)
	if err != nil {
		return err
	}

	s.log(c).Info("statement approved",
		slog.String("statement_id", stmt.ID.String()),
		slog.String("reference", stmt.ReferenceNumber),
	)

	// Queue the export so the approved statement reaches billing by email.
	if s.queue != nil {
		payload := map[string]interface{}{
			"statement_id": stmt.ID.String(),
			"approver_id":  user.ID.String(),
		}
		if _, err := s.queue.Enqueue(ctx, "exports", "statement_export", payload, nil); err != nil {
			s.log(c).Error("failed to enqueue statement export", slog.String("error", err.Error()))
		}
	}

	return RespondOK(c, stmt)
}

func (s *Server) handleExportStatement(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	statementID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	stmt, err := s.statementService.FindStatementByID(ctx, statementID)
	if err != nil {
		return err
	}

	data, err := export.StatementWorkbook(stmt)
	if err != nil {
		return raqeeb.Internal("Failed to render statement workbook", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+export.StatementFilename(stmt)+`"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
