package http

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
)

func (s *Server) handleListInvoices(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	offset, limit := pagination(c)
	filter := raqeeb.InvoiceFilter{Offset: offset, Limit: limit}

	if locationID := c.QueryParam("locationId"); locationID != "" {
		filter.LocationID = &locationID
	}
	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := raqeeb.PenaltyStatus(statusStr)
		filter.Status = &status
	}
	if cdrIDStr := c.QueryParam("cdrId"); cdrIDStr != "" {
		cdrID, err := parseUUID(cdrIDStr)
		if err != nil {
			return err
		}
		filter.CDRID = &cdrID
	}
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

	invoices, total, err := s.invoiceService.FindInvoices(ctx, filter)
	if err != nil {
		return err
	}

	return RespondList(c, invoices, total, offset, limit)
}

func (s *Server) handleGetInvoice(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	invoiceID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	invoice, err := s.invoiceService.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return err
	}

	return RespondOK(c, invoice)
}

func (s *Server) handleApproveDeduction(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	invoiceID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	invoice, err := s.invoiceService.ApproveDeduction(ctx, invoiceID, user.Name)
	if err != nil {
		return err
	}

	s.log(c).Info("invoice deduction approved",
		slog.String("invoice_id", invoice.ID.String()),
		slog.Float64("total", invoice.TotalAmount),
	)

	return RespondOK(c, invoice)
}
