package http

import (
	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
)

// DashboardStats is the supervisor's top-of-dashboard summary.
type DashboardStats struct {
	AverageCompliance float64 `json:"averageCompliance"`
	ComplianceTrend   float64 `json:"complianceTrend"`

	MonthReports  int `json:"monthReports"`
	MonthCDRs     int `json:"monthCdrs"`
	PendingReview int `json:"pendingReview"`
	PendingCDRs   int `json:"pendingCdrs"`

	PendingInvoices    int     `json:"pendingInvoices"`
	PendingPenaltyDues float64 `json:"pendingPenaltyDues"`

	LowPerforming []raqeeb.LocationAverage `json:"lowPerforming"`
}

func (s *Server) handleDashboardStats(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	snap, err := s.snapshotService.BuildSnapshot(ctx)
	if err != nil {
		return err
	}

	stats := DashboardStats{
		AverageCompliance: raqeeb.AverageCompliance(snap),
		ComplianceTrend:   raqeeb.ComplianceTrend(snap),
		LowPerforming:     raqeeb.LowPerformingLocations(snap),
	}

	year, month := snap.Now.Year(), snap.Now.Month()
	for _, r := range snap.Reports {
		if r.Date.Year() == year && r.Date.Month() == month && r.Status != raqeeb.ReportStatusDraft {
			stats.MonthReports++
		}
		if r.Status == raqeeb.ReportStatusSubmitted {
			stats.PendingReview++
		}
	}
	for _, cdr := range snap.CDRs {
		if cdr.Date.Year() == year && cdr.Date.Month() == month && cdr.Status != raqeeb.CDRStatusDraft {
			stats.MonthCDRs++
		}
		if cdr.Status == raqeeb.CDRStatusSubmitted {
			stats.PendingCDRs++
		}
	}
	for _, inv := range snap.Invoices {
		if inv.Status == raqeeb.PenaltyStatusPending {
			stats.PendingInvoices++
			stats.PendingPenaltyDues += inv.TotalAmount
		}
	}

	return RespondOK(c, stats)
}

func (s *Server) handleRiskHotspots(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	snap, err := s.snapshotService.BuildSnapshot(ctx)
	if err != nil {
		return err
	}

	return RespondOK(c, raqeeb.RiskHotspots(snap))
}

func (s *Server) handleCriticalReports(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	snap, err := s.snapshotService.BuildSnapshot(ctx)
	if err != nil {
		return err
	}

	return RespondOK(c, raqeeb.CriticalReports(snap))
}

func (s *Server) handleItemStats(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	tier := raqeeb.RiskCategory(c.QueryParam("tier"))
	switch tier {
	case raqeeb.RiskHigh, raqeeb.RiskMedium, raqeeb.RiskLow:
	case "":
		tier = raqeeb.RiskHigh
	default:
		return raqeeb.Invalid("Unknown risk tier %q", string(tier))
	}

	snap, err := s.snapshotService.BuildSnapshot(ctx)
	if err != nil {
		return err
	}

	return RespondOK(c, raqeeb.ItemStatsByTier(snap, tier))
}

func (s *Server) handleInspectorRanking(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	snap, err := s.snapshotService.BuildSnapshot(ctx)
	if err != nil {
		return err
	}

	return RespondOK(c, raqeeb.InspectorRanking(snap))
}

// MyPerformance summarizes one inspector's own activity and outcomes.
type MyPerformance struct {
	MonthReports      int     `json:"monthReports"`
	TotalReports      int     `json:"totalReports"`
	DraftReports      int     `json:"draftReports"`
	AverageCompliance float64 `json:"averageCompliance"`
	CriticalReports   int     `json:"criticalReports"`
}

func (s *Server) handleMyPerformance(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	snap, err := s.snapshotService.BuildSnapshot(ctx)
	if err != nil {
		return err
	}

	var perf MyPerformance
	var sum float64
	var scored int
	year, month := snap.Now.Year(), snap.Now.Month()
	for _, r := range snap.Reports {
		if r.InspectorID != userID {
			continue
		}
		perf.TotalReports++
		if r.Date.Year() == year && r.Date.Month() == month {
			perf.MonthReports++
		}
		if r.Status == raqeeb.ReportStatusDraft {
			perf.DraftReports++
			continue
		}
		res := raqeeb.ComputeCompliance(r, snap.FormForLocation(r.LocationID))
		sum += res.Score
		scored++
		if res.Score < raqeeb.CriticalThreshold {
			perf.CriticalReports++
		}
	}
	if scored > 0 {
		perf.AverageCompliance = sum / float64(scored)
	}

	return RespondOK(c, perf)
}
