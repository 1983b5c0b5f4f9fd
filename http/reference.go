package http

import (
	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/refdata"
)

func (s *Server) handleListZones(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	zones, err := s.zoneService.FindZones(ctx)
	if err != nil {
		return err
	}
	return RespondOK(c, zones)
}

func (s *Server) handleListLocations(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	var filter raqeeb.LocationFilter
	if zoneID := c.QueryParam("zoneId"); zoneID != "" {
		filter.ZoneID = &zoneID
	}
	if formID := c.QueryParam("formId"); formID != "" {
		filter.FormID = &formID
	}

	locations, err := s.locationService.FindLocations(ctx, filter)
	if err != nil {
		return err
	}
	return RespondOK(c, locations)
}

func (s *Server) handleGetLocation(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	locationID, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	location, err := s.locationService.FindLocationByID(ctx, locationID)
	if err != nil {
		return err
	}
	return RespondOK(c, location)
}

func (s *Server) handleListForms(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	forms, err := s.formService.FindForms(ctx)
	if err != nil {
		return err
	}
	return RespondOK(c, forms)
}

func (s *Server) handleGetForm(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	formID, err := requireParam(c, "id")
	if err != nil {
		return err
	}

	form, err := s.formService.FindFormByID(ctx, formID)
	if err != nil {
		return err
	}
	return RespondOK(c, form)
}

// PenaltyRatesResponse exposes the contractual rate table.
type PenaltyRatesResponse struct {
	Rates       map[string]float64 `json:"rates"`
	DefaultRate float64            `json:"defaultRate"`
}

func (s *Server) handlePenaltyRates(c echo.Context) error {
	table := refdata.RateTable()
	return RespondOK(c, PenaltyRatesResponse{
		Rates:       table.Rates,
		DefaultRate: table.DefaultRate,
	})
}

// DiscrepancyOptionsResponse carries the selectable option lists for the
// CDR form and report defect entry.
type DiscrepancyOptionsResponse struct {
	Manpower      []string `json:"manpower"`
	Material      []string `json:"material"`
	Equipment     []string `json:"equipment"`
	OnSpotActions []string `json:"onSpotActions"`
	ActionPlan    []string `json:"actionPlan"`
	Defects       []string `json:"defects"`
}

func (s *Server) handleDiscrepancyOptions(c echo.Context) error {
	return RespondOK(c, DiscrepancyOptionsResponse{
		Manpower:      refdata.ManpowerOptions(),
		Material:      refdata.MaterialOptions(),
		Equipment:     refdata.EquipmentOptions(),
		OnSpotActions: refdata.OnSpotActionOptions(),
		ActionPlan:    refdata.ActionPlanOptions(),
		Defects:       refdata.DefectOptions(),
	})
}
