package http

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nasserq/raqeeb"
)

// CreateCDRRequest is the request payload for creating a discrepancy report.
type CreateCDRRequest struct {
	LocationID   string `json:"locationId" validate:"required"`
	Date         string `json:"date" validate:"required"`
	IncidentType string `json:"incidentType" validate:"required,oneof=first_incident repetitive routine investigation"`

	InChargeName  string `json:"inChargeName" validate:"required,max=100"`
	InChargeID    string `json:"inChargeId" validate:"max=50"`
	InChargeEmail string `json:"inChargeEmail" validate:"omitempty,email"`

	ServiceTypes           []string `json:"serviceTypes" validate:"required,min=1,dive,oneof=housekeeping laundry pest_control hazardous_waste horticulture"`
	ManpowerDiscrepancies  []string `json:"manpowerDiscrepancies"`
	MaterialDiscrepancies  []string `json:"materialDiscrepancies"`
	EquipmentDiscrepancies []string `json:"equipmentDiscrepancies"`
	OnSpotActions          []string `json:"onSpotActions"`
	ActionPlan             []string `json:"actionPlan"`

	StaffComment      string   `json:"staffComment" validate:"max=2000"`
	Attachments       []string `json:"attachments"`
	EmployeeSignature string   `json:"employeeSignature" validate:"required"`
}

func (s *Server) handleCreateCDR(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req CreateCDRRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return raqeeb.Invalid("Invalid date, expected YYYY-MM-DD")
	}

	serviceTypes := make([]raqeeb.ServiceType, 0, len(req.ServiceTypes))
	for _, st := range req.ServiceTypes {
		serviceTypes = append(serviceTypes, raqeeb.ServiceType(st))
	}

	cdr := &raqeeb.CDR{
		EmployeeID:             userID,
		LocationID:             req.LocationID,
		Date:                   date,
		IncidentType:           raqeeb.IncidentType(req.IncidentType),
		InChargeName:           req.InChargeName,
		InChargeID:             req.InChargeID,
		InChargeEmail:          req.InChargeEmail,
		ServiceTypes:           serviceTypes,
		ManpowerDiscrepancies:  req.ManpowerDiscrepancies,
		MaterialDiscrepancies:  req.MaterialDiscrepancies,
		EquipmentDiscrepancies: req.EquipmentDiscrepancies,
		OnSpotActions:          req.OnSpotActions,
		ActionPlan:             req.ActionPlan,
		StaffComment:           req.StaffComment,
		Attachments:            req.Attachments,
		EmployeeSignature:      req.EmployeeSignature,
	}

	if err := s.cdrService.CreateCDR(ctx, cdr); err != nil {
		return err
	}

	s.log(c).Info("cdr created",
		slog.String("cdr_id", cdr.ID.String()),
		slog.String("location_id", cdr.LocationID),
	)

	return RespondCreated(c, cdr)
}

func (s *Server) handleListCDRs(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	offset, limit := pagination(c)
	filter := raqeeb.CDRFilter{Offset: offset, Limit: limit}

	if !user.IsSupervisor() {
		filter.EmployeeID = &user.ID
	}

	if locationID := c.QueryParam("locationId"); locationID != "" {
		filter.LocationID = &locationID
	}
	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := raqeeb.CDRStatus(statusStr)
		filter.Status = &status
	}
	if decisionStr := c.QueryParam("decision"); decisionStr != "" {
		decision := raqeeb.ManagerDecision(decisionStr)
		filter.Decision = &decision
	}
	if filter.From, err = dateQueryParam(c, "from"); err != nil {
		return err
	}
	if filter.To, err = dateQueryParam(c, "to"); err != nil {
		return err
	}

	cdrs, total, err := s.cdrService.FindCDRs(ctx, filter)
	if err != nil {
		return err
	}

	return RespondList(c, cdrs, total, offset, limit)
}

func (s *Server) handleGetCDR(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	cdrID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	cdr, err := s.cdrService.FindCDRByID(ctx, cdrID)
	if err != nil {
		return err
	}

	user, err := requireUser(c)
	if err != nil {
		return err
	}
	if !user.IsSupervisor() && cdr.EmployeeID != user.ID {
		return raqeeb.Forbidden("CDR belongs to another employee")
	}

	return RespondOK(c, cdr)
}

// UpdateCDRRequest is the request payload for updating a draft CDR.
type UpdateCDRRequest struct {
	LocationID   *string `json:"locationId"`
	Date         *string `json:"date"`
	IncidentType *string `json:"incidentType" validate:"omitempty,oneof=first_incident repetitive routine investigation"`

	InChargeName  *string `json:"inChargeName" validate:"omitempty,max=100"`
	InChargeID    *string `json:"inChargeId" validate:"omitempty,max=50"`
	InChargeEmail *string `json:"inChargeEmail" validate:"omitempty,email"`

	ServiceTypes           *[]string `json:"serviceTypes"`
	ManpowerDiscrepancies  *[]string `json:"manpowerDiscrepancies"`
	MaterialDiscrepancies  *[]string `json:"materialDiscrepancies"`
	EquipmentDiscrepancies *[]string `json:"equipmentDiscrepancies"`
	OnSpotActions          *[]string `json:"onSpotActions"`
	ActionPlan             *[]string `json:"actionPlan"`

	StaffComment *string   `json:"staffComment" validate:"omitempty,max=2000"`
	Attachments  *[]string `json:"attachments"`
}

func (s *Server) handleUpdateCDR(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	cdrID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	existing, err := s.cdrService.FindCDRByID(ctx, cdrID)
	if err != nil {
		return err
	}
	if existing.EmployeeID != user.ID {
		return raqeeb.Forbidden("CDR belongs to another employee")
	}

	var req UpdateCDRRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	upd := raqeeb.CDRUpdate{
		LocationID:             req.LocationID,
		InChargeName:           req.InChargeName,
		InChargeID:             req.InChargeID,
		InChargeEmail:          req.InChargeEmail,
		ManpowerDiscrepancies:  req.ManpowerDiscrepancies,
		MaterialDiscrepancies:  req.MaterialDiscrepancies,
		EquipmentDiscrepancies: req.EquipmentDiscrepancies,
		OnSpotActions:          req.OnSpotActions,
		ActionPlan:             req.ActionPlan,
		StaffComment:           req.StaffComment,
		Attachments:            req.Attachments,
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return raqeeb.Invalid("Invalid date, expected YYYY-MM-DD")
		}
		upd.Date = &date
	}
	if req.IncidentType != nil {
		incident := raqeeb.IncidentType(*req.IncidentType)
		upd.IncidentType = &incident
	}
	if req.ServiceTypes != nil {
		serviceTypes := make([]raqeeb.ServiceType, 0, len(*req.ServiceTypes))
		for _, st := range *req.ServiceTypes {
			serviceTypes = append(serviceTypes, raqeeb.ServiceType(st))
		}
		upd.ServiceTypes = &serviceTypes
	}

	cdr, err := s.cdrService.UpdateCDR(ctx, cdrID, upd)
	if err != nil {
		return err
	}

	return RespondOK(c, cdr)
}

func (s *Server) handleSubmitCDR(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	cdrID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := requireUser(c)
	if err != nil {
		return err
	}

	existing, err := s.cdrService.FindCDRByID(ctx, cdrID)
	if err != nil {
		return err
	}
	if existing.EmployeeID != user.ID {
		return raqeeb.Forbidden("CDR belongs to another employee")
	}

	cdr, err := s.cdrService.SubmitCDR(ctx, cdrID)
	if err != nil {
		return err
	}

	s.log(c).Info("cdr submitted",
		slog.String("cdr_id", cdr.ID.String()),
		slog.String("reference", cdr.ReferenceNumber),
	)

	return RespondOK(c, cdr)
}

// ApproveCDRRequest is the request payload for the manager's final decision.
type ApproveCDRRequest struct {
	Decision  string `json:"decision" validate:"required,oneof=penalty warning attention no_valid_case"`
	Comment   string `json:"comment" validate:"max=2000"`
	Signature string `json:"signature" validate:"required"`
}

// ApproveCDRResponse carries the finalized CDR together with the
// derivation outcome so the client can surface what happened financially.
type ApproveCDRResponse struct {
	CDR        *raqeeb.CDR              `json:"cdr"`
	Derivation raqeeb.PenaltyDerivation `json:"derivation"`
}

func (s *Server) handleApproveCDR(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()

	cdrID, err := requireUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req ApproveCDRRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	approval := raqeeb.CDRApproval{
		Decision:  raqeeb.ManagerDecision(req.Decision),
		Comment:   req.Comment,
		Signature: req.Signature,
	}

	cdr, derivation, err := s.cdrService.ApproveCDR(ctx, cdrID, approval)
	if err != nil {
		return err
	}

	s.log(c).Info("cdr approved",
		slog.String("cdr_id", cdr.ID.String()),
		slog.String("decision", string(approval.Decision)),
		slog.String("derivation", string(derivation)),
	)

	return RespondOK(c, ApproveCDRResponse{CDR: cdr, Derivation: derivation})
}
