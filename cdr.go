package raqeeb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CDR is a Corrective Discrepancy Report: a record of a contractor
// discrepancy observed during or outside an inspection. Discrepancy
// selections are violation-type strings drawn from the reference lists;
// each selection is charged once at its table rate when a penalty is
// derived.
type CDR struct {
	ID              uuid.UUID    `json:"id"`
	ReferenceNumber string       `json:"referenceNumber"`
	EmployeeID      uuid.UUID    `json:"employeeId"`
	LocationID      string       `json:"locationId"`
	Date            time.Time    `json:"date"`
	IncidentType    IncidentType `json:"incidentType"`

	InChargeName  string `json:"inChargeName"`
	InChargeID    string `json:"inChargeId"`
	InChargeEmail string `json:"inChargeEmail"`

	ServiceTypes           []ServiceType `json:"serviceTypes"`
	ManpowerDiscrepancies  []string      `json:"manpowerDiscrepancies,omitempty"`
	MaterialDiscrepancies  []string      `json:"materialDiscrepancies,omitempty"`
	EquipmentDiscrepancies []string      `json:"equipmentDiscrepancies,omitempty"`
	OnSpotActions          []string      `json:"onSpotActions,omitempty"`
	ActionPlan             []string      `json:"actionPlan,omitempty"`

	StaffComment      string   `json:"staffComment,omitempty"`
	Attachments       []string `json:"attachments,omitempty"`
	EmployeeSignature string   `json:"employeeSignature"`

	Status CDRStatus `json:"status"`

	// Manager fields are set on approval. Approval is terminal and
	// triggers penalty derivation iff the decision is Penalty.
	ManagerDecision  ManagerDecision `json:"managerDecision,omitempty"`
	ManagerComment   string          `json:"managerComment,omitempty"`
	ManagerSignature string          `json:"managerSignature,omitempty"`
	FinalizedAt      *time.Time      `json:"finalizedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Discrepancies returns every selected violation type with its invoice
// category, manpower first, then materials, then equipment.
func (c *CDR) Discrepancies() []Discrepancy {
	var out []Discrepancy
	for _, v := range c.ManpowerDiscrepancies {
		out = append(out, Discrepancy{Category: CategoryManpower, ViolationType: v})
	}
	for _, v := range c.MaterialDiscrepancies {
		out = append(out, Discrepancy{Category: CategoryMaterial, ViolationType: v})
	}
	for _, v := range c.EquipmentDiscrepancies {
		out = append(out, Discrepancy{Category: CategoryEquipment, ViolationType: v})
	}
	return out
}

// Discrepancy pairs a selected violation type with its invoice category.
type Discrepancy struct {
	Category      string
	ViolationType string
}

// CDRStatus represents the lifecycle state of a CDR.
type CDRStatus string

const (
	CDRStatusDraft     CDRStatus = "draft"
	CDRStatusSubmitted CDRStatus = "submitted"
	CDRStatusApproved  CDRStatus = "approved"
)

// IsEditable returns true if the submitting employee can still modify
// the CDR.
func (s CDRStatus) IsEditable() bool {
	return s == CDRStatusDraft
}

// IncidentType classifies the occurrence pattern of a discrepancy.
type IncidentType string

const (
	IncidentFirst         IncidentType = "first_incident"
	IncidentRepetitive    IncidentType = "repetitive"
	IncidentRoutine       IncidentType = "routine"
	IncidentInvestigation IncidentType = "investigation"
)

// ServiceType classifies the contracted service a discrepancy falls under.
type ServiceType string

const (
	ServiceHousekeeping   ServiceType = "housekeeping"
	ServiceLaundry        ServiceType = "laundry"
	ServicePestControl    ServiceType = "pest_control"
	ServiceHazardousWaste ServiceType = "hazardous_waste"
	ServiceHorticulture   ServiceType = "horticulture"
)

// ManagerDecision is the outcome a manager records when approving a CDR.
type ManagerDecision string

const (
	DecisionNone        ManagerDecision = ""
	DecisionPenalty     ManagerDecision = "penalty"
	DecisionWarning     ManagerDecision = "warning"
	DecisionAttention   ManagerDecision = "attention"
	DecisionNoValidCase ManagerDecision = "no_valid_case"
)

// CDRApproval carries the manager's decision when finalizing a CDR.
type CDRApproval struct {
	Decision  ManagerDecision
	Comment   string
	Signature string
}

// CDRService defines operations for managing corrective discrepancy reports.
type CDRService interface {
	// FindCDRByID retrieves a CDR by ID.
	// Returns ENOTFOUND if the CDR does not exist.
	FindCDRByID(ctx context.Context, id uuid.UUID) (*CDR, error)

	// FindCDRs retrieves CDRs matching the filter criteria.
	FindCDRs(ctx context.Context, filter CDRFilter) ([]*CDR, int, error)

	// CreateCDR creates a new draft CDR.
	CreateCDR(ctx context.Context, cdr *CDR) error

	// UpdateCDR updates a draft CDR.
	// Returns EINVALID if the CDR is no longer editable.
	UpdateCDR(ctx context.Context, id uuid.UUID, upd CDRUpdate) (*CDR, error)

	// SubmitCDR transitions a draft to submitted and assigns its
	// reference number.
	SubmitCDR(ctx context.Context, id uuid.UUID) (*CDR, error)

	// ApproveCDR finalizes a submitted CDR with the manager decision and
	// derives a penalty invoice when the decision warrants one. Approval
	// is terminal: re-approving an approved CDR returns ECONFLICT.
	ApproveCDR(ctx context.Context, id uuid.UUID, approval CDRApproval) (*CDR, PenaltyDerivation, error)
}

// CDRFilter defines criteria for filtering CDRs.
type CDRFilter struct {
	EmployeeID *uuid.UUID
	LocationID *string
	Status     *CDRStatus
	Decision   *ManagerDecision
	From       *time.Time
	To         *time.Time

	Offset int
	Limit  int
}

// CDRUpdate defines fields that can be updated on a draft CDR.
type CDRUpdate struct {
	LocationID             *string
	Date                   *time.Time
	IncidentType           *IncidentType
	InChargeName           *string
	InChargeID             *string
	InChargeEmail          *string
	ServiceTypes           *[]ServiceType
	ManpowerDiscrepancies  *[]string
	MaterialDiscrepancies  *[]string
	EquipmentDiscrepancies *[]string
	OnSpotActions          *[]string
	ActionPlan             *[]string
	StaffComment           *string
	Attachments            *[]string
}
