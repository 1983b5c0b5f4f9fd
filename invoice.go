package raqeeb

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Penalty item categories, keyed by the discrepancy list they derive from.
const (
	CategoryManpower  = "Manpower Discrepancy"
	CategoryMaterial  = "Material Discrepancy"
	CategoryEquipment = "Equipment Discrepancy"
)

// PenaltyItem is one charged violation on a penalty invoice.
type PenaltyItem struct {
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
}

// PenaltyInvoice is the financial artifact derived when a CDR is approved
// with a Penalty decision. Location and inspector names are denormalized
// at generation time so the invoice reads standalone.
type PenaltyInvoice struct {
	ID            uuid.UUID     `json:"id"`
	CDRID         uuid.UUID     `json:"cdrId"`
	CDRReference  string        `json:"cdrReference"`
	LocationID    string        `json:"locationId"`
	LocationName  string        `json:"locationName"`
	InspectorName string        `json:"inspectorName"`
	GeneratedAt   time.Time     `json:"generatedAt"`
	Status        PenaltyStatus `json:"status"`
	Items         []PenaltyItem `json:"items"`
	TotalAmount   float64       `json:"totalAmount"`

	ManagerName string     `json:"managerName,omitempty"`
	ApprovedAt  *time.Time `json:"approvedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PenaltyStatus represents the lifecycle state of a penalty invoice.
type PenaltyStatus string

const (
	PenaltyStatusPending  PenaltyStatus = "pending"
	PenaltyStatusDeducted PenaltyStatus = "deducted"
)

// InvoiceService defines operations for managing penalty invoices.
type InvoiceService interface {
	// FindInvoiceByID retrieves an invoice by ID.
	// Returns ENOTFOUND if the invoice does not exist.
	FindInvoiceByID(ctx context.Context, id uuid.UUID) (*PenaltyInvoice, error)

	// FindInvoices retrieves invoices matching the filter criteria.
	FindInvoices(ctx context.Context, filter InvoiceFilter) ([]*PenaltyInvoice, int, error)

	// CreateInvoice stores a derived invoice.
	// Returns ECONFLICT if an invoice already exists for the CDR.
	CreateInvoice(ctx context.Context, invoice *PenaltyInvoice) error

	// ApproveDeduction marks a pending invoice as deducted, stamping the
	// approving manager and time. Deduction is terminal: approving a
	// deducted invoice returns ECONFLICT.
	ApproveDeduction(ctx context.Context, id uuid.UUID, managerName string) (*PenaltyInvoice, error)
}

// InvoiceFilter defines criteria for filtering penalty invoices.
type InvoiceFilter struct {
	CDRID      *uuid.UUID
	LocationID *string
	Status     *PenaltyStatus
	Month      *time.Month
	Year       *int

	Offset int
	Limit  int
}
