package raqeeb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// StatementItem is one aggregated violation row on a monthly statement.
// Invoice lines sharing a violation name and per-occurrence amount are
// collapsed into one row; manual rows may be added while the statement
// is a draft.
type StatementItem struct {
	ID                   uuid.UUID           `json:"id"`
	ViolationName        string              `json:"violationName"`
	Category             string              `json:"category"`
	OccurrenceCount      int                 `json:"occurrenceCount"`
	PenaltyPerOccurrence float64             `json:"penaltyPerOccurrence"`
	Total                float64             `json:"total"`
	Status               StatementItemStatus `json:"status"`
	ManagerNotes         string              `json:"managerNotes,omitempty"`
	LinkedCDRIDs         []uuid.UUID         `json:"linkedCdrIds,omitempty"`
	Manual               bool                `json:"manual,omitempty"`
}

// StatementItemStatus represents the review state of a statement row.
type StatementItemStatus string

const (
	StatementItemPending  StatementItemStatus = "pending"
	StatementItemApproved StatementItemStatus = "approved"
	StatementItemRejected StatementItemStatus = "rejected"
)

// GlobalPenaltyStatement is the monthly roll-up of deducted penalty
// invoices across all locations, used for contractor billing. At most
// one statement exists per (month, year).
type GlobalPenaltyStatement struct {
	ID              uuid.UUID       `json:"id"`
	ReferenceNumber string          `json:"referenceNumber"`
	Month           time.Month      `json:"month"`
	Year            int             `json:"year"`
	Status          StatementStatus `json:"status"`
	ContractorName  string          `json:"contractorName"`
	Items           []StatementItem `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	TotalViolations int             `json:"totalViolations"`
	TotalInvoices   int             `json:"totalInvoices"`
	ManagerComment  string          `json:"managerComment,omitempty"`
	GeneratedAt     time.Time       `json:"generatedAt"`

	ApprovedBy *uuid.UUID `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatementStatus represents the lifecycle state of a statement.
type StatementStatus string

const (
	StatementStatusDraft    StatementStatus = "draft"
	StatementStatusApproved StatementStatus = "approved"
)

// StatementAggregation is the output of aggregating a month's deducted
// invoices, before it is applied to a statement.
type StatementAggregation struct {
	Items           []StatementItem `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	TotalViolations int             `json:"totalViolations"`
	TotalInvoices   int             `json:"totalInvoices"`
}

// AggregateInvoices rolls the given invoices up into statement rows for
// one billing period. Only deducted invoices generated in the period
// contribute. Lines are grouped by (violation name, amount); a violation
// charged at two different rates stays two rows. Rows default to
// approved and are ordered by name, then amount, for stable output.
func AggregateInvoices(month time.Month, year int, invoices []*PenaltyInvoice) StatementAggregation {
	type groupKey struct {
		name   string
		amount float64
	}
	groups := make(map[groupKey]*StatementItem)
	var keys []groupKey
	contributing := make(map[uuid.UUID]bool)

	for _, inv := range invoices {
		if inv.Status != PenaltyStatusDeducted {
			continue
		}
		if inv.GeneratedAt.Month() != month || inv.GeneratedAt.Year() != year {
			continue
		}
		for _, line := range inv.Items {
			key := groupKey{name: line.Description, amount: line.Amount}
			item, ok := groups[key]
			if !ok {
				item = &StatementItem{
					ID:                   uuid.New(),
					ViolationName:        line.Description,
					Category:             line.Category,
					PenaltyPerOccurrence: line.Amount,
					Status:               StatementItemApproved,
				}
				groups[key] = item
				keys = append(keys, key)
			}
			item.OccurrenceCount++
			item.LinkedCDRIDs = appendUniqueID(item.LinkedCDRIDs, inv.CDRID)
			contributing[inv.ID] = true
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].amount < keys[j].amount
	})

	agg := StatementAggregation{
		Items:         make([]StatementItem, 0, len(keys)),
		TotalInvoices: len(contributing),
	}
	for _, key := range keys {
		item := groups[key]
		item.Total = float64(item.OccurrenceCount) * item.PenaltyPerOccurrence
		agg.Items = append(agg.Items, *item)
		agg.TotalAmount += item.Total
		agg.TotalViolations += item.OccurrenceCount
	}
	return agg
}

func appendUniqueID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// RecalculateTotals recomputes a statement's headline figures from its
// items. Rejected rows are zeroed and excluded from the violation count
// and amount, but remain on the statement for audit. TotalInvoices is
// untouched: it reflects the last aggregation, not row edits.
func RecalculateTotals(st *GlobalPenaltyStatement) {
	st.TotalViolations = 0
	st.TotalAmount = 0
	for i := range st.Items {
		item := &st.Items[i]
		if item.Status == StatementItemRejected {
			item.Total = 0
			continue
		}
		item.Total = float64(item.OccurrenceCount) * item.PenaltyPerOccurrence
		st.TotalViolations += item.OccurrenceCount
		st.TotalAmount += item.Total
	}
}

// StatementItemUpdate defines the editable fields of a draft statement row.
type StatementItemUpdate struct {
	OccurrenceCount      *int
	PenaltyPerOccurrence *float64
	Status               *StatementItemStatus
	ManagerNotes         *string
}

// StatementService defines operations for managing global penalty statements.
type StatementService interface {
	// FindStatementByID retrieves a statement by ID.
	// Returns ENOTFOUND if the statement does not exist.
	FindStatementByID(ctx context.Context, id uuid.UUID) (*GlobalPenaltyStatement, error)

	// FindStatements retrieves statements matching the filter criteria.
	FindStatements(ctx context.Context, filter StatementFilter) ([]*GlobalPenaltyStatement, int, error)

	// GenerateStatement aggregates the period's deducted invoices into a
	// new draft statement and assigns its reference number.
	// Returns ECONFLICT if a statement already exists for the same
	// month and year.
	GenerateStatement(ctx context.Context, month time.Month, year int, contractorName string) (*GlobalPenaltyStatement, error)

	// PreviewRefresh re-runs aggregation for a draft statement's period
	// without applying it, so callers can show what a refresh would
	// replace.
	// Returns EINVALID if the statement is approved.
	PreviewRefresh(ctx context.Context, id uuid.UUID) (*StatementAggregation, error)

	// CommitRefresh replaces a draft statement's items with a fresh
	// aggregation, discarding manual rows and row-level edits.
	// Returns EINVALID if the statement is approved.
	CommitRefresh(ctx context.Context, id uuid.UUID) (*GlobalPenaltyStatement, error)

	// AddManualItem appends a manually entered row to a draft statement
	// and recalculates totals.
	// Returns EINVALID if the statement is approved.
	AddManualItem(ctx context.Context, id uuid.UUID, item StatementItem) (*GlobalPenaltyStatement, error)

	// UpdateItem edits one row of a draft statement and recalculates
	// totals.
	// Returns EINVALID if the statement is approved.
	UpdateItem(ctx context.Context, id, itemID uuid.UUID, upd StatementItemUpdate) (*GlobalPenaltyStatement, error)

	// DeleteItem removes one row from a draft statement and recalculates
	// totals. Rejection retains a row; deletion is the explicit removal.
	// Returns EINVALID if the statement is approved.
	DeleteItem(ctx context.Context, id, itemID uuid.UUID) (*GlobalPenaltyStatement, error)

	// SetManagerComment sets the statement-level comment on a draft.
	SetManagerComment(ctx context.Context, id uuid.UUID, comment string) (*GlobalPenaltyStatement, error)

	// ApproveStatement finalizes a statement, stamping approver and time.
	// Approval is terminal: approved statements reject every edit.
	// Returns ECONFLICT if the statement is already approved.
	ApproveStatement(ctx context.Context, id uuid.UUID, approverID uuid.UUID) (*GlobalPenaltyStatement, error)
}

// StatementFilter defines criteria for filtering statements.
type StatementFilter struct {
	Month  *time.Month
	Year   *int
	Status *StatementStatus

	Offset int
	Limit  int
}
