package raqeeb

import (
	"time"

	"github.com/google/uuid"
)

// PenaltyRateTable maps violation types to their contractual amounts.
// Violation types not present in the table charge the default rate.
type PenaltyRateTable struct {
	Rates       map[string]float64
	DefaultRate float64
}

// RateFor returns the amount charged for a violation type, falling back
// to the default rate for unknown types.
func (t PenaltyRateTable) RateFor(violationType string) float64 {
	if rate, ok := t.Rates[violationType]; ok {
		return rate
	}
	return t.DefaultRate
}

// PenaltyDerivation reports why deriving an invoice from a CDR did or
// did not produce one.
type PenaltyDerivation string

const (
	// DerivationProduced means an invoice was derived.
	DerivationProduced PenaltyDerivation = "produced"

	// DerivationNotApplicable means the manager decision was not Penalty,
	// so no financial artifact is warranted.
	DerivationNotApplicable PenaltyDerivation = "not_applicable"

	// DerivationNoChargeableItems means the decision was Penalty but no
	// discrepancies were selected, so the total would be zero. No invoice
	// is created; the CDR stands as an informational record.
	DerivationNoChargeableItems PenaltyDerivation = "no_chargeable_items"
)

// DerivePenaltyInvoice builds a pending penalty invoice from an approved
// CDR. Each selected discrepancy is charged once at its table rate. An
// invoice is produced only when the manager decision is Penalty and the
// charges total a positive amount; every other case returns a nil
// invoice and the derivation outcome.
func DerivePenaltyInvoice(cdr *CDR, rates PenaltyRateTable, locationName, inspectorName string, now time.Time) (*PenaltyInvoice, PenaltyDerivation) {
	if cdr.ManagerDecision != DecisionPenalty {
		return nil, DerivationNotApplicable
	}

	var items []PenaltyItem
	var total float64
	for _, d := range cdr.Discrepancies() {
		amount := rates.RateFor(d.ViolationType)
		items = append(items, PenaltyItem{
			Description: d.ViolationType,
			Category:    d.Category,
			Amount:      amount,
		})
		total += amount
	}

	if total <= 0 {
		return nil, DerivationNoChargeableItems
	}

	return &PenaltyInvoice{
		ID:            uuid.New(),
		CDRID:         cdr.ID,
		CDRReference:  cdr.ReferenceNumber,
		LocationID:    cdr.LocationID,
		LocationName:  locationName,
		InspectorName: inspectorName,
		GeneratedAt:   now,
		Status:        PenaltyStatusPending,
		Items:         items,
		TotalAmount:   total,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, DerivationProduced
}
