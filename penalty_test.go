package raqeeb

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRateTable() PenaltyRateTable {
	return PenaltyRateTable{
		Rates: map[string]float64{
			"Expired items":       300,
			"Shortage of staff":   1000,
			"Equipment not clean": 1500,
		},
		DefaultRate: 500,
	}
}

func TestDerivePenaltyInvoice(t *testing.T) {
	now := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)
	cdr := &CDR{
		ID:                    uuid.New(),
		ReferenceNumber:       "CDR-2026-03-004",
		LocationID:            "loc_h_3",
		ManagerDecision:       DecisionPenalty,
		ManpowerDiscrepancies: []string{"Shortage of staff"},
		MaterialDiscrepancies: []string{"Expired items"},
	}

	invoice, outcome := DerivePenaltyInvoice(cdr, testRateTable(), "Ward 6-13-14-15, ER Area", "Mohammed Ali", now)
	require.NotNil(t, invoice)
	assert.Equal(t, DerivationProduced, outcome)
	assert.Equal(t, cdr.ID, invoice.CDRID)
	assert.Equal(t, "CDR-2026-03-004", invoice.CDRReference)
	assert.Equal(t, "loc_h_3", invoice.LocationID)
	assert.Equal(t, "Ward 6-13-14-15, ER Area", invoice.LocationName)
	assert.Equal(t, "Mohammed Ali", invoice.InspectorName)
	assert.Equal(t, PenaltyStatusPending, invoice.Status)
	assert.InDelta(t, 1300.0, invoice.TotalAmount, 0.001)

	require.Len(t, invoice.Items, 2)
	assert.Equal(t, CategoryManpower, invoice.Items[0].Category)
	assert.InDelta(t, 1000.0, invoice.Items[0].Amount, 0.001)
	assert.Equal(t, CategoryMaterial, invoice.Items[1].Category)
	assert.InDelta(t, 300.0, invoice.Items[1].Amount, 0.001)
}

func TestDerivePenaltyInvoiceNotApplicable(t *testing.T) {
	for _, decision := range []ManagerDecision{DecisionWarning, DecisionAttention, DecisionNoValidCase, DecisionNone} {
		cdr := &CDR{
			ID:                    uuid.New(),
			ManagerDecision:       decision,
			ManpowerDiscrepancies: []string{"Shortage of staff"},
		}

		invoice, outcome := DerivePenaltyInvoice(cdr, testRateTable(), "", "", time.Now())
		assert.Nil(t, invoice, "decision %q", decision)
		assert.Equal(t, DerivationNotApplicable, outcome)
	}
}

func TestDerivePenaltyInvoiceNoDiscrepancies(t *testing.T) {
	cdr := &CDR{
		ID:              uuid.New(),
		ManagerDecision: DecisionPenalty,
	}

	invoice, outcome := DerivePenaltyInvoice(cdr, testRateTable(), "", "", time.Now())
	assert.Nil(t, invoice)
	assert.Equal(t, DerivationNoChargeableItems, outcome)
}

func TestDerivePenaltyInvoiceUnknownTypeUsesDefault(t *testing.T) {
	cdr := &CDR{
		ID:                     uuid.New(),
		ManagerDecision:        DecisionPenalty,
		EquipmentDiscrepancies: []string{"Something unlisted"},
	}

	invoice, outcome := DerivePenaltyInvoice(cdr, testRateTable(), "", "", time.Now())
	require.NotNil(t, invoice)
	assert.Equal(t, DerivationProduced, outcome)
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, CategoryEquipment, invoice.Items[0].Category)
	assert.InDelta(t, 500.0, invoice.Items[0].Amount, 0.001)
	assert.InDelta(t, 500.0, invoice.TotalAmount, 0.001)
}

func TestDerivePenaltyInvoiceRepeatedSelectionChargedPerEntry(t *testing.T) {
	cdr := &CDR{
		ID:                    uuid.New(),
		ManagerDecision:       DecisionPenalty,
		MaterialDiscrepancies: []string{"Expired items", "Expired items"},
	}

	invoice, outcome := DerivePenaltyInvoice(cdr, testRateTable(), "", "", time.Now())
	require.NotNil(t, invoice)
	assert.Equal(t, DerivationProduced, outcome)
	assert.Len(t, invoice.Items, 2)
	assert.InDelta(t, 600.0, invoice.TotalAmount, 0.001)
}
