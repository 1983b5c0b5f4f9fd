package refdata

import (
	"testing"

	"github.com/nasserq/raqeeb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForms(t *testing.T) {
	forms := Forms()
	require.Len(t, forms, 3)

	maxScores := map[string]int{
		FormHighRisk:   100,
		FormMediumRisk: 97,
		FormLowRisk:    100,
	}
	for _, form := range forms {
		assert.Equal(t, maxScores[form.ID], form.MaxScore(), form.Name)
		for _, item := range form.Items {
			assert.NotEmpty(t, item.Name)
			assert.Positive(t, item.MaxScore)
			assert.NotEmpty(t, item.PredefinedDefects)
		}
	}
}

func TestLocationsRoster(t *testing.T) {
	locations := Locations()
	require.Len(t, locations, 83)

	zones := make(map[string]*raqeeb.Zone)
	for _, z := range Zones() {
		zones[z.ID] = z
	}
	forms := make(map[string]*raqeeb.InspectionForm)
	for _, f := range Forms() {
		forms[f.ID] = f
	}

	counts := map[string]int{}
	seen := map[string]bool{}
	for _, loc := range locations {
		require.False(t, seen[loc.ID], "duplicate location id %s", loc.ID)
		seen[loc.ID] = true

		zone, ok := zones[loc.ZoneID]
		require.True(t, ok, "location %s references unknown zone", loc.ID)
		form, ok := forms[loc.FormID]
		require.True(t, ok, "location %s references unknown form", loc.ID)
		assert.Equal(t, zone.RiskCategory, form.RiskTier, "zone and form tier must agree for %s", loc.ID)
		assert.NotEmpty(t, loc.Name.EN)
		assert.NotEmpty(t, loc.Name.AR)
		counts[loc.ZoneID]++
	}

	assert.Equal(t, 6, counts["zone_high"])
	assert.Equal(t, 21, counts["zone_medium"])
	assert.Equal(t, 56, counts["zone_low"])
}

func TestRateTable(t *testing.T) {
	table := RateTable()

	assert.InDelta(t, 300.0, table.RateFor("Expired items"), 0.001)
	assert.InDelta(t, 1000.0, table.RateFor("Shortage of staff"), 0.001)
	assert.InDelta(t, 4000.0, table.RateFor("No MSDS on site"), 0.001)
	assert.InDelta(t, 500.0, table.RateFor("Never heard of it"), 0.001)

	// Every selectable discrepancy has an explicit rate.
	for _, opt := range ManpowerOptions() {
		_, ok := table.Rates[opt]
		assert.True(t, ok, opt)
	}
	for _, opt := range MaterialOptions() {
		_, ok := table.Rates[opt]
		assert.True(t, ok, opt)
	}
	for _, opt := range EquipmentOptions() {
		_, ok := table.Rates[opt]
		assert.True(t, ok, opt)
	}
}

func TestOptionListsAreCopies(t *testing.T) {
	opts := ManpowerOptions()
	opts[0] = "mutated"
	assert.Equal(t, "Not aware of EVS mission", ManpowerOptions()[0])
}
