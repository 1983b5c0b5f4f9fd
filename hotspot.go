package raqeeb

import (
	"fmt"
	"sort"
	"time"
)

// Risk scoring defaults for locations with no inspection history.
const (
	defaultLastScore = 70.0
	defaultDaysSince = 30
	recentCDRWindow  = 30 * 24 * time.Hour
	hotspotLimit     = 3
	lowScoreFactor   = 85.0
	staleVisitFactor = 14
)

// RiskHotspot is one location ranked by its composite risk score.
type RiskHotspot struct {
	LocationID string   `json:"locationId"`
	Name       string   `json:"name"`
	ZoneID     string   `json:"zoneId"`
	RiskScore  float64  `json:"riskScore"`
	LastScore  float64  `json:"lastScore"`
	DaysSince  int      `json:"daysSince"`
	RecentCDRs int      `json:"recentCdrs"`
	KeyFactors []string `json:"keyFactors"`
}

// RiskHotspots ranks every location by a composite risk score and returns
// the top entries. The base score rewards low recent compliance, long
// gaps since the last visit, and recent discrepancy reports; the zone's
// risk category then scales it. Locations never inspected fall back to a
// neutral last score and a stale visit gap.
func RiskHotspots(snap *Snapshot) []RiskHotspot {
	hotspots := make([]RiskHotspot, 0, len(snap.Locations))
	for id, loc := range snap.Locations {
		h := scoreLocation(snap, id, loc)
		hotspots = append(hotspots, h)
	}

	sort.SliceStable(hotspots, func(i, j int) bool {
		if hotspots[i].RiskScore != hotspots[j].RiskScore {
			return hotspots[i].RiskScore > hotspots[j].RiskScore
		}
		return hotspots[i].LocationID < hotspots[j].LocationID
	})
	if len(hotspots) > hotspotLimit {
		hotspots = hotspots[:hotspotLimit]
	}
	return hotspots
}

func scoreLocation(snap *Snapshot, id string, loc *Location) RiskHotspot {
	lastScore := defaultLastScore
	daysSince := defaultDaysSince

	var last *InspectionReport
	for _, r := range snap.Reports {
		if r.LocationID != id || r.Status == ReportStatusDraft {
			continue
		}
		if last == nil || r.Date.After(last.Date) {
			last = r
		}
	}
	if last != nil {
		if res := snap.compliance(last); res.Resolved {
			lastScore = res.Score
		}
		daysSince = int(snap.Now.Sub(last.Date).Hours() / 24)
		if daysSince < 0 {
			daysSince = 0
		}
	}

	recentCDRs := 0
	cutoff := snap.Now.Add(-recentCDRWindow)
	for _, cdr := range snap.CDRs {
		if cdr.LocationID != id || cdr.Status == CDRStatusDraft {
			continue
		}
		if cdr.Date.After(cutoff) {
			recentCDRs++
		}
	}

	base := (100 - lastScore) + float64(daysSince)/2 + float64(recentCDRs)*10

	multiplier := RiskLow.Multiplier()
	if zone, ok := snap.Zones[loc.ZoneID]; ok {
		multiplier = zone.RiskCategory.Multiplier()
	}

	h := RiskHotspot{
		LocationID: id,
		Name:       loc.Name.EN,
		ZoneID:     loc.ZoneID,
		RiskScore:  base * multiplier,
		LastScore:  lastScore,
		DaysSince:  daysSince,
		RecentCDRs: recentCDRs,
	}
	if lastScore < lowScoreFactor {
		h.KeyFactors = append(h.KeyFactors, fmt.Sprintf("Last compliance %.0f%%", lastScore))
	}
	if daysSince > staleVisitFactor {
		h.KeyFactors = append(h.KeyFactors, fmt.Sprintf("%d days since last inspection", daysSince))
	}
	if recentCDRs > 0 {
		h.KeyFactors = append(h.KeyFactors, fmt.Sprintf("%d recent discrepancy reports", recentCDRs))
	}
	return h
}
