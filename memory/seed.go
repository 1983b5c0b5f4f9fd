package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
	"github.com/nasserq/raqeeb/internal/auth"
)

// seedNamespace anchors deterministic entity IDs for demo data.
var seedNamespace = uuid.MustParse("a3b1f0d2-8c44-4e1b-9f27-6d5e0c9a1b42")

func seedID(kind string, n int) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%s-%d", kind, n)))
}

// SeedUser describes one demo account.
type SeedUser struct {
	ID       uuid.UUID
	Name     string
	Username string
	Password string
	Role     raqeeb.UserRole
}

// DemoUsers returns the demo accounts loaded by Seed.
func DemoUsers() []SeedUser {
	return []SeedUser{
		{ID: seedID("user", 1), Name: "Mohammed Ali", Username: "mali", Password: "password123", Role: raqeeb.RoleInspector},
		{ID: seedID("user", 2), Name: "Fatima Saad", Username: "fsaad", Password: "password123", Role: raqeeb.RoleInspector},
		{ID: seedID("user", 3), Name: "ليلى العتيبي", Username: "lotaibi", Password: "password123", Role: raqeeb.RoleInspector},
		{ID: seedID("user", 4), Name: "Khalid Alghamdi", Username: "kghamdi", Password: "password123", Role: raqeeb.RoleInspector},
		{ID: seedID("user", 5), Name: "Manager Ahmed", Username: "Manager", Password: "admin123", Role: raqeeb.RoleSupervisor},
	}
}

// Seed loads deterministic demo data: the demo accounts plus a year of
// reviewed inspection reports with a realistic score distribution,
// CDRs for the worst of them, and the invoices their approvals derived.
// Reference data must be loaded first. The generator is seeded with a
// fixed value, so repeated runs produce the same entities.
func (s *Store) Seed(ctx context.Context, year int) error {
	users := DemoUsers()
	hashes := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		hash, err := auth.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		hashes[u.ID] = hash
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.locations) == 0 || len(s.forms) == 0 {
		return fmt.Errorf("reference data must be loaded before seeding")
	}

	var inspectors []uuid.UUID
	for _, u := range users {
		s.users[u.ID] = &raqeeb.User{
			ID:       u.ID,
			Name:     u.Name,
			Username: u.Username,
			Role:     u.Role,
		}
		s.usernames[strings.ToLower(u.Username)] = u.ID
		s.passwords[u.ID] = hashes[u.ID]
		if u.Role == raqeeb.RoleInspector {
			inspectors = append(inspectors, u.ID)
		}
	}
	supervisor := users[len(users)-1]

	locations := make([]*raqeeb.Location, 0, len(s.locations))
	for _, l := range s.locations {
		locations = append(locations, l)
	}
	// Map iteration order is random; sort for determinism.
	sortLocations(locations)

	rng := rand.New(rand.NewSource(20250101))
	reportN, cdrN := 0, 0

	for month := time.January; month <= time.December; month++ {
		days := daysIn(year, month)
		for day := 1; day <= days; day++ {
			numReports := 1 + rng.Intn(3)
			for i := 0; i < numReports; i++ {
				reportN++
				date := time.Date(year, month, day, 9+i, 0, 0, 0, time.UTC)
				inspector := inspectors[rng.Intn(len(inspectors))]
				loc := locations[rng.Intn(len(locations))]
				form := s.forms[loc.FormID]

				// Summer months run hotter and dirtier.
				failureChance := 0.1
				if month >= time.June && month <= time.August {
					failureChance = 0.2
				}
				roll := rng.Float64()
				modifier := 0
				if roll < failureChance {
					modifier = -4
				} else if roll < failureChance+0.15 {
					modifier = -2
				}

				report := &raqeeb.InspectionReport{
					ID:              seedID("report", reportN),
					ReferenceNumber: s.nextReportRef(year, int(month)),
					InspectorID:     inspector,
					LocationID:      loc.ID,
					Date:            date,
					Status:          raqeeb.ReportStatusReviewed,
					Items:           seedItems(rng, form, modifier),
					CreatedAt:       date,
					UpdatedAt:       date,
				}
				if modifier < -1 {
					report.SupervisorComment = "Please improve."
				}
				s.reports[report.ID] = report

				if modifier >= -1 && rng.Float64() < 0.95 {
					continue
				}

				cdrN++
				cdr := seedCDR(rng, cdrN, inspector, loc.ID, date)
				cdr.ReferenceNumber = s.nextCDRRef(year, int(month))
				s.cdrs[cdr.ID] = cdr

				if cdr.Status != raqeeb.CDRStatusApproved {
					continue
				}
				invoice, outcome := raqeeb.DerivePenaltyInvoice(cdr, s.rates, loc.Name.EN, s.users[inspector].Name, date)
				if outcome != raqeeb.DerivationProduced {
					continue
				}
				invoice.ID = seedID("invoice", cdrN)
				s.invoices[invoice.ID] = invoice
				s.invoiceByCDR[cdr.ID] = invoice.ID

				// Most invoices reach deduction so statements have data.
				if rng.Float64() < 0.8 {
					approved := date.AddDate(0, 0, 1+rng.Intn(5))
					invoice.Status = raqeeb.PenaltyStatusDeducted
					invoice.ManagerName = supervisor.Name
					invoice.ApprovedAt = &approved
					invoice.UpdatedAt = approved
				}
			}
		}
	}

	s.logger.Info("seeded demo data",
		"reports", reportN,
		"cdrs", cdrN,
		"invoices", len(s.invoices),
	)
	return nil
}

func seedItems(rng *rand.Rand, form *raqeeb.InspectionForm, modifier int) []raqeeb.InspectionResultItem {
	lowIndex := -1
	if modifier < 0 {
		lowIndex = rng.Intn(len(form.Items))
	}

	items := make([]raqeeb.InspectionResultItem, len(form.Items))
	for i, item := range form.Items {
		score := item.MaxScore - rng.Intn(2)
		if modifier < 0 && i == lowIndex {
			score = item.MaxScore + modifier*3
		} else if modifier < -1 {
			score = item.MaxScore + modifier
		}
		if score < 0 {
			score = 0
		}

		result := raqeeb.InspectionResultItem{
			ItemID:  item.ID,
			Score:   score,
			Comment: "All clear.",
		}
		if score < item.MaxScore {
			result.Comment = "Minor issue noted during inspection."
			result.Defects = []string{item.PredefinedDefects[rng.Intn(len(item.PredefinedDefects))]}
		}
		items[i] = result
	}
	return items
}

func seedCDR(rng *rand.Rand, n int, employee uuid.UUID, locationID string, date time.Time) *raqeeb.CDR {
	var manpower, material []string
	if rng.Float64() > 0.5 {
		manpower = append(manpower, "Not approved uniform / No uniform")
	}
	if rng.Float64() > 0.7 {
		material = append(material, "Expired items")
	}
	if rng.Float64() > 0.8 {
		material = append(material, "No MSDS on site")
	}
	if len(manpower)+len(material) == 0 {
		manpower = append(manpower, "Uncooperative staff")
	}

	incident := raqeeb.IncidentFirst
	if rng.Float64() > 0.7 {
		incident = raqeeb.IncidentRepetitive
	}

	status := raqeeb.CDRStatusApproved
	decision := raqeeb.DecisionWarning
	if rng.Float64() > 0.4 {
		decision = raqeeb.DecisionPenalty
	}
	if rng.Float64() > 0.8 {
		status = raqeeb.CDRStatusSubmitted
		decision = raqeeb.DecisionNone
	}

	cdr := &raqeeb.CDR{
		ID:                    seedID("cdr", n),
		EmployeeID:            employee,
		LocationID:            locationID,
		Date:                  date,
		IncidentType:          incident,
		InChargeName:          "Unit Manager",
		InChargeID:            "U123",
		InChargeEmail:         "unit@hospital.example",
		ServiceTypes:          []raqeeb.ServiceType{raqeeb.ServiceHousekeeping},
		ManpowerDiscrepancies: manpower,
		MaterialDiscrepancies: material,
		OnSpotActions:         []string{"Informing supervisor"},
		ActionPlan:            []string{"Root cause analysis"},
		StaffComment:          "Violation noted during routine inspection.",
		EmployeeSignature:     "Inspector",
		Status:                status,
		CreatedAt:             date,
		UpdatedAt:             date,
	}
	if status == raqeeb.CDRStatusApproved {
		cdr.ManagerDecision = decision
		cdr.ManagerComment = "Approved."
		cdr.ManagerSignature = "Manager Ahmed"
		finalized := date
		cdr.FinalizedAt = &finalized
	}
	return cdr
}

func sortLocations(locations []*raqeeb.Location) {
	sort.Slice(locations, func(i, j int) bool { return locations[i].ID < locations[j].ID })
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
