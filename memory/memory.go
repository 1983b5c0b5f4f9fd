// Package memory implements the application's entity store as in-memory
// collections guarded by a single RWMutex. It is the authoritative store
// for a running instance; the postgres package mirrors writes for
// durability. Collections follow a last-write-wins policy: updates
// replace fields without version checks.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// Mailer enqueues outbound email for a notification. Delivery is
// fire-and-forget: failures are logged, never surfaced to the caller.
type Mailer interface {
	EnqueueNotificationEmail(ctx context.Context, userID uuid.UUID, subject, body string) error
}

// Config configures a Store.
type Config struct {
	Clock     raqeeb.Clock
	RateTable raqeeb.PenaltyRateTable
	Logger    *slog.Logger
	Mailer    Mailer
}

// Store holds every entity collection behind one lock. Individual
// services share a Store; cross-collection operations (CDR approval
// deriving an invoice, statement generation) stay consistent because
// they run under the same lock.
type Store struct {
	mu     sync.RWMutex
	clock  raqeeb.Clock
	rates  raqeeb.PenaltyRateTable
	logger *slog.Logger
	mailer Mailer

	users     map[uuid.UUID]*raqeeb.User
	usernames map[string]uuid.UUID
	passwords map[uuid.UUID]string
	sessions  map[string]*raqeeb.Session

	zones     map[string]*raqeeb.Zone
	locations map[string]*raqeeb.Location
	forms     map[string]*raqeeb.InspectionForm

	reports       map[uuid.UUID]*raqeeb.InspectionReport
	cdrs          map[uuid.UUID]*raqeeb.CDR
	invoices      map[uuid.UUID]*raqeeb.PenaltyInvoice
	invoiceByCDR  map[uuid.UUID]uuid.UUID
	statements    map[uuid.UUID]*raqeeb.GlobalPenaltyStatement
	notifications map[uuid.UUID]*raqeeb.Notification

	// Per-month sequences for reference number assignment.
	reportSeq map[string]int
	cdrSeq    map[string]int
}

// NewStore creates an empty store. Reference data and demo entities are
// loaded separately via LoadReferenceData and Seed.
func NewStore(config Config) *Store {
	clock := config.Clock
	if clock == nil {
		clock = raqeeb.SystemClock()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		clock:  clock,
		rates:  config.RateTable,
		logger: logger,
		mailer: config.Mailer,

		users:     make(map[uuid.UUID]*raqeeb.User),
		usernames: make(map[string]uuid.UUID),
		passwords: make(map[uuid.UUID]string),
		sessions:  make(map[string]*raqeeb.Session),

		zones:     make(map[string]*raqeeb.Zone),
		locations: make(map[string]*raqeeb.Location),
		forms:     make(map[string]*raqeeb.InspectionForm),

		reports:       make(map[uuid.UUID]*raqeeb.InspectionReport),
		cdrs:          make(map[uuid.UUID]*raqeeb.CDR),
		invoices:      make(map[uuid.UUID]*raqeeb.PenaltyInvoice),
		invoiceByCDR:  make(map[uuid.UUID]uuid.UUID),
		statements:    make(map[uuid.UUID]*raqeeb.GlobalPenaltyStatement),
		notifications: make(map[uuid.UUID]*raqeeb.Notification),

		reportSeq: make(map[string]int),
		cdrSeq:    make(map[string]int),
	}
}

// LoadReferenceData replaces the zone, location, and form collections.
func (s *Store) LoadReferenceData(zones []*raqeeb.Zone, locations []*raqeeb.Location, forms []*raqeeb.InspectionForm) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.zones = make(map[string]*raqeeb.Zone, len(zones))
	for _, z := range zones {
		s.zones[z.ID] = copyZone(z)
	}
	s.locations = make(map[string]*raqeeb.Location, len(locations))
	for _, l := range locations {
		s.locations[l.ID] = copyLocation(l)
	}
	s.forms = make(map[string]*raqeeb.InspectionForm, len(forms))
	for _, f := range forms {
		s.forms[f.ID] = copyForm(f)
	}
}

// monthKey formats the sequence bucket for reference numbers.
func monthKey(year int, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// nextReportRef assigns the next inspection reference for the month.
// Caller must hold the write lock.
func (s *Store) nextReportRef(year, month int) string {
	key := monthKey(year, month)
	s.reportSeq[key]++
	return fmt.Sprintf("INSP-%04d-%02d-%03d", year, month, s.reportSeq[key])
}

// nextCDRRef assigns the next CDR reference for the month.
// Caller must hold the write lock.
func (s *Store) nextCDRRef(year, month int) string {
	key := monthKey(year, month)
	s.cdrSeq[key]++
	return fmt.Sprintf("CDR-%04d-%02d-%03d", year, month, s.cdrSeq[key])
}

// statementRef formats the statement reference for a period. Statements
// are unique per month, so the suffix is constant.
func statementRef(year int, month int) string {
	return fmt.Sprintf("GPS-%04d-%02d-001", year, month)
}

// notify stores an in-app notification and hands it to the mailer when
// one is attached. Caller must hold the write lock.
func (s *Store) notify(ctx context.Context, userID uuid.UUID, typ raqeeb.NotificationType, title, body string, entityID *uuid.UUID) {
	n := &raqeeb.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Body:      body,
		EntityID:  entityID,
		CreatedAt: s.clock.Now(),
	}
	s.notifications[n.ID] = n

	if s.mailer != nil {
		if err := s.mailer.EnqueueNotificationEmail(ctx, userID, title, body); err != nil {
			s.logger.Error("failed to enqueue notification email",
				slog.String("user_id", userID.String()),
				slog.String("type", string(typ)),
				slog.Any("error", err),
			)
		}
	}
}

// notifySupervisors fans a notification out to every supervisor.
// Caller must hold the write lock.
func (s *Store) notifySupervisors(ctx context.Context, typ raqeeb.NotificationType, title, body string, entityID *uuid.UUID) {
	for _, u := range s.users {
		if u.IsSupervisor() {
			s.notify(ctx, u.ID, typ, title, body, entityID)
		}
	}
}

// paginate applies offset/limit to a slice length, returning the bounds.
func paginate(n, offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
