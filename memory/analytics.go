package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// SnapshotService implements raqeeb.SnapshotService over the in-memory
// store. Each snapshot copies the collections it includes, so analytics
// run without holding the store lock.
type SnapshotService struct {
	store *Store
}

// NewSnapshotService returns a new instance of SnapshotService.
func NewSnapshotService(store *Store) *SnapshotService {
	return &SnapshotService{store: store}
}

var _ raqeeb.SnapshotService = (*SnapshotService)(nil)

func (s *SnapshotService) BuildSnapshot(ctx context.Context) (*raqeeb.Snapshot, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	snap := &raqeeb.Snapshot{
		Reports:   make([]*raqeeb.InspectionReport, 0, len(s.store.reports)),
		CDRs:      make([]*raqeeb.CDR, 0, len(s.store.cdrs)),
		Invoices:  make([]*raqeeb.PenaltyInvoice, 0, len(s.store.invoices)),
		Locations: make(map[string]*raqeeb.Location, len(s.store.locations)),
		Forms:     make(map[string]*raqeeb.InspectionForm, len(s.store.forms)),
		Zones:     make(map[string]*raqeeb.Zone, len(s.store.zones)),
		Users:     make(map[uuid.UUID]*raqeeb.User, len(s.store.users)),
		Now:       s.store.clock.Now(),
	}
	for _, r := range s.store.reports {
		snap.Reports = append(snap.Reports, copyReport(r))
	}
	for _, c := range s.store.cdrs {
		snap.CDRs = append(snap.CDRs, copyCDR(c))
	}
	for _, inv := range s.store.invoices {
		snap.Invoices = append(snap.Invoices, copyInvoice(inv))
	}
	for id, l := range s.store.locations {
		snap.Locations[id] = copyLocation(l)
	}
	for id, f := range s.store.forms {
		snap.Forms[id] = copyForm(f)
	}
	for id, z := range s.store.zones {
		snap.Zones[id] = copyZone(z)
	}
	for id, u := range s.store.users {
		snap.Users[id] = copyUser(u)
	}
	return snap, nil
}
