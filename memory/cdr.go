package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// CDRService implements raqeeb.CDRService against the in-memory store.
// Approval with a Penalty decision derives the penalty invoice under the
// same lock, so a CDR can never be approved twice nor double-invoiced.
type CDRService struct {
	store *Store
}

// NewCDRService returns a new instance of CDRService.
func NewCDRService(store *Store) *CDRService {
	return &CDRService{store: store}
}

var _ raqeeb.CDRService = (*CDRService)(nil)

func (s *CDRService) FindCDRByID(ctx context.Context, id uuid.UUID) (*raqeeb.CDR, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	c, ok := s.store.cdrs[id]
	if !ok {
		return nil, raqeeb.NotFound("CDR not found")
	}
	return copyCDR(c), nil
}

func (s *CDRService) FindCDRs(ctx context.Context, filter raqeeb.CDRFilter) ([]*raqeeb.CDR, int, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var cdrs []*raqeeb.CDR
	for _, c := range s.store.cdrs {
		if filter.EmployeeID != nil && c.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.LocationID != nil && c.LocationID != *filter.LocationID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if filter.Decision != nil && c.ManagerDecision != *filter.Decision {
			continue
		}
		if filter.From != nil && c.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && c.Date.After(*filter.To) {
			continue
		}
		cdrs = append(cdrs, copyCDR(c))
	}
	sort.Slice(cdrs, func(i, j int) bool { return cdrs[i].Date.After(cdrs[j].Date) })

	total := len(cdrs)
	lo, hi := paginate(total, filter.Offset, filter.Limit)
	return cdrs[lo:hi], total, nil
}

func (s *CDRService) CreateCDR(ctx context.Context, cdr *raqeeb.CDR) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if _, ok := s.store.locations[cdr.LocationID]; !ok {
		return raqeeb.Invalid("unknown location %q", cdr.LocationID)
	}
	if _, ok := s.store.users[cdr.EmployeeID]; !ok {
		return raqeeb.Invalid("unknown employee")
	}

	if cdr.ID == uuid.Nil {
		cdr.ID = uuid.New()
	}
	now := s.store.clock.Now()
	cdr.ReferenceNumber = raqeeb.DraftReferenceNumber
	cdr.Status = raqeeb.CDRStatusDraft
	cdr.ManagerDecision = raqeeb.DecisionNone
	if cdr.Date.IsZero() {
		cdr.Date = now
	}
	cdr.CreatedAt = now
	cdr.UpdatedAt = now

	s.store.cdrs[cdr.ID] = copyCDR(cdr)
	return nil
}

func (s *CDRService) UpdateCDR(ctx context.Context, id uuid.UUID, upd raqeeb.CDRUpdate) (*raqeeb.CDR, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	c, ok := s.store.cdrs[id]
	if !ok {
		return nil, raqeeb.NotFound("CDR not found")
	}
	if !c.Status.IsEditable() {
		return nil, raqeeb.Invalid("CDR %s is no longer editable", c.ReferenceNumber)
	}
	if employee := raqeeb.UserFromContext(ctx); employee != nil && employee.ID != c.EmployeeID && !employee.IsSupervisor() {
		return nil, raqeeb.Forbidden("only the submitting employee may edit a draft CDR")
	}

	if upd.LocationID != nil {
		if _, ok := s.store.locations[*upd.LocationID]; !ok {
			return nil, raqeeb.Invalid("unknown location %q", *upd.LocationID)
		}
		c.LocationID = *upd.LocationID
	}
	if upd.Date != nil {
		c.Date = *upd.Date
	}
	if upd.IncidentType != nil {
		c.IncidentType = *upd.IncidentType
	}
	if upd.InChargeName != nil {
		c.InChargeName = *upd.InChargeName
	}
	if upd.InChargeID != nil {
		c.InChargeID = *upd.InChargeID
	}
	if upd.InChargeEmail != nil {
		c.InChargeEmail = *upd.InChargeEmail
	}
	if upd.ServiceTypes != nil {
		c.ServiceTypes = append([]raqeeb.ServiceType(nil), (*upd.ServiceTypes)...)
	}
	if upd.ManpowerDiscrepancies != nil {
		c.ManpowerDiscrepancies = cloneStrings(*upd.ManpowerDiscrepancies)
	}
	if upd.MaterialDiscrepancies != nil {
		c.MaterialDiscrepancies = cloneStrings(*upd.MaterialDiscrepancies)
	}
	if upd.EquipmentDiscrepancies != nil {
		c.EquipmentDiscrepancies = cloneStrings(*upd.EquipmentDiscrepancies)
	}
	if upd.OnSpotActions != nil {
		c.OnSpotActions = cloneStrings(*upd.OnSpotActions)
	}
	if upd.ActionPlan != nil {
		c.ActionPlan = cloneStrings(*upd.ActionPlan)
	}
	if upd.StaffComment != nil {
		c.StaffComment = *upd.StaffComment
	}
	if upd.Attachments != nil {
		c.Attachments = cloneStrings(*upd.Attachments)
	}
	c.UpdatedAt = s.store.clock.Now()
	return copyCDR(c), nil
}

func (s *CDRService) SubmitCDR(ctx context.Context, id uuid.UUID) (*raqeeb.CDR, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	c, ok := s.store.cdrs[id]
	if !ok {
		return nil, raqeeb.NotFound("CDR not found")
	}
	if c.Status != raqeeb.CDRStatusDraft {
		return nil, raqeeb.Invalid("CDR in status %q cannot be submitted", c.Status)
	}

	c.Status = raqeeb.CDRStatusSubmitted
	c.ReferenceNumber = s.store.nextCDRRef(c.Date.Year(), int(c.Date.Month()))
	c.UpdatedAt = s.store.clock.Now()

	title := fmt.Sprintf("CDR %s submitted", c.ReferenceNumber)
	body := fmt.Sprintf("A new discrepancy report was submitted for %s.", s.locationName(c.LocationID))
	s.store.notifySupervisors(ctx, raqeeb.NotificationCDRSubmitted, title, body, &c.ID)

	return copyCDR(c), nil
}

func (s *CDRService) ApproveCDR(ctx context.Context, id uuid.UUID, approval raqeeb.CDRApproval) (*raqeeb.CDR, raqeeb.PenaltyDerivation, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	c, ok := s.store.cdrs[id]
	if !ok {
		return nil, "", raqeeb.NotFound("CDR not found")
	}
	if c.Status == raqeeb.CDRStatusApproved {
		return nil, "", raqeeb.Conflict("CDR %s is already approved", c.ReferenceNumber)
	}
	if c.Status != raqeeb.CDRStatusSubmitted {
		return nil, "", raqeeb.Invalid("CDR in status %q cannot be approved", c.Status)
	}
	if approval.Decision == raqeeb.DecisionNone {
		return nil, "", raqeeb.Invalid("a manager decision is required")
	}

	now := s.store.clock.Now()
	c.Status = raqeeb.CDRStatusApproved
	c.ManagerDecision = approval.Decision
	c.ManagerComment = approval.Comment
	c.ManagerSignature = approval.Signature
	c.FinalizedAt = &now

	invoice, outcome := raqeeb.DerivePenaltyInvoice(c, s.store.rates, s.locationName(c.LocationID), s.employeeName(c.EmployeeID), now)
	if outcome == raqeeb.DerivationProduced {
		if _, exists := s.store.invoiceByCDR[c.ID]; exists {
			return nil, "", raqeeb.Conflict("an invoice already exists for CDR %s", c.ReferenceNumber)
		}
		s.store.invoices[invoice.ID] = copyInvoice(invoice)
		s.store.invoiceByCDR[c.ID] = invoice.ID

		s.store.notifySupervisors(ctx, raqeeb.NotificationInvoiceDerived,
			fmt.Sprintf("Penalty invoice generated for CDR %s", c.ReferenceNumber),
			fmt.Sprintf("Total amount SAR %.2f, pending deduction approval.", invoice.TotalAmount), &invoice.ID)
	}
	c.UpdatedAt = now

	s.store.notify(ctx, c.EmployeeID, raqeeb.NotificationCDRApproved,
		fmt.Sprintf("CDR %s finalized", c.ReferenceNumber),
		fmt.Sprintf("Manager decision: %s.", approval.Decision), &c.ID)

	return copyCDR(c), outcome, nil
}

// locationName resolves a location's display name, falling back to the
// raw ID. Caller must hold at least the read lock.
func (s *CDRService) locationName(id string) string {
	if loc, ok := s.store.locations[id]; ok {
		return loc.Name.EN
	}
	return id
}

// employeeName resolves a user's display name. Caller must hold at least
// the read lock.
func (s *CDRService) employeeName(id uuid.UUID) string {
	if u, ok := s.store.users[id]; ok {
		return u.Name
	}
	return ""
}
