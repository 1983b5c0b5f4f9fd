package memory

import (
	"strings"

	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// Dump is a full copy of the store's mutable state, used by the
// postgres mirror to persist and restore the store across restarts.
// Reference data (zones, locations, forms) is excluded: it is loaded
// from refdata on every start.
type Dump struct {
	Users         []*raqeeb.User                   `json:"users"`
	Passwords     map[uuid.UUID]string             `json:"passwords"`
	Sessions      []*raqeeb.Session                `json:"sessions"`
	Reports       []*raqeeb.InspectionReport       `json:"reports"`
	CDRs          []*raqeeb.CDR                    `json:"cdrs"`
	Invoices      []*raqeeb.PenaltyInvoice         `json:"invoices"`
	Statements    []*raqeeb.GlobalPenaltyStatement `json:"statements"`
	Notifications []*raqeeb.Notification           `json:"notifications"`
	ReportSeq     map[string]int                   `json:"reportSeq"`
	CDRSeq        map[string]int                   `json:"cdrSeq"`
}

// Dump copies the store's mutable collections.
func (s *Store) Dump() *Dump {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := &Dump{
		Passwords: make(map[uuid.UUID]string, len(s.passwords)),
		ReportSeq: make(map[string]int, len(s.reportSeq)),
		CDRSeq:    make(map[string]int, len(s.cdrSeq)),
	}
	for _, u := range s.users {
		d.Users = append(d.Users, copyUser(u))
	}
	for id, hash := range s.passwords {
		d.Passwords[id] = hash
	}
	for _, sess := range s.sessions {
		d.Sessions = append(d.Sessions, copySession(sess))
	}
	for _, r := range s.reports {
		d.Reports = append(d.Reports, copyReport(r))
	}
	for _, c := range s.cdrs {
		d.CDRs = append(d.CDRs, copyCDR(c))
	}
	for _, inv := range s.invoices {
		d.Invoices = append(d.Invoices, copyInvoice(inv))
	}
	for _, st := range s.statements {
		d.Statements = append(d.Statements, copyStatement(st))
	}
	for _, n := range s.notifications {
		d.Notifications = append(d.Notifications, copyNotification(n))
	}
	for k, v := range s.reportSeq {
		d.ReportSeq[k] = v
	}
	for k, v := range s.cdrSeq {
		d.CDRSeq[k] = v
	}
	return d
}

// Restore replaces the store's mutable collections with the dump's
// contents. Derived indexes are rebuilt from the restored entities.
func (s *Store) Restore(d *Dump) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[uuid.UUID]*raqeeb.User, len(d.Users))
	s.usernames = make(map[string]uuid.UUID, len(d.Users))
	for _, u := range d.Users {
		s.users[u.ID] = copyUser(u)
		s.usernames[strings.ToLower(u.Username)] = u.ID
	}

	s.passwords = make(map[uuid.UUID]string, len(d.Passwords))
	for id, hash := range d.Passwords {
		s.passwords[id] = hash
	}

	s.sessions = make(map[string]*raqeeb.Session, len(d.Sessions))
	for _, sess := range d.Sessions {
		s.sessions[sess.Token] = copySession(sess)
	}

	s.reports = make(map[uuid.UUID]*raqeeb.InspectionReport, len(d.Reports))
	for _, r := range d.Reports {
		s.reports[r.ID] = copyReport(r)
	}

	s.cdrs = make(map[uuid.UUID]*raqeeb.CDR, len(d.CDRs))
	for _, c := range d.CDRs {
		s.cdrs[c.ID] = copyCDR(c)
	}

	s.invoices = make(map[uuid.UUID]*raqeeb.PenaltyInvoice, len(d.Invoices))
	s.invoiceByCDR = make(map[uuid.UUID]uuid.UUID, len(d.Invoices))
	for _, inv := range d.Invoices {
		s.invoices[inv.ID] = copyInvoice(inv)
		s.invoiceByCDR[inv.CDRID] = inv.ID
	}

	s.statements = make(map[uuid.UUID]*raqeeb.GlobalPenaltyStatement, len(d.Statements))
	for _, st := range d.Statements {
		s.statements[st.ID] = copyStatement(st)
	}

	s.notifications = make(map[uuid.UUID]*raqeeb.Notification, len(d.Notifications))
	for _, n := range d.Notifications {
		s.notifications[n.ID] = copyNotification(n)
	}

	s.reportSeq = make(map[string]int, len(d.ReportSeq))
	for k, v := range d.ReportSeq {
		s.reportSeq[k] = v
	}
	s.cdrSeq = make(map[string]int, len(d.CDRSeq))
	for k, v := range d.CDRSeq {
		s.cdrSeq[k] = v
	}
}
