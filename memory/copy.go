package memory

import (
	"github.com/google/uuid"

	"github.com/nasserq/raqeeb"
)

// Copy helpers keep store internals isolated from callers: every read
// returns a fresh value and every write stores one, so a caller mutating
// a returned entity never changes store state.

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func copyUser(u *raqeeb.User) *raqeeb.User {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}

func copySession(s *raqeeb.Session) *raqeeb.Session {
	if s == nil {
		return nil
	}
	out := *s
	out.User = copyUser(s.User)
	return &out
}

func copyZone(z *raqeeb.Zone) *raqeeb.Zone {
	if z == nil {
		return nil
	}
	out := *z
	return &out
}

func copyLocation(l *raqeeb.Location) *raqeeb.Location {
	if l == nil {
		return nil
	}
	out := *l
	return &out
}

func copyForm(f *raqeeb.InspectionForm) *raqeeb.InspectionForm {
	if f == nil {
		return nil
	}
	out := *f
	out.Items = make([]raqeeb.EvaluationItem, len(f.Items))
	for i, item := range f.Items {
		out.Items[i] = item
		out.Items[i].PredefinedDefects = cloneStrings(item.PredefinedDefects)
	}
	return &out
}

func copyReport(r *raqeeb.InspectionReport) *raqeeb.InspectionReport {
	if r == nil {
		return nil
	}
	out := *r
	out.Items = make([]raqeeb.InspectionResultItem, len(r.Items))
	for i, item := range r.Items {
		out.Items[i] = item
		out.Items[i].Defects = cloneStrings(item.Defects)
		out.Items[i].Photos = cloneStrings(item.Photos)
	}
	out.SubLocations = cloneStrings(r.SubLocations)
	out.BatchLocationIDs = cloneStrings(r.BatchLocationIDs)
	return &out
}

func copyCDR(c *raqeeb.CDR) *raqeeb.CDR {
	if c == nil {
		return nil
	}
	out := *c
	if c.ServiceTypes != nil {
		out.ServiceTypes = make([]raqeeb.ServiceType, len(c.ServiceTypes))
		copy(out.ServiceTypes, c.ServiceTypes)
	}
	out.ManpowerDiscrepancies = cloneStrings(c.ManpowerDiscrepancies)
	out.MaterialDiscrepancies = cloneStrings(c.MaterialDiscrepancies)
	out.EquipmentDiscrepancies = cloneStrings(c.EquipmentDiscrepancies)
	out.OnSpotActions = cloneStrings(c.OnSpotActions)
	out.ActionPlan = cloneStrings(c.ActionPlan)
	out.Attachments = cloneStrings(c.Attachments)
	if c.FinalizedAt != nil {
		t := *c.FinalizedAt
		out.FinalizedAt = &t
	}
	return &out
}

func copyInvoice(inv *raqeeb.PenaltyInvoice) *raqeeb.PenaltyInvoice {
	if inv == nil {
		return nil
	}
	out := *inv
	out.Items = make([]raqeeb.PenaltyItem, len(inv.Items))
	copy(out.Items, inv.Items)
	if inv.ApprovedAt != nil {
		t := *inv.ApprovedAt
		out.ApprovedAt = &t
	}
	return &out
}

func copyStatement(st *raqeeb.GlobalPenaltyStatement) *raqeeb.GlobalPenaltyStatement {
	if st == nil {
		return nil
	}
	out := *st
	out.Items = make([]raqeeb.StatementItem, len(st.Items))
	for i, item := range st.Items {
		out.Items[i] = item
		if item.LinkedCDRIDs != nil {
			ids := make([]uuid.UUID, len(item.LinkedCDRIDs))
			copy(ids, item.LinkedCDRIDs)
			out.Items[i].LinkedCDRIDs = ids
		}
	}
	if st.ApprovedBy != nil {
		id := *st.ApprovedBy
		out.ApprovedBy = &id
	}
	if st.ApprovedAt != nil {
		t := *st.ApprovedAt
		out.ApprovedAt = &t
	}
	return &out
}

func copyNotification(n *raqeeb.Notification) *raqeeb.Notification {
	if n == nil {
		return nil
	}
	out := *n
	if n.EntityID != nil {
		id := *n.EntityID
		out.EntityID = &id
	}
	return &out
}
