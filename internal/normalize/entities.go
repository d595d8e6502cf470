package normalize

import (
	"github.com/godilite/helpdesk-portal/internal/model"
	"github.com/godilite/helpdesk-portal/internal/transform"
)

// Tickets returns the canonical tickets in resp and the pagination
// metadata that came with them.
func (n *Normalizer) Tickets(resp Response) ([]model.Ticket, model.Page, error) {
	records, err := n.Collection(resp, TicketEntity)
	if err != nil {
		return nil, model.Page{}, err
	}
	tickets := transform.Tickets(records, n.now())
	n.dropped(TicketEntity.Plural, len(records), len(tickets))
	return tickets, pageOf(resp, len(tickets)), nil
}

// Ticket returns the single canonical ticket in resp. found is false when
// no record with an id could be located.
func (n *Normalizer) Ticket(resp Response) (model.Ticket, bool, error) {
	record, found, err := n.Single(resp, TicketEntity)
	if err != nil || !found {
		return model.Ticket{}, false, err
	}
	ticket, ok := transform.Ticket(record, n.now())
	if !ok {
		n.logger.Warn("ticket response carried no id")
	}
	return ticket, ok, nil
}

// Comments returns the canonical comments in resp. Comments that do not
// name their ticket are attributed to ticketID.
func (n *Normalizer) Comments(resp Response, ticketID string) ([]model.Comment, error) {
	records, err := n.Collection(resp, CommentEntity)
	if err != nil {
		return nil, err
	}
	comments := transform.Comments(records, n.now())
	for i := range comments {
		if comments[i].TicketID == "" {
			comments[i].TicketID = ticketID
		}
	}
	return comments, nil
}

// Comment returns the single comment in resp. found is false unless the
// record carried a server-assigned id.
func (n *Normalizer) Comment(resp Response, ticketID string) (model.Comment, bool, error) {
	record, found, err := n.Single(resp, CommentEntity)
	if err != nil || !found {
		return model.Comment{}, false, err
	}
	if transform.String(record, "id", "commentId") == "" {
		n.logger.Warn("comment response carried no id")
		return model.Comment{}, false, nil
	}
	c := transform.Comment(record, n.now())
	if c.TicketID == "" {
		c.TicketID = ticketID
	}
	return c, true, nil
}

func (n *Normalizer) Categories(resp Response) ([]model.Category, error) {
	records, err := n.Collection(resp, CategoryEntity)
	if err != nil {
		return nil, err
	}
	out := transform.Categories(records)
	n.dropped(CategoryEntity.Plural, len(records), len(out))
	return out, nil
}

func (n *Normalizer) Contacts(resp Response) ([]model.Contact, error) {
	records, err := n.Collection(resp, ContactEntity)
	if err != nil {
		return nil, err
	}
	out := transform.Contacts(records)
	n.dropped(ContactEntity.Plural, len(records), len(out))
	return out, nil
}

func (n *Normalizer) Accounts(resp Response) ([]model.Account, error) {
	records, err := n.Collection(resp, AccountEntity)
	if err != nil {
		return nil, err
	}
	out := transform.Accounts(records)
	n.dropped(AccountEntity.Plural, len(records), len(out))
	return out, nil
}

func (n *Normalizer) DashboardStats(resp Response) (model.DashboardStats, bool, error) {
	record, found, err := n.Single(resp, StatsEntity)
	if err != nil || !found {
		return model.DashboardStats{}, false, err
	}
	return transform.DashboardStats(record), true, nil
}

// pageOf reads total/page from an object envelope, defaulting to a single
// page holding every returned item.
func pageOf(resp Response, count int) model.Page {
	page := model.Page{Total: count, Page: 1}
	if resp.Kind != KindObject {
		return page
	}
	if total, ok := transform.Int(resp.Object, "total", "count", "totalCount"); ok && total >= 0 {
		page.Total = int(total)
	}
	if p, ok := transform.Int(resp.Object, "page"); ok && p > 0 {
		page.Page = int(p)
	}
	return page
}
