package models

type Page string

const (
	PageHome      Page = "home"
	PageBrowse    Page = "browse"
	PageSell      Page = "sell"
	PageMyTickets Page = "my-tickets"
	PageAdmin     Page = "admin"
)

// ParsePage maps a raw page name to a known view, falling back to home for
// anything unrecognized.
func ParsePage(s string) Page {
	switch Page(s) {
	case PageHome, PageBrowse, PageSell, PageMyTickets, PageAdmin:
		return Page(s)
	}
	return PageHome
}

// Snapshot is the unit of durable persistence: the full set of users,
// tickets and orders plus the active session, written and read as one
// logical value.
type Snapshot struct {
	Users       []*User
	Tickets     []*Ticket
	Orders      []*Order
	CurrentUser *User
}

// AppState is the whole in-memory application state. It is owned by a
// single controller; operations mutate it synchronously and then persist a
// Snapshot of it.
type AppState struct {
	Users       []*User
	Tickets     []*Ticket
	Orders      []*Order
	CurrentUser *User
	CurrentPage Page
	UploadDraft *FileAttachment
}

func (s *AppState) Snapshot() *Snapshot {
	return &Snapshot{
		Users:       s.Users,
		Tickets:     s.Tickets,
		Orders:      s.Orders,
		CurrentUser: s.CurrentUser,
	}
}

func (s *AppState) UserByID(id string) *User {
	for _, u := range s.Users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *AppState) UserByEmail(email string) *User {
	for _, u := range s.Users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (s *AppState) TicketByID(id string) *Ticket {
	for _, t := range s.Tickets {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *AppState) OrderByID(id string) *Order {
	for _, o := range s.Orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}
