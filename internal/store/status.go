package store

import "github.com/naveenspark/campusnest/pkg/domain"

// Domain names one independently fetched partition of state.
type Domain string

const (
	DomainProperties       Domain = "properties"
	DomainRecentProperties Domain = "recent_properties"
	DomainPropertyDetail   Domain = "property_detail"
	DomainMatches          Domain = "matches"
	DomainBookings         Domain = "bookings"
	DomainChats            Domain = "chats"
	DomainMessages         Domain = "messages"
	DomainNotifications    Domain = "notifications"
)

// Domains lists every sequenced domain.
var Domains = []Domain{
	DomainProperties, DomainRecentProperties, DomainPropertyDetail, DomainMatches,
	DomainBookings, DomainChats, DomainMessages, DomainNotifications,
}

// Ticket identifies one issued fetch. Seq is strictly increasing per store.
type Ticket struct {
	Domain Domain
	Seq    uint64
}

// Status is the request bookkeeping of one domain.
//
// A response is applied only if its sequence is newer than the last applied
// one, so a slow stale response can neither overwrite fresher data nor
// clobber it with an error.
type Status struct {
	Loading bool
	Error   string

	issued  uint64
	applied uint64
}

func (s Status) request(seq uint64) Status {
	if seq > s.issued {
		s.issued = seq
	}
	s.Loading = true
	s.Error = ""
	return s
}

// settle reports whether a response for seq is fresh and, if so, returns the
// status with seq marked applied.
func (s Status) settle(seq uint64) (Status, bool) {
	if seq <= s.applied {
		return s, false
	}
	s.applied = seq
	if seq > s.issued {
		s.issued = seq
	}
	s.Loading = seq < s.issued
	return s, true
}

func (s Status) succeed(seq uint64) (Status, bool) {
	next, ok := s.settle(seq)
	if ok {
		next.Error = ""
	}
	return next, ok
}

func (s Status) fail(seq uint64, msg string) (Status, bool) {
	next, ok := s.settle(seq)
	if ok {
		next.Error = msg
	}
	return next, ok
}

// reset clears the status and marks everything in flight as stale.
func (s Status) reset() Status {
	return Status{issued: s.issued, applied: s.issued}
}

// Stale reports whether a response for seq would be discarded.
func (s Status) Stale(seq uint64) bool {
	return seq <= s.applied
}

// Cursor tracks pagination of a list.
type Cursor struct {
	CurrentPage int
	TotalPages  int
	TotalCount  int
	HasMore     bool
}

func cursorFrom(p domain.Pagination) Cursor {
	return Cursor{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalCount:  p.TotalCount,
		HasMore:     p.HasMore(),
	}
}

// NextPage is the page to request for "load more".
func (c Cursor) NextPage() int {
	if c.CurrentPage < 1 {
		return 1
	}
	return c.CurrentPage + 1
}

func propertyKey(p domain.Property) string         { return p.ID }
func matchKey(m domain.Match) string               { return m.ID }
func bookingKey(b domain.Booking) string           { return b.ID }
func conversationKey(c domain.Conversation) string { return c.ID }
func notificationKey(n domain.Notification) string { return n.ID }
func messageKey(m domain.Message) string           { return m.ID }
