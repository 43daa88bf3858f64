package store

import "github.com/naveenspark/campusnest/pkg/domain"

// PropertiesState holds search results, the recent-listings strip and the
// property currently open in detail.
type PropertiesState struct {
	Items   Collection[domain.Property]
	Status  Status
	Cursor  Cursor
	Filters domain.PropertyFilters

	Recent       []domain.Property
	RecentStatus Status

	Selected     *domain.Property
	DetailStatus Status
}

func (s PropertiesState) reduce(a Action) PropertiesState {
	switch a := a.(type) {
	case Request:
		switch a.Ticket.Domain {
		case DomainProperties:
			s.Status = s.Status.request(a.Ticket.Seq)
		case DomainRecentProperties:
			s.RecentStatus = s.RecentStatus.request(a.Ticket.Seq)
		case DomainPropertyDetail:
			s.DetailStatus = s.DetailStatus.request(a.Ticket.Seq)
		}
	case Failure:
		switch a.Ticket.Domain {
		case DomainProperties:
			s.Status, _ = s.Status.fail(a.Ticket.Seq, a.Message)
		case DomainRecentProperties:
			s.RecentStatus, _ = s.RecentStatus.fail(a.Ticket.Seq, a.Message)
		case DomainPropertyDetail:
			s.DetailStatus, _ = s.DetailStatus.fail(a.Ticket.Seq, a.Message)
		}
	case PropertiesLoaded:
		st, ok := s.Status.succeed(a.Ticket.Seq)
		if !ok {
			return s
		}
		s.Status = st
		if a.Append {
			s.Items = s.Items.Append(a.Items, propertyKey)
			if a.Pagination.CurrentPage > s.Cursor.CurrentPage {
				s.Cursor = cursorFrom(a.Pagination)
			}
		} else {
			s.Items = NewCollection(a.Items, propertyKey)
			s.Cursor = cursorFrom(a.Pagination)
		}
	case RecentPropertiesLoaded:
		st, ok := s.RecentStatus.succeed(a.Ticket.Seq)
		if !ok {
			return s
		}
		s.RecentStatus = st
		s.Recent = append([]domain.Property(nil), a.Items...)
	case PropertyLoaded:
		st, ok := s.DetailStatus.succeed(a.Ticket.Seq)
		if !ok {
			return s
		}
		s.DetailStatus = st
		p := a.Property
		s.Selected = &p
		s.Items, _ = s.Items.Replace(p.ID, p)
	case PropertySelected:
		s.Selected = s.lookup(a.ID)
	case PropertyFiltersSet:
		s.Filters = a.Filters
		s.Cursor = Cursor{CurrentPage: 1}
	case ResetUserData:
		return PropertiesState{
			Status:       s.Status.reset(),
			RecentStatus: s.RecentStatus.reset(),
			DetailStatus: s.DetailStatus.reset(),
		}
	}
	return s
}

// lookup finds a listing in the search results or the recent list.
func (s PropertiesState) lookup(id string) *domain.Property {
	if id == "" {
		return nil
	}
	if p, ok := s.Items.Get(id); ok {
		return &p
	}
	for _, p := range s.Recent {
		if p.ID == id {
			return &p
		}
	}
	if s.Selected != nil && s.Selected.ID == id {
		return s.Selected
	}
	return nil
}
