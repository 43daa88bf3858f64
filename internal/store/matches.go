package store

import "github.com/naveenspark/campusnest/pkg/domain"

// MatchesState holds the AI-suggested properties for the user.
type MatchesState struct {
	Items  Collection[domain.Match]
	Status Status
}

func (s MatchesState) reduce(a Action) MatchesState {
	switch a := a.(type) {
	case Request:
		if a.Ticket.Domain == DomainMatches {
			s.Status = s.Status.request(a.Ticket.Seq)
		}
	case Failure:
		if a.Ticket.Domain == DomainMatches {
			s.Status, _ = s.Status.fail(a.Ticket.Seq, a.Message)
		}
	case MatchesLoaded:
		st, ok := s.Status.succeed(a.Ticket.Seq)
		if !ok {
			return s
		}
		s.Status = st
		s.Items = NewCollection(a.Items, matchKey)
	case MatchStatusUpdated:
		s.Items, _ = s.Items.Update(a.ID, func(m domain.Match) domain.Match {
			m.Status = a.Status
			return m
		})
	case ResetUserData:
		return MatchesState{Status: s.Status.reset()}
	}
	return s
}
