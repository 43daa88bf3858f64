package store

import "github.com/naveenspark/campusnest/pkg/domain"

// AuthState is the single session of the process. It never holds tokens:
// the server-set cookie is the credential.
type AuthState struct {
	User            *domain.UserProfile
	IsAuthenticated bool
	IsLoading       bool
	Error           string
	// Initialized is set once the persisted session has been restored (or
	// found absent) at startup.
	Initialized bool
}

func (s AuthState) reduce(a Action) AuthState {
	switch a := a.(type) {
	case AuthRequest:
		s.IsLoading = true
		s.Error = ""
	case AuthSucceeded:
		u := a.User
		return AuthState{User: &u, IsAuthenticated: true, Initialized: true}
	case AuthFailed:
		s.IsLoading = false
		s.Error = a.Message
	case SessionRestore:
		if a.User == nil {
			return AuthState{Initialized: true}
		}
		u := *a.User
		return AuthState{User: &u, IsAuthenticated: true, Initialized: true}
	case UserRefreshed:
		if s.IsAuthenticated {
			u := a.User
			s.User = &u
		}
	case LoggedOut:
		return AuthState{Initialized: true}
	}
	return s
}
