package startup

// Phase is a stage of the app lifecycle.
type Phase int

const (
	AuthInitializing Phase = iota
	AppPreparing
	Unauthenticated
	LoadingUserData
	Ready
)

func (p Phase) String() string {
	switch p {
	case AuthInitializing:
		return "auth-initializing"
	case AppPreparing:
		return "app-preparing"
	case Unauthenticated:
		return "unauthenticated"
	case LoadingUserData:
		return "loading-user-data"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// SignedIn reports whether the phase belongs to an authenticated session.
func (p Phase) SignedIn() bool {
	return p == LoadingUserData || p == Ready
}
