package session

import "github.com/naveenspark/campusnest/internal/store"

// Notice is the text of the session-expired alert.
const (
	NoticeTitle = "Session Expired"
	NoticeBody  = "Your session has expired. Please log in again."
)

// Notifier shows a blocking notice the user has to acknowledge.
type Notifier interface {
	Notify(title, body string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, body string)

func (f NotifierFunc) Notify(title, body string) { f(title, body) }

// StoreNotifier raises the notice as UI state; the presentation layer renders
// it and dispatches store.AlertAcknowledged when dismissed.
type StoreNotifier struct {
	Store *store.Store
}

func (n StoreNotifier) Notify(title, body string) {
	n.Store.Dispatch(store.AlertShown{Title: title, Body: body})
}
