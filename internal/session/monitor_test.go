package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/client"
	"github.com/naveenspark/campusnest/pkg/domain"
)

func signedIn() *store.Store {
	s := store.New()
	s.Dispatch(store.AuthSucceeded{User: domain.UserProfile{ID: "u1", Email: "a@uni.ac.uk"}})
	return s
}

func TestExpired(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"401", &client.Error{Kind: client.KindUnauthorized, StatusCode: http.StatusUnauthorized, Message: "nope"}, true},
		{"wrapped sentinel", fmt.Errorf("thunk.FetchMatches: %w", client.ErrUnauthorized), true},
		{"marker session expired", errors.New("Session expired"), true},
		{"marker please login", errors.New("Please login again to continue"), true},
		{"canonical message", errors.New(client.UnauthorizedMessage), true},
		{"validation", &client.Error{Kind: client.KindValidation, StatusCode: http.StatusBadRequest, Message: "bad dates"}, false},
		{"network", &client.Error{Kind: client.KindNetwork, Message: "connection refused"}, false},
		{"plain", errors.New("boom"), false},
		{"cancelled", context.Canceled, false},
	}
	var m *Monitor
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expired(tt.err))
			assert.Equal(t, tt.want, m.Classify(tt.err))
		})
	}
}

func TestHandleExpirationIgnoresOtherErrors(t *testing.T) {
	s := signedIn()
	var calls int32
	m := New(s, func(context.Context) error { atomic.AddInt32(&calls, 1); return nil }, nil)
	rev := s.State().Revision

	assert.False(t, m.HandleExpiration(context.Background(), errors.New("network down")))
	assert.False(t, m.HandleExpiration(context.Background(), nil))

	assert.Equal(t, rev, s.State().Revision)
	assert.Zero(t, atomic.LoadInt32(&calls))
	assert.True(t, s.State().Auth.IsAuthenticated)
}

func TestHandleExpirationLogsOutAndNotifies(t *testing.T) {
	s := signedIn()
	var calls int32
	m := New(s, func(context.Context) error { atomic.AddInt32(&calls, 1); return nil }, nil)

	require.True(t, m.HandleExpiration(context.Background(), client.ErrUnauthorized))

	st := s.State()
	assert.False(t, st.Auth.IsAuthenticated)
	assert.Nil(t, st.Auth.User)
	assert.Empty(t, st.Auth.Error)
	require.NotNil(t, st.UI.Alert)
	assert.Equal(t, NoticeTitle, st.UI.Alert.Title)
	assert.Equal(t, NoticeBody, st.UI.Alert.Body)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.False(t, m.Armed())
}

func TestHandleExpirationSignsOutLocallyWhenRevokeFails(t *testing.T) {
	s := signedIn()
	log, hook := test.NewNullLogger()
	m := New(s, func(context.Context) error { return errors.New("dial tcp: no route to host") }, nil, WithLogger(log))

	require.True(t, m.HandleExpiration(context.Background(), client.ErrUnauthorized))
	assert.False(t, s.State().Auth.IsAuthenticated)

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned, "a failed revoke should be logged")
}

func TestHandleExpirationSignsOutBeforeRevokeReturns(t *testing.T) {
	s := signedIn()
	revoking := make(chan struct{})
	release := make(chan struct{})
	m := New(s, func(context.Context) error {
		close(revoking)
		<-release
		return nil
	}, nil)

	done := make(chan bool, 1)
	go func() { done <- m.HandleExpiration(context.Background(), client.ErrUnauthorized) }()
	<-revoking

	assert.False(t, s.State().Auth.IsAuthenticated, "still signed in while the server revoke hangs")
	assert.True(t, m.HandleExpiration(context.Background(), client.ErrUnauthorized))
	assert.Nil(t, s.State().UI.Alert, "notice raised before the first handler finished")

	close(release)
	require.True(t, <-done)
	require.NotNil(t, s.State().UI.Alert)
	assert.Equal(t, NoticeTitle, s.State().UI.Alert.Title)
}

func TestHandleExpirationRevokesWithLiveContext(t *testing.T) {
	s := signedIn()
	var revokeErr error
	m := New(s, func(ctx context.Context) error { revokeErr = ctx.Err(); return nil }, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.True(t, m.HandleExpiration(ctx, client.ErrUnauthorized))
	assert.NoError(t, revokeErr)
}

func TestHandleExpirationIsSingleFlight(t *testing.T) {
	s := signedIn()
	release := make(chan struct{})
	var logouts, notices int32
	m := New(s,
		func(context.Context) error {
			atomic.AddInt32(&logouts, 1)
			<-release
			return nil
		},
		NotifierFunc(func(string, string) { atomic.AddInt32(&notices, 1) }),
	)

	const callers = 8
	results := make(chan bool, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- m.HandleExpiration(context.Background(), client.ErrUnauthorized)
		}()
	}
	// Hold the winner inside logout until it has started.
	for atomic.LoadInt32(&logouts) == 0 {
		runtime.Gosched()
	}
	close(release)
	wg.Wait()
	close(results)

	for r := range results {
		assert.True(t, r)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&logouts))
	assert.Equal(t, int32(1), atomic.LoadInt32(&notices))
}

func TestRearm(t *testing.T) {
	s := signedIn()
	var logouts int32
	m := New(s, func(context.Context) error { atomic.AddInt32(&logouts, 1); return nil }, NotifierFunc(func(string, string) {}))

	require.True(t, m.HandleExpiration(context.Background(), client.ErrUnauthorized))
	require.True(t, m.HandleExpiration(context.Background(), client.ErrUnauthorized))
	assert.Equal(t, int32(1), atomic.LoadInt32(&logouts))

	m.Rearm()
	assert.True(t, m.Armed())
	require.True(t, m.HandleExpiration(context.Background(), client.ErrUnauthorized))
	assert.Equal(t, int32(2), atomic.LoadInt32(&logouts))
}

func TestUnboundMonitorIsNoop(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	var nilMonitor *Monitor
	assert.False(t, nilMonitor.HandleExpiration(context.Background(), client.ErrUnauthorized))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)

	var zero Monitor
	assert.False(t, zero.HandleExpiration(context.Background(), client.ErrUnauthorized))
	nilMonitor.Rearm()
	assert.False(t, nilMonitor.Armed())
}

func TestWithHandling(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		m := New(signedIn(), nil, nil)
		v, err := WithHandling(ctx, m, func(context.Context) (int, error) { return 7, nil }, nil)
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})

	t.Run("expired resolves to zero", func(t *testing.T) {
		s := signedIn()
		m := New(s, nil, nil)
		var called bool
		v, err := WithHandling(ctx, m,
			func(context.Context) (*domain.Booking, error) { return nil, client.ErrUnauthorized },
			func() { called = true })
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.True(t, called)
		assert.False(t, s.State().Auth.IsAuthenticated)
	})

	t.Run("ordinary error propagates", func(t *testing.T) {
		s := signedIn()
		m := New(s, nil, nil)
		boom := &client.Error{Kind: client.KindValidation, StatusCode: 422, Message: "dates overlap"}
		_, err := WithHandling(ctx, m, func(context.Context) (string, error) { return "", boom }, func() { t.Fatal("onExpired called") })
		assert.ErrorIs(t, err, boom)
		assert.True(t, s.State().Auth.IsAuthenticated)
	})
}
