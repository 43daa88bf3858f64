// Package startup drives the app from launch to a usable state: restore the
// session, then load the signed-in user's data, and tear it down again on
// logout.
package startup

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/internal/thunk"
)

// Task is one fetch issued when user data loads.
type Task struct {
	Name string
	Run  func(context.Context) error
}

// TaskResult records how a task settled.
type TaskResult struct {
	Name     string
	Err      error
	Duration time.Duration
}

// ProfileClearer forgets the cached profile on logout.
type ProfileClearer interface {
	Clear() error
}

// UserDataTasks returns the fetches that populate a freshly signed-in app.
func UserDataTasks(d *thunk.Dispatcher) []Task {
	return []Task{
		{Name: "bookings", Run: func(ctx context.Context) error { _, err := d.FetchBookings(ctx, 1); return err }},
		{Name: "notifications", Run: func(ctx context.Context) error { _, err := d.FetchNotifications(ctx); return err }},
		{Name: "matches", Run: func(ctx context.Context) error { _, err := d.FetchMatches(ctx); return err }},
		{Name: "recent_properties", Run: func(ctx context.Context) error { _, err := d.FetchRecentProperties(ctx); return err }},
	}
}

// Orchestrator is the lifecycle state machine.
type Orchestrator struct {
	store      *store.Store
	initialize func(context.Context) error
	tasks      []Task
	profiles   ProfileClearer
	live       func(context.Context) error
	log        logrus.FieldLogger

	mu        sync.Mutex
	phase     Phase
	gen       uint64
	results   []TaskResult
	listeners map[int]func(Phase)
	nextID    int
	baseCtx   context.Context
	stopLive  context.CancelFunc
	liveWG    sync.WaitGroup
	unwatch   func()
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *Orchestrator) { o.log = log }
}

// WithProfileCache clears the cached profile on logout.
func WithProfileCache(c ProfileClearer) Option {
	return func(o *Orchestrator) { o.profiles = c }
}

// WithLive runs fn for as long as the app is Ready, such as the realtime
// feed. It is cancelled on logout.
func WithLive(fn func(context.Context) error) Option {
	return func(o *Orchestrator) { o.live = fn }
}

// New creates an orchestrator. initialize restores the session; its error is
// logged and never stops startup.
func New(s *store.Store, initialize func(context.Context) error, tasks []Task, opts ...Option) *Orchestrator {
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	o := &Orchestrator{
		store:      s,
		initialize: initialize,
		tasks:      tasks,
		log:        silent,
		phase:      AuthInitializing,
		listeners:  make(map[int]func(Phase)),
		baseCtx:    context.Background(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ForDispatcher wires an orchestrator to a thunk dispatcher.
func ForDispatcher(d *thunk.Dispatcher, opts ...Option) *Orchestrator {
	initialize := func(ctx context.Context) error {
		_, err := d.Initialize(ctx)
		return err
	}
	return New(d.Store(), initialize, UserDataTasks(d), opts...)
}

// Run restores the session and, if signed in, loads user data. It returns
// once the app is Unauthenticated or Ready. ctx also bounds the live task.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.mu.Lock()
	o.baseCtx = ctx
	o.mu.Unlock()

	o.setPhase(AuthInitializing)
	if o.initialize != nil {
		if err := o.initialize(ctx); err != nil {
			o.log.WithError(err).Warn("session restore incomplete; continuing")
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	o.setPhase(AppPreparing)
	o.mu.Lock()
	if o.unwatch == nil {
		o.unwatch = o.store.Subscribe(o.watch)
	}
	o.mu.Unlock()

	if !store.IsAuthenticated(o.store.State()) {
		o.setPhase(Unauthenticated)
		return nil
	}
	o.loadUserData(ctx)
	return ctx.Err()
}

// OnLogin loads data for a user who just signed in.
func (o *Orchestrator) OnLogin(ctx context.Context) error {
	if !store.IsAuthenticated(o.store.State()) {
		return errors.New("startup.OnLogin: not signed in")
	}
	o.loadUserData(ctx)
	return ctx.Err()
}

// OnLogout wipes every identity-scoped slice and returns to Unauthenticated.
// Forced logouts seen in the store take the same path.
func (o *Orchestrator) OnLogout() {
	o.mu.Lock()
	o.gen++
	o.mu.Unlock()
	o.teardown()
}

// Phase returns the current phase.
func (o *Orchestrator) Phase() Phase {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.phase
}

// Results returns how the last user-data load settled, in task order.
func (o *Orchestrator) Results() []TaskResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]TaskResult(nil), o.results...)
}

// Subscribe registers fn for phase changes.
func (o *Orchestrator) Subscribe(fn func(Phase)) (unsubscribe func()) {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.listeners, id)
			o.mu.Unlock()
		})
	}
}

// Close stops the live task and detaches from the store.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.unwatch != nil {
		o.unwatch()
		o.unwatch = nil
	}
	o.mu.Unlock()
	o.stopLiveTask()
	o.liveWG.Wait()
}

func (o *Orchestrator) loadUserData(ctx context.Context) {
	o.mu.Lock()
	o.gen++
	gen := o.gen
	o.mu.Unlock()
	o.setPhase(LoadingUserData)

	results := make([]TaskResult, len(o.tasks))
	var g errgroup.Group
	for i, t := range o.tasks {
		i, t := i, t // per-iteration copies for go1.21 loop semantics
		g.Go(func() error {
			start := time.Now()
			err := t.Run(ctx)
			results[i] = TaskResult{Name: t.Name, Err: err, Duration: time.Since(start)}
			if err != nil {
				o.log.WithError(err).WithField("task", t.Name).Warn("startup fetch failed")
			}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // tasks never fail the group

	o.mu.Lock()
	current := gen == o.gen && o.phase == LoadingUserData
	if current {
		o.results = results
	}
	o.mu.Unlock()
	if !current || !store.IsAuthenticated(o.store.State()) {
		return
	}

	o.setPhase(Ready)
	o.log.WithField("tasks", len(results)).Info("user data loaded")
	o.startLiveTask()
}

// watch turns a logout observed in the store into a reset.
func (o *Orchestrator) watch(st store.State) {
	if st.Auth.IsAuthenticated {
		return
	}
	o.mu.Lock()
	signedIn := o.phase.SignedIn()
	if signedIn {
		o.gen++
	}
	o.mu.Unlock()
	if signedIn {
		o.log.Info("signed out; clearing user data")
		o.teardown()
	}
}

func (o *Orchestrator) teardown() {
	if !o.transition(Unauthenticated) {
		return
	}
	o.stopLiveTask()
	o.store.Dispatch(store.ResetUserData{})
	if o.profiles != nil {
		if err := o.profiles.Clear(); err != nil {
			o.log.WithError(err).Warn("could not clear cached profile")
		}
	}
}

func (o *Orchestrator) startLiveTask() {
	if o.live == nil {
		return
	}
	o.mu.Lock()
	if o.stopLive != nil || o.phase != Ready {
		o.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(o.baseCtx)
	o.stopLive = cancel
	o.liveWG.Add(1)
	o.mu.Unlock()

	go func() {
		defer o.liveWG.Done()
		if err := o.live(ctx); err != nil {
			o.log.WithError(err).Warn("live task stopped")
		}
	}()
}

// stopLiveTask cancels the live task without waiting: a logout may be
// dispatched from the live task itself.
func (o *Orchestrator) stopLiveTask() {
	o.mu.Lock()
	cancel := o.stopLive
	o.stopLive = nil
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (o *Orchestrator) setPhase(p Phase) {
	o.transition(p)
}

// transition moves to p and notifies listeners. It reports false if already in p.
func (o *Orchestrator) transition(p Phase) bool {
	o.mu.Lock()
	if o.phase == p {
		o.mu.Unlock()
		return false
	}
	prev := o.phase
	o.phase = p
	ls := make([]func(Phase), 0, len(o.listeners))
	for id := 0; id < o.nextID; id++ {
		if l, ok := o.listeners[id]; ok {
			ls = append(ls, l)
		}
	}
	o.mu.Unlock()

	o.log.WithFields(logrus.Fields{"from": prev.String(), "to": p.String()}).Debug("phase")
	for _, l := range ls {
		l(p)
	}
	return true
}
