package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/sirupsen/logrus"

	"github.com/naveenspark/campusnest/internal/browser"
	"github.com/naveenspark/campusnest/internal/config"
	"github.com/naveenspark/campusnest/internal/profilecache"
	"github.com/naveenspark/campusnest/internal/session"
	"github.com/naveenspark/campusnest/internal/startup"
	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/internal/thunk"
	"github.com/naveenspark/campusnest/internal/tui"
	"github.com/naveenspark/campusnest/pkg/client"
	"github.com/naveenspark/campusnest/pkg/domain"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("campusnest " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "terms", "privacy", "support":
			return openLegal(os.Stdout, os.Args[1])
		case "logout":
			cfg, err := config.Load(".env")
			if err != nil {
				return err
			}
			return runLogout(os.Stdout, cfg.Home)
		case "register":
			return runApp(registerFirst)
		case "login":
			// The app opens on the sign-in form when no session is live.
		default:
			return fmt.Errorf("unknown command %q (try: campusnest help)", os.Args[1])
		}
	}
	return runApp(nil)
}

// stack is the wired client: one store, one session monitor and the
// operations and lifecycle built on them.
type stack struct {
	log        *logrus.Logger
	logFile    *os.File
	store      *store.Store
	dispatcher *thunk.Dispatcher
	orch       *startup.Orchestrator
}

func newStack(cfg *config.Config) (*stack, error) {
	if err := os.MkdirAll(cfg.Home, 0700); err != nil {
		return nil, fmt.Errorf("create %s: %w", cfg.Home, err)
	}
	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	log := cfg.NewLogger(logFile)

	api := client.New(cfg.APIURL,
		client.WithTimeout(cfg.Timeout),
		client.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		client.WithLogger(log.WithField("component", "client")),
	)
	st := store.New(store.WithLogger(log.WithField("component", "store")))
	monitor := session.New(st, api.Logout, nil, session.WithLogger(log.WithField("component", "session")))
	profiles := profilecache.New(cfg.Home)
	d := thunk.New(api, st, monitor,
		thunk.WithLogger(log.WithField("component", "thunk")),
		thunk.WithProfileCache(profiles),
	)

	opts := []startup.Option{
		startup.WithLogger(log.WithField("component", "startup")),
		startup.WithProfileCache(profiles),
	}
	if cfg.Realtime {
		opts = append(opts, startup.WithLive(func(ctx context.Context) error {
			return d.Stream(ctx, api, thunk.Backoff{})
		}))
	}

	log.WithFields(logrus.Fields{"api": cfg.APIURL, "version": version, "realtime": cfg.Realtime}).Info("campusnest starting")
	return &stack{
		log:        log,
		logFile:    logFile,
		store:      st,
		dispatcher: d,
		orch:       startup.ForDispatcher(d, opts...),
	}, nil
}

func (s *stack) close() {
	s.orch.Close()
	s.logFile.Close() //nolint:errcheck
}

// runApp wires the client, runs an optional step before the UI starts, then
// hands the terminal to the TUI while the orchestrator restores the session.
func runApp(before func(context.Context, *stack) error) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	st, err := newStack(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if before != nil {
		if err := before(ctx, st); err != nil {
			return err
		}
	}

	app := tui.NewApp(st.store, st.dispatcher, st.orch, version)
	p := tea.NewProgram(app, tea.WithAltScreen())
	detach := tui.Attach(p, st.store, st.orch)
	defer detach()

	go func() {
		if err := st.orch.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			st.log.WithError(err).Warn("startup interrupted")
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// registerFirst creates an account from terminal prompts. The session
// cookie it earns is restored by the orchestrator when the UI starts.
func registerFirst(ctx context.Context, st *stack) error {
	req, err := promptRegistration(bufio.NewReader(os.Stdin), os.Stdout, readSecret)
	if err != nil {
		return err
	}
	u, err := st.dispatcher.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("register: %s", client.Message(err))
	}
	fmt.Printf("Welcome, %s.\n\n", u.FullName())
	return nil
}

// promptRegistration asks for the account fields one per line.
func promptRegistration(in *bufio.Reader, out io.Writer, secret func() (string, error)) (client.RegisterRequest, error) {
	ask := func(label string) (string, error) {
		fmt.Fprintf(out, "%s: ", label) //nolint:errcheck
		line, err := in.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		return strings.TrimSpace(line), nil
	}

	var req client.RegisterRequest
	var err error
	fields := []struct {
		label string
		dst   *string
	}{
		{"Email", &req.Email},
		{"First name", &req.FirstName},
		{"Last name", &req.LastName},
		{"University (optional)", &req.University},
	}
	for _, f := range fields {
		if *f.dst, err = ask(f.label); err != nil {
			return req, err
		}
	}

	role, err := ask("Role [student/landlord]")
	if err != nil {
		return req, err
	}
	switch strings.ToLower(role) {
	case "", "student":
		req.Role = domain.RoleStudent
	case "landlord":
		req.Role = domain.RoleLandlord
	default:
		return req, fmt.Errorf("unknown role %q", role)
	}

	fmt.Fprint(out, "Password: ") //nolint:errcheck
	if req.Password, err = secret(); err != nil {
		return req, fmt.Errorf("read password: %w", err)
	}
	fmt.Fprintln(out) //nolint:errcheck
	return req, nil
}

// readSecret reads a line from stdin without echo when it is a terminal.
func readSecret() (string, error) {
	if term.IsTerminal(os.Stdin.Fd()) {
		b, err := term.ReadPassword(os.Stdin.Fd())
		return string(b), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// runLogout forgets the cached profile. The server session cookie never
// outlives the process, so there is nothing else on disk to revoke.
func runLogout(out io.Writer, home string) error {
	cache := profilecache.New(home)
	u, err := cache.Load()
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}
	if u == nil {
		fmt.Fprintln(out, "Already signed out.") //nolint:errcheck
		return nil
	}
	if err := cache.Clear(); err != nil {
		return fmt.Errorf("clear profile: %w", err)
	}
	fmt.Fprintln(out, "Signed out on this device.") //nolint:errcheck
	return nil
}

func legalURL(page string) string {
	if page == "support" {
		page = "help"
	}
	return "https://campusnest.app/" + page
}

func openLegal(out io.Writer, page string) error {
	url := legalURL(page)
	if err := browser.Open(url); err != nil {
		fmt.Fprintln(out, url) //nolint:errcheck
	}
	return nil
}
