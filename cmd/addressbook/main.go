package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/addressbook/internal/config"
	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/demo"
	"github.com/smileynet/addressbook/internal/logging"
	"github.com/smileynet/addressbook/internal/render"
	"github.com/smileynet/addressbook/internal/session"
	"github.com/smileynet/addressbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals holds flags shared by every command.
type Globals struct {
	Config string `help:"Extra config file, applied after the user and project files." type:"path" placeholder:"PATH"`
}

// CLI is the top-level command structure for addressbook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Demo    DemoCmd          `cmd:"" help:"Run the scripted address book walkthrough."`
	List    ListCmd          `cmd:"" help:"Print every contact in the book."`
	Browse  BrowseCmd        `cmd:"" help:"Open the interactive address book browser."`
}

// loadConfig loads layered config from user, project and explicit paths with env overrides.
func loadConfig(extra string) (*config.Config, error) {
	if extra != "" {
		if _, err := os.Stat(extra); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/addressbook/config.yaml"),
		".addressbook.yaml",
		extra,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads config and builds a logger writing to logOut unless a log file is configured.
func setup(g *Globals, logOut io.Writer) (*config.Config, *zap.Logger, func() error, error) {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return nil, nil, nil, err
	}
	log, cleanup, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, cleanup, nil
}

// --- Demo command ---

// DemoCmd runs the scripted walkthrough.
type DemoCmd struct {
	Plain bool `help:"Never style output, even on a terminal." default:"false"`
}

// Run builds a fresh session and runs the walkthrough on stdout.
func (d *DemoCmd) Run(g *Globals) error {
	cfg, log, cleanup, err := setup(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	defer func() { _ = cleanup() }()

	r := render.ForWriter(os.Stdout, d.Plain || cfg.Display.Plain)
	return d.run(os.Stdout, r, session.New(session.WithLogger(log)))
}

// run executes the walkthrough against s, enabling testable wiring.
func (d *DemoCmd) run(w io.Writer, r render.Renderer, s *session.Session) error {
	return demo.Run(w, r, s)
}

// --- List command ---

// ListCmd prints the contacts of a book.
type ListCmd struct {
	Demo  bool `help:"Seed the book with the demo contacts." default:"false"`
	Plain bool `help:"Never style output, even on a terminal." default:"false"`
}

// Run builds a session and lists it on stdout.
func (l *ListCmd) Run(g *Globals) error {
	cfg, log, cleanup, err := setup(g, os.Stderr)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer func() { _ = cleanup() }()

	r := render.ForWriter(os.Stdout, l.Plain || cfg.Display.Plain)
	return l.run(os.Stdout, r, session.New(session.WithLogger(log)))
}

// run lists the contacts of s in insertion order, enabling testable wiring.
func (l *ListCmd) run(w io.Writer, r render.Renderer, s *session.Session) error {
	if l.Demo {
		if err := demo.Seed(s); err != nil {
			return fmt.Errorf("list: %w", err)
		}
	}

	contacts := s.Contacts()
	if len(contacts) == 0 {
		_, _ = fmt.Fprintln(w, r.Line("No contacts"))
		return nil
	}
	for _, rec := range contacts {
		_, _ = fmt.Fprintln(w, r.Record(rec))
	}
	return nil
}

// --- Browse command ---

// BrowseCmd opens the interactive browser TUI.
type BrowseCmd struct {
	Demo bool `help:"Seed the book with the demo contacts." default:"false"`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds a session and launches the browser TUI.
func (b *BrowseCmd) Run(g *Globals) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errNoTTY
	}

	// Stderr log lines would tear the alt screen, so only a log file is written to.
	cfg, log, cleanup, err := setup(g, io.Discard)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer func() { _ = cleanup() }()

	sess := session.New(session.WithLogger(log))
	if b.Demo || cfg.Browse.Demo {
		if err := demo.Seed(sess); err != nil {
			return fmt.Errorf("browse: %w", err)
		}
	}

	prog := tea.NewProgram(tui.NewModel(sess), tea.WithAltScreen())
	return b.run(true, prog)
}

// errNoTTY is returned when browse is started without a terminal.
var errNoTTY = errors.New("browse: requires a terminal (TTY)")

// run executes the tea program, enabling testable wiring.
func (b *BrowseCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return errNoTTY
	}
	_, err := prog.Run()
	return err
}

// Exit codes.
const (
	exitSuccess = 0
	exitDomain  = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	switch {
	case errors.Is(err, contact.ErrValidation),
		errors.Is(err, contact.ErrDuplicate),
		errors.Is(err, session.ErrContactNotFound),
		errors.Is(err, session.ErrPhoneNotFound):
		return exitDomain
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("addressbook"),
		kong.Description("An in-memory address book of contacts and phone numbers."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
