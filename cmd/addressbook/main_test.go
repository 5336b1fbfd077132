package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/addressbook/internal/contact"
	"github.com/smileynet/addressbook/internal/render"
	"github.com/smileynet/addressbook/internal/session"
)

// errExitCalled is a sentinel used to catch kong's os.Exit calls in tests.
var errExitCalled = errors.New("exit called")

func newParser(t *testing.T, cli *CLI) *kong.Kong {
	t.Helper()
	k, err := kong.New(cli, kong.Vars{"version": "test"})
	if err != nil {
		t.Fatal(err)
	}
	return k
}

func TestFeature_CommandLine(t *testing.T) {
	t.Run("version flag prints version commit and date", func(t *testing.T) {
		// Given: a CLI parser with version, commit, and date fields
		var cli CLI
		var buf bytes.Buffer
		versionStr := "v1.0.0 abc1234 2026-01-01T00:00:00Z"
		k, err := kong.New(&cli,
			kong.Vars{"version": versionStr},
			kong.Writers(&buf, &buf),
			kong.Exit(func(int) { panic(errExitCalled) }),
		)
		if err != nil {
			t.Fatal(err)
		}

		// When: --version flag is passed
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic from --version flag")
			}
			err, ok := r.(error)
			if !ok || !errors.Is(err, errExitCalled) {
				panic(r)
			}

			// Then: version, commit, and date are all present in output
			output := buf.String()
			for _, want := range []string{"v1.0.0", "abc1234", "2026-01-01T00:00:00Z"} {
				if !strings.Contains(output, want) {
					t.Errorf("version output = %q, want to contain %q", output, want)
				}
			}
		}()

		k.Parse([]string{"--version"}) //nolint:errcheck // --version triggers panic via Exit hook
	})

	t.Run("no args shows usage and errors", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k := newParser(t, &cli)

		// When: no arguments are provided
		_, err := k.Parse([]string{})

		// Then: an error is returned
		if err == nil {
			t.Fatal("expected error when no command provided")
		}
	})

	tests := []struct {
		name    string
		args    []string
		command string
		check   func(t *testing.T, cli *CLI)
	}{
		{
			name:    "demo",
			args:    []string{"demo", "--plain"},
			command: "demo",
			check: func(t *testing.T, cli *CLI) {
				if !cli.Demo.Plain {
					t.Error("demo --plain not parsed")
				}
			},
		},
		{
			name:    "list with demo data",
			args:    []string{"list", "--demo"},
			command: "list",
			check: func(t *testing.T, cli *CLI) {
				if !cli.List.Demo || cli.List.Plain {
					t.Errorf("list flags = %+v, want Demo only", cli.List)
				}
			},
		},
		{
			name:    "browse",
			args:    []string{"browse", "--demo"},
			command: "browse",
			check: func(t *testing.T, cli *CLI) {
				if !cli.Browse.Demo {
					t.Error("browse --demo not parsed")
				}
			},
		},
		{
			name:    "config flag before command",
			args:    []string{"--config", "/tmp/extra.yaml", "list"},
			command: "list",
			check: func(t *testing.T, cli *CLI) {
				if cli.Config != "/tmp/extra.yaml" {
					t.Errorf("Config = %q, want /tmp/extra.yaml", cli.Config)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cli CLI
			kctx, err := newParser(t, &cli).Parse(tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if kctx.Command() != tt.command {
				t.Errorf("got command %q, want %q", kctx.Command(), tt.command)
			}
			tt.check(t, &cli)
		})
	}

	t.Run("unknown flag is rejected", func(t *testing.T) {
		var cli CLI
		if _, err := newParser(t, &cli).Parse([]string{"list", "--bogus"}); err == nil {
			t.Error("expected error for unknown flag")
		}
	})
}

func TestFeature_DemoCommand(t *testing.T) {
	// Given: an empty session and a plain renderer
	s := session.New()
	var buf bytes.Buffer
	cmd := &DemoCmd{Plain: true}

	// When: the demo runs
	err := cmd.run(&buf, render.Plain{}, s)

	// Then: every step is printed in order and Jane is gone
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	want := "Contact name: John, phones: 1234567890; 5555555555\n" +
		"Contact name: Jane, phones: 9876543210\n" +
		"Contact name: John, phones: 1112223333; 5555555555\n" +
		"John: 5555555555\n" +
		"Deleted Jane, 1 contact(s) left\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestFeature_ListCommand(t *testing.T) {
	t.Run("empty book", func(t *testing.T) {
		var buf bytes.Buffer
		if err := (&ListCmd{}).run(&buf, render.Plain{}, session.New()); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "No contacts\n" {
			t.Errorf("output = %q, want %q", buf.String(), "No contacts\n")
		}
	})

	t.Run("demo data in insertion order", func(t *testing.T) {
		var buf bytes.Buffer
		if err := (&ListCmd{Demo: true}).run(&buf, render.Plain{}, session.New()); err != nil {
			t.Fatal(err)
		}
		want := "Contact name: John, phones: 1234567890; 5555555555\n" +
			"Contact name: Jane, phones: 9876543210\n"
		if buf.String() != want {
			t.Errorf("output = %q, want %q", buf.String(), want)
		}
	})

	t.Run("seeding over an existing phone is a domain error", func(t *testing.T) {
		s := session.New()
		if _, err := s.AddContact("John", "1234567890"); err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		err := (&ListCmd{Demo: true}).run(&buf, render.Plain{}, s)
		if !errors.Is(err, contact.ErrDuplicate) {
			t.Errorf("run() error = %v, want ErrDuplicate", err)
		}
		if got := exitCode(err); got != exitDomain {
			t.Errorf("exitCode = %d, want %d", got, exitDomain)
		}
	})
}

// mockTeaRunner records whether the program was started.
type mockTeaRunner struct {
	called bool
	err    error
}

func (m *mockTeaRunner) Run() (tea.Model, error) {
	m.called = true
	return nil, m.err
}

func TestFeature_BrowseCommand(t *testing.T) {
	t.Run("non-TTY is rejected without starting the program", func(t *testing.T) {
		prog := &mockTeaRunner{}
		err := (&BrowseCmd{}).run(false, prog)
		if !errors.Is(err, errNoTTY) {
			t.Errorf("run() error = %v, want errNoTTY", err)
		}
		if prog.called {
			t.Error("program should not run without a TTY")
		}
		if got := exitCode(err); got != exitSetup {
			t.Errorf("exitCode = %d, want %d", got, exitSetup)
		}
	})

	t.Run("TTY runs the program", func(t *testing.T) {
		prog := &mockTeaRunner{}
		if err := (&BrowseCmd{}).run(true, prog); err != nil {
			t.Fatal(err)
		}
		if !prog.called {
			t.Error("program was not run")
		}
	})

	t.Run("program error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		err := (&BrowseCmd{}).run(true, &mockTeaRunner{err: boom})
		if !errors.Is(err, boom) {
			t.Errorf("run() error = %v, want boom", err)
		}
	})
}

func TestLoadConfig(t *testing.T) {
	isolate := func(t *testing.T) string {
		t.Helper()
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("ADDRESSBOOK_LOG_LEVEL", "")
		t.Setenv("ADDRESSBOOK_LOG_FILE", "")
		t.Setenv("ADDRESSBOOK_PLAIN", "")
		t.Chdir(t.TempDir())
		return home
	}

	t.Run("defaults without any file", func(t *testing.T) {
		isolate(t)
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Log.Level != "warn" || cfg.Display.Plain {
			t.Errorf("cfg = %+v, want defaults", cfg)
		}
	})

	t.Run("explicit file overrides user and project files", func(t *testing.T) {
		home := isolate(t)
		userDir := filepath.Join(home, ".config", "addressbook")
		if err := os.MkdirAll(userDir, 0o755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(userDir, "config.yaml"), "log:\n  level: debug\ndisplay:\n  plain: true\n")
		writeFile(t, ".addressbook.yaml", "log:\n  level: info\n")
		extra := filepath.Join(t.TempDir(), "extra.yaml")
		writeFile(t, extra, "log:\n  level: error\n")

		cfg, err := loadConfig(extra)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Log.Level != "error" {
			t.Errorf("Log.Level = %q, want error", cfg.Log.Level)
		}
		if !cfg.Display.Plain {
			t.Error("Display.Plain from the user file should survive")
		}
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		isolate(t)
		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if err == nil {
			t.Fatal("expected error for missing --config file")
		}
		if got := exitCode(err); got != exitSetup {
			t.Errorf("exitCode = %d, want %d", got, exitSetup)
		}
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		isolate(t)
		t.Setenv("ADDRESSBOOK_LOG_LEVEL", "loud")
		if _, err := loadConfig(""); err == nil {
			t.Error("expected validation error for unknown log level")
		}
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitSuccess},
		{name: "validation", err: &contact.ValidationError{Field: "phone", Reason: "phone number is required"}, want: exitDomain},
		{name: "duplicate", err: &contact.DuplicateError{Contact: "John", Phone: "1234567890"}, want: exitDomain},
		{name: "wrapped contact not found", err: fmt.Errorf("demo: %w", session.ErrContactNotFound), want: exitDomain},
		{name: "phone not found", err: session.ErrPhoneNotFound, want: exitDomain},
		{name: "setup", err: errors.New("config: parsing"), want: exitSetup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
