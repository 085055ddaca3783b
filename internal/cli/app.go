// Package cli implements the bcrypt-identity command-line tool.
package cli

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	logging "github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/hasbyte1/bcrypt-identity/hashing"
	"github.com/hasbyte1/bcrypt-identity/internal/config"
)

// Exit statuses returned by [App.Run].
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitError  = 2
)

// errVerifyFailed makes Run exit with ExitFailed without printing an error.
var errVerifyFailed = errors.New("password does not match hash")

// App is the bcrypt-identity command tree.
type App struct {
	root    *cobra.Command
	io      IO
	clipper Clipper
	log     *logging.Logger

	configPath string
	policy     string
	debug      bool
	noColor    bool
}

// NewApp defines the command tree. Commands read and write through io.
func NewApp(io IO, clipper Clipper) *App {
	app := &App{
		io:      io,
		clipper: clipper,
		log:     logging.MustGetLogger("cli"),
	}
	app.root = &cobra.Command{
		Use:           "bcrypt-identity",
		Short:         "Hash and verify passwords with versioned bcrypt policies.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if app.noColor {
				color.NoColor = true
			}
			app.log = NewLogger(io.Errors(), "cli", app.debug)
		},
	}
	app.root.SetOut(io.Output())
	app.root.SetErr(io.Errors())

	flags := app.root.PersistentFlags()
	flags.StringVarP(&app.configPath, "config", "c", "", "Read hashing policies from this YAML file.")
	flags.StringVarP(&app.policy, "policy", "p", "", "Use this policy instead of the configured default.")
	flags.BoolVar(&app.debug, "debug", false, "Enable debug logging.")
	flags.BoolVar(&app.noColor, "no-color", false, "Disable colored output.")

	NewHashCommand(io, clipper, app.hasher).Register(app.root)
	NewVerifyCommand(io, app.hasher).Register(app.root)
	NewInspectCommand(io, app.hasher).Register(app.root)
	NewCalibrateCommand(io).Register(app.root)

	return app
}

// Run executes the command given by args and returns the process exit status.
func (a *App) Run(args []string) int {
	a.root.SetArgs(args)
	err := a.root.Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errVerifyFailed):
		return ExitFailed
	default:
		fmt.Fprintf(a.io.Errors(), "Encountered an error: %s\n", err)
		return ExitError
	}
}

// hasher resolves the policy selected by --config and --policy.
func (a *App) hasher() (*hashing.BcryptHasher, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	m, err := cfg.Manager()
	if err != nil {
		return nil, err
	}

	name := a.policy
	if name == "" {
		name = m.DefaultName()
	}
	h, err := m.Policy(name)
	if err != nil {
		return nil, err
	}
	a.log.Debugf("using policy %s: cost %d, strategy %s", name, h.Cost(), h.Strategy().Name())
	return h, nil
}
