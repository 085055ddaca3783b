package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hasbyte1/bcrypt-identity/hashing"
)

var (
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed, color.Bold)
)

// colorizeOutcome renders o in the color matching its meaning.
func colorizeOutcome(o hashing.Outcome) string {
	switch o {
	case hashing.Success:
		return green.Sprint(o)
	case hashing.SuccessRehashNeeded:
		return yellow.Sprint(o)
	default:
		return red.Sprint(o)
	}
}

// VerifyCommand checks a password against a stored hash.
type VerifyCommand struct {
	io     IO
	hasher hasherFunc
	hash   string
}

// NewVerifyCommand creates a new VerifyCommand.
func NewVerifyCommand(io IO, hasher hasherFunc) *VerifyCommand {
	return &VerifyCommand{io: io, hasher: hasher}
}

// Register adds the command to root.
func (cmd *VerifyCommand) Register(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "verify HASH",
		Short: "Check a password against a hash. Exits with status 1 when it does not match.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cmd.hash = args[0]
			return cmd.Run()
		},
	})
}

// Run handles the command.
func (cmd *VerifyCommand) Run() error {
	h, err := cmd.hasher()
	if err != nil {
		return err
	}
	password, err := cmd.io.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	outcome, err := h.Verify(password, cmd.hash)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.io.Output(), colorizeOutcome(outcome))
	if !outcome.OK() {
		return errVerifyFailed
	}
	return nil
}
