package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hasbyte1/bcrypt-identity/hashing"
)

type hasherFunc func() (*hashing.BcryptHasher, error)

// HashCommand hashes a password with the selected policy.
type HashCommand struct {
	io           IO
	clipper      Clipper
	hasher       hasherFunc
	useClipboard bool
}

// NewHashCommand creates a new HashCommand.
func NewHashCommand(io IO, clipper Clipper, hasher hasherFunc) *HashCommand {
	return &HashCommand{io: io, clipper: clipper, hasher: hasher}
}

// Register adds the command to root.
func (cmd *HashCommand) Register(root *cobra.Command) {
	c := &cobra.Command{
		Use:   "hash",
		Short: "Hash a password read from the terminal or stdin.",
		Args:  cobra.NoArgs,
		RunE:  func(*cobra.Command, []string) error { return cmd.Run() },
	}
	c.Flags().BoolVar(&cmd.useClipboard, "clip", false, "Copy the hash to the clipboard instead of printing it.")
	root.AddCommand(c)
}

// Run handles the command.
func (cmd *HashCommand) Run() error {
	h, err := cmd.hasher()
	if err != nil {
		return err
	}
	password, err := cmd.io.ReadPassword("Password: ")
	if err != nil {
		return err
	}
	hash, err := h.Make(password)
	if err != nil {
		return err
	}

	if cmd.useClipboard {
		if err := cmd.clipper.WriteAll(hash); err != nil {
			return err
		}
		fmt.Fprintln(cmd.io.Output(), "Copied hash to clipboard.")
		return nil
	}
	fmt.Fprintln(cmd.io.Output(), hash)
	return nil
}
