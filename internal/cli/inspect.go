package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hasbyte1/bcrypt-identity/hashing"
)

// InspectCommand prints the parameters encoded in a hash.
type InspectCommand struct {
	io     IO
	hasher hasherFunc
	hash   string
}

// NewInspectCommand creates a new InspectCommand.
func NewInspectCommand(io IO, hasher hasherFunc) *InspectCommand {
	return &InspectCommand{io: io, hasher: hasher}
}

// Register adds the command to root.
func (cmd *InspectCommand) Register(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "inspect HASH",
		Short: "Show the version, cost and salt of a hash and whether the policy would rehash it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cmd.hash = args[0]
			return cmd.Run()
		},
	})
}

// Run handles the command.
func (cmd *InspectCommand) Run() error {
	info, err := hashing.ParseHash(cmd.hash)
	if err != nil {
		return err
	}
	h, err := cmd.hasher()
	if err != nil {
		return err
	}
	rehash, err := h.NeedsRehash(cmd.hash)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.io.Output(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "version:\t%s\n", info.Version)
	fmt.Fprintf(w, "cost:\t%d\n", info.Cost)
	fmt.Fprintf(w, "salt:\t%s\n", info.Salt)
	fmt.Fprintf(w, "policy cost:\t%d\n", h.Cost())
	fmt.Fprintf(w, "rehash needed:\t%s\n", yesNo(rehash))
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
