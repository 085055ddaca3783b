package cli

import (
	"fmt"
	"strings"
	"time"

	units "github.com/docker/go-units"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/hasbyte1/bcrypt-identity/hashing"
)

const (
	defaultCalibrateTarget  = 250 * time.Millisecond
	defaultCalibrateMaxCost = 16

	calibrationPassword = "calibration password"
)

// CalibrateCommand finds the smallest cost whose hashing time on this machine
// reaches a target.
type CalibrateCommand struct {
	io      IO
	target  time.Duration
	maxCost int
	measure func(cost int) (time.Duration, error)
	now     func() time.Time
}

// NewCalibrateCommand creates a new CalibrateCommand.
func NewCalibrateCommand(io IO) *CalibrateCommand {
	return &CalibrateCommand{
		io:      io,
		target:  defaultCalibrateTarget,
		maxCost: defaultCalibrateMaxCost,
		measure: measureCost,
		now:     time.Now,
	}
}

// Register adds the command to root.
func (cmd *CalibrateCommand) Register(root *cobra.Command) {
	c := &cobra.Command{
		Use:   "calibrate",
		Short: "Find the smallest cost that takes at least the target time to hash.",
		Args:  cobra.NoArgs,
		RunE:  func(*cobra.Command, []string) error { return cmd.Run() },
	}
	c.Flags().DurationVar(&cmd.target, "target", cmd.target, "Minimum time a single hash should take.")
	c.Flags().IntVar(&cmd.maxCost, "max-cost", cmd.maxCost, "Highest cost to try.")
	root.AddCommand(c)
}

// Run handles the command.
func (cmd *CalibrateCommand) Run() error {
	if cmd.target <= 0 {
		return fmt.Errorf("%w: target must be positive", hashing.ErrInvalidOption)
	}
	if cmd.maxCost < bcrypt.MinCost || cmd.maxCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: max-cost must be between %d and %d", hashing.ErrInvalidOption, bcrypt.MinCost, bcrypt.MaxCost)
	}

	start := cmd.now()
	chosen := 0
	for cost := bcrypt.MinCost; cost <= cmd.maxCost; cost++ {
		elapsed, err := cmd.measure(cost)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.io.Output(), "cost %2d  %s\n", cost, elapsed.Round(time.Millisecond))
		if elapsed >= cmd.target {
			chosen = cost
			break
		}
	}

	took := strings.ToLower(units.HumanDuration(cmd.now().Sub(start)))
	if chosen == 0 {
		fmt.Fprintf(cmd.io.Output(), "No cost up to %d reaches %s; use %d. Calibration took %s.\n",
			cmd.maxCost, cmd.target, cmd.maxCost, took)
		return nil
	}
	fmt.Fprintf(cmd.io.Output(), "Recommended cost: %d. Calibration took %s.\n", chosen, took)
	return nil
}

func measureCost(cost int) (time.Duration, error) {
	h, err := hashing.New(hashing.Options{Cost: cost, Strategy: hashing.Plain})
	if err != nil {
		return 0, err
	}
	start := time.Now()
	if _, err := h.Make(calibrationPassword); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}
