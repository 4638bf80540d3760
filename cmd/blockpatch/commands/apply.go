package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/pkg/config"
	"github.com/walteh/blockpatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [patchfile]",
		Short: "Apply a patchfile to its target file",
		Long: `Apply loads a patchfile, runs every rule against the target, and
overwrites the target atomically on success. It will:
1. Load and validate the patchfile
2. Resolve the target (a glob must match exactly one file)
3. Apply every rule in order, counting occurrences
4. Write the result only if every rule matched exactly once`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "apply").Logger().WithContext(ctx)

			pf, err := config.Load(ctx, opts.Patchfile(args))
			if err != nil {
				return errors.Errorf("loading patchfile: %w", err)
			}

			op, err := operation.New(operation.Options{
				Patchfile:  pf,
				Logger:     opts.Logger,
				UserLogger: opts.UserLogger,
			})
			if err != nil {
				return errors.Errorf("creating operator: %w", err)
			}

			if err := op.Apply(ctx); err != nil {
				return errors.Errorf("applying patchfile: %w", err)
			}

			return nil
		},
	}

	return cmd
}
