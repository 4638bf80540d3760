package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/pkg/config"
	"github.com/walteh/blockpatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [patchfile]",
		Short: "Check whether a patchfile would apply cleanly",
		Long: `Check runs the full pipeline without writing anything. It will:
1. Load and validate the patchfile
2. Resolve the target and read it
3. Apply every rule in memory, counting occurrences
4. Report the per-rule occurrence counts

The exit status reflects whether apply would succeed. A mismatch on a
target that was already patched is the expected result of a re-check.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "check").Logger().WithContext(ctx)

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

			if err := op.Check(ctx); err != nil {
				return errors.Errorf("checking patchfile: %w", err)
			}

			return nil
		},
	}

	return cmd
}
