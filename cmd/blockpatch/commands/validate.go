package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewValidateCmd creates a new validate command
func NewValidateCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [patchfile]",
		Short: "Parse and validate a patchfile without touching the target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "validate").Logger().WithContext(ctx)

			pf, err := config.Load(ctx, opts.Patchfile(args))
			if err != nil {
				return errors.Errorf("loading patchfile: %w", err)
			}

			opts.UserLogger.LogValidation(true, pf.String(), nil)
			return nil
		},
	}

	return cmd
}
