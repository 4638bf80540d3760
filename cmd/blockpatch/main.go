package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/blockpatch/cmd/blockpatch/commands"
	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/pkg/log"
	"github.com/walteh/blockpatch/pkg/userlog"
)

func main() {
	// Setup logging
	logger := setupLogging()
	ctx := logger.WithContext(context.Background())

	// Create user logger
	userLogger := userlog.NewUserLogger(ctx)

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "blockpatch",
		Short: "A deterministic exact-match source patcher",
		Long: `blockpatch applies an ordered list of literal search/replace rules
(a patchfile) to a single text file. Every rule must match exactly once:
a rule that matches zero times or more than once fails the whole run and
the target file is left untouched.`,
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Create root options
	rootOpts := &opts.RootOpts{
		Logger:     log.New(os.Stdout, zerolog.InfoLevel),
		UserLogger: userLogger,
	}

	cobra.OnInitialize(func() {
		rootOpts.PatchfilePath = configFile
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	})

	// Add commands
	rootCmd.AddCommand(
		commands.NewApplyCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewValidateCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
