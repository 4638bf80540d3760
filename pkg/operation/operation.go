// Package operation provides core functionality for applying and checking patchfiles
package operation

import (
	"context"

	"github.com/walteh/blockpatch/pkg/config"
	"github.com/walteh/blockpatch/pkg/log"
	"github.com/walteh/blockpatch/pkg/patch"
	"github.com/walteh/blockpatch/pkg/userlog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the main interface for blockpatch operations
type Operator interface {
	// Apply runs the ruleset against the target and overwrites it on success
	Apply(ctx context.Context) error
	// Check is a dry run: same pipeline, no write
	Check(ctx context.Context) error
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Patchfile is the loaded run configuration
	Patchfile *config.Patchfile
	// Logger renders the per-rule report
	Logger *log.Logger
	// UserLogger reports target-level outcomes
	UserLogger *userlog.UserLogger
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Patchfile == nil {
		return nil, errors.Errorf("patchfile is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.UserLogger == nil {
		return nil, errors.Errorf("user logger is required")
	}
	return &operator{
		patchfile: opts.Patchfile,
		logger:    opts.Logger,
		userlog:   opts.UserLogger,
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	patchfile *config.Patchfile
	logger    *log.Logger
	userlog   *userlog.UserLogger
}

// reportRun renders every rule report, flagging the failing rule when the
// run ended in an error
func (o *operator) reportRun(ctx context.Context, result *patch.Result, runErr error) {
	for _, report := range result.Reports {
		op := log.RuleOperation{
			Index:       report.Index,
			Label:       patch.Rule{Name: report.Name}.Label(report.Index),
			Occurrences: report.Occurrences,
			Applied:     true,
		}
		if runErr != nil && report.Index == len(result.Reports)-1 {
			op.Applied = false
			op.Mismatch = errors.Is(runErr, patch.ErrRuleMismatch)
			op.Ambiguous = errors.Is(runErr, patch.ErrAmbiguousRule)
		}
		o.logger.LogRuleOperation(ctx, op)
	}
}
