package operation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/blockpatch/pkg/fileops"
	"github.com/walteh/blockpatch/pkg/log"
	"github.com/walteh/blockpatch/pkg/patch"
	"github.com/walteh/blockpatch/pkg/userlog"
	"gitlab.com/tozd/go/errors"
)

// Apply runs the full pipeline and overwrites the target on success. On any
// rule failure the target is left untouched on disk.
func (o *operator) Apply(ctx context.Context) error {
	result, target, err := o.run(ctx, false)
	if err != nil {
		return err
	}

	if o.patchfile.Backup {
		if err := fileops.BackupFile(ctx, target); err != nil {
			return errors.Errorf("backing up target: %w", err)
		}
		o.userlog.LogOutcome(userlog.Outcome{
			Type: userlog.TargetBackedUp,
			Path: target + fileops.BackupSuffix,
		})
	}

	if err := fileops.WriteFileAtomic(ctx, target, result.Content); err != nil {
		return errors.Errorf("writing target: %w", err)
	}

	o.userlog.LogOutcome(userlog.Outcome{
		Type:        userlog.TargetPatched,
		Path:        target,
		Description: fmt.Sprintf("%d rules applied", len(result.Reports)),
	})

	return nil
}

// run is the shared pipeline for Apply and Check: resolve, read, ApplyAll,
// report. It never writes.
func (o *operator) run(ctx context.Context, dryRun bool) (*patch.Result, string, error) {
	logger := zerolog.Ctx(ctx)

	target, err := fileops.ResolveTarget(ctx, o.patchfile.Target)
	if err != nil {
		return nil, "", errors.Errorf("resolving target: %w", err)
	}
	logger.Debug().Str("target", target).Msg("resolved target")

	content, err := fileops.ReadFile(ctx, target)
	if err != nil {
		return nil, "", errors.Errorf("reading target: %w", err)
	}

	rs, err := o.patchfile.RuleSet()
	if err != nil {
		return nil, "", errors.Errorf("building ruleset: %w", err)
	}

	o.logger.StartRun(ctx, log.RunOperation{
		Patchfile: o.patchfile.Location(),
		Target:    target,
		Rules:     rs.Len(),
		DryRun:    dryRun,
	})
	defer o.logger.EndRun(ctx)

	engine := patch.New(patch.Options{OnMultiple: o.patchfile.Policy()})
	result, runErr := engine.ApplyAll(ctx, content, rs)

	o.reportRun(ctx, result, runErr)

	if runErr != nil {
		o.userlog.LogOutcome(userlog.Outcome{
			Type:        userlog.TargetUnchanged,
			Path:        target,
			Description: "target left untouched",
			Error:       runErr,
		})
		return nil, target, errors.Errorf("applying ruleset: %w", runErr)
	}

	return result, target, nil
}
