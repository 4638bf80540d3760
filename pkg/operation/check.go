package operation

import (
	"context"
	"fmt"

	"github.com/walteh/blockpatch/pkg/userlog"
)

// Check runs the full pipeline without writing. Success means Apply would
// succeed against the target as it is right now; a mismatch on a target
// that was already patched is the expected way to detect double-application.
func (o *operator) Check(ctx context.Context) error {
	result, target, err := o.run(ctx, true)
	if err != nil {
		return err
	}

	o.userlog.LogOutcome(userlog.Outcome{
		Type:        userlog.TargetUnchanged,
		Path:        target,
		Description: fmt.Sprintf("all %d rules would apply", len(result.Reports)),
	})

	return nil
}
