package opts

import (
	"github.com/walteh/blockpatch/pkg/log"
	"github.com/walteh/blockpatch/pkg/userlog"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// PatchfilePath is the patchfile to load, from the --config flag.
	// A positional argument on a command overrides it.
	PatchfilePath string

	// Logger renders per-rule reports to the console
	Logger *log.Logger

	// UserLogger reports coarse run outcomes
	UserLogger *userlog.UserLogger
}

// Patchfile returns the patchfile path, preferring the positional argument
func (o *RootOpts) Patchfile(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return o.PatchfilePath
}
