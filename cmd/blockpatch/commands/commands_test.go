package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/blockpatch/cmd/blockpatch/opts"
	"github.com/walteh/blockpatch/pkg/log"
	"github.com/walteh/blockpatch/pkg/userlog"
)

func init() {
	pterm.DisableOutput()
}

func newTestOpts(t *testing.T) (*opts.RootOpts, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	return &opts.RootOpts{
		Logger:     log.New(buf, zerolog.Disabled),
		UserLogger: userlog.NewUserLogger(context.Background()),
	}, buf
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(ctx)
}

func writeTarget(t *testing.T, content string) (targetPath, patchfilePath string) {
	t.Helper()

	dir := t.TempDir()
	targetPath = filepath.Join(dir, "target.txt")
	require.NoError(t, os.WriteFile(targetPath, []byte(content), 0644))
	return targetPath, filepath.Join(dir, "patch.yaml")
}

func writePatchfile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestApplyCmd(t *testing.T) {
	target, patchfile := writeTarget(t, "A. X. B.")
	writePatchfile(t, patchfile, `
target: `+target+`
rules:
  - name: swap
    search: X
    replace: Y
`)

	rootOpts, _ := newTestOpts(t)
	err := execute(t, NewApplyCmd(rootOpts), patchfile)
	require.NoError(t, err)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "A. Y. B.", string(content))
}

func TestApplyCmd_MismatchFailsWithoutWriting(t *testing.T) {
	target, patchfile := writeTarget(t, "A. B.")
	writePatchfile(t, patchfile, `
target: `+target+`
rules:
  - search: X
    replace: Y
`)

	rootOpts, _ := newTestOpts(t)
	err := execute(t, NewApplyCmd(rootOpts), patchfile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search text not found")

	content, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, "A. B.", string(content))
}

func TestCheckCmd(t *testing.T) {
	target, patchfile := writeTarget(t, "A. X. B.")
	writePatchfile(t, patchfile, `
target: `+target+`
rules:
  - search: X
    replace: Y
`)

	rootOpts, _ := newTestOpts(t)
	require.NoError(t, execute(t, NewCheckCmd(rootOpts), patchfile))

	// Check never writes
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "A. X. B.", string(content))
}

func TestValidateCmd(t *testing.T) {
	_, patchfile := writeTarget(t, "irrelevant")
	writePatchfile(t, patchfile, `
target: whatever.txt
rules:
  - search: X
    replace: Y
`)

	rootOpts, _ := newTestOpts(t)
	require.NoError(t, execute(t, NewValidateCmd(rootOpts), patchfile))
}

func TestValidateCmd_BadPatchfile(t *testing.T) {
	_, patchfile := writeTarget(t, "irrelevant")
	writePatchfile(t, patchfile, `
target: whatever.txt
rules:
  - replace: Y
`)

	rootOpts, _ := newTestOpts(t)
	err := execute(t, NewValidateCmd(rootOpts), patchfile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search is required")
}

func TestRootOpts_PatchfileArgPrecedence(t *testing.T) {
	rootOpts := &opts.RootOpts{PatchfilePath: ".blockpatch.yaml"}

	assert.Equal(t, ".blockpatch.yaml", rootOpts.Patchfile(nil))
	assert.Equal(t, "explicit.yaml", rootOpts.Patchfile([]string{"explicit.yaml"}))
}
