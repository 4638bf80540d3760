// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fileops is the thin I/O shell around the patch engine: one
// read-all, one atomic write-all, and an optional backup. The engine never
// touches the filesystem; callers run it in memory and only persist the
// result here after full success.
package fileops

import (
	"context"
	"io"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// BackupSuffix is appended to the target path for backup copies
const BackupSuffix = ".orig"

// ReadFile reads the whole target into memory
func ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// WriteFileAtomic overwrites the target via a temp file and rename, so a
// failed write never leaves a partially written target. The target's file
// mode is preserved when it already exists.
func WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tempPath := path + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

// BackupFile copies the target to <target>.orig. Missing targets are not
// an error so the apply path can back up unconditionally.
func BackupFile(ctx context.Context, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(path, path+BackupSuffix); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("backed up file")
	return nil
}

// RestoreFile restores the target from <target>.orig and removes the backup
func RestoreFile(ctx context.Context, path string) error {
	backupPath := path + BackupSuffix

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return errors.Errorf("backup file does not exist")
	} else if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}

	if err := copyFile(backupPath, path); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	if err := os.Remove(backupPath); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	return nil
}

// ResolveTarget expands a glob pattern and requires it to match exactly one
// file. A plain path is an exact-match glob of itself, so non-glob targets
// pass through (after an existence check). Zero matches or multiple matches
// are errors: a patchfile targets one specific file, the same way a rule
// targets one specific block.
func ResolveTarget(ctx context.Context, pattern string) (string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", errors.Errorf("expanding target glob %q: %w", pattern, err)
	}

	switch len(matches) {
	case 0:
		return "", errors.Errorf("target %q matched no files", pattern)
	case 1:
		return matches[0], nil
	default:
		return "", errors.Errorf("target %q matched %d files, expected exactly one", pattern, len(matches))
	}
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return nil
}
