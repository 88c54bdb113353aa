// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package versionfile rewrites the __version__ assignment of a Python
// package.
//
// The assignment must start a line that is not the first line of the file
// and have the shape
//
//	__version__ = "0.1.0"
//
// with optional whitespace around the equals sign. Only the quoted value is
// replaced; everything else in the file is preserved byte for byte.
package versionfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/natefinch/atomic"

	"go.astrophena.name/setversion/logger"
)

// DefaultName is the path of the version file relative to the working
// directory.
const DefaultName = "codex/__init__.py"

// assignment matches a version assignment. Group 2 holds the value.
var assignment = regexp.MustCompile(`(\n__version__\s*=\s*")([^"]*)("\s*\n?)`)

// ErrNoAssignment is returned by [Rewrite] when the input has no version
// assignment.
var ErrNoAssignment = errors.New("no __version__ assignment")

// PatternNotFoundError is returned when a version file has no __version__
// assignment. It unwraps to [ErrNoAssignment].
type PatternNotFoundError struct {
	Path string
}

func (e *PatternNotFoundError) Error() string {
	return fmt.Sprintf("could not locate __version__ assignment in %s", e.Path)
}

func (e *PatternNotFoundError) Unwrap() error { return ErrNoAssignment }

// Current returns the value of the first version assignment in src.
func Current(src []byte) (string, bool) {
	m := assignment.FindSubmatch(src)
	if m == nil {
		return "", false
	}
	return string(m[2]), true
}

// Rewrite returns a copy of src with the value of the first version
// assignment replaced by version.
func Rewrite(src []byte, version string) ([]byte, error) {
	loc := assignment.FindSubmatchIndex(src)
	if loc == nil {
		return nil, ErrNoAssignment
	}
	start, end := loc[4], loc[5]

	var buf bytes.Buffer
	buf.Grow(len(src) - (end - start) + len(version))
	buf.Write(src[:start])
	buf.WriteString(version)
	buf.Write(src[end:])
	return buf.Bytes(), nil
}

// File is a version file located under a working directory.
type File struct {
	// Dir is the working directory. Empty means the current one.
	Dir string
	// Name is the slash-separated path of the file relative to Dir.
	// Empty means DefaultName.
	Name string
}

// Path returns the file's path.
func (f File) Path() string {
	name := f.Name
	if name == "" {
		name = DefaultName
	}
	return filepath.Join(f.Dir, filepath.FromSlash(name))
}

// Read returns the version currently assigned in the file.
func (f File) Read() (string, error) {
	path := f.Path()
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	v, ok := Current(src)
	if !ok {
		return "", &PatternNotFoundError{Path: path}
	}
	return v, nil
}

// Preview returns the file's contents as they would be after stamping
// version, without writing anything.
func (f File) Preview(version string) ([]byte, error) {
	path := f.Path()
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := Rewrite(src, version)
	if errors.Is(err, ErrNoAssignment) {
		return nil, &PatternNotFoundError{Path: path}
	}
	return out, err
}

// Update replaces the version assigned in the file with version.
//
// A missing or unreadable file is reported with the error from the file
// system and nothing is created. A file without an assignment is reported
// with [*PatternNotFoundError] and left untouched. The new contents replace
// the old ones atomically, so a failed write never truncates the file. If the
// path is a symbolic link, the file it points to is rewritten and the link
// is kept.
func (f File) Update(ctx context.Context, version string) error {
	path := f.Path()
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if prev, ok := Current(src); ok {
		logger.Debug(ctx, "found version assignment", slog.String("file", path), slog.String("previous", prev))
	}

	out, err := Rewrite(src, version)
	if errors.Is(err, ErrNoAssignment) {
		return &PatternNotFoundError{Path: path}
	}
	if err != nil {
		return err
	}

	// The rename must land on the link target, not replace the link.
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(target, bytes.NewReader(out)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	logger.Info(ctx, "updated version", slog.String("file", path), slog.String("version", version))
	return nil
}

// Update stamps version into DefaultName under dir.
func Update(ctx context.Context, dir, version string) error {
	return File{Dir: dir}.Update(ctx, version)
}
