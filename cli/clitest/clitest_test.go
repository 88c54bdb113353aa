// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package clitest_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"go.astrophena.name/setversion/cli"
	"go.astrophena.name/setversion/cli/clitest"
)

var (
	errNoVersion = errors.New("no version given")
	errWrapped   = fmt.Errorf("stamping: %w", errNoVersion)
)

type pathError struct{ path string }

func (e *pathError) Error() string { return "cannot stamp " + e.path }

// fakeApp acts on its first argument.
type fakeApp struct {
	ran  bool
	last string
}

func (a *fakeApp) Run(ctx context.Context) error {
	a.ran = true
	env := cli.GetEnv(ctx)
	if len(env.Args) == 0 {
		return nil
	}
	a.last = env.Args[0]

	switch env.Args[0] {
	case "wrapped":
		return errWrapped
	case "typed":
		return &pathError{path: "codex/__init__.py"}
	case "stdout":
		fmt.Fprint(env.Stdout, "1.2.4")
	case "stderr":
		fmt.Fprint(env.Stderr, "stamped 1.2.4")
	case "stdin":
		data, _ := io.ReadAll(env.Stdin)
		fmt.Fprint(env.Stdout, string(data))
	case "env":
		fmt.Fprint(env.Stdout, env.Getenv("RELEASE_VERSION"))
	}
	return nil
}

func TestRun(t *testing.T) {
	setup := func(t *testing.T) *fakeApp { return &fakeApp{} }

	cases := map[string]clitest.Case[*fakeApp]{
		"nothing printed": {
			WantNothingPrinted: true,
		},
		"stdout": {
			Args:         []string{"stdout"},
			WantInStdout: "1.2.4",
		},
		"stderr": {
			Args:         []string{"stderr"},
			WantInStderr: "stamped 1.2.4",
		},
		"stdin": {
			Args:         []string{"stdin"},
			Stdin:        strings.NewReader(`{"version": "1.2.4"}`),
			WantInStdout: `{"version": "1.2.4"}`,
		},
		"env": {
			Args:         []string{"env"},
			Env:          map[string]string{"RELEASE_VERSION": "2.0.0"},
			WantInStdout: "2.0.0",
		},
		"WantErr with errors.Is": {
			Args:    []string{"wrapped"},
			WantErr: errNoVersion,
		},
		"WantErrType with errors.As": {
			Args:        []string{"typed"},
			WantErrType: &pathError{},
		},
		"CheckFunc sees the app": {
			Args: []string{"stdout"},
			CheckFunc: func(t *testing.T, a *fakeApp) {
				if !a.ran || a.last != "stdout" {
					t.Errorf("app state = %+v, want it to have run with stdout", a)
				}
			},
		},
	}

	clitest.Run(t, setup, cases)
}
