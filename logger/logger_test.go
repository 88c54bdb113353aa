// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"go.astrophena.name/setversion/testutil"
)

func TestLogfWriter(t *testing.T) {
	var (
		logged  bool
		message string
	)
	logf := func(format string, args ...any) {
		logged = true
		message = fmt.Sprintf(format, args...)
	}
	n, err := Logf(logf).Write([]byte("updated codex/__init__.py"))
	testutil.AssertEqual(t, err, nil)
	testutil.AssertEqual(t, n, len("updated codex/__init__.py"))
	testutil.AssertEqual(t, logged, true)
	testutil.AssertEqual(t, message, "updated codex/__init__.py")
}

func TestConsoleHandler(t *testing.T) {
	var buf bytes.Buffer
	l := New(nil)
	l.Attach(NewConsoleHandler(&buf, l.Level, true))
	ctx := Put(context.Background(), l)

	Debug(ctx, "hidden", slog.String("version", "0.0.1"))
	Info(ctx, "updated version", slog.String("version", "1.2.4"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record logged at info level: %q", out)
	}
	for _, want := range []string{"INF", "updated version", "version=1.2.4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output contains color escapes with noColor set: %q", out)
	}

	buf.Reset()
	l.Level.Set(slog.LevelDebug)
	Debug(ctx, "read file", slog.String("path", "codex/__init__.py"))
	if !strings.Contains(buf.String(), "DBG read file") {
		t.Errorf("debug record missing after lowering level: %q", buf.String())
	}
}

func TestFanOut(t *testing.T) {
	var a, b bytes.Buffer
	l := New(nil)
	l.Attach(slog.NewTextHandler(&a, nil))
	l.Attach(slog.NewTextHandler(&b, nil))

	l.With(slog.String("file", "codex/__init__.py")).Info("updated version")

	for name, buf := range map[string]*bytes.Buffer{"a": &a, "b": &b} {
		if !strings.Contains(buf.String(), "file=codex/__init__.py") {
			t.Errorf("handler %s output = %q, want attribute from With", name, buf.String())
		}
	}
}

func TestGetDefault(t *testing.T) {
	testutil.AssertEqual(t, IsDefault(Get(context.Background())), true)

	l := New(nil)
	testutil.AssertEqual(t, Get(Put(context.Background(), l)), l)
	testutil.AssertEqual(t, IsDefault(l), false)
}
