// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Setversion stamps a release version into a Python package.

It is run by the changelog tooling as a pre-commit hook, right before the
release commit is made. It finds the line

	__version__ = "0.4.0"

in codex/__init__.py under the current directory, replaces the quoted value
with the new version and writes the file back. Nothing else in the file
changes. If the file has no such line, setversion fails and the release
should be aborted.

The version is given either as the only argument:

	$ go tool setversion 0.5.0

or, with -props, as the hook props object read from stdin:

	$ echo '{"version": "0.5.0"}' | go tool setversion -props

The version file can be changed through a .devtools/config.txtar file in
the working directory. This file is a txtar archive and can contain a
setversion.json file with the following fields:

  - file: The slash-separated path of the version file relative to the
    working directory (default "codex/__init__.py").
*/
package main

import (
	_ "embed"

	"go.astrophena.name/setversion/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
