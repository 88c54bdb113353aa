// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.astrophena.name/setversion/cli"
	"go.astrophena.name/setversion/txtar"
	"go.astrophena.name/setversion/versionfile"
)

const configPath = ".devtools/config.txtar"

type config struct {
	File string `json:"file"`
}

func loadConfig(dir string) (*config, error) {
	cfg := &config{File: versionfile.DefaultName}

	ar, err := txtar.ParseFile(filepath.Join(dir, filepath.FromSlash(configPath)))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	data, err := ar.Lookup("setversion.json")
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: setversion.json: %w", configPath, err)
	}
	if cfg.File == "" {
		cfg.File = versionfile.DefaultName
	}
	return cfg, nil
}

// props is the object the release host passes to its pre-commit hook.
type props struct {
	Version string `json:"version"`
}

func main() { cli.Main(new(app)) }

type app struct {
	dir   string
	dry   bool
	props bool
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.dir, "dir", ".", "Resolve the version file relative to `dir`.")
	fs.BoolVar(&a.dry, "dry", false, "Log the rewritten file instead of writing it.")
	fs.BoolVar(&a.props, "props", false, "Read the hook props as a JSON object from stdin.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	version, err := a.version(env)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(a.dir)
	if err != nil {
		return err
	}
	f := versionfile.File{Dir: a.dir, Name: cfg.File}

	if a.dry {
		out, err := f.Preview(version)
		if err != nil {
			return err
		}
		env.Logf("Would update %s to version %s:\n%s", f.Path(), version, out)
		return nil
	}
	return f.Update(ctx, version)
}

func (a *app) version(env *cli.Env) (string, error) {
	var version string
	if a.props {
		if len(env.Args) > 0 {
			return "", fmt.Errorf("%w: -props takes no arguments", cli.ErrInvalidArgs)
		}
		var p props
		if err := json.NewDecoder(env.Stdin).Decode(&p); err != nil {
			return "", fmt.Errorf("reading props: %w", err)
		}
		version = p.Version
	} else {
		if len(env.Args) != 1 {
			return "", fmt.Errorf("%w: want exactly one version, got %d arguments", cli.ErrInvalidArgs, len(env.Args))
		}
		version = env.Args[0]
	}

	// A quote or line break would leave a file the next run cannot match.
	switch {
	case version == "":
		return "", fmt.Errorf("%w: empty version", cli.ErrInvalidArgs)
	case strings.ContainsAny(version, "\"\r\n"):
		return "", fmt.Errorf("%w: version %q contains a quote or line break", cli.ErrInvalidArgs, version)
	}
	return version, nil
}
