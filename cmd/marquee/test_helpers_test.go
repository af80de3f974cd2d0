package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"marquee/internal/config"
	"marquee/internal/fileutil"
	"marquee/internal/testsupport"
)

// cliEnv is an isolated HOME with a written config and the sample catalog.
type cliEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliEnv {
	t.Helper()

	withSample := testsupport.WithCatalog(testsupport.SampleCatalog()...)
	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{withSample}, opts...)...)
	base := testsupport.BaseDir(cfg)

	home := filepath.Join(base, "home")
	t.Setenv("HOME", home)
	t.Setenv("NAVER_CLIENT_ID", "")
	t.Setenv("NAVER_CLIENT_SECRET", "")

	encoded, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(home, ".config", "marquee", "config.toml")
	if err := fileutil.WriteFileAtomic(path, encoded, 0o644); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return &cliEnv{cfg: cfg, configPath: path, baseDir: base}
}

// runCLI executes the root command with an empty stdin and returns what it
// wrote to stdout and stderr.
func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root, state := newRootCommand()
	root.SetIn(strings.NewReader(""))
	root.SetOut(&out)
	root.SetErr(&errOut)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	root.SetArgs(args)
	err := execute(context.Background(), root, state)
	return out.String(), errOut.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("missing %q in output:\n%s", substr, output)
	}
}
