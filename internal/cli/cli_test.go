package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/matzehuels/collabgraph/pkg/errors"
	"github.com/matzehuels/collabgraph/pkg/pipeline"
)

const testDataset = `{
  "records": [
    {"category": "merge", "actor": "alice", "acted_upon": "bob"},
    {"category": "review", "actor": "bob", "acted_upon": "alice", "state": "APPROVED"},
    {"category": "comment", "actor": "carol", "acted_upon": "bob", "occurrences": 2},
    {"category": "mention", "actor": "dave", "acted_upon": "carol"},
    {"category": "comment", "actor": "eve", "acted_upon": "frank"}
  ]
}`

// runCLI executes the root command with args and returns its stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(configEnv, "")
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	prev := stdout
	stdout = io.Discard
	t.Cleanup(func() { stdout = prev })

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte(testDataset), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeJSON(t *testing.T) {
	path := writeDataset(t)
	out, err := runCLI(t, "analyze", path, "--json", "--no-cache", "--top", "2", "--user", "alice")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var report pipeline.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Summary.Vertices != 6 {
		t.Errorf("vertices = %d, want 6", report.Summary.Vertices)
	}
	if len(report.Influencers) != 2 || report.Influencers[0].Label != "bob" {
		t.Errorf("influencers = %v, want bob first", report.Influencers)
	}
	if len(report.Communities) != 2 {
		t.Errorf("communities = %v, want 2", report.Communities)
	}
	if report.Focus == nil || report.Focus.User != "alice" {
		t.Fatalf("focus = %+v", report.Focus)
	}
	if len(report.Focus.NonDirect) == 0 || report.Focus.NonDirect[0].Label != "carol" {
		t.Errorf("non-direct = %v, want carol first", report.Focus.NonDirect)
	}
	if report.Fragmenting == nil {
		t.Error("expected a fragmenting user")
	}
}

func TestAnalyzeErrors(t *testing.T) {
	path := writeDataset(t)
	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"missing file", []string{"analyze", filepath.Join(t.TempDir(), "nope.json"), "--no-cache"}, errs.ErrCodeFileNotFound},
		{"bad top", []string{"analyze", path, "--top", "-1", "--no-cache"}, errs.ErrCodeInvalidInput},
		{"unknown user", []string{"analyze", path, "--json", "--user", "zed", "--no-cache"}, errs.ErrCodeUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestAnalyzeText(t *testing.T) {
	var buf bytes.Buffer
	path := writeDataset(t)
	_, err := func() (string, error) {
		t.Setenv(configEnv, "")
		t.Setenv("XDG_CACHE_HOME", t.TempDir())
		prev := stdout
		stdout = &buf
		defer func() { stdout = prev }()

		root := New(io.Discard, LogInfo).RootCommand()
		root.SetArgs([]string{"analyze", path, "--no-cache"})
		return "", root.Execute()
	}()
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	for _, want := range []string{"Summary", "Most influential", "bob", "Communities", "Most fragmenting"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestExportWritesFiles(t *testing.T) {
	path := writeDataset(t)
	base := filepath.Join(t.TempDir(), "out", "graph")
	if _, err := runCLI(t, "export", path, "-f", "json,dot", "-o", base, "--highlight", "alice"); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(base + ".json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"label": "alice"`) {
		t.Errorf("json export missing alice:\n%s", data)
	}
	dot, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(dot), "graph G {") {
		t.Errorf("dot export = %q", dot)
	}
}

func TestExportRejectsFormat(t *testing.T) {
	path := writeDataset(t)
	_, err := runCLI(t, "export", path, "-f", "png", "--no-cache")
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestClosestWithHandle(t *testing.T) {
	path := writeDataset(t)
	if _, err := runCLI(t, "closest", path, "bob", "--no-cache"); err != nil {
		t.Errorf("closest bob: %v", err)
	}
	_, err := runCLI(t, "closest", path, "zed", "--no-cache")
	if !errs.Is(err, errs.ErrCodeUserNotFound) {
		t.Errorf("closest zed error = %v, want USER_NOT_FOUND", err)
	}
}

func TestConfigFlag(t *testing.T) {
	path := writeDataset(t)
	cfg := filepath.Join(t.TempDir(), "collabgraph.toml")
	if err := os.WriteFile(cfg, []byte("[report]\ntop = 1\n\n[cache]\nbackend = \"none\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "--config", cfg, "analyze", path, "--json")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var report pipeline.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Influencers) != 1 {
		t.Errorf("influencers = %d, want 1 from config", len(report.Influencers))
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[report]\ntopp = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, "--config", bad, "analyze", path); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestCachePathAndClear(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Errorf("cache clear: %v", err)
	}
}
