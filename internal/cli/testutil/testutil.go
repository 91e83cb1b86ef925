// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/examsched/internal/cli/output"
	"github.com/leapstack-labs/examsched/internal/ingest"
	"github.com/leapstack-labs/examsched/internal/query"
	"github.com/leapstack-labs/examsched/internal/relation"
	"github.com/leapstack-labs/examsched/internal/testutil"
)

// SetupTestProject creates a temporary project holding the sample source
// files and an examsched.yaml that keeps the state database inside it.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	files := testutil.WriteSources(t)
	cfg := "data_dir: .\nstate_path: .examsched/state.db\n"
	if err := os.WriteFile(filepath.Join(files.Dir, "examsched.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("failed to create examsched.yaml: %v", err)
	}
	return files.Dir
}

// NewTestEngine loads the sample source files into a query engine.
func NewTestEngine(t *testing.T) *query.Engine {
	t.Helper()

	files := testutil.WriteSources(t)
	rel, err := ingest.Load(context.Background(), ingest.Sources{
		Locations: files.Locations,
		Courses:   files.Courses,
		Time:      files.Time,
	}, ingest.Options{})
	if err != nil {
		t.Fatalf("failed to load sample sources: %v", err)
	}
	store, err := relation.FromRelations(rel)
	if err != nil {
		t.Fatalf("failed to build relation store: %v", err)
	}
	return query.New(store, query.Config{InstructorDelimiter: ",", Logger: testutil.NewTestLogger(t)})
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererText creates a new test renderer in text mode (simulated TTY).
func NewTestRendererText() *TestRenderer {
	return NewTestRenderer(output.ModeText, true)
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation: balanced code
// fences and no empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
