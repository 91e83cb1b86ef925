package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/examsched/internal/cli/config"
	clitestutil "github.com/leapstack-labs/examsched/internal/cli/testutil"
)

// run executes the root command with args in the current directory.
func run(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCLI_SeedAndQuery(t *testing.T) {
	project := clitestutil.SetupTestProject(t)
	t.Chdir(project)

	out, _, err := run(t, nil, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "# Seeded")
	assert.Contains(t, out, "- **Courses:** 5")
	_, err = os.Stat(filepath.Join(project, ".examsched", "state.db"))
	require.NoError(t, err, "state database is created next to the config file")

	out, _, err = run(t, nil, "conflicts", "CS202", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "course\nCS101\n", out)

	out, _, err = run(t, nil, "show", "time", "--output", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "5,2024-04-13,14:00,16:30,2.5\n")

	out, _, err = run(t, nil, "status", "-o", "json")
	require.NoError(t, err)
	var st struct {
		SchemaVersion int64 `json:"schema_version"`
		LastLoad      struct {
			Courses int `json:"courses"`
		} `json:"last_load"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, int64(2), st.SchemaVersion)
	assert.Equal(t, 5, st.LastLoad.Courses)
}

func TestCLI_ExamPrompts(t *testing.T) {
	project := clitestutil.SetupTestProject(t)
	t.Chdir(project)

	_, _, err := run(t, nil, "seed")
	require.NoError(t, err)

	out, prompts, err := run(t, strings.NewReader("B\n"), "exam", "CS101", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, prompts, "There are multiple sections of course CS101.")

	var res map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "resolved", res["state"])
	assert.Equal(t, "B", res["section"])
	assert.Equal(t, "BA1160", res["room"])
}

func TestCLI_ExamSession(t *testing.T) {
	project := clitestutil.SetupTestProject(t)
	t.Chdir(project)

	_, _, err := run(t, nil, "seed")
	require.NoError(t, err)

	out, _, err := run(t, strings.NewReader("ENG100\nCS101\nA\n\n"), "exam", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Course ENG100 has exam on 2024-04-12 at 09:00.")
	assert.Contains(t, out, "Course CS101 section A has exam on 2024-04-10 at 09:00.")
}

func TestCLI_Errors(t *testing.T) {
	project := clitestutil.SetupTestProject(t)
	t.Chdir(project)

	_, _, err := run(t, nil, "rooms", "CS101")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no exam data loaded")

	_, _, err = run(t, nil, "seed", "--data-dir", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source file not found")

	_, _, err = run(t, nil, "show", "students")
	require.Error(t, err)

	_, _, err = run(t, nil, "status", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestCLI_SeedRejectsMalformed(t *testing.T) {
	project := clitestutil.SetupTestProject(t)
	t.Chdir(project)
	require.NoError(t, os.WriteFile(filepath.Join(project, "courses.csv"),
		[]byte("ID,Course,Section,Name\n1,CS101,A,Smith\n2,CS101,B\n"), 0o644))

	_, _, err := run(t, nil, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "courses.csv:3")

	t.Setenv("EXAMSCHED_SKIP_MALFORMED", "true")
	out, _, err := run(t, nil, "seed", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"courses": 1`)
}

func TestCLI_InitExample(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, _, err := run(t, nil, "init", "--example")
	require.NoError(t, err)

	_, _, err = run(t, nil, "seed")
	require.NoError(t, err)

	out, _, err := run(t, strings.NewReader("C\nB\n"), "exam", "MATH135", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "Course MATH135 section B has exam on 2024-04-13 at 14:00.")

	out, _, err = run(t, nil, "conflicts", "MATH135", "-o", "csv")
	require.NoError(t, err)
	assert.Equal(t, "course\n", out, "sections of the same course do not conflict with it")
}
