package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sheet = "2024-01-08\n" +
	"MON\n" +
	"\tWORKING DAY 08:30 - 17:00\n" +
	"\tLUNCH 30m\n" +
	"TUE\n" +
	"\tWORKING DAY 09:00 - 16:00\n" +
	"\tWORK 30m | review\n"

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReport(t *testing.T) {
	path := writeFile(t, "sheet.ts", sheet)

	out, stderr, err := run(t, "report", "--no-color", "--verbose", path)
	require.NoError(t, err)
	assert.Contains(t, out, "│ -30m  │ Week starting 2024-01-08")
	assert.Contains(t, out, "│ +0m   │ MON")
	assert.Contains(t, out, "│ -30m  │ TUE")
	assert.Contains(t, out, "TOTAL DEFICIT NOW")
	assert.Contains(t, out, "RETAIN CREDIT + LUNCH")
	assert.NotContains(t, out, "\x1b[")
	assert.Contains(t, stderr, "parsed timesheet")
}

func TestReport_ConfigLimitsWeeks(t *testing.T) {
	path := writeFile(t, "sheet.ts", sheet+"2024-01-15\nMON\n\tLEAVE 8h\n")
	cfg := writeFile(t, "tsh.yaml", "weeks: 1\n")

	out, _, err := run(t, "report", "--no-color", "--config", cfg, path)
	require.NoError(t, err)
	assert.Contains(t, out, "Previous weeks truncated")
	assert.Equal(t, 1, strings.Count(out, "Week starting"))
}

func TestReport_ParseFailure(t *testing.T) {
	path := writeFile(t, "sheet.ts", "2024-01-08\nMON\n\tWORK 1h\n")
	_, stderr, err := run(t, "report", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PACKING ERROR")
	assert.Contains(t, stderr, "parse failed")
}

func TestCheck_Text(t *testing.T) {
	out, _, err := run(t, "check", writeFile(t, "ok.ts", sheet))
	require.NoError(t, err)
	assert.Equal(t, "ok: 1 week(s)\n", out)

	out, _, err = run(t, "check", writeFile(t, "bad.ts", "2024-01-08\nMON\n\tNOW 1h\n"))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "syntax error at 3:2")
}

func TestCheck_JSON(t *testing.T) {
	out, _, err := run(t, "check", "--format", "json", writeFile(t, "bad.ts", "2024-01-08\nMON\n\tBREAK 10m\n"))
	assert.ErrorIs(t, err, errReported)

	var res struct {
		OK      bool `json:"ok"`
		Packing struct {
			Code    string   `json:"code"`
			Context []string `json:"context"`
		} `json:"packing_error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.OK)
	assert.Equal(t, "too_few", res.Packing.Code)
	require.NotEmpty(t, res.Packing.Context)
	assert.Equal(t, "break", res.Packing.Context[0])
	assert.Equal(t, "body", res.Packing.Context[len(res.Packing.Context)-1])
}

func TestCheck_Language(t *testing.T) {
	out, _, err := run(t, "check", "--lang", "ja", writeFile(t, "bad.ts", "2024-01-08\nMON\n\tWORK 1h\n"))
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "パッキングエラー")

	_, _, err = run(t, "check", "--lang", "fr", writeFile(t, "ok.ts", sheet))
	assert.ErrorContains(t, err, "unsupported language")
}

func TestDumpThenPack(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, _, err := run(t, "dump", "--format", format, writeFile(t, "sheet.ts", sheet))
			require.NoError(t, err)
			assert.Contains(t, out, "working_day")

			dump := writeFile(t, "sheet."+format, out)
			outline, _, err := run(t, "pack", dump)
			require.NoError(t, err)
			lines := strings.Split(strings.TrimSpace(outline), "\n")
			assert.Equal(t, "body [many]", lines[0])
			assert.Contains(t, outline, `DAY_NAME [none] "MON"`)
			assert.NotContains(t, outline, "NEWLINE")
		})
	}
}

func TestPack_GrammarOverride(t *testing.T) {
	out, _, err := run(t, "dump", "--format", "json", writeFile(t, "sheet.ts", sheet))
	require.NoError(t, err)
	dump := writeFile(t, "sheet.json", out)

	// without trivia the layout nodes are packed as ordinary children
	grammar := writeFile(t, "grammar.yaml", "trivia: {}\n")
	outline, _, err := run(t, "pack", "--grammar", grammar, dump)
	require.NoError(t, err)
	assert.Contains(t, outline, "NEWLINE [none]")

	_, _, err = run(t, "pack", "--root", "weeks", dump)
	assert.ErrorContains(t, err, "PACKING ERROR")
}

func TestStartAndEnd(t *testing.T) {
	out, _, err := run(t, "start", "work", "08:30")
	require.NoError(t, err)
	assert.Equal(t, "WORK: 08:30\n", out)

	out, _, err = run(t, "end", "working_day", "NOW")
	require.NoError(t, err)
	assert.Equal(t, "WORKING DAY: NOW\n", out)

	_, _, err = run(t, "start", "work", "NOW")
	assert.ErrorContains(t, err, "invalid start time")

	_, _, err = run(t, "end", "lunch", "25:00")
	assert.ErrorContains(t, err, "invalid end time")

	_, _, err = run(t, "start", "nap", "08:00")
	assert.ErrorContains(t, err, "unknown event kind")
}
