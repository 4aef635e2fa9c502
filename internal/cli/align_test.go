package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scoremark/internal/scorelog"
	"github.com/roach88/scoremark/internal/testutil"
)

func manifestPath(name string) string {
	return filepath.Join("..", "chain", "testdata", name)
}

func TestAlignYAMLToStdout(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	stdout, _, err := execute(t, NewAlignCommand(rootOpts), manifestPath("lights_on.yaml"))
	require.NoError(t, err)

	// Same chain as the copy command, expressed as a manifest.
	newGoldie(t).Assert(t, "copy_lights_on", []byte(stdout))
}

func TestAlignCUEToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.txt")

	rootOpts := &RootOptions{Format: "json"}
	stdout, _, err := execute(t, NewAlignCommand(rootOpts), manifestPath("lights_on.cue"), "-o", out)
	require.NoError(t, err)

	var resp struct {
		Status string           `json:"status"`
		Data   TransplantResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, out, resp.Data.Output)
	assert.Equal(t, -149672, resp.Data.Frame)

	log, err := scorelog.OpenLog(out)
	require.NoError(t, err)
	assert.Equal(t, testutil.Mark(-149672, "-83:09.06", "Lights On"), log.Marks[len(log.Marks)-1])
}

func TestAlignExplicitBoundary(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteLog(t, dir, "a.txt", &scorelog.Log{
		Full: []scorelog.BehaviorFull{testutil.Behavior(100, "00:04.00", "Feed")},
	})
	testutil.WriteLog(t, dir, "b.txt", testutil.VideoLog(300, "00:10.00"))

	manifest := filepath.Join(dir, "chain.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`pattern: Feed
label: feed
dest: b.txt
logs:
  - path: a.txt
    boundary: { time: "00:09.00", frame: 250 }
`), 0o644))

	rootOpts := &RootOptions{Format: "json"}
	stdout, _, err := execute(t, NewAlignCommand(rootOpts), manifest)
	require.NoError(t, err)

	var resp struct {
		Data TransplantResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, -150, resp.Data.Frame)
	assert.Equal(t, "-00:05.00", resp.Data.Time)
	assert.Equal(t, "feed", resp.Data.Label)
}

func TestAlignStrictFromManifest(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteLog(t, dir, "a.txt", testutil.VideoLog(300, "00:10.00"))
	manifest := filepath.Join(dir, "chain.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`pattern: Feed
label: feed
dest: a.txt
strict: true
logs:
  - path: a.txt
`), 0o644))

	rootOpts := &RootOptions{Format: "text"}
	stdout, _, err := execute(t, NewAlignCommand(rootOpts), manifest)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E203]")
}

func TestAlignErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}
	testutil.WriteLog(t, dir, "no_end.txt", &scorelog.Log{})

	tests := []struct {
		name     string
		manifest string
		wantExit int
		wantCode string
	}{
		{"missing_label", write("nolabel.yaml", "pattern: x\ndest: a.txt\nlogs:\n  - path: a.txt\n"), ExitCommandError, ErrCodeInvalidInput},
		{"unknown_field", write("extra.yaml", "pattern: x\nlabel: x\ndest: a.txt\ncolour: red\nlogs:\n  - path: a.txt\n"), ExitCommandError, ErrCodeParseFailed},
		{"unsupported_extension", write("chain.toml", "pattern = 'x'\n"), ExitCommandError, ErrCodeParseFailed},
		{"missing_manifest", filepath.Join(dir, "nope.yaml"), ExitCommandError, ErrCodeNotFound},
		{"missing_log", write("missing.yaml", "pattern: x\nlabel: x\ndest: no_end.txt\nlogs:\n  - path: gone.txt\n"), ExitCommandError, ErrCodeNotFound},
		{"missing_ending_mark", write("noend.yaml", "pattern: x\nlabel: x\ndest: no_end.txt\nlogs:\n  - path: no_end.txt\n"), ExitFailure, ErrCodeMissingEndingMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rootOpts := &RootOptions{Format: "json"}
			stdout, _, err := execute(t, NewAlignCommand(rootOpts), tt.manifest)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
