package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScenario(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "lights_on_three_logs.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "lights_on_three_logs", scenario.Name)
	assert.True(t, scenario.Disjoint)
	assert.False(t, scenario.Strict)
	assert.Equal(t, "Lights On", scenario.Pattern)
	require.Len(t, scenario.Logs, 3)
	assert.Len(t, scenario.Logs[0].Behaviors, 3)
	assert.Equal(t, "Lights On", scenario.Logs[0].Behaviors[1].Description)
	assert.Len(t, scenario.Dest.Marks, 2)
	require.NotNil(t, scenario.Expect.Frame)
	assert.Equal(t, -149672, *scenario.Expect.Frame)
	assert.Equal(t, "-83:09.06", scenario.Expect.Time)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unknown_field",
			body:    "name: x\ndescription: x\npattern: x\nlabel: x\nbehaviours: []\nlogs: [{boundary: {frame: 1, time: \"00:00.03\"}}]\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing_name",
			body:    "description: x\npattern: x\nlabel: x\nlogs: [{boundary: {frame: 1, time: \"00:00.03\"}}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing_pattern",
			body:    "name: x\ndescription: x\nlabel: x\nlogs: [{boundary: {frame: 1, time: \"00:00.03\"}}]\n",
			wantErr: "pattern is required",
		},
		{
			name:    "missing_label",
			body:    "name: x\ndescription: x\npattern: x\nlogs: [{boundary: {frame: 1, time: \"00:00.03\"}}]\n",
			wantErr: "label is required",
		},
		{
			name:    "no_logs",
			body:    "name: x\ndescription: x\npattern: x\nlabel: x\n",
			wantErr: "logs list is required",
		},
		{
			name:    "missing_boundary",
			body:    "name: x\ndescription: x\npattern: x\nlabel: x\nlogs: [{}]\n",
			wantErr: "logs[0]: boundary is required",
		},
		{
			name:    "bad_behavior_time",
			body:    "name: x\ndescription: x\npattern: x\nlabel: x\ndisjoint: true\nlogs: [{behaviors: [{frame: 1, time: \"soon\", description: Feed}]}]\n",
			wantErr: "logs[0].behaviors[0].time",
		},
		{
			name:    "unnamed_dest_mark",
			body:    "name: x\ndescription: x\npattern: x\nlabel: x\ndisjoint: true\nlogs: [{}]\ndest: {marks: [{frame: 1, time: \"00:00.03\"}]}\n",
			wantErr: "dest.marks[0]: name is required",
		},
		{
			name:    "found_and_error",
			body:    "name: x\ndescription: x\npattern: x\nlabel: x\ndisjoint: true\nlogs: [{}]\nexpect: {found: true, error: BEHAVIOR_NOT_FOUND}\n",
			wantErr: "mutually exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
