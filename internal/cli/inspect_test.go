package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/scoremark/internal/testutil"
)

func TestMarksList(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	stdout, _, err := execute(t, NewMarksCommand(rootOpts), testutil.RealisticLogPath("lights_on.txt"))
	require.NoError(t, err)

	newGoldie(t).Assert(t, "marks_lights_on", []byte(stdout))
}

func TestMarksEnding(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		rootOpts := &RootOptions{Format: "text"}
		stdout, _, err := execute(t, NewMarksCommand(rootOpts), "--ending", testutil.RealisticLogPath("lights_on.txt"))
		require.NoError(t, err)
		assert.Equal(t, "54001\t30:00.03\tvideo end\n", stdout)
	})

	t.Run("json", func(t *testing.T) {
		rootOpts := &RootOptions{Format: "json"}
		stdout, _, err := execute(t, NewMarksCommand(rootOpts), "--ending", testutil.RealisticLogPath("lights_on.txt"))
		require.NoError(t, err)

		var resp struct {
			Status string   `json:"status"`
			Data   markJSON `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
		assert.Equal(t, markJSON{Frame: 54001, Time: "30:00.03", Name: "video end"}, resp.Data)
	})

	t.Run("missing", func(t *testing.T) {
		rootOpts := &RootOptions{Format: "text"}
		stdout, _, err := execute(t, NewMarksCommand(rootOpts), "--ending", testutil.RealisticLogPath("no_end.txt"))
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Contains(t, stdout, "Error [E201]")
		assert.Contains(t, stdout, `"video end"`)
	})
}

func TestMarksJSON(t *testing.T) {
	rootOpts := &RootOptions{Format: "json"}
	stdout, _, err := execute(t, NewMarksCommand(rootOpts), testutil.RealisticLogPath("lights_on.txt"))
	require.NoError(t, err)

	var resp struct {
		Data []markJSON `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "video start", resp.Data[0].Name)
	assert.Equal(t, "video end", resp.Data[1].Name)
}

func TestBehaviorsList(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	stdout, _, err := execute(t, NewBehaviorsCommand(rootOpts), testutil.RealisticLogPath("lights_on.txt"))
	require.NoError(t, err)

	newGoldie(t).Assert(t, "behaviors_lights_on", []byte(stdout))
}

func TestBehaviorsEnding(t *testing.T) {
	tests := []struct {
		name     string
		ending   []string
		wantDesc string
		wantErr  bool
	}{
		{"single", []string{"Flee male"}, "Flee male", false},
		{"first_in_log_order", []string{"Attack female", "Pot exit"}, "Pot exit", false},
		{"exact_only", []string{"Flee"}, "", true},
		{"none_match", []string{"Lights Off", "Done"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{testutil.RealisticLogPath("lights_on.txt")}
			for _, e := range tt.ending {
				args = append(args, "--ending", e)
			}

			rootOpts := &RootOptions{Format: "json"}
			stdout, _, err := execute(t, NewBehaviorsCommand(rootOpts), args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ExitFailure, GetExitCode(err))
				var resp CLIResponse
				require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
				require.NotNil(t, resp.Error)
				assert.Equal(t, ErrCodeMissingEndingBehavior, resp.Error.Code)
				return
			}

			require.NoError(t, err)
			var resp struct {
				Data behaviorJSON `json:"data"`
			}
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
			assert.Equal(t, tt.wantDesc, resp.Data.Description)
		})
	}
}

func TestInspectMissingLog(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	stdout, _, err := execute(t, NewBehaviorsCommand(rootOpts), "does-not-exist.txt")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stdout, "Error [E005]")
}
