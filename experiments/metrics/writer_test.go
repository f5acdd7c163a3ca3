package metrics

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w, err := NewWriter(root, "baseline")
	require.NoError(t, err)
	require.DirExists(t, w.Dir())
	require.Equal(t, filepath.Join(root, "baseline"), filepath.Dir(w.Dir()))

	t.Run("setup", func(t *testing.T) {
		configs := []AgentConfig{{ID: 1, Rollouts: 10}, {ID: 0, Random: true}}
		require.NoError(t, w.WriteSetup(Setup{Name: "baseline", Matchups: [][]AgentConfig{configs}, NumGames: 2}))

		data, err := os.ReadFile(filepath.Join(w.Dir(), "setup.json"))
		require.NoError(t, err)
		var setup Setup
		require.NoError(t, json.Unmarshal(data, &setup))
		require.Equal(t, "baseline", setup.Name)
		require.Equal(t, 2, setup.NumGames)
		require.Equal(t, configs, setup.Matchups[0])
	})

	t.Run("agent configs", func(t *testing.T) {
		configs := []AgentConfig{
			{ID: 1, Goroutines: 4, Rollouts: 10, Cutoff: 100},
			{ID: 5, Goroutines: 4, Duration: 100 * time.Millisecond, Rollouts: 1000, Cutoff: 100},
		}
		require.NoError(t, w.WriteAgentConfigs(configs))

		rows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
		require.Equal(t, [][]string{
			{"id", "random", "goroutines", "duration", "rollouts", "cutoff"},
			{"1", "false", "4", "0s", "10", "100"},
			{"5", "false", "4", "100ms", "1000", "100"},
		}, rows)
	})

	t.Run("game records", func(t *testing.T) {
		records := []GameRecord{
			{ID: 1, Agent1: 1, Agent2: 0, GameMetric: GameMetric{StartingPlayer: 1, Winner: "first", Rounds: 31, TotalMoves: 61}},
			{ID: 2, Agent1: 0, Agent2: 1, GameMetric: GameMetric{StartingPlayer: 1, Winner: "empty", Rounds: 500, TotalMoves: 1000}},
		}
		require.NoError(t, w.WriteGameRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
		require.Len(t, rows, 3)
		require.Equal(t, "winner", rows[0][4])
		require.Equal(t, []string{"1", "1", "0", "1", "first"}, rows[1][:5])
		require.Equal(t, []string{"500", "1000"}, rows[2][8:])
	})

	t.Run("move records", func(t *testing.T) {
		records := []MoveRecord{{
			Game: 1,
			MoveMetric: MoveMetric{
				Step:   3,
				Round:  1,
				Player: 1,
				Move:   "first place 2 x9",
				SearchMetric: SearchMetric{
					Candidates:   22,
					Rollouts:     2200,
					FullPlayouts: 40,
					BestScore:    61,
				},
			},
		}}
		require.NoError(t, w.WriteMoveRecords(records))

		rows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
		require.Len(t, rows, 2)
		require.Len(t, rows[1], len(rows[0]))
		require.Equal(t, []string{"1", "3", "1", "1", "first place 2 x9", "0s", "22", "2200", "40", "false", "61"}, rows[1])
	})
}

func TestNewWriterFailsOnFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0644))

	_, err := NewWriter(root, "baseline")
	require.Error(t, err)
}
