package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun(id string, created time.Time) Run {
	return Run{
		RunID:          id,
		Created:        created,
		Symbol:         "AAPL",
		Dataset:        "aapl.csv",
		Policy:         "signal",
		Start:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Episodes:       2,
		Steps:          40,
		InitialBalance: 10000,
		FinalBalance:   10250,
		NetPL:          250,
		ReturnPct:      2.5,
		Config:         []byte("policy: signal\n"),
		OrgPath:        "run.org",
	}
}

func TestGetRun(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	want := testRun("R1", time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, j.RecordRun(want))

	got, err := j.GetRun("R1")
	require.NoError(t, err)

	assert.Equal(t, want.RunID, got.RunID)
	assert.True(t, want.Created.Equal(got.Created))
	assert.True(t, want.Start.Equal(got.Start))
	assert.True(t, want.End.Equal(got.End))
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.Equal(t, want.Policy, got.Policy)
	assert.Equal(t, want.Episodes, got.Episodes)
	assert.Equal(t, want.Steps, got.Steps)
	assert.InDelta(t, want.NetPL, got.NetPL, 1e-9)
	assert.InDelta(t, want.ReturnPct, got.ReturnPct, 1e-9)
	assert.Equal(t, want.Config, got.Config)
	assert.Equal(t, want.OrgPath, got.OrgPath)
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetRun("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordRunReplaces(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	r := testRun("R1", time.Now().UTC())
	require.NoError(t, j.RecordRun(r))
	r.NetPL = -10
	require.NoError(t, j.RecordRun(r))

	runs, err := j.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, -10.0, runs[0].NetPL)
}

func TestListRuns(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"A", "B", "C"} {
		require.NoError(t, j.RecordRun(testRun(id, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := j.ListRuns(0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "C", runs[0].RunID)
	assert.Equal(t, "A", runs[2].RunID)

	runs, err = j.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListSteps(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for ep := 1; ep <= 2; ep++ {
		for step := 0; step < 3; step++ {
			require.NoError(t, j.RecordStep(StepRecord{
				RunID:   "R1",
				Episode: ep,
				Step:    step,
				Time:    t0.AddDate(0, 0, step),
				Action:  "hold",
				Price:   100 + float64(step),
				Balance: 1000,
				Reward:  0,
				Done:    step == 2,
			}))
		}
	}
	require.NoError(t, j.RecordStep(StepRecord{RunID: "R2", Episode: 1, Action: "buy"}))

	all, err := j.ListSteps("R1", 0)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, 1, all[0].Episode)
	assert.Equal(t, 2, all[5].Episode)
	assert.True(t, all[2].Done)
	assert.False(t, all[1].Done)
	assert.True(t, t0.AddDate(0, 0, 1).Equal(all[1].Time))

	second, err := j.ListSteps("R1", 2)
	require.NoError(t, err)
	require.Len(t, second, 3)
	assert.Equal(t, 102.0, second[2].Price)
}
