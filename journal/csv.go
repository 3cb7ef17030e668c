package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	runs   *csv.Writer
	steps  *csv.Writer
	rf, sf *os.File
}

var (
	runsHeader  = []string{"run_id", "created", "symbol", "dataset", "policy", "episodes", "steps", "initial_balance", "final_balance", "net_pl", "return_pct"}
	stepsHeader = []string{"run_id", "episode", "step", "time", "action", "price", "balance", "shares_held", "reward", "done"}
)

func NewCSV(runsPath, stepsPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(stepsPath)
	if err != nil {
		_ = rf.Close()
		return nil, err
	}

	j := &CSVJournal{csv.NewWriter(rf), csv.NewWriter(sf), rf, sf}
	if err := j.write(j.runs, runsHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	if err := j.write(j.steps, stepsHeader); err != nil {
		_ = j.Close()
		return nil, err
	}
	return j, nil
}

func (j *CSVJournal) RecordRun(r Run) error {
	return j.write(j.runs, []string{
		r.RunID,
		r.Created.UTC().Format(time.RFC3339),
		r.Symbol,
		r.Dataset,
		r.Policy,
		strconv.Itoa(r.Episodes),
		strconv.Itoa(r.Steps),
		f(r.InitialBalance),
		f(r.FinalBalance),
		f(r.NetPL),
		f(r.ReturnPct),
	})
}

func (j *CSVJournal) RecordStep(s StepRecord) error {
	ts := ""
	if !s.Time.IsZero() {
		ts = s.Time.UTC().Format(time.RFC3339)
	}
	return j.write(j.steps, []string{
		s.RunID,
		strconv.Itoa(s.Episode),
		strconv.Itoa(s.Step),
		ts,
		s.Action,
		f(s.Price),
		f(s.Balance),
		f(s.SharesHeld),
		f(s.Reward),
		strconv.FormatBool(s.Done),
	})
}

func (j *CSVJournal) write(w *csv.Writer, rec []string) error {
	if err := w.Write(rec); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.steps.Flush()
	if err := j.steps.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
