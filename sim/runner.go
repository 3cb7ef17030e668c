package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradegym/internal/metrics"
	"github.com/rustyeddy/tradegym/journal"
)

// Policy chooses an action for an observation.
type Policy interface {
	Name() string
	Act(obs Observation) (Action, error)
}

// Runner drives a policy through one or more episodes of an environment.
// Journal, Metrics, Logger, Times and OnStep are optional.
type Runner struct {
	Env     *Env
	Policy  Policy
	RunID   string
	Journal journal.Journal
	Metrics *metrics.Recorder
	Logger  *zap.Logger

	// Times, when set, holds the timestamp of every table row and is used
	// to stamp journal records.
	Times []time.Time

	// OnStep is called after every successful step.
	OnStep func()
}

// Result summarises a run.
type Result struct {
	RunID          string
	Policy         string
	Episodes       int
	Steps          int
	Buys           int
	Sells          int
	Holds          int
	InitialBalance float64
	FinalBalance   float64
	FinalShares    float64
	FinalValue     float64
	LastReturn     float64
	BestReturn     float64
	WorstReturn    float64
}

// Run resets the environment and steps it to the end of the table once per
// episode. The context is checked between steps.
func (r *Runner) Run(ctx context.Context, episodes int) (Result, error) {
	if r.Env == nil {
		return Result{}, errors.New("sim: Env is required")
	}
	if r.Policy == nil {
		return Result{}, errors.New("sim: Policy is required")
	}
	if episodes < 1 {
		return Result{}, fmt.Errorf("sim: episodes must be positive, got %d", episodes)
	}
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	res := Result{
		RunID:          r.RunID,
		Policy:         r.Policy.Name(),
		InitialBalance: r.Env.initial.InexactFloat64(),
		BestReturn:     math.Inf(-1),
		WorstReturn:    math.Inf(1),
	}

	for ep := 1; ep <= episodes; ep++ {
		obs := r.Env.Reset()
		for !r.Env.Done() {
			if err := ctx.Err(); err != nil {
				return res, err
			}

			step := r.Env.currentStep
			price := r.Env.Price()

			a, err := r.Policy.Act(obs)
			if err != nil {
				return res, fmt.Errorf("policy %s at step %d: %w", r.Policy.Name(), step, err)
			}
			sr, err := r.Env.Step(a)
			if err != nil {
				return res, err
			}

			switch a {
			case Buy:
				res.Buys++
			case Sell:
				res.Sells++
			default:
				res.Holds++
			}
			res.Steps++

			if r.Journal != nil {
				st := r.Env.State()
				if err := r.Journal.RecordStep(journal.StepRecord{
					RunID:      r.RunID,
					Episode:    ep,
					Step:       step,
					Time:       r.timeAt(step),
					Action:     a.String(),
					Price:      price,
					Balance:    st.Balance,
					SharesHeld: st.SharesHeld,
					Reward:     sr.Reward,
					Done:       sr.Done,
				}); err != nil {
					return res, fmt.Errorf("journal step %d: %w", step, err)
				}
			}
			r.Metrics.ObserveStep(a.String(), sr.Reward)
			if r.OnStep != nil {
				r.OnStep()
			}
			obs = sr.Observation
		}

		st := r.Env.State()
		ret := st.TotalProfit
		r.Metrics.ObserveEpisode(ret)
		log.Debug("episode finished",
			zap.String("run_id", r.RunID),
			zap.Int("episode", ep),
			zap.Float64("return", ret),
			zap.Float64("balance", st.Balance),
			zap.Float64("shares", st.SharesHeld),
		)

		res.Episodes++
		res.LastReturn = ret
		res.BestReturn = math.Max(res.BestReturn, ret)
		res.WorstReturn = math.Min(res.WorstReturn, ret)
		res.FinalBalance = st.Balance
		res.FinalShares = st.SharesHeld
		res.FinalValue = st.Balance + st.SharesHeld*r.Env.Price()
	}

	return res, nil
}

func (r *Runner) timeAt(step int) time.Time {
	if step < len(r.Times) {
		return r.Times[step]
	}
	return time.Time{}
}

// PrintResult writes a text summary of res.
func PrintResult(w io.Writer, res Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Simulation Result")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", res.RunID)
	fmt.Fprintf(w, "Policy:        %s\n", res.Policy)
	fmt.Fprintf(w, "Episodes:      %d\n", res.Episodes)
	fmt.Fprintf(w, "Steps:         %d\n", res.Steps)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Actions")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Buy:           %d\n", res.Buys)
	fmt.Fprintf(w, "Sell:          %d\n", res.Sells)
	fmt.Fprintf(w, "Hold:          %d\n", res.Holds)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account (last episode)")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Initial:       %.2f\n", res.InitialBalance)
	fmt.Fprintf(w, "Balance:       %.2f\n", res.FinalBalance)
	fmt.Fprintf(w, "Shares Held:   %g\n", res.FinalShares)
	fmt.Fprintf(w, "Value:         %.2f\n", res.FinalValue)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Returns")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Last:          %.2f\n", res.LastReturn)
	if res.Episodes > 1 {
		fmt.Fprintf(w, "Best:          %.2f\n", res.BestReturn)
		fmt.Fprintf(w, "Worst:         %.2f\n", res.WorstReturn)
	}
}
