package journal

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"time"
)

// Run summarises one simulate invocation.
type Run struct {
	RunID   string
	Created time.Time
	Symbol  string
	Dataset string
	Policy  string

	// Period covered by the data set.
	Start time.Time
	End   time.Time

	Episodes int
	Steps    int

	InitialBalance float64
	FinalBalance   float64
	NetPL          float64
	ReturnPct      float64

	Config  []byte // YAML of the effective configuration
	OrgPath string
}

var runOrgFuncs = template.FuncMap{
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "(n/a)"
		}
		return t.Format("2006-01-02")
	},
}

var runOrg = template.Must(template.New("run").Funcs(runOrgFuncs).Parse(RunOrgTemplate))

// FormatOrg renders the run as an Org-mode report.
func (r *Run) FormatOrg() (string, error) {
	buf := new(bytes.Buffer)
	if err := runOrg.Execute(buf, r); err != nil {
		return "", fmt.Errorf("render run %s: %w", r.RunID, err)
	}
	return buf.String(), nil
}

// WriteOrg writes the Org-mode report to r.OrgPath.
func (r *Run) WriteOrg() error {
	if r.OrgPath == "" {
		return fmt.Errorf("run %s: no org path", r.RunID)
	}
	s, err := r.FormatOrg()
	if err != nil {
		return err
	}
	return os.WriteFile(r.OrgPath, []byte(s), 0644)
}

const RunOrgTemplate = `* SIMULATION: {{.Policy}} {{if .Symbol}}{{.Symbol}}{{else}}(symbol?){{end}}
:PROPERTIES:
:RUN_ID:      {{.RunID}}
:POLICY:      {{.Policy}}
:SYMBOL:      {{.Symbol}}
:DATASET:     {{if .Dataset}}{{.Dataset}}{{else}}(dataset?){{end}}
:START_DATE:  {{date .Start}}
:END_DATE:    {{date .End}}
:EPISODES:    {{.Episodes}}
:STEPS:       {{.Steps}}
:START_BAL:   {{printf "%.2f" .InitialBalance}}
:END_BAL:     {{printf "%.2f" .FinalBalance}}
:NET_PL:      {{printf "%.2f" .NetPL}}
:RETURN_PCT:  {{printf "%.2f" .ReturnPct}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{printf "%.2f" .NetPL}}*
- Return:           *{{printf "%.2f" .ReturnPct}}%*
{{- if .Config }}

** Configuration
#+begin_src yaml
{{printf "%s" .Config}}
#+end_src
{{- end }}
`
