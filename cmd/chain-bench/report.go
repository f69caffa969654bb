package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"
)

// Report collects the configuration, table shape and results of a run.
type Report struct {
	// Configuration
	File     string
	Rows     int
	Channels int
	Locates  int
	Duration time.Duration

	// Table shape
	TableChannels int
	Filled        int
	Reserved      int

	// Results
	Results       []Measurement
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

// FillRatio returns the share of reserved table slots holding a chain.
func (r *Report) FillRatio() float64 {
	if r.Reserved == 0 {
		return 0
	}
	return float64(r.Filled) / float64(r.Reserved)
}

// Generate renders the report as markdown to w.
func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Chain Lookup Report

## Configuration
- **Input File:** {{.File}}
- **Rows Loaded:** {{.Rows}}
- **Channels Swept:** {{.Channels}}
- **Locates Swept:** {{.Locates}}
- **Duration per Structure:** {{.Duration}}

## Table Shape
- **Channels Present:** {{.TableChannels}}
- **Chains Stored:** {{.Filled}}
- **Slots Reserved:** {{.Reserved}}
- **Fill Ratio:** {{printf "%.2f" .FillRatio}}

## Lookup Results
{{range .Results}}- **{{.Name}}:** {{.Lookups}} lookups, {{.Hits}} hits, {{nsop .}} ns/lookup
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"nsop": func(m Measurement) string {
			return fmt.Sprintf("%.2f", m.NsPerLookup())
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
