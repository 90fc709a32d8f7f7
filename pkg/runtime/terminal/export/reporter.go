package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/api"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/store"
)

type TableConfig struct {
	PlanetWidth int
	LevelWidth  int
	DateWidth   int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		PlanetWidth: 24,
		LevelWidth:  12,
		DateWidth:   16,
	}
}

const dateLayout = "2006-01-02 15:04"

const nakshatraTmpl = `
Nakshatra: {{.Name}} (#{{.Number}}), pada {{.Pada}}
Lord: {{.Lord}}
Longitude: {{printf "%.4f" .Longitude}}°
Progress: {{printf "%.4f" .DegreesInNakshatra}}° ({{printf "%.2f" .PercentCompleted}}%)
`

const dashaTmpl = `
Vimshottari Dasha ({{.Years}} years, {{.DetailLevel}} levels)
Birth: {{.BirthLocal.Format "2006-01-02 15:04 MST"}} ({{.Location.TimeZone}})
Moon nakshatra: {{.Nakshatra.Name}} pada {{.Nakshatra.Pada}}, lord {{.Nakshatra.Lord}}
{{if .Current}}Current: {{range $i, $p := .Current}}{{if $i}} / {{end}}{{$p.Planet}}{{end}}
{{end}}
{{separator}}
{{formatRow "Period" "Level" "Start" "End"}}
{{separator}}
{{range .Rows}}{{formatRow .Label .Level (date .Start) (date .End)}}
{{end}}{{separator}}
Total periods: {{.TotalPeriods}}
`

const signChangesTmpl = `
Sign changes at {{.ReferenceUTC.Format "2006-01-02 15:04 MST"}} ({{.TimeZone}})
{{range .Changes}}
=== {{.Body}}{{if .IsRetrograde}} (R){{end}} ===
Position: {{.Position}}  Navamsa: {{.Navamsa}}
Last: {{.Last.FromSign}} -> {{.Last.ToSign}} on {{date .Last.Time}}{{if .Last.Capped}} (or earlier){{end}}
Next: {{.Next.FromSign}} -> {{.Next.ToSign}} on {{date .Next.Time}}{{if .Next.Capped}} (or later){{end}}
{{end}}`

const profilesTmpl = `{{range .}}{{.Name}}: {{.BirthDate}} {{.BirthTime}} {{.TimeZone}} ({{printf "%.4f" .Latitude}}, {{printf "%.4f" .Longitude}})
{{else}}No profiles configured.
{{end}}`

const historyTmpl = `{{range .}}{{.CreatedAt.Format "2006-01-02 15:04:05"}}  {{.Kind}}  {{.Subject}}  {{.Summary}}
{{else}}No calculations recorded.
{{end}}`

const coverageTmpl = `{{range .}}{{body .Body}}: JD {{printf "%.2f" .FirstJD}} to {{printf "%.2f" .LastJD}} ({{.Count}} samples)
{{else}}No ephemeris samples stored.
{{end}}`

type Reporter struct {
	writer    io.Writer
	config    TableConfig
	templates *template.Template
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	r := &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
	r.templates = template.New("reports").Funcs(r.funcMap())
	for name, text := range map[string]string{
		"nakshatra":    nakshatraTmpl,
		"dasha":        dashaTmpl,
		"sign-changes": signChangesTmpl,
		"profiles":     profilesTmpl,
		"history":      historyTmpl,
		"coverage":     coverageTmpl,
	} {
		template.Must(r.templates.New(name).Parse(text))
	}
	return r
}

func (c *Reporter) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatRow": func(period, level, start, end string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s | %-*s |",
				c.config.PlanetWidth, period,
				c.config.LevelWidth, level,
				c.config.DateWidth, start,
				c.config.DateWidth, end)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.PlanetWidth+2),
				strings.Repeat("-", c.config.LevelWidth+2),
				strings.Repeat("-", c.config.DateWidth+2),
				strings.Repeat("-", c.config.DateWidth+2))
		},
		"date": func(t time.Time) string {
			return t.Format(dateLayout)
		},
		"body": func(b int) string {
			return domain.Body(b).String()
		},
	}
}

func (c *Reporter) execute(name string, data any) error {
	if err := c.templates.ExecuteTemplate(c.writer, name, data); err != nil {
		return fmt.Errorf("failed to render %s report: %w", name, err)
	}
	return nil
}

func (c *Reporter) Nakshatra(n api.NakshatraResponse) error {
	return c.execute("nakshatra", n)
}

type periodRow struct {
	Label string
	Level string
	Start time.Time
	End   time.Time
}

// Dasha renders the period tree as an indented table; current periods are
// marked with an asterisk.
func (c *Reporter) Dasha(d api.DashaResponse) error {
	return c.execute("dasha", struct {
		api.DashaResponse
		Rows []periodRow
	}{d, flatten(nil, d.Periods, 0)})
}

func flatten(rows []periodRow, periods []api.DashaPeriod, depth int) []periodRow {
	for _, p := range periods {
		label := strings.Repeat("  ", depth) + p.Planet
		if p.IsCurrent {
			label += " *"
		}
		rows = append(rows, periodRow{Label: label, Level: p.Level, Start: p.StartLocal, End: p.EndLocal})
		rows = flatten(rows, p.Children, depth+1)
	}
	return rows
}

func (c *Reporter) SignChanges(s api.SignChangeResponse) error {
	return c.execute("sign-changes", s)
}

func (c *Reporter) Profiles(p []api.Profile) error {
	return c.execute("profiles", p)
}

func (c *Reporter) History(h []api.CalculationRecord) error {
	return c.execute("history", h)
}

func (c *Reporter) Coverage(cov []store.SampleCoverage) error {
	return c.execute("coverage", cov)
}
