// Package report renders a run's results as the plain-text console report.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/quake-risk-report/internal/domain"
	"github.com/couchcryptid/quake-risk-report/internal/pipeline"
)

const dateLayout = "2006-01-02"

// Writer prints report sections to an underlying writer, usually stdout.
type Writer struct {
	w              io.Writer
	previewRows    int
	excludedStates []string
}

// New creates a report Writer that previews up to previewRows events.
func New(w io.Writer, previewRows int, excludedStates []string) *Writer {
	return &Writer{w: w, previewRows: previewRows, excludedStates: excludedStates}
}

// Fetching prints the progress line shown before the USGS request.
func (r *Writer) Fetching(start, end time.Time) error {
	_, err := fmt.Fprintf(r.w, "Fetching earthquake data from %s to %s...\n",
		start.UTC().Format(dateLayout), end.UTC().Format(dateLayout))
	return err
}

// Render prints the event count, preview, state table, top state and the
// per-location risk lines.
func (r *Writer) Render(res pipeline.Result) error {
	ew := &errWriter{w: r.w}

	ew.printf("Fetched %d earthquakes in the past %d days%s.\n\n", len(res.Events), res.DaysBack, r.exclusionNote())
	r.preview(ew, res.Events)

	ew.printf("Earthquake statistics by state past %d days:\n\n", res.DaysBack)
	stateTable(ew, res.Aggregates)
	if res.Resolved > 0 {
		ew.printf("(%d events placed in a state from coordinates)\n", res.Resolved)
	}
	if res.Unattributed > 0 {
		ew.printf("(%d events without a recognizable state omitted)\n", res.Unattributed)
	}

	if len(res.Aggregates) > 0 {
		top := res.Aggregates[0]
		ew.printf("\nState with the most earthquakes: %s (%d events)\n", top.State, top.Count)
	} else {
		ew.printf("No earthquake data available.\n")
	}

	ew.printf("\nEarthquake risk assessment for client locations:\n")
	for _, a := range res.Assessments {
		ew.printf("%s\n", AssessmentLine(a))
	}
	return ew.err
}

// AssessmentLine formats one location's result, e.g.
// "- City Hall (San Francisco, CA): High risk | Earthquakes: 12, Max Magnitude: 5.5".
func AssessmentLine(a domain.RiskAssessment) string {
	loc := a.Location
	if a.Risk == domain.RiskUnknown || a.Count == nil {
		return fmt.Sprintf("- %s (%s, %s): No recent earthquake data available.", loc.Building, loc.City, loc.State)
	}
	return fmt.Sprintf("- %s (%s, %s): %s risk | Earthquakes: %d, Max Magnitude: %s",
		loc.Building, loc.City, loc.State, a.Risk, *a.Count, FormatMagnitude(a.MaxMagnitude))
}

// FormatMagnitude prints a magnitude with at least one decimal place
// ("3.0", "5.25"), or "n/a" when it is missing.
func FormatMagnitude(m *float64) string {
	if m == nil {
		return "n/a"
	}
	s := strconv.FormatFloat(*m, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (r *Writer) exclusionNote() string {
	if len(r.excludedStates) == 0 {
		return ""
	}
	return " (excluding " + strings.Join(r.excludedStates, ", ") + ")"
}

func (r *Writer) preview(ew *errWriter, events []domain.EventRecord) {
	n := min(r.previewRows, len(events))
	if n == 0 {
		return
	}
	tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "time\tplace\tmag\tlongitude\tlatitude\tstate")
	for _, e := range events[:n] {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Time.UTC().Format(time.DateTime),
			orDash(e.Place),
			FormatMagnitude(e.Magnitude),
			strconv.FormatFloat(e.Longitude, 'f', 4, 64),
			strconv.FormatFloat(e.Latitude, 'f', 4, 64),
			orDash(e.State),
		)
	}
	_ = tw.Flush()
	ew.printf("\n")
}

func stateTable(ew *errWriter, aggs []domain.StateAggregate) {
	if len(aggs) == 0 {
		return
	}
	tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "state\tcount\tmax_magnitude")
	for _, a := range aggs {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", a.State, a.Count, FormatMagnitude(a.MaxMagnitude))
	}
	_ = tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// errWriter remembers the first write error so rendering code can print
// unconditionally and check once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(e, format, args...)
}
