package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spigell/fit-ranker/internal/evaluation"
	"github.com/spigell/fit-ranker/internal/ranking"
	"github.com/spigell/fit-ranker/internal/similarity"
)

const (
	outputTable = "table"
	outputJSON  = "json"

	dateLayout = "2006-01-02"
)

func writeJSON(w io.Writer, v any) error {
	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(pretty))
	return err
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(dateLayout)
}

type scoreOutput struct {
	Score    float64               `json:"score"`
	Measures []similarity.SubScore `json:"measures"`
}

func writeScore(w io.Writer, format string, score float64, subs []similarity.SubScore) error {
	if format == outputJSON {
		return writeJSON(w, scoreOutput{Score: score, Measures: subs})
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "MEASURE\tSCORE")
	for _, sub := range subs {
		fmt.Fprintf(tw, "%s\t%.4f\n", sub.Measure, sub.Score)
	}
	fmt.Fprintf(tw, "blend\t%.4f\n", score)
	return tw.Flush()
}

func writeApplicantMatches(w io.Writer, format string, matches []ranking.ApplicantMatch) error {
	if format == outputJSON {
		return writeJSON(w, matches)
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tAPPLICATION\tAPPLICANT\tSTATUS\tAPPLIED\tSCORE")
	for i, m := range matches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.4f\n",
			i+1, m.ApplicationID, m.IndividualFullName, m.Status, formatDate(m.ApplicationDate), m.Score)
	}
	return tw.Flush()
}

func writeJobMatches(w io.Writer, format string, matches []ranking.JobMatch) error {
	if format == outputJSON {
		return writeJSON(w, matches)
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tJOB AD\tTITLE\tSTARTUP\tLOCATION\tDEADLINE\tSCORE")
	for i, m := range matches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%.4f\n",
			i+1, m.JobAdID, m.JobTitle, m.StartupName, m.JobLocation, formatDate(m.ApplicationDeadline), m.Score)
	}
	return tw.Flush()
}

type evaluationOutput struct {
	*evaluation.Report
	Best *evaluation.ThresholdResult `json:"best,omitempty"`
}

func writeReport(w io.Writer, format string, report *evaluation.Report) error {
	best, ok := report.Best()

	if format == outputJSON {
		out := evaluationOutput{Report: report}
		if ok {
			out.Best = &best
		}
		return writeJSON(w, out)
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "THRESHOLD\tTP\tFP\tTN\tFN\tACCURACY\tPRECISION\tRECALL\tF1")
	for _, r := range report.Results {
		fmt.Fprintf(tw, "%.2f\t%d\t%d\t%d\t%d\t%.4f\t%.4f\t%.4f\t%.4f\n",
			r.Threshold,
			r.Counts.TruePositive, r.Counts.FalsePositive, r.Counts.TrueNegative, r.Counts.FalseNegative,
			r.Metrics.Accuracy, r.Metrics.Precision, r.Metrics.Recall, r.Metrics.F1,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if ok {
		_, err := fmt.Fprintf(w, "best threshold: %.2f (f1 %.4f)\n", best.Threshold, best.Metrics.F1)
		return err
	}
	return nil
}
