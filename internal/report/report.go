// Package report renders a clustools.Report for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/TrevorS/clustools"
)

// display converts a distance back into the unit of the input measure.
func display(r clustools.Report, d float64) float64 {
	if r.Measure == clustools.MeasureSimilarity {
		return 1 - d
	}
	return d
}

func diameterLabel(r clustools.Report) string {
	if r.Measure == clustools.MeasureSimilarity {
		return "minSimilarity"
	}
	return "maxDistance"
}

// WriteText writes the console listing: one block per active cluster
// followed by the totals.
func WriteText(w io.Writer, r clustools.Report) error {
	ew := &errWriter{w: w}
	for _, c := range r.Clusters {
		ew.printf("Cluster %d : clustroid %d, radius %f members %d , %s %f\n",
			c.ID, c.Centroid, display(r, c.Radius), len(c.Members),
			diameterLabel(r), display(r, c.Diameter))
		ew.printf("List of members:\n")
		for _, id := range c.Members {
			ew.printf("%d ", id)
		}
		ew.printf("\n\n")
	}
	ew.printf("Total number of clusters: %d\n", r.ActiveClusters)
	ew.printf("Policy %s, %s elements, %s orphans, silhouette %.3f\n",
		r.Policy, humanize.Comma(int64(r.Elements)), humanize.Comma(int64(r.Orphans)), r.Silhouette)
	if r.Policy == clustools.PolicyKMedoid {
		outcome := "converged"
		if !r.Converged {
			outcome = "did not converge"
		}
		ew.printf("K %d, seed %d, %s after %s\n",
			r.K, r.Seed, outcome, plural(r.Iterations, "iteration"))
	}
	return ew.err
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return humanize.Comma(int64(n)) + " " + unit + "s"
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r clustools.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// errWriter keeps the first write error and turns later writes into no-ops.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
