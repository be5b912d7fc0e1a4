package main

import (
	"fmt"
	"io"

	"github.com/increasinglyHuman/BlackBoxLandscaper/internal/catalog"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/export"
	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, e := range r.Warnings {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, e validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", e.Level, e.Message)
	if e.Path != "" {
		fmt.Fprintf(w, "    -> %s = %v\n", e.Path, e.ActualValue)
	}
	if e.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", e.Expected)
	}
	for _, s := range e.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printDocument(w io.Writer, doc *export.Document) {
	fmt.Fprintf(w, "Project: %s\n", doc.Project)
	if doc.Seed != nil {
		fmt.Fprintf(w, "Seed:    %d\n", *doc.Seed)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-16s %-10s %10s %10s %8s  %-10s %s\n",
		"Layer", "Algorithm", "Placed", "Requested", "Fill", "Behavior", "Types")
	fmt.Fprintf(w, "%-16s %-10s %10s %10s %8s  %-10s %s\n",
		"----------------", "----------", "----------", "----------", "--------", "----------", "-----")

	for _, m := range doc.Manifests {
		types := map[string]int{}
		var order []string
		for _, inst := range m.Instances {
			if types[inst.TypeID] == 0 {
				order = append(order, inst.TypeID)
			}
			types[inst.TypeID]++
		}
		mix := ""
		for i, id := range order {
			if i > 0 {
				mix += ", "
			}
			mix += fmt.Sprintf("%s=%d", id, types[id])
		}
		fmt.Fprintf(w, "%-16s %-10s %10d %10d %7.1f%%  %-10s %s\n",
			m.LayerID, m.Algorithm, len(m.Instances), m.Requested,
			fillPercent(len(m.Instances), m.Requested), m.Behavior, mix)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total instances: %s\n", formatCount(doc.Instances()))
}

func printRuns(w io.Writer, runs []catalog.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	fmt.Fprintf(w, "%6s  %-20s %-20s %20s %10s  %s\n", "Run", "Created", "Project", "Seed", "Instances", "Output")
	for _, r := range runs {
		out := r.Output
		if out == "" {
			out = "(stdout)"
		}
		fmt.Fprintf(w, "%6d  %-20s %-20s %20d %10s  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Project, r.Seed, formatCount(r.Instances()), out)
		for _, l := range r.Layers {
			fmt.Fprintf(w, "        %-16s %-10s %6d/%-6d %s\n", l.LayerID, l.Algorithm, l.Placed, l.Requested, l.ManifestID)
		}
	}
}

func fillPercent(placed, requested int) float64 {
	if requested <= 0 {
		return 0
	}
	return 100 * float64(placed) / float64(requested)
}

func formatCount(n int) string {
	if n >= 1_000_000 {
		return fmt.Sprintf("%.2fM", float64(n)/1_000_000)
	}
	if n >= 10_000 {
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}
