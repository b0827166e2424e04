package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gohid/hidreport"
	"github.com/gohid/hidreport/hut"
)

var (
	variableColor = color.New(color.FgGreen)
	arrayColor    = color.New(color.FgYellow)
	constantColor = color.New(color.FgHiBlack)
	headerColor   = color.New(color.FgCyan, color.Bold)
)

func kindColor(kind hidreport.FieldKind) *color.Color {
	switch kind {
	case hidreport.FieldVariable:
		return variableColor
	case hidreport.FieldArray:
		return arrayColor
	default:
		return constantColor
	}
}

// dumpReportDescriptor prints one line per field, grouped by direction
// and report, in the style of the scenarios spec.md §8 describes.
func dumpReportDescriptor(w io.Writer, desc *hidreport.ReportDescriptor, cfg *Config) {
	dumpReports(w, "Input", desc.Input, cfg)
	dumpReports(w, "Output", desc.Output, cfg)
	dumpReports(w, "Feature", desc.Feature, cfg)
}

func dumpReports(w io.Writer, label string, reports []hidreport.Report, cfg *Config) {
	for _, report := range reports {
		idStr := "none"
		if report.Id != nil {
			idStr = fmt.Sprintf("%d", *report.Id)
		}
		headerLine := fmt.Sprintf("%s report id=%s size=%d bits", label, idStr, report.Size)
		if cfg.Color {
			headerColor.Fprintln(w, headerLine)
		} else {
			fmt.Fprintln(w, headerLine)
		}
		for _, field := range report.Fields {
			line := formatField(field, cfg)
			if cfg.Color {
				kindColor(field.Kind).Fprintln(w, line)
			} else {
				fmt.Fprintln(w, line)
			}
		}
	}
}

func formatField(f hidreport.Field, cfg *Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-8s", f.Kind)
	if cfg.ShowOffsets {
		fmt.Fprintf(&b, " bits=[%d..=%d]", f.Bits.Start, f.Bits.End)
	}
	switch f.Kind {
	case hidreport.FieldVariable:
		fmt.Fprintf(&b, " usage=%s logical=[%d..%d]", hut.String(uint16(f.Usage.Page), uint16(f.Usage.Id)),
			f.LogicalRange.Minimum, f.LogicalRange.Maximum)
	case hidreport.FieldArray:
		names := make([]string, len(f.Usages))
		for i, u := range f.Usages {
			names[i] = hut.String(uint16(u.Page), uint16(u.Id))
		}
		fmt.Fprintf(&b, " usages=[%s] logical=[%d..%d]", strings.Join(names, ","),
			f.LogicalRange.Minimum, f.LogicalRange.Maximum)
	}
	return b.String()
}
