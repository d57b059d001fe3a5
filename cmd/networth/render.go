package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	grpcadapter "github.com/thisisprabha/networth/internal/adapter/grpc"
	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/format"
	"github.com/thisisprabha/networth/internal/usecase/dashboard"
)

const dateLayout = "2006-01-02 15:04"

// printMarkdown renders md for the terminal, falling back to the raw text
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not render markdown: %v\n", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func categoryName(c string) string {
	return domain.Definition(domain.Category(c)).Name
}

// renderCategories lists every category with its growth rate and fields
func renderCategories(settings domain.Settings) string {
	var b strings.Builder
	b.WriteString("# Categories\n\n")
	b.WriteString("| Category | Id | Growth | Suggested | Counted | Fields |\n")
	b.WriteString("|---|---|---:|---|---|---|\n")
	for _, c := range domain.OrderedCategories() {
		def := c.Definition()
		suggested := "–"
		if r := def.GrowthRateRange; r != nil {
			suggested = fmt.Sprintf("%g%% to %g%%", r.Min, r.Max)
		}
		counted := "yes"
		switch {
		case !def.IncludesInNetWorth:
			counted = "coverage"
		case def.IsLiability:
			counted = "liability"
		}
		keys := make([]string, len(def.Fields))
		for i, f := range def.Fields {
			keys[i] = "`" + f.Key + "`"
		}
		fmt.Fprintf(&b, "| %s | `%s` | %g%% | %s | %s | %s |\n",
			def.Name, c, settings.GrowthRate(c), suggested, counted, strings.Join(keys, ", "))
	}
	return b.String()
}

func writeSummaries(b *strings.Builder, title string, rows []domain.CategorySummary, total float64, code string) {
	fmt.Fprintf(b, "## %s: %s\n\n", title, format.Currency(total, code))
	if len(rows) == 0 {
		b.WriteString("_Nothing recorded._\n\n")
		return
	}
	b.WriteString("| Category | Total | Share |\n|---|---:|---:|\n")
	for _, r := range rows {
		share := "–"
		if r.Percentage != nil {
			share = format.Percent(*r.Percentage)
		}
		fmt.Fprintf(b, "| %s | %s | %s |\n", r.Category.Definition().Name, format.Currency(r.Total, code), share)
	}
	b.WriteString("\n")
}

// renderSummary is the terminal version of the dashboard
func renderSummary(d *dashboard.Dashboard) string {
	code := d.CurrencyCode
	var b strings.Builder

	fmt.Fprintf(&b, "# Net worth: %s\n\n", format.Currency(d.NetWorth, code))
	fmt.Fprintf(&b, "In one year: **%s** (%s)\n\n", format.Compact(d.OneYearProjection, code), format.OptionalPercent(d.PercentGrowth))
	if c := d.LatestChange; c != nil {
		sign := ""
		if c.Absolute > 0 {
			sign = "+"
		}
		fmt.Fprintf(&b, "Since %s: %s%s (%s)\n\n",
			c.Since.Format(dateLayout), sign, format.Currency(c.Absolute, code), format.OptionalPercent(c.Percent))
	}
	if len(d.Drivers) > 0 {
		b.WriteString("Drivers:\n\n")
		for _, dr := range d.Drivers {
			fmt.Fprintf(&b, "- %s: %s\n", dr.Category.Definition().Name, format.Currency(dr.Change, code))
		}
		b.WriteString("\n")
	}

	writeSummaries(&b, "Wealth", d.Wealth, d.TotalWealth, code)
	writeSummaries(&b, "Liabilities", d.Liabilities, d.TotalLiabilities, code)
	writeSummaries(&b, "Protection", d.Protection, d.TotalProtection, code)

	if len(d.TopEntries) > 0 {
		b.WriteString("## Top holdings\n\n")
		for i, r := range d.TopEntries {
			fmt.Fprintf(&b, "%d. %s (%s): %s\n", i+1, r.Entry.Name, r.Entry.Definition().Name, format.Currency(r.Value, code))
		}
		b.WriteString("\n")
	}
	if d.LastUpdated != nil {
		fmt.Fprintf(&b, "_Last updated %s_\n", d.LastUpdated.Local().Format(dateLayout))
	}
	return b.String()
}

// renderProjection prints every point of a projection series
func renderProjection(points []domain.ProjectionPoint, growth *float64, code string) string {
	var b strings.Builder
	months := 0
	if n := len(points); n > 0 {
		months = points[n-1].Month
	}
	fmt.Fprintf(&b, "# Projection over %d months\n\n", months)
	fmt.Fprintf(&b, "One-year growth: %s\n\n", format.OptionalPercent(growth))
	b.WriteString("| Month | Value |\n|---:|---:|\n")
	for _, p := range points {
		fmt.Fprintf(&b, "| %d | %s |\n", p.Month, format.Currency(p.Value, code))
	}
	return b.String()
}

// renderHistory prints snapshots newest first
func renderHistory(history []domain.NetWorthSnapshot, code string) string {
	var b strings.Builder
	b.WriteString("# History\n\n")
	if len(history) == 0 {
		b.WriteString("_No snapshots yet._\n")
		return b.String()
	}
	b.WriteString("| When | Net worth | Entries | Change |\n|---|---:|---:|---:|\n")
	for i := len(history) - 1; i >= 0; i-- {
		s := history[i]
		change := "–"
		if i > 0 {
			change = format.CompactNumber(s.NetWorth-history[i-1].NetWorth, code)
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %s |\n",
			s.Timestamp.Local().Format(dateLayout), format.Currency(s.NetWorth, code), s.EntryCount, change)
	}
	return b.String()
}

// renderEntry confirms a created entry
func renderEntry(e domain.Entry, value float64, code string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", e.Name)
	fmt.Fprintf(&b, "`%s` in %s, valued at **%s**\n\n", e.ID, e.Definition().Name, format.Currency(value, code))
	for _, f := range e.Definition().Fields {
		if v, ok := e.Values[f.Key]; ok {
			fmt.Fprintf(&b, "- %s: %s\n", f.Label, v.String())
		}
	}
	return b.String()
}

// renderStatus summarises a dashboard fetched from a running server
func renderStatus(addr string, d *grpcadapter.Dashboard, now time.Time) string {
	code := d.CurrencyCode
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", addr)
	fmt.Fprintf(&b, "- Net worth: **%s**\n", format.Currency(d.NetWorth, code))
	fmt.Fprintf(&b, "- In one year: %s (%s)\n", format.Compact(d.OneYearProjection, code), format.OptionalPercent(d.PercentGrowth))
	fmt.Fprintf(&b, "- Wealth: %s\n", format.Compact(d.TotalWealth, code))
	fmt.Fprintf(&b, "- Liabilities: %s\n", format.Compact(d.TotalLiabilities, code))
	fmt.Fprintf(&b, "- Protection: %s\n", format.Compact(d.TotalProtection, code))
	if d.LatestChange != nil {
		fmt.Fprintf(&b, "- Latest change: %s\n", format.OptionalPercent(d.LatestChange.Percent))
	}
	for _, dr := range d.Drivers {
		fmt.Fprintf(&b, "  - %s: %s\n", categoryName(dr.Category), format.CompactNumber(dr.Change, code))
	}
	if d.LastUpdated != nil {
		fmt.Fprintf(&b, "\n_Last updated %s ago_\n", now.Sub(*d.LastUpdated).Round(time.Minute))
	}
	return b.String()
}
