package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	grpcadapter "github.com/thisisprabha/networth/internal/adapter/grpc"
	"github.com/thisisprabha/networth/internal/app"
	"github.com/thisisprabha/networth/internal/config"
	"github.com/thisisprabha/networth/internal/domain"
	"github.com/thisisprabha/networth/internal/log"
	"github.com/thisisprabha/networth/internal/usecase/portfolio"
	"github.com/thisisprabha/networth/internal/usecase/projector"
	"github.com/thisisprabha/networth/internal/usecase/snapshot"
	"github.com/thisisprabha/networth/internal/usecase/valuation"
)

// loadConfig reads .env and the environment
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp loads the configured store into a portfolio
// The CLI logs warnings only unless LOG_LEVEL is set
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	level := slog.LevelWarn
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level = log.ParseLevel(v)
	}
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentCLI,
		Output:    os.Stderr,
	})
	return app.New(ctx, cfg, logger)
}

func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

type categoriesCmd struct{}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "lists categories, their fields and growth rates" }
func (*categoriesCmd) Usage() string {
	return `networth categories

  Lists every category in display order with its current growth rate,
  the suggested range and the field keys accepted by "networth add".
`
}
func (*categoriesCmd) SetFlags(*flag.FlagSet) {}

func (*categoriesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail("could not open portfolio: %v", err)
	}
	defer a.Close()

	printMarkdown(renderCategories(a.Portfolio.Settings()))
	return subcommands.ExitSuccess
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "prints net worth, the one-year outlook and category totals" }
func (*summaryCmd) Usage() string {
	return `networth summary

  Prints the dashboard: net worth, one-year projection, latest change and
  its drivers, wealth, liabilities, protection and the top holdings.
`
}
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail("could not open portfolio: %v", err)
	}
	defer a.Close()

	printMarkdown(renderSummary(a.Dashboard.GetDashboard()))
	return subcommands.ExitSuccess
}

type projectionCmd struct {
	months int
}

func (*projectionCmd) Name() string     { return "projection" }
func (*projectionCmd) Synopsis() string { return "projects net worth month by month" }
func (*projectionCmd) Usage() string {
	return `networth projection [-months <n>]

  Compounds every counted entry at its category growth rate and prints
  the projected net worth for each month from now to n.
`
}

func (p *projectionCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&p.months, "months", projector.DefaultMonths, "number of months to project")
}

func (p *projectionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.months < 0 {
		fmt.Fprintln(os.Stderr, "Error: -months cannot be negative")
		return subcommands.ExitUsageError
	}
	a, err := openApp(ctx)
	if err != nil {
		return fail("could not open portfolio: %v", err)
	}
	defer a.Close()

	entries, settings := a.Portfolio.Entries(), a.Portfolio.Settings()
	points := projector.Projection(entries, settings, p.months)
	growth := projector.PercentGrowth(points[0].Value, projector.OneYearProjection(entries, settings))
	printMarkdown(renderProjection(points, growth, settings.Currency()))
	return subcommands.ExitSuccess
}

type historyCmd struct {
	limit int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "lists recorded net worth snapshots" }
func (*historyCmd) Usage() string {
	return `networth history [-n <count>]

  Lists the newest snapshots, newest first. A snapshot is recorded each
  time a change to the entries moves the net worth, entry count or a
  category total.
`
}

func (h *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&h.limit, "n", 12, "number of snapshots to show, 0 for all")
}

func (h *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail("could not open portfolio: %v", err)
	}
	defer a.Close()

	history := snapshot.Trend(a.Portfolio.Snapshots(), h.limit)
	printMarkdown(renderHistory(history, a.Portfolio.Settings().Currency()))
	return subcommands.ExitSuccess
}

// fieldValues collects repeated -set key=value flags
type fieldValues map[string]string

func (v fieldValues) String() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + v[k]
	}
	return strings.Join(pairs, ",")
}

func (v fieldValues) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	v[strings.TrimSpace(key)] = value
	return nil
}

// parseFieldValue converts raw to the kind the category declares for key
func parseFieldValue(def domain.CategoryDefinition, key, raw string) (domain.FieldValue, error) {
	field, ok := def.Field(key)
	if !ok {
		return domain.FieldValue{}, fmt.Errorf("%w: %s has no field %q", domain.ErrInvalidEntry, def.Name, key)
	}
	switch field.Kind {
	case domain.FieldKindDate:
		t, err := domain.ParseTimestamp(raw)
		if err != nil {
			return domain.FieldValue{}, fmt.Errorf("%w: %s must be a date: %v", domain.ErrInvalidEntry, key, err)
		}
		return domain.DateValue(t), nil
	case domain.FieldKindSelect:
		if _, ok := field.Option(raw); !ok {
			return domain.FieldValue{}, fmt.Errorf("%w: %q is not an option of %s", domain.ErrInvalidEntry, raw, key)
		}
		return domain.TextValue(raw), nil
	case domain.FieldKindText:
		return domain.TextValue(raw), nil
	default:
		n, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return domain.FieldValue{}, fmt.Errorf("%w: %s must be a number: %v", domain.ErrInvalidEntry, key, err)
		}
		return domain.NumberValue(n), nil
	}
}

type addCmd struct {
	category string
	name     string
	values   fieldValues
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "adds an entry to a category" }
func (*addCmd) Usage() string {
	return `networth add -c <category> [-name <name>] [-set key=value]...

  Adds an entry seeded with the category defaults, overriding the fields
  given with -set. Run "networth categories" for the field keys.

Usage Examples:
$ networth add -c savings -name "Salary account" -set savingsBalance=250000
$ networth add -c fixedDeposits -set principalAmount=500000 -set maturityDate=2027-03-31
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	c.values = fieldValues{}
	f.StringVar(&c.category, "c", "", "category id, e.g. savings")
	f.StringVar(&c.name, "name", "", "display name, defaults to the category name")
	f.Var(c.values, "set", "field value as key=value, repeatable")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	category, ok := domain.ParseCategory(c.category)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown category %q\n", c.category)
		return subcommands.ExitUsageError
	}
	def := category.Definition()
	values := make(map[string]domain.FieldValue, len(c.values))
	for k, raw := range c.values {
		v, err := parseFieldValue(def, k, raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		values[k] = v
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail("could not open portfolio: %v", err)
	}
	defer a.Close()

	entry, err := a.Portfolio.Create(ctx, portfolio.CreateEntryInput{
		Category: category,
		Name:     c.name,
		Values:   values,
	})
	if err != nil {
		return fail("could not add entry: %v", err)
	}
	printMarkdown(renderEntry(entry, valuation.ValueOf(entry), a.Portfolio.Settings().Currency()))
	return subcommands.ExitSuccess
}

type setRateCmd struct{}

func (*setRateCmd) Name() string     { return "set-rate" }
func (*setRateCmd) Synopsis() string { return "sets the annual growth rate of a category" }
func (*setRateCmd) Usage() string {
	return `networth set-rate <category> <percent>

  Sets the annual growth rate used for projections, in percent.
  Rates outside the suggested range are accepted with a warning.

Usage Examples:
$ networth set-rate stocks 12.5
`
}
func (*setRateCmd) SetFlags(*flag.FlagSet) {}

func (*setRateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <category> <percent>")
		return subcommands.ExitUsageError
	}
	category, ok := domain.ParseCategory(f.Arg(0))
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown category %q\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	rate, err := strconv.ParseFloat(strings.TrimSuffix(f.Arg(1), "%"), 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid rate %q\n", f.Arg(1))
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail("could not open portfolio: %v", err)
	}
	defer a.Close()

	if err := a.Portfolio.SetGrowthRate(ctx, category, rate); err != nil {
		return fail("could not set growth rate: %v", err)
	}
	if r := category.Definition().GrowthRateRange; r != nil && !r.Contains(rate) {
		fmt.Fprintf(os.Stderr, "Warning: %g%% is outside the suggested %g%% to %g%%\n", rate, r.Min, r.Max)
	}
	fmt.Printf("%s now grows at %g%% a year\n", category.Definition().Name, rate)
	return subcommands.ExitSuccess
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "merges entries from a CSV file" }
func (*importCmd) Usage() string {
	return `networth import <file.csv|->

  Merges entries from a CSV export. Unknown ids are inserted, known ids are
  replaced when the incoming row was updated later, the rest are ignored.
  Use - to read from standard input.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (*importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a single file argument")
		return subcommands.ExitUsageError
	}
	var r io.Reader = os.Stdin
	if name := f.Arg(0); name != "-" {
		file, err := os.Open(name)
		if err != nil {
			return fail("could not open %s: %v", name, err)
		}
		defer file.Close()
		r = file
	}

	a, err := openApp(ctx)
	if err != nil {
		return fail("could not open portfolio: %v", err)
	}
	defer a.Close()

	res, err := a.Portfolio.Import(ctx, r)
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(fmt.Sprintf("# Import\n\n- Parsed: %d\n- Skipped rows: %d\n- Inserted: %d\n- Replaced: %d\n- Ignored: %d\n",
		res.Imported, res.Skipped, res.Merge.Inserted, res.Merge.Replaced, res.Merge.Ignored))
	return subcommands.ExitSuccess
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "writes all entries as CSV" }
func (*exportCmd) Usage() string {
	return `networth export [-o <file.csv>]

  Writes every entry as CSV to standard output, or to the given file.
`
}

func (e *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&e.output, "o", "", "output file, standard output by default")
}

func (e *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		return fail("could not open portfolio: %v", err)
	}
	defer a.Close()

	var w io.Writer = os.Stdout
	if e.output != "" {
		file, err := os.Create(e.output)
		if err != nil {
			return fail("could not create %s: %v", e.output, err)
		}
		defer file.Close()
		w = file
	}
	if err := a.Portfolio.Export(w); err != nil {
		return fail("could not export: %v", err)
	}
	return subcommands.ExitSuccess
}

type statusCmd struct {
	addr    string
	timeout time.Duration
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "prints the dashboard of a running server" }
func (*statusCmd) Usage() string {
	return `networth status [-addr <host:port>]

  Fetches the dashboard from a networth server using API_TOKEN.
`
}

func (s *statusCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.addr, "addr", "", "server address, defaults to localhost:$GRPC_PORT")
	f.DurationVar(&s.timeout, "timeout", 5*time.Second, "request timeout")
}

func (s *statusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return fail("%v", err)
	}
	addr := s.addr
	if addr == "" {
		addr = "localhost:" + cfg.GRPCPort
	}

	conn, err := grpc.NewClient(addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithPerRPCCredentials(grpcadapter.TokenCredentials{Token: cfg.APIToken, Insecure: true}),
	)
	if err != nil {
		return fail("could not connect to %s: %v", addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	d, err := grpcadapter.NewClient(conn).GetDashboard(ctx)
	if err != nil {
		return fail("could not fetch dashboard: %v", err)
	}
	printMarkdown(renderStatus(addr, d, time.Now()))
	return subcommands.ExitSuccess
}
