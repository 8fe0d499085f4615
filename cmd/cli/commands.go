package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/amirasaad/zakat/pkg/money"
	zakatsvc "github.com/amirasaad/zakat/pkg/service/zakat"
	"github.com/amirasaad/zakat/pkg/units"
	"github.com/amirasaad/zakat/pkg/zakat"
	zakatweb "github.com/amirasaad/zakat/webapi/zakat"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

var errUnknownCommand = errors.New("unknown command")

var (
	heading = color.New(color.Bold, color.FgCyan)
	good    = color.New(color.Bold, color.FgGreen)
	warn    = color.New(color.FgYellow)
	faint   = color.New(color.Faint)
)

// CLI runs one command against the calculation service.
type CLI struct {
	svc *zakatsvc.Service
	out io.Writer
}

// Dispatch runs the command named by args[0].
func (c *CLI) Dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "calculate":
		return c.calculate(ctx, args[1:])
	case "nisab":
		return c.nisab(ctx, args[1:])
	case "prices":
		return c.prices(ctx)
	case "units":
		return c.units()
	case "presets":
		return c.presets()
	case "help", "-h", "--help":
		_, err := fmt.Fprint(c.out, usage)
		return err
	default:
		return fmt.Errorf("%w: %s", errUnknownCommand, args[0])
	}
}

func (c *CLI) calculate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("calculate", flag.ContinueOnError)
	fs.SetOutput(c.out)
	file := fs.String("f", "", "request file (.json, .yaml or .yml)")
	base := fs.String("base", "", "base currency, overrides the file")
	home := fs.String("home", "", "home currency, overrides the file")
	preset := fs.String("preset", "", "regional preset id")
	format := fs.String("format", "", "numbering format: international or indian")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("calculate: -f is required")
	}

	req, err := readRequest(*file)
	if err != nil {
		return err
	}
	if *base != "" {
		req.BaseCurrency = *base
	}
	if *home != "" {
		req.HomeCurrency = *home
	}
	if *preset != "" {
		req.Preset = *preset
	}

	grouping, err := c.grouping(*format, req.Preset)
	if err != nil {
		return err
	}

	in, err := req.ToInput()
	if err != nil {
		return err
	}
	out, err := c.svc.Calculate(ctx, in)
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	return c.printCalculation(out, grouping)
}

// grouping picks the numbering format from the flag, then the preset.
func (c *CLI) grouping(format, presetID string) (money.Grouping, error) {
	if format != "" {
		return money.ParseGrouping(format)
	}
	if presetID != "" {
		if p, err := zakat.PresetByID(presetID); err == nil {
			return p.NumberingFormat, nil
		}
	}
	return money.GroupingInternational, nil
}

func (c *CLI) printCalculation(out *zakatsvc.Calculation, g money.Grouping) error {
	amount := func(s string) string { return money.Format(money.Parse(s), 2, g) }

	heading.Fprintf(c.out, "Zakat calculation (%s)\n", out.BaseCurrency) //nolint:errcheck
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	rows := []struct{ label, value string }{
		{"Gold", out.Breakdown.Gold},
		{"Silver", out.Breakdown.Silver},
		{"Cash", out.Breakdown.Cash},
		{"Crypto", out.Breakdown.Crypto},
		{"Stocks", out.Breakdown.Stocks},
		{"Retirement", out.Breakdown.Retirement},
		{"Receivables", out.Breakdown.Receivables},
		{"Total assets", out.TotalAssets},
		{"Liabilities", out.TotalLiabilities},
		{"Net wealth", out.NetWealth},
		{fmt.Sprintf("Nisab (%s)", out.NisabBasis), out.NisabValue},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%s\t\n", r.label, amount(r.value)) //nolint:errcheck
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if out.NisabMet {
		good.Fprintf(c.out, "  Zakat due: %s %s\n", out.BaseCurrency, amount(out.ZakatDue)) //nolint:errcheck
	} else {
		faint.Fprintln(c.out, "  Net wealth is below the Nisab; no Zakat is due") //nolint:errcheck
	}
	if h := out.Home; h != nil {
		fmt.Fprintf(c.out, "  In %s: net wealth %s, zakat due %s (rate %s)\n", //nolint:errcheck
			h.Currency, amount(h.NetWealth), amount(h.ZakatDue), h.Rate)
	}
	if out.Methodology.NisabBasis == zakat.NisabAuto {
		faint.Fprintln(c.out, "  Note: auto Nisab uses the lower threshold; it is not a formal scholarly position") //nolint:errcheck
	}
	if out.Methodology.HawlCheck == zakat.HawlUnknown {
		warn.Fprintln(c.out, "  Note: hawl is unresolved; confirm a lunar year has passed before paying") //nolint:errcheck
	}

	faint.Fprintf(c.out, "Prices: %s", out.PriceSource) //nolint:errcheck
	if !out.PricesAsOf.IsZero() {
		faint.Fprintf(c.out, " as of %s", out.PricesAsOf.Format("2006-01-02 15:04 MST")) //nolint:errcheck
	}
	fmt.Fprintln(c.out) //nolint:errcheck
	if out.Stale {
		warn.Fprintln(c.out, "Warning: prices are older than the configured maximum age") //nolint:errcheck
	}
	return nil
}

func (c *CLI) nisab(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("nisab", flag.ContinueOnError)
	fs.SetOutput(c.out)
	cur := fs.String("currency", "", "currency to quote in")
	basis := fs.String("basis", "", "silver, gold or auto")
	if err := fs.Parse(args); err != nil {
		return err
	}

	q, err := c.svc.Nisab(ctx, *cur, zakat.NisabBasis(strings.ToLower(*basis)))
	if err != nil {
		return err
	}
	heading.Fprintf(c.out, "Nisab in %s\n", q.BaseCurrency)             //nolint:errcheck
	fmt.Fprintf(c.out, "  Silver (%sg)  %s\n", q.SilverGrams, q.Silver) //nolint:errcheck
	fmt.Fprintf(c.out, "  Gold (%sg)    %s\n", q.GoldGrams, q.Gold)     //nolint:errcheck
	good.Fprintf(c.out, "  Threshold (%s): %s\n", q.Basis, q.Value)     //nolint:errcheck
	if q.Stale {
		warn.Fprintln(c.out, "Warning: prices are older than the configured maximum age") //nolint:errcheck
	}
	return nil
}

func (c *CLI) prices(ctx context.Context) error {
	q, err := c.svc.Prices(ctx)
	if err != nil {
		return err
	}
	heading.Fprintf(c.out, "Prices from %s (%s)\n", q.Provider, q.Rates.Source)  //nolint:errcheck
	fmt.Fprintf(c.out, "  Gold per gram    USD %s\n", q.Prices.GoldPerGramUSD)   //nolint:errcheck
	fmt.Fprintf(c.out, "  Silver per gram  USD %s\n", q.Prices.SilverPerGramUSD) //nolint:errcheck
	fmt.Fprintf(c.out, "  Exchange rates   %d currencies\n", len(q.Rates.Rates)) //nolint:errcheck
	fmt.Fprintf(c.out, "  As of            %s\n", q.AsOf.Format("2006-01-02"))   //nolint:errcheck
	if q.Stale {
		warn.Fprintln(c.out, "Warning: prices are older than the configured maximum age") //nolint:errcheck
	}
	return nil
}

func (c *CLI) units() error {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UNIT\tGRAMS\tREGION") //nolint:errcheck
	for _, u := range units.Units() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", u.Unit, u.GramsPerUnit, u.Region) //nolint:errcheck
	}
	return w.Flush()
}

func (c *CLI) presets() error {
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBASE\tHOME\tGOLD UNIT\tFORMAT") //nolint:errcheck
	for _, p := range zakat.Presets() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", //nolint:errcheck
			p.ID, p.BaseCurrency, p.HomeCurrency, p.GoldUnit, p.NumberingFormat)
	}
	return w.Flush()
}

// readRequest decodes a request file. YAML is converted to JSON first so
// both formats share the JSON field names. Unquoted YAML numbers become
// strings since amounts are decimal strings.
func readRequest(path string) (zakatweb.CalculateRequest, error) {
	var req zakatweb.CalculateRequest
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read request: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return req, fmt.Errorf("invalid yaml request: %w", err)
		}
		if data, err = json.Marshal(quoteNumbers(doc, "")); err != nil {
			return req, fmt.Errorf("invalid yaml request: %w", err)
		}
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}

// numericFields are the request fields decoded as JSON numbers.
var numericFields = map[string]bool{"karat": true}

// quoteNumbers replaces numeric scalars in a decoded YAML document with
// their decimal text, except under numericFields.
func quoteNumbers(v any, key string) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = quoteNumbers(e, k)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = quoteNumbers(e, key)
		}
		return t
	}
	if numericFields[key] {
		return v
	}
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return v
}
