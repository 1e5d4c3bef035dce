// Package shell is a line-oriented session over a single in-memory cart.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"roi-engine/internal/calculators"
	"roi-engine/internal/cart"
	"roi-engine/internal/jsonpatch"
	"roi-engine/internal/model"
	"roi-engine/internal/report"
	"roi-engine/internal/valuemodel"
)

const chartCells = 30

type Shell struct {
	registry *calculators.Registry
	cart     *cart.Cart
	currency string
	notes    string
	scanner  *bufio.Scanner
	out      io.Writer
	now      func() time.Time
}

func New(registry *calculators.Registry, currency string, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		registry: registry,
		cart:     cart.New(registry),
		currency: report.NormalizeCurrency(currency),
		scanner:  bufio.NewScanner(in),
		out:      out,
		now:      time.Now,
	}
}

// Run reads commands until the input ends or "quit" is entered.
func (s *Shell) Run() error {
	for {
		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			return nil
		}

		s.processCommand(input)
	}
	return s.scanner.Err()
}

func (s *Shell) processCommand(input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	command := parts[0]

	switch command {
	case "catalog":
		s.handleCatalog(parts)
	case "add":
		s.handleAdd(parts)
	case "remove":
		s.handleRemove(parts)
	case "set":
		s.handleSet(parts)
	case "scenario":
		s.handleScenario(parts)
	case "show":
		s.handleShow(parts)
	case "totals":
		s.handleTotals()
	case "currency":
		s.handleCurrency(parts)
	case "notes":
		s.notes = strings.TrimSpace(strings.TrimPrefix(input, "notes"))
		s.printf("Notes saved\n")
	case "export":
		s.handleExport(parts)
	case "help":
		s.handleHelp()
	default:
		s.printf("Unknown command: %s\n", command)
	}
}

func (s *Shell) handleCatalog(parts []string) {
	if len(parts) == 1 {
		for _, def := range s.registry.Definitions() {
			marker := " "
			if _, ok := s.cart.Instance(def.ID); ok {
				marker = "*"
			}
			s.printf("%s %-26s %s\n", marker, def.ID, def.Name)
		}
		return
	}

	if len(parts) != 2 {
		s.printf("Usage: catalog [use_case_id]\n")
		return
	}

	calc, ok := s.registry.Lookup(parts[1])
	if calc == nil {
		s.printf("No use cases registered\n")
		return
	}
	def := calc.Definition()
	if !ok {
		s.printf("Unknown use case %s, showing %s\n", parts[1], def.ID)
	}

	s.printf("%s (%s)\n%s\n\nInputs:\n", def.Name, def.ID, def.Description)
	for _, in := range def.Inputs {
		b := in.Bounds()
		s.printf("  %-24s %-12s default %s, range %s..%s\n", in.ID, in.Group,
			report.FormatNumber(in.DefaultValue), report.FormatNumber(b.Min), report.FormatNumber(b.Max))
	}
	s.printf("Scenarios:\n")
	set := valuemodel.EffectiveSet(def.Scenarios)
	for _, key := range scenarioKeys(set) {
		info := set.Describe(key)
		s.printf("  %-13s %-22s %s\n", key, info.Label, info.Detail)
	}
	for _, a := range def.Assumptions {
		s.printf("  * %s\n", a)
	}
}

func (s *Shell) handleAdd(parts []string) {
	if len(parts) != 2 {
		s.printf("Usage: add <use_case_id>\n")
		return
	}

	s.track(func() error {
		inst, err := s.cart.Add(parts[1])
		if err != nil {
			return err
		}
		s.printf("Added %s (%s)\n", inst.Definition().Name, inst.ScenarioInfo().Label)
		return nil
	})
}

func (s *Shell) handleRemove(parts []string) {
	if len(parts) != 2 {
		s.printf("Usage: remove <use_case_id>\n")
		return
	}

	s.track(func() error {
		if !s.cart.Remove(parts[1]) {
			return fmt.Errorf("%w: %s", cart.ErrNotInCart, parts[1])
		}
		s.printf("Removed %s\n", parts[1])
		return nil
	})
}

func (s *Shell) handleSet(parts []string) {
	if len(parts) != 4 {
		s.printf("Usage: set <use_case_id> <input_id> <value>\n")
		return
	}

	s.track(func() error {
		kept, err := s.cart.SetInput(parts[1], parts[2], valuemodel.ParseNumber(parts[3], math.NaN()))
		if err != nil {
			return err
		}
		s.printf("%s.%s = %s\n", parts[1], parts[2], report.FormatNumber(kept))
		return nil
	})
}

func (s *Shell) handleScenario(parts []string) {
	if len(parts) != 3 {
		s.printf("Usage: scenario <use_case_id> <%s>\n", strings.Join(scenarioKeys(valuemodel.DefaultScenarios()), "|"))
		return
	}

	s.track(func() error {
		if err := s.cart.SetScenario(parts[1], parts[2]); err != nil {
			return err
		}
		inst, _ := s.cart.Instance(parts[1])
		info := inst.ScenarioInfo()
		s.printf("%s scenario: %s (%s)\n", parts[1], info.Label, info.Detail)
		return nil
	})
}

func (s *Shell) handleShow(parts []string) {
	if len(parts) != 2 {
		s.printf("Usage: show <use_case_id>\n")
		return
	}

	inst, ok := s.cart.Instance(parts[1])
	if !ok {
		s.printf("Error: %s: %s\n", cart.ErrNotInCart, parts[1])
		return
	}

	def := inst.Definition()
	info := inst.ScenarioInfo()
	s.printf("%s  [%s, %s]\n", def.Name, info.Label, info.Detail)
	for _, in := range def.Inputs {
		s.printf("  %-24s %s\n", in.ID, report.FormatNumber(inst.Inputs[in.ID]))
	}
	for _, row := range report.ChartRows(inst.Result) {
		s.printf("  %-14s %s %s\n", row.Label, row.Bar(chartCells), s.money(row.Value))
	}
	s.printf("  %-14s %s (%s)\n", "Annual value", s.money(inst.Result.AnnualValue), report.FormatCompact(inst.Result.AnnualValue))
}

func (s *Shell) handleTotals() {
	if s.cart.Len() == 0 {
		s.printf("Cart is empty\n")
		return
	}

	for _, inst := range s.cart.Instances() {
		s.printf("%-26s %12s %12s %12s\n", inst.UseCaseID,
			s.money(inst.Result.BaselineCost), s.money(inst.Result.ImprovedCost), s.money(inst.Result.AnnualValue))
	}
	t := s.cart.Totals()
	s.printf("%-26s %12s %12s %12s\n", "Total", s.money(t.TotalBaselineCost), s.money(t.TotalImprovedCost), s.money(t.TotalAnnualValue))
}

func (s *Shell) handleCurrency(parts []string) {
	if len(parts) != 2 {
		s.printf("Usage: currency <%s>\n", strings.Join(report.Currencies, "|"))
		return
	}

	s.currency = report.NormalizeCurrency(parts[1])
	s.printf("Display currency: %s\n", s.currency)
}

func (s *Shell) handleExport(parts []string) {
	if s.cart.Len() == 0 {
		s.printf("Select at least one use case to export.\n")
		return
	}

	ex := report.Build(s.cart.Results(), report.Options{
		Selection: parts[1:],
		Currency:  s.currency,
		Notes:     s.notes,
		Now:       s.now(),
	})
	if len(ex.Entries) == 0 {
		s.printf("Select at least one use case to export.\n")
		return
	}
	if err := report.Render(s.out, ex); err != nil {
		s.printf("Error: %s\n", err)
	}
}

func (s *Shell) handleHelp() {
	s.printf(`Commands:
  catalog [use_case_id]                 list use cases or describe one
  add <use_case_id>                     add a use case with default inputs
  remove <use_case_id>                  remove a use case
  set <use_case_id> <input_id> <value>  change an input
  scenario <use_case_id> <key>          choose conservative, realistic or optimistic
  show <use_case_id>                    inputs, scenario and costs for one use case
  totals                                combined baseline, improved and annual value
  currency <USD|EUR|GBP>                display currency
  notes <text>                          notes included in exports
  export [use_case_id...]               print a value summary
  quit
`)
}

// track runs a cart change and prints how the figures moved.
func (s *Shell) track(change func() error) {
	before := s.snapshot()
	if err := change(); err != nil {
		s.printError(err)
		return
	}

	ops, err := jsonpatch.Between(before, s.snapshot())
	if err != nil {
		s.printf("Error: %s\n", err)
		return
	}
	for _, op := range ops {
		key := jsonpatch.UnescapeKey(strings.TrimPrefix(op.Path, "/"))
		switch op.Op {
		case jsonpatch.OpAdd:
			s.printf("  + %s: %s\n", key, s.moneyAny(op.Value))
		case jsonpatch.OpRemove:
			s.printf("  - %s: %s\n", key, s.moneyAny(op.Previous))
		case jsonpatch.OpReplace:
			s.printf("  ~ %s: %s -> %s\n", key, s.moneyAny(op.Previous), s.moneyAny(op.Value))
		}
	}
}

// snapshot flattens the cart's figures into "<use case>.<field>" keys.
func (s *Shell) snapshot() map[string]float64 {
	t := s.cart.Totals()
	snap := map[string]float64{
		"total.baseline_cost": t.TotalBaselineCost,
		"total.improved_cost": t.TotalImprovedCost,
		"total.annual_value":  t.TotalAnnualValue,
	}
	for _, inst := range s.cart.Instances() {
		snap[inst.UseCaseID+".annual_value"] = inst.Result.AnnualValue
	}
	return snap
}

func (s *Shell) printError(err error) {
	switch {
	case errors.Is(err, calculators.ErrUnknownUseCase):
		s.printf("Unknown use case. Try 'catalog'.\n")
	default:
		s.printf("Error: %s\n", err)
	}
}

func (s *Shell) money(v float64) string {
	return report.FormatCurrency(v, s.currency)
}

func (s *Shell) moneyAny(v any) string {
	f, ok := v.(float64)
	if !ok {
		return fmt.Sprint(v)
	}
	return s.money(f)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

// scenarioKeys orders the standard keys first, then any others alphabetically.
func scenarioKeys(set model.ScenarioSet) []string {
	var keys, extra []string
	for _, k := range model.ScenarioKeys {
		if _, ok := set[k]; ok {
			keys = append(keys, k)
		}
	}
	for k := range set {
		if !slices.Contains(model.ScenarioKeys, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
