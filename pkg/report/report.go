// Package report evaluates the lipidome estimators for one or more counting
// modes and renders the results.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"go.uber.org/zap"

	"github.com/ChrisMcGann/OxLipidome/pkg/core"
	"github.com/ChrisMcGann/OxLipidome/pkg/lipidome"
	"github.com/ChrisMcGann/OxLipidome/pkg/oxlipidome"
)

// Inputs are the catalogs an evaluation runs on.
type Inputs struct {
	Inventory     *core.Inventory
	Modifications *core.ModificationCatalog
	Classes       *core.LipidClassCatalog
	Logger        *zap.Logger
}

// Run holds the results of one (site, site-specific) evaluation.
type Run struct {
	Site                 core.SiteMode           `json:"site"`
	SiteSpecific         bool                    `json:"site_specific"`
	FattyAcids           int                     `json:"fatty_acids"`
	OxidizableFattyAcids int                     `json:"oxidizable_fatty_acids"`
	Unoxidized           *big.Int                `json:"unoxidized_lipids"`
	OxidizedChains       *big.Int                `json:"oxidized_fatty_acids"`
	OneOxidized          *big.Int                `json:"oxidized_lipids_one_oxfa"`
	AllOxidized          *big.Int                `json:"oxidized_lipids_all_oxfa"`
	Chains               []oxlipidome.ChainCount `json:"chains"`
}

// Metric is a named headline count of a run.
type Metric struct {
	Name  string
	Value *big.Int
}

// Metrics returns the headline counts in report order.
func (r *Run) Metrics() []Metric {
	return []Metric{
		{Name: "unoxidized_lipids", Value: r.Unoxidized},
		{Name: "oxidized_fatty_acids", Value: r.OxidizedChains},
		{Name: "oxidized_lipids_one_oxfa", Value: r.OneOxidized},
		{Name: "oxidized_lipids_all_oxfa", Value: r.AllOxidized},
	}
}

// Evaluate runs every estimator for one site selector and counting mode.
func Evaluate(in Inputs, site string, siteSpecific bool) (*Run, error) {
	logger := in.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	counter := oxlipidome.NewCounter(in.Inventory, in.Modifications, oxlipidome.WithLogger(logger))
	aggregator := oxlipidome.NewAggregator(counter, in.Classes, oxlipidome.WithLogger(logger))
	mode := counter.ResolveSite(site)

	run := &Run{
		Site:                 mode,
		SiteSpecific:         siteSpecific,
		FattyAcids:           in.Inventory.Total(),
		OxidizableFattyAcids: in.Inventory.Oxidizable(),
	}

	var err error
	if run.Unoxidized, err = lipidome.NewEstimator(in.Inventory, in.Classes).Estimate(siteSpecific); err != nil {
		return nil, fmt.Errorf("unoxidized estimate: %w", err)
	}

	if run.Chains, err = counter.Breakdown(string(mode), siteSpecific); err != nil {
		return nil, fmt.Errorf("oxidized fatty acids: %w", err)
	}
	run.OxidizedChains = new(big.Int)
	for _, chain := range run.Chains {
		run.OxidizedChains.Add(run.OxidizedChains, chain.Total)
	}

	if run.OneOxidized, err = aggregator.OneOxidized(run.OxidizedChains, siteSpecific); err != nil {
		return nil, fmt.Errorf("oxidized lipids with one oxFA: %w", err)
	}
	if run.AllOxidized, err = aggregator.AllOxidized(run.OxidizedChains, siteSpecific); err != nil {
		return nil, fmt.Errorf("oxidized lipids with all oxFA: %w", err)
	}

	logger.Debug("evaluated lipidome",
		zap.String("site", string(mode)),
		zap.Bool("site_specific", siteSpecific),
		zap.String("oxidized_fatty_acids", run.OxidizedChains.String()))

	return run, nil
}

// EvaluateAll runs every site mode in both counting modes, combination first.
func EvaluateAll(in Inputs) ([]*Run, error) {
	var runs []*Run
	for _, siteSpecific := range []bool{false, true} {
		for _, mode := range core.SiteModes {
			run, err := Evaluate(in, string(mode), siteSpecific)
			if err != nil {
				return nil, err
			}
			runs = append(runs, run)
		}
	}
	return runs, nil
}

// RenderTable writes the headline counts of each run as a table.
func RenderTable(w io.Writer, runs []*Run) error {
	data := pterm.TableData{
		{"Site", "Site specific", "unoxLipids", "oxFA", "oxLipids (1 oxFA)", "oxLipids (all oxFA)"},
	}
	for _, run := range runs {
		data = append(data, []string{
			string(run.Site),
			strconv.FormatBool(run.SiteSpecific),
			humanize.BigComma(run.Unoxidized),
			humanize.BigComma(run.OxidizedChains),
			humanize.BigComma(run.OneOxidized),
			humanize.BigComma(run.AllOxidized),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// RenderBreakdown writes the per double-bond oxidized chain counts of a run.
func RenderBreakdown(w io.Writer, run *Run) error {
	data := pterm.TableData{
		{"DB", "FAs", "Sites", "OAP", "OCP", "Cyclic", "oxFA"},
	}
	for _, chain := range run.Chains {
		data = append(data, []string{
			strconv.Itoa(chain.DoubleBonds),
			strconv.Itoa(chain.FattyAcids),
			strconv.Itoa(chain.Sites),
			humanize.BigComma(chain.Additions),
			humanize.BigComma(chain.Cleavages),
			humanize.BigComma(chain.Cyclic),
			humanize.BigComma(chain.Total),
		})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render breakdown: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s (site specific: %t)\n%s\n", run.Site, run.SiteSpecific, out)
	return err
}

// RenderJSON writes the runs as an indented JSON array. Counts are exact
// JSON integers.
func RenderJSON(w io.Writer, runs []*Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runs)
}

// RenderInventory writes the number of fatty acids per double-bond count.
func RenderInventory(w io.Writer, inv *core.Inventory) error {
	data := pterm.TableData{{"DB", "FAs"}}
	if saturated := inv.Total() - inv.Oxidizable(); saturated > 0 {
		data = append(data, []string{"0", strconv.Itoa(saturated)})
	}
	for _, nDB := range inv.DoubleBondValues() {
		data = append(data, []string{strconv.Itoa(nDB), strconv.Itoa(inv.CountWithDoubleBonds(nDB))})
	}

	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render inventory: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\nTotal: %d FAs, %d oxidizable\n", out, inv.Total(), inv.Oxidizable())
	return err
}
