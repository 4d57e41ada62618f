package main

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/rpgo/irs-calculator/internal/calculation"
	"github.com/rpgo/irs-calculator/internal/config"
	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/rpgo/irs-calculator/internal/output"
	"github.com/rpgo/irs-calculator/internal/tables"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newEstimateCmd(a *app) *cobra.Command {
	var format, saveDir string
	cmd := &cobra.Command{
		Use:   "estimate household.yaml [household.yaml...]",
		Short: "Estimate the tax still payable by one or more households",
		Long: `Reads each household file, projects expected monthly income over the rest of
the year and prints the joint estimate, each member filing alone, and which is cheaper.

The bracket table comes from --table when given, otherwise from the household's own
"table" field (relative to the household file), otherwise from IRS_TABLE_PATH.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output.GetFormatterByName(format) == nil {
				return fmt.Errorf("%w: %q (available: %v)", output.ErrUnsupportedFormat, format, output.AvailableFormatterNames())
			}
			tableOverride := ""
			if cmd.Flags().Changed("table") {
				tableOverride = a.tablePath
			}
			reports, err := a.estimateAll(cmd.Context(), args, tableOverride)
			if err != nil {
				return err
			}
			for _, r := range reports {
				if err := output.GenerateReport(cmd.OutOrStdout(), r, format); err != nil {
					return err
				}
				if saveDir != "" {
					path, err := output.SaveReport(r, format, saveDir)
					if err != nil {
						return fmt.Errorf("save report for %s: %w", r.Household, err)
					}
					a.log.Infof("report for %s written to %s", r.Household, path)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", a.settings.Format, "report format")
	cmd.Flags().StringVar(&saveDir, "save", "", "also write each report to a file in this directory")
	return cmd
}

// householdJob is one input file on its way to a report.
type householdJob struct {
	path      string
	household *domain.Household
	tablePath string
}

// estimateAll parses every household file, loads each distinct bracket table once
// and runs the households concurrently. Reports come back in argument order.
func (a *app) estimateAll(ctx context.Context, paths []string, tableOverride string) ([]*domain.EstimateReport, error) {
	jobs := make([]householdJob, len(paths))
	parser := config.NewInputParser()

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, p := range paths {
		g.Go(func() error {
			h, err := parser.LoadFromFile(p)
			if err != nil {
				return err
			}
			if h.Name == "" {
				h.Name = filepath.Base(p)
			}
			jobs[i] = householdJob{path: p, household: h, tablePath: a.resolveTable(p, h, tableOverride)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loaded := make(map[string]*domain.BracketTable)
	for _, tp := range lo.Uniq(lo.Map(jobs, func(j householdJob, _ int) string { return j.tablePath })) {
		table, err := tables.Load(ctx, tp)
		if err != nil {
			return nil, fmt.Errorf("load bracket table: %w", err)
		}
		a.log.Debugf("loaded bracket table %s (%d rows)", table.Name(), table.Len())
		loaded[tp] = table
	}

	reports := make([]*domain.EstimateReport, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			engine := calculation.NewHouseholdEngine(loaded[j.tablePath], a.log.WithField("household", j.household.Name))
			report, err := engine.Run(j.household)
			if err != nil {
				return fmt.Errorf("%s: %w", j.path, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// resolveTable picks the table for one household: the flag, then the household's
// own table relative to its file, then the configured default.
func (a *app) resolveTable(householdPath string, h *domain.Household, override string) string {
	switch {
	case override != "":
		return override
	case h.Table == "":
		return a.settings.TablePath
	case filepath.IsAbs(h.Table):
		return h.Table
	default:
		return filepath.Join(filepath.Dir(householdPath), h.Table)
	}
}
