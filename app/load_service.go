// Package app wires the load pipeline: source workbook in, mapping plan,
// extraction, merge, atomic master write, report out.
package app

import (
	"maestro/adapters/excel"
	"maestro/domain/core"
	"maestro/domain/extract"
	"maestro/domain/mapping"
	"maestro/domain/merge"
	"maestro/internal"
	"maestro/internal/config"
	"maestro/internal/errors"
	"maestro/internal/report"
)

// LoadRequest carries everything one run needs.
type LoadRequest struct {
	SourcePath   string
	MasterPath   string
	PurchaseDate string // raw user input; empty keeps the mapped source value
	Config       *config.Config
}

// LoadResult is the outcome of a completed run.
type LoadResult struct {
	Report   *report.Report
	Appended int // rows added to the master this run
}

// LoadService orchestrates source-to-master runs. A run is one-shot and
// synchronous: it either persists the fully merged master or fails with
// the existing file untouched.
type LoadService struct {
	log *internal.Logger
}

// NewLoadService creates a load service.
func NewLoadService() *LoadService {
	return &LoadService{log: internal.DefaultLogger}
}

// Run executes one load: read, map, extract, merge, persist.
func (s *LoadService) Run(req LoadRequest) (*LoadResult, error) {
	runID := core.NewRunID()
	s.log.Info("load run %s: %s -> %s", runID, req.SourcePath, req.MasterPath)

	purchaseDate := core.Empty
	if req.PurchaseDate != "" {
		parsed, ok := extract.ParsePurchaseDate(req.PurchaseDate)
		if !ok {
			return nil, errors.InputDateInvalid(req.PurchaseDate)
		}
		purchaseDate = parsed
	}

	wb, err := excel.NewSourceReader(req.SourcePath, req.Config.TwoRowHeader).Read()
	if err != nil {
		return nil, err
	}

	plan, base := s.buildPlan(wb, !purchaseDate.IsEmpty(), req.Config)

	rep := &report.Report{
		RunID:      runID,
		SourcePath: req.SourcePath,
		MasterPath: req.MasterPath,
		SheetUsed:  wb.SheetUsed,
		Plan:       plan,
	}

	if wb.Valo.NumRows() == 0 {
		s.log.Warn("source sheet %q has no data rows, master left untouched", wb.SheetUsed)
		rep.DryRun = true
		return &LoadResult{Report: rep}, nil
	}

	batch := extract.BuildBatch(extract.Params{
		Plan:         plan,
		Source:       wb.Valo,
		Base:         base,
		PurchaseDate: purchaseDate,
	})

	store := excel.NewMasterStore(req.MasterPath)
	existing, err := store.Read()
	if err != nil {
		return nil, err
	}
	merged, stats := merge.Merge(existing, batch)
	if err := store.Write(merged, runID); err != nil {
		return nil, err
	}

	rep.Stats = stats
	s.log.Info("run %s done: %d existing, %d incoming, %d duplicates dropped, %d total",
		runID, stats.Existing, stats.Incoming, stats.Duplicates, stats.Final)
	return &LoadResult{Report: rep, Appended: stats.Final - stats.Existing}, nil
}

// Plan performs the mapping stage only: no master read, no write. Used
// by the dry-run command to preview how a workbook would map.
func (s *LoadService) Plan(req LoadRequest) (*report.Report, error) {
	runID := core.NewRunID()
	wb, err := excel.NewSourceReader(req.SourcePath, req.Config.TwoRowHeader).Read()
	if err != nil {
		return nil, err
	}
	plan, _ := s.buildPlan(wb, req.PurchaseDate != "", req.Config)
	return &report.Report{
		RunID:      runID,
		SourcePath: req.SourcePath,
		SheetUsed:  wb.SheetUsed,
		Plan:       plan,
		DryRun:     true,
	}, nil
}

// buildPlan runs header matching and date location over the Valo sheet
// and indexes the Base sheet when it is usable.
func (s *LoadService) buildPlan(wb *excel.Workbook, haveRunDate bool, cfg *config.Config) (*mapping.Plan, *extract.BaseLookup) {
	matcher := mapping.NewMatcher(cfg.Mapping.Overrides, cfg.Mapping.Aliases)
	match := matcher.Match(wb.Valo.Headers)
	dateCols := mapping.LocateDateColumns(wb.Valo.Headers)

	base, haveBase := extract.NewBaseLookup(wb.Base)
	if wb.Base != nil && !haveBase {
		s.log.Warn("sheet %q present but unusable (no key column or no rows), skipping base link", excel.BaseSheet)
	}

	plan := mapping.BuildPlan(mapping.Inputs{
		Headers:     wb.Valo.Headers,
		Match:       match,
		DateCols:    dateCols,
		HaveBase:    haveBase,
		HaveRunDate: haveRunDate,
	})
	return plan, base
}
