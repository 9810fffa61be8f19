// Package collegecost is the boundary the presentation layer talks
// to: it decides when to refetch tuition data, serves the normalized
// tables and runs the cost estimates. Rendering and user-facing text
// live with the caller.
package collegecost

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"collegecost-backend/lib/loan"
	"collegecost-backend/lib/occupation"
	"collegecost-backend/lib/scorecard"
	"collegecost-backend/lib/snapshot"
	"collegecost-backend/lib/table"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/collegecost")

// DefaultMaxSnapshotAge is how long a saved snapshot stays fresh
// before a session triggers a refetch.
const DefaultMaxSnapshotAge = 24 * time.Hour

type Service struct {
	client  *scorecard.Client
	store   snapshot.Store
	perPage int
	maxAge  time.Duration
}

type Options struct {
	Client *scorecard.Client
	Store  snapshot.Store
	// defaults to scorecard.DefaultPerPage
	PerPage int
	// defaults to DefaultMaxSnapshotAge
	MaxSnapshotAge time.Duration
}

func New(opts Options) Service {
	if opts.PerPage <= 0 {
		opts.PerPage = scorecard.DefaultPerPage
	}
	if opts.MaxSnapshotAge <= 0 {
		opts.MaxSnapshotAge = DefaultMaxSnapshotAge
	}
	return Service{
		client:  opts.Client,
		store:   opts.Store,
		perPage: opts.PerPage,
		maxAge:  opts.MaxSnapshotAge,
	}
}

// GetCollegeData returns the cleaned tuition table for a region,
// loading the snapshot when it is fresh and refetching otherwise. When
// a refetch fails but a stale snapshot exists, the stale copy is
// served with a warning instead of failing the session.
func (s Service) GetCollegeData(ctx context.Context, region string) (*table.Table, error) {
	ctx, span := tracer.Start(ctx, "service:GetCollegeData")
	defer span.End()

	if !s.store.IsStale(region, s.maxAge) {
		records, err := s.store.Load(region)
		if err == nil {
			slog.DebugContext(ctx, "serving snapshot", "region", region, "records", len(records))
			return buildTable(records), nil
		}
		slog.Warn("fresh snapshot failed to load, refetching", "region", region, "err", err)
	}

	batch, err := s.client.GetAllSchools(ctx, scorecard.Query{
		State:   region,
		PerPage: s.perPage,
	})
	if err != nil {
		if records, lerr := s.store.Load(region); lerr == nil {
			slog.Warn("fetch failed, serving stale snapshot",
				"region", region,
				"records", len(records),
				"err", err,
			)
			return buildTable(records), nil
		}
		span.SetStatus(codes.Error, "fetch failed with no snapshot to fall back on")
		return nil, fmt.Errorf("get college data for %q: %w", region, err)
	}

	if len(batch.Records) != batch.Total {
		slog.Warn("api total disagrees with records received",
			"region", region,
			"total", batch.Total,
			"received", len(batch.Records),
		)
	}

	path, err := s.store.Save(region, batch.Records)
	if err != nil {
		// a failed save only costs the next session a refetch
		slog.Warn("failed to save snapshot", "region", region, "err", err)
	} else {
		slog.DebugContext(ctx, "snapshot saved", "region", region, "path", path)
	}

	return buildTable(batch.Records), nil
}

// Refresh force-fetches a region, ignoring any fresh snapshot, and
// returns the number of records saved.
func (s Service) Refresh(ctx context.Context, region string) (int, error) {
	ctx, span := tracer.Start(ctx, "service:Refresh")
	defer span.End()

	batch, err := s.client.GetAllSchools(ctx, scorecard.Query{
		State:   region,
		PerPage: s.perPage,
	})
	if err != nil {
		span.SetStatus(codes.Error, "fetch failed")
		return 0, fmt.Errorf("refresh %q: %w", region, err)
	}

	_, err = s.store.Save(region, batch.Records)
	if err != nil {
		span.SetStatus(codes.Error, "save failed")
		return 0, err
	}
	return len(batch.Records), nil
}

// GetOccupationData loads the static occupational dataset.
func (s Service) GetOccupationData(path string) (*table.Table, error) {
	return occupation.Load(path)
}

func buildTable(records []scorecard.Record) *table.Table {
	return table.FromRecords(records, nil).Clean()
}

// EstimateInput is one student's situation as entered in the
// presentation layer.
type EstimateInput struct {
	TuitionPerPeriod     float64
	ScholarshipPerPeriod float64
	PeriodsRemaining     int
	AnnualRatePct        float64
	// repayment term; 0 skips the amortization
	TermYears int
}

type Estimate struct {
	NetPeriodCost float64
	Projection    loan.Projection
	// zero when no term was given
	MonthlyPayment float64
}

// EstimateDegreeCost nets scholarships against tuition, projects the
// total owed and, when a repayment term is given, the amortized
// monthly payment.
func (s Service) EstimateDegreeCost(in EstimateInput) (Estimate, error) {
	net := in.TuitionPerPeriod - in.ScholarshipPerPeriod
	projection := loan.Project(net, in.PeriodsRemaining, in.AnnualRatePct)

	est := Estimate{
		NetPeriodCost: net,
		Projection:    projection,
	}
	if in.TermYears > 0 {
		amort, err := loan.Amortize(projection.TotalOwed, in.AnnualRatePct, in.TermYears)
		if err != nil {
			return Estimate{}, err
		}
		est.MonthlyPayment = amort.MonthlyPayment
	}
	return est, nil
}
