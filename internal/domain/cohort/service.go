package cohort

import (
	"context"
	"time"
)

// Service translates day-count windows into absolute date bounds and runs the
// cohort queries. Each operation captures "now" once so that every date
// comparison inside a single logical query agrees on the reference time.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// UpcomingAppointments returns distinct patient IDs with an appointment
// scheduled in the next withinDays days. Day counts must be non-negative;
// negative values are a caller error and are not validated here.
func (s *Service) UpcomingAppointments(ctx context.Context, withinDays int) ([]int, error) {
	now := s.now()
	return s.repo.UpcomingAppointmentPatientIDs(ctx, now, now.AddDate(0, 0, withinDays))
}

// MissedAppointments returns distinct patient IDs whose appointment date
// passed within the last lastDays days with no reconciling visit since.
func (s *Service) MissedAppointments(ctx context.Context, lastDays int) ([]int, error) {
	now := s.now()
	return s.repo.MissedAppointmentPatientIDs(ctx, now.AddDate(0, 0, -lastDays), now)
}

// TreatmentInterruptions returns distinct patient IDs at risk of interruption
// in treatment: due back within the lookback window, not returned, and with
// no recorded discontinuation.
func (s *Service) TreatmentInterruptions(ctx context.Context, lookbackDays int) ([]int, error) {
	now := s.now()
	return s.repo.TreatmentInterruptionPatientIDs(ctx, now.AddDate(0, 0, -lookbackDays), now)
}

// ClientEffort returns the outreach history for one patient, newest first.
// A non-positive patient ID yields an empty list, never an error.
func (s *Service) ClientEffort(ctx context.Context, patientID int) ([]ClientEffortEntry, error) {
	if patientID <= 0 {
		return []ClientEffortEntry{}, nil
	}
	entries, err := s.repo.ClientEffort(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []ClientEffortEntry{}
	}
	return entries, nil
}
