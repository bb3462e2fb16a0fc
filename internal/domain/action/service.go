package action

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrPatientRequired = errors.New("action requires a patient id")

// Service manages the follow-up action ledger. It enforces the two write
// preconditions (an action belongs to a patient, a status update names an
// action) and leaves list ordering to the store.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create records a new follow-up action. The status defaults to PENDING when
// the caller leaves it blank. The stored ID, status and creation time are
// written back into a.
func (s *Service) Create(ctx context.Context, a *Action) error {
	if a.PatientID <= 0 {
		return ErrPatientRequired
	}
	a.Status = strings.TrimSpace(a.Status)
	if err := s.repo.Insert(ctx, a); err != nil {
		return fmt.Errorf("insert action: %w", err)
	}
	return nil
}

// ListPending returns every action still awaiting follow-up, newest first.
func (s *Service) ListPending(ctx context.Context) ([]Action, error) {
	actions, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if actions == nil {
		actions = []Action{}
	}
	return actions, nil
}

// ListForPatient returns a patient's actions, newest first, optionally
// restricted to the pending ones.
func (s *Service) ListForPatient(ctx context.Context, patientID int, pendingOnly bool) ([]Action, error) {
	var (
		actions []Action
		err     error
	)
	if pendingOnly {
		actions, err = s.repo.ListPendingForPatient(ctx, patientID)
	} else {
		actions, err = s.repo.ListAllForPatient(ctx, patientID)
	}
	if err != nil {
		return nil, err
	}
	if actions == nil {
		actions = []Action{}
	}
	return actions, nil
}

// UpdateStatus sets an action's workflow status. An unknown action ID is a
// no-op, matching the store's zero-row update semantics.
func (s *Service) UpdateStatus(ctx context.Context, actionID int, status string) error {
	if actionID <= 0 {
		return errors.New("action id is required")
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return errors.New("status is required")
	}
	return s.repo.UpdateStatus(ctx, actionID, status)
}

// Complete marks an action COMPLETED.
func (s *Service) Complete(ctx context.Context, actionID int) error {
	return s.UpdateStatus(ctx, actionID, StatusCompleted)
}
