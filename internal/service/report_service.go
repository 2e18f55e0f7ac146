package service

import (
	"context"

	"github.com/spec-kit/diagnosis-service/internal/domain"
	"github.com/spec-kit/diagnosis-service/internal/events"
	"github.com/spec-kit/diagnosis-service/internal/repository"
	apperrors "github.com/spec-kit/diagnosis-service/pkg/util"
)

// ReportService manages ownership-scoped diagnosis reports. The owner
// id always comes from the authenticated principal, never from the
// request body.
type ReportService struct {
	reports    repository.ReportRepository
	dispatcher events.Dispatcher
}

// NewReportService builds the service.
func NewReportService(reports repository.ReportRepository, dispatcher events.Dispatcher) *ReportService {
	return &ReportService{reports: reports, dispatcher: dispatcher}
}

// Save stores a new report for the user and assigns the next sequence
// id within that user's collection.
func (s *ReportService) Save(ctx context.Context, userID string, payload map[string]any) (*domain.Report, error) {
	if len(payload) == 0 {
		return nil, apperrors.NewValidationError("report payload required", nil)
	}
	// Callers must not override the owner or the assigned id.
	delete(payload, "id")
	delete(payload, "user_id")

	report, err := s.reports.Create(ctx, userID, payload)
	if err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.New(events.EventReportCreated, userID, events.ReportCreatedPayload{
			ReportID: report.ID,
		}))
	}
	return report, nil
}

// List returns the user's reports in creation order.
func (s *ReportService) List(ctx context.Context, userID string) ([]domain.Report, error) {
	return s.reports.ListByUser(ctx, userID)
}
