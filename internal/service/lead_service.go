package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/request"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/validation"
)

// LeadPublisher hands a validated lead to the sales pipeline.
type LeadPublisher interface {
	Publish(ctx context.Context, lead model.Lead) error
}

// LeadService validates contact-form submissions and publishes them.
type LeadService struct {
	publisher LeadPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewLeadService creates a new LeadService
func NewLeadService(publisher LeadPublisher, logger *slog.Logger) *LeadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadService{
		publisher: publisher,
		logger:    logger.With("component", "leads"),
		now:       time.Now,
	}
}

// Submit validates req, assigns an ID and timestamp, and publishes the lead.
// Returns a *validation.Error for invalid submissions and wraps
// apperrors.ErrLeadPublishFailed when the hand-off fails.
func (s *LeadService) Submit(ctx context.Context, req request.ContactRequest) (model.Lead, error) {
	if err := validation.ValidateContact(req); err != nil {
		return model.Lead{}, err
	}

	lead := model.Lead{
		ID:          uuid.New().String(),
		ReceivedAt:  s.now().UTC(),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       strings.TrimSpace(req.Phone),
		Message:     strings.TrimSpace(req.Message),
		ProjectType: model.ProjectType(strings.ToLower(strings.TrimSpace(req.ProjectType))),
		Budget:      strings.TrimSpace(req.Budget),
		Timeline:    strings.TrimSpace(req.Timeline),
	}
	if lead.ProjectType == "" {
		lead.ProjectType = model.ProjectInvestment
	}
	if req.Simulation != nil {
		cfg := req.Simulation.Config()
		lead.Simulation = &cfg
	}

	if err := s.publisher.Publish(ctx, lead); err != nil {
		s.logger.ErrorContext(ctx, "lead hand-off failed", "leadId", lead.ID, "error", err)
		return model.Lead{}, fmt.Errorf("%w: %v", apperrors.ErrLeadPublishFailed, err)
	}

	s.logger.InfoContext(ctx, "lead received", "leadId", lead.ID, "projectType", lead.ProjectType)
	return lead, nil
}
