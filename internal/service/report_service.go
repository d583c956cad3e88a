package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/api/request"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/apperrors"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/engine"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/model"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/report"
	"github.com/amcapital/Rental-Investment-Simulator-Backend/internal/validation"
)

// DefaultReportTokenTTL applies when no positive TTL is configured.
const DefaultReportTokenTTL = 24 * time.Hour

// ReportService seals simulation requests into shareable tokens and renders
// PDF reports from them.
type ReportService struct {
	simulations *SimulationService
	reference   *ReferenceService
	key         *fernet.Key
	ttl         time.Duration
	logger      *slog.Logger
}

// NewReportService creates a new ReportService. An empty encodedKey generates
// an ephemeral key, so tokens do not survive a restart.
func NewReportService(simulations *SimulationService, reference *ReferenceService, encodedKey string, ttl time.Duration, logger *slog.Logger) (*ReportService, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "report")

	var key *fernet.Key
	if encodedKey == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate report key: %w", err)
		}
		logger.Warn("REPORT_FERNET_KEY not set, using an ephemeral key")
	} else {
		decoded, err := fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode report key: %w", err)
		}
		key = decoded
	}

	if ttl <= 0 {
		ttl = DefaultReportTokenTTL
	}

	return &ReportService{
		simulations: simulations,
		reference:   reference,
		key:         key,
		ttl:         ttl,
		logger:      logger,
	}, nil
}

// TokenTTL is how long issued tokens stay valid.
func (s *ReportService) TokenTTL() time.Duration {
	return s.ttl
}

// IssueToken validates req and seals it into an opaque token.
func (s *ReportService) IssueToken(req request.SimulationRequest) (string, error) {
	if err := validation.ValidateSimulationConfig(req.Config()); err != nil {
		return "", err
	}
	if _, err := req.DecodeMarketData(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode report request: %w", err)
	}
	tok, err := fernet.EncryptAndSign(payload, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to seal report token: %w", err)
	}
	return string(tok), nil
}

// OpenToken verifies a token issued by IssueToken within the TTL and returns
// the sealed request.
func (s *ReportService) OpenToken(token string) (request.SimulationRequest, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), s.ttl, []*fernet.Key{s.key})
	if payload == nil {
		return request.SimulationRequest{}, apperrors.ErrInvalidReportToken
	}

	var req request.SimulationRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return request.SimulationRequest{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidReportToken, err)
	}
	return req, nil
}

// BuildReport simulates req and gathers everything the PDF prints.
func (s *ReportService) BuildReport(ctx context.Context, req request.SimulationRequest) (report.Document, error) {
	data, err := req.DecodeMarketData()
	if err != nil {
		return report.Document{}, err
	}

	cfg := req.Config()
	rep, err := s.simulations.Simulate(ctx, SimulateInput{
		Config:          cfg,
		MarketData:      data,
		FetchMarketData: req.FetchMarketData,
	})
	if err != nil {
		return report.Document{}, err
	}

	loanAmount, payment := s.simulations.Financing(cfg)
	return report.Document{
		Report:      rep,
		CityName:    s.reference.DisplayName(cfg.City),
		Advice:      engine.DetailedAdvice(cfg.ExploitationMode, rep.Result),
		Fees:        s.reference.Fees(),
		LoanAmount:  loanAmount,
		LoanPayment: payment,
	}, nil
}

// RenderPDF writes the PDF report for req to w and returns the report that was rendered.
func (s *ReportService) RenderPDF(ctx context.Context, w io.Writer, req request.SimulationRequest) (model.SimulationReport, error) {
	doc, err := s.BuildReport(ctx, req)
	if err != nil {
		return model.SimulationReport{}, err
	}
	if err := report.Render(w, doc); err != nil {
		s.logger.ErrorContext(ctx, "pdf rendering failed", "reportId", doc.Report.ReportID, "error", err)
		return model.SimulationReport{}, err
	}
	s.logger.InfoContext(ctx, "pdf report rendered", "reportId", doc.Report.ReportID, "city", doc.CityName)
	return doc.Report, nil
}
