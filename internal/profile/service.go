package profile

import (
	"context"
	"fmt"

	"github.com/bandseeking/bandseeking-go/internal/domain"
	"go.uber.org/zap"
)

// LocationResolver is the part of the location resolver the report needs.
type LocationResolver interface {
	ResolveWait(ctx context.Context, code string) string
}

type Service struct {
	repo       Repository
	locations  LocationResolver
	encourager *Encourager
	logger     *zap.Logger
}

func NewService(repo Repository, locations LocationResolver, encourager *Encourager, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		locations:  locations,
		encourager: encourager,
		logger:     logger,
	}
}

// Report loads the profile for username and summarizes its completion.
func (s *Service) Report(ctx context.Context, username string) (*domain.CompletionReport, error) {
	p, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", username, err)
	}
	return s.Build(ctx, p), nil
}

// Build summarizes a profile that is already in hand.
func (s *Service) Build(ctx context.Context, p *domain.Profile) *domain.CompletionReport {
	if p == nil {
		p = &domain.Profile{}
	}

	completion := Score(p)
	report := &domain.CompletionReport{
		Username:   p.Username,
		Completion: completion,
		Message:    CompletionMessage(completion.Percentage),
		Location:   p.ZipCode,
	}
	if completion.Percentage < 100 {
		report.Encouragement = s.encourager.Pick()
	}
	if s.locations != nil {
		report.Location = s.locations.ResolveWait(ctx, p.ZipCode)
	}

	s.logger.Debug("Profile completion scored",
		zap.String("username", p.Username),
		zap.Int("percentage", completion.Percentage),
		zap.Bool("using_defaults", completion.IsUsingDefaults),
	)
	return report
}
