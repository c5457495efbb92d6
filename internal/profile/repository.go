package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"strings"

	"github.com/bandseeking/bandseeking-go/internal/domain"
	"github.com/bandseeking/bandseeking-go/internal/service/database"
	"github.com/bandseeking/bandseeking-go/pkg/errors"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Repository is read-only access to hosted profile rows.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Profile, error)
}

type PostgresRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresRepository(postgres *database.PostgresService, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

const profileColumns = `
	id, username, display_name, profile_type, profile_image_url, bio, zip_code,
	primary_instrument, secondary_instruments, social_links, created_at, updated_at`

// FindByUsername returns a NotFoundError when no row matches.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	query := `SELECT` + profileColumns + `
		FROM profiles
		WHERE lower(username) = lower($1)
		LIMIT 1
	`
	return r.queryOne(ctx, strings.TrimSpace(username), query)
}

func (r *PostgresRepository) queryOne(ctx context.Context, key, query string) (*domain.Profile, error) {
	var (
		profile         domain.Profile
		displayName     sql.NullString
		profileType     sql.NullString
		imageURL        sql.NullString
		bio             sql.NullString
		zipCode         sql.NullString
		primary         sql.NullString
		secondary       []sql.NullString
		socialLinksJSON []byte
		createdAt       sql.NullTime
		updatedAt       sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&profile.ID, &profile.Username, &displayName, &profileType, &imageURL, &bio, &zipCode,
		&primary, pq.Array(&secondary), &socialLinksJSON, &createdAt, &updatedAt,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("profile", key)
	}
	if err != nil {
		return nil, errors.NewServiceError("failed to query profile", "postgres", "find_profile", err)
	}

	profile.DisplayName = displayName.String
	profile.ProfileType = domain.ProfileType(profileType.String)
	profile.ProfileImageURL = imageURL.String
	profile.Bio = bio.String
	profile.ZipCode = zipCode.String
	profile.PrimaryInstrument = primary.String
	profile.CreatedAt = createdAt.Time
	profile.UpdatedAt = updatedAt.Time

	profile.SecondaryInstruments = make([]string, 0, len(secondary))
	for _, instrument := range secondary {
		if instrument.Valid && instrument.String != "" {
			profile.SecondaryInstruments = append(profile.SecondaryInstruments, instrument.String)
		}
	}

	profile.SocialLinks = decodeSocialLinks(socialLinksJSON, r.logger)
	return &profile, nil
}

// decodeSocialLinks returns the jsonb object as decoded. Whether a value
// counts as a link is up to the scorer.
func decodeSocialLinks(data []byte, logger *zap.Logger) map[string]any {
	links := map[string]any{}
	if len(data) == 0 {
		return links
	}

	if err := json.Unmarshal(data, &links); err != nil {
		logger.Warn("Ignoring malformed social_links", zap.Error(err))
		return map[string]any{}
	}
	if links == nil {
		return map[string]any{}
	}
	return links
}
