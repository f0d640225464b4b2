package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/minsu/dormisphere/internal/app/models"
	appRepos "github.com/minsu/dormisphere/internal/app/repositories"
	"github.com/minsu/dormisphere/internal/config"
)

// CreateDefaultData seeds the default staff account when one is configured.
// The external id must be the provider subject of the staff account, so the
// seeded row is picked up at first login.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.Seed.StaffEmail == "" || cfg.Seed.StaffExternalID == "" {
		lgr.Debug().Msg("No staff account configured for seeding, skipping")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	name := cfg.Seed.StaffName
	if name == "" {
		name = "Dormitory Staff"
	}

	staff := &appModels.User{
		ExternalID: cfg.Seed.StaffExternalID,
		Email:      cfg.Seed.StaffEmail,
		Name:       name,
		RoleType:   appModels.RoleTeacher,
	}

	_, err := userRepo.CreateUser(ctx, staff)
	if err != nil {
		if errors.Is(err, appRepos.ErrDuplicate) {
			lgr.Debug().Str("email", cfg.Seed.StaffEmail).Msg("Staff account already exists, skipping")
			return nil
		}
		lgr.Error().Err(err).Msg("Error creating default staff account")
		return err
	}

	lgr.Info().Str("email", cfg.Seed.StaffEmail).Msg("Default staff account created")
	return nil
}
