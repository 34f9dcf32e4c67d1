package database

import (
	"fmt"

	"github.com/lshigami/analyquiz/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase opens the postgres connection used by every repository. The
// handle is provided through fx and injected where needed; nothing holds it
// as package state.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name)

	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Info().Str("host", cfg.Database.Host).Str("name", cfg.Database.Name).Msg("Database connection established")
	return db, nil
}

// gormConfig is the connection configuration for every environment.
// TranslateError must stay on: the repositories match on gorm.ErrDuplicatedKey
// to surface unique index violations, which the driver only produces when
// translation is enabled.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}
