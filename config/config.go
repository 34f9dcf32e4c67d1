package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Upload       Upload
	JWT          JWT
	GeminiApiKey string

	// CascadeQuizResults controls whether deleting a syllabus also removes
	// quiz results and feedback tied to its quizzes, instead of only the
	// quizzes themselves.
	CascadeQuizResults bool
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Upload struct {
	Dir         string
	FallbackDir string
}

type JWT struct {
	SecretKey     string
	ExpireMinutes int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("UPLOAD_FALLBACK_DIR", "/tmp/uploads")
	viper.SetDefault("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 30)
	viper.SetDefault("CASCADE_QUIZ_RESULTS", false)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Upload.Dir = viper.GetString("UPLOAD_DIR")
	config.Upload.FallbackDir = viper.GetString("UPLOAD_FALLBACK_DIR")

	config.JWT.SecretKey = viper.GetString("JWT_SECRET_KEY")
	config.JWT.ExpireMinutes = viper.GetInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.CascadeQuizResults = viper.GetBool("CASCADE_QUIZ_RESULTS")

	log.Info().Str("port", config.Server.Port).Str("database", config.Database.Name).Msg("Config loaded")
	return &config, nil
}
