package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/lshigami/analyquiz/config"
	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/dto"
	"github.com/lshigami/analyquiz/internal/model"
	"github.com/lshigami/analyquiz/internal/repository"
)

// defaultTokenTTL applies when a token is issued without an explicit expiry.
const defaultTokenTTL = 15 * time.Minute

// AuthService handles signup, login and bearer token validation. Tokens are
// HS256 JWTs with the user's email as subject.
type AuthService interface {
	Signup(req dto.SignupRequest) (*dto.TokenResponse, error)
	Login(req dto.LoginRequest) (*dto.TokenResponse, error)
	// ValidateToken returns the user identified by the token's subject.
	ValidateToken(tokenString string) (*model.User, error)
	// CreateAccessToken issues a token for subject; ttl <= 0 means the
	// 15 minute default.
	CreateAccessToken(subject string, ttl time.Duration) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Signup(req dto.SignupRequest) (*dto.TokenResponse, error) {
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, apperror.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hash),
		Name:     req.Name,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Signup: failed to create user")
		return nil, err
	}

	return s.tokenResponse(&user)
}

func (s *authService) Login(req dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	return s.tokenResponse(user)
}

func (s *authService) tokenResponse(user *model.User) (*dto.TokenResponse, error) {
	ttl := time.Duration(s.cfg.JWT.ExpireMinutes) * time.Minute
	token, err := s.CreateAccessToken(user.Email, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}

	var userResp dto.UserResponse
	if err := copier.Copy(&userResp, user); err != nil {
		return nil, fmt.Errorf("error preparing user response: %w", err)
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: "bearer", User: userResp}, nil
}

func (s *authService) CreateAccessToken(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().UTC().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}

func (s *authService) ValidateToken(tokenString string) (*model.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.FindByEmail(claims.Subject)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return user, nil
}
