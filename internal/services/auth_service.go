package services

import (
	"context"
	"github.com/maxaizer/hirenearby/internal/apperrors"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/maxaizer/hirenearby/internal/logger"
	"github.com/maxaizer/hirenearby/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"strings"
)

type usersRepository interface {
	Add(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, user models.User) (*models.User, error)
}

type SignupInput struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8,max=72"`
	Location string   `json:"location" validate:"max=200"`
	Skills   []string `json:"skills" validate:"max=50,dive,max=50"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileInput struct {
	Name           string   `json:"name" validate:"required,max=100"`
	Location       string   `json:"location" validate:"max=200"`
	Skills         []string `json:"skills" validate:"max=50,dive,max=50"`
	TelegramChatID *int64   `json:"telegramChatId"`
}

type AuthResult struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

var errInvalidCredentials = apperrors.NewAuthenticationError("invalid email or password")

type AuthService struct {
	users      usersRepository
	tokens     *TokenIssuer
	bcryptCost int
}

func NewAuthService(users usersRepository, tokens *TokenIssuer, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			metrics.LoginAttemptsCounter.WithLabelValues("unknown_email").Inc()
			return nil, errInvalidCredentials
		}
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load user for login: %v", err)
		return nil, err
	}

	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		metrics.LoginAttemptsCounter.WithLabelValues("wrong_password").Inc()
		return nil, errInvalidCredentials
	}

	metrics.LoginAttemptsCounter.WithLabelValues("success").Inc()
	return s.authenticate(user)
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = models.NormalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	hash, err := HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(input.Name, input.Email, hash, strings.TrimSpace(input.Location), input.Skills)
	if err = s.users.Add(ctx, user); err != nil {
		if !apperrors.IsDomain(err) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to add user: %v", err)
		}
		return nil, err
	}

	log.Infof("user %s signed up", user.ID)
	return s.authenticate(user)
}

// GetUserByToken resolves the user a token was issued to.
func (s *AuthService) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAuthenticationError("invalid or expired token")
		}
		return nil, err
	}

	redacted := user.Redacted()
	return &redacted, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Location = strings.TrimSpace(input.Location)
	user.Skills = models.NormalizeSkills(input.Skills)
	user.TelegramChatID = input.TelegramChatID

	updated, err := s.users.UpdateProfile(ctx, *user)
	if err != nil {
		return nil, err
	}

	redacted := updated.Redacted()
	return &redacted, nil
}

func (s *AuthService) authenticate(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Redacted(), Token: token}, nil
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
