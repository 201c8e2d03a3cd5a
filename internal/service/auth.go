package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"taskboard/internal/config"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const (
	// BCryptCost is the cost factor for bcrypt password hashing
	BCryptCost = 12

	maxDisplayNameLength = 100
	maxEmailLength       = 254
	minPasswordLength    = 8
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Claims are the bearer-token claims. Only the user id travels in the
// token; org and role are loaded per request so changes apply immediately.
type Claims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and token verification.
type AuthService struct {
	users  repository.IUserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(cfg *config.Config, users repository.IUserRepository) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(cfg.Auth.Secret),
		ttl:    time.Duration(cfg.Auth.TokenTTLHours) * time.Hour,
	}
}

// Register creates an account with no organization attached yet.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || len(email) > maxEmailLength || !emailRegex.MatchString(email) {
		return nil, fmt.Errorf("invalid email: %w", model.ErrValidation)
	}
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("password too short: %w", model.ErrValidation)
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		// Derive a display name from the email local part
		name = strings.SplitN(email, "@", 2)[0]
	}
	if len(name) > maxDisplayNameLength {
		return nil, fmt.Errorf("display name too long: %w", model.ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = model.RoleDesigner
	}
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q: %w", req.Role, model.ErrValidation)
	}

	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", model.ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &model.User{
		DisplayName:  name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(user)
}

// Login verifies credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, model.ErrUnauthorized
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *model.User) (*model.AuthResponse, error) {
	now := time.Now()
	expires := now.Add(s.ttl)
	claims := &Claims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &model.AuthResponse{User: user, Token: token, ExpiresAt: expires}, nil
}

// Verify parses a bearer token and loads the user it names.
func (s *AuthService) Verify(ctx context.Context, tokenString string) (*model.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, model.ErrUnauthorized
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, model.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUnauthorized
	}
	return user, nil
}
