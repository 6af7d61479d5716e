package services

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"files-manager/internal/cache"
	"files-manager/internal/dto"
	"files-manager/internal/models"
)

var (
	// ErrUnauthorized covers missing, malformed or revoked credentials.
	ErrUnauthorized    = errors.New("Unauthorized")
	ErrMissingEmail    = errors.New("Missing email")
	ErrMissingPassword = errors.New("Missing password")
	ErrAlreadyExist    = errors.New("Already exist")
)

const sessionTTL = 24 * time.Hour

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type SessionStore interface {
	SaveSession(ctx context.Context, token, userID string, ttl time.Duration) error
	UserIDByToken(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
}

func NewAuthService(users UserStore, sessions SessionStore) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*models.User, error) {
	if req.Email == "" {
		return nil, ErrMissingEmail
	}
	if req.Password == "" {
		return nil, ErrMissingPassword
	}

	if _, err := s.users.UserByEmail(ctx, req.Email); err == nil {
		return nil, ErrAlreadyExist
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashPassword(req.Password),
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.ID = id

	return user, nil
}

// Login checks a Basic auth header value, and on success mints a session
// token valid for 24 hours.
func (s *AuthService) Login(ctx context.Context, authHeader string) (string, error) {
	email, password, ok := decodeBasicAuth(authHeader)
	if !ok {
		return "", ErrUnauthorized
	}

	user, err := s.users.UserByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Password != hashPassword(password) {
		return "", ErrUnauthorized
	}

	token := uuid.NewString()
	if err := s.sessions.SaveSession(ctx, token, user.ID.Hex(), sessionTTL); err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}

	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return ErrUnauthorized
	}
	if _, err := s.sessions.UserIDByToken(ctx, token); err != nil {
		if errors.Is(err, cache.ErrSessionNotFound) {
			return ErrUnauthorized
		}
		return fmt.Errorf("failed to read session: %w", err)
	}
	if err := s.sessions.DeleteSession(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ResolveSession maps a token to the id of the user who owns it. Every
// protected endpoint calls this first.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (primitive.ObjectID, error) {
	if token == "" {
		return primitive.NilObjectID, ErrUnauthorized
	}

	userID, err := s.sessions.UserIDByToken(ctx, token)
	if errors.Is(err, cache.ErrSessionNotFound) {
		return primitive.NilObjectID, ErrUnauthorized
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to read session: %w", err)
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, ErrUnauthorized
	}
	return id, nil
}

func (s *AuthService) UserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.users.UserByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func decodeBasicAuth(header string) (email, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}

func hashPassword(password string) string {
	digest := sha1.Sum([]byte(password))
	return hex.EncodeToString(digest[:])
}
