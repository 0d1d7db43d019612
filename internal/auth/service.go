package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/joeyShea/travel-map/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	secret []byte
	db     db.Querier
	rdb    *redis.Client
}

type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

func NewService(secret string, db db.Querier, rdb *redis.Client) *Service {
	return &Service{
		secret: []byte(secret),
		db:     db,
		rdb:    rdb,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (User, TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return User{}, TokenResponse{}, errors.New("email and password are required")
	}
	if len(req.Password) < 8 {
		return User{}, TokenResponse{}, errors.New("password must be at least 8 characters")
	}

	var existing int64
	err := s.db.QueryRow(ctx, `SELECT user_id FROM travelers WHERE email = $1`, email).Scan(&existing)
	if err == nil {
		return User{}, TokenResponse{}, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return User{}, TokenResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, TokenResponse{}, err
	}

	user := User{Name: &name, Email: email}
	row := s.db.QueryRow(ctx, `
		INSERT INTO travelers (name, email, password_hash, verified)
		VALUES ($1,$2,$3,FALSE)
		RETURNING user_id
	`, name, email, string(hash))
	if err := row.Scan(&user.UserID); err != nil {
		return User{}, TokenResponse{}, err
	}

	tokens, err := s.GenerateTokens(ctx, user.UserID)
	if err != nil {
		return User{}, TokenResponse{}, err
	}
	return user, tokens, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (User, TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	row := s.db.QueryRow(ctx, `
		SELECT user_id, name, email, password_hash, bio, verified, college, profile_image_url
		FROM travelers WHERE email = $1
	`, email)

	var user User
	if err := row.Scan(&user.UserID, &user.Name, &user.Email, &user.PasswordHash, &user.Bio, &user.Verified, &user.College, &user.ProfileImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, TokenResponse{}, ErrInvalidCredentials
		}
		return User{}, TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return User{}, TokenResponse{}, ErrInvalidCredentials
	}

	tokens, err := s.GenerateTokens(ctx, user.UserID)
	if err != nil {
		return User{}, TokenResponse{}, err
	}
	return user, tokens, nil
}

func (s *Service) UserByID(ctx context.Context, userID int64) (User, error) {
	row := s.db.QueryRow(ctx, `
		SELECT user_id, name, email, bio, verified, college, profile_image_url
		FROM travelers WHERE user_id = $1
	`, userID)

	var user User
	if err := row.Scan(&user.UserID, &user.Name, &user.Email, &user.Bio, &user.Verified, &user.College, &user.ProfileImageURL); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Service) GenerateTokens(ctx context.Context, userID int64) (TokenResponse, error) {
	access, err := s.signToken(userID, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	refresh, err := s.signToken(userID, refreshTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}

	if err := s.saveRefreshToken(ctx, refresh, userID, refreshTokenTTL); err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateRefreshToken(ctx context.Context, token string) (int64, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return 0, err
	}

	if s.rdb != nil {
		revoked, err := s.rdb.Exists(ctx, revocationKey(token)).Result()
		if err == nil && revoked > 0 {
			return 0, errors.New("refresh token invalid")
		}
	}

	userID, expiresAt, err := s.lookupRefreshToken(ctx, token)
	if err != nil || userID != claims.UserID || time.Now().After(expiresAt) {
		return 0, errors.New("refresh token invalid")
	}
	return claims.UserID, nil
}

// RevokeRefreshToken marks the token revoked in Postgres and, when redis
// is configured, in the revocation set so the row lookup can be skipped.
func (s *Service) RevokeRefreshToken(ctx context.Context, token string) error {
	if _, err := s.db.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = NOW()
		WHERE token = $1 AND revoked_at IS NULL
	`, token); err != nil {
		return err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, revocationKey(token), "1", refreshTokenTTL).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) ValidateAccessToken(token string) (int64, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func (s *Service) signToken(userID int64, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}

func (s *Service) saveRefreshToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at)
		VALUES ($1,$2,$3,$4)
	`, uuid.NewString(), userID, token, time.Now().Add(ttl))
	return err
}

func (s *Service) lookupRefreshToken(ctx context.Context, token string) (int64, time.Time, error) {
	row := s.db.QueryRow(ctx, `
		SELECT user_id, expires_at
		FROM refresh_tokens
		WHERE token = $1 AND revoked_at IS NULL
	`, token)
	var userID int64
	var expiresAt time.Time
	if err := row.Scan(&userID, &expiresAt); err != nil {
		return 0, time.Time{}, err
	}
	return userID, expiresAt, nil
}

func revocationKey(token string) string {
	return "auth:revoked:" + token
}
