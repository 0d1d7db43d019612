package profile

import (
	"context"
	"errors"
	"strings"

	"github.com/joeyShea/travel-map/internal/db"
	"github.com/joeyShea/travel-map/internal/trip"

	"github.com/jackc/pgx/v5"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrBadAccountType = errors.New("account_type must be student or traveler")
)

// User is a traveler's profile as seen on profile pages. Email is
// included here because the profile surface is the account's own view.
type User struct {
	UserID          int64   `json:"user_id"`
	Name            *string `json:"name"`
	Email           string  `json:"email"`
	Bio             *string `json:"bio"`
	Verified        bool    `json:"verified"`
	College         *string `json:"college"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// CompactTrip is the trimmed trip entry embedded in a public profile.
type CompactTrip struct {
	TripID       int64    `json:"trip_id"`
	Title        string   `json:"title"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	Date         *string  `json:"date"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

type SetupRequest struct {
	AccountType     string `json:"account_type"`
	Bio             string `json:"bio"`
	College         string `json:"college"`
	ProfileImageURL string `json:"profile_image_url"`
}

type Service struct {
	db    db.Querier
	trips *trip.Service
}

func NewService(db db.Querier, trips *trip.Service) *Service {
	return &Service{db: db, trips: trips}
}

// Setup applies the one-time profile form. A student account type marks
// the traveler verified.
func (s *Service) Setup(ctx context.Context, userID int64, req SetupRequest) (User, error) {
	accountType := strings.TrimSpace(req.AccountType)
	if accountType == "" {
		accountType = "traveler"
	}
	if accountType != "student" && accountType != "traveler" {
		return User{}, ErrBadAccountType
	}

	row := s.db.QueryRow(ctx, `
		UPDATE travelers
		SET bio = $2, college = $3, profile_image_url = $4, verified = $5
		WHERE user_id = $1
		RETURNING user_id, name, email, bio, verified, college, profile_image_url
	`, userID, nullable(req.Bio), nullable(req.College), nullable(req.ProfileImageURL), accountType == "student")

	var user User
	if err := row.Scan(&user.UserID, &user.Name, &user.Email, &user.Bio, &user.Verified, &user.College, &user.ProfileImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return user, nil
}

// Profile returns a traveler plus compact entries for the trips the
// viewer is allowed to see.
func (s *Service) Profile(ctx context.Context, userID, viewerID int64) (User, []CompactTrip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT user_id, name, email, bio, verified, college, profile_image_url
		FROM travelers WHERE user_id = $1
	`, userID)

	var user User
	if err := row.Scan(&user.UserID, &user.Name, &user.Email, &user.Bio, &user.Verified, &user.College, &user.ProfileImageURL); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, nil, ErrUserNotFound
		}
		return User{}, nil, err
	}

	trips, err := s.trips.ListUserTrips(ctx, userID, viewerID)
	if err != nil {
		return User{}, nil, err
	}

	entries := make([]CompactTrip, 0, len(trips))
	for _, t := range trips {
		entries = append(entries, CompactTrip{
			TripID:       t.TripID,
			Title:        t.Title,
			ThumbnailURL: t.ThumbnailURL,
			Date:         t.Date,
			Latitude:     t.Latitude,
			Longitude:    t.Longitude,
		})
	}
	return user, entries, nil
}

func (s *Service) MyTrips(ctx context.Context, userID int64) ([]trip.Trip, error) {
	return s.trips.ListUserTrips(ctx, userID, userID)
}

func nullable(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
