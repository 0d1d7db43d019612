package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/joeyShea/travel-map/internal/trip"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
)

var travelerCols = []string{"user_id", "name", "email", "bio", "verified", "college", "profile_image_url"}

var tripCols = []string{
	"trip_id", "thumbnail_url", "title", "description",
	"latitude", "longitude", "cost", "duration", "date",
	"visibility", "owner_user_id",
	"name", "bio", "verified", "college", "profile_image_url",
}

func strPtr(s string) *string { return &s }
func noStr() *string          { return nil }
func noF64() *float64         { return nil }

func travelerRow() *pgxmock.Rows {
	return pgxmock.NewRows(travelerCols).
		AddRow(int64(7), strPtr("Joey"), "joey@example.com", strPtr("around the world"), true, strPtr("KU Leuven"), noStr())
}

func expectEmptyHydration(mock pgxmock.PgxPoolIface, tripID int64) {
	mock.ExpectQuery(`FROM trip_tags`).
		WithArgs([]int64{tripID}).
		WillReturnRows(pgxmock.NewRows([]string{"trip_id", "tag"}))
	mock.ExpectQuery(`FROM lodgings`).
		WithArgs([]int64{tripID}).
		WillReturnRows(pgxmock.NewRows([]string{"lodge_id", "trip_id", "address", "thumbnail_url", "title", "description", "latitude", "longitude", "cost"}))
	mock.ExpectQuery(`FROM activities`).
		WithArgs([]int64{tripID}).
		WillReturnRows(pgxmock.NewRows([]string{"activity_id", "trip_id", "address", "thumbnail_url", "title", "location", "description", "latitude", "longitude", "cost"}))
	mock.ExpectQuery(`FROM comments`).
		WithArgs([]int64{tripID}).
		WillReturnRows(pgxmock.NewRows([]string{"comment_id", "user_id", "trip_id", "body", "created_at", "name"}))
}

func TestSetup(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE travelers`).
		WithArgs(int64(7), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), true).
		WillReturnRows(travelerRow())

	svc := NewService(mock, trip.NewService(mock))
	user, err := svc.Setup(context.Background(), 7, SetupRequest{
		AccountType: "student",
		Bio:         "around the world",
		College:     "KU Leuven",
	})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if !user.Verified {
		t.Fatalf("expected student account to be verified")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetupDefaultsToTraveler(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE travelers`).
		WithArgs(int64(7), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), false).
		WillReturnRows(pgxmock.NewRows(travelerCols).
			AddRow(int64(7), strPtr("Joey"), "joey@example.com", noStr(), false, noStr(), noStr()))

	svc := NewService(mock, trip.NewService(mock))
	user, err := svc.Setup(context.Background(), 7, SetupRequest{})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if user.Verified {
		t.Fatalf("expected unverified traveler")
	}
}

func TestSetupBadAccountType(t *testing.T) {
	svc := NewService(nil, nil)
	_, err := svc.Setup(context.Background(), 7, SetupRequest{AccountType: "admin"})
	if !errors.Is(err, ErrBadAccountType) {
		t.Fatalf("expected bad account type, got %v", err)
	}
}

func TestSetupUserNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`UPDATE travelers`).
		WithArgs(int64(404), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), false).
		WillReturnError(pgx.ErrNoRows)

	svc := NewService(mock, trip.NewService(mock))
	if _, err := svc.Setup(context.Background(), 404, SetupRequest{}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT user_id, name, email, bio, verified`).
		WithArgs(int64(7)).
		WillReturnRows(travelerRow())

	// An anonymous viewer gets the public subset of the user's trips.
	mock.ExpectQuery(`AND t\.visibility = 'public'`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(tripCols).AddRow(
			int64(42), noStr(), "Iceland", noStr(),
			noF64(), noF64(), noF64(), trip.DurationMultiday, strPtr("2024-03"),
			trip.VisibilityPublic, int64(7),
			strPtr("Joey"), noStr(), true, noStr(), noStr(),
		))
	expectEmptyHydration(mock, 42)

	svc := NewService(mock, trip.NewService(mock))
	user, trips, err := svc.Profile(context.Background(), 7, 0)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if user.UserID != 7 {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(trips) != 1 || trips[0].Title != "Iceland" || trips[0].Date == nil || *trips[0].Date != "2024-03" {
		t.Fatalf("unexpected compact trips: %+v", trips)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProfileUserNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT user_id, name, email, bio, verified`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	svc := NewService(mock, trip.NewService(mock))
	if _, _, err := svc.Profile(context.Background(), 404, 0); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestMyTrips(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	// Owner listing includes non-public trips.
	mock.ExpectQuery(`t\.owner_user_id = \$1\s+ORDER BY`).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows(tripCols).AddRow(
			int64(9), noStr(), "Secret", noStr(),
			noF64(), noF64(), noF64(), trip.DurationMultiday, noStr(),
			trip.VisibilityPrivate, int64(7),
			strPtr("Joey"), noStr(), true, noStr(), noStr(),
		))
	expectEmptyHydration(mock, 9)

	svc := NewService(mock, trip.NewService(mock))
	trips, err := svc.MyTrips(context.Background(), 7)
	if err != nil {
		t.Fatalf("my trips: %v", err)
	}
	if len(trips) != 1 || trips[0].Visibility != trip.VisibilityPrivate {
		t.Fatalf("unexpected trips: %+v", trips)
	}
}
