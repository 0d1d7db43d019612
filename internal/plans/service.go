package plans

import (
	"context"
	"errors"

	"github.com/joeyShea/travel-map/internal/db"

	"github.com/jackc/pgx/v5"
)

// Plans is a traveler's saved-item list.
type Plans struct {
	SavedActivityIDs []int64 `json:"saved_activity_ids"`
	SavedLodgingIDs  []int64 `json:"saved_lodging_ids"`
}

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) UserPlans(ctx context.Context, userID int64) (Plans, error) {
	row := s.db.QueryRow(ctx, `
		SELECT COALESCE(saved_activity_ids, '{}'), COALESCE(saved_lodging_ids, '{}')
		FROM travelers WHERE user_id = $1
	`, userID)

	var p Plans
	if err := row.Scan(&p.SavedActivityIDs, &p.SavedLodgingIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyPlans(), nil
		}
		return Plans{}, err
	}
	return normalizePlans(p), nil
}

// ToggleActivity saves the activity if absent and removes it if present,
// as one conditional UPDATE so concurrent toggles never read stale state.
func (s *Service) ToggleActivity(ctx context.Context, userID, activityID int64) (Plans, error) {
	return s.toggle(ctx, `
		UPDATE travelers
		SET saved_activity_ids =
			CASE WHEN $2 = ANY(saved_activity_ids)
			     THEN array_remove(saved_activity_ids, $2)
			     ELSE array_append(saved_activity_ids, $2)
			END
		WHERE user_id = $1
		RETURNING COALESCE(saved_activity_ids, '{}'), COALESCE(saved_lodging_ids, '{}')
	`, userID, activityID)
}

// ToggleLodging is the lodging counterpart of ToggleActivity.
func (s *Service) ToggleLodging(ctx context.Context, userID, lodgeID int64) (Plans, error) {
	return s.toggle(ctx, `
		UPDATE travelers
		SET saved_lodging_ids =
			CASE WHEN $2 = ANY(saved_lodging_ids)
			     THEN array_remove(saved_lodging_ids, $2)
			     ELSE array_append(saved_lodging_ids, $2)
			END
		WHERE user_id = $1
		RETURNING COALESCE(saved_activity_ids, '{}'), COALESCE(saved_lodging_ids, '{}')
	`, userID, lodgeID)
}

func (s *Service) toggle(ctx context.Context, sql string, userID, itemID int64) (Plans, error) {
	row := s.db.QueryRow(ctx, sql, userID, itemID)

	var p Plans
	if err := row.Scan(&p.SavedActivityIDs, &p.SavedLodgingIDs); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyPlans(), nil
		}
		return Plans{}, err
	}
	return normalizePlans(p), nil
}

func emptyPlans() Plans {
	return Plans{SavedActivityIDs: []int64{}, SavedLodgingIDs: []int64{}}
}

func normalizePlans(p Plans) Plans {
	if p.SavedActivityIDs == nil {
		p.SavedActivityIDs = []int64{}
	}
	if p.SavedLodgingIDs == nil {
		p.SavedLodgingIDs = []int64{}
	}
	return p
}
