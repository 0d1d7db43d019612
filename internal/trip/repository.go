package trip

import (
	"context"
	"fmt"

	"github.com/joeyShea/travel-map/internal/db"

	"github.com/shopspring/decimal"
)

// NewTrip carries validated trip fields into the write path.
type NewTrip struct {
	ThumbnailURL *string
	Title        string
	Description  *string
	Latitude     decimal.NullDecimal
	Longitude    decimal.NullDecimal
	Cost         decimal.NullDecimal
	Duration     string
	Date         *string
	Visibility   string
	OwnerUserID  int64
}

// NewPlace carries validated lodging/activity fields. Location is only
// persisted for activities.
type NewPlace struct {
	Address      *string
	ThumbnailURL *string
	Title        *string
	Location     *string
	Description  *string
	Latitude     decimal.NullDecimal
	Longitude    decimal.NullDecimal
	Cost         decimal.NullDecimal
}

type Repository struct {
	db db.Querier
}

func NewRepository(db db.Querier) *Repository {
	return &Repository{db: db}
}

const tripBaseQuery = `
	SELECT
		t.trip_id, t.thumbnail_url, t.title, t.description,
		t.latitude, t.longitude, t.cost, t.duration, t.date,
		t.visibility, t.owner_user_id,
		o.name, o.bio, o.verified, o.college, o.profile_image_url
	FROM trips t
	JOIN travelers o ON o.user_id = t.owner_user_id
	WHERE %s
	ORDER BY t.trip_id DESC
`

// TripRows fetches trip base records matching the where clause, each with
// the owner's public profile attached and empty child collections.
func (r *Repository) TripRows(ctx context.Context, where string, args ...any) ([]Trip, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(tripBaseQuery, where), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		t := Trip{
			Tags:       []string{},
			Lodgings:   []Lodging{},
			Activities: []Activity{},
			Comments:   []Comment{},
		}
		if err := rows.Scan(
			&t.TripID, &t.ThumbnailURL, &t.Title, &t.Description,
			&t.Latitude, &t.Longitude, &t.Cost, &t.Duration, &t.Date,
			&t.Visibility, &t.OwnerUserID,
			&t.Owner.Name, &t.Owner.Bio, &t.Owner.Verified, &t.Owner.College, &t.Owner.ProfileImageURL,
		); err != nil {
			return nil, err
		}
		t.Owner.UserID = t.OwnerUserID
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// HydrateChildren attaches tags, lodgings, activities and comments to the
// given trips with one batched query per child table.
func (r *Repository) HydrateChildren(ctx context.Context, trips []Trip) ([]Trip, error) {
	if len(trips) == 0 {
		return trips, nil
	}

	ids := make([]int64, 0, len(trips))
	for _, t := range trips {
		ids = append(ids, t.TripID)
	}

	tags, err := r.tagsByTrip(ctx, ids)
	if err != nil {
		return nil, err
	}
	lodgings, err := r.lodgingsByTrip(ctx, ids)
	if err != nil {
		return nil, err
	}
	activities, err := r.activitiesByTrip(ctx, ids)
	if err != nil {
		return nil, err
	}
	comments, err := r.commentsByTrip(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range trips {
		id := trips[i].TripID
		if v, ok := tags[id]; ok {
			trips[i].Tags = v
		}
		if v, ok := lodgings[id]; ok {
			trips[i].Lodgings = v
		}
		if v, ok := activities[id]; ok {
			trips[i].Activities = v
		}
		if v, ok := comments[id]; ok {
			trips[i].Comments = v
		}
	}
	return trips, nil
}

func (r *Repository) tagsByTrip(ctx context.Context, ids []int64) (map[int64][]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT trip_id, tag
		FROM trip_tags
		WHERE trip_id = ANY($1)
		ORDER BY tag ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := map[int64][]string{}
	for rows.Next() {
		var tripID int64
		var tag string
		if err := rows.Scan(&tripID, &tag); err != nil {
			return nil, err
		}
		tags[tripID] = append(tags[tripID], tag)
	}
	return tags, rows.Err()
}

func (r *Repository) lodgingsByTrip(ctx context.Context, ids []int64) (map[int64][]Lodging, error) {
	rows, err := r.db.Query(ctx, `
		SELECT lodge_id, trip_id, address, thumbnail_url, title, description, latitude, longitude, cost
		FROM lodgings
		WHERE trip_id = ANY($1)
		ORDER BY lodge_id ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lodgings := map[int64][]Lodging{}
	for rows.Next() {
		var l Lodging
		if err := rows.Scan(&l.LodgeID, &l.TripID, &l.Address, &l.ThumbnailURL, &l.Title, &l.Description, &l.Latitude, &l.Longitude, &l.Cost); err != nil {
			return nil, err
		}
		lodgings[l.TripID] = append(lodgings[l.TripID], l)
	}
	return lodgings, rows.Err()
}

func (r *Repository) activitiesByTrip(ctx context.Context, ids []int64) (map[int64][]Activity, error) {
	rows, err := r.db.Query(ctx, `
		SELECT activity_id, trip_id, address, thumbnail_url, title, location, description, latitude, longitude, cost
		FROM activities
		WHERE trip_id = ANY($1)
		ORDER BY activity_id ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := map[int64][]Activity{}
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ActivityID, &a.TripID, &a.Address, &a.ThumbnailURL, &a.Title, &a.Location, &a.Description, &a.Latitude, &a.Longitude, &a.Cost); err != nil {
			return nil, err
		}
		activities[a.TripID] = append(activities[a.TripID], a)
	}
	return activities, rows.Err()
}

func (r *Repository) commentsByTrip(ctx context.Context, ids []int64) (map[int64][]Comment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.comment_id, c.user_id, c.trip_id, c.body, c.created_at, u.name
		FROM comments c
		JOIN travelers u ON u.user_id = c.user_id
		WHERE c.trip_id = ANY($1)
		ORDER BY c.created_at DESC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := map[int64][]Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.CommentID, &c.UserID, &c.TripID, &c.Body, &c.CreatedAt, &c.UserName); err != nil {
			return nil, err
		}
		comments[c.TripID] = append(comments[c.TripID], c)
	}
	return comments, rows.Err()
}

// CreateTrip inserts the trip row and all children in one transaction.
// Either everything persists or nothing does.
func (r *Repository) CreateTrip(ctx context.Context, t NewTrip, tags []string, lodgings, activities []NewPlace) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}

	var tripID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO trips (thumbnail_url, title, description, latitude, longitude, cost, duration, date, visibility, owner_user_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING trip_id
	`, t.ThumbnailURL, t.Title, t.Description, t.Latitude, t.Longitude, t.Cost, t.Duration, t.Date, t.Visibility, t.OwnerUserID).Scan(&tripID)

	if err == nil {
		for _, tag := range tags {
			if _, err = tx.Exec(ctx, `
				INSERT INTO trip_tags (trip_id, tag)
				VALUES ($1,$2)
				ON CONFLICT (trip_id, tag) DO NOTHING
			`, tripID, tag); err != nil {
				break
			}
		}
	}

	if err == nil {
		for _, l := range lodgings {
			if _, err = tx.Exec(ctx, `
				INSERT INTO lodgings (trip_id, address, thumbnail_url, title, description, latitude, longitude, cost)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
			`, tripID, l.Address, l.ThumbnailURL, l.Title, l.Description, l.Latitude, l.Longitude, l.Cost); err != nil {
				break
			}
		}
	}

	if err == nil {
		for _, a := range activities {
			if _, err = tx.Exec(ctx, `
				INSERT INTO activities (trip_id, address, thumbnail_url, title, location, description, latitude, longitude, cost)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			`, tripID, a.Address, a.ThumbnailURL, a.Title, a.Location, a.Description, a.Latitude, a.Longitude, a.Cost); err != nil {
				break
			}
		}
	}

	if err != nil {
		_ = tx.Rollback(ctx)
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tripID, nil
}

func (r *Repository) OwnerID(ctx context.Context, tripID int64) (int64, error) {
	var ownerID int64
	err := r.db.QueryRow(ctx, `SELECT owner_user_id FROM trips WHERE trip_id = $1`, tripID).Scan(&ownerID)
	return ownerID, err
}

func (r *Repository) InsertLodging(ctx context.Context, tripID int64, p NewPlace) (int64, error) {
	var lodgeID int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO lodgings (trip_id, address, thumbnail_url, title, description, latitude, longitude, cost)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING lodge_id
	`, tripID, p.Address, p.ThumbnailURL, p.Title, p.Description, p.Latitude, p.Longitude, p.Cost).Scan(&lodgeID)
	return lodgeID, err
}

func (r *Repository) InsertActivity(ctx context.Context, tripID int64, p NewPlace) (int64, error) {
	var activityID int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO activities (trip_id, address, thumbnail_url, title, location, description, latitude, longitude, cost)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING activity_id
	`, tripID, p.Address, p.ThumbnailURL, p.Title, p.Location, p.Description, p.Latitude, p.Longitude, p.Cost).Scan(&activityID)
	return activityID, err
}

// DeleteTrip removes the trip row; children go with it via cascade.
func (r *Repository) DeleteTrip(ctx context.Context, tripID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE trip_id = $1`, tripID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
