package trip

import "time"

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
	VisibilityFriends = "friends"

	DurationMultiday  = "multiday trip"
	DurationDay       = "day trip"
	DurationOvernight = "overnight trip"
)

// Owner is the public slice of a traveler row attached to every trip.
type Owner struct {
	UserID          int64   `json:"user_id"`
	Name            *string `json:"name"`
	Bio             *string `json:"bio"`
	Verified        bool    `json:"verified"`
	College         *string `json:"college"`
	ProfileImageURL *string `json:"profile_image_url"`
}

// Trip is the fully hydrated trip graph: the trip row, its owner profile
// and every child collection. Child slices are always non-nil.
type Trip struct {
	TripID       int64      `json:"trip_id"`
	ThumbnailURL *string    `json:"thumbnail_url"`
	Title        string     `json:"title"`
	Description  *string    `json:"description"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	Cost         *float64   `json:"cost"`
	Duration     string     `json:"duration"`
	Date         *string    `json:"date"`
	Visibility   string     `json:"visibility"`
	OwnerUserID  int64      `json:"owner_user_id"`
	Owner        Owner      `json:"owner"`
	Tags         []string   `json:"tags"`
	Lodgings     []Lodging  `json:"lodgings"`
	Activities   []Activity `json:"activities"`
	Comments     []Comment  `json:"comments"`
}

type Lodging struct {
	LodgeID      int64    `json:"lodge_id"`
	TripID       int64    `json:"trip_id"`
	Address      *string  `json:"address"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Cost         *float64 `json:"cost"`
}

type Activity struct {
	ActivityID   int64    `json:"activity_id"`
	TripID       int64    `json:"trip_id"`
	Address      *string  `json:"address"`
	ThumbnailURL *string  `json:"thumbnail_url"`
	Title        *string  `json:"title"`
	Location     *string  `json:"location"`
	Description  *string  `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Cost         *float64 `json:"cost"`
}

type Comment struct {
	CommentID int64     `json:"comment_id"`
	UserID    int64     `json:"user_id"`
	TripID    int64     `json:"trip_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UserName  *string   `json:"user_name"`
}

// CreateTripRequest is the POST /trips payload. Scalar fields are typed
// any because clients send coordinates and costs both as JSON numbers
// and as strings ("$1,234.50"); validation settles the type.
type CreateTripRequest struct {
	ThumbnailURL any            `json:"thumbnail_url"`
	Title        any            `json:"title"`
	Description  any            `json:"description"`
	Latitude     any            `json:"latitude"`
	Longitude    any            `json:"longitude"`
	Cost         any            `json:"cost"`
	Duration     any            `json:"duration"`
	Date         any            `json:"date"`
	Visibility   any            `json:"visibility"`
	Tags         []any          `json:"tags"`
	Lodgings     []PlaceRequest `json:"lodgings"`
	Activities   []PlaceRequest `json:"activities"`
}

// PlaceRequest is the shared payload shape for lodgings and activities.
// Location is only meaningful for activities.
type PlaceRequest struct {
	Address      any `json:"address"`
	ThumbnailURL any `json:"thumbnail_url"`
	Title        any `json:"title"`
	Location     any `json:"location"`
	Description  any `json:"description"`
	Latitude     any `json:"latitude"`
	Longitude    any `json:"longitude"`
	Cost         any `json:"cost"`
}

type LodgingRef struct {
	LodgeID int64 `json:"lodge_id"`
	TripID  int64 `json:"trip_id"`
}

type ActivityRef struct {
	ActivityID int64 `json:"activity_id"`
	TripID     int64 `json:"trip_id"`
}
