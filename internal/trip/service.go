package trip

import (
	"context"
	"errors"
	"fmt"

	"github.com/joeyShea/travel-map/internal/db"

	"github.com/jackc/pgx/v5"
)

// Service validates input, drives the repository and enforces the
// ownership and visibility policy. A viewer id of zero means anonymous.
type Service struct {
	repo *Repository
}

func NewService(db db.Querier) *Service {
	return &Service{repo: NewRepository(db)}
}

// ListTrips returns every public trip, plus the viewer's own non-public
// trips when a viewer is present. Newest first.
func (s *Service) ListTrips(ctx context.Context, viewerID int64) ([]Trip, error) {
	var (
		trips []Trip
		err   error
	)
	if viewerID == 0 {
		trips, err = s.repo.TripRows(ctx, `t.visibility = 'public'`)
	} else {
		trips, err = s.repo.TripRows(ctx, `(t.visibility = 'public' OR t.owner_user_id = $1)`, viewerID)
	}
	if err != nil {
		return nil, err
	}
	return s.repo.HydrateChildren(ctx, trips)
}

// ListUserTrips returns the target user's trips: all of them when the
// viewer is the target, otherwise public only.
func (s *Service) ListUserTrips(ctx context.Context, targetID, viewerID int64) ([]Trip, error) {
	var (
		trips []Trip
		err   error
	)
	if viewerID == targetID {
		trips, err = s.repo.TripRows(ctx, `t.owner_user_id = $1`, targetID)
	} else {
		trips, err = s.repo.TripRows(ctx, `(t.owner_user_id = $1 AND t.visibility = 'public')`, targetID)
	}
	if err != nil {
		return nil, err
	}
	return s.repo.HydrateChildren(ctx, trips)
}

// GetTrip fetches one trip graph. A non-public trip read by anyone but
// its owner reports not-found so private trips are indistinguishable
// from missing ids.
func (s *Service) GetTrip(ctx context.Context, tripID, viewerID int64) (Trip, error) {
	trips, err := s.repo.TripRows(ctx, `t.trip_id = $1`, tripID)
	if err != nil {
		return Trip{}, err
	}
	if len(trips) == 0 {
		return Trip{}, ErrTripNotFound
	}

	t := trips[0]
	if t.Visibility != VisibilityPublic && t.OwnerUserID != viewerID {
		return Trip{}, ErrTripNotFound
	}

	hydrated, err := s.repo.HydrateChildren(ctx, trips)
	if err != nil {
		return Trip{}, err
	}
	return hydrated[0], nil
}

// CreateTrip validates the payload, persists the trip and all children
// in one transaction and returns the re-read hydrated graph.
func (s *Service) CreateTrip(ctx context.Context, ownerID int64, req CreateTripRequest) (Trip, error) {
	title, err := stringValue("title", req.Title)
	if err != nil {
		return Trip{}, err
	}
	if title == nil {
		return Trip{}, invalid("title", "is required")
	}

	newTrip := NewTrip{
		Title:       *title,
		Duration:    normalizeDuration(req.Duration),
		Visibility:  normalizeVisibility(req.Visibility),
		OwnerUserID: ownerID,
	}
	if newTrip.ThumbnailURL, err = parseThumbnailURL("thumbnail_url", req.ThumbnailURL); err != nil {
		return Trip{}, err
	}
	if newTrip.Description, err = stringValue("description", req.Description); err != nil {
		return Trip{}, err
	}
	if newTrip.Latitude, err = parseLatitude("latitude", req.Latitude); err != nil {
		return Trip{}, err
	}
	if newTrip.Longitude, err = parseLongitude("longitude", req.Longitude); err != nil {
		return Trip{}, err
	}
	if newTrip.Cost, err = parseCost("cost", req.Cost); err != nil {
		return Trip{}, err
	}
	if newTrip.Date, err = parseTripDate(req.Date); err != nil {
		return Trip{}, err
	}

	var tags []string
	for i, raw := range req.Tags {
		tag, err := stringValue(fmt.Sprintf("tags[%d]", i+1), raw)
		if err != nil {
			return Trip{}, err
		}
		if tag == nil {
			continue
		}
		tags = append(tags, *tag)
	}

	lodgings := make([]NewPlace, 0, len(req.Lodgings))
	for i, raw := range req.Lodgings {
		place, err := validatePlace(fmt.Sprintf("lodgings[%d]", i+1), raw, false)
		if err != nil {
			return Trip{}, err
		}
		lodgings = append(lodgings, place)
	}

	activities := make([]NewPlace, 0, len(req.Activities))
	for i, raw := range req.Activities {
		place, err := validatePlace(fmt.Sprintf("activities[%d]", i+1), raw, true)
		if err != nil {
			return Trip{}, err
		}
		activities = append(activities, place)
	}

	tripID, err := s.repo.CreateTrip(ctx, newTrip, tags, lodgings, activities)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Trip{}, invalid("trip", "could not be created")
		}
		return Trip{}, err
	}

	return s.GetTrip(ctx, tripID, ownerID)
}

// AddLodging inserts a lodging on an owned trip.
func (s *Service) AddLodging(ctx context.Context, tripID, ownerID int64, req PlaceRequest) (LodgingRef, error) {
	if err := s.requireTripOwner(ctx, tripID, ownerID); err != nil {
		return LodgingRef{}, err
	}

	place, err := validatePlace("lodging", req, false)
	if err != nil {
		return LodgingRef{}, err
	}
	if place.Title == nil {
		return LodgingRef{}, invalid("title", "is required")
	}

	lodgeID, err := s.repo.InsertLodging(ctx, tripID, place)
	if err != nil {
		return LodgingRef{}, err
	}
	return LodgingRef{LodgeID: lodgeID, TripID: tripID}, nil
}

// AddActivity inserts an activity on an owned trip.
func (s *Service) AddActivity(ctx context.Context, tripID, ownerID int64, req PlaceRequest) (ActivityRef, error) {
	if err := s.requireTripOwner(ctx, tripID, ownerID); err != nil {
		return ActivityRef{}, err
	}

	place, err := validatePlace("activity", req, true)
	if err != nil {
		return ActivityRef{}, err
	}
	if place.Title == nil {
		return ActivityRef{}, invalid("title", "is required")
	}

	activityID, err := s.repo.InsertActivity(ctx, tripID, place)
	if err != nil {
		return ActivityRef{}, err
	}
	return ActivityRef{ActivityID: activityID, TripID: tripID}, nil
}

// DeleteTrip removes an owned trip and its children.
func (s *Service) DeleteTrip(ctx context.Context, tripID, ownerID int64) error {
	if err := s.requireTripOwner(ctx, tripID, ownerID); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if deleted < 1 {
		return ErrTripNotFound
	}
	return nil
}

// requireTripOwner fails not-found for missing trips regardless of the
// caller, and forbidden for an owner mismatch.
func (s *Service) requireTripOwner(ctx context.Context, tripID, userID int64) error {
	ownerID, err := s.repo.OwnerID(ctx, tripID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTripNotFound
		}
		return err
	}
	if ownerID != userID {
		return ErrTripForbidden
	}
	return nil
}

func validatePlace(prefix string, req PlaceRequest, withLocation bool) (NewPlace, error) {
	var (
		place NewPlace
		err   error
	)
	if place.Address, err = stringValue(prefix+".address", req.Address); err != nil {
		return NewPlace{}, err
	}
	if place.ThumbnailURL, err = parseThumbnailURL(prefix+".thumbnail_url", req.ThumbnailURL); err != nil {
		return NewPlace{}, err
	}
	if place.Title, err = stringValue(prefix+".title", req.Title); err != nil {
		return NewPlace{}, err
	}
	if withLocation {
		if place.Location, err = stringValue(prefix+".location", req.Location); err != nil {
			return NewPlace{}, err
		}
	}
	if place.Description, err = stringValue(prefix+".description", req.Description); err != nil {
		return NewPlace{}, err
	}
	if place.Latitude, err = parseLatitude(prefix+".latitude", req.Latitude); err != nil {
		return NewPlace{}, err
	}
	if place.Longitude, err = parseLongitude(prefix+".longitude", req.Longitude); err != nil {
		return NewPlace{}, err
	}
	if place.Cost, err = parseCost(prefix+".cost", req.Cost); err != nil {
		return NewPlace{}, err
	}
	return place, nil
}
