package service

import (
	"context"
	"strings"

	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/internal/repository"
	"github.com/quocanhngo/travelmate/internal/validation"
	"github.com/quocanhngo/travelmate/pkg/auth"
)

// ItineraryService manages itineraries and their nested days and activities
type ItineraryService struct {
	identity    *IdentityService
	itineraries ItineraryStore
}

func NewItineraryService(identity *IdentityService, itineraries ItineraryStore) *ItineraryService {
	return &ItineraryService{identity: identity, itineraries: itineraries}
}

// List returns one page of itineraries
func (s *ItineraryService) List(ctx context.Context, q model.ListQuery) (*model.ItineraryListResponse, error) {
	limit, offset := pageBounds(q.Limit, q.Offset)
	items, total, err := s.itineraries.List(ctx, repository.ItineraryFilter{
		Search: strings.TrimSpace(q.Search),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return &model.ItineraryListResponse{Total: total, Limit: limit, Offset: offset, Itineraries: items}, nil
}

func (s *ItineraryService) Get(ctx context.Context, id uint) (*model.Itinerary, error) {
	it, err := s.itineraries.FindByID(ctx, id)
	if repository.IsNotFound(err) {
		return nil, apperror.NotFound("itinerary not found")
	}
	return it, err
}

// Create stores the itinerary with all of its days and activities at once
func (s *ItineraryService) Create(ctx context.Context, p auth.Principal, req model.CreateItineraryRequest) (*model.Itinerary, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Description) == "" || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, apperror.Validation("title, description, startDate and endDate are required")
	}
	if req.EndDate.Before(req.StartDate.Time) {
		return nil, apperror.Validation("endDate must not be before startDate")
	}
	if err := validation.Lengths(
		validation.Field{Name: "title", Value: title, Max: validation.MaxItineraryTitle},
		validation.Field{Name: "description", Value: req.Description, Max: validation.MaxItineraryDescription},
	); err != nil {
		return nil, err
	}

	author, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}

	it := &model.Itinerary{
		AuthorID:    author.Email,
		Title:       title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ImageURLs:   orEmpty(req.ImageURLs),
		MapData:     req.MapData.OrEmptyArray(),
		Days:        buildDays(req.Days),
	}
	if err := s.itineraries.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Update changes the caller's itinerary. When req.Days is present, even
// as an empty list, all stored days are replaced by it; when absent, the
// stored days are kept.
func (s *ItineraryService) Update(ctx context.Context, p auth.Principal, id uint, req model.UpdateItineraryRequest) (*model.Itinerary, error) {
	if err := validation.MaxLengthPtr("title", req.Title, validation.MaxItineraryTitle); err != nil {
		return nil, err
	}
	if err := validation.MaxLengthPtr("description", req.Description, validation.MaxItineraryDescription); err != nil {
		return nil, err
	}

	it, err := s.owned(ctx, p, id, "update")
	if err != nil {
		return nil, err
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		it.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil && *req.Description != "" {
		it.Description = *req.Description
	}
	if req.StartDate != nil && !req.StartDate.IsZero() {
		it.StartDate = *req.StartDate
	}
	if req.EndDate != nil && !req.EndDate.IsZero() {
		it.EndDate = *req.EndDate
	}
	if it.EndDate.Before(it.StartDate.Time) {
		return nil, apperror.Validation("endDate must not be before startDate")
	}
	if req.ImageURLs != nil {
		it.ImageURLs = req.ImageURLs
	}
	if !req.MapData.IsNull() {
		it.MapData = req.MapData
	}

	var days *[]model.ItineraryDay
	if req.Days != nil {
		built := buildDays(*req.Days)
		days = &built
	}
	if err := s.itineraries.Update(ctx, it, days); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes the caller's itinerary with everything under it
func (s *ItineraryService) Delete(ctx context.Context, p auth.Principal, id uint) error {
	if _, err := s.owned(ctx, p, id, "delete"); err != nil {
		return err
	}
	return s.itineraries.Delete(ctx, id)
}

func (s *ItineraryService) owned(ctx context.Context, p auth.Principal, id uint, verb string) (*model.Itinerary, error) {
	user, err := s.identity.Current(ctx, p)
	if err != nil {
		return nil, err
	}
	it, err := s.itineraries.FindHeader(ctx, id)
	if repository.IsNotFound(err) {
		return nil, apperror.NotFound("itinerary not found")
	}
	if err != nil {
		return nil, err
	}
	if !it.OwnedBy(user.Email) {
		return nil, apperror.Forbidden("you can only " + verb + " your own itineraries")
	}
	return it, nil
}

// buildDays converts request days into rows. Day numbers default to the
// 1-based position. Activity text is clipped to the column size instead of
// being rejected.
func buildDays(in []model.DayInput) []model.ItineraryDay {
	days := make([]model.ItineraryDay, 0, len(in))
	for i, d := range in {
		n := d.DayNumber
		if n <= 0 {
			n = i + 1
		}
		day := model.ItineraryDay{DayNumber: n, Date: d.Date}
		for _, a := range d.Activities {
			day.Activities = append(day.Activities, model.ItineraryActivity{
				Time:        validation.Truncate(a.Time, validation.MaxActivityTime),
				Description: validation.Truncate(a.Description, validation.MaxActivityDescription),
				Location:    validation.Truncate(a.Location, validation.MaxActivityLocation),
				Coordinates: a.Coordinates,
			})
		}
		days = append(days, day)
	}
	return days
}
