package services

import (
	"context"
	"slices"
	"sort"
	"strings"

	"gompa/internal/models/db_models"
	"gompa/internal/models/response_models"
	"gompa/internal/repositories"
	"gompa/pkg/geo"
	"gompa/pkg/utils"
)

type LandmarkServiceInterface interface {
	List(ctx context.Context, district string) ([]response_models.LandmarkResponse, error)
	Get(ctx context.Context, id string) (*response_models.LandmarkResponse, error)
}

type LandmarkService struct {
	landmarkRepository repositories.LandmarkRepository
}

func NewLandmarkService(landmarkRepository repositories.LandmarkRepository) LandmarkServiceInterface {
	return &LandmarkService{landmarkRepository: landmarkRepository}
}

func (s *LandmarkService) List(ctx context.Context, district string) ([]response_models.LandmarkResponse, error) {
	landmarks, err := s.landmarkRepository.List(ctx, strings.TrimSpace(district))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.LandmarkResponse, 0, len(landmarks))
	for i := range landmarks {
		out = append(out, toLandmarkResponse(&landmarks[i]))
	}
	return out, nil
}

func (s *LandmarkService) Get(ctx context.Context, id string) (*response_models.LandmarkResponse, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, utils.ErrLandmarkNotFound
	}
	lm, err := s.landmarkRepository.GetByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if lm == nil {
		return nil, utils.ErrLandmarkNotFound
	}
	resp := toLandmarkResponse(lm)
	return &resp, nil
}

func toLandmarkResponse(lm *db_models.Landmark) response_models.LandmarkResponse {
	return response_models.LandmarkResponse{
		ID:        lm.ID,
		Name:      lm.Name,
		Location:  lm.Location,
		District:  lm.District,
		Latitude:  lm.Lat,
		Longitude: lm.Lng,
		Category:  lm.Category,
		Aliases:   lm.Aliases,
	}
}

func landmarkPoint(lm *response_models.LandmarkResponse) geo.Point {
	return geo.Point{Lat: lm.Latitude, Lng: lm.Longitude}
}

// StaticLandmarkService serves a fixed catalog without a database.
type StaticLandmarkService struct {
	landmarks []db_models.Landmark
}

func NewStaticLandmarkService(landmarks []db_models.Landmark) LandmarkServiceInterface {
	return &StaticLandmarkService{landmarks: landmarks}
}

func (s *StaticLandmarkService) List(_ context.Context, district string) ([]response_models.LandmarkResponse, error) {
	district = strings.TrimSpace(district)
	out := make([]response_models.LandmarkResponse, 0, len(s.landmarks))
	for i := range s.landmarks {
		if district != "" && !strings.EqualFold(s.landmarks[i].District, district) {
			continue
		}
		out = append(out, toLandmarkResponse(&s.landmarks[i]))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *StaticLandmarkService) Get(_ context.Context, id string) (*response_models.LandmarkResponse, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	var alias *db_models.Landmark
	for i := range s.landmarks {
		lm := &s.landmarks[i]
		if lm.ID == id {
			resp := toLandmarkResponse(lm)
			return &resp, nil
		}
		if alias == nil && slices.Contains(lm.Aliases, id) {
			alias = lm
		}
	}
	if id == "" || alias == nil {
		return nil, utils.ErrLandmarkNotFound
	}
	resp := toLandmarkResponse(alias)
	return &resp, nil
}
