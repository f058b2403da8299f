package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	resourceRepo "smartbooking/database/repository/resource"
	"smartbooking/models"
	"smartbooking/utils"
)

// ErrNotFound is returned when the catalogue holds no such resource.
var ErrNotFound = errors.New("resource not found")

const cacheTTL = 5 * time.Minute

// Service exposes the bookable resource catalogue.
type Service interface {
	ListResources() ([]models.Resource, error)
	GetResource(id string) (*models.Resource, error)
	CreateResource(res *models.Resource) (*models.Resource, error)
	UpdateResource(res *models.Resource) error
}

// DefaultResourceService is the production implementation. Single-resource
// reads go through the redis cache; writes invalidate it.
type DefaultResourceService struct {
	Repo   resourceRepo.ResourceRepository
	Logger *zap.Logger
}

// ListResources returns the whole catalogue.
func (s *DefaultResourceService) ListResources() ([]models.Resource, error) {
	return s.Repo.FindAll()
}

// GetResource fetches a resource by id, serving from cache when possible.
func (s *DefaultResourceService) GetResource(id string) (*models.Resource, error) {
	ctx := context.Background()
	cacheClient := utils.GetCacheClient()
	cacheKey := cacheKeyFor(id)

	if data, err := cacheClient.Get(ctx, cacheKey).Result(); err == nil {
		var res models.Resource
		if err := json.Unmarshal([]byte(data), &res); err == nil {
			return &res, nil
		}
	}

	res, err := s.Repo.GetByID(id)
	if errors.Is(err, resourceRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := cacheClient.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
			s.Logger.Warn("failed to cache resource", zap.String("id", id), zap.Error(err))
		}
	}
	return res, nil
}

// CreateResource adds a resource to the catalogue, assigning its id.
func (s *DefaultResourceService) CreateResource(res *models.Resource) (*models.Resource, error) {
	if res.Name == "" || res.BasePricePerHour < 0 {
		return nil, fmt.Errorf("invalid resource: name and a non-negative base price are required")
	}
	res.ID = uuid.New().String()
	if err := s.Repo.Create(res); err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// UpdateResource replaces a stored resource and drops its cache entry.
func (s *DefaultResourceService) UpdateResource(res *models.Resource) error {
	err := s.Repo.Update(res)
	if errors.Is(err, resourceRepo.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	ctx := context.Background()
	if err := utils.GetCacheClient().Del(ctx, cacheKeyFor(res.ID)).Err(); err != nil {
		s.Logger.Warn("failed to invalidate resource cache", zap.String("id", res.ID), zap.Error(err))
	}
	return nil
}

func cacheKeyFor(id string) string {
	return "resource:" + id
}
