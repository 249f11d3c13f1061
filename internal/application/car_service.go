package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/motorline/dealership-backend/internal/domain/entity"
	"github.com/motorline/dealership-backend/internal/domain/repository"
	"github.com/motorline/dealership-backend/internal/vision"
)

// CarService implements the catalog operations: create with image upload,
// list, delete with storage cleanup, status updates, and the two AI-assisted
// extraction flows.
type CarService struct {
	Cars      repository.CarRepository
	Users     repository.UserRepository
	Storage   ObjectStorage
	Extractor vision.Extractor
	Index     CarIndex
	Cache     ListCache
	Limiter   DecisionLimiter
	Logger    *logrus.Logger
}

func NewCarService(cars repository.CarRepository, users repository.UserRepository, storage ObjectStorage, extractor vision.Extractor, index CarIndex, cache ListCache, limiter DecisionLimiter, logger *logrus.Logger) *CarService {
	return &CarService{
		Cars:      cars,
		Users:     users,
		Storage:   storage,
		Extractor: extractor,
		Index:     index,
		Cache:     cache,
		Limiter:   limiter,
		Logger:    logger,
	}
}

// CreateCarInput carries the listing attributes and the submitted images as
// base64 data URLs, in display order.
type CreateCarInput struct {
	Make         string
	Model        string
	Year         int
	Price        float64
	Mileage      int
	Color        string
	FuelType     string
	Transmission string
	BodyType     string
	Seats        *int
	Description  string
	Status       entity.CarStatus
	Featured     bool
	Images       []string
}

// requireUser resolves the caller to a persisted user record. Every mutating
// catalog operation goes through this gate.
func (s *CarService) requireUser(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return u, nil
}

// Create uploads the submitted images and commits the listing. The car ID is
// generated up front so image paths can be namespaced under it. Malformed
// image payloads are skipped; if none survive, nothing is persisted.
func (s *CarService) Create(ctx context.Context, userID string, in CreateCarInput) (*entity.Car, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	carID := uuid.NewString()
	folder := "cars/" + carID

	urls := make([]string, 0, len(in.Images))
	for i, payload := range in.Images {
		img, err := vision.ParseDataURL(payload)
		if err != nil {
			s.Logger.WithFields(logrus.Fields{"car_id": carID, "index": i}).Warn("skipping invalid image data")
			continue
		}
		name := fmt.Sprintf("image-%d-%d.%s", time.Now().UnixMilli(), i, img.Ext)
		url, err := s.Storage.Upload(ctx, folder+"/"+name, img.MIMEType, img.Bytes)
		if err != nil {
			return nil, fmt.Errorf("failed to upload image: %w", err)
		}
		urls = append(urls, url)
	}

	if len(urls) == 0 {
		return nil, ErrNoValidImages
	}

	status := in.Status
	if status == "" {
		status = entity.CarStatusAvailable
	}
	car := &entity.Car{
		ID:           carID,
		Make:         in.Make,
		Model:        in.Model,
		Year:         in.Year,
		Price:        in.Price,
		Mileage:      in.Mileage,
		Color:        in.Color,
		FuelType:     in.FuelType,
		Transmission: in.Transmission,
		BodyType:     in.BodyType,
		Seats:        in.Seats,
		Description:  in.Description,
		Status:       status,
		Featured:     in.Featured,
		Images:       urls,
	}
	if err := s.Cars.Create(ctx, car); err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}

	s.invalidateList(ctx)
	s.indexCar(ctx, car)
	return car, nil
}

// List returns cars newest first, filtered by an optional case-insensitive
// substring over make/model/color. The unfiltered list is served from cache
// when warm.
func (s *CarService) List(ctx context.Context, userID, search string) ([]entity.Car, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	if search == "" && s.Cache != nil {
		if cars, ok := s.Cache.Get(ctx); ok {
			return cars, nil
		}
	}

	cars, err := s.Cars.List(ctx, search)
	if err != nil {
		return nil, err
	}
	if search == "" && s.Cache != nil {
		s.Cache.Set(ctx, cars)
	}
	return cars, nil
}

// Delete removes the listing row, then best-effort deletes the stored images
// and the search document. Cleanup failures are logged and do not undo the
// delete: the caller sees success once the row is gone.
func (s *CarService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return err
	}

	car, err := s.Cars.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCarNotFound
		}
		return err
	}

	if err := s.Cars.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCarNotFound
		}
		return err
	}

	for _, url := range car.Images {
		path, ok := s.Storage.PathFromURL(url)
		if !ok {
			s.Logger.WithField("url", url).Warn("cannot derive storage path from image url")
			continue
		}
		if err := s.Storage.Delete(ctx, path); err != nil {
			s.Logger.WithError(err).WithField("path", path).Error("failed to delete car image")
		}
	}

	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			s.Logger.WithError(err).WithField("car_id", id).Warn("failed to remove car from index")
		}
	}
	s.invalidateList(ctx)
	return nil
}

// UpdateStatus writes only the provided fields (status and/or featured).
func (s *CarService) UpdateStatus(ctx context.Context, userID, id string, patch repository.StatusPatch) error {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("invalid status %q", *patch.Status)
	}

	if err := s.Cars.UpdateStatus(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCarNotFound
		}
		return err
	}

	s.invalidateList(ctx)
	if car, err := s.Cars.GetByID(ctx, id); err == nil {
		s.indexCar(ctx, car)
	}
	return nil
}

// ExtractListing runs the full-schema AI extraction used to prefill the
// add-car form from a photo.
func (s *CarService) ExtractListing(ctx context.Context, userID, payload string) (vision.Result, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return vision.Result{}, err
	}
	if s.Extractor == nil {
		return vision.Result{}, ErrExtractionDisabled
	}
	img, err := vision.ParseDataURL(payload)
	if err != nil {
		return vision.Result{Success: false, Error: "invalid image payload"}, nil
	}
	return s.Extractor.ExtractListing(ctx, img)
}

// ImageSearch is the public extraction flow: quota-checked per caller key,
// then the narrow search schema.
func (s *CarService) ImageSearch(ctx context.Context, callerKey, payload string) (vision.Result, error) {
	if s.Extractor == nil {
		return vision.Result{}, ErrExtractionDisabled
	}
	if s.Limiter != nil {
		decision, err := s.Limiter.Allow(ctx, callerKey)
		if err != nil {
			// fail-open when the policy backend is unreachable
			s.Logger.WithError(err).Warn("rate limit check failed")
		} else if !decision.Allowed {
			if decision.RateLimited {
				s.Logger.WithFields(logrus.Fields{
					"code":             "RATE_LIMIT_EXCEEDED",
					"remaining":        decision.Remaining,
					"reset_in_seconds": int(decision.RetryAfter.Seconds()),
				}).Error("image search rate limited")
				return vision.Result{}, &RateLimitError{Remaining: decision.Remaining, RetryAfter: decision.RetryAfter}
			}
			return vision.Result{}, ErrRequestDenied
		}
	}

	img, err := vision.ParseDataURL(payload)
	if err != nil {
		return vision.Result{Success: false, Error: "invalid image payload"}, nil
	}
	return s.Extractor.ExtractSearch(ctx, img)
}

// Featured returns up to limit featured AVAILABLE cars, newest first.
func (s *CarService) Featured(ctx context.Context, limit int) ([]entity.Car, error) {
	if limit <= 0 {
		limit = 3
	}
	return s.Cars.ListFeatured(ctx, limit)
}

// Search queries the public search index.
func (s *CarService) Search(ctx context.Context, query string, size int) ([]map[string]any, error) {
	if s.Index == nil {
		return []map[string]any{}, nil
	}
	return s.Index.Search(ctx, query, size)
}

func (s *CarService) invalidateList(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		s.Logger.WithError(err).Warn("failed to invalidate car list cache")
	}
}

func (s *CarService) indexCar(ctx context.Context, car *entity.Car) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, car); err != nil {
		s.Logger.WithError(err).WithField("car_id", car.ID).Warn("failed to index car")
	}
}
