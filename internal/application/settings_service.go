package application

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/motorline/dealership-backend/internal/domain/entity"
	"github.com/motorline/dealership-backend/internal/domain/repository"
	"github.com/motorline/dealership-backend/pkg/mailer"
)

// DealershipDefaults seed the singleton settings record on first read.
type DealershipDefaults struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// SettingsService manages the dealership singleton, its weekly schedule, and
// user role administration.
type SettingsService struct {
	Users       repository.UserRepository
	Dealerships repository.DealershipRepository
	Publisher   Publisher
	Logger      *logrus.Logger
	Defaults    DealershipDefaults
}

func NewSettingsService(users repository.UserRepository, dealerships repository.DealershipRepository, pub Publisher, logger *logrus.Logger, defaults DealershipDefaults) *SettingsService {
	return &SettingsService{
		Users:       users,
		Dealerships: dealerships,
		Publisher:   pub,
		Logger:      logger,
		Defaults:    defaults,
	}
}

func (s *SettingsService) requireUser(ctx context.Context, userID string) (*entity.User, error) {
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

func (s *SettingsService) requireAdmin(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, ErrAdminRequired
	}
	return u, nil
}

// GetDealershipInfo returns the settings singleton, creating it with the
// default weekly schedule the first time anyone asks for it.
func (s *SettingsService) GetDealershipInfo(ctx context.Context, userID string) (*entity.DealershipInfo, error) {
	if _, err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	info, err := s.Dealerships.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		info = &entity.DealershipInfo{
			Name:    s.Defaults.Name,
			Address: s.Defaults.Address,
			Phone:   s.Defaults.Phone,
			Email:   s.Defaults.Email,
		}
		return s.Dealerships.Create(ctx, info, entity.DefaultWorkingHours())
	}
	return info, err
}

// SaveWorkingHours replaces the entire weekly schedule with the provided
// set. Admin only; the swap is transactional.
func (s *SettingsService) SaveWorkingHours(ctx context.Context, userID string, hours []entity.WorkingHour) error {
	if _, err := s.requireAdmin(ctx, userID); err != nil {
		return err
	}

	for _, h := range hours {
		if !h.DayOfWeek.Valid() {
			return errors.New("invalid day of week: " + string(h.DayOfWeek))
		}
	}
	// Stable order keeps reads deterministic regardless of submission order.
	sort.SliceStable(hours, func(i, j int) bool {
		return hours[i].DayOfWeek.Order() < hours[j].DayOfWeek.Order()
	})

	info, err := s.Dealerships.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDealershipNotFound
		}
		return err
	}
	return s.Dealerships.ReplaceWorkingHours(ctx, info.ID, hours)
}

// ListUsers returns all users, newest first. Admin only.
func (s *SettingsService) ListUsers(ctx context.Context, userID string) ([]entity.User, error) {
	if _, err := s.requireAdmin(ctx, userID); err != nil {
		return nil, err
	}
	return s.Users.List(ctx)
}

// UpdateUserRole overwrites the target user's role and queues a notification
// email. Admin only.
func (s *SettingsService) UpdateUserRole(ctx context.Context, adminID, targetID string, role entity.Role) (*entity.User, error) {
	if _, err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, errors.New("invalid role: " + string(role))
	}

	u, err := s.Users.UpdateRole(ctx, targetID, role)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.Publisher != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateRoleUpdated,
			Data: map[string]any{
				"Name":           u.Name,
				"Role":           string(u.Role),
				"DealershipName": s.Defaults.Name,
			},
		}
		if err := s.Publisher.PublishJSON(ctx, job); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("failed to queue role change email")
		}
	}
	return u, nil
}
