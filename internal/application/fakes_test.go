package application

import (
	"context"
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/motorline/dealership-backend/internal/domain/entity"
	"github.com/motorline/dealership-backend/internal/domain/repository"
	"github.com/motorline/dealership-backend/internal/vision"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = "u" + strconv.Itoa(len(r.users)+1)
	}
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id string, role entity.Role) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Role = role
	return u, nil
}

type fakeCarRepo struct {
	cars       map[string]*entity.Car
	createErr  error
	listCalls  int
	lastSearch string
}

func newFakeCarRepo(cars ...*entity.Car) *fakeCarRepo {
	r := &fakeCarRepo{cars: map[string]*entity.Car{}}
	for _, c := range cars {
		r.cars[c.ID] = c
	}
	return r
}

func (r *fakeCarRepo) Create(_ context.Context, c *entity.Car) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.cars[c.ID] = c
	return nil
}

func (r *fakeCarRepo) GetByID(_ context.Context, id string) (*entity.Car, error) {
	c, ok := r.cars[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *fakeCarRepo) List(_ context.Context, search string) ([]entity.Car, error) {
	r.listCalls++
	r.lastSearch = search
	out := make([]entity.Car, 0, len(r.cars))
	for _, c := range r.cars {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCarRepo) ListFeatured(_ context.Context, limit int) ([]entity.Car, error) {
	out := make([]entity.Car, 0)
	for _, c := range r.cars {
		if c.Featured && c.Status == entity.CarStatusAvailable && len(out) < limit {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCarRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.cars[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.cars, id)
	return nil
}

func (r *fakeCarRepo) UpdateStatus(_ context.Context, id string, patch repository.StatusPatch) error {
	c, ok := r.cars[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	if patch.Featured != nil {
		c.Featured = *patch.Featured
	}
	return nil
}

type fakeStorage struct {
	uploads   []string // object paths in upload order
	deleted   []string
	uploadErr error
	deleteErr error
}

func (s *fakeStorage) Upload(_ context.Context, objectPath, _ string, _ []byte) (string, error) {
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	s.uploads = append(s.uploads, objectPath)
	return "https://storage.example.com/test-bucket/" + objectPath, nil
}

func (s *fakeStorage) Delete(_ context.Context, objectPath string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, objectPath)
	return nil
}

func (s *fakeStorage) PathFromURL(url string) (string, bool) {
	const marker = "/test-bucket/"
	idx := len(url)
	for i := 0; i+len(marker) <= len(url); i++ {
		if url[i:i+len(marker)] == marker {
			idx = i + len(marker)
			break
		}
	}
	if idx >= len(url) {
		return "", false
	}
	return url[idx:], true
}

type fakeExtractor struct {
	listing vision.Result
	search  vision.Result
	err     error
}

func (e *fakeExtractor) ExtractListing(_ context.Context, _ *vision.ImageData) (vision.Result, error) {
	return e.listing, e.err
}

func (e *fakeExtractor) ExtractSearch(_ context.Context, _ *vision.ImageData) (vision.Result, error) {
	return e.search, e.err
}

type fakeIndex struct {
	indexed []string
	removed []string
	err     error
}

func (i *fakeIndex) Index(_ context.Context, c *entity.Car) error {
	if i.err != nil {
		return i.err
	}
	i.indexed = append(i.indexed, c.ID)
	return nil
}

func (i *fakeIndex) Remove(_ context.Context, id string) error {
	if i.err != nil {
		return i.err
	}
	i.removed = append(i.removed, id)
	return nil
}

func (i *fakeIndex) Search(_ context.Context, _ string, _ int) ([]map[string]any, error) {
	return []map[string]any{}, i.err
}

type fakeCache struct {
	cars        []entity.Car
	warm        bool
	sets        int
	invalidates int
}

func (c *fakeCache) Get(_ context.Context) ([]entity.Car, bool) {
	return c.cars, c.warm
}

func (c *fakeCache) Set(_ context.Context, cars []entity.Car) {
	c.cars = cars
	c.warm = true
	c.sets++
}

func (c *fakeCache) Invalidate(_ context.Context) error {
	c.cars = nil
	c.warm = false
	c.invalidates++
	return nil
}

type fakeLimiter struct {
	decision Decision
	err      error
	calls    int
}

func (l *fakeLimiter) Allow(_ context.Context, _ string) (Decision, error) {
	l.calls++
	return l.decision, l.err
}

type fakePublisher struct {
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

type fakeDealershipRepo struct {
	info     *entity.DealershipInfo
	replaced []entity.WorkingHour
}

func (r *fakeDealershipRepo) Get(_ context.Context) (*entity.DealershipInfo, error) {
	if r.info == nil {
		return nil, repository.ErrNotFound
	}
	return r.info, nil
}

func (r *fakeDealershipRepo) Create(_ context.Context, info *entity.DealershipInfo, hours []entity.WorkingHour) (*entity.DealershipInfo, error) {
	info.ID = "d1"
	info.WorkingHours = hours
	info.CreatedAt = time.Now()
	info.UpdatedAt = info.CreatedAt
	r.info = info
	return info, nil
}

func (r *fakeDealershipRepo) ReplaceWorkingHours(_ context.Context, dealershipID string, hours []entity.WorkingHour) error {
	if r.info == nil || r.info.ID != dealershipID {
		return errors.New("unknown dealership")
	}
	r.replaced = hours
	r.info.WorkingHours = hours
	return nil
}
