package application

import (
	"context"
	"errors"
	"testing"

	"github.com/motorline/dealership-backend/internal/domain/entity"
	"github.com/motorline/dealership-backend/pkg/mailer"
)

func testSettingsService(dealerships *fakeDealershipRepo, pub Publisher) (*SettingsService, *fakeUserRepo) {
	users := newFakeUserRepo(
		&entity.User{ID: "admin1", Email: "boss@example.com", Role: entity.RoleAdmin},
		&entity.User{ID: "user1", Email: "joe@example.com", Role: entity.RoleUser},
	)
	defaults := DealershipDefaults{Name: "Motorline Motors", Address: "1 Main St", Phone: "555-0100", Email: "hello@example.com"}
	return NewSettingsService(users, dealerships, pub, testLogger(), defaults), users
}

func TestGetDealershipInfo(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the singleton with defaults on first read", func(t *testing.T) {
		repo := &fakeDealershipRepo{}
		svc, _ := testSettingsService(repo, nil)

		info, err := svc.GetDealershipInfo(ctx, "user1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.Name != "Motorline Motors" {
			t.Errorf("name = %q", info.Name)
		}
		if len(info.WorkingHours) != 7 {
			t.Fatalf("got %d working hours, want 7", len(info.WorkingHours))
		}
		if h := info.WorkingHours[0]; h.DayOfWeek != entity.Monday || h.OpenTime != "09:00" || !h.IsOpen {
			t.Errorf("monday = %+v", h)
		}
		if h := info.WorkingHours[6]; h.DayOfWeek != entity.Sunday || h.IsOpen {
			t.Errorf("sunday = %+v, want closed", h)
		}
	})

	t.Run("returns the existing record on later reads", func(t *testing.T) {
		repo := &fakeDealershipRepo{info: &entity.DealershipInfo{ID: "d1", Name: "Existing"}}
		svc, _ := testSettingsService(repo, nil)

		info, err := svc.GetDealershipInfo(ctx, "user1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if info.Name != "Existing" {
			t.Errorf("name = %q", info.Name)
		}
	})

	t.Run("anonymous callers are rejected", func(t *testing.T) {
		svc, _ := testSettingsService(&fakeDealershipRepo{}, nil)
		if _, err := svc.GetDealershipInfo(ctx, ""); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	})
}

func TestSaveWorkingHours(t *testing.T) {
	ctx := context.Background()

	weekend := []entity.WorkingHour{
		{DayOfWeek: entity.Sunday, OpenTime: "11:00", CloseTime: "15:00", IsOpen: false},
		{DayOfWeek: entity.Saturday, OpenTime: "10:00", CloseTime: "14:00", IsOpen: true},
	}

	t.Run("replaces hours sorted by day", func(t *testing.T) {
		repo := &fakeDealershipRepo{info: &entity.DealershipInfo{ID: "d1"}}
		svc, _ := testSettingsService(repo, nil)

		if err := svc.SaveWorkingHours(ctx, "admin1", weekend); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.replaced) != 2 {
			t.Fatalf("replaced %d rows, want 2", len(repo.replaced))
		}
		if repo.replaced[0].DayOfWeek != entity.Saturday || repo.replaced[1].DayOfWeek != entity.Sunday {
			t.Errorf("order = %v, %v", repo.replaced[0].DayOfWeek, repo.replaced[1].DayOfWeek)
		}
	})

	t.Run("rejects unknown days", func(t *testing.T) {
		repo := &fakeDealershipRepo{info: &entity.DealershipInfo{ID: "d1"}}
		svc, _ := testSettingsService(repo, nil)

		bad := []entity.WorkingHour{{DayOfWeek: "FUNDAY", OpenTime: "09:00", CloseTime: "17:00"}}
		if err := svc.SaveWorkingHours(ctx, "admin1", bad); err == nil {
			t.Fatal("expected error")
		}
		if repo.replaced != nil {
			t.Error("hours were replaced despite invalid input")
		}
	})

	t.Run("requires admin", func(t *testing.T) {
		svc, _ := testSettingsService(&fakeDealershipRepo{info: &entity.DealershipInfo{ID: "d1"}}, nil)
		if err := svc.SaveWorkingHours(ctx, "user1", weekend); !errors.Is(err, ErrAdminRequired) {
			t.Fatalf("err = %v, want ErrAdminRequired", err)
		}
	})

	t.Run("no settings record yet", func(t *testing.T) {
		svc, _ := testSettingsService(&fakeDealershipRepo{}, nil)
		if err := svc.SaveWorkingHours(ctx, "admin1", weekend); !errors.Is(err, ErrDealershipNotFound) {
			t.Fatalf("err = %v, want ErrDealershipNotFound", err)
		}
	})
}

func TestUpdateUserRole(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes and queues a notification", func(t *testing.T) {
		pub := &fakePublisher{}
		svc, users := testSettingsService(&fakeDealershipRepo{}, pub)

		u, err := svc.UpdateUserRole(ctx, "admin1", "user1", entity.RoleAdmin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Role != entity.RoleAdmin {
			t.Errorf("role = %q", u.Role)
		}
		if users.users["user1"].Role != entity.RoleAdmin {
			t.Error("role not persisted")
		}
		if len(pub.jobs) != 1 {
			t.Fatalf("queued %d jobs, want 1", len(pub.jobs))
		}
		job, ok := pub.jobs[0].(mailer.EmailJob)
		if !ok {
			t.Fatalf("job type %T", pub.jobs[0])
		}
		if job.Template != mailer.TemplateRoleUpdated || job.To != "joe@example.com" {
			t.Errorf("job = %+v", job)
		}
	})

	t.Run("queue failure does not fail the update", func(t *testing.T) {
		pub := &fakePublisher{err: errors.New("amqp down")}
		svc, users := testSettingsService(&fakeDealershipRepo{}, pub)

		if _, err := svc.UpdateUserRole(ctx, "admin1", "user1", entity.RoleAdmin); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if users.users["user1"].Role != entity.RoleAdmin {
			t.Error("role not persisted")
		}
	})

	t.Run("requires admin", func(t *testing.T) {
		svc, _ := testSettingsService(&fakeDealershipRepo{}, nil)
		if _, err := svc.UpdateUserRole(ctx, "user1", "admin1", entity.RoleUser); !errors.Is(err, ErrAdminRequired) {
			t.Fatalf("err = %v, want ErrAdminRequired", err)
		}
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		svc, _ := testSettingsService(&fakeDealershipRepo{}, nil)
		if _, err := svc.UpdateUserRole(ctx, "admin1", "user1", entity.Role("owner")); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown target user", func(t *testing.T) {
		svc, _ := testSettingsService(&fakeDealershipRepo{}, nil)
		if _, err := svc.UpdateUserRole(ctx, "admin1", "ghost", entity.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("err = %v, want ErrUserNotFound", err)
		}
	})
}
