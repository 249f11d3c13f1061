package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/motorline/dealership-backend/internal/domain/entity"
	"github.com/motorline/dealership-backend/pkg/helpers"
	"github.com/motorline/dealership-backend/pkg/mailer"
)

func testAuthService(pub Publisher, users ...*entity.User) (*AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo(users...)
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	return NewAuthService(repo, jwt, nil, pub, testLogger(), "Motorline Motors"), repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with the default role and signs in", func(t *testing.T) {
		pub := &fakePublisher{}
		svc, repo := testAuthService(pub)

		u, pair, err := svc.Register(ctx, "new@example.com", "s3cretpass", "New User")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Role != entity.RoleUser {
			t.Errorf("role = %q, want user", u.Role)
		}
		if u.Password == "s3cretpass" {
			t.Error("password stored in plaintext")
		}
		if pair.AccessToken == "" || pair.RefreshToken == "" {
			t.Error("token pair not issued")
		}
		if _, err := repo.GetByEmail(ctx, "new@example.com"); err != nil {
			t.Errorf("user not persisted: %v", err)
		}
		if len(pub.jobs) != 1 {
			t.Fatalf("queued %d jobs, want welcome email", len(pub.jobs))
		}
		if job := pub.jobs[0].(mailer.EmailJob); job.Template != mailer.TemplateWelcome {
			t.Errorf("job template = %q", job.Template)
		}
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		svc, _ := testAuthService(nil, &entity.User{ID: "u1", Email: "taken@example.com"})
		if _, _, err := svc.Register(ctx, "taken@example.com", "whatever1", "Dup"); !errors.Is(err, ErrEmailTaken) {
			t.Fatalf("err = %v, want ErrEmailTaken", err)
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := helpers.HashPassword("correct-horse")
	if err != nil {
		t.Fatal(err)
	}
	stored := &entity.User{ID: "u1", Email: "joe@example.com", Password: hash, Role: entity.RoleUser}

	t.Run("valid credentials", func(t *testing.T) {
		svc, _ := testAuthService(nil, stored)
		u, pair, err := svc.Login(ctx, "joe@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.ID != "u1" || pair.AccessToken == "" {
			t.Errorf("u=%+v pair=%+v", u, pair)
		}

		claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
		if err != nil {
			t.Fatalf("issued token does not parse: %v", err)
		}
		if claims.UserID != "u1" || claims.SessionID == "" {
			t.Errorf("claims = %+v", claims)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _ := testAuthService(nil, stored)
		if _, _, err := svc.Login(ctx, "joe@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _ := testAuthService(nil, stored)
		if _, _, err := svc.Login(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	stored := &entity.User{ID: "u1", Email: "joe@example.com", Role: entity.RoleUser}

	t.Run("rotates the pair for a valid token", func(t *testing.T) {
		svc, _ := testAuthService(nil, stored)
		first, err := svc.IssueTokens(ctx, stored)
		if err != nil {
			t.Fatal(err)
		}

		pair, uid, err := svc.Refresh(ctx, first.RefreshToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if uid != "u1" || pair.AccessToken == "" {
			t.Errorf("uid=%q pair=%+v", uid, pair)
		}
	})

	t.Run("access tokens are not refresh tokens", func(t *testing.T) {
		svc, _ := testAuthService(nil, stored)
		first, err := svc.IssueTokens(ctx, stored)
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := svc.Refresh(ctx, first.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		svc, _ := testAuthService(nil, stored)
		if _, _, err := svc.Refresh(ctx, "not.a.jwt"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := testAuthService(nil, &entity.User{ID: "u1", Email: "joe@example.com"})

	t.Run("known user", func(t *testing.T) {
		u, err := svc.Profile(ctx, "u1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if u.Email != "joe@example.com" {
			t.Errorf("email = %q", u.Email)
		}
	})

	t.Run("empty caller", func(t *testing.T) {
		if _, err := svc.Profile(ctx, ""); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("err = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("unknown caller", func(t *testing.T) {
		if _, err := svc.Profile(ctx, "ghost"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("err = %v, want ErrUserNotFound", err)
		}
	})
}
