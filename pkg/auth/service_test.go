package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/anita-maxwynn/Django-Practice/pkg/validator"
)

func newTestService(t *testing.T) (*Service, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	return NewService(storage, WithBcryptCost(bcrypt.MinCost)), storage
}

func TestNewService(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		svc := NewService(NewMemoryStorage())
		assert.Equal(t, bcrypt.DefaultCost, svc.bcryptCost)
		assert.NotNil(t, svc.logger)
		assert.NotEmpty(t, svc.dummyHash)
	})

	t.Run("ignores out of range cost", func(t *testing.T) {
		t.Parallel()
		svc := NewService(NewMemoryStorage(), WithBcryptCost(1))
		assert.Equal(t, bcrypt.DefaultCost, svc.bcryptCost)
	})
}

func TestService_CreateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates inactive user with hashed password", func(t *testing.T) {
		t.Parallel()
		svc, storage := newTestService(t)

		u, err := svc.CreateUser(ctx, "  Ada@Example.com ", "pw1-secret", WithName(" Ada ", "Lovelace"))
		require.NoError(t, err)

		assert.Equal(t, "ada@example.com", u.Email)
		assert.Equal(t, "Ada", u.FirstName)
		assert.Equal(t, "Lovelace", u.LastName)
		assert.False(t, u.IsActive)
		assert.False(t, u.IsStaff)
		assert.False(t, u.IsSuperuser)
		assert.False(t, u.IsSeller)
		assert.True(t, u.IsCustomer)
		assert.Nil(t, u.LastLoginAt)
		assert.NotEqual(t, "pw1-secret", u.PasswordHash)
		assert.True(t, svc.CheckPassword(u, "pw1-secret"))
		assert.Equal(t, 1, storage.Len())
	})

	t.Run("duplicate email is a validation error", func(t *testing.T) {
		t.Parallel()
		svc, storage := newTestService(t)

		_, err := svc.CreateUser(ctx, "a@x.com", "pw1")
		require.NoError(t, err)

		_, err = svc.CreateUser(ctx, "A@X.com", "pw2")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
		assert.True(t, validator.ExtractValidationErrors(err).Has("email"))
		assert.Equal(t, 1, storage.Len())
	})

	t.Run("concurrent duplicates create one row", func(t *testing.T) {
		t.Parallel()
		svc, storage := newTestService(t)

		var wg sync.WaitGroup
		errs := make(chan error, 5)
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.CreateUser(ctx, "race@x.com", "pw")
				errs <- err
			}()
		}
		wg.Wait()
		close(errs)

		var ok int
		for err := range errs {
			if err == nil {
				ok++
			} else {
				assert.ErrorIs(t, err, ErrEmailAlreadyExists)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, 1, storage.Len())
	})

	tests := []struct {
		name     string
		email    string
		password string
		field    string
	}{
		{"empty email", "", "pw", "email"},
		{"malformed email", "not-an-email", "pw", "email"},
		{"empty password", "a@x.com", "", "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, storage := newTestService(t)

			_, err := svc.CreateUser(ctx, tt.email, tt.password)
			assert.ErrorIs(t, err, ErrValidation)
			assert.True(t, validator.ExtractValidationErrors(err).Has(tt.field))
			assert.Equal(t, 0, storage.Len())
		})
	}

	t.Run("storage failure is wrapped", func(t *testing.T) {
		t.Parallel()
		storage := &MockStorage{}
		svc := NewService(storage, WithBcryptCost(bcrypt.MinCost))

		boom := errors.New("db down")
		storage.On("CreateUser", mock.Anything, mock.AnythingOfType("*auth.User")).Return(boom)

		_, err := svc.CreateUser(ctx, "a@x.com", "pw")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrValidation)
		storage.AssertExpectations(t)
	})
}

func TestService_CreateSuperuser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("forces elevated flags", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		u, err := svc.CreateSuperuser(ctx, "root@x.com", "pw", WithSeller(false), WithCustomer(false))
		require.NoError(t, err)
		assert.True(t, u.IsStaff)
		assert.True(t, u.IsSuperuser)
		assert.True(t, u.IsSeller)
		assert.True(t, u.IsCustomer)
		assert.False(t, u.IsActive)
	})

	t.Run("honors active option", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)

		u, err := svc.CreateSuperuser(ctx, "root@x.com", "pw", WithActive(true))
		require.NoError(t, err)
		assert.True(t, u.IsActive)
	})

	t.Run("rejects explicit false flags", func(t *testing.T) {
		t.Parallel()
		svc, storage := newTestService(t)

		_, err := svc.CreateSuperuser(ctx, "root@x.com", "pw", WithStaff(false))
		assert.ErrorIs(t, err, ErrConfig)

		_, err = svc.CreateSuperuser(ctx, "root@x.com", "pw", WithSuperuser(false))
		assert.ErrorIs(t, err, ErrConfig)

		assert.Equal(t, 0, storage.Len())
	})
}

func TestService_Authenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, storage := newTestService(t)
	created, err := svc.CreateUser(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.NoError(t, storage.UpdateActive(ctx, created.ID, true))

	t.Run("returns the same user", func(t *testing.T) {
		t.Parallel()
		u, err := svc.Authenticate(ctx, "A@x.com", "pw1")
		require.NoError(t, err)
		assert.Equal(t, created.ID, u.ID)
		assert.True(t, u.IsActive)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		t.Parallel()
		_, errWrong := svc.Authenticate(ctx, "a@x.com", "nope")
		_, errUnknown := svc.Authenticate(ctx, "who@x.com", "pw1")
		assert.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		assert.Equal(t, errWrong.Error(), errUnknown.Error())
	})

	t.Run("does not check activity", func(t *testing.T) {
		t.Parallel()
		inactive, err := svc.CreateUser(ctx, "inactive@x.com", "pw")
		require.NoError(t, err)

		u, err := svc.Authenticate(ctx, "inactive@x.com", "pw")
		require.NoError(t, err)
		assert.Equal(t, inactive.ID, u.ID)
		assert.False(t, u.IsActive)
	})

	t.Run("storage failure is not reported as bad credentials", func(t *testing.T) {
		t.Parallel()
		ms := &MockStorage{}
		s := NewService(ms, WithBcryptCost(bcrypt.MinCost))
		boom := errors.New("db down")
		ms.On("GetUserByEmail", mock.Anything, "a@x.com").Return(nil, boom)

		_, err := s.Authenticate(ctx, "a@x.com", "pw")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_SetPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("replaces hash", func(t *testing.T) {
		t.Parallel()
		svc, storage := newTestService(t)
		u, err := svc.CreateUser(ctx, "a@x.com", "pw1")
		require.NoError(t, err)
		oldState := u.TokenState()

		require.NoError(t, svc.SetPassword(ctx, u, "pw2"))
		assert.True(t, svc.CheckPassword(u, "pw2"))
		assert.False(t, svc.CheckPassword(u, "pw1"))
		assert.NotEqual(t, oldState, u.TokenState())

		stored, err := storage.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.PasswordHash, stored.PasswordHash)
	})

	t.Run("empty password", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		assert.ErrorIs(t, svc.SetPassword(ctx, &User{ID: uuid.New()}, ""), ErrPasswordRequired)
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(t)
		assert.ErrorIs(t, svc.SetPassword(ctx, &User{ID: uuid.New()}, "pw"), ErrUserNotFound)
	})
}

func TestService_ActivateAndRecordLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2024, 5, 1, 10, 0, 0, 123456789, time.UTC)
	storage := NewMemoryStorage()
	svc := NewService(storage, WithBcryptCost(bcrypt.MinCost), WithClock(func() time.Time { return now }))

	u, err := svc.CreateUser(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	before := u.TokenState()
	require.NoError(t, svc.Activate(ctx, u))
	assert.True(t, u.IsActive)
	assert.NotEqual(t, before, u.TokenState())

	before = u.TokenState()
	require.NoError(t, svc.RecordLogin(ctx, u))
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, now.Truncate(time.Microsecond), *u.LastLoginAt)
	assert.NotEqual(t, before, u.TokenState())

	stored, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Equal(t, u.TokenState(), stored.TokenState())

	found, err := svc.FindByEmail(ctx, " A@X.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestUser(t *testing.T) {
	t.Parallel()

	u := &User{ID: uuid.New(), Email: "a@x.com"}
	assert.Equal(t, "a@x.com", u.FullName())
	u.FirstName = "Ada"
	assert.Equal(t, "Ada", u.FullName())
	u.LastName = "Lovelace"
	assert.Equal(t, "Ada Lovelace", u.FullName())
	assert.Equal(t, u.ID.String(), u.TokenKey())

	a := u.TokenState()
	u.Email = "b@x.com"
	assert.NotEqual(t, a, u.TokenState())
}

func TestUserContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Nil(t, GetUserFromContext(ctx))

	u := &User{ID: uuid.New()}
	assert.Same(t, u, GetUserFromContext(SetUserToContext(ctx, u)))
}
