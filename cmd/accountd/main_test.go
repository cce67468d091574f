package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/anita-maxwynn/Django-Practice/pkg/auth"
)

func TestParseSuperuserFlags(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	f, err := parseSuperuserFlags([]string{"-email", "root@example.com", "-password", "pw", "-first", "Ann", "-inactive"}, &out)
	require.NoError(t, err)
	assert.Equal(t, superuserFlags{email: "root@example.com", password: "pw", first: "Ann", inactive: true}, f)

	_, err = parseSuperuserFlags([]string{"-email", "root@example.com"}, &out)
	assert.Error(t, err)

	_, err = parseSuperuserFlags([]string{"-bogus"}, &out)
	assert.Error(t, err)
}

func TestCreateSuperuser(t *testing.T) {
	t.Parallel()

	users := auth.NewService(auth.NewMemoryStorage(), auth.WithBcryptCost(bcrypt.MinCost))
	var out bytes.Buffer

	user, err := createSuperuser(context.Background(), users, superuserFlags{
		email:    "Root@Example.com",
		password: "s3cure-Passw0rd",
		first:    "Ann",
		last:     "Lee",
	}, &out)
	require.NoError(t, err)

	assert.True(t, user.IsActive)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
	assert.Equal(t, "root@example.com", user.Email)
	assert.Contains(t, out.String(), "Superuser root@example.com created (active: true).")

	inactive, err := createSuperuser(context.Background(), users, superuserFlags{
		email:    "other@example.com",
		password: "s3cure-Passw0rd",
		inactive: true,
	}, &out)
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)

	_, err = createSuperuser(context.Background(), users, superuserFlags{email: "root@example.com", password: "x"}, &out)
	assert.ErrorIs(t, err, auth.ErrEmailAlreadyExists)
}
