package auth

import (
	"crypto/sha256"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// User is an account identity. Email is the login key.
type User struct {
	ID           uuid.UUID
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string `json:"-"`
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	IsSeller     bool
	IsCustomer   bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name, falling back to the email.
func (u *User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}

// TokenKey implements token.Target.
func (u *User) TokenKey() string {
	return u.ID.String()
}

// TokenState implements token.Target. The fingerprint changes whenever the
// password, activation status, last login or email changes, which invalidates
// every token issued before the change.
func (u *User) TokenState() []byte {
	h := sha256.New()
	h.Write([]byte(u.PasswordHash))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatBool(u.IsActive)))
	h.Write([]byte{0})
	if u.LastLoginAt != nil {
		h.Write([]byte(strconv.FormatInt(u.LastLoginAt.UTC().Truncate(time.Microsecond).UnixMicro(), 10)))
	}
	h.Write([]byte{0})
	h.Write([]byte(u.Email))
	return h.Sum(nil)
}

// UserOption sets optional fields on a user being created.
type UserOption func(*userParams)

type userParams struct {
	firstName   string
	lastName    string
	isActive    bool
	isStaff     *bool
	isSuperuser *bool
	isSeller    *bool
	isCustomer  *bool
}

func WithName(first, last string) UserOption {
	return func(s *userParams) {
		s.firstName = first
		s.lastName = last
	}
}

func WithActive(active bool) UserOption {
	return func(s *userParams) { s.isActive = active }
}

func WithStaff(v bool) UserOption {
	return func(s *userParams) { s.isStaff = &v }
}

func WithSuperuser(v bool) UserOption {
	return func(s *userParams) { s.isSuperuser = &v }
}

func WithSeller(v bool) UserOption {
	return func(s *userParams) { s.isSeller = &v }
}

func WithCustomer(v bool) UserOption {
	return func(s *userParams) { s.isCustomer = &v }
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
