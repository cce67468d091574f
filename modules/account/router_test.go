package account_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anita-maxwynn/Django-Practice/modules/account"
	"github.com/anita-maxwynn/Django-Practice/handler"
	"github.com/anita-maxwynn/Django-Practice/pkg/cookie"
	"github.com/anita-maxwynn/Django-Practice/pkg/ratelimiter"
	"github.com/anita-maxwynn/Django-Practice/pkg/session"
)

type browser struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
}

type page struct {
	Status int
	Path   string
	Body   string
}

func newBrowser(t *testing.T, f *fixture, opts ...account.RouterOption) *browser {
	t.Helper()

	cookies, err := cookie.New([]string{strings.Repeat("c", 32)})
	require.NoError(t, err)
	flasher := account.NewFlasher(cookies)
	sessions := session.New(
		session.NewMemoryStore(time.Minute),
		session.NewCookieTransport(cookies, "sid", false),
		session.WithUnauthorizedHandler(account.LoginRequired(flasher)),
	)

	srv := httptest.NewServer(account.Router(f.svc, sessions, flasher, opts...))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, srv: srv, client: &http.Client{Jar: jar}}
}

func (b *browser) do(req *http.Request) page {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return page{Status: resp.StatusCode, Path: resp.Request.URL.Path, Body: string(body)}
}

func (b *browser) get(path string) page {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.srv.URL+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) post(path string, form url.Values, headers ...string) page {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodPost, b.srv.URL+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return b.do(req)
}

func TestRouter_RegisterActivateLoginChangePassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	b := newBrowser(t, f)

	p := b.get("/register")
	assert.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, `id="register-form"`)

	p = b.post("/register", url.Values{
		"email":      {"ann@example.com"},
		"first_name": {"Ann"},
		"password1":  {testPassword},
		"password2":  {"mismatch-Passw0rd"},
	})
	assert.Equal(t, "/register", p.Path)
	assert.Contains(t, p.Body, "Passwords do not match.")
	assert.Contains(t, p.Body, `value="ann@example.com"`)
	assert.NotContains(t, p.Body, testPassword)

	p = b.post("/register", url.Values{
		"email":      {"ann@example.com"},
		"first_name": {"Ann"},
		"password1":  {testPassword},
		"password2":  {testPassword},
	})
	assert.Equal(t, "/login", p.Path)
	assert.Contains(t, p.Body, "Registration successful. Check your email for confirmation.")

	p = b.post("/login", url.Values{"email": {"ann@example.com"}, "password": {testPassword}})
	assert.Equal(t, "/login", p.Path)
	assert.Contains(t, p.Body, "Invalid email or password.", "inactive accounts cannot log in")

	l := linkIn(t, f.mail.last(t).BodyHTML)
	p = b.get(l.Path)
	assert.Equal(t, "/login", p.Path)
	assert.Contains(t, p.Body, "Your account has been activated. You can now login.")

	p = b.get(l.Path)
	assert.Equal(t, "/register", p.Path)
	assert.Contains(t, p.Body, "Activation link is invalid or expired.")

	p = b.post("/login", url.Values{"email": {"ann@example.com"}, "password": {testPassword}})
	assert.Equal(t, "/", p.Path)
	assert.Contains(t, p.Body, "Welcome, Ann")

	p = b.post("/change_password", url.Values{
		"old_password":  {"wrong"},
		"new_password1": {newPassword},
		"new_password2": {newPassword},
	})
	assert.Equal(t, "/change_password", p.Path)
	assert.Contains(t, p.Body, "Your old password was entered incorrectly.")
	assert.Contains(t, p.Body, "Please correct the errors below.")

	p = b.post("/change_password", url.Values{
		"old_password":  {testPassword},
		"new_password1": {newPassword},
		"new_password2": {newPassword},
	})
	assert.Equal(t, "/", p.Path)
	assert.Contains(t, p.Body, "Password changed successfully.")
	assert.Contains(t, p.Body, "Welcome, Ann", "session survives a password change")

	p = b.post("/logout", nil)
	assert.Equal(t, "/login", p.Path)
	assert.Contains(t, p.Body, "You have been logged out successfully.")

	p = b.get("/")
	assert.Equal(t, "/login", p.Path)
	assert.Contains(t, p.Body, "You need to login to access this page.")
	assert.Contains(t, p.Body, `name="next" value="/"`)

	p = b.post("/login", url.Values{"email": {"ann@example.com"}, "password": {testPassword}})
	assert.Contains(t, p.Body, "Invalid email or password.")

	p = b.post("/login", url.Values{"email": {"ann@example.com"}, "password": {newPassword}, "next": {"/change_password"}})
	assert.Equal(t, "/change_password", p.Path)
}

func TestRouter_ForgotAndResetPassword(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	f.activeUser(t, "ann@example.com")
	b := newBrowser(t, f)
	sent := f.mail.count()

	p := b.post("/forgot_password", url.Values{"email": {"nobody@example.com"}})
	assert.Equal(t, http.StatusOK, p.Status)
	assert.Equal(t, "/forgot_password", p.Path, "the form is shown again with the notice")
	assert.Contains(t, p.Body, `id="forgot_password-form"`)
	assert.Contains(t, p.Body, "If an account exists for that email, a reset link has been sent.")
	assert.Equal(t, sent, f.mail.count())

	p = b.post("/forgot_password", url.Values{"email": {"nope"}})
	assert.Equal(t, "/forgot_password", p.Path)
	assert.Contains(t, p.Body, "Enter a valid email address.")

	p = b.post("/forgot_password", url.Values{"email": {"ann@example.com"}})
	assert.Equal(t, "/forgot_password", p.Path)
	assert.Contains(t, p.Body, "If an account exists for that email, a reset link has been sent.")
	l := linkIn(t, f.mail.last(t).BodyHTML)

	p = b.get(l.Path)
	assert.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, `id="reset_password-form"`)

	p = b.post(l.Path, url.Values{"new_password1": {newPassword}, "new_password2": {"other-Passw0rd"}})
	assert.Equal(t, l.Path, p.Path)
	assert.Contains(t, p.Body, "Passwords do not match.")

	p = b.post(l.Path, url.Values{"new_password1": {newPassword}, "new_password2": {newPassword}})
	assert.Equal(t, "/login", p.Path)
	assert.Contains(t, p.Body, "Your password has been reset successfully. You can now login.")

	p = b.get(l.Path)
	assert.Equal(t, "/forgot_password", p.Path)
	assert.Contains(t, p.Body, "Reset link is invalid or expired.")

	p = b.post("/login", url.Values{"email": {"ann@example.com"}, "password": {newPassword}})
	assert.Equal(t, "/", p.Path)
}

func TestRouter_DatastarLoginError(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	b := newBrowser(t, f)

	p := b.post("/login", url.Values{"email": {"ann@example.com"}, "password": {"wrong"}}, "Accept", "text/event-stream")
	assert.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, "login-form")
	assert.Contains(t, p.Body, "Invalid email or password.")
	assert.NotContains(t, p.Body, "<html")
}

func TestRouter_DatastarForgotPasswordNotice(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	b := newBrowser(t, f)

	p := b.post("/forgot_password", url.Values{"email": {"nobody@example.com"}}, "Accept", "text/event-stream")
	assert.Equal(t, http.StatusOK, p.Status)
	assert.Contains(t, p.Body, `id="flashes"`)
	assert.Contains(t, p.Body, "If an account exists for that email, a reset link has been sent.")
	assert.NotContains(t, p.Body, "<html")
}

func TestRouter_OpenRedirectIsIgnored(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)
	f.activeUser(t, "ann@example.com")
	b := newBrowser(t, f)

	p := b.post("/login", url.Values{"email": {"ann@example.com"}, "password": {testPassword}, "next": {"https://evil.example/"}})
	assert.Equal(t, "/", p.Path)
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()
	f := newFixture(t, nil)

	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity:       2,
		RefillRate:     1,
		RefillInterval: time.Hour,
	})
	require.NoError(t, err)
	eh := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{ErrorPage: account.ErrorPage, ErrorToast: account.ErrorToast})
	mw := ratelimiter.Middleware(limiter, ratelimiter.ByPath, ratelimiter.WithLimitedHandler(account.TooManyAttempts(eh)))
	b := newBrowser(t, f, account.WithRateLimit(mw))

	creds := url.Values{"email": {"nobody@example.com"}, "password": {"wrong-Passw0rd"}}
	for range 2 {
		p := b.post("/login", creds)
		assert.Equal(t, http.StatusOK, p.Status)
		assert.Contains(t, p.Body, "Invalid email or password.")
	}

	p := b.post("/login", creds)
	assert.Equal(t, http.StatusTooManyRequests, p.Status)
	assert.Contains(t, p.Body, "Too many attempts. Please try again later.")

	p = b.get("/login")
	assert.Equal(t, http.StatusOK, p.Status, "only submissions are throttled")
}

func TestRouter_ShortPasswordsEndToEnd(t *testing.T) {
	t.Parallel()
	cfg := testConfig()
	cfg.PasswordMinLength = 3
	f := newFixtureWithConfig(t, cfg, nil)
	b := newBrowser(t, f)
	ctx := context.Background()

	p := b.post("/register", url.Values{"email": {"a@x.com"}, "password1": {"pw1"}, "password2": {"pw1"}})
	assert.Equal(t, "/login", p.Path)
	user, err := f.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	p = b.get(linkIn(t, f.mail.last(t).BodyHTML).Path)
	assert.Equal(t, "/login", p.Path)
	user, err = f.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	p = b.post("/login", url.Values{"email": {"a@x.com"}, "password": {"pw1"}})
	assert.Equal(t, "/", p.Path, "session established")

	p = b.post("/change_password", url.Values{"old_password": {"pw1"}, "new_password1": {"pw2"}, "new_password2": {"pw2"}})
	assert.Equal(t, "/", p.Path)
	assert.Contains(t, p.Body, "Password changed successfully.")

	b.post("/logout", nil)

	p = b.post("/login", url.Values{"email": {"a@x.com"}, "password": {"pw1"}})
	assert.Equal(t, "/login", p.Path)
	assert.Contains(t, p.Body, "Invalid email or password.")

	p = b.post("/login", url.Values{"email": {"a@x.com"}, "password": {"pw2"}})
	assert.Equal(t, "/", p.Path)
}
