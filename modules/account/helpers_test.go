package account_test

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/anita-maxwynn/Django-Practice/modules/account"
	"github.com/anita-maxwynn/Django-Practice/pkg/auth"
	"github.com/anita-maxwynn/Django-Practice/pkg/email"
)

const (
	siteURL      = "http://example.test"
	testPassword = "s3cure-Passw0rd"
	newPassword  = "an0ther-Passw0rd"
)

var linkRe = regexp.MustCompile(`/(activate|reset_password)/([A-Za-z0-9_-]+)/([A-Za-z0-9_.-]+)`)

// outbox records every email synchronously.
type outbox struct {
	mu   sync.Mutex
	sent []email.SendEmailParams
}

func (o *outbox) SendEmail(_ context.Context, p email.SendEmailParams) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sent = append(o.sent, p)
	return nil
}

func (o *outbox) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.sent)
}

func (o *outbox) last(t *testing.T) email.SendEmailParams {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.sent, "no email sent")
	return o.sent[len(o.sent)-1]
}

type link struct {
	Path  string
	UID   string
	Token string
}

func linkIn(t *testing.T, body string) link {
	t.Helper()
	m := linkRe.FindStringSubmatch(body)
	require.NotNil(t, m, "no link in %q", body)
	return link{Path: m[0], UID: m[2], Token: m[3]}
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	svc     *account.Service
	users   *auth.Service
	storage *auth.MemoryStorage
	mail    *outbox
	clock   *clock
	flows   *flowLog
}

type flowLog struct {
	mu  sync.Mutex
	got []string
}

func (f *flowLog) observe(flow, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, flow+":"+outcome)
}

func (f *flowLog) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.got...)
}

func testConfig() account.Config {
	return account.Config{
		SiteURL:     siteURL + "/",
		TokenSecret: strings.Repeat("k", 32),
	}
}

func newFixture(t *testing.T, mailer email.EmailSender) *fixture {
	t.Helper()
	return newFixtureWithConfig(t, testConfig(), mailer)
}

func newFixtureWithConfig(t *testing.T, cfg account.Config, mailer email.EmailSender) *fixture {
	t.Helper()

	storage := auth.NewMemoryStorage()
	users := auth.NewService(storage, auth.WithBcryptCost(bcrypt.MinCost))
	mail := &outbox{}
	if mailer == nil {
		mailer = mail
	}
	clk := &clock{now: time.Now()}
	flows := &flowLog{}

	svc, err := account.NewService(cfg, users, mailer,
		account.WithClock(clk.Now),
		account.WithFlowObserver(flows.observe),
	)
	require.NoError(t, err)

	return &fixture{svc: svc, users: users, storage: storage, mail: mail, clock: clk, flows: flows}
}

func registerInput(addr string) account.RegisterInput {
	return account.RegisterInput{
		Email:     addr,
		FirstName: "Ann",
		LastName:  "Lee",
		Password1: testPassword,
		Password2: testPassword,
	}
}

// activeUser creates an activated user directly through auth.
func (f *fixture) activeUser(t *testing.T, addr string) *auth.User {
	t.Helper()
	u, err := f.users.CreateUser(context.Background(), addr, testPassword, auth.WithActive(true))
	require.NoError(t, err)
	return u
}
