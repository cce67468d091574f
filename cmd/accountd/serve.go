package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/anita-maxwynn/Django-Practice/handler"
	"github.com/anita-maxwynn/Django-Practice/modules/account"
	"github.com/anita-maxwynn/Django-Practice/pkg/auth"
	"github.com/anita-maxwynn/Django-Practice/pkg/clientip"
	"github.com/anita-maxwynn/Django-Practice/pkg/config"
	"github.com/anita-maxwynn/Django-Practice/pkg/cookie"
	"github.com/anita-maxwynn/Django-Practice/pkg/email"
	"github.com/anita-maxwynn/Django-Practice/pkg/httpserver"
	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
	"github.com/anita-maxwynn/Django-Practice/pkg/metrics"
	"github.com/anita-maxwynn/Django-Practice/pkg/ratelimiter"
	"github.com/anita-maxwynn/Django-Practice/pkg/redis"
	"github.com/anita-maxwynn/Django-Practice/pkg/requestid"
	"github.com/anita-maxwynn/Django-Practice/pkg/session"
)

func serve(ctx context.Context, log *slog.Logger, cfg appConfig) error {
	var (
		accountCfg account.Config
		emailCfg   email.Config
		cookieCfg  cookie.Config
		sessionCfg session.Config
		httpCfg    httpserver.Config
		ipCfg      clientip.Config
		limitCfg   ratelimiter.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&accountCfg) },
		func() error { return config.Load(&emailCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&sessionCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&ipCfg) },
		func() error { return config.Load(&limitCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	checks := map[string]httpserver.CheckFunc{}

	storage, closeStorage, err := userStorage(ctx, log, cfg.StorageDriver, checks)
	if err != nil {
		return err
	}
	defer closeStorage()

	store, closeStore, err := sessionStore(ctx, log, sessionCfg, checks)
	if err != nil {
		return err
	}
	defer closeStore()

	m := metrics.New()

	sender, err := email.NewSender(emailCfg, log)
	if err != nil {
		return err
	}
	mailer := email.NewAsyncSenderFromConfig(sender, emailCfg,
		email.WithAsyncLogger(log),
		email.WithOutcomeHook(m.ObserveEmail),
	)
	if err := m.RegisterQueueDepth("email", mailer.Pending); err != nil {
		return err
	}

	users := auth.NewService(storage, auth.WithLogger(log))
	svc, err := account.NewService(accountCfg, users, mailer,
		account.WithLogger(log),
		account.WithFlowObserver(m.ObserveFlow),
	)
	if err != nil {
		return err
	}

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}
	flasher := account.NewFlasher(cookies)
	sessions := session.New(store,
		session.NewCookieTransport(cookies, sessionCfg.CookieName, sessionCfg.SecureCookies),
		session.WithConfig(sessionCfg),
		session.WithUnauthorizedHandler(account.LoginRequired(flasher)),
	)

	errorHandler := handler.NewErrorHandler(log, handler.ErrorHandlerConfig{
		ErrorPage:  account.ErrorPage,
		ErrorToast: account.ErrorToast,
	})

	routerOpts := []account.RouterOption{
		account.WithRouterLogger(log),
		account.WithErrorHandler(errorHandler),
	}
	if limitCfg.Enabled {
		limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), limitCfg)
		if err != nil {
			return err
		}
		routerOpts = append(routerOpts, account.WithRateLimit(ratelimiter.Middleware(limiter,
			ratelimiter.Composite(ratelimiter.ByIP, ratelimiter.ByPath),
			ratelimiter.WithLimitedHandler(account.TooManyAttempts(errorHandler)),
			ratelimiter.WithErrorHook(func(r *http.Request, err error) {
				log.WarnContext(r.Context(), "rate limiter unavailable", logger.Error(err), logger.Component("ratelimiter"))
			}),
		)))
	}

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.New(ipCfg.TrustedHeaders...).Middleware,
		logger.Middleware(log),
		middleware.Recoverer,
		m.Middleware,
	)
	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, cfg.ReadinessTimeout, checks))
	r.Handle("/metrics", m.Handler())
	r.Mount("/", account.Router(svc, sessions, flasher, routerOpts...))

	server := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))

	// The mail pool outlives the server so requests still in flight during
	// shutdown can enqueue; it drains once the server has stopped.
	poolCtx, stopPool := context.WithCancel(context.WithoutCancel(ctx))
	defer stopPool()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(mailer.Run(poolCtx))
	g.Go(func() error {
		defer stopPool()
		return server.Run(gctx, r)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("accountd: %w", err)
	}
	log.Info("accountd stopped")
	return nil
}

func sessionStore(ctx context.Context, log *slog.Logger, cfg session.Config, checks map[string]httpserver.CheckFunc) (session.Store, func(), error) {
	switch cfg.Store {
	case driverMemory:
		return session.NewMemoryStore(cfg.CleanupInterval), func() {}, nil

	case driverRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, nil, err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		checks["redis"] = redis.Healthcheck(client)
		log.Info("sessions stored in redis", logger.Component("session"))
		return session.NewRedisStore(client, redisCfg.KeyPrefix), func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}
