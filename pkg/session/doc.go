// Package session implements server-side HTTP sessions.
//
// A Session lives in a Store (MemoryStore on go-cache, RedisStore on
// go-redis) keyed by a random token. The client only holds that token,
// carried by a Transport; CookieTransport keeps it in an encrypted cookie.
//
// Authenticate binds a user to the session and always rotates the token so a
// pre-login token cannot be reused after login. Destroy removes the record and
// clears the cookie.
//
//	mgr := session.New(store, session.NewCookieTransport(cookies, "sid", false),
//		session.WithConfig(cfg),
//		session.WithUnauthorizedHandler(redirectToLogin),
//	)
//
//	r.Use(mgr.Middleware)
//	r.With(mgr.RequireAuth).Get("/", home)
package session
