package session

import (
	"net/http"
)

// Middleware loads the request's session, if any, into the context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Get(r.Context(), r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		_ = m.refresh(r.Context(), w, sess)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// RequireAuth passes only requests with an authenticated session; others go
// to the unauthorized handler.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := FromContext(r.Context())
		if !ok {
			var err error
			if sess, err = m.Get(r.Context(), r); err != nil {
				sess = nil
			}
		}
		if !sess.IsAuthenticated() {
			m.unauthorized.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}
