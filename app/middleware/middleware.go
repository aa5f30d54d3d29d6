package middleware

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"time"

	"scrawl/app/auth"
)

type contextKey string

const userKey contextKey = "user"

// Logger logs information about each request
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s took %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// Recoverer recovers from panics and logs the error
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("PANIC: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// CurrentUser parses the session cookie, if any, and puts the resulting
// claims on the request context. Anonymous requests pass through.
func CurrentUser(sessions *auth.Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, err := sessions.FromRequest(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFrom returns the session claims stored on the context by CurrentUser
func UserFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(userKey).(*auth.Claims)
	return claims, ok
}

// RequireLogin redirects anonymous requests to the login page with a
// next parameter pointing back at the original target.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFrom(r.Context()); !ok {
			target := "/auth/login?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
