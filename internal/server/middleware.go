package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"homerelief/internal"
	"homerelief/internal/i18n"
	"homerelief/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyUserID  contextKey = "user_id"
	contextKeyEmail   contextKey = "email"
	contextKeyIsAdmin contextKey = "is_admin"
	contextKeyLang    contextKey = "lang"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket upgrader take over the connection.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// authenticate decrypts the access token cookie and verifies the JWT against
// the Cognito key set.
func (s *Service) authenticate(r *http.Request) (userID, email string, err error) {
	cookie, err := r.Cookie(internal.COOKIE_ACCESS_TOKEN_NAME)
	if err != nil {
		return "", "", err
	}

	var accessToken string
	if err := s.cookie.Decode(internal.COOKIE_ACCESS_TOKEN_NAME, cookie.Value, &accessToken); err != nil {
		return "", "", fmt.Errorf("decrypt access token: %w", err)
	}

	if s.jwksCache == nil {
		return "", "", errors.New("no key set configured")
	}

	set, err := s.jwksCache.Lookup(r.Context(), s.jwksURL)
	if err != nil {
		return "", "", fmt.Errorf("fetch JWKS: %w", err)
	}

	token, err := jwt.Parse(
		[]byte(accessToken),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", "", fmt.Errorf("parse JWT: %w", err)
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return "", "", errors.New("no user ID in JWT subject claim")
	}

	// email is optional
	_ = token.Get("email", &email)

	return userID, email, nil
}

// LoadUser resolves the request language and, when a valid session cookie is
// present, the signed-in user and their admin role.
func (s *Service) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextKeyLang, i18n.Negotiate(r))

		userID, email, err := s.authenticate(r)
		if err != nil {
			if !errors.Is(err, http.ErrNoCookie) {
				s.logger.WithError(err).Debug("ignoring invalid session")
			}
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		ctx = context.WithValue(ctx, contextKeyUserID, userID)
		if email != "" {
			ctx = context.WithValue(ctx, contextKeyEmail, email)
		}

		isAdmin := false
		if s.roles != nil {
			isAdmin, err = s.roles.IsAdmin(ctx, userID)
			if err != nil {
				s.logger.WithError(err).WithField("user_id", userID).Error("failed to look up admin role")
			}
		}
		ctx = context.WithValue(ctx, contextKeyIsAdmin, isAdmin)

		s.logger.WithFields(logrus.Fields{
			"user_id":  userID,
			"email":    email,
			"is_admin": isAdmin,
		}).Debug("authenticated user")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth sends anonymous visitors to the login page and remembers where
// they were going.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.userIDFromContext(r.Context()); err != nil {
			s.writeCookie(w, internal.COOKIE_REDIRECT_NAME, r.URL.RequestURI(), 5*time.Minute)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin renders the access denied page for signed-in users without the
// admin role.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isAdmin, _ := r.Context().Value(contextKeyIsAdmin).(bool); isAdmin {
			next.ServeHTTP(w, r)
			return
		}

		lang := langFromContext(r.Context())
		data := &types.BasePageData{Title: s.i18n.T(lang, "auth.access_denied")}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		if err := s.renderTemplate(w, r, "page.access-denied", data); err != nil {
			s.logger.WithError(err).Error("failed to render access denied page")
		}
	})
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newURL := *r.URL
			newURL.Path = strings.TrimSuffix(path, "/")

			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func langFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(contextKeyLang).(string); ok && lang != "" {
		return lang
	}
	return i18n.DefaultLang
}
