package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homerelief/internal"
	"homerelief/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

var (
	errLoginRejected    = errors.New("login rejected")
	errLoginUnconfirmed = errors.New("account not confirmed")
)

type session struct {
	accessToken string
	ttl         time.Duration
}

// signIn runs the Cognito password flow. Rejections are reported as
// errLoginRejected or errLoginUnconfirmed.
func (s *Service) signIn(ctx context.Context, email, password string) (*session, error) {
	resp, err := s.cognitoClient.InitiateAuth(ctx, &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: ctypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(s.config.CognitoClientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})

	var (
		notConfirmed  *ctypes.UserNotConfirmedException
		notAuthorized *ctypes.NotAuthorizedException
		notFound      *ctypes.UserNotFoundException
	)
	switch {
	case errors.As(err, &notConfirmed):
		return nil, errLoginUnconfirmed
	case errors.As(err, &notAuthorized), errors.As(err, &notFound):
		return nil, errLoginRejected
	case err != nil:
		return nil, err
	}

	result := resp.AuthenticationResult
	if result == nil || aws.ToString(result.AccessToken) == "" {
		return nil, errLoginRejected
	}

	return &session{
		accessToken: aws.ToString(result.AccessToken),
		ttl:         time.Duration(result.ExpiresIn) * time.Second,
	}, nil
}

func (s *Service) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	if _, err := s.userIDFromContext(r.Context()); err == nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	data := &types.LoginPageData{
		BasePageData: types.BasePageData{Title: s.t(r, "auth.login")},
	}
	if r.URL.Query().Get("confirmed") == "true" {
		data.Message = s.t(r, "auth.confirmed")
	}

	if err := s.renderTemplate(w, r, "page.login", data); err != nil {
		s.logger.WithError(err).Error("failed to render login page")
		s.internalServerError(w)
	}
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.PostFormValue("email"))

	sess, err := s.signIn(r.Context(), email, r.PostFormValue("password"))
	switch {
	case errors.Is(err, errLoginUnconfirmed):
		http.Redirect(w, r, "/register/confirm?"+url.Values{"email": {email}}.Encode(), http.StatusSeeOther)
		return
	case err != nil:
		if !errors.Is(err, errLoginRejected) {
			s.logger.WithError(err).Error("cognito sign in failed")
		}

		data := &types.LoginPageData{
			BasePageData: types.BasePageData{Title: s.t(r, "auth.login"), Error: s.t(r, "auth.invalid")},
			Email:        email,
		}
		w.WriteHeader(http.StatusUnauthorized)
		if err := s.renderTemplate(w, r, "page.login", data); err != nil {
			s.logger.WithError(err).Error("failed to render login page")
		}
		return
	}

	encoded, err := s.cookie.Encode(internal.COOKIE_ACCESS_TOKEN_NAME, sess.accessToken)
	if err != nil {
		s.logger.WithError(err).Error("failed to encode access token cookie")
		s.internalServerError(w)
		return
	}
	s.writeCookie(w, internal.COOKIE_ACCESS_TOKEN_NAME, encoded, sess.ttl)

	next := "/admin"
	if c, err := r.Cookie(internal.COOKIE_REDIRECT_NAME); err == nil {
		s.clearCookie(w, internal.COOKIE_REDIRECT_NAME)
		next = localPath(c.Value)
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// handlePostLogout clears the session cookie and releases the admin views
// held for the user.
func (s *Service) handlePostLogout(w http.ResponseWriter, r *http.Request) {
	if userID, err := s.userIDFromContext(r.Context()); err == nil {
		s.views.drop(userID)
	}

	s.clearCookie(w, internal.COOKIE_ACCESS_TOKEN_NAME)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Service) writeCookie(w http.ResponseWriter, name, value string, maxAge time.Duration) {
	age := int(maxAge.Seconds())
	if maxAge < 0 {
		value, age = "", -1
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		HttpOnly: true,
		Secure:   s.config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   age,
	})
}

func (s *Service) clearCookie(w http.ResponseWriter, name string) {
	s.writeCookie(w, name, "", -1)
}
