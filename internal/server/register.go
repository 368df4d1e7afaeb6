package server

import (
	"errors"
	"net/http"
	"net/url"

	"homerelief/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

func (s *Service) renderRegister(w http.ResponseWriter, r *http.Request, status int, data *types.RegisterPageData) {
	data.Title = s.t(r, "auth.register")
	if len(data.FieldErrors) > 0 && data.Error == "" {
		data.Error = s.t(r, "form.fix_errors")
	}

	w.WriteHeader(status)
	if err := s.renderTemplate(w, r, "page.register", data); err != nil {
		s.logger.WithError(err).Error("failed to render register page")
	}
}

func (s *Service) renderConfirm(w http.ResponseWriter, r *http.Request, status int, data *types.ConfirmRegisterPageData) {
	data.Title = s.t(r, "auth.confirm")

	w.WriteHeader(status)
	if err := s.renderTemplate(w, r, "page.register.confirm", data); err != nil {
		s.logger.WithError(err).Error("failed to render register confirm page")
	}
}

func (s *Service) handleGetRegister(w http.ResponseWriter, r *http.Request) {
	if _, err := s.userIDFromContext(r.Context()); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.renderRegister(w, r, http.StatusOK, &types.RegisterPageData{})
}

func (s *Service) handlePostRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	lang := langFromContext(r.Context())
	f, fieldErrs, err := s.forms.Register(lang, r.PostForm)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode register form")
		s.internalServerError(w)
		return
	}

	data := &types.RegisterPageData{Email: f.Email, FieldErrors: fieldErrs}
	if len(fieldErrs) > 0 {
		s.renderRegister(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	_, err = s.cognitoClient.SignUp(r.Context(), &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(s.config.CognitoClientID),
		Username: aws.String(f.Email),
		Password: aws.String(f.Password),
		UserAttributes: []ctypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(f.Email)},
		},
	})

	var (
		invalidPassword *ctypes.InvalidPasswordException
		userExists      *ctypes.UsernameExistsException
	)
	switch {
	case errors.As(err, &invalidPassword):
		data.FieldErrors = map[string]string{"password": s.t(r, "auth.password_short")}
		s.renderRegister(w, r, http.StatusUnprocessableEntity, data)
		return
	case errors.As(err, &userExists):
		data.FieldErrors = map[string]string{"email": s.t(r, "auth.account_exists")}
		s.renderRegister(w, r, http.StatusConflict, data)
		return
	case err != nil:
		s.logger.WithError(err).Error("cognito sign up failed")
		data.Error = s.t(r, "auth.signup_failed")
		s.renderRegister(w, r, http.StatusBadGateway, data)
		return
	}

	http.Redirect(w, r, "/register/confirm?"+url.Values{"email": {f.Email}}.Encode(), http.StatusSeeOther)
}

func (s *Service) handleGetRegisterConfirm(w http.ResponseWriter, r *http.Request) {
	s.renderConfirm(w, r, http.StatusOK, &types.ConfirmRegisterPageData{
		Email: r.URL.Query().Get("email"),
	})
}

func (s *Service) handlePostRegisterConfirm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	lang := langFromContext(r.Context())
	f, fieldErrs, err := s.forms.ConfirmRegister(lang, r.PostForm)
	if err != nil {
		s.logger.WithError(err).Error("failed to decode confirm form")
		s.internalServerError(w)
		return
	}

	data := &types.ConfirmRegisterPageData{Email: f.Email, FieldErrors: fieldErrs}
	if len(fieldErrs) > 0 {
		s.renderConfirm(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	_, err = s.cognitoClient.ConfirmSignUp(r.Context(), &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(s.config.CognitoClientID),
		Username:         aws.String(f.Email),
		ConfirmationCode: aws.String(f.Code),
	})

	var mismatch *ctypes.CodeMismatchException
	switch {
	case errors.As(err, &mismatch):
		data.FieldErrors = map[string]string{"code": s.t(r, "auth.code_mismatch")}
		s.renderConfirm(w, r, http.StatusUnprocessableEntity, data)
		return
	case err != nil:
		s.logger.WithError(err).Error("cognito confirm sign up failed")
		data.Error = s.t(r, "auth.confirm_failed")
		s.renderConfirm(w, r, http.StatusBadGateway, data)
		return
	}

	http.Redirect(w, r, "/login?confirmed=true", http.StatusSeeOther)
}

func (s *Service) handlePostResendCode(w http.ResponseWriter, r *http.Request) {
	data := &types.ConfirmRegisterPageData{Email: r.PostFormValue("email")}

	_, err := s.cognitoClient.ResendConfirmationCode(r.Context(), &cognitoidentityprovider.ResendConfirmationCodeInput{
		ClientId: aws.String(s.config.CognitoClientID),
		Username: aws.String(data.Email),
	})
	if err != nil {
		s.logger.WithError(err).Warn("cognito resend confirmation code failed")
		data.Error = s.t(r, "auth.confirm_failed")
		s.renderConfirm(w, r, http.StatusBadGateway, data)
		return
	}

	data.Message = s.t(r, "auth.code_resent")
	s.renderConfirm(w, r, http.StatusOK, data)
}
