package server

import (
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"homerelief/internal/collection"
	"homerelief/internal/divisions"
	"homerelief/internal/forms"
	"homerelief/internal/i18n"
	"homerelief/internal/mailer"
	"homerelief/internal/storage"
	"homerelief/internal/store"
	"homerelief/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/websocket"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

//go:embed templates static
var uiFS embed.FS

type cognitoAPI interface {
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
	SignUp(ctx context.Context, params *cognitoidentityprovider.SignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.SignUpOutput, error)
	ConfirmSignUp(ctx context.Context, params *cognitoidentityprovider.ConfirmSignUpInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ConfirmSignUpOutput, error)
	ResendConfirmationCode(ctx context.Context, params *cognitoidentityprovider.ResendConfirmationCodeInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.ResendConfirmationCodeOutput, error)
}

type roleChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type Repositories struct {
	DamageReports   *store.DamageReportRepository
	DonationOffers  *store.DonationOfferRepository
	VolunteerOffers *store.VolunteerOfferRepository
	Roles           *store.RoleRepository
	Stats           *store.StatsRepository
}

type Service struct {
	logger    *logrus.Logger
	config    *types.Config
	templates *template.Template

	cognitoClient cognitoAPI
	cookie        *securecookie.SecureCookie
	jwksCache     *jwk.Cache
	jwksURL       string

	reportsRepo    *store.DamageReportRepository
	donationsRepo  *store.DonationOfferRepository
	volunteersRepo *store.VolunteerOfferRepository
	roles          roleChecker
	statsRepo      *store.StatsRepository

	feed      collection.Feed
	uploader  storage.Uploader
	mailer    mailer.Mailer
	i18n      *i18n.Bundle
	forms     *forms.Processor
	divisions *divisions.Catalog

	views    *viewRegistry
	upgrader websocket.Upgrader

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	cognitoClient cognitoAPI,
	repos Repositories,
	feed collection.Feed,
	uploader storage.Uploader,
	mail mailer.Mailer,
	bundle *i18n.Bundle,
	catalog *divisions.Catalog,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	processor, err := forms.NewProcessor(bundle, catalog)
	if err != nil {
		return nil, fmt.Errorf("register form validations: %w", err)
	}

	s := &Service{
		logger:        logger,
		config:        config,
		cognitoClient: cognitoClient,
		cookie:        securecookie.New(hashKey, blockKey),
		jwksCache:     jwkCache,
		jwksURL:       jwksURL,

		reportsRepo:    repos.DamageReports,
		donationsRepo:  repos.DonationOffers,
		volunteersRepo: repos.VolunteerOffers,
		roles:          repos.Roles,
		statsRepo:      repos.Stats,

		feed:      feed,
		uploader:  uploader,
		mailer:    mail,
		i18n:      bundle,
		forms:     processor,
		divisions: catalog,

		views: newViewRegistry(time.Duration(config.ViewIdleMinutes) * time.Minute),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	templates, err := loadTemplates(bundle)
	if err != nil {
		return nil, err
	}
	s.templates = templates

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

// Stop shuts the server down and stops every live admin view.
func (s *Service) Stop(ctx context.Context) error {
	err := s.server.Shutdown(ctx)
	s.views.close()
	return err
}

// SweepViews drops idle admin views until ctx is done.
func (s *Service) SweepViews(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.views.sweep(); n > 0 {
				s.logger.WithField("views", n).Debug("expired idle admin views")
			}
		}
	}
}

func (s *Service) pageSize() int {
	if s.config.AdminPageSize > 0 {
		return s.config.AdminPageSize
	}
	return collection.DefaultPageSize
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)
	r.Use(s.LoadUser)

	r.HandleFunc("/", s.handleHome, http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)
	r.HandleFunc("/flood-map", s.handleFloodMap, http.MethodGet)
	r.HandleFunc("/lang/:code", s.handleSetLanguage, http.MethodGet)

	r.HandleFunc("/report", s.handleGetDamageReport, http.MethodGet)
	r.HandleFunc("/report", s.handlePostDamageReport, http.MethodPost)
	r.HandleFunc("/report/divisions", s.handleGetDivisions, http.MethodGet)
	r.HandleFunc("/donate", s.handleGetDonationOffer, http.MethodGet)
	r.HandleFunc("/donate", s.handlePostDonationOffer, http.MethodPost)
	r.HandleFunc("/volunteer", s.handleGetVolunteerOffer, http.MethodGet)
	r.HandleFunc("/volunteer", s.handlePostVolunteerOffer, http.MethodPost)

	r.HandleFunc("/register", s.handleGetRegister, http.MethodGet)
	r.HandleFunc("/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/register/confirm", s.handleGetRegisterConfirm, http.MethodGet)
	r.HandleFunc("/register/confirm", s.handlePostRegisterConfirm, http.MethodPost)
	r.HandleFunc("/register/confirm/resend", s.handlePostResendCode, http.MethodPost)
	r.HandleFunc("/login", s.handleGetLogin, http.MethodGet)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireAdmin)

		r.HandleFunc("/admin", s.handleAdminIndex, http.MethodGet)

		registerAdminTable(r, s.damageReportTable())
		registerAdminTable(r, s.donationOfferTable())
		registerAdminTable(r, s.volunteerOfferTable())
	})

	staticRoot, err := fs.Sub(uiFS, "static")
	if err != nil {
		s.logger.WithError(err).Fatal("failed to mount static assets")
	}
	r.Handle("/static/...", http.StripPrefix("/static/", http.FileServer(http.FS(staticRoot))), http.MethodGet)
}

func loadTemplates(bundle *i18n.Bundle) (*template.Template, error) {
	funcMap := template.FuncMap{
		"t": func(lang, key string, params ...any) string {
			args := make([]string, len(params))
			for i, p := range params {
				args[i] = fmt.Sprint(p)
			}
			return bundle.T(lang, key, args...)
		},
		"label": bundle.FieldLabel,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"derefOr": func(s *string, defaultVal string) string {
			if s == nil {
				return defaultVal
			}
			return *s
		},
		"date": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"join": strings.Join,
		"add": func(a, b int) int {
			return a + b
		},
	}

	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(uiFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		data, err := fs.ReadFile(uiFS, path)
		if err != nil {
			return fmt.Errorf("read template %s: %w", path, err)
		}

		if _, err := t.Parse(string(data)); err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}
