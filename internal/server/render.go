package server

import (
	"net/http"

	"homerelief/pkg/types"
)

func (s *Service) renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) error {
	userID, _ := r.Context().Value(contextKeyUserID).(string)
	userEmail, _ := r.Context().Value(contextKeyEmail).(string)
	isAdmin, _ := r.Context().Value(contextKeyIsAdmin).(bool)

	if setter, ok := data.(types.NavbarDataSetter); ok {
		setter.SetNavbarData(types.NavbarData{
			IsAuthenticated: userID != "",
			IsAdmin:         isAdmin,
			UserID:          userID,
			UserEmail:       userEmail,
			Lang:            langFromContext(r.Context()),
			Path:            r.URL.RequestURI(),
		})
	}

	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}

	return s.templates.ExecuteTemplate(w, templateName, data)
}

// t translates a key in the request language.
func (s *Service) t(r *http.Request, key string, params ...string) string {
	return s.i18n.T(langFromContext(r.Context()), key, params...)
}
