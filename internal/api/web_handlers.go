package api

import (
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templates embed.FS

// authPageData contains data for the login page template.
type authPageData struct {
	User *authPageUser
}

// authPageUser is the slice of the account shown on the page.
type authPageUser struct {
	Email       string
	DisplayName string
}

// handleAuthPage serves a minimal HTML login page for trying the API from
// a browser.
// GET /auth-page/
func (s *Server) handleAuthPage(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFS(templates, "templates/auth.html")
	if err != nil {
		s.logger.Error("Failed to parse auth template", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := authPageData{}
	if user := currentUser(r.Context()); user != nil {
		data.User = &authPageUser{Email: user.Email, DisplayName: user.DisplayName}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("Failed to render auth template", "error", err)
	}
}
