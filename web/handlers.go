package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"realtor-scraper/firecrawl"
	"realtor-scraper/utils"
)

const (
	// rawPreviewLen bounds the raw markdown echoed back to the dashboard.
	rawPreviewLen = 2000

	// contentPreviewLen bounds the per-row content preview.
	contentPreviewLen = 500
)

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Real Estate Scraper — Login</title></head>
<body>
  <h1>Real Estate Scraper</h1>
  {{if .Error}}<p style="color:red">{{.Error}}</p>{{end}}
  <form method="POST" action="/login">
    <label>Username <input name="username"></label><br>
    <label>Password <input name="password" type="password"></label><br>
    <button type="submit">Log in</button>
  </form>
</body>
</html>
`))

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head><title>Real Estate Scraper — Dashboard</title></head>
<body>
  <h1>Welcome, {{.Username}}</h1>
  <p>POST a listing URL and search parameters to <code>/api/scrape</code> to preview scraped content.</p>
  <p><a href="/logout">Log out</a></p>
</body>
</html>
`))

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.sessions.currentUser(r); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	_ = loginTmpl.Execute(w, struct{ Error string }{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if expected, ok := users[username]; !ok || expected != password {
		s.logger.Warn("[web] Failed login attempt for user %q", username)
		w.WriteHeader(http.StatusUnauthorized)
		_ = loginTmpl.Execute(w, struct{ Error string }{"Invalid credentials. Please try again."})
		return
	}

	token := s.sessions.create(username)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	s.logger.Info("[web] User %q logged in", username)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.drop(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := s.sessions.currentUser(r)
	_ = dashboardTmpl.Execute(w, struct{ Username string }{user})
}

type scrapeRequest struct {
	URL          string `json:"url"`
	Location     string `json:"location"`
	PropertyType string `json:"property_type"`
	MinPrice     string `json:"min_price"`
	MaxPrice     string `json:"max_price"`
}

// previewRow is the one-row parameter echo shown alongside the preview.
type previewRow struct {
	Source         string `json:"source"`
	Location       string `json:"location"`
	PropertyType   string `json:"property_type"`
	PriceRange     string `json:"price_range"`
	ContentPreview string `json:"content_preview"`
	Status         string `json:"status"`
}

type scrapeResponse struct {
	Success    bool         `json:"success"`
	Data       []previewRow `json:"data,omitempty"`
	RawContent string       `json:"raw_content,omitempty"`
	SourceURL  string       `json:"source_url,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// handleScrape previews a single listing: it fetches the rendered page text
// and returns a bounded raw echo, a shorter content preview and an echo of
// the request parameters.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, scrapeResponse{Success: false, Error: "invalid JSON body"})
		return
	}
	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, scrapeResponse{Success: false, Error: "url is required"})
		return
	}

	doc, err := s.fetcher.Scrape(r.Context(), req.URL, firecrawl.ScrapeOptions{
		Formats:         []string{"markdown"},
		OnlyMainContent: true,
	})
	if err != nil {
		s.logger.Warn("[web] Preview fetch failed for %s: %v", req.URL, err)
		writeJSON(w, http.StatusBadGateway, scrapeResponse{Success: false, Error: err.Error()})
		return
	}

	raw := ""
	preview := "No content extracted"
	status := "Scrape returned no content"
	if doc.Markdown != "" {
		raw = utils.TruncateRunes(doc.Markdown, rawPreviewLen)
		preview = utils.TruncateRunes(doc.Markdown, contentPreviewLen)
		status = "Scraped Successfully"
	}

	minPrice := req.MinPrice
	if minPrice == "" {
		minPrice = "0"
	}
	maxPrice := req.MaxPrice
	if maxPrice == "" {
		maxPrice = "No limit"
	}

	writeJSON(w, http.StatusOK, scrapeResponse{
		Success: true,
		Data: []previewRow{{
			Source:         "Scraped Data",
			Location:       orNA(req.Location),
			PropertyType:   orNA(req.PropertyType),
			PriceRange:     fmt.Sprintf("$%s - $%s", minPrice, maxPrice),
			ContentPreview: preview,
			Status:         status,
		}},
		RawContent: raw,
		SourceURL:  req.URL,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
