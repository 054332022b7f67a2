package http

import (
	"errors"
	"net/http"
	"strings"

	"fincalc/domain"
)

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/account"
	}
	return next
}

func (s *Server) authPage(w http.ResponseWriter, r *http.Request, name, title string, status int, email, message string) {
	data := s.base(r, s.site.Page(title, "", "/"+name, "").NoIndex())
	data.Next = safeNext(r.FormValue("next"))
	data.Email = email
	data.Error = message
	render(w, r, status, s.views.page(name, data))
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.authPage(w, r, "login", "Log in", http.StatusOK, "", "")
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.authPage(w, r, "register", "Create an account", http.StatusOK, "", "")
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	email := strings.TrimSpace(r.FormValue("email"))

	user, err := s.auth.Authenticate(r.Context(), email, r.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.authPage(w, r, "login", "Log in", http.StatusUnauthorized, email, "Email or password is incorrect.")
			return
		}
		writeError(w, r, err)
		return
	}
	if err := s.signIn(r.Context(), user); err != nil {
		writeError(w, r, err)
		return
	}
	redirect(w, r, safeNext(r.FormValue("next")))
}

func (s *Server) handleRegisterSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	email := strings.TrimSpace(r.FormValue("email"))

	user, err := s.auth.Register(r.Context(), email, r.FormValue("password"))
	if err != nil {
		var ve domain.ValidationError
		switch {
		case errors.As(err, &ve):
			s.authPage(w, r, "register", "Create an account", http.StatusBadRequest, email, ve.Message)
		case errors.Is(err, domain.ErrDuplicate):
			s.authPage(w, r, "register", "Create an account", http.StatusConflict, email, "An account with that email already exists.")
		default:
			writeError(w, r, err)
		}
		return
	}
	if err := s.signIn(r.Context(), user); err != nil {
		writeError(w, r, err)
		return
	}
	redirect(w, r, safeNext(r.FormValue("next")))
}

func (s *Server) handleLogoutSubmit(w http.ResponseWriter, r *http.Request) {
	if err := s.signOut(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

// handleAccount lists the user's saved calculations.
func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	favorites := r.URL.Query().Get("favorites") == "true"
	list, err := s.calculations.List(r.Context(), userID(r), favorites)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := s.base(r, s.site.Page("Saved calculations", "", "/account", "").NoIndex())
	catalog := s.calculators.Catalog()
	for _, c := range list {
		view := savedView{Calculation: c, Title: c.CalculatorType, Items: s.views.fmt.summarize(c.Results)}
		if calc, err := catalog.Get(c.CalculatorType); err == nil {
			view.Title = calc.Info().Title
			view.Path = calc.Info().Path()
		}
		data.Saved = append(data.Saved, view)
	}
	render(w, r, http.StatusOK, s.views.page("account", data))
}
