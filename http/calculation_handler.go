package http

import (
	"encoding/json"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fincalc/domain"
)

type saveCalculationRequest struct {
	CalculatorType string          `json:"calculator_type"`
	Inputs         json.RawMessage `json:"inputs"`
}

type favoriteRequest struct {
	Favorite *bool `json:"favorite"`
}

// userID is only called behind requireUser.
func userID(r *http.Request) string {
	u, _ := currentUser(r.Context())
	return u.ID
}

func (s *Server) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	favorites := false
	if v := r.URL.Query().Get("favorites"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, r, domain.Invalid("favorites", "must be true or false"))
			return
		}
		favorites = b
	}

	list, err := s.calculations.List(r.Context(), userID(r), favorites)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if list == nil {
		list = []domain.Calculation{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSaveCalculation(w http.ResponseWriter, r *http.Request) {
	var req saveCalculationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.CalculatorType == "" {
		writeError(w, r, domain.Invalid("calculator_type", "is required"))
		return
	}

	calc, err := s.calculations.Save(r.Context(), userID(r), req.CalculatorType, req.Inputs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, calc)
}

func (s *Server) handleGetCalculation(w http.ResponseWriter, r *http.Request) {
	calc, err := s.calculations.Get(r.Context(), userID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

func (s *Server) handleDeleteCalculation(w http.ResponseWriter, r *http.Request) {
	if err := s.calculations.Delete(r.Context(), userID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetFavorite accepts {"favorite": bool} or, from HTML forms, a
// favorite form value.
func (s *Server) handleSetFavorite(w http.ResponseWriter, r *http.Request) {
	favorite, err := s.readFavorite(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	calc, err := s.calculations.SetFavorite(r.Context(), userID(r), chi.URLParam(r, "id"), favorite)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

func (s *Server) readFavorite(w http.ResponseWriter, r *http.Request) (bool, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return false, domain.Invalid("body", "invalid form: %v", err)
		}
		b, err := strconv.ParseBool(r.PostForm.Get("favorite"))
		if err != nil {
			return false, domain.Invalid("favorite", "must be true or false")
		}
		return b, nil
	}

	var req favoriteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return false, err
	}
	if req.Favorite == nil {
		return false, domain.Invalid("favorite", "is required")
	}
	return *req.Favorite, nil
}
