package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fincalc/domain"
)

type evaluateResponse struct {
	Calculator string `json:"calculator"`
	Input      any    `json:"input"`
	Result     any    `json:"result"`
}

func (s *Server) handleListCalculators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.calculators.Catalog().Infos())
}

func (s *Server) handleDescribeCalculator(w http.ResponseWriter, r *http.Request) {
	calc, err := s.calculators.Catalog().Get(chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calc.Info())
}

// handleEvaluate runs a calculator on a JSON input document.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, domain.Invalid("body", "request body too large"))
		return
	}

	input, result, err := s.calculators.EvaluateJSON(r.Context(), slug, body)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluateResponse{
		Calculator: slug,
		Input:      input,
		Result:     result,
	})
}
