package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/typecast/internal/mbti"
)

type selectionRequest struct {
	Speakers []string `json:"speakers"`
}

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Reply        string `json:"reply"`
	Tool         string `json:"tool"`
	ChartUpdated bool   `json:"chart_updated"`
	Score        *int   `json:"score,omitempty"`
}

type analysisResponse struct {
	AnalysisID string         `json:"analysis_id"`
	Profiles   []mbti.Profile `json:"profiles"`
	Welcome    string         `json:"welcome"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id, err := s.sessions.Create(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sum, err := s.sessions.Summary(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Reset(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) submitLog(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxLogBytes)
	speakers, err := s.sessions.SubmitLog(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"speakers": speakers})
}

func (s *Server) selectSpeakers(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.sessions.SelectSpeakers(r.Context(), chi.URLParam(r, "id"), req.Speakers); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) runAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ac, err := s.sessions.RunAnalysis(r.Context(), id, credential(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := analysisResponse{AnalysisID: ac.RunID.String(), Profiles: ac.Profiles}
	if sum, err := s.sessions.Summary(r.Context(), id); err == nil && len(sum.History) > 0 {
		resp.Welcome = sum.History[len(sum.History)-1].Content
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	res, err := s.sessions.SubmitChatTurn(r.Context(), chi.URLParam(r, "id"), req.Text, credential(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{
		Reply:        res.Reply,
		Tool:         res.Tool.String(),
		ChartUpdated: res.ChartUpdated,
		Score:        res.Score,
	})
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	fig, err := s.sessions.Figure(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if len(fig) == 0 {
		writeError(w, http.StatusNotFound, "no chart has been drawn")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(fig)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "status", status, "error", err)
	}
	writeError(w, status, msg)
}

// credential reads the caller's model API key. It is forwarded untouched.
func credential(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return r.Header.Get("X-API-Key")
}
