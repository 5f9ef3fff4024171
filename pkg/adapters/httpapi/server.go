// Package httpapi exposes the estimation engine as a JSON API over HTTP.
// Sessions are kept server-side in a SessionStore; every response carries
// the actions the client should render next.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mitsumolabs/quotetree/pkg/domain"
	"github.com/mitsumolabs/quotetree/pkg/session"
)

// Engine defines the interface the adapter needs from the quotetree core.
type Engine interface {
	Start(ctx context.Context) *domain.Session
	Render(ctx context.Context, s *domain.Session) ([]domain.ActionRequest, bool, error)
	Navigate(ctx context.Context, s *domain.Session, action domain.Action) (*domain.Session, error)
}

// Server handles the session API.
type Server struct {
	engine   Engine
	sessions *session.Manager
	logger   *slog.Logger
}

// SessionResponse is the unified reply shape of every session endpoint.
type SessionResponse struct {
	ID        string                 `json:"id"`
	Step      string                 `json:"step"`
	Category  string                 `json:"category,omitempty"`
	Completed bool                   `json:"completed"`
	CanGoBack bool                   `json:"can_go_back"`
	Actions   []domain.ActionRequest `json:"actions"`
	Estimate  *domain.Estimate       `json:"estimate,omitempty"`
}

// InputRequestBody is the payload of POST /sessions/{id}/input.
type InputRequestBody struct {
	Key    string   `json:"key,omitempty"`
	Keys   []string `json:"keys,omitempty"`
	Text   string   `json:"text,omitempty"`
	Accept *bool    `json:"accept,omitempty"`
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, sessions *session.Manager, logger *slog.Logger) http.Handler {
	s := &Server{engine: engine, sessions: sessions, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Post("/input", s.postInput)
			r.Post("/back", s.postBack)
			r.Post("/restart", s.postRestart)
			r.Get("/estimate", s.getEstimate)
			r.Delete("/", s.deleteSession)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	sess := s.engine.Start(r.Context())
	if err := s.sessions.Save(r.Context(), id, sess); err != nil {
		s.fail(w, "failed to persist session", err, http.StatusInternalServerError)
		return
	}
	s.respond(w, r.Context(), id, sess, http.StatusCreated)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		s.notFoundOr500(w, err)
		return
	}
	s.respond(w, r.Context(), id, sess, http.StatusOK)
}

func (s *Server) postInput(w http.ResponseWriter, r *http.Request) {
	var body InputRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	action, ok := body.toAction()
	if !ok {
		http.Error(w, "request must carry exactly one of key, keys, text or accept", http.StatusBadRequest)
		return
	}

	s.apply(w, r, action)
}

func (s *Server) postBack(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, domain.Action{Type: domain.ActionBack})
}

func (s *Server) postRestart(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, domain.Action{Type: domain.ActionRestart})
}

// apply runs a navigator action under the session lock and responds with
// the refreshed view.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, action domain.Action) {
	id := chi.URLParam(r, "sessionID")

	var result *domain.Session
	err := s.sessions.WithLock(r.Context(), id, func(ctx context.Context) error {
		sess, err := s.sessions.Store().Load(ctx, id)
		if err != nil {
			return err
		}
		next, err := s.engine.Navigate(ctx, sess, action)
		if err != nil {
			return err
		}
		if err := s.sessions.Store().Save(ctx, id, next); err != nil {
			return err
		}
		result = next
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		s.fail(w, "navigation failed", err, http.StatusUnprocessableEntity)
		return
	}

	s.respond(w, r.Context(), id, result, http.StatusOK)
}

func (s *Server) getEstimate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	sess, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		s.notFoundOr500(w, err)
		return
	}
	if !sess.Completed || sess.Result == nil {
		http.Error(w, "session has not reached the result step", http.StatusConflict)
		return
	}
	writeJSON(w, http.StatusOK, sess.Result)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.fail(w, "failed to delete session", err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respond(w http.ResponseWriter, ctx context.Context, id string, sess *domain.Session, status int) {
	actions, _, err := s.engine.Render(ctx, sess)
	if err != nil {
		s.fail(w, "render failed", err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, SessionResponse{
		ID:        id,
		Step:      sess.CurrentStepID,
		Category:  sess.Category,
		Completed: sess.Completed,
		CanGoBack: sess.HistoryDepth() > 0,
		Actions:   actions,
		Estimate:  sess.Result,
	})
}

func (s *Server) notFoundOr500(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	s.fail(w, "failed to load session", err, http.StatusInternalServerError)
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error, status int) {
	if s.logger != nil {
		s.logger.Error(msg, "error", err)
	}
	http.Error(w, msg, status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// toAction maps the request body to a navigator action. Exactly one of the
// fields must be present. An explicit empty keys array `"keys": []` declines
// a multi-choice round without picking anything.
func (b *InputRequestBody) toAction() (domain.Action, bool) {
	set := 0
	var action domain.Action
	if b.Key != "" {
		set++
		action = domain.Action{Type: domain.ActionChoose, Key: b.Key}
	}
	if b.Keys != nil {
		set++
		action = domain.Action{Type: domain.ActionChooseMulti, Keys: b.Keys}
	}
	if b.Text != "" {
		set++
		action = domain.Action{Type: domain.ActionFreeText, Text: b.Text}
	}
	if b.Accept != nil {
		set++
		action = domain.Action{Type: domain.ActionConfirm, Accept: *b.Accept}
	}
	return action, set == 1
}
