package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	contractx "github.com/tanpawarit/Chative-Learning-Agents/agent/contract"
)

// UserIDHeader carries the authenticated user id set by the gateway in front
// of this service.
const UserIDHeader = "X-User-ID"

const (
	maxBodySize         = 1 << 20
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100

	recommendationQuery = "Recommend courses based on my profile"
	explainQueryPrefix  = "Explain: "
)

// Dispatcher is the part of the agent manager the HTTP layer depends on.
type Dispatcher interface {
	Handle(ctx context.Context, req contractx.Request) (contractx.Result, error)
	ListResponders() []contractx.Descriptor
	History(ctx context.Context, userID string, limit int) ([]contractx.Interaction, error)
}

type Deps struct {
	Agents Dispatcher
	Logger zerolog.Logger
}

type chatRequest struct {
	Query    string         `json:"query"`
	Context  map[string]any `json:"context"`
	CourseID string         `json:"course_id"`
	LessonID string         `json:"lesson_id"`
}

type recommendationsRequest struct {
	CourseID    string `json:"course_id"`
	Preferences any    `json:"preferences"`
}

type explainRequest struct {
	Topic      string         `json:"topic"`
	Context    map[string]any `json:"context"`
	Difficulty string         `json:"difficulty"`
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Route("/api/ai-agents", func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/", handleListAgents(deps))
		r.Post("/chat", handleChat(deps))
		r.Post("/recommendations", handleRecommendations(deps))
		r.Post("/explain", handleExplain(deps))
		r.Get("/history", handleHistory(deps))
	})

	return r
}

func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(r.Header.Get(UserIDHeader)) == "" {
			writeError(w, http.StatusUnauthorized, "missing %s header", UserIDHeader)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(UserIDHeader))
}

func handleListAgents(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agents := deps.Agents.ListResponders()
		writeJSON(w, http.StatusOK, envelope{
			Success: true,
			Data: map[string]any{
				"agents":       agents,
				"total_agents": len(agents),
			},
		})
	}
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body chatRequest
		if !decodeBody(w, r, chatSchema, &body) {
			return
		}

		dispatch(w, r, deps, contractx.Request{
			UserID:   userID(r),
			Query:    body.Query,
			Context:  body.Context,
			CourseID: body.CourseID,
			LessonID: body.LessonID,
		})
	}
}

func handleRecommendations(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body recommendationsRequest
		if !decodeBody(w, r, recommendationsSchema, &body) {
			return
		}

		dispatch(w, r, deps, contractx.Request{
			UserID: userID(r),
			Query:  recommendationQuery,
			Context: map[string]any{
				"preferences":  body.Preferences,
				"request_type": "content_recommendation",
			},
			CourseID: body.CourseID,
		})
	}
}

func handleExplain(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body explainRequest
		if !decodeBody(w, r, explainSchema, &body) {
			return
		}

		reqCtx := make(map[string]any, len(body.Context)+2)
		for k, v := range body.Context {
			reqCtx[k] = v
		}
		reqCtx["request_type"] = "explanation"
		if body.Difficulty != "" {
			reqCtx["difficulty"] = body.Difficulty
		}

		dispatch(w, r, deps, contractx.Request{
			UserID:  userID(r),
			Query:   explainQueryPrefix + strings.TrimSpace(body.Topic),
			Context: reqCtx,
		})
	}
}

func handleHistory(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultHistoryLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			limit = min(n, maxHistoryLimit)
		}

		interactions, err := deps.Agents.History(r.Context(), userID(r), limit)
		if err != nil {
			deps.Logger.Error().Err(err).Str("user_id", userID(r)).Msg("load interaction history")
			writeError(w, http.StatusInternalServerError, "failed to load history")
			return
		}
		if interactions == nil {
			interactions = []contractx.Interaction{}
		}

		writeJSON(w, http.StatusOK, envelope{
			Success: true,
			Data: map[string]any{
				"interactions":       interactions,
				"total_interactions": len(interactions),
			},
		})
	}
}

func dispatch(w http.ResponseWriter, r *http.Request, deps Deps, req contractx.Request) {
	result, err := deps.Agents.Handle(r.Context(), req)
	if err != nil {
		if errors.Is(err, contractx.ErrValidation) {
			writeError(w, http.StatusBadRequest, "%v", err)
			return
		}
		deps.Logger.Error().Err(err).Str("user_id", req.UserID).Msg("handle agent request")
		writeError(w, http.StatusInternalServerError, "failed to process request")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: result})
}

// decodeBody validates the body against schema and decodes it into dst. It
// writes the error response itself and reports whether the caller may go on.
func decodeBody(w http.ResponseWriter, r *http.Request, schema map[string]any, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read request body: %v", err)
		return false
	}
	if err := validateBody(schema, raw); err != nil {
		writeError(w, http.StatusBadRequest, "%v", err)
		return false
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return true
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		writeError(w, http.StatusBadRequest, "%v: %v", ErrInvalidBody, err)
		return false
	}
	return true
}
