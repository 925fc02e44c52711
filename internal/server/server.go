// Package server exposes a running session over HTTP: state snapshots,
// action metadata, and validate/execute/preview endpoints.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Earnest-Williams/roomlife/config"
	"github.com/Earnest-Williams/roomlife/internal/action"
	"github.com/Earnest-Williams/roomlife/internal/engine"
)

// actionRequest is the shared body for validate, execute and preview.
// Params values are strings for space_id/string parameters; item_ref
// parameters use the nested object form.
type actionRequest struct {
	ActionID string                `json:"action_id"`
	Params   map[string]paramValue `json:"params,omitempty"`
}

type paramValue struct {
	String     string `json:"string,omitempty"`
	InstanceID string `json:"instance_id,omitempty"`
	ItemID     string `json:"item_id,omitempty"`
}

func (r actionRequest) toCall() action.Call {
	call := action.NewCall(r.ActionID)
	for name, v := range r.Params {
		if v.InstanceID != "" || v.ItemID != "" {
			call = call.WithParam(name, action.ItemRef{InstanceID: v.InstanceID, ItemID: v.ItemID})
			continue
		}
		call = call.WithParam(name, v.String)
	}
	return call
}

// New builds the HTTP server around a started session.
func New(cfg config.Config, session *engine.Session, logger *zap.Logger) *http.Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Create router
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	router.Get("/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, session.State())
	})

	router.Get("/actions", func(w http.ResponseWriter, r *http.Request) {
		exec := session.Executor()
		type actionInfo struct {
			ID          string `json:"id"`
			DisplayName string `json:"display_name"`
			Category    string `json:"category"`
			TimeMinutes int    `json:"time_minutes"`
		}
		var list []actionInfo
		for _, id := range exec.ActionIDs() {
			spec, _ := exec.Action(id)
			list = append(list, actionInfo{
				ID:          spec.ID,
				DisplayName: spec.DisplayName,
				Category:    spec.Category,
				TimeMinutes: spec.TimeMinutes,
			})
		}
		writeJSON(w, http.StatusOK, list)
	})

	router.Post("/actions/validate", func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeActionRequest(w, r)
		if !ok {
			return
		}
		v, err := session.Validate(req.toCall())
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, v)
	})

	router.Post("/actions/execute", func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeActionRequest(w, r)
		if !ok {
			return
		}
		result, err := session.Perform(req.toCall())
		if err != nil {
			status, body := errorResponse(err)
			logger.Info("action rejected",
				zap.String("action_id", req.ActionID),
				zap.Error(err))
			writeJSON(w, status, body)
			return
		}
		writeJSON(w, http.StatusOK, result)
	})

	router.Post("/actions/preview", func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeActionRequest(w, r)
		if !ok {
			return
		}
		p, err := session.Preview(req.toCall(), cfg.Game.PreviewSamples)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	})

	return &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
}

func decodeActionRequest(w http.ResponseWriter, r *http.Request) (actionRequest, bool) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return req, false
	}
	if req.ActionID == "" {
		http.Error(w, "action_id is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// errorResponse maps the resolution error taxonomy to HTTP. Validation and
// consume failures are expected outcomes, not server faults.
func errorResponse(err error) (int, map[string]any) {
	var vErr *action.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusUnprocessableEntity, map[string]any{
			"error":   "validation_failed",
			"reason":  vErr.Reason,
			"missing": vErr.Missing,
		}
	}
	var cErr *action.ConsumeError
	if errors.As(err, &cErr) {
		return http.StatusConflict, map[string]any{
			"error":    "consume_failed",
			"resource": cErr.Resource,
			"detail":   cErr.Detail,
		}
	}
	var iErr *action.IntegrityError
	if errors.As(err, &iErr) {
		return http.StatusInternalServerError, map[string]any{
			"error":  "content_integrity_fault",
			"detail": iErr.Detail,
		}
	}
	return http.StatusNotFound, map[string]any{"error": err.Error()}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
