package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"etl-tycoon/internal/engine"
	"etl-tycoon/internal/level"
	"etl-tycoon/internal/model"
	"etl-tycoon/internal/store"
)

var (
	sessions *store.SessionStore
	eng      *engine.Engine
	levels   []level.Config
)

// Setup injects the shared dependencies before routes are registered.
func Setup(s *store.SessionStore, e *engine.Engine, lv []level.Config) {
	sessions = s
	eng = e
	levels = lv
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// pathSegment returns the nth segment of the request path, or "".
func pathSegment(r *http.Request, n int) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if n < 0 || n >= len(parts) {
		return ""
	}
	return parts[n]
}

// sessionID pulls the session ID out of /api/v1/sessions/{id}/... paths.
func sessionID(r *http.Request) string {
	return pathSegment(r, 3)
}

// CreateSession starts a new pipeline editing session
// @Summary Create a session
// @Description Start a new empty pipeline editing session
// @Tags sessions
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Session created"
// @Router /sessions [post]
func CreateSession(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	// body is optional; ignore decode errors on empty payloads
	json.NewDecoder(r.Body).Decode(&body)

	sess := sessions.Create(body.Name)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Session created successfully!",
		"session_id": sess.ID,
		"created_at": sess.CreatedAt,
	})
}

// ListSessions lists all editing sessions
// @Summary List sessions
// @Tags sessions
// @Produce json
// @Success 200 {array} store.Session
// @Router /sessions [get]
func ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessions.List())
}

// GetSession returns the descriptor form of a session's pipeline
// @Summary Get session pipeline
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} model.PipelineSpec
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id} [get]
func GetSession(w http.ResponseWriter, r *http.Request) {
	spec, err := sessions.Spec(sessionID(r))
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

// DeleteSession removes a session
// @Summary Delete session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{} "Session deleted"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id} [delete]
func DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := sessionID(r)
	if err := sessions.Delete(id); err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Session deleted",
		"session_id": id,
	})
}

// AddBlock places a block in the session's pipeline
// @Summary Add block
// @Description Place a pipeline block; configuration errors are rejected here
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param block body model.Block true "Block descriptor"
// @Success 200 {object} map[string]interface{} "Block added"
// @Failure 400 {object} map[string]interface{} "Invalid block"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/blocks [post]
func AddBlock(w http.ResponseWriter, r *http.Request) {
	var block model.Block
	if err := json.NewDecoder(r.Body).Decode(&block); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	err := sessions.AddBlock(sessionID(r), block)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":  "Block added",
			"block_id": block.ID,
		})
	}
}

// UpdateBlock replaces a block's configuration
// @Summary Update block configuration
// @Tags blocks
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param blockID path string true "Block ID"
// @Success 200 {object} map[string]interface{} "Block updated"
// @Failure 400 {object} map[string]interface{} "Invalid configuration"
// @Failure 404 {object} map[string]interface{} "Session or block not found"
// @Router /sessions/{id}/blocks/{blockID} [patch]
func UpdateBlock(w http.ResponseWriter, r *http.Request) {
	var cfg map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	blockID := pathSegment(r, 5)
	err := sessions.UpdateBlockConfig(sessionID(r), blockID, cfg)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":  "Block updated",
			"block_id": blockID,
		})
	}
}

// RemoveBlock deletes a block and its incident connections
// @Summary Remove block
// @Tags blocks
// @Param id path string true "Session ID"
// @Param blockID path string true "Block ID"
// @Success 200 {object} map[string]interface{} "Block removed"
// @Failure 404 {object} map[string]interface{} "Session or block not found"
// @Router /sessions/{id}/blocks/{blockID} [delete]
func RemoveBlock(w http.ResponseWriter, r *http.Request) {
	blockID := pathSegment(r, 5)
	err := sessions.RemoveBlock(sessionID(r), blockID)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":  "Block removed",
			"block_id": blockID,
		})
	}
}

// AddConnection wires two blocks together
// @Summary Add connection
// @Description Connect two blocks; dangling references are reported by validation, not here
// @Tags connections
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param connection body model.Connection true "Connection descriptor"
// @Success 200 {object} map[string]interface{} "Connection added"
// @Failure 400 {object} map[string]interface{} "Invalid connection"
// @Failure 404 {object} map[string]interface{} "Session not found"
// @Router /sessions/{id}/connections [post]
func AddConnection(w http.ResponseWriter, r *http.Request) {
	var conn model.Connection
	if err := json.NewDecoder(r.Body).Decode(&conn); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	stored, err := sessions.AddConnection(sessionID(r), conn)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":       "Connection added",
			"connection_id": stored.ID,
		})
	}
}

// RemoveConnection deletes a connection
// @Summary Remove connection
// @Tags connections
// @Param id path string true "Session ID"
// @Param connID path string true "Connection ID"
// @Success 200 {object} map[string]interface{} "Connection removed"
// @Failure 404 {object} map[string]interface{} "Session or connection not found"
// @Router /sessions/{id}/connections/{connID} [delete]
func RemoveConnection(w http.ResponseWriter, r *http.Request) {
	connID := pathSegment(r, 5)
	err := sessions.RemoveConnection(sessionID(r), connID)
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case err != nil:
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":       "Connection removed",
			"connection_id": connID,
		})
	}
}
