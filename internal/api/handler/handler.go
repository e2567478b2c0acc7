package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"exmplr-agent/internal/api/response"
	"exmplr-agent/internal/core"
	"exmplr-agent/internal/session"
	apperrors "exmplr-agent/pkg/errors"
)

// SessionHandler exposes the query session lifecycle over HTTP: session
// creation, the chat turn, and the three refinement controls.
type SessionHandler struct {
	manager *core.Manager
}

// NewSessionHandler constructs a SessionHandler over the session manager.
func NewSessionHandler(manager *core.Manager) *SessionHandler {
	return &SessionHandler{manager: manager}
}

type messageRequest struct {
	Content string `json:"content" binding:"required"`
}

type phaseRequest struct {
	Phase string `json:"phase" binding:"required"`
}

type locationRequest struct {
	Location string `json:"location" binding:"required"`
}

// CreateSession starts a new conversation and returns its ID plus the
// seeded greeting.
func (h *SessionHandler) CreateSession(c *gin.Context) {
	sess := h.manager.CreateSession()
	response.Success(c, sessionSnapshot(sess))
}

// GetSession returns the transcript and the current parameter set.
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, err := h.manager.GetSession(c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, sessionSnapshot(sess))
}

// PostMessage runs one full user turn. Per-turn failures (unparseable
// oracle output, search errors) come back as a success envelope whose
// TurnResult carries the user-visible error; the session stays usable.
func (h *SessionHandler) PostMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "content must not be empty")
		return
	}
	result, err := h.manager.HandleMessage(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, result)
}

// ApplyPhaseFilter sets the phase filter and returns the re-run search.
func (h *SessionHandler) ApplyPhaseFilter(c *gin.Context) {
	var req phaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "phase must not be empty")
		return
	}
	result, err := h.manager.ApplyPhaseFilter(c.Request.Context(), c.Param("id"), req.Phase)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, result)
}

// MoreResults advances the result offset and returns the re-run search.
func (h *SessionHandler) MoreResults(c *gin.Context) {
	result, err := h.manager.MoreResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, result)
}

// ApplyLocationFilter overrides the location filter and returns the re-run
// search.
func (h *SessionHandler) ApplyLocationFilter(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "location must not be empty")
		return
	}
	result, err := h.manager.ApplyLocationFilter(c.Request.Context(), c.Param("id"), req.Location)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, result)
}

// sessionSnapshot copies session state under its lock so the response never
// races with a concurrent turn.
func sessionSnapshot(sess *session.Session) gin.H {
	sess.Lock()
	defer sess.Unlock()
	messages := make([]session.Message, len(sess.Messages))
	copy(messages, sess.Messages)
	return gin.H{
		"session_id": sess.ID,
		"created_at": sess.CreatedAt,
		"messages":   messages,
		"params":     sess.Params.Clone(),
	}
}

// failFromError maps classified errors to HTTP statuses. Anything
// unclassified is an internal error.
func failFromError(c *gin.Context, err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		response.Fail(c, http.StatusNotFound, err.Error())
	case apperrors.ErrorTypeValidation:
		response.Fail(c, http.StatusBadRequest, err.Error())
	default:
		response.Fail(c, http.StatusInternalServerError, err.Error())
	}
}
