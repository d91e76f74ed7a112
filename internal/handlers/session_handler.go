package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/comprehension-service/internal/services"
	"github.com/SAP-F-2025/comprehension-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	BaseHandler
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler:    NewBaseHandler(logger),
		sessionService: sessionService,
	}
}

// StartSession creates a participant and starts their session. The item and
// study may come from the JSON body or, as with recruitment links, from the
// query string.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req services.StartSessionRequest
	if c.Request.ContentLength > 0 {
		if !h.bindJSON(c, &req) {
			return
		}
	}

	query := c.Request.URL.Query()
	if req.ItemID == "" {
		req.ItemID = query.Get("item_id")
	}
	if req.Study == "" {
		req.Study = query.Get("study")
	}
	if req.WorkerID == "" {
		req.WorkerID = query.Get("worker_id")
	}
	if req.AssignmentID == "" {
		req.AssignmentID = query.Get("assignment_id")
	}
	req.IPAddress = c.ClientIP()
	req.Args = query

	session, err := h.sessionService.Start(requestContext(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	session, err := h.sessionService.Get(requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// SubmitTrial forwards one input to the session. Inputs the current trial
// rejects are answered with 422 and the reason, leaving the session as is.
func (h *SessionHandler) SubmitTrial(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	var req services.SubmitTrialRequest
	if !h.bindJSON(c, &req) {
		return
	}

	step, err := h.sessionService.Submit(requestContext(c), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if !step.Accepted {
		h.LogWarn(c, "Submission rejected", "session_id", id, "reason", step.Reason)
		c.JSON(http.StatusUnprocessableEntity, step)
		return
	}

	c.JSON(http.StatusOK, step)
}

func (h *SessionHandler) GetProgress(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	state, err := h.sessionService.Progress(requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
