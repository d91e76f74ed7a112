package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/comprehension-service/internal/services"
	"github.com/SAP-F-2025/comprehension-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	BaseHandler
	participantService services.ParticipantService
}

func NewParticipantHandler(participantService services.ParticipantService, logger utils.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		BaseHandler:        NewBaseHandler(logger),
		participantService: participantService,
	}
}

func (h *ParticipantHandler) UpdateDevice(c *gin.Context) {
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	var req services.DeviceRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.participantService.UpdateDevice(requestContext(c), id, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ParticipantHandler) RecordDemographics(c *gin.Context) {
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	var req services.DemographicsRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.participantService.RecordDemographics(requestContext(c), id, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ParticipantHandler) RecordDebrief(c *gin.Context) {
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	var req services.DebriefRequest
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.participantService.RecordDebrief(requestContext(c), id, &req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
