package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/comprehension-service/internal/services"
	"github.com/SAP-F-2025/comprehension-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// DataHandler serves the admin views of stored records.
type DataHandler struct {
	BaseHandler
	exportService      services.ExportService
	participantService services.ParticipantService
}

func NewDataHandler(exportService services.ExportService, participantService services.ParticipantService, logger utils.Logger) *DataHandler {
	return &DataHandler{
		BaseHandler:        NewBaseHandler(logger),
		exportService:      exportService,
		participantService: participantService,
	}
}

// Download answers GET /data/:model?format=csv|xlsx with an attachment.
// Participants filter on study, finished, from, to, sort_by and sort_order;
// trials on participant_id and item_id. page and size paginate every model.
func (h *DataHandler) Download(c *gin.Context) {
	req, err := parseExportRequest(c)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	file, err := h.exportService.Export(requestContext(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if file.Total != nil {
		c.Header("X-Total-Count", strconv.FormatInt(*file.Total, 10))
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func parseExportRequest(c *gin.Context) (*services.ExportRequest, error) {
	q := newQueryParser(c)
	page := q.Int("page", 1)
	size := q.Int("size", 0)

	req := &services.ExportRequest{
		Model:         c.Param("model"),
		Format:        c.DefaultQuery("format", services.FormatCSV),
		Study:         c.Query("study"),
		Finished:      q.BoolPtr("finished"),
		DateFrom:      q.TimePtr("from", false),
		DateTo:        q.TimePtr("to", true),
		SortBy:        c.Query("sort_by"),
		SortOrder:     c.Query("sort_order"),
		ParticipantID: q.UintPtr("participant_id"),
		ItemID:        c.Query("item_id"),
	}
	if size > 0 {
		req.Limit = size
		req.Offset = (page - 1) * size
	}
	return req, q.Err()
}

// GetParticipant returns one participant with their stored trials.
func (h *DataHandler) GetParticipant(c *gin.Context) {
	id, ok := ParseUintIDParam(c, "id")
	if !ok {
		return
	}

	participant, err := h.participantService.GetWithTrials(requestContext(c), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

// GetCriticalStats answers GET /admin/stats?item_id=... with critical trial
// accuracy, over all items when item_id is omitted.
func (h *DataHandler) GetCriticalStats(c *gin.Context) {
	stats, err := h.exportService.CriticalStats(requestContext(c), c.Query("item_id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
