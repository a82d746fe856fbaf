package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/viralscript-backend/internal/http/response"
	"github.com/yungbote/viralscript-backend/internal/services"
)

type ResultHandler struct {
	results services.ResultService
}

func NewResultHandler(results services.ResultService) *ResultHandler {
	return &ResultHandler{results: results}
}

// GET /api/results/:id
func (rh *ResultHandler) GetResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := rh.results.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, row)
}
