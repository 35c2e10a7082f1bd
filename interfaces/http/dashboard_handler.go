package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/usecase"
)

type IDashboardHandler interface {
	GetChannelStats(c *gin.Context)
	GetChannelVideos(c *gin.Context)
}

type DashboardHandler struct {
	dashboardUsecase usecase.IDashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.IDashboardUsecase) IDashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

func (h *DashboardHandler) GetChannelStats(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	stats, err := h.dashboardUsecase.GetChannelStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, stats, "channel stats fetched successfully")
}

func (h *DashboardHandler) GetChannelVideos(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req dto.VideoListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	payload, err := h.dashboardUsecase.GetChannelVideos(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, payload, "channel videos fetched successfully")
}
