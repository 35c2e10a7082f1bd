package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/domain/dto"
	"vidtube/usecase"
)

type IPlaylistHandler interface {
	Create(c *gin.Context)
	ListByUser(c *gin.Context)
	Get(c *gin.Context)
	GetVideos(c *gin.Context)
	AddVideo(c *gin.Context)
	RemoveVideo(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type PlaylistHandler struct {
	playlistUsecase usecase.IPlaylistUsecase
}

func NewPlaylistHandler(playlistUsecase usecase.IPlaylistUsecase) IPlaylistHandler {
	return &PlaylistHandler{playlistUsecase: playlistUsecase}
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req dto.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	playlist, err := h.playlistUsecase.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, playlist, "playlist created successfully")
}

func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	playlists, err := h.playlistUsecase.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlists, "playlists fetched successfully")
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	playlist, err := h.playlistUsecase.Get(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "playlist fetched successfully")
}

func (h *PlaylistHandler) GetVideos(c *gin.Context) {
	videos, err := h.playlistUsecase.GetVideos(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "playlist videos fetched successfully")
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	added, err := h.playlistUsecase.AddVideo(c.Request.Context(), userID, c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !added {
		respond(c, http.StatusOK, gin.H{"added": false}, "video already in playlist")
		return
	}
	respond(c, http.StatusOK, gin.H{"added": true}, "video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	removed, err := h.playlistUsecase.RemoveVideo(c.Request.Context(), userID, c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !removed {
		respond(c, http.StatusOK, gin.H{"removed": false}, "video was not in playlist")
		return
	}
	respond(c, http.StatusOK, gin.H{"removed": true}, "video removed from playlist")
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	var req dto.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, nil, err.Error())
		return
	}
	playlist, err := h.playlistUsecase.Update(c.Request.Context(), userID, c.Param("playlistId"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "playlist updated successfully")
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	if err := h.playlistUsecase.Delete(c.Request.Context(), userID, c.Param("playlistId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "playlist deleted successfully")
}
