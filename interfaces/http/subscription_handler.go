package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vidtube/usecase"
)

type ISubscriptionHandler interface {
	Toggle(c *gin.Context)
	ListSubscribers(c *gin.Context)
	ListSubscribedChannels(c *gin.Context)
	IsSubscribed(c *gin.Context)
}

type SubscriptionHandler struct {
	subscriptionUsecase usecase.ISubscriptionUsecase
}

func NewSubscriptionHandler(subscriptionUsecase usecase.ISubscriptionUsecase) ISubscriptionHandler {
	return &SubscriptionHandler{subscriptionUsecase: subscriptionUsecase}
}

func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	subscribed, err := h.subscriptionUsecase.Toggle(c.Request.Context(), userID, c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	message := "unsubscribed"
	if subscribed {
		message = "subscribed"
	}
	respond(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	subscribers, err := h.subscriptionUsecase.ListSubscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, subscribers, "subscribers fetched successfully")
}

func (h *SubscriptionHandler) ListSubscribedChannels(c *gin.Context) {
	channels, err := h.subscriptionUsecase.ListSubscribedChannels(c.Request.Context(), c.Param("subscriberId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, channels, "subscribed channels fetched successfully")
}

func (h *SubscriptionHandler) IsSubscribed(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	subscribed, err := h.subscriptionUsecase.IsSubscribed(c.Request.Context(), userID, c.Param("channelId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"isSubscribed": subscribed}, "subscription status fetched")
}
