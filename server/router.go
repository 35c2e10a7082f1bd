package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"vidtube/domain/repository"
	"vidtube/infrastructure/configuration"
	httpHandler "vidtube/interfaces/http"
	"vidtube/interfaces/middleware"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	videoHandler httpHandler.IVideoHandler,
	commentHandler httpHandler.ICommentHandler,
	likeHandler httpHandler.ILikeHandler,
	tweetHandler httpHandler.ITweetHandler,
	playlistHandler httpHandler.IPlaylistHandler,
	subscriptionHandler httpHandler.ISubscriptionHandler,
	dashboardHandler httpHandler.IDashboardHandler,
	healthHandler httpHandler.IHealthHandler,
	userRepository repository.IUser,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestTimeout(
		time.Duration(configuration.C.App.RequestTimeoutSeconds) * time.Second))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     configuration.C.Cors.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/register", userHandler.Register)
	router.POST("/login", userHandler.Login)
	router.POST("/refresh-token", userHandler.RefreshToken)
	router.GET("/health-check", healthHandler.HealthCheck)

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))

	users := api.Group("/users")
	{
		users.POST("/logout", userHandler.Logout)
		users.POST("/change-password", userHandler.ChangePassword)
		users.GET("/current-user", userHandler.GetCurrentUser)
		users.PATCH("/update-account-details", userHandler.UpdateAccount)
		users.PATCH("/update-avatar", userHandler.UpdateAvatar)
		users.PATCH("/update-coverimage", userHandler.UpdateCoverImage)
		users.GET("/channel/:username", userHandler.GetChannelProfile)
		users.GET("/watch-history", userHandler.GetWatchHistory)
		users.PATCH("/make-watch-history/:videoId", userHandler.MakeWatchHistory)
	}

	videos := api.Group("/videos")
	{
		videos.GET("", videoHandler.List)
		videos.POST("/upload-video", videoHandler.Publish)
		videos.GET("/:videoId", videoHandler.Get)
		videos.PATCH("/update/:videoId", videoHandler.Update)
		videos.PATCH("/update-thumbnail/:videoId", videoHandler.UpdateThumbnail)
		videos.DELETE("/delete/:videoId", videoHandler.Delete)
		videos.PATCH("/toggle-publish/:videoId", videoHandler.TogglePublish)
	}

	comments := api.Group("/comments")
	{
		comments.POST("/add-comment/:videoId", commentHandler.Add)
		comments.GET("/all-comments/:videoId", commentHandler.ListForVideo)
		comments.PUT("/update-comment/:commentId", commentHandler.Update)
		comments.DELETE("/delete-comment/:commentId", commentHandler.Delete)
	}

	likes := api.Group("/likes")
	{
		likes.PATCH("/like-video/:videoId", likeHandler.ToggleVideoLike)
		likes.PATCH("/like-comment/:commentId", likeHandler.ToggleCommentLike)
		likes.PATCH("/like-tweet/:tweetId", likeHandler.ToggleTweetLike)
		likes.GET("/all-videos", likeHandler.GetLikedVideos)
	}

	tweets := api.Group("/tweets")
	{
		tweets.POST("/create-tweet", tweetHandler.Create)
		tweets.GET("/user-tweets", tweetHandler.ListByUser)
		tweets.PATCH("/update-tweet/:tweetId", tweetHandler.Update)
		tweets.DELETE("/delete-tweet/:tweetId", tweetHandler.Delete)
	}

	playlists := api.Group("/playlists")
	{
		playlists.POST("/create-playlist", playlistHandler.Create)
		playlists.GET("/user/:userId", playlistHandler.ListByUser)
		playlists.GET("/playlist/:playlistId", playlistHandler.Get)
		playlists.GET("/playlist-videos/:playlistId", playlistHandler.GetVideos)
		playlists.POST("/add-video/:playlistId/:videoId", playlistHandler.AddVideo)
		playlists.POST("/remove-video/:playlistId/:videoId", playlistHandler.RemoveVideo)
		playlists.PATCH("/update/:playlistId", playlistHandler.Update)
		playlists.DELETE("/delete/:playlistId", playlistHandler.Delete)
	}

	subscriptions := api.Group("/subscriptions")
	{
		subscriptions.POST("/t-subscribe/:channelId", subscriptionHandler.Toggle)
		subscriptions.GET("/subscribers/:channelId", subscriptionHandler.ListSubscribers)
		subscriptions.GET("/subscribed-channels/:subscriberId", subscriptionHandler.ListSubscribedChannels)
		subscriptions.GET("/channel-is-subscribed/:channelId", subscriptionHandler.IsSubscribed)
	}

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/my-dashboard", dashboardHandler.GetChannelStats)
		dashboard.GET("/my-videos", dashboardHandler.GetChannelVideos)
	}

	return router
}
