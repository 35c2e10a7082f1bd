package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"vidtube/infrastructure/cache"
	"vidtube/infrastructure/clients/mediahost"
	"vidtube/infrastructure/configuration"
	"vidtube/infrastructure/logger"
	"vidtube/infrastructure/persistence"
	"vidtube/infrastructure/pubsub"
	httpHandler "vidtube/interfaces/http"
	"vidtube/server"
	"vidtube/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	mongoClient, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB initialization failed")
		os.Exit(1)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB ping failed")
		os.Exit(1)
	}
	logger.GetLogger().Info("MongoDB connected successfully")

	db := mongoClient.Database(configuration.C.Database.Mongo.Name)
	if err := persistence.EnsureIndexes(ctx, db); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while ensuring indexes")
		os.Exit(1)
	}

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without stats cache")
		redisClient = nil
	}
	statsCache := cache.NewStatsCache(redisClient,
		time.Duration(configuration.C.RedisClient.StatsTTLSeconds)*time.Second)

	pubSubClient, err := pubsub.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("PubSub not available - continuing without video events")
		pubSubClient = nil
	}
	videoEvents := pubsub.NewVideoEvents(pubSubClient, configuration.C.Pubsub.Topic)

	mediaHost := mediahost.NewClient(mediahost.Config{
		BaseURL: configuration.C.MediaHost.BaseURL,
		APIKey:  configuration.C.MediaHost.APIKey,
		Folder:  configuration.C.MediaHost.UploadFolder,
		Timeout: time.Duration(configuration.C.MediaHost.TimeoutSeconds) * time.Second,
	})

	userRepository := persistence.NewUserRepository(db)
	videoRepository := persistence.NewVideoRepository(db)
	commentRepository := persistence.NewCommentRepository(db)
	likeRepository := persistence.NewLikeRepository(db)
	tweetRepository := persistence.NewTweetRepository(db)
	playlistRepository := persistence.NewPlaylistRepository(db)
	subscriptionRepository := persistence.NewSubscriptionRepository(db)
	dashboardRepository := persistence.NewDashboardRepository(db)

	userUsecase := usecase.NewUserUsecase(userRepository, mediaHost)
	videoUsecase := usecase.NewVideoUsecase(videoRepository, mediaHost, statsCache, videoEvents)
	commentUsecase := usecase.NewCommentUsecase(commentRepository, videoRepository)
	likeUsecase := usecase.NewLikeUsecase(likeRepository, videoRepository, commentRepository, tweetRepository, statsCache)
	tweetUsecase := usecase.NewTweetUsecase(tweetRepository, userRepository)
	playlistUsecase := usecase.NewPlaylistUsecase(playlistRepository, videoRepository, userRepository)
	subscriptionUsecase := usecase.NewSubscriptionUsecase(subscriptionRepository, userRepository, statsCache)
	dashboardUsecase := usecase.NewDashboardUsecase(dashboardRepository, videoRepository, statsCache)

	gin.SetMode(gin.ReleaseMode)
	router := server.InitiateRouter(
		httpHandler.NewUserHandler(userUsecase),
		httpHandler.NewVideoHandler(videoUsecase),
		httpHandler.NewCommentHandler(commentUsecase),
		httpHandler.NewLikeHandler(likeUsecase),
		httpHandler.NewTweetHandler(tweetUsecase),
		httpHandler.NewPlaylistHandler(playlistUsecase),
		httpHandler.NewSubscriptionHandler(subscriptionUsecase),
		httpHandler.NewDashboardHandler(dashboardUsecase),
		httpHandler.NewHealthHandler(mongoClient),
		userRepository,
	)

	logger.GetLogger().WithField("port", app.Port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", app.Port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	if pubSubClient != nil {
		_ = pubSubClient.Close()
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while disconnecting MongoDB")
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
	}
	logger.GetLogger().Info("Application stopped")
}
