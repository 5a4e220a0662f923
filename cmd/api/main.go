package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"iecnexus/internal/adapter/api"
	"iecnexus/internal/adapter/api/handler"
	apimiddleware "iecnexus/internal/adapter/api/middleware"
	"iecnexus/internal/adapter/api/router"
	"iecnexus/internal/adapter/cache"
	"iecnexus/internal/adapter/repository"
	"iecnexus/internal/infrastructure/fcm"
	"iecnexus/internal/infrastructure/firebase"
	"iecnexus/internal/infrastructure/websocket"
	"iecnexus/internal/usecase"
	"iecnexus/pkg/config"
	"iecnexus/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}
		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	messagingClient, err := firebaseApp.Messaging(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Messaging: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	conversationRepo := repository.NewFirestoreConversationRepository(firestoreClient)
	groupRepo := repository.NewFirestoreGroupRepository(firestoreClient)
	postRepo := repository.NewFirestorePostRepository(firestoreClient)

	firebaseAuthClient := firebase.NewAuthClient(authClient)

	hub := websocket.NewHub()
	hub.Start(ctx)

	// The leaderboard cache is optional; without Redis every read hits
	// Firestore directly.
	var leaderboardCache usecase.LeaderboardCache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		defer redisCache.Close()
		leaderboardCache = redisCache
	} else {
		logger.Warn("REDIS_ADDR not set; leaderboard cache disabled")
	}

	notifier := usecase.NewNotifier(userRepo, fcm.NewSender(messagingClient))

	userUseCase := usecase.NewUserUseCase(userRepo, notifier)
	conversationUseCase := usecase.NewConversationUseCase(conversationRepo, userRepo, notifier, hub, cfg.MessagePageSize)
	groupUseCase := usecase.NewGroupUseCase(groupRepo, userRepo, notifier, hub, cfg.MessagePageSize)
	postUseCase := usecase.NewPostUseCase(postRepo, userRepo, notifier)
	leaderboardUseCase := usecase.NewLeaderboardUseCase(userRepo, leaderboardCache, notifier, cfg.LeaderboardSize)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient, userUseCase)

	router.Setup(e, router.Handlers{
		User:         handler.NewUserHandler(userUseCase),
		Conversation: handler.NewConversationHandler(conversationUseCase),
		Group:        handler.NewGroupHandler(groupUseCase),
		Post:         handler.NewPostHandler(postUseCase),
		Leaderboard:  handler.NewLeaderboardHandler(leaderboardUseCase),
		Cron:         handler.NewCronHandler(leaderboardUseCase),
		WebSocket:    handler.NewWebSocketHandler(hub, firebaseAuthClient),
	}, authMiddleware, cfg.CronSecret)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
