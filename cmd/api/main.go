package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"nyayapath/internal/adapter/api"
	"nyayapath/internal/adapter/api/handler"
	apimiddleware "nyayapath/internal/adapter/api/middleware"
	"nyayapath/internal/adapter/api/router"
	"nyayapath/internal/adapter/repository"
	"nyayapath/internal/domain/service"
	"nyayapath/internal/infrastructure/firebase"
	"nyayapath/internal/infrastructure/ratelimit"
	"nyayapath/internal/infrastructure/storage"
	"nyayapath/internal/infrastructure/websocket"
	"nyayapath/internal/usecase"
	"nyayapath/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	serviceAccountPath := ""

	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		serviceAccountPath = os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
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

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.FirebaseProject, serviceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	statsRepo := repository.NewFirestorePlayerStatsRepository(firestoreClient)
	caseRepo := repository.NewFirestoreCaseRepository(firestoreClient)
	quizRepo := repository.NewFirestoreQuizRepository(firestoreClient)
	figureRepo := repository.NewFirestoreFigureRepository(firestoreClient)
	chatRepo := repository.NewFirestoreChatRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	clock := service.SystemClock{}
	scoring := service.NewScoringService(service.DefaultScoringConfig())
	evaluator := service.NewAchievementEvaluator(service.DefaultAchievementCatalog(), clock)
	dialogue := service.NewScriptedDialogueService()

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo)
	caseUseCase := usecase.NewCaseUseCase(caseRepo)
	progressionUseCase := usecase.NewProgressionUseCase(statsRepo, caseRepo, scoring, evaluator, clock)
	battleUseCase := usecase.NewBattleUseCase(caseRepo, progressionUseCase, scoring, clock, wsManager, usecase.BattlePacing{
		SessionSeconds: cfg.BattleSessionSeconds,
		IdleTimeout:    cfg.SessionIdleTimeout,
	})
	quizUseCase := usecase.NewQuizUseCase(quizRepo, progressionUseCase, clock)
	figureChatUseCase := usecase.NewFigureChatUseCase(figureRepo, chatRepo, dialogue, clock, wsManager)

	handler.Setup(authUseCase, userUseCase, caseUseCase, battleUseCase, progressionUseCase, quizUseCase, figureChatUseCase)
	handler.SetupHealthHandler(firebaseAuthClient)
	handler.SetupFileHandler(storageClient)

	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	// Idle battle sessions are reclaimed in the background.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			battleUseCase.ReapIdleSessions()
		}
	}()

	e := echo.New()

	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(rateLimiter)

	wsHandler := handler.NewWebSocketHandler(wsManager)

	router.Setup(e, authMiddleware, adminMiddleware, rateLimitMiddleware)
	router.SetupFileRouter(e, authMiddleware, adminMiddleware)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
