package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"documind-backend/internal/chats"
	"documind-backend/internal/dashboard"
	"documind-backend/internal/documents"
	"documind-backend/internal/extract"
	"documind-backend/internal/flashcards"
	"documind-backend/internal/llm/groq"
	"documind-backend/internal/quizzes"
	"documind-backend/internal/shared/config"
	"documind-backend/internal/shared/mail"
	"documind-backend/internal/shared/server"
	"documind-backend/internal/shared/storage/db"
	"documind-backend/internal/shared/storage/object"
	localstore "documind-backend/internal/shared/storage/object/local"
	s3store "documind-backend/internal/shared/storage/object/s3"
	"documind-backend/internal/studygen"
	"documind-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	UsersRepo     users.Repo
	DocumentsRepo documents.Repo
	FlashcardRepo flashcards.Repo
	QuizRepo      quizzes.Repo
	ChatRepo      chats.Repo

	UsersService     *users.Service
	DocumentsService *documents.Service
	FlashcardService *flashcards.Service
	QuizService      *quizzes.Service
	StudyGenService  *studygen.Service
	ChatService      *chats.Service
	DashboardService *dashboard.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		UsersHandler:     users.NewHandler(app.UsersService),
		DocumentsHandler: documents.NewHandler(app.DocumentsService, cfg.MaxUploadMB*1024*1024),
		FlashcardHandler: flashcards.NewHandler(app.FlashcardService),
		QuizHandler:      quizzes.NewHandler(app.QuizService),
		StudyGenHandler:  studygen.NewHandler(app.StudyGenService, app.DocumentsService, app.FlashcardService, app.QuizService),
		ChatHandler:      chats.NewHandler(app.ChatService),
		DashboardHandler: dashboard.NewHandler(app.DashboardService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	cfg := app.Config

	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.FlashcardRepo = &flashcards.PGRepo{DB: app.DB}
		app.QuizRepo = &quizzes.PGRepo{DB: app.DB}
		app.ChatRepo = &chats.PGRepo{DB: app.DB}
	} else {
		flashcardRepo := flashcards.NewMemoryRepo()
		quizRepo := quizzes.NewMemoryRepo()
		docRepo := documents.NewMemoryRepo()
		docRepo.FlashcardCounter = flashcardRepo.CountByDocument
		docRepo.QuizCounter = quizRepo.CountByDocument

		app.UsersRepo = users.NewMemoryRepo()
		app.DocumentsRepo = docRepo
		app.FlashcardRepo = flashcardRepo
		app.QuizRepo = quizRepo
		app.ChatRepo = chats.NewMemoryRepo()
	}

	var sender mail.Sender = mail.LogSender{}
	if strings.TrimSpace(cfg.SMTPHost) != "" {
		smtp, err := mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
		if err != nil {
			log.Printf("bootstrap: smtp sender misconfigured, logging mail instead: %v", err)
		} else {
			sender = smtp
		}
	}

	completer := groq.NewClient(cfg.GroqAPIKey, cfg.GroqModel)
	if strings.TrimSpace(cfg.GroqAPIKey) == "" {
		log.Printf("bootstrap: GROQ_API_KEY empty; AI endpoints will report not configured")
	}

	app.UsersService = users.NewService(app.UsersRepo, sender, []byte(cfg.JWTSecret))
	app.DocumentsService = &documents.Service{
		Store:     app.Store,
		Repo:      app.DocumentsRepo,
		Extractor: extract.New(),
	}
	app.FlashcardService = flashcards.NewService(app.FlashcardRepo)
	app.QuizService = quizzes.NewService(app.QuizRepo)
	app.StudyGenService = studygen.NewService(completer)
	app.ChatService = chats.NewService(app.ChatRepo, app.DocumentsService, app.StudyGenService)
	app.DashboardService = dashboard.NewService(app.DocumentsService, app.FlashcardService, app.QuizService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
