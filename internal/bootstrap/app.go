package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/extract"
	"resume-coach/internal/feedback"
	"resume-coach/internal/files"
	"resume-coach/internal/history"
	"resume-coach/internal/llm"
	openai "resume-coach/internal/llm/openai"
	"resume-coach/internal/resumes"
	"resume-coach/internal/shared/auth"
	"resume-coach/internal/shared/config"
	"resume-coach/internal/shared/server"
	"resume-coach/internal/shared/storage/kv"
	"resume-coach/internal/shared/storage/kv/badgerstore"
	"resume-coach/internal/shared/storage/kv/pgstore"
	"resume-coach/internal/shared/storage/object"
	localstore "resume-coach/internal/shared/storage/object/local"
	s3store "resume-coach/internal/shared/storage/object/s3"
	"resume-coach/internal/shared/telemetry"
	"resume-coach/internal/users"
)

// App holds the wired application: storage, services, handlers, router.
type App struct {
	Config config.Config
	Router *gin.Engine
	KV     kv.Store
	Store  object.ObjectStore

	ResumesRepo     *resumes.Repo
	FeedbackRepo    *feedback.Repo
	UsersService    *users.Service
	ExtractService  *extract.Service
	FeedbackService *feedback.Service
	HistoryService  *history.Service
}

// Build opens the stores, wires services and handlers, and returns the app
// ready to serve.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	store, err := buildKV(ctx, cfg)
	if err != nil {
		return nil, err
	}

	objStore, localStore, err := buildObjectStore(ctx, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	signer, err := auth.NewSigner([]byte(cfg.JWTSecret))
	if err != nil {
		store.Close()
		return nil, err
	}
	provider := auth.NewLocalProvider(store, signer)

	resumeRepo := &resumes.Repo{KV: store}
	feedbackRepo := &feedback.Repo{KV: store}

	userSvc := users.NewService(provider, store)
	extractSvc := &extract.Service{Store: objStore, Resumes: resumeRepo}
	feedbackSvc := &feedback.Service{Resumes: resumeRepo, Repo: feedbackRepo, LLM: llmClient}
	historySvc := &history.Service{Resumes: resumeRepo, Feedback: feedbackRepo, Store: objStore}

	var filesHandler *files.Handler
	if localStore != nil {
		filesHandler = files.NewHandler(localStore)
	}

	app := &App{
		Config:          cfg,
		KV:              store,
		Store:           objStore,
		ResumesRepo:     resumeRepo,
		FeedbackRepo:    feedbackRepo,
		UsersService:    userSvc,
		ExtractService:  extractSvc,
		FeedbackService: feedbackSvc,
		HistoryService:  historySvc,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		Auth:            provider,
		UsersHandler:    users.NewHandler(userSvc),
		ExtractHandler:  extract.NewHandler(extractSvc),
		FeedbackHandler: feedback.NewHandler(feedbackSvc),
		HistoryHandler:  history.NewHandler(historySvc),
		FilesHandler:    filesHandler,
	})

	return app, nil
}

// Close releases the app's storage handles.
func (a *App) Close() error {
	if a.KV != nil {
		return a.KV.Close()
	}
	return nil
}

func buildKV(ctx context.Context, cfg config.Config) (kv.Store, error) {
	switch cfg.KVStoreType {
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return nil, fmt.Errorf("KV_STORE=postgres requires DATABASE_URL")
		}
		return pgstore.Open(ctx, cfg.DatabaseURL)
	default:
		return badgerstore.Open(cfg.BadgerDir)
	}
}

func buildObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, *localstore.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	default:
		store := localstore.New(cfg.LocalStoreDir, cfg.PublicBaseURL, []byte(cfg.JWTSecret))
		return store, store, nil
	}
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "openai" {
		telemetry.Info("bootstrap.llm_placeholder", map[string]any{"provider": cfg.LLMProvider})
		return llm.PlaceholderClient{}, nil
	}
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if apiKey == "" {
		telemetry.Info("bootstrap.llm_placeholder", map[string]any{"reason": "OPENAI_API_KEY empty"})
		return llm.PlaceholderClient{}, nil
	}
	return openai.NewClient(apiKey, cfg.LLMModel)
}
