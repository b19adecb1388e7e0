package bootstrap

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "photoshare-backend/internal/auth"
	"photoshare-backend/internal/images"
	"photoshare-backend/internal/pipeline"
	"photoshare-backend/internal/services/health"
	"photoshare-backend/internal/shared/config"
	"photoshare-backend/internal/shared/server"
	"photoshare-backend/internal/shared/storage/couch"
	"photoshare-backend/internal/shared/storage/object"
	localstore "photoshare-backend/internal/shared/storage/object/local"
	s3store "photoshare-backend/internal/shared/storage/object/s3"
	"photoshare-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config     config.Config
	Router     *gin.Engine
	DB         couch.Store
	Store      object.ContainerStore
	Gateway    *object.Gateway
	Dispatcher pipeline.Dispatcher

	ImagesRepo    images.Repo
	UsersRepo     users.Repo
	ImagesService *images.Service
	UsersService  *users.Service
	ImageHandler  *images.Handler
	UserHandler   *users.Handler
	GoogleAuth    *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	db, err := buildDB(cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	gateway := object.NewGateway(store, cfg.CallTimeout)

	dispatcher, err := buildDispatcher(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:     cfg,
		DB:         db,
		Store:      store,
		Gateway:    gateway,
		Dispatcher: dispatcher,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		Health:       health.NewService(cfg.Env),
		ImageHandler: app.ImageHandler,
		UserHandler:  app.UserHandler,
		GoogleAuth:   app.GoogleAuth,
	})

	return app, nil
}

func buildDB(cfg config.Config) (couch.Store, error) {
	if strings.TrimSpace(cfg.CouchURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: COUCH_URL empty; using in-memory document store")
			return couch.NewMemoryStore(), nil
		}
		return nil, fmt.Errorf("COUCH_URL is required")
	}
	return couch.New(cfg.CouchURL, cfg.CouchDatabase, cfg.CouchUsername, cfg.CouchPassword, cfg.CallTimeout), nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ContainerStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.StorageProjectID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildDispatcher(ctx context.Context, cfg config.Config) (pipeline.Dispatcher, error) {
	switch cfg.PipelineDispatch {
	case "http":
		if strings.TrimSpace(cfg.PipelineURL) == "" {
			return nil, fmt.Errorf("PIPELINE_DISPATCH=http requires PIPELINE_URL")
		}
		return pipeline.NewHTTPDispatcher(cfg.PipelineURL, cfg.PipelineToken), nil
	case "sqs":
		return pipeline.NewSQSDispatcher(ctx, cfg.AWSRegion, cfg.PipelineQueueURL)
	default:
		log.Printf("bootstrap: no pipeline dispatch configured; image processing disabled")
		return pipeline.NopDispatcher{}, nil
	}
}

func buildServices(app *App) {
	shaper := images.Shaper{PublicBase: app.Config.PublicBase()}

	imagesRepo := &images.CouchRepo{DB: app.DB, Shaper: shaper}
	usersRepo := &users.CouchRepo{DB: app.DB}

	imagesSvc := &images.Service{
		Repo:       imagesRepo,
		Gateway:    app.Gateway,
		Dispatcher: app.Dispatcher,
		PublicBase: app.Config.PublicBase(),
	}
	usersSvc := users.NewService(usersRepo, app.Gateway)

	app.ImagesRepo = imagesRepo
	app.UsersRepo = usersRepo
	app.ImagesService = imagesSvc
	app.UsersService = usersSvc
	app.ImageHandler = images.NewHandler(imagesSvc)
	app.UserHandler = users.NewHandler(usersSvc, imagesSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		usersSvc,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
