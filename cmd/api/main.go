package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventmarket/cmd/internal/config"
	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/policy"
	"eventmarket/cmd/internal/domain/recordstore"
	"eventmarket/cmd/internal/domain/sqlite"
	"eventmarket/cmd/internal/domain/sqlite/repository"
	"eventmarket/cmd/internal/http/handler"
	authmiddleware "eventmarket/cmd/internal/http/middleware"
	ssmparams "eventmarket/cmd/internal/infrastructure/aws/ssm"
	"eventmarket/cmd/internal/infrastructure/aws/storage"
	"eventmarket/cmd/internal/infrastructure/aws/websocket"
	"eventmarket/cmd/internal/routes"
	"eventmarket/cmd/internal/service"
	"eventmarket/cmd/internal/service/jobs"
	"eventmarket/cmd/internal/utils"
	"eventmarket/cmd/internal/utils/validators"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const (
	ssmRegion = "us-east-2"

	collectionBusinesses        = "businessDirectory"
	collectionReverseProposals  = "reverseProposals"
	collectionExternalProposals = "externalProposals"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot, err := config.LoadBootstrap()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Loads env vars depending on environment
	if boot.Production() {
		loadProdEnv(ctx, boot.SSMParamPrefix) // AWS SSM Parameter Store
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("unable to load .env, %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("unable to open %s store: %v", cfg.StoreBackend, err)
	}

	businesses := newCollection[entity.BusinessDirectoryEntry](backend, collectionBusinesses)
	reverseProposals := newCollection[entity.ReverseProposal](backend, collectionReverseProposals)
	externalProposals := newCollection[entity.ExternalProposalRecord](backend, collectionExternalProposals)

	validate := validators.New()
	partyPolicy := policy.NewPartyPolicy()

	var dispatcher service.Dispatcher = service.LogDispatcher{}
	var connectionRoutes *handler.DefaultConnectionRoute
	if cfg.WSGatewayEndpoint != "" {
		gateway, err := websocket.NewAWSGatewayClient(ctx, cfg.WSGatewayEndpoint, cfg.WSGatewayRegion)
		if err != nil {
			log.Fatalf("unable to init websocket gateway: %v", err)
		}
		connections := websocket.NewConnectionRegistry()
		dispatcher = websocket.NewPushDispatcher(gateway, connections, dispatcher)
		connectionRoutes = handler.NewConnectionDefault(connections)
	}

	// Getting services
	notifications := service.NewNotificationService(dispatcher, cfg.InviteBaseURL)
	directoryService := service.NewDirectoryService(businesses, validate)
	reverseService := service.NewReverseProposalService(reverseProposals, directoryService, notifications, service.Pricing{
		InvitationCost:   cfg.InvitationCost,
		ConversionReward: cfg.ConversionReward,
	})
	externalService := service.NewExternalProposalService(externalProposals, notifications, validate)

	auth, err := newAuthMiddleware(cfg)
	if err != nil {
		log.Fatalf("unable to init auth: %v", err)
	}

	if cfg.ProposalTTL > 0 {
		go jobs.NewProposalExpirer(reverseService, cfg.ProposalTTL, cfg.ExpirySweepInterval).Start(ctx)
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))

	routes.Register(e, &routes.Handlers{
		Directory:   handler.NewDirectoryDefault(directoryService, partyPolicy),
		Proposals:   handler.NewProposalDefault(reverseService, directoryService, partyPolicy, validate),
		Invitations: handler.NewInvitationDefault(externalService, partyPolicy, notifications, validate),
		Connections: connectionRoutes,
	}, auth)

	go func() {
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("graceful shutdown failed: %v", err)
	}
}

// backend holds whichever client the configured store needs.
type backend struct {
	kind     string
	dataDir  string
	db       *gorm.DB
	s3       *s3.Client
	bucket   string
	s3Prefix string
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{kind: cfg.StoreBackend, dataDir: cfg.DataDir}

	switch cfg.StoreBackend {
	case config.BackendSQLite:
		db, err := sqlite.Init(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.db = db
	case config.BackendS3:
		client, err := storage.NewS3Client(ctx, cfg.S3Region)
		if err != nil {
			return nil, err
		}
		b.s3 = client
		b.bucket = cfg.S3Bucket
		b.s3Prefix = cfg.S3KeyPrefix
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, err
		}
	}

	log.Infof("using %s store backend", b.kind)
	return b, nil
}

func newCollection[T any](b *backend, name string) *recordstore.Collection[T] {
	switch b.kind {
	case config.BackendSQLite:
		return recordstore.NewCollection[T](repository.NewCollectionRepository[T](b.db, name))
	case config.BackendS3:
		return recordstore.NewCollection[T](storage.NewCollectionObject[T](b.s3, b.bucket, b.s3Prefix, name))
	default:
		return recordstore.NewCollection[T](recordstore.NewFileStore[T](b.dataDir, name))
	}
}

func newAuthMiddleware(cfg *config.Config) (echo.MiddlewareFunc, error) {
	if !cfg.AuthEnabled {
		log.Warn("authentication disabled, trusting actor headers")
		return authmiddleware.NewAuthMiddleware(&authmiddleware.AuthMiddlewareConfig{}), nil
	}

	verifier, err := utils.NewCognitoVerifier(cfg.CognitoRegion, cfg.CognitoPoolID)
	if err != nil {
		return nil, err
	}
	return authmiddleware.NewAuthMiddleware(&authmiddleware.AuthMiddlewareConfig{
		Verifier: verifier,
		Enabled:  true,
	}), nil
}

func loadProdEnv(ctx context.Context, prefix string) {
	client, err := ssmparams.NewClient(ctx, ssmRegion)
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	n, err := ssmparams.ExportParameters(ctx, client, prefix)
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}
	log.Debugf("loaded %d prod environment variables", n)
}
