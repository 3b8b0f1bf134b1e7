package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"companymatch/cmd/internal/config"
	"companymatch/cmd/internal/domain/sqlite"
	"companymatch/cmd/internal/domain/sqlite/repository"
	handler2 "companymatch/cmd/internal/http/handler"
	appmiddleware "companymatch/cmd/internal/http/middleware"
	"companymatch/cmd/internal/infrastructure/aws/storage"
	"companymatch/cmd/internal/infrastructure/openai"
	"companymatch/cmd/internal/infrastructure/registry"
	"companymatch/cmd/internal/service"
	"companymatch/cmd/internal/service/jobs"
	"companymatch/cmd/internal/utils/validators"
)

const envVarsPrefix = "/companymatch/prod/"

func main() {
	validate := validator.New()
	registerValidators(validate)

	// Loads env vars depending on environment
	if os.Getenv("GO_ENV") == "production" {
		loadProdEnv() // AWS SSM Parameter Store
	} else {
		// Loads from .env
		if err := godotenv.Load(); err != nil {
			log.Warnf("no .env file loaded: %v", err)
		}
	}

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init SQLite
	db, err := sqlite.Init(cfg.DBPath)
	if err != nil {
		panic(err)
	}
	defer sqlite.Close(db)

	companyRepo := repository.NewCompanyRepository(db)

	var fetcher storage.ObjectFetcher
	if strings.HasPrefix(cfg.DataSource, "s3://") {
		fetcher, err = storage.NewDownloadClient()
		if err != nil {
			panic(err)
		}
	}
	resolver := registry.NewResolver(cfg.DataDir, fetcher)

	// The store must be fully built before it serves queries.
	indexService := service.NewIndexService(companyRepo, resolver)
	if err := indexService.EnsureBuilt(ctx, cfg.DataSource, cfg.ForceRecreate); err != nil {
		// A half-built database must not be reused on the next start.
		sqlite.Close(db)
		os.Remove(cfg.DBPath)
		log.Fatalf("failed to build registry store: %v", err)
	}

	oracle := openai.NewClient(cfg.OracleBaseURL, cfg.OracleAPIKey, cfg.OracleModel, cfg.OracleTimeout)
	recommender := service.NewOracleRecommender(oracle, cfg.OracleTimeout)

	// Getting services
	matchService := service.NewMatchService(companyRepo, recommender, validate, cfg.SearchLimit)

	// Getting handlers
	matchRoutes := handler2.NewMatchRoute(matchService)
	companyRoutes := handler2.NewCompanyRoute(matchService)

	cleaner := jobs.NewDownloadCacheCleaner(cfg.DataDir)
	go cleaner.Start(ctx)

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("1M"))
	e.Use(appmiddleware.RequestID())

	// Matching
	e.POST("/api/match-companies", matchRoutes.MatchCompanies)
	e.POST("/api/search/companies", matchRoutes.SearchCompanies)

	// Companies
	e.GET("/api/companies/:number", companyRoutes.GetCompany)

	// Docker Compose healthcheck
	e.GET("/health", companyRoutes.Health)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown failed: %v", err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

func loadProdEnv() {
	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion("eu-west-2"))
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	client := ssm.NewFromConfig(cfg)
	out, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})
	if err != nil {
		log.Fatalf("unable to load prod environment, %v", err)
	}

	prefixLength := len(envVarsPrefix)
	// Export vars
	for _, param := range out.Parameters {
		key := (*param.Name)[prefixLength:]
		value := *param.Value
		enverr := os.Setenv(key, value)
		if enverr != nil {
			log.Fatalf("unable to set environment variable, %v", enverr)
		}
	}
	log.Debugf("loaded %d prod environment variables", len(out.Parameters))
}
