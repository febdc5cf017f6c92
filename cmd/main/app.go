package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/zhukovvlad/matcher-go/cmd/internal/attrs"
	"github.com/zhukovvlad/matcher-go/cmd/internal/clients"
	"github.com/zhukovvlad/matcher-go/cmd/internal/compare"
	"github.com/zhukovvlad/matcher-go/cmd/internal/config"
	db "github.com/zhukovvlad/matcher-go/cmd/internal/db/sqlc"
	"github.com/zhukovvlad/matcher-go/cmd/internal/lemma"
	"github.com/zhukovvlad/matcher-go/cmd/internal/ngram"
	"github.com/zhukovvlad/matcher-go/cmd/internal/server"
	"github.com/zhukovvlad/matcher-go/cmd/internal/services/consumer"
	"github.com/zhukovvlad/matcher-go/cmd/internal/services/shrinker"
	"github.com/zhukovvlad/matcher-go/cmd/pkg/logging"

	_ "github.com/lib/pq"
)

const dbDriver = "postgres"

func main() {
	logger := logging.GetLogger()
	logger.Info("Starting Matcher service...")

	if err := godotenv.Load(); err != nil {
		logger.Warnf("no .env file loaded: %v", err)
	}

	cfg := config.GetConfig()
	logging.SetLevel(cfg.LogLevel)
	logging.SetFormat(cfg.LogFormat)

	conn, err := sql.Open(dbDriver, cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("error connecting to database: %v", err)
	}
	defer conn.Close()

	if err = conn.Ping(); err != nil {
		logger.Fatalf("error pinging database: %v", err)
	}

	logger.Info("Database connection established")

	store := db.NewStore(conn)

	pool := clients.NewPool(logger)
	defer pool.CloseIdle()

	standardizer := clients.NewAttrsStandardizer(cfg.Services.AttrsStandardizerURL, pool, logger)
	units := clients.NewUnitStandardizer(cfg.Services.UnitStandardizerURL, pool, logger)
	semantic := clients.NewSemanticMatcher(cfg.Services.SemanticMatcherURL, pool, logger)

	elastic, err := clients.NewElasticRepository(cfg.Elastic, logger)
	if err != nil {
		logger.Fatalf("error creating elasticsearch client: %v", err)
	}
	if err := elastic.Ping(context.Background()); err != nil {
		logger.Warnf("elasticsearch недоступен при старте: %v", err)
	}

	trigrammer := ngram.NewTrigrammer()
	parser := attrs.NewParser(standardizer, units, logger)
	comparator := compare.NewComparator(
		trigrammer,
		units,
		lemma.NewStemmer(),
		cfg.Matching.ThresholdValueMatch,
		cfg.Matching.NumericTolerance,
		logger,
	)
	scorer := shrinker.NewCandidateScorer(parser, comparator, semantic, cfg.Matching.ThresholdAttributeMatch, logger)
	matcher := shrinker.NewPositionMatcher(
		parser,
		scorer,
		store,
		cfg.Matching.SemaphoreSize,
		cfg.Matching.CandidatesTrasholdScore,
		logger,
	)

	tenderConsumer := consumer.NewTenderConsumer(cfg.RabbitDSN, store, elastic, matcher, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := tenderConsumer.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Fatalf("consumer stopped: %v", err)
		}
	}()

	srv := server.NewServer(trigrammer, semantic, elastic, cfg, logger)

	serverAddress := fmt.Sprintf("%s:%s", cfg.Listen.BindIP, cfg.Listen.Port)
	logger.Infof("Starting server on %s", serverAddress)

	if err := srv.Start(serverAddress); err != nil {
		logger.Fatalf("error starting server: %v", err)
	}
}
