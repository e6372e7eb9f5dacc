package main

import (
	"context"
	"expvar"
	"fmt"
	"io"
	"log"
	"net/http"
	_ "net/http/pprof" // register the /debug/pprof handlers
	"os"

	"github.com/pkg/errors"

	echoapi "github.com/ekta-foundation/casebook/apps/api/echo"
	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/document"
	"github.com/ekta-foundation/casebook/core/enrollment"
	"github.com/ekta-foundation/casebook/core/report"
	"github.com/ekta-foundation/casebook/core/scorecard"
	"github.com/ekta-foundation/casebook/core/taxonomy"
	logsvc "github.com/ekta-foundation/casebook/services/logger"
	"github.com/ekta-foundation/casebook/services/publisher"
	rediscache "github.com/ekta-foundation/casebook/storage/cache/redis"
	"github.com/ekta-foundation/casebook/storage/database"
	"github.com/ekta-foundation/casebook/storage/database/inmem"
	sqlxrepos "github.com/ekta-foundation/casebook/storage/database/sqlx"
)

type repositories struct {
	taxonomy    taxonomy.Repository
	enrollments enrollment.Repository
	scoreCards  scorecard.Repository
	documents   document.Repository
	closer      io.Closer
}

func main() {
	// =========================================================================
	// Set up Dependencies

	ctx := context.Background()
	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	defer logger.Wait()

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	// set up DB
	repos, err := setUpRepositories(ctx, conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	if repos.closer != nil {
		defer func() {
			if err = repos.closer.Close(); err != nil {
				dbLogger.Error("Failed to close", err)
			}
		}()
	}

	// set up the taxonomy cache
	taxRepo := repos.taxonomy
	if conf.Redis.Addr != "" {
		client, err := rediscache.NewClient(ctx, conf.Redis)
		if err != nil {
			logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
		}
		defer client.Close()
		taxRepo = rediscache.NewTaxonomyRepository(taxRepo, client, conf.Redis.TTL, dbLogger)
	}

	// set up the document publisher
	pub, err := publisher.New(ctx, conf.Storage)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up document publisher: %v", err), err)
	}
	var files echoapi.DocumentFiles
	if bp, ok := pub.(*publisher.BoltPublisher); ok {
		files = bp
		defer bp.Close()
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := core.NewValidator()

	taxSvc := taxonomy.NewService(taxRepo)
	enrSvc := enrollment.NewService(repos.enrollments, taxSvc)
	scSvc := scorecard.NewService(repos.scoreCards, enrSvc, taxSvc, validate)
	reportSvc := report.NewService(report.Deps{
		ScoreCards:   scSvc,
		Enrollments:  enrSvc,
		Taxonomy:     taxSvc,
		Documents:    repos.documents,
		Publisher:    pub,
		Renderer:     report.NewRenderer(conf.AppName),
		Validate:     validate,
		Logger:       logger,
		Folder:       conf.Storage.Folder,
		DocumentType: conf.Report.DocumentType,
	})

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			Validate:     validate,
			Translator:   translator,
			ScoreCardSvc: scSvc,
			ReportSvc:    reportSvc,
			Files:        files,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(ctx, conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpRepositories(ctx context.Context, conf *core.Config) (repositories, error) {
	if conf.Database.InMemory {
		db := inmemdb.Open()
		return repositories{
			taxonomy:    inmemdb.NewTaxonomyRepository(db),
			enrollments: inmemdb.NewEnrollmentRepository(db),
			scoreCards:  inmemdb.NewScoreCardRepository(db),
			documents:   inmemdb.NewDocumentRepository(db),
		}, nil
	}

	if err := database.CreateIfNotExist(ctx, conf); err != nil {
		return repositories{}, err
	}
	db, err := database.Open(ctx, conf)
	if err != nil {
		return repositories{}, err
	}
	if err = database.Migrate(db, "up"); err != nil {
		_ = db.Close()
		return repositories{}, errors.Wrap(err, "migrating database")
	}
	return repositories{
		taxonomy:    sqlxrepos.NewTaxonomyRepository(db),
		enrollments: sqlxrepos.NewEnrollmentRepository(db),
		scoreCards:  sqlxrepos.NewScoreCardRepository(db),
		documents:   sqlxrepos.NewDocumentRepository(db),
		closer:      db,
	}, nil
}
