package main

import (
	"context"
	"log"
	"os"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/enrollment"
	"github.com/ekta-foundation/casebook/core/scorecard"
	"github.com/ekta-foundation/casebook/core/taxonomy"
	"github.com/ekta-foundation/casebook/storage/database"
	"github.com/ekta-foundation/casebook/storage/database/inmem"
	sqlxrepos "github.com/ekta-foundation/casebook/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()
	cli := commandLine{conf: conf, out: os.Stdout}

	// set up DB
	var (
		taxRepo taxonomy.Repository
		enrRepo enrollment.Repository
		scRepo  scorecard.Repository
	)
	if conf.Database.InMemory {
		db := inmemdb.Open()
		taxRepo = inmemdb.NewTaxonomyRepository(db)
		enrRepo = inmemdb.NewEnrollmentRepository(db)
		scRepo = inmemdb.NewScoreCardRepository(db)
	} else {
		ctx := context.Background()
		errAndDie(database.CreateIfNotExist(ctx, conf))
		db, err := database.Open(ctx, conf)
		errAndDie(err)
		defer db.Close()

		cli.db = db
		taxRepo = sqlxrepos.NewTaxonomyRepository(db)
		enrRepo = sqlxrepos.NewEnrollmentRepository(db)
		scRepo = sqlxrepos.NewScoreCardRepository(db)
	}

	validate, _ := core.NewValidator()
	taxSvc := taxonomy.NewService(taxRepo)
	enrSvc := enrollment.NewService(enrRepo, taxSvc)
	cli.scoreCards = scorecard.NewService(scRepo, enrSvc, taxSvc, validate)

	// start CLI
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		if cli.db != nil {
			_ = cli.db.Close()
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
