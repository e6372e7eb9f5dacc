package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/peterbourgon/ff/v3"
	"github.com/pkg/errors"

	echoapi "github.com/ekta-foundation/casebook/apps/api/echo"
	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/report"
	"github.com/ekta-foundation/casebook/core/scorecard"
)

const envVarPrefix = "CASEBOOK"

var (
	createFileFunc = func(name string) (io.WriteCloser, error) { return os.Create(name) } // mockable

	errHelp       = errors.New("help provided")
	errDBRequired = errors.New("migrate requires a database (dbInMemory is set)")
)

type commandLine struct {
	conf       *core.Config
	db         *sqlx.DB // nil when running in memory
	scoreCards *scorecard.Service
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS] - run a goose migration command (up, down, status, ...)")
	fmt.Fprintln(cli.out, "  export -enrollment ID -start-month MONTH -end-month MONTH [-start-year YEAR] [-end-year YEAR] [-out FILE] - export scorecards as XLSX")
	fmt.Fprintln(cli.out, "  token -subject ID [-name NAME] [-email EMAIL] [-ttl DURATION] - issue an API token for an educator")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "export":
		return cli.runExport(args[2:])
	case "token":
		return cli.runToken(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// parse reads flags from args, then from CASEBOOK_* environment variables.
func parse(fs *flag.FlagSet, args []string) error {
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix(envVarPrefix)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) runExport(args []string) error {
	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportCmd.SetOutput(cli.out)
	var (
		enrollmentID = exportCmd.String("enrollment", "", "The enrollment id.")
		startMonth   = exportCmd.String("start-month", "January", "First month of the range (full English name).")
		endMonth     = exportCmd.String("end-month", "December", "Last month of the range (full English name).")
		startYear    = exportCmd.Int("start-year", 0, "First year of the range (defaults to the current year).")
		endYear      = exportCmd.Int("end-year", 0, "Last year of the range (defaults to the current year).")
		out          = exportCmd.String("out", "scorecards.xlsx", "The XLSX file to write.")
	)
	if err := parse(exportCmd, args); err != nil {
		return err
	}
	if *enrollmentID == "" {
		exportCmd.Usage()
		return errHelp
	}

	return cli.export(scorecard.RangeQuery{
		EnrollmentID: *enrollmentID,
		StartMonth:   *startMonth,
		EndMonth:     *endMonth,
		StartYear:    *startYear,
		EndYear:      *endYear,
	}, *out)
}

func (cli *commandLine) export(q scorecard.RangeQuery, name string) error {
	rr, err := cli.scoreCards.RangeReport(context.Background(), q)
	if err != nil {
		return err
	}

	f, err := createFileFunc(name)
	if err != nil {
		return errors.Wrapf(err, "creating %s", name)
	}
	if err = report.ExportRangeReport(f, rr); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", name)
	}
	fmt.Fprintf(cli.out, "exported %d score cards to %s\n", len(rr.ScoreCards), name)
	return nil
}

func (cli *commandLine) runToken(args []string) error {
	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenCmd.SetOutput(cli.out)
	var (
		subject = tokenCmd.String("subject", "", "The educator id.")
		name    = tokenCmd.String("name", "", "The educator name.")
		email   = tokenCmd.String("email", "", "The educator email.")
		ttl     = tokenCmd.Duration("ttl", 24*time.Hour, "How long the token stays valid.")
	)
	if err := parse(tokenCmd, args); err != nil {
		return err
	}
	if *subject == "" || *ttl <= 0 {
		tokenCmd.Usage()
		return errHelp
	}

	claims := echoapi.NewClaims(core.Person{ID: *subject, Name: *name, Email: *email}, cli.conf.AppName, *ttl)
	token, err := echoapi.GenerateToken(claims, cli.conf.SecretKey)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
