package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	echoapi "github.com/ekta-foundation/casebook/apps/api/echo"
	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/enrollment"
	"github.com/ekta-foundation/casebook/core/scorecard"
	"github.com/ekta-foundation/casebook/core/taxonomy"
	"github.com/ekta-foundation/casebook/storage/database"
	"github.com/ekta-foundation/casebook/storage/database/inmem"
	"github.com/ekta-foundation/casebook/tests"
)

func setup(t *testing.T) (*commandLine, *testutil.Fixture, *bytes.Buffer) {
	t.Helper()

	f := testutil.NewFixture(t)
	validate, _ := core.NewValidator()
	taxSvc := taxonomy.NewService(inmemdb.NewTaxonomyRepository(f.DB))
	enrSvc := enrollment.NewService(inmemdb.NewEnrollmentRepository(f.DB), taxSvc)

	var out bytes.Buffer
	cli := &commandLine{
		conf:       &core.Config{AppName: "Casebook", SecretKey: "test-secret"},
		db:         &sqlx.DB{},
		scoreCards: scorecard.NewService(inmemdb.NewScoreCardRepository(f.DB), enrSvc, taxSvc, validate),
		out:        &out,
	}
	return cli, f, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func (tt cliTest) check(t *testing.T, err error) {
	t.Helper()

	switch {
	case tt.wantErr != nil:
		assert.Equal(t, tt.wantErr, err)
	case tt.wantErrStr != "":
		if assert.Error(t, err) {
			assert.Equal(t, tt.wantErrStr, err.Error())
		}
	default:
		assert.NoError(t, err)
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, _, _ := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "export: no enrollment", args: []string{"export"}, wantErr: errHelp},
		{name: "export: help", args: []string{"export", "-h"}, wantErr: errHelp},
		{name: "token: no subject", args: []string{"token"}, wantErr: errHelp},
		{name: "token: negative ttl", args: []string{"token", "-subject", "x", "-ttl", "-1h"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _, _ := setup(t)

	gooseRunFunc = func(db *sqlx.DB, command string, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to":
			if len(args) == 0 {
				return fmt.Errorf("up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		case "down-to":
			if len(args) == 0 {
				return fmt.Errorf("down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}
	t.Cleanup(func() { gooseRunFunc = database.Migrate })

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-by-one", args: []string{"migrate", "up-by-one"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "redo", args: []string{"migrate", "redo"}},
		{name: "reset", args: []string{"migrate", "reset"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "reports", "sql"}},
		{name: "fix", args: []string{"migrate", "fix"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}

	t.Run("in memory", func(t *testing.T) {
		cli.db = nil
		assert.Equal(t, errDBRequired, cli.run([]string{"admin", "migrate", "up"}))
	})
}

type bufferCloser struct {
	bytes.Buffer
	closed bool
}

func (b *bufferCloser) Close() error {
	b.closed = true
	return nil
}

func Test_commandLine_export(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	scorecard.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { scorecard.NowFunc = time.Now })

	cli, f, out := setup(t)
	score := 4
	_, err := cli.scoreCards.Create(context.Background(), scorecard.NewScoreCard{
		EnrollmentID: f.Enrollment.ID, SubTaskID: f.Requests.ID, Month: "February", Week: 3, Score: &score,
	})
	require.NoError(t, err)

	files := make(map[string]*bufferCloser)
	origCreateFile := createFileFunc
	t.Cleanup(func() { createFileFunc = origCreateFile })
	createFileFunc = func(name string) (io.WriteCloser, error) {
		files[name] = new(bufferCloser)
		return files[name], nil
	}

	tests := []cliTest{
		{name: "unknown enrollment", args: []string{"export", "-enrollment", "nope", "-out", "nope.xlsx"}, wantErrStr: "enrollment not found"},
		{name: "exported", args: []string{"export", "-enrollment", f.Enrollment.ID, "-start-month", "January", "-end-month", "March", "-out", "asha.xlsx"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, cli.run(args))
		})
	}

	t.Run("invalid month", func(t *testing.T) {
		err := cli.run([]string{"admin", "export", "-enrollment", f.Enrollment.ID, "-start-month", "Feb", "-out", "feb.xlsx"})
		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
		assert.Equal(t, "start_month", vErrs[0].Field())
	})

	require.Contains(t, files, "asha.xlsx")
	assert.NotContains(t, files, "nope.xlsx")
	assert.NotContains(t, files, "feb.xlsx")
	assert.True(t, files["asha.xlsx"].closed)
	assert.Contains(t, out.String(), "exported 1 score cards to asha.xlsx")

	wb, err := excelize.OpenReader(&files["asha.xlsx"].Buffer)
	require.NoError(t, err)
	defer wb.Close()
	name, err := wb.GetCellValue("Scorecards", "E2")
	require.NoError(t, err)
	assert.Equal(t, "Requests Objects", name)
}

func Test_commandLine_token(t *testing.T) {
	cli, f, out := setup(t)

	err := cli.run([]string{"admin", "token", "-subject", f.Educator.ID, "-name", f.Educator.Name, "-ttl", "1h"})
	require.NoError(t, err)

	token := strings.TrimSpace(out.String())
	claims := new(echoapi.Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, f.Educator.ID, claims.Subject)
	assert.Equal(t, "Ravi Kumar", claims.Name)
	assert.Equal(t, "Casebook", claims.Issuer)
}
