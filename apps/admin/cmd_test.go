package main

import (
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/tujenge/mipango/core"
)

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
}

func setup(t *testing.T) *commandLine {
	// no DB behind these; commands get mocks
	openDBFunc = func(conf *core.Config) (*sqlx.DB, error) {
		db, err := sql.Open("postgres", "")
		if err != nil {
			t.Fatalf("sql.Open() failed: %v", err)
		}
		return sqlx.NewDb(db, "postgres"), nil
	}
	pingFunc = func(db *sqlx.DB) error { return nil }

	return &commandLine{conf: core.NewConfig()}
}

func runCliTests(t *testing.T, cli *commandLine, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("failed! err = %v; wantErr %v", err, tt.wantErr)
				}
				return
			}
			if tt.wantErrStr != "" {
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("failed! err = %v; wantErrStr %q", err, tt.wantErrStr)
				}
				return
			}
			if err != nil {
				t.Errorf("failed! err = %v; want nil", err)
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli := setup(t)

	var createdbCalled bool
	createDBFunc = func(conf *core.Config) error {
		createdbCalled = true
		return nil
	}

	tests := []cliTest{
		{name: "no command", args: []string{}, wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "createdb", args: []string{"createdb"}},
	}
	runCliTests(t, cli, tests)

	if !createdbCalled {
		t.Error("createdb did not reach the database bootstrap")
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	var ran []string
	record := func(name string) func(*sql.DB) error {
		return func(*sql.DB) error {
			ran = append(ran, name)
			return nil
		}
	}
	migrateFunc = record("up")
	migrateDownFunc = record("down")
	migrationStatusFunc = record("status")

	tests := []cliTest{
		{name: "no direction", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown direction", args: []string{"migrate", "lol"}, wantErrStr: `"lol": no such migrate direction`},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
	}
	runCliTests(t, cli, tests)

	want := []string{"up", "down", "status"}
	if len(ran) != len(want) {
		t.Fatalf("ran = %v; want %v", ran, want)
	}
	for i, name := range want {
		if ran[i] != name {
			t.Errorf("ran[%d] = %v; want %v", i, ran[i], name)
		}
	}
}
