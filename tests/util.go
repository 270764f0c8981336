package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/vidyalabs/vidya/core/people"
)

// nopDriver is a database/sql driver whose connections accept Begin,
// Commit and Rollback without touching any backend. It lets service
// code that manages transactions run against the in-memory
// repositories, which ignore the executor argument.
type (
	nopDriver struct{}
	nopConn   struct{}
	nopTx     struct{}
)

func (nopDriver) Open(string) (driver.Conn, error)  { return nopConn{}, nil }
func (nopConn) Prepare(string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (nopConn) Close() error                        { return nil }
func (nopConn) Begin() (driver.Tx, error)           { return nopTx{}, nil }
func (nopTx) Commit() error                         { return nil }
func (nopTx) Rollback() error                       { return nil }

var registerOnce sync.Once

// NewDB returns a sqlx handle backed by the no-op driver.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()
	registerOnce.Do(func() { sql.Register("nop", nopDriver{}) })
	db, err := sql.Open("nop", "")
	if err != nil {
		t.Fatalf("open nop db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "nop")
}

func CreatePerson(
	t *testing.T,
	repo people.Repository,
	name, email, role, dept, roll string,
	createdAt ...time.Time,
) people.Person {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	p := people.Person{
		FullName:   name,
		Email:      email,
		Role:       role,
		Department: dept,
		RollNumber: roll,
		CreatedAt:  tstamp,
		UpdatedAt:  tstamp,
	}
	p, err := repo.CreatePerson(context.Background(), p)
	if err != nil {
		t.Fatalf("createPerson() failed: %v", err)
	}
	return p
}

// Logger discards everything; it satisfies core.Logger for tests.
type Logger struct{}

func (Logger) Debug(string, ...interface{}) {}
func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}
func (Logger) Fatal(string, ...interface{}) {}
