package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
)

func TestPostgresPort_LoadFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	want := []byte(`{"users":[]}`)
	rows := sqlmock.NewRows([]string{"body"}).AddRow(want)
	mock.ExpectQuery("SELECT body FROM store_document").WillReturnRows(rows)

	p := NewPostgresPort(db)
	got, ok, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if string(got) != string(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresPort_LoadNoRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT body FROM store_document").WillReturnError(sql.ErrNoRows)

	p := NewPostgresPort(db)
	_, ok, err := p.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected ok=false when no row exists")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresPort_LoadDBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT body FROM store_document").WillReturnError(errors.New("connection reset"))

	p := NewPostgresPort(db)
	_, _, err = p.Load(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestPostgresPort_SaveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	data := []byte(`{"users":[]}`)
	mock.ExpectExec("INSERT INTO store_document").
		WithArgs(data).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := NewPostgresPort(db)
	if err := p.Save(context.Background(), data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresPort_SaveDBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO store_document").
		WillReturnError(errors.New("disk full"))

	p := NewPostgresPort(db)
	if err := p.Save(context.Background(), []byte(`{}`)); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunMigrations(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer db.Close()

	called := false
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		called = true
		return nil
	}
	defer func() { gooseUpContext = orig }()

	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("expected goose.UpContext to be invoked")
	}
}
