package profileimage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoSaveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	img := Image{UserID: "user-1", Data: []byte{0xff, 0xd8, 0xff}}

	mock.ExpectExec("INSERT INTO profile_images").
		WithArgs(img.UserID, img.Data).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Save(context.Background(), img); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFindByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	updatedAt := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"user_id", "image_data", "updated_at"}).
		AddRow("user-1", []byte{0xff, 0xd8, 0xff}, updatedAt)

	mock.ExpectQuery("SELECT user_id, image_data, updated_at").
		WithArgs("user-1").
		WillReturnRows(rows)

	img, err := repo.FindByUserID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if img.UserID != "user-1" {
		t.Fatalf("expected user-1, got %s", img.UserID)
	}
	if len(img.Data) != 3 {
		t.Fatalf("expected 3 payload bytes, got %d", len(img.Data))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFindByUserIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT user_id, image_data, updated_at").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "image_data", "updated_at"}))

	if _, err := repo.FindByUserID(context.Background(), "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteMissingRowSucceeds(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("DELETE FROM profile_images").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
