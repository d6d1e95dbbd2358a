package postings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateWritesChildrenInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	p := validPosting()
	p.CompanyID = 1
	p.TotalScore = 100
	p.Status = StatusScheduled
	p.ResumeItems = p.ResumeItems[:1]
	p.ResumeItems[0].Criteria = []ItemCriterion{{Grade: "A", ScorePerGrade: 40}}
	p.CoverLetterQuestions = nil

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO job_postings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))
	mock.ExpectQuery("INSERT INTO resume_items").
		WithArgs(int64(5), "Experience", "NUMBER", false, sqlmock.AnyArg(), 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(6)))
	mock.ExpectQuery("INSERT INTO resume_item_criteria").
		WithArgs(int64(6), "A", nil, 40).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 5 || created.ResumeItems[0].ID != 6 || created.ResumeItems[0].Criteria[0].ID != 7 {
		t.Fatalf("ids not propagated: %+v", created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateRollsBackOnChildFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	p := validPosting()
	p.CompanyID = 1
	p.ResumeItems = p.ResumeItems[:1]
	p.CoverLetterQuestions = nil

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO job_postings").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))
	mock.ExpectQuery("INSERT INTO resume_items").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	if _, err := repo.Create(context.Background(), p); err == nil {
		t.Fatalf("expected error from child insert")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE job_postings SET posting_status").
		WithArgs(int64(42), "CLOSED", now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(context.Background(), 42, StatusClosed, now)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
