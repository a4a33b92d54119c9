package tasks

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var taskCols = []string{"id", "title", "completed", "owner_id", "created_at"}

const (
	listQ   = `(?s)^SELECT\s+id,\s*title,\s*completed,\s*owner_id,\s*created_at\s+FROM\s+tasks\s+WHERE\s+owner_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id\s*$`
	insertQ = `(?s)^INSERT\s+INTO\s+tasks\s*\(id,\s*title,\s*completed,\s*owner_id,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`
	getQ    = `(?s)^SELECT\s+id,\s*title,\s*completed,\s*owner_id,\s*created_at\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s*$`
	updateQ = `(?s)^UPDATE\s+tasks\s+SET\s+title\s*=\s*COALESCE\(\$3,\s*title\),\s*completed\s*=\s*COALESCE\(\$4,\s*completed\)\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s+RETURNING\s+id,\s*title,\s*completed,\s*owner_id,\s*created_at\s*$`
	deleteQ = `(?s)^DELETE\s+FROM\s+tasks\s+WHERE\s+id\s*=\s*\$1\s+AND\s+owner_id\s*=\s*\$2\s*$`
)

var created = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestListByOwner_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(taskCols).
		AddRow("t1", "Buy milk", false, "alice", created).
		AddRow("t2", "Walk dog", true, "alice", created.Add(time.Minute))
	mock.ExpectQuery(listQ).WithArgs("alice").WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t1" || !got[1].Completed {
		t.Fatalf("unexpected tasks: %+v", got)
	}
}

func TestListByOwner_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQ).WithArgs("carol").WillReturnRows(sqlmock.NewRows(taskCols))

	got, err := repo.ListByOwner(context.Background(), "carol")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestListByOwner_Errors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(listQ).WithArgs("alice").WillReturnError(errors.New("db down"))

		_, err := repo.ListByOwner(context.Background(), "alice")
		if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})

	t.Run("rows", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		rows := sqlmock.NewRows(taskCols).
			AddRow("t1", "Buy milk", false, "alice", created).
			RowError(0, errors.New("row broke"))
		mock.ExpectQuery(listQ).WithArgs("alice").WillReturnRows(rows)

		_, err := repo.ListByOwner(context.Background(), "alice")
		if err == nil || !regexp.MustCompile(`db error: .*row broke`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped row error, got %v", err)
		}
	})
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	task := &models.Task{ID: "t1", Title: "Buy milk", OwnerID: "alice", CreatedAt: created}

	mock.ExpectExec(insertQ).
		WithArgs("t1", "Buy milk", false, "alice", created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "t1" {
		t.Fatalf("unexpected task: %+v", got)
	}

	mock.ExpectExec(insertQ).WillReturnError(errors.New("fk violation"))
	if _, err := repo.Create(context.Background(), task); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetByIDAndOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(getQ).WithArgs("t1", "alice").
		WillReturnRows(sqlmock.NewRows(taskCols).AddRow("t1", "Buy milk", false, "alice", created))

	got, err := repo.GetByIDAndOwner(context.Background(), "t1", "alice")
	if err != nil {
		t.Fatalf("GetByIDAndOwner error: %v", err)
	}
	if got.Title != "Buy milk" || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected task: %+v", got)
	}

	mock.ExpectQuery(getQ).WithArgs("t1", "bob").WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByIDAndOwner(context.Background(), "t1", "bob")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdateFields(t *testing.T) {
	done := true

	t.Run("completed only", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(updateQ).
			WithArgs("t1", "alice", nil, true).
			WillReturnRows(sqlmock.NewRows(taskCols).AddRow("t1", "Buy milk", true, "alice", created))

		got, err := repo.UpdateFields(context.Background(), "t1", "alice", models.TaskPatch{Completed: &done})
		if err != nil {
			t.Fatalf("UpdateFields error: %v", err)
		}
		if got.Title != "Buy milk" || !got.Completed {
			t.Fatalf("unexpected task: %+v", got)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet expectations: %v", err)
		}
	})

	t.Run("not owned", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(updateQ).
			WithArgs("t1", "bob", nil, true).
			WillReturnRows(sqlmock.NewRows(taskCols))

		_, err := repo.UpdateFields(context.Background(), "t1", "bob", models.TaskPatch{Completed: &done})
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("want common.ErrorNotFound, got %v", err)
		}
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock, db := newRepoWithMock(t)
		defer db.Close()

		mock.ExpectQuery(updateQ).WillReturnError(errors.New("db err"))

		_, err := repo.UpdateFields(context.Background(), "t1", "alice", models.TaskPatch{Completed: &done})
		if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
			t.Fatalf("expected wrapped db error, got %v", err)
		}
	})
}

func TestDeleteByIDAndOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).WithArgs("t1", "alice").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteQ).WithArgs("t1", "alice").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(deleteQ).WithArgs("t1", "alice").WillReturnError(errors.New("db down"))

	ok, err := repo.DeleteByIDAndOwner(context.Background(), "t1", "alice")
	if err != nil || !ok {
		t.Fatalf("first delete: ok=%v err=%v", ok, err)
	}

	ok, err = repo.DeleteByIDAndOwner(context.Background(), "t1", "alice")
	if err != nil || ok {
		t.Fatalf("second delete: ok=%v err=%v", ok, err)
	}

	if _, err := repo.DeleteByIDAndOwner(context.Background(), "t1", "alice"); err == nil {
		t.Fatal("expected db error")
	}
}
