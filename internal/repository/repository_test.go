package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"itapp/internal/database"
	"itapp/internal/domain/application"
	"itapp/internal/domain/job"
	"itapp/internal/pkg/pagination"

	"github.com/google/uuid"
)

func TestJobSearch_BuildsFilteredQuery(t *testing.T) {
	db := &fakeDB{fakeQuerier: fakeQuerier{count: 3}}
	repo := NewPostgresJobRepository(db)

	f := job.SearchFilter{Field: "tech%", Location: "Paris", MinDuration: 3, MaxDuration: 6, Order: pagination.OrderASC}
	_, total, err := repo.Search(context.Background(), f, pagination.Page{Skip: 20, Take: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total != 3 {
		t.Fatalf("total=%d, want 3", total)
	}
	if len(db.calls) != 2 {
		t.Fatalf("expected count and select, got %d calls", len(db.calls))
	}

	where := " WHERE strpos(industry, $1) > 0 AND strpos(city, $2) > 0 AND duration_months >= $3 AND duration_months <= $4"
	count := db.calls[0]
	if count.query != "SELECT COUNT(1) FROM jobs"+where {
		t.Fatalf("count query=%q", count.query)
	}
	assertArgs(t, count.args, "tech%", "Paris", 3, 6)

	list := db.calls[1]
	if !strings.HasSuffix(list.query, " FROM jobs"+where+" ORDER BY created_at ASC LIMIT $5 OFFSET $6") {
		t.Fatalf("select query=%q", list.query)
	}
	assertArgs(t, list.args, "tech%", "Paris", 3, 6, 10, 20)
}

func TestJobSearch_DefaultsToNewestFirstWithoutFilters(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresJobRepository(db)

	if _, _, err := repo.Search(context.Background(), job.SearchFilter{Order: "sideways"}, pagination.Page{Take: 10}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := db.calls[0].query; got != "SELECT COUNT(1) FROM jobs" {
		t.Fatalf("count query=%q", got)
	}
	if got := db.calls[1].query; !strings.HasSuffix(got, " FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2") {
		t.Fatalf("select query=%q", got)
	}
	assertArgs(t, db.calls[1].args, 10, 0)
}

func TestJobSearch_RestrictsToCreationDay(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresJobRepository(db)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, _, err := repo.Search(context.Background(), job.SearchFilter{MinDuration: 2}, pagination.Page{Take: 5, Date: &day}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	want := "SELECT COUNT(1) FROM jobs WHERE duration_months >= $1 AND created_at >= $2 AND created_at < $3"
	if got := db.calls[0].query; got != want {
		t.Fatalf("count query=%q", got)
	}
	assertArgs(t, db.calls[0].args, 2, day, day.Add(24*time.Hour))
}

func TestLockJob_SelectsForUpdate(t *testing.T) {
	db := &fakeDB{}
	store := NewPostgresApplicationStore(db)
	id := uuid.New()

	err := store.InTx(context.Background(), func(r application.Repository) error {
		_, err := r.LockJob(context.Background(), id)
		return err
	})
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected job.ErrNotFound for missing row, got %v", err)
	}
	if len(db.tx.calls) != 1 || len(db.calls) != 0 {
		t.Fatalf("lock must run inside the transaction: tx=%d db=%d", len(db.tx.calls), len(db.calls))
	}
	call := db.tx.calls[0]
	if !strings.HasPrefix(call.query, "SELECT ") || !strings.HasSuffix(call.query, " FROM jobs WHERE id = $1 FOR UPDATE") {
		t.Fatalf("lock query=%q", call.query)
	}
	assertArgs(t, call.args, id)
	if db.tx.committed || !db.tx.rolledBack {
		t.Fatalf("failed tx must roll back: committed=%v rolledBack=%v", db.tx.committed, db.tx.rolledBack)
	}
}

func TestInsertStatements_MapUniqueViolationToDuplicate(t *testing.T) {
	ctx := context.Background()
	studentID, jobID := uuid.New(), uuid.New()
	now := time.Now()

	inserts := map[string]func(r application.Repository) error{
		"application": func(r application.Repository) error {
			return r.InsertApplication(ctx, application.Application{ID: uuid.New(), StudentID: studentID, JobID: jobID, CreatedAt: now})
		},
		"accepted": func(r application.Repository) error {
			return r.InsertAccepted(ctx, application.Accepted{ID: uuid.New(), StudentID: studentID, JobID: jobID, StartDate: now, EndDate: now, CreatedAt: now})
		},
		"shortlisted": func(r application.Repository) error {
			return r.InsertShortlisted(ctx, application.Shortlisted{ID: uuid.New(), StudentID: studentID, JobID: jobID, CreatedAt: now})
		},
		"saved": func(r application.Repository) error {
			return r.InsertSaved(ctx, application.Saved{ID: uuid.New(), StudentID: studentID, JobID: jobID, CreatedAt: now})
		},
	}
	for name, insert := range inserts {
		t.Run(name, func(t *testing.T) {
			wrapped := fmt.Errorf("insert: %w", database.ErrUniqueViolation)
			store := NewPostgresApplicationStore(&fakeDB{fakeQuerier: fakeQuerier{execErr: wrapped}})
			if err := insert(store); !errors.Is(err, application.ErrDuplicate) {
				t.Fatalf("expected application.ErrDuplicate, got %v", err)
			}

			other := errors.New("connection reset")
			store = NewPostgresApplicationStore(&fakeDB{fakeQuerier: fakeQuerier{execErr: other}})
			if err := insert(store); !errors.Is(err, other) {
				t.Fatalf("expected other errors to pass through, got %v", err)
			}
		})
	}
}

func TestAdjustJobCounters_AppliesSignedDeltas(t *testing.T) {
	db := &fakeDB{fakeQuerier: fakeQuerier{execRows: 1}}
	store := NewPostgresApplicationStore(db)
	id := uuid.New()

	if err := store.AdjustJobCounters(context.Background(), id, job.Counters{Total: -1, Accepted: 1, Shortlisted: 0}); err != nil {
		t.Fatalf("AdjustJobCounters: %v", err)
	}
	call := db.calls[0]
	for _, frag := range []string{
		"total_applicants = total_applicants + $2",
		"accepted_count = accepted_count + $3",
		"shortlisted_count = shortlisted_count + $4",
		"WHERE id = $1",
	} {
		if !strings.Contains(call.query, frag) {
			t.Fatalf("query missing %q: %s", frag, call.query)
		}
	}
	assertArgs(t, call.args, id, -1, 1, 0)

	db.execRows = 0
	if err := store.AdjustJobCounters(context.Background(), id, job.Counters{Total: 1}); !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected job.ErrNotFound when no row matched, got %v", err)
	}
}

func TestDeleteApplication_NoRowIsNotFound(t *testing.T) {
	store := NewPostgresApplicationStore(&fakeDB{})
	if err := store.DeleteApplication(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected application.ErrNotFound, got %v", err)
	}
	if err := store.MarkAccepted(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected application.ErrNotFound, got %v", err)
	}
}

func assertArgs(t *testing.T, got []any, want ...any) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("args=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("arg %d=%v (%T), want %v (%T)", i+1, got[i], got[i], want[i], want[i])
		}
	}
}

// --- fakes ---

type recordedCall struct {
	query string
	args  []any
}

// fakeQuerier records statements. QueryRow scans count into an *int target
// and reports sql.ErrNoRows for anything else.
type fakeQuerier struct {
	calls    []recordedCall
	count    int
	execRows int64
	execErr  error
}

func (q *fakeQuerier) record(query string, args []any) {
	q.calls = append(q.calls, recordedCall{query: query, args: args})
}

func (q *fakeQuerier) Exec(_ context.Context, query string, args ...any) (int64, error) {
	q.record(query, args)
	if q.execErr != nil {
		return 0, q.execErr
	}
	return q.execRows, nil
}

func (q *fakeQuerier) Query(_ context.Context, query string, args ...any) (database.Rows, error) {
	q.record(query, args)
	return &fakeRows{}, nil
}

func (q *fakeQuerier) QueryRow(_ context.Context, query string, args ...any) database.Row {
	q.record(query, args)
	return fakeRow{count: q.count}
}

type fakeDB struct {
	fakeQuerier
	tx *fakeTx
}

func (d *fakeDB) Ping(context.Context) error { return nil }
func (d *fakeDB) Close() error               { return nil }
func (d *fakeDB) SQLDB() *sql.DB             { return nil }

func (d *fakeDB) Begin(context.Context) (database.Tx, error) {
	d.tx = &fakeTx{fakeQuerier: fakeQuerier{count: d.count, execRows: d.execRows, execErr: d.execErr}}
	return d.tx, nil
}

type fakeTx struct {
	fakeQuerier
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(context.Context) error { t.committed = true; return nil }

func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeRow struct{ count int }

func (r fakeRow) Scan(dest ...any) error {
	if len(dest) == 1 {
		if n, ok := dest[0].(*int); ok {
			*n = r.count
			return nil
		}
	}
	return sql.ErrNoRows
}

type fakeRows struct{}

func (*fakeRows) Close()            {}
func (*fakeRows) Next() bool        { return false }
func (*fakeRows) Scan(...any) error { return sql.ErrNoRows }
func (*fakeRows) Err() error        { return nil }
