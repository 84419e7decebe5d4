package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "reflections.db")
	db, err := Open(context.Background(), path, Options{MaxOpenConns: 2})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, New(db).CreateSchema(context.Background()))
	return db
}

func seed(t *testing.T, q *Queries, rows ...UpsertReflectionParams) {
	t.Helper()
	for _, r := range rows {
		require.NoError(t, q.UpsertReflection(context.Background(), r))
	}
}

func row(date, lang, title, text string) UpsertReflectionParams {
	return UpsertReflectionParams{Date: date, Language: lang, Title: title, Quote: "quote " + title, Text: text, Content: "p. 1"}
}

func TestDialectFor(t *testing.T) {
	require.Equal(t, Postgres, DialectFor("pgx"))
	require.Equal(t, SQLite, DialectFor("sqlite3"))
	require.Equal(t, "postgres", Postgres.String())
}

func TestIsPostgresURL(t *testing.T) {
	require.True(t, IsPostgresURL("postgres://u:p@localhost/db"))
	require.True(t, IsPostgresURL("postgresql://localhost/db"))
	require.False(t, IsPostgresURL("data/reflections.db"))
	require.False(t, IsPostgresURL("sqlite://data/reflections.db"))
}

func TestResolveDSN_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b.db")
	driver, source, err := resolveDSN("sqlite://"+path, Options{})
	require.NoError(t, err)
	require.Equal(t, "sqlite3", driver)
	require.Contains(t, source, path+"?")
	require.Contains(t, source, "_busy_timeout=5000")
	require.DirExists(t, filepath.Dir(path))

	_, _, err = resolveDSN("", Options{})
	require.Error(t, err)
}

func TestCreateSchema_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, New(db).CreateSchema(context.Background()))
}

func TestUpsertReflection_ReplacesOnConflict(t *testing.T) {
	ctx := context.Background()
	q := New(openTestDB(t))

	seed(t, q, row("2025-01-01", "english", "First", "a"))
	seed(t, q, row("2025-01-01", "english", "Second", "b"))

	got, err := q.GetReflection(ctx, "2025-01-01", "english")
	require.NoError(t, err)
	require.Equal(t, "Second", got.Title)

	count, err := q.CountReflections(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestGetReflection_NoRows(t *testing.T) {
	q := New(openTestDB(t))
	_, err := q.GetReflection(context.Background(), "2025-01-01", "english")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteLanguage_OnlyTouchesPartition(t *testing.T) {
	ctx := context.Background()
	q := New(openTestDB(t))
	seed(t, q,
		row("2025-01-01", "pt-BR", "Novo Começo", "x"),
		row("2025-01-02", "pt-BR", "Dois", "y"),
		row("2025-01-01", "english", "New Beginning", "z"),
	)

	n, err := q.DeleteLanguage(ctx, "pt-BR")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	remaining, err := q.CountLanguage(ctx, "english")
	require.NoError(t, err)
	require.EqualValues(t, 1, remaining)
}

func TestSearchReflections_EscapesWildcards(t *testing.T) {
	ctx := context.Background()
	q := New(openTestDB(t))
	seed(t, q,
		row("2025-03-01", "english", "Hope", "100% honest"),
		row("2025-02-01", "english", "Faith", "one hundred percent"),
		row("2025-01-01", "english", "HOPE again", "plain"),
	)

	got, err := q.SearchReflections(ctx, "english", LikePattern("%"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Hope", got[0].Title)

	got, err = q.SearchReflections(ctx, "english", LikePattern("hope"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2025-01-01", got[0].Date, "results ordered by date")
}

func TestLikePattern(t *testing.T) {
	require.Equal(t, `%a\%b\_c\\%`, LikePattern(`a%b_c\`))
}

func TestReflectionsByMonth(t *testing.T) {
	ctx := context.Background()
	q := New(openTestDB(t))
	seed(t, q,
		row("2025-01-15", "english", "Jan", "a"),
		row("2025-02-15", "english", "Feb", "b"),
		row("2025-01-02", "english", "Jan early", "c"),
		row("2025-01-03", "french", "Janvier", "d"),
	)

	got, err := q.ReflectionsByMonth(ctx, "english", "01")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Jan early", got[0].Title)
	require.Equal(t, "Jan", got[1].Title)
}

func TestAggregates(t *testing.T) {
	ctx := context.Background()
	q := New(openTestDB(t))
	seed(t, q,
		row("2025-01-01", "english", "A", "abcd"),
		row("2025-01-02", "english", "B", "ab"),
		row("2025-01-01", "spanish", "C", "ñandú"),
	)

	counts, err := q.CountByLanguage(ctx)
	require.NoError(t, err)
	require.Equal(t, []LanguageCount{{"english", 2}, {"spanish", 1}}, counts)

	avgs, err := q.AverageTextLength(ctx)
	require.NoError(t, err)
	require.Len(t, avgs, 2)
	require.InDelta(t, 3.0, avgs[0].Average, 0.001)
	require.InDelta(t, 5.0, avgs[1].Average, 0.001, "length counts characters")

	byDate, err := q.ReflectionsByDate(ctx, "2025-01-01")
	require.NoError(t, err)
	require.Len(t, byDate, 2)
}

func TestSavepoints(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	q := New(tx)
	require.NoError(t, q.Savepoint(ctx, "sp_1"))
	require.NoError(t, q.UpsertReflection(ctx, row("2025-01-01", "english", "gone", "x")))
	require.NoError(t, q.RollbackToSavepoint(ctx, "sp_1"))
	require.NoError(t, q.ReleaseSavepoint(ctx, "sp_1"))
	require.NoError(t, tx.Commit())

	count, err := New(db).CountReflections(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}
