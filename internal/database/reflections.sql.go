package database

import (
	"context"
	"strings"
)

// Placeholders are numbered in order of first appearance; SQLite assigns
// $N parameter slots that way and PostgreSQL binds them by number.

const reflectionColumns = `id, date, language, title, quote, text, content`

const upsertReflection = `
INSERT INTO reflections (date, language, title, quote, text, content)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (date, language) DO UPDATE SET
	title = excluded.title,
	quote = excluded.quote,
	text = excluded.text,
	content = excluded.content`

type UpsertReflectionParams struct {
	Date     string
	Language string
	Title    string
	Quote    string
	Text     string
	Content  string
}

func (q *Queries) UpsertReflection(ctx context.Context, arg UpsertReflectionParams) error {
	_, err := q.db.ExecContext(ctx, upsertReflection,
		arg.Date,
		arg.Language,
		arg.Title,
		arg.Quote,
		arg.Text,
		arg.Content,
	)
	return err
}

const deleteLanguage = `DELETE FROM reflections WHERE language = $1`

func (q *Queries) DeleteLanguage(ctx context.Context, language string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteLanguage, language)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const getReflection = `SELECT ` + reflectionColumns + `
FROM reflections
WHERE date = $1 AND language = $2`

// GetReflection returns sql.ErrNoRows when nothing matches.
func (q *Queries) GetReflection(ctx context.Context, date, language string) (Reflection, error) {
	var r Reflection
	err := q.db.GetContext(ctx, &r, getReflection, date, language)
	return r, err
}

const randomReflection = `SELECT ` + reflectionColumns + `
FROM reflections
WHERE language = $1
ORDER BY RANDOM()
LIMIT 1`

func (q *Queries) RandomReflection(ctx context.Context, language string) (Reflection, error) {
	var r Reflection
	err := q.db.GetContext(ctx, &r, randomReflection, language)
	return r, err
}

const searchReflections = `SELECT ` + reflectionColumns + `
FROM reflections
WHERE language = $1
  AND (title {{LIKE}} $2 ESCAPE '\' OR quote {{LIKE}} $2 ESCAPE '\' OR text {{LIKE}} $2 ESCAPE '\')
ORDER BY date`

// SearchReflections matches pattern against title, quote and text.
// Pattern is a LIKE pattern; callers escape it with LikePattern.
func (q *Queries) SearchReflections(ctx context.Context, language, pattern string) ([]Reflection, error) {
	op := "LIKE"
	if q.dialect == Postgres {
		op = "ILIKE"
	}
	query := strings.ReplaceAll(searchReflections, "{{LIKE}}", op)

	items := []Reflection{}
	err := q.db.SelectContext(ctx, &items, query, language, pattern)
	return items, err
}

// LikePattern wraps keyword in % wildcards, escaping any wildcard
// characters it already contains.
func LikePattern(keyword string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(keyword)
	return "%" + escaped + "%"
}

const reflectionsByMonth = `SELECT ` + reflectionColumns + `
FROM reflections
WHERE language = $1 AND substr(date, 6, 2) = $2
ORDER BY date`

// ReflectionsByMonth takes the month as two digits ("01".."12").
func (q *Queries) ReflectionsByMonth(ctx context.Context, language, month string) ([]Reflection, error) {
	items := []Reflection{}
	err := q.db.SelectContext(ctx, &items, reflectionsByMonth, language, month)
	return items, err
}

const reflectionsByDate = `SELECT ` + reflectionColumns + `
FROM reflections
WHERE date = $1
ORDER BY language`

func (q *Queries) ReflectionsByDate(ctx context.Context, date string) ([]Reflection, error) {
	items := []Reflection{}
	err := q.db.SelectContext(ctx, &items, reflectionsByDate, date)
	return items, err
}

const listReflections = `SELECT ` + reflectionColumns + `
FROM reflections
WHERE language = $1
ORDER BY date`

func (q *Queries) ListReflections(ctx context.Context, language string) ([]Reflection, error) {
	items := []Reflection{}
	err := q.db.SelectContext(ctx, &items, listReflections, language)
	return items, err
}

const countReflections = `SELECT COUNT(*) FROM reflections`

func (q *Queries) CountReflections(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.GetContext(ctx, &count, countReflections)
	return count, err
}

const countLanguage = `SELECT COUNT(*) FROM reflections WHERE language = $1`

func (q *Queries) CountLanguage(ctx context.Context, language string) (int64, error) {
	var count int64
	err := q.db.GetContext(ctx, &count, countLanguage, language)
	return count, err
}

const countByLanguage = `
SELECT language, COUNT(*) AS count
FROM reflections
GROUP BY language
ORDER BY language`

func (q *Queries) CountByLanguage(ctx context.Context) ([]LanguageCount, error) {
	items := []LanguageCount{}
	err := q.db.SelectContext(ctx, &items, countByLanguage)
	return items, err
}

const averageTextLength = `
SELECT language, CAST(AVG(LENGTH(text)) AS DOUBLE PRECISION) AS average
FROM reflections
GROUP BY language
ORDER BY language`

func (q *Queries) AverageTextLength(ctx context.Context) ([]LanguageAverage, error) {
	items := []LanguageAverage{}
	err := q.db.SelectContext(ctx, &items, averageTextLength)
	return items, err
}
