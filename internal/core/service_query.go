package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	db "github.com/JonMunkholm/reflections/internal/database"
)

// GetByDate returns the reflection for date in language.
func (s *Service) GetByDate(ctx context.Context, date string, lang Language) (*Reflection, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}
	date = strings.TrimSpace(date)
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	row, err := db.New(s.db).GetReflection(ctx, date, string(lang))
	if err != nil {
		return nil, lookupError(err, "get %s reflection for %s", lang, date)
	}
	r := fromRow(row)
	return &r, nil
}

// GetToday returns today's reflection according to the service clock.
func (s *Service) GetToday(ctx context.Context, lang Language) (*Reflection, error) {
	return s.GetByDate(ctx, s.Today(), lang)
}

// GetRandom returns a uniformly random reflection of the language.
// An empty partition yields ErrNotFound.
func (s *Service) GetRandom(ctx context.Context, lang Language) (*Reflection, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}

	row, err := db.New(s.db).RandomReflection(ctx, string(lang))
	if err != nil {
		return nil, lookupError(err, "random %s reflection", lang)
	}
	r := fromRow(row)
	return &r, nil
}

// Search returns reflections whose title, quote or text contains keyword,
// ordered by date. Matching is case-insensitive.
func (s *Service) Search(ctx context.Context, keyword string, lang Language) ([]Reflection, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("%w: empty search keyword", ErrInvalidArgument)
	}

	rows, err := db.New(s.db).SearchReflections(ctx, string(lang), db.LikePattern(keyword))
	if err != nil {
		return nil, fmt.Errorf("search %s reflections: %w", lang, err)
	}
	return fromRows(rows), nil
}

// GetByMonth returns the reflections of a calendar month (1-12), ordered by date.
func (s *Service) GetByMonth(ctx context.Context, month int, lang Language) ([]Reflection, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: %d (want 1-12)", ErrInvalidMonth, month)
	}

	rows, err := db.New(s.db).ReflectionsByMonth(ctx, string(lang), fmt.Sprintf("%02d", month))
	if err != nil {
		return nil, fmt.Errorf("list %s reflections for month %d: %w", lang, month, err)
	}
	return fromRows(rows), nil
}

// GetAllLanguages returns the reflection for date in every language that has one.
func (s *Service) GetAllLanguages(ctx context.Context, date string) (map[Language]Reflection, error) {
	date = strings.TrimSpace(date)
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	rows, err := db.New(s.db).ReflectionsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list reflections for %s: %w", date, err)
	}

	result := make(map[Language]Reflection, len(rows))
	for _, row := range rows {
		r := fromRow(row)
		result[r.Language] = r
	}
	return result, nil
}

// ListByLanguage returns the whole partition ordered by date.
func (s *Service) ListByLanguage(ctx context.Context, lang Language) ([]Reflection, error) {
	if err := checkLanguage(lang); err != nil {
		return nil, err
	}

	rows, err := db.New(s.db).ListReflections(ctx, string(lang))
	if err != nil {
		return nil, fmt.Errorf("list %s reflections: %w", lang, err)
	}
	return fromRows(rows), nil
}

// GetStatistics returns row counts and average text length per language.
// Languages are reported as stored, so rows outside the supported set
// still count toward the total.
func (s *Service) GetStatistics(ctx context.Context) (*Statistics, error) {
	q := db.New(s.db)

	counts, err := q.CountByLanguage(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reflections by language: %w", err)
	}
	averages, err := q.AverageTextLength(ctx)
	if err != nil {
		return nil, fmt.Errorf("average text length: %w", err)
	}

	stats := &Statistics{
		ByLanguage:        make(map[Language]int, len(counts)),
		AverageTextLength: make(map[Language]float64, len(averages)),
	}
	for _, c := range counts {
		stats.ByLanguage[Language(c.Language)] = int(c.Count)
		stats.TotalReflections += int(c.Count)
	}
	for _, a := range averages {
		stats.AverageTextLength[Language(a.Language)] = roundTo(a.Average, 2)
	}
	return stats, nil
}

// Breakdown returns the row count of every language present.
func (s *Service) Breakdown(ctx context.Context) (map[Language]int, error) {
	counts, err := db.New(s.db).CountByLanguage(ctx)
	if err != nil {
		return nil, fmt.Errorf("count reflections by language: %w", err)
	}
	result := make(map[Language]int, len(counts))
	for _, c := range counts {
		result[Language(c.Language)] = int(c.Count)
	}
	return result, nil
}

// EnsureSchema creates the reflections table if it is missing.
func (s *Service) EnsureSchema(ctx context.Context) error {
	return db.New(s.db).CreateSchema(ctx)
}

func checkLanguage(lang Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	return nil
}

func lookupError(err error, format string, args ...any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

func fromRow(row db.Reflection) Reflection {
	return Reflection{
		Date:      row.Date,
		Language:  Language(row.Language),
		Title:     row.Title,
		Quote:     row.Quote,
		Text:      row.Text,
		Reference: row.Content,
	}
}

func fromRows(rows []db.Reflection) []Reflection {
	out := make([]Reflection, len(rows))
	for i, row := range rows {
		out[i] = fromRow(row)
	}
	return out
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
