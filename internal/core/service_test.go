package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	db "github.com/JonMunkholm/reflections/internal/database"
)

const csvHeader = "Date,Language,Title,Quote,Reflection Text,Reference\n"

// sampleCSV covers every language for the first days of January plus one
// February entry.
const sampleCSV = csvHeader +
	"2025-01-01,english,New Beginning,\"Today, I begin.\",Hope is where it starts.,\"Daily Reflections, p. 1\"\n" +
	"2025-01-01,spanish,Nuevo Comienzo,Hoy comienzo.,La esperanza empieza aquí.,p. 1\n" +
	"2025-01-01,french,Nouveau Départ,Aujourd'hui je commence.,L'espoir commence ici.,p. 1\n" +
	"2025-01-01,pt-BR,Novo Começo,Hoje eu começo.,A esperança começa aqui.,p. 1\n" +
	"2025-01-02,english,Acceptance,Accept today.,Serenity comes with acceptance.,p. 2\n" +
	"2025-01-02,pt-BR,Aceitação,Aceite o hoje.,A serenidade vem com a aceitação.,p. 2\n" +
	"2025-02-01,english,Gratitude,Be grateful.,Gratitude opens the door to hope.,p. 32\n"

func newTestService(t *testing.T, opts ...Option) (*Service, *sqlx.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "reflections.db")
	conn, err := db.Open(context.Background(), path, db.Options{MaxOpenConns: 4})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewService(conn, opts...), conn
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reflections.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// seedAll imports every language of content.
func seedAll(t *testing.T, svc *Service, content string) {
	t.Helper()
	path := writeCSV(t, content)
	for _, lang := range Languages {
		_, err := svc.Import(context.Background(), ImportOptions{CSVPath: path, Language: lang})
		require.NoError(t, err)
	}
}

func fixedClock(day string) Option {
	return WithClock(func() time.Time {
		ts, _ := time.Parse(DateLayout, day)
		return ts.Add(15 * time.Hour)
	})
}

func titles(rs []Reflection) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
