package core

import (
	"time"
)

// DateLayout is the storage and wire format for reflection dates.
const DateLayout = "2006-01-02"

// Reflection is one daily reflection in one language.
type Reflection struct {
	Date      string   `db:"date" json:"date"`
	Language  Language `db:"language" json:"language"`
	Title     string   `db:"title" json:"title"`
	Quote     string   `db:"quote" json:"quote"`
	Text      string   `db:"text" json:"text"`
	Reference string   `db:"content" json:"reference"`
}

// Statistics summarizes the table contents.
// TotalReflections always equals the sum of ByLanguage.
type Statistics struct {
	TotalReflections  int                  `json:"total_reflections"`
	ByLanguage        map[Language]int     `json:"by_language"`
	AverageTextLength map[Language]float64 `json:"average_text_length"`
}

// CSV header columns of the import source, in file order.
const (
	ColumnDate      = "Date"
	ColumnLanguage  = "Language"
	ColumnTitle     = "Title"
	ColumnQuote     = "Quote"
	ColumnText      = "Reflection Text"
	ColumnReference = "Reference"
)

// CSVColumns lists the header columns an import file must contain.
var CSVColumns = []string{ColumnDate, ColumnLanguage, ColumnTitle, ColumnQuote, ColumnText, ColumnReference}

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

// ImportOptions configures a single partition import.
type ImportOptions struct {
	CSVPath  string
	Language Language

	// Strict rolls back the whole import if any row fails.
	Strict bool

	// MaxFileSize rejects larger files before any database work; 0 disables the check.
	MaxFileSize int64
}

// ImportPhase indicates the current stage of import processing.
type ImportPhase string

const (
	PhaseStarting  ImportPhase = "starting"
	PhaseClearing  ImportPhase = "clearing"
	PhaseInserting ImportPhase = "inserting"
	PhaseVerifying ImportPhase = "verifying"
	PhaseComplete  ImportPhase = "complete"
	PhaseFailed    ImportPhase = "failed"
)

// ImportProgress is reported periodically while rows are processed.
type ImportProgress struct {
	ImportID   string
	Phase      ImportPhase
	CurrentRow int
	Inserted   int
	Failed     int
	BytesRead  int64
	BytesTotal int64
}

// Percent returns byte-based progress (0-100), or 0 if the size is unknown.
func (p ImportProgress) Percent() int {
	if p.BytesTotal <= 0 {
		return 0
	}
	return int((p.BytesRead * 100) / p.BytesTotal)
}

// ProgressCallback is called periodically during import processing.
type ProgressCallback func(ImportProgress)

// RowStatus is the outcome of one CSV row in the target partition.
type RowStatus string

const (
	RowImported RowStatus = "imported"
	RowFailed   RowStatus = "failed"
)

// RowResult records what happened to one CSV row of the target partition.
type RowResult struct {
	Line   int       `json:"line"`
	Date   string    `json:"date"`
	Status RowStatus `json:"status"`
	Reason string    `json:"reason,omitempty"`
	Data   []string  `json:"data,omitempty"`
}

// ImportResult is the batch report of one import run.
type ImportResult struct {
	ImportID string   `json:"import_id"`
	Language Language `json:"language"`
	FileName string   `json:"file_name"`

	TotalRows int `json:"total_rows"` // data rows read, all languages
	Matched   int `json:"matched"`    // rows of the target language
	Inserted  int `json:"inserted"`   // successful upserts
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"` // other languages and blank rows

	// Stored is the verified partition row count after commit.
	Stored    int              `json:"stored"`
	Breakdown map[Language]int `json:"breakdown"`

	Rows     []RowResult   `json:"rows"`
	Duration time.Duration `json:"duration"`
}

// FailedRows returns the rows that could not be stored.
func (r *ImportResult) FailedRows() []RowResult {
	var failed []RowResult
	for _, row := range r.Rows {
		if row.Status == RowFailed {
			failed = append(failed, row)
		}
	}
	return failed
}
