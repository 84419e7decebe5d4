package database

type Reflection struct {
	ID       int64  `db:"id"`
	Date     string `db:"date"`
	Language string `db:"language"`
	Title    string `db:"title"`
	Quote    string `db:"quote"`
	Text     string `db:"text"`
	Content  string `db:"content"`
}

type LanguageCount struct {
	Language string `db:"language"`
	Count    int64  `db:"count"`
}

type LanguageAverage struct {
	Language string  `db:"language"`
	Average  float64 `db:"average"`
}
