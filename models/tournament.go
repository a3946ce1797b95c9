package models

// Tournament представляет турнир.
type Tournament struct {
	ID           int     `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	Abbreviation *string `json:"abbreviation" db:"abbreviation"`
}
