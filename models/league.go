package models

// League представляет лигу в рамках одного вида спорта.
// Имя уникально внутри вида спорта, но может повторяться между видами.
type League struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
	Sport     string `json:"sport"`
}
