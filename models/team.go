package models

type Team struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DateCreated Date   `json:"date_created"`
	Win         int    `json:"win"`
	Loss        int    `json:"loss"`
	Draw        int    `json:"draw"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`

	// Состав команды, заполняется сборщиком ростера.
	Users []User `json:"users,omitempty"`
}
