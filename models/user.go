package models

// User хранит учётные и анкетные данные игрока лиги.
// Пароль хранится только в виде bcrypt-хеша и никогда не сериализуется.
// Поле Available игроки обновляют сами каждую неделю; Phone нужен для
// срочных уведомлений об отменах и переносах игр.
type User struct {
	ID           int    `json:"id"`
	Admin        bool   `json:"admin"`
	Captain      bool   `json:"captain"`
	DateCreated  Date   `json:"date_created"`
	First        string `json:"first"`
	Last         string `json:"last"`
	DOB          *Date  `json:"dob,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Bio          string `json:"bio,omitempty"`
	Available    bool   `json:"available"`
	Phone        *int64 `json:"phone,omitempty"`
	TeamID       int    `json:"team_id"`

	// Заполняется только сборщиком профиля, не репозиторием.
	Team *Team `json:"team,omitempty"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
