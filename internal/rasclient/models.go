// models.go — модели RAS Management API.
// Формы полей соответствуют JSON-ответам Retro AIM Server.
package rasclient

// Статусы блокировки учётной записи, которые понимает RAS.
// Пустая строка означает активную учётную запись.
const (
	StatusActive       = ""
	StatusSuspended    = "suspended"
	StatusDeleted      = "deleted"
	StatusExpired      = "expired"
	StatusSuspendedAge = "suspended_age"
)

// User — учётная запись в Retro AIM Server.
type User struct {
	ID              string `json:"id"`
	ScreenName      string `json:"screen_name"`
	IsICQ           bool   `json:"is_icq"`
	SuspendedStatus string `json:"suspended_status,omitempty"`
	Profile         string `json:"profile,omitempty"`
	EmailAddress    string `json:"email_address,omitempty"`
	Confirmed       bool   `json:"confirmed,omitempty"`
}

// Session — активная сессия пользователя на RAS.
// Это подключение AIM/ICQ-клиента, а не сессия web-UI консоли.
type Session struct {
	ID            string  `json:"id"`
	ScreenName    string  `json:"screen_name"`
	OnlineSeconds float64 `json:"online_seconds"`
	AwayMessage   string  `json:"away_message"`
	IdleSeconds   float64 `json:"idle_seconds"`
	IsICQ         bool    `json:"is_icq"`
	RemoteAddr    string  `json:"remote_addr"`
	RemotePort    int     `json:"remote_port"`
}

// sessionListResponse — ответ GET /session и GET /session/{screenname}.
type sessionListResponse struct {
	Sessions []Session `json:"sessions"`
}

// Participant — участник чат-комнаты.
type Participant struct {
	ID         string `json:"id"`
	ScreenName string `json:"screen_name"`
}

// ChatRoom — публичная чат-комната на RAS.
type ChatRoom struct {
	Name         string        `json:"name"`
	CreateTime   string        `json:"create_time"`
	CreatorID    string        `json:"creator_id,omitempty"`
	Participants []Participant `json:"participants"`
}

// Category — категория каталога пользователей.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Keyword — ключевое слово каталога. CategoryID — родительская категория.
type Keyword struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	CategoryID int    `json:"category_id"`
}

// Version — информация о сборке RAS (ответ GET /version).
type Version struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}
