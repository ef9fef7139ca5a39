package domain

import "time"

type AccountStatus string

const (
	AccountStatusActive      AccountStatus = "ACTIVE"
	AccountStatusSuspended   AccountStatus = "SUSPENDED"
	AccountStatusDeactivated AccountStatus = "DEACTIVATED"
)

// Account representa uma conta rastreada. O ID é o identificador estável da
// plataforma e nunca muda; o screen name é mutável e é exatamente o que o
// relatório acompanha.
type Account struct {
	ID                string        `json:"id"`
	CurrentScreenName string        `json:"current_screen_name"`
	FollowersCount    int           `json:"followers_count"`
	Verified          bool          `json:"verified"`
	Protected         bool          `json:"protected"`
	ProfileImageURL   string        `json:"profile_image_url"`
	Status            AccountStatus `json:"status"`
	Notes             *string       `json:"notes"`
	FirstSeenAt       time.Time     `json:"first_seen_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

type UpdateAccountRequest struct {
	ID     string  `json:"id"`
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

type SyncChangesResponse struct {
	Accounts int    `json:"accounts"`
	Changes  int    `json:"changes"`
	Message  string `json:"message"`
	Error    bool   `json:"error"`
}
