package domain

import "time"

// ScreenNameChange é um evento de troca de screen name detectado pelo coletor
// externo. ObservedAt é o momento da detecção, não necessariamente o momento
// da troca.
type ScreenNameChange struct {
	AccountID      string    `json:"account_id"`
	ObservedAt     time.Time `json:"observed_at"`
	PreviousName   string    `json:"previous_name"`
	NewName        string    `json:"new_name"`
	FollowersCount int       `json:"followers_count"`
}

// Transition é a forma estruturada de uma troca dentro de um relatório.
type Transition struct {
	ObservedAt   time.Time `json:"observed_at"`
	PreviousName string    `json:"previous_name"`
	NewName      string    `json:"new_name"`
}
