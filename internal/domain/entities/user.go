package entities

import "time"

// User is an account that owns a medication list.
type User struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// InteractionLog records a single-pair check for auditing.
type InteractionLog struct {
	ID        string    `json:"id" db:"id"`
	Drug1     string    `json:"drug1" db:"drug1"`
	Drug2     string    `json:"drug2" db:"drug2"`
	Summary   string    `json:"summary" db:"summary"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
