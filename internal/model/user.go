package model

import "time"

// User is an account holder. Deleting a user removes every metric it owns.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"-"`

	// Relations
	Metrics []Metric `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserSummary is the public view of a user.
type UserSummary struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
}

// Summary returns the public view of u.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Email: u.Email}
}
