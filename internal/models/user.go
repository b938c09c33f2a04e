package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq" // Необхідний для pq.StringArray
	"gorm.io/gorm"
)

// Roles recognized by the advising portal.
const (
	RoleStudent = "student"
	RoleAdvisor = "advisor"
	RoleAdmin   = "admin"
)

// User представляє користувача порталу (студента, радника або адміністратора).
type User struct {
	ID    string `gorm:"primaryKey" json:"id"` // UUID
	Name  string `gorm:"type:text;not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	// Role is one of RoleStudent, RoleAdvisor, RoleAdmin.
	Role string `gorm:"type:text;not null;index" json:"role"`
	// Expertise lists an advisor's advising areas (empty for students).
	Expertise pq.StringArray `gorm:"type:text[]" json:"expertise,omitempty"`
}

// BeforeCreate — це хук GORM, який викликається перед створенням запису.
// Він генерує новий UUID для користувача, якщо ID ще не встановлено.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// IsAdvisor reports whether the user can act as the advisor side of a chat.
func (u *User) IsAdvisor() bool {
	return u.Role == RoleAdvisor
}
