package user

import (
	"time"

	"github.com/gofrs/uuid"
)

// User is a board member. Username is the login name used as the caller identity.
type User struct {
	ID           uuid.UUID `gorm:"primary_key;type:char(36)"`
	Username     string    `gorm:"type:varchar(50);unique;not null"`
	Nickname     string    `gorm:"type:varchar(50);not null"`
	ProfileImage string    `gorm:"type:varchar(500)"`
	Password     string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}
