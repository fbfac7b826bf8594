package category

import (
	"time"

	"github.com/gofrs/uuid"
)

type Category struct {
	ID        uuid.UUID `gorm:"primary_key;type:char(36)"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
