package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MsgAlreadyExists is the fixed message the service returns when a create
// collides with an existing username, email or phone.
const MsgAlreadyExists = "A robot with this email, username, or phone number already exists."

type Robot struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone     string    `json:"phone" gorm:"uniqueIndex;not null"`
	Image     string    `json:"image" gorm:"not null"`
	StyleType string    `json:"styleType" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// BeforeCreate assigns the id. Ids are UUIDv7, which increase with each
// call in this process, so they break created_at ties in insertion order.
func (r *Robot) BeforeCreate(tx *gorm.DB) error {
	if r.ID != uuid.Nil {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

// NewRobot is the body accepted by POST /api/robots.
type NewRobot struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Image     string `json:"image"`
	StyleType string `json:"styleType"`
}

// Missing returns the JSON names of the empty fields, in declaration order.
func (n NewRobot) Missing() []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", n.Name},
		{"username", n.Username},
		{"email", n.Email},
		{"phone", n.Phone},
		{"image", n.Image},
		{"styleType", n.StyleType},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (n NewRobot) Robot() Robot {
	return Robot{
		Name:      n.Name,
		Username:  n.Username,
		Email:     n.Email,
		Phone:     n.Phone,
		Image:     n.Image,
		StyleType: n.StyleType,
	}
}
