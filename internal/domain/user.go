package domain

import "time"

// User represents a rider in the system.
type User struct {
	ID               uint      `gorm:"primaryKey;autoIncrement"`
	Name             string    `gorm:"size:45;not null"`
	PhoneNumber      string    `gorm:"size:45;not null"`
	Email            string    `gorm:"size:45;not null;index"`
	RegistrationDate time.Time `gorm:"type:date;not null"`
	Rating           float64   `gorm:"not null"`

	Trips []Trip `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the gorm default so the reserved word "user" is never used.
func (User) TableName() string {
	return "users"
}
