package domain

// Driver represents a driver in the system.
//
// Rating is kept as text and ExperienceYears as a float; both are part of the
// public wire format and existing clients depend on them.
type Driver struct {
	ID              uint    `gorm:"primaryKey;autoIncrement"`
	Name            string  `gorm:"size:45;not null"`
	LicenceNumber   string  `gorm:"size:45;not null"`
	PhoneNumber     string  `gorm:"size:45;not null;index"`
	Rating          string  `gorm:"size:45;not null"`
	ExperienceYears float64 `gorm:"column:experince_years;not null"`
	Status          string  `gorm:"size:45;not null"`

	Trips []Trip `gorm:"foreignKey:DriverID;constraint:OnDelete:CASCADE"`
}

func (Driver) TableName() string {
	return "drivers"
}
