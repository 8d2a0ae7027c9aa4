package domain

// Trip represents a single ride taken by a user with a driver.
// StartTime and EndTime are stored verbatim as submitted.
type Trip struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	StartTime string  `gorm:"size:45;not null"`
	EndTime   string  `gorm:"size:45;not null"`
	Price     float64 `gorm:"not null"`
	UserID    uint    `gorm:"not null;index"`
	DriverID  uint    `gorm:"not null;index"`

	User   *User   `gorm:"foreignKey:UserID"`
	Driver *Driver `gorm:"foreignKey:DriverID"`
}

func (Trip) TableName() string {
	return "trips"
}

// TripPatch holds a partial set of trip field assignments. Nil fields are
// left untouched.
type TripPatch struct {
	StartTime *string
	EndTime   *string
	Price     *float64
	UserID    *uint
	DriverID  *uint
}

// Empty reports whether the patch assigns no fields.
func (p TripPatch) Empty() bool {
	return p.StartTime == nil && p.EndTime == nil && p.Price == nil && p.UserID == nil && p.DriverID == nil
}

// Apply copies the assigned fields onto trip.
func (p TripPatch) Apply(trip *Trip) {
	if p.StartTime != nil {
		trip.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		trip.EndTime = *p.EndTime
	}
	if p.Price != nil {
		trip.Price = *p.Price
	}
	if p.UserID != nil {
		trip.UserID = *p.UserID
	}
	if p.DriverID != nil {
		trip.DriverID = *p.DriverID
	}
}

// Columns returns the patch as a column -> value map suitable for a gorm Updates call.
func (p TripPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.StartTime != nil {
		cols["start_time"] = *p.StartTime
	}
	if p.EndTime != nil {
		cols["end_time"] = *p.EndTime
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.UserID != nil {
		cols["user_id"] = *p.UserID
	}
	if p.DriverID != nil {
		cols["driver_id"] = *p.DriverID
	}
	return cols
}
