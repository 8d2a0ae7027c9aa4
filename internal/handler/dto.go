package handler

import "tripbook/internal/domain"

const dateLayout = "2006-01-02"

// UserDTO is the flat user representation.
type UserDTO struct {
	ID               uint    `json:"id"`
	Name             string  `json:"name"`
	PhoneNumber      string  `json:"phone_number"`
	Email            string  `json:"email"`
	Rating           float64 `json:"rating"`
	RegistrationDate string  `json:"registration_date"`
}

// DriverDTO is the flat driver representation.
type DriverDTO struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	LicenceNumber   string  `json:"licence_number"`
	PhoneNumber     string  `json:"phone_number"`
	Rating          string  `json:"rating"`
	ExperienceYears float64 `json:"experince_years"`
	Status          string  `json:"status"`
}

// TripLessDTO is a trip without its user and driver.
type TripLessDTO struct {
	ID        uint    `json:"id"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Price     float64 `json:"price"`
}

// TripDTO is a trip with flat user and driver representations.
type TripDTO struct {
	TripLessDTO
	User   UserDTO   `json:"user"`
	Driver DriverDTO `json:"driver"`
}

// UserWithTripDTO is a user with its trips, one level deep.
type UserWithTripDTO struct {
	UserDTO
	Trips []TripLessDTO `json:"trips"`
}

// DriverWithTripDTO is a driver with its trips, one level deep.
type DriverWithTripDTO struct {
	DriverDTO
	Trips []TripLessDTO `json:"trips"`
}

// CreateUserRequest is the HTTP request body for creating or replacing a user.
type CreateUserRequest struct {
	Name        string   `json:"name" binding:"required,max=45"`
	PhoneNumber string   `json:"phone_number" binding:"required,max=45"`
	Email       string   `json:"email" binding:"required,max=45"`
	Rating      *float64 `json:"rating" binding:"required"`
}

// CreateDriverRequest is the HTTP request body for creating or replacing a driver.
type CreateDriverRequest struct {
	Name            string   `json:"name" binding:"required,max=45"`
	LicenceNumber   string   `json:"licence_number" binding:"required,max=45"`
	PhoneNumber     string   `json:"phone_number" binding:"required,max=45"`
	Rating          string   `json:"rating" binding:"required,max=45"`
	ExperienceYears *float64 `json:"experince_years" binding:"required"`
	Status          string   `json:"status" binding:"required,max=45"`
}

// CreateTripRequest is the HTTP request body for creating a trip.
type CreateTripRequest struct {
	StartTime string   `json:"start_time" binding:"required,max=45"`
	EndTime   string   `json:"end_time" binding:"required,max=45"`
	Price     *float64 `json:"price" binding:"required"`
	UserID    *uint    `json:"user_id" binding:"required"`
	DriverID  *uint    `json:"driver_id" binding:"required"`
}

// PatchTripRequest is the HTTP request body for a partial trip update.
// Absent fields are left unchanged.
type PatchTripRequest struct {
	StartTime *string  `json:"start_time" binding:"omitempty,max=45"`
	EndTime   *string  `json:"end_time" binding:"omitempty,max=45"`
	Price     *float64 `json:"price"`
	UserID    *uint    `json:"user_id"`
	DriverID  *uint    `json:"driver_id"`
}

func newUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:               u.ID,
		Name:             u.Name,
		PhoneNumber:      u.PhoneNumber,
		Email:            u.Email,
		Rating:           u.Rating,
		RegistrationDate: u.RegistrationDate.Format(dateLayout),
	}
}

func newDriverDTO(d *domain.Driver) DriverDTO {
	return DriverDTO{
		ID:              d.ID,
		Name:            d.Name,
		LicenceNumber:   d.LicenceNumber,
		PhoneNumber:     d.PhoneNumber,
		Rating:          d.Rating,
		ExperienceYears: d.ExperienceYears,
		Status:          d.Status,
	}
}

func newTripLessDTO(t *domain.Trip) TripLessDTO {
	return TripLessDTO{
		ID:        t.ID,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Price:     t.Price,
	}
}

func newTripLessDTOs(trips []domain.Trip) []TripLessDTO {
	out := make([]TripLessDTO, 0, len(trips))
	for i := range trips {
		out = append(out, newTripLessDTO(&trips[i]))
	}
	return out
}

func newTripDTO(t *domain.Trip) TripDTO {
	dto := TripDTO{TripLessDTO: newTripLessDTO(t)}
	if t.User != nil {
		dto.User = newUserDTO(t.User)
	}
	if t.Driver != nil {
		dto.Driver = newDriverDTO(t.Driver)
	}
	return dto
}

func newUserWithTripDTO(u *domain.User) UserWithTripDTO {
	return UserWithTripDTO{UserDTO: newUserDTO(u), Trips: newTripLessDTOs(u.Trips)}
}

func newDriverWithTripDTO(d *domain.Driver) DriverWithTripDTO {
	return DriverWithTripDTO{DriverDTO: newDriverDTO(d), Trips: newTripLessDTOs(d.Trips)}
}

func (r PatchTripRequest) toPatch() domain.TripPatch {
	return domain.TripPatch{
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Price:     r.Price,
		UserID:    r.UserID,
		DriverID:  r.DriverID,
	}
}
