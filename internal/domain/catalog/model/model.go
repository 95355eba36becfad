package model

import "time"

type CarStatus string

const (
	CarAvailable CarStatus = "available"
	CarPending   CarStatus = "pending"
	CarSold      CarStatus = "sold"
)

func (s CarStatus) Valid() bool {
	return s == CarAvailable || s == CarPending || s == CarSold
}

type Car struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	Price       int64     `json:"price"`
	Mileage     int       `json:"mileage"`
	Color       string    `json:"color"`
	Status      CarStatus `json:"status"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CarFilter narrows listing queries. Zero values mean "no constraint".
type CarFilter struct {
	Make     string
	Model    string
	MinYear  int
	MaxYear  int
	MinPrice int64
	MaxPrice int64
	Status   CarStatus
	Limit    int
	Offset   int
}

// Inquiry is a purchase question against a listing. UserID is set when the
// caller was authenticated; anonymous inquiries carry contact fields instead.
type Inquiry struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	CarID     int64     `json:"carId"`
	UserID    *int64    `json:"userId,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
