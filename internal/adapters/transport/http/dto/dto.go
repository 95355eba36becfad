package dto

type RegisterDTO struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=20"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,strongpwd"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin customer"`
}

// Login accepts either the username or the email in the same field.
type LoginDTO struct {
	Login    string `json:"login"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CarCreateDTO struct {
	Make        string `json:"make"        validate:"required"`
	Model       string `json:"model"       validate:"required"`
	Year        int    `json:"year"        validate:"required,gte=1900,lte=2100"`
	Price       int64  `json:"price"       validate:"required,gt=0"`
	Mileage     int    `json:"mileage"     validate:"gte=0"`
	Color       string `json:"color"`
	Status      string `json:"status"      validate:"omitempty,oneof=available pending sold"`
	Description string `json:"description"`
}

type CarUpdateDTO struct {
	Make        *string `json:"make"`
	Model       *string `json:"model"`
	Year        *int    `json:"year"        validate:"omitempty,gte=1900,lte=2100"`
	Price       *int64  `json:"price"       validate:"omitempty,gt=0"`
	Mileage     *int    `json:"mileage"     validate:"omitempty,gte=0"`
	Color       *string `json:"color"`
	Status      *string `json:"status"      validate:"omitempty,oneof=available pending sold"`
	Description *string `json:"description"`
}

type CarListQuery struct {
	Make     string `form:"make"`
	Model    string `form:"model"`
	MinYear  int    `form:"min_year"`
	MaxYear  int    `form:"max_year"`
	MinPrice int64  `form:"min_price"`
	MaxPrice int64  `form:"max_price"`
	Status   string `form:"status"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

type InquiryCreateDTO struct {
	CarID   int64  `json:"carId"   validate:"required,gt=0"`
	Name    string `json:"name"`
	Email   string `json:"email"   validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required,min=3"`
}
