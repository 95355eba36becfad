package repo

import (
	"context"

	"github.com/drivelane/carmarket/internal/domain/catalog/model"
)

type CarRepo interface {
	CreateCar(ctx context.Context, c model.Car) (int64, error)

	GetCarByID(ctx context.Context, id int64) (model.Car, error)

	ListCars(ctx context.Context, f model.CarFilter) ([]model.Car, error)

	UpdateCar(ctx context.Context, c model.Car) error

	DeleteCar(ctx context.Context, id int64) error
}

type InquiryRepo interface {
	CreateInquiry(ctx context.Context, q model.Inquiry) (int64, error)

	ListInquiries(ctx context.Context, carID int64) ([]model.Inquiry, error)
}
