package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/drivelane/carmarket/internal/adapters/transport/http/dto"
	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
	authmodel "github.com/drivelane/carmarket/internal/domain/auth/model"
	"github.com/drivelane/carmarket/internal/domain/catalog/model"
	"github.com/drivelane/carmarket/internal/domain/catalog/repo"
)

const defaultListLimit = 50

type CarService interface {
	Create(context.Context, dto.CarCreateDTO) (model.Car, error)
	Get(ctx context.Context, id int64) (model.Car, error)
	List(ctx context.Context, q dto.CarListQuery, viewer *authmodel.Identity) ([]model.Car, error)
	Update(ctx context.Context, id int64, in dto.CarUpdateDTO) (model.Car, error)
	Delete(ctx context.Context, id int64) error
}

type carService struct {
	cars repo.CarRepo
	v    *validator.Validate
}

func NewCarService(cars repo.CarRepo, v *validator.Validate) CarService {
	return &carService{cars: cars, v: v}
}

func (s *carService) Create(ctx context.Context, in dto.CarCreateDTO) (model.Car, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Car{}, customErrors.NewInvalidArgument(err.Error())
	}

	status := model.CarStatus(in.Status)
	if in.Status == "" {
		status = model.CarAvailable
	}
	if !status.Valid() {
		return model.Car{}, customErrors.NewInvalidArgument("unknown status")
	}

	car := model.Car{
		Make:        in.Make,
		Model:       in.Model,
		Year:        in.Year,
		Price:       in.Price,
		Mileage:     in.Mileage,
		Color:       in.Color,
		Status:      status,
		Description: in.Description,
	}
	id, err := s.cars.CreateCar(ctx, car)
	if err != nil {
		return model.Car{}, err
	}
	car.ID = id
	return car, nil
}

func (s *carService) Get(ctx context.Context, id int64) (model.Car, error) {
	return s.cars.GetCarByID(ctx, id)
}

// List hides non-available listings from everyone but admins.
func (s *carService) List(ctx context.Context, q dto.CarListQuery, viewer *authmodel.Identity) ([]model.Car, error) {
	f := model.CarFilter{
		Make:     q.Make,
		Model:    q.Model,
		MinYear:  q.MinYear,
		MaxYear:  q.MaxYear,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Status:   model.CarStatus(q.Status),
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	if f.Limit <= 0 || f.Limit > defaultListLimit {
		f.Limit = defaultListLimit
	}

	admin := viewer != nil && viewer.Role == authmodel.RoleAdmin
	if !admin {
		f.Status = model.CarAvailable
	} else if f.Status != "" && !f.Status.Valid() {
		return nil, customErrors.NewInvalidArgument("unknown status")
	}

	return s.cars.ListCars(ctx, f)
}

func (s *carService) Update(ctx context.Context, id int64, in dto.CarUpdateDTO) (model.Car, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Car{}, customErrors.NewInvalidArgument(err.Error())
	}

	car, err := s.cars.GetCarByID(ctx, id)
	if err != nil {
		return model.Car{}, err
	}

	if in.Make != nil {
		car.Make = *in.Make
	}
	if in.Model != nil {
		car.Model = *in.Model
	}
	if in.Year != nil {
		car.Year = *in.Year
	}
	if in.Price != nil {
		car.Price = *in.Price
	}
	if in.Mileage != nil {
		car.Mileage = *in.Mileage
	}
	if in.Color != nil {
		car.Color = *in.Color
	}
	if in.Status != nil {
		status := model.CarStatus(*in.Status)
		if !status.Valid() {
			return model.Car{}, customErrors.NewInvalidArgument("unknown status")
		}
		car.Status = status
	}
	if in.Description != nil {
		car.Description = *in.Description
	}

	if err := s.cars.UpdateCar(ctx, car); err != nil {
		return model.Car{}, err
	}
	return car, nil
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	return s.cars.DeleteCar(ctx, id)
}
