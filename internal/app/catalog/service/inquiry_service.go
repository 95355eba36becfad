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

type InquiryService interface {
	// Create records an inquiry against a listing. An authenticated caller
	// is linked by ID and name/email default to the identity; anonymous
	// callers must supply contact details.
	Create(ctx context.Context, in dto.InquiryCreateDTO, viewer *authmodel.Identity) (model.Inquiry, error)

	// List returns inquiries, optionally narrowed to one car (carID > 0).
	List(ctx context.Context, carID int64) ([]model.Inquiry, error)
}

type inquiryService struct {
	inquiries repo.InquiryRepo
	cars      repo.CarRepo
	v         *validator.Validate
}

func NewInquiryService(inquiries repo.InquiryRepo, cars repo.CarRepo, v *validator.Validate) InquiryService {
	return &inquiryService{inquiries: inquiries, cars: cars, v: v}
}

func (s *inquiryService) Create(ctx context.Context, in dto.InquiryCreateDTO, viewer *authmodel.Identity) (model.Inquiry, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Inquiry{}, customErrors.NewInvalidArgument(err.Error())
	}

	if _, err := s.cars.GetCarByID(ctx, in.CarID); err != nil {
		return model.Inquiry{}, err
	}

	q := model.Inquiry{
		CarID:   in.CarID,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Message: in.Message,
	}

	if viewer != nil {
		uid := viewer.ID
		q.UserID = &uid
		if q.Name == "" {
			q.Name = viewer.Username
		}
		if q.Email == "" {
			q.Email = viewer.Email
		}
	} else if q.Name == "" || q.Email == "" {
		return model.Inquiry{}, customErrors.NewInvalidArgument("name and email are required for anonymous inquiries")
	}

	id, err := s.inquiries.CreateInquiry(ctx, q)
	if err != nil {
		return model.Inquiry{}, err
	}
	q.ID = id
	return q, nil
}

func (s *inquiryService) List(ctx context.Context, carID int64) ([]model.Inquiry, error) {
	return s.inquiries.ListInquiries(ctx, carID)
}
