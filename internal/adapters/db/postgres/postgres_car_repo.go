package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
	"github.com/drivelane/carmarket/internal/domain/catalog/model"
)

type PostgresCarRepo struct {
	db *gorm.DB
}

func NewPostgresCarRepo(db *gorm.DB) *PostgresCarRepo {
	return &PostgresCarRepo{db: db}
}

func (p *PostgresCarRepo) CreateCar(ctx context.Context, car model.Car) (int64, error) {
	res := p.db.WithContext(ctx).Create(&car)
	if err := res.Error; err != nil {
		return 0, customErrors.WrapInternal(err, "CreateCar")
	}
	return car.ID, nil
}

func (p *PostgresCarRepo) GetCarByID(ctx context.Context, id int64) (model.Car, error) {
	var c model.Car
	res := p.db.WithContext(ctx).First(&c, id)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Car{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Car{}, customErrors.WrapInternal(err, "GetCarByID")
	}
	return c, nil
}

func (p *PostgresCarRepo) ListCars(ctx context.Context, f model.CarFilter) ([]model.Car, error) {
	q := p.db.WithContext(ctx).Model(&model.Car{})

	if f.Make != "" {
		q = q.Where("make = ?", f.Make)
	}
	if f.Model != "" {
		q = q.Where("model = ?", f.Model)
	}
	if f.MinYear > 0 {
		q = q.Where("year >= ?", f.MinYear)
	}
	if f.MaxYear > 0 {
		q = q.Where("year <= ?", f.MaxYear)
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var cars []model.Car
	if err := q.Order("created_at DESC").Find(&cars).Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListCars")
	}
	return cars, nil
}

func (p *PostgresCarRepo) UpdateCar(ctx context.Context, car model.Car) error {
	res := p.db.WithContext(ctx).Save(&car)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "UpdateCar")
	}
	return nil
}

func (p *PostgresCarRepo) DeleteCar(ctx context.Context, id int64) error {
	res := p.db.WithContext(ctx).Delete(&model.Car{}, id)
	if err := res.Error; err != nil {
		return customErrors.WrapInternal(err, "DeleteCar")
	}
	if res.RowsAffected == 0 {
		return customErrors.ErrNotFound
	}
	return nil
}
