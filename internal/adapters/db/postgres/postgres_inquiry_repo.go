package postgres

import (
	"context"

	"gorm.io/gorm"

	customErrors "github.com/drivelane/carmarket/internal/domain/auth/errors"
	"github.com/drivelane/carmarket/internal/domain/catalog/model"
)

type PostgresInquiryRepo struct {
	db *gorm.DB
}

func NewPostgresInquiryRepo(db *gorm.DB) *PostgresInquiryRepo {
	return &PostgresInquiryRepo{db: db}
}

func (p *PostgresInquiryRepo) CreateInquiry(ctx context.Context, q model.Inquiry) (int64, error) {
	res := p.db.WithContext(ctx).Create(&q)
	if err := res.Error; err != nil {
		return 0, customErrors.WrapInternal(err, "CreateInquiry")
	}
	return q.ID, nil
}

func (p *PostgresInquiryRepo) ListInquiries(ctx context.Context, carID int64) ([]model.Inquiry, error) {
	q := p.db.WithContext(ctx).Model(&model.Inquiry{})
	if carID > 0 {
		q = q.Where("car_id = ?", carID)
	}

	var out []model.Inquiry
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListInquiries")
	}
	return out, nil
}
