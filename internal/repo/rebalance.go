package repo

import (
	"context"

	"github.com/harikrishna2005/bot-launcher/internal/entity"
	"gorm.io/gorm"
)

type RebalanceRepo interface {
	Create(ctx context.Context, record entity.RebalanceRecord) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status int) error
	FindByStatus(ctx context.Context, status int) ([]entity.RebalanceRecord, error)
}

type rebalanceRepo struct {
	db *gorm.DB
}

func NewRebalanceRepo(db *gorm.DB) RebalanceRepo {
	return &rebalanceRepo{
		db: db,
	}
}

func (r *rebalanceRepo) Create(ctx context.Context, record entity.RebalanceRecord) (int64, error) {
	err := r.db.WithContext(ctx).Create(&record).Error
	if err != nil {
		return 0, err
	}
	return record.Id, nil
}

func (r *rebalanceRepo) UpdateStatus(ctx context.Context, id int64, status int) error {
	err := r.db.WithContext(ctx).Model(&entity.RebalanceRecord{}).Where("id = ?", id).Update("status", status).Error
	if err != nil {
		return err
	}
	return nil
}

func (r *rebalanceRepo) FindByStatus(ctx context.Context, status int) ([]entity.RebalanceRecord, error) {
	var records []entity.RebalanceRecord
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
