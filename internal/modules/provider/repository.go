package provider

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, cfg *Config) error
	GetByID(ctx context.Context, id uint) (*Config, error)
	List(ctx context.Context) ([]*Config, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cfg *Config) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Config, error) {
	var cfg Config
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &cfg, err
}

func (r *repository) List(ctx context.Context) ([]*Config, error) {
	var configs []*Config
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&configs).Error
	return configs, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Config{}).Error
}
