package capture

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Capture) error
	GetByID(ctx context.Context, id string) (*Capture, error)
	List(ctx context.Context) ([]*Capture, error)
	ListByLink(ctx context.Context, token string) ([]*Capture, error)
	Delete(ctx context.Context, id string) error
	DeleteByLink(ctx context.Context, token string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Capture) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Capture, error) {
	var c Capture
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &c, err
}

func (r *repository) List(ctx context.Context) ([]*Capture, error) {
	var captures []*Capture
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&captures).Error
	return captures, err
}

func (r *repository) ListByLink(ctx context.Context, token string) ([]*Capture, error) {
	var captures []*Capture
	err := r.db.WithContext(ctx).Where("link_token = ?", token).Find(&captures).Error
	return captures, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Capture{}).Error
}

func (r *repository) DeleteByLink(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("link_token = ?", token).Delete(&Capture{}).Error
}
