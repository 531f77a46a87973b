package link

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, l *Link) error
	GetByToken(ctx context.Context, token string) (*Link, error)
	List(ctx context.Context) ([]*Link, error)
	Delete(ctx context.Context, token string) error
	BumpStats(ctx context.Context, token string, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Link) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) GetByToken(ctx context.Context, token string) (*Link, error) {
	var l Link
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &l, err
}

func (r *repository) List(ctx context.Context) ([]*Link, error) {
	var links []*Link
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&links).Error
	return links, err
}

func (r *repository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&Link{}).Error
}

func (r *repository) BumpStats(ctx context.Context, token string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&Link{}).
		Where("token = ?", token).
		Updates(map[string]interface{}{
			"clicks":          gorm.Expr("clicks + 1"),
			"photos_captured": gorm.Expr("photos_captured + 1"),
			"last_clicked_at": at,
		}).Error
}
