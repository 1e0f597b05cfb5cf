package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"developer-registry/internal/core/database"
	"developer-registry/internal/domain"
	"developer-registry/internal/feature/developer"
)

type DeveloperRepo struct{ db *gorm.DB }

func NewDeveloperRepo(db *gorm.DB) *DeveloperRepo { return &DeveloperRepo{db: db} }

var _ domain.DeveloperRepository = (*DeveloperRepo)(nil)

// Save ID 为 0 时插入并回填 ID，否则整行覆盖
func (r *DeveloperRepo) Save(ctx context.Context, d *domain.Developer) error {
	m := developer.FromDomain(d)
	tx := r.db.WithContext(ctx)
	var err error
	if m.ID == 0 {
		err = tx.Create(m).Error
	} else {
		err = tx.Save(m).Error
	}
	if database.IsDuplicateKey(err) {
		return domain.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("save developer: %w", err)
	}
	*d = m.ToDomain()
	return nil
}

func (r *DeveloperRepo) FindByID(ctx context.Context, id int64) (*domain.Developer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *DeveloperRepo) FindByEmail(ctx context.Context, email string) (*domain.Developer, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *DeveloperRepo) first(ctx context.Context, query string, arg any) (*domain.Developer, error) {
	var m developer.DeveloperModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find developer: %w", err)
	}
	d := m.ToDomain()
	return &d, nil
}

func (r *DeveloperRepo) FindAll(ctx context.Context) ([]domain.Developer, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *DeveloperRepo) FindByStatusAndSpecialty(ctx context.Context, status domain.Status, specialty string) ([]domain.Developer, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ? AND specialty = ?", string(status), specialty))
}

func (r *DeveloperRepo) find(q *gorm.DB) ([]domain.Developer, error) {
	var ms []developer.DeveloperModel
	if err := q.Order("id").Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}
	out := make([]domain.Developer, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].ToDomain())
	}
	return out, nil
}

func (r *DeveloperRepo) DeleteByID(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&developer.DeveloperModel{}).Error; err != nil {
		return fmt.Errorf("delete developer: %w", err)
	}
	return nil
}

func (r *DeveloperRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&developer.DeveloperModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("count developer: %w", err)
	}
	return n > 0, nil
}

// AutoMigrate 仅建表/补索引，不做版本化迁移
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&developer.DeveloperModel{})
}
