package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"developer-registry/internal/core/lock"
	"developer-registry/internal/domain"
)

// EmailLocker 串行化同一 email 的创建；lock.Redis / lock.Noop 均实现
type EmailLocker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

type DeveloperService struct {
	repo   domain.DeveloperRepository
	locker EmailLocker
	log    *zap.Logger
}

type Option func(*DeveloperService)

func WithLocker(l EmailLocker) Option { return func(s *DeveloperService) { s.locker = l } }
func WithLogger(l *zap.Logger) Option { return func(s *DeveloperService) { s.log = l } }

func NewDeveloperService(repo domain.DeveloperRepository, opts ...Option) *DeveloperService {
	s := &DeveloperService{repo: repo, locker: lock.Noop{}, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create email 已存在则拒绝；状态强制为 ACTIVE
func (s *DeveloperService) Create(ctx context.Context, d domain.Developer) (*domain.Developer, error) {
	unlock, err := s.locker.Lock(ctx, d.Email)
	if errors.Is(err, lock.ErrLocked) {
		return nil, domain.ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("lock email: %w", err)
	}
	defer unlock()

	dup, err := s.repo.FindByEmail(ctx, d.Email)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, domain.ErrDuplicateEmail
	}

	d.ID = 0
	d.Status = domain.StatusActive
	if err := s.repo.Save(ctx, &d); err != nil {
		return nil, err
	}
	developersCreated.Inc()
	s.log.Info("developer created", zap.Int64("id", d.ID))
	return &d, nil
}

// Update 整行覆盖（含 status），不再校验 email 唯一
func (s *DeveloperService) Update(ctx context.Context, d domain.Developer) (*domain.Developer, error) {
	if d.ID == 0 {
		return nil, domain.ErrNotFound
	}
	ok, err := s.repo.ExistsByID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	if err := s.repo.Save(ctx, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *DeveloperService) GetByID(ctx context.Context, id int64) (*domain.Developer, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (s *DeveloperService) GetByEmail(ctx context.Context, email string) (*domain.Developer, error) {
	d, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

// ListAll 只返回 ACTIVE
func (s *DeveloperService) ListAll(ctx context.Context) ([]domain.Developer, error) {
	all, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Developer, 0, len(all))
	for _, d := range all {
		if d.IsActive() {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *DeveloperService) ListActiveBySpecialty(ctx context.Context, specialty string) ([]domain.Developer, error) {
	return s.repo.FindByStatusAndSpecialty(ctx, domain.StatusActive, specialty)
}

// SoftDelete 仅把状态置为 DELETED，行保留
func (s *DeveloperService) SoftDelete(ctx context.Context, id int64) error {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.Status = domain.StatusDeleted
	if err := s.repo.Save(ctx, d); err != nil {
		return err
	}
	developersDeleted.WithLabelValues("soft").Inc()
	s.log.Info("developer soft deleted", zap.Int64("id", id))
	return nil
}

func (s *DeveloperService) HardDelete(ctx context.Context, id int64) error {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, d.ID); err != nil {
		return err
	}
	developersDeleted.WithLabelValues("hard").Inc()
	s.log.Info("developer hard deleted", zap.Int64("id", id))
	return nil
}
