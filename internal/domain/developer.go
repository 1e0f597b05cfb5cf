package domain

import "context"

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusDeleted }

// Developer 为零值 ID 时表示尚未入库（transient）
type Developer struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	Specialty string
	Status    Status
}

func (d *Developer) IsActive() bool { return d.Status == StatusActive }

// DeveloperRepository 只提供机械的 CRUD，业务规则在 service 层
// FindByID / FindByEmail 查不到时返回 (nil, nil)
type DeveloperRepository interface {
	Save(ctx context.Context, d *Developer) error
	FindByID(ctx context.Context, id int64) (*Developer, error)
	FindByEmail(ctx context.Context, email string) (*Developer, error)
	FindAll(ctx context.Context) ([]Developer, error)
	FindByStatusAndSpecialty(ctx context.Context, status Status, specialty string) ([]Developer, error)
	DeleteByID(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}
