package developer

import (
	"developer-registry/internal/domain"
)

// DeveloperModel 表结构；email 唯一索引兜底并发创建
type DeveloperModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	FirstName string `gorm:"size:128"`
	LastName  string `gorm:"size:128"`
	Specialty string `gorm:"size:128;index:idx_developers_status_specialty,priority:2"`
	Status    string `gorm:"size:16;not null;index:idx_developers_status_specialty,priority:1"`
}

func (DeveloperModel) TableName() string { return "developers" }

func FromDomain(d *domain.Developer) *DeveloperModel {
	return &DeveloperModel{
		ID:        d.ID,
		Email:     d.Email,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Specialty: d.Specialty,
		Status:    string(d.Status),
	}
}

func (m *DeveloperModel) ToDomain() domain.Developer {
	return domain.Developer{
		ID:        m.ID,
		Email:     m.Email,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Specialty: m.Specialty,
		Status:    domain.Status(m.Status),
	}
}
