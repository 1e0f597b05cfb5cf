package dto

import "developer-registry/internal/domain"

// DeveloperDto 对外 JSON；nil 字段不输出
type DeveloperDto struct {
	ID        *int64         `json:"id,omitempty"`
	FirstName *string        `json:"firstName,omitempty"`
	LastName  *string        `json:"lastName,omitempty"`
	Specialty *string        `json:"specialty,omitempty"`
	Email     *string        `json:"email,omitempty"`
	Status    *domain.Status `json:"status,omitempty" binding:"omitempty,oneof=ACTIVE DELETED"`
}

func (d *DeveloperDto) ToEntity() domain.Developer {
	var e domain.Developer
	if d.ID != nil {
		e.ID = *d.ID
	}
	e.FirstName = deref(d.FirstName)
	e.LastName = deref(d.LastName)
	e.Specialty = deref(d.Specialty)
	e.Email = deref(d.Email)
	if d.Status != nil {
		e.Status = *d.Status
	}
	return e
}

func FromEntity(e *domain.Developer) DeveloperDto {
	out := DeveloperDto{
		FirstName: optional(e.FirstName),
		LastName:  optional(e.LastName),
		Specialty: optional(e.Specialty),
		Email:     optional(e.Email),
	}
	if e.ID != 0 {
		id := e.ID
		out.ID = &id
	}
	if e.Status != "" {
		st := e.Status
		out.Status = &st
	}
	return out
}

// FromEntities 保证空列表序列化为 []
func FromEntities(es []domain.Developer) []DeveloperDto {
	out := make([]DeveloperDto, 0, len(es))
	for i := range es {
		out = append(out, FromEntity(&es[i]))
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// 空串视为未设置
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
