package testutil

import (
	"context"
	"sort"
	"sync"

	"developer-registry/internal/domain"
)

// DeveloperStore 内存实现，模拟自增 id 与 email 唯一索引
type DeveloperStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Developer
}

func NewDeveloperStore(seed ...domain.Developer) *DeveloperStore {
	s := &DeveloperStore{rows: map[int64]domain.Developer{}}
	for _, d := range seed {
		d := d
		if err := s.Save(context.Background(), &d); err != nil {
			panic(err)
		}
	}
	return s
}

var _ domain.DeveloperRepository = (*DeveloperStore)(nil)

func (s *DeveloperStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *DeveloperStore) Save(_ context.Context, d *domain.Developer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, row := range s.rows {
		if row.Email == d.Email && id != d.ID {
			return domain.ErrDuplicateEmail
		}
	}
	if d.ID == 0 {
		s.nextID++
		d.ID = s.nextID
	} else if d.ID > s.nextID {
		s.nextID = d.ID
	}
	s.rows[d.ID] = *d
	return nil
}

func (s *DeveloperStore) FindByID(_ context.Context, id int64) (*domain.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.rows[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (s *DeveloperStore) FindByEmail(_ context.Context, email string) (*domain.Developer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.rows {
		if d.Email == email {
			d := d
			return &d, nil
		}
	}
	return nil, nil
}

func (s *DeveloperStore) FindAll(_ context.Context) ([]domain.Developer, error) {
	return s.filter(func(domain.Developer) bool { return true }), nil
}

func (s *DeveloperStore) FindByStatusAndSpecialty(_ context.Context, status domain.Status, specialty string) ([]domain.Developer, error) {
	return s.filter(func(d domain.Developer) bool {
		return d.Status == status && d.Specialty == specialty
	}), nil
}

func (s *DeveloperStore) filter(keep func(domain.Developer) bool) []domain.Developer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Developer, 0, len(s.rows))
	for _, d := range s.rows {
		if keep(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *DeveloperStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *DeveloperStore) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rows[id]
	return ok, nil
}
