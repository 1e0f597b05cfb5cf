package testutil

import (
	"go.uber.org/zap"

	"developer-registry/internal/domain"
)

func NopLogger() *zap.Logger { return zap.NewNop() }

func JohnDoeTransient() domain.Developer {
	return domain.Developer{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@mail.com",
		Specialty: "Java",
		Status:    domain.StatusActive,
	}
}

func JullyTransient() domain.Developer {
	return domain.Developer{FirstName: "Jully", LastName: "Nino", Email: "haha@mail.ru", Specialty: "java", Status: domain.StatusActive}
}

func HaloTransient() domain.Developer {
	return domain.Developer{FirstName: "Halo", LastName: "Nono", Email: "halo@mail.ru", Specialty: "java", Status: domain.StatusActive}
}

func NinaTransient() domain.Developer {
	return domain.Developer{FirstName: "Nina", LastName: "Rysef", Email: "nina@mail.ru", Specialty: "java", Status: domain.StatusActive}
}

func MiaDeleted() domain.Developer {
	return domain.Developer{FirstName: "Mia", LastName: "Milova", Email: "mia@mail.ru", Specialty: "php", Status: domain.StatusDeleted}
}
