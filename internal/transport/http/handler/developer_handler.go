package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"developer-registry/internal/domain"
	"developer-registry/internal/transport/http/dto"
	httpez "developer-registry/internal/transport/http/ez"
)

// DeveloperService handler 依赖的业务能力
type DeveloperService interface {
	Create(ctx context.Context, d domain.Developer) (*domain.Developer, error)
	Update(ctx context.Context, d domain.Developer) (*domain.Developer, error)
	GetByID(ctx context.Context, id int64) (*domain.Developer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Developer, error)
	ListAll(ctx context.Context) ([]domain.Developer, error)
	ListActiveBySpecialty(ctx context.Context, specialty string) ([]domain.Developer, error)
	SoftDelete(ctx context.Context, id int64) error
	HardDelete(ctx context.Context, id int64) error
}

type DeveloperHandler struct{ svc DeveloperService }

func NewDeveloperHandler(svc DeveloperService) *DeveloperHandler {
	return &DeveloperHandler{svc: svc}
}

func (h *DeveloperHandler) Priority() int { return 10 }

// MountAPI 挂到 /api/v1 下
func (h *DeveloperHandler) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api)

	httpez.RegisterAction(ez, httpez.Action[struct{}, dto.DeveloperDto]{
		Method:  http.MethodGet,
		Path:    "/developers/:id",
		Binder:  httpez.BindNone,
		Handler: h.getByID,
	})
	httpez.RegisterAction(ez, httpez.Action[struct{}, dto.DeveloperDto]{
		Method:  http.MethodGet,
		Path:    "/developers/email/:email",
		Binder:  httpez.BindNone,
		Handler: h.getByEmail,
	})
	httpez.RegisterAction(ez, httpez.Action[struct{}, []dto.DeveloperDto]{
		Method:  http.MethodGet,
		Path:    "/developers",
		Binder:  httpez.BindNone,
		Handler: h.listAll,
	})
	httpez.RegisterAction(ez, httpez.Action[struct{}, []dto.DeveloperDto]{
		Method:  http.MethodGet,
		Path:    "/developers/specialty/:specialty",
		Binder:  httpez.BindNone,
		Handler: h.listBySpecialty,
	})
	httpez.RegisterAction(ez, httpez.Action[dto.DeveloperDto, dto.DeveloperDto]{
		Method:  http.MethodPost,
		Path:    "/developers",
		Binder:  httpez.BindJSON,
		Handler: h.create,
	})
	httpez.RegisterAction(ez, httpez.Action[dto.DeveloperDto, dto.DeveloperDto]{
		Method:  http.MethodPut,
		Path:    "/developers",
		Binder:  httpez.BindJSON,
		Handler: h.update,
	})
	httpez.RegisterAction(ez, httpez.Action[deleteQuery, struct{}]{
		Method:  http.MethodDelete,
		Path:    "/developers/:id",
		Binder:  httpez.BindQuery,
		NoBody:  true,
		Handler: h.delete,
	})
}

type deleteQuery struct {
	IsHard bool `form:"isHard,default=false"`
}

func (h *DeveloperHandler) getByID(c *gin.Context, _ *struct{}) (dto.DeveloperDto, error) {
	id, err := pathID(c)
	if err != nil {
		return dto.DeveloperDto{}, err
	}
	d, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		return dto.DeveloperDto{}, translate(err, http.StatusNotFound)
	}
	return dto.FromEntity(d), nil
}

func (h *DeveloperHandler) getByEmail(c *gin.Context, _ *struct{}) (dto.DeveloperDto, error) {
	d, err := h.svc.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		return dto.DeveloperDto{}, translate(err, http.StatusNotFound)
	}
	return dto.FromEntity(d), nil
}

func (h *DeveloperHandler) listAll(c *gin.Context, _ *struct{}) ([]dto.DeveloperDto, error) {
	ds, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		return nil, httpez.Internal(err)
	}
	return dto.FromEntities(ds), nil
}

func (h *DeveloperHandler) listBySpecialty(c *gin.Context, _ *struct{}) ([]dto.DeveloperDto, error) {
	ds, err := h.svc.ListActiveBySpecialty(c.Request.Context(), c.Param("specialty"))
	if err != nil {
		return nil, httpez.Internal(err)
	}
	return dto.FromEntities(ds), nil
}

func (h *DeveloperHandler) create(c *gin.Context, in *dto.DeveloperDto) (dto.DeveloperDto, error) {
	if in.Email == nil || *in.Email == "" {
		return dto.DeveloperDto{}, httpez.BadRequest("email is required")
	}
	d, err := h.svc.Create(c.Request.Context(), in.ToEntity())
	if err != nil {
		return dto.DeveloperDto{}, translate(err, http.StatusBadRequest)
	}
	return dto.FromEntity(d), nil
}

func (h *DeveloperHandler) update(c *gin.Context, in *dto.DeveloperDto) (dto.DeveloperDto, error) {
	d, err := h.svc.Update(c.Request.Context(), in.ToEntity())
	if err != nil {
		return dto.DeveloperDto{}, translate(err, http.StatusBadRequest)
	}
	return dto.FromEntity(d), nil
}

func (h *DeveloperHandler) delete(c *gin.Context, in *deleteQuery) (struct{}, error) {
	id, err := pathID(c)
	if err != nil {
		return struct{}{}, err
	}
	if in.IsHard {
		err = h.svc.HardDelete(c.Request.Context(), id)
	} else {
		err = h.svc.SoftDelete(c.Request.Context(), id)
	}
	if err != nil {
		return struct{}{}, translate(err, http.StatusBadRequest)
	}
	return struct{}{}, nil
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, httpez.BadRequest("invalid id: " + c.Param("id"))
	}
	return id, nil
}

// translate 领域错误 → 响应码；读接口 NotFound 为 404，写接口为 400
func translate(err error, notFoundCode int) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return &httpez.AErr{Code: notFoundCode, Msg: domain.MsgNotFound, Err: err}
	case errors.Is(err, domain.ErrDuplicateEmail):
		return &httpez.AErr{Code: http.StatusBadRequest, Msg: domain.MsgDuplicateEmail, Err: err}
	default:
		return httpez.Internal(err)
	}
}
