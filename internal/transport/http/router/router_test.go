package router_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"developer-registry/internal/service"
	"developer-registry/internal/testutil"
	"developer-registry/internal/transport/http/handler"
	"developer-registry/internal/transport/http/router"
)

func init() { gin.SetMode(gin.TestMode) }

func newAPI(t *testing.T) (*gin.Engine, *testutil.DeveloperStore) {
	t.Helper()
	store := testutil.NewDeveloperStore()
	svc := service.NewDeveloperService(store)
	r := router.NewAPIEngine(zap.NewNop(), router.DefaultOptions(), handler.NewDeveloperHandler(svc))
	return r, store
}

func call(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type developerJSON struct {
	ID        *int64 `json:"id"`
	FirstName string `json:"firstName"`
	Email     string `json:"email"`
	Status    string `json:"status"`
}

type errorJSON struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func TestDeveloperLifecycle(t *testing.T) {
	r, store := newAPI(t)
	john := `{"firstName":"John","lastName":"Doe","email":"john.doe@mail.com","specialty":"Java"}`

	// 创建
	w := call(r, http.MethodPost, "/api/v1/developers", john)
	require.Equal(t, http.StatusOK, w.Code)
	var created developerJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotNil(t, created.ID)
	assert.Equal(t, "ACTIVE", created.Status)
	path := "/api/v1/developers/" + strconv.FormatInt(*created.ID, 10)

	// 重复 email
	w = call(r, http.MethodPost, "/api/v1/developers", john)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var dup errorJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dup))
	assert.Equal(t, errorJSON{Status: 400, Message: "Developer with defined email is already exists"}, dup)
	assert.Equal(t, 1, store.Len())

	// 软删：仍可按 id 读取
	w = call(r, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())

	w = call(r, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	var soft developerJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &soft))
	assert.Equal(t, "DELETED", soft.Status)

	w = call(r, http.MethodGet, "/api/v1/developers", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	// 硬删：不可读
	w = call(r, http.MethodDelete, path+"?isHard=true", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = call(r, http.MethodGet, path, "")
	require.Equal(t, http.StatusNotFound, w.Code)
	var gone errorJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gone))
	assert.Equal(t, errorJSON{Status: 404, Message: "Developer not found"}, gone)

	w = call(r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, store.Len())
}

func TestCreateIgnoresSuppliedStatus(t *testing.T) {
	r, _ := newAPI(t)

	w := call(r, http.MethodPost, "/api/v1/developers", `{"email":"mia@mail.ru","status":"DELETED"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var out developerJSON
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "ACTIVE", out.Status)
}

func TestUpdateAndListings(t *testing.T) {
	r, _ := newAPI(t)
	for _, email := range []string{"a@mail.ru", "b@mail.ru", "c@mail.ru"} {
		w := call(r, http.MethodPost, "/api/v1/developers", `{"email":"`+email+`","specialty":"java"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := call(r, http.MethodPost, "/api/v1/developers", `{"email":"d@mail.ru","specialty":"php"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// 全量覆盖：把 4 号改成 DELETED
	w = call(r, http.MethodPut, "/api/v1/developers", `{"id":4,"email":"d@mail.ru","specialty":"php","status":"DELETED"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":4,"email":"d@mail.ru","specialty":"php","status":"DELETED"}`, w.Body.String())

	w = call(r, http.MethodPut, "/api/v1/developers", `{"id":99,"email":"x@mail.ru"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"status":400,"message":"Developer not found"}`, w.Body.String())

	var java []developerJSON
	w = call(r, http.MethodGet, "/api/v1/developers/specialty/java", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &java))
	assert.Len(t, java, 3)

	var all []developerJSON
	w = call(r, http.MethodGet, "/api/v1/developers", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 3)
	for _, d := range all {
		assert.Equal(t, "ACTIVE", d.Status)
	}

	w = call(r, http.MethodGet, "/api/v1/developers/email/d@mail.ru", "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBodyTooLarge(t *testing.T) {
	opt := router.DefaultOptions()
	opt.MaxBodyBytes = 16
	svc := service.NewDeveloperService(testutil.NewDeveloperStore())
	r := router.NewAPIEngine(zap.NewNop(), opt, handler.NewDeveloperHandler(svc))

	w := call(r, http.MethodPost, "/api/v1/developers", `{"email":"`+strings.Repeat("x", 64)+`@mail.ru"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestAPIHealth(t *testing.T) {
	r, _ := newAPI(t)
	w := call(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestOpsEngine(t *testing.T) {
	healthy := router.NewOpsEngine(zap.NewNop(), func(context.Context) error { return nil })
	broken := router.NewOpsEngine(zap.NewNop(), func(context.Context) error { return errors.New("dial tcp: refused") })

	assert.Equal(t, http.StatusOK, call(healthy, http.MethodGet, "/health", "").Code)
	assert.Equal(t, http.StatusOK, call(healthy, http.MethodGet, "/ready", "").Code)

	w := call(broken, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":503,"message":"store unavailable"}`, w.Body.String())

	w = call(healthy, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "developers_created_total")
}

type probe struct {
	name     string
	priority int
	order    *[]string
}

func (p probe) MountAPI(*gin.RouterGroup) { *p.order = append(*p.order, p.name) }
func (p probe) Priority() int              { return p.priority }

type plain struct{ order *[]string }

func (p plain) MountAPI(*gin.RouterGroup) { *p.order = append(*p.order, "plain") }

func TestMountAllOrdersByPriority(t *testing.T) {
	var order []string
	router.MountAll(gin.New().Group("/"),
		plain{&order},
		probe{"late", 200, &order},
		probe{"early", 1, &order},
	)
	assert.Equal(t, []string{"early", "plain", "late"}, order)
}
