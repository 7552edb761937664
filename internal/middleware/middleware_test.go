package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/care-record-api/internal/models"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
}

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return s.claims, nil
}

func newProtectedRouter(roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWT(stubValidator{claims: &models.JWTClaims{UserID: "u1", Role: models.RoleCaregiver}}))
	handlers := []gin.HandlerFunc{}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/x", handlers...)
	return r
}

func serve(r *gin.Engine, auth string) int {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestJWT(t *testing.T) {
	r := newProtectedRouter()
	assert.Equal(t, http.StatusUnauthorized, serve(r, ""))
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Basic good"))
	assert.Equal(t, http.StatusUnauthorized, serve(r, "Bearer bad"))
	assert.Equal(t, http.StatusOK, serve(r, "Bearer good"))
	assert.Equal(t, http.StatusOK, serve(r, "bearer good"))
}

func TestRequireRoles(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, serve(newProtectedRouter(models.RoleAdmin, models.RoleNurse), "Bearer good"))
	assert.Equal(t, http.StatusOK, serve(newProtectedRouter(models.RoleCaregiver), "Bearer good"))
}

type recordingObserver struct {
	paths    []string
	statuses []int
}

func (o *recordingObserver) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	o.paths = append(o.paths, path)
	o.statuses = append(o.statuses, status)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &recordingObserver{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/records/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/records/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, []string{"/records/:id", "unmatched"}, obs.paths)
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNotFound}, obs.statuses)
}
