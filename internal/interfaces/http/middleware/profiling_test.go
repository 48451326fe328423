package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestProfiling_LabelsMatchedRoutes(t *testing.T) {
	var route, method string
	var labelled bool

	r := gin.New()
	r.Use(Profiling(true))
	r.GET("/api/v1/customers/:code", func(c *gin.Context) {
		route, labelled = pprof.Label(c.Request.Context(), "route")
		method, _ = pprof.Label(c.Request.Context(), "method")
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/customers/C001", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, labelled)
	assert.Equal(t, "/api/v1/customers/:code", route)
	assert.Equal(t, http.MethodGet, method)
}

func TestProfiling_Disabled(t *testing.T) {
	var labelled bool

	r := gin.New()
	r.Use(Profiling(false))
	r.GET("/ping", func(c *gin.Context) {
		_, labelled = pprof.Label(c.Request.Context(), "route")
		c.Status(http.StatusOK)
	})

	serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.False(t, labelled)
}
