package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) {
	c.Status(http.StatusOK)
}

func TestRouterSetup(t *testing.T) {
	t.Run("registers routes under the API version prefix", func(t *testing.T) {
		engine := gin.New()

		group := NewDomainGroup("procurement", "/procurement").
			GET("/purchase-orders", okHandler).
			POST("/purchase-orders", okHandler)

		r := NewRouter(engine, WithAPIVersion("v1"))
		r.Register(group)
		r.Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/procurement/purchase-orders", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/procurement/purchase-orders", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("defaults to v1 when no option is given", func(t *testing.T) {
		engine := gin.New()

		group := NewDomainGroup("system", "/system").GET("/ping", okHandler)

		NewRouter(engine).Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/system/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("subgroups nest under the parent prefix", func(t *testing.T) {
		engine := gin.New()

		parent := NewDomainGroup("partner", "/partner")
		parent.Group("suppliers", "/suppliers").GET("", okHandler)

		NewRouter(engine).Register(parent).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/partner/suppliers", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("group middleware runs before handlers", func(t *testing.T) {
		engine := gin.New()

		called := false
		group := NewDomainGroup("catalog", "/catalog").
			Use(func(c *gin.Context) {
				called = true
				c.Next()
			}).
			GET("/products", okHandler)

		NewRouter(engine).Register(group).Setup()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/catalog/products", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, called)
	})

	t.Run("exposes name and prefix", func(t *testing.T) {
		group := NewDomainGroup("partner", "/partner")
		assert.Equal(t, "partner", group.Name())
		assert.Equal(t, "/partner", group.Prefix())
	})
}
