package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func swaggerRouter(cfg SwaggerConfig) *gin.Engine {
	r := gin.New()
	r.GET("/swagger/*any", SwaggerProtection(cfg), okHandler)
	return r
}

func fromIP(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = ip + ":5555"
	return req
}

func TestSwaggerProtection(t *testing.T) {
	w := serve(swaggerRouter(SwaggerConfig{Enabled: false}), fromIP("127.0.0.1"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(swaggerRouter(SwaggerConfig{Enabled: true}), fromIP("203.0.113.9"))
	assert.Equal(t, http.StatusOK, w.Code)

	restricted := swaggerRouter(SwaggerConfig{Enabled: true, AllowedIPs: []string{"127.0.0.1", "10.0.0.0/8", "bogus"}})
	assert.Equal(t, http.StatusOK, serve(restricted, fromIP("127.0.0.1")).Code)
	assert.Equal(t, http.StatusOK, serve(restricted, fromIP("10.20.30.40")).Code)
	assert.Equal(t, http.StatusForbidden, serve(restricted, fromIP("192.168.1.1")).Code)
}
