package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/Allen-Brian/AGRICHAIN/internal/api/middleware"
	"github.com/Allen-Brian/AGRICHAIN/internal/domain"
	"github.com/Allen-Brian/AGRICHAIN/internal/mocks"
	"github.com/Allen-Brian/AGRICHAIN/internal/ratelimit"
)

func rateLimitedRouter(limiter ratelimit.Limiter, caller *domain.Caller) *gin.Engine {
	router := gin.New()
	router.GET("/limited", func(c *gin.Context) {
		if caller != nil {
			c.Set(middleware.CALLER_KEY, *caller)
		}
		c.Next()
	}, middleware.RateLimit(limiter), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRateLimit_AllowedByCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), "buyer:b-1").Return(ratelimit.Decision{
		Allowed:    true,
		Limit:      40,
		Remaining:  39,
		ResetAfter: 1500 * time.Millisecond,
	}, nil)

	router := rateLimitedRouter(limiter, &domain.Caller{ID: "b-1", Role: domain.RoleBuyer})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "40", w.Header().Get("RateLimit-Limit"))
	assert.Equal(t, "39", w.Header().Get("RateLimit-Remaining"))
	assert.Equal(t, "2", w.Header().Get("RateLimit-Reset"))
	assert.Empty(t, w.Header().Get("Retry-After"))
}

func TestRateLimit_KeyedByIPWithoutCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), "ip:192.0.2.10").Return(ratelimit.Decision{Allowed: true, Limit: 1}, nil)

	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	w := httptest.NewRecorder()
	rateLimitedRouter(limiter, nil).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimit_Denied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(ratelimit.Decision{
		Allowed:    false,
		Limit:      40,
		RetryAfter: 200 * time.Millisecond,
	}, nil)

	router := rateLimitedRouter(limiter, &domain.Caller{ID: "b-1", Role: domain.RoleBuyer})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), `"RATE_LIMITED"`)
}

func TestRateLimit_LimiterErrorAdmits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	limiter := mocks.NewMockRateLimiter(ctrl)
	limiter.EXPECT().Allow(gomock.Any(), gomock.Any()).Return(ratelimit.Decision{}, errors.New("redis rate limiter unavailable"))

	router := rateLimitedRouter(limiter, &domain.Caller{ID: "b-1", Role: domain.RoleBuyer})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("RateLimit-Limit"))
}
