package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestGetAuth0ID(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name     string
		setup    func(c echo.Context)
		expected string
	}{
		{
			name: "returns auth0 id when present",
			setup: func(c echo.Context) {
				ctx := context.WithValue(c.Request().Context(), Auth0IDKey, "auth0|12345")
				c.SetRequest(c.Request().WithContext(ctx))
			},
			expected: "auth0|12345",
		},
		{
			name:     "returns empty string when not present",
			setup:    func(c echo.Context) {},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			tt.setup(c)

			result := GetAuth0ID(c)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestGetClaims(t *testing.T) {
	e := echo.New()

	t.Run("returns claims when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		claims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Subject: "auth0|test",
			},
		}
		ctx := context.WithValue(c.Request().Context(), ClaimsKey, claims)
		c.SetRequest(c.Request().WithContext(ctx))

		result := GetClaims(c)
		if result == nil {
			t.Fatal("Expected claims, got nil")
		}
		if result.RegisteredClaims.Subject != "auth0|test" {
			t.Errorf("Expected subject 'auth0|test', got %q", result.RegisteredClaims.Subject)
		}
	})

	t.Run("returns nil when not present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		result := GetClaims(c)
		if result != nil {
			t.Error("Expected nil, got claims")
		}
	})
}

func TestGetCustomClaims(t *testing.T) {
	e := echo.New()

	t.Run("returns custom claims when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		customClaims := &CustomClaims{
			Email:   "test@example.com",
			Name:    "Test User",
			Picture: "https://example.com/pic.jpg",
		}
		claims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{
				Subject: "auth0|test",
			},
			CustomClaims: customClaims,
		}
		ctx := context.WithValue(c.Request().Context(), ClaimsKey, claims)
		c.SetRequest(c.Request().WithContext(ctx))

		result := GetCustomClaims(c)
		if result == nil {
			t.Fatal("Expected custom claims, got nil")
		}
		if result.Email != "test@example.com" {
			t.Errorf("Expected email 'test@example.com', got %q", result.Email)
		}
		if result.Name != "Test User" {
			t.Errorf("Expected name 'Test User', got %q", result.Name)
		}
	})

	t.Run("returns nil when claims not present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		result := GetCustomClaims(c)
		if result != nil {
			t.Error("Expected nil, got custom claims")
		}
	})
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := &CustomClaims{
		Email: "test@example.com",
		Name:  "Test",
	}

	err := claims.Validate(context.Background())
	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestUserIDFromSubject(t *testing.T) {
	t.Run("is deterministic", func(t *testing.T) {
		a := UserIDFromSubject("auth0|12345")
		b := UserIDFromSubject("auth0|12345")
		if a != b {
			t.Errorf("Expected same ID for same subject, got %s and %s", a, b)
		}
	})

	t.Run("differs per subject", func(t *testing.T) {
		a := UserIDFromSubject("auth0|12345")
		b := UserIDFromSubject("auth0|67890")
		if a == b {
			t.Error("Expected different IDs for different subjects")
		}
	})

	t.Run("is never nil", func(t *testing.T) {
		if UserIDFromSubject("") == uuid.Nil {
			t.Error("Expected non-nil ID even for empty subject")
		}
	})
}

func TestGetUserID(t *testing.T) {
	e := echo.New()

	t.Run("returns user id when present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		userID := uuid.New()
		ctx := context.WithValue(c.Request().Context(), UserIDKey, userID)
		c.SetRequest(c.Request().WithContext(ctx))

		if got := GetUserID(c); got != userID {
			t.Errorf("Expected %s, got %s", userID, got)
		}
	})

	t.Run("returns nil uuid when not present", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if got := GetUserID(c); got != uuid.Nil {
			t.Errorf("Expected nil uuid, got %s", got)
		}
	})
}

func TestAuthMiddleware_MissingAuthorizationHeader(t *testing.T) {
	e := echo.New()

	middleware := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			return next(c)
		}
	}

	handler := middleware(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler(c)
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected HTTPError, got %T", err)
	}

	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", httpErr.Code)
	}
}
