package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

// setUserContext injects a user id the way Authenticate does (test helper)
func setUserContext(c echo.Context, userID string) {
	ctx := context.WithValue(c.Request().Context(), UserIDKey, userID)
	c.SetRequest(c.Request().WithContext(ctx))
}

func TestGetUserID_Present(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	setUserContext(c, "user-1")

	if got := GetUserID(c); got != "user-1" {
		t.Errorf("Expected user-1, got %q", got)
	}
}

func TestGetUserID_Absent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	if got := GetUserID(c); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}
