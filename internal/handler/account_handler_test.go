package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestCreateAccount_Success(t *testing.T) {
	e := echo.New()
	f := newFixture(t)
	handler := NewAccountHandler(f.accountService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(`{"name": "My Savings"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "user-1")

	if err := handler.CreateAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Name != "My Savings" {
		t.Errorf("Expected name 'My Savings', got %s", response.Name)
	}
	if response.ID == "" {
		t.Error("Expected a generated id")
	}
}

func TestCreateAccount_MissingName(t *testing.T) {
	e := echo.New()
	f := newFixture(t)
	handler := NewAccountHandler(f.accountService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(`{"name": ""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "user-1")

	if err := handler.CreateAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestCreateAccount_Unauthorized(t *testing.T) {
	e := echo.New()
	f := newFixture(t)
	handler := NewAccountHandler(f.accountService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", strings.NewReader(`{"name": "My Savings"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetAccounts_ScopedToUser(t *testing.T) {
	e := echo.New()
	f := newFixture(t)
	f.addAccount("user-1", "Mine")
	f.addAccount("user-2", "Theirs")
	handler := NewAccountHandler(f.accountService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "user-1")

	if err := handler.GetAccounts(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response []AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 1 || response[0].Name != "Mine" {
		t.Errorf("Expected only the caller's account, got %v", response)
	}
}

func TestDeleteAccount_NotFound(t *testing.T) {
	e := echo.New()
	f := newFixture(t)
	handler := NewAccountHandler(f.accountService)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	setupAuthContext(c, "user-1")

	if err := handler.DeleteAccount(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestBulkDeleteAccounts_MixedOwnership(t *testing.T) {
	e := echo.New()
	f := newFixture(t)
	mine := f.addAccount("user-1", "Mine")
	theirs := f.addAccount("user-2", "Theirs")
	handler := NewAccountHandler(f.accountService)

	reqBody := fmt.Sprintf(`{"ids": ["%s", "%s"]}`, mine.ID, theirs.ID)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/bulk-delete", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setupAuthContext(c, "user-1")

	if err := handler.BulkDeleteAccounts(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response BulkDeleteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Deleted) != 1 || response.Deleted[0] != mine.ID {
		t.Errorf("Expected only the owned id, got %v", response.Deleted)
	}
}
