package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandler(t *testing.T, handler gin.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	handler(c)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", w.Body.String(), err)
	}
	return w, body
}

func TestListApplicationsRequiresBranchID(t *testing.T) {
	w, body := runHandler(t, ListApplications, httptest.NewRequest("GET", "/applications", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["message"] != "Missing required fields: branch_id" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestListApplicationsRejectsNonNumericBranchID(t *testing.T) {
	w, body := runHandler(t, ListApplications, httptest.NewRequest("GET", "/applications?branch_id=abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["message"] != "Invalid branch_id" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestFilterOptionsRequiresAScope(t *testing.T) {
	w, body := runHandler(t, FilterOptions, httptest.NewRequest("GET", "/filter-options", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["message"] != "Missing required fields: branch_id, customer_id" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestCreateApplicationRejectsInvalidEmail(t *testing.T) {
	payload := `{"name":"John Doe","email":"not-an-address","services":"1,2"}`
	req := httptest.NewRequest("POST", "/applications", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w, body := runHandler(t, CreateApplication, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["message"] != "Invalid email address" {
		t.Errorf("message = %q", body["message"])
	}
}
