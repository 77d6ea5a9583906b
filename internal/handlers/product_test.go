package handlers

import (
	"backoffice/internal/services"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProductCreateAndListJSON(t *testing.T) {
	conn := setupTestDB(t)
	h := NewProductHandler(services.NewProductService(conn))

	body := `{"name":"Laptop","sku":"LAP123","unit_price":"1000.00"}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["id"] == nil {
		t.Fatalf("missing id in response: %#v", created)
	}

	listW := httptest.NewRecorder()
	h.List(listW, httptest.NewRequest(http.MethodGet, "/products", nil))
	if listW.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", listW.Code)
	}
	var list struct {
		Items []map[string]any `json:"items"`
		Total int              `json:"total"`
	}
	if err := json.Unmarshal(listW.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Total != 1 || len(list.Items) != 1 {
		t.Fatalf("unexpected list: %#v", list)
	}
}

func TestProductCreateDuplicateSKU(t *testing.T) {
	conn := setupTestDB(t)
	seedProduct(t, conn, "Laptop", "LAP123", "1000.00")
	h := NewProductHandler(services.NewProductService(conn))

	body := `{"name":"Other","sku":"LAP123","unit_price":"5.00"}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "validation_failed") {
		t.Fatalf("expected validation_failed, got %s", w.Body.String())
	}
}

func TestProductDeleteUnknown(t *testing.T) {
	conn := setupTestDB(t)
	h := NewProductHandler(services.NewProductService(conn))

	req := httptest.NewRequest(http.MethodPost, "/products/delete?id=42", nil)
	w := httptest.NewRecorder()
	h.Delete(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", w.Code)
	}
}
