package handlers

import (
	"backoffice/internal/httpx"
	"backoffice/internal/models"
	"backoffice/internal/services"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

type InvoiceHandler struct {
	Svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// invoiceRow mirrors the admin listing: the invoice plus its derived
// total and the display-only overdue flag.
type invoiceRow struct {
	models.Invoice
	TotalPrice decimal.Decimal `json:"total_price"`
	IsOverdue  bool            `json:"overdue"`
}

func (h *InvoiceHandler) row(inv models.Invoice) invoiceRow {
	return invoiceRow{
		Invoice:    inv,
		TotalPrice: inv.TotalPrice(),
		IsOverdue:  inv.Overdue(h.Svc.Now()),
	}
}

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Svc.List(nil)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rows := make([]invoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, h.row(inv))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// Get: GET /invoices/get?id=
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, h.row(*inv))
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	inv, err := h.Svc.Create(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}

// Update: POST /invoices/update?id=
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var in services.InvoiceInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	inv, err := h.Svc.Update(id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Delete: POST /invoices/delete?id=
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": id})
}

// AddItem: POST /invoices/items?invoice_id=
func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := idParam(r, "invoice_id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var in services.InvoiceItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	item, err := h.Svc.AddItem(invoiceID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

// RemoveItem: DELETE /invoices/items?invoice_id=&item_id=
func (h *InvoiceHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := idParam(r, "invoice_id")
	itemID, ok2 := idParam(r, "item_id")
	if !ok || !ok2 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.RemoveItem(invoiceID, itemID); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": itemID})
}

// Total: GET /invoices/total?id=
func (h *InvoiceHandler) Total(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	total, err := h.Svc.TotalPrice(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "total_price": total})
}

// MarkPaid: POST /invoices/mark-paid with {"ids":[...]} or {"id":N}.
// Responds with the number of invoices mutated.
func (h *InvoiceHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID  uint   `json:"id"`
		IDs []uint `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID != 0 {
		if err := h.Svc.MarkAsPaid(req.ID); err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]any{"updated": 1})
		return
	}
	if len(req.IDs) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"ids": "required"})
		return
	}
	count, err := h.Svc.MarkAllAsPaid(req.IDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"updated": count})
}

// Overdue: GET /invoices/overdue?threshold=1000
func (h *InvoiceHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("threshold")
	if raw == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"threshold": "required"})
		return
	}
	threshold, err := decimal.NewFromString(raw)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"threshold": "invalid"})
		return
	}
	invoices, err := h.Svc.OverdueAndAbove(h.Svc.Now(), threshold)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rows := make([]invoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, h.row(inv))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows), "threshold": threshold})
}
