package handlers

import (
	"backoffice/internal/httpx"
	"backoffice/internal/models"
	"backoffice/internal/services"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
)

type PurchaseOrderHandler struct {
	Svc *services.PurchaseOrderService
}

func NewPurchaseOrderHandler(svc *services.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{Svc: svc}
}

// orderRow mirrors the admin listing: the order plus its derived total.
type orderRow struct {
	models.PurchaseOrder
	TotalCost     decimal.Decimal `json:"total_cost"`
	StatusDisplay string          `json:"status_display"`
}

// List: GET /purchase-orders
func (h *PurchaseOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Svc.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	rows := make([]orderRow, 0, len(orders))
	for _, po := range orders {
		rows = append(rows, orderRow{PurchaseOrder: po, TotalCost: po.TotalCost(), StatusDisplay: po.Status.Display()})
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// Get: GET /purchase-orders/get?id=
func (h *PurchaseOrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	po, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderRow{PurchaseOrder: *po, TotalCost: po.TotalCost(), StatusDisplay: po.Status.Display()})
}

// Create: POST /purchase-orders
func (h *PurchaseOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.PurchaseOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	po, err := h.Svc.Create(in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, po)
}

// Update: POST /purchase-orders/update?id=
func (h *PurchaseOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var in services.PurchaseOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	po, err := h.Svc.Update(id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, po)
}

// Delete: POST /purchase-orders/delete?id=
func (h *PurchaseOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// AddItem: POST /purchase-orders/items?order_id=
func (h *PurchaseOrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := idParam(r, "order_id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var in services.OrderItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	item, err := h.Svc.AddItem(orderID, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

// RemoveItem: DELETE /purchase-orders/items?order_id=&item_id=
func (h *PurchaseOrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, ok := idParam(r, "order_id")
	itemID, ok2 := idParam(r, "item_id")
	if !ok || !ok2 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Svc.RemoveItem(orderID, itemID); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"deleted": itemID})
}

// Total: GET /purchase-orders/total?id=
func (h *PurchaseOrderHandler) Total(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	total, err := h.Svc.TotalCost(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"id": id, "total_cost": total})
}
