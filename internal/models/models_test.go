package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestPurchaseOrder_TotalCost(t *testing.T) {
	po := &PurchaseOrder{}
	assert.True(t, po.TotalCost().Equal(decimal.Zero), "empty order should total 0.00")

	po.Items = []PurchaseOrderItem{
		{Quantity: 5, Cost: d("5000.00")},
	}
	assert.True(t, po.TotalCost().Equal(d("5000.00")))

	po.Items = append(po.Items, PurchaseOrderItem{Quantity: 4, Cost: d("2000.00")})
	assert.True(t, po.TotalCost().Equal(d("7000.00")))
}

func TestPurchaseOrder_TotalCostOrderIndependent(t *testing.T) {
	items := []PurchaseOrderItem{
		{Quantity: 1, Cost: d("0.01")},
		{Quantity: 2, Cost: d("99.99")},
		{Quantity: 3, Cost: d("1234.50")},
	}
	want := d("1334.50")
	perms := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}}
	for _, perm := range perms {
		po := &PurchaseOrder{}
		for _, i := range perm {
			po.Items = append(po.Items, items[i])
		}
		assert.True(t, po.TotalCost().Equal(want), "insertion order must not change the sum")
	}
}

func TestInvoice_TotalPrice(t *testing.T) {
	inv := &Invoice{}
	assert.True(t, inv.TotalPrice().Equal(decimal.Zero), "empty invoice should total 0.00")

	inv.Items = []InvoiceItem{
		{Quantity: 2, PriceEach: d("1200.00")},
	}
	assert.True(t, inv.TotalPrice().Equal(d("2400.00")))

	inv.Items = append(inv.Items,
		InvoiceItem{Quantity: 3, PriceEach: d("0.10")},
		InvoiceItem{Quantity: 1, PriceEach: d("0.01")},
	)
	assert.True(t, inv.TotalPrice().Equal(d("2400.31")), "sum must be exact, no float drift")
}

func TestInvoiceItem_LineTotal(t *testing.T) {
	it := &InvoiceItem{Quantity: 7, PriceEach: d("19.99")}
	assert.True(t, it.LineTotal().Equal(d("139.93")))
}

func TestInvoice_Overdue(t *testing.T) {
	today := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	sameDay := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status InvoiceStatus
		due    time.Time
		want   bool
	}{
		{"unpaid past due", InvoiceUnpaid, yesterday, true},
		{"paid past due", InvoicePaid, yesterday, false},
		{"unpaid due today", InvoiceUnpaid, sameDay, false},
		{"unpaid due tomorrow", InvoiceUnpaid, tomorrow, false},
		{"unpaid no due date", InvoiceUnpaid, time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &Invoice{Status: tt.status, DueDate: tt.due}
			assert.Equal(t, tt.want, inv.Overdue(today))
		})
	}
}

func TestStatusValidation(t *testing.T) {
	assert.True(t, PurchaseOrderPending.Valid())
	assert.True(t, PurchaseOrderCompleted.Valid())
	assert.True(t, PurchaseOrderCanceled.Valid())
	assert.False(t, PurchaseOrderStatus("shipped").Valid())

	assert.True(t, InvoiceUnpaid.Valid())
	assert.True(t, InvoicePaid.Valid())
	assert.False(t, InvoiceStatus("draft").Valid())
}

func TestStatusDisplay(t *testing.T) {
	assert.Equal(t, "Pending", PurchaseOrderPending.Display())
	assert.Equal(t, "Canceled", PurchaseOrderCanceled.Display())
	assert.Equal(t, "Unpaid", InvoiceUnpaid.Display())
	assert.Equal(t, "Paid", InvoicePaid.Display())
}

func TestProduct_String(t *testing.T) {
	p := &Product{Name: "Laptop", SKU: "LAP123"}
	assert.Equal(t, "Laptop (LAP123)", p.String())
}
