// Package view renders the printable invoice document. It is the only
// HTML surface of the service; everything else speaks JSON.
package view

import (
	"backoffice/internal/models"
	"bytes"
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

var invoiceTmpl = template.Must(template.New("invoice_print").Parse(invoicePrintHTML))

type invoiceLine struct {
	ProductName string
	SKU         string
	Quantity    int
	PriceEach   string
	LineTotal   string
}

type invoiceData struct {
	ID           uint
	CustomerName string
	InvoiceDate  string
	DueDate      string
	Status       string
	Overdue      bool
	Lines        []invoiceLine
	Total        string
}

// RenderInvoice writes a printable HTML document for the invoice.
// Items must be loaded with their products. The document is rendered to
// a buffer first so a template failure never leaves a half-written page.
func RenderInvoice(w io.Writer, inv *models.Invoice, today time.Time) error {
	data := invoiceData{
		ID:           inv.ID,
		CustomerName: inv.CustomerName,
		InvoiceDate:  inv.InvoiceDate.Format("2006-01-02"),
		DueDate:      inv.DueDate.Format("2006-01-02"),
		Status:       inv.Status.Display(),
		Overdue:      inv.Overdue(today),
		Total:        inv.TotalPrice().StringFixed(2),
	}
	for _, it := range inv.Items {
		line := invoiceLine{
			Quantity:  it.Quantity,
			PriceEach: it.PriceEach.StringFixed(2),
			LineTotal: it.PriceEach.Mul(decimal.NewFromInt(int64(it.Quantity))).StringFixed(2),
		}
		if it.Product != nil {
			line.ProductName = it.Product.Name
			line.SKU = it.Product.SKU
		}
		data.Lines = append(data.Lines, line)
	}
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

const invoicePrintHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice #{{.ID}}</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; margin-top: 1rem; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
tfoot td { font-weight: bold; }
.overdue { color: red; font-weight: bold; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>Invoice #{{.ID}}</h1>
<p>Customer: {{.CustomerName}}</p>
<p>Invoice date: {{.InvoiceDate}}<br>
Due date: {{.DueDate}}</p>
<p>Status: {{.Status}}{{if .Overdue}} <span class="overdue">OVERDUE</span>{{end}}</p>
<table>
<thead>
<tr><th>Product</th><th>SKU</th><th>Quantity</th><th>Price each</th><th>Line total</th></tr>
</thead>
<tbody>
{{range .Lines}}<tr><td>{{.ProductName}}</td><td>{{.SKU}}</td><td>{{.Quantity}}</td><td>{{.PriceEach}}</td><td>{{.LineTotal}}</td></tr>
{{end}}</tbody>
<tfoot>
<tr><td colspan="4">Total</td><td>{{.Total}}</td></tr>
</tfoot>
</table>
</body>
</html>
`
