package notification

import (
	"strings"
	"text/template"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// OrderEmail is the data rendered into an order confirmation message.
type OrderEmail struct {
	OrderID         string
	CustomerName    string
	ShippingAddress string
	PhoneNumber     string
	Note            string
	OrderDate       time.Time
	Price           decimal.Decimal
	Discount        decimal.Decimal
	ShippingCost    decimal.Decimal
	TotalAmount     decimal.Decimal
	Items           []OrderEmailItem
}

// OrderEmailItem is a single order line in the confirmation message.
type OrderEmailItem struct {
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// OrderConfirmationSubject is the subject line for confirmation messages.
const OrderConfirmationSubject = "Order Confirmation"

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`Hello {{.CustomerName}},

Thank you for your order {{.OrderID}}.

Items:
{{- range .Items}}
  - {{.ProductName}} x{{.Quantity}} ({{.Price}})
{{- end}}

Subtotal:      {{.Price}}
Discount:      {{.Discount}}
Shipping:      {{.ShippingCost}}
Total:         {{.TotalAmount}}

Shipping address: {{.ShippingAddress}}
{{- if .PhoneNumber}}
Contact phone:    {{.PhoneNumber}}
{{- end}}
{{- if .Note}}
Note:             {{.Note}}
{{- end}}

Ordered on {{.OrderDate.Format "2006-01-02 15:04"}}.
`))

// RenderOrderConfirmation renders the plain-text confirmation body for an
// order email.
func RenderOrderConfirmation(data OrderEmail) (string, error) {
	var sb strings.Builder
	if err := orderConfirmationTmpl.Execute(&sb, data); err != nil {
		return "", errors.Wrap(err, "render order confirmation")
	}
	return sb.String(), nil
}
