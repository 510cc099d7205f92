// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/foodorder-backend/internal/config"
	"github.com/your-org/foodorder-backend/internal/domain/order"
	"github.com/your-org/foodorder-backend/internal/domain/pricing"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReceipt generates a printable PDF receipt for a placed order.
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	data := receiptData{
		ReceiptNumber: fmt.Sprintf("RCPT-%s", o.ID),
		OrderDate:     o.OrderDate.Format("January 2, 2006 3:04 PM"),
		Order:         o,
		Subtotal:      pricing.Round2(o.Subtotal),
		DeliveryFee:   pricing.Round2(o.DeliveryFee),
		Tax:           pricing.Round2(o.Tax),
		TotalAmount:   pricing.Round2(o.TotalAmount),
		AppName:       s.config.App.Name,
	}
	if o.EstimatedDelivery != nil {
		data.EstimatedDelivery = o.EstimatedDelivery.Format("3:04 PM")
	}

	for _, item := range o.Items {
		data.Lines = append(data.Lines, receiptLine{
			Title:     item.Title,
			Modifiers: formatModifiers(item.SelectedToppings, item.SelectedSides),
			Quantity:  item.Quantity,
			UnitPrice: pricing.Round2(item.UnitPrice),
			LineTotal: pricing.Round2(item.LineTotal()),
		})
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	// Convert HTML to PDF
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func formatModifiers(toppings, sides []string) string {
	parts := make([]string, 0, 2)
	if len(toppings) > 0 {
		parts = append(parts, "Toppings: "+strings.Join(toppings, ", "))
	}
	if len(sides) > 0 {
		parts = append(parts, "Sides: "+strings.Join(sides, ", "))
	}
	return strings.Join(parts, " · ")
}

// receiptData represents the data passed to the receipt template
type receiptData struct {
	ReceiptNumber     string
	OrderDate         string
	EstimatedDelivery string
	Order             *order.Order
	Lines             []receiptLine
	Subtotal          float64
	DeliveryFee       float64
	Tax               float64
	TotalAmount       float64
	AppName           string
}

type receiptLine struct {
	Title     string
	Modifiers string
	Quantity  int
	UnitPrice float64
	LineTotal float64
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #d33b0d;
            margin-bottom: 10px;
        }
        .order-details {
            margin-bottom: 30px;
        }
        .order-details table {
            width: 100%;
        }
        .order-details td {
            padding: 5px 0;
            vertical-align: top;
        }
        .order-details .label {
            font-weight: bold;
            width: 150px;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .price-col,
        .items-table .total-col {
            text-align: right;
            width: 80px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
            width: 100px;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #333 !important;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
        .status-badge {
            display: inline-block;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
            font-weight: bold;
            text-transform: uppercase;
            background-color: #fef3c7;
            color: #92400e;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.AppName}}</h1>
        </div>
        <div style="text-align: right;">
            <div class="receipt-title">RECEIPT</div>
            <p><strong>Receipt #:</strong> {{.ReceiptNumber}}</p>
            <p><strong>Order Date:</strong> {{.OrderDate}}</p>
        </div>
    </div>

    <div class="order-details">
        <table>
            <tr>
                <td class="label">Order #:</td>
                <td>{{.Order.ID}}</td>
                <td class="label" style="text-align: right;">Status:</td>
                <td style="text-align: right;">
                    <span class="status-badge">{{.Order.Status}}</span>
                </td>
            </tr>
            <tr>
                <td class="label">Deliver To:</td>
                <td>{{.Order.DeliveryAddress}}</td>
                <td class="label" style="text-align: right;">Phone:</td>
                <td style="text-align: right;">{{.Order.PhoneNumber}}</td>
            </tr>
            <tr>
                <td class="label">Payment:</td>
                <td>{{.Order.PaymentMethod}}</td>
                {{if .EstimatedDelivery}}
                <td class="label" style="text-align: right;">Estimated Delivery:</td>
                <td style="text-align: right;">{{.EstimatedDelivery}}</td>
                {{end}}
            </tr>
            {{if .Order.SpecialInstructions}}
            <tr>
                <td class="label">Instructions:</td>
                <td colspan="3">{{.Order.SpecialInstructions}}</td>
            </tr>
            {{end}}
        </table>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Price</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td>
                    <strong>{{.Title}}</strong>
                    {{if .Modifiers}}<br><small>{{.Modifiers}}</small>{{end}}
                </td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">${{printf "%.2f" .UnitPrice}}</td>
                <td class="total-col">${{printf "%.2f" .LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr>
                <td class="label">Subtotal:</td>
                <td class="amount">${{printf "%.2f" .Subtotal}}</td>
            </tr>
            <tr>
                <td class="label">Delivery Fee:</td>
                <td class="amount">${{printf "%.2f" .DeliveryFee}}</td>
            </tr>
            <tr>
                <td class="label">Tax:</td>
                <td class="amount">${{printf "%.2f" .Tax}}</td>
            </tr>
            <tr class="total-row">
                <td class="label">Total:</td>
                <td class="amount">${{printf "%.2f" .TotalAmount}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for your order!</p>
        <p>We'll deliver it to {{.Order.DeliveryAddress}} soon.</p>
    </div>
</body>
</html>
`
