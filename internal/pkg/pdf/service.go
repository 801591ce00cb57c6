// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/cryai2821/pizza-wale-fe/internal/pkg/money"
)

var receiptTmpl = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"money": money.Format,
}).Parse(receiptTemplate))

// Service handles PDF generation
type Service struct {
	company  CompanyInfo
	shopName string
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		company: CompanyInfo{
			Name:    cfg.Receipt.CompanyName,
			Address: cfg.Receipt.CompanyAddress,
			Phone:   cfg.Receipt.CompanyPhone,
		},
		shopName: cfg.Shop.Name,
	}
}

// GenerateReceipt generates a PDF receipt for an order
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.RenderHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA5)
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

// RenderHTML renders the receipt markup that GenerateReceipt converts
func (s *Service) RenderHTML(o *order.Order) (string, error) {
	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RCPT-%s", o.ShortID),
		OrderDate:     o.CreatedAt.Format("January 2, 2006 3:04 PM"),
		Order:         o,
		ShopName:      o.ShopName(s.shopName),
		Company:       s.company,
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string
	OrderDate     string
	Order         *order.Order
	ShopName      string
	Company       CompanyInfo
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string
	Address string
	Phone   string
}

const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 24px; border-bottom: 2px solid #eee; padding-bottom: 16px; }
        .receipt-title { font-size: 24px; font-weight: bold; color: #059669; margin-bottom: 8px; }
        .status-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; }
        .status-cancelled { background-color: #fee2e2; color: #b91c1c; }
        .status-active { background-color: #d1fae5; color: #065f46; }
        .items-table { width: 100%; border-collapse: collapse; margin: 24px 0; }
        .items-table th, .items-table td { border-bottom: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items-table .qty-col, .items-table .total-col { text-align: right; width: 80px; }
        .option { color: #6b7280; font-size: 12px; padding-left: 12px; }
        .total-row { font-size: 18px; font-weight: bold; text-align: right; }
        .footer { margin-top: 40px; padding-top: 16px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>Phone: {{.Company.Phone}}</p>{{end}}
        </div>
        <div>
            <div class="receipt-title">RECEIPT</div>
            <p><strong>Order #:</strong> {{.Order.ShortID}}</p>
            <p><strong>Date:</strong> {{.OrderDate}}</p>
            <p><strong>Store:</strong> {{.ShopName}}</p>
            {{if .Order.GuestPhone}}<p><strong>Contact:</strong> {{.Order.GuestPhone}}</p>{{end}}
            <span class="status-badge {{if eq .Order.Status "CANCELLED"}}status-cancelled{{else}}status-active{{end}}">{{.Order.Status}}</span>
        </div>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td>
                    <strong>{{.Name}}</strong>
                    {{range .SelectedOptions}}<div class="option">+ {{.Name}} ({{money .Price}})</div>{{end}}
                </td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="total-col">{{money .LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <p class="total-row">Total: {{money .Order.TotalAmount}}</p>

    <div class="footer">
        <p>Thank you for ordering with {{.Company.Name}}!</p>
        <p>Taxes and fees are included in item prices.</p>
    </div>
</body>
</html>
`
