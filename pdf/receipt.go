// Package pdf renders payment receipts as PDF documents.
package pdf

import (
	"bytes"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/muhammadMilon/FruitPanda-sub001/lib"
	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

// ReceiptData is everything the renderer needs. It is a value snapshot: the
// renderer never reads live order state.
type ReceiptData struct {
	ReceiptNumber   string
	OrderNumber     string
	GeneratedAt     time.Time
	CustomerInfo    tables.CustomerInfo
	ShippingAddress tables.ShippingAddress
	Payment         tables.PaymentInfo
	Items           []tables.OrderItem
	Pricing         tables.Pricing
	SupportEmail    string
	SupportPhone    string
}

const (
	pageMargin = 15.0
	lineHeight = 6.0
)

// RenderReceipt renders a receipt PDF and returns the raw bytes. Missing
// optional fields (transaction id, delivery instructions) are rendered as
// absent; the function does not fail on them. Long item lists flow onto
// additional pages automatically.
func RenderReceipt(data ReceiptData) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	renderHeader(doc, data)
	renderCustomerBlock(doc, data)
	renderShippingBlock(doc, data)
	renderPaymentBlock(doc, data)
	renderItemsTable(doc, data.Items)
	renderSummary(doc, data.Pricing)
	renderFooter(doc, data)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderHeader(doc *fpdf.Fpdf, data ReceiptData) {
	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(34, 139, 34)
	doc.CellFormat(0, 10, "Fruit Panda", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(90, 90, 90)
	doc.CellFormat(0, 5, "Fresh Fruit, Delivered", "", 1, "C", false, 0, "")
	doc.Ln(4)

	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 6, "PAYMENT RECEIPT", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 5, "Receipt No: "+data.ReceiptNumber, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, data.GeneratedAt.Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	doc.Ln(6)
}

func renderCustomerBlock(doc *fpdf.Fpdf, data ReceiptData) {
	sectionTitle(doc, "Customer")
	doc.SetFont("Helvetica", "", 10)
	writeLine(doc, data.CustomerInfo.Name)
	writeLine(doc, data.CustomerInfo.Email)
	writeLine(doc, data.CustomerInfo.Phone)
	doc.Ln(3)
}

func renderShippingBlock(doc *fpdf.Fpdf, data ReceiptData) {
	sectionTitle(doc, "Shipping Address")
	doc.SetFont("Helvetica", "", 10)
	addr := data.ShippingAddress
	writeLine(doc, addr.FullName)
	writeLine(doc, addr.Address)

	locality := addr.City
	if addr.Area != "" {
		locality = addr.Area + ", " + addr.City
	}
	writeLine(doc, locality)
	writeLine(doc, addr.Phone)
	if addr.Instructions != "" {
		writeLine(doc, "Note: "+addr.Instructions)
	}
	doc.Ln(3)
}

func renderPaymentBlock(doc *fpdf.Fpdf, data ReceiptData) {
	sectionTitle(doc, "Payment")
	doc.SetFont("Helvetica", "", 10)
	writeLine(doc, "Order No: "+data.OrderNumber)
	writeLine(doc, "Method: "+string(data.Payment.Method))
	if data.Payment.TransactionId != "" {
		writeLine(doc, "Transaction ID: "+data.Payment.TransactionId)
	}
	if data.Payment.PaidAt != nil {
		writeLine(doc, "Paid at: "+data.Payment.PaidAt.Format("02 Jan 2006 15:04"))
	}
	doc.Ln(3)
}

func renderItemsTable(doc *fpdf.Fpdf, items []tables.OrderItem) {
	const (
		nameW  = 90.0
		qtyW   = 20.0
		priceW = 35.0
		totalW = 35.0
	)

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(240, 240, 240)
	doc.CellFormat(nameW, 7, "Item", "1", 0, "L", true, 0, "")
	doc.CellFormat(qtyW, 7, "Qty", "1", 0, "C", true, 0, "")
	doc.CellFormat(priceW, 7, "Unit Price", "1", 0, "R", true, 0, "")
	doc.CellFormat(totalW, 7, "Total", "1", 1, "R", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, item := range items {
		name := item.ProductInfo.Name
		if item.Weight != "" {
			name += " (" + item.Weight + ")"
		}
		doc.CellFormat(nameW, 7, name, "1", 0, "L", false, 0, "")
		doc.CellFormat(qtyW, 7, strconv.Itoa(item.Quantity), "1", 0, "C", false, 0, "")
		doc.CellFormat(priceW, 7, lib.FormatBDT(item.Price), "1", 0, "R", false, 0, "")
		doc.CellFormat(totalW, 7, lib.FormatBDT(item.Subtotal), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)
}

func renderSummary(doc *fpdf.Fpdf, pricing tables.Pricing) {
	summaryRow(doc, "Subtotal", lib.FormatBDT(pricing.Subtotal), false)
	if pricing.DeliveryFee.IsPositive() {
		summaryRow(doc, "Delivery Fee", lib.FormatBDT(pricing.DeliveryFee), false)
	}
	if pricing.Discount.IsPositive() {
		summaryRow(doc, "Discount", "-"+lib.FormatBDT(pricing.Discount), false)
	}
	summaryRow(doc, "Total", lib.FormatBDTGrouped(pricing.Total), true)
	doc.Ln(6)
}

func renderFooter(doc *fpdf.Fpdf, data ReceiptData) {
	doc.SetFont("Helvetica", "I", 9)
	doc.SetTextColor(90, 90, 90)
	doc.CellFormat(0, 5, "Thank you for shopping with Fruit Panda!", "", 1, "C", false, 0, "")
	support := "Questions? " + data.SupportEmail
	if data.SupportPhone != "" {
		support += " | " + data.SupportPhone
	}
	doc.CellFormat(0, 5, support, "", 1, "C", false, 0, "")
	doc.SetTextColor(0, 0, 0)
}

func sectionTitle(doc *fpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 6, title, "", 1, "L", false, 0, "")
}

func writeLine(doc *fpdf.Fpdf, text string) {
	if text == "" {
		return
	}
	doc.CellFormat(0, lineHeight-1, text, "", 1, "L", false, 0, "")
}

func summaryRow(doc *fpdf.Fpdf, label, value string, bold bool) {
	const labelW, valueW = 145.0, 35.0
	if bold {
		doc.SetFont("Helvetica", "B", 11)
	} else {
		doc.SetFont("Helvetica", "", 10)
	}
	doc.CellFormat(labelW, 6, label, "", 0, "R", false, 0, "")
	doc.CellFormat(valueW, 6, value, "", 1, "R", false, 0, "")
}
