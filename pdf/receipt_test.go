package pdf

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadMilon/FruitPanda-sub001/structs/tables"
)

func sampleData() ReceiptData {
	paidAt := time.Date(2026, 8, 28, 14, 30, 0, 0, time.UTC)
	productId := uuid.New()
	return ReceiptData{
		ReceiptNumber: "RCP-20260828-0001",
		OrderNumber:   "ORD-1756390000000-A1B2C3",
		GeneratedAt:   paidAt,
		CustomerInfo: tables.CustomerInfo{
			Name:  "Rahim Uddin",
			Email: "rahim@example.com",
			Phone: "01700000000",
		},
		ShippingAddress: tables.ShippingAddress{
			FullName:     "Rahim Uddin",
			Phone:        "01700000000",
			Address:      "House 12, Road 5",
			City:         "Dhaka",
			Area:         "Dhanmondi",
			Instructions: "Call before delivery",
		},
		Payment: tables.PaymentInfo{
			Method:        tables.PaymentMethodBkash,
			Status:        tables.PaymentStatusPaid,
			TransactionId: "TXN12345",
			PaidAt:        &paidAt,
		},
		Items: []tables.OrderItem{
			{
				ProductInfo: tables.ProductInfo{ProductId: &productId, Name: "Rajshahi Mango", NameBn: "রাজশাহীর আম"},
				Quantity:    2,
				Price:       decimal.RequireFromString("450.00"),
				Weight:      "1kg",
				Subtotal:    decimal.RequireFromString("900.00"),
			},
			{
				ProductInfo: tables.ProductInfo{Name: "Green Coconut"},
				Quantity:    3,
				Price:       decimal.RequireFromString("120.00"),
				Subtotal:    decimal.RequireFromString("360.00"),
			},
		},
		Pricing: tables.Pricing{
			Subtotal:    decimal.RequireFromString("1260.00"),
			DeliveryFee: decimal.Zero,
			Discount:    decimal.RequireFromString("60.00"),
			Total:       decimal.RequireFromString("1200.00"),
		},
		SupportEmail: "support@fruitpanda.com.bd",
		SupportPhone: "+880 1700-000000",
	}
}

func TestRenderReceipt_ProducesPDF(t *testing.T) {
	data, err := RenderReceipt(sampleData())
	require.NoError(t, err)

	require.True(t, len(data) > 4)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderReceipt_EmptyOptionalFields(t *testing.T) {
	data := sampleData()
	data.Payment.TransactionId = ""
	data.Payment.PaidAt = nil
	data.ShippingAddress.Instructions = ""
	data.ShippingAddress.Area = ""
	data.CustomerInfo.Phone = ""
	data.SupportPhone = ""

	rendered, err := RenderReceipt(data)
	require.NoError(t, err)
	assert.True(t, len(rendered) > 0)
}

func TestRenderReceipt_ManyItemsFlowAcrossPages(t *testing.T) {
	data := sampleData()
	data.Items = nil
	for i := 0; i < 120; i++ {
		data.Items = append(data.Items, tables.OrderItem{
			ProductInfo: tables.ProductInfo{Name: fmt.Sprintf("Item %d", i)},
			Quantity:    1,
			Price:       decimal.NewFromInt(10),
			Subtotal:    decimal.NewFromInt(10),
		})
	}

	rendered, err := RenderReceipt(data)
	require.NoError(t, err)
	assert.True(t, len(rendered) > 0)
}
