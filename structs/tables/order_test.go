package tables

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingRecompute(t *testing.T) {
	p := Pricing{
		Subtotal:    decimal.RequireFromString("1260.00"),
		DeliveryFee: decimal.RequireFromString("60.00"),
		Discount:    decimal.RequireFromString("100.00"),
	}
	p.Recompute()

	assert.True(t, p.Total.Equal(decimal.RequireFromString("1220.00")))
}

func TestDeliveryFeeFor(t *testing.T) {
	tests := []struct {
		subtotal string
		want     int64
	}{
		{"0", 60},
		{"500", 60},
		{"999.99", 60},
		{"1000", 0},
		{"1000.01", 0},
		{"5000", 0},
	}
	for _, tt := range tests {
		fee := DeliveryFeeFor(decimal.RequireFromString(tt.subtotal))
		assert.True(t, fee.Equal(decimal.NewFromInt(tt.want)), "subtotal %s", tt.subtotal)
	}
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusProcessing},
		{OrderStatusConfirmed, OrderStatusCancelled},
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusDelivered},
		{OrderStatusDelivered, OrderStatusReturned},
	}
	for _, tt := range allowed {
		assert.True(t, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	denied := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusShipped},
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusDelivered, OrderStatusPending},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusCancelled, OrderStatusConfirmed},
		{OrderStatusReturned, OrderStatusPending},
		{OrderStatusShipped, OrderStatusCancelled},
	}
	for _, tt := range denied {
		assert.False(t, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCancellable(t *testing.T) {
	cancellable := []OrderStatus{OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing}
	for _, status := range cancellable {
		o := &Order{Status: status}
		assert.True(t, o.Cancellable(), "status %s", status)
	}

	final := []OrderStatus{OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}
	for _, status := range final {
		o := &Order{Status: status}
		assert.False(t, o.Cancellable(), "status %s", status)
	}
}

func TestAppendTimeline(t *testing.T) {
	o := &Order{}
	o.AppendTimeline(OrderStatusPending, "Order placed successfully", nil)
	o.AppendTimeline(OrderStatusConfirmed, "Payment confirmed", nil)

	require.Len(t, o.Timeline, 2)
	assert.Equal(t, OrderStatusPending, o.Timeline[0].Status)
	assert.Equal(t, OrderStatusConfirmed, o.Timeline[1].Status)
	assert.False(t, o.Timeline[1].Timestamp.Before(o.Timeline[0].Timestamp))
}
