package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tably/tably/internal/domain"
)

func TestNormalizeOrderStatus(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		want  domain.OrderStatus
		valid bool
	}{
		{name: "pending", in: "pending", want: domain.OrderStatusPending, valid: true},
		{name: "accepted", in: "accepted", want: domain.OrderStatusAccepted, valid: true},
		{name: "accept_synonym_normalized", in: "accept", want: domain.OrderStatusAccepted, valid: true},
		{name: "preparing", in: "preparing", want: domain.OrderStatusPreparing, valid: true},
		{name: "ready", in: "ready", want: domain.OrderStatusReady, valid: true},
		{name: "delivered", in: "delivered", want: domain.OrderStatusDelivered, valid: true},
		{name: "cancelled", in: "cancelled", want: domain.OrderStatusCancelled, valid: true},
		{name: "unknown_rejected", in: "shipped", valid: false},
		{name: "empty_rejected", in: "", valid: false},
		{name: "case_sensitive", in: "Pending", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := domain.NormalizeOrderStatus(tc.in)
			assert.Equal(t, tc.valid, ok)
			if tc.valid {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, domain.OrderStatusDelivered.IsTerminal())
	assert.True(t, domain.OrderStatusCancelled.IsTerminal())
	assert.False(t, domain.OrderStatusPending.IsTerminal())
	assert.False(t, domain.OrderStatusReady.IsTerminal())
}

func TestNormalizeReservationStatus(t *testing.T) {
	tests := []struct {
		in    string
		want  domain.ReservationStatus
		valid bool
	}{
		{in: "pending", want: domain.ReservationStatusPending, valid: true},
		{in: "confirmed", want: domain.ReservationStatusConfirmed, valid: true},
		{in: "started", want: domain.ReservationStatusStarted, valid: true},
		{in: "completed", want: domain.ReservationStatusCompleted, valid: true},
		{in: "cancelled", want: domain.ReservationStatusCancelled, valid: true},
		{in: "accept", valid: false},
		{in: "done", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := domain.NormalizeReservationStatus(tc.in)
			assert.Equal(t, tc.valid, ok)
			if tc.valid {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestOrderTotal(t *testing.T) {
	itemID := uuid.New()

	tests := []struct {
		name  string
		items []*domain.OrderItem
		tip   int64
		want  int64
	}{
		{name: "empty_no_tip", items: nil, tip: 0, want: 0},
		{
			name: "single_line",
			items: []*domain.OrderItem{
				{MenuItemID: itemID, UnitPriceCents: 1250, Quantity: 2},
			},
			want: 2500,
		},
		{
			name: "multiple_lines_with_tip",
			items: []*domain.OrderItem{
				{MenuItemID: itemID, UnitPriceCents: 1250, Quantity: 2},
				{MenuItemID: uuid.New(), UnitPriceCents: 499, Quantity: 3},
				{MenuItemID: uuid.New(), UnitPriceCents: 900, Quantity: 1},
			},
			tip:  350,
			want: 2500 + 1497 + 900 + 350,
		},
		{name: "tip_only", items: nil, tip: 500, want: 500},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.OrderTotal(tc.items, tc.tip))
		})
	}
}
