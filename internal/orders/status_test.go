package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusProcessing,
	StatusShipped, StatusDelivered, StatusCancelled,
}

func TestCanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusProcessing, StatusShipped, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered, StatusCancelled},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(Status("returned"), StatusCancelled))
	assert.False(t, CanTransition(StatusPending, Status("returned")))
}

func TestAvailableTransitions(t *testing.T) {
	assert.ElementsMatch(t,
		[]Status{StatusProcessing, StatusShipped, StatusCancelled},
		AvailableTransitions(StatusConfirmed))
	assert.Empty(t, AvailableTransitions(StatusDelivered))
	assert.Empty(t, AvailableTransitions(StatusCancelled))
	assert.Empty(t, AvailableTransitions(Status("returned")))
}

func TestAvailableTransitionsReturnsCopy(t *testing.T) {
	got := AvailableTransitions(StatusPending)
	require.Len(t, got, 2)
	got[0] = StatusDelivered
	assert.Equal(t, []Status{StatusConfirmed, StatusCancelled}, AvailableTransitions(StatusPending))
}

func TestValidateTransition(t *testing.T) {
	ship := ShippingInfo{TrackingID: "TRK123456", CourierName: "BlueDart"}

	tests := []struct {
		name    string
		from    Status
		to      Status
		ship    ShippingInfo
		wantErr error
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, ShippingInfo{}, nil},
		{"pending to cancelled", StatusPending, StatusCancelled, ShippingInfo{}, nil},
		{"confirmed to shipped with tracking", StatusConfirmed, StatusShipped, ship, nil},
		{"processing to shipped with tracking", StatusProcessing, StatusShipped, ship, nil},
		{"shipped to delivered", StatusShipped, StatusDelivered, ShippingInfo{}, nil},

		{"pending to delivered skips ahead", StatusPending, StatusDelivered, ShippingInfo{}, ErrInvalidTransition},
		{"pending to shipped skips ahead", StatusPending, StatusShipped, ship, ErrInvalidTransition},
		{"delivered is terminal", StatusDelivered, StatusCancelled, ShippingInfo{}, ErrInvalidTransition},
		{"cancelled is terminal", StatusCancelled, StatusPending, ShippingInfo{}, ErrInvalidTransition},
		{"no backwards move", StatusShipped, StatusProcessing, ShippingInfo{}, ErrInvalidTransition},
		{"no self transition", StatusConfirmed, StatusConfirmed, ShippingInfo{}, ErrInvalidTransition},

		{"shipped without any info", StatusConfirmed, StatusShipped, ShippingInfo{}, ErrMissingShippingInfo},
		{"shipped without tracking id", StatusConfirmed, StatusShipped, ShippingInfo{CourierName: "BlueDart"}, ErrMissingShippingInfo},
		{"shipped without courier", StatusProcessing, StatusShipped, ShippingInfo{TrackingID: "TRK123456"}, ErrMissingShippingInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to, tt.ship)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTransitionErrorNamesStatuses(t *testing.T) {
	err := ValidateTransition(StatusDelivered, StatusPending, ShippingInfo{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivered -> pending")
}

func TestStatusNote(t *testing.T) {
	note := StatusNote(StatusShipped, ShippingInfo{TrackingID: "TRK99", CourierName: "Delhivery"})
	assert.Equal(t, "Order shipped via Delhivery. Tracking ID: TRK99. Estimated delivery: 7-10 business days.", note)

	assert.Equal(t, "Status updated to confirmed", StatusNote(StatusConfirmed, ShippingInfo{}))
	assert.Equal(t, "Status updated to delivered", StatusNote(StatusDelivered, ShippingInfo{}))
}
