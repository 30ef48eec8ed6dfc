package receipt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/tiffin-pos/internal/pos/domain"
)

func TestBytes_ProducesPDF(t *testing.T) {
	inv := domain.Invoice{
		InvoiceID: "INV-0001",
		Date:      "7/1/2026",
		Time:      "2:35:03 pm",
		Items: []domain.InvoiceLine{
			{ItemID: 1, Name: "Idli", Price: 30, Quantity: 3},
			{ItemID: 2, Name: strings.Repeat("Masala Dosa ", 6), Price: 50, Quantity: 1},
		},
		Total:         140,
		PaymentMethod: domain.DefaultPaymentMethod,
	}

	out, err := Bytes(inv, "Tiffin Center")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%PDF"))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "Rs. 90.00", Money(90))
	assert.Equal(t, "Rs. 12.50", Money(12.5))
}
