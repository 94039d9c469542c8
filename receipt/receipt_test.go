package receipt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/console/domain/identity"
	"github.com/erp/console/domain/pos"
	"github.com/erp/console/domain/trade"
)

func createTestReceipt(t *testing.T, method trade.PaymentMethod) *pos.Receipt {
	t.Helper()
	price := decimal.NewFromInt(25)
	qty := decimal.NewFromInt(2)
	total := price.Mul(qty)
	paid := total
	change := decimal.Zero
	if method == trade.PaymentCash {
		paid = decimal.NewFromInt(60)
		change = paid.Sub(total)
	}
	if method == trade.PaymentCredit {
		paid = decimal.Zero
	}
	return &pos.Receipt{
		Lines: []pos.Line{{
			ProductID: uuid.New(),
			Name:      "Espresso Beans 1kg",
			Price:     price,
			Quantity:  qty,
			Discount:  decimal.Zero,
			Stock:     decimal.NewFromInt(10),
		}},
		Totals: pos.Totals{
			Subtotal:      total,
			DiscountTotal: decimal.Zero,
			Total:         total,
		},
		Method:     method,
		AmountPaid: paid,
		Change:     change,
		SaleID:     uuid.New(),
		SaleNumber: "S-000123",
	}
}

func TestRendererProducesPDF(t *testing.T) {
	company := &identity.Company{
		ID:             uuid.New(),
		Name:           "Cafetería Central",
		Currency:       "USD",
		CurrencySymbol: "$",
	}
	r := NewRenderer(company)

	tests := []struct {
		name   string
		method trade.PaymentMethod
	}{
		{name: "cash with change", method: trade.PaymentCash},
		{name: "card exact", method: trade.PaymentCard},
		{name: "credit on account", method: trade.PaymentCredit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := r.Render(createTestReceipt(t, tt.method), time.Now())
			require.NoError(t, err)
			require.NotEmpty(t, data)
			assert.Equal(t, "%PDF", string(data[:4]))
		})
	}
}

func TestRendererWithoutCompanyFallsBack(t *testing.T) {
	r := NewRenderer(nil)
	data, err := r.Render(createTestReceipt(t, trade.PaymentCash), time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
