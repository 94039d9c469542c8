package pos

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/console/domain/catalog"
	"github.com/erp/console/domain/shared"
	"github.com/erp/console/domain/trade"
)

func createTestProduct(t *testing.T, price string, stock string) *catalog.Product {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	s, err := decimal.NewFromString(stock)
	require.NoError(t, err)
	return &catalog.Product{
		ID:       uuid.New(),
		SKU:      "SKU-" + uuid.NewString()[:8],
		Name:     "Test Product",
		Price:    p,
		Stock:    s,
		IsActive: true,
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestCartTotals(t *testing.T) {
	cart := NewCart()

	p1 := createTestProduct(t, "10", "100")
	p2 := createTestProduct(t, "5", "100")

	require.NoError(t, cart.AddProduct(p1, dec(t, "2")))
	require.NoError(t, cart.AddProduct(p2, dec(t, "1")))
	require.NoError(t, cart.SetDiscount(p1.ID, nil, dec(t, "1")))

	totals := cart.Totals()
	assert.True(t, totals.Subtotal.Equal(dec(t, "25")), "subtotal = %s", totals.Subtotal)
	assert.True(t, totals.DiscountTotal.Equal(dec(t, "1")), "discount_total = %s", totals.DiscountTotal)
	assert.True(t, totals.Total.Equal(dec(t, "24")), "total = %s", totals.Total)
}

func TestCartAddRejectsBeyondStock(t *testing.T) {
	cart := NewCart()
	p := createTestProduct(t, "10", "3")

	err := cart.AddProduct(p, dec(t, "4"))
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, StateBrowsing, cart.State())

	// Merging with an existing line is also capped at the snapshot
	require.NoError(t, cart.AddProduct(p, dec(t, "2")))
	err = cart.AddProduct(p, dec(t, "2"))
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	assert.True(t, cart.Lines()[0].Quantity.Equal(dec(t, "2")))
}

func TestCartAdjustQuantityClampsAtStock(t *testing.T) {
	cart := NewCart()
	p := createTestProduct(t, "10", "3")
	require.NoError(t, cart.AddProduct(p, dec(t, "3")))

	err := cart.AdjustQuantity(p.ID, nil, dec(t, "1"))
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	// The line must be untouched after the rejected increase
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(dec(t, "3")))
}

func TestCartAdjustQuantityClampsAtZero(t *testing.T) {
	cart := NewCart()
	p := createTestProduct(t, "10", "5")
	require.NoError(t, cart.AddProduct(p, dec(t, "1")))

	require.NoError(t, cart.AdjustQuantity(p.ID, nil, dec(t, "-1")))
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, StateBrowsing, cart.State())
}

func TestCartAdjustQuantityUnknownLine(t *testing.T) {
	cart := NewCart()
	err := cart.AdjustQuantity(uuid.New(), nil, dec(t, "1"))
	require.Error(t, err)
}

func TestCartVariantLines(t *testing.T) {
	cart := NewCart()
	p := createTestProduct(t, "10", "10")
	v := &catalog.ProductVariant{ID: uuid.New(), ProductID: p.ID, Name: "Red / XL", Price: dec(t, "12")}

	require.NoError(t, cart.AddProduct(p, dec(t, "1")))
	require.NoError(t, cart.AddVariant(p, v, dec(t, "2")))

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.True(t, cart.Totals().Subtotal.Equal(dec(t, "34")))
}

func TestCheckoutChangeCalculation(t *testing.T) {
	cart := NewCart()
	p1 := createTestProduct(t, "10", "100")
	p2 := createTestProduct(t, "5", "100")
	require.NoError(t, cart.AddProduct(p1, dec(t, "2")))
	require.NoError(t, cart.AddProduct(p2, dec(t, "1")))
	require.NoError(t, cart.SetDiscount(p1.ID, nil, dec(t, "1")))

	sessionID := uuid.New()
	req, receipt, err := cart.BeginCheckout(sessionID, nil, trade.PaymentCash, dec(t, "30"))
	require.NoError(t, err)

	assert.True(t, receipt.Change.Equal(dec(t, "6")), "change = %s", receipt.Change)
	assert.True(t, req.AmountPaid.Equal(dec(t, "30")))
	assert.Equal(t, StateSubmitting, cart.State())
	assert.Len(t, req.Items, 2)
}

func TestCheckoutCreditBypassesPaidCheck(t *testing.T) {
	cart := NewCart()
	p := createTestProduct(t, "10", "100")
	require.NoError(t, cart.AddProduct(p, dec(t, "2")))

	// amount_paid below total would fail for cash, but CREDIT skips the
	// check and forces the outgoing amount to zero
	req, receipt, err := cart.BeginCheckout(uuid.New(), nil, trade.PaymentCredit, dec(t, "3"))
	require.NoError(t, err)
	assert.True(t, req.AmountPaid.IsZero())
	assert.True(t, receipt.Change.IsZero())
}

func TestCheckoutInsufficientPaid(t *testing.T) {
	cart := NewCart()
	p := createTestProduct(t, "10", "100")
	require.NoError(t, cart.AddProduct(p, dec(t, "2")))

	_, _, err := cart.BeginCheckout(uuid.New(), nil, trade.PaymentCash, dec(t, "19"))
	assert.ErrorIs(t, err, shared.ErrInsufficientPaid)
	assert.Equal(t, StateCartActive, cart.State())
}

func TestCheckoutEmptyCart(t *testing.T) {
	cart := NewCart()
	_, _, err := cart.BeginCheckout(uuid.New(), nil, trade.PaymentCash, dec(t, "10"))
	assert.ErrorIs(t, err, shared.ErrEmptyCart)
}

func TestCheckoutSubmitGate(t *testing.T) {
	cart := NewCart()
	p := createTestProduct(t, "10", "100")
	require.NoError(t, cart.AddProduct(p, dec(t, "1")))

	_, _, err := cart.BeginCheckout(uuid.New(), nil, trade.PaymentCash, dec(t, "10"))
	require.NoError(t, err)

	// A second submit while one is in flight is refused
	_, _, err = cart.BeginCheckout(uuid.New(), nil, trade.PaymentCash, dec(t, "10"))
	assert.ErrorIs(t, err, shared.ErrSubmitInFlight)

	// ...and so are cart mutations
	assert.ErrorIs(t, cart.AddProduct(p, dec(t, "1")), shared.ErrSubmitInFlight)
	assert.ErrorIs(t, cart.AdjustQuantity(p.ID, nil, dec(t, "1")), shared.ErrSubmitInFlight)
	assert.ErrorIs(t, cart.SetDiscount(p.ID, nil, dec(t, "1")), shared.ErrSubmitInFlight)
}

func TestCheckoutCompleteAndFail(t *testing.T) {
	cart := NewCart()
	p := createTestProduct(t, "10", "100")
	require.NoError(t, cart.AddProduct(p, dec(t, "1")))

	_, receipt, err := cart.BeginCheckout(uuid.New(), nil, trade.PaymentCash, dec(t, "10"))
	require.NoError(t, err)

	cart.CompleteCheckout()
	assert.Equal(t, StateReceiptShown, cart.State())
	assert.True(t, cart.IsEmpty())
	// The receipt still reflects the submit-time snapshot
	require.Len(t, receipt.Lines, 1)

	// Failed submission keeps the cart for a retry
	cart.Reset()
	require.NoError(t, cart.AddProduct(p, dec(t, "1")))
	_, _, err = cart.BeginCheckout(uuid.New(), nil, trade.PaymentCash, dec(t, "10"))
	require.NoError(t, err)
	cart.FailCheckout()
	assert.Equal(t, StateCheckoutOpen, cart.State())
	assert.False(t, cart.IsEmpty())
}

func TestSetDiscountBounds(t *testing.T) {
	cart := NewCart()
	p := createTestProduct(t, "10", "100")
	require.NoError(t, cart.AddProduct(p, dec(t, "2")))

	assert.Error(t, cart.SetDiscount(p.ID, nil, dec(t, "-1")))
	assert.Error(t, cart.SetDiscount(p.ID, nil, dec(t, "21")))
	assert.NoError(t, cart.SetDiscount(p.ID, nil, dec(t, "20")))
}
