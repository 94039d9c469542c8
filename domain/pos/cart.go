package pos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/console/domain/catalog"
	"github.com/erp/console/domain/shared"
	"github.com/erp/console/domain/trade"
)

// State is the checkout flow state of a cart
type State string

const (
	StateBrowsing     State = "BROWSING"
	StateCartActive   State = "CART_ACTIVE"
	StateCheckoutOpen State = "CHECKOUT_OPEN"
	StateSubmitting   State = "SUBMITTING"
	StateReceiptShown State = "RECEIPT_SHOWN"
)

// Line is one cart line. Stock is the last known snapshot for the product;
// it is refreshed only when the product list reloads, never per keystroke.
type Line struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  decimal.Decimal
	Discount  decimal.Decimal
	Stock     decimal.Decimal
}

// Amount returns price times quantity for the line, before discount
func (l Line) Amount() decimal.Decimal {
	return l.Price.Mul(l.Quantity)
}

// Totals is the cart-level money summary
type Totals struct {
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	Total         decimal.Decimal
}

// Cart is the in-memory POS cart. It lives for the current screen only and
// is reset when the operator navigates away.
type Cart struct {
	state State
	lines []Line
}

// NewCart returns an empty cart in the browsing state
func NewCart() *Cart {
	return &Cart{state: StateBrowsing}
}

// State returns the current checkout flow state
func (c *Cart) State() State {
	return c.state
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Reset clears all lines and returns to the browsing state
func (c *Cart) Reset() {
	c.lines = nil
	c.state = StateBrowsing
}

func (c *Cart) findLine(productID uuid.UUID, variantID *uuid.UUID) *Line {
	for i := range c.lines {
		l := &c.lines[i]
		if l.ProductID != productID {
			continue
		}
		if (l.VariantID == nil) != (variantID == nil) {
			continue
		}
		if l.VariantID != nil && *l.VariantID != *variantID {
			continue
		}
		return l
	}
	return nil
}

// AddProduct adds qty of the product to the cart, merging with an existing
// line. The add is rejected when the combined quantity would exceed the
// product's stock snapshot; the cart is left unchanged in that case.
func (c *Cart) AddProduct(p *catalog.Product, qty decimal.Decimal) error {
	if c.state == StateSubmitting {
		return shared.ErrSubmitInFlight
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	line := c.findLine(p.ID, nil)
	requested := qty
	if line != nil {
		requested = line.Quantity.Add(qty)
	}
	if requested.GreaterThan(p.Stock) {
		return shared.ErrInsufficientStock
	}

	if line != nil {
		line.Quantity = requested
	} else {
		c.lines = append(c.lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
			Stock:     p.Stock,
		})
	}
	c.state = StateCartActive
	return nil
}

// AddVariant adds qty of a product variant as its own line
func (c *Cart) AddVariant(p *catalog.Product, v *catalog.ProductVariant, qty decimal.Decimal) error {
	if c.state == StateSubmitting {
		return shared.ErrSubmitInFlight
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	variantID := v.ID
	line := c.findLine(p.ID, &variantID)
	requested := qty
	if line != nil {
		requested = line.Quantity.Add(qty)
	}
	if requested.GreaterThan(p.Stock) {
		return shared.ErrInsufficientStock
	}

	if line != nil {
		line.Quantity = requested
	} else {
		c.lines = append(c.lines, Line{
			ProductID: p.ID,
			VariantID: &variantID,
			Name:      p.Name + " " + v.Name,
			Price:     v.Price,
			Quantity:  qty,
			Stock:     p.Stock,
		})
	}
	c.state = StateCartActive
	return nil
}

// AdjustQuantity applies a quantity delta to a line. The result clamps at
// zero (the line is removed) and at the stock ceiling (the line is left
// unchanged and ErrInsufficientStock is returned so the caller can warn).
func (c *Cart) AdjustQuantity(productID uuid.UUID, variantID *uuid.UUID, delta decimal.Decimal) error {
	if c.state == StateSubmitting {
		return shared.ErrSubmitInFlight
	}

	line := c.findLine(productID, variantID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Product is not in the cart")
	}

	next := line.Quantity.Add(delta)
	if next.GreaterThan(line.Stock) {
		return shared.ErrInsufficientStock
	}
	if next.LessThanOrEqual(decimal.Zero) {
		c.removeLine(productID, variantID)
		return nil
	}

	line.Quantity = next
	return nil
}

// SetDiscount sets the absolute discount amount for a line
func (c *Cart) SetDiscount(productID uuid.UUID, variantID *uuid.UUID, discount decimal.Decimal) error {
	if c.state == StateSubmitting {
		return shared.ErrSubmitInFlight
	}
	line := c.findLine(productID, variantID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Product is not in the cart")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(line.Amount()) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the line amount")
	}
	line.Discount = discount
	return nil
}

func (c *Cart) removeLine(productID uuid.UUID, variantID *uuid.UUID) {
	kept := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		if l.ProductID == productID &&
			(l.VariantID == nil) == (variantID == nil) &&
			(l.VariantID == nil || *l.VariantID == *variantID) {
			continue
		}
		kept = append(kept, l)
	}
	c.lines = kept
	if len(c.lines) == 0 {
		c.state = StateBrowsing
	}
}

// Totals computes subtotal, discount total and total for the cart.
// subtotal = sum(price*qty); total = subtotal - sum(line discounts).
// Tax and shipping are not composed at this layer.
func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	discount := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.Amount())
		discount = discount.Add(l.Discount)
	}
	return Totals{
		Subtotal:      subtotal,
		DiscountTotal: discount,
		Total:         subtotal.Sub(discount),
	}
}

// OpenCheckout moves the cart into the checkout state
func (c *Cart) OpenCheckout() error {
	if c.IsEmpty() {
		return shared.ErrEmptyCart
	}
	if c.state == StateSubmitting {
		return shared.ErrSubmitInFlight
	}
	c.state = StateCheckoutOpen
	return nil
}

// CloseCheckout returns from checkout to the active cart without submitting
func (c *Cart) CloseCheckout() {
	if c.state == StateCheckoutOpen {
		c.state = StateCartActive
	}
}

// CheckoutRequest is the payload of the single checkout POST
type CheckoutRequest struct {
	SessionID  uuid.UUID           `json:"session_id"`
	ClientID   *uuid.UUID          `json:"client_id,omitempty"`
	Method     trade.PaymentMethod `json:"payment_method"`
	AmountPaid decimal.Decimal     `json:"amount_paid"`
	Items      []CheckoutItem      `json:"items"`
}

// CheckoutItem is one line of the checkout payload
type CheckoutItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// Receipt is the snapshot shown after a successful checkout. It reflects
// the cart at submit time, not the server's post-commit sale record.
type Receipt struct {
	Lines      []Line
	Totals     Totals
	Method     trade.PaymentMethod
	AmountPaid decimal.Decimal
	Change     decimal.Decimal
	SaleID     uuid.UUID
	SaleNumber string
}

// BeginCheckout validates payment and produces the request payload plus the
// receipt snapshot, moving the cart to the submitting state. For CREDIT the
// paid-amount check is skipped and the outgoing amount is forced to zero;
// the server books the full total against the client's account.
func (c *Cart) BeginCheckout(sessionID uuid.UUID, clientID *uuid.UUID, method trade.PaymentMethod, amountPaid decimal.Decimal) (*CheckoutRequest, *Receipt, error) {
	if c.IsEmpty() {
		return nil, nil, shared.ErrEmptyCart
	}
	if c.state == StateSubmitting {
		return nil, nil, shared.ErrSubmitInFlight
	}
	if !method.IsValid() {
		return nil, nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unknown payment method")
	}

	totals := c.Totals()
	change := decimal.Zero

	if method == trade.PaymentCredit {
		amountPaid = decimal.Zero
	} else {
		if amountPaid.LessThan(totals.Total) {
			return nil, nil, shared.ErrInsufficientPaid
		}
		change = amountPaid.Sub(totals.Total)
	}

	items := make([]CheckoutItem, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, CheckoutItem{
			ProductID: l.ProductID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			Discount:  l.Discount,
		})
	}

	req := &CheckoutRequest{
		SessionID:  sessionID,
		ClientID:   clientID,
		Method:     method,
		AmountPaid: amountPaid,
		Items:      items,
	}
	receipt := &Receipt{
		Lines:      c.Lines(),
		Totals:     totals,
		Method:     method,
		AmountPaid: amountPaid,
		Change:     change,
	}

	c.state = StateSubmitting
	return req, receipt, nil
}

// CompleteCheckout records a successful submission: the receipt is shown
// and the cart is emptied so the next sale starts clean. The caller is
// expected to reload the product list to refresh stock snapshots.
func (c *Cart) CompleteCheckout() {
	c.lines = nil
	c.state = StateReceiptShown
}

// FailCheckout returns the cart to the checkout screen after a failed
// submission, keeping all lines so the operator can retry.
func (c *Cart) FailCheckout() {
	if c.state == StateSubmitting {
		c.state = StateCheckoutOpen
	}
}
