// Package receipt renders the post-checkout sale ticket as a PDF from
// the cart snapshot taken at submit time. The server's sale record is
// the fiscal source of truth; this ticket is the operator's printable
// copy.
package receipt

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/erp/console/domain/identity"
	"github.com/erp/console/domain/pos"
	"github.com/erp/console/domain/trade"
)

var (
	colorInk  = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorGray = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// Renderer builds sale tickets for one company
type Renderer struct {
	company *identity.Company
}

func NewRenderer(company *identity.Company) *Renderer {
	return &Renderer{company: company}
}

// Render produces the PDF bytes for a completed checkout
func (r *Renderer) Render(rcpt *pos.Receipt, issuedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "courier", Size: 9}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(r.headerRows(rcpt, issuedAt)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(lineHeaderRow())
	for _, lr := range lineRows(rcpt.Lines, r.symbol()) {
		m.AddRows(lr)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(r.totalsRows(rcpt)...)
	m.AddRows(line.NewRow(2))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *Renderer) symbol() string {
	if r.company != nil && r.company.CurrencySymbol != "" {
		return r.company.CurrencySymbol
	}
	return "$"
}

func (r *Renderer) headerRows(rcpt *pos.Receipt, issuedAt time.Time) []core.Row {
	name := "Sale Receipt"
	if r.company != nil {
		name = r.company.Name
	}
	return []core.Row{
		row.New(10).Add(col.New(12).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Center,
				Color: colorInk, Top: 1,
			}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New("Sale "+rcpt.SaleNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 1,
			}),
			text.New(issuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Center, Top: 6, Color: colorGray,
			}),
		)),
	}
}

func lineHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(7).Add(
		h("Qty", 2, align.Center),
		h("Item", 5, align.Left),
		h("Price", 2, align.Right),
		h("Amount", 3, align.Right),
	)
}

func lineRows(lines []pos.Line, symbol string) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		amount := l.Amount().Sub(l.Discount)
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(
				l.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1},
			)),
			col.New(2).Add(text.New(
				symbol+l.Price.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
			col.New(3).Add(text.New(
				symbol+amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1},
			)),
		))
	}
	return result
}

func (r *Renderer) totalsRows(rcpt *pos.Receipt) []core.Row {
	symbol := r.symbol()
	pair := func(label, value string, grand bool) core.Row {
		size := 9.0
		style := fontstyle.Normal
		if grand {
			size = 11
			style = fontstyle.Bold
		}
		return row.New(6).Add(
			col.New(7).Add(text.New(label, props.Text{
				Style: style, Size: size, Align: align.Right, Right: 2, Top: 0.5,
			})),
			col.New(5).Add(text.New(value, props.Text{
				Style: style, Size: size, Align: align.Right, Top: 0.5,
			})),
		)
	}

	rows := []core.Row{
		pair("Subtotal:", symbol+rcpt.Totals.Subtotal.StringFixed(2), false),
	}
	if rcpt.Totals.DiscountTotal.IsPositive() {
		rows = append(rows, pair("Discount:", "-"+symbol+rcpt.Totals.DiscountTotal.StringFixed(2), false))
	}
	rows = append(rows, pair("TOTAL:", symbol+rcpt.Totals.Total.StringFixed(2), true))

	if rcpt.Method == trade.PaymentCredit {
		rows = append(rows, pair("On account:", symbol+rcpt.Totals.Total.StringFixed(2), false))
	} else {
		rows = append(rows,
			pair("Paid ("+string(rcpt.Method)+"):", symbol+rcpt.AmountPaid.StringFixed(2), false),
			pair("Change:", symbol+rcpt.Change.StringFixed(2), false),
		)
	}
	return rows
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Thank you for your purchase", props.Text{
			Size: 8, Align: align.Center, Color: colorGray, Top: 2,
		}),
	))
}
