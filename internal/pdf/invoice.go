package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/ozonegraphics/invoice-service/internal/domain"
)

// RenderInvoice produces the full invoice document: shop header, client and
// date details, the items table, the totals block, and payment information.
func (r *MarotoRenderer) RenderInvoice(ctx context.Context, invoice *domain.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	// Header
	m.AddRow(20,
		col.New(7).Add(
			text.New(invoice.ShopName, props.Text{
				Size:  20,
				Style: fontstyle.Bold,
			}),
			text.New("Invoice / Bill", props.Text{Size: 9, Top: 11}),
		),
		col.New(5).Add(
			text.New("INVOICE", props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
			text.New("# "+shortID(invoice.ID), props.Text{
				Size:  9,
				Top:   9,
				Align: align.Right,
			}),
		),
	)

	// Client and dates
	m.AddRow(25,
		col.New(6).Add(
			text.New("BILLED TO", props.Text{Size: 8, Style: fontstyle.Bold}),
			text.New(invoice.ClientName, props.Text{Size: 12, Style: fontstyle.Bold, Top: 5}),
		),
		col.New(6).Add(
			text.New("DETAILS", props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}),
			text.New("Date of Issue: "+invoice.IssueDate, props.Text{Size: 9, Top: 5, Align: align.Right}),
			text.New("Due Date: "+invoice.DueDate, props.Text{Size: 9, Top: 10, Align: align.Right}),
		),
	)

	// Items table header
	m.AddRow(10,
		text.NewCol(6, "Service", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	// Items
	for _, item := range invoice.Items {
		m.AddRow(10,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%g", item.Quantity), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.Price), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(item.Quantity*item.Price), props.Text{Size: 9, Align: align.Right}),
		)
	}

	// Totals
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, money(invoice.Subtotal), props.Text{Size: 9, Align: align.Right}),
	)
	if invoice.Discount > 0 {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Discount", props.Text{Size: 9}),
			text.NewCol(2, "-"+money(invoice.Discount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, money(invoice.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Amount Paid", props.Text{Size: 9}),
		text.NewCol(2, money(invoice.PaidAmount), props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Amount Due", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, money(invoice.AmountDue()), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	// Payment footer
	m.AddRow(25,
		col.New(12).Add(
			text.New("Payment Information", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Center, Top: 5}),
			text.New("GPay: "+invoice.GPayNumber, props.Text{Size: 9, Align: align.Center, Top: 10}),
			text.New("Thank you for your business!", props.Text{Size: 9, Align: align.Center, Top: 16}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice PDF: %w", err)
	}

	return doc.GetBytes(), nil
}
