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

// RenderReceipt produces the payment receipt card: the thank-you message
// followed by the total, amount paid, and remaining balance.
func (r *MarotoRenderer) RenderReceipt(ctx context.Context, invoice *domain.Invoice, thankYouMessage string) ([]byte, error) {
	cfg := config.NewBuilder().Build()

	m := maroto.New(cfg)

	// Card header
	m.AddRow(25,
		col.New(12).Add(
			text.New("Thank You!", props.Text{
				Size:  22,
				Style: fontstyle.Bold,
				Align: align.Center,
			}),
			text.New(invoice.ShopName, props.Text{Size: 11, Top: 13, Align: align.Center}),
		),
	)

	// Generated message
	m.AddRow(25,
		text.NewCol(12, fmt.Sprintf("%q", thankYouMessage), props.Text{
			Size:  11,
			Style: fontstyle.Italic,
			Align: align.Center,
			Top:   5,
		}),
	)

	// Payment summary
	m.AddRow(10,
		text.NewCol(8, "Total Invoice:", props.Text{Size: 10}),
		text.NewCol(4, money(invoice.Total), props.Text{Size: 10, Align: align.Right}),
	)
	m.AddRow(10,
		text.NewCol(8, "Amount Paid:", props.Text{Size: 10, Style: fontstyle.Bold}),
		text.NewCol(4, money(invoice.PaidAmount), props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(10,
		text.NewCol(8, "Balance Due:", props.Text{Size: 10}),
		text.NewCol(4, money(invoice.AmountDue()), props.Text{Size: 10, Align: align.Right}),
	)

	// Footer
	m.AddRow(15,
		text.NewCol(12, "Receipt for Invoice #"+shortID(invoice.ID), props.Text{
			Size:  8,
			Align: align.Center,
			Top:   7,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt PDF: %w", err)
	}

	return doc.GetBytes(), nil
}
