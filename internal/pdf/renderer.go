// Package pdf renders a composed invoice into the printable GST tax
// invoice. The tax columns adapt to the place of supply: intra-state
// invoices show CGST and SGST, inter-state invoices show IGST.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"lekha/internal/domain"
	"lekha/internal/email"
	"lekha/internal/port"
)

const dateLayout = "02-01-2006"

var (
	colorPrimary = &props.Color{Red: 26, Green: 35, Blue: 126}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

type renderer struct{}

// NewRenderer creates the maroto-backed invoice renderer.
func NewRenderer() port.DocumentRenderer {
	return &renderer{}
}

func (r *renderer) Render(_ context.Context, inv *domain.Invoice) (*port.RenderedDocument, error) {
	cfg := marotoconfig.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Invoice %s", inv.Number), true).
		WithAuthor(inv.Seller.Name, true).
		Build()

	m := maroto.New(cfg)
	interState := isInterState(inv)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partyRows(inv)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(interState))
	for _, item := range inv.Items {
		m.AddRows(itemRow(item, interState))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(inv, interState)...)
	m.AddRows(wordsRow(inv))
	m.AddRows(line.NewRow(2))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generating document: %w", err)
	}

	return &port.RenderedDocument{
		FileName:    email.AttachmentName(inv.Number, inv.Buyer.Name),
		ContentType: "application/pdf",
		Content:     doc.GetBytes(),
	}, nil
}

func isInterState(inv *domain.Invoice) bool {
	return inv.Totals.IGST.GreaterThan(decimal.Zero)
}

func headerRow(inv *domain.Invoice) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1,
			}),
			text.New(inv.Seller.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 5,
			}),
			text.New("GSTIN: "+inv.Seller.GSTIN, props.Text{
				Size: 8, Top: 13, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Invoice #"+inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Date: "+inv.Date.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Due: "+inv.DueDate.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func partyRows(inv *domain.Invoice) []core.Row {
	return []core.Row{
		row.New(12).Add(
			col.New(12).Add(
				text.New("FROM", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(fmt.Sprintf("%s   |   %s   |   State: %s",
					inv.Seller.Address, inv.Seller.Email, inv.Seller.State,
				), props.Text{Size: 8, Top: 7, Color: colorGray}),
			),
		),
		row.New(16).Add(
			col.New(12).Add(
				text.New("BILL TO", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
				}),
				text.New(inv.Buyer.Name, props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 6,
				}),
				text.New(fmt.Sprintf("GSTIN: %s   |   %s   |   State: %s",
					nonEmpty(inv.Buyer.GSTIN, "Unregistered"), inv.Buyer.Address, inv.Buyer.State,
				), props.Text{Size: 8, Top: 12, Color: colorGray}),
			),
		),
	}
}

func tableHeaderRow(interState bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}

	if interState {
		return row.New(8).Add(
			h("#", 1, align.Center),
			h("Item", 4, align.Left),
			h("HSN", 1, align.Center),
			h("Qty", 1, align.Right),
			h("Rate", 1, align.Right),
			h("Taxable", 2, align.Right),
			h("IGST", 1, align.Right),
			h("Total", 1, align.Right),
		)
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Item", 3, align.Left),
		h("HSN", 1, align.Center),
		h("Qty", 1, align.Right),
		h("Rate", 1, align.Right),
		h("Taxable", 2, align.Right),
		h("CGST", 1, align.Right),
		h("SGST", 1, align.Right),
		h("Total", 1, align.Right),
	)
}

func itemRow(item domain.LineItem, interState bool) core.Row {
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}

	name := item.Name
	if item.Description != "" {
		name = fmt.Sprintf("%s (%s)", item.Name, item.Description)
	}

	if interState {
		return row.New(7).Add(
			cell(fmt.Sprintf("%d", item.Serial), 1, align.Center),
			cell(name, 4, align.Left),
			cell(item.HSNCode, 1, align.Center),
			cell(item.Quantity.String(), 1, align.Right),
			cell(domain.FormatINR(item.Rate), 1, align.Right),
			cell(domain.FormatINR(item.Taxable), 2, align.Right),
			cell(domain.FormatINR(item.IGST), 1, align.Right),
			cell(domain.FormatINR(item.LineTotal), 1, align.Right),
		)
	}
	return row.New(7).Add(
		cell(fmt.Sprintf("%d", item.Serial), 1, align.Center),
		cell(name, 3, align.Left),
		cell(item.HSNCode, 1, align.Center),
		cell(item.Quantity.String(), 1, align.Right),
		cell(domain.FormatINR(item.Rate), 1, align.Right),
		cell(domain.FormatINR(item.Taxable), 2, align.Right),
		cell(domain.FormatINR(item.CGST), 1, align.Right),
		cell(domain.FormatINR(item.SGST), 1, align.Right),
		cell(domain.FormatINR(item.LineTotal), 1, align.Right),
	)
}

func totalsRows(inv *domain.Invoice, interState bool) []core.Row {
	pair := func(label, value string) core.Row {
		return row.New(6).Add(
			col.New(7),
			col.New(3).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
			})),
			col.New(2).Add(text.New(value, props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 1,
			})),
		)
	}

	rows := []core.Row{
		pair("Taxable Value:", domain.FormatINR(inv.Totals.Taxable)),
	}
	if interState {
		rows = append(rows, pair("IGST:", domain.FormatINR(inv.Totals.IGST)))
	} else {
		rows = append(rows,
			pair("CGST:", domain.FormatINR(inv.Totals.CGST)),
			pair("SGST:", domain.FormatINR(inv.Totals.SGST)),
		)
	}

	rows = append(rows, row.New(8).Add(
		col.New(7),
		col.New(3).Add(text.New("GRAND TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(2).Add(text.New("Rs. "+domain.FormatINR(inv.Totals.GrandTotal), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	))
	return rows
}

func wordsRow(inv *domain.Invoice) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New("Amount in words:", props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 2,
			}),
			text.New(inv.Totals.AmountInWords, props.Text{
				Size: 8, Top: 6, Color: colorGray,
			}),
		),
	)
}

func footerRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(
				"This is a computer-generated invoice and does not require a signature.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2, Align: align.Center},
			),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
