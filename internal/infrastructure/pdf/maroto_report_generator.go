// Package pdf implementa la generación del reporte de valoración de
// inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Stock | Costo | Venta | V.Costo ... │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Inversión total / Valor de venta / Utilidad        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/dkurvas/almacen-api/internal/application/reports"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa reports.ValuationPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateValuationPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateValuationPDF(_ context.Context, report *reports.ValuationReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Valoración de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(report.Rows) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow(report *reports.ValuationReport) core.Row {
	fecha := report.GeneratedAt.Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New("VALORACIÓN DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Stock valorado a costo y a precio de venta", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Stock", 1, align.Right),
		h("Costo", 1, align.Right),
		h("Venta", 1, align.Right),
		h("Valor costo", 2, align.Right),
		h("Valor venta", 2, align.Right),
	)
}

// tableDetailRows: una fila por producto.
func tableDetailRows(rows []repository.ValuationRowResult) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		cell := func(s string, size int, a align.Type) core.Col {
			return col.New(size).Add(text.New(s, props.Text{
				Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
			}))
		}
		result = append(result, row.New(7).Add(
			cell(r.SKU, 2, align.Left),
			cell(r.Name, 3, align.Left),
			cell(fmt.Sprintf("%d", r.TotalStock), 1, align.Right),
			cell(r.CostPrice.StringFixed(2), 1, align.Right),
			cell(r.SalePrice.StringFixed(2), 1, align.Right),
			cell(r.CostValue.StringFixed(2), 2, align.Right),
			cell(r.SaleValue.StringFixed(2), 2, align.Right),
		))
	}
	return result
}

// totalsRow: inversión total, valor de venta y utilidad proyectada.
func totalsRow(report *reports.ValuationReport) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	profit := report.TotalSale.Sub(report.TotalCost)
	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Inversión total:"),
			label("Valor de venta:"),
			grandLabel("UTILIDAD PROYECTADA:"),
		),
		col.New(4).Add(
			value("$"+report.TotalCost.StringFixed(2)),
			value("$"+report.TotalSale.StringFixed(2)),
			grandValue("$"+profit.StringFixed(2)),
		),
	)
}
