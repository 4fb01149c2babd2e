package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto maestro del catálogo.
// No tiene campo de stock propio: el stock vive únicamente en sus variaciones
// y todo total se deriva en lectura (nunca se persiste por separado).
//
// CostPrice refleja el costo de la entrada más reciente de cualquiera de sus
// variaciones (política "último precio", ver costing.LastPrice). No es un
// promedio ponderado: quien necesite costo histórico exacto no debe asumirlo.
type Product struct {
	ID             string
	SKU            string // código interno único
	Name           string
	Description    string
	Barcode        string
	CategoryID     string // vacío si no tiene categoría
	UnitMeasure    string
	CostPrice      decimal.Decimal // 4 decimales, último precio de entrada
	SalePrice      decimal.Decimal // 4 decimales, valor de referencia
	MinStockLevel  decimal.Decimal // umbral de alerta
	IsCritical     bool            // participa en el feed operativo de alertas
	DailyUsageRate decimal.Decimal // unidades/día, >= 0
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
