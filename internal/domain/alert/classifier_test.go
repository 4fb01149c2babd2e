package alert_test

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dkurvas/almacen-api/internal/domain/alert"
)

func TestClassify(t *testing.T) {
	min := decimal.NewFromInt(10)

	tests := []struct {
		name  string
		stock int64
		want  alert.Status
	}{
		{"stock cero", 0, alert.StatusOutOfStock},
		{"stock negativo defensivo", -3, alert.StatusOutOfStock},
		{"bajo el mínimo", 5, alert.StatusCritical},
		{"exactamente el mínimo", 10, alert.StatusCritical},
		{"dentro del margen del 20%", 11, alert.StatusLow},
		{"borde del margen: 12 <= 10*1.2", 12, alert.StatusLow},
		{"por encima del margen", 13, alert.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, alert.Classify(tt.stock, min))
		})
	}
}

func TestClassify_MinimoCero(t *testing.T) {
	// Con mínimo 0 cualquier stock positivo queda OK (0*1.2 = 0)
	assert.Equal(t, alert.StatusOK, alert.Classify(1, decimal.Zero))
	assert.Equal(t, alert.StatusOutOfStock, alert.Classify(0, decimal.Zero))
}

func TestRank_OrdenDePrioridad(t *testing.T) {
	statuses := []alert.Status{alert.StatusOK, alert.StatusLow, alert.StatusOutOfStock, alert.StatusCritical}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Rank() < statuses[j].Rank() })

	assert.Equal(t, []alert.Status{
		alert.StatusOutOfStock, alert.StatusCritical, alert.StatusLow, alert.StatusOK,
	}, statuses)
}
