// Comando de diagnóstico: recomputa el stock de cada variación desde su log
// de movimientos y lo compara con el contador almacenado. Sale con código 1
// si encuentra discrepancias, pensado para correr como cron o chequeo manual.
package main

import (
	"context"
	"os"
	"time"

	appanalytics "github.com/dkurvas/almacen-api/internal/application/analytics"
	"github.com/dkurvas/almacen-api/internal/infrastructure/postgres"
	"github.com/dkurvas/almacen-api/pkg/config"
	"github.com/dkurvas/almacen-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	}).Component("reconcile")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	reportUC := appanalytics.NewReportUseCase(postgres.NewDashboardRepository(pool))
	report, err := reportUC.Reconcile(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("conciliación")
	}

	if report.Consistent {
		log.Info().Msg("conciliación OK: todos los contadores coinciden con su historial")
		return
	}

	for _, d := range report.Discrepancies {
		log.Error().
			Str("variation_id", d.VariationID).
			Str("sku_variant", d.SKUVariant).
			Int64("stored_stock", d.StoredStock).
			Int64("computed_stock", d.ComputedStock).
			Int64("difference", d.Difference).
			Msg("discrepancia contador vs historial")
	}
	log.Error().Int("discrepancias", len(report.Discrepancies)).Msg("conciliación FALLÓ")
	os.Exit(1)
}
