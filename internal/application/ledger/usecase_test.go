package ledger_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkurvas/almacen-api/internal/application/ledger"
	"github.com/dkurvas/almacen-api/internal/domain"
	"github.com/dkurvas/almacen-api/internal/domain/costing"
	"github.com/dkurvas/almacen-api/internal/domain/entity"
	"github.com/dkurvas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes transaccionales en memoria
//
// memStore simula la semántica de la base de datos que el ledger necesita:
// cada Run opera sobre una copia del estado y solo la publica en el commit,
// de modo que un error dentro del callback equivale a un ROLLBACK real (ningún
// efecto parcial visible). El mutex del store serializa las transacciones,
// igual que lo hace el lock de fila de Postgres para comandos sobre la misma
// variación; TryLock con deadline reproduce el lock_timeout → ErrBusy.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	variations map[string]*entity.ProductVariation
	products   map[string]*entity.Product
	movements  []*entity.Movement
	nextMovID  int64
}

func (s *memState) clone() *memState {
	cp := &memState{
		variations: make(map[string]*entity.ProductVariation, len(s.variations)),
		products:   make(map[string]*entity.Product, len(s.products)),
		movements:  append([]*entity.Movement(nil), s.movements...),
		nextMovID:  s.nextMovID,
	}
	for id, v := range s.variations {
		vv := *v
		cp.variations[id] = &vv
	}
	for id, p := range s.products {
		pp := *p
		cp.products[id] = &pp
	}
	return cp
}

type memStore struct {
	mu    sync.Mutex
	state *memState
}

func newMemStore() *memStore {
	return &memStore{state: &memState{
		variations: map[string]*entity.ProductVariation{},
		products:   map[string]*entity.Product{},
		nextMovID:  1,
	}}
}

type memTxRunner struct {
	store       *memStore
	lockTimeout time.Duration
}

func (r *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	varRepo repository.VariationRepository,
	productRepo repository.ProductRepository,
) error) error {
	timeout := r.lockTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	deadline := time.Now().Add(timeout)
	for !r.store.mu.TryLock() {
		if time.Now().After(deadline) {
			return domain.ErrBusy
		}
		time.Sleep(time.Millisecond)
	}
	defer r.store.mu.Unlock()

	tx := r.store.state.clone()
	if err := fn(&memMovementRepo{tx}, &memVariationRepo{tx}, &memProductRepo{tx}); err != nil {
		return err // rollback: la copia se descarta
	}
	r.store.state = tx // commit
	return nil
}

type memVariationRepo struct{ tx *memState }

func (r *memVariationRepo) Create(v *entity.ProductVariation) error {
	vv := *v
	r.tx.variations[v.ID] = &vv
	return nil
}

func (r *memVariationRepo) Get(id string) (*entity.ProductVariation, error) {
	v, ok := r.tx.variations[id]
	if !ok {
		return nil, nil
	}
	vv := *v
	return &vv, nil
}

func (r *memVariationRepo) GetForUpdate(id string) (*entity.ProductVariation, error) {
	return r.Get(id)
}

func (r *memVariationRepo) UpdateStock(id string, stock int64) error {
	v, ok := r.tx.variations[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Stock = stock
	return nil
}

func (r *memVariationRepo) ListByProduct(productID string) ([]*entity.ProductVariation, error) {
	var out []*entity.ProductVariation
	for _, v := range r.tx.variations {
		if v.ProductID == productID {
			vv := *v
			out = append(out, &vv)
		}
	}
	return out, nil
}

type memProductRepo struct{ tx *memState }

func (r *memProductRepo) Create(p *entity.Product) error {
	pp := *p
	r.tx.products[p.ID] = &pp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.tx.products[id]
	if !ok {
		return nil, nil
	}
	pp := *p
	return &pp, nil
}

func (r *memProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }

func (r *memProductRepo) List(string, bool) ([]*entity.Product, error) { return nil, nil }

func (r *memProductRepo) UpdateCostPrice(id string, cost decimal.Decimal) error {
	p, ok := r.tx.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.CostPrice = cost
	return nil
}

type memMovementRepo struct{ tx *memState }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	m.ID = r.tx.nextMovID
	r.tx.nextMovID++
	mm := *m
	r.tx.movements = append(r.tx.movements, &mm)
	return nil
}

func (r *memMovementRepo) ListByVariation(variationID string, _, _ *time.Time, _, _ int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.tx.movements {
		if m.VariationID == variationID {
			mm := *m
			out = append(out, &mm)
		}
	}
	return out, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

type fixture struct {
	store  *memStore
	runner *memTxRunner
	uc     *ledger.UseCase
}

func newFixture(policy costing.Policy) *fixture {
	store := newMemStore()
	runner := &memTxRunner{store: store}
	return &fixture{store: store, runner: runner, uc: ledger.NewUseCase(runner, policy)}
}

func (f *fixture) seedProduct(id string, cost string) {
	f.store.state.products[id] = &entity.Product{
		ID:        id,
		SKU:       "SKU-" + id,
		CostPrice: decimal.RequireFromString(cost),
	}
}

func (f *fixture) seedVariation(id, productID string, stock int64) {
	f.store.state.variations[id] = &entity.ProductVariation{
		ID:        id,
		ProductID: productID,
		Stock:     stock,
	}
}

func (f *fixture) stock(t *testing.T, variationID string) int64 {
	t.Helper()
	v, ok := f.store.state.variations[variationID]
	require.True(t, ok, "variación %s debe existir", variationID)
	return v.Stock
}

func (f *fixture) costPrice(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	p, ok := f.store.state.products[productID]
	require.True(t, ok)
	return p.CostPrice
}

// ledgerBalance recalcula Σ entradas − Σ salidas desde el log de movimientos.
func (f *fixture) ledgerBalance(variationID string) int64 {
	var total int64
	for _, m := range f.store.state.movements {
		if m.VariationID != variationID {
			continue
		}
		if m.IsArrival() {
			total += m.Quantity
		} else {
			total -= m.Quantity
		}
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de extremo a extremo
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_FlujoCompleto(t *testing.T) {
	f := newFixture(nil)
	f.seedProduct("p1", "0")
	f.seedVariation("v1", "p1", 0)
	ctx := context.Background()

	// Entrada de 20 unidades a 3.50
	mov, err := f.uc.ApplyArrival(ctx, ledger.ArrivalInput{
		VariationID: "v1", Quantity: 20,
		UnitCost: decimal.RequireFromString("3.50"),
		Supplier: "Textiles del Norte", Actor: "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MovementKindArrival, mov.Kind)
	assert.NotZero(t, mov.ID, "el movimiento debe recibir id del store")
	assert.EqualValues(t, 20, f.stock(t, "v1"))
	assert.True(t, f.costPrice(t, "p1").Equal(decimal.RequireFromString("3.50")),
		"último precio: el costo del producto debe ser el de la entrada")

	// Despacho de 15 unidades
	_, err = f.uc.ApplyDispatch(ctx, ledger.DispatchInput{
		VariationID: "v1", Quantity: 15, Destination: "Store A", Actor: "u1",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, f.stock(t, "v1"))
	assert.Len(t, f.store.state.movements, 2)

	// Despacho que excede el stock: rechazado, nada cambia
	_, err = f.uc.ApplyDispatch(ctx, ledger.DispatchInput{
		VariationID: "v1", Quantity: 10, Destination: "Store B", Actor: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 5, f.stock(t, "v1"), "el stock no debe cambiar tras un rechazo")
	assert.Len(t, f.store.state.movements, 2, "un comando rechazado no produce registro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyArrival_Validaciones(t *testing.T) {
	f := newFixture(nil)
	f.seedProduct("p1", "10")
	f.seedVariation("v1", "p1", 5)
	ctx := context.Background()

	_, err := f.uc.ApplyArrival(ctx, ledger.ArrivalInput{VariationID: "v1", Quantity: 0, UnitCost: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.ApplyArrival(ctx, ledger.ArrivalInput{VariationID: "v1", Quantity: -4, UnitCost: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.ApplyArrival(ctx, ledger.ArrivalInput{VariationID: "v1", Quantity: 1, UnitCost: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidCost)

	_, err = f.uc.ApplyArrival(ctx, ledger.ArrivalInput{VariationID: "nope", Quantity: 1, UnitCost: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Empty(t, f.store.state.movements, "ningún comando rechazado debe dejar registros")
	assert.EqualValues(t, 5, f.stock(t, "v1"))
}

func TestApplyDispatch_Validaciones(t *testing.T) {
	f := newFixture(nil)
	f.seedProduct("p1", "10")
	f.seedVariation("v1", "p1", 5)
	ctx := context.Background()

	_, err := f.uc.ApplyDispatch(ctx, ledger.DispatchInput{VariationID: "v1", Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.ApplyDispatch(ctx, ledger.DispatchInput{VariationID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de costeo
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyArrival_UltimoPrecio(t *testing.T) {
	f := newFixture(nil)
	f.seedProduct("p1", "10")
	f.seedVariation("v1", "p1", 100)

	_, err := f.uc.ApplyArrival(context.Background(), ledger.ArrivalInput{
		VariationID: "v1", Quantity: 1, UnitCost: decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.True(t, f.costPrice(t, "p1").Equal(decimal.NewFromInt(12)),
		"una unidad basta para mover el costo: la política no pondera cantidades")
}

func TestApplyArrival_PoliticaPromedioPonderado(t *testing.T) {
	f := newFixture(costing.WeightedAverage{})
	f.seedProduct("p1", "10")
	f.seedVariation("v1", "p1", 10)

	_, err := f.uc.ApplyArrival(context.Background(), ledger.ArrivalInput{
		VariationID: "v1", Quantity: 10, UnitCost: decimal.NewFromInt(20),
	})
	require.NoError(t, err)
	assert.True(t, f.costPrice(t, "p1").Equal(decimal.NewFromInt(15)),
		"(10×10 + 10×20)/20 = 15")
	assert.EqualValues(t, 20, f.stock(t, "v1"),
		"cambiar la política de costeo no altera el contrato de stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de conciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_InvarianteDeConciliacion(t *testing.T) {
	f := newFixture(nil)
	f.seedProduct("p1", "0")
	f.seedVariation("v1", "p1", 0)
	ctx := context.Background()
	cost := decimal.NewFromInt(2)

	steps := []struct {
		kind string
		qty  int64
	}{
		{entity.MovementKindArrival, 30},
		{entity.MovementKindDispatch, 12},
		{entity.MovementKindArrival, 5},
		{entity.MovementKindDispatch, 23},
		{entity.MovementKindArrival, 7},
	}
	for i, s := range steps {
		var err error
		if s.kind == entity.MovementKindArrival {
			_, err = f.uc.ApplyArrival(ctx, ledger.ArrivalInput{VariationID: "v1", Quantity: s.qty, UnitCost: cost})
		} else {
			_, err = f.uc.ApplyDispatch(ctx, ledger.DispatchInput{VariationID: "v1", Quantity: s.qty})
		}
		require.NoError(t, err, "paso %d", i)

		// En cada punto de la secuencia: stock == Σ entradas − Σ salidas
		assert.Equal(t, f.ledgerBalance("v1"), f.stock(t, "v1"),
			"paso %d: el contador y el log divergieron", i)
	}
	assert.EqualValues(t, 7, f.stock(t, "v1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lotes todo-o-nada
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyBatch_TodoONada(t *testing.T) {
	f := newFixture(nil)
	f.seedProduct("p1", "10")
	f.seedVariation("v1", "p1", 50)
	f.seedVariation("v2", "p1", 3)

	// La primera línea sería válida por sí sola; la segunda excede el stock.
	_, err := f.uc.ApplyBatch(context.Background(), "u1", []ledger.BatchLine{
		{Kind: entity.MovementKindDispatch, VariationID: "v1", Quantity: 10, Destination: "Obra 4"},
		{Kind: entity.MovementKindDispatch, VariationID: "v2", Quantity: 5, Destination: "Obra 4"},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.EqualValues(t, 50, f.stock(t, "v1"), "ningún efecto de la línea válida debe quedar visible")
	assert.EqualValues(t, 3, f.stock(t, "v2"))
	assert.Empty(t, f.store.state.movements)
}

func TestApplyBatch_ValidaContraEfectosDeLineasPrevias(t *testing.T) {
	f := newFixture(nil)
	f.seedProduct("p1", "0")
	f.seedVariation("v1", "p1", 0)
	ctx := context.Background()

	// La salida de 10 es válida solo gracias a la entrada previa del mismo lote.
	movs, err := f.uc.ApplyBatch(ctx, "u1", []ledger.BatchLine{
		{Kind: entity.MovementKindArrival, VariationID: "v1", Quantity: 10, UnitCost: decimal.NewFromInt(4), Supplier: "Prov"},
		{Kind: entity.MovementKindDispatch, VariationID: "v1", Quantity: 10, Destination: "Bodega 2"},
	})
	require.NoError(t, err)
	assert.Len(t, movs, 2)
	assert.EqualValues(t, 0, f.stock(t, "v1"))
	assert.Equal(t, f.ledgerBalance("v1"), f.stock(t, "v1"))

	// Con una unidad más la salida excede el efecto acumulado y todo se revierte.
	_, err = f.uc.ApplyBatch(ctx, "u1", []ledger.BatchLine{
		{Kind: entity.MovementKindArrival, VariationID: "v1", Quantity: 10, UnitCost: decimal.NewFromInt(4)},
		{Kind: entity.MovementKindDispatch, VariationID: "v1", Quantity: 11},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 0, f.stock(t, "v1"))
	assert.Len(t, f.store.state.movements, 2, "el lote fallido no debe aportar registros")
}

func TestApplyBatch_Validaciones(t *testing.T) {
	f := newFixture(nil)
	f.seedProduct("p1", "0")
	f.seedVariation("v1", "p1", 10)
	ctx := context.Background()

	_, err := f.uc.ApplyBatch(ctx, "u1", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)

	_, err = f.uc.ApplyBatch(ctx, "u1", []ledger.BatchLine{
		{Kind: "TRANSFER", VariationID: "v1", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.ApplyBatch(ctx, "u1", []ledger.BatchLine{
		{Kind: entity.MovementKindDispatch, VariationID: "v1", Quantity: 0},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.uc.ApplyBatch(ctx, "u1", []ledger.BatchLine{
		{Kind: entity.MovementKindArrival, VariationID: "v1", Quantity: 1, UnitCost: decimal.NewFromInt(-2)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCost)

	assert.EqualValues(t, 10, f.stock(t, "v1"))
	assert.Empty(t, f.store.state.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos despachos concurrentes piden exactamente todo el stock disponible de la
// misma variación: a lo sumo uno gana, el otro debe recibir ErrInsufficientStock
// y el stock final es 0, nunca negativo.
func TestDespachosConcurrentes_CarreraPorTodoElStock(t *testing.T) {
	f := newFixture(nil)
	f.seedProduct("p1", "5")
	f.seedVariation("v1", "p1", 8)
	ctx := context.Background()

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.ApplyDispatch(ctx, ledger.DispatchInput{
				VariationID: "v1", Quantity: 8, Destination: "Carrera", Actor: "u1",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var oks, insufficient int
	for err := range results {
		switch {
		case err == nil:
			oks++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, oks, "exactamente un despacho debe ganar la carrera")
	assert.Equal(t, 1, insufficient)
	assert.EqualValues(t, 0, f.stock(t, "v1"), "el stock final debe ser 0, nunca negativo")
	assert.Equal(t, f.ledgerBalance("v1")+8, f.stock(t, "v1"),
		"stock final = saldo inicial + saldo del log (la semilla no pasa por el libro)")
}

// Muchas operaciones concurrentes mezcladas jamás llevan el contador bajo cero
// y dejan el log conciliado con el contador.
func TestConcurrencia_NoNegatividadYConciliacion(t *testing.T) {
	f := newFixture(nil)
	f.seedProduct("p1", "1")
	f.seedVariation("v1", "p1", 20)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		arrival := i%4 == 0
		go func() {
			defer wg.Done()
			if arrival {
				_, _ = f.uc.ApplyArrival(ctx, ledger.ArrivalInput{
					VariationID: "v1", Quantity: 3, UnitCost: decimal.NewFromInt(1),
				})
				return
			}
			_, _ = f.uc.ApplyDispatch(ctx, ledger.DispatchInput{VariationID: "v1", Quantity: 2})
		}()
	}
	wg.Wait()

	final := f.stock(t, "v1")
	assert.GreaterOrEqual(t, final, int64(0))
	assert.Equal(t, f.ledgerBalance("v1")+20, final,
		"stock final = saldo inicial + Σ entradas − Σ salidas aceptadas")
}

// Si el lock no se consigue dentro del timeout el comando falla con ErrBusy
// (reintentable completo), nunca se queda esperando indefinidamente.
func TestComandoContencion_DevuelveBusy(t *testing.T) {
	f := newFixture(nil)
	f.runner.lockTimeout = 20 * time.Millisecond
	f.seedProduct("p1", "1")
	f.seedVariation("v1", "p1", 10)

	// Otra "transacción" mantiene el lock más allá del timeout del comando
	f.store.mu.Lock()
	done := make(chan error, 1)
	go func() {
		_, err := f.uc.ApplyDispatch(context.Background(), ledger.DispatchInput{
			VariationID: "v1", Quantity: 1,
		})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrBusy)
	case <-time.After(2 * time.Second):
		t.Fatal("el comando quedó bloqueado en vez de fallar con ErrBusy")
	}
	f.store.mu.Unlock()

	assert.EqualValues(t, 10, f.stock(t, "v1"), "un comando rechazado por contención no deja efectos")
}
