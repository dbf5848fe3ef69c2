package orders

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func TestReserveAllOrNothing(t *testing.T) {
	// Deux produits en stock, un troisième insuffisant : aucun décrément ne
	// doit survivre à l'échec.
	inStock1 := newTestProduct("Clavier", 49.90, 10)
	inStock2 := newTestProduct("Souris", 19.90, 5)
	shortage := newTestProduct("Écran", 199.00, 1)
	catalog := newFakeCatalog(inStock1, inStock2, shortage)
	svc := NewReservationService(catalog)

	_, err := svc.Reserve(context.Background(), gocql.TimeUUID(), []ReservationLine{
		{ProductID: inStock1.ID, Qty: 2},
		{ProductID: inStock2.ID, Qty: 1},
		{ProductID: shortage.ID, Qty: 3},
	})

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Écran", stockErr.ProductName)
	assert.Equal(t, 1, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)

	assert.Equal(t, 10, catalog.stockOf(inStock1.ID))
	assert.Equal(t, 5, catalog.stockOf(inStock2.ID))
	assert.Equal(t, 1, catalog.stockOf(shortage.ID))
}

func TestReserveClampsQtyToOne(t *testing.T) {
	p := newTestProduct("Casque", 89.00, 4)
	catalog := newFakeCatalog(p)
	svc := NewReservationService(catalog)

	items, err := svc.Reserve(context.Background(), gocql.TimeUUID(), []ReservationLine{
		{ProductID: p.ID, Qty: 0},
		{ProductID: p.ID, Qty: -3},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Qty)
	assert.Equal(t, 1, items[1].Qty)
	assert.Equal(t, 2, catalog.stockOf(p.ID))
}

func TestReserveSnapshotsCatalogPrice(t *testing.T) {
	p := newTestProduct("Webcam", 59.99, 3)
	catalog := newFakeCatalog(p)
	svc := NewReservationService(catalog)

	items, err := svc.Reserve(context.Background(), gocql.TimeUUID(), []ReservationLine{
		{ProductID: p.ID, Qty: 2, Color: "noir"},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Webcam", items[0].Name)
	assert.Equal(t, 59.99, items[0].Price)
	assert.Equal(t, "noir", items[0].Color)
}

func TestReserveEmptyCart(t *testing.T) {
	svc := NewReservationService(newFakeCatalog())
	_, err := svc.Reserve(context.Background(), gocql.TimeUUID(), nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestReserveUnknownProduct(t *testing.T) {
	svc := NewReservationService(newFakeCatalog())
	unknown, _ := gocql.RandomUUID()
	_, err := svc.Reserve(context.Background(), gocql.TimeUUID(), []ReservationLine{
		{ProductID: unknown, Qty: 1},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestReserveRollsBackOnCommitFailure(t *testing.T) {
	// La validation passe pour les deux lignes, mais le commit de la seconde
	// échoue : la première doit être restituée.
	ok := newTestProduct("Câble", 9.90, 10)
	failing := newTestProduct("Hub", 29.90, 10)
	catalog := newFakeCatalog(ok, failing)
	catalog.failDecrementFor[failing.ID] = true
	svc := NewReservationService(catalog)

	_, err := svc.Reserve(context.Background(), gocql.TimeUUID(), []ReservationLine{
		{ProductID: ok.ID, Qty: 4},
		{ProductID: failing.ID, Qty: 2},
	})
	require.Error(t, err)
	assert.Equal(t, 10, catalog.stockOf(ok.ID))
	assert.Equal(t, 10, catalog.stockOf(failing.ID))
}

func TestReserveConcurrentNoOversell(t *testing.T) {
	// 20 commandes concurrentes d'une unité sur un stock de 5 : exactement 5
	// réussissent, le stock termine à zéro, jamais en négatif.
	p := newTestProduct("Édition limitée", 120.00, 5)
	catalog := newFakeCatalog(p)
	svc := NewReservationService(catalog)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Reserve(context.Background(), gocql.TimeUUID(), []ReservationLine{
				{ProductID: p.ID, Qty: 1},
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			var stockErr *InsufficientStockError
			if !errors.As(err, &stockErr) {
				t.Errorf("erreur inattendue: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, 0, catalog.stockOf(p.ID))
}

func TestReleaseSkipsFailedLines(t *testing.T) {
	kept := newTestProduct("Tapis", 14.90, 0)
	gone := newTestProduct("Support", 24.90, 0)
	catalog := newFakeCatalog(kept, gone)
	catalog.failIncrementFor[gone.ID] = true
	svc := NewReservationService(catalog)

	orderID := gocql.TimeUUID()
	svc.Release(context.Background(), orderID, []models.OrderItem{
		{ProductID: kept.ID, Qty: 3},
		{ProductID: gone.ID, Qty: 2},
	})

	assert.Equal(t, 3, catalog.stockOf(kept.ID))
	assert.Equal(t, 0, catalog.stockOf(gone.ID))
}
