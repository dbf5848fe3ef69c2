package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
)

func newAssemblyFixture(t *testing.T, products ...*models.Product) (*AssemblyService, *fakeCatalog, *fakeOrders, *fakeNotifier) {
	t.Helper()
	catalog := newFakeCatalog(products...)
	orderStore := newFakeOrders()
	notifier := newFakeNotifier()
	svc := NewAssemblyService(orderStore, NewReservationService(catalog), notifier)
	return svc, catalog, orderStore, notifier
}

func TestCreateOrderComputesTotalFromCatalog(t *testing.T) {
	p1 := newTestProduct("Clavier", 49.90, 10)
	p2 := newTestProduct("Souris", 19.90, 10)
	svc, catalog, orderStore, _ := newAssemblyFixture(t, p1, p2)

	o, err := svc.CreateOrder(context.Background(), "user-1", CreateOrderInput{
		Items: []ReservationLine{
			{ProductID: p1.ID, Qty: 2},
			{ProductID: p2.ID, Qty: 1},
		},
		PaymentMethod: models.PaymentCard,
		DeliveryDate:  time.Now().AddDate(0, 0, 5),
	})
	require.NoError(t, err)

	assert.InDelta(t, 49.90*2+19.90, o.Total, 1e-9)
	assert.Equal(t, 8, catalog.stockOf(p1.ID))
	assert.Equal(t, 9, catalog.stockOf(p2.ID))

	stored, err := orderStore.GetOrder(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Total, stored.Total)
}

func TestCreateOrderInitialStatus(t *testing.T) {
	tests := []struct {
		method models.PaymentMethod
		want   models.OrderStatus
	}{
		{models.PaymentCOD, models.StatusPending},
		{models.PaymentCard, models.StatusPaid},
		{models.PaymentUPI, models.StatusPaid},
		{models.PaymentWallet, models.StatusPaid},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			p := newTestProduct("Casque", 89.00, 10)
			svc, _, _, _ := newAssemblyFixture(t, p)

			o, err := svc.CreateOrder(context.Background(), "user-1", CreateOrderInput{
				Items:         []ReservationLine{{ProductID: p.ID, Qty: 1}},
				PaymentMethod: tt.method,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, o.Status)
			require.Len(t, o.StatusHistory, 1)
			assert.Equal(t, tt.want, o.StatusHistory[0].Status)
		})
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	svc, _, _, _ := newAssemblyFixture(t)
	_, err := svc.CreateOrder(context.Background(), "user-1", CreateOrderInput{})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCreateOrderCompensatesOnInsertFailure(t *testing.T) {
	// L'insertion échoue après le décrément : le stock doit être restitué et
	// l'erreur enveloppée dans ErrOrderCreationFailed.
	p := newTestProduct("Écran", 199.00, 6)
	catalog := newFakeCatalog(p)
	orderStore := newFakeOrders()
	orderStore.failInsert = true
	svc := NewAssemblyService(orderStore, NewReservationService(catalog), nil)

	_, err := svc.CreateOrder(context.Background(), "user-1", CreateOrderInput{
		Items:         []ReservationLine{{ProductID: p.ID, Qty: 4}},
		PaymentMethod: models.PaymentCard,
	})
	assert.ErrorIs(t, err, ErrOrderCreationFailed)
	assert.Equal(t, 6, catalog.stockOf(p.ID))
}

func TestCreateOrderNotifiesAsynchronously(t *testing.T) {
	p := newTestProduct("Webcam", 59.99, 3)
	svc, _, _, notifier := newAssemblyFixture(t, p)

	o, err := svc.CreateOrder(context.Background(), "user-1", CreateOrderInput{
		Items:         []ReservationLine{{ProductID: p.ID, Qty: 1}},
		PaymentMethod: models.PaymentCard,
		UserEmail:     "client@example.com",
	})
	require.NoError(t, err)

	select {
	case <-notifier.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation jamais envoyée")
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, o.ID, notifier.sent[0])
}

func TestCreateOrderSucceedsWhenNotifierFails(t *testing.T) {
	p := newTestProduct("Câble", 9.90, 5)
	catalog := newFakeCatalog(p)
	orderStore := newFakeOrders()
	notifier := newFakeNotifier()
	notifier.fail = true
	svc := NewAssemblyService(orderStore, NewReservationService(catalog), notifier)

	o, err := svc.CreateOrder(context.Background(), "user-1", CreateOrderInput{
		Items:         []ReservationLine{{ProductID: p.ID, Qty: 1}},
		PaymentMethod: models.PaymentCard,
		UserEmail:     "client@example.com",
	})
	require.NoError(t, err)

	select {
	case <-notifier.fired:
	case <-time.After(2 * time.Second):
		t.Fatal("le notifier n'a jamais été appelé")
	}

	// La commande reste persistée malgré l'échec d'envoi.
	_, err = orderStore.GetOrder(context.Background(), o.ID)
	assert.NoError(t, err)
}
