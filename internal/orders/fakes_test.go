package orders

import (
	"context"
	"sync"
	"testing"

	"github.com/gocql/gocql"

	"velora_back_end/internal/models"
)

// fakeCatalog reproduit en mémoire la sémantique du store produits : le
// décrément est conditionnel au stock disponible, les mutations sont
// sérialisées par un mutex comme le CAS les sérialise en base.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[gocql.UUID]*models.Product

	failDecrementFor map[gocql.UUID]bool
	failIncrementFor map[gocql.UUID]bool
}

func newFakeCatalog(products ...*models.Product) *fakeCatalog {
	c := &fakeCatalog{
		products:         make(map[gocql.UUID]*models.Product),
		failDecrementFor: make(map[gocql.UUID]bool),
		failIncrementFor: make(map[gocql.UUID]bool),
	}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) GetProduct(ctx context.Context, productID gocql.UUID) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	snapshot := *p
	return &snapshot, nil
}

func (c *fakeCatalog) DecrementStock(ctx context.Context, productID gocql.UUID, qty int, orderID *gocql.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[productID]
	if !ok {
		return ErrProductNotFound
	}
	if c.failDecrementFor[productID] {
		return &InsufficientStockError{ProductName: p.Name, Available: p.Stock, Requested: qty}
	}
	if p.Stock < qty {
		return &InsufficientStockError{ProductName: p.Name, Available: p.Stock, Requested: qty}
	}
	p.Stock -= qty
	return nil
}

func (c *fakeCatalog) IncrementStock(ctx context.Context, productID gocql.UUID, qty int, orderID *gocql.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[productID]
	if !ok {
		return ErrProductNotFound
	}
	if c.failIncrementFor[productID] {
		return ErrProductNotFound
	}
	p.Stock += qty
	return nil
}

func (c *fakeCatalog) stockOf(productID gocql.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products[productID].Stock
}

// fakeOrders reproduit le store commandes, y compris la sémantique CAS de
// UpdateOrderCAS : l'écriture échoue si le statut en base ne vaut plus
// expected.
type fakeOrders struct {
	mu     sync.Mutex
	orders map[gocql.UUID]*models.Order

	failInsert bool
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: make(map[gocql.UUID]*models.Order)}
}

func (s *fakeOrders) InsertOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failInsert {
		return context.DeadlineExceeded
	}
	snapshot := *o
	s.orders[o.ID] = &snapshot
	return nil
}

func (s *fakeOrders) GetOrder(ctx context.Context, orderID gocql.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	snapshot := *o
	return &snapshot, nil
}

func (s *fakeOrders) UpdateOrderCAS(ctx context.Context, o *models.Order, expected models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.orders[o.ID]
	if !ok {
		return ErrOrderNotFound
	}
	if stored.Status != expected {
		return ErrVersionConflict
	}
	snapshot := *o
	s.orders[o.ID] = &snapshot
	return nil
}

// fakeReviews reproduit l'unicité par couple (commande, produit) de
// INSERT ... IF NOT EXISTS.
type fakeReviews struct {
	mu      sync.Mutex
	reviews map[[2]gocql.UUID]*models.Review

	forceNotApplied bool
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{reviews: make(map[[2]gocql.UUID]*models.Review)}
}

func (s *fakeReviews) GetReview(ctx context.Context, orderID, productID gocql.UUID) (*models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[[2]gocql.UUID{orderID, productID}]
	if !ok {
		return nil, ErrReviewNotFound
	}
	snapshot := *r
	return &snapshot, nil
}

func (s *fakeReviews) InsertReview(ctx context.Context, r *models.Review) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.forceNotApplied {
		return false, nil
	}
	key := [2]gocql.UUID{r.OrderID, r.ProductID}
	if _, exists := s.reviews[key]; exists {
		return false, nil
	}
	snapshot := *r
	s.reviews[key] = &snapshot
	return true, nil
}

// fakeNotifier compte les confirmations envoyées ; il peut simuler un SMTP
// en panne.
type fakeNotifier struct {
	mu    sync.Mutex
	sent  []gocql.UUID
	fail  bool
	fired chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{fired: make(chan struct{}, 16)}
}

func (n *fakeNotifier) OrderConfirmation(o *models.Order) error {
	n.mu.Lock()
	n.sent = append(n.sent, o.ID)
	fail := n.fail
	n.mu.Unlock()
	n.fired <- struct{}{}
	if fail {
		return context.DeadlineExceeded
	}
	return nil
}

func timeUUID(t *testing.T) gocql.UUID {
	t.Helper()
	return gocql.TimeUUID()
}

func newTestProduct(name string, price float64, stock int) *models.Product {
	id, _ := gocql.RandomUUID()
	return &models.Product{ID: id, Name: name, Price: price, Stock: stock}
}
