package services_test

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anilkoundinya7/E-Commerce/models"
)

// --- Mock repositories backed by in-memory maps ---

type mockProductRepo struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]*models.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
}

func (m *mockProductRepo) add(name string, price float64, stock int) primitive.ObjectID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	m.products[id] = &models.Product{ID: id, Name: name, Price: price, Stock: stock, Category: "General"}
	return id
}

func (m *mockProductRepo) stock(id primitive.ObjectID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.products[id]; ok {
		return p.Stock
	}
	return -1
}

func (m *mockProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) FindAll(_ context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) Insert(_ context.Context, product *models.Product) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	product.ID = id
	cp := *product
	m.products[id] = &cp
	return id, nil
}

func (m *mockProductRepo) Update(_ context.Context, id primitive.ObjectID, updates bson.M) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return 0, nil
	}
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["price"]; ok {
		p.Price = v.(float64)
	}
	if v, ok := updates["stock"]; ok {
		p.Stock = v.(int)
	}
	if v, ok := updates["imageUrl"]; ok {
		p.ImageURL = v.(string)
	}
	return 1, nil
}

func (m *mockProductRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return 0, nil
	}
	delete(m.products, id)
	return 1, nil
}

func (m *mockProductRepo) AdjustStock(_ context.Context, id primitive.ObjectID, delta int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return false, nil
	}
	p.Stock += delta
	return true, nil
}

func (m *mockProductRepo) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

type mockCartRepo struct {
	mu       sync.Mutex
	carts    map[primitive.ObjectID]*models.Cart
	products *mockProductRepo
}

func newMockCartRepo(products *mockProductRepo) *mockCartRepo {
	return &mockCartRepo{carts: make(map[primitive.ObjectID]*models.Cart), products: products}
}

func (m *mockCartRepo) Find(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		return nil, nil
	}
	cp := *cart
	cp.Items = append([]models.CartItem(nil), cart.Items...)
	return &cp, nil
}

func (m *mockCartRepo) IncrementItem(_ context.Context, userID, productID primitive.ObjectID, qty int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		return false, nil
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += qty
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCartRepo) PushItem(_ context.Context, userID, productID primitive.ObjectID, qty int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		cart = &models.Cart{ID: primitive.NewObjectID(), UserID: userID}
		m.carts[userID] = cart
	}
	cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: qty})
	return nil
}

func (m *mockCartRepo) Lines(ctx context.Context, userID primitive.ObjectID) ([]models.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := []models.CartLine{}
	cart, ok := m.carts[userID]
	if !ok {
		return lines, nil
	}
	for _, item := range cart.Items {
		p, _ := m.products.FindByID(ctx, item.ProductID)
		if p == nil {
			continue
		}
		lines = append(lines, models.CartLine{
			ProductID: item.ProductID,
			Name:      p.Name,
			Quantity:  item.Quantity,
			Price:     p.Price,
			Total:     p.Price * float64(item.Quantity),
		})
	}
	return lines, nil
}

func (m *mockCartRepo) RemoveItem(_ context.Context, userID, productID primitive.ObjectID) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[userID]
	if !ok {
		return false, false, nil
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return true, true, nil
		}
	}
	return true, false, nil
}

func (m *mockCartRepo) Delete(_ context.Context, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
	return nil
}

type mockOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]*models.Order
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (m *mockOrderRepo) Insert(_ context.Context, order *models.Order) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	order.ID = id
	cp := *order
	cp.Items = append([]models.OrderLineItem(nil), order.Items...)
	m.orders[id] = &cp
	return id, nil
}

func (m *mockOrderRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Order{}
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockOrderRepo) FindByIDAndUserID(_ context.Context, orderID, userID primitive.ObjectID) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, nil
	}
	cp := *o
	cp.Items = append([]models.OrderLineItem(nil), o.Items...)
	return &cp, nil
}

func (m *mockOrderRepo) Delete(_ context.Context, orderID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[orderID]; !ok {
		return 0, nil
	}
	delete(m.orders, orderID)
	return 1, nil
}

// --- Mock user repository ---

type mockUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	cp.Password = ""
	return &cp, nil
}

func (m *mockUserRepo) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := primitive.NewObjectID()
	user.ID = id
	cp := *user
	m.users[id] = &cp
	return id, nil
}

func (m *mockUserRepo) Update(_ context.Context, id primitive.ObjectID, updates bson.M) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil
	}
	if v, ok := updates["name"]; ok {
		u.Name = v.(string)
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := updates["password"]; ok {
		u.Password = v.(string)
	}
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return 0, nil
	}
	delete(m.users, id)
	return 1, nil
}

// --- Transaction runner and event publisher stubs ---

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type captureProducer struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (p *captureProducer) PublishOrderEvent(_ context.Context, event models.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *captureProducer) published() []models.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.OrderEvent(nil), p.events...)
}
