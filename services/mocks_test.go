package services_test

import (
	"context"
	"sort"
	"time"
	"topup-store/models"
	"topup-store/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// --- In-memory UserRepository ---

type memUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *memUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserRepo) count() int {
	return len(m.users)
}

// --- In-memory OrderRepository ---

type memOrderRepo struct {
	orders map[string]*models.Order
	seq    int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[string]*models.Order)}
}

func (m *memOrderRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	// stands in for autoCreateTime: later orders get later timestamps
	m.seq++
	order.CreatedAt = time.Unix(int64(m.seq), 0)
	clone := *order
	m.orders[order.OrderNumber] = &clone
	return nil
}

func (m *memOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	o, ok := m.orders[orderNumber]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *o
	return &clone, nil
}

func (m *memOrderRepo) FindAll(_ context.Context) ([]models.Order, error) {
	return m.collect(func(*models.Order) bool { return true }), nil
}

func (m *memOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	return m.collect(func(o *models.Order) bool { return o.UserID == userID }), nil
}

func (m *memOrderRepo) FindByStatus(_ context.Context, status models.OrderStatus) ([]models.Order, error) {
	return m.collect(func(o *models.Order) bool { return o.Status == status }), nil
}

func (m *memOrderRepo) Update(_ context.Context, order *models.Order) error {
	if _, ok := m.orders[order.OrderNumber]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *order
	m.orders[order.OrderNumber] = &clone
	return nil
}

func (m *memOrderRepo) collect(match func(*models.Order) bool) []models.Order {
	result := []models.Order{}
	for _, o := range m.orders {
		if match(o) {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// --- In-memory ProductRepository ---

type memProductRepo struct {
	products map[string]*models.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*models.Product)}
}

func (m *memProductRepo) FindAll(_ context.Context) ([]models.Product, error) {
	result := []models.Product{}
	for _, p := range m.products {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *memProductRepo) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *p
	clone.Packages = append([]models.Package(nil), p.Packages...)
	return &clone, nil
}

func (m *memProductRepo) Create(_ context.Context, product *models.Product) error {
	if _, ok := m.products[product.ID]; ok {
		return repository.ErrDuplicateID
	}
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *memProductRepo) Update(_ context.Context, id string, updates bson.M) error {
	p, ok := m.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := updates["title"].(string); ok {
		p.Title = v
	}
	if v, ok := updates["category"].(models.ProductCategory); ok {
		p.Category = v
	}
	if v, ok := updates["description"].(string); ok {
		p.Description = v
	}
	if v, ok := updates["image"].(string); ok {
		p.Image = v
	}
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memProductRepo) AddPackage(_ context.Context, productID string, pkg models.Package) error {
	p, ok := m.products[productID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Packages = append(p.Packages, pkg)
	return nil
}

func (m *memProductRepo) UpdatePackage(_ context.Context, productID string, pkg models.Package) error {
	p, ok := m.products[productID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range p.Packages {
		if p.Packages[i].ID == pkg.ID {
			p.Packages[i] = pkg
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memProductRepo) RemovePackage(_ context.Context, productID, packageID string) error {
	p, ok := m.products[productID]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range p.Packages {
		if p.Packages[i].ID == packageID {
			p.Packages = append(p.Packages[:i], p.Packages[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
