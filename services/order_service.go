package services

import (
	"context"
	"errors"
	"fmt"
	"topup-store/models"
	"topup-store/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderService defines order lifecycle business logic. Authorization is
// enforced here against the caller's resolved identity, not trusted from
// the request.
type OrderService interface {
	CreateOrder(ctx context.Context, caller *models.Identity, req *models.CreateOrderRequest) (*models.Order, *ServiceError)
	GetOrder(ctx context.Context, caller *models.Identity, orderNumber string) (*models.Order, *ServiceError)
	ListOrders(ctx context.Context, caller *models.Identity) ([]models.Order, *ServiceError)
	ListOrdersByStatus(ctx context.Context, caller *models.Identity, status string) ([]models.Order, *ServiceError)
	UpdateOrderStatus(ctx context.Context, caller *models.Identity, orderNumber, status string) (*models.Order, *ServiceError)
}

type orderServiceImpl struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, logger *zap.Logger) OrderService {
	return &orderServiceImpl{orders: orders, products: products, logger: logger}
}

// CreateOrder places a new order for the caller. Product title, package
// name and price are snapshotted into the order so later catalog edits
// cannot change the purchase terms. New orders always enter pending.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, caller *models.Identity, req *models.CreateOrderRequest) (*models.Order, *ServiceError) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errValidation("Unknown product")
		}
		s.logger.Error("Failed to resolve product", zap.Error(err), zap.String("product_id", req.ProductID))
		return nil, errInternal("Failed to create order")
	}

	pkg, ok := product.FindPackage(req.PackageID)
	if !ok {
		return nil, errValidation("Unknown package")
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentWallet
	}

	order := &models.Order{
		OrderNumber: models.NewOrderNumber(),
		UserID:      caller.ID,
		PlayerID:    req.PlayerID,
		PurchaseTerms: models.PurchaseTerms{
			ProductID:    product.ID,
			ProductTitle: product.Title,
			PackageID:    pkg.ID,
			PackageName:  pkg.Name,
			Price:        pkg.Price,
		},
		PaymentMethod: paymentMethod,
		Status:        models.StatusPending,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", zap.Error(err), zap.String("user_id", caller.ID.String()))
		return nil, errInternal("Failed to create order")
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.OrderNumber),
		zap.String("user_id", caller.ID.String()),
		zap.String("product_id", product.ID),
		zap.Int("price", pkg.Price),
	)
	return order, nil
}

// GetOrder returns one order. Only the owner or an admin may read it; the
// rejection is the same "Not authorized" as for a missing session.
func (s *orderServiceImpl) GetOrder(ctx context.Context, caller *models.Identity, orderNumber string) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Order not found")
		}
		s.logger.Error("Failed to fetch order", zap.Error(err), zap.String("order_id", orderNumber))
		return nil, errInternal("Failed to fetch order")
	}

	if !caller.IsAdmin() && order.UserID != caller.ID {
		return nil, errNotAuthorized()
	}
	return order, nil
}

// ListOrders returns all orders for admins and the caller's own orders for
// everyone else, newest first.
func (s *orderServiceImpl) ListOrders(ctx context.Context, caller *models.Identity) ([]models.Order, *ServiceError) {
	var (
		orders []models.Order
		err    error
	)
	if caller.IsAdmin() {
		orders, err = s.orders.FindAll(ctx)
	} else {
		orders, err = s.orders.FindByUserID(ctx, caller.ID)
	}
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err), zap.String("user_id", caller.ID.String()))
		return nil, errInternal("Failed to fetch orders")
	}
	return orders, nil
}

// ListOrdersByStatus returns all orders in one state (admin only). The
// status token is validated before any query runs.
func (s *orderServiceImpl) ListOrdersByStatus(ctx context.Context, caller *models.Identity, status string) ([]models.Order, *ServiceError) {
	if !caller.IsAdmin() {
		return nil, errNotAuthorized()
	}

	parsed, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, errValidation("Invalid status")
	}

	orders, err := s.orders.FindByStatus(ctx, parsed)
	if err != nil {
		s.logger.Error("Failed to list orders by status", zap.Error(err), zap.String("status", status))
		return nil, errInternal("Failed to fetch orders")
	}
	return orders, nil
}

// UpdateOrderStatus moves an order along the lifecycle (admin only). The
// target must be a known status and the transition must be allowed.
func (s *orderServiceImpl) UpdateOrderStatus(ctx context.Context, caller *models.Identity, orderNumber, status string) (*models.Order, *ServiceError) {
	if !caller.IsAdmin() {
		return nil, errNotAuthorized()
	}

	next, err := models.ParseOrderStatus(status)
	if err != nil {
		return nil, errValidation("Invalid status")
	}

	order, svcErr := s.findOrder(ctx, orderNumber)
	if svcErr != nil {
		return nil, svcErr
	}

	if order.Status == next {
		return order, nil
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, errValidation(fmt.Sprintf("Cannot move order from %s to %s", order.Status, next))
	}

	previous := order.Status
	order.Status = next
	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update order status", zap.Error(err), zap.String("order_id", orderNumber))
		return nil, errInternal("Failed to update order")
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", order.OrderNumber),
		zap.String("from", string(previous)),
		zap.String("to", string(next)),
	)
	return order, nil
}

func (s *orderServiceImpl) findOrder(ctx context.Context, orderNumber string) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("Order not found")
		}
		s.logger.Error("Failed to fetch order", zap.Error(err), zap.String("order_id", orderNumber))
		return nil, errInternal("Failed to fetch order")
	}
	return order, nil
}
