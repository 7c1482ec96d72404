package services

import (
	"context"
	"errors"
	"time"
	"topup-store/models"
	"topup-store/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ProductService defines catalog business logic.
type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, *ServiceError)
	GetProduct(ctx context.Context, id string) (*models.Product, *ServiceError)
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, *ServiceError)
	UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, *ServiceError)
	DeleteProduct(ctx context.Context, id string) *ServiceError
	AddPackage(ctx context.Context, productID string, req *models.PackageRequest) (*models.Product, *ServiceError)
	UpdatePackage(ctx context.Context, productID, packageID string, req *models.PackageRequest) (*models.Product, *ServiceError)
	RemovePackage(ctx context.Context, productID, packageID string) (*models.Product, *ServiceError)
}

type productServiceImpl struct {
	products       repository.ProductRepository
	cache          *CatalogCache
	currencyPrefix string
	logger         *zap.Logger
}

// NewProductService creates a new ProductService. currencyPrefix is the
// display-price prefix, e.g. "Tk".
func NewProductService(products repository.ProductRepository, cache *CatalogCache, currencyPrefix string, logger *zap.Logger) ProductService {
	return &productServiceImpl{
		products:       products,
		cache:          cache,
		currencyPrefix: currencyPrefix,
		logger:         logger,
	}
}

// ListProducts returns the whole catalog, newest first, through the cache.
func (s *productServiceImpl) ListProducts(ctx context.Context) ([]models.Product, *ServiceError) {
	if cached, ok := s.cache.GetProducts(ctx); ok {
		return cached, nil
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, errInternal("Failed to fetch products")
	}

	s.cache.SetProducts(ctx, products)
	return products, nil
}

// GetProduct returns one product by id, through the cache.
func (s *productServiceImpl) GetProduct(ctx context.Context, id string) (*models.Product, *ServiceError) {
	if cached, ok := s.cache.GetProduct(ctx, id); ok {
		return cached, nil
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNotFound("Product not found")
		}
		s.logger.Error("Failed to fetch product", zap.Error(err), zap.String("product_id", id))
		return nil, errInternal("Failed to fetch product")
	}

	s.cache.SetProduct(ctx, product)
	return product, nil
}

// CreateProduct inserts a new catalog entry. Package display prices are
// derived here, never taken from the request.
func (s *productServiceImpl) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, *ServiceError) {
	packages := make([]models.Package, 0, len(req.Packages))
	for _, pr := range req.Packages {
		pkg, svcErr := s.buildPackage(&pr)
		if svcErr != nil {
			return nil, svcErr
		}
		packages = append(packages, *pkg)
	}

	product := &models.Product{
		ID:          req.ID,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Image:       req.Image,
		Packages:    packages,
		CreatedAt:   time.Now().UTC(),
	}
	if product.Image == "" {
		product.Image = models.DefaultProductImage
	}

	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return nil, errValidation("Product id already exists")
		}
		s.logger.Error("Failed to create product", zap.Error(err), zap.String("product_id", req.ID))
		return nil, errInternal("Failed to create product")
	}

	s.cache.InvalidateProduct(ctx, product.ID)
	s.logger.Info("Product created", zap.String("product_id", product.ID))
	return product, nil
}

// UpdateProduct applies a partial update; only supplied fields change and
// the id stays immutable.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, *ServiceError) {
	updates := bson.M{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if len(updates) == 0 {
		return nil, errValidation("No fields to update")
	}

	if err := s.products.Update(ctx, id, updates); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNotFound("Product not found")
		}
		s.logger.Error("Failed to update product", zap.Error(err), zap.String("product_id", id))
		return nil, errInternal("Failed to update product")
	}

	s.cache.InvalidateProduct(ctx, id)
	return s.reload(ctx, id)
}

// DeleteProduct removes a product. Its embedded packages go with it.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, id string) *ServiceError {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errNotFound("Product not found")
		}
		s.logger.Error("Failed to delete product", zap.Error(err), zap.String("product_id", id))
		return errInternal("Failed to delete product")
	}

	s.cache.InvalidateProduct(ctx, id)
	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

// AddPackage appends a new denomination to a product.
func (s *productServiceImpl) AddPackage(ctx context.Context, productID string, req *models.PackageRequest) (*models.Product, *ServiceError) {
	pkg, svcErr := s.buildPackage(req)
	if svcErr != nil {
		return nil, svcErr
	}

	if err := s.products.AddPackage(ctx, productID, *pkg); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNotFound("Product not found")
		}
		s.logger.Error("Failed to add package", zap.Error(err), zap.String("product_id", productID))
		return nil, errInternal("Failed to add package")
	}

	s.cache.InvalidateProduct(ctx, productID)
	return s.reload(ctx, productID)
}

// UpdatePackage replaces a denomination in place.
func (s *productServiceImpl) UpdatePackage(ctx context.Context, productID, packageID string, req *models.PackageRequest) (*models.Product, *ServiceError) {
	pkg, svcErr := s.buildPackage(req)
	if svcErr != nil {
		return nil, svcErr
	}
	pkg.ID = packageID

	if err := s.products.UpdatePackage(ctx, productID, *pkg); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNotFound("Package not found")
		}
		s.logger.Error("Failed to update package", zap.Error(err),
			zap.String("product_id", productID), zap.String("package_id", packageID))
		return nil, errInternal("Failed to update package")
	}

	s.cache.InvalidateProduct(ctx, productID)
	return s.reload(ctx, productID)
}

// RemovePackage deletes a denomination from a product.
func (s *productServiceImpl) RemovePackage(ctx context.Context, productID, packageID string) (*models.Product, *ServiceError) {
	if err := s.products.RemovePackage(ctx, productID, packageID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNotFound("Package not found")
		}
		s.logger.Error("Failed to remove package", zap.Error(err),
			zap.String("product_id", productID), zap.String("package_id", packageID))
		return nil, errInternal("Failed to remove package")
	}

	s.cache.InvalidateProduct(ctx, productID)
	return s.reload(ctx, productID)
}

// buildPackage validates the price and derives the display string.
func (s *productServiceImpl) buildPackage(req *models.PackageRequest) (*models.Package, *ServiceError) {
	if req.Price <= 0 {
		return nil, errValidation("Package price must be positive")
	}

	pkg := &models.Package{
		ID:    uuid.NewString(),
		Name:  req.Name,
		Price: req.Price,
	}
	pkg.Format(s.currencyPrefix)
	return pkg, nil
}

// reload fetches the product after a mutation so handlers can return the
// updated document.
func (s *productServiceImpl) reload(ctx context.Context, id string) (*models.Product, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errNotFound("Product not found")
		}
		s.logger.Error("Failed to reload product", zap.Error(err), zap.String("product_id", id))
		return nil, errInternal("Failed to fetch product")
	}
	return product, nil
}
