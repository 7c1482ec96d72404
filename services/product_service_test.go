package services_test

import (
	"context"
	"testing"
	"topup-store/models"
	"topup-store/services"

	"github.com/stretchr/testify/assert"
)

func newProductService(repo *memProductRepo) services.ProductService {
	return services.NewProductService(repo, nil, "Tk", testLogger())
}

func createRequest(id string) *models.CreateProductRequest {
	return &models.CreateProductRequest{
		ID:          id,
		Title:       "PUBG MOBILE (GCODES)",
		Category:    models.CategoryPubg,
		Description: "Top up your PUBG Mobile account with UC.",
		Packages: []models.PackageRequest{
			{Name: "60 UC", Price: 85},
			{Name: "325 UC", Price: 410},
		},
	}
}

func TestCreateProduct_DerivesFormattedPrices(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductService(repo)

	product, svcErr := svc.CreateProduct(context.Background(), createRequest("pubg-gcodes"))
	assert.Nil(t, svcErr)
	assert.Len(t, product.Packages, 2)
	assert.Equal(t, "Tk 85", product.Packages[0].FormattedPrice)
	assert.Equal(t, "Tk 410", product.Packages[1].FormattedPrice)
	assert.NotEmpty(t, product.Packages[0].ID)
	assert.Equal(t, models.DefaultProductImage, product.Image)
}

func TestCreateProduct_DuplicateID(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductService(repo)

	_, svcErr := svc.CreateProduct(context.Background(), createRequest("pubg-gcodes"))
	assert.Nil(t, svcErr)

	_, svcErr = svc.CreateProduct(context.Background(), createRequest("pubg-gcodes"))
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestCreateProduct_RejectsNonPositivePrice(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductService(repo)

	req := createRequest("pubg-gcodes")
	req.Packages = []models.PackageRequest{{Name: "Free UC", Price: 0}}
	_, svcErr := svc.CreateProduct(context.Background(), req)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	req.Packages = []models.PackageRequest{{Name: "Negative UC", Price: -5}}
	_, svcErr = svc.CreateProduct(context.Background(), req)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
}

func TestUpdateProduct_PartialUpdate(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductService(repo)
	_, svcErr := svc.CreateProduct(context.Background(), createRequest("pubg-gcodes"))
	assert.Nil(t, svcErr)

	title := "PUBG MOBILE (UC CODES)"
	product, svcErr := svc.UpdateProduct(context.Background(), "pubg-gcodes", &models.UpdateProductRequest{Title: &title})
	assert.Nil(t, svcErr)
	assert.Equal(t, "PUBG MOBILE (UC CODES)", product.Title)
	// Only supplied fields change.
	assert.Equal(t, models.CategoryPubg, product.Category)
	assert.Len(t, product.Packages, 2)

	_, svcErr = svc.UpdateProduct(context.Background(), "pubg-gcodes", &models.UpdateProductRequest{})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	_, svcErr = svc.UpdateProduct(context.Background(), "missing", &models.UpdateProductRequest{Title: &title})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestDeleteProduct_CascadesAndDisappears(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductService(repo)
	_, svcErr := svc.CreateProduct(context.Background(), createRequest("pubg-gcodes"))
	assert.Nil(t, svcErr)

	svcErr = svc.DeleteProduct(context.Background(), "pubg-gcodes")
	assert.Nil(t, svcErr)

	_, svcErr = svc.GetProduct(context.Background(), "pubg-gcodes")
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)

	svcErr = svc.DeleteProduct(context.Background(), "pubg-gcodes")
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestPackageLifecycle(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductService(repo)
	_, svcErr := svc.CreateProduct(context.Background(), createRequest("pubg-gcodes"))
	assert.Nil(t, svcErr)

	// Add
	product, svcErr := svc.AddPackage(context.Background(), "pubg-gcodes", &models.PackageRequest{Name: "660 UC", Price: 820})
	assert.Nil(t, svcErr)
	assert.Len(t, product.Packages, 3)
	added := product.Packages[2]
	assert.Equal(t, "Tk 820", added.FormattedPrice)

	// Edit: the display string follows the new price, caller input ignored.
	product, svcErr = svc.UpdatePackage(context.Background(), "pubg-gcodes", added.ID, &models.PackageRequest{Name: "660 UC", Price: 799})
	assert.Nil(t, svcErr)
	edited, ok := product.FindPackage(added.ID)
	assert.True(t, ok)
	assert.Equal(t, 799, edited.Price)
	assert.Equal(t, "Tk 799", edited.FormattedPrice)

	// Invalid price on edit
	_, svcErr = svc.UpdatePackage(context.Background(), "pubg-gcodes", added.ID, &models.PackageRequest{Name: "660 UC", Price: 0})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)

	// Remove
	product, svcErr = svc.RemovePackage(context.Background(), "pubg-gcodes", added.ID)
	assert.Nil(t, svcErr)
	assert.Len(t, product.Packages, 2)

	// Removing again is a 404.
	_, svcErr = svc.RemovePackage(context.Background(), "pubg-gcodes", added.ID)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
}

func TestListProducts_NewestFirst(t *testing.T) {
	repo := newMemProductRepo()
	svc := newProductService(repo)

	_, svcErr := svc.CreateProduct(context.Background(), createRequest("older"))
	assert.Nil(t, svcErr)
	_, svcErr = svc.CreateProduct(context.Background(), createRequest("newer"))
	assert.Nil(t, svcErr)

	products, svcErr := svc.ListProducts(context.Background())
	assert.Nil(t, svcErr)
	assert.Len(t, products, 2)
	assert.True(t, !products[0].CreatedAt.Before(products[1].CreatedAt))
}
