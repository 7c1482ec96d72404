package controllers

import (
	"net/http"
	"topup-store/models"
	"topup-store/services"

	"github.com/gin-gonic/gin"
)

// ProductController handles catalog endpoints. Reads are public; every
// mutation sits behind the admin gate in the router.
type ProductController struct {
	productService services.ProductService
}

// NewProductController creates a new ProductController.
func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// ListProducts handles GET /products.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, svcErr := pc.productService.ListProducts(c.Request.Context())
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondList(c, products, len(products))
}

// GetProduct handles GET /products/:id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	product, svcErr := pc.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusOK, product)
}

// CreateProduct handles POST /products (admin).
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	product, svcErr := pc.productService.CreateProduct(c.Request.Context(), &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusCreated, product)
}

// UpdateProduct handles PUT /products/:id (admin).
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	product, svcErr := pc.productService.UpdateProduct(c.Request.Context(), c.Param("id"), &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusOK, product)
}

// DeleteProduct handles DELETE /products/:id (admin).
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	if svcErr := pc.productService.DeleteProduct(c.Request.Context(), c.Param("id")); svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusOK, gin.H{})
}

// AddPackage handles POST /products/:id/packages (admin).
func (pc *ProductController) AddPackage(c *gin.Context) {
	var req models.PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	product, svcErr := pc.productService.AddPackage(c.Request.Context(), c.Param("id"), &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusCreated, product)
}

// UpdatePackage handles PUT /products/:id/packages/:packageId (admin).
func (pc *ProductController) UpdatePackage(c *gin.Context) {
	var req models.PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	product, svcErr := pc.productService.UpdatePackage(c.Request.Context(), c.Param("id"), c.Param("packageId"), &req)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusOK, product)
}

// RemovePackage handles DELETE /products/:id/packages/:packageId (admin).
func (pc *ProductController) RemovePackage(c *gin.Context) {
	product, svcErr := pc.productService.RemovePackage(c.Request.Context(), c.Param("id"), c.Param("packageId"))
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	respondData(c, http.StatusOK, product)
}
