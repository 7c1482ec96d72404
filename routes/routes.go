package routes

import (
	"topup-store/controllers"
	"topup-store/middleware"

	"github.com/gin-gonic/gin"
)

// Register wires every endpoint. The CurrentUser resolver runs globally;
// RequireAuth and AdminOnly gate the groups that need them, so no handler
// runs before its checks pass.
func Register(
	r *gin.Engine,
	ac *controllers.AuthController,
	uc *controllers.UserController,
	pc *controllers.ProductController,
	oc *controllers.OrderController,
) {
	auth := r.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware())
	auth.POST("/register", ac.Register)
	auth.POST("/login", ac.Login)
	auth.POST("/logout", ac.Logout)

	users := r.Group("/users")
	users.Use(middleware.RequireAuth())
	users.GET("/profile", uc.GetProfile)
	users.PUT("/profile", uc.UpdateProfile)
	users.PUT("/password", uc.ChangePassword)

	products := r.Group("/products")
	products.GET("", pc.ListProducts)
	products.GET("/:id", pc.GetProduct)

	adminProducts := products.Group("")
	adminProducts.Use(middleware.AdminOnly())
	adminProducts.POST("", pc.CreateProduct)
	adminProducts.PUT("/:id", pc.UpdateProduct)
	adminProducts.DELETE("/:id", pc.DeleteProduct)
	adminProducts.POST("/:id/packages", pc.AddPackage)
	adminProducts.PUT("/:id/packages/:packageId", pc.UpdatePackage)
	adminProducts.DELETE("/:id/packages/:packageId", pc.RemovePackage)

	orders := r.Group("/orders")
	orders.Use(middleware.RequireAuth())
	orders.GET("", oc.ListOrders)
	orders.POST("", oc.CreateOrder)
	orders.GET("/status/:status", middleware.AdminOnly(), oc.ListOrdersByStatus)
	orders.GET("/:id", oc.GetOrder)
	orders.PUT("/:id", middleware.AdminOnly(), oc.UpdateOrderStatus)
}
