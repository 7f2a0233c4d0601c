package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/handlers/admin"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/handlers/catalog"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/handlers/product"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/handlers/shop"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/handlers/user"
	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ================== AUTH ==================
	auth := api.Group("/auth")
	auth.POST("/register", middleware.RegisterRateLimit(), user.Register)
	auth.POST("/login", middleware.LoginRateLimit(), user.Login)
	auth.POST("/google/mobile", user.GoogleMobileLogin)
	auth.POST("/verify/request", middleware.AuthRequired(), user.RequestVerification)
	auth.POST("/verify/confirm", middleware.AuthRequired(), user.ConfirmVerification)
	auth.GET("/:provider", user.BeginAuth)
	auth.GET("/:provider/callback", user.CallbackAuth)

	// ================== PROFILE ==================
	me := api.Group("/users/me", middleware.AuthRequired())
	me.GET("", user.Me)
	me.PUT("", user.UpdateMe)

	// ================== SHOPS (PUBLIC) ==================
	// OptionalAuth lets owners and admins see their own unapproved shops on
	// the public routes.
	shops := api.Group("/shops", middleware.OptionalAuth())
	shops.GET("", shop.ListShops)
	shops.GET("/nearby", middleware.SearchRateLimit(), shop.NearbyShops)
	shops.GET("/search", middleware.SearchRateLimit(), shop.SearchShops)
	shops.GET("/:id", shop.GetShop)
	shops.GET("/:id/qr", shop.ShopQR)
	shops.GET("/:id/products", product.ListShopProducts)

	// ================== SHOPS (SHOPKEEPER) ==================
	keeper := api.Group("/shops", middleware.AuthRequired(), middleware.RequireShopkeeper())
	keeper.POST("", shop.CreateShop)
	keeper.GET("/my", shop.GetMyShop)
	keeper.PUT("/:id", shop.UpdateShop)
	keeper.DELETE("/:id", shop.DeleteShop)
	keeper.POST("/:id/banner", shop.UploadBanner)
	keeper.POST("/:id/products", product.CreateProduct)

	// ================== PRODUCTS ==================
	products := api.Group("/products")
	products.GET("/search", middleware.SearchRateLimit(), product.SearchProducts)
	products.GET("/:id", middleware.OptionalAuth(), product.GetProduct)

	owned := api.Group("/products", middleware.AuthRequired(), middleware.RequireShopkeeper())
	owned.PUT("/:id", product.UpdateProduct)
	owned.DELETE("/:id", product.DeleteProduct)
	owned.POST("/:id/image", product.UploadProductImage)

	// ================== CATALOG ==================
	api.GET("/catalog", catalog.ListCatalogItems)
	api.GET("/catalog/:id", catalog.GetCatalogItem)

	// ================== ADMIN ==================
	adm := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin())
	adm.GET("/shops", admin.ListShopsByStatus)
	adm.PUT("/shops/:id/approve", admin.ApproveShop)
	adm.PUT("/shops/:id/reject", admin.RejectShop)
	adm.PUT("/shops/:id", shop.UpdateShop)
	adm.DELETE("/shops/:id", shop.DeleteShop)
	adm.DELETE("/products/:id", product.DeleteProduct)
	adm.GET("/users", admin.ListUsers)
	adm.PUT("/users/:id/status", admin.SetUserStatus)
	adm.POST("/catalog", catalog.CreateCatalogItem)
	adm.PUT("/catalog/:id", catalog.UpdateCatalogItem)
	adm.DELETE("/catalog/:id", catalog.DeleteCatalogItem)
}
