package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"inventra-system/internal/gateway/handlers"
	"inventra-system/internal/gateway/middleware"
)

func setupRouter(
	rateLimit string,
	userHandler *handlers.UserHTTPHandler,
	catalogHandler *handlers.CatalogHTTPHandler,
	inventoryHandler *handlers.InventoryHTTPHandler,
	requisitionHandler *handlers.RequisitionHTTPHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(middleware.CORS())
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(rateLimit))

	// --- Public API Group ---
	public := r.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
			auth.POST("/register", userHandler.Register)
		}
	}

	// --- Protected API Group ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		employees := protected.Group("/employees")
		{
			employees.POST("", userHandler.CreateEmployee)
			employees.GET("", userHandler.ListEmployees)
			employees.GET("/:id", userHandler.GetEmployee)
			employees.GET("/:id/assets", inventoryHandler.ListEmployeeAssets)
		}

		catalogGroup := protected.Group("/catalog")
		{
			catalogGroup.POST("/categories", catalogHandler.CreateCategory)
			catalogGroup.GET("/categories", catalogHandler.ListCategories)
			catalogGroup.POST("/vendors", catalogHandler.CreateVendor)
			catalogGroup.GET("/vendors", catalogHandler.ListVendors)
			catalogGroup.POST("/types", catalogHandler.CreateType)
			catalogGroup.GET("/types", catalogHandler.ListTypes)
			catalogGroup.GET("/types/:id", catalogHandler.GetType)
			catalogGroup.PUT("/types/:id", catalogHandler.UpdateType)
		}

		inventoryGroup := protected.Group("/inventory")
		{
			inventoryGroup.POST("/products", inventoryHandler.CreateProduct)
			inventoryGroup.POST("/products/bulk", inventoryHandler.CreateBulkProducts)
			inventoryGroup.GET("/products", inventoryHandler.ListProducts)
			inventoryGroup.GET("/products/:id", inventoryHandler.GetProduct)
			inventoryGroup.GET("/products/code/:code", inventoryHandler.GetProductByCode)
			inventoryGroup.PATCH("/products/:id/status", inventoryHandler.UpdateProductStatus)
			inventoryGroup.POST("/products/:id/handover", inventoryHandler.HandOverProduct)
			inventoryGroup.POST("/products/:id/return", inventoryHandler.ReturnProduct)
			inventoryGroup.DELETE("/products/:id", inventoryHandler.DeleteProduct)

			inventoryGroup.POST("/stock/add", inventoryHandler.AddStock)
			inventoryGroup.POST("/stock/use", inventoryHandler.UseStock)
			inventoryGroup.GET("/ledger/:typeId", inventoryHandler.GetLedger)
		}

		requisitionGroup := protected.Group("/requisitions")
		{
			requisitionGroup.POST("", requisitionHandler.Create)
			requisitionGroup.GET("", requisitionHandler.List)
			requisitionGroup.GET("/:id", requisitionHandler.Get)
			requisitionGroup.GET("/number/:number", requisitionHandler.GetByNumber)
			requisitionGroup.POST("/:id/approve", requisitionHandler.Approve)
			requisitionGroup.POST("/:id/reject", requisitionHandler.Reject)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"message":   "Server is running",
			"timestamp": time.Now(),
		})
	})

	return r
}
