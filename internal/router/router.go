package router

import (
	"fmt"
	"strings"

	"github.com/duka-admin/internal/cache"
	"github.com/duka-admin/internal/config"
	adminhandlers "github.com/duka-admin/internal/http/handlers/admin"
	"github.com/duka-admin/internal/logger"
	"github.com/duka-admin/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "dk"
	}
	redisClient := cache.Client()
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的交付凭证等）- 必须放在最前面
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 管理端接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				// 账号
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)
				authorized.GET("/profile", adminHandler.GetProfile)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)

				// 订单与履约
				authorized.GET("/orders", adminHandler.AdminListOrders)
				authorized.GET("/orders/:id", adminHandler.AdminGetOrder)
				authorized.POST("/orders", adminHandler.AdminCreateOrder)
				authorized.PATCH("/orders/:id", adminHandler.AdminEditOrder)
				authorized.POST("/orders/:id/assign-rider", adminHandler.AdminAssignRider)
				authorized.POST("/orders/:id/complete-delivery", adminHandler.AdminCompleteDelivery)
				authorized.GET("/orders/:id/return-plan", adminHandler.AdminGetReturnPlan)
				authorized.POST("/orders/:id/receive-to-stock", adminHandler.AdminReceiveToStock)
				authorized.POST("/orders/:id/convert-to-invoice", adminHandler.AdminConvertOrderToInvoice)

				// 发票
				authorized.GET("/invoices", adminHandler.AdminListInvoices)
				authorized.GET("/invoices/:id", adminHandler.AdminGetInvoice)
				authorized.POST("/invoices/:id/mark-paid", adminHandler.AdminMarkInvoicePaid)

				// 员工管理
				authorized.POST("/staff", adminHandler.AdminCreateStaff)
				authorized.GET("/staff", adminHandler.AdminListStaff)
				authorized.GET("/staff/:id", adminHandler.AdminGetStaff)
				authorized.PUT("/staff/:id", adminHandler.AdminUpdateStaff)
				authorized.POST("/staff/:id/terminate", adminHandler.AdminTerminateStaff)
				authorized.DELETE("/staff/:id", adminHandler.AdminDeleteStaff)

				// 考勤
				authorized.POST("/attendance", adminHandler.AdminRecordAttendance)
				authorized.GET("/attendance", adminHandler.AdminListAttendance)
				authorized.PUT("/attendance/:id", adminHandler.AdminCorrectAttendance)
				authorized.DELETE("/attendance/:id", adminHandler.AdminDeleteAttendance)

				// 请假
				authorized.POST("/leaves", adminHandler.AdminSubmitLeave)
				authorized.GET("/leaves", adminHandler.AdminListLeaves)
				authorized.GET("/leaves/:id", adminHandler.AdminGetLeave)
				authorized.POST("/leaves/:id/review", adminHandler.AdminReviewLeave)

				// 节假日
				authorized.POST("/holidays", adminHandler.AdminCreateHoliday)
				authorized.GET("/holidays", adminHandler.AdminListHolidays)
				authorized.PUT("/holidays/:id", adminHandler.AdminUpdateHoliday)
				authorized.DELETE("/holidays/:id", adminHandler.AdminDeleteHoliday)

				// 资产
				authorized.POST("/assets", adminHandler.AdminCreateAsset)
				authorized.GET("/assets", adminHandler.AdminListAssets)
				authorized.GET("/assets/:id", adminHandler.AdminGetAsset)
				authorized.POST("/assets/:id/assign", adminHandler.AdminAssignAsset)
				authorized.PUT("/assets/:id", adminHandler.AdminUpdateAsset)
				authorized.DELETE("/assets/:id", adminHandler.AdminDeleteAsset)

				// 骑手
				authorized.POST("/riders", adminHandler.AdminCreateRider)
				authorized.GET("/riders", adminHandler.AdminListRiders)
				authorized.GET("/riders/:id", adminHandler.AdminGetRider)
				authorized.PUT("/riders/:id", adminHandler.AdminUpdateRider)
				authorized.DELETE("/riders/:id", adminHandler.AdminDeleteRider)

				// 门店与库存
				authorized.POST("/stores", adminHandler.AdminCreateStore)
				authorized.GET("/stores", adminHandler.AdminListStores)
				authorized.GET("/stores/:id", adminHandler.AdminGetStore)
				authorized.PUT("/stores/:id", adminHandler.AdminUpdateStore)
				authorized.GET("/stores/:id/stock-levels", adminHandler.AdminListStockLevels)
				authorized.GET("/stock-transactions", adminHandler.AdminListStockTransactions)

				// 商品
				authorized.POST("/products", adminHandler.AdminCreateProduct)
				authorized.GET("/products", adminHandler.AdminListProducts)
				authorized.GET("/products/:id", adminHandler.AdminGetProduct)
				authorized.PUT("/products/:id", adminHandler.AdminUpdateProduct)
				authorized.DELETE("/products/:id", adminHandler.AdminDeleteProduct)

				// 客户
				authorized.POST("/customers", adminHandler.AdminCreateCustomer)
				authorized.GET("/customers", adminHandler.AdminListCustomers)
				authorized.GET("/customers/:id", adminHandler.AdminGetCustomer)
				authorized.PUT("/customers/:id", adminHandler.AdminUpdateCustomer)
				authorized.DELETE("/customers/:id", adminHandler.AdminDeleteCustomer)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
