package provider

import (
	"fmt"

	"github.com/duka-admin/internal/authz"
	"github.com/duka-admin/internal/cache"
	"github.com/duka-admin/internal/config"
	"github.com/duka-admin/internal/logger"
	"github.com/duka-admin/internal/models"
	"github.com/duka-admin/internal/queue"
	"github.com/duka-admin/internal/repository"
	"github.com/duka-admin/internal/service"
)

// Container 依赖注入容器
// 持有配置、仓储与服务的单例,供 HTTP 层与 worker 复用
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// 仓储
	AdminRepo       repository.AdminRepository
	StaffRepo       repository.StaffRepository
	AttendanceRepo  repository.AttendanceRepository
	LeaveRepo       repository.LeaveRepository
	HolidayRepo     repository.HolidayRepository
	AssetRepo       repository.AssetRepository
	RiderRepo       repository.RiderRepository
	StoreRepo       repository.StoreRepository
	ProductRepo     repository.ProductRepository
	StockRepo       repository.StockRepository
	CustomerRepo    repository.CustomerRepository
	OrderRepo       repository.OrderRepository
	DeliveryRepo    repository.DeliveryRepository
	StockReturnRepo repository.StockReturnRepository
	InvoiceRepo     repository.InvoiceRepository

	// 服务
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	UploadService     *service.UploadService
	EmailService      *service.EmailService
	Pricer            *service.Pricer
	OrderService      *service.OrderService
	DispatchService   *service.DispatchService
	DeliveryService   *service.DeliveryService
	ReturnsService    *service.ReturnsService
	InvoiceService    *service.InvoiceService
	StaffService      *service.StaffService
	AttendanceService *service.AttendanceService
	LeaveService      *service.LeaveService
	HolidayService    *service.HolidayService
	AssetService      *service.AssetService
	RiderService      *service.RiderService
	StoreService      *service.StoreService
	ProductService    *service.ProductService
	CustomerService   *service.CustomerService
}

// NewContainer 构建容器
// 要求 models.InitDB 已完成
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if models.DB == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	c := &Container{Config: cfg}

	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("redis_init_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		return nil, fmt.Errorf("init queue client failed: %w", err)
	}
	c.QueueClient = queueClient

	c.initRepositories()
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.StaffRepo = repository.NewStaffRepository(db)
	c.AttendanceRepo = repository.NewAttendanceRepository(db)
	c.LeaveRepo = repository.NewLeaveRepository(db)
	c.HolidayRepo = repository.NewHolidayRepository(db)
	c.AssetRepo = repository.NewAssetRepository(db)
	c.RiderRepo = repository.NewRiderRepository(db)
	c.StoreRepo = repository.NewStoreRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.StockRepo = repository.NewStockRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.DeliveryRepo = repository.NewDeliveryRepository(db)
	c.StockReturnRepo = repository.NewStockReturnRepository(db)
	c.InvoiceRepo = repository.NewInvoiceRepository(db)
}

func (c *Container) initServices() error {
	db := models.DB
	cfg := c.Config

	authzService, err := authz.NewService(db)
	if err != nil {
		return fmt.Errorf("init authz service failed: %w", err)
	}
	if err := authz.BootstrapBuiltinRoles(authzService); err != nil {
		return fmt.Errorf("bootstrap builtin roles failed: %w", err)
	}
	c.AuthzService = authzService

	c.AuthService = service.NewAuthService(cfg, c.AdminRepo)
	c.UploadService = service.NewUploadService(cfg)
	c.EmailService = service.NewEmailService(&cfg.Email)

	c.Pricer = service.NewPricer(cfg.Order.VATRatePercent, cfg.Order.TaxAdditive)
	c.OrderService = service.NewOrderService(db, c.OrderRepo, c.ProductRepo, c.CustomerRepo, c.Pricer, c.QueueClient)
	c.DispatchService = service.NewDispatchService(db, c.OrderRepo, c.RiderRepo, c.StockRepo, c.ProductRepo, c.QueueClient, cfg.Order.DefaultDispatchStoreID)
	c.DeliveryService = service.NewDeliveryService(db, c.OrderRepo, c.DeliveryRepo, c.UploadService, c.QueueClient)
	c.ReturnsService = service.NewReturnsService(db, c.OrderRepo, c.StoreRepo, c.StockRepo, c.ProductRepo, c.StockReturnRepo, c.QueueClient)
	c.InvoiceService = service.NewInvoiceService(db, c.OrderRepo, c.InvoiceRepo, c.Pricer)

	c.StaffService = service.NewStaffService(c.StaffRepo, c.StoreRepo)
	c.AttendanceService = service.NewAttendanceService(c.AttendanceRepo, c.StaffRepo, c.HolidayRepo)
	c.LeaveService = service.NewLeaveService(c.LeaveRepo, c.StaffRepo, c.HolidayRepo, c.QueueClient)
	c.HolidayService = service.NewHolidayService(c.HolidayRepo)
	c.AssetService = service.NewAssetService(c.AssetRepo, c.StaffRepo, c.StoreRepo)
	c.RiderService = service.NewRiderService(c.RiderRepo)
	c.StoreService = service.NewStoreService(c.StoreRepo, c.StockRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CustomerService = service.NewCustomerService(c.CustomerRepo)
	return nil
}

// Close 释放容器持有的资源
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("queue_client_close_failed", "error", err)
		}
	}
}
