package main

import (
	"fmt"
	"time"

	"github.com/duka-admin/internal/config"
	"github.com/duka-admin/internal/constants"
	"github.com/duka-admin/internal/logger"
	"github.com/duka-admin/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 门店
	stores := []models.Store{
		{Name: "Nairobi CBD", Location: "Moi Avenue, Nairobi", Phone: "+254700000001", IsActive: true},
		{Name: "Westlands", Location: "Waiyaki Way, Nairobi", Phone: "+254700000002", IsActive: true},
		{Name: "Mombasa Nyali", Location: "Links Road, Mombasa", Phone: "+254700000003", IsActive: true},
	}
	for _, store := range stores {
		var existing models.Store
		if err := models.DB.Where("name = ?", store.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&store).Error; err != nil {
				stdLog.Printf("Failed to create store %s: %v", store.Name, err)
			} else {
				stdLog.Printf("Created store: %s", store.Name)
			}
		} else {
			stdLog.Printf("Store already exists: %s", store.Name)
		}
	}

	// 商品
	products := []models.Product{
		{
			Code:            "MAIZE-2KG",
			Name:            "Maize Flour 2kg",
			SellingPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(210)),
			CostPrice:       models.NewMoneyFromDecimal(decimal.NewFromFloat(165)),
			DefaultTaxClass: constants.TaxClassZeroRated,
			IsActive:        true,
		},
		{
			Code:            "COOKOIL-1L",
			Name:            "Cooking Oil 1L",
			SellingPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(380)),
			CostPrice:       models.NewMoneyFromDecimal(decimal.NewFromFloat(305)),
			DefaultTaxClass: constants.TaxClassStandard16,
			IsActive:        true,
		},
		{
			Code:            "SUGAR-1KG",
			Name:            "Sugar 1kg",
			SellingPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(185)),
			CostPrice:       models.NewMoneyFromDecimal(decimal.NewFromFloat(150)),
			DefaultTaxClass: constants.TaxClassStandard16,
			IsActive:        true,
		},
		{
			Code:            "BREAD-400G",
			Name:            "White Bread 400g",
			SellingPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(65)),
			CostPrice:       models.NewMoneyFromDecimal(decimal.NewFromFloat(48)),
			DefaultTaxClass: constants.TaxClassExempted,
			IsActive:        true,
		},
		{
			Code:            "MILK-500ML",
			Name:            "Fresh Milk 500ml",
			SellingPrice:    models.NewMoneyFromDecimal(decimal.NewFromFloat(60)),
			CostPrice:       models.NewMoneyFromDecimal(decimal.NewFromFloat(46)),
			DefaultTaxClass: constants.TaxClassZeroRated,
			IsActive:        true,
		},
	}
	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("code = ?", prod.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Code, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Code)
			}
		} else {
			existing.Name = prod.Name
			existing.SellingPrice = prod.SellingPrice
			existing.CostPrice = prod.CostPrice
			existing.DefaultTaxClass = prod.DefaultTaxClass
			existing.IsActive = prod.IsActive
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Code, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Code)
			}
		}
	}

	// 初始库存（每个门店每个商品）
	var storeList []models.Store
	var productList []models.Product
	if err := models.DB.Find(&storeList).Error; err != nil {
		stdLog.Printf("Failed to load stores: %v", err)
	}
	if err := models.DB.Find(&productList).Error; err != nil {
		stdLog.Printf("Failed to load products: %v", err)
	}
	for _, store := range storeList {
		for _, prod := range productList {
			var level models.StockLevel
			if err := models.DB.Where("store_id = ? AND product_id = ?", store.ID, prod.ID).First(&level).Error; err != nil {
				level = models.StockLevel{
					StoreID:        store.ID,
					ProductID:      prod.ID,
					QuantityOnHand: 100,
				}
				if err := models.DB.Create(&level).Error; err != nil {
					stdLog.Printf("Failed to seed stock for store=%d product=%d: %v", store.ID, prod.ID, err)
				}
			}
		}
	}
	stdLog.Printf("Seeded stock levels for %d stores x %d products", len(storeList), len(productList))

	// 骑手
	riders := []models.Rider{
		{Name: "Brian Otieno", Phone: "+254711000001", NationalID: "30123456", VehicleRegNo: "KMFA 123A", Status: "active"},
		{Name: "Kevin Mwangi", Phone: "+254711000002", NationalID: "31234567", VehicleRegNo: "KMFB 456B", Status: "active"},
		{Name: "Faith Wanjiru", Phone: "+254711000003", NationalID: "32345678", VehicleRegNo: "KMFC 789C", Status: "active"},
	}
	for _, rider := range riders {
		var existing models.Rider
		if err := models.DB.Where("phone = ?", rider.Phone).First(&existing).Error; err != nil {
			if err := models.DB.Create(&rider).Error; err != nil {
				stdLog.Printf("Failed to create rider %s: %v", rider.Name, err)
			} else {
				stdLog.Printf("Created rider: %s", rider.Name)
			}
		} else {
			stdLog.Printf("Rider already exists: %s", rider.Name)
		}
	}

	// 客户
	customers := []models.Customer{
		{Name: "Mama Njeri Shop", Phone: "+254722000001", Email: "njeri@example.com", Address: "Ngara Market, Nairobi", KRAPin: "A001234567B"},
		{Name: "Tumaini Supermart", Phone: "+254722000002", Email: "orders@tumaini.example.com", Address: "Thika Road Mall", KRAPin: "A007654321C"},
		{Name: "Juma Wholesalers", Phone: "+254722000003", Email: "juma@example.com", Address: "Kongowea, Mombasa"},
	}
	for _, customer := range customers {
		var existing models.Customer
		if err := models.DB.Where("phone = ?", customer.Phone).First(&existing).Error; err != nil {
			if err := models.DB.Create(&customer).Error; err != nil {
				stdLog.Printf("Failed to create customer %s: %v", customer.Name, err)
			} else {
				stdLog.Printf("Created customer: %s", customer.Name)
			}
		} else {
			stdLog.Printf("Customer already exists: %s", customer.Name)
		}
	}

	// 公共假期（肯尼亚）
	year := time.Now().Year()
	holidays := []models.PublicHoliday{
		{Name: "New Year's Day", Date: time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), Recurring: true},
		{Name: "Labour Day", Date: time.Date(year, 5, 1, 0, 0, 0, 0, time.UTC), Recurring: true},
		{Name: "Madaraka Day", Date: time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC), Recurring: true},
		{Name: "Mashujaa Day", Date: time.Date(year, 10, 20, 0, 0, 0, 0, time.UTC), Recurring: true},
		{Name: "Jamhuri Day", Date: time.Date(year, 12, 12, 0, 0, 0, 0, time.UTC), Recurring: true},
		{Name: "Christmas Day", Date: time.Date(year, 12, 25, 0, 0, 0, 0, time.UTC), Recurring: true},
		{Name: "Boxing Day", Date: time.Date(year, 12, 26, 0, 0, 0, 0, time.UTC), Recurring: true},
	}
	for _, holiday := range holidays {
		var existing models.PublicHoliday
		if err := models.DB.Where("date = ?", holiday.Date).First(&existing).Error; err != nil {
			if err := models.DB.Create(&holiday).Error; err != nil {
				stdLog.Printf("Failed to create holiday %s: %v", holiday.Name, err)
			} else {
				stdLog.Printf("Created holiday: %s", holiday.Name)
			}
		} else {
			stdLog.Printf("Holiday already exists: %s", holiday.Name)
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Stores with opening stock")
	fmt.Println("- 5 Products")
	fmt.Println("- 3 Riders")
	fmt.Println("- 3 Customers")
	fmt.Println("- 7 Public holidays")
}
