package main

import (
	"github.com/furniro/storefront/internal/config"
	"github.com/furniro/storefront/internal/constants"
	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/models"

	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedProduct struct {
	Name        string
	Category    string
	Brand       string
	Price       string
	OldPrice    string
	Stock       int
	Rating      float64
	Description string
}

var furnitureCatalog = []seedProduct{
	{Name: "Syltherine", Category: "living", Brand: "Furniro", Price: "2500000", OldPrice: "3500000", Stock: 12, Rating: 4.5, Description: "Stylish cafe chair"},
	{Name: "Leviosa", Category: "living", Brand: "Furniro", Price: "2500000", Stock: 8, Rating: 4.2, Description: "Stylish cafe chair"},
	{Name: "Lolito", Category: "living", Brand: "Furniro", Price: "7000000", OldPrice: "14000000", Stock: 4, Rating: 4.8, Description: "Luxury big sofa"},
	{Name: "Respira", Category: "outdoor", Brand: "Furniro", Price: "500000", Stock: 30, Rating: 4.0, Description: "Outdoor bar table and stool"},
	{Name: "Grifo", Category: "bedroom", Brand: "Furniro", Price: "1500000", Stock: 0, Rating: 3.9, Description: "Night lamp"},
	{Name: "Muggo", Category: "dining", Brand: "Furniro", Price: "150000", Stock: 120, Rating: 4.6, Description: "Small mug"},
	{Name: "Pingky", Category: "bedroom", Brand: "Furniro", Price: "7000000", OldPrice: "14000000", Stock: 3, Rating: 4.7, Description: "Cute bed set"},
	{Name: "Potty", Category: "living", Brand: "Furniro", Price: "500000", Stock: 45, Rating: 4.1, Description: "Minimalist flower pot"},
}

func main() {
	withDemoUser := pflag.Bool("demo-user", false, "同时创建演示用户 demo@furniro.com")
	reset := pflag.Bool("reset", false, "写入前清空商品表")
	pflag.Parse()

	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
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

	if *reset {
		if err := models.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Product{}).Error; err != nil {
			stdLog.Fatalf("Failed to reset products: %v", err)
		}
		stdLog.Printf("Products table cleared")
	}

	for _, item := range furnitureCatalog {
		var existing models.Product
		if err := models.DB.Where("name = ?", item.Name).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", item.Name)
			continue
		}
		product := models.Product{
			Name:         item.Name,
			Description:  item.Description,
			Category:     item.Category,
			Brand:        item.Brand,
			Image:        "/images/products/" + item.Name + ".jpg",
			Price:        models.MustMoney(item.Price),
			CountInStock: item.Stock,
			Rating:       item.Rating,
		}
		if item.OldPrice != "" {
			product.OldPrice = models.MustMoney(item.OldPrice)
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s (id=%d)", item.Name, product.ID)
	}

	if *withDemoUser {
		if err := seedDemoUser(); err != nil {
			stdLog.Printf("Failed to create demo user: %v", err)
		} else {
			stdLog.Printf("Demo user ready: demo@furniro.com / demo12345")
		}
	}

	stdLog.Printf("Seed completed")
}

func seedDemoUser() error {
	var existing models.User
	if err := models.DB.Where("email = ?", "demo@furniro.com").First(&existing).Error; err == nil {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("demo12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return models.DB.Create(&models.User{
		Name:         "Demo",
		Email:        "demo@furniro.com",
		PasswordHash: string(hash),
		Status:       constants.UserStatusActive,
		Address:      "Jl. Sudirman No. 1, Jakarta",
	}).Error
}
