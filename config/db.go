package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"stayhub-backend/models"
	"stayhub-backend/services"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "stayhub_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase backfills a default branch with a small room inventory so a
// fresh install has something to price and book against.
func SeedDatabase() {
	var branchCount int64
	DB.Model(&models.Branch{}).Count(&branchCount)
	if branchCount > 0 {
		return
	}

	branch := models.Branch{
		Name:    "StayHub Central",
		Address: "1 Riverside Road",
		Phone:   "+66-2-000-0000",
		Email:   "central@stayhub.local",
	}
	if err := DB.Create(&branch).Error; err != nil {
		log.Printf("warning: failed to seed default branch: %v", err)
		return
	}

	standard := models.RoomCategory{BranchID: branch.ID, Name: "Standard", Description: "Standard rooms"}
	premium := models.RoomCategory{BranchID: branch.ID, Name: "Premium", Description: "Premium rooms"}
	if err := DB.Create(&standard).Error; err != nil {
		log.Printf("warning: failed to seed room categories: %v", err)
		return
	}
	if err := DB.Create(&premium).Error; err != nil {
		log.Printf("warning: failed to seed room categories: %v", err)
		return
	}

	roomTypes := []models.RoomType{
		{BranchID: branch.ID, RoomCategoryID: &standard.ID, TypeName: "Standard", Description: "Standard Room", MaxGuests: 2},
		{BranchID: branch.ID, RoomCategoryID: &standard.ID, TypeName: "Superior", Description: "Superior Room", MaxGuests: 3},
		{BranchID: branch.ID, RoomCategoryID: &premium.ID, TypeName: "Deluxe", Description: "Deluxe Room", MaxGuests: 4},
	}
	if err := DB.Create(&roomTypes).Error; err != nil {
		log.Printf("warning: failed to seed room types: %v", err)
		return
	}

	rooms := []models.Room{
		{BranchID: branch.ID, RoomTypeID: &roomTypes[0].ID, RoomNumber: "101", Floor: "1", BasePrice: 1200, Status: "AVAILABLE", MaxOccupancy: 2},
		{BranchID: branch.ID, RoomTypeID: &roomTypes[0].ID, RoomNumber: "102", Floor: "1", BasePrice: 1200, Status: "AVAILABLE", MaxOccupancy: 2},
		{BranchID: branch.ID, RoomTypeID: &roomTypes[1].ID, RoomNumber: "201", Floor: "2", BasePrice: 1800, Status: "AVAILABLE", MaxOccupancy: 3},
		{BranchID: branch.ID, RoomTypeID: &roomTypes[2].ID, RoomNumber: "301", Floor: "3", BasePrice: 2600, Status: "AVAILABLE", MaxOccupancy: 4},
	}
	for i := range rooms {
		rooms[i].DisplayPrice = services.StandingPrice(rooms[i].BasePrice, rooms[i].StandingDiscountPercent)
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}

	log.Println("Default branch inventory seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// parent -> child order
	if err := DB.AutoMigrate(
		&models.Branch{},
		&models.RoomCategory{},
		&models.RoomType{},
		&models.Room{},
		&models.Customer{},
		&models.Event{},
		&models.PriceAdjustment{},
		&models.Booking{},
		&models.BookingRoom{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
