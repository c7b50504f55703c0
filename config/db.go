package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-pms/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
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
	dbName := envOrDefault("DB_NAME", "hotel_pms")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
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

	if err := Migrate(DB); err != nil {
		return err
	}

	SeedDatabase(DB)
	return nil
}

// Migrate applies the schema in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.HotelSetting{},
		&models.Room{},
		&models.Guest{},
		&models.Reservation{},
	)
}

func mustAmenities(list []string) datatypes.JSON {
	raw, err := json.Marshal(list)
	if err != nil {
		log.Fatalf("Error encoding amenities for seeding: %v", err)
	}
	return datatypes.JSON(raw)
}

// SeedDatabase creates the default staff accounts and the initial room
// inventory when the corresponding tables are empty.
func SeedDatabase(db *gorm.DB) {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		seed := []struct {
			name     string
			email    string
			password string
			role     models.UserRole
		}{
			{"John Doe", "john@doe.com", "johndoe123", models.RoleAdministrator},
			{"Maria Silva", "maria@pms.com", "maria123", models.RoleReceptionist},
		}
		for _, u := range seed {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("warning: failed to hash password for %s: %v", u.email, err)
				continue
			}
			user := models.User{Name: u.name, Email: u.email, Password: string(hash), Role: u.role}
			if err := db.Create(&user).Error; err != nil {
				log.Printf("warning: failed to seed user %s: %v", u.email, err)
			}
		}
		log.Println("Default staff users seeded")
	}

	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{
				Number: "101", Name: "Standard Room", Type: models.RoomTypeSingle,
				Capacity: 1, Price: 120.00,
				Description: "Cozy room with a single bed, ideal for solo travellers.",
				Amenities:   mustAmenities([]string{"Free Wi-Fi", "LED TV", "Air conditioning", "Minibar"}),
				Status:      models.RoomAvailable,
			},
			{
				Number: "102", Name: "Double Room", Type: models.RoomTypeDouble,
				Capacity: 2, Price: 180.00,
				Description: "Comfortable room with a double bed and city view.",
				Amenities:   mustAmenities([]string{"Free Wi-Fi", "LED TV", "Air conditioning", "Minibar", "Safe"}),
				Status:      models.RoomAvailable,
			},
			{
				Number: "103", Name: "Executive Room", Type: models.RoomTypeDouble,
				Capacity: 2, Price: 220.00,
				Description: "Sophisticated room for business travellers.",
				Amenities:   mustAmenities([]string{"Free Wi-Fi", "LED TV", "Air conditioning", "Minibar", "Safe", "Work desk"}),
				Status:      models.RoomCleaning,
			},
			{
				Number: "201", Name: "Family Suite", Type: models.RoomTypeFamily,
				Capacity: 4, Price: 280.00,
				Description: "Spacious suite for families, with two beds and a living area.",
				Amenities:   mustAmenities([]string{"Free Wi-Fi", "LED TV", "Air conditioning", "Minibar", "Safe", "Sofa bed"}),
				Status:      models.RoomAvailable,
			},
			{
				Number: "202", Name: "Deluxe Suite", Type: models.RoomTypeSuite,
				Capacity: 2, Price: 350.00,
				Description: "Luxurious suite with panoramic view and premium amenities.",
				Amenities:   mustAmenities([]string{"Free Wi-Fi", "LED TV", "Air conditioning", "Minibar", "Safe", "Bathtub", "Balcony"}),
				Status:      models.RoomOccupied,
			},
			{
				Number: "301", Name: "Presidential Suite", Type: models.RoomTypePresidential,
				Capacity: 4, Price: 550.00,
				Description: "The most luxurious suite of the hotel with a separate living room and butler service.",
				Amenities:   mustAmenities([]string{"Free Wi-Fi", "LED TV", "Air conditioning", "Minibar", "Safe", "Bathtub", "Balcony", "Living room"}),
				Status:      models.RoomMaintenance,
			},
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}
}
