package main

import (
	"log"
	"os"
	"time"

	"camperrent/internal/database"
	"camperrent/internal/domain"
	"camperrent/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "camperrent.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM blocked_dates")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM seasons")
	db.Exec("DELETE FROM vehicles")
	db.Exec("DELETE FROM vehicle_categories")
	db.Exec("DELETE FROM locations")
	db.Exec("DELETE FROM users")

	// ================== OPERATORS ==================
	log.Println("Creating operator accounts...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	db.Create(&domain.User{
		ID:           uuid.NewString(),
		Email:        "admin@camperrent.es",
		Name:         "Admin",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})

	operatorHash, _ := bcrypt.GenerateFromPassword([]byte("operator123"), bcrypt.DefaultCost)
	db.Create(&domain.User{
		ID:           uuid.NewString(),
		Email:        "ops@camperrent.es",
		Name:         "Operations",
		PasswordHash: string(operatorHash),
		Role:         domain.RoleOperator,
		IsActive:     true,
	})

	// ================== CATEGORIES & VEHICLES ==================
	log.Println("Creating fleet...")

	camperCat := domain.VehicleCategory{ID: uuid.NewString(), Name: "Camper van", Slug: "camper", SortOrder: 1}
	motorhomeCat := domain.VehicleCategory{ID: uuid.NewString(), Name: "Motorhome", Slug: "motorhome", SortOrder: 2}
	db.Create(&camperCat)
	db.Create(&motorhomeCat)

	vehicles := []domain.Vehicle{
		{ID: uuid.NewString(), Name: "Atlas 4", Slug: "atlas-4", CategoryID: camperCat.ID, Seats: 4, Beds: 2, IsForRent: true, Status: domain.VehicleAvailable, SortOrder: 1},
		{ID: uuid.NewString(), Name: "Atlas 5", Slug: "atlas-5", CategoryID: camperCat.ID, Seats: 5, Beds: 3, IsForRent: true, Status: domain.VehicleAvailable, SortOrder: 2},
		{ID: uuid.NewString(), Name: "Horizon 6", Slug: "horizon-6", CategoryID: motorhomeCat.ID, Seats: 6, Beds: 4, IsForRent: true, Status: domain.VehicleAvailable, SortOrder: 3},
		{ID: uuid.NewString(), Name: "Workshop unit", Slug: "workshop-unit", CategoryID: camperCat.ID, Seats: 4, Beds: 2, IsForRent: false, Status: domain.VehicleMaintenance, SortOrder: 99},
	}
	for i := range vehicles {
		db.Create(&vehicles[i])
	}

	// ================== LOCATIONS ==================
	log.Println("Creating locations...")

	db.Create(&domain.Location{ID: uuid.NewString(), Name: "Madrid", Slug: "madrid", Address: "Calle de la Base 1, Madrid", ExtraFee: 0, IsActive: true})
	db.Create(&domain.Location{ID: uuid.NewString(), Name: "Barcelona", Slug: "barcelona", Address: "Carrer del Port 22, Barcelona", ExtraFee: 120, IsActive: true})
	db.Create(&domain.Location{ID: uuid.NewString(), Name: "Malaga", Slug: "malaga", Address: "Av. de la Costa 8, Malaga", ExtraFee: 150, IsActive: true})

	// ================== SEASONS ==================
	log.Println("Creating seasons...")

	year := time.Now().Year()
	day := func(m time.Month, d int) time.Time {
		return time.Date(year, m, d, 0, 0, 0, 0, time.UTC)
	}

	seasons := []domain.Season{
		{
			ID: uuid.NewString(), Name: "Temporada Media", Slug: "temporada-media",
			StartDate: day(time.April, 1), EndDate: day(time.June, 30),
			PriceLessThanWeek: 115, PriceOneWeek: 105, PriceTwoWeeks: 95, PriceThreeWeeks: 85,
			MinDays: 3, IsActive: true,
		},
		{
			ID: uuid.NewString(), Name: "Temporada Alta", Slug: "temporada-alta",
			StartDate: day(time.July, 1), EndDate: day(time.August, 31),
			PriceLessThanWeek: 145, PriceOneWeek: 135, PriceTwoWeeks: 125, PriceThreeWeeks: 115,
			MinDays: 5, IsActive: true,
		},
		{
			ID: uuid.NewString(), Name: "Temporada Media", Slug: "temporada-media-otono",
			StartDate: day(time.September, 1), EndDate: day(time.October, 15),
			PriceLessThanWeek: 115, PriceOneWeek: 105, PriceTwoWeeks: 95, PriceThreeWeeks: 85,
			MinDays: 3, IsActive: true,
		},
	}
	for i := range seasons {
		db.Create(&seasons[i])
	}

	log.Println("Seed complete.")
}
