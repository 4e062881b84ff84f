package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"camperrent/internal/config"
	"camperrent/internal/database"
	"camperrent/internal/jobs"
	"camperrent/internal/middleware"
	"camperrent/internal/modules/admin"
	"camperrent/internal/modules/auth"
	"camperrent/internal/modules/availability"
	"camperrent/internal/modules/booking"
	"camperrent/internal/modules/notification"
	"camperrent/internal/modules/payment"
	"camperrent/internal/modules/pricing"
	jwtsvc "camperrent/internal/pkg/jwt"
	"camperrent/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	loggerf := log.Printf

	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reconcileRepo := repository.NewReconcileRepository(db)
	seasonRepo := repository.NewSeasonRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	blockedRepo := repository.NewBlockedDateRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	userRepo := repository.NewUserRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	engine := pricing.NewEngine(pricing.FallbackRates{
		Name:              cfg.Fallback.Name,
		PriceLessThanWeek: cfg.Fallback.PriceLessThanWeek,
		PriceOneWeek:      cfg.Fallback.PriceOneWeek,
		PriceTwoWeeks:     cfg.Fallback.PriceTwoWeeks,
		PriceThreeWeeks:   cfg.Fallback.PriceThreeWeeks,
		MinDays:           cfg.Fallback.MinDays,
	})

	alertHub := notification.NewAlertHub()
	defer alertHub.Close()
	notifService := notification.NewService(notification.NewEmailClient(cfg.Email), alertHub, loggerf)
	notifHandler := notification.NewHandler(alertHub, loggerf)

	var signer *payment.Signer
	if cfg.Redsys.SecretKey != "" {
		signer, err = payment.NewSigner(cfg.Redsys.SecretKey)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		loggerf("level=warn msg=redsys credentials missing, payment endpoints disabled")
	}

	availabilityService := availability.NewService(vehicleRepo, bookingRepo, blockedRepo, seasonRepo, locationRepo, engine, loggerf)
	availabilityHandler := availability.NewHandler(availabilityService)

	bookingService := booking.NewService(bookingRepo, customerRepo, vehicleRepo, seasonRepo, locationRepo, engine, notifService, loggerf)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(paymentRepo, bookingRepo, reconcileRepo, customerRepo, notifService, signer, cfg.Redsys, loggerf)
	paymentHandler := payment.NewHandler(paymentService)

	authService := auth.NewService(userRepo, j, loggerf)
	authHandler := auth.NewHandler(authService)

	adminService := admin.NewService(blockedRepo, seasonRepo, vehicleRepo, loggerf)
	adminHandler := admin.NewHandler(adminService)

	expiry := jobs.NewExpiryJob(bookingRepo, cfg.PendingBookingTTL, loggerf)
	if err := expiry.Start(); err != nil {
		log.Fatal(err)
	}
	defer expiry.Stop()

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		availabilityHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		paymentHandler.RegisterRoutes(v1)
		authHandler.RegisterRoutes(v1)

		// back office
		protected := v1.Group("/admin")
		protected.Use(middleware.JWTAuth(j))
		{
			notifHandler.RegisterRoutes(protected)

			adminOnly := protected.Group("/")
			adminOnly.Use(middleware.AdminOnly())
			adminHandler.RegisterRoutes(adminOnly)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
