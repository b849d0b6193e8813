package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/config"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/database"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/middleware"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/modules/auth"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/modules/store"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/modules/user"
	jwtsvc "github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/jwt"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/sms"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOtpTokenRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	mappingRepo := repository.NewStoreMappingRepository(db)

	j := jwtsvc.New(cfg.ATSecret, cfg.RTSecret, cfg.Issuer, cfg.ATExpiry, cfg.RTExpiry)

	gateway := sms.NewClient(sms.GupshupConfig{
		URL:      cfg.GupshupURL,
		UserID:   cfg.GupshupUserID,
		Password: cfg.GupshupPwd,
	}, cfg.FirebaseAPIKey, cfg.RequestTimeout)

	warehouse := store.NewWarehouseClient(cfg.WarehouseURL, cfg.RzAuthKey, cfg.RequestTimeout)

	userService := user.NewService(userRepo)
	storeService := store.NewService(mappingRepo, warehouse)

	otpStore := auth.NewOtpStore(
		otpRepo,
		cfg.OtpDigits,
		cfg.OtpRetries,
		cfg.OtpExpiry,
		cfg.IsProduction(),
		cfg.InSmsWhitelist,
	)
	authService := auth.NewService(otpStore, refreshRepo, userService, storeService, gateway, j, db)
	authHandler := auth.NewHandler(authService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestTrace(), middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	authHandler.RegisterRoutes(v1, middleware.Auth(j), middleware.InternalTokenAuth(cfg.RzAuthKey))

	log.Printf("listening addr=:%s env=%s", cfg.Port, cfg.AppEnv)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
