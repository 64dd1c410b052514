package app

import (
	"fmt"
	"time"

	"adminkit_backend/database"
	"adminkit_backend/internal/cache"
	"adminkit_backend/internal/config"
	"adminkit_backend/internal/handlers"
	"adminkit_backend/internal/logger"
	"adminkit_backend/internal/middleware"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/repositories"
	"adminkit_backend/internal/routes"
	"adminkit_backend/internal/security"
	"adminkit_backend/internal/services"
	"adminkit_backend/internal/session"
	"adminkit_backend/internal/utils"
	"adminkit_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	hasher := security.NewHasher(
		cfg.Security.Argon2.Memory,
		cfg.Security.Argon2.Time,
		cfg.Security.Argon2.Threads,
	)

	if err := seedFirstOwner(gormDB, cfg, hasher); err != nil {
		logger.Fatal("Failed to seed first owner user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	// Redis опционален: без него сессии и кэш живут в памяти процесса.
	redisClient := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	var cacheStore cache.Cache
	var sessionStore session.Store
	if redisClient != nil {
		cacheStore = cache.NewRedisCache(redisClient)
		sessionStore = session.NewRedisStore(redisClient)
		logger.Info("Redis connected", "addr", cfg.Redis.Addr)
	} else {
		cacheStore = cache.NewMemoryCache()
		sessionStore = session.NewMemoryStore()
		logger.Warn("Redis unavailable, using in-memory cache and sessions")
	}

	encryptor := security.NewEncryptor(cfg.Security.AppSecret)
	hasher := security.NewHasher(
		cfg.Security.Argon2.Memory,
		cfg.Security.Argon2.Time,
		cfg.Security.Argon2.Threads,
	)
	sessionManager := session.NewManager(
		sessionStore,
		encryptor,
		time.Duration(cfg.Security.SessionTTLMinutes)*time.Minute,
	)

	serviceContainer := initializeServices(cfg, gormDB, cacheStore, hasher)
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	ginRouter := initializeGinRouter(cfg, sessionManager, serviceContainer.LogService)
	routes.RegisterRoutes(ginRouter, appHandlers, serviceContainer, cfg)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, cacheStore cache.Cache, hasher *security.Hasher) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(gormDB)
	banRepo := repositories.NewBanRepository(gormDB)
	logRepo := repositories.NewLogRepository(gormDB)
	auditRepo := repositories.NewAuditRepository(gormDB)
	subscriberRepo := repositories.NewSubscriberRepository(gormDB)

	mailer := utils.NewEmailSender(cfg)

	logService := services.NewLogService(logRepo, auditRepo, cfg)
	authService := services.NewAuthService(userRepo, logService, hasher, cacheStore, mailer, cfg)
	userService := services.NewUserService(userRepo, authService, logService, hasher)
	banService := services.NewBanService(banRepo, userRepo, subscriberRepo, authService, logService)
	notificationService := services.NewNotificationService(subscriberRepo, auditRepo)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		BanService:          banService,
		LogService:          logService,
		NotificationService: notificationService,
	}
}

func initializeGinRouter(cfg *config.Config, sessionManager *session.Manager, logService services.LogService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.EscapeRequestData())
	router.Use(middleware.SessionMiddleware(sessionManager, logService, cfg))
	return router
}

// seedFirstOwner создает первого пользователя с ролью OWNER, когда
// таблица пользователей пуста. Без него в свежую инсталляцию некому
// заходить в админку.
func seedFirstOwner(db *gorm.DB, cfg *config.Config, hasher *security.Hasher) error {
	if cfg.App.OwnerUsername == "" || cfg.App.OwnerPassword == "" {
		logger.Warn("Owner credentials are not configured, skipping owner seeding")
		return nil
	}

	userRepo := repositories.NewUserRepository(db)

	total, err := userRepo.CountAll()
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if total > 0 {
		return nil
	}

	hash, err := hasher.HashPassword(cfg.App.OwnerPassword)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	token, err := security.RandomToken(cfg.Security.TokenLength)
	if err != nil {
		return fmt.Errorf("failed to generate owner token: %w", err)
	}

	now := time.Now()
	owner := &models.User{
		Username:       cfg.App.OwnerUsername,
		Password:       hash,
		Role:           models.UserRoleOwner,
		RegisterTime:   now,
		LastLoginTime:  now,
		UserToken:      token,
		ProfilePicture: models.DefaultProfilePicture,
	}

	if err := userRepo.Create(owner); err != nil {
		return fmt.Errorf("failed to create owner user: %w", err)
	}

	logger.Info("Seeded first owner user", "username", owner.Username)
	return nil
}
