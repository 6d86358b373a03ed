package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/config"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/infrastructure/auth"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/infrastructure/database"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/infrastructure/media"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/infrastructure/notifications"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/infrastructure/repositories"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo    domain.UserRepository
	CodeRepo    domain.CodeRepository
	SessionRepo domain.SessionRepository
	CourseRepo  domain.CourseRepository
	CartRepo    domain.CartRepository
	OrderRepo   domain.OrderRepository
	EnrollRepo  domain.EnrollmentRepository
	Transactor  domain.Transactor

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	MediaProbeSvc   domain.MediaProbeService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	CatalogSvc      domain.CatalogService
	CartSvc         domain.CartService
	CheckoutSvc     domain.CheckoutService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.CodeRepo = repositories.NewCodeRepository(c.RedisClient)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.CourseRepo = repositories.NewCourseRepository(c.DB)
	c.CartRepo = repositories.NewCartRepository(c.DB)
	c.OrderRepo = repositories.NewOrderRepository(c.DB)
	c.EnrollRepo = repositories.NewEnrollmentRepository(c.DB)
	c.Transactor = database.NewTransactor(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService(c.Config.PasswordMinLength)
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)
	c.MediaProbeSvc = media.NewFFProbeService(c.Config.FFProbePath)

	c.OTPSvc = services.NewOTPService(c.CodeRepo, c.NotificationSvc, services.OTPConfig{
		Length:   c.Config.OTPLength,
		TTL:      c.Config.OTPTTL,
		Cooldown: c.Config.OTPCooldown,
	})
	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.Config.RefreshTTL,
		c.Config.AccessTTL,
	)
	c.CatalogSvc = services.NewCatalogService(c.CourseRepo, c.MediaProbeSvc, c.Transactor)
	c.CartSvc = services.NewCartService(c.CartRepo, c.CourseRepo, c.Transactor)
	c.CheckoutSvc = services.NewCheckoutService(c.CartRepo, c.CourseRepo, c.OrderRepo, c.EnrollRepo, c.Transactor)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
