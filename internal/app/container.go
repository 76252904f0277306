package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/config"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/auth"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/notifications"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/repositories"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo         domain.UserRepository
	ProfileRepo      domain.ProfileRepository
	RoleRepo         domain.RoleRepository
	SessionRepo      domain.SessionRepository
	MedicineRepo     domain.MedicineRepository
	PrescriptionRepo domain.PrescriptionRepository
	LogRepo          domain.MedicationLogRepository
	NursePatientRepo domain.NursePatientRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	VerificationSvc domain.VerificationService
	AuthSvc         domain.AuthService
	MedicationSvc   domain.MedicationService
	CareSvc         domain.CareService
}

// NewContainer wires repositories and services over already-open
// database and Redis connections.
func NewContainer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Container {
	c := &Container{Config: cfg, DB: db, RedisClient: redisClient}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.ProfileRepo = repositories.NewProfileRepository(c.DB)
	c.RoleRepo = repositories.NewRoleRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.MedicineRepo = repositories.NewMedicineRepository(c.DB)
	c.PrescriptionRepo = repositories.NewPrescriptionRepository(c.DB)
	c.LogRepo = repositories.NewMedicationLogRepository(c.DB)
	c.NursePatientRepo = repositories.NewNursePatientRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
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

	c.VerificationSvc = services.NewVerificationService(
		c.NotificationSvc,
		c.UserRepo,
		c.RedisClient,
		services.VerificationConfig{
			TTL:          c.Config.VerificationTTL,
			ResendWindow: c.Config.VerificationResend,
		},
	)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.ProfileRepo,
		c.RoleRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.VerificationSvc,
	)

	c.MedicationSvc = services.NewMedicationService(c.PrescriptionRepo, c.LogRepo)
	c.CareSvc = services.NewCareService(
		c.NursePatientRepo,
		c.PrescriptionRepo,
		c.LogRepo,
		c.MedicineRepo,
		c.RoleRepo,
	)
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
