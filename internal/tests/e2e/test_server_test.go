package e2e

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/config"
	httpx "github.com/Rullyeff/imo-mantap-sehat-app/internal/http"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/http/handlers"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/http/middleware"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/auth"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/database"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/repositories"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/services"
)

// testEnv runs the full HTTP stack in-process: gin router over an
// in-memory sqlite database and a miniredis instance, with a capturing
// notifier in place of Twilio.
type testEnv struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *miniredis.Miniredis
	Notifier *capturingNotifier
	Server   *httptest.Server
	Client   *http.Client

	UserRepo         domain.UserRepository
	ProfileRepo      domain.ProfileRepository
	RoleRepo         domain.RoleRepository
	MedicineRepo     domain.MedicineRepository
	PrescriptionRepo domain.PrescriptionRepository
	NursePatientRepo domain.NursePatientRepository
}

// newTestEnv builds a fresh environment per test. Everything is wired
// the same way app.Run does it, except for storage backends and the
// notifier.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig(t)

	db, err := gorm.Open(sqlite.Open(uniqueDBName()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cas, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	if err != nil {
		t.Fatalf("casbin: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	sessionRepo := repositories.NewSessionRepository(rdb, cfg.RefreshTTL)
	medicineRepo := repositories.NewMedicineRepository(db)
	prescriptionRepo := repositories.NewPrescriptionRepository(db)
	logRepo := repositories.NewMedicationLogRepository(db)
	nursePatientRepo := repositories.NewNursePatientRepository(db)

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	notifier := newCapturingNotifier()

	verificationSvc := services.NewVerificationService(notifier, userRepo, rdb, services.VerificationConfig{
		TTL:          cfg.VerificationTTL,
		ResendWindow: cfg.VerificationResend,
	})
	authSvc := services.NewAuthService(userRepo, profileRepo, roleRepo, sessionRepo, passwordSvc, tokenSvc, verificationSvc)
	medicationSvc := services.NewMedicationService(prescriptionRepo, logRepo)
	careSvc := services.NewCareService(nursePatientRepo, prescriptionRepo, logRepo, medicineRepo, roleRepo)

	authH := handlers.NewAuthHandlers(authSvc, verificationSvc, userRepo)
	patientH := handlers.NewPatientHandlers(medicationSvc)
	nurseH := handlers.NewNurseHandlers(careSvc)
	adminH := handlers.NewAdminHandlers(authSvc, careSvc, medicineRepo, prescriptionRepo, profileRepo, roleRepo, nursePatientRepo)
	polH := &handlers.PolicyHandlers{E: cas.E}

	jwtMW := middleware.NewAuthMW(tokenSvc, sessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	router := httpx.BuildRouter(authH, patientH, nurseH, adminH, polH, jwtMW, casbinMW)

	if err := services.SeedDefaultPolicies(services.NewPolicyService(cas.E)); err != nil {
		t.Fatalf("seed policies: %v", err)
	}

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		rdb.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &testEnv{
		Config:           cfg,
		DB:               db,
		Redis:            mr,
		Notifier:         notifier,
		Server:           server,
		Client:           &http.Client{Timeout: 30 * time.Second},
		UserRepo:         userRepo,
		ProfileRepo:      profileRepo,
		RoleRepo:         roleRepo,
		MedicineRepo:     medicineRepo,
		PrescriptionRepo: prescriptionRepo,
		NursePatientRepo: nursePatientRepo,
	}
}

// URL returns the full URL for a given path.
func (env *testEnv) URL(path string) string {
	return env.Server.URL + path
}

// capturingNotifier records outbound messages instead of calling Twilio.
type capturingNotifier struct {
	mu     sync.Mutex
	Emails []capturedEmail
	SMS    []capturedSMS
}

type capturedEmail struct {
	To      string
	Subject string
	Body    string
}

type capturedSMS struct {
	To      string
	Message string
}

func newCapturingNotifier() *capturingNotifier {
	return &capturingNotifier{}
}

func (n *capturingNotifier) SendSMS(to, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.SMS = append(n.SMS, capturedSMS{To: to, Message: message})
	return nil
}

func (n *capturingNotifier) SendEmail(to, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Emails = append(n.Emails, capturedEmail{To: to, Subject: subject, Body: body})
	return nil
}

// LastEmailTo returns the most recent email sent to the address.
func (n *capturingNotifier) LastEmailTo(to string) *capturedEmail {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.Emails) - 1; i >= 0; i-- {
		if n.Emails[i].To == to {
			return &n.Emails[i]
		}
	}
	return nil
}

// EmailCount returns how many emails have been captured.
func (n *capturingNotifier) EmailCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Emails)
}
