package app

import (
	"context"
	"log"
	"net/http"

	"github.com/Rullyeff/imo-mantap-sehat-app/internal/config"
	httpx "github.com/Rullyeff/imo-mantap-sehat-app/internal/http"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/http/handlers"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/http/middleware"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/auth"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/infrastructure/database"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/services"
)

func Run(cfg *config.Config) error {
	gdb, err := database.Open(cfg.DSN); if err != nil { return err }
	if err := database.AutoMigrate(gdb); err != nil { return err }
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath); if err != nil { return err }
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil { return err }

	c := NewContainer(cfg, gdb, rdb.Client)

	// Initialize handlers
	authH := handlers.NewAuthHandlers(c.AuthSvc, c.VerificationSvc, c.UserRepo)
	patientH := handlers.NewPatientHandlers(c.MedicationSvc)
	nurseH := handlers.NewNurseHandlers(c.CareSvc)
	adminH := handlers.NewAdminHandlers(c.AuthSvc, c.CareSvc, c.MedicineRepo, c.PrescriptionRepo, c.ProfileRepo, c.RoleRepo, c.NursePatientRepo)
	polH := &handlers.PolicyHandlers{E: cas.E}

	// Initialize middleware
	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	// Build router
	r := httpx.BuildRouter(authH, patientH, nurseH, adminH, polH, jwtMW, casbinMW)

	policySvc := services.NewPolicyService(cas.E)
	if err := services.SeedDefaultPolicies(policySvc); err != nil { return err }
	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
