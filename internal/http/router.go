package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/http/handlers"
	"github.com/Rullyeff/imo-mantap-sehat-app/internal/http/middleware"
)

func BuildRouter(
	ah *handlers.AuthHandlers,
	ph *handlers.PatientHandlers,
	nh *handlers.NurseHandlers,
	adh *handlers.AdminHandlers,
	polh *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New(); r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context){ c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/verify-email", ah.VerifyEmail)
	auth.POST("/verify-email/resend", ah.ResendVerification)
	auth.POST("/refresh", ah.Refresh)

	me := r.Group("/auth").Use(jwtmw.WithJWT(), cb.Enforce())
	me.GET("/me", ah.Me)
	me.POST("/logout", ah.Logout)

	patient := r.Group("/patient").Use(jwtmw.WithJWT(), cb.Enforce(), middleware.RequireRoles(domain.RolePatient))
	patient.GET("/prescriptions", ph.Prescriptions)
	patient.GET("/medication-logs", ph.Logs)
	patient.POST("/medication-logs", ph.LogIntake)

	nurse := r.Group("/nurse").Use(jwtmw.WithJWT(), cb.Enforce(), middleware.RequireRoles(domain.RoleNurse))
	nurse.GET("/patients", nh.Patients)
	nurse.GET("/patients/:id/prescriptions", nh.PatientPrescriptions)
	nurse.POST("/prescriptions", nh.Prescribe)
	nurse.POST("/prescriptions/:id/deactivate", nh.DeactivatePrescription)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce(), middleware.RequireRoles(domain.RoleAdmin))
	adm.GET("/stats", adh.Stats)
	adm.GET("/medicines", adh.Medicines)
	adm.POST("/medicines", adh.CreateMedicine)
	adm.DELETE("/medicines/:id", adh.DeleteMedicine)
	adm.GET("/users", adh.Users)
	adm.POST("/users", adh.CreateUser)
	adm.POST("/nurse-patients", adh.AssignNursePatient)
	adm.DELETE("/nurse-patients", adh.UnassignNursePatient)
	adm.GET("/policies", polh.List)
	adm.POST("/policies", polh.Add)
	adm.DELETE("/policies", polh.Remove)

	return r
}
