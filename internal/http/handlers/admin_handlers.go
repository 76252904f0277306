package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// AdminHandlers serves the admin dashboard: aggregate stats, the medicine
// catalog, account listings, and nurse/patient assignment management.
type AdminHandlers struct {
	authSvc          domain.AuthService
	careSvc          domain.CareService
	medicineRepo     domain.MedicineRepository
	prescriptionRepo domain.PrescriptionRepository
	profileRepo      domain.ProfileRepository
	roleRepo         domain.RoleRepository
	nursePatientRepo domain.NursePatientRepository
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(
	authSvc domain.AuthService,
	careSvc domain.CareService,
	medicineRepo domain.MedicineRepository,
	prescriptionRepo domain.PrescriptionRepository,
	profileRepo domain.ProfileRepository,
	roleRepo domain.RoleRepository,
	nursePatientRepo domain.NursePatientRepository,
) *AdminHandlers {
	return &AdminHandlers{
		authSvc:          authSvc,
		careSvc:          careSvc,
		medicineRepo:     medicineRepo,
		prescriptionRepo: prescriptionRepo,
		profileRepo:      profileRepo,
		roleRepo:         roleRepo,
		nursePatientRepo: nursePatientRepo,
	}
}

// CreateMedicineRequest adds a catalog entry
type CreateMedicineRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// AssignmentRequest binds a patient to a nurse's care list
type AssignmentRequest struct {
	NurseID   string `json:"nurse_id" binding:"required"`
	PatientID string `json:"patient_id" binding:"required"`
}

// Stats returns the dashboard counters
func (h *AdminHandlers) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	stats := domain.AdminStats{}
	var err error

	if stats.TotalPatients, err = h.roleRepo.CountByRole(ctx, domain.RolePatient); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	if stats.TotalNurses, err = h.roleRepo.CountByRole(ctx, domain.RoleNurse); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	if stats.TotalMedicines, err = h.medicineRepo.Count(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	if stats.TotalPrescriptions, err = h.prescriptionRepo.Count(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"total_patients":      stats.TotalPatients,
			"total_nurses":        stats.TotalNurses,
			"total_medicines":     stats.TotalMedicines,
			"total_prescriptions": stats.TotalPrescriptions,
		},
	})
}

// Medicines lists the medicine catalog
func (h *AdminHandlers) Medicines(c *gin.Context) {
	medicines, err := h.medicineRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list medicines"})
		return
	}

	out := make([]gin.H, 0, len(medicines))
	for _, m := range medicines {
		out = append(out, gin.H{
			"id":          m.ID,
			"name":        m.Name,
			"description": m.Description,
			"created_at":  m.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// CreateMedicine adds a catalog entry
func (h *AdminHandlers) CreateMedicine(c *gin.Context) {
	var req CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	medicine := &domain.Medicine{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := h.medicineRepo.Create(c.Request.Context(), medicine); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create medicine"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"id": medicine.ID, "name": medicine.Name}})
}

// DeleteMedicine removes a catalog entry
func (h *AdminHandlers) DeleteMedicine(c *gin.Context) {
	if err := h.medicineRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if err == domain.ErrMedicineNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete medicine"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Medicine deleted"}})
}

// Users lists all accounts with profile and role
func (h *AdminHandlers) Users(c *gin.Context) {
	accounts, err := h.profileRepo.ListWithRoles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	out := make([]gin.H, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, gin.H{
			"id":             a.User.ID,
			"email":          a.User.Email,
			"first_name":     a.Profile.FirstName,
			"last_name":      a.Profile.LastName,
			"phone":          a.Profile.Phone,
			"role":           a.Role,
			"is_active":      a.User.IsActive,
			"email_verified": a.User.EmailVerified,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// CreateUser registers an account on a user's behalf. The account still
// goes through email verification like a self-registered one.
func (h *AdminHandlers) CreateUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := domain.ParseRole(req.Role)
	if !role.Known() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), domain.Registration{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Role:      role,
	})
	if err != nil {
		if err == domain.ErrUserAlreadyExists {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"user_id": user.ID}})
}

// AssignNursePatient puts a patient on a nurse's care list (idempotent)
func (h *AdminHandlers) AssignNursePatient(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.careSvc.AssignPatient(c.Request.Context(), req.NurseID, req.PatientID); err != nil {
		if err == domain.ErrInvalidRole {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assignment requires a nurse and a patient"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Patient assigned"}})
}

// UnassignNursePatient removes a patient from a nurse's care list
func (h *AdminHandlers) UnassignNursePatient(c *gin.Context) {
	var req AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.nursePatientRepo.Unassign(c.Request.Context(), req.NurseID, req.PatientID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unassign patient"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Patient unassigned"}})
}
