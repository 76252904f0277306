package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// PatientHandlers serves the patient dashboard data
type PatientHandlers struct {
	medicationSvc domain.MedicationService
}

// NewPatientHandlers creates new patient handlers
func NewPatientHandlers(medicationSvc domain.MedicationService) *PatientHandlers {
	return &PatientHandlers{medicationSvc: medicationSvc}
}

// LogIntakeRequest records the outcome of a scheduled dose
type LogIntakeRequest struct {
	PrescriptionID string `json:"prescription_id" binding:"required"`
	Status         string `json:"status" binding:"required"`
}

// Prescriptions lists the caller's active prescriptions
func (h *PatientHandlers) Prescriptions(c *gin.Context) {
	userID, _ := c.Get("user_id")

	prescriptions, err := h.medicationSvc.ActivePrescriptions(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list prescriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": prescriptionList(prescriptions)})
}

// Logs lists the caller's recent medication logs, newest first
func (h *PatientHandlers) Logs(c *gin.Context) {
	userID, _ := c.Get("user_id")

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	logs, err := h.medicationSvc.RecentLogs(c.Request.Context(), userID.(string), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list medication logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": logList(logs)})
}

// LogIntake records that the caller took or skipped a dose
func (h *PatientHandlers) LogIntake(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req LogIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := domain.ParseIntakeStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be taken or skipped"})
		return
	}

	entry, err := h.medicationSvc.LogIntake(c.Request.Context(), userID.(string), req.PrescriptionID, status)
	if err != nil {
		switch err {
		case domain.ErrInvalidIntakeStatus:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be taken or skipped"})
		case domain.ErrPrescriptionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		case domain.ErrNotPrescribedToUser:
			c.JSON(http.StatusForbidden, gin.H{"error": "Prescription does not belong to you"})
		case domain.ErrPrescriptionInactive:
			c.JSON(http.StatusConflict, gin.H{"error": "Prescription is no longer active"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log intake"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": logJSON(*entry)})
}

func prescriptionList(prescriptions []domain.Prescription) []gin.H {
	out := make([]gin.H, 0, len(prescriptions))
	for _, p := range prescriptions {
		out = append(out, prescriptionJSON(p))
	}
	return out
}

func prescriptionJSON(p domain.Prescription) gin.H {
	item := gin.H{
		"id":           p.ID,
		"patient_id":   p.PatientID,
		"nurse_id":     p.NurseID,
		"medicine_id":  p.MedicineID,
		"dosage":       p.Dosage,
		"frequency":    p.Frequency,
		"instructions": p.Instructions,
		"active":       p.Active,
		"created_at":   p.CreatedAt,
	}
	if p.Medicine != nil {
		item["medicine"] = gin.H{
			"id":          p.Medicine.ID,
			"name":        p.Medicine.Name,
			"description": p.Medicine.Description,
		}
	}
	return item
}

func logList(logs []domain.MedicationLog) []gin.H {
	out := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		out = append(out, logJSON(l))
	}
	return out
}

func logJSON(l domain.MedicationLog) gin.H {
	item := gin.H{
		"id":              l.ID,
		"prescription_id": l.PrescriptionID,
		"patient_id":      l.PatientID,
		"status":          l.Status,
		"taken_at":        l.TakenAt,
	}
	if l.Prescription != nil {
		item["prescription"] = prescriptionJSON(*l.Prescription)
	}
	return item
}
