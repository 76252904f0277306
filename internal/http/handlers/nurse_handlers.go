package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// NurseHandlers serves the nurse care dashboard
type NurseHandlers struct {
	careSvc domain.CareService
}

// NewNurseHandlers creates new nurse handlers
func NewNurseHandlers(careSvc domain.CareService) *NurseHandlers {
	return &NurseHandlers{careSvc: careSvc}
}

// PrescribeRequest creates a prescription for an assigned patient
type PrescribeRequest struct {
	PatientID    string `json:"patient_id" binding:"required"`
	MedicineID   string `json:"medicine_id" binding:"required"`
	Dosage       string `json:"dosage" binding:"required"`
	Frequency    string `json:"frequency" binding:"required"`
	Instructions string `json:"instructions,omitempty"`
}

// Patients lists the caller's assigned patients with adherence counters
func (h *NurseHandlers) Patients(c *gin.Context) {
	nurseID, _ := c.Get("user_id")

	summaries, err := h.careSvc.Patients(c.Request.Context(), nurseID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list patients"})
		return
	}

	out := make([]gin.H, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, gin.H{
			"patient": gin.H{
				"user_id":    s.Patient.UserID,
				"first_name": s.Patient.FirstName,
				"last_name":  s.Patient.LastName,
				"phone":      s.Patient.Phone,
			},
			"active_prescriptions": s.ActivePrescriptions,
			"logs_last_week":       s.LogsLastWeek,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// PatientPrescriptions lists the active prescriptions of an assigned patient
func (h *NurseHandlers) PatientPrescriptions(c *gin.Context) {
	nurseID, _ := c.Get("user_id")
	patientID := c.Param("id")

	prescriptions, err := h.careSvc.PatientPrescriptions(c.Request.Context(), nurseID.(string), patientID)
	if err != nil {
		if err == domain.ErrPatientNotAssigned {
			c.JSON(http.StatusForbidden, gin.H{"error": "Patient is not on your care list"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list prescriptions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": prescriptionList(prescriptions)})
}

// Prescribe creates a prescription for an assigned patient
func (h *NurseHandlers) Prescribe(c *gin.Context) {
	nurseID, _ := c.Get("user_id")

	var req PrescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prescription := &domain.Prescription{
		PatientID:    req.PatientID,
		MedicineID:   req.MedicineID,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Instructions: req.Instructions,
	}
	if err := h.careSvc.Prescribe(c.Request.Context(), nurseID.(string), prescription); err != nil {
		switch err {
		case domain.ErrPatientNotAssigned:
			c.JSON(http.StatusForbidden, gin.H{"error": "Patient is not on your care list"})
		case domain.ErrMedicineNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prescription"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": prescriptionJSON(*prescription)})
}

// DeactivatePrescription stops an active prescription of an assigned patient
func (h *NurseHandlers) DeactivatePrescription(c *gin.Context) {
	nurseID, _ := c.Get("user_id")
	prescriptionID := c.Param("id")

	if err := h.careSvc.DeactivatePrescription(c.Request.Context(), nurseID.(string), prescriptionID); err != nil {
		switch err {
		case domain.ErrPrescriptionNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		case domain.ErrPatientNotAssigned:
			c.JSON(http.StatusForbidden, gin.H{"error": "Patient is not on your care list"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate prescription"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Prescription deactivated"}})
}
