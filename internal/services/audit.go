package services

import (
	"encoding/json"
	"log"

	"github.com/Rullyeff/imo-mantap-sehat-app/domain"
)

// Audit writes a structured audit event as a single JSON log line.
// Events are fire-and-forget: a marshal failure is reported but never
// propagated to the caller.
func Audit(event *domain.AuditEvent) {
	line, err := json.Marshal(event)
	if err != nil {
		log.Printf("audit: drop %s for %s: %v", event.EventType, event.UserID, err)
		return
	}
	log.Printf("audit: %s", line)
}
