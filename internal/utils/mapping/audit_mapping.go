package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/SscSPs/account_ledger/internal/models"
)

// ToModelAuditEvent converts a domain AuditEvent to a model AuditEvent
func ToModelAuditEvent(d domain.AuditEvent) (models.AuditEvent, error) {
	details := []byte("{}")
	if len(d.Details) > 0 {
		var err error
		details, err = json.Marshal(d.Details)
		if err != nil {
			return models.AuditEvent{}, fmt.Errorf("audit event %s details: %w", d.EventID, err)
		}
	}
	m := models.AuditEvent{
		EventID:   d.EventID,
		Actor:     d.Actor,
		Action:    string(d.Action),
		Entity:    d.Entity,
		EntityID:  d.EntityID,
		Details:   details,
		CreatedAt: d.CreatedAt,
	}
	if d.CustomerID != "" {
		customerID := d.CustomerID
		m.CustomerID = &customerID
	}
	return m, nil
}
