package services

import (
	"encoding/json"
	"fmt"

	"github.com/ascendapp/ascend-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier persists notification rows and forwards them to the push
// dispatcher. Delivery is best-effort; callers never block on the result.
type Notifier struct {
	db   *gorm.DB
	push *PushService
}

func NewNotifier(db *gorm.DB, push *PushService) *Notifier {
	return &Notifier{db: db, push: push}
}

// Notify creates a notification row for the user and sends a push message.
func (n *Notifier) Notify(userID uuid.UUID, notifType, title, body string, metadata map[string]interface{}) error {
	notif := models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
	}

	var pushData map[string]string
	if metadata != nil {
		if data, err := json.Marshal(metadata); err == nil {
			s := string(data)
			notif.Metadata = &s
		}
		pushData = make(map[string]string, len(metadata)+1)
		for k, v := range metadata {
			pushData[k] = fmt.Sprintf("%v", v)
		}
		pushData["type"] = notifType
	}

	if err := n.db.Create(&notif).Error; err != nil {
		return err
	}

	n.push.SendToUser(userID, title, body, pushData)
	return nil
}
