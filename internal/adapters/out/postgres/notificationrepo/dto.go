// Package notificationrepo records every message the service attempts to
// send. Records are informational only.
package notificationrepo

import (
	"fmt"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for notification records.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	LoadID    uuid.UUID `gorm:"type:uuid;index"`
	Channel   string
	Recipient string
	Subject   string
	Body      string
	CreatedAt time.Time
}

// TableName specifies the database table name for notification records.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(record *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        record.ID().Bytes(),
		LoadID:    record.LoadID().Bytes(),
		Channel:   record.Channel().String(),
		Recipient: record.Recipient(),
		Subject:   record.Subject(),
		Body:      record.Body(),
		CreatedAt: record.CreatedAt(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}

	channel, err := channelFromString(dto.Channel)
	if err != nil {
		return nil, err
	}

	return notification.NewNotification(
		id, loadID, channel, dto.Recipient, dto.Subject, dto.Body, dto.CreatedAt)
}

func channelFromString(s string) (notification.Channel, error) {
	for _, channel := range []notification.Channel{
		notification.ChannelEmail,
		notification.ChannelSMS,
		notification.ChannelInApp,
	} {
		if channel.String() == s {
			return channel, nil
		}
	}
	return notification.ChannelUnknown, fmt.Errorf("%q is not a known notification channel", s)
}
