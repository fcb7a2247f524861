// Package notification contains the fan-out record written for every message
// the service attempts to send. Notifications are never authoritative state;
// a failure to create one must never affect a committed load transition.
package notification

import (
	"errors"
	"fmt"
	"time"

	"meddrop/internal/core/domain/model/kernel"
	"meddrop/internal/pkg/errs"
)

// Channel identifies the delivery mechanism of a notification.
type Channel int

const (
	// ChannelUnknown is the invalid zero value.
	ChannelUnknown Channel = iota

	// ChannelEmail is an email message.
	ChannelEmail

	// ChannelSMS is a text message.
	ChannelSMS

	// ChannelInApp is an in-app message delivered via the message broker.
	ChannelInApp
)

func channelStrings() map[Channel]string {
	return map[Channel]string{
		ChannelUnknown: "UNKNOWN",
		ChannelEmail:   "EMAIL",
		ChannelSMS:     "SMS",
		ChannelInApp:   "IN_APP",
	}
}

// String returns the wire representation of the channel.
func (c Channel) String() string {
	if str, ok := channelStrings()[c]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate reports whether the channel is one of the defined values.
func (c Channel) Validate() error {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelInApp:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"channel", fmt.Errorf("%d is not a valid notification channel", c))
	}
}

// Notification records one attempted message about a load.
type Notification struct {
	id        kernel.UUID
	loadID    kernel.UUID
	channel   Channel
	recipient string
	subject   string
	body      string
	createdAt time.Time

	isConstructed bool
}

// NewNotification creates a notification record. subject is optional for
// channels without one (SMS, in-app).
func NewNotification(
	id, loadID kernel.UUID,
	channel Channel,
	recipient, subject, body string,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(id.Validate(), loadID.Validate(), channel.Validate()); err != nil {
		return nil, err
	}
	if recipient == "" {
		return nil, errs.NewValueIsRequiredError("recipient")
	}
	if body == "" {
		return nil, errs.NewValueIsRequiredError("body")
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Notification{
		id:            id,
		loadID:        loadID,
		channel:       channel,
		recipient:     recipient,
		subject:       subject,
		body:          body,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the notification was created through its constructor.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return errors.New("Notification must be created via NewNotification constructor")
	}
	return nil
}

// ID returns the notification identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// LoadID returns the load this notification is about.
func (n *Notification) LoadID() kernel.UUID { return n.loadID }

// Channel returns the delivery channel.
func (n *Notification) Channel() Channel { return n.channel }

// Recipient returns the destination address, number or principal.
func (n *Notification) Recipient() string { return n.recipient }

// Subject returns the optional subject line.
func (n *Notification) Subject() string { return n.subject }

// Body returns the message body.
func (n *Notification) Body() string { return n.body }

// CreatedAt returns when the notification was recorded.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
