package notification

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/onesignal/pkg/fields"
)

// Channel identifies the delivery channel of a notification.
type Channel string

const (
	ChannelPush  Channel = "push"
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Builder is implemented by Push, Email and Sms.
type Builder interface {
	Build() (*Notification, error)
}

// Notification is a validated, immutable request document.
type Notification struct {
	channel Channel
	doc     *Document
}

// FromData wraps a raw document without validation.
func FromData(channel Channel, data map[string]any) (*Notification, error) {
	doc, err := DocumentFromMap(data)
	if err != nil {
		return nil, err
	}
	return &Notification{channel: channel, doc: doc.Clone()}, nil
}

// Channel returns the delivery channel.
func (n *Notification) Channel() Channel {
	return n.channel
}

// Data returns a fresh deep copy of the request document on every call.
func (n *Notification) Data() map[string]any {
	return n.doc.Map()
}

// Document returns an ordered deep copy of the request document.
func (n *Notification) Document() *Document {
	return n.doc.Clone()
}

// Targeted reports whether the document names any recipients.
func (n *Notification) Targeted() bool {
	for _, key := range targetingKeys {
		if v, ok := n.doc.Get(key); ok && !isEmpty(v) {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the document in insertion order.
func (n *Notification) MarshalJSON() ([]byte, error) {
	return n.doc.MarshalJSON()
}

var targetingKeys = []string{
	fields.IncludedSegments,
	fields.Filters,
	fields.IncludePlayerIDs,
	fields.IncludeExternalUserIDs,
	fields.IncludeEmailTokens,
	fields.IncludePhoneNumbers,
	fields.IncludeIosTokens,
	fields.IncludeWpWnsURIs,
	fields.IncludeAmazonRegIDs,
	fields.IncludeChromeRegIDs,
	fields.IncludeChromeWebRegIDs,
	fields.IncludeAndroidRegIDs,
}

// NewExternalID returns a random UUID suitable for SetExternalID.
// Reusing an id within 30 days makes OneSignal skip the duplicate request.
func NewExternalID() string {
	return uuid.NewString()
}
