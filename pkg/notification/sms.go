package notification

import "github.com/dmitrymomot/onesignal/pkg/fields"

// Sms builds an SMS notification.
type Sms struct {
	base[*Sms]
}

// NewSms returns an empty SMS builder.
func NewSms() *Sms {
	s := &Sms{}
	s.init(s)
	return s
}

// NewContentsSms returns an SMS builder with name and contents set.
func NewContentsSms(name string, contents LocalizedText) *Sms {
	return NewSms().SetName(name).SetContents(contents)
}

// Build validates the SMS and returns an immutable snapshot.
func (s *Sms) Build() (*Notification, error) {
	return s.finalize(ChannelSMS, rule{
		check: func() bool {
			return s.present(fields.Contents) || s.present(fields.TemplateID)
		},
		err: ErrMissingContent,
	})
}

// SetSmsFrom sets the sender phone number in E.164 format.
func (s *Sms) SetSmsFrom(from string) *Sms {
	return s.set(fields.SmsFrom, from)
}

func (s *Sms) SetContents(contents LocalizedText) *Sms {
	return s.setText(fields.Contents, contents)
}

// SetSmsMediaURLs attaches MMS media. Supported by US and Canadian numbers only.
func (s *Sms) SetSmsMediaURLs(urls ...string) *Sms {
	return s.set(fields.SmsMediaURLs, urls)
}
