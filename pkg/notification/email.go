package notification

import (
	"context"
	"errors"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/onesignal/pkg/fields"
)

// Email builds an email notification.
type Email struct {
	base[*Email]
}

// NewEmail returns an empty email builder.
func NewEmail() *Email {
	e := &Email{}
	e.init(e)
	return e
}

// NewBodyEmail returns an email builder with subject and HTML body set.
func NewBodyEmail(subject, body string) *Email {
	return NewEmail().SetEmailSubject(subject).SetEmailBody(body)
}

// NewTemplateEmail returns an email builder rendering a dashboard template.
func NewTemplateEmail(subject, templateID string) *Email {
	return NewEmail().SetEmailSubject(subject).SetTemplateID(templateID)
}

// Build validates the email and returns an immutable snapshot.
func (e *Email) Build() (*Notification, error) {
	return e.finalize(ChannelEmail,
		rule{
			check: func() bool { return e.present(fields.EmailSubject) || e.present(fields.TemplateID) },
			err:   ErrMissingSubject,
		},
		rule{
			check: func() bool { return e.present(fields.EmailBody) || e.present(fields.TemplateID) },
			err:   ErrMissingEmailBody,
		},
	)
}

func (e *Email) SetEmailSubject(subject string) *Email {
	return e.set(fields.EmailSubject, subject)
}

// SetEmailBody sets the HTML body.
func (e *Email) SetEmailBody(body string) *Email {
	return e.set(fields.EmailBody, body)
}

// SetEmailBodyComponent renders c and uses the result as the HTML body.
func (e *Email) SetEmailBodyComponent(ctx context.Context, c templ.Component) *Email {
	var buf strings.Builder
	if err := c.Render(ctx, &buf); err != nil {
		return e.fail(errors.Join(ErrRenderEmailBody, err))
	}
	return e.SetEmailBody(buf.String())
}

func (e *Email) SetEmailFromName(name string) *Email {
	return e.set(fields.EmailFromName, name)
}

func (e *Email) SetEmailFromAddress(address string) *Email {
	return e.set(fields.EmailFromAddress, address)
}

func (e *Email) SetEmailPreheader(preheader string) *Email {
	return e.set(fields.EmailPreheader, preheader)
}

func (e *Email) SetDisableEmailClickTracking(v bool) *Email {
	return e.set(fields.DisableEmailClickTracking, v)
}
