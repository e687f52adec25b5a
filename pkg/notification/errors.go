package notification

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the root of every local validation failure.
// Nothing wrapping it is ever sent over the wire.
var ErrInvalidArgument = errors.New("invalid notification argument")

var (
	ErrEmptyAttributeName = fmt.Errorf("%w: attribute name is required", ErrInvalidArgument)
	ErrEmptyNotification  = fmt.Errorf("%w: notification cannot be empty", ErrInvalidArgument)
	ErrMissingContent     = fmt.Errorf("%w: contents are required unless content_available=true or template_id is set", ErrInvalidArgument)
	ErrMissingEmailBody   = fmt.Errorf("%w: email_body is required unless template_id is set", ErrInvalidArgument)
	ErrMissingSubject     = fmt.Errorf("%w: email_subject is required unless template_id is set", ErrInvalidArgument)
	ErrMissingDefaultText = fmt.Errorf("%w: invalid or missing default text (\"en\")", ErrInvalidArgument)
	ErrValueOutOfRange    = fmt.Errorf("%w: value out of range", ErrInvalidArgument)
	ErrInvalidRelation    = fmt.Errorf("%w: unsupported filter relation", ErrInvalidArgument)
	ErrInvalidTags        = fmt.Errorf("%w: unsupported tags value", ErrInvalidArgument)
	ErrInvalidFilters     = fmt.Errorf("%w: unsupported filters value", ErrInvalidArgument)
	ErrDeliveryTimeOfDay  = fmt.Errorf("%w: delivery_time_of_day must be used with delayed_option=timezone", ErrInvalidArgument)
)

// ErrRenderEmailBody is returned when a templ component fails to render.
var ErrRenderEmailBody = errors.New("failed to render email body")
