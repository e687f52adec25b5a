// Package notification builds request documents for the OneSignal
// "create notification" endpoint.
//
// A builder per channel (Push, Email, Sms) shares targeting, filters and body
// parameters and adds channel-specific setters. Setters chain and never return
// errors: the first failure is kept and returned by Err and Build. Build runs
// the local checks and returns an immutable *Notification whose document keeps
// attribute insertion order when encoded.
//
// # Usage
//
//	n, err := notification.NewContentsPush(notification.Text("Hello")).
//	    SetHeadings(notification.Text("Greetings").With(language.German, "Hallo")).
//	    SetIncludedSegments(fields.SegmentSubscribedUsers).
//	    AddFilterTag("level", fields.RelationGreater, "10").
//	    AddFilterOrClause().
//	    AddFilterAmountSpent(fields.RelationGreater, "0").
//	    SetExternalID(notification.NewExternalID()).
//	    Build()
//	if err != nil {
//	    // errors.Is(err, notification.ErrInvalidArgument)
//	}
//
// Emails can render their body from a templ component:
//
//	n, err := notification.NewEmail().
//	    SetEmailSubject("Welcome").
//	    SetEmailBodyComponent(ctx, templates.Welcome(user)).
//	    SetIncludeEmailTokens(user.Email).
//	    Build()
//
// Validation failures all wrap ErrInvalidArgument and nothing is sent for them.
package notification
