// Package fields names every key, segment, relation and sentinel value of the
// OneSignal "create notification" API.
//
// The package is data only. Both the notification builders and the response
// classifier read their keys from here so a renamed API field changes in one place.
//
// # Usage
//
//	import "github.com/dmitrymomot/onesignal/pkg/fields"
//
//	push.SetIncludedSegments(fields.SegmentSubscribedUsers).
//	    AddFilterTag("level", fields.RelationGreater, "10")
package fields
