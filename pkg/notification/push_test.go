package notification_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onesignal/pkg/fields"
	"github.com/dmitrymomot/onesignal/pkg/notification"
)

func TestPush_Build_Minimal(t *testing.T) {
	t.Parallel()

	n, err := notification.NewContentsPush(notification.Text("Hello")).
		SetIncludedSegments(fields.SegmentSubscribedUsers).
		Build()
	require.NoError(t, err)

	assert.Equal(t, notification.ChannelPush, n.Channel())
	assert.Equal(t, map[string]any{
		"contents":          notification.LocalizedText{"en": "Hello"},
		"filters":           []notification.Filter{},
		"included_segments": []string{"Subscribed Users"},
	}, n.Data())

	body, err := json.Marshal(n)
	require.NoError(t, err)
	assert.JSONEq(t, `{"contents":{"en":"Hello"},"filters":[],"included_segments":["Subscribed Users"]}`, string(body))

	raw, err := n.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"contents":{"en":"Hello"},"filters":[],"included_segments":["Subscribed Users"]}`, string(raw))
}

func TestPush_Build_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		builder func() *notification.Push
		wantErr error
	}{
		{
			name:    "empty notification",
			builder: notification.NewPush,
			wantErr: notification.ErrEmptyNotification,
		},
		{
			name: "no content",
			builder: func() *notification.Push {
				return notification.NewPush().SetIncludedSegments(fields.SegmentAll)
			},
			wantErr: notification.ErrMissingContent,
		},
		{
			name: "content_available false is not content",
			builder: func() *notification.Push {
				return notification.NewPush().SetContentAvailable(false)
			},
			wantErr: notification.ErrMissingContent,
		},
		{
			name: "empty template id is not content",
			builder: func() *notification.Push {
				return notification.NewTemplatePush("")
			},
			wantErr: notification.ErrMissingContent,
		},
		{
			name: "delivery time without timezone option",
			builder: func() *notification.Push {
				return notification.NewContentsPush(notification.Text("Hi")).
					SetDeliveryTimeOfDay("9:00AM").
					SetDelayedOption(fields.DelayedOptionLastActive)
			},
			wantErr: notification.ErrDeliveryTimeOfDay,
		},
		{
			name: "delivery time without any option",
			builder: func() *notification.Push {
				return notification.NewContentsPush(notification.Text("Hi")).SetDeliveryTimeOfDay("9:00AM")
			},
			wantErr: notification.ErrDeliveryTimeOfDay,
		},
		{
			name: "missing default language",
			builder: func() *notification.Push {
				return notification.NewContentsPush(notification.Text("Hi")).
					SetHeadings(notification.LocalizedText{"fr": "Salut"})
			},
			wantErr: notification.ErrMissingDefaultText,
		},
		{
			name: "relevance score out of range",
			builder: func() *notification.Push {
				return notification.NewContentsPush(notification.Text("Hi")).SetIosRelevanceScore(1.5)
			},
			wantErr: notification.ErrValueOutOfRange,
		},
		{
			name: "unknown tag relation",
			builder: func() *notification.Push {
				return notification.NewContentsPush(notification.Text("Hi")).AddFilterTag("level", ">=", "1")
			},
			wantErr: notification.ErrInvalidRelation,
		},
		{
			name: "empty attribute name",
			builder: func() *notification.Push {
				return notification.NewContentsPush(notification.Text("Hi")).SetAttribute("", 1)
			},
			wantErr: notification.ErrEmptyAttributeName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n, err := tt.builder().Build()
			assert.Nil(t, n)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, notification.ErrInvalidArgument)
		})
	}
}

func TestPush_Build_ContentAlternatives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		builder *notification.Push
	}{
		{name: "contents", builder: notification.NewContentsPush(notification.Text("Hi"))},
		{name: "content available", builder: notification.NewContentAvailablePush(map[string]any{"sync": true})},
		{name: "template", builder: notification.NewTemplatePush("be4a8044-bbd6-11e4-a581-000c2940e62c")},
		{
			name: "delivery time with timezone option",
			builder: notification.NewContentsPush(notification.Text("Hi")).
				SetDelayedOption(fields.DelayedOptionTimezone).
				SetDeliveryTimeOfDay("9:00AM"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n, err := tt.builder.Build()
			require.NoError(t, err)
			assert.NotNil(t, n)
		})
	}
}

func TestPush_StickyError(t *testing.T) {
	t.Parallel()

	p := notification.NewContentsPush(notification.Text("Hi")).
		SetIosRelevanceScore(-0.1).
		AddFilterTag("level", "~", "1").
		SetIosRelevanceScore(0.5)

	require.ErrorIs(t, p.Err(), notification.ErrValueOutOfRange)
	assert.Contains(t, p.Err().Error(), "between 0 and 1")

	_, err := p.Build()
	assert.ErrorIs(t, err, notification.ErrValueOutOfRange)
	assert.NotErrorIs(t, err, notification.ErrInvalidRelation)
}

func TestPush_Filters(t *testing.T) {
	t.Parallel()

	n, err := notification.NewContentsPush(notification.Text("Hi")).
		AddFilterTag("level", fields.RelationGreater, "10").
		AddFilterOrClause().
		AddFilterAmountSpent(fields.RelationGreater, "0").
		AddFilterLastSession(fields.RelationLess, 1.5).
		AddFilterFirstSession(fields.RelationGreater, 24).
		AddFilterSessionCount(fields.RelationGreater, 3).
		AddFilterSessionTime(fields.RelationLess, 600).
		AddFilterBoughtSku(fields.RelationGreater, "SKU123", "2").
		AddFilterTagExists("vip").
		AddFilterTag("banned", fields.RelationNotExists, "ignored").
		AddFilterLanguageEquals("en").
		AddFilterLanguageNotEquals("fr").
		AddFilterAppVersion(fields.RelationGreater, "5").
		AddFilterLocation(1000, "55.7558", "37.6173").
		AddFilterEmail("user@example.com").
		AddFilterCountryEquals("US").
		Build()
	require.NoError(t, err)

	assert.Equal(t, []notification.Filter{
		{"field": "tag", "key": "level", "relation": ">", "value": "10"},
		{"operator": "OR"},
		{"field": "amount_spent", "relation": ">", "value": "0"},
		{"field": "last_session", "relation": "<", "hours_ago": "1.5"},
		{"field": "first_session", "relation": ">", "hours_ago": "24"},
		{"field": "session_count", "relation": ">", "value": 3},
		{"field": "session_time", "relation": "<", "value": 600},
		{"field": "bought_sku", "relation": ">", "key": "SKU123", "value": "2"},
		{"field": "tag", "key": "vip", "relation": "exists"},
		{"field": "tag", "key": "banned", "relation": "not_exists"},
		{"field": "language", "relation": "=", "value": "en"},
		{"field": "language", "relation": "!=", "value": "fr"},
		{"field": "app_version", "relation": ">", "value": "5"},
		{"field": "location", "radius": 1000, "lat": "55.7558", "long": "37.6173"},
		{"field": "email", "value": "user@example.com"},
		{"field": "country", "relation": "=", "value": "US"},
	}, n.Data()["filters"])

	assert.True(t, n.Targeted())
}

func TestPush_AddFilter_FieldWins(t *testing.T) {
	t.Parallel()

	n, err := notification.NewContentsPush(notification.Text("Hi")).
		AddFilter(fields.FieldTag, map[string]any{"field": "email", "key": "k", "relation": "=", "value": "v"}).
		Build()
	require.NoError(t, err)

	filters := n.Data()["filters"].([]notification.Filter)
	require.Len(t, filters, 1)
	assert.Equal(t, "tag", filters[0].Field())
	assert.False(t, filters[0].IsOr())
}

func TestPush_LegacyTags_CallOrder(t *testing.T) {
	t.Parallel()

	p := notification.NewContentsPush(notification.Text("Hi")).
		AddFilterTag("tag1", fields.RelationEqual, "a").
		SetAttribute(fields.Tags, []map[string]any{
			{"key": "tag2", "relation": "=", "value": "b"},
			{"key": "tag3", "relation": ">=", "value": "c"},
		}).
		AddFilterEmail("user@example.com").
		AddLegacyTags(notification.Tag{Key: "tag4", Relation: "!=", Value: "d"})
	assert.True(t, p.IsTargetSet())

	n, err := p.Build()
	require.NoError(t, err)

	data := n.Data()
	assert.NotContains(t, data, "tags")
	assert.Equal(t, []notification.Filter{
		{"field": "tag", "key": "tag1", "relation": "=", "value": "a"},
		{"field": "tag", "key": "tag2", "relation": "=", "value": "b"},
		{"field": "tag", "key": "tag3", "relation": ">=", "value": "c"},
		{"field": "email", "value": "user@example.com"},
		{"field": "tag", "key": "tag4", "relation": "!=", "value": "d"},
	}, data["filters"])
}

func TestPush_LegacyTags_Invalid(t *testing.T) {
	t.Parallel()

	p := notification.NewContentsPush(notification.Text("Hi")).SetAttribute(fields.Tags, 42)
	assert.ErrorIs(t, p.Err(), notification.ErrInvalidTags)

	p = notification.NewContentsPush(notification.Text("Hi")).SetAttribute(fields.Tags, []map[string]any{{"value": "x"}})
	assert.ErrorIs(t, p.Err(), notification.ErrInvalidTags)
}

func TestPush_SetAttribute_Filters(t *testing.T) {
	t.Parallel()

	n, err := notification.NewContentsPush(notification.Text("Hi")).
		SetAttribute(fields.Filters, []any{map[string]any{"field": "email", "value": "a@b.c"}}).
		AddFilterOrClause().
		Build()
	require.NoError(t, err)

	assert.Equal(t, []notification.Filter{
		{"field": "email", "value": "a@b.c"},
		{"operator": "OR"},
	}, n.Data()["filters"])

	p := notification.NewPush().SetAttribute(fields.Filters, "nope")
	assert.ErrorIs(t, p.Err(), notification.ErrInvalidFilters)
}

func TestPush_Targeting(t *testing.T) {
	t.Parallel()

	t.Run("untouched builder", func(t *testing.T) {
		t.Parallel()

		p := notification.NewContentsPush(notification.Text("Hi"))
		assert.False(t, p.IsTargetSet())

		n, err := p.Build()
		require.NoError(t, err)
		assert.NotContains(t, n.Data(), "filters")
		assert.False(t, n.Targeted())
	})

	t.Run("device targeting creates filters", func(t *testing.T) {
		t.Parallel()

		p := notification.NewContentsPush(notification.Text("Hi")).
			SetIncludePlayerIDs("p1", "p2").
			SetIncludeExternalUserIDs("e1").
			SetIncludeEmailTokens("a@b.c").
			SetIncludePhoneNumbers("+15555550100").
			SetIncludeIosTokens("ios").
			SetIncludeWpWnsURIs("wns").
			SetIncludeAmazonRegIDs("amz").
			SetIncludeChromeRegIDs("chrome").
			SetIncludeChromeWebRegIDs("chromeweb").
			SetIncludeAndroidRegIDs("android").
			SetExcludedSegments(fields.SegmentInactiveUsers)
		assert.True(t, p.IsTargetSet())

		n, err := p.Build()
		require.NoError(t, err)

		assert.Equal(t, []string{
			"contents", "filters",
			"include_player_ids", "include_external_user_ids", "include_email_tokens", "include_phone_numbers",
			"include_ios_tokens", "include_wp_wns_uris", "include_amazon_reg_ids", "include_chrome_reg_ids",
			"include_chrome_web_reg_ids", "include_android_reg_ids", "excluded_segments",
		}, n.Document().Keys())
		assert.Equal(t, []string{"p1", "p2"}, n.Data()["include_player_ids"])
		assert.True(t, n.Targeted())
	})

	t.Run("excluded segments alone do not target", func(t *testing.T) {
		t.Parallel()

		n, err := notification.NewContentsPush(notification.Text("Hi")).
			SetExcludedSegments(fields.SegmentInactiveUsers).
			Build()
		require.NoError(t, err)
		assert.False(t, n.Targeted())
	})
}

func TestPush_BodyParams(t *testing.T) {
	t.Parallel()

	sendAfter := time.Date(2024, time.January, 2, 15, 4, 5, 0, time.FixedZone("MSK", 3*60*60))

	n, err := notification.NewContentsPush(notification.Text("Hi")).
		SetName("campaign").
		SetExternalID("c9f0b9a2-2bd5-4f4a-9b43-4c1b0b1f2d3e").
		SetSendAfter(sendAfter).
		SetDelayedOption(fields.DelayedOptionTimezone).
		SetDeliveryTimeOfDay("9:00AM").
		SetThrottleRatePerMinute(fields.ThrottleRatePerMinuteDisable).
		SetPriority(0).
		SetIsIos(true).
		SetIsAndroid(false).
		SetChannelForExternalUserIDs("push").
		Build()
	require.NoError(t, err)

	data := n.Data()
	assert.Equal(t, "campaign", data["name"])
	assert.Equal(t, "2024-01-02 15:04:05 GMT+0300", data["send_after"])
	assert.Equal(t, "timezone", data["delayed_option"])
	assert.Equal(t, "9:00AM", data["delivery_time_of_day"])
	assert.Equal(t, 0, data["throttle_rate_per_minute"])
	assert.Equal(t, 0, data["priority"], "falsy values are sent as set")
	assert.Equal(t, true, data["isIos"])
	assert.Equal(t, false, data["isAndroid"])
	assert.Equal(t, "push", data["channel_for_external_user_ids"])
}

func TestPush_ChannelSetters(t *testing.T) {
	t.Parallel()

	n, err := notification.NewContentsPush(notification.Text("Hi")).
		SetHeadings(notification.Text("Title")).
		SetSubtitle(notification.Text("Sub")).
		SetMutableContent(true).
		SetTargetContentIdentifier("thread").
		SetData(map[string]any{"order_id": 42}).
		SetHuaweiMsgType(fields.HuaweiMsgTypeMessage).
		SetURL("https://example.com").
		SetIosAttachments(map[string]string{"id1": "https://example.com/a.png"}).
		SetBigPicture("https://example.com/b.png").
		SetButtons([]notification.ActionButton{{ID: "like", Text: "Like", Icon: "ic_like"}}).
		SetWebButtons([]notification.WebActionButton{
			{ID: "read", Text: "Read", Icon: "read.png", URL: "https://example.com/read"},
			{ID: "dismiss", Text: "Dismiss"},
		}).
		SetIosSound(fields.IosSoundNil).
		SetIosBadgeType("Increase").
		SetIosBadgeCount(1).
		SetAndroidGroupMessage(notification.Text("$[notif_count] new messages")).
		SetIosRelevanceScore(1).
		SetTTL(3600).
		SetPriority(fields.PriorityHigh).
		Build()
	require.NoError(t, err)

	data := n.Data()
	assert.Equal(t, notification.LocalizedText{"en": "Title"}, data["headings"])
	assert.Equal(t, map[string]any{"order_id": 42}, data["data"])
	assert.Equal(t, []map[string]string{{"id": "like", "text": "Like", "icon": "ic_like"}}, data["buttons"])
	assert.Equal(t, []map[string]string{
		{"id": "read", "text": "Read", "icon": "read.png", "url": "https://example.com/read"},
		{"id": "dismiss", "text": "Dismiss", "icon": "", "url": "do_not_open"},
	}, data["web_buttons"])
	assert.Equal(t, 1, data["ios_badgeCount"])
	assert.Equal(t, "Increase", data["ios_badgeType"])
	assert.Equal(t, 1.0, data["ios_relevance_score"])
	assert.Equal(t, 10, data["priority"])
}

func TestNotification_DataIsFreshCopy(t *testing.T) {
	t.Parallel()

	p := notification.NewContentsPush(notification.Text("Hi")).
		SetData(map[string]any{"k": "v"}).
		AddFilterEmail("a@b.c")
	n, err := p.Build()
	require.NoError(t, err)

	first := n.Data()
	second := n.Data()
	assert.Equal(t, first, second)

	first["data"].(map[string]any)["k"] = "changed"
	first["filters"] = nil
	p.AddFilterOrClause().SetName("after build")

	third := n.Data()
	assert.Equal(t, second, third)
	assert.NotContains(t, third, "name")
}

func TestFromData(t *testing.T) {
	t.Parallel()

	n, err := notification.FromData(notification.ChannelSMS, map[string]any{
		"name":     "raw",
		"contents": map[string]any{"en": "Hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, notification.ChannelSMS, n.Channel())
	assert.Equal(t, []string{"contents", "name"}, n.Document().Keys())

	_, err = notification.FromData(notification.ChannelPush, map[string]any{"": 1})
	assert.ErrorIs(t, err, notification.ErrEmptyAttributeName)
}

func TestNewExternalID(t *testing.T) {
	t.Parallel()

	a := notification.NewExternalID()
	b := notification.NewExternalID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
