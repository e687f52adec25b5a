package fields

// Segments managed by OneSignal for every app.
const (
	SegmentAll             = "All"
	SegmentSubscribedUsers = "Subscribed Users"
	SegmentActiveUsers     = "Active Users"
	SegmentInactiveUsers   = "Inactive Users"
	SegmentEngagedUsers    = "Engaged Users"
)

// Top-level request keys.
const (
	AppID = "app_id"
	Name  = "name"

	// Targeting: segments
	IncludedSegments = "included_segments"
	ExcludedSegments = "excluded_segments"

	// Targeting: filters
	Filters = "filters"

	// Deprecated: use Filters. Entries are normalized into tag filters.
	Tags = "tags"

	// Targeting: specific devices
	IncludePlayerIDs        = "include_player_ids"
	IncludeExternalUserIDs  = "include_external_user_ids"
	IncludeEmailTokens      = "include_email_tokens"
	IncludePhoneNumbers     = "include_phone_numbers"
	IncludeIosTokens        = "include_ios_tokens"
	IncludeWpWnsURIs        = "include_wp_wns_uris"
	IncludeAmazonRegIDs     = "include_amazon_reg_ids"
	IncludeChromeRegIDs     = "include_chrome_reg_ids"
	IncludeChromeWebRegIDs  = "include_chrome_web_reg_ids"
	IncludeAndroidRegIDs    = "include_android_reg_ids"
	ChannelForExternalUsers = "channel_for_external_user_ids"

	// Idempotency
	ExternalID = "external_id"

	// Content & language
	Contents                = "contents"
	Headings                = "headings"
	Subtitle                = "subtitle"
	TemplateID              = "template_id"
	ContentAvailable        = "content_available"
	MutableContent          = "mutable_content"
	TargetContentIdentifier = "target_content_identifier"

	// Email content
	EmailSubject              = "email_subject"
	EmailBody                 = "email_body"
	EmailFromName             = "email_from_name"
	EmailFromAddress          = "email_from_address"
	EmailPreheader            = "email_preheader"
	DisableEmailClickTracking = "disable_email_click_tracking"

	// SMS
	SmsFrom      = "sms_from"
	SmsMediaURLs = "sms_media_urls"

	// Attachments
	Data             = "data"
	HuaweiMsgType    = "huawei_msg_type"
	URL              = "url"
	WebURL           = "web_url"
	AppURL           = "app_url"
	IosAttachments   = "ios_attachments"
	BigPicture       = "big_picture"
	HuaweiBigPicture = "huawei_big_picture"
	ChromeWebImage   = "chrome_web_image"
	AdmBigPicture    = "adm_big_picture"
	ChromeBigPicture = "chrome_big_picture"

	// Action buttons
	Buttons     = "buttons"
	WebButtons  = "web_buttons"
	IosCategory = "ios_category"
	IconType    = "icon_type"

	// Appearance
	AndroidChannelID         = "android_channel_id"
	HuaweiChannelID          = "huawei_channel_id"
	ExistingAndroidChannelID = "existing_android_channel_id"
	HuaweiExistingChannelID  = "huawei_existing_channel_id"
	AndroidBackgroundLayout  = "android_background_layout"
	SmallIcon                = "small_icon"
	HuaweiSmallIcon          = "huawei_small_icon"
	LargeIcon                = "large_icon"
	HuaweiLargeIcon          = "huawei_large_icon"
	AdmSmallIcon             = "adm_small_icon"
	AdmLargeIcon             = "adm_large_icon"
	ChromeWebIcon            = "chrome_web_icon"
	ChromeWebBadge           = "chrome_web_badge"
	FirefoxIcon              = "firefox_icon"
	ChromeIcon               = "chrome_icon"
	IosSound                 = "ios_sound"
	AndroidSound             = "android_sound"
	AndroidLedColor          = "android_led_color"
	AndroidAccentColor       = "android_accent_color"
	HuaweiAccentColor        = "huawei_accent_color"
	AndroidVisibility        = "android_visibility"
	IosBadgeType             = "ios_badgeType"
	IosBadgeCount            = "ios_badgeCount"
	CollapseID               = "collapse_id"
	WebPushTopic             = "web_push_topic"
	ApnsAlert                = "apns_alert"

	// Delivery
	SendAfter            = "send_after"
	DelayedOption        = "delayed_option"
	DeliveryTimeOfDay    = "delivery_time_of_day"
	TTL                  = "ttl"
	Priority             = "priority"
	ApnsPushTypeOverride = "apns_push_type_override"
	EnableFrequencyCap   = "enable_frequency_cap"

	// Throttling
	ThrottleRatePerMinute = "throttle_rate_per_minute"

	// Grouping & collapsing
	AndroidGroup          = "android_group"
	AndroidGroupMessage   = "android_group_message"
	AdmGroup              = "adm_group"
	AdmGroupMessage       = "adm_group_message"
	ThreadID              = "thread_id"
	SummaryArg            = "summary_arg"
	SummaryArgCount       = "summary_arg_count"
	IosRelevanceScore     = "ios_relevance_score"
	IosInterruptionLevel  = "ios_interruption_level"
	AndroidBackgroundData = "android_background_data"

	// Platform to deliver to
	IsIos       = "isIos"
	IsAndroid   = "isAndroid"
	IsHuawei    = "isHuawei"
	IsAnyWeb    = "isAnyWeb"
	IsChromeWeb = "isChromeWeb"
	IsFirefox   = "isFirefox"
	IsSafari    = "isSafari"
	IsWpWns     = "isWP_WNS"
	IsAdm       = "isAdm"
	IsChrome    = "isChrome"
)

// Filter clause keys.
const (
	FilterField    = "field"
	FilterOperator = "operator"
	FilterRelation = "relation"
	FilterKey      = "key"
	FilterValue    = "value"
	FilterHoursAgo = "hours_ago"
	FilterRadius   = "radius"
	FilterLat      = "lat"
	FilterLong     = "long"
)

// Filter field discriminators.
const (
	FieldLastSession  = "last_session"
	FieldFirstSession = "first_session"
	FieldSessionCount = "session_count"
	FieldSessionTime  = "session_time"
	FieldAmountSpent  = "amount_spent"
	FieldBoughtSku    = "bought_sku"
	FieldTag          = "tag"
	FieldLanguage     = "language"
	FieldAppVersion   = "app_version"
	FieldLocation     = "location"
	FieldEmail        = "email"
	FieldCountry      = "country"
)

// Filter relations and operators.
const (
	RelationGreater          = ">"
	RelationLess             = "<"
	RelationEqual            = "="
	RelationNotEqual         = "!="
	RelationExists           = "exists"
	RelationNotExists        = "not_exists"
	RelationTimeElapsedGreat = "time_elapsed_gt"
	RelationTimeElapsedLess  = "time_elapsed_lt"

	OperatorOr = "OR"
)

// Value sentinels.
const (
	DefaultLanguage = "en"

	HuaweiMsgTypeData    = "data"
	HuaweiMsgTypeMessage = "message"

	IosSoundNil     = "nil"
	AndroidSoundNil = "notification"

	DelayedOptionTimezone   = "timezone"
	DelayedOptionLastActive = "last-active"

	PriorityLow  = 5
	PriorityHigh = 10

	ThrottleRatePerMinuteDisable = 0

	// WebButtonDoNotOpen keeps the browser from opening a page on click.
	WebButtonDoNotOpen = "do_not_open"
)

// Response keys.
const (
	ResponseID                     = "id"
	ResponseRecipients             = "recipients"
	ResponseExternalID             = "external_id"
	ResponseErrors                 = "errors"
	ResponseInvalidExternalUserIDs = "invalid_external_user_ids"
	ResponseInvalidPhoneNumbers    = "invalid_phone_numbers"
	ResponseCSVFileURL             = "csv_file_url"
)
