package notification

import (
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/dmitrymomot/onesignal/pkg/fields"
)

// SendAfterLayout is the send_after wire format.
const SendAfterLayout = "2006-01-02 15:04:05 GMT-0700"

// base carries the targeting and body parameters shared by every channel.
// Setters return self so chains keep the concrete builder type.
type base[T any] struct {
	self      T
	doc       *Document
	targetSet bool
	err       error
}

func (b *base[T]) init(self T) {
	b.self = self
	b.doc = NewDocument()
}

// fail records the first setter failure. Later failures are dropped.
func (b *base[T]) fail(err error) T {
	if b.err == nil {
		b.err = err
	}
	return b.self
}

func (b *base[T]) set(name string, value any) T {
	if err := b.doc.Set(name, value); err != nil {
		return b.fail(err)
	}
	return b.self
}

func (b *base[T]) setText(name string, text LocalizedText) T {
	if err := text.Validate(); err != nil {
		return b.fail(fmt.Errorf("%s: %w", name, err))
	}
	return b.set(name, maps.Clone(text))
}

// Err returns the first setter failure, if any.
func (b *base[T]) Err() error {
	return b.err
}

// IsTargetSet reports whether any targeting attribute has been written.
func (b *base[T]) IsTargetSet() bool {
	return b.targetSet
}

// SetAttribute writes a raw attribute. "tags" is normalized into tag filters
// and "filters" replaces the filter list. Localized attributes accept a string
// or a language map and must carry a non-empty "en". Everything else is
// stored as is.
func (b *base[T]) SetAttribute(name string, value any) T {
	switch name {
	case fields.Contents, fields.Headings, fields.Subtitle,
		fields.AndroidGroupMessage, fields.AdmGroupMessage:
		text, err := toLocalizedText(value)
		if err != nil {
			return b.fail(fmt.Errorf("%s: %w", name, err))
		}
		return b.setText(name, text)
	case fields.Tags:
		tags, err := normalizeTags(value)
		if err != nil {
			return b.fail(err)
		}
		return b.appendFilters(tags...)
	case fields.Filters:
		filters, err := normalizeFilters(value)
		if err != nil {
			return b.fail(err)
		}
		b.targetSet = true
		return b.set(fields.Filters, filters)
	}
	return b.set(name, value)
}

// SetAttributes writes every entry of attrs in lexical key order.
func (b *base[T]) SetAttributes(attrs map[string]any) T {
	doc, err := DocumentFromMap(attrs)
	if err != nil {
		return b.fail(err)
	}
	for _, k := range doc.Keys() {
		v, _ := doc.Get(k)
		b.SetAttribute(k, v)
	}
	return b.self
}

func (b *base[T]) ensureFilters() []Filter {
	b.targetSet = true
	if v, ok := b.doc.Get(fields.Filters); ok {
		if filters, ok := v.([]Filter); ok {
			return filters
		}
	}
	filters := []Filter{}
	b.doc.attrs.Set(fields.Filters, filters)
	return filters
}

func (b *base[T]) appendFilters(filters ...Filter) T {
	current := b.ensureFilters()
	return b.set(fields.Filters, append(current, filters...))
}

func (b *base[T]) setTarget(name string, value any) T {
	b.ensureFilters()
	return b.set(name, value)
}

// SetIncludedSegments targets the named segments.
func (b *base[T]) SetIncludedSegments(segments ...string) T {
	return b.setTarget(fields.IncludedSegments, segments)
}

// SetExcludedSegments excludes the named segments.
func (b *base[T]) SetExcludedSegments(segments ...string) T {
	return b.setTarget(fields.ExcludedSegments, segments)
}

// AddFilter appends a clause for field. The field discriminator wins over
// a "field" key in attrs.
func (b *base[T]) AddFilter(field string, attrs map[string]any) T {
	f := make(Filter, len(attrs)+1)
	for k, v := range attrs {
		f[k] = cloneValue(v)
	}
	f[fields.FilterField] = field
	return b.appendFilters(f)
}

// AddFilterOrClause appends an OR marker between clauses.
func (b *base[T]) AddFilterOrClause() T {
	return b.appendFilters(Filter{fields.FilterOperator: fields.OperatorOr})
}

func (b *base[T]) AddFilterLastSession(relation string, hoursAgo float64) T {
	return b.AddFilter(fields.FieldLastSession, map[string]any{
		fields.FilterRelation: relation,
		fields.FilterHoursAgo: strconv.FormatFloat(hoursAgo, 'f', -1, 64),
	})
}

func (b *base[T]) AddFilterFirstSession(relation string, hoursAgo float64) T {
	return b.AddFilter(fields.FieldFirstSession, map[string]any{
		fields.FilterRelation: relation,
		fields.FilterHoursAgo: strconv.FormatFloat(hoursAgo, 'f', -1, 64),
	})
}

func (b *base[T]) AddFilterSessionCount(relation string, value int) T {
	return b.AddFilter(fields.FieldSessionCount, map[string]any{
		fields.FilterRelation: relation,
		fields.FilterValue:    value,
	})
}

// AddFilterSessionTime filters on total session time in seconds.
func (b *base[T]) AddFilterSessionTime(relation string, value int) T {
	return b.AddFilter(fields.FieldSessionTime, map[string]any{
		fields.FilterRelation: relation,
		fields.FilterValue:    value,
	})
}

// AddFilterAmountSpent filters on total USD spent, value is a decimal string.
func (b *base[T]) AddFilterAmountSpent(relation, value string) T {
	return b.AddFilter(fields.FieldAmountSpent, map[string]any{
		fields.FilterRelation: relation,
		fields.FilterValue:    value,
	})
}

func (b *base[T]) AddFilterBoughtSku(relation, sku, value string) T {
	return b.AddFilter(fields.FieldBoughtSku, map[string]any{
		fields.FilterRelation: relation,
		fields.FilterKey:      sku,
		fields.FilterValue:    value,
	})
}

// AddFilterTag compares a data tag against value. With the exists and
// not_exists relations value is ignored.
func (b *base[T]) AddFilterTag(key, relation, value string) T {
	if err := validTagRelation(relation); err != nil {
		return b.fail(err)
	}
	switch relation {
	case fields.RelationExists:
		return b.AddFilterTagExists(key)
	case fields.RelationNotExists:
		return b.AddFilterTagNotExists(key)
	}
	return b.AddFilter(fields.FieldTag, map[string]any{
		fields.FilterKey:      key,
		fields.FilterRelation: relation,
		fields.FilterValue:    value,
	})
}

func (b *base[T]) AddFilterTagExists(key string) T {
	return b.AddFilter(fields.FieldTag, map[string]any{
		fields.FilterKey:      key,
		fields.FilterRelation: fields.RelationExists,
	})
}

func (b *base[T]) AddFilterTagNotExists(key string) T {
	return b.AddFilter(fields.FieldTag, map[string]any{
		fields.FilterKey:      key,
		fields.FilterRelation: fields.RelationNotExists,
	})
}

func (b *base[T]) AddFilterLanguageEquals(lang string) T {
	return b.AddFilter(fields.FieldLanguage, map[string]any{
		fields.FilterRelation: fields.RelationEqual,
		fields.FilterValue:    lang,
	})
}

func (b *base[T]) AddFilterLanguageNotEquals(lang string) T {
	return b.AddFilter(fields.FieldLanguage, map[string]any{
		fields.FilterRelation: fields.RelationNotEqual,
		fields.FilterValue:    lang,
	})
}

func (b *base[T]) AddFilterAppVersion(relation, version string) T {
	return b.AddFilter(fields.FieldAppVersion, map[string]any{
		fields.FilterRelation: relation,
		fields.FilterValue:    version,
	})
}

// AddFilterLocation targets devices within radius meters of lat/long.
func (b *base[T]) AddFilterLocation(radius int, lat, long string) T {
	return b.AddFilter(fields.FieldLocation, map[string]any{
		fields.FilterRadius: radius,
		fields.FilterLat:    lat,
		fields.FilterLong:   long,
	})
}

func (b *base[T]) AddFilterEmail(email string) T {
	return b.AddFilter(fields.FieldEmail, map[string]any{
		fields.FilterValue: email,
	})
}

// AddFilterCountryEquals takes an ISO 3166-1 alpha-2 code.
func (b *base[T]) AddFilterCountryEquals(country string) T {
	return b.AddFilter(fields.FieldCountry, map[string]any{
		fields.FilterRelation: fields.RelationEqual,
		fields.FilterValue:    country,
	})
}

// AddLegacyTags appends tags as tag filter clauses in call order.
//
// Deprecated: use AddFilterTag.
func (b *base[T]) AddLegacyTags(tags ...Tag) T {
	filters := make([]Filter, 0, len(tags))
	for _, t := range tags {
		filters = append(filters, t.filter())
	}
	return b.appendFilters(filters...)
}

func (b *base[T]) SetIncludePlayerIDs(ids ...string) T {
	return b.setTarget(fields.IncludePlayerIDs, ids)
}

func (b *base[T]) SetIncludeExternalUserIDs(ids ...string) T {
	return b.setTarget(fields.IncludeExternalUserIDs, ids)
}

func (b *base[T]) SetIncludeEmailTokens(emails ...string) T {
	return b.setTarget(fields.IncludeEmailTokens, emails)
}

func (b *base[T]) SetIncludePhoneNumbers(phones ...string) T {
	return b.setTarget(fields.IncludePhoneNumbers, phones)
}

// Deprecated: use SetIncludePlayerIDs.
func (b *base[T]) SetIncludeIosTokens(tokens ...string) T {
	return b.setTarget(fields.IncludeIosTokens, tokens)
}

// Deprecated: use SetIncludePlayerIDs.
func (b *base[T]) SetIncludeWpWnsURIs(uris ...string) T {
	return b.setTarget(fields.IncludeWpWnsURIs, uris)
}

// Deprecated: use SetIncludePlayerIDs.
func (b *base[T]) SetIncludeAmazonRegIDs(ids ...string) T {
	return b.setTarget(fields.IncludeAmazonRegIDs, ids)
}

// Deprecated: use SetIncludePlayerIDs.
func (b *base[T]) SetIncludeChromeRegIDs(ids ...string) T {
	return b.setTarget(fields.IncludeChromeRegIDs, ids)
}

// Deprecated: use SetIncludePlayerIDs.
func (b *base[T]) SetIncludeChromeWebRegIDs(ids ...string) T {
	return b.setTarget(fields.IncludeChromeWebRegIDs, ids)
}

// Deprecated: use SetIncludePlayerIDs.
func (b *base[T]) SetIncludeAndroidRegIDs(ids ...string) T {
	return b.setTarget(fields.IncludeAndroidRegIDs, ids)
}

// SetChannelForExternalUserIDs selects "push" or "email" delivery for external user ids.
func (b *base[T]) SetChannelForExternalUserIDs(channel string) T {
	return b.set(fields.ChannelForExternalUsers, channel)
}

func (b *base[T]) SetIsIos(v bool) T       { return b.set(fields.IsIos, v) }
func (b *base[T]) SetIsAndroid(v bool) T   { return b.set(fields.IsAndroid, v) }
func (b *base[T]) SetIsHuawei(v bool) T    { return b.set(fields.IsHuawei, v) }
func (b *base[T]) SetIsAnyWeb(v bool) T    { return b.set(fields.IsAnyWeb, v) }
func (b *base[T]) SetIsChromeWeb(v bool) T { return b.set(fields.IsChromeWeb, v) }
func (b *base[T]) SetIsFirefox(v bool) T   { return b.set(fields.IsFirefox, v) }
func (b *base[T]) SetIsSafari(v bool) T    { return b.set(fields.IsSafari, v) }
func (b *base[T]) SetIsWpWns(v bool) T     { return b.set(fields.IsWpWns, v) }
func (b *base[T]) SetIsAdm(v bool) T       { return b.set(fields.IsAdm, v) }
func (b *base[T]) SetIsChrome(v bool) T    { return b.set(fields.IsChrome, v) }

// SetName sets an internal name for the notification, shown in the dashboard.
func (b *base[T]) SetName(name string) T {
	return b.set(fields.Name, name)
}

// SetExternalID sets the idempotency key. See NewExternalID.
func (b *base[T]) SetExternalID(id string) T {
	return b.set(fields.ExternalID, id)
}

func (b *base[T]) SetSendAfter(t time.Time) T {
	return b.set(fields.SendAfter, t.Format(SendAfterLayout))
}

func (b *base[T]) SetDelayedOption(option string) T {
	return b.set(fields.DelayedOption, option)
}

// SetDeliveryTimeOfDay takes a local time like "9:00AM". Requires delayed_option=timezone.
func (b *base[T]) SetDeliveryTimeOfDay(timeOfDay string) T {
	return b.set(fields.DeliveryTimeOfDay, timeOfDay)
}

func (b *base[T]) SetThrottleRatePerMinute(rate int) T {
	return b.set(fields.ThrottleRatePerMinute, rate)
}

func (b *base[T]) SetTemplateID(id string) T {
	return b.set(fields.TemplateID, id)
}

// finalize runs the shared checks plus the channel rules and snapshots the document.
func (b *base[T]) finalize(channel Channel, content ...rule) (*Notification, error) {
	if b.err != nil {
		return nil, b.err
	}

	rules := make([]rule, 0, len(content)+2)
	rules = append(rules, rule{check: func() bool { return b.doc.Len() > 0 }, err: ErrEmptyNotification})
	rules = append(rules, content...)
	rules = append(rules, rule{check: b.deliveryTimeOfDayValid, err: ErrDeliveryTimeOfDay})

	if err := apply(rules...); err != nil {
		return nil, err
	}

	return &Notification{channel: channel, doc: b.doc.Clone()}, nil
}

func (b *base[T]) deliveryTimeOfDayValid() bool {
	if !b.doc.Has(fields.DeliveryTimeOfDay) {
		return true
	}
	option, _ := b.doc.Get(fields.DelayedOption)
	return option == fields.DelayedOptionTimezone
}

func (b *base[T]) present(name string) bool {
	v, ok := b.doc.Get(name)
	return ok && !isEmpty(v)
}

func (b *base[T]) contentAvailable() bool {
	v, _ := b.doc.Get(fields.ContentAvailable)
	on, _ := v.(bool)
	return on
}
