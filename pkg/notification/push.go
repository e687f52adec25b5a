package notification

import (
	"fmt"
	"maps"

	"github.com/dmitrymomot/onesignal/pkg/fields"
)

// Push builds a push notification.
type Push struct {
	base[*Push]
}

// NewPush returns an empty push builder.
func NewPush() *Push {
	p := &Push{}
	p.init(p)
	return p
}

// NewContentsPush returns a push builder with contents set.
func NewContentsPush(contents LocalizedText) *Push {
	return NewPush().SetContents(contents)
}

// NewContentAvailablePush returns a silent (background) push carrying data.
func NewContentAvailablePush(data map[string]any) *Push {
	return NewPush().SetContentAvailable(true).SetData(data)
}

// NewTemplatePush returns a push builder rendering a dashboard template.
func NewTemplatePush(templateID string) *Push {
	return NewPush().SetTemplateID(templateID)
}

// Build validates the push and returns an immutable snapshot.
func (p *Push) Build() (*Notification, error) {
	return p.finalize(ChannelPush, rule{
		check: func() bool {
			return p.present(fields.Contents) || p.contentAvailable() || p.present(fields.TemplateID)
		},
		err: ErrMissingContent,
	})
}

// Content & language

func (p *Push) SetContents(contents LocalizedText) *Push {
	return p.setText(fields.Contents, contents)
}

func (p *Push) SetHeadings(headings LocalizedText) *Push {
	return p.setText(fields.Headings, headings)
}

// SetSubtitle is iOS 10+ only.
func (p *Push) SetSubtitle(subtitle LocalizedText) *Push {
	return p.setText(fields.Subtitle, subtitle)
}

func (p *Push) SetContentAvailable(v bool) *Push {
	return p.set(fields.ContentAvailable, v)
}

// SetMutableContent lets an iOS notification service extension modify the payload.
func (p *Push) SetMutableContent(v bool) *Push {
	return p.set(fields.MutableContent, v)
}

func (p *Push) SetTargetContentIdentifier(id string) *Push {
	return p.set(fields.TargetContentIdentifier, id)
}

// Attachments

func (p *Push) SetData(data map[string]any) *Push {
	return p.set(fields.Data, cloneValue(data))
}

func (p *Push) SetHuaweiMsgType(msgType string) *Push {
	return p.set(fields.HuaweiMsgType, msgType)
}

func (p *Push) SetURL(url string) *Push {
	return p.set(fields.URL, url)
}

func (p *Push) SetWebURL(url string) *Push {
	return p.set(fields.WebURL, url)
}

func (p *Push) SetAppURL(url string) *Push {
	return p.set(fields.AppURL, url)
}

// SetIosAttachments maps attachment ids to media URLs.
func (p *Push) SetIosAttachments(attachments map[string]string) *Push {
	return p.set(fields.IosAttachments, maps.Clone(attachments))
}

func (p *Push) SetBigPicture(url string) *Push {
	return p.set(fields.BigPicture, url)
}

func (p *Push) SetHuaweiBigPicture(url string) *Push {
	return p.set(fields.HuaweiBigPicture, url)
}

func (p *Push) SetChromeWebImage(url string) *Push {
	return p.set(fields.ChromeWebImage, url)
}

func (p *Push) SetAdmBigPicture(url string) *Push {
	return p.set(fields.AdmBigPicture, url)
}

func (p *Push) SetChromeBigPicture(url string) *Push {
	return p.set(fields.ChromeBigPicture, url)
}

// Action buttons

func (p *Push) SetButtons(buttons []ActionButton) *Push {
	return p.set(fields.Buttons, actionButtons(buttons))
}

func (p *Push) SetWebButtons(buttons []WebActionButton) *Push {
	return p.set(fields.WebButtons, webActionButtons(buttons))
}

func (p *Push) SetIosCategory(category string) *Push {
	return p.set(fields.IosCategory, category)
}

func (p *Push) SetIconType(iconType string) *Push {
	return p.set(fields.IconType, iconType)
}

// Appearance

func (p *Push) SetAndroidChannelID(id string) *Push {
	return p.set(fields.AndroidChannelID, id)
}

func (p *Push) SetHuaweiChannelID(id string) *Push {
	return p.set(fields.HuaweiChannelID, id)
}

func (p *Push) SetExistingAndroidChannelID(id string) *Push {
	return p.set(fields.ExistingAndroidChannelID, id)
}

func (p *Push) SetHuaweiExistingChannelID(id string) *Push {
	return p.set(fields.HuaweiExistingChannelID, id)
}

// SetAndroidBackgroundLayout takes image, headings_color and contents_color.
func (p *Push) SetAndroidBackgroundLayout(layout map[string]string) *Push {
	return p.set(fields.AndroidBackgroundLayout, maps.Clone(layout))
}

func (p *Push) SetSmallIcon(icon string) *Push {
	return p.set(fields.SmallIcon, icon)
}

func (p *Push) SetHuaweiSmallIcon(icon string) *Push {
	return p.set(fields.HuaweiSmallIcon, icon)
}

func (p *Push) SetLargeIcon(icon string) *Push {
	return p.set(fields.LargeIcon, icon)
}

func (p *Push) SetHuaweiLargeIcon(icon string) *Push {
	return p.set(fields.HuaweiLargeIcon, icon)
}

func (p *Push) SetAdmSmallIcon(icon string) *Push {
	return p.set(fields.AdmSmallIcon, icon)
}

func (p *Push) SetAdmLargeIcon(icon string) *Push {
	return p.set(fields.AdmLargeIcon, icon)
}

func (p *Push) SetChromeWebIcon(icon string) *Push {
	return p.set(fields.ChromeWebIcon, icon)
}

func (p *Push) SetChromeWebBadge(badge string) *Push {
	return p.set(fields.ChromeWebBadge, badge)
}

func (p *Push) SetFirefoxIcon(icon string) *Push {
	return p.set(fields.FirefoxIcon, icon)
}

func (p *Push) SetChromeIcon(icon string) *Push {
	return p.set(fields.ChromeIcon, icon)
}

// SetIosSound takes a bundled sound file name, or fields.IosSoundNil for silence.
func (p *Push) SetIosSound(sound string) *Push {
	return p.set(fields.IosSound, sound)
}

func (p *Push) SetAndroidSound(sound string) *Push {
	return p.set(fields.AndroidSound, sound)
}

// SetAndroidLedColor takes an ARGB hex string.
func (p *Push) SetAndroidLedColor(color string) *Push {
	return p.set(fields.AndroidLedColor, color)
}

func (p *Push) SetAndroidAccentColor(color string) *Push {
	return p.set(fields.AndroidAccentColor, color)
}

func (p *Push) SetHuaweiAccentColor(color string) *Push {
	return p.set(fields.HuaweiAccentColor, color)
}

// SetAndroidVisibility takes 1 (public), 0 (private) or -1 (secret).
func (p *Push) SetAndroidVisibility(visibility int) *Push {
	return p.set(fields.AndroidVisibility, visibility)
}

// SetIosBadgeType takes None, SetTo or Increase.
func (p *Push) SetIosBadgeType(badgeType string) *Push {
	return p.set(fields.IosBadgeType, badgeType)
}

func (p *Push) SetIosBadgeCount(count int) *Push {
	return p.set(fields.IosBadgeCount, count)
}

func (p *Push) SetCollapseID(id string) *Push {
	return p.set(fields.CollapseID, id)
}

func (p *Push) SetWebPushTopic(topic string) *Push {
	return p.set(fields.WebPushTopic, topic)
}

func (p *Push) SetApnsAlert(alert map[string]any) *Push {
	return p.set(fields.ApnsAlert, cloneValue(alert))
}

// Delivery

// SetTTL sets the time to live in seconds.
func (p *Push) SetTTL(seconds int) *Push {
	return p.set(fields.TTL, seconds)
}

func (p *Push) SetPriority(priority int) *Push {
	return p.set(fields.Priority, priority)
}

func (p *Push) SetApnsPushTypeOverride(pushType string) *Push {
	return p.set(fields.ApnsPushTypeOverride, pushType)
}

func (p *Push) SetEnableFrequencyCap(v bool) *Push {
	return p.set(fields.EnableFrequencyCap, v)
}

// Grouping & collapsing

func (p *Push) SetAndroidGroup(group string) *Push {
	return p.set(fields.AndroidGroup, group)
}

func (p *Push) SetAndroidGroupMessage(message LocalizedText) *Push {
	return p.setText(fields.AndroidGroupMessage, message)
}

func (p *Push) SetAdmGroup(group string) *Push {
	return p.set(fields.AdmGroup, group)
}

func (p *Push) SetAdmGroupMessage(message LocalizedText) *Push {
	return p.setText(fields.AdmGroupMessage, message)
}

func (p *Push) SetThreadID(id string) *Push {
	return p.set(fields.ThreadID, id)
}

func (p *Push) SetSummaryArg(arg string) *Push {
	return p.set(fields.SummaryArg, arg)
}

func (p *Push) SetSummaryArgCount(count int) *Push {
	return p.set(fields.SummaryArgCount, count)
}

// SetIosRelevanceScore takes a score in [0, 1].
func (p *Push) SetIosRelevanceScore(score float64) *Push {
	if score < 0 || score > 1 {
		return p.fail(fmt.Errorf("%w: %s must be between 0 and 1, got %v", ErrValueOutOfRange, fields.IosRelevanceScore, score))
	}
	return p.set(fields.IosRelevanceScore, score)
}

// SetIosInterruptionLevel takes active, passive, time_sensitive or critical.
func (p *Push) SetIosInterruptionLevel(level string) *Push {
	return p.set(fields.IosInterruptionLevel, level)
}

func (p *Push) SetAndroidBackgroundData(v bool) *Push {
	return p.set(fields.AndroidBackgroundData, v)
}
