package entitlement

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// LimitType classifies which quota dimension triggered an upgrade prompt,
// selecting the message template.
type LimitType string

const (
	LimitTypeRequests LimitType = "requests"
	LimitTypeTokens   LimitType = "tokens"
	LimitTypeCost     LimitType = "cost"
	LimitTypeGeneral  LimitType = "general"
)

// UpgradeInfo is the structured upgrade guidance attached to a denial.
type UpgradeInfo struct {
	CurrentPlan       PlanKey `json:"current_plan"`
	SuggestedPlan     PlanKey `json:"suggested_plan"`
	CurrentPlanName   string  `json:"current_plan_name"`
	SuggestedPlanName string  `json:"suggested_plan_name"`
	UpgradeURL        string  `json:"upgrade_url"`
	CTAMessage        string  `json:"cta_message"`
}

// upgradeLadder is the fixed upgrade path walked by the advisor.
// Pro is the top of the ladder; admin is not a purchasable tier.
var upgradeLadder = []PlanKey{PlanGuest, PlanTrial, PlanBasic, PlanBasicPlus, PlanPro}

// Message templates are interpolated with (current plan name, suggested plan
// name), in that order.
var englishMessages = map[LimitType]string{
	LimitTypeRequests: "You've reached the daily request limit of the %s plan. Upgrade to %s for a higher daily allowance.",
	LimitTypeTokens:   "You've used all the daily tokens included in the %s plan. Upgrade to %s for a larger token budget.",
	LimitTypeCost:     "You've reached the daily spending cap of the %s plan. Upgrade to %s for a higher cap.",
	LimitTypeGeneral:  "The %s plan has reached its daily limits. Upgrade to %s to keep going.",
}

// Advisor proposes the next plan tier when a quota dimension is exhausted.
// Messages are localized: the advisor matches the caller's language against
// its registered message catalogs and falls back to the default language.
type Advisor struct {
	catalog    *Catalog
	upgradeURL string
	messages   map[language.Tag]map[LimitType]string
	tags       []language.Tag
	matcher    language.Matcher
}

// AdvisorOption configures an Advisor.
type AdvisorOption func(*Advisor)

// WithUpgradeURL overrides the base URL the CTA points at.
func WithUpgradeURL(url string) AdvisorOption {
	return func(a *Advisor) {
		if url != "" {
			a.upgradeURL = url
		}
	}
}

// WithMessages registers a message catalog for a language. Missing limit
// types fall back to the default language's template.
func WithMessages(tag language.Tag, messages map[LimitType]string) AdvisorOption {
	return func(a *Advisor) {
		if len(messages) == 0 {
			return
		}
		a.messages[tag] = messages
		a.tags = append(a.tags, tag)
	}
}

// NewAdvisor creates an Advisor over the given catalog with English messages
// built in.
func NewAdvisor(catalog *Catalog, opts ...AdvisorOption) *Advisor {
	a := &Advisor{
		catalog:    catalog,
		upgradeURL: "/billing/upgrade",
		messages:   map[language.Tag]map[LimitType]string{language.English: englishMessages},
		tags:       []language.Tag{language.English},
	}
	for _, opt := range opts {
		opt(a)
	}
	// The first tag is the fallback when no registered language matches.
	a.matcher = language.NewMatcher(a.tags)
	return a
}

// Suggest returns upgrade guidance for the given plan, or nil when no
// further upgrade exists (pro, admin, and unknown plan keys).
//
// Plan keys are matched case-insensitively; lang is a BCP 47 tag or
// Accept-Language value used to pick the CTA message catalog.
func (a *Advisor) Suggest(plan PlanKey, limitType LimitType, lang string) *UpgradeInfo {
	current := PlanKey(strings.ToLower(string(plan)))

	next, ok := nextPlan(current)
	if !ok {
		return nil
	}

	info := &UpgradeInfo{
		CurrentPlan:       current,
		SuggestedPlan:     next,
		CurrentPlanName:   a.planName(current),
		SuggestedPlanName: a.planName(next),
		UpgradeURL:        fmt.Sprintf("%s?plan=%s", a.upgradeURL, next),
	}
	info.CTAMessage = fmt.Sprintf(a.template(limitType, lang), info.CurrentPlanName, info.SuggestedPlanName)
	return info
}

func nextPlan(current PlanKey) (PlanKey, bool) {
	// Trial is granted, never bought, so a guest's first purchasable step
	// is basic rather than the ladder's literal successor.
	if current == PlanGuest {
		return PlanBasic, true
	}
	for i, key := range upgradeLadder {
		if key != current {
			continue
		}
		if i == len(upgradeLadder)-1 {
			return "", false
		}
		return upgradeLadder[i+1], true
	}
	return "", false
}

func (a *Advisor) planName(key PlanKey) string {
	if spec, err := a.catalog.Plan(key); err == nil && spec.Name != "" {
		return spec.Name
	}
	return string(key)
}

func (a *Advisor) template(limitType LimitType, lang string) string {
	_, index := language.MatchStrings(a.matcher, lang)
	catalog := a.messages[a.tags[index]]

	if tmpl, ok := catalog[limitType]; ok {
		return tmpl
	}
	if tmpl, ok := catalog[LimitTypeGeneral]; ok {
		return tmpl
	}
	// Registered catalogs may be partial; English always has every template.
	if tmpl, ok := englishMessages[limitType]; ok {
		return tmpl
	}
	return englishMessages[LimitTypeGeneral]
}
