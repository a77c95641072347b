// Package promo resolves discount codes against a configuration-supplied
// rule table. An unknown or expired code is a normal negative result,
// not an error.
package promo

import (
	"strings"
	"time"

	"github.com/smarttools-ng/storefront/internal/money"
)

type Kind string

const (
	KindFixed      Kind = "fixed"
	KindPercentage Kind = "percentage"
)

// Rule is one promo table entry. Kind is an explicit tag: a fixed value
// is kobo, a percentage value is whole percent. The magnitude of Value
// is never used to tell the two apart.
type Rule struct {
	Code           string      `yaml:"code" json:"code"`
	Kind           Kind        `yaml:"kind" json:"kind"`
	Value          int64       `yaml:"value" json:"value"`
	MinOrderAmount money.Money `yaml:"min_order_amount" json:"min_order_amount,omitempty"`
	MaxDiscount    money.Money `yaml:"max_discount" json:"max_discount,omitempty"`
	ValidFrom      time.Time   `yaml:"valid_from" json:"valid_from,omitempty"`
	ValidUntil     time.Time   `yaml:"valid_until" json:"valid_until,omitempty"`
	Active         bool        `yaml:"active" json:"active"`
	Message        string      `yaml:"message" json:"message"`
}

type Result struct {
	Valid   bool   `json:"valid"`
	Kind    Kind   `json:"kind,omitempty"`
	Value   int64  `json:"value,omitempty"`
	Message string `json:"message"`
}

const invalidCodeMessage = "Invalid promo code."

type Resolver struct {
	rules map[string]Rule
	now   func() time.Time
}

func NewResolver(rules []Rule) *Resolver {
	indexed := make(map[string]Rule, len(rules))
	for _, rule := range rules {
		indexed[strings.ToUpper(rule.Code)] = rule
	}

	return &Resolver{rules: indexed, now: time.Now}
}

// DefaultRules is the built-in table used when configuration supplies none.
func DefaultRules() []Rule {
	return []Rule{
		{Code: "SAVE10", Kind: KindFixed, Value: 1_000_000, Active: true, Message: "Save ₦10,000 on your order!"},
		{Code: "WELCOME5", Kind: KindFixed, Value: 500_000, Active: true, Message: "Welcome! Save ₦5,000 on your first order!"},
		{Code: "TOOLS20", Kind: KindPercentage, Value: 20, Active: true, Message: "Get 20% off all tools!"},
	}
}

// Validate looks a code up case-insensitively. It never returns an
// error: bad user input is a Valid=false result.
func (r *Resolver) Validate(code string) Result {
	rule, ok := r.lookup(code)
	if !ok {
		return Result{Valid: false, Message: invalidCodeMessage}
	}

	return Result{Valid: true, Kind: rule.Kind, Value: rule.Value, Message: rule.Message}
}

// Apply computes the discount a code grants against a subtotal. Invalid
// codes and unmet minimum-order amounts yield zero; the result is capped
// at the rule's maximum and clamped so it never exceeds the subtotal.
func (r *Resolver) Apply(subtotal money.Money, code string) money.Money {
	rule, ok := r.lookup(code)
	if !ok {
		return 0
	}

	if rule.MinOrderAmount > 0 && subtotal < rule.MinOrderAmount {
		return 0
	}

	var discount money.Money

	switch rule.Kind {
	case KindPercentage:
		// round half up, in kobo
		discount = (subtotal*money.Money(rule.Value) + 50) / 100
	case KindFixed:
		discount = money.Money(rule.Value)
	default:
		return 0
	}

	if rule.MaxDiscount > 0 && discount > rule.MaxDiscount {
		discount = rule.MaxDiscount
	}

	if discount > subtotal {
		discount = subtotal
	}

	if discount < 0 {
		return 0
	}

	return discount
}

func (r *Resolver) lookup(code string) (Rule, bool) {
	rule, ok := r.rules[strings.ToUpper(strings.TrimSpace(code))]
	if !ok || !rule.Active {
		return Rule{}, false
	}

	now := r.now()
	if !rule.ValidFrom.IsZero() && now.Before(rule.ValidFrom) {
		return Rule{}, false
	}

	if !rule.ValidUntil.IsZero() && now.After(rule.ValidUntil) {
		return Rule{}, false
	}

	return rule, true
}
