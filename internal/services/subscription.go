package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ascendapp/ascend-api/internal/models"
)

// ErrCategoryLocked marks a subscription-gate failure. The whole batch is
// rejected, never a partial acceptance.
var ErrCategoryLocked = errors.New("category not available for subscription")

// subscriptionCategories maps each tier to its unlocked categories.
var subscriptionCategories = map[string][]string{
	"Free":    {models.CategorySurvival, models.CategorySafety},
	"Premium": {models.CategorySurvival, models.CategorySafety, models.CategorySocial, models.CategorySelf},
	"Plus":    {models.CategorySurvival, models.CategorySafety, models.CategorySocial, models.CategorySelf},
	"Coach":   {models.CategorySurvival, models.CategorySafety, models.CategorySocial, models.CategorySelf, models.CategoryMetaNeeds},
	"Pro":     {models.CategorySurvival, models.CategorySafety, models.CategorySocial, models.CategorySelf, models.CategoryMetaNeeds},
}

var subscriptionPricing = map[string]int{
	"Free":    0,
	"Premium": 19,
	"Plus":    19,
	"Coach":   39,
	"Pro":     39,
}

// defaultCategories is what unknown or missing tiers fall back to.
var defaultCategories = subscriptionCategories["Free"]

// AvailableCategories returns the categories unlocked by a subscription tier.
func AvailableCategories(tier string) []string {
	if cats, ok := subscriptionCategories[tier]; ok {
		return cats
	}
	return defaultCategories
}

// ValidateCategories fails closed: if any category is unknown or locked for
// the tier, the whole set is rejected.
func ValidateCategories(categories []string, tier string) error {
	available := AvailableCategories(tier)

	var locked []string
	for _, cat := range categories {
		if !models.IsValidCategory(cat) {
			return fmt.Errorf("invalid category name: %s", cat)
		}
		if !contains(available, cat) {
			locked = append(locked, cat)
		}
	}

	if len(locked) > 0 {
		return fmt.Errorf("%w: %s not available for %s subscription (available: %s)",
			ErrCategoryLocked, strings.Join(locked, ", "), tier, strings.Join(available, ", "))
	}
	return nil
}

// IsCategoryAvailable reports whether one category is unlocked for a tier.
func IsCategoryAvailable(category, tier string) bool {
	return contains(AvailableCategories(tier), category)
}

// PricingFor returns the monthly USD price of a tier, 0 for unknown tiers.
func PricingFor(tier string) int {
	return subscriptionPricing[tier]
}

// SubscriptionInfo is the tier summary served to clients.
type SubscriptionInfo struct {
	SubscriptionType    string   `json:"subscriptionType"`
	AvailableCategories []string `json:"availableCategories"`
	Pricing             int      `json:"pricing"`
}

func GetSubscriptionInfo(tier string) SubscriptionInfo {
	if _, ok := subscriptionCategories[tier]; !ok {
		tier = "Free"
	}
	return SubscriptionInfo{
		SubscriptionType:    tier,
		AvailableCategories: AvailableCategories(tier),
		Pricing:             PricingFor(tier),
	}
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
