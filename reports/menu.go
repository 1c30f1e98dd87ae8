package reports

import (
	"math"
	"regexp"
	"strconv"

	"weddingplanner-backend/models"
)

var (
	perPattern  = regexp.MustCompile(`(?i)\bper\s+(\d+(?:\.\d+)?)`)
	basePattern = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)
)

// ParseServingSize reads "per N" out of a free-text serving size, with an
// optional leading base amount: "2 pieces per 1" is base 2, per 1. per is 1
// when missing or unusable; base is 0 when absent.
func ParseServingSize(servingSize string) (base float64, per float64) {
	per = 1
	if m := perPattern.FindStringSubmatch(servingSize); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil && n > 0 {
			per = n
		}
		if b := basePattern.FindStringSubmatch(servingSize); b != nil {
			if n, err := strconv.ParseFloat(b[1], 64); err == nil && n > 0 {
				base = n
			}
		}
	}
	return base, per
}

// SuggestQuantity is ceil(guestCount/per), times the base amount when one is
// given.
func SuggestQuantity(servingSize string, guestCount int) int {
	if guestCount <= 0 {
		return 0
	}
	base, per := ParseServingSize(servingSize)
	q := math.Ceil(float64(guestCount) / per)
	if base > 0 {
		q = math.Ceil(q * base)
	}
	return int(q)
}

// EffectiveQuantity prefers the explicit quantity over the suggestion.
func EffectiveQuantity(item models.MenuItem, guestCount int) int {
	if item.Quantity != nil {
		return *item.Quantity
	}
	return SuggestQuantity(item.ServingSize, guestCount)
}
