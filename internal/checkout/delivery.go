package checkout

import (
	"strings"
	"time"
)

const (
	defaultDeliveryDays = 3
	majorCityDays       = 2
	remoteDays          = 5
)

var (
	majorCities  = []string{"lagos", "abuja", "kano", "ibadan", "port harcourt", "benin city", "kaduna"}
	remoteStates = []string{"borno", "yobe", "adamawa", "taraba", "gombe", "bauchi"}
	remoteCities = []string{"maiduguri", "yola", "gombe", "bauchi"}
)

// EstimateDelivery returns now + N days, where N comes from a short
// destination table: major cities ship faster, remote destinations
// slower, everything else gets the default.
func EstimateDelivery(state, city string, now time.Time) time.Time {
	days := defaultDeliveryDays

	switch {
	case matchesAny(city, majorCities):
		days = majorCityDays
	case matchesAny(state, remoteStates):
		days = remoteDays
	case matchesAny(city, remoteCities):
		days = remoteDays
	}

	return now.AddDate(0, 0, days)
}

func matchesAny(value string, candidates []string) bool {
	value = strings.ToLower(value)
	for _, candidate := range candidates {
		if strings.Contains(value, candidate) {
			return true
		}
	}

	return false
}
