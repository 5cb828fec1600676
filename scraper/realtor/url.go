package realtor

import (
	"strings"

	"realtor-scraper/models"
)

// filterParams maps recognized filter keys to their query-string names. The
// slice order fixes the order of emitted query terms, so the built URL is
// deterministic regardless of map iteration order.
var filterParams = []struct {
	key   string
	param string
}{
	{"priceMin", "price-min"},
	{"priceMax", "price-max"},
	{"bedsMin", "beds-min"},
	{"bathsMin", "baths-min"},
}

// BuildSearchURL builds a search-results URL: the location as a path segment
// under baseURL, followed by the recognized filters as query terms. Absent
// filter keys emit no term, unrecognized keys are ignored, and the "?"
// appears only when at least one term exists.
func BuildSearchURL(baseURL, location string, filters models.FilterSet) string {
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(baseURL, "/"))
	b.WriteString("/")
	b.WriteString(location)

	var terms []string
	for _, fp := range filterParams {
		if val, ok := filters[fp.key]; ok && val != "" {
			terms = append(terms, fp.param+"="+val)
		}
	}
	if len(terms) > 0 {
		b.WriteString("?")
		b.WriteString(strings.Join(terms, "&"))
	}

	return b.String()
}
