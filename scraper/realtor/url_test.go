package realtor

import (
	"strings"
	"testing"

	"realtor-scraper/models"
)

func TestBuildSearchURLWithFilters(t *testing.T) {
	got := BuildSearchURL("https://x.test", "Austin_TX", models.FilterSet{
		"priceMin": "300000",
		"priceMax": "500000",
	})
	want := "https://x.test/Austin_TX?price-min=300000&price-max=500000"
	if got != want {
		t.Errorf("BuildSearchURL = %q; want %q", got, want)
	}
}

func TestBuildSearchURLNoFilters(t *testing.T) {
	got := BuildSearchURL("https://x.test", "Miami_FL", models.FilterSet{})
	want := "https://x.test/Miami_FL"
	if got != want {
		t.Errorf("BuildSearchURL = %q; want %q", got, want)
	}
	if strings.Contains(got, "?") {
		t.Errorf("URL without filters must not contain '?': %q", got)
	}
}

func TestBuildSearchURLFixedTermOrder(t *testing.T) {
	filters := models.FilterSet{
		"bathsMin": "2",
		"priceMin": "100",
		"bedsMin":  "3",
		"priceMax": "200",
	}
	want := "https://x.test/Denver_CO?price-min=100&price-max=200&beds-min=3&baths-min=2"
	for i := 0; i < 20; i++ {
		got := BuildSearchURL("https://x.test", "Denver_CO", filters)
		if got != want {
			t.Fatalf("iteration %d: BuildSearchURL = %q; want %q", i, got, want)
		}
	}
}

func TestBuildSearchURLOmittedKeyEmitsNoTerm(t *testing.T) {
	got := BuildSearchURL("https://x.test", "Austin_TX", models.FilterSet{"priceMin": "300000"})
	if strings.Contains(got, "price-max") {
		t.Errorf("omitted priceMax must not appear in URL: %q", got)
	}
}

func TestBuildSearchURLIgnoresUnknownKeys(t *testing.T) {
	got := BuildSearchURL("https://x.test", "Austin_TX", models.FilterSet{
		"priceMin": "300000",
		"garages":  "2",
	})
	want := "https://x.test/Austin_TX?price-min=300000"
	if got != want {
		t.Errorf("BuildSearchURL = %q; want %q", got, want)
	}
}

func TestBuildSearchURLTrimsTrailingSlash(t *testing.T) {
	got := BuildSearchURL("https://x.test/", "Austin_TX", nil)
	want := "https://x.test/Austin_TX"
	if got != want {
		t.Errorf("BuildSearchURL = %q; want %q", got, want)
	}
}
