package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"realtor-scraper/models"
	"realtor-scraper/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes summary statistics over the scraped dataset. Listings
// whose price is absent or unparsable are excluded from price statistics
// rather than counted as zero.
func (s *InsightService) Generate(listings []*models.PropertyListing) *models.InsightReport {
	report := &models.InsightReport{
		ListingsByCity: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)

	var total float64
	var sqftTotal float64
	var sqftCount int

	for _, l := range listings {
		if l.City != nil && *l.City != "" {
			report.ListingsByCity[*l.City]++
		}

		if l.Price == nil {
			continue
		}
		price, ok := ParsePrice(*l.Price)
		if !ok {
			continue
		}

		report.WithPrice++
		total += price
		if report.WithPrice == 1 || price < report.MinPrice {
			report.MinPrice = price
		}
		if report.WithPrice == 1 || price > report.MaxPrice {
			report.MaxPrice = price
			report.MostExpensive = l
		}

		if l.Sqft != nil && *l.Sqft > 0 {
			sqftTotal += price / float64(*l.Sqft)
			sqftCount++
		}
	}

	if report.WithPrice > 0 {
		report.AveragePrice = round2(total / float64(report.WithPrice))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}
	if sqftCount > 0 {
		report.AvgPricePerSqft = round2(sqftTotal / float64(sqftCount))
	}

	return report
}

// Print renders the report to stdout.
func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 REALTOR SCRAPE INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total listings scraped : \033[1m%d\033[0m\n", r.TotalListings)
	fmt.Printf("  Listings with a price  : \033[1m%d\033[0m\n", r.WithPrice)
	fmt.Println()

	fmt.Printf("\033[1;33m  Price Statistics\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.WithPrice > 0 {
		fmt.Printf("  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
		if r.AvgPricePerSqft > 0 {
			fmt.Printf("  Avg $/sqft    : \033[1;32m$%.2f\033[0m\n", r.AvgPricePerSqft)
		}
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	if r.MostExpensive != nil {
		fmt.Printf("\033[1;33m  Most Expensive Listing\033[0m\n")
		fmt.Printf("  %s\n", thin)
		if r.MostExpensive.Address != nil {
			fmt.Printf("  %s\n", truncate(*r.MostExpensive.Address, 50))
		}
		fmt.Printf("  URL   : %s\n", truncate(string(r.MostExpensive.URL), 50))
		if r.MostExpensive.Price != nil {
			fmt.Printf("  Price : \033[1;31m%s\033[0m\n", *r.MostExpensive.Price)
		}
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Listings by City\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ListingsByCity) == 0 {
		fmt.Printf("  No city data\n")
	} else {
		type cityCount struct {
			city  string
			count int
		}
		var cities []cityCount
		for city, cnt := range r.ListingsByCity {
			cities = append(cities, cityCount{city, cnt})
		}
		sort.Slice(cities, func(i, j int) bool {
			if cities[i].count != cities[j].count {
				return cities[i].count > cities[j].count
			}
			return cities[i].city < cities[j].city
		})
		for _, cc := range cities {
			bar := strings.Repeat("█", cc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(cc.city, 28), bar, cc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

// truncate bounds s to max bytes for display, backing off to the previous
// rune boundary so a multi-byte character is never split.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
