package services

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"property-dashboard/models"
)

// PrintReport renders a report for a terminal.
func PrintReport(w io.Writer, r *models.DashboardReport) {
	sep := strings.Repeat("═", 58)
	thin := strings.Repeat("─", 58)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  📊 PROPERTY MARKET DASHBOARD\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	g := r.GeneralMetrics
	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Properties analysed  : \033[1m%d\033[0m\n", g.TotalProperties)
	fmt.Fprintf(w, "  Average price        : \033[1;32m$%s\033[0m\n", money(g.AveragePriceUSD))
	fmt.Fprintf(w, "  Average area         : \033[1m%.1f m²\033[0m\n", g.AverageM2)
	fmt.Fprintf(w, "  Average price per m² : \033[1;32m$%s\033[0m\n", money(g.AveragePricePerM2USD))
	fmt.Fprintln(w)

	printDistricts(w, "Most Expensive Neighborhoods (per m²)", r.Districts.TopExpensive, thin)
	printDistricts(w, "Most Affordable Neighborhoods (per m²)", r.Districts.TopAffordable, thin)

	fmt.Fprintf(w, "\033[1;33m  Property Types\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.PropertyTypeAnalysis) == 0 {
		fmt.Fprintf(w, "  No property type data\n")
	}
	for _, t := range r.PropertyTypeAnalysis {
		fmt.Fprintf(w, "  %-20s %5d  avg $%-12s %7.1f m²  $%s/m²\n",
			truncate(t.PropertyTypeName, 20), t.Count, money(t.AvgPriceUSD), t.AvgM2, money(t.AvgPricePerM2USD))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Top Facilities\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.FacilitiesAnalysis) == 0 {
		fmt.Fprintf(w, "  No facility data\n")
	} else {
		max := r.FacilitiesAnalysis[0].Count
		for _, f := range r.FacilitiesAnalysis {
			fmt.Fprintf(w, "  %-24s %s (%d)\n", truncate(f.Name, 24), bar(f.Count, max, 24), f.Count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Price by Rooms\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	for _, b := range r.PriceFeatureCorrelation.ByBedrooms {
		fmt.Fprintf(w, "  %g bedroom(s)  : $%s\n", b.Bedrooms, money(b.PriceUSD))
	}
	for _, b := range r.PriceFeatureCorrelation.ByBathrooms {
		fmt.Fprintf(w, "  %g bathroom(s) : $%s\n", b.Bathrooms, money(b.PriceUSD))
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func printDistricts(w io.Writer, title string, districts []models.DistrictPrice, thin string) {
	fmt.Fprintf(w, "\033[1;33m  %s\033[0m\n", title)
	fmt.Fprintf(w, "  %s\n", thin)
	if len(districts) == 0 {
		fmt.Fprintf(w, "  No neighborhood data\n")
	}
	for i, d := range districts {
		fmt.Fprintf(w, "  \033[1m%d.\033[0m %-36s \033[1;32m$%s\033[0m\n",
			i+1, truncate(d.Neighborhood, 36), money(d.PricePerM2USD))
	}
	fmt.Fprintln(w)
}

// money formats a USD amount with thousands separators and two decimals.
func money(f float64) string {
	return message.NewPrinter(language.English).Sprintf("%.2f", f)
}

func bar(n, max, width int) string {
	if max <= 0 {
		return ""
	}
	size := n * width / max
	if size < 1 && n > 0 {
		size = 1
	}
	return strings.Repeat("█", size)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
