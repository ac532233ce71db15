package mapgen

import (
	"fmt"
	"sort"
	"strings"
)

// DayCount is one calendar day's photo count for the heatmap payload.
type DayCount struct {
	Date  string `json:"date"`  // YYYY-MM-DD
	Count int    `json:"count"`
}

// dailyCounts buckets storage-format timestamps by calendar day. It returns
// the per-day counts sorted by date and the distinct years sorted descending.
func dailyCounts(dates []string) ([]DayCount, []string) {
	byDay := make(map[string]int)
	for _, d := range dates {
		day, _, _ := strings.Cut(d, " ")
		byDay[strings.ReplaceAll(day, ":", "-")]++
	}

	counts := make([]DayCount, 0, len(byDay))
	yearSet := make(map[string]struct{})
	for day, n := range byDay {
		counts = append(counts, DayCount{Date: day, Count: n})
		year, _, _ := strings.Cut(day, "-")
		yearSet[year] = struct{}{}
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Date < counts[j].Date })

	years := make([]string, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	return counts, years
}

// heatmapContainers renders one container div per year, newest first, for
// the calendar heatmap scripts in the template to attach to.
func heatmapContainers(years []string) string {
	var b strings.Builder
	for _, year := range years {
		fmt.Fprintf(&b, `<div id="cal-heatmap-%s" style="width: 100%%; margin-bottom: 20px;"></div>`, year)
	}
	return b.String()
}
