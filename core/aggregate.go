package core

import (
	"sort"

	"github.com/rmonroe/shotline/schema"
)

// YearlySummaries groups cleaned incidents by calendar year of occurrence.
// One row per distinct year, sorted ascending. TotalIncidents is the row
// count for the year; TotalDeaths counts rows with the murder flag set.
func YearlySummaries(incidents []schema.Incident) []schema.YearSummary {
	byYear := make(map[int]*schema.YearSummary)
	for _, incident := range incidents {
		year := incident.Year()
		summary, ok := byYear[year]
		if !ok {
			summary = &schema.YearSummary{Year: year}
			byYear[year] = summary
		}
		summary.TotalIncidents++
		if incident.MurderFlag {
			summary.TotalDeaths++
		}
	}

	summaries := make([]schema.YearSummary, 0, len(byYear))
	for _, summary := range byYear {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Year < summaries[j].Year
	})
	return summaries
}

// GroupCounts aggregates incidents by one categorical key. Rows are sorted
// by count descending, ties broken by label, so tables read top-down.
func GroupCounts(incidents []schema.Incident, key schema.GroupKey) []schema.GroupCount {
	byLabel := make(map[string]*schema.GroupCount)
	for _, incident := range incidents {
		label := groupLabel(incident, key)
		count, ok := byLabel[label]
		if !ok {
			count = &schema.GroupCount{Key: key, Label: label}
			byLabel[label] = count
		}
		count.Count++
		if incident.MurderFlag {
			count.Deaths++
		}
	}

	counts := make([]schema.GroupCount, 0, len(byLabel))
	for _, count := range byLabel {
		counts = append(counts, *count)
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Label < counts[j].Label
	})
	return counts
}

// groupLabel selects the categorical cell for a grouping key.
func groupLabel(incident schema.Incident, key schema.GroupKey) string {
	switch key {
	case schema.GroupVicSex:
		return incident.VicSex
	case schema.GroupVicRace:
		return incident.VicRace
	case schema.GroupPerpSex:
		return incident.PerpSex
	case schema.GroupPerpRace:
		return incident.PerpRace
	default:
		return incident.Boro
	}
}
