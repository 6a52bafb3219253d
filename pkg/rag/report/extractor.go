// Package report turns a spoken complaint into a draft civic issue report.
package report

import (
	"strings"

	"civic-voice-be/pkg/rag/intent"
)

const (
	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Routes a classified query can take.
const (
	RouteTraffic       = "traffic"
	RouteKnowledgeBase = "knowledge_base"
	RouteCreateReport  = "create_report"
	RouteGeneral       = "general"
)

type Details struct {
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Location    string `json:"location,omitempty"`
	Priority    string `json:"priority"`
}

type keywordGroup struct {
	name     string
	keywords []string
}

// Checked in order; the first group with a hit wins.
var categories = []keywordGroup{
	{"pothole", []string{"pothole", "गड्ढा", "road damage", "crack"}},
	{"garbage", []string{"garbage", "trash", "कचरा", "waste", "litter"}},
	{"streetlight", []string{"streetlight", "light", "बत्ती", "lamp", "dark"}},
	{"drainage", []string{"drainage", "drain", "नाली", "sewage", "water logging"}},
	{"traffic", []string{"traffic", "signal", "ट्रैफिक", "congestion"}},
}

var priorities = []keywordGroup{
	{PriorityUrgent, []string{"urgent", "emergency", "तुरंत", "danger", "immediately"}},
	{PriorityHigh, []string{"soon", "important", "जल्दी", "serious"}},
	{PriorityMedium, []string{"fix", "repair", "ठीक करो"}},
}

// ExtractDetails fills a report draft from the transcription and the
// location found during classification.
func ExtractDetails(transcription string, result intent.NLPResult) Details {
	priority := firstMatch(transcription, priorities)
	if priority == "" {
		priority = PriorityLow
	}
	return Details{
		Description: transcription,
		Category:    firstMatch(transcription, categories),
		Location:    result.Location(),
		Priority:    priority,
	}
}

func RouteByIntent(result intent.NLPResult) string {
	switch result.Intent {
	case intent.CheckTraffic:
		return RouteTraffic
	case intent.InformationalQuery:
		return RouteKnowledgeBase
	case intent.ReportIssue:
		return RouteCreateReport
	default:
		return RouteGeneral
	}
}

func firstMatch(text string, groups []keywordGroup) string {
	lower := strings.ToLower(text)
	for _, g := range groups {
		for _, k := range g.keywords {
			if strings.Contains(lower, k) {
				return g.name
			}
		}
	}
	return ""
}
