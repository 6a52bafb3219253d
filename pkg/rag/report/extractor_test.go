package report

import (
	"testing"

	"civic-voice-be/pkg/rag/intent"

	"github.com/stretchr/testify/assert"
)

func TestExtractDetails(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantCategory string
		wantPriority string
	}{
		{"pothole urgent", "There is a huge pothole, it's a danger to bikes", "pothole", PriorityUrgent},
		{"garbage hindi", "यहाँ कचरा पड़ा है जल्दी साफ करो", "garbage", PriorityHigh},
		{"streetlight repair", "Please repair the street lamp near the park", "streetlight", PriorityMedium},
		{"drain no urgency", "Water logging near the bus stop", "drainage", PriorityLow},
		{"signal", "The traffic signal is broken", "traffic", PriorityLow},
		{"uncategorized", "The bench is wobbly", "", PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDetails(tt.text, intent.NLPResult{Entities: map[string]string{}})
			assert.Equal(t, tt.text, got.Description)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantPriority, got.Priority)
		})
	}
}

func TestExtractDetailsCarriesLocation(t *testing.T) {
	result := intent.NLPResult{Entities: map[string]string{intent.EntityLocation: "MG Road"}}
	got := ExtractDetails("garbage dumped on MG Road", result)
	assert.Equal(t, "MG Road", got.Location)
}

func TestRouteByIntent(t *testing.T) {
	tests := map[string]string{
		intent.CheckTraffic:       RouteTraffic,
		intent.InformationalQuery: RouteKnowledgeBase,
		intent.ReportIssue:        RouteCreateReport,
		intent.Unknown:            RouteGeneral,
		"":                        RouteGeneral,
	}
	for in, want := range tests {
		assert.Equal(t, want, RouteByIntent(intent.NLPResult{Intent: in}), in)
	}
}
