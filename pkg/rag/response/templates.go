package response

import (
	"fmt"
	"strings"

	"civic-voice-be/pkg/traffic"
)

const noLocationMessage = `I'd be happy to help with traffic information! Please specify a destination, for example: "How is traffic to downtown?" or "What's the traffic like to the airport?"`

const searchErrorMessage = "I encountered an error while searching for information. Please try again later."

const noSpeechMessage = "I didn't catch that. Please try speaking again."

// FormatNoResults is the reply when nothing in the knowledge base matches.
func FormatNoResults(query string) string {
	return fmt.Sprintf("I couldn't find any information about \"%s\". Please try rephrasing your question or contact the city office directly.", query)
}

func FormatNoLocation() string {
	return noLocationMessage
}

func FormatSearchError() string {
	return searchErrorMessage
}

func FormatNoSpeech() string {
	return noSpeechMessage
}

func FormatUnknownIntent(query string) string {
	return fmt.Sprintf("I'm not sure how to help with \"%s\". I can provide traffic information if you ask about routes or conditions. For example, try asking \"How is traffic to the station?\"", query)
}

// FormatTraffic describes a route lookup in one spoken sentence.
func FormatTraffic(data *traffic.TrafficData) string {
	return fmt.Sprintf("Traffic to %s is currently %s. The estimated travel time is %s.",
		data.Destination, describeCondition(data.TrafficCondition), data.DurationText)
}

// FormatTrafficFallback is used when the lookup fails or times out.
func FormatTrafficFallback(destination string) string {
	if strings.TrimSpace(destination) == "" {
		return "I'm sorry, I couldn't retrieve traffic information at this time. Please try again later or provide a specific destination."
	}
	return fmt.Sprintf("I'm sorry, I couldn't retrieve traffic information for %s at this time. Please try again later.", destination)
}

func describeCondition(condition string) string {
	switch condition {
	case traffic.ConditionClear:
		return "clear"
	case traffic.ConditionModerate:
		return "moderate"
	case traffic.ConditionHeavy:
		return "heavy"
	case traffic.ConditionSevere:
		return "severe"
	default:
		return "normal"
	}
}
