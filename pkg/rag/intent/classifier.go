package intent

import (
	"context"
	"log"
	"os"
	"strings"
	"time"
	"unicode"

	"civic-voice-be/pkg/capability"
	"civic-voice-be/pkg/nlp"
)

const (
	CheckTraffic       = "check_traffic"
	InformationalQuery = "informational_query"
	ReportIssue        = "report_issue"
	Unknown            = "unknown"
)

// EntityLocation is the slot holding the first recognized place.
const EntityLocation = "location"

// NLPResult is the per-request classification of a query.
type NLPResult struct {
	Intent   string            `json:"intent"`
	Entities map[string]string `json:"entities"`
	Keywords []string          `json:"keywords"`
}

func (r NLPResult) Location() string {
	return r.Entities[EntityLocation]
}

// Words match whole, so inflected forms are listed explicitly.
var trafficVocabulary = []string{
	"traffic", "road", "roads", "roadblock", "roadblocks", "roadwork", "roadworks",
	"blocked", "blockage", "congestion", "congested", "jam", "jammed",
	"route", "routes", "drive", "drives", "driving",
	"travel", "travels", "traveling", "travelling", "journey", "journeys",
	"commute", "commutes", "commuting",
}

var informationalVocabulary = []string{
	"what", "when", "where", "which", "who", "how", "schedule", "hours",
	"contact", "timing", "timings", "open", "info", "information",
}

var keywordEntityTypes = map[string]bool{
	nlp.EntityPerson:       true,
	nlp.EntityLocation:     true,
	nlp.EntityOrganization: true,
	nlp.EntityEvent:        true,
	nlp.EntityWorkOfArt:    true,
	nlp.EntityConsumerGood: true,
	nlp.EntityOther:        true,
}

// Classifier asks the NLP provider for entities and assigns an intent
// locally. It never fails: without a provider, or when the provider call
// fails, the result is unknown with no entities or keywords.
type Classifier struct {
	provider nlp.NLPProvider
	timeout  time.Duration
	logger   *log.Logger
}

func NewClassifier(provider nlp.NLPProvider, timeout time.Duration, logger *log.Logger) *Classifier {
	if logger == nil {
		logger = log.New(os.Stdout, "[Intent] ", log.LstdFlags)
	}
	return &Classifier{
		provider: provider,
		timeout:  timeout,
		logger:   logger,
	}
}

func (c *Classifier) Classify(ctx context.Context, text string) NLPResult {
	result := NLPResult{
		Intent:   Unknown,
		Entities: map[string]string{},
		Keywords: []string{},
	}

	if c.provider == nil {
		c.logger.Printf("[WARN] No NLP provider configured, query left unclassified")
		return result
	}
	if strings.TrimSpace(text) == "" {
		return result
	}

	entities, err := capability.Call(ctx, c.timeout, func(ctx context.Context) ([]nlp.Entity, error) {
		return c.provider.AnalyzeEntities(ctx, text)
	})
	if err != nil {
		level := "[WARN]"
		if !capability.IsTransient(err) {
			level = "[ERROR]"
		}
		c.logger.Printf("%s Entity analysis failed, query left unclassified: %v", level, err)
		return result
	}

	result.Intent = DetermineIntent(text)

	if loc := FirstLocation(entities); loc != "" {
		result.Entities[EntityLocation] = loc
	}
	result.Keywords = Keywords(entities)
	return result
}

// DetermineIntent matches whole words of the lower-cased text against the
// traffic vocabulary first, then the informational one.
func DetermineIntent(text string) string {
	words := tokenize(text)
	if containsAny(words, trafficVocabulary) {
		return CheckTraffic
	}
	if containsAny(words, informationalVocabulary) {
		return InformationalQuery
	}
	return Unknown
}

func FirstLocation(entities []nlp.Entity) string {
	for _, e := range entities {
		if e.Type == nlp.EntityLocation && strings.TrimSpace(e.Name) != "" {
			return strings.TrimSpace(e.Name)
		}
	}
	return ""
}

// Keywords lower-cases and de-duplicates the names of whitelisted entities.
func Keywords(entities []nlp.Entity) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, e := range entities {
		if !keywordEntityTypes[e.Type] {
			continue
		}
		k := strings.ToLower(strings.TrimSpace(e.Name))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

func tokenize(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func containsAny(words map[string]bool, vocabulary []string) bool {
	for _, v := range vocabulary {
		if words[v] {
			return true
		}
	}
	return false
}
