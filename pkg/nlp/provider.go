package nlp

import "context"

// Entity types reported by the analyzer.
const (
	EntityPerson       = "PERSON"
	EntityLocation     = "LOCATION"
	EntityOrganization = "ORGANIZATION"
	EntityEvent        = "EVENT"
	EntityWorkOfArt    = "WORK_OF_ART"
	EntityConsumerGood = "CONSUMER_GOOD"
	EntityOther        = "OTHER"
)

type Entity struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Salience float64 `json:"salience"`
}

// NLPProvider extracts named entities from free text.
type NLPProvider interface {
	AnalyzeEntities(ctx context.Context, text string) ([]Entity, error)
}
