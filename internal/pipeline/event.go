package pipeline

// Event is a decoded log event as handed to the pipeline stages. String
// fields are empty when the producer omitted them; defaults are applied by
// the aggregator, not here.
type Event struct {
	Source    string
	EventType string
	Message   string
	User      string
	IP        string
	Email     string
	Region    string
	Country   string
	Action    string
	Status    string
	TS        string
}

// IncidentTitle derives the short human label used when an incident is first
// created: "<source> - <event_type>" with the original fallbacks.
func IncidentTitle(evt Event) string {
	source := evt.Source
	if source == "" {
		source = "unknown"
	}
	et := evt.EventType
	if et == "" {
		et = evt.Action
	}
	if et == "" {
		et = "event"
	}
	return source + " - " + et
}
