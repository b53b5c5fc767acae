package pipeline

import (
	"encoding/json"

	"ai-websearch-be/pkg/rag/sources"
)

// EventKind tags one pipeline milestone.
type EventKind string

const (
	KindSources        EventKind = "Sources"
	KindVectorCreation EventKind = "VectorCreation"
	KindHeading        EventKind = "Heading"
	KindGPT            EventKind = "GPT"
	KindFollowUp       EventKind = "FollowUp"
)

const (
	vectorCreationNotice = "Finished Scanning Sources."
	headingNotice        = "Answer"
)

// StageEvent is a tagged union with one variant per kind. Events are
// append-only and ordered; only GPT events revise content, and then only as
// a monotonically growing prefix of the final answer.
type StageEvent struct {
	Kind EventKind

	// Exactly one of these carries the payload, selected by Kind
	sources []sources.CandidateSource
	text    string
}

func NewSourcesEvent(candidates []sources.CandidateSource) StageEvent {
	return StageEvent{Kind: KindSources, sources: candidates}
}

func NewVectorCreationEvent() StageEvent {
	return StageEvent{Kind: KindVectorCreation, text: vectorCreationNotice}
}

func NewHeadingEvent() StageEvent {
	return StageEvent{Kind: KindHeading, text: headingNotice}
}

// NewAnswerEvent carries the accumulated answer prefix so far.
func NewAnswerEvent(accumulated string) StageEvent {
	return StageEvent{Kind: KindGPT, text: accumulated}
}

// NewFollowUpEvent carries the raw follow-up payload as produced by the
// generation capability, malformed or not.
func NewFollowUpEvent(raw string) StageEvent {
	return StageEvent{Kind: KindFollowUp, text: raw}
}

// ContentJSON marshals just the kind-dependent content field.
func (e StageEvent) ContentJSON() ([]byte, error) {
	if e.Kind == KindSources {
		return json.Marshal(e.sources)
	}
	return json.Marshal(e.text)
}

// Sources returns the candidate list of a Sources event, nil otherwise.
func (e StageEvent) Sources() []sources.CandidateSource {
	return e.sources
}

// Text returns the string content for non-Sources kinds.
func (e StageEvent) Text() string {
	return e.text
}

type wirePayload struct {
	Type    EventKind       `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON emits the wire shape {type, content} delivered to clients.
func (e StageEvent) MarshalJSON() ([]byte, error) {
	content, err := e.ContentJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(wirePayload{Type: e.Kind, Content: content})
}
