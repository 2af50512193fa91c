package events

import "testing"

func TestPublish_NilPublisher(t *testing.T) {
	var p *Publisher
	// Must not panic.
	p.Publish(SubjectAnimeCached, "anime_cached", map[string]any{"mal_id": 1})
}

func TestPublish_NoJetStream(t *testing.T) {
	p := New(nil, nil)
	// Must not panic without a JetStream context.
	p.Publish(SubjectEpisodesCached, "episodes_cached", nil)
}
