package service

import (
	"testing"

	"trends-service/config"
	"trends-service/model"
)

func filterService(relaxThreshold int) *TrendService {
	return &TrendService{cfg: &config.Config{RelaxThreshold: relaxThreshold}}
}

func captionPool(captions ...string) []model.Video {
	pool := make([]model.Video, len(captions))
	for i, c := range captions {
		pool[i] = model.Video{PlatformID: c, Transcript: c, Author: "someone"}
	}
	return pool
}

func TestFilterByRelevanceKeepsMatches(t *testing.T) {
	s := filterService(2)
	pool := captionPool(
		"luxury watch unboxing",
		"my cat sleeping",
		"luxury yacht tour",
		"breakfast recipe",
	)

	got := s.filterByRelevance(pool, "luxury")
	if len(got) != 2 {
		t.Fatalf("filter kept %d records, want 2", len(got))
	}
	for _, v := range got {
		if v.Transcript != "luxury watch unboxing" && v.Transcript != "luxury yacht tour" {
			t.Errorf("filter kept unrelated record %q", v.Transcript)
		}
	}
}

func TestFilterByRelevanceMatchesAuthor(t *testing.T) {
	s := filterService(1)
	pool := []model.Video{
		{PlatformID: "1", Transcript: "no overlap here", Author: "rolexofficial"},
	}

	got := s.filterByRelevance(pool, "rolex")
	if len(got) != 1 {
		t.Fatalf("filter dropped a record matching on author, kept %d", len(got))
	}
}

func TestFilterByRelevanceRelaxesSmallResult(t *testing.T) {
	// Strict filtering keeps only 1 record, below the threshold of 5: the
	// whole pool comes back instead.
	s := filterService(5)
	pool := captionPool(
		"luxury lifestyle",
		"random clip one",
		"random clip two",
		"random clip three",
	)

	got := s.filterByRelevance(pool, "luxury")
	if len(got) != len(pool) {
		t.Errorf("relaxation returned %d records, want the full pool of %d", len(got), len(pool))
	}
}

func TestFilterByRelevanceGenericQueriesBypass(t *testing.T) {
	s := filterService(5)
	pool := captionPool("anything", "at all")

	for _, q := range []string{"", "viral", "trending", "wow", "epic", "viral trending wow epic", "  VIRAL  "} {
		got := s.filterByRelevance(pool, q)
		if len(got) != len(pool) {
			t.Errorf("generic query %q filtered the pool to %d records", q, len(got))
		}
	}
}

func TestFilterByRelevanceAnyWordMatches(t *testing.T) {
	s := filterService(1)
	pool := captionPool(
		"new gadget review",
		"cooking pasta tonight",
	)

	got := s.filterByRelevance(pool, "gadget pasta")
	if len(got) != 2 {
		t.Errorf("multi-word query kept %d records, want 2 (any word qualifies)", len(got))
	}
}
