package pipeline

import (
	"testing"

	"animehub/pkg/models"
)

func TestResolveUserDenseStableIDs(t *testing.T) {
	agg := NewAggregate()
	res := NewResolver(agg)

	sequence := []string{"alice", "bob", "alice", "carol", "bob", "alice"}
	want := map[string]int64{"alice": 0, "bob": 1, "carol": 2}

	for _, name := range sequence {
		id, _ := res.ResolveUser(name)
		if id != want[name] {
			t.Fatalf("ResolveUser(%q) = %d, want %d", name, id, want[name])
		}
	}

	users := agg.Drain().Users
	if len(users) != 3 {
		t.Fatalf("expected 3 user records, got %d", len(users))
	}
	for i, u := range users {
		if u.ID != int64(i) {
			t.Fatalf("user ids not dense: position %d has id %d", i, u.ID)
		}
	}
}

func TestResolveUserReportsFirstSighting(t *testing.T) {
	res := NewResolver(NewAggregate())

	if _, first := res.ResolveUser("alice"); !first {
		t.Fatalf("first sighting of alice not reported as new")
	}
	if _, first := res.ResolveUser("alice"); first {
		t.Fatalf("repeat sighting of alice reported as new")
	}
}

func TestResolveAnimeFirstSeenWins(t *testing.T) {
	agg := NewAggregate()
	res := NewResolver(agg)

	rank1 := int64(12)
	rank2 := int64(99)

	if !res.ResolveAnime(models.Anime{ID: 5114, Title: "Fullmetal Alchemist: Brotherhood", OverallRank: &rank1}) {
		t.Fatalf("first sighting not recorded")
	}
	if res.ResolveAnime(models.Anime{ID: 5114, Title: "some other title", OverallRank: &rank2}) {
		t.Fatalf("second sighting recorded again")
	}

	animes := agg.Drain().Animes
	if len(animes) != 1 {
		t.Fatalf("expected 1 anime record, got %d", len(animes))
	}
	got := animes[0]
	if got.Title != "Fullmetal Alchemist: Brotherhood" {
		t.Fatalf("title overwritten by later sighting: %q", got.Title)
	}
	if got.OverallRank == nil || *got.OverallRank != 12 {
		t.Fatalf("rank overwritten by later sighting: %v", got.OverallRank)
	}
}
