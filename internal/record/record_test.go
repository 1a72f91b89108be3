package record

import (
	"os"
	"path/filepath"
	"testing"

	"animehub/internal/pipeline"
	"animehub/pkg/models"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestWriteAllThenReadBack(t *testing.T) {
	dir := t.TempDir()
	rank := int64(7)
	mean := 8.21

	set := pipeline.RecordSet{
		Users: []models.User{{ID: 0, Username: "alice"}, {ID: 1, Username: "bob"}},
		Animes: []models.Anime{
			{ID: 1, Title: "Cowboy Bebop", OverallRank: &rank, MeanScore: &mean},
			{ID: 30, Title: "Neon Genesis Evangelion"}, // null rank and score
		},
		GenreLinks: []models.GenreLink{{AnimeID: 1, GenreID: 1}, {AnimeID: 1, GenreID: 14}},
		Watchlists: []models.WatchlistEntry{
			{UserID: 0, AnimeID: 1, Rank: 1},
			{UserID: 0, AnimeID: 30, Rank: 2},
		},
	}
	if err := WriteAll(dir, set); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	users, err := ReadUsers(filepath.Join(dir, UsersFile))
	if err != nil {
		t.Fatalf("ReadUsers: %v", err)
	}
	if len(users) != 2 || users[0].Username != "alice" {
		t.Fatalf("users did not round-trip: %+v", users)
	}

	animes, err := ReadAnimes(filepath.Join(dir, AnimesFile))
	if err != nil {
		t.Fatalf("ReadAnimes: %v", err)
	}
	if len(animes) != 2 {
		t.Fatalf("expected 2 animes, got %d", len(animes))
	}
	if animes[0].OverallRank == nil || *animes[0].OverallRank != 7 {
		t.Fatalf("rank lost in transit: %+v", animes[0])
	}
	if animes[1].OverallRank != nil || animes[1].MeanScore != nil {
		t.Fatalf("null fields must stay null: %+v", animes[1])
	}

	watchlists, err := ReadWatchlists(filepath.Join(dir, WatchlistsFile))
	if err != nil {
		t.Fatalf("ReadWatchlists: %v", err)
	}
	if len(watchlists) != 2 || watchlists[1].Rank != 2 {
		t.Fatalf("watchlists did not round-trip: %+v", watchlists)
	}
}

func TestReadUsernamesColumnDriven(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "user.csv", "USERNAME\nalice\nbob\n\nalice\n")

	usernames, err := ReadUsernames(path)
	if err != nil {
		t.Fatalf("ReadUsernames: %v", err)
	}
	// the source list is not deduplicated here; that is the resolver's job
	want := []string{"alice", "bob", "alice"}
	if len(usernames) != len(want) {
		t.Fatalf("got %v, want %v", usernames, want)
	}
	for i := range want {
		if usernames[i] != want[i] {
			t.Fatalf("got %v, want %v", usernames, want)
		}
	}
}

func TestReadUsernamesMissingFileIsFatal(t *testing.T) {
	if _, err := ReadUsernames(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing username source")
	}
}

func TestReadReviewsCoercesBadRating(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "reviews.csv",
		"anime_id,username,date,rating_score,review_text\n"+
			"1,critic,Jan 3 2021,9,great show\n"+
			"1,rambler,Feb 4 2021,N/A,unreadable rating\n")

	reviews, err := ReadReviews(path)
	if err != nil {
		t.Fatalf("ReadReviews: %v", err)
	}
	if len(reviews) != 2 {
		t.Fatalf("record with bad rating must be kept, got %d reviews", len(reviews))
	}
	if reviews[0].Rating == nil || *reviews[0].Rating != 9 {
		t.Fatalf("numeric rating lost: %+v", reviews[0])
	}
	if reviews[1].Rating != nil {
		t.Fatalf("non-numeric rating must coerce to null, got %v", *reviews[1].Rating)
	}
}

func TestReadDetailsNullableFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "anime_details.csv",
		"anime_id,studio,promo_video_url\n"+
			"1,Sunrise,https://youtu.be/abc123def45\n"+
			"30,,\n"+
			"junk,Studio X,\n")

	details, err := ReadDetails(path)
	if err != nil {
		t.Fatalf("ReadDetails: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("row with unparsable key must be skipped, got %d", len(details))
	}
	if details[0].Studio == nil || *details[0].Studio != "Sunrise" {
		t.Fatalf("studio lost: %+v", details[0])
	}
	if details[1].Studio != nil || details[1].PromoLink != nil {
		t.Fatalf("empty enrichment fields must be null: %+v", details[1])
	}
}
