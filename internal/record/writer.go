package record

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"animehub/internal/pipeline"
	"animehub/pkg/models"
)

// Intermediate file names, one per record type.
const (
	UsersFile      = "users.csv"
	AnimesFile     = "animes.csv"
	GenreLinksFile = "anime_genres.csv"
	WatchlistsFile = "user_watchlists.csv"
)

// WriteAll writes the four record files under dir, once, after the run
// has finished. There is no incremental flushing; a crashed run leaves
// no partial files behind other than the one being written.
func WriteAll(dir string, set pipeline.RecordSet) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}

	if err := writeUsers(filepath.Join(dir, UsersFile), set.Users); err != nil {
		return fmt.Errorf("write %s: %w", UsersFile, err)
	}
	if err := writeAnimes(filepath.Join(dir, AnimesFile), set.Animes); err != nil {
		return fmt.Errorf("write %s: %w", AnimesFile, err)
	}
	if err := writeGenreLinks(filepath.Join(dir, GenreLinksFile), set.GenreLinks); err != nil {
		return fmt.Errorf("write %s: %w", GenreLinksFile, err)
	}
	if err := writeWatchlists(filepath.Join(dir, WatchlistsFile), set.Watchlists); err != nil {
		return fmt.Errorf("write %s: %w", WatchlistsFile, err)
	}
	return nil
}

func writeUsers(path string, users []models.User) error {
	return writeCSV(path, []string{"user_id", "username"}, func(w *csv.Writer) error {
		for _, u := range users {
			if err := w.Write([]string{formatInt(u.ID), u.Username}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeAnimes(path string, animes []models.Anime) error {
	return writeCSV(path, []string{"anime_id", "title", "overall_rank", "mean_score"}, func(w *csv.Writer) error {
		for _, a := range animes {
			rank := ""
			if a.OverallRank != nil {
				rank = formatInt(*a.OverallRank)
			}
			mean := ""
			if a.MeanScore != nil {
				mean = strconv.FormatFloat(*a.MeanScore, 'f', -1, 64)
			}
			if err := w.Write([]string{formatInt(a.ID), a.Title, rank, mean}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeGenreLinks(path string, links []models.GenreLink) error {
	return writeCSV(path, []string{"anime_id", "genre_id"}, func(w *csv.Writer) error {
		for _, l := range links {
			if err := w.Write([]string{formatInt(l.AnimeID), formatInt(l.GenreID)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeWatchlists(path string, entries []models.WatchlistEntry) error {
	return writeCSV(path, []string{"user_id", "anime_id", "user_rank"}, func(w *csv.Writer) error {
		for _, e := range entries {
			if err := w.Write([]string{formatInt(e.UserID), formatInt(e.AnimeID), formatInt(e.Rank)}); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSV(path string, header []string, rows func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := rows(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
