package tracker

import (
	"testing"
	"time"

	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/detector"
	"github.com/yasora/reflux/internal/layout"
)

func sampleSongs() []codec.Song {
	s := codec.Song{ID: 20123, Title: "TITLE"}
	idx := int(codec.PlayStyleSP)*layout.NumDifficulty + int(codec.DifficultyAnother)
	s.ChartLevels[idx] = 11
	return []codec.Song{s}
}

func TestBuildPlayRecord_JoinsSongMetadata(t *testing.T) {
	now := time.Now()
	emission := &detector.Emission{
		CurrentSong: codec.CurrentSong{SongID: 20123, Difficulty: codec.DifficultyAnother, PlayStyle: codec.PlayStyleSP},
		PlayData: codec.PlayData{
			SongID: 20123, ExScore: 1720, MissCount: 3, ClearLamp: codec.LampHardClear, DjLevel: codec.DjLevelAAA,
			Difficulty: codec.DifficultyAnother, PlayStyle: codec.PlayStyleSP,
		},
		Judge:    codec.JudgeData{PGreat: 500, Great: 10},
		Settings: codec.Settings{Gauge: 2},
		At:       now,
	}

	record := buildPlayRecord(emission, sampleSongs())

	if record.Timestamp != now {
		t.Fatalf("Timestamp = %v, want %v", record.Timestamp, now)
	}
	if record.Song.ID != 20123 || record.Song.Title != "TITLE" {
		t.Fatalf("Song = %+v, want joined entry for 20123", record.Song)
	}
	if record.Chart.PlayStyle != codec.PlayStyleSP || record.Chart.Difficulty != codec.DifficultyAnother {
		t.Fatalf("Chart = %+v, want SP/Another", record.Chart)
	}
	if record.Chart.Level != 11 {
		t.Fatalf("Chart.Level = %d, want 11", record.Chart.Level)
	}
	if record.Judge != emission.Judge || record.PlayData != emission.PlayData || record.Settings != emission.Settings {
		t.Fatal("buildPlayRecord() did not carry the emission's structure snapshots through unchanged")
	}
}

func TestBuildPlayRecord_UnknownSongIDStillProducesRecord(t *testing.T) {
	emission := &detector.Emission{
		PlayData: codec.PlayData{SongID: 99999, ExScore: 500},
		At:       time.Now(),
	}

	record := buildPlayRecord(emission, sampleSongs())

	if record.Song != (codec.Song{}) {
		t.Fatalf("Song = %+v, want zero value for an unmatched song ID", record.Song)
	}
	if record.PlayData.ExScore != 500 {
		t.Fatalf("PlayData.ExScore = %d, want 500", record.PlayData.ExScore)
	}
}

func TestFindSong(t *testing.T) {
	songs := sampleSongs()

	if _, ok := findSong(songs, 1); ok {
		t.Fatal("findSong(): want not found for an absent ID")
	}
	if got, ok := findSong(songs, 20123); !ok || got.ID != 20123 {
		t.Fatalf("findSong() = %+v, %v; want the matching entry", got, ok)
	}
}
