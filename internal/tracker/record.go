package tracker

import (
	"time"

	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/detector"
)

// Chart identifies one playable difficulty of a song, plus the numeric
// level that difficulty carries for that song (spec §4.6: a PlayRecord's
// "chart" field).
type Chart struct {
	PlayStyle  codec.PlayStyle
	Difficulty codec.Difficulty
	Level      uint8
}

// PlayRecord is one completed play, materialized on a detector Result
// transition by joining the latest structure snapshots with the SongList
// lookup (spec §4.6).
type PlayRecord struct {
	Timestamp time.Time
	Song      codec.Song
	Chart     Chart
	Judge     codec.JudgeData
	PlayData  codec.PlayData
	Settings  codec.Settings
}

// buildPlayRecord joins a detector emission with the resolved song
// metadata. songs may not contain an entry for emission.PlayData.SongID
// (a song removed from the song list between discovery and this play, or
// a decode gap during the SongList scan); the record is still produced
// with a zero-value Song rather than dropped, since the judge/play_data
// facts are independently meaningful to a sink.
func buildPlayRecord(emission *detector.Emission, songs []codec.Song) PlayRecord {
	song, _ := findSong(songs, emission.PlayData.SongID)

	return PlayRecord{
		Timestamp: emission.At,
		Song:      song,
		Chart: Chart{
			PlayStyle:  emission.PlayData.PlayStyle,
			Difficulty: emission.PlayData.Difficulty,
			Level:      song.ChartLevel(emission.PlayData.PlayStyle, emission.PlayData.Difficulty),
		},
		Judge:    emission.Judge,
		PlayData: emission.PlayData,
		Settings: emission.Settings,
	}
}

func findSong(songs []codec.Song, songID uint32) (codec.Song, bool) {
	for _, s := range songs {
		if s.ID == songID {
			return s, true
		}
	}
	return codec.Song{}, false
}
