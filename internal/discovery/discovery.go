package discovery

import (
	"go.uber.org/zap"

	"github.com/yasora/reflux/internal/codec"
	"github.com/yasora/reflux/internal/layout"
	trackerErrors "github.com/yasora/reflux/pkg/errors"
)

// interactiveTopN bounds the ranked candidate list handed to the
// interactive fallback, per spec §4.4.4 ("top-10 by match score").
const interactiveTopN = 10

// Chooser is called once per anchor whose automatic discovery failed, with
// a ranked list of its candidates, and must return the index of the one to
// promote.
type Chooser func(anchor string, candidates []Candidate) int

// Result bundles the resolved OffsetsCollection with the SongList decoded
// during discovery, since discovering SongList already requires decoding
// its entries and the tracker loop needs them for PlayRecord joins.
type Result struct {
	Offsets  OffsetsCollection
	SongList []codec.Song
}

// Discover runs one-shot, fully automatic discovery: any anchor that
// fails to resolve ends the attempt with a DiscoveryError. Embedders that
// want a human in the loop for ambiguous or failed anchors should use
// DiscoverInteractive instead.
func Discover(reader MemoryReader, displacements layout.DisplacementTable, enableSignatureFallback bool, log *zap.SugaredLogger) (Result, error) {
	return discover(reader, displacements, enableSignatureFallback, log, nil)
}

// DiscoverInteractive runs discovery the same way as Discover, but calls
// chooser for any anchor whose automatic resolution is ambiguous or fails
// outright, rather than returning an error.
func DiscoverInteractive(reader MemoryReader, displacements layout.DisplacementTable, enableSignatureFallback bool, log *zap.SugaredLogger, chooser Chooser) (Result, error) {
	return discover(reader, displacements, enableSignatureFallback, log, chooser)
}

func discover(reader MemoryReader, displacements layout.DisplacementTable, enableSignatureFallback bool, log *zap.SugaredLogger, chooser Chooser) (Result, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	songListMachine := newAnchorMachine(layout.AnchorSongList)
	songListMachine.begin()

	songListCandidate, songs, ok := discoverSongList(reader)
	if ok {
		songListMachine.propose(songListCandidate)
		songListMachine.promote(songListCandidate.Address)
	} else if enableSignatureFallback {
		if cand, songs2, ok2 := discoverSongListBySignature(reader); ok2 {
			songListMachine.promote(cand.Address)
			songs = songs2
			ok = true
		}
	}

	songListAddr, err := resolveOrChoose(songListMachine, chooser, log)
	if err != nil {
		return Result{}, err
	}
	log.Infow("resolved anchor", "anchor", layout.AnchorSongList, "address", songListAddr, "decodedSongs", len(songs))

	judgeMachine := newAnchorMachine(layout.AnchorJudgeData)
	judgeMachine.begin()
	if cand, ok := discoverJudgeData(reader, songListAddr, displacements); ok {
		judgeMachine.propose(cand)
		judgeMachine.promote(cand.Address)
	}
	judgeAddr, err := resolveOrChoose(judgeMachine, chooser, log)
	if err != nil {
		return Result{}, err
	}
	log.Infow("resolved anchor", "anchor", layout.AnchorJudgeData, "address", judgeAddr)

	settingsMachine := newAnchorMachine(layout.AnchorSettings)
	settingsMachine.begin()
	if cand, ok := discoverPlaySettings(reader, judgeAddr, displacements); ok {
		settingsMachine.propose(cand)
		settingsMachine.promote(cand.Address)
	}
	settingsAddr, err := resolveOrChoose(settingsMachine, chooser, log)
	if err != nil {
		return Result{}, err
	}
	log.Infow("resolved anchor", "anchor", layout.AnchorSettings, "address", settingsAddr)

	playDataMachine := newAnchorMachine(layout.AnchorPlayData)
	playDataMachine.begin()
	if cand, ok := discoverPlayData(reader, settingsAddr, displacements); ok {
		playDataMachine.propose(cand)
		playDataMachine.promote(cand.Address)
	}
	playDataAddr, err := resolveOrChoose(playDataMachine, chooser, log)
	if err != nil {
		return Result{}, err
	}
	log.Infow("resolved anchor", "anchor", layout.AnchorPlayData, "address", playDataAddr)

	currentSongMachine := newAnchorMachine(layout.AnchorCurrentSong)
	currentSongMachine.begin()
	if cand, ok := discoverCurrentSong(reader, judgeAddr, displacements); ok {
		currentSongMachine.propose(cand)
		currentSongMachine.promote(cand.Address)
	}
	currentSongAddr, err := resolveOrChoose(currentSongMachine, chooser, log)
	if err != nil {
		return Result{}, err
	}
	log.Infow("resolved anchor", "anchor", layout.AnchorCurrentSong, "address", currentSongAddr)

	dataMapMachine := newAnchorMachine(AnchorDataMap)
	dataMapMachine.begin()
	if cand, ok := discoverDataMap(reader); ok {
		dataMapMachine.propose(cand)
		dataMapMachine.promote(cand.Address)
	}
	dataMapAddr, err := resolveOrChoose(dataMapMachine, chooser, log)
	if err != nil {
		return Result{}, err
	}
	log.Infow("resolved anchor", "anchor", AnchorDataMap, "address", dataMapAddr)

	unlockMachine := newAnchorMachine(AnchorUnlockData)
	unlockMachine.begin()
	if cand, ok := discoverUnlockData(reader); ok {
		unlockMachine.propose(cand)
		unlockMachine.promote(cand.Address)
	}
	unlockAddr, err := resolveOrChoose(unlockMachine, chooser, log)
	if err != nil {
		return Result{}, err
	}
	log.Infow("resolved anchor", "anchor", AnchorUnlockData, "address", unlockAddr)

	return Result{
		Offsets: OffsetsCollection{
			SongList:     songListAddr,
			DataMap:      dataMapAddr,
			JudgeData:    judgeAddr,
			PlayData:     playDataAddr,
			PlaySettings: settingsAddr,
			UnlockData:   unlockAddr,
			CurrentSong:  currentSongAddr,
		},
		SongList: songs,
	}, nil
}

// resolveOrChoose returns the anchor's validated address, or — if
// discovery left it unresolved and a chooser was supplied — invokes the
// chooser against the anchor's ranked candidates and promotes the chosen
// one. With no chooser, an unresolved anchor is a DiscoveryError.
func resolveOrChoose(m *anchorMachine, chooser Chooser, log *zap.SugaredLogger) (uintptr, error) {
	if m.state == StateValidated {
		return m.validated, nil
	}

	m.exhaust()
	ranked := m.ranked(interactiveTopN)

	if chooser == nil {
		log.Warnw("anchor discovery failed", "anchor", m.name, "candidatesTried", len(m.candidates))
		return 0, trackerErrors.NewAnchorExhaustedError(m.name, len(m.candidates))
	}

	if len(ranked) == 0 {
		return 0, trackerErrors.NewAnchorExhaustedError(m.name, 0)
	}

	idx := chooser(m.name, ranked)
	if idx < 0 || idx >= len(ranked) {
		return 0, trackerErrors.NewDiscoveryError(nil, trackerErrors.ErrorCodeAmbiguousCandidates, "chooser returned an out-of-range index").
			WithAnchor(m.name)
	}

	chosen := ranked[idx]
	m.promote(chosen.Address)
	return chosen.Address, nil
}

// discoverSongListBySignature is the signature-table fallback for
// SongList, used only when EnableSignatureFallback is set and the primary
// anchored scan found nothing.
func discoverSongListBySignature(reader MemoryReader) (Candidate, []codec.Song, bool) {
	base := reader.ModuleBase()
	var sig Signature
	for _, s := range signatureTable {
		if s.Name == layout.AnchorSongList {
			sig = s
			break
		}
	}
	if sig.Pattern == nil {
		return Candidate{}, nil, false
	}

	matches := scanForSignature(reader, base, songListFullScanLength, sig)

	var best Candidate
	var bestSongs []codec.Song
	found := false

	for _, matchAddr := range matches {
		head, songs, run := probeSongListHead(reader, matchAddr+uintptr(sig.Offset))
		if run < songListMinValidRun {
			continue
		}
		cand := Candidate{Anchor: layout.AnchorSongList, Address: head, Score: songListScore(run), DecodedRun: run}
		if !found || cand.Score > best.Score {
			best, bestSongs, found = cand, songs, true
		}
	}

	return best, bestSongs, found
}
