package game

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
)

const journalVersion = 2

// Journal records everything needed to re-simulate a match: the setup, the
// seed, and every accepted action with the checksum of the state it produced.
type Journal struct {
	MatchID   string
	Seed      uint64
	Setup     Setup
	Options   Options
	Checksum  string // after setup and the first turn start
	Actions   []Action
	Checksums []string
}

func newJournal(matchID string, seed uint64, setup Setup, opts Options) *Journal {
	return &Journal{
		MatchID: matchID,
		Seed:    seed,
		Setup:   setup,
		Options: opts,
	}
}

func (j *Journal) record(a Action, checksum string) {
	if a.TargetSlot != nil {
		slot := *a.TargetSlot
		a.TargetSlot = &slot
	}
	j.Actions = append(j.Actions, a)
	j.Checksums = append(j.Checksums, checksum)
}

// Len returns the number of recorded actions.
func (j *Journal) Len() int {
	return len(j.Actions)
}

// FinalChecksum is the checksum after the last recorded action.
func (j *Journal) FinalChecksum() string {
	if len(j.Checksums) == 0 {
		return j.Checksum
	}
	return j.Checksums[len(j.Checksums)-1]
}

func (j *Journal) clone() *Journal {
	cp := *j
	cp.Actions = make([]Action, len(j.Actions))
	for i, a := range j.Actions {
		if a.TargetSlot != nil {
			slot := *a.TargetSlot
			a.TargetSlot = &slot
		}
		cp.Actions[i] = a
	}
	cp.Checksums = append([]string(nil), j.Checksums...)
	for seat := range j.Setup.Decks {
		cp.Setup.Decks[seat] = append([]string(nil), j.Setup.Decks[seat]...)
		cp.Setup.Territories[seat] = append([]string(nil), j.Setup.Territories[seat]...)
	}
	return &cp
}

// Verify re-simulates the journal from its setup and seed and checks every
// intermediate checksum. It returns the final state.
func Verify(logger *zap.Logger, cat *catalog.Catalog, j *Journal) (*State, error) {
	m, err := NewMatch(logger, cat, j.MatchID, j.Seed, j.Setup, j.Options)
	if err != nil {
		return nil, fmt.Errorf("replay setup: %w", err)
	}
	if got := Checksum(m.state); got != j.Checksum {
		return nil, fmt.Errorf("replay diverged at setup: checksum %s, recorded %s", got, j.Checksum)
	}
	for i, a := range j.Actions {
		st, err := m.Apply(a)
		if err != nil {
			return nil, fmt.Errorf("replay action %d %s: %w", i, a, err)
		}
		if i < len(j.Checksums) && Checksum(st) != j.Checksums[i] {
			return nil, fmt.Errorf("replay diverged at action %d %s", i, a)
		}
	}
	return m.Snapshot(), nil
}

// SaveToFile writes the journal as a gzipped gob stream named after the match.
func (j *Journal) SaveToFile(directory string) error {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", j.MatchID))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	encoder := gob.NewEncoder(gzipWriter)

	metadata := replayMetadata{
		MatchID:     j.MatchID,
		Timestamp:   time.Now(),
		Version:     journalVersion,
		ActionCount: len(j.Actions),
	}
	if err := encoder.Encode(&metadata); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := encoder.Encode(newJournalFile(j)); err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}
	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush replay: %w", err)
	}
	return nil
}

// LoadJournalFromFile reads a journal written by SaveToFile.
func LoadJournalFromFile(directory, matchID string) (*Journal, error) {
	return LoadJournal(filepath.Join(directory, fmt.Sprintf("%s.replay", matchID)))
}

// LoadJournal reads a journal from an explicit path.
func LoadJournal(filename string) (*Journal, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)

	var metadata replayMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if metadata.Version != journalVersion {
		return nil, fmt.Errorf("unsupported replay version: %d", metadata.Version)
	}

	var jf journalFile
	if err := decoder.Decode(&jf); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}
	if len(jf.Actions) != metadata.ActionCount {
		return nil, fmt.Errorf("replay holds %d actions, header says %d", len(jf.Actions), metadata.ActionCount)
	}
	return jf.journal(), nil
}

// journalFile is the on-disk journal. gob drops a pointer to a zero value,
// so the optional target slot is stored as a flag plus a plain int.
type journalFile struct {
	MatchID   string
	Seed      uint64
	Setup     Setup
	Options   Options
	Checksum  string
	Actions   []savedAction
	Checksums []string
}

type savedAction struct {
	Type         ActionType
	PlayerID     string
	Index        int
	HasSlot      bool
	TargetSlot   int
	TargetPlayer string
}

func newJournalFile(j *Journal) *journalFile {
	jf := &journalFile{
		MatchID:   j.MatchID,
		Seed:      j.Seed,
		Setup:     j.Setup,
		Options:   j.Options,
		Checksum:  j.Checksum,
		Actions:   make([]savedAction, len(j.Actions)),
		Checksums: j.Checksums,
	}
	for i, a := range j.Actions {
		sa := savedAction{Type: a.Type, PlayerID: a.PlayerID, Index: a.Index, TargetPlayer: a.TargetPlayer}
		if a.TargetSlot != nil {
			sa.HasSlot, sa.TargetSlot = true, *a.TargetSlot
		}
		jf.Actions[i] = sa
	}
	return jf
}

func (jf *journalFile) journal() *Journal {
	j := &Journal{
		MatchID:   jf.MatchID,
		Seed:      jf.Seed,
		Setup:     jf.Setup,
		Options:   jf.Options,
		Checksum:  jf.Checksum,
		Actions:   make([]Action, len(jf.Actions)),
		Checksums: jf.Checksums,
	}
	for i, sa := range jf.Actions {
		a := Action{Type: sa.Type, PlayerID: sa.PlayerID, Index: sa.Index, TargetPlayer: sa.TargetPlayer}
		if sa.HasSlot {
			slot := sa.TargetSlot
			a.TargetSlot = &slot
		}
		j.Actions[i] = a
	}
	return j
}

// replayMetadata heads every replay file.
type replayMetadata struct {
	MatchID     string
	Timestamp   time.Time
	Version     int
	ActionCount int
}

// ReplayRecorder keeps journals of recorded matches and writes them to disk.
type ReplayRecorder struct {
	logger  *zap.Logger
	mu      sync.RWMutex
	enabled map[string]bool // matchID -> whether recording is enabled
	saveDir string
}

// NewReplayRecorder creates a recorder that saves into saveDir.
func NewReplayRecorder(logger *zap.Logger, saveDir string) *ReplayRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplayRecorder{
		logger:  logger,
		enabled: make(map[string]bool),
		saveDir: saveDir,
	}
}

// StartRecording marks a match for saving.
func (rr *ReplayRecorder) StartRecording(matchID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	rr.enabled[matchID] = true
	rr.logger.Info("started replay recording", zap.String("match_id", matchID))
}

// StopRecording unmarks a match.
func (rr *ReplayRecorder) StopRecording(matchID string) {
	rr.mu.Lock()
	defer rr.mu.Unlock()

	delete(rr.enabled, matchID)
	rr.logger.Info("stopped replay recording", zap.String("match_id", matchID))
}

// IsRecording reports whether a match is marked for saving.
func (rr *ReplayRecorder) IsRecording(matchID string) bool {
	rr.mu.RLock()
	defer rr.mu.RUnlock()

	return rr.enabled[matchID]
}

// Save writes the journal if its match is being recorded.
func (rr *ReplayRecorder) Save(j *Journal) error {
	if !rr.IsRecording(j.MatchID) {
		return nil
	}
	if err := j.SaveToFile(rr.saveDir); err != nil {
		return fmt.Errorf("failed to save replay: %w", err)
	}
	rr.logger.Info("saved replay to disk",
		zap.String("match_id", j.MatchID),
		zap.Int("action_count", j.Len()),
		zap.String("directory", rr.saveDir),
	)
	return nil
}

// Load reads a saved journal by match id.
func (rr *ReplayRecorder) Load(matchID string) (*Journal, error) {
	j, err := LoadJournalFromFile(rr.saveDir, matchID)
	if err != nil {
		return nil, err
	}
	rr.logger.Info("loaded replay from disk",
		zap.String("match_id", matchID),
		zap.Int("action_count", j.Len()),
	)
	return j, nil
}
