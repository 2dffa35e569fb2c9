// Package store persists finished hands and player progression on
// disk. Hand records append to a JSON-lines journal so history survives
// restarts; the progress snapshot is rewritten atomically after every
// hand so a crash never leaves it half-written.
package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/AllenPeng0209/poker-god-sub001/internal/deck"
	"github.com/AllenPeng0209/poker-god-sub001/internal/fileutil"
	"github.com/AllenPeng0209/poker-god-sub001/internal/game"
	"github.com/AllenPeng0209/poker-god-sub001/internal/profile"
)

const (
	handsFile    = "hands.jsonl"
	progressFile = "progress.json"
)

// StageChips breaks a street's chip flow down by who put money in.
type StageChips struct {
	Contributed     int            `json:"contributed"`
	HeroContributed int            `json:"hero_contributed"`
	ForcedBlinds    int            `json:"forced_blinds"`
	ByPlayer        map[string]int `json:"by_player"`
	PotAfterStreet  int            `json:"pot_after_street"`
}

// DecisionSummary is one graded hero decision kept with the record.
type DecisionSummary struct {
	Street string `json:"street"`
	Chosen string `json:"chosen"`
	Best   string `json:"best"`
	IsBest bool   `json:"is_best"`
}

// HandRecord is one finished hand as written to the journal.
type HandRecord struct {
	ID         string                `json:"id"`
	ZoneName   string                `json:"zone"`
	PlayedAt   time.Time             `json:"played_at"`
	Winner     game.Winner           `json:"winner"`
	Pot        int                   `json:"pot"`
	ResultText string                `json:"result"`
	HeroCards  string                `json:"hero_cards"`
	Board      string                `json:"board"`
	Opponents  []string              `json:"opponents"`
	StageChips map[string]StageChips `json:"stage_chips"`
	Decisions  []DecisionSummary     `json:"decisions"`
	Bankroll   map[string]int        `json:"bankroll"`
}

// Store is a directory-backed persistence layer. Safe for concurrent
// use by a single process.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open prepares the storage directory.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// AppendHand adds one finished hand to the journal.
func (s *Store) AppendHand(rec HandRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode hand record: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(s.dir, handsFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open hand journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append hand record: %w", err)
	}
	return f.Sync()
}

// Hands reads the journal, newest last. A missing journal is an empty
// history, not an error.
func (s *Store) Hands() ([]HandRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(filepath.Join(s.dir, handsFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open hand journal: %w", err)
	}
	defer f.Close()

	var records []HandRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec HandRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("decode hand record: %w", err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read hand journal: %w", err)
	}
	return records, nil
}

// HandCount reports how many hands the journal holds.
func (s *Store) HandCount() (int, error) {
	records, err := s.Hands()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// SaveProgress snapshots progression atomically.
func (s *Store) SaveProgress(p *profile.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fileutil.WriteJSONAtomic(filepath.Join(s.dir, progressFile), p, 0o644)
}

// LoadProgress restores the last snapshot, or fresh progress when none
// has been saved yet.
func (s *Store) LoadProgress() (*profile.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, progressFile))
	if os.IsNotExist(err) {
		return profile.NewProgress(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress: %w", err)
	}

	p := profile.NewProgress()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	if p.Leaks == nil {
		p.Leaks = profile.NewProgress().Leaks
	}
	return p, nil
}

// BuildHandRecord flattens a finished hand into its journal form.
func BuildHandRecord(h *game.Hand, zoneName string, decisions []DecisionSummary, bankroll map[string]int) HandRecord {
	opponents := make([]string, 0, len(h.Players)-1)
	for _, p := range h.Players {
		if p.Role == game.RoleBot && p.Profile != nil {
			opponents = append(opponents, p.Profile.ID)
		}
	}

	return HandRecord{
		ID:         h.ID,
		ZoneName:   zoneName,
		PlayedAt:   time.Now().UTC(),
		Winner:     h.Winner,
		Pot:        h.Pot,
		ResultText: h.ResultText,
		HeroCards:  deck.CardsString(h.Hero().HoleCards),
		Board:      deck.CardsString(h.RevealedBoard()),
		Opponents:  opponents,
		StageChips: stageChipBreakdown(h),
		Decisions:  decisions,
		Bankroll:   bankroll,
	}
}

// stageChipBreakdown replays the history to attribute chips street by
// street. Table markers carry no chips and are skipped.
func stageChipBreakdown(h *game.Hand) map[string]StageChips {
	stages := make(map[string]StageChips, 4)
	running := 0
	for _, street := range []game.Street{game.Preflop, game.Flop, game.Turn, game.River} {
		stage := StageChips{ByPlayer: make(map[string]int)}
		for _, entry := range h.History {
			if entry.Street != street || entry.Table || entry.Amount <= 0 {
				continue
			}
			stage.Contributed += entry.Amount
			stage.ByPlayer[entry.ActorID] += entry.Amount
			if entry.ActorID == h.HeroID {
				stage.HeroContributed += entry.Amount
			}
			if entry.ForcedBlind != "" {
				stage.ForcedBlinds += entry.Amount
			}
		}
		running += stage.Contributed
		stage.PotAfterStreet = running
		if stage.Contributed > 0 {
			stages[street.String()] = stage
		}
	}
	return stages
}
