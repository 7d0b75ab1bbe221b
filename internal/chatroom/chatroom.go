// Package chatroom manages the per-user persisted conversation state:
// the raw chat log, the rolling condensed history window, the latest
// summary, the thread history, and the strategy cache. Each user's files
// are guarded by a single per-user lock so every read-modify-write cycle
// is serialized.
package chatroom

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logical file names in a user's file set.
const (
	FileChatLog       = "chat_log"
	FileSummary       = "summary"
	FileUserHistory   = "user_history"
	FileThreadHistory = "thread_history"
	FileStrategy      = "strategy"
)

// DefaultMaxRallies bounds the rolling condensed-history window.
const DefaultMaxRallies = 6

// Message is one chat log entry. Appended once, never mutated.
type Message struct {
	ID        string `json:"id,omitempty"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	UserID    string `json:"user_id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ThreadEntry is the condensed projection of a message: a one-word
// intent type and a one-sentence content summary.
type ThreadEntry struct {
	Role    string `json:"role"`
	Type    string `json:"type,omitempty"`
	Content string `json:"content"`
}

// FileSet maps logical file names to paths on disk.
type FileSet map[string]string

// registryEntry is one record in the shared chatroom registry file.
type registryEntry struct {
	CreatedAt string  `json:"created_at"`
	Files     FileSet `json:"files"`
}

// Manager provisions and serializes access to each user's files.
type Manager struct {
	dataDir    string
	maxRallies int

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	cache *fileCache
}

// NewManager creates a chatroom manager rooted at dataDir.
// maxRallies <= 0 selects the default window size.
func NewManager(dataDir string, maxRallies int) (*Manager, error) {
	if maxRallies <= 0 {
		maxRallies = DefaultMaxRallies
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Manager{
		dataDir:    dataDir,
		maxRallies: maxRallies,
		locks:      make(map[string]*sync.Mutex),
		cache:      newFileCache(),
	}, nil
}

// MaxRallies returns the configured window bound.
func (m *Manager) MaxRallies() int {
	return m.maxRallies
}

// userLock returns the dedicated lock for a user, creating it on first use.
func (m *Manager) userLock(userID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[userID] = lock
	}
	return lock
}

func (m *Manager) registryPath() string {
	return filepath.Join(m.dataDir, "chatroom.json")
}

func (m *Manager) fileSet(userID string) FileSet {
	return FileSet{
		FileChatLog:       filepath.Join(m.dataDir, "chat_log_"+userID+".json"),
		FileSummary:       filepath.Join(m.dataDir, "summary_"+userID+".json"),
		FileUserHistory:   filepath.Join(m.dataDir, "user_history_"+userID+".json"),
		FileThreadHistory: filepath.Join(m.dataDir, "thread_history_"+userID+".json"),
		FileStrategy:      filepath.Join(m.dataDir, "strategy_"+userID+".json"),
	}
}

// GetOrCreate ensures the registry entry and all backing files exist with
// type-correct defaults, and returns the file set. Safe to call on every
// request.
func (m *Manager) GetOrCreate(userID string) (FileSet, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	return m.getOrCreateLocked(userID)
}

func (m *Manager) getOrCreateLocked(userID string) (FileSet, error) {
	files := m.fileSet(userID)

	registry := map[string]registryEntry{}
	if err := m.cache.load(m.registryPath(), &registry); err != nil {
		registry = map[string]registryEntry{}
	}
	if _, ok := registry[userID]; !ok {
		registry[userID] = registryEntry{
			CreatedAt: time.Now().Format(time.RFC3339),
			Files:     files,
		}
		if err := m.cache.save(m.registryPath(), registry); err != nil {
			return nil, fmt.Errorf("update chatroom registry: %w", err)
		}
	}

	defaults := map[string]any{
		FileChatLog:       []Message{},
		FileSummary:       []ThreadEntry{},
		FileUserHistory:   map[string][]ThreadEntry{"messages": {}},
		FileThreadHistory: []ThreadEntry{},
		FileStrategy:      map[string]json.RawMessage{},
	}
	for name, path := range files {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := m.cache.save(path, defaults[name]); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", name, err)
		}
	}

	return files, nil
}

// Messages returns the user's full chat log in insertion order.
func (m *Manager) Messages(userID string) ([]Message, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return nil, err
	}
	var log []Message
	if err := m.cache.load(files[FileChatLog], &log); err != nil {
		return []Message{}, nil
	}
	return log, nil
}

// AddMessage appends one entry to the chat log.
func (m *Manager) AddMessage(userID string, msg Message) error {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return err
	}
	var log []Message
	if err := m.cache.load(files[FileChatLog], &log); err != nil {
		log = []Message{}
	}
	log = append(log, msg)
	return m.cache.save(files[FileChatLog], log)
}

// MessageCount returns the current chat log length.
func (m *Manager) MessageCount(userID string) (int, error) {
	msgs, err := m.Messages(userID)
	if err != nil {
		return 0, err
	}
	return len(msgs), nil
}

// ThreadHistory returns the user's condensed thread entries.
func (m *Manager) ThreadHistory(userID string) ([]ThreadEntry, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()
	return m.threadHistoryLocked(userID)
}

func (m *Manager) threadHistoryLocked(userID string) ([]ThreadEntry, error) {
	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return nil, err
	}
	var threads []ThreadEntry
	if err := m.cache.load(files[FileThreadHistory], &threads); err != nil {
		return []ThreadEntry{}, nil
	}
	return threads, nil
}

// AddThread appends one condensed entry to the thread history.
func (m *Manager) AddThread(userID string, entry ThreadEntry) error {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return err
	}
	threads, err := m.threadHistoryLocked(userID)
	if err != nil {
		threads = []ThreadEntry{}
	}
	threads = append(threads, entry)
	return m.cache.save(files[FileThreadHistory], threads)
}

// UpdateUserMessages appends a condensed user/assistant pair to the
// rolling window and truncates it to the last maxRallies entries
// (drop-oldest).
func (m *Manager) UpdateUserMessages(userID string, pair []ThreadEntry) error {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return err
	}
	history := map[string][]ThreadEntry{}
	if err := m.cache.load(files[FileUserHistory], &history); err != nil {
		history = map[string][]ThreadEntry{}
	}
	messages := append(history["messages"], pair...)
	if len(messages) > m.maxRallies {
		messages = messages[len(messages)-m.maxRallies:]
	}
	history["messages"] = messages
	return m.cache.save(files[FileUserHistory], history)
}

// UserHistory returns the rolling condensed window.
func (m *Manager) UserHistory(userID string) ([]ThreadEntry, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return nil, err
	}
	history := map[string][]ThreadEntry{}
	if err := m.cache.load(files[FileUserHistory], &history); err != nil {
		return []ThreadEntry{}, nil
	}
	return history["messages"], nil
}

// LastConversationPair scans the thread history backward for the most
// recent adjacent (user, assistant) pair. The second return value is
// false when the history is too short or no adjacent pair exists.
func (m *Manager) LastConversationPair(userID string) ([]ThreadEntry, bool, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	threads, err := m.threadHistoryLocked(userID)
	if err != nil {
		return nil, false, err
	}
	if len(threads) < 2 {
		return nil, false, nil
	}
	for i := len(threads) - 1; i >= 1; i-- {
		if threads[i-1].Role == "user" && threads[i].Role == "assistant" {
			return []ThreadEntry{threads[i-1], threads[i]}, true, nil
		}
	}
	return nil, false, nil
}

// Summary returns the latest summary text, or "" when none exists.
func (m *Manager) Summary(userID string) (string, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return "", err
	}
	var entries []ThreadEntry
	if err := m.cache.load(files[FileSummary], &entries); err != nil {
		return "", nil
	}
	if len(entries) == 0 {
		return "", nil
	}
	return entries[len(entries)-1].Content, nil
}

// SetSummary overwrites the summary file with a single entry.
func (m *Manager) SetSummary(userID, text string) error {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return err
	}
	entries := []ThreadEntry{{Role: "developer", Content: text}}
	return m.cache.save(files[FileSummary], entries)
}

// SaveStrategy records a generated strategy keyed by its generation time.
func (m *Manager) SaveStrategy(userID, generatedAt string, strategy json.RawMessage) error {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return err
	}
	cache := map[string]json.RawMessage{}
	if err := m.cache.load(files[FileStrategy], &cache); err != nil {
		cache = map[string]json.RawMessage{}
	}
	cache[generatedAt] = strategy
	return m.cache.save(files[FileStrategy], cache)
}

// LatestStrategy returns the newest cached strategy by timestamp key.
// The second return value is false when the cache is empty.
func (m *Manager) LatestStrategy(userID string) (string, json.RawMessage, bool, error) {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return "", nil, false, err
	}
	cache := map[string]json.RawMessage{}
	if err := m.cache.load(files[FileStrategy], &cache); err != nil {
		return "", nil, false, nil
	}
	var newest string
	for key := range cache {
		if key > newest {
			newest = key
		}
	}
	if newest == "" {
		return "", nil, false, nil
	}
	return newest, cache[newest], true, nil
}

// Clear resets all per-user files to empty defaults. Irreversible.
func (m *Manager) Clear(userID string) error {
	lock := m.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	files, err := m.getOrCreateLocked(userID)
	if err != nil {
		return err
	}
	resets := map[string]any{
		FileChatLog:       []Message{},
		FileSummary:       []ThreadEntry{},
		FileUserHistory:   map[string][]ThreadEntry{"messages": {}},
		FileThreadHistory: []ThreadEntry{},
		FileStrategy:      map[string]json.RawMessage{},
	}
	for name, path := range files {
		if err := m.cache.save(path, resets[name]); err != nil {
			return fmt.Errorf("reset %s: %w", name, err)
		}
	}
	return nil
}

// SweepCache drops read-cache entries past their TTL. Called from the
// periodic maintenance job.
func (m *Manager) SweepCache() int {
	return m.cache.sweep()
}
