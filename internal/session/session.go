// Package session persists conversations as JSON files so they can be
// resumed in a later run.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olm-ai/olm/internal/utils"
	"github.com/olm-ai/olm/pkg/models"
)

// Manager reads and writes session files within one directory.
type Manager struct {
	dir string
}

// sessionFile is the on-disk format. Earlier versions stored a bare message
// array, Load still accepts those.
type sessionFile struct {
	ID           string           `json:"id"`
	Timestamp    time.Time        `json:"timestamp"`
	Conversation []models.Message `json:"conversation"`
	Metadata     metadata         `json:"metadata"`
}

type metadata struct {
	Model         string `json:"model"`
	TotalMessages int    `json:"total_messages"`
}

// Info describes one stored session, as shown by the sessions listing.
type Info struct {
	Name      string
	Timestamp time.Time
	Messages  int
	Model     string
}

func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Filename returns a timestamped name for a new session file.
func Filename() string {
	return "session-" + time.Now().Format("20060102-150405") + ".json"
}

// Save writes the conversation to name within the sessions directory. When
// the file already holds a session its ID is kept, so repeated saves of the
// same session stay the same session.
func (m *Manager) Save(name, model string, conversation []models.Message) (string, error) {
	path := filepath.Join(m.dir, name)
	id := uuid.NewString()
	var existing sessionFile
	if err := utils.ReadAndUnmarshal(path, &existing); err == nil && existing.ID != "" {
		id = existing.ID
	}
	sf := sessionFile{
		ID:           id,
		Timestamp:    time.Now(),
		Conversation: conversation,
		Metadata: metadata{
			Model:         model,
			TotalMessages: len(conversation),
		},
	}
	if err := utils.CreateFile(path, &sf); err != nil {
		return "", fmt.Errorf("failed to save session '%v': %w", name, err)
	}
	return path, nil
}

// Load reads the session stored as name and returns its conversation. Both
// the wrapped format and the legacy bare message array are accepted.
func (m *Manager) Load(name string) ([]models.Message, error) {
	path := filepath.Join(m.dir, name)
	var sf sessionFile
	if err := utils.ReadAndUnmarshal(path, &sf); err == nil && sf.Conversation != nil {
		return sf.Conversation, nil
	}
	var legacy []models.Message
	if err := utils.ReadAndUnmarshal(path, &legacy); err != nil {
		return nil, fmt.Errorf("failed to load session '%v': %w", name, err)
	}
	return legacy, nil
}

// List returns the stored sessions, most recent first.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}
	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		var sf sessionFile
		if err := utils.ReadAndUnmarshal(filepath.Join(m.dir, entry.Name()), &sf); err != nil {
			continue
		}
		messages := sf.Metadata.TotalMessages
		if messages == 0 {
			messages = len(sf.Conversation)
		}
		infos = append(infos, Info{
			Name:      entry.Name(),
			Timestamp: sf.Timestamp,
			Messages:  messages,
			Model:     sf.Metadata.Model,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})
	return infos, nil
}
