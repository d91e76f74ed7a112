package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const backupTimeLayout = "2006-01-02-15-04-05"

// JSONBackup writes the raw session as an indented JSON file named
// <timestamp>-<participant id>.json.
type JSONBackup struct {
	Dir string
}

func NewJSONBackup(dir string) *JSONBackup {
	return &JSONBackup{Dir: dir}
}

type backupFile struct {
	ParticipantID uint `json:"ppt_id"`
	Session
}

func (b *JSONBackup) Export(_ context.Context, session Session) error {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create results dir: %w", err)
	}

	data, err := json.MarshalIndent(backupFile{ParticipantID: session.ParticipantID(), Session: session}, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.WriteFile(b.Path(session), data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}

func (b *JSONBackup) Path(session Session) string {
	name := fmt.Sprintf("%s-%d.json", session.FinishedAt.Format(backupTimeLayout), session.ParticipantID())
	return filepath.Join(b.Dir, name)
}
