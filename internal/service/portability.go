package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/PradipLalpura/RexOS/internal/model"
)

const SnapshotFormat = "rexos.snapshot.v1"

// Snapshot is the versioned envelope written by data export and backups.
type Snapshot struct {
	Format     string         `json:"format"`
	ExportedAt string         `json:"exportedAt"`
	State      model.RexState `json:"state"`
}

func ExportSnapshot(w io.Writer, s model.RexState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	snap := Snapshot{
		Format:     SnapshotFormat,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		State:      s,
	}
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// ImportSnapshot accepts an envelope or a bare aggregate document as stored
// under the rexos_data key.
func ImportSnapshot(data []byte) (model.RexState, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return model.RexState{}, fmt.Errorf("decode snapshot: empty input")
	}

	var probe struct {
		Format string          `json:"format"`
		State  json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return model.RexState{}, fmt.Errorf("decode snapshot: %w", err)
	}

	raw := data
	if probe.Format != "" {
		if probe.Format != SnapshotFormat {
			return model.RexState{}, fmt.Errorf("unsupported snapshot format %q", probe.Format)
		}
		raw = probe.State
	}

	var s model.RexState
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.RexState{}, fmt.Errorf("decode snapshot state: %w", err)
	}
	if s.CurrentStep == 0 {
		s.CurrentStep = model.FirstRegistrationStep
	}
	return s, nil
}
