package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// updateSnapshotsEnv rewrites golden files instead of comparing when set
// to "1".
const updateSnapshotsEnv = "STRATA_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the laid-out widgets and the scene of the last frame.
type Snapshot struct {
	Layout     []LayoutNode `json:"layout"`
	DisplayOps []DisplayOp  `json:"displayOps,omitempty"`
}

// LayoutNode is one positioned widget in a snapshot.
type LayoutNode struct {
	Ref     string     `json:"ref"`
	Rect    [4]float64 `json:"rect"`
	Active  bool       `json:"active,omitempty"`
	Hovered bool       `json:"hovered,omitempty"`
}

// CaptureSnapshot captures the current layout and scene. It returns an
// empty snapshot before PumpComponent.
func (t *Tester) CaptureSnapshot() *Snapshot {
	snap := &Snapshot{}
	if t.rt == nil {
		return snap
	}
	for _, l := range t.rt.Layout() {
		snap.Layout = append(snap.Layout, LayoutNode{
			Ref:     l.Ref.String(),
			Rect:    [4]float64{round2(l.Rect.Left), round2(l.Rect.Top), round2(l.Rect.Width()), round2(l.Rect.Height())},
			Active:  l.Active,
			Hovered: l.Hovered,
		})
	}
	snap.DisplayOps = serializeScene(t.rt.Scene())
	return snap
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// STRATA_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(updateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, updateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s (-expected +actual)\n%s\n\nTo update: %s=1 go test -run %s", path, diff, updateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between other (expected) and this snapshot.
// Returns empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return cmp.Diff(strings.Split(string(b), "\n"), strings.Split(string(a), "\n"))
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
