package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

var stdoutCaptureMu sync.Mutex

// captureStdout runs fn with os.Stdout swapped for a pipe and returns
// everything fn printed. Commands write through package-level state, so
// captures are serialized.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	stdoutCaptureMu.Lock()
	defer stdoutCaptureMu.Unlock()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	var buf bytes.Buffer
	var copyErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, copyErr = io.Copy(&buf, r)
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	<-done
	_ = r.Close()
	if copyErr != nil {
		t.Fatalf("drain stdout: %v", copyErr)
	}
	return buf.String()
}

// useTestStore points the CLI at a fresh store in JSON output mode and
// restores the globals afterwards.
func useTestStore(t *testing.T) {
	t.Helper()
	prevPath := resolvedDBPath
	prevJSON := jsonOutput
	t.Cleanup(func() {
		resolvedDBPath = prevPath
		jsonOutput = prevJSON
	})
	resolvedDBPath = filepath.Join(t.TempDir(), "store.db")
	jsonOutput = true
}

// decodeEnvelope parses a captured JSON envelope into v.
func decodeEnvelope(t *testing.T, out string, v interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("response is not valid JSON: %v\noutput: %s", err, out)
	}
}
