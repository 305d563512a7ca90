// internal/feed/replay.go
package feed

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mwiater/trialscope/internal/logging"
	"github.com/mwiater/trialscope/internal/store"
	"github.com/mwiater/trialscope/internal/trial"
)

// Replay dispatches trial records from a JSONL log, one record per line,
// validating each against the trial schema before it enters the store.
type Replay struct {
	path       string
	dispatcher Dispatcher
	interval   time.Duration
}

// NewReplay builds a replay source. A zero interval replays at full speed.
func NewReplay(path string, d Dispatcher, interval time.Duration) *Replay {
	return &Replay{path: path, dispatcher: d, interval: interval}
}

// Run replays the log until EOF, a malformed line, or cancellation. A line
// that fails schema validation aborts the replay with an error naming it;
// unknown extra fields on valid records are ignored.
func (r *Replay) Run(ctx context.Context) error {
	file, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("could not open trial log %q: %w", r.path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := trial.ParseRecord([]byte(line))
		if err != nil {
			return fmt.Errorf("%s:%d: %w", r.path, lineNo, err)
		}

		if r.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.interval):
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		logging.LogAction("out", "replay-feed", store.ActionUpdate, rec)
		r.dispatcher.Dispatch(store.Action{Kind: store.ActionUpdate, Data: rec})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("could not read trial log %q: %w", r.path, err)
	}
	return nil
}
