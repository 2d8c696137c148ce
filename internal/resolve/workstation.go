package resolve

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Aadniz/folder-diffs/internal/similar"
	"github.com/Aadniz/folder-diffs/internal/units"
)

// Action is one of the closed set of choices offered for a candidate pair.
type Action int

const (
	ActionMergeUp Action = iota
	ActionMergeDown
	ActionDeleteUp
	ActionDeleteDown
	ActionSkip
	ActionQuit
)

var actions = map[string]Action{
	"mu": ActionMergeUp,
	"md": ActionMergeDown,
	"du": ActionDeleteUp,
	"dd": ActionDeleteDown,
	"s":  ActionSkip,
	"q":  ActionQuit,
}

const prompt = "Action [mu=merge up, md=merge down, du=delete up, dd=delete down, s=skip, q=quit]: "

// Workstation consumes ranked candidate pairs one at a time, letting the
// operator merge or flag them. It never deletes anything: deletion intents
// are appended to an external log for the operator to act on with another
// tool.
type Workstation struct {
	in           *bufio.Scanner
	out          io.Writer
	logPath      string
	resolved     []string
	warningShown bool
}

func NewWorkstation(in io.Reader, out io.Writer, logPath string) *Workstation {
	return &Workstation{
		in:      bufio.NewScanner(in),
		out:     out,
		logPath: logPath,
	}
}

// DefaultLogPath returns the session-dated deletion-intent log path in the
// system temp directory. Sequential runs on the same day append to the same
// file.
func DefaultLogPath(now time.Time) string {
	return filepath.Join(os.TempDir(),
		fmt.Sprintf("folder_diffs_deletions_%s.log", now.Format("20060102")))
}

// Run presents each candidate in ranked order until the list is exhausted or
// the operator quits. Candidates referencing an already-resolved path (or a
// descendant of one) are dropped silently.
func (ws *Workstation) Run(pairs []similar.CandidatePair) error {
	for _, pair := range pairs {
		if ws.isResolved(pair.A.Path) || ws.isResolved(pair.B.Path) {
			continue
		}
		quit, err := ws.resolveOne(pair)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
	fmt.Fprintln(ws.out, "No more candidates.")
	return nil
}

// resolveOne runs one candidate through Presented -> {Merged, Deleted,
// Skipped, Quit}. Invalid input re-prompts without consuming the candidate.
func (ws *Workstation) resolveOne(pair similar.CandidatePair) (quit bool, err error) {
	// Larger folder is presented first. Cosmetic only: merge direction is
	// the operator's choice either way.
	primary, secondary := pair.A, pair.B
	if secondary.Size > primary.Size {
		primary, secondary = secondary, primary
	}

	fmt.Fprintf(ws.out, "\nSimilarity: %.2f%%, Total Size: %s\n",
		pair.Similarity*100, units.Format(pair.CombinedSize()))
	fmt.Fprintf(ws.out, "  [1] %s (%s)\n", primary.Path, units.Format(primary.Size))
	fmt.Fprintf(ws.out, "  [2] %s (%s)\n", secondary.Path, units.Format(secondary.Size))

	for {
		fmt.Fprint(ws.out, prompt)
		if !ws.in.Scan() {
			// Input closed counts as quit; already-logged intents stand.
			return true, ws.in.Err()
		}

		action, ok := actions[strings.ToLower(strings.TrimSpace(ws.in.Text()))]
		if !ok {
			fmt.Fprintf(ws.out, "Unknown command %q\n", strings.TrimSpace(ws.in.Text()))
			continue
		}

		switch action {
		case ActionMergeUp:
			if err := CopyTree(secondary.Path, primary.Path); err != nil {
				fmt.Fprintf(ws.out, "Merge failed, skipping candidate: %v\n", err)
				return false, nil
			}
			return false, ws.markResolved(secondary.Path)

		case ActionMergeDown:
			if err := CopyTree(primary.Path, secondary.Path); err != nil {
				fmt.Fprintf(ws.out, "Merge failed, skipping candidate: %v\n", err)
				return false, nil
			}
			return false, ws.markResolved(primary.Path)

		case ActionDeleteUp:
			return false, ws.markResolved(primary.Path)

		case ActionDeleteDown:
			return false, ws.markResolved(secondary.Path)

		case ActionSkip:
			return false, nil

		case ActionQuit:
			return true, nil
		}
	}
}

// markResolved appends a deletion intent for path and suppresses every later
// candidate under it.
func (ws *Workstation) markResolved(path string) error {
	if err := ws.appendIntent(path); err != nil {
		return err
	}
	ws.resolved = append(ws.resolved, path)
	return nil
}

func (ws *Workstation) isResolved(path string) bool {
	sep := string(filepath.Separator)
	for _, prefix := range ws.resolved {
		if path == prefix || strings.HasPrefix(path, prefix+sep) {
			return true
		}
	}
	return false
}

// appendIntent records one absolute path in the deletion-intent log. Nothing
// is ever removed from disk here; the log is the only durable artifact of a
// session.
func (ws *Workstation) appendIntent(path string) error {
	if !ws.warningShown {
		fmt.Fprintf(ws.out, "\nNothing has been deleted. Paths to remove are recorded in:\n")
		fmt.Fprintf(ws.out, "  %s\n", ws.logPath)
		fmt.Fprintf(ws.out, "Review the log and perform deletions with an external tool.\n\n")
		ws.warningShown = true
	}

	f, err := os.OpenFile(ws.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open deletion log: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, path); err != nil {
		return fmt.Errorf("failed to append to deletion log: %w", err)
	}
	return nil
}
