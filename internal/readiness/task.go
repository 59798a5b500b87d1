package readiness

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Task identifies an activity that takes part in the startup rendezvous.
type Task int

const (
	Frontend Task = iota + 1
	Backend
)

// maxSuggestDistance bounds how far a typo may be from a known task name
// before ParseTask stops offering a suggestion.
const maxSuggestDistance = 3

var taskNames = map[Task]string{
	Frontend: "frontend",
	Backend:  "backend",
}

func (t Task) String() string {
	if name, ok := taskNames[t]; ok {
		return name
	}
	return fmt.Sprintf("task(%d)", int(t))
}

// Valid reports whether t is one of the known tasks.
func (t Task) Valid() bool {
	_, ok := taskNames[t]
	return ok
}

// ParseTask maps a task name to its identity. Unknown names fail with ErrInvalidTask.
func ParseTask(name string) (Task, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for t, n := range taskNames {
		if n == key {
			return t, nil
		}
	}
	if hint := suggestTask(key); hint != "" {
		return 0, fmt.Errorf("%w %q (did you mean %q?)", ErrInvalidTask, name, hint)
	}
	return 0, fmt.Errorf("%w %q", ErrInvalidTask, name)
}

func suggestTask(key string) string {
	if key == "" {
		return ""
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, t := range []Task{Frontend, Backend} {
		d := levenshtein.ComputeDistance(key, t.String())
		if d < bestDist {
			best, bestDist = t.String(), d
		}
	}
	return best
}
