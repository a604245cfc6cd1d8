package videoid

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/alanbriolat/yt-thumbnail/generic"
)

var (
	ErrDuplicateStage = errors.New("duplicate stage name")
	ErrInvalidStage   = errors.New("invalid stage")
	ErrUnknownStage   = errors.New("unknown stage")
)

var (
	PriorityHighest int16 = math.MinInt16
	PriorityDefault int16 = 0
	PriorityLowest  int16 = math.MaxInt16
)

// A MatchFunc captures a raw, uncleaned video ID candidate from its input, or returns an error describing why it
// could not. Returning an empty candidate with a nil error also counts as no match.
type MatchFunc = func(string) (string, error)

// A Stage is one named step of a Chain.
type Stage struct {
	Name  string
	Match MatchFunc
	// Priority of the stage, lower (including negative) means matching earlier.
	Priority int16
}

func (s Stage) WithName(name string) Stage {
	s.Name = name
	return s
}

func (s Stage) WithPriority(priority int16) Stage {
	s.Priority = priority
	return s
}

// A Match is the raw candidate captured by the first successful Stage.
type Match struct {
	StageName string
	Raw       string
}

// A Chain is an ordered collection of Stage instances. The zero value is an empty Chain ready to use.
type Chain struct {
	stages   []*Stage
	stageMap map[string]*Stage
}

// Add registers a Stage with the Chain. Stage.Name and Stage.Match must be set, and Stage.Name must be unique within
// the Chain. Stages of equal priority keep the order they were added in.
func (c *Chain) Add(s Stage) error {
	if c.stageMap == nil {
		c.stageMap = make(map[string]*Stage)
	}
	if s.Name == "" || s.Match == nil {
		return ErrInvalidStage
	}
	if _, ok := c.stageMap[s.Name]; ok {
		return ErrDuplicateStage
	}
	c.stageMap[s.Name] = &s
	c.stages = append(c.stages, c.stageMap[s.Name])
	c.sortByPriority()
	return nil
}

// CreatePriority is a shortcut for Add(Stage{Name: ..., Match: ..., Priority: ...}).
func (c *Chain) CreatePriority(name string, f MatchFunc, priority int16) error {
	return c.Add(Stage{
		Name:     name,
		Match:    f,
		Priority: priority,
	})
}

// List returns the names of registered stages in priority order.
func (c *Chain) List() []string {
	names := make([]string, 0, len(c.stages))
	for _, s := range c.stages {
		names = append(names, s.Name)
	}
	return names
}

// Match runs s through each Stage in priority order, returning the first captured candidate. If no stage matches,
// the error wraps ErrNotFound and lists each stage's reason.
func (c *Chain) Match(s string) (*Match, error) {
	var result *multierror.Error
	for _, stage := range c.stages {
		raw, err := stage.Match(s)
		if err == nil && raw != "" {
			return &Match{StageName: stage.Name, Raw: raw}, nil
		}
		if err == nil {
			err = errEmptyCandidate
		}
		result = multierror.Append(result, multierror.Prefix(err, fmt.Sprintf("[%v]", stage.Name)))
	}
	if result == nil {
		return nil, ErrNotFound
	}
	return nil, fmt.Errorf("%w: %v", ErrNotFound, result)
}

// MatchWith runs s through a single named Stage.
func (c *Chain) MatchWith(name string, s string) (*Match, error) {
	stage, ok := c.stageMap[name]
	if !ok {
		return nil, ErrUnknownStage
	}
	raw, err := stage.Match(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	} else if raw == "" {
		return nil, ErrNotFound
	}
	return &Match{StageName: stage.Name, Raw: raw}, nil
}

// Extract matches s and cleans the winning candidate. A candidate that cleans down to nothing is ErrNotFound; later
// stages are not consulted.
func (c *Chain) Extract(s string) (VideoID, error) {
	m, err := c.Match(s)
	if err != nil {
		return "", err
	}
	id := Clean(m.Raw)
	if id == "" {
		return "", fmt.Errorf("%w: [%v] candidate %q is empty after cleaning", ErrNotFound, m.StageName, m.Raw)
	}
	return id, nil
}

// MustAdd wraps Add but panics if there is an error.
func (c *Chain) MustAdd(s Stage) {
	generic.Unwrap_(c.Add(s))
}

// MustCreatePriority wraps CreatePriority but panics if there is an error.
func (c *Chain) MustCreatePriority(name string, f MatchFunc, priority int16) {
	generic.Unwrap_(c.CreatePriority(name, f, priority))
}

// SetPriority adjusts the priority of a named Stage.
func (c *Chain) SetPriority(name string, priority int16) error {
	if s, ok := c.stageMap[name]; ok {
		s.Priority = priority
		c.sortByPriority()
		return nil
	} else {
		return ErrUnknownStage
	}
}

func (c *Chain) sortByPriority() {
	sort.SliceStable(c.stages, func(i, j int) bool {
		return c.stages[i].Priority < c.stages[j].Priority
	})
}

// DefaultChain holds the standard YouTube URL stages, see stages.go.
var DefaultChain Chain
