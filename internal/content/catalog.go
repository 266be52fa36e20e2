package content

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lucasb/storyquest/internal/errors"
	"github.com/lucasb/storyquest/internal/logger"
	"github.com/lucasb/storyquest/internal/models"
)

// Catalog is the loaded, validated content pack: the story scene graph and
// the puzzle definitions it references. Immutable after Load.
type Catalog struct {
	Title      string
	StartScene string

	scenes  map[string]models.Scene
	puzzles map[string]models.Puzzle

	// invalid holds puzzles that failed validation, keyed by id. A bad
	// definition is fatal to that puzzle only, not to the whole pack.
	invalid map[string]error
}

// LoadFile reads and validates a content pack from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content pack: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses and validates a content pack. Structural problems (bad JSON,
// missing start scene, dangling scene links, duplicate ids) fail the load;
// individually malformed puzzles are dropped and reported when requested.
func Load(r io.Reader) (*Catalog, error) {
	log := logger.Default().WithPrefix("content")

	var pack models.ContentPack
	if err := json.NewDecoder(r).Decode(&pack); err != nil {
		return nil, fmt.Errorf("decode content pack: %w", err)
	}

	c := &Catalog{
		Title:      pack.Title,
		StartScene: pack.StartScene,
		scenes:     make(map[string]models.Scene, len(pack.Scenes)),
		puzzles:    make(map[string]models.Puzzle, len(pack.Puzzles)),
		invalid:    map[string]error{},
	}

	for _, p := range pack.Puzzles {
		if p.ID == "" {
			return nil, fmt.Errorf("content pack contains a puzzle without an id")
		}
		if _, dup := c.puzzles[p.ID]; dup {
			return nil, fmt.Errorf("duplicate puzzle id %q", p.ID)
		}
		if _, dup := c.invalid[p.ID]; dup {
			return nil, fmt.Errorf("duplicate puzzle id %q", p.ID)
		}
		if err := ValidatePuzzle(p); err != nil {
			log.Warn("dropping invalid puzzle %q: %v", p.ID, err)
			c.invalid[p.ID] = err
			continue
		}
		c.puzzles[p.ID] = p
	}

	for _, s := range pack.Scenes {
		if s.ID == "" {
			return nil, fmt.Errorf("content pack contains a scene without an id")
		}
		if _, dup := c.scenes[s.ID]; dup {
			return nil, fmt.Errorf("duplicate scene id %q", s.ID)
		}
		c.scenes[s.ID] = s
	}

	if len(c.scenes) == 0 {
		return nil, fmt.Errorf("content pack has no scenes")
	}
	if c.StartScene == "" {
		return nil, fmt.Errorf("content pack has no start_scene")
	}
	if _, ok := c.scenes[c.StartScene]; !ok {
		return nil, fmt.Errorf("start_scene %q does not exist", c.StartScene)
	}

	for id, s := range c.scenes {
		for _, choice := range s.Choices {
			if _, ok := c.scenes[choice.Next]; !ok {
				return nil, fmt.Errorf("scene %q links to unknown scene %q", id, choice.Next)
			}
		}
		if s.PuzzleID != "" {
			if _, known := c.puzzles[s.PuzzleID]; !known {
				if _, dropped := c.invalid[s.PuzzleID]; !dropped {
					return nil, fmt.Errorf("scene %q references unknown puzzle %q", id, s.PuzzleID)
				}
				// Dropped puzzle: the scene stays loadable, starting the
				// puzzle surfaces the validation error instead.
				log.Warn("scene %q references invalid puzzle %q", id, s.PuzzleID)
			}
			if s.OnSolved == "" || s.OnExhausted == "" {
				return nil, fmt.Errorf("scene %q embeds a puzzle but lacks on_solved/on_exhausted routes", id)
			}
			if _, ok := c.scenes[s.OnSolved]; !ok {
				return nil, fmt.Errorf("scene %q routes on_solved to unknown scene %q", id, s.OnSolved)
			}
			if _, ok := c.scenes[s.OnExhausted]; !ok {
				return nil, fmt.Errorf("scene %q routes on_exhausted to unknown scene %q", id, s.OnExhausted)
			}
		}
	}

	log.Info("content pack loaded: %d scenes, %d puzzles (%d invalid)",
		len(c.scenes), len(c.puzzles), len(c.invalid))
	return c, nil
}

// ValidatePuzzle checks one puzzle definition for the fields the game cannot
// run without.
func ValidatePuzzle(p models.Puzzle) error {
	if p.Question == "" {
		return errors.NewInvalidPuzzleError(p.ID, "question is empty")
	}
	if p.Answer.IsZero() {
		return errors.NewInvalidPuzzleError(p.ID, "correct answer is missing")
	}
	if _, ok := models.ParseCategory(string(p.Category)); !ok {
		return errors.NewInvalidPuzzleError(p.ID, fmt.Sprintf("unknown category %q", p.Category))
	}
	if _, ok := models.ParseTier(string(p.Tier)); !ok {
		return errors.NewInvalidPuzzleError(p.ID, fmt.Sprintf("unknown tier %q", p.Tier))
	}
	return nil
}

// Scene returns a scene by id.
func (c *Catalog) Scene(id string) (models.Scene, bool) {
	s, ok := c.scenes[id]
	return s, ok
}

// Puzzle returns a valid puzzle by id. If the id belongs to a definition
// dropped at load time the validation error is returned instead.
func (c *Catalog) Puzzle(id string) (models.Puzzle, error) {
	if p, ok := c.puzzles[id]; ok {
		return p, nil
	}
	if err, dropped := c.invalid[id]; dropped {
		return models.Puzzle{}, err
	}
	return models.Puzzle{}, errors.NewNotFoundError("puzzle", id)
}

// PuzzleCount returns the number of valid puzzles.
func (c *Catalog) PuzzleCount() int { return len(c.puzzles) }

// PuzzlesFor lists the puzzles of a category at the given tier. When the
// tier has no puzzles, nearby tiers are tried (one step down first, then up)
// so the adaptive recommendation always finds something to serve.
func (c *Catalog) PuzzlesFor(cat models.Category, tier models.Tier) []models.Puzzle {
	if exact := c.collect(cat, tier); len(exact) > 0 {
		return exact
	}
	for probe := tier.Lower(); ; probe = probe.Lower() {
		if found := c.collect(cat, probe); len(found) > 0 {
			return found
		}
		if probe == models.TierEasy {
			break
		}
	}
	for probe := tier.Raise(); ; probe = probe.Raise() {
		if found := c.collect(cat, probe); len(found) > 0 {
			return found
		}
		if probe == models.TierExpert {
			break
		}
	}
	return nil
}

func (c *Catalog) collect(cat models.Category, tier models.Tier) []models.Puzzle {
	var out []models.Puzzle
	for _, p := range c.puzzles {
		if p.Category == cat && p.Tier == tier {
			out = append(out, p)
		}
	}
	return out
}
