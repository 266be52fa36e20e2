package models

// Puzzle is a static puzzle definition from a content pack. Immutable once
// loaded.
type Puzzle struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Tier        Tier     `json:"tier"`
	Question    string   `json:"question"`
	Answer      Answer   `json:"answer"`
	Options     []string `json:"options,omitempty"`
	Hints       []string `json:"hints,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

// Choice is one branch a player can take from a scene.
type Choice struct {
	Label string `json:"label"`
	Next  string `json:"next"`
}

// Scene is one node of the story graph. A scene either offers choices or
// embeds a puzzle whose outcome routes to OnSolved/OnExhausted.
type Scene struct {
	ID          string   `json:"id"`
	Text        string   `json:"text"`
	Choices     []Choice `json:"choices,omitempty"`
	PuzzleID    string   `json:"puzzle_id,omitempty"`
	OnSolved    string   `json:"on_solved,omitempty"`
	OnExhausted string   `json:"on_exhausted,omitempty"`
}

// ContentPack is the full story/puzzle payload loaded at startup.
type ContentPack struct {
	Title      string   `json:"title"`
	StartScene string   `json:"start_scene"`
	Scenes     []Scene  `json:"scenes"`
	Puzzles    []Puzzle `json:"puzzles"`
}
