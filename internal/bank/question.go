package bank

// Option is a single answer choice within a question.
type Option struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Feedback string `json:"feedback,omitempty"` // why this choice is right or wrong
}

// HintLevels is the ordered hint ladder for guided mode. Hints reveal
// strictly in declaration order, one level per reveal.
type HintLevels struct {
	Goal        string `json:"goal"`
	Principle   string `json:"principle"`
	Application string `json:"application"`
	BottomOut   string `json:"bottomOut"`
}

// hintOrder fixes the reveal order of the ladder.
var hintOrder = []string{"Goal", "Principle", "Application", "Bottom-out"}

// Len returns the number of hint levels in the ladder.
func (h HintLevels) Len() int { return len(hintOrder) }

// Level returns the label and text of the i-th hint level.
// Levels beyond the ladder return empty strings.
func (h HintLevels) Level(i int) (label, text string) {
	switch i {
	case 0:
		return hintOrder[0], h.Goal
	case 1:
		return hintOrder[1], h.Principle
	case 2:
		return hintOrder[2], h.Application
	case 3:
		return hintOrder[3], h.BottomOut
	}
	return "", ""
}

// RationaleQuestion is a follow-up sub-question attached to a primary
// question, shown in practice mode after the primary answer.
type RationaleQuestion struct {
	Text            string   `json:"text"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId"`
	Explanation     string   `json:"explanation"`
}

// Question is an immutable bank entry. Loaded once at startup, never mutated.
type Question struct {
	ID                  string             `json:"id"`
	Module              int                `json:"module"`
	Topic               string             `json:"topic"`
	Text                string             `json:"text"`
	ImageURL            string             `json:"imageUrl,omitempty"`
	Options             []Option           `json:"options"`
	CorrectOptionID     string             `json:"correctOptionId"`
	Explanation         string             `json:"explanation"`
	CommonMisconception string             `json:"commonMisconception,omitempty"`
	Hints               *HintLevels        `json:"hints,omitempty"`
	GlossaryTermIDs     []string           `json:"glossaryTermIds,omitempty"`
	Rationale           *RationaleQuestion `json:"rationaleQuestion,omitempty"`
	RelatedQuestionIDs  []string           `json:"relatedQuestionIds,omitempty"`
}

// Option returns the option with the given id, or nil.
func (q *Question) Option(id string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// GlossaryTerm is a read-only glossary entry looked up by id.
type GlossaryTerm struct {
	ID         string `json:"id"`
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}
