// Package history keeps the append-only record of every answer the
// learner has submitted, across sessions and modes. The full record is
// never rewritten; derived views (latest answer per question, the
// incorrect set, topic accuracy) are computed on read.
package history

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/mpatel/biotutor/internal/bank"
	"github.com/mpatel/biotutor/internal/storage"
)

// historyKey is the storage key holding the serialized answer record.
const historyKey = "answer-history"

// Confidence is the learner's self-rated certainty, captured alongside
// the answer in every mode but exam.
type Confidence string

const (
	ConfidenceNone   Confidence = ""
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// StoredAnswer is one submitted answer. Mode is the session mode name
// the answer was given in; SessionID groups answers from one sitting.
type StoredAnswer struct {
	QuestionID       string     `json:"questionId"`
	SelectedOptionID string     `json:"selectedOptionId"`
	Correct          bool       `json:"correct"`
	Confidence       Confidence `json:"confidence,omitempty"`
	Mode             string     `json:"mode"`
	SessionID        string     `json:"sessionId"`
	Timestamp        time.Time  `json:"timestamp"`
}

// Accuracy is a correct/total tally for one topic.
type Accuracy struct {
	Correct int
	Total   int
}

// Percent returns the accuracy as a whole percentage; 0 when empty.
func (a Accuracy) Percent() int {
	if a.Total == 0 {
		return 0
	}
	return a.Correct * 100 / a.Total
}

// TopicKey identifies a topic within a module.
type TopicKey struct {
	Module int
	Topic  string
}

// Ledger reads and appends the answer record through a storage adapter.
type Ledger struct {
	store storage.Adapter
	log   zerolog.Logger
}

// NewLedger returns a ledger over the given adapter.
func NewLedger(store storage.Adapter, log zerolog.Logger) *Ledger {
	return &Ledger{store: store, log: log}
}

// All returns every stored answer in append order. A corrupt or absent
// record reads as empty.
func (l *Ledger) All() []StoredAnswer {
	raw, ok := l.store.Get(historyKey)
	if !ok {
		return nil
	}
	var answers []StoredAnswer
	if err := json.Unmarshal(raw, &answers); err != nil {
		l.log.Warn().Err(err).Msg("answer history unreadable, treating as empty")
		return nil
	}
	return answers
}

// Append adds one answer to the record.
func (l *Ledger) Append(a StoredAnswer) {
	l.AppendBatch([]StoredAnswer{a})
}

// AppendBatch adds answers to the record in the given order. An empty
// batch is a no-op.
func (l *Ledger) AppendBatch(batch []StoredAnswer) {
	if len(batch) == 0 {
		return
	}
	answers := append(l.All(), batch...)
	raw, err := json.Marshal(answers)
	if err != nil {
		l.log.Warn().Err(err).Msg("marshal answer history failed")
		return
	}
	l.store.Set(historyKey, raw)
}

// Clear erases the entire answer record.
func (l *Ledger) Clear() {
	l.store.Delete(historyKey)
}

// LatestByQuestion returns the most recent answer for each question,
// by timestamp; append order breaks ties.
func (l *Ledger) LatestByQuestion() map[string]StoredAnswer {
	latest := make(map[string]StoredAnswer)
	for _, a := range l.All() {
		if prev, ok := latest[a.QuestionID]; ok && a.Timestamp.Before(prev.Timestamp) {
			continue
		}
		latest[a.QuestionID] = a
	}
	return latest
}

// IncorrectQuestionIDs returns the questions whose most recent answer
// was wrong. Answering a question correctly removes it from this set.
func (l *Ledger) IncorrectQuestionIDs() map[string]bool {
	ids := make(map[string]bool)
	for id, a := range l.LatestByQuestion() {
		if !a.Correct {
			ids[id] = true
		}
	}
	return ids
}

// LowConfidenceQuestionIDs returns questions whose most recent answer
// was rated low or medium confidence, regardless of correctness. An
// unrated answer does not qualify.
func (l *Ledger) LowConfidenceQuestionIDs() map[string]bool {
	ids := make(map[string]bool)
	for id, a := range l.LatestByQuestion() {
		if a.Confidence == ConfidenceLow || a.Confidence == ConfidenceMedium {
			ids[id] = true
		}
	}
	return ids
}

// TopicAccuracy tallies every attempt by topic. Answers to questions no
// longer in the bank are skipped.
func (l *Ledger) TopicAccuracy(b *bank.Bank) map[TopicKey]Accuracy {
	acc := make(map[TopicKey]Accuracy)
	for _, a := range l.All() {
		q := b.Question(a.QuestionID)
		if q == nil {
			continue
		}
		key := TopicKey{Module: q.Module, Topic: q.Topic}
		t := acc[key]
		t.Total++
		if a.Correct {
			t.Correct++
		}
		acc[key] = t
	}
	return acc
}
