package bank

// Bank holds the loaded question bank and glossary. All slices keep the
// order of the underlying data files; callers must not mutate them.
type Bank struct {
	questions []Question
	glossary  []GlossaryTerm

	byID     map[string]*Question
	termByID map[string]*GlossaryTerm
}

// Questions returns every question in bank order.
func (b *Bank) Questions() []Question { return b.questions }

// Glossary returns every glossary term in file order.
func (b *Bank) Glossary() []GlossaryTerm { return b.glossary }

// Question returns the question with the given id, or nil.
func (b *Bank) Question(id string) *Question { return b.byID[id] }

// Term returns the glossary term with the given id, or nil.
func (b *Bank) Term(id string) *GlossaryTerm { return b.termByID[id] }

// TermsByID resolves term ids to glossary entries, skipping unknown ids.
func (b *Bank) TermsByID(ids []string) []GlossaryTerm {
	var terms []GlossaryTerm
	for _, id := range ids {
		if t := b.termByID[id]; t != nil {
			terms = append(terms, *t)
		}
	}
	return terms
}

// ByModule returns the questions belonging to the module, in bank order.
func (b *Bank) ByModule(moduleID int) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Module == moduleID {
			out = append(out, q)
		}
	}
	return out
}

// ByTopic returns the questions for one topic of a module, in bank order.
func (b *Bank) ByTopic(moduleID int, topic string) []Question {
	var out []Question
	for _, q := range b.questions {
		if q.Module == moduleID && q.Topic == topic {
			out = append(out, q)
		}
	}
	return out
}

// ByIDs returns bank questions whose id is in the given set, preserving
// bank order regardless of the set's order.
func (b *Bank) ByIDs(ids map[string]bool) []Question {
	var out []Question
	for _, q := range b.questions {
		if ids[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

// index rebuilds the lookup maps after loading.
func (b *Bank) index() {
	b.byID = make(map[string]*Question, len(b.questions))
	for i := range b.questions {
		b.byID[b.questions[i].ID] = &b.questions[i]
	}
	b.termByID = make(map[string]*GlossaryTerm, len(b.glossary))
	for i := range b.glossary {
		b.termByID[b.glossary[i].ID] = &b.glossary[i]
	}
}
