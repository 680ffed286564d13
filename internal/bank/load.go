package bank

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed data/*.json
var dataFS embed.FS

// Load parses and validates the embedded question bank and glossary.
// It is called once at startup; the returned Bank is immutable.
func Load() (*Bank, error) {
	var questions []Question
	if err := loadValidated("data/questions.json", "data/questions.schema.json", &questions); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	var glossary []GlossaryTerm
	if err := loadValidated("data/glossary.json", "data/glossary.schema.json", &glossary); err != nil {
		return nil, fmt.Errorf("load glossary: %w", err)
	}

	b := &Bank{questions: questions, glossary: glossary}
	b.index()

	if err := b.checkInvariants(); err != nil {
		return nil, fmt.Errorf("question bank invariants: %w", err)
	}
	return b, nil
}

// loadValidated reads an embedded JSON file, validates it against its
// schema, and unmarshals it into dest.
func loadValidated(dataPath, schemaPath string, dest any) error {
	raw, err := dataFS.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", dataPath, err)
	}

	// The jsonschema library validates a parsed JSON value, not raw bytes.
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("parse %s: %w", dataPath, err)
	}

	schema, err := compileSchema(schemaPath)
	if err != nil {
		return err
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("%s: schema validation failed: %w", dataPath, err)
	}

	return json.Unmarshal(raw, dest)
}

func compileSchema(schemaPath string) (*jsonschema.Schema, error) {
	raw, err := dataFS.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", schemaPath, err)
	}
	var def any
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("parse %s: %w", schemaPath, err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://" + schemaPath
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource %s: %w", schemaPath, err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", schemaPath, err)
	}
	return compiled, nil
}

// checkInvariants enforces the referential rules the schema cannot express:
// unique ids, option-id uniqueness, a correct option that exists, topics
// belonging to their module, and resolvable cross-references.
func (b *Bank) checkInvariants() error {
	seen := make(map[string]bool, len(b.questions))
	for i := range b.questions {
		q := &b.questions[i]
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true

		mod := ModuleByID(q.Module)
		if mod == nil {
			return fmt.Errorf("question %q: unknown module %d", q.ID, q.Module)
		}
		if !mod.HasTopic(q.Topic) {
			return fmt.Errorf("question %q: topic %q is not in module %d", q.ID, q.Topic, q.Module)
		}

		if err := checkOptions(q.ID, q.Options, q.CorrectOptionID); err != nil {
			return err
		}
		if q.Rationale != nil {
			if err := checkOptions(q.ID+" (rationale)", q.Rationale.Options, q.Rationale.CorrectOptionID); err != nil {
				return err
			}
		}

		for _, rid := range q.RelatedQuestionIDs {
			if b.byID[rid] == nil {
				return fmt.Errorf("question %q: related question %q does not exist", q.ID, rid)
			}
			if rid == q.ID {
				return fmt.Errorf("question %q: refers to itself as related", q.ID)
			}
		}
		for _, tid := range q.GlossaryTermIDs {
			if b.termByID[tid] == nil {
				return fmt.Errorf("question %q: glossary term %q does not exist", q.ID, tid)
			}
		}
	}
	return nil
}

func checkOptions(owner string, options []Option, correctID string) error {
	ids := make(map[string]bool, len(options))
	for _, o := range options {
		if ids[o.ID] {
			return fmt.Errorf("question %q: duplicate option id %q", owner, o.ID)
		}
		ids[o.ID] = true
	}
	if !ids[correctID] {
		return fmt.Errorf("question %q: correct option %q not among options", owner, correctID)
	}
	return nil
}
