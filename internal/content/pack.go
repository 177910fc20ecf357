package content

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the content pack format major version this build reads.
const SupportedMajor = "v1"

//go:embed data/global_strategy.json
var defaultPackJSON []byte

//go:embed data/pack.schema.json
var packSchemaJSON []byte

// ErrInvalidPack is returned when a content pack fails validation.
var ErrInvalidPack = errors.New("invalid content pack")

// Pack is an immutable bundle of study material. Accessors return copies so
// callers cannot mutate the pack after it has been loaded.
type Pack struct {
	version   string
	title     string
	sections  []Section
	questions []Question
	glossary  []Term
}

type packDoc struct {
	Version   string     `json:"version"`
	Title     string     `json:"title"`
	Sections  []Section  `json:"sections"`
	Questions []Question `json:"questions"`
	Glossary  []Term     `json:"glossary"`
}

var (
	defaultOnce sync.Once
	defaultPack *Pack
)

// Default returns the built-in global strategy pack.
func Default() *Pack {
	defaultOnce.Do(func() {
		p, err := Parse(defaultPackJSON)
		if err != nil {
			panic(fmt.Sprintf("built-in content pack: %v", err))
		}
		defaultPack = p
	})
	return defaultPack
}

// Load reads and parses a content pack from a JSON file.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content pack: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse validates raw JSON against the pack schema and builds a Pack.
func Parse(data []byte) (*Pack, error) {
	if err := validateDocument(data); err != nil {
		return nil, err
	}

	var doc packDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidPack, err)
	}

	if !semver.IsValid(doc.Version) {
		return nil, fmt.Errorf("%w: version %q is not a semantic version", ErrInvalidPack, doc.Version)
	}
	if major := semver.Major(doc.Version); major != SupportedMajor {
		return nil, fmt.Errorf("%w: version %s unsupported (want %s.x.x)", ErrInvalidPack, doc.Version, SupportedMajor)
	}

	for i, q := range doc.Questions {
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d: correct index %d out of range [0,%d)",
				ErrInvalidPack, i+1, q.Correct, len(q.Options))
		}
	}

	return &Pack{
		version:   doc.Version,
		title:     doc.Title,
		sections:  doc.Sections,
		questions: doc.Questions,
		glossary:  doc.Glossary,
	}, nil
}

func (p *Pack) Version() string { return p.version }
func (p *Pack) Title() string   { return p.title }

// Sections returns the chapters in reading order.
func (p *Pack) Sections() []Section {
	out := make([]Section, len(p.sections))
	copy(out, p.sections)
	return out
}

// Questions returns the quiz questions in order.
func (p *Pack) Questions() []Question {
	out := make([]Question, len(p.questions))
	for i, q := range p.questions {
		out[i] = q.clone()
	}
	return out
}

// QuestionCount returns the number of quiz questions.
func (p *Pack) QuestionCount() int {
	return len(p.questions)
}

// Question returns the question at index i.
func (p *Pack) Question(i int) (Question, error) {
	if i < 0 || i >= len(p.questions) {
		return Question{}, fmt.Errorf("question %d out of range [0,%d)", i, len(p.questions))
	}
	return p.questions[i].clone(), nil
}

// Glossary returns all glossary terms in authoring order.
func (p *Pack) Glossary() []Term {
	out := make([]Term, len(p.glossary))
	copy(out, p.glossary)
	return out
}

// SearchGlossary returns terms whose name or definition contains query,
// ignoring case. An empty query matches everything.
func (p *Pack) SearchGlossary(query string) []Term {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return p.Glossary()
	}
	var out []Term
	for _, t := range p.glossary {
		if strings.Contains(strings.ToLower(t.Term), query) ||
			strings.Contains(strings.ToLower(t.Definition), query) {
			out = append(out, t)
		}
	}
	return out
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

const packSchemaURL = "schema://stratiz/content-pack.json"

func validateDocument(data []byte) error {
	schemaOnce.Do(func() {
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(packSchemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parse pack schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(packSchemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add pack schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(packSchemaURL)
	})
	if schemaErr != nil {
		return schemaErr
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrInvalidPack, err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	return nil
}
