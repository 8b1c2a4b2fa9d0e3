package taxonomy

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads a skill taxonomy from a YAML file of the form:
//
//	skills:
//	  - id: python
//	    name: Python
//	    synonyms: [py, python3]
//
// Context is accepted first to satisfy the project-wide convention; it is
// reserved for future use and currently unused.
func Load(_ context.Context, path string) ([]Skill, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadTaxonomy, err)
	}

	var out struct {
		Skills []Skill `koanf:"skills"`
	}
	if err := k.UnmarshalWithConf("", &out, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadTaxonomy, err)
	}
	if len(out.Skills) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSkills, path)
	}
	return out.Skills, nil
}
