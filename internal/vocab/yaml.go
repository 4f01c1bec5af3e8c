package vocab

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource loads the vocabulary from a YAML file shaped as
//
//	person:
//	  田中太郎:
//	    target: "Taro Tanaka"
//	    confidence: verified
//	place:
//	  国際交流センター:
//	    target: "International Exchange Center"
//
// Decoding walks yaml.Node directly instead of unmarshalling into maps so
// that category and term order follow the document, which keeps first-match
// resolution deterministic.
type FileSource struct {
	Path string
}

type yamlEntry struct {
	Target     string `yaml:"target"`
	Confidence string `yaml:"confidence"`
}

// Load reads and parses the vocabulary file.
func (s *FileSource) Load(ctx context.Context) (*Vocabulary, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}
	if len(doc.Content) == 0 {
		return Empty(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("vocabulary file: expected a category mapping at top level")
	}

	vocab := &Vocabulary{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		catName := root.Content[i].Value
		catNode := root.Content[i+1]
		if catNode.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("vocabulary file: category %q: expected a term mapping", catName)
		}

		cat := Category{Name: catName}
		for j := 0; j+1 < len(catNode.Content); j += 2 {
			term := NormalizeTerm(catNode.Content[j].Value)
			var e yamlEntry
			if err := catNode.Content[j+1].Decode(&e); err != nil {
				return nil, fmt.Errorf("vocabulary file: category %q, term %q: %w", catName, term, err)
			}
			if term == "" || e.Target == "" {
				continue
			}
			if e.Confidence == "" {
				e.Confidence = "verified"
			}
			cat.Entries = append(cat.Entries, Entry{
				SourceTerm: term,
				Target:     e.Target,
				Confidence: e.Confidence,
			})
		}
		vocab.Categories = append(vocab.Categories, cat)
	}

	return vocab, nil
}
