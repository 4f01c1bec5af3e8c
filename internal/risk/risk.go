// Package risk turns the guard's unverified proper-noun findings into a
// coarse GREEN/YELLOW/RED signal plus applicant-facing warnings.
package risk

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Level is the overall safety signal, totally ordered by severity.
type Level int

const (
	Green Level = iota
	Yellow
	Red
)

var levelNames = map[Level]string{
	Green:  "GREEN",
	Yellow: "YELLOW",
	Red:    "RED",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// MarshalJSON encodes the level as its wire name ("GREEN", "YELLOW", "RED").
func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a wire name back into a Level.
func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for level, name := range levelNames {
		if name == s {
			*l = level
			return nil
		}
	}
	return fmt.Errorf("unknown risk level %q", s)
}

// Assessment is the classifier output.
type Assessment struct {
	Level    Level
	Warnings []string
}

// Policy maps unverified proper-noun candidates to an assessment. It is
// pluggable so the length heuristic below can be swapped for a real
// classifier without touching the pipeline.
type Policy interface {
	Classify(unverified []string) Assessment
}

// NameLengthPolicy is the default heuristic: a Han run of 2–4 characters is
// name-shaped (typical of Japanese family/given names) and forces RED;
// longer runs (places, organizations) yield YELLOW. One name-shaped
// candidate dominates any number of longer ones.
type NameLengthPolicy struct{}

// Classify implements Policy.
func (NameLengthPolicy) Classify(unverified []string) Assessment {
	if len(unverified) == 0 {
		return Assessment{Level: Green}
	}

	nameShaped := false
	for _, term := range unverified {
		if n := len([]rune(term)); n >= 2 && n <= 4 {
			nameShaped = true
			break
		}
	}

	listed := strings.Join(unverified, "、")
	if nameShaped {
		return Assessment{
			Level: Red,
			Warnings: []string{
				fmt.Sprintf("氏名の可能性がある未登録の固有名詞が含まれています: %s。提出前に、在留カード・パスポート等の公的書類の英字表記と必ず照合してください。", listed),
			},
		}
	}
	return Assessment{
		Level: Yellow,
		Warnings: []string{
			fmt.Sprintf("未登録の固有名詞の可能性があります: %s。訳語が正しいか手動で確認してください。", listed),
		},
	}
}
