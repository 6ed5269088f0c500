package signature

import (
	"sort"
	"strings"

	"github.com/fulmenhq/pagesmith/pkg/markup"
)

// Evidence source for a keyword hit.
const (
	ViaClass = "class"
	ViaText  = "text"
)

// Hit records one keyword that contributed to a template's score.
type Hit struct {
	Keyword string  `json:"keyword"`
	Via     string  `json:"via"`
	Points  float64 `json:"points"`
}

// Score is the accumulated evidence for one template.
type Score struct {
	TemplateID string  `json:"template_id"`
	Score      float64 `json:"score"`
	Hits       []Hit   `json:"hits,omitempty"`
}

// Result is the outcome of classifying one document.
type Result struct {
	TemplateID string  `json:"template_id"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	// Scores holds every template in signature table order.
	Scores []Score `json:"scores"`
}

// Winner returns the score entry of the winning template.
func (r Result) Winner() Score {
	for _, s := range r.Scores {
		if s.TemplateID == r.TemplateID {
			return s
		}
	}
	return Score{TemplateID: r.TemplateID}
}

// Ranked returns the scores sorted best first; ties keep table order.
func (r Result) Ranked() []Score {
	out := append([]Score(nil), r.Scores...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Classifier scores documents against a signature table.
type Classifier struct {
	templates []Template
}

// NewClassifier builds a classifier over the manifest's templates. A nil
// manifest yields a classifier that never matches.
func NewClassifier(manifest *Manifest) *Classifier {
	if manifest == nil {
		return &Classifier{}
	}
	return &Classifier{templates: manifest.Templates}
}

// Classify picks the template whose signature best matches doc.
//
// A keyword contained in any class token scores its full weight; otherwise a
// keyword found in the raw lower-cased source scores half. The highest total
// wins and ties go to the template declared first. Confidence is the gap to
// the runner-up.
func (c *Classifier) Classify(doc *markup.Document) Result {
	if len(c.templates) == 0 {
		return Result{}
	}

	classes := doc.ClassTokens()
	text := doc.LowerText()

	scores := make([]Score, 0, len(c.templates))
	best := 0
	for i, t := range c.templates {
		s := Score{TemplateID: t.ID}
		for _, k := range t.Keywords {
			switch {
			case anyContains(classes, k.Value):
				s.Hits = append(s.Hits, Hit{Keyword: k.Value, Via: ViaClass, Points: float64(k.Weight)})
				s.Score += float64(k.Weight)
			case strings.Contains(text, k.Value):
				s.Hits = append(s.Hits, Hit{Keyword: k.Value, Via: ViaText, Points: float64(k.Weight) / 2})
				s.Score += float64(k.Weight) / 2
			}
		}
		scores = append(scores, s)
		if s.Score > scores[best].Score {
			best = i
		}
	}

	result := Result{
		TemplateID: scores[best].TemplateID,
		Score:      scores[best].Score,
		Scores:     scores,
	}
	if len(scores) > 1 {
		result.Confidence = result.Score - runnerUp(scores, best)
	}
	return result
}

func runnerUp(scores []Score, best int) float64 {
	second := 0.0
	first := true
	for i, s := range scores {
		if i == best {
			continue
		}
		if first || s.Score > second {
			second = s.Score
			first = false
		}
	}
	return second
}

func anyContains(tokens []string, keyword string) bool {
	for _, tok := range tokens {
		if strings.Contains(tok, keyword) {
			return true
		}
	}
	return false
}
