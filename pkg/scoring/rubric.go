package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"ai-pitch-evaluator-be/internal/entity"
)

// RubricTotal is the points every rubric must distribute.
const RubricTotal = 100.0

type Category struct {
	Key         string
	Label       string
	Max         float64
	Criteria    string
	FeedbackFor string
}

type Rubric struct {
	categories []Category
}

// NewRubric checks that keys are unique, maxima positive and that the
// maxima add up to exactly RubricTotal.
func NewRubric(categories ...Category) (Rubric, error) {
	if len(categories) == 0 {
		return Rubric{}, errors.New("rubric has no categories")
	}
	seen := make(map[string]bool, len(categories))
	var sum float64
	for _, c := range categories {
		if c.Key == "" {
			return Rubric{}, errors.New("rubric category without key")
		}
		if c.Key == entity.KeyTotalScore || c.Key == entity.KeySummary {
			return Rubric{}, fmt.Errorf("rubric category key %q is reserved", c.Key)
		}
		if seen[c.Key] {
			return Rubric{}, fmt.Errorf("duplicate rubric category %q", c.Key)
		}
		if c.Max <= 0 {
			return Rubric{}, fmt.Errorf("rubric category %q has non-positive max %v", c.Key, c.Max)
		}
		seen[c.Key] = true
		sum += c.Max
	}
	if math.Abs(sum-RubricTotal) > 1e-9 {
		return Rubric{}, fmt.Errorf("rubric maxima sum to %v, want %v", sum, RubricTotal)
	}

	cats := make([]Category, len(categories))
	copy(cats, categories)
	return Rubric{categories: cats}, nil
}

func MustRubric(categories ...Category) Rubric {
	r, err := NewRubric(categories...)
	if err != nil {
		panic(err)
	}
	return r
}

// Canonical is the five-category rubric used for every evaluation.
var Canonical = MustRubric(
	Category{
		Key:         "market_opportunity",
		Label:       "Market Opportunity",
		Max:         35,
		Criteria:    "Market size, growth potential, timing",
		FeedbackFor: "시장 규모, 성장 잠재력, 시장 진입 타이밍, TAM/SAM/SOM 분석에 대한 전문적 평가",
	},
	Category{
		Key:         "product_solution",
		Label:       "Product/Solution",
		Max:         30,
		Criteria:    "Innovation, technical feasibility, competitive advantage",
		FeedbackFor: "제품 혁신성, 기술적 실현 가능성, 경쟁 우위, 독창성에 대한 심층 분석",
	},
	Category{
		Key:         "business_model",
		Label:       "Business Model",
		Max:         15,
		Criteria:    "Revenue model, scalability, unit economics",
		FeedbackFor: "수익 모델의 지속가능성, 확장성, 단위 경제성, 수익화 전략에 대한 평가",
	},
	Category{
		Key:         "competition_differentiation",
		Label:       "Competition & Differentiation",
		Max:         10,
		Criteria:    "Competitive landscape, barriers to entry, unique value prop",
		FeedbackFor: "경쟁 환경, 진입 장벽, 차별화 요소에 대한 평가",
	},
	Category{
		Key:         "investment_potential",
		Label:       "Investment Potential",
		Max:         10,
		Criteria:    "Risk factors, potential returns, funding requirements",
		FeedbackFor: "투자 리스크 요소, 예상 수익률, 자금 조달 요건, 출구 전략에 대한 VC 관점의 평가",
	},
)

func (r Rubric) Categories() []Category {
	out := make([]Category, len(r.categories))
	copy(out, r.categories)
	return out
}

func (r Rubric) Max(key string) (float64, bool) {
	for _, c := range r.categories {
		if c.Key == key {
			return c.Max, true
		}
	}
	return 0, false
}

// Table renders the rubric lines of the scoring prompt.
func (r Rubric) Table() string {
	var b strings.Builder
	for _, c := range r.categories {
		fmt.Fprintf(&b, "- %s (%s points): %s\n", c.Label, formatPoints(c.Max), c.Criteria)
	}
	return b.String()
}

// Skeleton renders the JSON answer layout shown to the model.
func (r Rubric) Skeleton() string {
	var b strings.Builder
	b.WriteString("{\n  \"analysis\": {\n")
	for _, c := range r.categories {
		fmt.Fprintf(&b, "    %q: {\n      \"score\": 0-%s,\n      \"feedback\": %q\n    },\n", c.Key, formatPoints(c.Max), c.FeedbackFor)
	}
	fmt.Fprintf(&b, "    \"total_score\": 0-%s,\n", formatPoints(RubricTotal))
	b.WriteString("    \"summary\": \"종합 평가 및 스타트업을 위한 전략적 제언\"\n  }\n}")
	return b.String()
}

// Finalize turns a raw model answer into a trusted analysis: every rubric
// category must be present and finite, each score is clamped into
// [0, max] and the total is recomputed from the categories.
func (r Rubric) Finalize(raw *entity.VCAnalysisRecord) (*entity.VCAnalysis, error) {
	if raw == nil {
		return nil, errors.New("no analysis in reply")
	}

	out := &entity.VCAnalysis{Categories: make(map[string]entity.CategoryScore, len(r.categories))}
	var total float64
	for _, c := range r.categories {
		got, ok := raw.Categories[c.Key]
		if !ok {
			return nil, fmt.Errorf("reply is missing category %q", c.Key)
		}
		if math.IsNaN(got.Score) || math.IsInf(got.Score, 0) {
			return nil, fmt.Errorf("category %q has non-finite score", c.Key)
		}
		got.Score = clamp(got.Score, 0, c.Max)
		got.Feedback = strings.TrimSpace(got.Feedback)
		out.Categories[c.Key] = got
		total += got.Score
	}

	out.TotalScore = clamp(total, 0, RubricTotal)
	if raw.Summary != nil {
		out.Summary = strings.TrimSpace(*raw.Summary)
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func formatPoints(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%g", v)
}
