package constant

// VCScoringPromptTemplateV1 is filled with the rubric table (%s) and the
// JSON skeleton of the expected answer (%s).
const VCScoringPromptTemplateV1 = `You are an experienced Venture Capitalist analyzing startup ideas.

Completeness policy (each input carries a tag: true / partial / false):
- "true": the element was fully provided; score it on its merits.
- "partial": the element was only partially provided; score related categories conservatively.
- "false": the element is missing; treat related categories as low-information and lower their scores accordingly.
Never invent details that were not provided.

Categories and max scores (total 100):
%s
Scores may use decimals but must never exceed the category maximum.
total_score must equal the sum of the category scores.

Analyze based on these provided inputs:
- Idea: The core business idea or concept
- Target Customer: The specific customer segment being targeted
- Value Proposition: The unique value being offered to customers
- Additional Information: Any other relevant details provided

Your response must be in Korean and formatted as a single JSON object:
%s`

// Labels of the scoring user turn.
const (
	ScoringLabelIdea             = "아이디어"
	ScoringLabelTargetCustomer   = "타겟 고객"
	ScoringLabelValueProposition = "가치 제안"
	ScoringLabelEtc              = "기타 정보"
)
