package constant

const (
	// ChatApologyMessage is returned in place of a reply when extraction fails.
	ChatApologyMessage = "죄송합니다. 응답 생성 중 오류가 발생했습니다."

	VCAnalyzerErrorMessage = "아이디어 VC 분석 중 오류가 발생했습니다."
	HelperErrorMessage     = "도움말을 생성하는 중 오류가 발생했습니다."
	AnalyzerErrorMessage   = "아이디어 분석 중 오류가 발생했습니다."
	ResultUpdateError      = "Failed to update result"
	LeaderboardError       = "Failed to fetch leaderboard data"
	DataFetchingError      = "Failed to get messages"

	// Fallback text when a field has no content.
	NotEnteredText = "미입력"
	NoneText       = "없음"
)

// Generation limits per call.
const (
	ExtractionMaxTokens = 2000
	ScoringMaxTokens    = 3000
	HelperMaxTokens     = 500
	VerdictMaxTokens    = 150
)

// VerdictFallbackText replaces an empty verdict reply.
const VerdictFallbackText = "분석을 완료하지 못했습니다."

// Labels of the helper status block.
const (
	StatusLabelIdea             = "아이디어 설명"
	StatusLabelTargetCustomer   = "타겟 고객"
	StatusLabelValueProposition = "가치 제안"
)
