package mailer

import (
	"errors"
	"testing"

	"ai-pitch-evaluator-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func scoredRecord() *entity.StoredUserRecord {
	total := 61.5
	summary := "유망합니다 <b>"
	return &entity.StoredUserRecord{
		Analysis: &entity.AnalysisRecord{Idea: &entity.Field{Content: "카페 앱", Provided: entity.ProvidedTrue}},
		VCAnalysis: &entity.VCAnalysisRecord{
			Categories: map[string]entity.CategoryScore{
				"product_solution":   {Score: 20, Feedback: "좋음"},
				"market_opportunity": {Score: 30, Feedback: "큼"},
			},
			TotalScore: &total,
			Summary:    &summary,
		},
	}
}

func TestSummaryFromRecord(t *testing.T) {
	s := SummaryFromRecord("alice", scoredRecord())

	assert.Equal(t, "카페 앱", s.IdeaName)
	assert.Equal(t, 61.5, s.TotalScore)
	require.Len(t, s.Categories, 2)
	assert.Equal(t, "market_opportunity", s.Categories[0].Key)
}

func TestRenderSummaryEscapes(t *testing.T) {
	body := RenderSummary(SummaryFromRecord("<alice>", scoredRecord()))
	assert.Contains(t, body, "&lt;alice&gt;")
	assert.Contains(t, body, "61.5 / 100")
	assert.NotContains(t, body, "<b>")
}

func TestSendResultSummary(t *testing.T) {
	d := &fakeDialer{}
	svc := &emailService{dialer: d, senderEmail: "noreply@example.com", senderName: "Pitch Evaluator"}

	require.NoError(t, svc.SendResultSummary("kim@example.com", SummaryFromRecord("kim", scoredRecord())))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"kim@example.com"}, d.sent[0].GetHeader("To"))

	d.err = errors.New("smtp down")
	assert.Error(t, svc.SendResultSummary("kim@example.com", SummaryFromRecord("kim", scoredRecord())))
}
