package mailer

import (
	"fmt"
	"html"
	"strings"

	"ai-pitch-evaluator-be/internal/entity"

	"gopkg.in/gomail.v2"
)

// ResultSummary is what the summary mail reports about one evaluation.
type ResultSummary struct {
	UserName   string
	IdeaName   string
	TotalScore float64
	Summary    string
	Categories []CategoryLine
}

type CategoryLine struct {
	Key      string
	Score    float64
	Feedback string
}

// SummaryFromRecord collects the mailable parts of a scored record.
func SummaryFromRecord(userName string, rec *entity.StoredUserRecord) ResultSummary {
	s := ResultSummary{UserName: userName, IdeaName: rec.Analysis.IdeaName()}
	if rec.VCAnalysis == nil {
		return s
	}
	s.TotalScore = rec.VCAnalysis.Total()
	if rec.VCAnalysis.Summary != nil {
		s.Summary = *rec.VCAnalysis.Summary
	}
	for _, key := range rec.VCAnalysis.CategoryKeys() {
		c := rec.VCAnalysis.Categories[key]
		s.Categories = append(s.Categories, CategoryLine{Key: key, Score: c.Score, Feedback: c.Feedback})
	}
	return s
}

type IEmailService interface {
	SendResultSummary(toEmail string, summary ResultSummary) error
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type emailService struct {
	dialer      sender
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	return &emailService{
		dialer:      gomail.NewDialer(host, port, username, password),
		senderEmail: username,
		senderName:  senderName,
	}
}

func (s *emailService) SendResultSummary(toEmail string, summary ResultSummary) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] VC 평가 결과: %.1f점", summary.IdeaName, summary.TotalScore))
	m.SetBody("text/html", RenderSummary(summary))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send result summary to %s: %w", toEmail, err)
	}
	return nil
}

// RenderSummary builds the HTML mail body.
func RenderSummary(s ResultSummary) string {
	var rows strings.Builder
	for _, c := range s.Categories {
		fmt.Fprintf(&rows, `<tr><td style="padding: 6px 12px;">%s</td><td style="padding: 6px 12px;">%.1f</td><td style="padding: 6px 12px;">%s</td></tr>`,
			html.EscapeString(c.Key), c.Score, html.EscapeString(c.Feedback))
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s 님의 아이디어 평가 결과</h2>
			<p>아이디어: <strong>%s</strong></p>
			<h1 style="color: #4CAF50;">%.1f / 100</h1>
			<table style="border-collapse: collapse;">%s</table>
			<p>%s</p>
		</div>
	`, html.EscapeString(s.UserName), html.EscapeString(s.IdeaName), s.TotalScore, rows.String(), html.EscapeString(s.Summary))
}
