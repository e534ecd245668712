package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ai-pitch-evaluator-be/internal/dto"
	"ai-pitch-evaluator-be/internal/entity"
	"ai-pitch-evaluator-be/pkg/conversation"
	"ai-pitch-evaluator-be/pkg/gate"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [userName]",
	Short: "Pitch an idea interactively, then score and save it",
	Long: `Starts a conversation with the evaluator. Inside the session:
  /score        check readiness, score the pitch and save the result
  /help <text>  ask the advisor about the current status
  /quit         leave`,
	Args: cobra.ExactArgs(1),
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

var (
	markTrue    = color.New(color.FgGreen).SprintFunc()
	markPartial = color.New(color.FgYellow).SprintFunc()
	markFalse   = color.New(color.FgRed).SprintFunc()
	assistant   = color.New(color.FgCyan).SprintFunc()
)

type chatRun struct {
	client   *apiClient
	userName string
	session  *conversation.SessionState
	synced   int
}

func runChat(cmd *cobra.Command, args []string) error {
	run := &chatRun{
		client:   newAPIClient(baseURL),
		userName: args[0],
		session:  conversation.NewSessionState(),
	}
	ctx := cmd.Context()

	fmt.Println("아이디어를 자유롭게 이야기해 주세요. (/score, /help <질문>, /quit)")
	for {
		line, err := (&promptui.Prompt{Label: run.userName}).Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			continue
		case line == "/quit":
			return nil
		case line == "/score":
			err = run.score(ctx)
		case strings.HasPrefix(line, "/help"):
			err = run.help(ctx, strings.TrimSpace(strings.TrimPrefix(line, "/help")))
		default:
			err = run.turn(ctx, line)
		}
		if err != nil {
			color.Red("error: %v", err)
		}
	}
}

func (r *chatRun) turn(ctx context.Context, text string) error {
	if err := r.session.AddUserTurn(text); err != nil {
		return err
	}

	var res dto.ChatResponse
	err := r.client.post(ctx, "/chat", dto.ChatRequest{Messages: r.session.History()}, &res)

	// A failed extraction still answers with an apology that belongs in
	// the transcript.
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Status >= 500 &&
		json.Unmarshal(apiErr.Body, &res) == nil && res.Message != "" {
		r.session.ApplyFailure(res.Message)
		fmt.Println(assistant(res.Message))
		return nil
	}
	if err != nil {
		r.session.DropLastUserTurn()
		return err
	}
	if res.Analysis == nil {
		r.session.DropLastUserTurn()
		return errors.New("reply carried no analysis")
	}

	r.session.Apply(&conversation.Result{Analysis: *res.Analysis, Message: res.Message})
	fmt.Println(assistant(res.Message))
	printStatus(r.session.Readiness)
	return nil
}

func (r *chatRun) help(ctx context.Context, question string) error {
	if question == "" {
		return errors.New("usage: /help <question>")
	}
	req := dto.HelperRequest{CurrentStatus: &r.session.Readiness, UserPrompt: question}
	var res dto.HelperResponse
	if err := r.client.post(ctx, "/helper", req, &res); err != nil {
		return err
	}
	fmt.Println(assistant(res.Suggestion))
	return nil
}

func (r *chatRun) score(ctx context.Context) error {
	var decision gate.Decision
	if err := r.client.post(ctx, "/readiness", dto.ReadinessRequest{AnalysisInput: &r.session.Readiness}, &decision); err != nil {
		return err
	}
	if decision.RequiresConfirmation {
		color.Yellow("아직 충분히 구체화된 항목이 없습니다. 점수가 낮게 나올 수 있습니다.")
		confirm := promptui.Select{Label: "그래도 평가를 진행할까요?", Items: []string{"아니요", "예"}}
		idx, _, err := confirm.Run()
		if err != nil || idx == 0 {
			return err
		}
	}

	var scored dto.VCAnalyzerResponse
	if err := r.client.post(ctx, "/vc_analyzer", dto.VCAnalyzerRequest{AnalysisInput: &r.session.Readiness}, &scored); err != nil {
		return err
	}
	if scored.Analysis == nil {
		return errors.New("reply carried no analysis")
	}
	printAnalysis(scored.Analysis)

	update := dto.ResultUpdateRequest{
		UserName:   r.userName,
		Messages:   r.session.Messages[r.synced:],
		Analysis:   entity.AnalysisRecordFrom(r.session.Readiness),
		VCAnalysis: scored.Analysis.ToRecord(),
		RequestId:  uuid.NewString(),
	}
	if err := r.client.post(ctx, "/result_update", update, nil); err != nil {
		return err
	}
	r.synced = len(r.session.Messages)
	color.Green("결과가 저장되었습니다.")
	return nil
}

func printStatus(rec entity.ReadinessRecord) {
	for _, name := range entity.FieldNames {
		f, _ := rec.Get(name)
		var mark string
		switch f.Provided {
		case entity.ProvidedTrue:
			mark = markTrue("✓")
		case entity.ProvidedPartial:
			mark = markPartial("!")
		default:
			mark = markFalse("•")
		}
		fmt.Printf("  %s %-18s %s\n", mark, name, f.Content)
	}
}

func printAnalysis(a *entity.VCAnalysis) {
	for _, key := range a.ToRecord().CategoryKeys() {
		c := a.Categories[key]
		fmt.Printf("  %-28s %5.1f  %s\n", key, c.Score, c.Feedback)
	}
	color.New(color.Bold).Printf("  %-28s %5.1f\n", "total", a.TotalScore)
	fmt.Println(" ", a.Summary)
}
