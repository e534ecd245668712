package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"ai-pitch-evaluator-be/internal/entity"
	"ai-pitch-evaluator-be/internal/pkg/apperr"
	"ai-pitch-evaluator-be/internal/pkg/logger"
	"ai-pitch-evaluator-be/internal/pkg/mailer"
	"ai-pitch-evaluator-be/internal/repository/contract"
	"ai-pitch-evaluator-be/pkg/events"
	"ai-pitch-evaluator-be/pkg/leaderboard"

	"github.com/patrickmn/go-cache"
)

const leaderboardCacheKey = "leaderboard"

type IResultService interface {
	Upsert(ctx context.Context, userName string, patch entity.RecordPatch) (*entity.StoredUserRecord, error)
	GetMessages(ctx context.Context, userName string) ([]entity.Message, error)
	Leaderboard(ctx context.Context) ([]entity.LeaderboardEntry, error)
}

type ResultServiceOption func(*resultService)

// WithLeaderboardCache keeps ranked snapshots for ttl. Zero disables it.
func WithLeaderboardCache(ttl time.Duration) ResultServiceOption {
	return func(s *resultService) {
		if ttl > 0 {
			s.snapshots = cache.New(ttl, 2*ttl)
		}
	}
}

func WithEvents(p events.ResultPublisher) ResultServiceOption {
	return func(s *resultService) { s.events = p }
}

func WithMailer(m mailer.IEmailService) ResultServiceOption {
	return func(s *resultService) { s.mailer = m }
}

func WithClock(now func() time.Time) ResultServiceOption {
	return func(s *resultService) { s.now = now }
}

// resultService does read-merge-write without locking: concurrent writers
// of one user name race and the last write wins.
type resultService struct {
	repo      contract.ResultRepository
	logger    logger.ILogger
	snapshots *cache.Cache
	events    events.ResultPublisher
	mailer    mailer.IEmailService
	now       func() time.Time
}

func NewResultService(repo contract.ResultRepository, log logger.ILogger, opts ...ResultServiceOption) IResultService {
	s := &resultService{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *resultService) load(ctx context.Context, op, userName string) (*entity.StoredUserRecord, bool, error) {
	raw, found, err := s.repo.Get(ctx, userName)
	if err != nil {
		return nil, false, apperr.Store(op, err)
	}
	if !found {
		return entity.NewStoredUserRecord(), false, nil
	}
	rec, err := entity.DecodeStoredUserRecord(raw)
	if err != nil {
		return nil, true, apperr.New(apperr.KindStore, op, "stored record is unreadable", err)
	}
	return rec, true, nil
}

// Upsert merges patch into the stored record. Messages always append, so
// a repeated patch appends again unless it repeats a known request id.
func (s *resultService) Upsert(ctx context.Context, userName string, patch entity.RecordPatch) (*entity.StoredUserRecord, error) {
	const op = "result.Upsert"

	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, apperr.Validation(op, "userName is required")
	}

	rec, _, err := s.load(ctx, op, userName)
	if err != nil {
		return nil, err
	}
	if rec.HasApplied(patch.RequestId) {
		s.logger.Info("RESULT", "Replayed request ignored", map[string]interface{}{
			"user_name":  userName,
			"request_id": patch.RequestId,
		})
		return rec, nil
	}

	hadMail := rec.UserData != nil && rec.UserData.Email != nil && strings.TrimSpace(*rec.UserData.Email) != ""
	hadScore := rec.VCAnalysis != nil

	rec.Apply(patch, s.now())

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	if err := s.repo.Put(ctx, userName, data); err != nil {
		return nil, apperr.Store(op, err)
	}

	if s.snapshots != nil {
		s.snapshots.Delete(leaderboardCacheKey)
	}
	s.logger.Info("RESULT", "Result updated", map[string]interface{}{
		"user_name":      userName,
		"messages_added": len(patch.Messages),
		"scored":         patch.VCAnalysis != nil,
	})

	s.notify(ctx, userName, rec, patch, hadMail, hadScore)
	return rec, nil
}

func (s *resultService) notify(ctx context.Context, userName string, rec *entity.StoredUserRecord, patch entity.RecordPatch, hadMail, hadScore bool) {
	if s.events != nil {
		s.events.PublishResultUpdated(ctx, userName, len(patch.Messages), patch.VCAnalysis != nil)
		if patch.VCAnalysis != nil {
			s.events.PublishPitchScored(ctx, userName, rec.Analysis.IdeaName(), rec.VCAnalysis.Total())
		}
	}

	if s.mailer == nil || rec.VCAnalysis == nil || rec.UserData == nil || rec.UserData.Email == nil {
		return
	}
	email := strings.TrimSpace(*rec.UserData.Email)
	if email == "" {
		return
	}
	// Mail when the record first has both parts and after every rescore.
	if hadMail && hadScore && patch.VCAnalysis == nil {
		return
	}
	if err := s.mailer.SendResultSummary(email, mailer.SummaryFromRecord(userName, rec)); err != nil {
		s.logger.Error("RESULT", "Failed to send result summary", map[string]interface{}{
			"user_name": userName,
			"error":     err.Error(),
		})
	}
}

// GetMessages returns an empty list for unknown users.
func (s *resultService) GetMessages(ctx context.Context, userName string) ([]entity.Message, error) {
	const op = "result.GetMessages"

	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, apperr.Validation(op, "userName is required")
	}
	rec, _, err := s.load(ctx, op, userName)
	if err != nil {
		return nil, err
	}
	return rec.Messages, nil
}

// Leaderboard ranks every scored record. Unreadable records are logged and
// left out.
func (s *resultService) Leaderboard(ctx context.Context) ([]entity.LeaderboardEntry, error) {
	const op = "result.Leaderboard"

	if s.snapshots != nil {
		if x, ok := s.snapshots.Get(leaderboardCacheKey); ok {
			return x.([]entity.LeaderboardEntry), nil
		}
	}

	raws, err := s.repo.ListRaw(ctx)
	if err != nil {
		return nil, apperr.Store(op, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, apperr.Store(op, errors.Join(errors.New("leaderboard scan interrupted"), err))
	}

	items := make([]leaderboard.Item, 0, len(raws))
	for _, r := range raws {
		items = append(items, leaderboard.Item{UserName: r.UserName, Value: r.Value})
	}
	entries, skipped := leaderboard.Rank(items)
	for _, sk := range skipped {
		s.logger.Warn("LEADERBOARD", "Skipped unreadable record", map[string]interface{}{
			"user_name": sk.UserName,
			"error":     sk.Err.Error(),
		})
	}

	if s.snapshots != nil {
		s.snapshots.SetDefault(leaderboardCacheKey, entries)
	}
	return entries, nil
}
