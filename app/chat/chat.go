// Package chat implements the chat service on top of the message scorer: live composer feedback,
// the send gate rejecting spam and blocked senders, block flag management, history, export and clear.
//
// The service never blocks a message itself because of storage problems. Failures of persisting are
// logged and the service continues, except for reads the caller depends on.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/google/uuid"

	"github.com/ashu-suve/chat/app/metrics"
	"github.com/ashu-suve/chat/app/storage"
	"github.com/ashu-suve/chat/lib/spamcheck"
)

// EmptyHint is shown by the composer for empty input
const EmptyHint = "Type to see spam analysis"

// WelcomeText is the sample message seeded into empty history
const WelcomeText = "Welcome — spam-only moderation. Try pasting suspicious links or spammy marketing text."

const (
	defaultCacheSize = 1000
	defaultCacheTTL  = 10 * time.Minute
)

// ErrSenderBlocked returned by Send when the sender is blocked
var ErrSenderBlocked = errors.New("sender blocked, unblock to send messages")

// ErrEmptyMessage returned by Send for empty or whitespace-only text
var ErrEmptyMessage = errors.New("empty message")

// SpamError returned by Send when the message is classified as spam
type SpamError struct {
	Result  spamcheck.Result
	Verdict spamcheck.Verdict
}

func (e *SpamError) Error() string {
	return fmt.Sprintf("message detected as spam and blocked, %s", e.Result.String())
}

// Scorer scores messages and maps scores to verdicts
type Scorer interface {
	ScoreMessage(raw string) spamcheck.Result
	Classify(score int) spamcheck.Verdict
}

// MessagesStore keeps the chat history
type MessagesStore interface {
	Add(ctx context.Context, msg storage.Message) error
	List(ctx context.Context) ([]storage.Message, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
	Export(ctx context.Context, w io.Writer) error
}

// StateStore keeps the sender block flag
type StateStore interface {
	Blocked(ctx context.Context) (bool, error)
	SetBlocked(ctx context.Context, blocked bool) error
}

// SpamStore keeps rejected messages
type SpamStore interface {
	Write(ctx context.Context, entry storage.DetectedSpamInfo) error
	Read(ctx context.Context, limit int) ([]storage.DetectedSpamInfo, error)
}

// SpamLogger is an interface for logging rejected messages
type SpamLogger interface {
	Save(text string, res spamcheck.Result)
}

// SpamLoggerFunc is a function that implements SpamLogger interface
type SpamLoggerFunc func(text string, res spamcheck.Result)

// Save is a function that implements SpamLogger interface
func (f SpamLoggerFunc) Save(text string, res spamcheck.Result) {
	f(text, res)
}

// Preview is a live analysis of the composer text
type Preview struct {
	Score      int               `json:"score"`
	Status     string            `json:"status"`  // verdict line, or the hint for empty text
	Verdict    spamcheck.Verdict `json:"verdict"` // zero for empty text
	Reasons    []string          `json:"reasons"`
	OfferBlock bool              `json:"offer_block"` // spam detected, the client should offer to block the sender
	Empty      bool              `json:"empty"`
}

// Opts defines service dependencies and parameters
type Opts struct {
	Scorer     Scorer        // required
	Messages   MessagesStore // required
	State      StateStore    // required
	Spam       SpamStore     // optional, rejected messages are not stored if nil
	SpamLogger SpamLogger    // optional
	CacheSize  int           // max number of memoized previews
	CacheTTL   time.Duration // ttl of memoized previews
}

// Service is the chat service. Safe for concurrent use.
type Service struct {
	Opts
	previews cache.Cache[string, Preview]
	now      func() time.Time
}

// New makes a chat service
func New(opts Opts) (*Service, error) {
	if opts.Scorer == nil || opts.Messages == nil || opts.State == nil {
		return nil, errors.New("scorer, messages and state are required")
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.SpamLogger == nil {
		opts.SpamLogger = SpamLoggerFunc(func(string, spamcheck.Result) {})
	}
	return &Service{
		Opts:     opts,
		previews: cache.NewCache[string, Preview]().WithMaxKeys(opts.CacheSize).WithTTL(opts.CacheTTL),
		now:      time.Now,
	}, nil
}

// Preview returns the live analysis of a composer text. Results are memoized by text,
// every non-empty preview is counted in metrics, memoized or not.
func (s *Service) Preview(text string) Preview {
	if strings.TrimSpace(text) == "" {
		return Preview{Status: EmptyHint, Reasons: []string{}, Empty: true}
	}
	if p, ok := s.previews.Get(text); ok {
		metrics.ObserveCheck(string(p.Verdict.Label), p.Score)
		return p
	}

	res, verdict := s.check(text)
	p := Preview{
		Score:      res.Score,
		Status:     verdict.String(),
		Verdict:    verdict,
		Reasons:    res.Reasons,
		OfferBlock: verdict.Spam(),
	}
	s.previews.Set(text, p, s.CacheTTL)
	return p
}

// Send passes a message through the send gate. Blocked sender gets ErrSenderBlocked, empty text ErrEmptyMessage,
// spam is rejected with *SpamError. Accepted message is added to the history and returned.
func (s *Service) Send(ctx context.Context, text string) (storage.Message, error) {
	blocked, err := s.State.Blocked(ctx)
	if err != nil {
		log.Printf("[WARN] can't read block flag, treated as not blocked: %v", err)
	}
	if blocked {
		metrics.ObserveSend(metrics.SendBlocked)
		return storage.Message{}, ErrSenderBlocked
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return storage.Message{}, ErrEmptyMessage
	}

	res, verdict := s.check(text)
	if verdict.Spam() {
		metrics.ObserveSend(metrics.SendRejected)
		log.Printf("[INFO] message rejected as spam, %s", res.String())
		s.saveSpam(ctx, text, res)
		return storage.Message{}, &SpamError{Result: res, Verdict: verdict}
	}

	msg := s.makeMessage(text, true, res, verdict)
	if err := s.Messages.Add(ctx, msg); err != nil {
		log.Printf("[WARN] can't save message %s: %v", msg.ID, err)
	}
	metrics.ObserveSend(metrics.SendAccepted)
	log.Printf("[DEBUG] message %s accepted, %s", msg.ID, res.String())
	return msg, nil
}

// Block blocks the sender, Send is rejected until Unblock
func (s *Service) Block(ctx context.Context) error {
	if err := s.State.SetBlocked(ctx, true); err != nil {
		return fmt.Errorf("can't block sender: %w", err)
	}
	log.Printf("[INFO] sender blocked")
	return nil
}

// Unblock unblocks the sender
func (s *Service) Unblock(ctx context.Context) error {
	if err := s.State.SetBlocked(ctx, false); err != nil {
		return fmt.Errorf("can't unblock sender: %w", err)
	}
	log.Printf("[INFO] sender unblocked")
	return nil
}

// Blocked returns the sender block flag
func (s *Service) Blocked(ctx context.Context) (bool, error) {
	return s.State.Blocked(ctx)
}

// History returns all messages, oldest first
func (s *Service) History(ctx context.Context) ([]storage.Message, error) {
	return s.Messages.List(ctx)
}

// Clear removes all messages from the history
func (s *Service) Clear(ctx context.Context) error {
	if err := s.Messages.Clear(ctx); err != nil {
		return fmt.Errorf("can't clear history: %w", err)
	}
	log.Printf("[INFO] history cleared")
	return nil
}

// Export writes the history as indented json
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	return s.Messages.Export(ctx, w)
}

// DetectedSpam returns the latest rejected messages, newest first
func (s *Service) DetectedSpam(ctx context.Context, limit int) ([]storage.DetectedSpamInfo, error) {
	if s.Spam == nil {
		return []storage.DetectedSpamInfo{}, nil
	}
	return s.Spam.Read(ctx, limit)
}

// SeedWelcome adds the welcome message to empty history
func (s *Service) SeedWelcome(ctx context.Context) error {
	count, err := s.Messages.Count(ctx)
	if err != nil {
		return fmt.Errorf("can't count messages: %w", err)
	}
	if count > 0 {
		return nil
	}
	res, verdict := s.check(WelcomeText)
	if err := s.Messages.Add(ctx, s.makeMessage(WelcomeText, false, res, verdict)); err != nil {
		return fmt.Errorf("can't add welcome message: %w", err)
	}
	log.Printf("[DEBUG] welcome message added")
	return nil
}

// check scores the text and records the verdict in metrics
func (s *Service) check(text string) (spamcheck.Result, spamcheck.Verdict) {
	res := s.Scorer.ScoreMessage(text)
	verdict := s.Scorer.Classify(res.Score)
	metrics.ObserveCheck(string(verdict.Label), res.Score)
	return res, verdict
}

func (s *Service) saveSpam(ctx context.Context, text string, res spamcheck.Result) {
	s.SpamLogger.Save(text, res)
	if s.Spam == nil {
		return
	}
	entry := storage.DetectedSpamInfo{Text: text, Score: res.Score, Reasons: res.Reasons, Summary: res.String(), Timestamp: s.now()}
	if err := s.Spam.Write(ctx, entry); err != nil {
		log.Printf("[WARN] can't save detected spam: %v", err)
	}
}

func (s *Service) makeMessage(text string, isMe bool, res spamcheck.Result, verdict spamcheck.Verdict) storage.Message {
	return storage.Message{
		ID:        "m_" + uuid.NewString(),
		Text:      text,
		IsMe:      isMe,
		Timestamp: s.now(),
		Analysis:  res,
		Verdict:   verdict,
	}
}
