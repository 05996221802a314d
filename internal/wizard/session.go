package wizard

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/smarthealthquote/smarthealthquote/internal/errors"
	"github.com/smarthealthquote/smarthealthquote/internal/models"
)

// Config carries the session dependencies and timing knobs.
type Config struct {
	// ReplyDelay is the pause before a bot reply, simulating typing.
	ReplyDelay time.Duration
	// QuoteDelay is the longer pause between the quote-generation
	// announcement and the terminal quote.
	QuoteDelay time.Duration
	Quoter     Quoter
	Logger     *slog.Logger
}

// Session owns one running conversation: the append-only transcript, the
// five stages with their completion flags, the cursor over them, the pending
// answer field, and the terminal quote.
//
// All state transitions go through the turn-advance procedure under a single
// mutex, so rapid successive submissions are strictly serialized: stage N's
// effects are fully applied before stage N+1's transition evaluates state.
type Session struct {
	mu  sync.Mutex
	cfg Config

	nextMessageID int64
	transcript    []Message
	stages        [stageCount]Stage
	// currentStage gates the next bot prompt. It never decreases.
	currentStage int
	introDone    bool
	pending      Field
	answers      Answers
	// generating is set while the quote-generation announcement's delayed
	// quote production is outstanding. It keeps a second submission from
	// firing the terminal transition twice.
	generating bool
	done       bool
	quote      *models.Quote

	scheduler *scheduler
	closed    bool
}

// NewSession starts a conversation with the opening greeting already in the
// transcript.
func NewSession(cfg Config) *Session {
	if cfg.Quoter == nil {
		cfg.Quoter = UnimplementedQuoter{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	s := &Session{
		cfg:       cfg,
		scheduler: newScheduler(),
	}
	for i := range s.stages {
		s.stages[i] = Stage{Name: stageNames[i]}
	}
	s.appendMessage(SenderBot, welcomePrompt, introOptions)
	return s
}

// SubmitFreeText records a user reply and schedules the bot's turn. The
// returned channel delivers the turn's events and is closed when the turn
// completes. ok is false when the input was empty or the session has already
// reached its terminal state; in both cases nothing is recorded.
//
// Any non-empty string is accepted verbatim. Replies are stored but never
// validated against the offered options; the wizard is a linear prompt
// sequence, not a form validator.
func (s *Session) SubmitFreeText(text string) (userMsg Message, events <-chan Event, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, nil, false
	}
	return s.submit(Trigger{Kind: TriggerFreeText, Text: text})
}

// SelectOption records a pressed option button. It shares the submission
// path with SubmitFreeText; the only difference is that known option labels
// carry a tagged trigger instead of being matched by string later.
func (s *Session) SelectOption(label string) (userMsg Message, events <-chan Event, ok bool) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Message{}, nil, false
	}
	return s.submit(triggerForOption(label))
}

func (s *Session) submit(trigger Trigger) (Message, <-chan Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.done {
		// Submissions after the terminal state have no further effect.
		return Message{}, nil, false
	}

	userMsg := s.appendMessage(SenderUser, trigger.Text, nil)
	if s.pending != FieldNone {
		s.answers.set(s.pending, trigger.Text)
		s.pending = FieldNone
	}

	turnEvents := make(chan Event, turnEventBuffer)
	if !s.scheduler.schedule(s.cfg.ReplyDelay, turnEvents, func() {
		s.advance(trigger, turnEvents)
	}) {
		close(turnEvents)
	}
	return userMsg, turnEvents, true
}

// turnEventBuffer is sized so a turn can emit all its events without a
// consumer. The longest turn emits the generation announcement and then the
// quote outcome.
const turnEventBuffer = 4

// advance is the turn-advance procedure: the deterministic transition table
// keyed on the intro flag, the current stage, and the trigger. It runs after
// the reply delay, under the session mutex.
func (s *Session) advance(trigger Trigger, events chan Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(events)
		return
	}

	if !s.introDone {
		if trigger.Kind == TriggerFreeText {
			// A typed reply that spells out a greeting option behaves like
			// pressing it.
			trigger = triggerForOption(trigger.Text)
		}
		switch trigger.Kind {
		case TriggerBegin:
			s.introDone = true
			s.completeStage(stageBasicInfo)
			s.currentStage = stageHealthHistory
			s.pending = FieldAge
			s.emitBotMessage(events, askAgePrompt, nil)
		case TriggerTellMeMore:
			s.emitBotMessage(events, tellMeMorePrompt, tellMeMoreOptions)
		case TriggerFreeText:
			// Input outside the greeting options produces no transition.
		}
		close(events)
		return
	}

	// Once the introduction is complete, any non-empty input advances the
	// stage; the reply content was already stored above.
	switch s.currentStage {
	case stageHealthHistory:
		s.completeStage(stageHealthHistory)
		s.currentStage = stageLifestyle
		s.pending = FieldMedicalHistory
		s.emitBotMessage(events, askMedicalHistoryPrompt, nil)
		close(events)
	case stageLifestyle:
		s.completeStage(stageLifestyle)
		s.currentStage = stageCoverageNeeds
		s.pending = FieldLifestyle
		s.emitBotMessage(events, askLifestylePrompt, lifestyleOptions)
		close(events)
	case stageCoverageNeeds:
		s.completeStage(stageCoverageNeeds)
		s.currentStage = stageQuoteGeneration
		s.pending = FieldCoverageNeed
		s.emitBotMessage(events, askCoverageNeedPrompt, coverageOptions)
		close(events)
	case stageQuoteGeneration:
		if s.generating {
			// A quote production is already outstanding; the terminal
			// transition fires at most once.
			close(events)
			return
		}
		s.generating = true
		s.completeStage(stageQuoteGeneration)
		s.emitBotMessage(events, generatingPrompt, nil)
		// Ownership of the events channel passes to the quote task.
		if !s.scheduler.schedule(s.cfg.QuoteDelay, events, func() {
			s.produceQuote(events)
		}) {
			close(events)
		}
	default:
		close(events)
	}
}

// produceQuote runs the quote dependency after the generation delay and
// switches the session to its terminal state on success. On failure the
// session stays open and the user gets a retry option; the transcript and
// stage state remain valid either way.
func (s *Session) produceQuote(events chan Event) {
	s.mu.Lock()
	if s.closed || s.done {
		s.mu.Unlock()
		close(events)
		return
	}
	answers := s.answers
	s.mu.Unlock()

	// The quote dependency runs without the session lock so readers and
	// Close stay responsive while a slow quoter is in flight.
	quote, err := s.cfg.Quoter.Quote(context.Background(), answers)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer close(events)
	if s.closed || s.done {
		return
	}

	if err != nil {
		s.generating = false
		s.cfg.Logger.LogAttrs(context.Background(), slog.LevelWarn, "quote generation failed",
			errors.SlogError(err))
		msg := s.appendMessage(SenderBot, quoteFailedPrompt, retryOptions)
		s.emit(events, Event{Kind: EventQuoteFailed, Message: msg})
		return
	}

	s.quote = &quote
	s.done = true
	msg := s.appendMessage(SenderBot, quoteReadyPrompt, nil)
	s.emit(events, Event{Kind: EventMessage, Message: msg})
	s.emit(events, Event{Kind: EventQuoteReady, Quote: &quote})
}

// completeStage flips a stage's flag. Stages complete strictly in order; the
// flag flips at most once.
func (s *Session) completeStage(i int) {
	if !s.stages[i].Completed {
		s.stages[i].Completed = true
	}
}

func (s *Session) appendMessage(sender Sender, content string, options []string) Message {
	s.nextMessageID++
	msg := Message{
		ID:      s.nextMessageID,
		Content: content,
		Sender:  sender,
		Options: append([]string(nil), options...),
	}
	s.transcript = append(s.transcript, msg)
	return msg
}

func (s *Session) emitBotMessage(events chan Event, content string, options []string) {
	msg := s.appendMessage(SenderBot, content, options)
	s.emit(events, Event{Kind: EventMessage, Message: msg})
}

func (s *Session) emit(events chan Event, ev Event) {
	select {
	case events <- ev:
	default:
		// The buffer is sized for the longest turn; dropping here would be a
		// programming error worth surfacing in logs.
		s.cfg.Logger.Warn("dropped turn event", slog.Int("kind", int(ev.Kind)))
	}
}

// Close cancels outstanding scheduled turns and makes further submissions
// no-ops. A cancelled turn's callback never mutates state.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.scheduler.close()
}

// Transcript returns a copy of the message transcript in order.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	transcript := make([]Message, len(s.transcript))
	copy(transcript, s.transcript)
	return transcript
}

// Stages returns a copy of the five stages with their completion flags.
func (s *Session) Stages() []Stage {
	s.mu.Lock()
	defer s.mu.Unlock()
	stages := make([]Stage, stageCount)
	copy(stages, s.stages[:])
	return stages
}

// CurrentStage returns the cursor over the stages, 0 through 4.
func (s *Session) CurrentStage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentStage
}

// PendingField returns the answer slot the next reply will fill, or
// FieldNone.
func (s *Session) PendingField() Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Answers returns the accumulated answer record.
func (s *Session) Answers() Answers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers
}

// Quote returns the terminal quote once the session is done.
func (s *Session) Quote() (models.Quote, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quote == nil {
		return models.Quote{}, false
	}
	return *s.quote, true
}

// Done reports whether the session reached its terminal state.
func (s *Session) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
