// Package wizard implements the scripted quote conversation: a strictly
// linear five-stage dialogue from an opening greeting to a single displayed
// quote. The conversation is deterministic. The bot asks fixed questions in a
// fixed order, stores the answers, and hands them to a Quoter at the end.
package wizard

import "github.com/smarthealthquote/smarthealthquote/internal/models"

// Sender identifies who produced a transcript message.
type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// Message is one entry in the session transcript. Messages are append-only
// and never mutated after creation.
type Message struct {
	// ID is unique and monotonically increasing within one session.
	ID      int64
	Content string
	Sender  Sender
	// Options are the selectable replies offered with a bot message. Empty
	// means a free-text answer is expected instead.
	Options []string
}

// Stage is one of the five fixed phases of the conversation. Stages complete
// strictly in order and the set of stages never changes after construction.
type Stage struct {
	Name      string
	Completed bool
}

const (
	stageBasicInfo = iota
	stageHealthHistory
	stageLifestyle
	stageCoverageNeeds
	stageQuoteGeneration

	stageCount
)

var stageNames = [stageCount]string{
	"Basic Info",
	"Health History",
	"Lifestyle",
	"Coverage Needs",
	"Quote Generation",
}

// Field names an answer slot. The pending field determines where the next
// user reply is stored.
type Field string

const (
	FieldNone           Field = ""
	FieldAge            Field = "age"
	FieldMedicalHistory Field = "medicalHistory"
	FieldLifestyle      Field = "lifestyle"
	FieldCoverageNeed   Field = "coverageNeed"
)

// Answers is the accumulated user input. Each slot is overwritten with the
// latest reply given while its field was pending.
type Answers struct {
	Age            string
	MedicalHistory string
	Lifestyle      string
	CoverageNeed   string
}

func (a *Answers) set(field Field, value string) {
	switch field {
	case FieldAge:
		a.Age = value
	case FieldMedicalHistory:
		a.MedicalHistory = value
	case FieldLifestyle:
		a.Lifestyle = value
	case FieldCoverageNeed:
		a.CoverageNeed = value
	case FieldNone:
	}
}

// TriggerKind tags the input that drives a turn. Option buttons carry a
// dedicated kind instead of relying on string comparison against the button
// label; free-text turns carry an opaque kind.
type TriggerKind int

const (
	TriggerFreeText TriggerKind = iota
	TriggerBegin
	TriggerTellMeMore
)

// Trigger is the input handed to the turn-advance procedure.
type Trigger struct {
	Kind TriggerKind
	Text string
}

// EventKind classifies turn events delivered to the presentation layer.
type EventKind int

const (
	// EventMessage carries a new bot message.
	EventMessage EventKind = iota
	// EventQuoteReady signals that the terminal quote has been produced and
	// the view should switch to the result.
	EventQuoteReady
	// EventQuoteFailed carries the bot message shown when the quote
	// dependency fails; the session stays open for a retry.
	EventQuoteFailed
)

// Event is one observable outcome of a turn. A turn's events are delivered on
// the channel returned from SubmitFreeText or SelectOption, which is closed
// when the turn completes.
type Event struct {
	Kind    EventKind
	Message Message
	Quote   *models.Quote
}
