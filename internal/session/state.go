package session

import "github.com/nao1215/scamcheck/internal/model"

// Kind names a state for serialization.
type Kind string

const (
	KindIdle    Kind = "idle"
	KindLoading Kind = "loading"
	KindResult  Kind = "result"
	KindError   Kind = "error"
)

// State is exactly one of Idle, Loading, Result or Error.
// The interface is sealed; no other package can add states.
type State interface {
	Kind() Kind
	sealed()
}

// Idle means no check is running and nothing is displayed.
type Idle struct{}

// Loading means one classifier request is outstanding.
type Loading struct{}

// Result holds the verdict of the last check.
type Result struct {
	Result *model.AnalysisResult
}

// Error holds the message of the last failed check.
type Error struct {
	Message string
	Err     error
}

func (Idle) Kind() Kind    { return KindIdle }
func (Loading) Kind() Kind { return KindLoading }
func (Result) Kind() Kind  { return KindResult }
func (Error) Kind() Kind   { return KindError }

func (Idle) sealed()    {}
func (Loading) sealed() {}
func (Result) sealed()  {}
func (Error) sealed()   {}

// Transition is sent to subscribers after every state change.
type Transition struct {
	State    State
	Modality model.Modality

	// Generation identifies the submission the state belongs to.
	Generation uint64
}
