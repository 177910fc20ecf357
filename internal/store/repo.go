package store

import (
	"context"
	"time"
)

// now is the clock used for event timestamps.
var now = func() time.Time { return time.Now().UTC() }

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Quiz session actions.
const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
)

// Session summary statuses.
const (
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

// QuizSessionEventData captures one quiz session lifecycle event.
type QuizSessionEventData struct {
	SessionID     string
	Action        string // start, complete, abandon
	QuestionCount int
	Score         int
	DurationMs    int64
}

// QuizAnswerEventData captures one finalized quiz answer.
type QuizAnswerEventData struct {
	SessionID      string
	QuestionIndex  int
	Prompt         string
	SelectedOption int
	CorrectOption  int
	Correct        bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// SessionSummaryRecord folds the lifecycle events of one quiz session.
type SessionSummaryRecord struct {
	SessionID     string
	StartedAt     time.Time
	EndedAt       time.Time // zero while in progress
	Status        string
	QuestionCount int
	Score         int
	DurationMs    int64
}

// AnswerRecord is a stored quiz answer.
type AnswerRecord struct {
	Sequence       int64
	Timestamp      time.Time
	SessionID      string
	QuestionIndex  int
	Prompt         string
	SelectedOption int
	CorrectOption  int
	Correct        bool
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMUsageStat aggregates LLM calls for one purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendQuizSession(ctx context.Context, data QuizSessionEventData) error
	AppendQuizAnswer(ctx context.Context, data QuizAnswerEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QuerySessionSummaries returns sessions newest first. Limit applies
	// to sessions, not events.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// QueryAnswers returns the answers of one session in question order.
	QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single LLM event, or nil if id is unknown.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)
}

// QuizProgress is the quiz part of the learner snapshot.
type QuizProgress struct {
	Attempts        int       `json:"attempts"`
	Completed       int       `json:"completed"`
	BestScore       int       `json:"best_score"`
	LastScore       int       `json:"last_score"`
	QuestionCount   int       `json:"question_count"`
	LastCompletedAt time.Time `json:"last_completed_at,omitempty"`
}

// Record folds one finished session into the progress.
func (p *QuizProgress) Record(score, questionCount int, at time.Time) {
	p.Completed++
	p.LastScore = score
	p.QuestionCount = questionCount
	p.LastCompletedAt = at
	if score > p.BestScore {
		p.BestScore = score
	}
}

// SnapshotData captures the full learner state at a point in time.
type SnapshotData struct {
	Version int           `json:"version"`
	Quiz    *QuizProgress `json:"quiz,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}
