package pocket

// RecordingState is the processing stage of a recording.
type RecordingState string

const (
	StatePending             RecordingState = "pending"
	StateTranscribing        RecordingState = "transcribing"
	StateFailed              RecordingState = "failed"
	StateTranscribed         RecordingState = "transcribed"
	StateSummarizing         RecordingState = "summarizing"
	StateSummarizationFailed RecordingState = "summarization_failed"
	StateCompleted           RecordingState = "completed"
	StateUnknown             RecordingState = "unknown"
)

// ParseRecordingState maps a wire value to a state; anything unrecognised is StateUnknown.
func ParseRecordingState(s string) RecordingState {
	switch st := RecordingState(s); st {
	case StatePending, StateTranscribing, StateFailed, StateTranscribed,
		StateSummarizing, StateSummarizationFailed, StateCompleted:
		return st
	default:
		return StateUnknown
	}
}

func (s RecordingState) Label() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateTranscribing:
		return "Transcribing"
	case StateFailed:
		return "Transcription Failed"
	case StateTranscribed:
		return "Transcribed"
	case StateSummarizing:
		return "Summarizing"
	case StateSummarizationFailed:
		return "Summarization Failed"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

func (s RecordingState) Description() string {
	switch s {
	case StatePending:
		return "Recording uploaded, transcription pending"
	case StateTranscribing:
		return "Transcription in progress"
	case StateFailed:
		return "Transcription failed"
	case StateTranscribed:
		return "Transcription complete, summarization pending"
	case StateSummarizing:
		return "Summarization in progress"
	case StateSummarizationFailed:
		return "Summarization failed"
	case StateCompleted:
		return "Fully processed"
	default:
		return "Unknown state"
	}
}

func (s RecordingState) IsProcessing() bool {
	return s == StatePending || s == StateTranscribing || s == StateSummarizing
}

func (s RecordingState) IsFailed() bool {
	return s == StateFailed || s == StateSummarizationFailed
}

func (s RecordingState) IsCompleted() bool { return s == StateCompleted }

// ActionItemStatus tracks progress on an action item.
type ActionItemStatus string

const (
	StatusPending    ActionItemStatus = "pending"
	StatusInProgress ActionItemStatus = "in_progress"
	StatusCompleted  ActionItemStatus = "completed"
)

// ParseActionItemStatus defaults to StatusPending.
func ParseActionItemStatus(s string) ActionItemStatus {
	switch st := ActionItemStatus(s); st {
	case StatusInProgress, StatusCompleted:
		return st
	default:
		return StatusPending
	}
}

// ActionItemPriority ranks an action item.
type ActionItemPriority string

const (
	PriorityLow    ActionItemPriority = "low"
	PriorityMedium ActionItemPriority = "medium"
	PriorityHigh   ActionItemPriority = "high"
	PriorityUrgent ActionItemPriority = "urgent"
)

// ParseActionItemPriority defaults to PriorityMedium.
func ParseActionItemPriority(s string) ActionItemPriority {
	switch p := ActionItemPriority(s); p {
	case PriorityLow, PriorityHigh, PriorityUrgent:
		return p
	default:
		return PriorityMedium
	}
}

func (p ActionItemPriority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return "Medium"
	}
}
