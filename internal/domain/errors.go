package domain

import "errors"

var (
	ErrQuestNotActive       = errors.New("quest not active")
	ErrQuestAlreadyActive   = errors.New("quest already active")
	ErrQuestNotStarted      = errors.New("quest was not started")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrTeamNotFound         = errors.New("team not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrBadSubmissionFormat  = errors.New("malformed submission format")
	ErrUnsupportedMedia     = errors.New("unsupported media type")
	ErrWrongTaskKind        = errors.New("wrong task kind for this submission")
)
