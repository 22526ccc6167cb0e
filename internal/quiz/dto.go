package quiz

import (
	"time"

	"github.com/google/uuid"
)

type CreateQuestionDTO struct {
	Prompt       string   `json:"prompt" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2"`
	CorrectIndex int      `json:"correctIndex" validate:"gte=0"`
}

type CreateQuizDTO struct {
	Title           string              `json:"title" validate:"required"`
	Description     string              `json:"description"`
	Kind            QuizKind            `json:"kind" validate:"required"`
	Sector          string              `json:"sector"`
	Positions       []string            `json:"positions"`
	MinScore        int                 `json:"minScore" validate:"gte=0"`
	Recurrence      Recurrence          `json:"recurrence"`
	AssignedUserIDs []uuid.UUID         `json:"assignedUserIds"`
	Questions       []CreateQuestionDTO `json:"questions" validate:"required,min=1,dive"`
}

type SubmitAttemptDTO struct {
	RunID     *uuid.UUID        `json:"runId"`
	StartedAt time.Time         `json:"startedAt"`
	Answers   map[uuid.UUID]int `json:"answers" validate:"required"`
}

type ResultRow struct {
	UserName   string        `json:"userName"`
	QuizTitle  string        `json:"quizTitle"`
	FinishedAt time.Time     `json:"finishedAt"`
	Score      int           `json:"score"`
	MaxScore   int           `json:"maxScore"`
	Status     AttemptStatus `json:"status"`
}

type ResultsView struct {
	Title string      `json:"title"`
	Rows  []ResultRow `json:"rows"`
}
