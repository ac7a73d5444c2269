package question

import (
	"encoding/json"
	"fmt"
)

// Wire types mirror the question service's payload shape. Field names
// follow the service's `_id` convention; everything else in the app uses
// the normalized Question model.

// WireOption is one answer choice as sent by the service. Text arrives as
// either a string or a bare number, so it is decoded loosely.
type WireOption struct {
	ID        string          `json:"_id"`
	Text      json.RawMessage `json:"text"`
	IsCorrect bool            `json:"isCorrect"`
}

// WireJourneyItem is a journey entry as sent by the service.
type WireJourneyItem struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Note        string `json:"note"`
	IsCompleted bool   `json:"isCompleted"`
}

// WireProgress is the journey block as sent by the service.
type WireProgress struct {
	JourneyItems []WireJourneyItem `json:"journeyItems"`
}

// WireQuestion is the raw next-question payload.
type WireQuestion struct {
	ID             string        `json:"_id"`
	QuestionNumber int           `json:"questionNumber"`
	Text           string        `json:"text"`
	Options        []WireOption  `json:"options"`
	SubjectID      string        `json:"subjectId"`
	ChapterID      string        `json:"chapterId"`
	TopicID        string        `json:"topicId"`
	Difficulty     string        `json:"difficulty"`
	Source         string        `json:"source"`
	Concept        string        `json:"concept"`
	AINote         string        `json:"aiNote"`
	Progress       *WireProgress `json:"progress"`
	JourneyItemID  string        `json:"journeyItemId"`
	CanBeCompleted bool          `json:"canBeCompleted"`
}

// Normalize converts a wire payload into a validated Question. The correct
// answer index is derived here, at the boundary, so a payload with zero or
// multiple correct options is rejected as *MalformedError instead of
// producing a silently wrong index.
func Normalize(w *WireQuestion) (*Question, error) {
	if w == nil {
		return nil, &MalformedError{Reason: "empty payload"}
	}

	q := &Question{
		ID:             w.ID,
		Number:         w.QuestionNumber,
		Text:           w.Text,
		SubjectID:      w.SubjectID,
		ChapterID:      w.ChapterID,
		TopicID:        w.TopicID,
		Difficulty:     Difficulty(w.Difficulty),
		Source:         w.Source,
		Concept:        w.Concept,
		AINote:         w.AINote,
		JourneyItemID:  w.JourneyItemID,
		CanBeCompleted: w.CanBeCompleted,
	}

	q.CorrectIndex = -1
	for i, o := range w.Options {
		text, err := decodeOptionText(o.Text)
		if err != nil {
			return nil, &MalformedError{QuestionID: w.ID, Reason: fmt.Sprintf("option %d: %v", i, err)}
		}
		q.Options = append(q.Options, Option{ID: o.ID, Text: text, Correct: o.IsCorrect})
		if o.IsCorrect && q.CorrectIndex == -1 {
			q.CorrectIndex = i
		}
	}

	if w.Progress != nil {
		p := &Progress{}
		for _, item := range w.Progress.JourneyItems {
			p.JourneyItems = append(p.JourneyItems, JourneyItem{
				ID:        item.ID,
				Title:     item.Title,
				Note:      item.Note,
				Completed: item.IsCompleted,
			})
		}
		q.Progress = p
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// decodeOptionText accepts a JSON string or number for an option's text.
func decodeOptionText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("missing text")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}

	return "", fmt.Errorf("text is neither string nor number")
}
