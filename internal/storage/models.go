package storage

// QuestionRecord is a row of the questions table.
type QuestionRecord struct {
	ID   int64
	Text string
	Type string // MCQ, YES_NO or IMAGE
}

// ImageQuestionRecord links an IMAGE question.
type ImageQuestionRecord struct {
	ID         int64
	QuestionID int64
}
