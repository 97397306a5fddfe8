package entities

type AnswerKind string

const (
	// AnswerKindNone means the handler produced nothing to log
	AnswerKindNone AnswerKind = "none"

	// AnswerKindText is a plain reply text
	AnswerKindText AnswerKind = "text"

	// AnswerKindReport is a feed report paired with its success flag
	AnswerKindReport AnswerKind = "report"
)

// Answer is what a handler returns besides the message it sends.
type Answer struct {
	Kind AnswerKind
	Text string
	OK   bool
}

func TextAnswer(text string) Answer {
	return Answer{Kind: AnswerKindText, Text: text}
}

func ReportAnswer(text string, ok bool) Answer {
	return Answer{Kind: AnswerKindReport, Text: text, OK: ok}
}
