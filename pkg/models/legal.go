package models

// Article is a single provision of a statute.
type Article struct {
	ID            int64  `json:"id,omitempty"`
	Title         string `json:"title"`
	ArticleNumber string `json:"articleNumber,omitempty"`
	Content       string `json:"content"`
	LawType       string `json:"lawType,omitempty"`
	Chapter       string `json:"chapter,omitempty"`
	Keywords      string `json:"keywords,omitempty"`
	CreateTime    string `json:"createTime,omitempty"`
}

// Case is a judged legal case.
type Case struct {
	ID             int64  `json:"id,omitempty"`
	Title          string `json:"title"`
	CaseType       string `json:"caseType,omitempty"`
	Content        string `json:"content,omitempty"`
	CourtName      string `json:"courtName,omitempty"`
	JudgeDate      string `json:"judgeDate,omitempty"`
	DisputePoint   string `json:"disputePoint,omitempty"`
	JudgmentResult string `json:"judgmentResult,omitempty"`
	LawType        string `json:"lawType,omitempty"`
	CreateTime     string `json:"createTime,omitempty"`
}

// Concept is a defined legal term.
type Concept struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Definition  string `json:"definition"`
	Category    string `json:"category,omitempty"`
	RelatedLaws string `json:"relatedLaws,omitempty"`
	Examples    string `json:"examples,omitempty"`
}

// Knowledge is a curated question/answer pair used to ground answers.
type Knowledge struct {
	ID       int64   `json:"id,omitempty"`
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Category string  `json:"category,omitempty"`
	Keywords string  `json:"keywords,omitempty"`
	Score    float64 `json:"score,omitempty"`
}
