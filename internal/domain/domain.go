package domain

import (
	"github.com/yungbote/viralscript-backend/internal/domain/submission"
)

type User = submission.User
type QuizResult = submission.QuizResult
type CompanyData = submission.CompanyData
type ScriptResult = submission.ScriptResult
type VideoIdea = submission.VideoIdea
type Script = submission.Script

// Models lists every persisted model in migration order.
func Models() []interface{} {
	return []interface{}{
		&User{},
		&QuizResult{},
		&CompanyData{},
		&ScriptResult{},
		&VideoIdea{},
		&Script{},
	}
}
