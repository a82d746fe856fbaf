package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/viralscript-backend/internal/data/repos/submission"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

type Repos struct {
	User         submission.UserRepo
	QuizResult   submission.QuizResultRepo
	CompanyData  submission.CompanyDataRepo
	ScriptResult submission.ScriptResultRepo
	Submission   submission.SubmissionStore
}

// wireRepos returns an empty set when db is nil.
func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	if db == nil {
		log.Warn("No database configured, results will not be persisted")
		return Repos{}
	}
	log.Info("Wiring repos...")
	return Repos{
		User:         submission.NewUserRepo(db, log),
		QuizResult:   submission.NewQuizResultRepo(db, log),
		CompanyData:  submission.NewCompanyDataRepo(db, log),
		ScriptResult: submission.NewScriptResultRepo(db, log),
		Submission:   submission.NewSubmissionStore(db, log),
	}
}
