package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/viralscript-backend/internal/data/repos/submission"
	"github.com/yungbote/viralscript-backend/internal/data/repos/testutil"
	"github.com/yungbote/viralscript-backend/internal/modules/persona"
	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

func TestResultServiceGet(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	saved, err := submission.NewSubmissionStore(tx, log).Save(ctx, submission.Record{
		Name:              "Jane",
		CompanyName:       "Acme",
		WebsiteURL:        "https://acme.test",
		Role:              "CMO",
		Answers:           []persona.Answer{{QuestionID: 1, Answer: "A"}},
		MatchedInfluencer: "MrBeast",
		Industry:          "Tech",
		Summary:           []string{"Acme builds rockets", "Acme sells launches"},
		Ideas: []submission.IdeaRecord{
			{Title: "One", Concept: "c1", Appeal: "a1", Script: &submission.ScriptRecord{Content: "s1"}},
		},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	catalog, err := persona.LoadCatalog(logger.Nop())
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	rs := NewResultService(log, ResultRepos{
		Results:     submission.NewScriptResultRepo(tx, log),
		Users:       submission.NewUserRepo(tx, log),
		QuizResults: submission.NewQuizResultRepo(tx, log),
		CompanyData: submission.NewCompanyDataRepo(tx, log),
	}, catalog)

	got, err := rs.Get(ctx, saved.ScriptResultID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Result.Influencer != "MrBeast" || len(got.Result.Ideas) != 1 || got.Result.Ideas[0].Script == nil {
		t.Fatalf("result: got=%+v", got.Result)
	}
	if got.User == nil || got.User.CompanyName != "Acme" || got.User.Role == nil || *got.User.Role != "CMO" {
		t.Fatalf("user: got=%+v", got.User)
	}
	if got.Quiz == nil || got.Quiz.MatchedInfluencer != "MrBeast" || len(got.Quiz.Answers) == 0 {
		t.Fatalf("quiz: got=%+v", got.Quiz)
	}
	if want := []string{"Acme builds rockets", "Acme sells launches"}; !reflect.DeepEqual(got.CompanySummary, want) {
		t.Fatalf("summary: want=%q got=%q", want, got.CompanySummary)
	}
	if got.Persona == nil || got.Persona.Name != "MrBeast" || got.Persona.Description == "" {
		t.Fatalf("persona: got=%+v", got.Persona)
	}

	if _, err := rs.Get(ctx, uuid.New()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("Get unknown: want not found got %v", err)
	}
	if _, err := rs.Get(ctx, uuid.Nil); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("Get nil id: want invalid argument got %v", err)
	}
}

func TestResultServiceGetResultOnly(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	log := testutil.Logger(t)

	saved, err := submission.NewSubmissionStore(tx, log).Save(ctx, submission.Record{
		Name:              "Jane",
		CompanyName:       "Acme",
		WebsiteURL:        "https://acme.test",
		MatchedInfluencer: "Nobody On The Roster",
		Industry:          "Tech",
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	rs := NewResultService(log, ResultRepos{Results: submission.NewScriptResultRepo(tx, log)}, nil)
	got, err := rs.Get(ctx, saved.ScriptResultID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.User != nil || got.Quiz != nil || got.Persona != nil || len(got.CompanySummary) != 0 {
		t.Fatalf("Get: want bare result got=%+v", got)
	}
}
