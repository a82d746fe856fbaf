package submission

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"

	types "github.com/yungbote/viralscript-backend/internal/domain"
	"github.com/yungbote/viralscript-backend/internal/data/repos/testutil"
	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
	"github.com/yungbote/viralscript-backend/internal/platform/dbctx"
)

func sampleRecord() Record {
	return Record{
		Name:              "Jane",
		CompanyName:       "Acme",
		WebsiteURL:        "https://acme.test",
		Role:              "CMO",
		Answers:           []map[string]any{{"question_id": 1, "answer": "A"}},
		MatchedInfluencer: "MrBeast",
		InfluencerStyle:   "High-energy, bold, challenge-driven",
		Industry:          "Tech",
		Summary:           []string{"Acme builds rockets", "Acme sells launches"},
		Ideas: []IdeaRecord{
			{Title: "One", Concept: "c1", Appeal: "a1", Script: &ScriptRecord{Content: "s1", DeliveryNotes: "d1", EditingNotes: "e1"}},
			{Title: "Two", Concept: "c2", Appeal: "a2", Script: &ScriptRecord{Content: "s2", DeliveryNotes: "d2", EditingNotes: "e2"}},
			{Title: "Three", Concept: "c3", Appeal: "a3"},
		},
	}
}

func TestSubmissionStoreSave(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	store := NewSubmissionStore(tx, testutil.Logger(t))

	saved, err := store.Save(ctx, sampleRecord())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	users := NewUserRepo(tx, testutil.Logger(t))
	u, err := users.GetByID(dbctx.Context{Ctx: ctx}, saved.UserID)
	if err != nil || u == nil {
		t.Fatalf("GetByID: user=%v err=%v", u, err)
	}
	if u.CompanyName != "Acme" || u.Role == nil || *u.Role != "CMO" {
		t.Fatalf("user: got=%+v", u)
	}

	full, err := NewScriptResultRepo(tx, testutil.Logger(t)).GetFull(dbctx.Context{Ctx: ctx}, saved.ScriptResultID)
	if err != nil || full == nil {
		t.Fatalf("GetFull: result=%v err=%v", full, err)
	}
	if len(full.Ideas) != 3 {
		t.Fatalf("ideas: want=3 got=%d", len(full.Ideas))
	}
	for i, want := range []string{"One", "Two", "Three"} {
		if full.Ideas[i].Title != want || full.Ideas[i].Position != i {
			t.Fatalf("idea %d: want=%q got=%+v", i, want, full.Ideas[i])
		}
	}
	if full.Ideas[0].Script == nil || full.Ideas[0].Script.Content != "s1" {
		t.Fatalf("script for idea 0 missing: %+v", full.Ideas[0].Script)
	}
	if full.Ideas[2].Script != nil {
		t.Fatalf("idea without script should have no script row")
	}

	cd, err := NewCompanyDataRepo(tx, testutil.Logger(t)).GetLatestByUser(dbctx.Context{Ctx: ctx}, saved.UserID)
	if err != nil || cd == nil {
		t.Fatalf("GetLatestByUser: %v", err)
	}
	var summary []string
	if err := json.Unmarshal(cd.Summary, &summary); err != nil || len(summary) != 2 {
		t.Fatalf("summary json: got=%s err=%v", cd.Summary, err)
	}

	quiz, err := NewQuizResultRepo(tx, testutil.Logger(t)).ListByUser(dbctx.Context{Ctx: ctx}, saved.UserID)
	if err != nil || len(quiz) != 1 || quiz[0].MatchedInfluencer != "MrBeast" {
		t.Fatalf("quiz results: got=%v err=%v", quiz, err)
	}
}

type failingScriptRepo struct{}

func (failingScriptRepo) CreateMany(dbc dbctx.Context, rows []*types.Script) error {
	return errors.New("disk full")
}

func TestSubmissionStoreRollsBack(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	store := NewSubmissionStore(tx, testutil.Logger(t)).(*submissionStore)
	store.scripts = failingScriptRepo{}

	_, err := store.Save(ctx, sampleRecord())
	var perr *pkgerrors.PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("Save: want PersistenceError got %v", err)
	}
	if perr.Op != "create_scripts" {
		t.Fatalf("op: want=%q got=%q", "create_scripts", perr.Op)
	}

	for name, model := range map[string]interface{}{
		"users":          &types.User{},
		"quiz_results":   &types.QuizResult{},
		"company_data":   &types.CompanyData{},
		"script_results": &types.ScriptResult{},
		"video_ideas":    &types.VideoIdea{},
	} {
		if n := testutil.Count(t, tx, model); n != 0 {
			t.Fatalf("%s: want 0 rows after rollback got %d", name, n)
		}
	}
}

func TestUserRepoGetByID(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	seeded := testutil.SeedUser(t, ctx, tx, "Acme")
	users := NewUserRepo(tx, testutil.Logger(t))

	got, err := users.GetByID(dbctx.Context{Ctx: ctx}, seeded.ID)
	if err != nil || got == nil || got.CompanyName != "Acme" || got.Role != nil {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}
	missing, err := users.GetByID(dbctx.Context{Ctx: ctx}, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID unknown: got=%+v err=%v", missing, err)
	}
}
