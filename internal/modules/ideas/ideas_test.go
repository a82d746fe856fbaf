package ideas

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
	"github.com/yungbote/viralscript-backend/internal/platform/llm"
	"github.com/yungbote/viralscript-backend/internal/platform/logger"
)

func staticLLM(out string, err error) llm.Client {
	return llm.ClientFunc(func(ctx context.Context, prompt string, opts llm.Options) (string, error) {
		return out, err
	})
}

var req = Request{
	PersonaStyle:   "MrBeast (High-energy, bold, challenge-driven)",
	Industry:       "SaaS",
	CompanySummary: []string{"Acme builds rockets"},
	Count:          3,
}

func TestParseIdeasRoundTrip(t *testing.T) {
	text := `**Title:** The 24 Hour Build
**Concept:** We ship a feature in one day
**Appeal:** Deadlines are dramatic
---
**Title:** "Inside the Lab"
**Concept:** A tour of the R&D floor
**Appeal:** **Curiosity** drives clicks
---
**Title:** Customer Takeover
**Concept:** A customer runs the company for a day
**Appeal:** Real people, real stakes`

	got := ParseIdeas(text)
	want := []Idea{
		{Title: "The 24 Hour Build", Concept: "We ship a feature in one day", Appeal: "Deadlines are dramatic"},
		{Title: "Inside the Lab", Concept: "A tour of the R&D floor", Appeal: "Curiosity drives clicks"},
		{Title: "Customer Takeover", Concept: "A customer runs the company for a day", Appeal: "Real people, real stakes"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseIdeas: want=%+v got=%+v", want, got)
	}
}

func TestParseIdeasDropsPartialRecords(t *testing.T) {
	text := `SET START
**Title:** Complete
**Concept:** Has everything
**Appeal:** Yes
SET END
SET START
**Title:** Missing appeal
**Concept:** Nope
SET END
SET START
**Concept:** No title
**Appeal:** Nope
SET END`

	got := ParseIdeas(text)
	if len(got) != 1 || got[0].Title != "Complete" {
		t.Fatalf("ParseIdeas: want one complete record got %+v", got)
	}
	for _, idea := range got {
		if idea.Title == "" || idea.Concept == "" || idea.Appeal == "" {
			t.Fatalf("ParseIdeas returned incomplete idea %+v", idea)
		}
	}
}

func TestParseIdeasVariants(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{name: "plain labels no separator", text: "Title: A\nConcept: B\nAppeal: C\nTitle: D\nConcept: E\nAppeal: F", want: 2},
		{name: "bold colon outside", text: "**Title**: A\n**Concept**: B\n**Appeal**: C", want: 1},
		{name: "numbered set markers", text: "### SET 1 START\nTitle: A\nConcept: B\nAppeal: C\n### SET 1 END", want: 1},
		{name: "json array", text: "Here you go:\n[{\"title\":\"A\",\"concept\":\"B\",\"appeal\":\"C\"},{\"title\":\"D\",\"description\":\"E\",\"appeal\":\"F\"},{\"title\":\"G\"}]", want: 2},
		{name: "numbered bold labels", text: "1. **Title:** A\n**Concept:** B\n**Appeal:** C\n\n2) **Title:** D\n**Concept:** E\n**Appeal:** F", want: 2},
		{name: "parenthetical label", text: "**Title (working):** A\n**Concept:** B\n**Appeal (why it works):** C", want: 1},
		{name: "prose only", text: "I could not think of anything.", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseIdeas(tc.text); len(got) != tc.want {
				t.Fatalf("ParseIdeas: want=%d got=%d (%+v)", tc.want, len(got), got)
			}
		})
	}
}

func TestParseScriptHeaded(t *testing.T) {
	text := `**Script:**
Hey everyone!
We're building a rocket.

**Delivery Notes:** Loud and fast.
**Editing Notes:**
Jump cuts every two seconds.`

	got := ParseScript(text)
	if got.Content != "Hey everyone!\nWe're building a rocket." {
		t.Fatalf("content: got=%q", got.Content)
	}
	if got.DeliveryNotes != "Loud and fast." {
		t.Fatalf("delivery: got=%q", got.DeliveryNotes)
	}
	if got.EditingNotes != "Jump cuts every two seconds." {
		t.Fatalf("editing: got=%q", got.EditingNotes)
	}
}

func TestParseScriptParagraphFallback(t *testing.T) {
	text := `Quick intro.

This is the main body of the script and it is clearly the longest paragraph in the whole response.

Keep the energy up and your tone playful.

Add upbeat music and a zoom on the logo.

Thanks for watching.`

	got := ParseScript(text)
	wantContent := "Quick intro.\n\nThis is the main body of the script and it is clearly the longest paragraph in the whole response.\n\nThanks for watching."
	if got.Content != wantContent {
		t.Fatalf("content: want=%q got=%q", wantContent, got.Content)
	}
	if got.DeliveryNotes != "Keep the energy up and your tone playful." {
		t.Fatalf("delivery: got=%q", got.DeliveryNotes)
	}
	if got.EditingNotes != "Add upbeat music and a zoom on the logo." {
		t.Fatalf("editing: got=%q", got.EditingNotes)
	}
}

func TestGenerateScriptHeaderlessUsesDefaultNotes(t *testing.T) {
	g := New(logger.Nop(), staticLLM("Just one block of words with no headers at all.", nil), Config{})
	idea := Idea{Title: "T", Concept: "C", Appeal: "A"}

	got := g.GenerateScript(context.Background(), idea, "style", nil)
	if got.DeliveryNotes != DefaultDeliveryNotes {
		t.Fatalf("delivery: want=%q got=%q", DefaultDeliveryNotes, got.DeliveryNotes)
	}
	if got.EditingNotes != DefaultEditingNotes {
		t.Fatalf("editing: want=%q got=%q", DefaultEditingNotes, got.EditingNotes)
	}
	if got.Title != "T" || got.Content == "" {
		t.Fatalf("script: got=%+v", got)
	}
}

func TestGenerateScriptFailureYieldsMock(t *testing.T) {
	g := New(logger.Nop(), staticLLM("", &pkgerrors.GenerationError{Op: "video_script", Status: 503, Err: errors.New("down")}), Config{})
	idea := Idea{Title: "Rocket Day", Concept: "C", Appeal: "A"}
	got := g.GenerateScript(context.Background(), idea, "style", nil)
	if !reflect.DeepEqual(got, MockScript(idea)) {
		t.Fatalf("GenerateScript: want mock got=%+v", got)
	}
	if !strings.Contains(got.Content, "Rocket Day") {
		t.Fatalf("mock content should mention the title: %q", got.Content)
	}
}

func TestGenerateIdeasPolicy(t *testing.T) {
	one := "**Title:** Only\n**Concept:** One idea\n**Appeal:** Still good"
	five := strings.Repeat("**Title:** X\n**Concept:** Y\n**Appeal:** Z\n---\n", 5)

	cases := []struct {
		name   string
		client llm.Client
		count  int
		want   []string
	}{
		{name: "not configured", client: nil, count: 5, want: []string{"The SaaS Challenge", "Secret Sauce Revealed", "Tech Transformation"}},
		{name: "backend error", client: staticLLM("", errors.New("boom")), count: 5, want: []string{"The SaaS Challenge", "Secret Sauce Revealed", "Tech Transformation"}},
		{name: "unparsable", client: staticLLM("nothing useful", nil), count: 5, want: []string{"The SaaS Challenge", "Secret Sauce Revealed", "Tech Transformation"}},
		{name: "pads to three", client: staticLLM(one, nil), count: 5, want: []string{"Only", "Secret Sauce Revealed", "Tech Transformation"}},
		{name: "caps at count", client: staticLLM(five, nil), count: 4, want: []string{"X", "X", "X", "X"}},
		{name: "small count", client: staticLLM("", errors.New("boom")), count: 2, want: []string{"The SaaS Challenge", "Secret Sauce Revealed"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := New(logger.Nop(), tc.client, Config{})
			r := req
			r.Count = tc.count
			got := g.GenerateIdeas(context.Background(), r)
			titles := make([]string, 0, len(got))
			for _, idea := range got {
				titles = append(titles, idea.Title)
			}
			if !reflect.DeepEqual(titles, tc.want) {
				t.Fatalf("titles: want=%q got=%q", tc.want, titles)
			}
		})
	}
}

func TestGenerateAll(t *testing.T) {
	text := `SET START
**Title:** Launch Day
**Concept:** We launch live
**Appeal:** Suspense
**Script:**
Three, two, one...
We have liftoff!
**Delivery Notes:** Whisper the countdown.
**Editing Notes:** Slow motion on ignition.
SET END
SET START
**Title:** No Script
**Concept:** Idea without a script
**Appeal:** Still valid
SET END
SET START
**Title:** Broken
SET END
SET START
**Title:** Overflow
**Concept:** Beyond the count
**Appeal:** Dropped
SET END`

	var opts llm.Options
	client := llm.ClientFunc(func(ctx context.Context, prompt string, o llm.Options) (string, error) {
		opts = o
		return text, nil
	})
	g := New(logger.Nop(), client, Config{BatchMaxTokens: 1234})
	r := req
	r.Count = 2

	gotIdeas, gotScripts := g.GenerateAll(context.Background(), r)
	if len(gotIdeas) != 2 || len(gotScripts) != 2 {
		t.Fatalf("GenerateAll: want 2 sets got ideas=%d scripts=%d", len(gotIdeas), len(gotScripts))
	}
	if opts.MaxTokens != 1234 || opts.Temperature != 0.8 {
		t.Fatalf("options: got=%+v", opts)
	}
	first := gotScripts[0]
	if first.Content != "Three, two, one...\nWe have liftoff!" {
		t.Fatalf("script content: got=%q", first.Content)
	}
	if first.DeliveryNotes != "Whisper the countdown." || first.EditingNotes != "Slow motion on ignition." {
		t.Fatalf("notes: got=%+v", first)
	}
	second := gotScripts[1]
	if !strings.Contains(second.Content, "No Script") || second.DeliveryNotes != DefaultDeliveryNotes {
		t.Fatalf("missing script should be mocked: got=%+v", second)
	}
}

func TestParseSetsKeepsSpokenLabelsInScript(t *testing.T) {
	text := `SET START
**Title:** Name Game
**Concept:** Guess the product name
**Appeal:** Interactive
**Script (30 seconds):**
Hook line
Title: not a title, spoken
Concept: also spoken
Closing line
**Delivery Notes:** Deadpan.
**Editing Notes:** Quick cuts.
SET END
SET START
**Title:** Second
**Concept:** Another one
**Appeal:** Variety
SET END`

	got := parseSets(text)
	if len(got) != 2 {
		t.Fatalf("parseSets: want 2 sets got %d (%+v)", len(got), got)
	}
	first := got[0]
	if first.Idea.Title != "Name Game" || first.Idea.Concept != "Guess the product name" {
		t.Fatalf("idea: got=%+v", first.Idea)
	}
	want := "Hook line\nTitle: not a title, spoken\nConcept: also spoken\nClosing line"
	if first.Script.Content != want {
		t.Fatalf("script content: want=%q got=%q", want, first.Script.Content)
	}
	if first.Script.DeliveryNotes != "Deadpan." || first.Script.EditingNotes != "Quick cuts." {
		t.Fatalf("notes: got=%+v", first.Script)
	}
	if got[1].Idea.Title != "Second" {
		t.Fatalf("second set: got=%+v", got[1].Idea)
	}
}

func TestParseScriptDecoratedHeader(t *testing.T) {
	got := ParseScript("**Script (0:30):**\nHello there\n**Delivery Notes:** Smile.\n**Editing Notes:** Jump cut.")
	if got.Content != "Hello there" || got.DeliveryNotes != "Smile." || got.EditingNotes != "Jump cut." {
		t.Fatalf("ParseScript: got=%+v", got)
	}
}

func TestGenerateAllFailureIsEmpty(t *testing.T) {
	for name, client := range map[string]llm.Client{
		"not configured": nil,
		"error":          staticLLM("", errors.New("boom")),
		"unparsable":     staticLLM("hello", nil),
	} {
		t.Run(name, func(t *testing.T) {
			g := New(logger.Nop(), client, Config{})
			ideas, scripts := g.GenerateAll(context.Background(), req)
			if len(ideas) != 0 || len(scripts) != 0 {
				t.Fatalf("GenerateAll: want empty got ideas=%d scripts=%d", len(ideas), len(scripts))
			}
		})
	}
}

func TestGenerateScriptsFanOut(t *testing.T) {
	var inflight, peak int32
	var mu sync.Mutex
	seen := map[string]bool{}
	client := llm.ClientFunc(func(ctx context.Context, prompt string, opts llm.Options) (string, error) {
		n := atomic.AddInt32(&inflight, 1)
		defer atomic.AddInt32(&inflight, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		mu.Lock()
		seen[prompt] = true
		mu.Unlock()
		title := strings.Split(strings.SplitN(prompt, "Title: ", 2)[1], "\n")[0]
		return "**Script:** Script for " + title + "\n**Delivery Notes:** calm", nil
	})
	g := New(logger.Nop(), client, Config{Concurrency: 2})
	ideas := []Idea{
		{Title: "One", Concept: "c", Appeal: "a"},
		{Title: "Two", Concept: "c", Appeal: "a"},
		{Title: "Three", Concept: "c", Appeal: "a"},
		{Title: "Four", Concept: "c", Appeal: "a"},
	}

	got := g.GenerateScripts(context.Background(), ideas, "style", []string{"s"})
	if len(got) != len(ideas) {
		t.Fatalf("GenerateScripts: want=%d got=%d", len(ideas), len(got))
	}
	for i, s := range got {
		if s.Title != ideas[i].Title || s.Content != "Script for "+ideas[i].Title {
			t.Fatalf("script %d not aligned: got=%+v", i, s)
		}
		if s.EditingNotes != DefaultEditingNotes {
			t.Fatalf("script %d editing notes: got=%q", i, s.EditingNotes)
		}
	}
	if peak > 2 {
		t.Fatalf("concurrency limit: want<=2 got=%d", peak)
	}
	if len(seen) != 4 {
		t.Fatalf("distinct prompts: want=4 got=%d", len(seen))
	}
}
