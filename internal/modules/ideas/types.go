package ideas

import "fmt"

const (
	DefaultCount = 5
	MinIdeas     = 3

	DefaultDeliveryNotes = "High energy throughout. Use dramatic pauses for emphasis. Maintain eye contact with camera."
	DefaultEditingNotes  = "Fast cuts between scenes. Add suspenseful music. Use zoom effects for emphasis. Include b-roll of product demos."
)

// Idea is one short-form video concept. All three fields are required.
type Idea struct {
	Title   string `json:"title"`
	Concept string `json:"concept"`
	Appeal  string `json:"appeal"`
}

func (i Idea) valid() bool {
	return i.Title != "" && i.Concept != "" && i.Appeal != ""
}

// Script is the single canonical script shape. Notes are always populated.
type Script struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	DeliveryNotes string `json:"delivery_notes"`
	EditingNotes  string `json:"editing_notes"`
}

type Request struct {
	PersonaStyle   string
	Industry       string
	CompanySummary []string
	Count          int
}

func (r Request) count() int {
	if r.Count <= 0 {
		return DefaultCount
	}
	return r.Count
}

// MockIdeas are served when the backend is unavailable or unusable.
func MockIdeas(industry string) []Idea {
	if industry == "" {
		industry = "Tech"
	}
	return []Idea{
		{
			Title:   fmt.Sprintf("The %s Challenge", industry),
			Concept: "A high-stakes competition where companies compete to solve a real-world problem in 24 hours",
			Appeal:  "Combines entertainment with valuable industry insights",
		},
		{
			Title:   "Secret Sauce Revealed",
			Concept: fmt.Sprintf("Behind-the-scenes look at how successful %s companies operate", industry),
			Appeal:  "Provides actionable insights while maintaining viewer interest",
		},
		{
			Title:   "Tech Transformation",
			Concept: "Dramatic before-and-after reveal of a company's digital transformation",
			Appeal:  "Visual storytelling with clear value proposition",
		},
	}
}

func MockScript(idea Idea) Script {
	return Script{
		Title:         idea.Title,
		Content:       mockContent(idea.Title),
		DeliveryNotes: DefaultDeliveryNotes,
		EditingNotes:  DefaultEditingNotes,
	}
}

func mockContent(title string) string {
	return fmt.Sprintf("Hey guys! Today we're doing something INSANE with %s! [Dramatic pause] We're going to show you exactly how this works, and trust me, you won't believe the results!", title)
}

func withDefaultNotes(s Script) Script {
	if s.DeliveryNotes == "" {
		s.DeliveryNotes = DefaultDeliveryNotes
	}
	if s.EditingNotes == "" {
		s.EditingNotes = DefaultEditingNotes
	}
	return s
}
