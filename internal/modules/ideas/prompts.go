package ideas

import (
	"fmt"
	"strings"
)

func companyBlock(summary []string) string {
	if len(summary) == 0 {
		return "(no company information available)"
	}
	var b strings.Builder
	for _, line := range summary {
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func ideasPrompt(req Request, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a short-form video strategist writing in the style of %s.\n", req.PersonaStyle)
	fmt.Fprintf(&b, "Generate %d unique viral video ideas for a %s company.\n\n", count, req.Industry)
	b.WriteString("COMPANY INFORMATION:\n")
	b.WriteString(companyBlock(req.CompanySummary))
	b.WriteString("\n\n")
	b.WriteString("For each idea write exactly three labeled lines:\n")
	b.WriteString("**Title:** a catchy video title\n")
	b.WriteString("**Concept:** one or two sentences describing the video\n")
	b.WriteString("**Appeal:** why it will resonate with the target audience\n\n")
	b.WriteString("Separate ideas with a line containing only ---\n")
	b.WriteString("Do not number the ideas and do not add any other text.\n")
	return b.String()
}

func scriptPrompt(idea Idea, personaStyle string, summary []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "As a content creator with the style of %s, write a short-form video script for this idea.\n\n", personaStyle)
	fmt.Fprintf(&b, "Title: %s\n", idea.Title)
	fmt.Fprintf(&b, "Concept: %s\n", idea.Concept)
	fmt.Fprintf(&b, "Target Appeal: %s\n\n", idea.Appeal)
	b.WriteString("COMPANY INFORMATION:\n")
	b.WriteString(companyBlock(summary))
	b.WriteString("\n\n")
	b.WriteString("The script covers an opening hook, the main content and a call to action.\n")
	fmt.Fprintf(&b, "Keep the tone of %s throughout, including signature phrases.\n\n", personaStyle)
	b.WriteString("Use exactly these three sections:\n")
	b.WriteString("**Script:** the words spoken on camera\n")
	b.WriteString("**Delivery Notes:** how to perform it (energy, tone, pacing)\n")
	b.WriteString("**Editing Notes:** cuts, visuals, music and b-roll\n")
	return b.String()
}

func batchPrompt(req Request, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a short-form video strategist writing in the style of %s.\n", req.PersonaStyle)
	fmt.Fprintf(&b, "Create %d complete video sets for a %s company. Each set is one idea plus its full script.\n\n", count, req.Industry)
	b.WriteString("COMPANY INFORMATION:\n")
	b.WriteString(companyBlock(req.CompanySummary))
	b.WriteString("\n\n")
	b.WriteString("Format every set exactly like this:\n")
	b.WriteString("SET START\n")
	b.WriteString("**Title:** a catchy video title\n")
	b.WriteString("**Concept:** one or two sentences describing the video\n")
	b.WriteString("**Appeal:** why it will resonate with the target audience\n")
	b.WriteString("**Script:** the words spoken on camera, hook first, ending with a call to action\n")
	b.WriteString("**Delivery Notes:** energy, tone and pacing\n")
	b.WriteString("**Editing Notes:** cuts, visuals, music and b-roll\n")
	b.WriteString("SET END\n\n")
	b.WriteString("Do not add any text outside the sets.\n")
	return b.String()
}
