package ideas

import (
	"encoding/json"
	"regexp"
	"strings"
)

type field int

const (
	fieldNone field = iota
	fieldTitle
	fieldConcept
	fieldAppeal
	fieldScript
	fieldDelivery
	fieldEditing
)

var labels = map[string]field{
	"title":          fieldTitle,
	"concept":        fieldConcept,
	"appeal":         fieldAppeal,
	"script":         fieldScript,
	"content":        fieldScript,
	"delivery notes": fieldDelivery,
	"delivery note":  fieldDelivery,
	"editing notes":  fieldEditing,
	"editing note":   fieldEditing,
}

// record is one delimited block of labeled fields.
type record struct {
	title, concept, appeal string
	script                 []string
	delivery, editing      []string
}

func (r *record) idea() Idea {
	return Idea{Title: r.title, Concept: r.concept, Appeal: r.appeal}
}

func (r *record) empty() bool {
	return r.title == "" && r.concept == "" && r.appeal == "" &&
		len(r.script) == 0 && len(r.delivery) == 0 && len(r.editing) == 0
}

// set is an idea with its script, as produced by the batch prompt.
type set struct {
	Idea   Idea
	Script Script
}

// ParseIdeas recovers ideas from labeled records. Records missing any of
// title, concept or appeal are dropped. When no labeled record survives the
// output is tried as a JSON array.
func ParseIdeas(text string) []Idea {
	var out []Idea
	for _, r := range splitRecords(text) {
		if idea := r.idea(); idea.valid() {
			out = append(out, idea)
		}
	}
	if len(out) == 0 {
		out = parseJSONIdeas(text)
	}
	return out
}

// parseSets recovers idea+script pairs from batch output. A set needs a
// valid idea; missing script content is filled with the mock content.
func parseSets(text string) []set {
	var out []set
	for _, r := range splitRecords(text) {
		idea := r.idea()
		if !idea.valid() {
			continue
		}
		content := strings.TrimSpace(strings.Join(r.script, "\n"))
		if content == "" {
			content = mockContent(idea.Title)
		}
		out = append(out, set{
			Idea: idea,
			Script: withDefaultNotes(Script{
				Title:         idea.Title,
				Content:       content,
				DeliveryNotes: strings.TrimSpace(strings.Join(r.delivery, "\n")),
				EditingNotes:  strings.TrimSpace(strings.Join(r.editing, "\n")),
			}),
		})
	}
	return out
}

// splitRecords walks the output line by line. "---" lines and SET START /
// SET END markers close the current record; a second Title inside one record
// also starts a new one. Inside a script body only decorated idea labels
// ("**Title:**") count, so spoken "Title: ..." lines stay in the script.
func splitRecords(text string) []*record {
	var out []*record
	cur := &record{}
	var active field

	flush := func() {
		if !cur.empty() {
			out = append(out, cur)
		}
		cur = &record{}
		active = fieldNone
	}

	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if isDelimiter(line) {
			flush()
			continue
		}
		if f, value, ok := labelLine(line); ok && !spokenLabel(active, f, line) {
			if f == fieldTitle && cur.title != "" {
				flush()
			}
			active = f
			cur.set(f, value)
			continue
		}
		if line == "" && active != fieldScript {
			active = fieldNone
		}
		if active == fieldNone {
			continue
		}
		cur.extend(active, raw)
	}
	flush()
	return out
}

func (r *record) set(f field, value string) {
	switch f {
	case fieldTitle:
		r.title = cleanValue(value)
	case fieldConcept:
		r.concept = cleanValue(value)
	case fieldAppeal:
		r.appeal = cleanValue(value)
	case fieldScript:
		r.script = appendNonEmpty(r.script, value)
	case fieldDelivery:
		r.delivery = appendNonEmpty(r.delivery, value)
	case fieldEditing:
		r.editing = appendNonEmpty(r.editing, value)
	}
}

// extend handles continuation lines. Idea fields are single paragraphs;
// script fields keep their line structure.
func (r *record) extend(f field, raw string) {
	line := strings.TrimSpace(raw)
	switch f {
	case fieldTitle:
		r.title = joinSpace(r.title, cleanValue(line))
	case fieldConcept:
		r.concept = joinSpace(r.concept, cleanValue(line))
	case fieldAppeal:
		r.appeal = joinSpace(r.appeal, cleanValue(line))
	case fieldScript:
		r.script = append(r.script, line)
	case fieldDelivery:
		r.delivery = appendNonEmpty(r.delivery, line)
	case fieldEditing:
		r.editing = appendNonEmpty(r.editing, line)
	}
}

// spokenLabel reports whether an undecorated idea label appears inside a
// script body, where it is more likely dialogue than structure.
func spokenLabel(active, f field, line string) bool {
	if active != fieldScript {
		return false
	}
	if f != fieldTitle && f != fieldConcept && f != fieldAppeal {
		return false
	}
	s := listNumber.ReplaceAllString(line, "")
	return !strings.HasPrefix(s, "*") && !strings.HasPrefix(s, "_") && !strings.HasPrefix(s, "#")
}

func isDelimiter(line string) bool {
	if len(line) >= 3 && strings.Trim(line, "-") == "" {
		return true
	}
	return setMarker.MatchString(strings.TrimSpace(strings.Trim(line, "*#_=[]` ")))
}

// labelLine matches "**Title:** value", "Title: value", "**Title**: value",
// "1. **Title:** value", "**Script (30 seconds):**" and "## Delivery Notes"
// style headers.
func labelLine(line string) (field, string, bool) {
	s := strings.TrimLeft(listNumber.ReplaceAllString(line, ""), "*_#>`- \t")
	if s == "" {
		return fieldNone, "", false
	}
	head, rest, hasColon := cutLabel(s)
	key := strings.ToLower(strings.TrimSpace(strings.Trim(head, "*_` ")))
	key = strings.TrimSpace(labelSuffix.ReplaceAllString(key, ""))
	f, ok := labels[key]
	if !ok {
		return fieldNone, "", false
	}
	if !hasColon {
		// Bare headers only count for the script sections.
		if f != fieldScript && f != fieldDelivery && f != fieldEditing {
			return fieldNone, "", false
		}
		return f, "", true
	}
	return f, strings.TrimSpace(strings.TrimLeft(rest, "*_ \t")), true
}

// cutLabel splits at the first colon outside parentheses.
func cutLabel(s string) (head, rest string, found bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}

var quotePairs = [][2]string{{`"`, `"`}, {`'`, `'`}, {"“", "”"}, {"‘", "’"}}

var markup = strings.NewReplacer("**", "", "__", "", "`", "", "*", "")

// cleanValue strips markdown decoration and a pair of surrounding quotes.
func cleanValue(s string) string {
	s = strings.TrimSpace(strings.Trim(markup.Replace(strings.TrimSpace(s)), "_#"))
	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
			break
		}
	}
	return s
}

func joinSpace(a, b string) string {
	switch {
	case b == "":
		return a
	case a == "":
		return b
	}
	return a + " " + b
}

func appendNonEmpty(xs []string, s string) []string {
	if s = strings.TrimSpace(s); s == "" {
		return xs
	}
	return append(xs, s)
}

type jsonIdea struct {
	Title       string `json:"title"`
	Concept     string `json:"concept"`
	Description string `json:"description"`
	Appeal      string `json:"appeal"`
}

func parseJSONIdeas(text string) []Idea {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil
	}
	var raw []jsonIdea
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil
	}
	var out []Idea
	for _, r := range raw {
		idea := Idea{
			Title:   strings.TrimSpace(r.Title),
			Concept: strings.TrimSpace(r.Concept),
			Appeal:  strings.TrimSpace(r.Appeal),
		}
		if idea.Concept == "" {
			idea.Concept = strings.TrimSpace(r.Description)
		}
		if idea.valid() {
			out = append(out, idea)
		}
	}
	return out
}

var (
	setMarker     = regexp.MustCompile(`(?i)^set(\s*#?\d+)?\s*:?\s*(start|end)$`)
	listNumber    = regexp.MustCompile(`^\d+[.)]\s*`)
	labelSuffix   = regexp.MustCompile(`\s*\([^)]*\)$`)
	deliveryWords = regexp.MustCompile(`(?i)\b(delivery|deliver|tone|energy|voice|pace|pacing)\b`)
	editingWords  = regexp.MustCompile(`(?i)\b(editing|edit|visual|visuals|b-roll|broll|cut|cuts|music|transition|transitions|zoom)\b`)
)

// ParseScript splits script output into content and notes. Headed output
// ("Delivery Notes:", "Editing Notes:", "Script:") is split by header.
// Otherwise the longest paragraph anchors the content and the remaining
// paragraphs are sorted by keyword; paragraphs matching neither stay in the
// content in document order. Empty notes get the defaults.
func ParseScript(text string) Script {
	if s, ok := parseHeadedScript(text); ok {
		return withDefaultNotes(s)
	}
	return withDefaultNotes(parseParagraphScript(text))
}

func parseHeadedScript(text string) (Script, bool) {
	var content, delivery, editing []string
	active := fieldScript
	headed := false
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimRight(raw, " \t")
		if f, value, ok := labelLine(strings.TrimSpace(line)); ok && (f == fieldScript || f == fieldDelivery || f == fieldEditing) {
			if f != fieldScript {
				headed = true
			}
			active = f
			if value == "" {
				continue
			}
			line = value
		}
		switch active {
		case fieldDelivery:
			delivery = appendNonEmpty(delivery, line)
		case fieldEditing:
			editing = appendNonEmpty(editing, line)
		default:
			content = append(content, line)
		}
	}
	if !headed {
		return Script{}, false
	}
	return Script{
		Content:       strings.TrimSpace(strings.Join(content, "\n")),
		DeliveryNotes: strings.Join(delivery, "\n"),
		EditingNotes:  strings.Join(editing, "\n"),
	}, true
}

func parseParagraphScript(text string) Script {
	paras := paragraphs(text)
	if len(paras) == 0 {
		return Script{}
	}
	anchor := 0
	for i, p := range paras {
		if len(p) > len(paras[anchor]) {
			anchor = i
		}
	}
	var content, delivery, editing []string
	for i, p := range paras {
		switch {
		case i == anchor:
			content = append(content, p)
		case deliveryWords.MatchString(p):
			delivery = append(delivery, p)
		case editingWords.MatchString(p):
			editing = append(editing, p)
		default:
			content = append(content, p)
		}
	}
	return Script{
		Content:       strings.Join(content, "\n\n"),
		DeliveryNotes: strings.Join(delivery, "\n\n"),
		EditingNotes:  strings.Join(editing, "\n\n"),
	}
}

func paragraphs(text string) []string {
	var out []string
	var cur []string
	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			if len(cur) > 0 {
				out = append(out, strings.Join(cur, "\n"))
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		out = append(out, strings.Join(cur, "\n"))
	}
	return out
}
