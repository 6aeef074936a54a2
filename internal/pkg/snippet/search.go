package snippet

import "strings"

// Page is the searchable text of one page.
type Page struct {
	Number int
	Text   string
}

// Result is one snippet. Two results are the same when both fields match.
type Result struct {
	Page    int    `json:"page"`
	Snippet string `json:"snippet"`
}

// Search scans pages in order and returns one result per non-overlapping
// match, top to bottom, with duplicates removed. It never returns nil.
func Search(pages []Page, p *Pattern) []Result {
	results := make([]Result, 0)
	if p == nil {
		return results
	}

	seen := make(map[Result]struct{})
	for _, page := range pages {
		if page.Text == "" {
			continue
		}
		for _, m := range p.re.FindAllStringSubmatch(page.Text, -1) {
			r := Result{
				Page:    page.Number,
				Snippet: strings.TrimFunc(m[1]+p.display+m[2], isSpace),
			}
			if _, dup := seen[r]; dup {
				continue
			}
			seen[r] = struct{}{}
			results = append(results, r)
		}
	}
	return results
}
