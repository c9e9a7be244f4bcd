package department

import "strings"

// Search does a case-insensitive substring match across each department's
// short name, full name, overseer names/emails/phones and document display
// names. A blank query matches everything.
func Search(departments []Department, query string) []Department {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return departments
	}

	matched := make([]Department, 0, len(departments))
	for _, d := range departments {
		if matches(d, query) {
			matched = append(matched, d)
		}
	}
	return matched
}

func matches(d Department, query string) bool {
	if strings.Contains(strings.ToLower(d.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(d.FullName), query) {
		return true
	}
	for _, o := range d.Overseers {
		if strings.Contains(strings.ToLower(o.Name), query) ||
			strings.Contains(strings.ToLower(o.Email), query) ||
			strings.Contains(strings.ToLower(o.Phone), query) {
			return true
		}
	}
	for _, doc := range d.Documents {
		if strings.Contains(strings.ToLower(doc.Name), query) {
			return true
		}
	}
	return false
}
