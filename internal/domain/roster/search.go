package roster

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FormatName turns an API slug into a display name: "mr-mime" becomes "Mr Mime".
func FormatName(slug string) string {
	caser := cases.Title(language.English, cases.NoLower)
	words := strings.Split(slug, "-")
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// Search filters list by a case-insensitive substring of name, id or any type tag.
// A blank query returns the whole list.
func Search(list []Species, query string) []Species {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cloneSpecies(list)
	}
	out := make([]Species, 0)
	for _, sp := range list {
		if matches(sp, q) {
			out = append(out, sp.clone())
		}
	}
	return out
}

func matches(sp Species, q string) bool {
	if strings.Contains(strings.ToLower(sp.Name), q) || strings.Contains(strconv.Itoa(sp.ID), q) {
		return true
	}
	for _, t := range sp.Types {
		if strings.Contains(strings.ToLower(string(t)), q) {
			return true
		}
	}
	return false
}

func findSpecies(list []Species, ref string) (Species, bool) {
	if id, err := strconv.Atoi(ref); err == nil {
		for _, sp := range list {
			if sp.ID == id {
				return sp.clone(), true
			}
		}
		return Species{}, false
	}
	slug := slugOf(ref)
	for _, sp := range list {
		if slugOf(sp.Name) == slug {
			return sp.clone(), true
		}
	}
	return Species{}, false
}

// slugOf maps a display name back to its API form.
func slugOf(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
