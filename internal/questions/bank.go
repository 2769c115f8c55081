// Package questions holds the fixed bank of security questions offered at
// sign-up. Question IDs are stable: they are persisted with each user, so
// entries must never be renumbered or removed, only appended.
package questions

// Question is one entry of the bank.
type Question struct {
	ID   int
	Text string
}

var bank = []Question{
	{1, "What was the name of your first pet?"},
	{2, "What is your mother's maiden name?"},
	{3, "What was the name of your elementary school?"},
	{4, "In what city were you born?"},
	{5, "What was the make of your first car?"},
	{6, "What is the name of your favorite childhood friend?"},
	{7, "What street did you grow up on?"},
	{8, "What was your childhood nickname?"},
	{9, "What is the name of the town where your parents met?"},
	{10, "What was the first concert you attended?"},
	{11, "What is the title of your favorite book?"},
	{12, "What was your first job?"},
}

// All returns the full bank in display order. The returned slice is a copy.
func All() []Question {
	out := make([]Question, len(bank))
	copy(out, bank)
	return out
}

// ByID returns the question with the given ID.
func ByID(id int) (Question, bool) {
	for _, q := range bank {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// ValidSelection reports whether the three IDs all exist in the bank and are
// pairwise distinct.
func ValidSelection(ids [3]int) bool {
	seen := make(map[int]struct{}, 3)
	for _, id := range ids {
		if _, ok := ByID(id); !ok {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}
