package session

import (
	"regexp"
	"strings"

	"github.com/nathoo/rpgkit/types"
)

var verbAliases = map[string]string{
	// Sheet
	"char":   "sheet",
	"status": "sheet",
	"me":     "sheet",

	// Inspect
	"x":        "inspect",
	"examine":  "inspect",
	"look":     "inspect",
	"l":        "inspect",
	"describe": "inspect",

	// Level
	"lvl":     "levelup",
	"level":   "levelup",
	"advance": "levelup",

	// Items
	"add":   "give",
	"grant": "give",
	"get":   "give",
	"drink": "use",
	"quaff": "use",
	"apply": "use",
	"put":   "stow",
	"store": "stow",
	"pack":  "stow",
	"inv":   "inventory",
	"i":     "inventory",

	// Character
	"stats":     "stat",
	"res":       "resource",
	"resources": "resource",
	"abilities": "ability",
	"feats":     "features",
	"feat":      "features",
	"r":         "roll",
	"reroll":    "rollstats",
	"create":    "new",
}

var prepositions = map[string]bool{
	"on": true, "at": true, "to": true,
	"with": true, "in": true, "into": true,
	"from": true, "inside": true,
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true, "my": true,
}

var amountRe = regexp.MustCompile(`^[+=-]?\d+$`)

// Parse converts a raw command string into a Command.
func Parse(input string) types.Command {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Command{}
	}

	words := strings.Fields(strings.ToLower(input))
	words = expandMultiWordVerbs(words)

	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])

	// A trailing number is an amount: "stat strength +2", "resource gold 50".
	var amount string
	if n := len(rest); n > 0 && amountRe.MatchString(rest[n-1]) && verb != "roll" {
		amount = rest[n-1]
		rest = rest[:n-1]
	}

	object, target := splitOnPreposition(rest)

	return types.Command{
		Verb:   verb,
		Object: object,
		Target: target,
		Amount: amount,
	}
}

// expandMultiWordVerbs handles "level up", "roll stats", "look at" etc.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "level", "lvl":
		if words[1] == "up" {
			return append([]string{"levelup"}, words[2:]...)
		}
	case "look":
		if words[1] == "at" || words[1] == "in" {
			return append([]string{"inspect"}, words[2:]...)
		}
	case "roll":
		if words[1] == "stats" || words[1] == "abilities" {
			return append([]string{"rollstats"}, words[2:]...)
		}
	case "put":
		if words[1] == "away" {
			return append([]string{"stow"}, words[2:]...)
		}
	case "new":
		if words[1] == "character" {
			return append([]string{"new"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes articles ("the", "a", "an", "my") from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}

// splitOnPreposition splits words on the first preposition.
// Words before the preposition become the object, words after become the target.
// If no preposition is found, all words become the object.
func splitOnPreposition(words []string) (object, target string) {
	for i, w := range words {
		if prepositions[w] {
			object = strings.Join(words[:i], " ")
			target = strings.Join(words[i+1:], " ")
			return object, target
		}
	}
	return strings.Join(words, " "), ""
}
