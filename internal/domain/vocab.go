package domain

import "strings"

// Controlled vocabularies for roster uploads. These are fixed at load time and
// shared with callers that render upload forms; they are never mutated.

// RequiredColumns are the column headers an uploaded roster must carry.
var RequiredColumns = []string{"Student Name", "Email"}

// OptionalColumns are the recognized non-required column headers, listed by
// their canonical name (synonyms are resolved by the roster extractor).
var OptionalColumns = []string{
	"Phone",
	"Company",
	"City",
	"Province",
	"Postal Code",
	"First Aid Level",
	"CPR Level",
	"Instructor",
	"Length",
	"Pass/Fail",
	"Issue Date",
	"Expiry Date",
}

// HeaderSynonyms maps canonical column headers to the alternate spellings
// accepted for them. Headers without an entry match by canonical name only.
var HeaderSynonyms = map[string][]string{
	"Student Name": {"Name"},
	"Email":        {"Email Address"},
	"Phone":        {"Phone Number"},
	"Company":      {"Organization"},
	"Province":     {"State"},
	"Postal Code":  {"Zip Code", "ZIP"},
}

// FirstAidLevels are the accepted first-aid certification level names.
var FirstAidLevels = []string{
	"Emergency First Aid",
	"Standard First Aid",
	"Basic Life Support",
	"Marine Basic First Aid",
	"Wilderness First Aid",
}

// CPRLevels are the accepted CPR certification level names.
var CPRLevels = []string{
	"CPR A",
	"CPR C",
	"CPR BLS",
}

// MatchFirstAidLevel canonicalizes a free-text first-aid level against the
// controlled vocabulary. Unmatched values report false and are passed through
// untouched by callers (soft validation).
func MatchFirstAidLevel(value string) (string, bool) {
	return matchVocab(value, FirstAidLevels)
}

// MatchCPRLevel canonicalizes a free-text CPR level against the controlled
// vocabulary.
func MatchCPRLevel(value string) (string, bool) {
	return matchVocab(value, CPRLevels)
}

func matchVocab(value string, accepted []string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", false
	}
	for _, candidate := range accepted {
		if strings.EqualFold(trimmed, candidate) {
			return candidate, true
		}
	}
	return trimmed, false
}
