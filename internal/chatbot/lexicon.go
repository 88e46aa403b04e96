package chatbot

import "sort"

// lexicon maps canonical topic names to their surface-form synonyms, English
// plus transliterated Hindi. It is built once at package init and never
// mutated, so it is safe for unlimited concurrent reads.
//
// Extending the vocabulary means adding entries here.
var lexicon = map[string][]string{
	// Basic officer attributes
	"full name":       {"full name", "name", "officer name", "officer ka naam", "pura naam"},
	"rank":            {"rank", "rank of officer"},
	"position":        {"position", "posted", "tainaati", "posting", "kahan tainat"},
	"unit":            {"unit", "battalion", "unit name", "unit ka naam", "battalion ka naam"},
	"date of birth":   {"dob", "janmdin", "birth", "birthday", "date of birth", "janm tithi"},
	"enlistment date": {"enlistment date", "joining date", "enlistment tithi", "joining tithi", "date of enlistment", "date of joining"},
	"phone":           {"phone", "contact", "mobile", "phone number", "mobile number", "contact number"},
	"email":           {"email", "email id", "email address"},
	"address":         {"address", "pata", "address details", "officer address", "officer pata"},
	"blood group":     {"blood group", "blood type", "blood group of officer", "officer ka blood group"},
	"photo":           {"photo", "image", "picture", "officer photo", "officer image", "officer picture"},

	// Education
	"degree":              {"degree", "course"},
	"institution":         {"institute", "institution", "padhai", "university", "college", "organization"},
	"passing year":        {"passing year", "when did pass", "pass"},
	"grade":               {"grade"},
	"educational details": {"educational", "educational details", "full education details", "education", "padhai ki jankari", "shiksha ki jankari"},

	// Family
	"family details": {"family's", "family details", "parivaar ki jankari", "family information", "family info", "parivaar ka pata"},
	"father name":    {"father's", "father", "pita", "papa", "dad", "father's name", "father name", "papa ka naam"},
	"mother name":    {"mother's", "mother", "mata", "maa", "mom", "mother's name", "mother name", "maa ka naam"},
	"family":         {"family", "parivaar"},

	// Awards
	"award":          {"award", "medal", "awards", "awarded", "puraskar", "puraskaar", "award details", "puraskar ki jankari"},
	"award reason":   {"award reason", "karn", "puraskar ka karan", "why awarded", "kyun diya gaya"},
	"award date":     {"award date", "puraskar ki tithi", "puraskar ka din", "kab diya gaya"},
	"award location": {"award location", "puraskar sthal", "award place", "puraskar ka sthal", "puraskar ka jagah"},

	// Identity
	"army id":       {"army id", "army number", "officer id", "officer number", "id", "pehchan sankhya"},
	"basic details": {"basic", "personal", "officer details", "officer information"},
	"posted in":     {"posted in", "posting in", "location", "tainaath"},
}

// lexiconKeys holds the canonical keys ordered longest-first (ties broken
// lexicographically) so that substring matching prefers the most specific
// key. A short key can no longer shadow a longer one that is also present
// in the query.
var lexiconKeys = func() []string {
	keys := make([]string, 0, len(lexicon))
	for k := range lexicon {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// gazetteer lists the known region and formation names recognised by
// location extraction. Order matters: the first entry contained in the
// query wins.
var gazetteer = []string{
	"kashmir", "ladakh", "delhi", "punjab", "assam", "rajasthan",
	"jammu", "himachal", "sikkim", "nagaland", "manipur", "goa",
	"gujarat", "maharashtra", "kerala", "tamil nadu", "uttarakhand",
	"haryana regiment", "1 signal group",
}
