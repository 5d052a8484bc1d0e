package scripture

import "strings"

// bookIDs maps lowercase book names and common abbreviations to
// API.Bible book identifiers.
var bookIDs = map[string]string{
	// Old Testament
	"genesis": "GEN", "gen": "GEN",
	"exodus": "EXO", "exo": "EXO",
	"leviticus": "LEV", "lev": "LEV",
	"numbers": "NUM", "num": "NUM",
	"deuteronomy": "DEU", "deu": "DEU",
	"joshua": "JOS", "jos": "JOS",
	"judges": "JDG", "jdg": "JDG",
	"ruth": "RUT", "rut": "RUT",
	"1 samuel": "1SA", "1sa": "1SA", "1 sam": "1SA",
	"2 samuel": "2SA", "2sa": "2SA", "2 sam": "2SA",
	"1 kings": "1KI", "1ki": "1KI", "1 kg": "1KI",
	"2 kings": "2KI", "2ki": "2KI", "2 kg": "2KI",
	"psalms": "PSA", "psa": "PSA", "psalm": "PSA",
	"proverbs": "PRO", "pro": "PRO",
	"isaiah": "ISA", "isa": "ISA",
	"jeremiah": "JER", "jer": "JER",
	// New Testament
	"matthew": "MAT", "mat": "MAT", "matt": "MAT",
	"mark": "MRK", "mrk": "MRK",
	"luke": "LUK", "luk": "LUK",
	"john": "JHN", "jhn": "JHN",
	"acts": "ACT", "act": "ACT",
	"romans": "ROM", "rom": "ROM",
	"1 corinthians": "1CO", "1co": "1CO", "1 cor": "1CO",
	"2 corinthians": "2CO", "2co": "2CO", "2 cor": "2CO",
	"galatians": "GAL", "gal": "GAL",
	"ephesians": "EPH", "eph": "EPH",
	"philippians": "PHP", "php": "PHP",
	"colossians": "COL", "col": "COL",
	"1 thessalonians": "1TH", "1th": "1TH", "1 thess": "1TH",
	"2 thessalonians": "2TH", "2th": "2TH", "2 thess": "2TH",
	"1 timothy": "1TI", "1ti": "1TI", "1 tim": "1TI",
	"2 timothy": "2TI", "2ti": "2TI", "2 tim": "2TI",
	"titus": "TIT", "tit": "TIT",
	"hebrews": "HEB", "heb": "HEB",
	"james": "JAS", "jas": "JAS",
	"1 peter": "1PE", "1pe": "1PE", "1 pet": "1PE",
	"2 peter": "2PE", "2pe": "2PE", "2 pet": "2PE",
	"1 john": "1JN", "1jn": "1JN",
	"2 john": "2JN", "2jn": "2JN",
	"3 john": "3JN", "3jn": "3JN",
	"jude": "JUD", "jud": "JUD",
	"revelation": "REV", "rev": "REV",
}

// books is the canonical selection list, in traditional order.
var books = []string{
	"Genesis", "Exodus", "Leviticus", "Numbers", "Deuteronomy",
	"Joshua", "Judges", "Ruth", "1 Samuel", "2 Samuel",
	"1 Kings", "2 Kings", "Psalms", "Proverbs", "Isaiah", "Jeremiah",
	"Matthew", "Mark", "Luke", "John", "Acts", "Romans",
	"1 Corinthians", "2 Corinthians", "Galatians", "Ephesians",
	"Philippians", "Colossians", "1 Thessalonians", "2 Thessalonians",
	"1 Timothy", "2 Timothy", "Titus", "Hebrews", "James",
	"1 Peter", "2 Peter", "1 John", "2 John", "3 John", "Jude", "Revelation",
}

// BookID resolves a book name or abbreviation (case-insensitive) to an
// API.Bible book identifier.
func BookID(name string) (string, bool) {
	id, ok := bookIDs[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// Books returns the list of selectable books.
func Books() []string {
	out := make([]string, len(books))
	copy(out, books)
	return out
}
