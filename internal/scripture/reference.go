package scripture

import "fmt"

// Reference builds a display reference string for a passage. The end
// verse is appended only when it names a wider range than the start:
// ("John", 3, 16, 16) -> "John 3:16", ("Psalms", 23, 1, 6) -> "Psalms 23:1-6".
// A zero end verse means single-verse.
func Reference(book string, chapter, startVerse, endVerse int) string {
	ref := fmt.Sprintf("%s %d:%d", book, chapter, startVerse)
	if endVerse != 0 && endVerse != startVerse {
		ref += fmt.Sprintf("-%d", endVerse)
	}
	return ref
}
