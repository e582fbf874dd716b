// datagen writes a synthetic text corpus for benchmarking. A fixed seed
// produces the same corpus every time, so timing comparisons across code
// changes stay meaningful.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var vocabulary = []string{
	"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
	"a", "an", "and", "but", "or", "if", "then", "while", "because",
	"time", "year", "people", "way", "day", "man", "woman", "child",
	"world", "life", "hand", "part", "eye", "place", "work", "week",
	"case", "point", "government", "company", "number", "group", "problem",
	"fact", "water", "room", "mother", "area", "money", "story", "month",
	"book", "word", "business", "issue", "side", "kind", "head", "house",
	"service", "friend", "father", "power", "hour", "game", "line", "end",
	"member", "law", "car", "city", "community", "name", "president",
	"team", "minute", "idea", "body", "information", "back", "parent",
	"face", "others", "level", "office", "door", "health", "person",
	"art", "war", "history", "party", "result", "change", "morning",
	"reason", "research", "girl", "guy", "moment", "air", "light",
	"force", "education",
}

func main() {
	dir := flag.String("dir", "data", "directory to write corpus files into")
	files := flag.Int("files", 20, "number of files to generate")
	words := flag.Int("words", 5000, "words per file")
	seed := flag.Int64("seed", 42, "random seed, fixed for reproducible corpora")
	flag.Parse()

	if *files <= 0 || *words <= 0 {
		fmt.Fprintln(os.Stderr, "files and words must be positive")
		os.Exit(2)
	}
	if err := os.MkdirAll(*dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating %s: %v\n", *dir, err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *files; i++ {
		name := fmt.Sprintf("file_%02d.txt", i+1)
		if err := os.WriteFile(filepath.Join(*dir, name), generate(rng, *words), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", name, err)
			os.Exit(1)
		}
	}
	fmt.Printf("Generated %d files x %d words in %s\n", *files, *words, *dir)
}

// generate produces prose-shaped text with mixed casing and punctuation so
// the cleaning stage has real work to do.
func generate(rng *rand.Rand, words int) []byte {
	var sb strings.Builder
	lineLen := 0
	for i := 0; i < words; i++ {
		word := vocabulary[rng.Intn(len(vocabulary))]
		switch rng.Intn(12) {
		case 0:
			word = strings.ToUpper(word)
		case 1:
			word = strings.ToUpper(word[:1]) + word[1:]
		case 2:
			word += "."
		case 3:
			word += ","
		case 4:
			word += "!"
		}
		sb.WriteString(word)
		lineLen++
		if lineLen >= 12 {
			sb.WriteByte('\n')
			lineLen = 0
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
