package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const maxVocabulary = 100

// englishStopwords holds common function words dropped before vectorizing.
// The feature documents are short cuisine and location phrases, so this list
// only needs to cover everyday filler.
var englishStopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "all", "an", "and", "any",
		"are", "as", "at", "be", "because", "been", "before", "being",
		"below", "between", "both", "but", "by", "can", "did", "do", "does",
		"doing", "down", "during", "each", "few", "for", "from", "further",
		"had", "has", "have", "having", "he", "her", "here", "hers", "him",
		"his", "how", "if", "in", "into", "is", "it", "its", "just", "more",
		"most", "my", "no", "nor", "not", "now", "of", "off", "on", "once",
		"only", "or", "other", "our", "out", "over", "own", "same", "she",
		"so", "some", "such", "than", "that", "the", "their", "them", "then",
		"there", "these", "they", "this", "those", "through", "to", "too",
		"under", "until", "up", "very", "was", "we", "were", "what", "when",
		"where", "which", "while", "who", "why", "will", "with", "you",
		"your",
	} {
		englishStopwords[w] = struct{}{}
	}
}

// tokenize lowercases the text, splits on non-alphanumeric runs, drops
// single-character tokens and stopwords, then appends word bigrams.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	words := fields[:0]
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := englishStopwords[f]; stop {
			continue
		}
		words = append(words, f)
	}

	tokens := make([]string, 0, 2*len(words))
	tokens = append(tokens, words...)
	for i := 0; i+1 < len(words); i++ {
		tokens = append(tokens, words[i]+" "+words[i+1])
	}
	return tokens
}

// buildVectors turns documents into L2-normalized TF-IDF rows over a shared
// vocabulary. The vocabulary keeps the most frequent terms across the corpus,
// capped at maxVocabulary, ties broken alphabetically so the matrix is
// deterministic for a fixed catalog.
func buildVectors(documents []string) [][]float64 {
	tokenized := make([][]string, len(documents))
	corpusFreq := map[string]int{}
	for i, doc := range documents {
		tokenized[i] = tokenize(doc)
		for _, tok := range tokenized[i] {
			corpusFreq[tok]++
		}
	}

	terms := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if corpusFreq[terms[i]] != corpusFreq[terms[j]] {
			return corpusFreq[terms[i]] > corpusFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxVocabulary {
		terms = terms[:maxVocabulary]
	}

	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}

	// Smoothed document frequencies.
	df := make([]int, len(terms))
	for _, tokens := range tokenized {
		seen := map[int]struct{}{}
		for _, tok := range tokens {
			if idx, ok := vocab[tok]; ok {
				seen[idx] = struct{}{}
			}
		}
		for idx := range seen {
			df[idx]++
		}
	}
	n := float64(len(documents))
	idf := make([]float64, len(terms))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}

	rows := make([][]float64, len(documents))
	for i, tokens := range tokenized {
		row := make([]float64, len(terms))
		for _, tok := range tokens {
			if idx, ok := vocab[tok]; ok {
				row[idx]++
			}
		}
		var norm float64
		for j := range row {
			row[j] *= idf[j]
			norm += row[j] * row[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		rows[i] = row
	}
	return rows
}

// cosineMatrix computes pairwise cosine similarity of normalized rows.
func cosineMatrix(rows [][]float64) [][]float64 {
	sim := make([][]float64, len(rows))
	for i := range rows {
		sim[i] = make([]float64, len(rows))
		for j := range rows {
			var dot float64
			for k := range rows[i] {
				dot += rows[i][k] * rows[j][k]
			}
			sim[i][j] = dot
		}
	}
	return sim
}
