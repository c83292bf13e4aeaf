package topics

import (
	_ "embed"
	"fmt"
	"math"
	"regexp"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed stopwords.yml
var defaultStopWords []byte

// Runs of two or more word characters.
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

type stopWordList struct {
	StopWords []string `yaml:"stop_words"`
}

// Extractor weights terms across a whole batch of documents with TF-IDF and
// reports the strongest terms of each document.
type Extractor struct {
	maxFeatures int
	stopWords   map[string]bool
	lower       cases.Caser
}

func NewExtractor(maxFeatures int) (*Extractor, error) {
	var list stopWordList
	if err := yaml.Unmarshal(defaultStopWords, &list); err != nil {
		return nil, fmt.Errorf("invalid embedded stop words: %w", err)
	}

	stopWords := make(map[string]bool, len(list.StopWords))
	for _, w := range list.StopWords {
		stopWords[w] = true
	}

	return &Extractor{
		maxFeatures: maxFeatures,
		stopWords:   stopWords,
		lower:       cases.Lower(language.Und),
	}, nil
}

// Extract returns up to n topics per document, in the order the documents
// were given. Terms absent from a document are never reported for it.
func (e *Extractor) Extract(docs []string, n int) [][]string {
	result := make([][]string, len(docs))
	if len(docs) == 0 {
		return result
	}

	tokenized := make([][]string, len(docs))
	for i, doc := range docs {
		tokenized[i] = e.tokenize(doc)
	}

	vocabulary := e.vocabulary(tokenized)

	for i, tokens := range tokenized {
		weights := e.weights(tokens, tokenized, vocabulary)
		result[i] = topTerms(vocabulary, weights, n)
	}

	return result
}

func (e *Extractor) tokenize(doc string) []string {
	text := e.lower.String(norm.NFC.String(doc))

	var tokens []string
	for _, token := range tokenRe.FindAllString(text, -1) {
		if e.stopWords[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// vocabulary keeps the maxFeatures most frequent terms of the batch, ties
// resolved alphabetically, and returns them sorted alphabetically.
func (e *Extractor) vocabulary(tokenized [][]string) []string {
	frequency := make(map[string]int)
	for _, tokens := range tokenized {
		for _, token := range tokens {
			frequency[token]++
		}
	}

	terms := make([]string, 0, len(frequency))
	for term := range frequency {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	if e.maxFeatures > 0 && len(terms) > e.maxFeatures {
		sort.SliceStable(terms, func(a, b int) bool {
			return frequency[terms[a]] > frequency[terms[b]]
		})
		terms = terms[:e.maxFeatures]
		sort.Strings(terms)
	}

	return terms
}

// weights returns the L2-normalized tf-idf row of one document using smooth
// idf: ln((1+N)/(1+df)) + 1.
func (e *Extractor) weights(tokens []string, tokenized [][]string, vocabulary []string) []float64 {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}

	docCount := float64(len(tokenized))
	row := make([]float64, len(vocabulary))
	var norm2 float64

	for i, term := range vocabulary {
		tf := counts[term]
		if tf == 0 {
			continue
		}
		idf := math.Log((1+docCount)/(1+float64(documentFrequency(term, tokenized)))) + 1
		row[i] = float64(tf) * idf
		norm2 += row[i] * row[i]
	}

	if norm2 > 0 {
		l2 := math.Sqrt(norm2)
		for i := range row {
			row[i] /= l2
		}
	}

	return row
}

func documentFrequency(term string, tokenized [][]string) int {
	df := 0
	for _, tokens := range tokenized {
		for _, token := range tokens {
			if token == term {
				df++
				break
			}
		}
	}
	return df
}

// topTerms orders by weight descending; equal weights put the later
// vocabulary term first.
func topTerms(vocabulary []string, weights []float64, n int) []string {
	indices := make([]int, 0, len(vocabulary))
	for i, w := range weights {
		if w > 0 {
			indices = append(indices, i)
		}
	}

	sort.Slice(indices, func(a, b int) bool {
		wa, wb := weights[indices[a]], weights[indices[b]]
		if wa != wb {
			return wa > wb
		}
		return indices[a] > indices[b]
	})

	if n >= 0 && len(indices) > n {
		indices = indices[:n]
	}

	terms := make([]string, len(indices))
	for i, idx := range indices {
		terms[i] = vocabulary[idx]
	}
	return terms
}
