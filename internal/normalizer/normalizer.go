package normalizer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/russross/blackfriday/v2"
)

// ModeLemmatizer is the only processing mode the vocabulary artifact was
// fitted against. The mode travels with the artifact: swapping either one
// independently breaks the encoder's compatibility contract.
const ModeLemmatizer = "lemmatizer"

// Normalizer turns raw user text into the normalized token sequence the
// sequence encoder expects.
type Normalizer interface {
	Clean(text string, mode string) []string
}

var (
	mdLinkPattern  = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	hashtagPattern = regexp.MustCompile(`#\w+`)
	nonWordPattern = regexp.MustCompile(`[^a-z\s]`)
)

type TextNormalizer struct {
	lemmatizer *golem.Lemmatizer
}

func New() (*TextNormalizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("[Normalizer] failed to load lemmatizer dictionary: %w", err)
	}
	return &TextNormalizer{lemmatizer: lemmatizer}, nil
}

// Clean strips markdown, URLs, mentions, hashtags and punctuation,
// lowercases, drops stopwords and lemmatizes. The result may be empty when
// the input held no content words; the caller treats that as invalid input.
func (n *TextNormalizer) Clean(text string, mode string) []string {
	// Twitter noise goes first: a leading "#hashtag" would otherwise be
	// parsed as a markdown heading.
	plain := mdLinkPattern.ReplaceAllString(text, "$1")
	plain = urlPattern.ReplaceAllString(plain, "")
	plain = mentionPattern.ReplaceAllString(plain, "")
	plain = hashtagPattern.ReplaceAllString(plain, "")

	plain = flattenMarkdown(plain)

	plain = strings.ToLower(plain)
	plain = nonWordPattern.ReplaceAllString(plain, " ")

	var tokens []string
	for _, word := range strings.Fields(plain) {
		if len(word) < 2 {
			continue
		}
		if stopwords[word] {
			continue
		}
		if mode == ModeLemmatizer {
			word = n.lemmatizer.Lemma(word)
		}
		tokens = append(tokens, word)
	}
	return tokens
}

func flattenMarkdown(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	stripped := tagPattern.ReplaceAllString(string(output), " ")
	return strings.Join(strings.Fields(stripped), " ")
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)
