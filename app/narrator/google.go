package narrator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Longest text the speech endpoint accepts in one request.
const maxChunkLength = 100

type GoogleTranslator struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

func NewGoogleTranslator(httpClient *http.Client, baseURL, userAgent string, timeout time.Duration) *GoogleTranslator {
	return &GoogleTranslator{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (t *GoogleTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("q", text)

	data, err := get(ctx, t.httpClient, t.baseURL+"?"+params.Encode(), t.userAgent, t.timeout)
	if err != nil {
		return "", fmt.Errorf("failed to translate: %w", err)
	}

	return parseTranslation(data)
}

// parseTranslation reads the first element of the response, a list of
// [translated, original, ...] segments.
func parseTranslation(data []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("invalid translation response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("invalid translation segments: %w", err)
	}

	var sb strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		if s, ok := segment[0].(string); ok {
			sb.WriteString(s)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("translation response has no text")
	}
	return sb.String(), nil
}

type GoogleSpeaker struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

func NewGoogleSpeaker(httpClient *http.Client, baseURL, userAgent string, timeout time.Duration) *GoogleSpeaker {
	return &GoogleSpeaker{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Synthesize writes MP3 audio for text to w, one request per chunk.
func (s *GoogleSpeaker) Synthesize(ctx context.Context, w io.Writer, text, lang string) error {
	chunks := Chunk(text, maxChunkLength)
	if len(chunks) == 0 {
		return fmt.Errorf("no text to speak")
	}

	for i, chunk := range chunks {
		params := url.Values{}
		params.Set("ie", "UTF-8")
		params.Set("client", "tw-ob")
		params.Set("tl", lang)
		params.Set("q", chunk)
		params.Set("total", strconv.Itoa(len(chunks)))
		params.Set("idx", strconv.Itoa(i))
		params.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

		data, err := get(ctx, s.httpClient, s.baseURL+"?"+params.Encode(), s.userAgent, s.timeout)
		if err != nil {
			return fmt.Errorf("failed to synthesize chunk %d: %w", i, err)
		}

		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write audio: %w", err)
		}
	}

	return nil
}

// Chunk splits text on whitespace into pieces of at most limit runes. Words
// longer than limit are cut.
func Chunk(text string, limit int) []string {
	var chunks []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = current[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)

		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		if len(runes) == 0 {
			continue
		}

		if len(current) > 0 && len(current)+1+len(runes) > limit {
			flush()
		}
		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, runes...)
	}
	flush()

	return chunks
}

func get(ctx context.Context, httpClient *http.Client, rawURL, userAgent string, timeout time.Duration) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
