package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lysyi3m/news-pulse/app/sentiment"
)

// Article is one scored, topic-tagged news item.
type Article struct {
	Title         string              `json:"title"`
	Link          string              `json:"link"`
	PublishedDate string              `json:"published_date"`
	Summary       string              `json:"summary"`
	Sentiment     sentiment.Sentiment `json:"sentiment"`
	Topics        []string            `json:"topics"`
}

// Distribution counts articles per sentiment. Labels keep the order in which
// they first occurred; labels that never occurred are absent.
type Distribution struct {
	labels []sentiment.Sentiment
	counts map[sentiment.Sentiment]int
}

func (d *Distribution) add(label sentiment.Sentiment) {
	if d.counts == nil {
		d.counts = make(map[sentiment.Sentiment]int)
	}
	if _, ok := d.counts[label]; !ok {
		d.labels = append(d.labels, label)
	}
	d.counts[label]++
}

func (d Distribution) Labels() []sentiment.Sentiment {
	return append([]sentiment.Sentiment(nil), d.labels...)
}

func (d Distribution) Count(label sentiment.Sentiment) int {
	return d.counts[label]
}

func (d Distribution) Total() int {
	total := 0
	for _, c := range d.counts {
		total += c
	}
	return total
}

// Full reports every known label, zero counts included, in display order.
func (d Distribution) Full() []LabelCount {
	full := make([]LabelCount, 0, len(sentiment.Labels))
	for _, label := range sentiment.Labels {
		full = append(full, LabelCount{Label: label, Count: d.counts[label]})
	}
	return full
}

type LabelCount struct {
	Label sentiment.Sentiment
	Count int
}

func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range d.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(label))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		fmt.Fprintf(&buf, ":%d", d.counts[label])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CoverageDifference compares two articles whose sentiments differ. I and J
// are 1-based positions with I < J.
type CoverageDifference struct {
	I          int
	J          int
	SentimentI sentiment.Sentiment
	SentimentJ sentiment.Sentiment
	Comparison string
	Impact     string
	TopicsI    []string
	TopicsJ    []string
}

func TopicsKey(position int) string {
	return fmt.Sprintf("Article %d Topics", position)
}

func (c CoverageDifference) MarshalJSON() ([]byte, error) {
	fields := []struct {
		key   string
		value any
	}{
		{"Comparison", c.Comparison},
		{"Impact", c.Impact},
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for _, f := range fields {
		if err := writeField(&buf, f.key, f.value); err != nil {
			return nil, err
		}
		buf.WriteByte(',')
	}

	buf.WriteString(`"Key Themes":{`)
	if err := writeField(&buf, TopicsKey(c.I), nonNil(c.TopicsI)); err != nil {
		return nil, err
	}
	buf.WriteByte(',')
	if err := writeField(&buf, TopicsKey(c.J), nonNil(c.TopicsJ)); err != nil {
		return nil, err
	}
	buf.WriteString("}}")

	return buf.Bytes(), nil
}

// ComparativeAnalysis is the cross-article comparison of one batch.
type ComparativeAnalysis struct {
	Distribution Distribution         `json:"Sentiment Distribution"`
	Differences  []CoverageDifference `json:"Coverage Differences"`
}

func writeField(buf *bytes.Buffer, key string, value any) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}

func nonNil(topics []string) []string {
	if topics == nil {
		return []string{}
	}
	return topics
}
