package narrator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// Narration text is always written in this language before translation.
const sourceLang = "en"

type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type Speaker interface {
	Synthesize(ctx context.Context, w io.Writer, text, lang string) error
}

var (
	_ Translator = (*GoogleTranslator)(nil)
	_ Speaker    = (*GoogleSpeaker)(nil)
)

// Narrator translates text and stores spoken audio under dir. With perRequest
// unset every narration overwrites the same file, so concurrent requests race
// on it.
type Narrator struct {
	translator Translator
	speaker    Speaker
	dir        string
	file       string
	perRequest bool
}

func New(translator Translator, speaker Speaker, dir, file string, perRequest bool) *Narrator {
	return &Narrator{
		translator: translator,
		speaker:    speaker,
		dir:        dir,
		file:       file,
		perRequest: perRequest,
	}
}

// ValidateLang normalizes a BCP 47 language tag.
func ValidateLang(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return "", fmt.Errorf("invalid language '%s': %w", lang, err)
	}
	return tag.String(), nil
}

// Narrate speaks text in lang and returns the path of the audio file.
func (n *Narrator) Narrate(ctx context.Context, text, lang string) (string, error) {
	lang, err := ValidateLang(lang)
	if err != nil {
		return "", err
	}

	spoken := text
	if lang != sourceLang {
		spoken, err = n.translator.Translate(ctx, text, sourceLang, lang)
		if err != nil {
			return "", err
		}
	}

	var audio bytes.Buffer
	if err := n.speaker.Synthesize(ctx, &audio, spoken, lang); err != nil {
		return "", err
	}

	if err := os.MkdirAll(n.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	path := filepath.Join(n.dir, n.filename())
	if err := os.WriteFile(path, audio.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	slog.Info("Narration generated", "path", path, "lang", lang, "bytes", audio.Len())
	return path, nil
}

func (n *Narrator) filename() string {
	if n.perRequest {
		return uuid.NewString() + filepath.Ext(n.file)
	}
	return n.file
}
