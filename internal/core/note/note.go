// Package note models a Zettelkasten note: a markdown file whose name starts
// with a timestamp ID and whose TOML front matter carries its metadata.
package note

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// IDLayout is the time layout of note IDs.
	IDLayout = "20060102150405"
	// Ext is the file extension of notes.
	Ext = ".md"

	frontMatterDelim = "+++"
	maxSlugLen       = 48
)

// ErrNoFrontMatter is returned for files that do not start with a +++ block.
var ErrNoFrontMatter = errors.New("note has no front matter")

// Meta is the front matter of a note.
type Meta struct {
	ID      string    `toml:"id"`
	Title   string    `toml:"title"`
	Created time.Time `toml:"created"`
	Tags    []string  `toml:"tags,omitempty"`
}

// Note is a parsed note file.
type Note struct {
	Meta
	Body string
}

// NewID formats t as a note ID in UTC.
func NewID(t time.Time) string {
	return t.UTC().Format(IDLayout)
}

// New returns a note titled title, created at now, with a heading body.
func New(title string, tags []string, now time.Time) *Note {
	now = now.UTC().Truncate(time.Second)
	return &Note{
		Meta: Meta{
			ID:      NewID(now),
			Title:   title,
			Created: now,
			Tags:    tags,
		},
		Body: fmt.Sprintf("# %s\n", title),
	}
}

// HasTag reports whether the note carries tag, ignoring case.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Filename is "<id>-<slug>.md", or "<id>.md" when the title has no usable characters.
func (n *Note) Filename() string {
	slug := Slug(n.Title)
	if slug == "" {
		return n.ID + Ext
	}
	return n.ID + "-" + slug + Ext
}

// Marshal renders the note as front matter followed by the body.
func (n *Note) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(frontMatterDelim + "\n")
	if err := toml.NewEncoder(&buf).Encode(n.Meta); err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}
	buf.WriteString(frontMatterDelim + "\n\n")
	buf.WriteString(n.Body)
	return buf.Bytes(), nil
}

// Parse reads a note rendered by Marshal.
func Parse(data []byte) (*Note, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, frontMatterDelim+"\n") {
		return nil, ErrNoFrontMatter
	}
	rest := text[len(frontMatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end < 0 {
		return nil, errors.New("front matter is not terminated")
	}

	var n Note
	if _, err := toml.Decode(rest[:end+1], &n.Meta); err != nil {
		return nil, fmt.Errorf("decoding front matter: %w", err)
	}
	body := rest[end+1+len(frontMatterDelim):]
	body = strings.TrimPrefix(body, "\n")
	n.Body = strings.TrimPrefix(body, "\n")
	return &n, nil
}

// Slug turns a title into a lowercase, dash separated file name fragment.
// Accents are folded; other non letters and digits become separators.
func Slug(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
		if b.Len() >= maxSlugLen {
			break
		}
	}
	return b.String()
}
