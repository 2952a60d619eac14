package browser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// audioExtensions are the playable file types shown in the listing.
var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".flac": true,
}

// Entry is one row in the listing.
type Entry struct {
	Path  string
	Name  string
	IsDir bool
}

// Browser lists directories and audio files under a current directory
// with a wrapping selection cursor.
type Browser struct {
	dir      string
	entries  []Entry
	selected int
}

// New creates a browser rooted at dir and reads its contents.
// An unreadable dir yields an empty listing, not an error; the user
// can still navigate to the parent.
func New(dir string) *Browser {
	if dir == "" {
		dir = "."
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	b := &Browser{dir: dir}
	b.Refresh()
	return b
}

// Dir returns the current directory.
func (b *Browser) Dir() string {
	return b.dir
}

// Entries returns the current listing.
func (b *Browser) Entries() []Entry {
	return b.entries
}

// SelectedIndex returns the cursor position.
func (b *Browser) SelectedIndex() int {
	return b.selected
}

// Refresh rereads the current directory: directories plus audio files,
// directories first, each group sorted by name.
func (b *Browser) Refresh() {
	b.entries = b.entries[:0]

	dirEntries, err := os.ReadDir(b.dir)
	if err != nil {
		b.selected = 0
		return
	}
	for _, de := range dirEntries {
		if !de.IsDir() && !IsAudioFile(de.Name()) {
			continue
		}
		b.entries = append(b.entries, Entry{
			Path:  filepath.Join(b.dir, de.Name()),
			Name:  de.Name(),
			IsDir: de.IsDir(),
		})
	}

	sort.Slice(b.entries, func(i, j int) bool {
		if b.entries[i].IsDir != b.entries[j].IsDir {
			return b.entries[i].IsDir
		}
		return b.entries[i].Name < b.entries[j].Name
	})

	if b.selected >= len(b.entries) {
		b.selected = 0
	}
}

// Next moves the cursor down, wrapping at the end.
func (b *Browser) Next() {
	if len(b.entries) > 0 {
		b.selected = (b.selected + 1) % len(b.entries)
	}
}

// Prev moves the cursor up, wrapping at the start.
func (b *Browser) Prev() {
	if len(b.entries) == 0 {
		return
	}
	if b.selected == 0 {
		b.selected = len(b.entries) - 1
	} else {
		b.selected--
	}
}

// Selected returns the entry under the cursor, or nil when the
// listing is empty.
func (b *Browser) Selected() *Entry {
	if len(b.entries) == 0 {
		return nil
	}
	return &b.entries[b.selected]
}

// Enter descends into the selected directory. Selecting a file is the
// caller's concern (it triggers playback, not navigation).
func (b *Browser) Enter() {
	sel := b.Selected()
	if sel == nil || !sel.IsDir {
		return
	}
	b.dir = sel.Path
	b.selected = 0
	b.Refresh()
}

// Parent moves to the parent directory.
func (b *Browser) Parent() {
	parent := filepath.Dir(b.dir)
	if parent == b.dir {
		return
	}
	b.dir = parent
	b.selected = 0
	b.Refresh()
}

// IsAudioFile reports whether the name has a playable extension.
func IsAudioFile(name string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}
