package audio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"github.com/pkg/errors"
)

// Decoder opens a source identifier and decodes it into a stream.
// The engine holds one; tests and caching layers can substitute it.
type Decoder interface {
	Open(source string) (beep.StreamSeekCloser, beep.Format, error)
}

// fileDecoder decodes local files, dispatching on the extension.
// Anything without a recognized extension is tried as WAV.
type fileDecoder struct{}

func (fileDecoder) Open(source string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(source)
	if err != nil {
		return nil, beep.Format{}, errors.Wrapf(ErrOpen, "%s: %v", source, err)
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(source)) {
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	default:
		stream, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(ErrDecode, "%s: %v", source, err)
	}
	return stream, format, nil
}
