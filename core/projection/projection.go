// Package projection derives display-ready views from stored file records.
// Everything here is a pure function of its inputs; nothing touches the
// storage engine and nothing is ever persisted.
package projection

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/intecu/filevault/core/model"
)

// Kind is the coarse display classification of a stored file.
type Kind string

const (
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindArchive  Kind = "archive"
	KindDocument Kind = "document"
	KindOther    Kind = "other"
)

// KindOf classifies a content type. The checks run in priority order because
// the substring matches are not mutually exclusive.
func KindOf(mimeType string) Kind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return KindAudio
	case containsAny(mimeType, "zip", "rar", "tar"):
		return KindArchive
	case containsAny(mimeType, "pdf", "document", "text"):
		return KindDocument
	default:
		return KindOther
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}

var sizeUnits = [...]string{"Bytes", "KB", "MB", "GB"}

// FormatSize renders a byte count with the largest fitting unit, rounded to
// two decimal places with trailing zeros dropped: 1536 becomes "1.5 KB".
func FormatSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}

	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i < 0 {
		i = 0
	}
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}

	v := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

const millisPerDay = 24 * 60 * 60 * 1000

// FormatRelativeDate renders ts relative to now: "Today", "Yesterday",
// "<n> days ago" up to six days, then an absolute date. It is a function of
// now and must be recomputed on every projection.
func FormatRelativeDate(ts, now time.Time) string {
	days := now.Sub(ts).Milliseconds() / millisPerDay
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return ts.Format("1/2/2006")
	}
}

// DisplayFile is the view the UI renders in lists and grids.
type DisplayFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     Kind   `json:"type"`
	Size     string `json:"size"`
	Modified string `json:"modified"`
}

// Project derives the display view of a stored record at the given time.
func Project(f *model.StoredFile, now time.Time) DisplayFile {
	return DisplayFile{
		ID:       f.ID,
		Name:     f.Name,
		Kind:     KindOf(f.MimeType),
		Size:     FormatSize(f.SizeBytes),
		Modified: FormatRelativeDate(f.CreatedAt, now),
	}
}
