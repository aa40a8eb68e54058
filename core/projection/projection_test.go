package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/intecu/filevault/core/model"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		mimeType string
		want     Kind
	}{
		{"image/png", KindImage},
		{"image/jpeg", KindImage},
		{"video/mp4", KindVideo},
		{"audio/mpeg", KindAudio},
		{"application/zip", KindArchive},
		{"application/x-rar-compressed", KindArchive},
		{"application/x-tar", KindArchive},
		{"application/pdf", KindDocument},
		{"text/plain", KindDocument},
		{"application/msword", KindOther},
		{"application/vnd.oasis.opendocument.text", KindDocument},
		{"application/octet-stream", KindOther},
		{"", KindOther},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, KindOf(tc.mimeType), "mime type %q", tc.mimeType)
	}
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{2560, "2.5 KB"},
		{1048576, "1 MB"},
		{1073741824, "1 GB"},
		// Above GB the unit list is clamped.
		{1649267441664, "1536 GB"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatSize(tc.bytes), "bytes %d", tc.bytes)
	}
}

func TestFormatRelativeDate(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("special-case strings", func(t *testing.T) {
		assert.Equal(t, "Today", FormatRelativeDate(now, now))
		assert.Equal(t, "Today", FormatRelativeDate(now.Add(-6*time.Hour), now))
		assert.Equal(t, "Yesterday", FormatRelativeDate(now.AddDate(0, 0, -1), now))
		assert.Equal(t, "2 days ago", FormatRelativeDate(now.AddDate(0, 0, -2), now))
		assert.Equal(t, "5 days ago", FormatRelativeDate(now.AddDate(0, 0, -5), now))
		assert.Equal(t, "6 days ago", FormatRelativeDate(now.AddDate(0, 0, -6), now))
	})

	t.Run("absolute date from a week on", func(t *testing.T) {
		ts := now.AddDate(0, 0, -10)
		got := FormatRelativeDate(ts, now)
		assert.Equal(t, "1/5/2026", got)
		assert.NotContains(t, got, "ago")
	})
}

func TestProject(t *testing.T) {
	now := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	file := &model.StoredFile{
		ID:        "file_1_abcdefghi",
		Name:      "report.pdf",
		MimeType:  "application/pdf",
		SizeBytes: 1536,
		CreatedAt: now.AddDate(0, 0, -1),
		FolderID:  model.FolderAll,
		Payload:   []byte("irrelevant here"),
	}

	view := Project(file, now)
	assert.Equal(t, DisplayFile{
		ID:       "file_1_abcdefghi",
		Name:     "report.pdf",
		Kind:     KindDocument,
		Size:     "1.5 KB",
		Modified: "Yesterday",
	}, view)
}
