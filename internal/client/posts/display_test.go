package posts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFileName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "full url", value: "https://cdn.example.com/uploads/resume.pdf", want: "resume.pdf"},
		{name: "path only", value: "/uploads/cv.docx", want: "cv.docx"},
		{name: "bare name", value: "resume.pdf", want: "resume.pdf"},
		{name: "empty", value: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractFileName(tt.value))
		})
	}
}

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "numeric upload suffix", value: "John_Doe_Resume_1712345678.pdf", want: "John_Doe_Resume.pdf"},
		{name: "hash upload suffix", value: "resume_a1b2c3d4.pdf", want: "resume.pdf"},
		{name: "short token kept", value: "resume_v2.pdf", want: "resume_v2.pdf"},
		{name: "no suffix", value: "resume.pdf", want: "resume.pdf"},
		{name: "no extension", value: "resume_123456", want: "resume"},
		{name: "empty", value: "", want: "Untitled resume"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CleanFileName(tt.value))
		})
	}
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "cv.pdf", DisplayName("cv.pdf", "https://x/other.pdf"))
	require.Equal(t, "other.pdf", DisplayName("", "https://x/other.pdf"))
	require.Equal(t, "Untitled resume", DisplayName("", ""))
}

func TestPreviewURL(t *testing.T) {
	t.Run("pdf gets viewer fragment", func(t *testing.T) {
		got := PreviewURL("https://cdn.example.com/cv.pdf", "pdf", "cv.pdf")
		require.Equal(t, "https://cdn.example.com/cv.pdf#toolbar=0&navpanes=0&scrollbar=0", got)
	})

	t.Run("existing fragment untouched", func(t *testing.T) {
		withFragment := "https://cdn.example.com/cv.pdf#page=2"
		require.Equal(t, withFragment, PreviewURL(withFragment, "pdf", "cv.pdf"))
	})

	t.Run("docx goes through office viewer", func(t *testing.T) {
		got := PreviewURL("https://cdn.example.com/cv.docx", "docx", "cv.docx")
		require.Equal(t, "https://view.officeapps.live.com/op/embed.aspx?src=https%3A%2F%2Fcdn.example.com%2Fcv.docx", got)
	})

	t.Run("type inferred from name", func(t *testing.T) {
		got := PreviewURL("https://cdn.example.com/file", "", "cv.pdf")
		require.Contains(t, got, "#toolbar=0")
	})

	t.Run("no preview for unknown types", func(t *testing.T) {
		require.Empty(t, PreviewURL("https://cdn.example.com/cv.txt", "txt", "cv.txt"))
		require.Empty(t, PreviewURL("", "pdf", "cv.pdf"))
	})
}

func TestPreviewImageURL(t *testing.T) {
	t.Run("imagekit pdf", func(t *testing.T) {
		got := PreviewImageURL("https://ik.imagekit.io/demo/cv.pdf", "pdf", "cv.pdf")
		require.Contains(t, got, "tr=pg-1%2Cw-600%2Cbg-FFFFFF")
	})

	t.Run("other hosts skipped", func(t *testing.T) {
		require.Empty(t, PreviewImageURL("https://cdn.example.com/cv.pdf", "pdf", "cv.pdf"))
	})

	t.Run("non pdf skipped", func(t *testing.T) {
		require.Empty(t, PreviewImageURL("https://ik.imagekit.io/demo/cv.docx", "docx", "cv.docx"))
	})
}
