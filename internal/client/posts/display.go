package posts

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	pdfViewerFragment = "toolbar=0&navpanes=0&scrollbar=0"
	officeViewerBase  = "https://view.officeapps.live.com/op/embed.aspx?src="
)

// uploadSuffix matches the noise the storage layer appends to file names:
// a trailing "_12345" or "_a1b2c3d4" style token before the extension.
var uploadSuffix = regexp.MustCompile(`(?i)^(\d+|[a-z0-9]{6,})$`)

// ExtractFileName pulls the last path segment out of a file URL. Values that
// do not parse as URLs are returned unchanged.
func ExtractFileName(value string) string {
	if value == "" {
		return ""
	}
	parsed, err := url.Parse(value)
	if err != nil || parsed.Path == "" {
		return value
	}
	segments := strings.Split(parsed.Path, "/")
	return segments[len(segments)-1]
}

// CleanFileName strips the upload suffix from a stored file name, keeping the
// extension. Empty input becomes the placeholder title.
func CleanFileName(value string) string {
	if value == "" {
		return "Untitled resume"
	}

	lastDot := strings.LastIndex(value, ".")
	base, ext := value, ""
	if lastDot > 0 {
		base, ext = value[:lastDot], value[lastDot:]
	}

	parts := strings.Split(base, "_")
	if len(parts) > 1 && uploadSuffix.MatchString(parts[len(parts)-1]) {
		cleaned := strings.TrimSpace(strings.Join(parts[:len(parts)-1], "_"))
		if cleaned != "" {
			return cleaned + ext
		}
	}

	return value
}

// DisplayName returns the title shown for a post: the cleaned stored file
// name, falling back to the name embedded in the file URL.
func DisplayName(fileName, fileURL string) string {
	name := fileName
	if name == "" {
		name = ExtractFileName(fileURL)
	}
	return CleanFileName(name)
}

func matchesType(fileURL, fileType, fileName, ext string) bool {
	return strings.EqualFold(fileType, ext) ||
		strings.HasSuffix(strings.ToLower(fileName), "."+ext) ||
		strings.Contains(strings.ToLower(fileURL), "."+ext)
}

// PreviewURL derives the inline viewer address for a resume file: PDFs get
// the chrome-suppressing viewer fragment, doc/docx go through the Office
// embed viewer. Returns "" when no inline preview exists.
func PreviewURL(fileURL, fileType, fileName string) string {
	if fileURL == "" {
		return ""
	}

	if matchesType(fileURL, fileType, fileName, "pdf") {
		if strings.Contains(fileURL, "#") {
			return fileURL
		}
		return fileURL + "#" + pdfViewerFragment
	}

	if matchesType(fileURL, fileType, fileName, "docx") || matchesType(fileURL, fileType, fileName, "doc") {
		return officeViewerBase + url.QueryEscape(fileURL)
	}

	return ""
}

// PreviewImageURL derives a first-page thumbnail for PDFs hosted on
// imagekit.io, which can transform a PDF page into an image. Returns "" for
// anything else.
func PreviewImageURL(fileURL, fileType, fileName string) string {
	if fileURL == "" || !matchesType(fileURL, fileType, fileName, "pdf") {
		return ""
	}

	parsed, err := url.Parse(fileURL)
	if err != nil || !strings.Contains(parsed.Hostname(), "imagekit.io") {
		return ""
	}

	q := parsed.Query()
	q.Set("tr", "pg-1,w-600,bg-FFFFFF")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
