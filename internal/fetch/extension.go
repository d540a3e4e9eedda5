package fetch

import (
	"mime"
	"net/url"
	"path"
	"strings"
)

// contentTypeExt maps icon content types to file extensions. Vendor
// variants of the ico type are common in the wild.
var contentTypeExt = map[string]string{
	"image/png":                ".png",
	"image/x-icon":             ".ico",
	"image/vnd.microsoft.icon": ".ico",
	"image/jpeg":               ".jpg",
	"image/jpg":                ".jpg",
	"image/svg+xml":            ".svg",
	"image/webp":               ".webp",
	"image/gif":                ".gif",
}

// maxURLExtLen bounds extensions taken from the URL path, leading dot
// included. Longer ones are query-string noise, not real extensions.
const maxURLExtLen = 5

// defaultExt is used when nothing else yields an extension, so no file
// ever ends up extensionless.
const defaultExt = ".png"

// ChooseExtension picks the file extension (with leading dot) for a
// downloaded icon.
//
// Precedence: the server-declared Content-Type first, then the
// extension found in the source URL's path, then a mimetype guess on
// that path, and finally ".png". Servers sometimes mislabel icons, but
// URLs are often more literal, so the URL hint backs up the header
// rather than the other way around.
func ChooseExtension(contentType, sourceURL string) string {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	if ext, ok := contentTypeExt[ct]; ok {
		return ext
	}

	urlExt := extFromURL(sourceURL)
	if urlExt != "" && len(urlExt) <= maxURLExtLen {
		return urlExt
	}

	if guessed := mime.TypeByExtension(urlExt); guessed != "" {
		if i := strings.Index(guessed, ";"); i >= 0 {
			guessed = strings.TrimSpace(guessed[:i])
		}
		if ext, ok := contentTypeExt[guessed]; ok {
			return ext
		}
	}

	return defaultExt
}

// extFromURL extracts the lowercased extension from the path component
// of rawURL, or "" if the URL is unparsable or has none.
func extFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(path.Ext(parsed.Path))
}
