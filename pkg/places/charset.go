package places

import (
	"fmt"
	"mime"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeBody converts a response body to UTF-8 text using the charset of the
// Content-Type header. A leading BOM always wins over the header.
func decodeBody(body []byte, contentType string) (string, error) {
	enc := charsetEncoding(contentType)

	decoded, _, err := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), body)
	if err != nil {
		return "", fmt.Errorf("failed to decode body: %w", err)
	}
	return string(decoded), nil
}

func charsetEncoding(contentType string) encoding.Encoding {
	if contentType == "" {
		return unicode.UTF8
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return unicode.UTF8
	}

	charset := strings.TrimSpace(params["charset"])
	if charset == "" {
		return unicode.UTF8
	}

	enc, err := htmlindex.Get(charset)
	if err != nil || enc == nil {
		return unicode.UTF8
	}
	return enc
}
