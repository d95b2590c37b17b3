package valueobjects

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify gera um slug de URL: minúsculo, sem acentos, apenas [a-z0-9] separados por hífen.
// Retorna "" quando o texto não tem nenhum caractere alfanumérico.
func Slugify(text string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		text,
	)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false

	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			pendingHyphen = true
		}
		// demais caracteres são descartados sem separar palavras ("it's" -> "its")
	}

	return b.String()
}

// SlugWithSuffix retorna o candidato n para um slug base: base, base-2, base-3, ...
func SlugWithSuffix(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
