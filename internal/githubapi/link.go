package githubapi

import (
	"net/http"
	"strings"
)

const (
	linkHeaderNameConstant         = "Link"
	linkEntrySeparatorConstant     = ","
	linkParameterSeparatorConstant = ";"
	linkTargetPrefixConstant       = "<"
	linkTargetSuffixConstant       = ">"
	linkRelationKeyConstant        = "rel"
	linkKeyValueSeparatorConstant  = "="
	linkRelationNextConstant       = "next"
	linkQuoteCharactersConstant    = `"`
)

// nextLinkTarget returns the URL of the rel="next" entry across all Link
// headers, or an empty string when there is none. The target is opaque: it is
// followed verbatim whatever its query carries.
func nextLinkTarget(header http.Header) string {
	for _, headerValue := range header.Values(linkHeaderNameConstant) {
		for _, linkEntry := range strings.Split(headerValue, linkEntrySeparatorConstant) {
			segments := strings.Split(linkEntry, linkParameterSeparatorConstant)
			target := strings.TrimSpace(segments[0])
			if !strings.HasPrefix(target, linkTargetPrefixConstant) || !strings.HasSuffix(target, linkTargetSuffixConstant) {
				continue
			}
			target = strings.TrimSuffix(strings.TrimPrefix(target, linkTargetPrefixConstant), linkTargetSuffixConstant)
			if len(target) == 0 {
				continue
			}

			for _, parameter := range segments[1:] {
				key, value, found := strings.Cut(strings.TrimSpace(parameter), linkKeyValueSeparatorConstant)
				if !found || !strings.EqualFold(strings.TrimSpace(key), linkRelationKeyConstant) {
					continue
				}
				for _, relation := range strings.Fields(strings.Trim(strings.TrimSpace(value), linkQuoteCharactersConstant)) {
					if strings.EqualFold(relation, linkRelationNextConstant) {
						return target
					}
				}
			}
		}
	}
	return ""
}
