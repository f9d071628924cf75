package config

import (
	"regexp"
)

// ModuleListExtractor pulls the ordered list of module identifiers out of a
// configuration file's contents. Malformed input yields an empty list.
type ModuleListExtractor interface {
	Extract(content []byte) []string
}

// PHPArrayExtractor reads the keys of a bracketed PHP array such as
//
//	'modules' => [
//	    'Magento_Store' => 1,
//	    'Acme_Checkout' => 0,
//	],
//
// Every quoted string inside the brackets is returned, in order.
type PHPArrayExtractor struct {
	section *regexp.Regexp
}

var quotedString = regexp.MustCompile(`'([^']+)'|"([^"]+)"`)

// NewPHPArrayExtractor creates an extractor for the array stored under key.
func NewPHPArrayExtractor(key string) *PHPArrayExtractor {
	pattern := `(?s)['"]` + regexp.QuoteMeta(key) + `['"]\s*=>\s*\[(.*?)\]`
	return &PHPArrayExtractor{section: regexp.MustCompile(pattern)}
}

// Extract implements ModuleListExtractor.
func (e *PHPArrayExtractor) Extract(content []byte) []string {
	match := e.section.FindSubmatch(content)
	if match == nil || len(match[1]) == 0 {
		return []string{}
	}

	quoted := quotedString.FindAllSubmatch(match[1], -1)
	names := make([]string, 0, len(quoted))
	for _, q := range quoted {
		if len(q[1]) > 0 {
			names = append(names, string(q[1]))
		} else {
			names = append(names, string(q[2]))
		}
	}
	return names
}
