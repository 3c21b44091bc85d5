package triggers

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var linkPattern = regexp.MustCompile(`https?://[^\s<>]+`)

// linkedDomains returns the registrable domain (eTLD+1) of every link in text.
func linkedDomains(text string) []string {
	var domains []string
	for _, raw := range linkPattern.FindAllString(text, -1) {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
		if host == "" {
			continue
		}
		domain, err := publicsuffix.EffectiveTLDPlusOne(host)
		if err != nil {
			domain = host
		}
		domains = append(domains, domain)
	}
	return domains
}
