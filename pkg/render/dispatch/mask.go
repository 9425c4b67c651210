package dispatch

import (
	"net/url"
	"strings"

	masker "github.com/goliatone/go-masker"
)

const maskRule = "preserveEnds(2,2)"

var sensitiveParams = map[string]struct{}{
	"token": {}, "access_token": {}, "refresh_token": {},
	"api_key": {}, "apikey": {}, "key": {},
	"signature": {}, "sig": {}, "secret": {},
	"x-amz-signature": {}, "x-amz-credential": {}, "x-amz-security-token": {},
}

// MaskHref returns href with credential-like query values and userinfo
// masked, for log output. Hrefs that do not parse are masked whole.
func MaskHref(href string) string {
	if href == "" || !strings.ContainsAny(href, "?@") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return maskString(href)
	}
	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
		}
	}
	if u.RawQuery == "" {
		return u.String()
	}
	pairs := strings.Split(u.RawQuery, "&")
	for i, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		if _, ok := sensitiveParams[strings.ToLower(name)]; ok {
			pairs[i] = name + "=" + maskString(value)
		}
	}
	u.RawQuery = strings.Join(pairs, "&")
	return u.String()
}

func maskString(value string) string {
	if value == "" {
		return ""
	}
	if masked, err := masker.Default.String(maskRule, value); err == nil {
		return masked
	}
	runes := []rune(value)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
