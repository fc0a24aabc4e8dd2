package handlers

import "net/url"

// withNotice appends a buyer-visible notice to a storefront URL. Malformed
// base URLs are returned as-is so the redirect still lands somewhere sane.
func withNotice(base, notice string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("notice", notice)
	u.RawQuery = q.Encode()
	return u.String()
}
