package github

import (
	"net/url"
	"strconv"
	"strings"
)

// lastPage extracts the page number of the rel="last" link from a GitHub
// Link response header, e.g.
//
//	<https://api.github.com/user/123/received_events?page=2>; rel="next",
//	<https://api.github.com/user/123/received_events?page=7>; rel="last"
//
// The second return value is false when no parsable last link is present.
func lastPage(header string) (int, bool) {
	if header == "" {
		return 0, false
	}

	for _, link := range strings.Split(header, ",") {
		sections := strings.Split(link, ";")
		if len(sections) < 2 {
			continue
		}

		isLast := false
		for _, attr := range sections[1:] {
			if strings.TrimSpace(attr) == `rel="last"` {
				isLast = true
				break
			}
		}
		if !isLast {
			continue
		}

		target := strings.Trim(strings.TrimSpace(sections[0]), "<>")
		u, err := url.Parse(target)
		if err != nil {
			return 0, false
		}
		page, err := strconv.Atoi(u.Query().Get("page"))
		if err != nil || page < 1 {
			return 0, false
		}
		return page, true
	}

	return 0, false
}
