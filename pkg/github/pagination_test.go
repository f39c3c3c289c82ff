package github

import "testing"

func TestLastPage(t *testing.T) {
	tests := []struct {
		name   string
		header string
		page   int
		ok     bool
	}{
		{
			name:   "next and last",
			header: `<https://api.github.com/user/5772887/received_events?page=2>; rel="next", <https://api.github.com/user/5772887/received_events?page=9>; rel="last"`,
			page:   9,
			ok:     true,
		},
		{
			name:   "last only",
			header: `<https://api.github.com/users/alice/received_events?page=4>; rel="last"`,
			page:   4,
			ok:     true,
		},
		{
			name:   "no last relation",
			header: `<https://api.github.com/users/alice/received_events?page=1>; rel="prev"`,
			ok:     false,
		},
		{
			name:   "empty header",
			header: "",
			ok:     false,
		},
		{
			name:   "last link without page param",
			header: `<https://api.github.com/users/alice/received_events>; rel="last"`,
			ok:     false,
		},
		{
			name:   "malformed fragment",
			header: `garbage`,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, ok := lastPage(tt.header)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && page != tt.page {
				t.Errorf("expected page %d, got %d", tt.page, page)
			}
		})
	}
}
