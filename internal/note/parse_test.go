package note

import "testing"

func TestSplitHeader(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantHeader string
		wantBody   string
		wantHas    bool
	}{
		{
			name:       "header with blank separator",
			src:        "---\ntitle: Apple\n---\n\n# Apple\n\nBody text\n",
			wantHeader: "title: Apple",
			wantBody:   "# Apple\n\nBody text\n",
			wantHas:    true,
		},
		{
			name:       "no blank separator keeps first body line",
			src:        "---\ntitle: Apple\n---\n# Apple\nBody\n",
			wantHeader: "title: Apple",
			wantBody:   "# Apple\nBody\n",
			wantHas:    true,
		},
		{
			name:     "no header at all",
			src:      "# Just a heading\n\nSome content\n",
			wantBody: "# Just a heading\n\nSome content\n",
		},
		{
			name:       "dots terminator",
			src:        "---\ntitle: Apple\n...\n\nBody\n",
			wantHeader: "title: Apple",
			wantBody:   "Body\n",
			wantHas:    true,
		},
		{
			name:       "multi-line header",
			src:        "---\ntitle: Apple\ntags:\n  - Fruit\n---\n\nBody\n",
			wantHeader: "title: Apple\ntags:\n  - Fruit",
			wantBody:   "Body\n",
			wantHas:    true,
		},
		{
			name:     "unterminated header is all body",
			src:      "---\ntitle: Apple\nno closing line\n",
			wantBody: "---\ntitle: Apple\nno closing line\n",
		},
		{
			name:       "empty header",
			src:        "---\n---\n\nBody\n",
			wantHeader: "",
			wantBody:   "Body\n",
			wantHas:    true,
		},
		{
			name:       "whitespace-only separator line is swallowed",
			src:        "---\ntitle: Apple\n---\n   \nBody\n",
			wantHeader: "title: Apple",
			wantBody:   "Body\n",
			wantHas:    true,
		},
		{
			name:       "header at end of file",
			src:        "---\ntitle: Apple\n---\n",
			wantHeader: "title: Apple",
			wantBody:   "",
			wantHas:    true,
		},
		{
			name:     "empty file",
			src:      "",
			wantBody: "",
		},
		{
			name:       "body with horizontal rules untouched",
			src:        "---\ntitle: Apple\n---\n\nabove\n---\nbelow\n",
			wantHeader: "title: Apple",
			wantBody:   "above\n---\nbelow\n",
			wantHas:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header, body, has := SplitHeader(tt.src)
			if has != tt.wantHas {
				t.Errorf("hasHeader = %v, want %v", has, tt.wantHas)
			}
			if header != tt.wantHeader {
				t.Errorf("header = %q, want %q", header, tt.wantHeader)
			}
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}
