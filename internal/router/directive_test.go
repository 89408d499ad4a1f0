package router

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Directive
		ok   bool
	}{
		{
			name: "new slide",
			line: "<!-- SLIDE -->",
			want: DirNewSlide,
			ok:   true,
		},
		{
			name: "slides only",
			line: "<!-- SLIDE-ONLY -->",
			want: DirSlidesOnly,
			ok:   true,
		},
		{
			name: "notes only",
			line: "<!-- NOTES-ONLY -->",
			want: DirNotesOnly,
			ok:   true,
		},
		{
			name: "notes new slide",
			line: "<!-- NOTES -->",
			want: DirNotesNewSlide,
			ok:   true,
		},
		{
			name: "resume all",
			line: "<!-- ALL -->",
			want: DirAll,
			ok:   true,
		},
		{
			name: "leading and trailing whitespace trimmed",
			line: "   <!-- SLIDE -->\t",
			want: DirNewSlide,
			ok:   true,
		},
		{
			name: "lowercase is not a directive",
			line: "<!-- slide -->",
			ok:   false,
		},
		{
			name: "misspelled directive is not a directive",
			line: "<!-- SLIDES -->",
			ok:   false,
		},
		{
			name: "missing inner spaces is not a directive",
			line: "<!--SLIDE-->",
			ok:   false,
		},
		{
			name: "directive with trailing content is not a directive",
			line: "<!-- SLIDE --> extra",
			ok:   false,
		},
		{
			name: "ordinary HTML comment passes through",
			line: "<!-- TODO: tighten this section -->",
			ok:   false,
		},
		{
			name: "plain text",
			line: "Shared intro.",
			ok:   false,
		},
		{
			name: "empty line",
			line: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(tt.line)
			if ok != tt.ok {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestDirectiveString(t *testing.T) {
	// Every directive's String form must round-trip through Classify.
	for _, d := range []Directive{DirNewSlide, DirSlidesOnly, DirNotesOnly, DirNotesNewSlide, DirAll} {
		got, ok := Classify(d.String())
		if !ok {
			t.Errorf("Classify(%q) not recognized", d.String())
			continue
		}
		if got != d {
			t.Errorf("Classify(%q) = %v, want %v", d.String(), got, d)
		}
	}
}
