package serializer

import (
	"strings"
	"testing"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/parser"
	"github.com/TobiasForner/pkmt-sub000/internal/resolver"
)

func roundTrip(t *testing.T, src string, dialect document.Dialect) string {
	t.Helper()
	doc, err := parser.Parse(src, dialect, parser.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	out, err := Serialize(doc, dialect, Options{})
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	return out
}

func TestSerializeUnknownDialect(t *testing.T) {
	if _, err := Serialize(document.New(), "org", Options{}); err == nil {
		t.Fatal("expected error for unknown dialect")
	}
}

func TestLogseqRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"flat items", "- first\n- second\n"},
		{"nesting", "- parent\n\t- child\n\t\t- grandchild\n- sibling\n"},
		{"heading block", "- # Title\n\t- body\n"},
		{"continuation lines", "- first line\n  second line\n"},
		{"property", "- task\n  status:: done\n"},
		{"property only block", "- status:: done\n"},
		{"link with rename", "- see [[target#part|alias]] here\n"},
		{"macro embed", "- {{embed [[diagram]]}}\n"},
		{"unicode text", "- üÜäÄöÖß\n"},
		{"code fence", "- ```python\n  print(\"hi\")\n  ```\n"},
		{"empty code fence", "- ```\n  ```\n"},
		{"admonition", "- #+BEGIN_QUOTE\n  **Note**\n  Body text\n  #+END_QUOTE\n"},
		{"blank line between blocks", "- a\n\n- b\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := roundTrip(t, tc.src, document.Logseq); got != tc.src {
				t.Errorf("round trip changed the text:\n in: %q\nout: %q", tc.src, got)
			}
		})
	}
}

func TestOutlinePromotesBareText(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"unicode text run", "üÜäÄöÖß", "- üÜäÄöÖß\n"},
		{"leading bare text", "preamble\n- item\n", "- preamble\n- item\n"},
		{"bare heading", "# Title\n- item\n", "- # Title\n- item\n"},
		{"multi-line prose", "line one\nline two\n", "- line one\n  line two\n"},
		{"multi-line blank run starts a block", "one\n\n\ntwo\n", "- one\n\n\n- two\n"},
		{"single blank line stays in the block", "one\n\ntwo\n", "- one\n\n  two\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := roundTrip(t, tc.src, document.Logseq)
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
			// The promoted form is a fixed point.
			if again := roundTrip(t, got, document.Logseq); again != got {
				t.Errorf("expected fixed point, got %q", again)
			}
		})
	}
}

func TestAdmonitionBodyStaysBare(t *testing.T) {
	src := "- # CompProblem\n" +
		"\t- template:: computational_problem\n" +
		"\t  tags:: [[Computational Problem]]\n" +
		"\t\t- #+BEGIN_QUOTE\n" +
		"\t\t  **Definition**\n" +
		"\t\t  * *Input*: \n" +
		"\t\t  * *Objective*:\n" +
		"\t\t  #+END_QUOTE\n"
	if got := roundTrip(t, src, document.Logseq); got != src {
		t.Errorf("round trip changed the text:\n in: %q\nout: %q", src, got)
	}
}

func TestZKRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"frontmatter", "---\ntitle: Test\ntags: [a, b]\n---\n- item\n"},
		{"property", "- note\n  kind ::= daily\n"},
		{"wikilink embed", "- ![[image]]\n"},
		{"bare heading", "# Title\n- item\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := roundTrip(t, tc.src, document.ZK); got != tc.src {
				t.Errorf("round trip changed the text:\n in: %q\nout: %q", tc.src, got)
			}
		})
	}
}

func TestZKPropertyDelimiterNormalizes(t *testing.T) {
	got := roundTrip(t, "- property::= [test]\n", document.ZK)
	want := "- property ::= [test]\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	// The normalized form is a fixed point.
	if again := roundTrip(t, got, document.ZK); again != got {
		t.Errorf("expected fixed point, got %q", again)
	}
}

func TestObsidianRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"heading and paragraph", "# Title\n\nSome paragraph here.\n"},
		{"inline markdown link", "A paragraph with [alias](other.md) inline.\n"},
		{"self-named link", "see [note](note.md) here\n"},
		{"list", "- item one\n- item two\n\t- nested\n"},
		{"heading then list", "# Title\n\n- item one\n- item two\n"},
		{"frontmatter", "---\ntitle: Test\n---\nBody text.\n"},
		{"wikilink embed", "An embed ![[image]] inline.\n"},
		{"code fence", "```go\nfunc main() {}\n```\n"},
		{"property run", "status:: done\ntags:: [a, b]\n"},
		{"paragraph then property", "intro\nstatus:: done\n"},
		{"list item property", "- item\n  status:: done\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := roundTrip(t, tc.src, document.Obsidian); got != tc.src {
				t.Errorf("round trip changed the text:\n in: %q\nout: %q", tc.src, got)
			}
		})
	}
}

func TestRoundTripIsIdempotent(t *testing.T) {
	sources := map[document.Dialect]string{
		document.Logseq:   "- a\n  x:: 1\n\t- [[b]]\n- #+BEGIN_QUOTE\n  **T**\n  body\n  #+END_QUOTE\n",
		document.ZK:       "---\nt: v\n---\n- a\n  x ::= [1, 2]\n\t- ![[b]]\n",
		document.Obsidian: "# H\n\npara [x](y.md)\n\n- a\n\t- b\n",
	}
	for dialect, src := range sources {
		t.Run(string(dialect), func(t *testing.T) {
			once := roundTrip(t, src, dialect)
			twice := roundTrip(t, once, dialect)
			if once != twice {
				t.Errorf("not idempotent:\nonce:  %q\ntwice: %q", once, twice)
			}
		})
	}
}

func TestConvertLogseqToObsidian(t *testing.T) {
	doc, err := parser.Parse("- # Title\n- point one\n\t- detail\n", document.Logseq, parser.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	out, err := Serialize(doc, document.Obsidian, Options{})
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	for _, want := range []string{"- # Title", "- point one", "\t- detail"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got %q", want, out)
		}
	}
}

func TestConvertObsidianToLogseq(t *testing.T) {
	doc, err := parser.Parse("- item one\n- item two\n\t- nested\n", document.Obsidian, parser.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	out, err := Serialize(doc, document.Logseq, Options{})
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	want := "- item one\n- item two\n\t- nested\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestConvertZKFrontmatterToLogseqProperties(t *testing.T) {
	doc, err := parser.Parse("---\ntitle: Test\n---\n- item\n", document.ZK, parser.Options{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	out, err := Serialize(doc, document.Logseq, Options{})
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	if !strings.Contains(out, "title:: Test") {
		t.Errorf("expected logseq property form, got %q", out)
	}
}

func TestConvertLinkForms(t *testing.T) {
	t.Run("wikilink to markdown link", func(t *testing.T) {
		doc, err := parser.Parse("- see [[other]]\n", document.Logseq, parser.Options{})
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		out, err := Serialize(doc, document.Obsidian, Options{})
		if err != nil {
			t.Fatalf("serialize failed: %v", err)
		}
		if !strings.Contains(out, "[other](other.md)") {
			t.Errorf("expected markdown link, got %q", out)
		}
	})

	t.Run("markdown link to wikilink", func(t *testing.T) {
		doc, err := parser.Parse("see [alias](other.md)\n", document.Obsidian, parser.Options{})
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		out, err := Serialize(doc, document.ZK, Options{})
		if err != nil {
			t.Fatalf("serialize failed: %v", err)
		}
		if !strings.Contains(out, "[[other|alias]]") {
			t.Errorf("expected wikilink with rename, got %q", out)
		}
	})
}

func TestImageEmbedRewrite(t *testing.T) {
	res := resolver.Static{"shot": "/vault/assets/shot.png"}
	doc, err := parser.Parse("- ![[shot]]\n", document.Logseq, parser.Options{
		Dir:      "/vault/pages",
		Resolver: res,
	})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	t.Run("rewritten when image dir is set", func(t *testing.T) {
		out, err := Serialize(doc, document.Logseq, Options{ImageDir: "/vault/images"})
		if err != nil {
			t.Fatalf("serialize failed: %v", err)
		}
		want := "- ![shot](../images/shot.png)\n"
		if out != want {
			t.Errorf("expected %q, got %q", want, out)
		}
	})

	t.Run("kept as embed without image dir", func(t *testing.T) {
		out, err := Serialize(doc, document.Logseq, Options{})
		if err != nil {
			t.Fatalf("serialize failed: %v", err)
		}
		if !strings.Contains(out, "{{embed [[shot]]}}") {
			t.Errorf("expected embed macro, got %q", out)
		}
	})
}

func TestSerializeFinalNewline(t *testing.T) {
	doc := document.New(document.NewComponent(&document.ListItem{
		Body: document.New(document.NewComponent(&document.Text{Raw: "hand built"})),
	}))
	out, err := Serialize(doc, document.Logseq, Options{})
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	if out != "- hand built\n" {
		t.Errorf("expected trailing newline, got %q", out)
	}
}
