package inbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/TobiasForner/pkmt-sub000/internal/atomicfile"
	"github.com/TobiasForner/pkmt-sub000/internal/dates"
	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/logger"
	"github.com/TobiasForner/pkmt-sub000/internal/parser"
	"github.com/TobiasForner/pkmt-sub000/internal/serializer"
)

// Filer turns tasks into notes in the vault.
type Filer struct {
	VaultRoot string
	Dir       string // vault-relative directory for new notes
	Dialect   document.Dialect
	Template  string // vault-relative template note, optional

	// Now is the clock used for the capture date. Defaults to time.Now.
	Now func() time.Time
}

// File writes one task as a new note and returns the note's path. title is
// the scraped page title and may be empty, in which case the task's own
// title is used.
//
// The template, when configured, is parsed in the vault dialect and filled
// in place: {{title}}, {{url}}, {{due}} and {{date}} placeholders are
// replaced in every text run and property value, then the task metadata is
// attached as properties on the first list item.
func (f *Filer) File(task Task, title string) (string, error) {
	if title == "" {
		title = task.Title
	}
	if title == "" {
		return "", fmt.Errorf("task %q has no title", task.ID)
	}

	doc, err := f.loadTemplate()
	if err != nil {
		return "", err
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	fillPlaceholders(doc, map[string]string{
		"{{title}}": title,
		"{{url}}":   task.URL,
		"{{due}}":   task.Due,
		"{{date}}":  now().Format("2006-01-02"),
	})
	attachTaskProps(doc, task, now().Format("2006-01-02"))
	doc.Normalize()

	out, err := serializer.Serialize(doc, f.Dialect, serializer.Options{})
	if err != nil {
		return "", fmt.Errorf("serialize note: %w", err)
	}

	path, err := f.notePath(title)
	if err != nil {
		return "", err
	}
	if err := atomicfile.WriteFile(path, []byte(out), 0); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}

	logger.Info("filed task", "task", task.ID, "note", path)
	return path, nil
}

func (f *Filer) loadTemplate() (*document.Document, error) {
	if f.Template == "" {
		return defaultNote(), nil
	}
	path := f.Template
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.VaultRoot, path)
	}
	doc, err := parser.ParseFile(path, f.Dialect)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	return doc, nil
}

// defaultNote is the note skeleton used when no template is configured: a
// single block holding the title placeholder.
func defaultNote() *document.Document {
	item := &document.ListItem{
		Body: document.New(document.NewComponent(&document.Text{Raw: "{{title}}\n"})),
	}
	return document.New(document.NewComponent(item))
}

// notePath picks a slugified file name under the inbox directory, suffixing
// a short random id when the name is already taken.
func (f *Filer) notePath(title string) (string, error) {
	dir := filepath.Join(f.VaultRoot, f.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create inbox directory: %w", err)
	}

	name := slug.Make(title)
	if name == "" {
		name = "task"
	}
	path := filepath.Join(dir, name+".md")
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(dir, name+"-"+uuid.NewString()[:8]+".md")
	}
	return path, nil
}

// fillPlaceholders substitutes placeholder strings in every text run and
// string property value of the tree, template body included.
func fillPlaceholders(doc *document.Document, repl map[string]string) {
	for _, c := range doc.Components {
		fillComponent(c, repl)
	}
}

func fillComponent(c *document.Component, repl map[string]string) {
	switch el := c.Element.(type) {
	case *document.Text:
		el.Raw = substitute(el.Raw, repl)
	case *document.Heading:
		el.Text = substitute(el.Text, repl)
	case *document.ListItem:
		fillPlaceholders(el.Body, repl)
		fillProps(el.Props, repl)
	case *document.List:
		for _, it := range el.Items {
			fillListElem(it, repl)
		}
	case *document.Admonition:
		for _, b := range el.Body {
			fillComponent(b, repl)
		}
	case *document.Properties:
		fillProps(el.Props, repl)
	case *document.Frontmatter:
		fillProps(el.Props, repl)
	}
	for _, child := range c.Children {
		fillComponent(child, repl)
	}
}

func fillListElem(it *document.ListElem, repl map[string]string) {
	fillPlaceholders(it.Contents, repl)
	for _, child := range it.Children {
		fillListElem(child, repl)
	}
}

func fillProps(props []*document.Property, repl map[string]string) {
	for _, p := range props {
		for _, v := range p.Values {
			if s, ok := v.(*document.StringValue); ok {
				s.Text = substitute(s.Text, repl)
			}
		}
	}
}

func substitute(s string, repl map[string]string) string {
	for k, v := range repl {
		s = strings.ReplaceAll(s, k, v)
	}
	return s
}

// attachTaskProps records the task's identity on the note so later inbox
// runs can skip tasks that are already filed. The properties go on the
// first list item; a note without one gets a frontmatter block instead.
func attachTaskProps(doc *document.Document, task Task, date string) {
	id := task.ID
	if id == "" {
		id = uuid.NewString()
	}
	props := []*document.Property{
		document.NewProperty("task-id", &document.StringValue{Text: id}),
		document.NewProperty("captured", &document.StringValue{Text: date}),
	}
	if task.URL != "" {
		props = append(props, document.NewProperty("source", &document.StringValue{Text: task.URL}))
	}
	if task.Due != "" {
		props = append(props, document.NewProperty("due", &document.StringValue{Text: dates.NormalizeDay(task.Due)}))
	}

	item := doc.FindComponent(func(c *document.Component) bool {
		_, ok := c.Element.(*document.ListItem)
		return ok
	})
	if item != nil {
		li := item.Element.(*document.ListItem)
		li.Props = append(li.Props, props...)
		return
	}
	doc.InsertComponent(0, document.NewComponent(&document.Frontmatter{Props: props}))
}
