package inbox

import (
	"context"
	"fmt"

	"github.com/TobiasForner/pkmt-sub000/internal/document"
	"github.com/TobiasForner/pkmt-sub000/internal/logger"
	"github.com/TobiasForner/pkmt-sub000/internal/vault"
)

// Result summarizes one inbox run.
type Result struct {
	Filed   []string // paths of newly written notes
	Skipped int      // tasks already present in the vault
}

// Run fetches the open tasks and files every task not yet present in the
// vault. Page titles are scraped when a task carries a URL; scrape failures
// fall back to the task's own title.
func Run(ctx context.Context, client *Client, filer *Filer) (*Result, error) {
	tasks, err := client.FetchOpenTasks(ctx)
	if err != nil {
		return nil, err
	}

	seen, err := filedTaskIDs(filer.VaultRoot, filer.Dialect)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, task := range tasks {
		if task.ID != "" && seen[task.ID] {
			res.Skipped++
			continue
		}

		title := ""
		if task.URL != "" {
			title, err = client.PageTitle(ctx, task.URL)
			if err != nil {
				logger.Warn("failed to fetch page title", "task", task.ID, "err", err)
				title = ""
			}
		}

		path, err := filer.File(task, title)
		if err != nil {
			return res, fmt.Errorf("file task %q: %w", task.ID, err)
		}
		res.Filed = append(res.Filed, path)
	}
	return res, nil
}

// filedTaskIDs collects the task-id properties of every note in the vault.
func filedTaskIDs(root string, dialect document.Dialect) (map[string]bool, error) {
	seen := make(map[string]bool)
	err := vault.WalkNotes(root, dialect, func(r vault.WalkResult) error {
		if r.Error != nil || r.Document == nil {
			return nil
		}
		collectTaskIDs(r.Document, seen)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan vault for filed tasks: %w", err)
	}
	return seen, nil
}

func collectTaskIDs(doc *document.Document, seen map[string]bool) {
	doc.FindComponent(func(c *document.Component) bool {
		var props []*document.Property
		switch el := c.Element.(type) {
		case *document.ListItem:
			props = el.Props
		case *document.Properties:
			props = el.Props
		case *document.Frontmatter:
			props = el.Props
		}
		for _, p := range props {
			if p.Name == "task-id" {
				if id := p.FirstString(); id != "" {
					seen[id] = true
				}
			}
		}
		return false // visit everything
	})
}
