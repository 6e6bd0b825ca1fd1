package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/mwiesner/snipstash/internal/annotate"
	"github.com/mwiesner/snipstash/internal/config"
	"github.com/mwiesner/snipstash/internal/errors"
	"github.com/mwiesner/snipstash/internal/library"
	"github.com/mwiesner/snipstash/internal/ops"
	"github.com/mwiesner/snipstash/internal/query"
	"github.com/mwiesner/snipstash/internal/snippet"
	"github.com/mwiesner/snipstash/internal/store"
	"github.com/mwiesner/snipstash/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(lib *library.Library, annotator *annotate.Client, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "snipstash",
		Usage:   "Local library for AI-chat snippets",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(lib, annotator),
			listCmd(lib),
			showCmd(lib),
			editCmd(lib),
			deleteCmd(lib),
			favoriteCmd(lib),
			moveCmd(lib),
			folderCmd(lib),
			captureCmd(lib),
			annotateCmd(annotator),
			serveCmd(lib, annotator, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(lib *library.Library, annotator *annotate.Client) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Save a snippet (reads raw text from stdin, or consumes a pending capture)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Usage: "Short description"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
			&cli.StringFlag{Name: "url", Usage: "Source URL"},
			&cli.StringFlag{Name: "title", Usage: "Source page title"},
			&cli.StringFlag{Name: "model", Usage: "AI model that produced the text (e.g. " + strings.Join(snippet.SuggestedModels, ", ") + ")"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Folder id to file into"},
			&cli.BoolFlag{Name: "annotate", Aliases: []string{"a"}, Usage: "Derive summary and tags via the annotation service"},
		},
		Action: func(c *cli.Context) error {
			input := ops.CreateInput{
				Summary:         c.String("summary"),
				SourceURL:       c.String("url"),
				SourcePageTitle: c.String("title"),
				SourceModel:     c.String("model"),
				FolderID:        c.String("folder"),
			}
			if tags := c.String("tags"); tags != "" {
				input.Tags = parseTags(tags)
			}

			// Piped text wins; otherwise a pending capture from the
			// handoff slot pre-populates the add flow.
			if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.RawText = text
			} else if pending, ok := lib.ConsumeHandoff(); ok {
				input.RawText = pending.Text
				if input.SourceURL == "" {
					input.SourceURL = pending.URL
				}
				if input.SourcePageTitle == "" {
					input.SourcePageTitle = pending.Title
				}
			}
			if input.RawText == "" {
				return outputError(errors.NewValidation("raw text must be piped via stdin (or pending via 'snipstash capture')"))
			}

			if c.Bool("annotate") {
				flow := lib.NewAddFlow()
				ann, err := flow.Annotate(c.Context, annotator, input.RawText)
				if err != nil {
					// Annotation failure leaves the collection unchanged.
					return outputError(err)
				}
				input.Summary = ann.Summary
				input.Tags = ann.Tags
				created, err := flow.Complete(input)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(created)
			}

			created, err := lib.Create(input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(created)
		},
	}
}

// listCmd creates the list command.
func listCmd(lib *library.Library) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List visible snippets for a filter state",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Substring search over summary, text, and tags"},
			&cli.StringFlag{Name: "tag", Usage: "Exact tag filter"},
			&cli.BoolFlag{Name: "favorites", Usage: "Favorites only"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Folder scope"},
			&cli.StringFlag{Name: "sort", Value: "newest", Usage: "Sort order: newest|oldest|alphabetical"},
		},
		Action: func(c *cli.Context) error {
			sort := query.Sort(c.String("sort"))
			if !query.ValidSort(sort) {
				return outputError(errors.NewValidation("sort must be one of: newest, oldest, alphabetical"))
			}

			items := lib.Query(query.State{
				Search:        c.String("search"),
				Tag:           c.String("tag"),
				FavoritesOnly: c.Bool("favorites"),
				FolderID:      c.String("folder"),
				Sort:          sort,
			})
			return outputJSON(items)
		},
	}
}

// showCmd creates the show command.
func showCmd(lib *library.Library) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a snippet by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return outputError(errors.NewValidation("id is required"))
			}
			for _, it := range lib.Snippets() {
				if it.ID == id {
					return outputJSON(it)
				}
			}
			return outputError(errors.NewNotFound("snippet", id))
		},
	}
}

// editCmd creates the edit command.
func editCmd(lib *library.Library) *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Edit a snippet's summary, tags, model, or page title",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Usage: "New summary"},
			&cli.StringFlag{Name: "tags", Usage: "New comma-separated tags"},
			&cli.StringFlag{Name: "model", Usage: "New source model label"},
			&cli.StringFlag{Name: "title", Usage: "New source page title"},
		},
		Action: func(c *cli.Context) error {
			input := ops.UpdateInput{ID: c.Args().First()}
			if c.IsSet("summary") {
				s := c.String("summary")
				input.Summary = &s
			}
			if c.IsSet("tags") {
				tags := parseTags(c.String("tags"))
				input.Tags = &tags
			}
			if c.IsSet("model") {
				m := c.String("model")
				input.SourceModel = &m
			}
			if c.IsSet("title") {
				t := c.String("title")
				input.SourcePageTitle = &t
			}

			updated, err := lib.Update(input)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(updated)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(lib *library.Library) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a snippet (no-op if absent)",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			deleted, err := lib.Delete(id)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"deleted": deleted, "id": id})
		},
	}
}

// favoriteCmd creates the favorite command.
func favoriteCmd(lib *library.Library) *cli.Command {
	return &cli.Command{
		Name:      "favorite",
		Usage:     "Toggle a snippet's favorite flag",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			isFav, err := lib.ToggleFavorite(id)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"id": id, "isFavorite": isFav})
		},
	}
}

// moveCmd creates the move command.
func moveCmd(lib *library.Library) *cli.Command {
	return &cli.Command{
		Name:      "move",
		Usage:     "File a snippet into a folder (omit --folder to unfile)",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Target folder id"},
		},
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			folderID := c.String("folder")
			if err := lib.AssignFolder(id, folderID); err != nil {
				return outputError(err)
			}
			return outputJSON(map[string]any{"id": id, "folderId": folderID})
		},
	}
}

// folderCmd creates the folder command group.
func folderCmd(lib *library.Library) *cli.Command {
	return &cli.Command{
		Name:  "folder",
		Usage: "Manage folders",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a folder",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					created, err := lib.CreateFolder(strings.Join(c.Args().Slice(), " "))
					if err != nil {
						return outputError(err)
					}
					return outputJSON(created)
				},
			},
			{
				Name:      "rm",
				Usage:     "Delete a folder; its snippets are unfiled, not deleted",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					deleted, err := lib.DeleteFolder(id)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(map[string]any{"deleted": deleted, "id": id})
				},
			},
			{
				Name:  "ls",
				Usage: "List folders",
				Action: func(c *cli.Context) error {
					return outputJSON(lib.Folders())
				},
			},
		},
	}
}

// captureCmd creates the capture command. It arms the handoff slot so
// the next session (or the next `add`) can consume the pending text.
func captureCmd(lib *library.Library) *cli.Command {
	return &cli.Command{
		Name:  "capture",
		Usage: "Stage captured text for the next add (reads text from stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "Source URL"},
			&cli.StringFlag{Name: "title", Usage: "Source page title"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewValidation("text must be piped via stdin"))
			}
			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			if text == "" {
				return outputError(errors.NewValidation("text is required"))
			}
			if err := lib.PutHandoff(store.Handoff{
				Text:  text,
				URL:   c.String("url"),
				Title: c.String("title"),
			}); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return outputJSON(map[string]any{"staged": true})
		},
	}
}

// annotateCmd creates the annotate command.
func annotateCmd(annotator *annotate.Client) *cli.Command {
	return &cli.Command{
		Name:  "annotate",
		Usage: "Derive summary and tags for text without saving (reads text from stdin)",
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewValidation("text must be piped via stdin"))
			}
			text, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			ann, err := annotator.Annotate(c.Context, text)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(ann)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(lib *library.Library, annotator *annotate.Client, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP JSON API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Bind address (overrides config)"},
			&cli.IntFlag{Name: "port", Usage: "Port (overrides config)"},
		},
		Action: func(c *cli.Context) error {
			serveCfg := *cfg
			if c.IsSet("bind") {
				serveCfg.Bind = c.String("bind")
			}
			if c.IsSet("port") {
				serveCfg.Port = c.Int("port")
			}

			log := zerolog.New(os.Stderr).With().Timestamp().Logger()
			srv := web.NewServer(lib, annotator, &serveCfg, log)
			return web.Run(srv, log)
		},
	}
}

// outputJSON prints a value as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if e, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", e.Code, e.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
