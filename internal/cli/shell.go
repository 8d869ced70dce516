package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	models "mdvault/internal/domain/models/vault"
	vaultSvc "mdvault/internal/domain/services/vault"
	"mdvault/internal/service/vault/formatting"
)

const prompt = "vault> "

// Shell is a line-oriented presenter over one session. Each command maps to
// one session operation; the tree is re-rendered on demand with "tree".
type Shell struct {
	session  vaultSvc.FolderSession
	renderer *formatting.TreeRenderer
	out      io.Writer
	commands map[string]shellCommand
}

type shellCommand struct {
	usage   string
	help    string
	minArgs int
	maxArgs int
	run     func(ctx context.Context, args []string) error
}

// NewShell creates a shell on a loaded session
func NewShell(session vaultSvc.FolderSession, out io.Writer) *Shell {
	sh := &Shell{
		session:  session,
		renderer: formatting.NewTreeRenderer(),
		out:      out,
	}
	sh.commands = map[string]shellCommand{
		"tree":     {usage: "tree", help: "show the folder tree", run: sh.tree},
		"docs":     {usage: "docs", help: "list documents with their ids", run: sh.docs},
		"show":     {usage: "show <doc-id>", help: "fetch one document's current metadata", minArgs: 1, maxArgs: 1, run: sh.show},
		"mkdir":    {usage: "mkdir <path>", help: "create an empty folder", minArgs: 1, maxArgs: 1, run: sh.mkdir},
		"rename":   {usage: "rename <path> <new-path>", help: "rename a folder and everything below it", minArgs: 2, maxArgs: 2, run: sh.rename},
		"rmdir":    {usage: "rmdir <path>", help: "delete a folder, moving its documents to Unsorted", minArgs: 1, maxArgs: 1, run: sh.rmdir},
		"mv":       {usage: "mv <doc-id> [path]", help: "move a document (no path = Unsorted)", minArgs: 1, maxArgs: 2, run: sh.mv},
		"rm":       {usage: "rm <doc-id>", help: "delete a document", minArgs: 1, maxArgs: 1, run: sh.rm},
		"collapse": {usage: "collapse <path>", help: "collapse a folder", minArgs: 1, maxArgs: 1, run: sh.collapse(true)},
		"expand":   {usage: "expand <path>", help: "expand a folder", minArgs: 1, maxArgs: 1, run: sh.collapse(false)},
		"reload":   {usage: "reload", help: "fetch the document list again", run: sh.reload},
		"help":     {usage: "help", help: "show this help", run: sh.help},
	}
	return sh
}

// Run reads commands from in until EOF or "exit".
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(sh.out, prompt)
	for scanner.Scan() {
		quit, err := sh.Exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintln(sh.out, "✗", err)
		}
		if quit {
			return nil
		}
		fmt.Fprint(sh.out, prompt)
	}
	fmt.Fprintln(sh.out)
	return scanner.Err()
}

// Exec runs one command line. quit is true for "exit" and "quit".
func (sh *Shell) Exec(ctx context.Context, line string) (quit bool, err error) {
	args, err := splitArgs(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}

	name, args := args[0], args[1:]
	if name == "exit" || name == "quit" {
		return true, nil
	}

	cmd, ok := sh.commands[name]
	if !ok {
		return false, fmt.Errorf("unknown command %q (try help)", name)
	}
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return false, fmt.Errorf("usage: %s", cmd.usage)
	}
	return false, cmd.run(ctx, args)
}

func (sh *Shell) tree(ctx context.Context, args []string) error {
	fmt.Fprintln(sh.out, sh.renderer.RenderView(sh.session.Render(nil)))
	return nil
}

func (sh *Shell) docs(ctx context.Context, args []string) error {
	docs := sh.session.Documents()
	if len(docs) == 0 {
		fmt.Fprintln(sh.out, formatting.NoDocuments)
		return nil
	}
	for _, doc := range docs {
		location := "Unsorted"
		if doc.InFolder() {
			location = *doc.Project
		}
		fmt.Fprintf(sh.out, "%6s  %-40s %s\n", doc.ID, doc.Label(), location)
	}
	return nil
}

func (sh *Shell) show(ctx context.Context, args []string) error {
	doc, err := sh.session.Document(ctx, args[0])
	if err != nil {
		return err
	}
	location := "Unsorted"
	if doc.InFolder() {
		location = *doc.Project
	}
	fmt.Fprintf(sh.out, "id:      %s\ntitle:   %s\nfolder:  %s\n", doc.ID, doc.Label(), location)
	if len(doc.Tags) > 0 {
		fmt.Fprintf(sh.out, "tags:    %s\n", strings.Join(doc.Tags, ", "))
	}
	if !doc.UpdatedAt.IsZero() {
		fmt.Fprintf(sh.out, "updated: %s\n", doc.UpdatedAt.Format(time.RFC3339))
	}
	return nil
}

func (sh *Shell) mkdir(ctx context.Context, args []string) error {
	parent, name := "", args[0]
	if i := strings.LastIndex(args[0], models.PathSeparator); i >= 0 {
		parent, name = args[0][:i], args[0][i+1:]
	}
	path, err := sh.session.CreateFolder(parent, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "created %s\n", path)
	return nil
}

func (sh *Shell) rename(ctx context.Context, args []string) error {
	res, err := sh.session.RenameFolder(ctx, args[0], args[1])
	if err != nil {
		return cascadeFailure(res, err)
	}
	if res.NewPath == res.Path {
		fmt.Fprintln(sh.out, "nothing to rename")
		return nil
	}
	fmt.Fprintf(sh.out, "renamed %s to %s (%d documents moved)\n", res.Path, res.NewPath, len(res.Applied))
	sh.warnStale(res)
	return nil
}

func (sh *Shell) rmdir(ctx context.Context, args []string) error {
	node, err := sh.session.Lookup(args[0])
	if err != nil {
		return err
	}
	if n := len(node.CollectDocuments()); n > 0 {
		fmt.Fprintf(sh.out, "%d documents will move to Unsorted\n", n)
	}

	res, err := sh.session.DeleteFolder(ctx, args[0], node)
	if err != nil {
		return cascadeFailure(res, err)
	}
	fmt.Fprintf(sh.out, "deleted %s\n", res.Path)
	sh.warnStale(res)
	return nil
}

func (sh *Shell) mv(ctx context.Context, args []string) error {
	path := ""
	if len(args) == 2 {
		path = args[1]
	}
	doc, err := sh.session.MoveDocument(ctx, args[0], path)
	if err != nil {
		return err
	}
	target := "Unsorted"
	if doc.InFolder() {
		target = *doc.Project
	}
	fmt.Fprintf(sh.out, "moved %s to %s\n", doc.Label(), target)
	return nil
}

func (sh *Shell) rm(ctx context.Context, args []string) error {
	if err := sh.session.DeleteDocument(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "deleted document %s\n", args[0])
	return nil
}

func (sh *Shell) collapse(collapsed bool) func(ctx context.Context, args []string) error {
	return func(ctx context.Context, args []string) error {
		sh.session.SetCollapsed(args[0], collapsed)
		return nil
	}
}

func (sh *Shell) reload(ctx context.Context, args []string) error {
	if err := sh.session.Reload(ctx); err != nil {
		return fmt.Errorf("reload failed, showing cached documents: %w", err)
	}
	fmt.Fprintf(sh.out, "%d documents\n", len(sh.session.Documents()))
	return nil
}

func (sh *Shell) help(ctx context.Context, args []string) error {
	names := make([]string, 0, len(sh.commands))
	for name := range sh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd := sh.commands[name]
		fmt.Fprintf(sh.out, "  %-28s %s\n", cmd.usage, cmd.help)
	}
	fmt.Fprintf(sh.out, "  %-28s %s\n", "exit", "leave the shell")
	return nil
}

func (sh *Shell) warnStale(res *vaultSvc.CascadeResult) {
	if !res.Reloaded {
		fmt.Fprintln(sh.out, "⚠ reload failed; run reload to refresh")
	}
}

// cascadeFailure describes where a cascade stopped.
func cascadeFailure(res *vaultSvc.CascadeResult, err error) error {
	if res == nil || res.Failed == "" {
		return err
	}
	return fmt.Errorf("stopped at document %s after moving %d, %d not attempted: %w",
		res.Failed, len(res.Applied), len(res.Remaining), err)
}

// splitArgs splits a command line on spaces, keeping quoted runs together so
// folder names with spaces can be typed.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		inArg   bool
	)
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, current.String())
				current.Reset()
				inArg = false
			}
		default:
			current.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inArg {
		args = append(args, current.String())
	}
	return args, nil
}
