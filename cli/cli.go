// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for an rpgkit session.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/rpgkit/model/entity"
	"github.com/nathoo/rpgkit/save"
	"github.com/nathoo/rpgkit/session"
	"github.com/nathoo/rpgkit/types"
)

// CLI handles line-based interaction with the user.
type CLI struct {
	Session   *session.Session
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	Format    entity.Format // default for /dump, /save and /load
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given session.
func New(s *session.Session, saveDir string, format entity.Format) *CLI {
	return &CLI{
		Session: s,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: saveDir,
		Format:  format,
	}
}

// Run shows the pack banner and the starting sheet, then loops:
// prompt → input → dispatch → output.
func (c *CLI) Run() {
	meta := c.Session.Catalog.Meta
	if meta.Title != "" {
		c.printLine(banner(meta.Title, meta.Author, meta.Version))
		c.printLine("")
	}
	c.printResult(c.Session.Step("sheet"))

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Session.Step(input)
		c.printResult(result)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

func banner(title, author, version string) string {
	s := title
	if version != "" {
		s += " v" + version
	}
	if author != "" {
		s += " by " + author
	}
	return s
}

// handleMeta dispatches meta-commands. Returns true if the CLI should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/dump":
		c.cmdDump(arg(args, 0))

	case "/save":
		c.cmdSave(arg(args, 0), arg(args, 1))

	case "/load":
		c.cmdLoad(arg(args, 0), arg(args, 1))

	case "/saves":
		c.cmdSaves(arg(args, 0))

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (c *CLI) format(name string) entity.Format {
	if name == "" {
		return c.Format
	}
	return entity.Format(strings.ToLower(name))
}

// cmdDump prints the active entity in any format; unknown names fall back
// to the text summary.
func (c *CLI) cmdDump(format string) {
	data, err := c.Session.Entity.Dump(c.format(format))
	if err != nil {
		c.printSystem(fmt.Sprintf("Dump failed: %v", err))
		return
	}
	c.printLine(data)
}

func (c *CLI) cmdSave(name, format string) {
	if name == "" {
		name = "quicksave"
	}
	if _, err := save.Write(c.SaveDir, name, c.Session.Entity, c.format(format)); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Saved %s to %s.", c.Session.Entity.Name, name))
}

func (c *CLI) cmdLoad(name, format string) {
	if name == "" {
		name = "quicksave"
	}
	e, err := save.Read(c.SaveDir, name, c.format(format))
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.Session.Entity = e
	c.printSystem(fmt.Sprintf("Loaded %s from %s.", e.Name, name))
	c.printResult(c.Session.Step("sheet"))
}

func (c *CLI) cmdSaves(format string) {
	names, err := save.List(c.SaveDir, c.format(format))
	if err != nil {
		c.printSystem(fmt.Sprintf("Listing saves failed: %v", err))
		return
	}
	if len(names) == 0 {
		c.printSystem("No saves.")
		return
	}
	c.printSystem("Saves: " + strings.Join(names, ", "))
}

func (c *CLI) cmdHelp() {
	for _, line := range HelpLines() {
		c.printLine(line)
	}
}

// HelpLines is the command reference shared with the TUI.
func HelpLines() []string {
	return []string{
		"System:",
		"  /dump [fmt]          — Print the character (json, yaml, text)",
		"  /save [name] [fmt]   — Save character (default: quicksave)",
		"  /load [name] [fmt]   — Load character (default: quicksave)",
		"  /saves [fmt]         — List saves",
		"  /quit                — Exit",
		"  /help                — Show this help",
		"  /state               — Debug: session state",
		"  /trace               — Toggle event trace output",
		"",
		"Commands:",
		"  sheet                   — Show the character sheet",
		"  stat [name] [+N|-N|=N]  — Show or change a stat",
		"  level up                — Gain a class level",
		"  give <item> [N]         — Add catalog items",
		"  use <item> [on self]    — Use an item",
		"  inspect <thing> (x)     — Item, class or species details",
		"  stow <item> in <bag>    — Put an item in a container",
		"  resource [name] [N]     — Show or change a resource",
		"  ability [name]          — List or add species abilities",
		"  inventory (i)           — What the character carries",
		"  features                — Features granted by the class",
		"  roll [dice]             — Roll dice, e.g. 2d6+1 or 4d6kh3",
		"  roll stats              — Reroll the six ability scores",
		"  new <template>          — Start over from a catalog entity",
		"  again (g)               — Repeat your last command",
	}
}

func (c *CLI) cmdState() {
	s := c.Session
	c.printSystem(fmt.Sprintf("Turn: %d", s.Turn))
	c.printSystem(fmt.Sprintf("Entity: %s (%s)", s.Entity.Name, s.Entity.ID))
	c.printSystem(fmt.Sprintf("Carried weight: %g", s.Entity.CarriedWeight()))
	if s.Roller != nil {
		c.printSystem(fmt.Sprintf("Dice: seed %d, position %d", s.Roller.Seed(), s.Roller.Position()))
	}
	c.printSystem(fmt.Sprintf("Templates: %v", s.Catalog.EntityIDs()))
	if recent := s.Recent(5); len(recent) > 0 {
		c.printSystem("Recent: " + strings.Join(recent, "; "))
	}
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
