package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/blackjacksim/internal/tables"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string `short:"l" default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	Verbose   bool   `short:"v" help:"Verbose logging (same as --log-level=debug)"`
	TablesDir string `name:"tables" type:"existingdir" help:"Directory with cards.hcl, counting.hcl and strategy.hcl (defaults to the built-in tables)"`

	out io.Writer
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate rounds of blackjack and report the bankroll"`
	Advise   AdviseCmd        `cmd:"" help:"Show the basic-strategy move for a hand"`
	Tables   TablesCmd        `cmd:"" name:"tables" help:"Inspect the rule tables"`
	History  HistoryCmd       `cmd:"" help:"List or show stored simulation runs"`
}

func (g *Globals) stdout() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}

func (g *Globals) logger() *log.Logger {
	level := log.WarnLevel
	if parsed, err := log.ParseLevel(g.LogLevel); err == nil {
		level = parsed
	}
	if g.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

func (g *Globals) tables() (*tables.Set, error) {
	return g.tablesOr("")
}

// tablesOr loads the tables from --tables, then dir, then the built-in set.
func (g *Globals) tablesOr(dir string) (*tables.Set, error) {
	if g.TablesDir != "" {
		dir = g.TablesDir
	}
	if dir == "" {
		return tables.Default()
	}
	return tables.Dir(dir)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Blackjack bankroll simulator with basic strategy and card counting"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
