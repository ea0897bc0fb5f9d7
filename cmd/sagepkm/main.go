package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/jeanpaul/sagepkm/internal/config"
	"github.com/jeanpaul/sagepkm/internal/headless"
	"github.com/jeanpaul/sagepkm/internal/health"
	"github.com/jeanpaul/sagepkm/internal/ingest"
	"github.com/jeanpaul/sagepkm/internal/logging"
	"github.com/jeanpaul/sagepkm/internal/pkm"
	"github.com/jeanpaul/sagepkm/internal/render"
	"github.com/jeanpaul/sagepkm/internal/session"
	"github.com/jeanpaul/sagepkm/internal/tui"
	"github.com/jeanpaul/sagepkm/pkg/version"
)

// patterns collects repeated --seed flags.
type patterns []string

func (p *patterns) String() string     { return strings.Join(*p, ",") }
func (p *patterns) Set(v string) error { *p = append(*p, v); return nil }

func main() {
	var seedFlags patterns
	configFlag := flag.String("config", "", "Config file (default: ./config.yaml or "+config.Path()+")")
	profileFlag := flag.String("profile", "", "Use a saved user profile")
	flag.Var(&seedFlags, "seed", "Seed file glob to load at startup (repeatable, ** supported)")
	headlessFlag := flag.Bool("headless", false, "Use the line menu instead of the TUI")
	tableFlag := flag.Bool("table", false, "Render node listings as a table")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("sagepkm %s\n", version.String())
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal("config error: %s", err)
	}
	if *profileFlag != "" {
		p, err := config.LoadProfile(*profileFlag)
		if err != nil {
			fatal("%s", err)
		}
		cfg.User = p.User()
		if err := cfg.Validate(); err != nil {
			fatal("profile %s: %s", *profileFlag, err)
		}
	}
	cfg.Seeds = append(cfg.Seeds, seedFlags...)
	if *tableFlag {
		cfg.Table = true
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "doctor":
			if !cmdDoctor(os.Stdout, cfg) {
				os.Exit(1)
			}
			return
		case "profiles":
			if err := cmdProfiles(os.Stdout, args[1:]); err != nil {
				fatal("%s", err)
			}
			return
		case "help":
			showHelp()
			return
		}
	}

	interactive := len(args) == 0
	useTUI := interactive && !*headlessFlag && isTerminal()

	logger, closer, err := newLogger(cfg, interactive, os.Stderr)
	if err != nil {
		fatal("%s", err)
	}
	defer closer.Close()

	sess, err := buildSession(cfg, logger)
	if err != nil {
		fatal("%s", err)
	}

	if !interactive {
		if err := runCommand(os.Stdout, sess, cfg, args); err != nil {
			fatal("%s", err)
		}
		return
	}

	if useTUI {
		launchTUI(sess, cfg)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := headless.Run(ctx, sess, os.Stdin, os.Stdout, headless.Options{Table: cfg.Table}); err != nil && err != context.Canceled {
		fatal("%s", err)
	}
}

// newLogger keeps log lines out of the interactive menus unless a log file
// is configured. One-shot commands log to stderr.
func newLogger(cfg *config.Config, interactive bool, stderr io.Writer) (*log.Logger, io.Closer, error) {
	switch {
	case cfg.Log.File != "":
		return logging.New(cfg.Log)
	case interactive:
		return logging.Discard(), logging.NopCloser{}, nil
	default:
		return logging.NewWithWriter(stderr, cfg.Log.Level)
	}
}

// buildSession wires the user, graph, clipper and seeds together.
func buildSession(cfg *config.Config, logger *log.Logger) (*session.Session, error) {
	user := pkm.NewUser(cfg.User.ID, cfg.User.Name, cfg.User.Role)
	sess := session.New(user, pkm.NewGraph(), logger,
		session.WithClipper(ingest.NewClipper(cfg.Clip.Timeout, cfg.Clip.UserAgent)),
		session.WithExportDir(cfg.ExportDir),
	)

	if _, err := sess.LoadSeeds(cfg.Seeds); err != nil {
		return nil, fmt.Errorf("seed error: %w", err)
	}
	return sess, nil
}

// runCommand executes a one-shot subcommand against a seeded session.
func runCommand(w io.Writer, sess *session.Session, cfg *config.Config, args []string) error {
	switch args[0] {
	case "list":
		nodes := sess.Nodes()
		printNodes(w, cfg.Table, render.GraphHeading(len(nodes)), nodes)
	case "search":
		if len(args) < 2 {
			return fmt.Errorf("usage: sagepkm search <tag>")
		}
		keyword := strings.Join(args[1:], " ")
		results := sess.Search(keyword)
		printNodes(w, cfg.Table, render.SearchHeading(len(results), keyword), results)
	case "export":
		format := session.FormatMarkdown
		if len(args) > 1 {
			format = args[1]
		}
		path, err := sess.Export(format)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, render.SuccessStyle.Render("✓ Exported to "+path))
	default:
		return fmt.Errorf("unknown command: %s (see sagepkm help)", args[0])
	}
	return nil
}

func printNodes(w io.Writer, table bool, heading string, nodes []pkm.Node) {
	if table {
		fmt.Fprintln(w, "\n"+heading)
		fmt.Fprintln(w, render.Table(nodes))
		return
	}
	render.List(w, heading, nodes)
}

func cmdDoctor(w io.Writer, cfg *config.Config) bool {
	fmt.Fprintln(w, render.BannerStyle.Render("SagePKM doctor"))
	statuses := health.Check(cfg)
	for _, s := range statuses {
		mark := render.SuccessStyle.Render("✓")
		if !s.OK {
			mark = render.ErrorStyle.Render("✗")
		}
		fmt.Fprintf(w, "  %s %-10s %s\n", mark, s.Name, render.HelpStyle.Render(s.Detail))
	}
	return health.Healthy(statuses)
}

// cmdProfiles lists, saves or deletes user profiles.
func cmdProfiles(w io.Writer, args []string) error {
	if len(args) == 0 || args[0] == "list" {
		return listProfiles(w)
	}

	switch args[0] {
	case "save":
		fs := flag.NewFlagSet("profiles save", flag.ContinueOnError)
		fs.SetOutput(w)
		id := fs.Int("id", 1, "User id")
		role := fs.String("role", "", "User role")
		if len(args) < 2 || strings.HasPrefix(args[1], "-") {
			return fmt.Errorf("usage: sagepkm profiles save <name> [--id N] [--role R]")
		}
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}
		if *id < 1 {
			return fmt.Errorf("profile id must be positive, got %d", *id)
		}
		if err := config.SaveProfile(config.Profile{Name: args[1], ID: *id, Role: *role}); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		fmt.Fprintln(w, render.SuccessStyle.Render("✓ Saved profile "+args[1]))
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: sagepkm profiles delete <name>")
		}
		if err := config.DeleteProfile(args[1]); err != nil {
			return err
		}
		fmt.Fprintln(w, render.SuccessStyle.Render("✓ Deleted profile "+args[1]))
	default:
		return fmt.Errorf("unknown profiles command: %s (use list, save or delete)", args[0])
	}
	return nil
}

func listProfiles(w io.Writer) error {
	names, err := config.ListProfiles()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	if len(names) == 0 {
		dir, _ := config.GetProfilesDir()
		fmt.Fprintln(w, render.HelpStyle.Render("No profiles. Save one with: sagepkm profiles save <name> (stored in "+dir+")"))
		return nil
	}
	for _, name := range names {
		p, err := config.LoadProfile(name)
		if err != nil {
			fmt.Fprintf(w, "  %s  %s\n", name, render.ErrorStyle.Render(err.Error()))
			continue
		}
		fmt.Fprintf(w, "  %s  id=%d role=%s\n", render.TitleStyle.Render(p.Name), p.ID, p.Role)
	}
	return nil
}

func launchTUI(sess *session.Session, cfg *config.Config) {
	m := tui.NewModel(sess, tui.Options{Table: cfg.Table, Theme: cfg.Theme})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("TUI error: %s", err)
	}
	fmt.Println(render.ErrorStyle.Render("👋 Exiting SagePKM. Goodbye!"))
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func fatal(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, render.ErrorStyle.Render("error: "+msg))
	os.Exit(1)
}

func showHelp() {
	help := `
` + render.BannerStyle.Render("SagePKM") + ` - personal knowledge management in your terminal

` + render.TitleStyle.Render("USAGE:") + `
  sagepkm [flags]               Start the interactive menu
  sagepkm [flags] <command>     Run a command against the seeded graph

` + render.TitleStyle.Render("COMMANDS:") + `
  list                          List every node
  search <tag>                  Nodes with the tag (case ignored)
  export [md|xlsx]              Write the graph to export_dir
  doctor                        Check config, seeds and output paths
  profiles [list]               List saved user profiles
  profiles save <name> [--id N] [--role R]
                                Save a user profile
  profiles delete <name>        Delete a user profile
  help                          Show this help

` + render.TitleStyle.Render("FLAGS:") + `
  --config <path>               Config file
  --profile <name>              Use a saved user profile
  --seed <glob>                 Load seed YAML (repeatable, ** supported)
  --headless                    Line menu instead of the TUI
  --table                       Render listings as a table
  --version                     Show version
  --help, -h                    Show this help

` + render.TitleStyle.Render("EXAMPLES:") + `
  sagepkm --seed 'notes/**/*.yaml'
  sagepkm --seed notes.yaml search java
  sagepkm --seed notes.yaml --table list
  sagepkm --seed notes.yaml export xlsx
`
	fmt.Println(help)
}
