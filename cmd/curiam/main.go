package main

import (
	"fmt"
	"io"
	"os"

	"github.com/revelaction/curiam/config"
	"github.com/revelaction/curiam/logging"
	"github.com/revelaction/curiam/render"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

// env is the state shared by the commands of one run.
type env struct {
	ui   UI
	cfg  *config.Config
	log  *logrus.Entry
	pool Pool
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}

	if err := run(os.Args, ui); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "curiam: %v\n", err)
}

func run(args []string, ui UI) error {
	e := &env{ui: ui}
	defer e.pool.Close()

	return newApp(e).Run(args)
}

func newApp(e *env) *cli.App {
	return &cli.App{
		Name:      "curiam",
		Usage:     "import, normalize and query Inception span annotations",
		Version:   BuildTag,
		Writer:    e.ui.Out,
		ErrWriter: e.ui.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file",
				EnvVars: []string{config.EnvPrefix + "_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "doc-path",
				Aliases: []string{"d"},
				Usage:   "document store: a directory of JSON docs or a SQLite file",
			},
			&cli.StringFlag{
				Name:    "annotator",
				Aliases: []string{"a"},
				Usage:   "owner of the annotations",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Before: e.setup,
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "build documents from Inception exports and store them",
				ArgsUsage: "<export.tsv[.xz]>...",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "label", Aliases: []string{"l"}, Usage: "label of the imported documents"},
				},
				Action: e.importCommand,
			},
			{
				Name:      "simplify",
				Usage:     "print the rows of an export with sentence-local ids",
				ArgsUsage: "<export.tsv[.xz]>",
				Action:    e.simplifyCommand,
			},
			{
				Name:      "spans",
				Usage:     "print the spans of a document",
				ArgsUsage: "<docId> [sentId]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "text", Usage: "text or json"},
				},
				Action: e.spansCommand,
			},
			{
				Name:      "doc",
				Usage:     "list documents, or print the sentences of one",
				ArgsUsage: "[docId|file.json]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "start", Aliases: []string{"s"}, Usage: "first sentence"},
					&cli.IntFlag{Name: "count", Aliases: []string{"n"}, Value: -1, Usage: "number of sentences"},
				},
				Action: e.docCommand,
			},
			{
				Name:      "stat",
				Usage:     "print statistics of a document",
				ArgsUsage: "<docId> [sentId]",
				Action:    e.statCommand,
			},
			{
				Name:   "ls-doc",
				Usage:  "list the stored documents",
				Action: e.lsDocCommand,
			},
			{
				Name:  "ls-categories",
				Usage: "list the span categories of the stored documents",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "match", Aliases: []string{"m"}, Usage: "only categories containing this"},
				},
				Action: e.lsCategoriesCommand,
			},
			{
				Name:  "query",
				Usage: "interactively find sentences by category",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "no-color", Usage: "disable colors"},
					&cli.BoolFlag{Name: "no-prefix", Usage: "do not prefix sentences with doc and sentence ids"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: render.Defaultformat, Usage: "all, spans or aggr"},
					&cli.IntFlag{Name: "doc", Usage: "only query this document"},
				},
				Action: e.queryCommand,
			},
			{
				Name:  "export",
				Usage: "copy a SQLite store into a directory of JSON docs",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Required: true, Usage: "target directory"},
				},
				Action: e.exportCommand,
			},
			{
				Name:  "bash",
				Usage: "print the bash completion script",
				Action: func(c *cli.Context) error {
					return bashCommand(e.ui)
				},
			},
			{
				Name:   "complete",
				Hidden: true,
				Action: func(c *cli.Context) error {
					return completeCommand(c.Args().Slice(), e.ui)
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(c *cli.Context) error {
					return versionCommand(e.ui)
				},
			},
		},
	}
}

// setup loads the config, applies the global flags over it and builds the
// logger.
func (e *env) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("doc-path") {
		cfg.DocPath = c.String("doc-path")
	}
	if c.IsSet("annotator") {
		cfg.Annotator = c.String("annotator")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	log, err := logging.New(cfg.Log, e.ui.Err)
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.log = log.WithField("run", uuid.NewString())
	return nil
}
