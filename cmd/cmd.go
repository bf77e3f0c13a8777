// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes configuration and the song library database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the song library database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// renderCommand formats a song sheet to stdout or a file.
func renderCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Format a song sheet as HTML or plain text",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (html or text)",
			},
			&cli.BoolFlag{
				Name:  "chords",
				Usage: "Include the chord panel",
			},
			&cli.StringFlag{
				Name:    "position",
				Aliases: []string{"p"},
				Usage:   "Chord panel position (top, right, bottom)",
			},
			&cli.StringFlag{
				Name:    "instrument",
				Aliases: []string{"i"},
				Usage:   "Instrument for chord diagrams",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: r.Render,
	}
}

// chordsCommand extracts the chord names used by a song sheet.
func chordsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "chords",
		Usage: "List the chords a song sheet uses",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Chords,
	}
}

// diagramsCommand exports chord diagrams as SVG files.
func diagramsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "diagrams",
		Usage: "Export SVG chord diagrams for a song sheet",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "instrument",
				Aliases: []string{"i"},
				Usage:   "Instrument for chord diagrams",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
				Value:   ".",
			},
		},
		Action: r.Diagrams,
	}
}

// libraryCommand manages the persistent song library.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Manage the song library",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a song sheet to the library",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "file",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "title",
						Usage: "Override the title from the song sheet",
					},
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Override the artist from the song sheet",
					},
				},
				Action: r.LibraryAdd,
			},
			{
				Name:  "list",
				Usage: "List songs in the library",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Filter by artist",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryList,
			},
			{
				Name:  "show",
				Usage: "Print a stored song sheet",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.LibraryShow,
			},
			{
				Name:  "export",
				Usage: "Render every stored song to files on disk",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (html or text)",
						Value:   "html",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
					},
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Only export songs by this artist",
					},
					&cli.StringFlag{
						Name:    "instrument",
						Aliases: []string{"i"},
						Usage:   "Instrument for chord diagrams",
					},
					&cli.BoolFlag{
						Name:  "diagrams",
						Usage: "Also export SVG chord diagrams per song",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent export workers",
						Value: 5,
					},
				},
				Action: r.LibraryExport,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a song from the library",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.LibraryRemove,
			},
		},
	}
}

// viewCommand launches the interactive TUI viewer.
func viewCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "view",
		Aliases: []string{"tui"},
		Usage:   "View a song sheet interactively",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "View a library song by id instead of a file",
			},
			&cli.StringFlag{
				Name:    "instrument",
				Aliases: []string{"i"},
				Usage:   "Instrument for chord diagrams",
			},
		},
		Action: r.View,
	}
}

// serveCommand runs the HTTP API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the song library HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen address (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides config)",
			},
		},
		Action: r.Serve,
	}
}
