package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"cabinet-configurator/internal/configurator/bom"
	"cabinet-configurator/internal/configurator/layout"
	"cabinet-configurator/internal/configurator/mapper"
	"cabinet-configurator/internal/configurator/models"
	"cabinet-configurator/internal/configurator/store"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// ============================================================
// configctl: офлайн-работа с документами конфигуратора
// ============================================================

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "configctl",
		Usage: "Inspect and edit cabinet configurator documents",
		Commands: []*cli.Command{
			newCommand(),
			addCommand(),
			layoutCommand(),
			bomCommand(),
			renderCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		log.Fatal(err)
	}
}

func fileFlag() cli.Flag {
	return &cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "state document (stdin when empty)"}
}

func yamlFlag() cli.Flag {
	return &cli.BoolFlag{Name: "yaml", Usage: "output YAML instead of JSON"}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "Print the default state document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "furniture name"},
			&cli.StringFlag{Name: "kind", Value: string(models.KindCabinet), Usage: "cabinet or drawer"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			state, err := store.Reduce(store.Reset(), store.RenameAction{
				Name: c.String("name"),
				Kind: models.Kind(c.String("kind")),
			})
			if err != nil {
				return err
			}
			return models.Encode(os.Stdout, state)
		},
	}
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add an upper or right module to a document",
		Flags: []cli.Flag{
			fileFlag(),
			&cli.StringFlag{Name: "role", Required: true, Usage: "upper or right"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			state, err := readState(c.String("file"))
			if err != nil {
				return err
			}
			role, ok := models.ParseRole(c.String("role"))
			if !ok || role == models.RoleLower {
				return fmt.Errorf("role must be upper or right, got %q", c.String("role"))
			}

			s := store.New()
			if _, err := s.Replace(state); err != nil {
				return err
			}
			next, err := s.AddModule(role)
			if err != nil {
				return err
			}
			return models.Encode(os.Stdout, next)
		},
	}
}

func layoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "layout",
		Usage: "Print resolved placements and panels",
		Flags: []cli.Flag{fileFlag(), yamlFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			state, err := readState(c.String("file"))
			if err != nil {
				return err
			}
			return write(os.Stdout, layout.BuildScene(state), c.Bool("yaml"))
		},
	}
}

func bomCommand() *cli.Command {
	return &cli.Command{
		Name:  "bom",
		Usage: "Print the bill of materials",
		Flags: []cli.Flag{fileFlag(), yamlFlag()},
		Action: func(ctx context.Context, c *cli.Command) error {
			state, err := readState(c.String("file"))
			if err != nil {
				return err
			}
			return write(os.Stdout, bom.Build(state), c.Bool("yaml"))
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render the front elevation as SVG",
		Flags: []cli.Flag{
			fileFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (stdout when empty)"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			state, err := readState(c.String("file"))
			if err != nil {
				return err
			}
			svg, err := mapper.NewRenderer().Render(state)
			if err != nil {
				return err
			}
			if out := c.String("out"); out != "" {
				return os.WriteFile(out, []byte(svg), 0o644)
			}
			_, err = io.WriteString(os.Stdout, svg)
			return err
		},
	}
}

// ============================================================
// Helpers
// ============================================================

func readState(path string) (models.FurnitureState, error) {
	if path == "" {
		return models.Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return models.FurnitureState{}, err
	}
	defer f.Close()
	return models.Decode(f)
}

func write(w io.Writer, v any, asYAML bool) error {
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
