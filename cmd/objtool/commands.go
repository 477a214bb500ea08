package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/mallory-scotton/wavefront/internal/logger"
	"github.com/mallory-scotton/wavefront/pkg/wavefront"
)

// loadModel parses the OBJ file named by the first positional argument.
func loadModel(ctx *cli.Context) (*wavefront.OBJ, error) {
	if ctx.NArg() < 1 {
		return nil, fmt.Errorf("missing OBJ file argument")
	}
	path := ctx.Args().First()

	logger.Debug("parsing OBJ file",
		zap.String("path", path),
		zap.Bool("triangulate", cfg.Loader.Triangulate))

	obj, err := wavefront.ParseOBJFile(path, cfg.Loader.MaterialDir, cfg.Loader.Triangulate)
	if err != nil {
		return nil, err
	}

	for _, w := range strings.Split(strings.TrimRight(obj.Warnings, "\n"), "\n") {
		if w != "" {
			logger.Warn(w, zap.String("path", path))
		}
	}

	return obj, nil
}

// newTable returns a table writer honoring the output settings.
func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	table.SetBorder(cfg.Output.Borders)
	return table
}

func cmdInfo(ctx *cli.Context) error {
	obj, err := loadModel(ctx)
	if err != nil {
		return err
	}

	table := newTable([]string{"Stat", "Count"})
	table.Append([]string{"Vertices", fmt.Sprintf("%d", obj.VertexCount())})
	table.Append([]string{"Normals", fmt.Sprintf("%d", obj.NormalCount())})
	table.Append([]string{"Texture coords", fmt.Sprintf("%d", obj.TexCoordCount())})
	table.Append([]string{"Shapes", fmt.Sprintf("%d", len(obj.Shapes))})
	table.Append([]string{"Faces", fmt.Sprintf("%d", obj.TotalFaceCount())})
	table.Append([]string{"Materials", fmt.Sprintf("%d", len(obj.Materials))})
	table.Render()

	return nil
}

func cmdShapes(ctx *cli.Context) error {
	obj, err := loadModel(ctx)
	if err != nil {
		return err
	}

	table := newTable([]string{"Shape", "Faces", "Indices", "Tags"})
	for i, shape := range obj.Shapes {
		if cfg.Output.MaxRows > 0 && i >= cfg.Output.MaxRows {
			fmt.Fprintf(os.Stderr, "(%d more shapes, raise output.max_rows to see them)\n", len(obj.Shapes)-i)
			break
		}
		name := shape.Name
		if name == "" {
			name = "(unnamed)"
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%d", shape.Mesh.FaceCount()),
			fmt.Sprintf("%d", len(shape.Mesh.Indices)),
			fmt.Sprintf("%d", len(shape.Mesh.Tags)),
		})
	}
	table.Render()

	return nil
}

func cmdMaterials(ctx *cli.Context) error {
	obj, err := loadModel(ctx)
	if err != nil {
		return err
	}

	if len(obj.Materials) == 0 {
		fmt.Println("No materials referenced")
		return nil
	}

	table := newTable([]string{"Material", "Diffuse", "Dissolve", "Illum", "Textures"})
	for i, mat := range obj.Materials {
		if cfg.Output.MaxRows > 0 && i >= cfg.Output.MaxRows {
			fmt.Fprintf(os.Stderr, "(%d more materials, raise output.max_rows to see them)\n", len(obj.Materials)-i)
			break
		}

		var textures []string
		for _, tm := range mat.TextureMaps() {
			if tm.Name != "" {
				textures = append(textures, tm.Name)
			}
		}

		table.Append([]string{
			mat.Name,
			fmt.Sprintf("%.3f %.3f %.3f", mat.Diffuse[0], mat.Diffuse[1], mat.Diffuse[2]),
			fmt.Sprintf("%.3f", mat.Dissolve),
			fmt.Sprintf("%d", mat.Illum),
			strings.Join(textures, ", "),
		})
	}
	table.Render()

	return nil
}

func cmdValidate(ctx *cli.Context) error {
	obj, err := loadModel(ctx)
	if err != nil {
		return err
	}

	if err := obj.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	logger.Info("model is valid",
		zap.Int("shapes", len(obj.Shapes)),
		zap.Int("faces", obj.TotalFaceCount()))
	fmt.Println("OK")

	return nil
}
