package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-raytracer/pkg/scene"
)

// ListScenes prints the built-in scenes and the discovered scene files.
func ListScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	dir := scenesDir(ctx)
	response, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Name", "Group", "Description"})
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			id := info.ID
			if info.Type == "file" {
				id = info.FilePath
			}
			table.Append([]string{id, info.DisplayName, group.Name, info.Description})
		}
	}
	table.Render()
	return nil
}

func scenesDir(ctx *cli.Context) string {
	if dir := ctx.String("dir"); dir != "" {
		return dir
	}
	return scene.FindScenesDir()
}
