package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"github.com/atotto/clipboard"
	"github.com/fatih/color"

	"github.com/formlab/formlab/pkg/client"
)

var (
	app    = kingpin.New("formlab", "Command line client for the formlab schema editor")
	addr   = app.Flag("addr", "Server address").Default("http://localhost:3900").String()
	apiKey = app.Flag("api-key", "API key").Envar("FORMLAB_API_KEY").String()

	// Project commands
	projectCmd = app.Command("project", "Project management commands")

	projectListCmd = projectCmd.Command("list", "List saved projects")

	projectShowCmd = projectCmd.Command("show", "Show project details")
	projectShowID  = projectShowCmd.Arg("id", "Project ID").Required().String()

	projectDeleteCmd = projectCmd.Command("delete", "Delete a project")
	projectDeleteID  = projectDeleteCmd.Arg("id", "Project ID").Required().String()

	typesCmd = app.Command("types", "List supported field types")

	exportCmd    = app.Command("export", "Export a generated document for a project")
	exportID     = exportCmd.Arg("id", "Project ID").Required().String()
	exportKind   = exportCmd.Arg("kind", "Document kind (schema or locales)").Required().Enum("schema", "locales")
	exportCopy   = exportCmd.Flag("copy", "Copy the document to the clipboard").Bool()
	exportOutDir = exportCmd.Flag("out", "Write the document to a file in DIR").PlaceHolder("DIR").String()

	statusCmd = app.Command("status", "Show pending server notices")
)

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	ctx := context.Background()
	c := client.New(*addr, *apiKey)

	var err error
	switch command {
	case projectListCmd.FullCommand():
		err = handleProjectList(ctx, c)
	case projectShowCmd.FullCommand():
		err = handleProjectShow(ctx, c, *projectShowID)
	case projectDeleteCmd.FullCommand():
		err = handleProjectDelete(ctx, c, *projectDeleteID)
	case typesCmd.FullCommand():
		err = handleTypes(ctx, c)
	case exportCmd.FullCommand():
		err = handleExport(ctx, c, *exportID, *exportKind, *exportCopy, *exportOutDir)
	case statusCmd.FullCommand():
		err = handleStatus(ctx, c)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func handleProjectList(ctx context.Context, c *client.Client) error {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No saved projects")
		return nil
	}
	for _, p := range projects {
		fmt.Printf("%s  %s (%d fields, modified %s)\n",
			color.CyanString(p.ID), p.Name, len(p.Fields), p.LastModified.Format("2006-01-02 15:04"))
	}
	return nil
}

func handleProjectShow(ctx context.Context, c *client.Client, id string) error {
	p, err := c.GetProject(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n", color.CyanString(p.ID), p.Name)
	fmt.Printf("Modified: %s\n", p.LastModified.Format("2006-01-02 15:04:05"))
	for _, f := range p.Fields {
		fmt.Printf("  %-14s %-20s %s\n", f.Type, f.ID, f.Label)
	}
	return nil
}

func handleProjectDelete(ctx context.Context, c *client.Client, id string) error {
	if err := c.DeleteProject(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", color.CyanString(id))
	return nil
}

func handleTypes(ctx context.Context, c *client.Client) error {
	types, err := c.FieldTypes(ctx)
	if err != nil {
		return err
	}
	for _, t := range types {
		fmt.Printf("%-14s %s\n", color.CyanString(string(t.Type)), t.Label)
	}
	return nil
}

func handleExport(ctx context.Context, c *client.Client, id, kind string, toClipboard bool, outDir string) error {
	doc, filename, err := c.DownloadProject(ctx, id, kind)
	if err != nil {
		return err
	}
	if toClipboard {
		if err := clipboard.WriteAll(doc); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		color.Green("%s copied to clipboard", filename)
		return nil
	}
	if outDir != "" {
		path := filepath.Join(outDir, filename)
		if err := os.WriteFile(path, []byte(doc+"\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		color.Green("wrote %s", path)
		return nil
	}
	fmt.Println(doc)
	return nil
}

func handleStatus(ctx context.Context, c *client.Client) error {
	notices, err := c.Status(ctx)
	if err != nil {
		return err
	}
	if len(notices) == 0 {
		fmt.Println("No pending notices")
		return nil
	}
	for _, n := range notices {
		fmt.Printf("%s  %s\n", color.YellowString(n.Scope), n.Message)
	}
	return nil
}
