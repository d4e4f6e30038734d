package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/pactly/internal/backup"
	"github.com/julianstephens/pactly/internal/cli"
)

type ExportCmd struct {
	Path string `arg:"" optional:"" help:"Where to write the export. Defaults to pactly-export-<date>.json."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	path := c.Path
	if path == "" {
		path = fmt.Sprintf("pactly-export-%s.json", ctx.Now().Format("2006-01-02"))
	}

	data := ctx.Store.ExportAllData(bg)
	if data.User == nil {
		ctx.Println(cli.Warn("Not signed in: the export holds rooms and activity only."))
	}
	if err := backup.WriteExport(path, data); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d pacts to %s\n", len(data.Pacts), path)
	return nil
}

type ImportCmd struct {
	Path string `arg:"" help:"Export file to import." type:"existingfile"`
	Yes  bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	data, err := backup.ReadExport(c.Path)
	if err != nil {
		return err
	}
	if data.User == nil && len(data.Pacts) > 0 {
		return fmt.Errorf("%s has %d pacts but no user to own them", c.Path, len(data.Pacts))
	}

	owner := "no user"
	if data.User != nil {
		owner = data.User.Email
	}
	if !c.Yes && !ctx.Confirm(fmt.Sprintf("Replace %s's pacts, all rooms and the activity feed with %s?", owner, c.Path)) {
		ctx.Println("Import cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup(bg)
	ctx.Store.ImportData(bg, data)
	ctx.Printf("✓ Imported %d pacts, %d rooms and %d activity entries\n", len(data.Pacts), len(data.Rooms), len(data.SupporterActivity))
	return nil
}

// ClearCmd wipes every collection, the session and the seed marker. The
// next 'pactly init' seeds demo data again.
type ClearCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if !c.Yes && !ctx.Confirm("Delete all pactly data from this store?") {
		ctx.Println("Clear cancelled.")
		return nil
	}
	ctx.PerformAutomaticBackup(bg)
	ctx.Store.ClearAllData(bg)
	ctx.Println("✓ All data cleared")
	return nil
}
