package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/subcommands"
	appinv "github.com/jhoicas/agrogest-api/internal/application/inventory"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
	"github.com/jhoicas/agrogest-api/internal/domain/inventory"
	infrapdf "github.com/jhoicas/agrogest-api/internal/infrastructure/pdf"
	"github.com/jhoicas/agrogest-api/internal/infrastructure/spreadsheet"
)

// Commands subcomandos registrados por cmd/agrogest.
var Commands = []subcommands.Command{
	&auditCmd{},
	&reconcileCmd{},
	&exportCmd{},
}

// fileFlags flags comunes: archivo de backup y salida sin estilo.
type fileFlags struct {
	file string
	raw  bool
}

func (f *fileFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.file, "f", "agrogest_backup.json", "Arquivo de backup exportado pela API (GET /api/backup?full=true).")
	fs.BoolVar(&f.raw, "raw", false, "Imprime markdown sem formatação.")
}

func farmName(b *entity.Backup) string {
	if b.Settings != nil && b.Settings.FarmName != "" {
		return b.Settings.FarmName
	}
	return "Fazenda"
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

type auditCmd struct{ fileFlags }

func (*auditCmd) Name() string     { return "audit" }
func (*auditCmd) Synopsis() string { return "classifica os produtos do backup por nível de estoque" }
func (*auditCmd) Usage() string {
	return `agrogest audit [-f <backup.json>] [-raw]

  Lista cada produto como zerado, crítico (até metade do mínimo), baixo ou OK.
`
}
func (c *auditCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *auditCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := LoadBackup(c.file)
	if err != nil {
		return fail(err)
	}
	printMarkdown(AuditMarkdown(farmName(b), inventory.Audit(b.Payload.Products)), c.raw)
	return subcommands.ExitSuccess
}

type reconcileCmd struct{ fileFlags }

func (*reconcileCmd) Name() string { return "reconcile" }
func (*reconcileCmd) Synopsis() string {
	return "compara o estoque de cada produto com a soma dos seus movimentos"
}
func (*reconcileCmd) Usage() string {
	return `agrogest reconcile [-f <backup.json>] [-raw]

  Sai com status 1 quando algum produto diverge do livro de movimentos.
`
}
func (c *reconcileCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *reconcileCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	b, err := LoadBackup(c.file)
	if err != nil {
		return fail(err)
	}
	products := b.Payload.Products
	drifts := inventory.Reconcile(products, inventory.SumLedger(b.Payload.StockMovements))
	printMarkdown(ReconcileMarkdown(len(products), drifts), c.raw)
	if len(drifts) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type exportCmd struct {
	fileFlags
	out string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "exporta o inventário do backup para csv, xlsx ou pdf" }
func (*exportCmd) Usage() string {
	return `agrogest export [-f <backup.json>] -o <saida.csv|saida.xlsx|saida.pdf>

  O formato é escolhido pela extensão do arquivo de saída.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.register(f)
	f.StringVar(&c.out, "o", "", "Arquivo de saída.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.out == "" {
		fmt.Fprintln(os.Stderr, "informe -o")
		return subcommands.ExitUsageError
	}
	b, err := LoadBackup(c.file)
	if err != nil {
		return fail(err)
	}
	if err := Export(ctx, b, c.out); err != nil {
		return fail(err)
	}
	fmt.Printf("%d produtos exportados para %s\n", len(b.Payload.Products), c.out)
	return subcommands.ExitSuccess
}

// Export escribe el inventario del backup en path; el formato sale de la extensión.
func Export(ctx context.Context, b *entity.Backup, path string) (err error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case appinv.ExportCSV, appinv.ExportXLSX, appinv.ExportPDF:
	default:
		return fmt.Errorf("extensão %q não suportada (csv, xlsx, pdf)", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("criar %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	products := b.Payload.Products
	switch ext {
	case appinv.ExportCSV:
		return spreadsheet.WriteCSV(f, products)
	case appinv.ExportXLSX:
		return spreadsheet.WriteXLSX(f, products)
	}
	currency := "R$"
	if b.Settings != nil && b.Settings.Currency != "" {
		currency = b.Settings.Currency
	}
	doc, err := infrapdf.NewMarotoPDFGenerator().GenerateInventoryPDF(ctx, appinv.Sheet{
		FarmName:    farmName(b),
		Currency:    currency,
		GeneratedAt: time.Now(),
		Products:    products,
		Stats:       inventory.ComputeStats(products),
	})
	if err != nil {
		return err
	}
	_, err = f.Write(doc)
	return err
}
