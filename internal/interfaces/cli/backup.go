// Package cli comandos de la herramienta agrogest sobre archivos de backup.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/entity"
)

// LoadBackup lee un backup exportado por la API. Sin payload de datos devuelve ErrParse:
// solo los backups completos (?full=true) traen el inventario.
func LoadBackup(path string) (*entity.Backup, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ler backup: %w", err)
	}
	var b entity.Backup
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, fmt.Errorf("%w: backup inválido: %v", domain.ErrParse, err)
	}
	if b.Payload == nil {
		return nil, fmt.Errorf("%w: backup sem dados (exporte com full=true)", domain.ErrParse)
	}
	return &b, nil
}

// printMarkdown muestra md con estilo en la terminal; si glamour falla imprime el texto plano.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
