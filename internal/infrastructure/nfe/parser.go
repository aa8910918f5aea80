// Package nfe lee los ítems de una NF-e (nota fiscal eletrônica) para la importación en lote.
package nfe

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/jhoicas/agrogest-api/internal/domain"
	"github.com/jhoicas/agrogest-api/internal/domain/bulkimport"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Parser implementa la lectura de XML NF-e.
type Parser struct{}

// NewParser construye el parser.
func NewParser() *Parser { return &Parser{} }

// Parse interpreta el XML. Sin elementos <det> devuelve domain.ErrParse.
func (p *Parser) Parse(data []byte) (*bulkimport.Invoice, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: xml inválido: %v", domain.ErrParse, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: documento vacío", domain.ErrParse)
	}

	dets := doc.FindElements("//det")
	if len(dets) == 0 {
		return nil, fmt.Errorf("%w: nenhum item de produto (tag <det>) encontrado", domain.ErrParse)
	}

	inv := &bulkimport.Invoice{}
	for _, det := range dets {
		prod := det.SelectElement("prod")
		if prod == nil {
			continue
		}
		row := bulkimport.RawRow{
			Name:  text(prod, "xProd"),
			Unit:  text(prod, "uCom"),
			Stock: number(text(prod, "qCom")),
			Price: number(text(prod, "vUnCom")),
		}
		if rastro := det.FindElement(".//rastro"); rastro != nil {
			row.Batch = text(rastro, "nLote")
			row.ExpirationDate = text(rastro, "dVal")
		}
		inv.Rows = append(inv.Rows, row)
	}

	target := doc.FindElement("//infNFe")
	if target != nil {
		inv.Number = strings.TrimPrefix(target.SelectAttrValue("Id", ""), "NFe")
	} else {
		target = doc.Root()
	}
	fp, err := fingerprint(target)
	if err != nil {
		return nil, fmt.Errorf("%w: canonicalizar: %v", domain.ErrParse, err)
	}
	inv.Fingerprint = fp
	return inv, nil
}

func text(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

// number convierte la notación NF-e ("100.0000") a coma decimal ("100").
func number(s string) string {
	if s == "" {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return strings.Replace(d.String(), ".", ",", 1)
}

func fingerprint(el *etree.Element) (string, error) {
	sub := etree.NewDocument()
	sub.SetRoot(el.Copy())
	raw, err := sub.WriteToBytes()
	if err != nil {
		return "", err
	}
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Entity = map[string]string{}
	canon, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:]), nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8":
		return input, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", label)
}
