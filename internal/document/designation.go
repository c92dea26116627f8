// Package document renders the fixed-layout driver-designation letter
// sent to the public prosecutor when a fine is contested on behalf of a
// driver (article L121-6 of the French road code).
package document

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	recipientName   = "OFFICIER DU MINISTÈRE PUBLIC"
	recipientStreet = "CS 41101"
	recipientCity   = "41011 BLOIS CEDEX"

	dateLayout = "02/01/2006"
)

// Party identifies one side of the designation: either the account
// manager signing the letter or the driver who was at the wheel.
type Party struct {
	FirstName       string
	LastName        string
	Street          string
	PostalCode      string
	City            string
	BirthDate       *time.Time
	BirthPlace      string
	LicenseNumber   string
	LicenseIssuedOn *time.Time
	LicenseIssuedBy string
}

func (p Party) fullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	return p.FirstName + " " + p.LastName
}

// Designation holds everything the letter mentions.
type Designation struct {
	FineDate     time.Time
	FinePlace    string
	FineAmount   float64
	VehiclePlate string
	Nature       string
	Designator   Party
	Designated   Party
	IssuedAt     time.Time
}

func (d Designation) issuedAt() time.Time {
	if d.IssuedAt.IsZero() {
		return time.Now()
	}
	return d.IssuedAt
}

// SenderLines is the letterhead block of the designating manager.
func (d Designation) SenderLines() []string {
	return []string{
		d.Designator.fullName(),
		d.Designator.Street,
		d.Designator.PostalCode + " " + d.Designator.City,
	}
}

func (d Designation) RecipientLines() []string {
	return []string{recipientName, recipientStreet, recipientCity}
}

func (d Designation) DateLine() string {
	return fmt.Sprintf("Fait à %s, le %s", d.Designator.City, d.issuedAt().Format(dateLayout))
}

func (d Designation) SubjectLines() []string {
	return []string{
		"Objet : Désignation de conducteur",
		"Concerne l'infraction du : " + d.FineDate.Format(dateLayout),
	}
}

// BodyParagraphs is the fixed letter body.
func (d Designation) BodyParagraphs() []string {
	return []string{
		"Madame, Monsieur,",
		fmt.Sprintf(
			"Je soussigné(e) %s, dont l'adresse est %s, %s %s.",
			d.Designator.fullName(), d.Designator.Street, d.Designator.PostalCode, d.Designator.City,
		),
		fmt.Sprintf(
			"J'ai reçu un avis de contravention concernant le véhicule immatriculé %s, pour une infraction de type %s, constatée le %s à %s. Le montant de cette amende s'élève à %.2f €.",
			d.VehiclePlate, d.Nature, d.FineDate.Format(dateLayout), d.FinePlace, d.FineAmount,
		),
		"Conformément aux dispositions de l'Article L121-6 du Code de la route, je vous informe que le conducteur de ce véhicule au moment des faits n'était pas moi-même, mais :",
	}
}

// DesignatedLines identifies the driver at the wheel. Empty optional
// fields are omitted, nothing else varies.
func (d Designation) DesignatedLines() []string {
	p := d.Designated
	lines := []string{
		"Nom : " + p.LastName,
		"Prénom : " + p.FirstName,
	}
	if p.BirthDate != nil {
		lines = append(lines, "Date de naissance : "+p.BirthDate.Format(dateLayout))
	}
	if p.BirthPlace != "" {
		lines = append(lines, "Lieu de naissance : "+p.BirthPlace)
	}
	lines = append(lines,
		"Adresse : "+p.Street,
		"Code Postal : "+p.PostalCode,
		"Ville : "+p.City,
		"Numéro de permis de conduire : "+p.LicenseNumber,
	)
	if p.LicenseIssuedOn != nil {
		lines = append(lines, "Délivré le : "+p.LicenseIssuedOn.Format(dateLayout))
	}
	if p.LicenseIssuedBy != "" {
		lines = append(lines, "Par : "+p.LicenseIssuedBy)
	}
	return lines
}

func (d Designation) ClosingParagraphs() []string {
	return []string{
		"Vous trouverez ci-joint la copie de l'avis de contravention original ainsi que, le cas échéant, toute pièce justificative utile.",
		"Je vous prie d'agréer, Madame, Monsieur, l'expression de mes salutations distinguées.",
	}
}

func (d Designation) FooterLine() string {
	return "Document généré le " + d.issuedAt().Format(dateLayout)
}

// RenderPDF writes the letter as an A4 PDF.
func (d Designation) RenderPDF(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	for _, line := range d.SenderLines() {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	for _, line := range d.RecipientLines() {
		pdf.CellFormat(0, 6, tr(line), "", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
	pdf.CellFormat(0, 6, tr(d.DateLine()), "", 1, "R", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 12)
	for _, line := range d.SubjectLines() {
		pdf.MultiCell(0, 6, tr(line), "", "C", false)
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.Ln(6)

	for _, paragraph := range d.BodyParagraphs() {
		pdf.MultiCell(0, 6, tr(paragraph), "", "L", false)
		pdf.Ln(2)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetLeftMargin(30)
	for _, line := range d.DesignatedLines() {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.SetLeftMargin(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Ln(6)

	for _, paragraph := range d.ClosingParagraphs() {
		pdf.MultiCell(0, 6, tr(paragraph), "", "L", false)
		pdf.Ln(2)
	}
	pdf.Ln(10)

	pdf.CellFormat(0, 6, tr("Signature du déclarant :"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(d.Designator.fullName()), "", 1, "L", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 5, tr(d.FooterLine()), "", 1, "C", false, 0, "")

	return pdf.Output(w)
}
