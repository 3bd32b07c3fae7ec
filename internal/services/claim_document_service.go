package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"claim-service/internal/database/minio"
	"claim-service/internal/models"
	utils "claim-service/shared/modules/utils"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/shopspring/decimal"
)

const (
	pageHeight     = 842.0
	defaultMargin  = 50.0
	bodyFontSize   = 10.0
	lineHeight     = 14.0
	charsPerLine   = 95
	emptyFieldText = "____________________"
)

// ClaimDocumentInput is everything needed to render one claim document.
type ClaimDocumentInput struct {
	Template      models.ClaimTemplate
	ReferenceCode string
	IncidentDate  time.Time
	GeneratedAt   time.Time
	FieldValues   map[string]string
	Items         []models.ClaimItemInput
}

type ClaimDocumentResult struct {
	ReferenceCode string `json:"reference_code"`
	FileName      string `json:"file_name"`
	ObjectKey     string `json:"object_key"`
	URL           string `json:"url,omitempty"`
	Status        string `json:"status"`
}

const (
	DocumentReady  = "ready"
	DocumentQueued = "queued"
)

// ClaimFilename is the download name of a generated claim document.
func ClaimFilename(claimType models.ClaimType, companyName string, incidentDate time.Time) string {
	name := fmt.Sprintf("Insurance_Claim_%s_%s_%s.pdf", claimType.Label(), companyName, incidentDate.Format("2006-01-02"))
	return strings.ReplaceAll(name, " ", "_")
}

var disableConfigDir sync.Once

type ClaimDocumentService struct {
	templates *ClaimTemplateService
	storage   ObjectStorage
	jobs      JobSubmitter
	notifier  DocumentNotifier
	render    func(ClaimDocumentInput) ([]byte, error)
	now       func() time.Time
}

// NewClaimDocumentService builds the service. jobs and notifier may be nil, in
// which case GenerateAsync renders synchronously since nobody could be told
// when a queued document is done.
func NewClaimDocumentService(templates *ClaimTemplateService, storage ObjectStorage, jobs JobSubmitter, notifier DocumentNotifier) *ClaimDocumentService {
	disableConfigDir.Do(api.DisableConfigDir)
	return &ClaimDocumentService{
		templates: templates,
		storage:   storage,
		jobs:      jobs,
		notifier:  notifier,
		render:    RenderClaimDocument,
		now:       time.Now,
	}
}

// Generate renders the claim document, stores it and returns a download link.
func (s *ClaimDocumentService) Generate(ctx context.Context, ownerID string, req models.ClaimDocumentRequest) (*ClaimDocumentResult, error) {
	input, err := s.prepare(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	result := s.describe(ownerID, input)
	if err := s.produce(ctx, input, result); err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateAsync resolves the template up front and renders in the worker pool.
// The owner is notified once the document is ready or has failed.
func (s *ClaimDocumentService) GenerateAsync(ctx context.Context, ownerID string, req models.ClaimDocumentRequest) (*ClaimDocumentResult, error) {
	if s.jobs == nil || s.notifier == nil {
		return s.Generate(ctx, ownerID, req)
	}
	input, err := s.prepare(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}
	result := s.describe(ownerID, input)
	queued := *result
	queued.Status = DocumentQueued

	err = s.jobs.SubmitJob(func(jobCtx context.Context) error {
		res := *result
		if err := s.produce(jobCtx, input, &res); err != nil {
			slog.Error("async claim document generation failed",
				"reference_code", input.ReferenceCode, "owner_id", ownerID, "error", err)
			if nerr := s.notifier.NotifyClaimDocumentFailed(jobCtx, ownerID, res.FileName); nerr != nil {
				slog.Error("failed to publish claim document failure", "error", nerr)
			}
			return err
		}
		if nerr := s.notifier.NotifyClaimDocumentReady(jobCtx, ownerID, res.FileName, res.URL); nerr != nil {
			slog.Error("failed to publish claim document ready", "error", nerr)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to queue claim document: %w", err)
	}
	return &queued, nil
}

func (s *ClaimDocumentService) prepare(ctx context.Context, ownerID string, req models.ClaimDocumentRequest) (ClaimDocumentInput, error) {
	var tmpl models.ClaimTemplate
	if req.CustomTemplateID != nil {
		custom, err := s.templates.GetCustomTemplate(ctx, *req.CustomTemplateID, ownerID)
		if err != nil {
			return ClaimDocumentInput{}, err
		}
		tmpl = custom.Template
	} else {
		base, err := s.templates.GetTemplate(ctx, req.Company, req.ClaimType)
		if err != nil {
			return ClaimDocumentInput{}, err
		}
		tmpl = base
	}
	if req.Customizations != nil {
		tmpl = CustomizeTemplate(tmpl, *req.Customizations)
	}
	if issues := ValidateTemplate(tmpl); len(issues) > 0 {
		return ClaimDocumentInput{}, &TemplateValidationError{Issues: issues}
	}

	return ClaimDocumentInput{
		Template:      tmpl,
		ReferenceCode: "CLM-" + utils.GenerateRandomStringWithLength(8),
		IncidentDate:  req.IncidentDate,
		GeneratedAt:   s.now(),
		FieldValues:   trimFieldValues(req.FieldValues),
		Items:         req.Items,
	}, nil
}

func trimFieldValues(values map[string]string) map[string]string {
	trimmed, _ := utils.TrimAllStringFields(values).(map[string]string)
	return trimmed
}

func (s *ClaimDocumentService) describe(ownerID string, input ClaimDocumentInput) *ClaimDocumentResult {
	fileName := ClaimFilename(input.Template.ClaimType, input.Template.CompanyName, input.IncidentDate)
	return &ClaimDocumentResult{
		ReferenceCode: input.ReferenceCode,
		FileName:      fileName,
		ObjectKey:     fmt.Sprintf("%s/%s/%s", ownerID, input.ReferenceCode, fileName),
	}
}

func (s *ClaimDocumentService) produce(ctx context.Context, input ClaimDocumentInput, result *ClaimDocumentResult) error {
	pdf, err := s.render(input)
	if err != nil {
		return fmt.Errorf("failed to render claim document: %w", err)
	}
	if err := s.storage.UploadBytes(ctx, minio.Storage.ClaimDocuments, result.ObjectKey, pdf, "application/pdf"); err != nil {
		return fmt.Errorf("failed to upload claim document: %w", err)
	}
	url, err := s.storage.GetPresignedURL(ctx, minio.Storage.ClaimDocuments, result.ObjectKey, 0)
	if err != nil {
		return fmt.Errorf("failed to presign claim document url: %w", err)
	}
	result.URL = url
	result.Status = DocumentReady
	slog.Info("claim document generated", "reference_code", result.ReferenceCode, "object_key", result.ObjectKey, "size_bytes", len(pdf))
	return nil
}

// RenderClaimDocument lays the document out as a pdfcpu page description and
// renders it to PDF bytes.
func RenderClaimDocument(input ClaimDocumentInput) ([]byte, error) {
	desc, err := json.Marshal(BuildDocumentDescriptor(input))
	if err != nil {
		return nil, fmt.Errorf("failed to encode page description: %w", err)
	}
	conf := model.NewDefaultConfiguration()
	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(desc), &out, conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// ============================================================================
// PAGE DESCRIPTION
// ============================================================================

type pdfFont struct {
	Name  string  `json:"name"`
	Size  float64 `json:"size"`
	Color string  `json:"col,omitempty"`
}

type pdfText struct {
	Value    string      `json:"value"`
	Position *[2]float64 `json:"pos,omitempty"`
	Anchor   string      `json:"anchor,omitempty"`
	Rotation float64     `json:"rot,omitempty"`
	Font     pdfFont     `json:"font"`
}

type pdfContent struct {
	Text []pdfText `json:"text"`
}

type pdfPage struct {
	Content pdfContent `json:"content"`
}

// DocumentDescriptor is the JSON page description consumed by pdfcpu's create command.
type DocumentDescriptor struct {
	Paper  string             `json:"paper"`
	Origin string             `json:"origin"`
	Pages  map[string]pdfPage `json:"pages"`
}

type pageWriter struct {
	margin  float64
	regular string
	bold    string
	accent  string
	pages   []pdfPage
	y       float64
}

func (w *pageWriter) ensureRoom(lines int) {
	if len(w.pages) == 0 || w.y+float64(lines)*lineHeight > pageHeight-w.margin {
		w.pages = append(w.pages, pdfPage{Content: pdfContent{Text: []pdfText{}}})
		w.y = w.margin
	}
}

func (w *pageWriter) write(value string, font pdfFont, indent float64) {
	w.ensureRoom(1)
	pos := [2]float64{w.margin + indent, w.y}
	page := &w.pages[len(w.pages)-1]
	page.Content.Text = append(page.Content.Text, pdfText{Value: value, Position: &pos, Font: font})
	w.y += lineHeight * font.Size / bodyFontSize
}

func (w *pageWriter) body(value string) {
	for _, l := range wrapText(value, charsPerLine) {
		w.write(l, pdfFont{Name: w.regular, Size: bodyFontSize}, 0)
	}
}

func (w *pageWriter) indented(value string) {
	for _, l := range wrapText(value, charsPerLine-4) {
		w.write(l, pdfFont{Name: w.regular, Size: bodyFontSize}, 16)
	}
}

func (w *pageWriter) heading(title string) {
	w.ensureRoom(3)
	w.y += lineHeight / 2
	w.write(title, pdfFont{Name: w.bold, Size: 12, Color: w.accent}, 0)
}

func (w *pageWriter) gap() {
	w.y += lineHeight / 2
}

// BuildDocumentDescriptor lays out the claim document page by page.
func BuildDocumentDescriptor(input ClaimDocumentInput) DocumentDescriptor {
	t := input.Template
	regular, bold := coreFonts(t.Formatting.FontFamily)
	margin := t.Formatting.PageMargins
	if margin <= 0 {
		margin = defaultMargin
	}
	primary := t.Formatting.PrimaryColor
	if primary == "" {
		primary = "#000000"
	}
	w := &pageWriter{margin: margin, regular: regular, bold: bold, accent: primary}

	for _, l := range strings.Split(t.HeaderText, "\n") {
		w.write(l, pdfFont{Name: bold, Size: 16, Color: primary}, 0)
	}
	w.gap()
	w.body("Claim Type: " + t.ClaimType.Label())
	w.body("Reference: " + input.ReferenceCode)
	w.body("Incident Date: " + input.IncidentDate.Format("January 2, 2006"))
	w.body("Prepared: " + input.GeneratedAt.Format("January 2, 2006"))

	for _, section := range t.FormSections {
		w.heading(section.Title)
		for _, field := range section.Fields {
			w.body(field + ": " + fieldValue(input.FieldValues, field))
		}
	}

	w.heading("Required Information")
	for _, field := range t.RequiredFields {
		mark := "[ ]"
		if strings.TrimSpace(input.FieldValues[field]) != "" {
			mark = "[x]"
		}
		w.body(mark + " " + field)
	}

	if len(input.Items) > 0 {
		w.heading("Damaged Items")
		total := decimal.Zero
		valued := 0
		for i, item := range input.Items {
			w.body(fmt.Sprintf("%d. %s - %s damage, %s", i+1, item.Name, item.DamageType.Label(), item.Severity.Label()))
			if item.Description != "" {
				w.indented(item.Description)
			}
			original := "Unknown"
			if item.OriginalValue != nil {
				original = "$" + item.OriginalValue.StringFixed(2)
			}
			w.indented(fmt.Sprintf("Original value: %s, estimated current value: %s",
				original, formatEstimate(EstimateCurrentValue(item.OriginalValue, item.Severity))))
			if loss, err := CalculateDamageValue(item.OriginalValue, item.Severity); err == nil {
				total = total.Add(loss)
				valued++
			}
		}
		if valued > 0 {
			w.gap()
			w.write(fmt.Sprintf("Total estimated loss (%d of %d items valued): $%s", valued, len(input.Items), total.StringFixed(2)),
				pdfFont{Name: bold, Size: bodyFontSize}, 0)
		}
	}

	w.heading("Legal Disclaimer")
	w.body(t.LegalDisclaimer)

	if t.SubmissionInstructions != "" {
		w.heading("Submission Instructions")
		for _, l := range strings.Split(t.SubmissionInstructions, "\n") {
			w.body(l)
		}
	}
	if t.ContactInformation != "" {
		w.heading("Contact")
		w.body(t.ContactInformation)
	}

	desc := DocumentDescriptor{Paper: "A4P", Origin: "UpperLeft", Pages: map[string]pdfPage{}}
	for i, page := range w.pages {
		if t.Formatting.IncludeWatermark {
			page.Content.Text = append(page.Content.Text, pdfText{
				Value:    "CLAIM COPY",
				Anchor:   "center",
				Rotation: 45,
				Font:     pdfFont{Name: bold, Size: 60, Color: "#DDDDDD"},
			})
		}
		desc.Pages[fmt.Sprint(i+1)] = page
	}
	return desc
}

func fieldValue(values map[string]string, field string) string {
	if v := strings.TrimSpace(values[field]); v != "" {
		return v
	}
	return emptyFieldText
}

// coreFonts maps a font family onto the PDF core fonts.
func coreFonts(family string) (regular, bold string) {
	f := strings.ToLower(family)
	switch {
	case strings.Contains(f, "times"), strings.Contains(f, "serif") && !strings.Contains(f, "sans"):
		return "Times-Roman", "Times-Bold"
	case strings.Contains(f, "courier"), strings.Contains(f, "mono"):
		return "Courier", "Courier-Bold"
	default:
		return "Helvetica", "Helvetica-Bold"
	}
}

// wrapText breaks s into lines of at most width runes on word boundaries.
// Words longer than width are kept whole.
func wrapText(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			if len([]rune(line))+1+len([]rune(word)) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line += " " + word
		}
		lines = append(lines, line)
	}
	return lines
}
