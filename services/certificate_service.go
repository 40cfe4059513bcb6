package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	config "github.com/tutorbridge/volunteer_tutor/configs"
)

// CertificateService renders volunteer recognition certificates to PDF
// with headless Chrome and stores them in Cloudinary.
type CertificateService struct{}

func NewCertificateService() *CertificateService {
	return &CertificateService{}
}

func (s *CertificateService) Generate(tutorName, level string, hours float64, tutorID uuid.UUID) (string, error) {
	html, err := renderCertificateHTML(tutorName, level, hours)
	if err != nil {
		return "", fmt.Errorf("failed to render certificate HTML: %w", err)
	}

	pdfBytes, err := renderPDFFromHTML(html)
	if err != nil {
		return "", fmt.Errorf("failed to render certificate PDF: %w", err)
	}

	return uploadCertificate(pdfBytes, tutorID.String())
}

func renderCertificateHTML(tutorName, level string, hours float64) (string, error) {
	tmpl, err := template.ParseFiles("templates/certificate.html")
	if err != nil {
		return "", err
	}

	data := struct {
		TutorName string
		Level     string
		Hours     float64
		IssueDate string
	}{
		TutorName: tutorName,
		Level:     level,
		Hours:     hours,
		IssueDate: time.Now().Format("January 2, 2006"),
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func renderPDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadCertificate(fileBytes []byte, tutorID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("certificates/%s_%s", tutorID, uuid.New().String()),
		Folder:       "volunteer_tutor_certificates",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
