package services

import (
	"fmt"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// CertificateRenderer asks the external renderer to produce a certificate PDF
// and returns the URL of the stored document.
type CertificateRenderer interface {
	Render(userName, courseTitle string, issuedAt time.Time) (string, error)
}

type restyRenderer struct {
	client *resty.Client
}

// NewCertificateRenderer builds a client for the configured render endpoint
func NewCertificateRenderer() CertificateRenderer {
	client := resty.New().
		SetBaseURL(config.AppConfig.CertRenderURL).
		SetTimeout(15 * time.Second)
	return &restyRenderer{client: client}
}

type renderResponse struct {
	DocumentURL string `json:"document_url"`
}

func (r *restyRenderer) Render(userName, courseTitle string, issuedAt time.Time) (string, error) {
	var out renderResponse
	resp, err := r.client.R().
		SetBody(map[string]string{
			"user_name":    userName,
			"course_title": courseTitle,
			"issued_at":    issuedAt.Format("2006-01-02"),
		}).
		SetResult(&out).
		Post("/render")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("certificate renderer returned %d", resp.StatusCode())
	}
	return out.DocumentURL, nil
}
