package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/raushankrgupta/harvesthub-seeder/models"
	"github.com/raushankrgupta/harvesthub-seeder/utils"
)

// CreateProduct submits draft to the upload endpoint. When image is non-nil
// the body is multipart/form-data with a single "images" part, otherwise it
// is url-encoded. Any non-200 outcome is a *SubmissionFailure.
func (c *Client) CreateProduct(ctx context.Context, token, sellerID string, draft models.ProductDraft, image *models.ImageFile) (*models.CreateProductResponse, error) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Print(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Create Product]")

	fields, err := draft.FormFields()
	if err != nil {
		return nil, &SubmissionFailure{Err: err}
	}
	fields = append(fields, models.FormField{Key: "sellerId", Value: sellerID})

	var (
		body        []byte
		contentType string
	)
	if image != nil {
		body, contentType, err = encodeMultipart(fields, image)
		if err != nil {
			return nil, &SubmissionFailure{Err: err}
		}
		utils.AddToLogMessagef(&logMessageBuilder, "Multipart body with image %s (%d bytes)", image.Name, len(image.Data))
	} else {
		body, contentType = encodeForm(fields)
		utils.AddToLogMessage(&logMessageBuilder, "Form body without image")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(UploadPath), bytes.NewReader(body))
	if err != nil {
		return nil, &SubmissionFailure{Err: fmt.Errorf("failed to create upload request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		utils.AddToLogMessagef(&logMessageBuilder, "Request failed: %v", err)
		return nil, &SubmissionFailure{Err: fmt.Errorf("failed to send upload request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SubmissionFailure{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read upload response: %w", err)}
	}
	utils.AddToLogMessagef(&logMessageBuilder, "Status: %d", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		utils.AddToLogMessagef(&logMessageBuilder, "Error body: %s", utils.Truncate(string(respBody), 512))
		return nil, newSubmissionFailure(resp.StatusCode, respBody)
	}

	var created models.CreateProductResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, &SubmissionFailure{StatusCode: resp.StatusCode, Body: string(respBody), Err: fmt.Errorf("failed to decode upload response: %w", err)}
	}
	return &created, nil
}

func encodeForm(fields []models.FormField) ([]byte, string) {
	values := url.Values{}
	for _, f := range fields {
		values.Add(f.Key, f.Value)
	}
	return []byte(values.Encode()), "application/x-www-form-urlencoded"
}

func encodeMultipart(fields []models.FormField, image *models.ImageFile) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := writer.WriteField(f.Key, f.Value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f.Key, err)
		}
	}

	// CreateFormFile would force application/octet-stream.
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		ImagesField, escapeQuotes(filepath.Base(image.Name))))
	header.Set("Content-Type", ImageContentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := part.Write(image.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write image part: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return buf.Bytes(), writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
