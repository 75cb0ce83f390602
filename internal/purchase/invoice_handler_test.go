package purchase

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"portal-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInvoiceFile(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		size        int64
		wantExt     string
		wantErr     bool
	}{
		{"pdf", "application/pdf", 1 << 20, ".pdf", false},
		{"jpeg", "image/jpeg", 5 << 20, ".jpg", false},
		{"jpg", "image/jpg", 1024, ".jpg", false},
		{"png", "image/png", 1024, ".png", false},
		{"büyük harf mime", "IMAGE/PNG", 1024, ".png", false},
		{"tam sınır", "application/pdf", 10 << 20, ".pdf", false},
		{"15 MB çok büyük", "application/pdf", 15 << 20, "", true},
		{"desteklenmeyen tip", "application/zip", 1024, "", true},
		{"boş tip", "", 1024, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := validateInvoiceFile(tt.contentType, tt.size)
			if tt.wantErr {
				require.Error(t, err)
				ferr, ok := err.(*fiber.Error)
				require.True(t, ok)
				assert.Equal(t, fiber.StatusBadRequest, ferr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

// Sunucudaki kurulumla aynı: gövde limiti dosya sınırının rahat
// üstünde, hata zarfı app-level ErrorHandler'dan
func newUploadTestApp(invoiceDir string) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})
	app.Post("/api/purchase-invoices", UploadInvoiceHandler(&config.Config{InvoiceFilePath: invoiceDir}))
	return app
}

func multipartInvoiceBody(t *testing.T, fileSize int) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("purchaseId", "1"))
	require.NoError(t, w.WriteField("amount", "2500"))

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="fatura.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("a"), fileSize))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// 15 MB'lik dosya handler'a ulaşmalı ve 400 ile dönmeli; gövde limiti
// isteği daha önce kesmemeli. Ne dosya yazılır ne kayıt açılır (boyut
// kontrolü diske ve veritabanına dokunmadan önce çalışır).
func TestUploadInvoice_OversizedFileReturns400(t *testing.T) {
	dir := t.TempDir()
	app := newUploadTestApp(dir)

	body, contentType := multipartInvoiceBody(t, 15<<20)
	req := httptest.NewRequest(fiber.MethodPost, "/api/purchase-invoices", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Contains(t, payload["error"], "10 MB")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
