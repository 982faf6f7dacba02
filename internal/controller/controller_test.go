package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"trade-advisor-be/internal/dto"
	"trade-advisor-be/internal/pkg/logger"
	"trade-advisor-be/internal/pkg/serverutils"
	"trade-advisor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type stubAdvisorService struct {
	lastUser uuid.UUID
	lastReq  *dto.AdvisorChatRequest
}

func (s *stubAdvisorService) Reply(ctx context.Context, userId uuid.UUID, req *dto.AdvisorChatRequest) (*dto.AdvisorChatResponse, error) {
	s.lastUser, s.lastReq = userId, req
	return &dto.AdvisorChatResponse{Reply: "ok", Topic: "pricing"}, nil
}

func (s *stubAdvisorService) PreviewContext(ctx context.Context, userId uuid.UUID, req *dto.AdvisorChatRequest) (*dto.AdvisorContextResponse, error) {
	return &dto.AdvisorContextResponse{Context: "ctx"}, nil
}

func (s *stubAdvisorService) Moderate(ctx context.Context, userId uuid.UUID, req *dto.ModerateRequest) (*dto.ModerateResponse, error) {
	return &dto.ModerateResponse{Allowed: true, ProviderAvailable: true}, nil
}

type stubDocumentService struct {
	uploaded []byte
	name     string
	err      error
}

func (s *stubDocumentService) Upload(ctx context.Context, userId uuid.UUID, fileName, mimeType string, content []byte) (*dto.UploadDocumentResponse, error) {
	s.name, s.uploaded = fileName, content
	return &dto.UploadDocumentResponse{Id: uuid.New(), FileName: fileName, Status: "pending"}, s.err
}

func (s *stubDocumentService) List(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error) {
	return []*dto.DocumentResponse{}, nil
}

func (s *stubDocumentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	return s.err
}

func newTestApp(advisor service.IAdvisorService, documents service.IDocumentService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.NewErrorHandler(logger.NewNop())})
	auth := serverutils.NewJwtMiddleware(testSecret)
	api := app.Group("/api")
	NewAdvisorController(advisor, auth).RegisterRoutes(api)
	NewDocumentController(documents, auth).RegisterRoutes(api)
	return app
}

func bearer(t *testing.T, userId uuid.UUID) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userId.String()})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestAdvisorController_Chat(t *testing.T) {
	svc := &stubAdvisorService{}
	app := newTestApp(svc, &stubDocumentService{})
	userId := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/advisor/v1/chat", bytes.NewBufferString(`{"message":"what should I charge"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, userId))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["data"].(map[string]interface{})["reply"])
	assert.Equal(t, userId, svc.lastUser)
	assert.Equal(t, "what should I charge", svc.lastReq.Message)
}

func TestAdvisorController_RejectsMissingTokenAndInvalidBody(t *testing.T) {
	app := newTestApp(&stubAdvisorService{}, &stubDocumentService{})

	req := httptest.NewRequest(http.MethodPost, "/api/advisor/v1/chat", bytes.NewBufferString(`{"message":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/advisor/v1/moderate", bytes.NewBufferString(`{"content":"x","content_type":"tweet"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, uuid.New()))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "ContentType")
}

func TestDocumentController_Upload(t *testing.T) {
	docs := &stubDocumentService{}
	app := newTestApp(&stubAdvisorService{}, docs)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "prices.txt")
	require.NoError(t, err)
	_, _ = part.Write([]byte("weekly mow,45"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/document/v1", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", bearer(t, uuid.New()))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "prices.txt", docs.name)
	assert.Equal(t, "weekly mow,45", string(docs.uploaded))
}

func TestDocumentController_DeleteMapsErrors(t *testing.T) {
	docs := &stubDocumentService{err: service.ErrDocumentNotFound}
	app := newTestApp(&stubAdvisorService{}, docs)
	token := bearer(t, uuid.New())

	req := httptest.NewRequest(http.MethodDelete, "/api/document/v1/"+uuid.New().String(), nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req = httptest.NewRequest(http.MethodDelete, "/api/document/v1/not-a-uuid", nil)
	req.Header.Set("Authorization", token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
