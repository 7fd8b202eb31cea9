package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/parentsphere/internal/db"
	"github.com/terraincognita07/parentsphere/internal/i18n"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func newOnboardingTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	return newOnboardingTestAppWithCookieSecure(t, false)
}

func newOnboardingTestAppWithCookieSecure(t *testing.T, cookieSecure bool) (*fiber.App, *gorm.DB) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "parentsphere-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(database, testSecretKey, i18nManager, cookieSecure, time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, database
}

type testClient struct {
	t        *testing.T
	app      *fiber.App
	session  *http.Cookie
	language string
}

func newTestClient(t *testing.T, app *fiber.App) *testClient {
	return &testClient{t: t, app: app}
}

func (client *testClient) do(method string, path string, body any) (*http.Response, []byte) {
	client.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			client.t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if client.language != "" {
		request.Header.Set("Accept-Language", client.language)
	}
	if client.session != nil {
		request.AddCookie(client.session)
	}

	response, err := client.app.Test(request, -1)
	if err != nil {
		client.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	content, err := io.ReadAll(response.Body)
	if err != nil {
		client.t.Fatalf("read %s %s body: %v", method, path, err)
	}
	if cookie := responseCookie(response.Cookies(), sessionCookieName); cookie != nil {
		if cookie.Value == "" {
			client.session = nil
		} else {
			client.session = cookie
		}
	}
	return response, content
}

func (client *testClient) expect(method string, path string, body any, status int) []byte {
	client.t.Helper()

	response, content := client.do(method, path, body)
	if response.StatusCode != status {
		client.t.Fatalf("%s %s: expected status %d, got %d: %s", method, path, status, response.StatusCode, content)
	}
	return content
}

func (client *testClient) start() sessionSnapshotPayload {
	client.t.Helper()

	content := client.expect(http.MethodPost, "/api/onboarding/sessions", nil, http.StatusCreated)
	if client.session == nil {
		client.t.Fatal("expected onboarding session cookie")
	}
	return decodeJSON[sessionSnapshotPayload](client.t, content)
}

type sessionSnapshotPayload struct {
	SessionID    string            `json:"sessionId"`
	SubmissionID string            `json:"submissionId"`
	Step         int               `json:"step"`
	StepName     string            `json:"stepName"`
	TotalSteps   int               `json:"totalSteps"`
	Completed    bool              `json:"completed"`
	Errors       map[string]string `json:"errors"`
	CanRemove    bool              `json:"canRemoveBaby"`
	Record       struct {
		FullName    string `json:"fullName"`
		ParentLevel string `json:"parentLevel"`
		Babies      []struct {
			ID   uint64 `json:"id"`
			Name string `json:"name"`
		} `json:"babies"`
		Concerns []string `json:"concerns"`
	} `json:"record"`
}

type errorPayload struct {
	Error    string            `json:"error"`
	Message  string            `json:"message"`
	Step     string            `json:"step"`
	Fields   map[string]string `json:"fields"`
	Problems map[string]string `json:"problems"`
}

func decodeJSON[T any](t *testing.T, content []byte) T {
	t.Helper()

	var value T
	if err := json.Unmarshal(content, &value); err != nil {
		t.Fatalf("decode json %s: %v", content, err)
	}
	return value
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie != nil && cookie.Name == name {
			return cookie
		}
	}
	return nil
}
