package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/", AuthMiddleware(), func(c *gin.Context) {
		id, ok := TelegramID(c)
		if !ok {
			t.Fatal("telegram id not stored")
		}
		c.String(http.StatusOK, strconv.FormatInt(id, 10))
	})

	tests := []struct {
		header string
		code   int
	}{
		{"", http.StatusUnauthorized},
		{"abc", http.StatusUnauthorized},
		{"-5", http.StatusUnauthorized},
		{"123456789", http.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set(HeaderTelegramID, tt.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tt.code {
			t.Fatalf("header %q: got %d, want %d", tt.header, rec.Code, tt.code)
		}
		if tt.code == http.StatusOK && rec.Body.String() != tt.header {
			t.Fatalf("handler saw %q", rec.Body.String())
		}
	}
}

func TestSignature(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	ts := strconv.FormatInt(now.Unix(), 10)
	body := `{"text":"send 2k"}`
	v := &Signature{Secret: "secret", MaxSkew: time.Minute, Now: func() time.Time { return now }}

	r := gin.New()
	echo := func(c *gin.Context) {
		b, _ := c.GetRawData()
		c.String(http.StatusOK, string(b))
	}
	r.POST("/message", v.Middleware(), echo)
	r.POST("/cancel", v.Middleware(), echo)
	r.PUT("/message", v.Middleware(), echo)

	valid := Sign("secret", ts, http.MethodPost, "/message", "42", []byte(body))

	tests := []struct {
		name   string
		method string
		path   string
		id     string
		ts     string
		sig    string
		code   int
	}{
		{"valid", http.MethodPost, "/message", "42", ts, valid, http.StatusOK},
		{"uppercase hex", http.MethodPost, "/message", "42", ts, strings.ToUpper(valid), http.StatusOK},
		{"wrong secret", http.MethodPost, "/message", "42", ts, Sign("other", ts, http.MethodPost, "/message", "42", []byte(body)), http.StatusUnauthorized},
		{"other telegram id", http.MethodPost, "/message", "777", ts, valid, http.StatusUnauthorized},
		{"other route", http.MethodPost, "/cancel", "42", ts, valid, http.StatusUnauthorized},
		{"other method", http.MethodPut, "/message", "42", ts, valid, http.StatusUnauthorized},
		{"missing signature", http.MethodPost, "/message", "42", ts, "", http.StatusUnauthorized},
		{"missing timestamp", http.MethodPost, "/message", "42", "", Sign("secret", "", http.MethodPost, "/message", "42", []byte(body)), http.StatusUnauthorized},
		{"stale", http.MethodPost, "/message", "42", "1699990000", Sign("secret", "1699990000", http.MethodPost, "/message", "42", []byte(body)), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(body))
			req.Header.Set(HeaderTelegramID, tt.id)
			if tt.ts != "" {
				req.Header.Set(HeaderTimestamp, tt.ts)
			}
			if tt.sig != "" {
				req.Header.Set(HeaderSignature, tt.sig)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.code {
				t.Fatalf("got %d, want %d", rec.Code, tt.code)
			}
			if tt.code == http.StatusOK && rec.Body.String() != body {
				t.Fatalf("body not restored: %q", rec.Body.String())
			}
		})
	}
}

func TestSignatureDisabledWithoutSecret(t *testing.T) {
	r := gin.New()
	r.POST("/", (&Signature{}).Middleware(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("got %d", rec.Code)
	}
}
