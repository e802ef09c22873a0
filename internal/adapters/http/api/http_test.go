package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rolematch/rolematch/internal/adapters/http/api"
	"github.com/rolematch/rolematch/internal/adapters/repository"
	"github.com/rolematch/rolematch/internal/domain/links"
	"github.com/rolematch/rolematch/internal/domain/questions"
	"github.com/rolematch/rolematch/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	sessions map[string]bool
	answers  map[string][]int
	result   scoring.Result
	roles    []string
	links    map[string]links.RoleLinks
	reloaded []string
}

func newMockDependencies() *mockDependencies {
	return &mockDependencies{
		sessions: make(map[string]bool),
		answers:  make(map[string][]int),
		result: scoring.Result{
			Best:     []string{"Referee", "Scorekeeper"},
			NextBest: []string{"Greeter"},
		},
		roles: []string{"Referee", "Scorekeeper", "Greeter"},
		links: map[string]links.RoleLinks{
			"Referee": {Express: "https://example.com/referee"},
		},
	}
}

func (m *mockDependencies) StartSession(ctx context.Context) (string, error) {
	id := "session-1"
	m.sessions[id] = true
	return id, nil
}

func (m *mockDependencies) Question(ctx context.Context, id int) (questions.Question, error) {
	return questions.Get(id)
}

func (m *mockDependencies) Questions(ctx context.Context) []questions.Question {
	return questions.All()
}

func (m *mockDependencies) SaveAnswer(ctx context.Context, sessionID string, questionID int, answer, eventKind string) (bool, error) {
	if !m.sessions[sessionID] {
		return false, repository.ErrSessionNotFound
	}
	if _, err := questions.KindOf(questionID); err != nil {
		return false, err
	}
	m.answers[sessionID] = append(m.answers[sessionID], questionID)
	return questionID == 2 && strings.EqualFold(answer, "no"), nil
}

func (m *mockDependencies) Submit(ctx context.Context, sessionID string) (scoring.Result, error) {
	if !m.sessions[sessionID] {
		return scoring.Result{}, repository.ErrSessionNotFound
	}
	if len(m.answers[sessionID]) == 0 {
		return scoring.Result{}, repository.ErrNoAnswers
	}
	return m.result, nil
}

func (m *mockDependencies) Roles(ctx context.Context) []string {
	return m.roles
}

func (m *mockDependencies) RoleLinks(ctx context.Context, role string) (links.RoleLinks, bool) {
	rl, ok := m.links[role]
	return rl, ok
}

func (m *mockDependencies) ReloadCatalog(ctx context.Context, path string) error {
	m.reloaded = append(m.reloaded, path)
	return nil
}

func (m *mockDependencies) ReloadLinks(ctx context.Context, path string) error {
	m.reloaded = append(m.reloaded, path)
	return nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestRouter(t *testing.T, opts ...api.ServerOption) (*mockDependencies, http.Handler) {
	t.Helper()
	deps := newMockDependencies()
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"started": true}}, opts...)
	return deps, server.Router(context.Background())
}

func postJSON(router http.Handler, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(rec *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return out
}

func TestSessionEndpoints(t *testing.T) {
	Convey("Given the API router", t, func() {
		_, router := newTestRouter(t)

		Convey("When starting a session", func() {
			rec := postJSON(router, "/start-session", nil)

			Convey("Then it should return the new session id", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := decodeBody(rec)
				So(body["status"], ShouldEqual, "success")
				So(body["session_id"], ShouldEqual, "session-1")
			})
		})

		Convey("When saving a valid answer", func() {
			postJSON(router, "/start-session", nil)
			qid := 1
			rec := postJSON(router, "/save-answer", map[string]any{
				"session_id":  "session-1",
				"question_id": qid,
				"answer":      "18 and older",
			})

			Convey("Then it should acknowledge the answer", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(decodeBody(rec)["status"], ShouldEqual, "success")
			})
		})

		Convey("When declining physical activity", func() {
			postJSON(router, "/start-session", nil)
			rec := postJSON(router, "/save-answer", map[string]any{
				"session_id":  "session-1",
				"question_id": 2,
				"answer":      "No",
			})

			Convey("Then the response should carry the skip hint", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(decodeBody(rec)["skip_next"], ShouldEqual, true)
			})
		})

		Convey("When saving with a missing field", func() {
			rec := postJSON(router, "/save-answer", map[string]any{
				"session_id": "session-1",
			})

			Convey("Then it should reject the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When saving against an unknown session", func() {
			rec := postJSON(router, "/save-answer", map[string]any{
				"session_id":  "ghost",
				"question_id": 1,
				"answer":      "18 and older",
			})

			Convey("Then it should return not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSubmitEndpoint(t *testing.T) {
	Convey("Given the API router", t, func() {
		_, router := newTestRouter(t)

		Convey("When submitting a completed questionnaire", func() {
			postJSON(router, "/start-session", nil)
			postJSON(router, "/save-answer", map[string]any{
				"session_id":  "session-1",
				"question_id": 1,
				"answer":      "18 and older",
			})
			rec := postJSON(router, "/submit", map[string]any{"session_id": "session-1"})

			Convey("Then it should return comma-joined result buckets", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := decodeBody(rec)
				So(body["status"], ShouldEqual, "success")
				results, ok := body["results"].(map[string]any)
				So(ok, ShouldBeTrue)
				So(results["Best fit roles"], ShouldEqual, "Referee, Scorekeeper")
				So(results["Next best roles"], ShouldEqual, "Greeter")
			})
		})

		Convey("When submitting without answers", func() {
			postJSON(router, "/start-session", nil)
			rec := postJSON(router, "/submit", map[string]any{"session_id": "session-1"})

			Convey("Then it should reject the empty session", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When submitting an unknown session", func() {
			rec := postJSON(router, "/submit", map[string]any{"session_id": "ghost"})

			Convey("Then it should return not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When submitting without a session id", func() {
			rec := postJSON(router, "/submit", map[string]any{})

			Convey("Then it should reject the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestQuestionEndpoints(t *testing.T) {
	Convey("Given the API router", t, func() {
		_, router := newTestRouter(t)

		Convey("When fetching all questions", func() {
			rec := get(router, "/get-questions")

			Convey("Then it should return the questionnaire", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var all []map[string]any
				So(json.Unmarshal(rec.Body.Bytes(), &all), ShouldBeNil)
				So(len(all), ShouldEqual, 12)
			})
		})

		Convey("When fetching one question", func() {
			rec := get(router, "/get-question/1")

			Convey("Then it should return the question text", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(decodeBody(rec)["question"], ShouldNotBeEmpty)
			})
		})

		Convey("When fetching an out-of-range question", func() {
			rec := get(router, "/get-question/99")

			Convey("Then it should return not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When fetching a non-numeric question id", func() {
			rec := get(router, "/get-question/first")

			Convey("Then it should reject the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestRoleEndpoints(t *testing.T) {
	Convey("Given the API router", t, func() {
		_, router := newTestRouter(t)

		Convey("When listing roles", func() {
			rec := get(router, "/get-roles")

			Convey("Then it should return the catalog names", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := decodeBody(rec)
				roles, ok := body["roles"].([]any)
				So(ok, ShouldBeTrue)
				So(len(roles), ShouldEqual, 3)
			})
		})

		Convey("When fetching links for a known role", func() {
			rec := get(router, "/role-links/Referee")

			Convey("Then it should return the link set", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(decodeBody(rec)["express_link"], ShouldEqual, "https://example.com/referee")
			})
		})

		Convey("When fetching links for an unknown role", func() {
			rec := get(router, "/role-links/Nobody")

			Convey("Then it should return not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the API router", t, func() {
		_, router := newTestRouter(t)

		Convey("When checking health", func() {
			rec := get(router, "/healthz")

			Convey("Then it should report ok", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(decodeBody(rec)["status"], ShouldEqual, "ok")
			})
		})

		Convey("When fetching metrics", func() {
			rec := get(router, "/metrics")

			Convey("Then it should expose the Prometheus registry", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When fetching stats", func() {
			rec := get(router, "/stats")

			Convey("Then it should return the provider's snapshot", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(decodeBody(rec)["started"], ShouldEqual, true)
			})
		})
	})
}

func multipartUpload(router http.Handler, path, token, content string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "sheet.csv")
	_, _ = part.Write([]byte(content))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("X-Admin-Token", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdminEndpoints(t *testing.T) {
	Convey("Given a router with an admin token", t, func() {
		deps, router := newTestRouter(t,
			api.WithAdminToken("secret"),
			api.WithUploadsDir(t.TempDir()),
		)

		Convey("When uploading a catalog with the right token", func() {
			rec := multipartUpload(router, "/admin/upload-catalog", "secret", "role_name\nReferee\n")

			Convey("Then the sheet should be staged and reloaded", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(len(deps.reloaded), ShouldEqual, 1)
			})
		})

		Convey("When uploading with a wrong token", func() {
			rec := multipartUpload(router, "/admin/upload-catalog", "wrong", "role_name\n")

			Convey("Then it should be rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusUnauthorized)
				So(deps.reloaded, ShouldBeEmpty)
			})
		})

		Convey("When uploading without a file part", func() {
			req := httptest.NewRequest(http.MethodPost, "/admin/upload-links", strings.NewReader("nope"))
			req.Header.Set("X-Admin-Token", "secret")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Convey("Then it should reject the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})

	Convey("Given a router without an admin token", t, func() {
		_, router := newTestRouter(t)

		Convey("When uploading a catalog", func() {
			rec := multipartUpload(router, "/admin/upload-catalog", "any", "role_name\n")

			Convey("Then the admin surface should be disabled", func() {
				So(rec.Code, ShouldEqual, http.StatusForbidden)
			})
		})
	})
}
