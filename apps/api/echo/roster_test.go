package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vidyalabs/vidya/core"
	"github.com/vidyalabs/vidya/core/course"
	"github.com/vidyalabs/vidya/core/identity"
	"github.com/vidyalabs/vidya/core/ingest"
	"github.com/vidyalabs/vidya/core/people"
	"github.com/vidyalabs/vidya/core/roster"
	"github.com/vidyalabs/vidya/storage/database/inmem"
	testutil "github.com/vidyalabs/vidya/tests"
)

func TestMain(m *testing.M) {
	core.InitValidators()
	os.Exit(m.Run())
}

type mailStub struct{}

func (mailStub) SendMessages(...*core.EmailMessage) {}

type accountsStub struct{ n int }

func (a *accountsStub) CreateAccount(ctx context.Context, acct people.Account) (string, error) {
	a.n++
	return fmt.Sprintf("ext-%d", a.n), nil
}

func newTestServer(t *testing.T) Server {
	t.Helper()

	conf := &core.Config{AppName: "vidya", Env: "TEST", FrontendBaseURL: "http://localhost:3000"}
	resolver := identity.NewResolver("svit.edu.in")
	logger := testutil.Logger{}
	personRepo := inmem.NewPersonRepository()

	importer := ingest.NewImporter(
		testutil.NewDB(t), roster.NewParser(),
		people.NewStudentService(personRepo, resolver, &accountsStub{}, mailStub{}, logger, conf),
		people.NewFacultyService(personRepo, resolver, &accountsStub{}, mailStub{}, logger, conf),
		course.NewService(inmem.NewCourseRepository(), logger),
		inmem.NewEnrollmentRepository(), inmem.NewAttendanceRepository(), logger,
	)

	return NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logger,
		Importer:       importer,
	})
}

func uploadRequest(t *testing.T, target, filename string, body []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = fw.Write(body); err != nil {
		t.Fatal(err)
	}
	for k, v := range fields {
		if err = mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if err = mw.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func Test_rosterApi_preview(t *testing.T) {
	srv := newTestServer(t)
	csvBody := []byte(testutil.GridCSV(testutil.BandedRosterGrid()))

	req := uploadRequest(t, "/v1/rosters/preview", "ECE_roster.csv", csvBody, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var res roster.ParseResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Layout != roster.LayoutBanded {
		t.Errorf("layout = %q, want banded", res.Layout)
	}
	if len(res.Subjects) != 3 || len(res.Students) != 2 {
		t.Errorf("subjects = %d, students = %d", len(res.Subjects), len(res.Students))
	}
}

func Test_rosterApi_commit(t *testing.T) {
	srv := newTestServer(t)
	csvBody := []byte(testutil.GridCSV(testutil.BandedRosterGrid()))

	req := uploadRequest(t, "/v1/rosters/commit", "ECE_roster.csv", csvBody, map[string]string{"department": "ECE"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var summary ingest.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.StudentsAdded != 2 || summary.CoursesAdded != 3 || summary.AttendanceAdded != 5 {
		t.Errorf("summary = %+v", summary)
	}
}

func Test_rosterApi_commit_noTimeAnchor(t *testing.T) {
	srv := newTestServer(t)
	csvBody := []byte(testutil.GridCSV(testutil.BandedRosterGridNoDates()))

	req := uploadRequest(t, "/v1/rosters/commit", "ECE_roster.csv", csvBody, map[string]string{"department": "ECE"})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Error   string          `json:"error"`
		Summary *ingest.Summary `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error == "" {
		t.Error("missing error message")
	}
	if body.Summary == nil || body.Summary.CoursesAdded != 3 {
		t.Errorf("partial summary = %+v", body.Summary)
	}
}

func Test_rosterApi_badUploads(t *testing.T) {
	srv := newTestServer(t)

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		_ = mw.WriteField("department", "ECE")
		_ = mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/v1/rosters/preview", &buf)
		req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		req := uploadRequest(t, "/v1/rosters/preview", "roster.pdf", []byte("%PDF"), nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unparseable sheet", func(t *testing.T) {
		req := uploadRequest(t, "/v1/rosters/preview", "empty.csv", nil, nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("status = %d, want 422, body = %s", rec.Code, rec.Body.String())
		}
	})
}
