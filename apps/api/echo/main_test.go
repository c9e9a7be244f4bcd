package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tujenge/mipango/core"
	"github.com/tujenge/mipango/core/department"
	"github.com/tujenge/mipango/core/meeting"
	"github.com/tujenge/mipango/core/task"
	filesvc "github.com/tujenge/mipango/services/files"
	dummydb "github.com/tujenge/mipango/storage/database/dummy"
)

var errMissingToken = httpErr{Error: "admin authentication required"}

type testDeps struct {
	conf       *core.Config
	taskSvc    *task.Service
	deptSvc    *department.Service
	meetingSvc *meeting.Service
}

func setup(t *testing.T) (*Server, testDeps) {
	conf := core.NewConfig()
	conf.Debug = false
	conf.TestMode = true
	conf.Storage.Dir = t.TempDir()
	conf.Storage.PublicBaseURL = ""
	return setupWithConf(t, conf)
}

func setupWithConf(t *testing.T, conf *core.Config) (*Server, testDeps) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	storage, err := filesvc.NewLocalStorage(conf)
	if err != nil {
		t.Fatalf("filesvc.NewLocalStorage() failed: %v", err)
	}

	deps := testDeps{
		conf:       conf,
		taskSvc:    task.NewService(dummydb.NewTaskRepository(db)),
		deptSvc:    department.NewService(dummydb.NewDepartmentRepository(db), storage),
		meetingSvc: meeting.NewService(dummydb.NewMeetingRepository(db)),
	}
	app := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     testLogger{t},
		TaskSvc:    deps.taskSvc,
		DeptSvc:    deps.deptSvc,
		MeetingSvc: deps.meetingSvc,
	})
	return app, deps
}

type testLogger struct{ t *testing.T }

func (l testLogger) Enable(bool)                          {}
func (l testLogger) Debug(msg string, args ...interface{}) {}
func (l testLogger) Info(msg string, args ...interface{})  {}
func (l testLogger) Warn(msg string, args ...interface{})  {}
func (l testLogger) Error(msg string, args ...interface{}) { l.t.Logf("ERROR: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{}) { l.t.Fatalf("FATAL: %s %v", msg, args) }

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, conf *core.Config, role string) string {
	token, err := GenerateToken(conf, NewClaims(conf, role))
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
