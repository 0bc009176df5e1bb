package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/threepeak/choretrack/internal/database"
	"github.com/threepeak/choretrack/internal/model"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv, err := New(db, Config{}, logger)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv.Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode response %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	h := newTestServer(t)

	var out map[string]string
	if code := doJSON(t, h, "GET", "/health", nil, &out); code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if out["status"] != "ok" {
		t.Errorf("status field = %q, want ok", out["status"])
	}
}

func TestMemberLifecycle(t *testing.T) {
	h := newTestServer(t)

	var member model.Member
	code := doJSON(t, h, "POST", "/api/members", map[string]string{"name": "Alice"}, &member)
	if code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", code)
	}
	if member.ID == "" || member.Color == "" {
		t.Errorf("member = %+v, want generated id and color", member)
	}

	var members []model.Member
	if code := doJSON(t, h, "GET", "/api/members", nil, &members); code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	if len(members) != 1 {
		t.Fatalf("len(members) = %d, want 1", len(members))
	}

	if code := doJSON(t, h, "DELETE", "/api/members/"+member.ID, nil, nil); code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", code)
	}
	if code := doJSON(t, h, "DELETE", "/api/members/"+member.ID, nil, nil); code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", code)
	}
}

func TestCreateMemberValidation(t *testing.T) {
	h := newTestServer(t)

	if code := doJSON(t, h, "POST", "/api/members", map[string]string{"name": "  "}, nil); code != http.StatusBadRequest {
		t.Errorf("blank name status = %d, want 400", code)
	}
}

func TestCreateChorePredictsAttributes(t *testing.T) {
	h := newTestServer(t)

	var chore model.Chore
	code := doJSON(t, h, "POST", "/api/chores", map[string]string{"name": "wash the dishes"}, &chore)
	if code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", code)
	}
	if chore.Category != "Kitchen" {
		t.Errorf("category = %q, want Kitchen", chore.Category)
	}
	if chore.XP <= 0 || chore.EstMinutes <= 0 {
		t.Errorf("chore = %+v, want positive XP and EstMinutes", chore)
	}
}

func TestLogAndChoreStats(t *testing.T) {
	h := newTestServer(t)

	var alice, bob model.Member
	doJSON(t, h, "POST", "/api/members", map[string]string{"name": "Alice"}, &alice)
	doJSON(t, h, "POST", "/api/members", map[string]string{"name": "Bob"}, &bob)

	var chore model.Chore
	doJSON(t, h, "POST", "/api/chores", map[string]string{"name": "vacuum"}, &chore)

	for _, memberID := range []string{bob.ID, alice.ID, alice.ID} {
		code := doJSON(t, h, "POST", "/api/logs", map[string]string{
			"choreId":  chore.ID,
			"memberId": memberID,
		}, nil)
		if code != http.StatusCreated {
			t.Fatalf("log status = %d, want 201", code)
		}
	}

	var stats struct {
		Total        int                      `json:"total"`
		Distribution []model.DistributionItem `json:"distribution"`
		Streak       struct {
			Count    int    `json:"count"`
			MemberID string `json:"memberId"`
		} `json:"streak"`
		LastDone string `json:"lastDone"`
	}
	if code := doJSON(t, h, "GET", "/api/chores/"+chore.ID+"/stats", nil, &stats); code != http.StatusOK {
		t.Fatalf("stats status = %d", code)
	}
	if stats.Total != 3 {
		t.Errorf("total = %d, want 3", stats.Total)
	}
	if stats.Streak.Count != 2 || stats.Streak.MemberID != alice.ID {
		t.Errorf("streak = %+v, want 2 by Alice", stats.Streak)
	}
	if stats.LastDone != "Today" {
		t.Errorf("lastDone = %q, want Today", stats.LastDone)
	}
	if len(stats.Distribution) != 2 || stats.Distribution[0].Label != "Alice" {
		t.Errorf("distribution = %+v, want Alice first", stats.Distribution)
	}

	if code := doJSON(t, h, "POST", "/api/logs", map[string]string{
		"choreId":  chore.ID,
		"memberId": "nope",
	}, nil); code != http.StatusNotFound {
		t.Errorf("unknown member log status = %d, want 404", code)
	}
}

func TestHallOfFameAvailability(t *testing.T) {
	h := newTestServer(t)

	var out struct {
		Available bool `json:"available"`
	}
	doJSON(t, h, "GET", "/api/stats/hall-of-fame", nil, &out)
	if out.Available {
		t.Error("expected unavailable with no data")
	}

	var member model.Member
	doJSON(t, h, "POST", "/api/members", map[string]string{"name": "Alice"}, &member)
	var chore model.Chore
	doJSON(t, h, "POST", "/api/chores", map[string]string{"name": "vacuum"}, &chore)
	doJSON(t, h, "POST", "/api/logs", map[string]string{"choreId": chore.ID, "memberId": member.ID}, nil)

	doJSON(t, h, "GET", "/api/stats/hall-of-fame", nil, &out)
	if !out.Available {
		t.Error("expected available after logging a chore")
	}
}

func TestDashboardTotals(t *testing.T) {
	h := newTestServer(t)

	var member model.Member
	doJSON(t, h, "POST", "/api/members", map[string]string{"name": "Alice"}, &member)
	var chore model.Chore
	doJSON(t, h, "POST", "/api/chores", map[string]string{"name": "vacuum"}, &chore)
	doJSON(t, h, "POST", "/api/logs", map[string]string{"choreId": chore.ID, "memberId": member.ID}, nil)

	var out struct {
		Totals    map[string]int `json:"totals"`
		WeeklyMVP *model.Member  `json:"weeklyMvp"`
	}
	if code := doJSON(t, h, "GET", "/api/dashboard", nil, &out); code != http.StatusOK {
		t.Fatalf("dashboard status = %d", code)
	}
	if out.Totals["members"] != 1 || out.Totals["chores"] != 1 || out.Totals["logs"] != 1 {
		t.Errorf("totals = %v, want 1/1/1", out.Totals)
	}
	if out.WeeklyMVP == nil || out.WeeklyMVP.ID != member.ID {
		t.Errorf("weeklyMvp = %+v, want Alice", out.WeeklyMVP)
	}
}

func TestExportImportEndpoints(t *testing.T) {
	h := newTestServer(t)

	var member model.Member
	doJSON(t, h, "POST", "/api/members", map[string]string{"name": "Alice"}, &member)

	req := httptest.NewRequest("GET", "/api/export", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd == "" {
		t.Error("expected attachment Content-Disposition")
	}
	exported := rec.Body.Bytes()

	other := newTestServer(t)
	req = httptest.NewRequest("POST", "/api/import", bytes.NewReader(exported))
	rec = httptest.NewRecorder()
	other.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d: %s", rec.Code, rec.Body.String())
	}

	var members []model.Member
	doJSON(t, other, "GET", "/api/members", nil, &members)
	if len(members) != 1 || members[0].Name != "Alice" {
		t.Errorf("imported members = %+v, want Alice", members)
	}

	req = httptest.NewRequest("POST", "/api/import", bytes.NewReader([]byte("{broken")))
	rec = httptest.NewRecorder()
	other.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed import status = %d, want 400", rec.Code)
	}
	doJSON(t, other, "GET", "/api/members", nil, &members)
	if len(members) != 1 {
		t.Errorf("members after failed import = %d, want 1", len(members))
	}
}

func TestInstanceSwitch(t *testing.T) {
	h := newTestServer(t)

	var member model.Member
	doJSON(t, h, "POST", "/api/members", map[string]string{"name": "Alice"}, &member)

	var out struct {
		Active string `json:"active"`
	}
	doJSON(t, h, "GET", "/api/instance", nil, &out)
	if out.Active != "default-family-id" {
		t.Errorf("active = %q, want default-family-id", out.Active)
	}

	if code := doJSON(t, h, "PUT", "/api/instance", map[string]string{"id": "family-b"}, nil); code != http.StatusOK {
		t.Fatalf("switch status = %d", code)
	}

	var members []model.Member
	doJSON(t, h, "GET", "/api/members", nil, &members)
	if len(members) != 0 {
		t.Errorf("members in fresh instance = %d, want 0", len(members))
	}
}

func TestBackupEndpointsWhenDisabled(t *testing.T) {
	h := newTestServer(t)

	var status struct {
		State string `json:"state"`
	}
	if code := doJSON(t, h, "GET", "/api/backup/status", nil, &status); code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if status.State != "disabled" {
		t.Errorf("state = %q, want disabled", status.State)
	}

	if code := doJSON(t, h, "POST", "/api/backup/now", nil, nil); code != http.StatusConflict {
		t.Errorf("backup now status = %d, want 409", code)
	}
}
