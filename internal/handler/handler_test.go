package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hostel/internal/attendance"
	"hostel/internal/auth"
	"hostel/internal/config"
	"hostel/internal/model"
	"hostel/internal/queue"
	"hostel/internal/session"
	"hostel/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type env struct {
	router *gin.Engine
	store  *store.Memory
	admin  model.User
}

func newEnv(t *testing.T) *env {
	t.Helper()
	cfg := config.App{
		Env:              "test",
		JWTIssuer:        "hostel-api",
		JWTSigningKey:    "test-signing-key",
		AccessTTL:        time.Hour,
		ResetTokenTTL:    30 * time.Minute,
		ChatHistoryLimit: 100,
	}
	st := store.NewMemory()
	sessions := session.NewMemoryRegistry()
	att := attendance.NewService(st)
	h := New(cfg, st, sessions, att, queue.NewInMemory(16), nil, nil)

	admin := seedUser(t, st, "admin@x.com", "secret", model.RoleAdmin)
	return &env{router: h.Router(), store: st, admin: admin}
}

func seedUser(t *testing.T, st *store.Memory, email, password, role string) model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u, err := st.CreateUser(context.Background(), model.User{
		Name: email, Email: email, PasswordHash: hash, Role: role,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", email, err)
	}
	return u
}

func (e *env) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var parsed map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, parsed
}

func (e *env) login(t *testing.T, email, password string) string {
	t.Helper()
	rec, body := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, rec.Code, rec.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login response missing token: %v", body)
	}
	return token
}

func TestRegisterLoginProfile(t *testing.T) {
	e := newEnv(t)

	rec, body := e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha", "email": "asha@x.com", "password": "secret1", "phone": "999",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d body %s", rec.Code, rec.Body.String())
	}
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %v", body)
	}

	// Duplicate email conflicts.
	rec, _ = e.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Asha 2", "email": "ASHA@x.com", "password": "secret1",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d", rec.Code)
	}

	token := e.login(t, "asha@x.com", "secret1")

	rec, body = e.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: status %d", rec.Code)
	}
	user, _ := body["user"].(map[string]any)
	if user == nil || user["email"] != "asha@x.com" || user["role"] != model.RoleStudent {
		t.Fatalf("unexpected profile: %v", body)
	}
	if _, present := user["password"]; present {
		t.Fatal("password hash must never be serialized")
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	e := newEnv(t)
	rec, _ := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "admin@x.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	e := newEnv(t)
	token := e.login(t, "admin@x.com", "secret")

	rec, _ := e.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: status %d", rec.Code)
	}

	rec, _ = e.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("revoked token must be rejected, got %d", rec.Code)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	e := newEnv(t)
	e.router = nil // rebuilt below with dev env so the token is returned

	cfg := config.App{
		Env: "dev", JWTIssuer: "hostel-api", JWTSigningKey: "k",
		AccessTTL: time.Hour, ResetTokenTTL: time.Minute,
	}
	h := New(cfg, e.store, session.NewMemoryRegistry(), attendance.NewService(e.store), queue.NewInMemory(4), nil, nil)
	e.router = h.Router()

	rec, body := e.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "admin@x.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("forgot: status %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	resetToken, _ := data["resetToken"].(string)
	if resetToken == "" {
		t.Fatalf("dev mode should return the reset token: %v", body)
	}

	rec, _ = e.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token": resetToken, "newPassword": "fresher1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reset: status %d body %s", rec.Code, rec.Body.String())
	}

	e.login(t, "admin@x.com", "fresher1")

	// Token is single use.
	rec, _ = e.do(t, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token": resetToken, "newPassword": "another1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("reused reset token: expected 400, got %d", rec.Code)
	}
}

func TestForgotPasswordHidesUnknownAccounts(t *testing.T) {
	e := newEnv(t)
	rec, body := e.do(t, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "nobody@x.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown account, got %d", rec.Code)
	}
	if body["success"] != true {
		t.Fatalf("expected uniform success envelope, got %v", body)
	}
}

func TestRoleGuards(t *testing.T) {
	e := newEnv(t)
	seedUser(t, e.store, "s@x.com", "secret1", model.RoleStudent)
	studentToken := e.login(t, "s@x.com", "secret1")
	adminToken := e.login(t, "admin@x.com", "secret")

	rec, _ := e.do(t, http.MethodGet, "/api/users", studentToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student on admin route: expected 403, got %d", rec.Code)
	}

	rec, _ = e.do(t, http.MethodGet, "/api/users?role=student", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list users: status %d", rec.Code)
	}

	rec, _ = e.do(t, http.MethodGet, "/api/rooms", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}
}

func TestRoomLifecycle(t *testing.T) {
	e := newEnv(t)
	adminToken := e.login(t, "admin@x.com", "secret")

	rec, body := e.do(t, http.MethodPost, "/api/rooms", adminToken, map[string]any{
		"roomNumber": "A-101", "capacity": 3,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create room: status %d body %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	room, _ := data["room"].(map[string]any)
	roomID, _ := room["id"].(string)
	if roomID == "" {
		t.Fatalf("missing room id: %v", body)
	}

	rec, _ = e.do(t, http.MethodPut, "/api/rooms/"+roomID, adminToken, map[string]any{
		"roomNumber": "A-101", "capacity": 3, "occupied": 2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update room: status %d body %s", rec.Code, rec.Body.String())
	}

	// Occupancy cannot exceed capacity.
	rec, _ = e.do(t, http.MethodPut, "/api/rooms/"+roomID, adminToken, map[string]any{
		"roomNumber": "A-101", "capacity": 3, "occupied": 4,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("overfilled room: expected 400, got %d", rec.Code)
	}

	rec, body = e.do(t, http.MethodGet, "/api/rooms", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list rooms: status %d", rec.Code)
	}
	data, _ = body["data"].(map[string]any)
	rooms, _ := data["rooms"].([]any)
	if len(rooms) != 1 {
		t.Fatalf("expected 1 room, got %d", len(rooms))
	}
}

func TestFeeVisibilityAndPayment(t *testing.T) {
	e := newEnv(t)
	s1 := seedUser(t, e.store, "s1@x.com", "secret1", model.RoleStudent)
	seedUser(t, e.store, "s2@x.com", "secret1", model.RoleStudent)
	adminToken := e.login(t, "admin@x.com", "secret")
	s1Token := e.login(t, "s1@x.com", "secret1")
	s2Token := e.login(t, "s2@x.com", "secret1")

	rec, body := e.do(t, http.MethodPost, "/api/fees", adminToken, map[string]any{
		"studentId": s1.ID, "amount": 1500, "dueDate": "2026-09-30",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create fee: status %d body %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	fee, _ := data["fee"].(map[string]any)
	feeID, _ := fee["id"].(string)
	if feeID == "" {
		t.Fatalf("missing fee id: %v", body)
	}

	// Students only see their own fees.
	rec, body = e.do(t, http.MethodGet, "/api/fees", s2Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list fees: status %d", rec.Code)
	}
	data, _ = body["data"].(map[string]any)
	if fees, _ := data["fees"].([]any); len(fees) != 0 {
		t.Fatalf("s2 must not see s1's fees: %v", fees)
	}

	// Another student cannot pay it.
	rec, _ = e.do(t, http.MethodPut, "/api/fees/"+feeID+"/pay", s2Token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign fee pay: expected 403, got %d", rec.Code)
	}

	rec, _ = e.do(t, http.MethodPut, "/api/fees/"+feeID+"/pay", s1Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("own fee pay: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestAttendanceQRFlow(t *testing.T) {
	e := newEnv(t)
	student := seedUser(t, e.store, "s@x.com", "secret1", model.RoleStudent)
	adminToken := e.login(t, "admin@x.com", "secret")
	studentToken := e.login(t, "s@x.com", "secret1")

	rec, body := e.do(t, http.MethodPost, "/api/attendance/qr", adminToken, map[string]string{
		"studentId": student.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: status %d body %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	code, _ := data["qrCode"].(string)
	image, _ := data["image"].(string)
	if code == "" || len(image) < len("data:image/png;base64,") {
		t.Fatalf("unexpected generate payload: %v", data)
	}

	// Students cannot generate codes.
	rec, _ = e.do(t, http.MethodPost, "/api/attendance/qr", studentToken, map[string]string{"studentId": student.ID})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student generate: expected 403, got %d", rec.Code)
	}

	rec, _ = e.do(t, http.MethodPost, "/api/attendance/mark", studentToken, map[string]string{"qrCode": code})
	if rec.Code != http.StatusOK {
		t.Fatalf("mark: status %d body %s", rec.Code, rec.Body.String())
	}

	// Same day again conflicts.
	rec, _ = e.do(t, http.MethodPost, "/api/attendance/mark", studentToken, map[string]string{"qrCode": code})
	if rec.Code != http.StatusConflict {
		t.Fatalf("re-mark: expected 409, got %d", rec.Code)
	}

	// Admins cannot mark.
	rec, _ = e.do(t, http.MethodPost, "/api/attendance/mark", adminToken, map[string]string{"qrCode": code})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin mark: expected 403, got %d", rec.Code)
	}

	rec, body = e.do(t, http.MethodGet, "/api/attendance/student/"+student.ID, studentToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("student summary: status %d", rec.Code)
	}
	data, _ = body["data"].(map[string]any)
	records, _ := data["records"].([]any)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %v", data)
	}
	if _, present := data["attendancePercentage"]; !present {
		t.Fatalf("summary missing percentage: %v", data)
	}

	// A student cannot read another student's history.
	rec, _ = e.do(t, http.MethodGet, "/api/attendance/student/"+e.admin.ID, studentToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign history: expected 403, got %d", rec.Code)
	}

	rec, body = e.do(t, http.MethodGet, "/api/attendance?studentId="+student.ID, adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin list: status %d", rec.Code)
	}
	data, _ = body["data"].(map[string]any)
	if records, _ := data["records"].([]any); len(records) != 1 {
		t.Fatalf("expected 1 record in admin list, got %v", data)
	}
}

func TestMarkAttendanceRejectionStatuses(t *testing.T) {
	e := newEnv(t)
	student := seedUser(t, e.store, "s@x.com", "secret1", model.RoleStudent)
	adminToken := e.login(t, "admin@x.com", "secret")
	studentToken := e.login(t, "s@x.com", "secret1")

	// Yesterday's code: rejected, but never with a status the client
	// reads as an expired session.
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	rec, body := e.do(t, http.MethodPost, "/api/attendance/qr", adminToken, map[string]string{
		"studentId": student.ID, "date": yesterday,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: status %d body %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	staleCode, _ := data["qrCode"].(string)

	rec, _ = e.do(t, http.MethodPost, "/api/attendance/mark", studentToken, map[string]string{"qrCode": staleCode})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("stale code: expected 422, got %d", rec.Code)
	}

	// A code naming another student.
	other := seedUser(t, e.store, "s2@x.com", "secret1", model.RoleStudent)
	rec, body = e.do(t, http.MethodPost, "/api/attendance/qr", adminToken, map[string]string{"studentId": other.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: status %d", rec.Code)
	}
	data, _ = body["data"].(map[string]any)
	otherCode, _ := data["qrCode"].(string)

	rec, _ = e.do(t, http.MethodPost, "/api/attendance/mark", studentToken, map[string]string{"qrCode": otherCode})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("mismatched student: expected 422, got %d", rec.Code)
	}

	// Garbage stays a plain bad request.
	rec, _ = e.do(t, http.MethodPost, "/api/attendance/mark", studentToken, map[string]string{"qrCode": "!!not a code!!"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("garbage code: expected 400, got %d", rec.Code)
	}
}

func TestNoticesAndChat(t *testing.T) {
	e := newEnv(t)
	seedUser(t, e.store, "s@x.com", "secret1", model.RoleStudent)
	adminToken := e.login(t, "admin@x.com", "secret")
	studentToken := e.login(t, "s@x.com", "secret1")

	rec, _ := e.do(t, http.MethodPost, "/api/notices", studentToken, map[string]string{
		"title": "t", "message": "m",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student notice: expected 403, got %d", rec.Code)
	}

	rec, _ = e.do(t, http.MethodPost, "/api/notices", adminToken, map[string]string{
		"title": "Water outage", "message": "Tomorrow 9-11",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create notice: status %d body %s", rec.Code, rec.Body.String())
	}

	rec, body := e.do(t, http.MethodGet, "/api/notices", studentToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list notices: status %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	if notices, _ := data["notices"].([]any); len(notices) != 1 {
		t.Fatalf("expected 1 notice, got %v", data)
	}

	rec, _ = e.do(t, http.MethodPost, "/api/chat", studentToken, map[string]string{"message": "hello"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("send chat: status %d body %s", rec.Code, rec.Body.String())
	}
	rec, body = e.do(t, http.MethodGet, "/api/chat", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list chat: status %d", rec.Code)
	}
	data, _ = body["data"].(map[string]any)
	msgs, _ := data["messages"].([]any)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %v", data)
	}
	msg, _ := msgs[0].(map[string]any)
	if msg["senderName"] != "s@x.com" {
		t.Fatalf("sender identity must come from the token, got %v", msg)
	}
}

func TestVisitorsScopedToStudent(t *testing.T) {
	e := newEnv(t)
	seedUser(t, e.store, "s1@x.com", "secret1", model.RoleStudent)
	seedUser(t, e.store, "s2@x.com", "secret1", model.RoleStudent)
	s1Token := e.login(t, "s1@x.com", "secret1")
	s2Token := e.login(t, "s2@x.com", "secret1")
	adminToken := e.login(t, "admin@x.com", "secret")

	rec, body := e.do(t, http.MethodPost, "/api/visitors", s1Token, map[string]string{
		"name": "Mom", "contact": "123", "purpose": "visit",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create visitor: status %d body %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	visitor, _ := data["visitor"].(map[string]any)
	visitorID, _ := visitor["id"].(string)
	if visitorID == "" {
		t.Fatalf("missing visitor id: %v", body)
	}

	rec, body = e.do(t, http.MethodGet, "/api/visitors", s2Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list visitors: status %d", rec.Code)
	}
	data, _ = body["data"].(map[string]any)
	if visitors, _ := data["visitors"].([]any); len(visitors) != 0 {
		t.Fatalf("s2 must not see s1's visitors: %v", visitors)
	}

	rec, _ = e.do(t, http.MethodPut, "/api/visitors/"+visitorID+"/checkout", s1Token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student checkout: expected 403, got %d", rec.Code)
	}
	rec, _ = e.do(t, http.MethodPut, "/api/visitors/"+visitorID+"/checkout", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin checkout: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestEvents(t *testing.T) {
	e := newEnv(t)
	seedUser(t, e.store, "s@x.com", "secret1", model.RoleStudent)
	adminToken := e.login(t, "admin@x.com", "secret")
	studentToken := e.login(t, "s@x.com", "secret1")

	rec, _ := e.do(t, http.MethodPost, "/api/events", studentToken, map[string]string{
		"title": "Sports day", "date": "2026-09-15",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student create event: expected 403, got %d", rec.Code)
	}

	rec, _ = e.do(t, http.MethodPost, "/api/events", adminToken, map[string]string{
		"title": "Sports day", "date": "2026-09-15", "location": "Main ground",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create event: status %d body %s", rec.Code, rec.Body.String())
	}

	// Date must parse.
	rec, _ = e.do(t, http.MethodPost, "/api/events", adminToken, map[string]string{
		"title": "Bad", "date": "15/09/2026",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: expected 400, got %d", rec.Code)
	}

	rec, body := e.do(t, http.MethodGet, "/api/events", studentToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list events: status %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	events, _ := data["events"].([]any)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %v", data)
	}
	event, _ := events[0].(map[string]any)
	if event["createdBy"] != "admin@x.com" {
		t.Fatalf("creator must come from the token, got %v", event)
	}
}

func TestLaundryScopedToStudent(t *testing.T) {
	e := newEnv(t)
	seedUser(t, e.store, "s1@x.com", "secret1", model.RoleStudent)
	seedUser(t, e.store, "s2@x.com", "secret1", model.RoleStudent)
	s1Token := e.login(t, "s1@x.com", "secret1")
	s2Token := e.login(t, "s2@x.com", "secret1")
	adminToken := e.login(t, "admin@x.com", "secret")

	rec, _ := e.do(t, http.MethodPost, "/api/laundry", s1Token, map[string]int{"clothesCount": 0})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("zero clothes: expected 400, got %d", rec.Code)
	}

	rec, body := e.do(t, http.MethodPost, "/api/laundry", s1Token, map[string]int{"clothesCount": 8})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create laundry: status %d body %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	request, _ := data["request"].(map[string]any)
	requestID, _ := request["id"].(string)
	if requestID == "" || request["status"] != model.LaundryPending {
		t.Fatalf("unexpected laundry request: %v", body)
	}

	rec, body = e.do(t, http.MethodGet, "/api/laundry", s2Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list laundry: status %d", rec.Code)
	}
	data, _ = body["data"].(map[string]any)
	if requests, _ := data["requests"].([]any); len(requests) != 0 {
		t.Fatalf("s2 must not see s1's laundry: %v", requests)
	}

	rec, _ = e.do(t, http.MethodPut, "/api/laundry/"+requestID+"/status", s1Token, map[string]string{"status": "delivered"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student status update: expected 403, got %d", rec.Code)
	}

	rec, body = e.do(t, http.MethodPut, "/api/laundry/"+requestID+"/status", adminToken, map[string]string{"status": "delivered"})
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status update: status %d body %s", rec.Code, rec.Body.String())
	}
	data, _ = body["data"].(map[string]any)
	request, _ = data["request"].(map[string]any)
	if request["status"] != model.LaundryDelivered {
		t.Fatalf("expected delivered, got %v", request)
	}

	rec, _ = e.do(t, http.MethodPut, "/api/laundry/"+requestID+"/status", adminToken, map[string]string{"status": "eaten"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid status: expected 400, got %d", rec.Code)
	}
}

func TestMaintenanceLifecycle(t *testing.T) {
	e := newEnv(t)
	seedUser(t, e.store, "s@x.com", "secret1", model.RoleStudent)
	studentToken := e.login(t, "s@x.com", "secret1")
	adminToken := e.login(t, "admin@x.com", "secret")

	rec, _ := e.do(t, http.MethodPost, "/api/maintenance", studentToken, map[string]string{
		"category": "plumbing",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("incomplete request: expected 400, got %d", rec.Code)
	}

	rec, body := e.do(t, http.MethodPost, "/api/maintenance", studentToken, map[string]string{
		"category": "plumbing", "description": "leaking tap", "roomNumber": "A-101",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create maintenance: status %d body %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	request, _ := data["request"].(map[string]any)
	requestID, _ := request["id"].(string)
	if requestID == "" || request["status"] != model.MaintenancePending {
		t.Fatalf("unexpected maintenance request: %v", body)
	}

	rec, body = e.do(t, http.MethodPut, "/api/maintenance/"+requestID+"/status", adminToken, map[string]string{"status": "resolved"})
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve: status %d body %s", rec.Code, rec.Body.String())
	}
	data, _ = body["data"].(map[string]any)
	request, _ = data["request"].(map[string]any)
	if request["status"] != model.MaintenanceResolved {
		t.Fatalf("expected resolved, got %v", request)
	}

	rec, _ = e.do(t, http.MethodPut, "/api/maintenance/missing/status", adminToken, map[string]string{"status": "resolved"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown request: expected 404, got %d", rec.Code)
	}
}

func TestFeedback(t *testing.T) {
	e := newEnv(t)
	seedUser(t, e.store, "s@x.com", "secret1", model.RoleStudent)
	studentToken := e.login(t, "s@x.com", "secret1")
	adminToken := e.login(t, "admin@x.com", "secret")

	rec, _ := e.do(t, http.MethodPost, "/api/feedback", studentToken, map[string]any{
		"rating": 6, "message": "too good",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("rating out of range: expected 400, got %d", rec.Code)
	}

	rec, _ = e.do(t, http.MethodPost, "/api/feedback", studentToken, map[string]any{
		"rating": 4, "message": "food could be better",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit feedback: status %d body %s", rec.Code, rec.Body.String())
	}

	// Only admins read the collected feedback.
	rec, _ = e.do(t, http.MethodGet, "/api/feedback", studentToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student list feedback: expected 403, got %d", rec.Code)
	}

	rec, body := e.do(t, http.MethodGet, "/api/feedback", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list feedback: status %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	entries, _ := data["feedback"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %v", data)
	}
	entry, _ := entries[0].(map[string]any)
	if entry["rating"] != float64(4) {
		t.Fatalf("unexpected rating: %v", entry)
	}
}

func TestFoodMenuUpsert(t *testing.T) {
	e := newEnv(t)
	seedUser(t, e.store, "s@x.com", "secret1", model.RoleStudent)
	studentToken := e.login(t, "s@x.com", "secret1")
	adminToken := e.login(t, "admin@x.com", "secret")

	rec, _ := e.do(t, http.MethodPut, "/api/food-menu", adminToken, map[string]string{
		"day": "monday", "breakfast": "idli", "lunch": "rice", "dinner": "roti",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("set menu: status %d body %s", rec.Code, rec.Body.String())
	}

	// Same day again replaces, not appends.
	rec, _ = e.do(t, http.MethodPut, "/api/food-menu", adminToken, map[string]string{
		"day": "monday", "breakfast": "dosa", "lunch": "rice", "dinner": "roti",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("replace menu: status %d body %s", rec.Code, rec.Body.String())
	}

	rec, _ = e.do(t, http.MethodPut, "/api/food-menu", adminToken, map[string]string{
		"day": "someday", "breakfast": "x", "lunch": "y", "dinner": "z",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad day: expected 400, got %d", rec.Code)
	}

	rec, body := e.do(t, http.MethodGet, "/api/food-menu", studentToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("read menu: status %d", rec.Code)
	}
	data, _ := body["data"].(map[string]any)
	menu, _ := data["menu"].([]any)
	if len(menu) != 1 {
		t.Fatalf("expected 1 day, got %v", data)
	}
	day, _ := menu[0].(map[string]any)
	if day["breakfast"] != "dosa" {
		t.Fatalf("upsert must replace the day: %v", day)
	}
}

func TestReports(t *testing.T) {
	e := newEnv(t)
	student := seedUser(t, e.store, "s@x.com", "secret1", model.RoleStudent)
	adminToken := e.login(t, "admin@x.com", "secret")
	studentToken := e.login(t, "s@x.com", "secret1")

	rec, _ := e.do(t, http.MethodPost, "/api/fees", adminToken, map[string]any{
		"studentId": student.ID, "amount": 1200, "dueDate": "2026-09-30",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed fee: status %d", rec.Code)
	}
	rec, _ = e.do(t, http.MethodPost, "/api/complaints", studentToken, map[string]string{
		"category": "wifi", "description": "down again",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed complaint: status %d", rec.Code)
	}

	rec, body := e.do(t, http.MethodGet, "/api/reports/payments", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("payments report: status %d body %s", rec.Code, rec.Body.String())
	}
	data, _ := body["data"].(map[string]any)
	if data["pending"] != float64(1200) || data["collected"] != float64(0) {
		t.Fatalf("unexpected payments report: %v", data)
	}

	rec, body = e.do(t, http.MethodGet, "/api/reports/complaints", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complaints report: status %d", rec.Code)
	}
	data, _ = body["data"].(map[string]any)
	byStatus, _ := data["byStatus"].(map[string]any)
	if byStatus[model.ComplaintOpen] != float64(1) {
		t.Fatalf("unexpected complaints report: %v", data)
	}

	rec, _ = e.do(t, http.MethodGet, "/api/reports/attendance", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("attendance report: status %d", rec.Code)
	}

	rec, _ = e.do(t, http.MethodGet, "/api/reports/occupancy", adminToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown report type: expected 400, got %d", rec.Code)
	}

	rec, _ = e.do(t, http.MethodGet, "/api/reports/payments", studentToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student report access: expected 403, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	rec, _ := e.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: status %d", rec.Code)
	}
}
