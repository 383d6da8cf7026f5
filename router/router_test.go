package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/api"
	"github.com/moringa/darasa-api/config"
	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/model"
	"github.com/moringa/darasa-api/services/payment"
	"github.com/moringa/darasa-api/services/receipt"
	"github.com/moringa/darasa-api/utils/auth"
	"github.com/moringa/darasa-api/utils/cache"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "router-test-secret"

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func testConfig() *config.Config {
	return &config.Config{
		JWT_SECRET:           testSecret,
		JWT_ISSUER:           "darasa-test",
		JWT_EXPIRY_MINUTES:   45,
		AUTH_HEADER:          "jwttoken",
		BCRYPT_COST:          bcrypt.MinCost,
		ALLOWED_ORIGINS:      "http://localhost:3000",
		CHECKOUT_SUCCESS_URL: "http://localhost:8080/success",
		CHECKOUT_CANCEL_URL:  "http://localhost:8080/cancel",
		CHECKOUT_CURRENCY:    "usd",
	}
}

func newTestEnv(t *testing.T, attempts bool) *testEnv {
	t.Helper()

	store, err := database.StartSQLite("file::memory:", nil)
	if err != nil {
		t.Fatalf("StartSQLite: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	deps := Deps{
		Config:           testConfig(),
		Store:            store,
		Gateway:          payment.OfflineGateway{},
		Renderer:         receipt.NewPDFRenderer("Moringa School", ""),
		DisableAccessLog: true,
	}
	if attempts {
		srv := miniredis.RunT(t)
		rc, err := cache.NewRedisCache("redis://" + srv.Addr())
		if err != nil {
			t.Fatalf("NewRedisCache: %v", err)
		}
		t.Cleanup(func() { _ = rc.Close() })
		deps.Attempts = rc
	}

	app := api.NewAPIServer(":0").GetEngine()
	SetupRoutes(app, deps)
	return &testEnv{app: app, db: store.GetDB()}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("jwttoken", token)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out
}

func decode(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(raw, v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, body []byte, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, body)
	}
}

func expectErrorCode(t *testing.T, body []byte, want string) {
	t.Helper()
	var e struct {
		Error string `json:"ERROR"`
		Code  string `json:"code"`
	}
	decode(t, body, &e)
	if e.Code != want || e.Error == "" {
		t.Fatalf("expected error code %s, got %s", want, body)
	}
}

type tokenBody struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (e *testEnv) signupStudent(t *testing.T, email, username string) string {
	t.Helper()
	resp, body := e.do(t, "POST", "/signup/student", "", fiber.Map{"email": email, "username": username, "password": "password123"})
	expectStatus(t, resp, body, fiber.StatusCreated)
	var tb tokenBody
	decode(t, body, &tb)
	return tb.Token
}

func (e *testEnv) signupAdmin(t *testing.T, email string) string {
	t.Helper()
	resp, body := e.do(t, "POST", "/signup/admin", "", fiber.Map{"email": email, "password": "password123"})
	expectStatus(t, resp, body, fiber.StatusCreated)
	var tb tokenBody
	decode(t, body, &tb)
	return tb.Token
}

func (e *testEnv) createCourse(t *testing.T, adminToken string, price float64) uint {
	t.Helper()
	resp, body := e.do(t, "POST", "/courses/admin", adminToken, fiber.Map{
		"title":       "Go Basics",
		"description": "Learn Go from scratch",
		"price":       price,
		"modules": []fiber.Map{
			{"title": "Intro", "media": "https://cdn.test/intro.mp4"},
			{"title": "Types", "media": "https://cdn.test/types.mp4", "notes": "chapter 2"},
		},
	})
	expectStatus(t, resp, body, fiber.StatusCreated)
	var created struct {
		CourseID uint `json:"course_id"`
	}
	decode(t, body, &created)
	if created.CourseID == 0 {
		t.Fatalf("no course_id in %s", body)
	}
	return created.CourseID
}

func TestPing(t *testing.T) {
	env := newTestEnv(t, false)
	resp, body := env.do(t, "GET", "/ping", "", nil)
	expectStatus(t, resp, body, fiber.StatusOK)
}

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t, false)
	env.signupStudent(t, "dup@school.test", "first")

	resp, body := env.do(t, "POST", "/signup/student", "", fiber.Map{"email": "dup@school.test", "username": "second", "password": "password123"})
	expectStatus(t, resp, body, fiber.StatusConflict)
	expectErrorCode(t, body, "CONFLICT")

	var n int64
	env.db.Model(&model.Student{}).Where("email = ?", "dup@school.test").Count(&n)
	if n != 1 {
		t.Fatalf("expected one student row, got %d", n)
	}

	env.signupAdmin(t, "boss@school.test")
	resp, body = env.do(t, "POST", "/signup/admin", "", fiber.Map{"email": "boss@school.test", "password": "password123"})
	expectStatus(t, resp, body, fiber.StatusConflict)
}

func TestSignupMissingFields(t *testing.T) {
	env := newTestEnv(t, false)
	resp, body := env.do(t, "POST", "/signup/student", "", fiber.Map{"email": "a@school.test", "password": "password123"})
	expectStatus(t, resp, body, fiber.StatusBadRequest)
	expectErrorCode(t, body, "VALIDATION_FAILED")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, false)
	env.signupStudent(t, "alice@school.test", "alice")

	resp, body := env.do(t, "POST", "/student/login", "", fiber.Map{"email": "alice@school.test", "password": "wrong-password"})
	expectStatus(t, resp, body, fiber.StatusForbidden)
	if strings.Contains(string(body), `"token"`) {
		t.Fatalf("failed login returned a token: %s", body)
	}

	resp, body = env.do(t, "POST", "/student/login", "", fiber.Map{"email": "nobody@school.test", "password": "password123"})
	expectStatus(t, resp, body, fiber.StatusForbidden)

	// a student cannot log in through the admin door
	resp, body = env.do(t, "POST", "/admin/login", "", fiber.Map{"email": "alice@school.test", "password": "password123"})
	expectStatus(t, resp, body, fiber.StatusForbidden)

	resp, body = env.do(t, "POST", "/student/login", "", fiber.Map{"email": "alice@school.test", "password": "password123"})
	expectStatus(t, resp, body, fiber.StatusOK)
	var tb tokenBody
	decode(t, body, &tb)
	if tb.Token == "" || tb.Message == "" {
		t.Fatalf("expected message and token, got %s", body)
	}
}

func TestLoginLockout(t *testing.T) {
	env := newTestEnv(t, true)
	env.signupAdmin(t, "boss@school.test")

	for i := 0; i < 5; i++ {
		resp, body := env.do(t, "POST", "/admin/login", "", fiber.Map{"email": "boss@school.test", "password": "bad-password"})
		expectStatus(t, resp, body, fiber.StatusForbidden)
	}

	resp, body := env.do(t, "POST", "/admin/login", "", fiber.Map{"email": "boss@school.test", "password": "password123"})
	expectStatus(t, resp, body, fiber.StatusTooManyRequests)
	if resp.Header.Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestTokenChecks(t *testing.T) {
	env := newTestEnv(t, false)
	studentToken := env.signupStudent(t, "alice@school.test", "alice")

	resp, body := env.do(t, "GET", "/profile/student", "", nil)
	expectStatus(t, resp, body, fiber.StatusForbidden)
	expectErrorCode(t, body, "AUTH_MISSING")

	resp, body = env.do(t, "GET", "/profile/student", "not-a-token", nil)
	expectStatus(t, resp, body, fiber.StatusForbidden)
	expectErrorCode(t, body, "AUTH_INVALID")

	var student model.Student
	env.db.Where("email = ?", "alice@school.test").First(&student)
	expired, _, err := auth.NewJWTManager(auth.JWTConfig{Secret: testSecret, Expiry: -time.Minute}).
		Issue(student.ID, student.Email, auth.RoleStudent)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	resp, body = env.do(t, "GET", "/profile/student", expired, nil)
	expectStatus(t, resp, body, fiber.StatusForbidden)
	expectErrorCode(t, body, "AUTH_INVALID")

	forged, _, _ := auth.NewJWTManager(auth.JWTConfig{Secret: "other-secret", Expiry: time.Hour}).
		Issue(student.ID, student.Email, auth.RoleStudent)
	resp, body = env.do(t, "GET", "/profile/student", forged, nil)
	expectStatus(t, resp, body, fiber.StatusForbidden)
	expectErrorCode(t, body, "AUTH_INVALID")

	ghost, _, _ := auth.NewJWTManager(auth.JWTConfig{Secret: testSecret, Expiry: time.Hour}).
		Issue(student.ID+100, "ghost@school.test", auth.RoleStudent)
	resp, body = env.do(t, "GET", "/profile/student", ghost, nil)
	expectStatus(t, resp, body, fiber.StatusForbidden)
	expectErrorCode(t, body, "AUTH_INVALID")

	resp, body = env.do(t, "GET", "/courses/admin", studentToken, nil)
	expectStatus(t, resp, body, fiber.StatusForbidden)
	expectErrorCode(t, body, "UNAUTHORIZED")
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.signupStudent(t, "alice@school.test", "alice")

	resp, body := env.do(t, "POST", "/logout", token, nil)
	expectStatus(t, resp, body, fiber.StatusOK)

	resp, body = env.do(t, "GET", "/profile/student", token, nil)
	expectStatus(t, resp, body, fiber.StatusForbidden)
	expectErrorCode(t, body, "AUTH_INVALID")
}

func TestProfileUpdateKeepsIdentity(t *testing.T) {
	env := newTestEnv(t, false)
	token := env.signupStudent(t, "alice@school.test", "alice")
	env.signupStudent(t, "bob@school.test", "bob")

	resp, body := env.do(t, "GET", "/profile/student", token, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	var before struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	decode(t, body, &before)

	resp, body = env.do(t, "POST", "/profile/student", token, fiber.Map{
		"username": "alice2",
		"password": "new-password",
		"email":    "hijack@school.test",
		"id":       999,
	})
	expectStatus(t, resp, body, fiber.StatusOK)

	resp, body = env.do(t, "GET", "/profile/student", token, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	after := before
	decode(t, body, &after)
	if after.ID != before.ID || after.Email != "alice@school.test" || after.Username != "alice2" {
		t.Fatalf("unexpected profile after update: %+v", after)
	}

	resp, body = env.do(t, "POST", "/student/login", "", fiber.Map{"email": "alice@school.test", "password": "new-password"})
	expectStatus(t, resp, body, fiber.StatusOK)

	resp, body = env.do(t, "POST", "/profile/student", token, fiber.Map{"username": "bob"})
	expectStatus(t, resp, body, fiber.StatusConflict)

	adminToken := env.signupAdmin(t, "boss@school.test")
	resp, body = env.do(t, "POST", "/profile/admin", adminToken, fiber.Map{})
	expectStatus(t, resp, body, fiber.StatusBadRequest)

	resp, body = env.do(t, "GET", "/profile/admin", adminToken, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if !strings.Contains(string(body), "boss@school.test") {
		t.Fatalf("unexpected admin profile: %s", body)
	}
}

func TestCreateCourseValidation(t *testing.T) {
	env := newTestEnv(t, false)
	adminToken := env.signupAdmin(t, "boss@school.test")

	for name, payload := range map[string]fiber.Map{
		"no modules":     {"title": "T", "description": "D", "price": 10, "modules": []fiber.Map{}},
		"no price":       {"title": "T", "description": "D", "modules": []fiber.Map{{"title": "m", "media": "x"}}},
		"negative price": {"title": "T", "description": "D", "price": -1, "modules": []fiber.Map{{"title": "m", "media": "x"}}},
		"module media":   {"title": "T", "description": "D", "price": 10, "modules": []fiber.Map{{"title": "m"}}},
	} {
		resp, body := env.do(t, "POST", "/courses/admin", adminToken, payload)
		if resp.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", name, resp.StatusCode, body)
		}
	}

	var n int64
	env.db.Model(&model.Course{}).Count(&n)
	if n != 0 {
		t.Fatalf("invalid requests created %d courses", n)
	}

	// free courses are allowed
	env.createCourse(t, adminToken, 0)
}

func TestOversizedIDsAreRejected(t *testing.T) {
	env := newTestEnv(t, false)
	admin := env.signupAdmin(t, "boss@school.test")
	student := env.signupStudent(t, "s@school.test", "s")
	const huge = "9223372036854775808"

	for _, path := range []string{"/checkout/" + huge, "/student/course/" + huge, "/student/course/" + huge + "/module"} {
		resp, body := env.do(t, "GET", path, student, nil)
		expectStatus(t, resp, body, fiber.StatusBadRequest)
	}
	resp, body := env.do(t, "DELETE", "/courses/admin/"+huge, admin, nil)
	expectStatus(t, resp, body, fiber.StatusBadRequest)

	maxUint := uint64(18446744073709551615)
	resp, body = env.do(t, "POST", "/messages/student", student, fiber.Map{"title": "t", "content": "c", "admin_id": maxUint})
	expectStatus(t, resp, body, fiber.StatusBadRequest)
	resp, body = env.do(t, "PATCH", "/courses/admin", admin, fiber.Map{"course_id": maxUint, "title": "x"})
	expectStatus(t, resp, body, fiber.StatusBadRequest)
}

func TestCourseOwnership(t *testing.T) {
	env := newTestEnv(t, false)
	owner := env.signupAdmin(t, "owner@school.test")
	intruder := env.signupAdmin(t, "intruder@school.test")
	courseID := env.createCourse(t, owner, 30)

	resp, body := env.do(t, "PATCH", "/courses/admin", intruder, fiber.Map{"course_id": courseID, "title": "Mine now"})
	expectStatus(t, resp, body, fiber.StatusForbidden)
	expectErrorCode(t, body, "UNAUTHORIZED")

	resp, body = env.do(t, "DELETE", fmt.Sprintf("/courses/admin/%d", courseID), intruder, nil)
	expectStatus(t, resp, body, fiber.StatusForbidden)

	resp, body = env.do(t, "PATCH", "/courses/admin", owner, fiber.Map{
		"course_id": courseID,
		"price":     45.5,
		"modules":   []fiber.Map{{"title": "Concurrency", "media": "https://cdn.test/go.mp4"}},
	})
	expectStatus(t, resp, body, fiber.StatusOK)

	resp, body = env.do(t, "PATCH", "/courses/admin", owner, fiber.Map{
		"course_id": courseID,
		"modules":   []fiber.Map{{"id": 9999, "title": "Ghost"}},
	})
	expectStatus(t, resp, body, fiber.StatusNotFound)

	resp, body = env.do(t, "GET", "/courses/admin", owner, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	var listed struct {
		Courses []model.Course `json:"courses"`
	}
	decode(t, body, &listed)
	if len(listed.Courses) != 1 || listed.Courses[0].Price != 45.5 || len(listed.Courses[0].Modules) != 3 {
		t.Fatalf("unexpected admin courses: %s", body)
	}

	resp, body = env.do(t, "GET", "/courses/admin", intruder, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	decode(t, body, &listed)
	if len(listed.Courses) != 0 {
		t.Fatalf("intruder sees courses: %s", body)
	}

	var audits int64
	env.db.Model(&model.AdminAuditLog{}).Where("action = ?", "course_update").Count(&audits)
	if audits != 3 {
		t.Fatalf("expected 3 course_update audit rows, got %d", audits)
	}
}

func TestDeleteCourseRemovesModules(t *testing.T) {
	env := newTestEnv(t, false)
	admin := env.signupAdmin(t, "owner@school.test")
	student := env.signupStudent(t, "alice@school.test", "alice")
	courseID := env.createCourse(t, admin, 30)

	resp, body := env.do(t, "GET", fmt.Sprintf("/checkout/%d", courseID), student, nil)
	expectStatus(t, resp, body, fiber.StatusOK)

	resp, body = env.do(t, "DELETE", fmt.Sprintf("/courses/admin/%d", courseID), admin, nil)
	expectStatus(t, resp, body, fiber.StatusOK)

	var modules, enrollments int64
	env.db.Model(&model.Module{}).Where("course_id = ?", courseID).Count(&modules)
	env.db.Model(&model.StudentCourse{}).Where("course_id = ?", courseID).Count(&enrollments)
	if modules != 0 || enrollments != 0 {
		t.Fatalf("leftover rows: modules=%d enrollments=%d", modules, enrollments)
	}

	resp, body = env.do(t, "GET", fmt.Sprintf("/student/course/%d", courseID), student, nil)
	expectStatus(t, resp, body, fiber.StatusNotFound)
	resp, body = env.do(t, "GET", fmt.Sprintf("/student/course/%d/module", courseID), student, nil)
	expectStatus(t, resp, body, fiber.StatusNotFound)

	// the payment record outlives the course
	var sessions int64
	env.db.Model(&model.CheckoutSession{}).Where("course_id = ?", courseID).Count(&sessions)
	if sessions != 1 {
		t.Fatalf("expected checkout session to survive, got %d", sessions)
	}
}

func TestPurchaseFlow(t *testing.T) {
	env := newTestEnv(t, false)
	admin := env.signupAdmin(t, "instructor@school.test")
	courseID := env.createCourse(t, admin, 49.99)
	student := env.signupStudent(t, "alice@school.test", "alice")

	resp, body := env.do(t, "GET", "/course", "", nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if !strings.Contains(string(body), `"courses"`) || !strings.Contains(string(body), "Go Basics") {
		t.Fatalf("course missing from catalogue: %s", body)
	}

	resp, body = env.do(t, "GET", fmt.Sprintf("/student/course/%d", courseID), student, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	var detail struct {
		AdminEmail string  `json:"admin_email"`
		Price      float64 `json:"price"`
	}
	decode(t, body, &detail)
	if detail.AdminEmail != "instructor@school.test" || detail.Price != 49.99 {
		t.Fatalf("unexpected detail: %s", body)
	}

	resp, body = env.do(t, "GET", fmt.Sprintf("/student/course/%d/module", courseID), student, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	var modules []struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
		Media string `json:"media"`
		Notes string `json:"notes"`
	}
	decode(t, body, &modules)
	if len(modules) != 2 || modules[0].Title != "Intro" || modules[1].Notes != "chapter 2" {
		t.Fatalf("unexpected modules: %s", body)
	}

	resp, body = env.do(t, "GET", fmt.Sprintf("/success?course_id=%d", courseID), student, nil)
	expectStatus(t, resp, body, fiber.StatusNotFound)

	resp, body = env.do(t, "GET", fmt.Sprintf("/checkout/%d", courseID), student, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	var checkout struct {
		CheckoutURL string `json:"checkout_url"`
	}
	decode(t, body, &checkout)
	if !strings.HasPrefix(checkout.CheckoutURL, "http://localhost:8080/success?") {
		t.Fatalf("unexpected checkout url %q", checkout.CheckoutURL)
	}

	resp, body = env.do(t, "GET", fmt.Sprintf("/checkout/%d", courseID), student, nil)
	expectStatus(t, resp, body, fiber.StatusConflict)

	var enrollments int64
	env.db.Model(&model.StudentCourse{}).Where("course_id = ?", courseID).Count(&enrollments)
	if enrollments != 1 {
		t.Fatalf("expected one enrollment, got %d", enrollments)
	}

	var session model.CheckoutSession
	if err := env.db.Where("course_id = ?", courseID).First(&session).Error; err != nil {
		t.Fatalf("checkout session not recorded: %v", err)
	}
	if session.Amount != 4999 {
		t.Fatalf("expected 4999 minor units, got %d", session.Amount)
	}

	resp, body = env.do(t, "GET", "/courses/student", student, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if !strings.Contains(string(body), "Go Basics") {
		t.Fatalf("enrolled course not listed: %s", body)
	}

	resp, body = env.do(t, "GET", fmt.Sprintf("/success?course_id=%d", courseID), student, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != "attachment; filename=course_receipt.pdf" {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatal("receipt is not a PDF")
	}

	resp, body = env.do(t, "GET", "/checkout/9999", student, nil)
	expectStatus(t, resp, body, fiber.StatusNotFound)

	resp, body = env.do(t, "GET", "/cancel", "", nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if !strings.Contains(string(body), "Purchase canceled") {
		t.Fatalf("unexpected cancel body: %s", body)
	}
}

func TestMessaging(t *testing.T) {
	env := newTestEnv(t, false)
	admin := env.signupAdmin(t, "instructor@school.test")
	alice := env.signupStudent(t, "alice@school.test", "alice")
	bob := env.signupStudent(t, "bob@school.test", "bob")

	resp, body := env.do(t, "GET", "/admins?email=instructor", alice, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	var admins struct {
		Admins []struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
		} `json:"admins"`
	}
	decode(t, body, &admins)
	if len(admins.Admins) != 1 {
		t.Fatalf("unexpected admin search: %s", body)
	}
	adminID := admins.Admins[0].ID

	resp, body = env.do(t, "GET", "/admins?email=INSTRUCTOR", alice, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if strings.Contains(string(body), "instructor@school.test") {
		t.Fatalf("search should be case-sensitive: %s", body)
	}

	resp, body = env.do(t, "POST", "/messages/student", alice, fiber.Map{"title": "Hi", "content": "Question about module 2", "admin_id": adminID})
	expectStatus(t, resp, body, fiber.StatusCreated)

	resp, body = env.do(t, "POST", "/messages/student", alice, fiber.Map{"title": "Hi", "content": "x", "admin_id": adminID + 50})
	expectStatus(t, resp, body, fiber.StatusNotFound)

	resp, body = env.do(t, "POST", "/messages/student", alice, fiber.Map{"content": "x", "admin_id": adminID})
	expectStatus(t, resp, body, fiber.StatusBadRequest)

	resp, body = env.do(t, "GET", "/messages/admin", admin, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	var inbox []struct {
		Title      string `json:"title"`
		SenderName string `json:"sender_name"`
		SenderRole string `json:"sender_role"`
	}
	decode(t, body, &inbox)
	if len(inbox) != 1 || inbox[0].SenderName != "alice" || inbox[0].SenderRole != "student" {
		t.Fatalf("unexpected inbox: %s", body)
	}

	resp, body = env.do(t, "GET", "/messages/student/sent", alice, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if !strings.Contains(string(body), "Question about module 2") {
		t.Fatalf("message missing from sent view: %s", body)
	}

	resp, body = env.do(t, "GET", "/messages/from-admin", bob, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("bob sees messages he should not: %s", body)
	}

	resp, body = env.do(t, "GET", "/studentsmail?email=bob", admin, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if !strings.Contains(string(body), "bob@school.test") || strings.Contains(string(body), "alice") {
		t.Fatalf("unexpected student search: %s", body)
	}

	resp, body = env.do(t, "POST", "/messages/admin", admin, fiber.Map{"title": "Reply", "content": "See notes", "email": "bob@school.test"})
	expectStatus(t, resp, body, fiber.StatusCreated)

	resp, body = env.do(t, "POST", "/messages/admin", admin, fiber.Map{"title": "Reply", "content": "See notes", "email": "ghost@school.test"})
	expectStatus(t, resp, body, fiber.StatusNotFound)

	resp, body = env.do(t, "GET", "/messages/from-admin", bob, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	var fromAdmin []struct {
		SenderID    uint   `json:"sender_id"`
		SenderEmail string `json:"sender_email"`
	}
	decode(t, body, &fromAdmin)
	if len(fromAdmin) != 1 || fromAdmin[0].SenderEmail != "instructor@school.test" || fromAdmin[0].SenderID != adminID {
		t.Fatalf("unexpected student inbox: %s", body)
	}

	resp, body = env.do(t, "GET", "/messages/admin/sent", admin, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if !strings.Contains(string(body), "bob@school.test") {
		t.Fatalf("unexpected admin sent view: %s", body)
	}

	resp, body = env.do(t, "GET", "/messages/from-admin", alice, nil)
	expectStatus(t, resp, body, fiber.StatusOK)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("alice sees bob's message: %s", body)
	}
}

func TestThumbnailUploadUnavailable(t *testing.T) {
	env := newTestEnv(t, false)
	admin := env.signupAdmin(t, "owner@school.test")
	courseID := env.createCourse(t, admin, 10)

	resp, body := env.do(t, "POST", fmt.Sprintf("/courses/admin/%d/thumbnail", courseID), admin, nil)
	expectStatus(t, resp, body, fiber.StatusServiceUnavailable)
	expectErrorCode(t, body, "UNAVAILABLE")
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t, false)
	resp, body := env.do(t, "GET", "/nope", "", nil)
	expectStatus(t, resp, body, fiber.StatusNotFound)
	expectErrorCode(t, body, "NOT_FOUND")
}
