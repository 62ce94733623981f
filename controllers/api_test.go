package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/hasangurel/clinic-backend/controllers"
	"github.com/hasangurel/clinic-backend/db"
	"github.com/hasangurel/clinic-backend/models"
	"github.com/hasangurel/clinic-backend/routes"
	"github.com/hasangurel/clinic-backend/token"
)

var (
	initOnce sync.Once
	testApp  *fiber.App
)

func setup(t *testing.T) *fiber.App {
	t.Helper()
	_ = godotenv.Load("../.env")
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set")
	}
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "integration-test-secret-0123456789abcdef")
	}

	initOnce.Do(func() {
		db.Migrate()
		token.Init()

		testApp = fiber.New()
		routes.SetupAuthRoutes(testApp)
		routes.SetupDoctorRoutes(testApp)
		routes.SetupPatientRoutes(testApp)
		routes.SetupAppointmentRoutes(testApp)
	})
	return testApp
}

func uniq() string {
	return uuid.NewString()[:8]
}

func createAdmin(t *testing.T, password string) models.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := models.Admin{Username: "admin-" + uniq(), Password: string(hash)}
	if err := db.DB.Create(&admin).Error; err != nil {
		t.Fatalf("create admin: %v", err)
	}
	t.Cleanup(func() { db.DB.Delete(&admin) })
	return admin
}

func createDoctor(t *testing.T) models.Doctor {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("docpass123"), bcrypt.DefaultCost)
	doctor := models.Doctor{
		Name:      "Dr Test " + uniq(),
		Specialty: "Cardiology",
		Email:     fmt.Sprintf("doc-%s@clinic.test", uniq()),
		Username:  "doc-" + uniq(),
		Password:  string(hash),
	}
	if err := db.DB.Create(&doctor).Error; err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	t.Cleanup(func() { db.DB.Delete(&doctor) })
	return doctor
}

func createPatient(t *testing.T) models.Patient {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("patpass123"), bcrypt.DefaultCost)
	patient := models.Patient{
		Name:     "Patient Test " + uniq(),
		Email:    fmt.Sprintf("pat-%s@clinic.test", uniq()),
		Username: "pat-" + uniq(),
		Password: string(hash),
	}
	if err := db.DB.Create(&patient).Error; err != nil {
		t.Fatalf("create patient: %v", err)
	}
	t.Cleanup(func() { db.DB.Delete(&patient) })
	return patient
}

func doJSON(t *testing.T, app *fiber.App, method, path, bearer string, body interface{}) *http.Response {
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
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func login(t *testing.T, app *fiber.App, username, password, role string) controllers.LoginResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", controllers.LoginRequest{
		Username: username, Password: password, Role: role,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s/%s: status %d", username, role, resp.StatusCode)
	}
	var out controllers.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return out
}

func TestLogin(t *testing.T) {
	app := setup(t)
	admin := createAdmin(t, "secret123")

	out := login(t, app, admin.Username, "secret123", "ADMIN")
	if out.Token == "" {
		t.Fatal("empty token")
	}
	if out.Role != "ADMIN" || out.UserID != admin.ID || out.Username != admin.Username {
		t.Fatalf("unexpected login envelope: %+v", out)
	}

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", "", controllers.LoginRequest{
		Username: admin.Username, Password: "wrongpass", Role: "ADMIN",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password: status %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", "", controllers.LoginRequest{
		Username: admin.Username, Password: "secret123", Role: "NURSE",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown role: status %d, want 400", resp.StatusCode)
	}
}

func TestProtectedWithoutToken(t *testing.T) {
	app := setup(t)

	resp := doJSON(t, app, http.MethodGet, "/api/appointments/", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no auth header: status %d, want 401", resp.StatusCode)
	}
}

func TestWrongRoleIsForbidden(t *testing.T) {
	app := setup(t)
	doctor := createDoctor(t)
	target := createDoctor(t)

	out := login(t, app, doctor.Username, "docpass123", "DOCTOR")

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/doctors/%d", target.ID), out.Token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("doctor token on admin-only delete: status %d, want 403", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setup(t)
	email := fmt.Sprintf("dup-%s@clinic.test", uniq())

	first := models.Patient{
		Name: "First", Email: email, Username: "dup-" + uniq(), Password: "patpass123",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/patients/register", "", first)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d, want 201", resp.StatusCode)
	}
	t.Cleanup(func() { db.DB.Where("email = ?", email).Delete(&models.Patient{}) })

	second := models.Patient{
		Name: "Second", Email: email, Username: "dup-" + uniq(), Password: "patpass123",
	}
	resp = doJSON(t, app, http.MethodPost, "/api/patients/register", "", second)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate email: status %d, want 409", resp.StatusCode)
	}
}

func TestAppointmentNotFound(t *testing.T) {
	app := setup(t)
	patient := createPatient(t)
	out := login(t, app, patient.Username, "patpass123", "PATIENT")

	resp := doJSON(t, app, http.MethodGet, "/api/appointments/999999999", out.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing appointment: status %d, want 404", resp.StatusCode)
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	app := setup(t)
	doctor := createDoctor(t)
	patient := createPatient(t)
	out := login(t, app, patient.Username, "patpass123", "PATIENT")

	resp := doJSON(t, app, http.MethodPost, "/api/appointments/", out.Token, controllers.AppointmentRequest{
		DoctorID:            doctor.ID,
		PatientID:           patient.ID,
		AppointmentDateTime: time.Now().Add(48 * time.Hour).Truncate(time.Second),
		Reason:              "checkup",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("book: status %d, want 201", resp.StatusCode)
	}
	var created models.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode appointment: %v", err)
	}
	t.Cleanup(func() { db.DB.Delete(&models.Appointment{}, created.ID) })
	if created.Status != models.StatusScheduled {
		t.Fatalf("status = %q, want SCHEDULED", created.Status)
	}
	if created.DurationMinutes != 30 {
		t.Fatalf("duration = %d, want default 30", created.DurationMinutes)
	}

	// repeated reads of an unchanged entity are byte-identical
	path := fmt.Sprintf("/api/appointments/%d", created.ID)
	firstRead := doJSON(t, app, http.MethodGet, path, out.Token, nil)
	secondRead := doJSON(t, app, http.MethodGet, path, out.Token, nil)
	firstBody, _ := io.ReadAll(firstRead.Body)
	secondBody, _ := io.ReadAll(secondRead.Body)
	if !bytes.Equal(firstBody, secondBody) {
		t.Fatal("repeated reads returned different bodies")
	}

	resp = doJSON(t, app, http.MethodPut, path, out.Token, controllers.AppointmentRequest{
		Status: models.StatusCancelled,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: status %d, want 200", resp.StatusCode)
	}
	var updated models.Appointment
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated appointment: %v", err)
	}
	if updated.Status != models.StatusCancelled {
		t.Fatalf("status = %q, want CANCELLED", updated.Status)
	}
	if updated.DoctorID != doctor.ID {
		t.Fatal("partial update overwrote the doctor reference")
	}

	resp = doJSON(t, app, http.MethodDelete, path, out.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: status %d, want 200", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, path, out.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("read after delete: status %d, want 404", resp.StatusCode)
	}
}

func TestBookingUnknownDoctor(t *testing.T) {
	app := setup(t)
	patient := createPatient(t)
	out := login(t, app, patient.Username, "patpass123", "PATIENT")

	resp := doJSON(t, app, http.MethodPost, "/api/appointments/", out.Token, controllers.AppointmentRequest{
		DoctorID:            999999999,
		PatientID:           patient.ID,
		AppointmentDateTime: time.Now().Add(24 * time.Hour),
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown doctor: status %d, want 404", resp.StatusCode)
	}
}
