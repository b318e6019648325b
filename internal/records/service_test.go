package records

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/healthscript/healthscript-backend/internal/model"
	"github.com/healthscript/healthscript-backend/internal/store"
)

var testNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newSeededService(t *testing.T) (*Service, int64) {
	t.Helper()
	repo := store.NewMemory()
	if err := store.SeedDemoData(context.Background(), repo, "hash", testNow); err != nil {
		t.Fatalf("seed demo data: %v", err)
	}
	account, err := repo.AccountByEmail(context.Background(), store.DemoEmail)
	if err != nil {
		t.Fatalf("lookup demo account: %v", err)
	}
	svc := NewService(repo)
	svc.SetClock(func() time.Time { return testNow })
	return svc, account.ID
}

func TestListPrescriptionsFiltersAndOrders(t *testing.T) {
	svc, userID := newSeededService(t)
	ctx := context.Background()

	active, err := svc.ListPrescriptions(ctx, userID, model.PrescriptionFilter{Status: "active"})
	if err != nil {
		t.Fatalf("list active prescriptions: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active prescriptions, got %d", len(active))
	}
	// Amoxicillin was created after Lisinopril.
	if active[0].Medication != "Amoxicillin 500mg" || active[1].Medication != "Lisinopril 10mg" {
		t.Fatalf("unexpected order: %s, %s", active[0].Medication, active[1].Medication)
	}

	found, err := svc.ListPrescriptions(ctx, userID, model.PrescriptionFilter{Search: "walgreens"})
	if err != nil {
		t.Fatalf("search prescriptions: %v", err)
	}
	if len(found) != 1 || found[0].Medication != "Lisinopril 10mg" {
		t.Fatalf("unexpected search result: %+v", found)
	}

	other, err := svc.ListPrescriptions(ctx, userID+1000, model.PrescriptionFilter{})
	if err != nil {
		t.Fatalf("list for unknown user: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no prescriptions for another user, got %d", len(other))
	}
}

func TestCreatePrescriptionDefaultsAndValidation(t *testing.T) {
	svc, userID := newSeededService(t)
	ctx := context.Background()

	_, err := svc.CreatePrescription(ctx, userID, model.NewPrescription{Medication: "Ibuprofen", Doctor: "Dr. Lee"})
	if !errors.Is(err, ErrRequiredFields) {
		t.Fatalf("expected required fields error, got %v", err)
	}
	all, _ := svc.ListPrescriptions(ctx, userID, model.PrescriptionFilter{})
	if len(all) != 3 {
		t.Fatalf("rejected create must not persist, have %d prescriptions", len(all))
	}

	_, err = svc.CreatePrescription(ctx, userID, model.NewPrescription{
		Medication: "Ibuprofen", Doctor: "Dr. Lee", Dosage: "As needed", Refills: model.IntPtr(120),
	})
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "refills" || !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected refills field error, got %v", err)
	}

	rx, err := svc.CreatePrescription(ctx, userID, model.NewPrescription{
		Medication: " Ibuprofen ", Doctor: "Dr. Lee", Dosage: "As needed",
	})
	if err != nil {
		t.Fatalf("create prescription: %v", err)
	}
	if rx.ID == 0 || rx.Status != model.PrescriptionActive || rx.Date != "2025-03-01" || rx.Refills != 0 {
		t.Fatalf("unexpected defaults: %+v", rx)
	}
	if rx.Medication != "Ibuprofen" {
		t.Fatalf("expected trimmed medication, got %q", rx.Medication)
	}
}

func TestUpdatePrescriptionMergesPatch(t *testing.T) {
	svc, userID := newSeededService(t)
	ctx := context.Background()

	all, _ := svc.ListPrescriptions(ctx, userID, model.PrescriptionFilter{Search: "Amoxicillin"})
	original := all[0]

	updated, err := svc.UpdatePrescription(ctx, userID, original.ID, model.PrescriptionPatch{Refills: model.IntPtr(5)})
	if err != nil {
		t.Fatalf("update prescription: %v", err)
	}
	if updated.Refills != 5 || updated.Medication != original.Medication || updated.ID != original.ID {
		t.Fatalf("unexpected merge result: %+v", updated)
	}
	if updated.UpdatedAt == nil || !updated.UpdatedAt.Equal(testNow) {
		t.Fatalf("expected updatedAt to be set, got %v", updated.UpdatedAt)
	}

	if _, err := svc.UpdatePrescription(ctx, userID, original.ID, model.PrescriptionPatch{}); !errors.Is(err, ErrNoUpdateFields) {
		t.Fatalf("expected no update fields error, got %v", err)
	}
	if _, err := svc.UpdatePrescription(ctx, userID, 9999, model.PrescriptionPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found before empty patch check, got %v", err)
	}

	status := "expired"
	updated, err = svc.UpdatePrescription(ctx, userID, original.ID, model.PrescriptionPatch{Status: &status})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != model.PrescriptionExpired {
		t.Fatalf("expected canonical status, got %q", updated.Status)
	}

	bogus := "Paused"
	if _, err := svc.UpdatePrescription(ctx, userID, original.ID, model.PrescriptionPatch{Status: &bogus}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid status error, got %v", err)
	}

	if err := svc.DeletePrescription(ctx, userID, original.ID); err != nil {
		t.Fatalf("delete prescription: %v", err)
	}
	if _, err := svc.GetPrescription(ctx, userID, original.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted prescription to be gone, got %v", err)
	}
}

func TestAppointmentsUpcomingAndCancel(t *testing.T) {
	svc, userID := newSeededService(t)
	ctx := context.Background()

	upcoming, err := svc.ListAppointments(ctx, userID, model.AppointmentFilter{Upcoming: true})
	if err != nil {
		t.Fatalf("list upcoming: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming appointments, got %d", len(upcoming))
	}
	if upcoming[0].DoctorName != "Dr. Sarah Johnson" {
		t.Fatalf("expected earliest appointment first, got %s", upcoming[0].DoctorName)
	}

	cancelled, err := svc.CancelAppointment(ctx, userID, upcoming[0].ID)
	if err != nil {
		t.Fatalf("cancel appointment: %v", err)
	}
	if cancelled.Status != model.AppointmentCancelled || cancelled.UpdatedAt == nil {
		t.Fatalf("unexpected cancelled appointment: %+v", cancelled)
	}

	upcoming, _ = svc.ListAppointments(ctx, userID, model.AppointmentFilter{Upcoming: true})
	if len(upcoming) != 1 {
		t.Fatalf("cancelled appointment should leave upcoming, got %d", len(upcoming))
	}
	all, _ := svc.ListAppointments(ctx, userID, model.AppointmentFilter{})
	if len(all) != 3 {
		t.Fatalf("cancel must keep the record, got %d appointments", len(all))
	}
}

func TestCreateAppointmentRules(t *testing.T) {
	svc, userID := newSeededService(t)
	ctx := context.Background()

	base := model.NewAppointment{DoctorName: "Dr. Lisa Chen", Specialty: "Pediatrician", Date: "2025-03-02", Time: "9:00 AM"}

	missing := base
	missing.Time = ""
	if _, err := svc.CreateAppointment(ctx, userID, missing); !errors.Is(err, ErrRequiredFields) {
		t.Fatalf("expected required fields error, got %v", err)
	}

	past := base
	past.Date = "2025-02-28"
	if _, err := svc.CreateAppointment(ctx, userID, past); !errors.Is(err, ErrAppointmentInPast) {
		t.Fatalf("expected past appointment error, got %v", err)
	}

	earlierToday := base
	earlierToday.Date = "2025-03-01"
	earlierToday.Time = "08:30"
	if _, err := svc.CreateAppointment(ctx, userID, earlierToday); !errors.Is(err, ErrAppointmentInPast) {
		t.Fatalf("expected past time today to be rejected, got %v", err)
	}

	badType := base
	badType.Type = "Carrier pigeon"
	if _, err := svc.CreateAppointment(ctx, userID, badType); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid type error, got %v", err)
	}

	appt, err := svc.CreateAppointment(ctx, userID, base)
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if appt.Status != model.AppointmentPending || appt.Duration != 30 || appt.Type != model.AppointmentInPerson {
		t.Fatalf("unexpected defaults: %+v", appt)
	}
}

func TestUpdateAppointmentRejectsPastStart(t *testing.T) {
	svc, userID := newSeededService(t)
	ctx := context.Background()

	appt, err := svc.CreateAppointment(ctx, userID, model.NewAppointment{
		DoctorName: "Dr. Lisa Chen", Specialty: "Pediatrician", Date: "2025-03-02", Time: "9:00 AM",
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}

	pastDate := "2025-02-20"
	if _, err := svc.UpdateAppointment(ctx, userID, appt.ID, model.AppointmentPatch{Date: &pastDate}); !errors.Is(err, ErrAppointmentInPast) {
		t.Fatalf("expected past date to be rejected, got %v", err)
	}
	earlierToday, today := "08:00", "2025-03-01"
	if _, err := svc.UpdateAppointment(ctx, userID, appt.ID, model.AppointmentPatch{Date: &today, Time: &earlierToday}); !errors.Is(err, ErrAppointmentInPast) {
		t.Fatalf("expected earlier time today to be rejected, got %v", err)
	}

	stored, err := svc.GetAppointment(ctx, userID, appt.ID)
	if err != nil {
		t.Fatalf("get appointment: %v", err)
	}
	if stored.Date != "2025-03-02" || stored.UpdatedAt != nil {
		t.Fatalf("rejected patch must not be stored: %+v", stored)
	}

	later := "2025-03-05"
	updated, err := svc.UpdateAppointment(ctx, userID, appt.ID, model.AppointmentPatch{Date: &later})
	if err != nil {
		t.Fatalf("move appointment: %v", err)
	}
	if updated.Date != later {
		t.Fatalf("unexpected date: %s", updated.Date)
	}

	// Status-only edits of an appointment whose start has passed still apply.
	svc.SetClock(func() time.Time { return testNow.AddDate(0, 0, 10) })
	completed := model.AppointmentCompleted
	if _, err := svc.UpdateAppointment(ctx, userID, appt.ID, model.AppointmentPatch{Status: &completed}); err != nil {
		t.Fatalf("complete past appointment: %v", err)
	}
}

func TestSetClockWhileServing(t *testing.T) {
	svc, userID := newSeededService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			svc.SetClock(func() time.Time { return testNow })
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.ListAppointments(ctx, userID, model.AppointmentFilter{Upcoming: true}); err != nil {
				t.Errorf("list appointments: %v", err)
			}
		}()
	}
	wg.Wait()
}

func TestDoctorsSortedByRating(t *testing.T) {
	svc, _ := newSeededService(t)
	doctors, err := svc.ListDoctors(context.Background(), model.DoctorFilter{})
	if err != nil {
		t.Fatalf("list doctors: %v", err)
	}
	for i := 1; i < len(doctors); i++ {
		if doctors[i].Rating > doctors[i-1].Rating {
			t.Fatalf("doctors not sorted by rating: %v before %v", doctors[i-1].Rating, doctors[i].Rating)
		}
	}
	if doctors[0].Name != "Dr. Sarah Johnson" || doctors[1].Name != "Dr. Lisa Chen" {
		t.Fatalf("expected id tie-break between equal ratings, got %s, %s", doctors[0].Name, doctors[1].Name)
	}

	derm, _ := svc.ListDoctors(context.Background(), model.DoctorFilter{Specialty: "derm"})
	if len(derm) != 1 || derm[0].Name != "Dr. Emily Davis" {
		t.Fatalf("unexpected specialty filter result: %+v", derm)
	}

	if _, err := svc.GetDoctor(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

type recordingBroadcaster struct {
	created []model.Notification
	read    []model.Notification
}

func (r *recordingBroadcaster) NotificationCreated(n model.Notification) { r.created = append(r.created, n) }
func (r *recordingBroadcaster) NotificationRead(n model.Notification)    { r.read = append(r.read, n) }

func TestNotificationsLifecycle(t *testing.T) {
	svc, userID := newSeededService(t)
	ctx := context.Background()
	events := &recordingBroadcaster{}
	svc.SetBroadcaster(events)

	list, unread, err := svc.ListNotifications(ctx, userID, model.NotificationFilter{UnreadOnly: true})
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(list) != 2 || unread != 2 {
		t.Fatalf("expected 2 unread notifications, got %d (count %d)", len(list), unread)
	}

	created, err := svc.CreateNotification(ctx, userID, model.NewNotification{Title: "Refill", Message: "Ready"})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}
	if created.Type != model.NotificationGeneral || created.Priority != model.PriorityMedium || !created.ScheduledFor.Equal(testNow) {
		t.Fatalf("unexpected notification defaults: %+v", created)
	}
	if len(events.created) != 1 {
		t.Fatalf("expected created broadcast")
	}

	list, _, _ = svc.ListNotifications(ctx, userID, model.NotificationFilter{})
	if list[0].ID != created.ID {
		t.Fatalf("expected newest notification first")
	}

	read, err := svc.MarkNotificationRead(ctx, userID, created.ID)
	if err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !read.Read || len(events.read) != 1 {
		t.Fatalf("expected read notification and broadcast")
	}

	_, unread, _ = svc.ListNotifications(ctx, userID, model.NotificationFilter{})
	if unread != 2 {
		t.Fatalf("expected unread count 2, got %d", unread)
	}

	if _, err := svc.MarkNotificationRead(ctx, userID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.CreateNotification(ctx, userID, model.NewNotification{Title: "x"}); !errors.Is(err, ErrRequiredFields) {
		t.Fatalf("expected required fields error, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, userID := newSeededService(t)
	ctx := context.Background()

	allergies := []string{"Latex", " ", "Peanuts "}
	profile, err := svc.UpdateProfile(ctx, userID, model.ProfilePatch{
		Phone:     model.StringPtr("+1 (555) 000-0000"),
		Allergies: &allergies,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if profile.Phone != "+1 (555) 000-0000" || len(profile.Allergies) != 2 || profile.Allergies[1] != "Peanuts" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if profile.FirstName != "John" || profile.Email != store.DemoEmail {
		t.Fatalf("untouched fields changed: %+v", profile)
	}
	if !profile.UpdatedAt.Equal(testNow) {
		t.Fatalf("expected updatedAt %v, got %v", testNow, profile.UpdatedAt)
	}

	if _, err := svc.UpdateProfile(ctx, userID, model.ProfilePatch{}); !errors.Is(err, ErrNoUpdateFields) {
		t.Fatalf("expected no update fields, got %v", err)
	}
	if _, err := svc.UpdateProfile(ctx, userID, model.ProfilePatch{DateOfBirth: model.StringPtr("06/15/1985")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid date of birth, got %v", err)
	}
	if _, err := svc.GetProfile(ctx, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected missing profile, got %v", err)
	}
}

func TestStats(t *testing.T) {
	svc, userID := newSeededService(t)
	stats, err := svc.Stats(context.Background(), userID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	if stats.Prescriptions.Total != 3 || stats.Prescriptions.Active != 2 || stats.Prescriptions.Expired != 1 {
		t.Fatalf("unexpected prescription stats: %+v", stats.Prescriptions)
	}
	if stats.Prescriptions.RefillsAvailable != 2 {
		t.Fatalf("expected 2 refillable prescriptions, got %d", stats.Prescriptions.RefillsAvailable)
	}
	if stats.Appointments.Upcoming != 2 || stats.Appointments.Completed != 1 {
		t.Fatalf("unexpected appointment stats: %+v", stats.Appointments)
	}
	// 3 times daily + once daily.
	if stats.Medications.DailyMedications != 2 || stats.Medications.TotalDosesThisWeek != 28 {
		t.Fatalf("unexpected medication stats: %+v", stats.Medications)
	}
	if stats.HealthMetrics.HealthScore != 90 {
		t.Fatalf("expected health score 90, got %d", stats.HealthMetrics.HealthScore)
	}
	if stats.HealthMetrics.NextAppointment != "2025-03-08" || stats.HealthMetrics.LastCheckup != "2025-01-30" {
		t.Fatalf("unexpected health metrics: %+v", stats.HealthMetrics)
	}
	if len(stats.RecentActivity) != 5 {
		t.Fatalf("expected 5 recent activities, got %d", len(stats.RecentActivity))
	}
}

func TestDosesPerDay(t *testing.T) {
	cases := []struct {
		dosage   string
		perDay   int
		asNeeded bool
	}{
		{"Once daily", 1, false},
		{"Twice daily", 2, false},
		{"3 times daily", 3, false},
		{"Every 6 hours", 4, false},
		{"Take as needed for pain", 0, true},
		{"With breakfast", 1, false},
	}
	for _, tc := range cases {
		perDay, asNeeded := dosesPerDay(tc.dosage)
		if perDay != tc.perDay || asNeeded != tc.asNeeded {
			t.Fatalf("%q: expected (%d,%v), got (%d,%v)", tc.dosage, tc.perDay, tc.asNeeded, perDay, asNeeded)
		}
	}
}
