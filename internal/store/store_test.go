package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/healthscript/healthscript-backend/internal/model"
)

func openRepositories(t *testing.T) map[string]Repository {
	t.Helper()
	sqlite, err := Open(context.Background(), "sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite repository: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Repository{
		"memory": NewMemory(),
		"sqlite": sqlite,
	}
}

func TestRepositoryContract(t *testing.T) {
	for name, repo := range openRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
			if err := SeedDemoData(ctx, repo, "hash", now); err != nil {
				t.Fatalf("seed demo data: %v", err)
			}
			// Seeding twice must not duplicate anything.
			if err := SeedDemoData(ctx, repo, "hash", now); err != nil {
				t.Fatalf("reseed demo data: %v", err)
			}

			account, err := repo.AccountByEmail(ctx, "JOHN.DOE@email.com")
			if err != nil {
				t.Fatalf("lookup demo account: %v", err)
			}
			if account.PasswordHash != "hash" {
				t.Fatalf("expected stored password hash, got %q", account.PasswordHash)
			}

			prescriptions, err := repo.ListPrescriptions(ctx, account.ID)
			if err != nil {
				t.Fatalf("list prescriptions: %v", err)
			}
			if len(prescriptions) != 3 {
				t.Fatalf("expected 3 seeded prescriptions, got %d", len(prescriptions))
			}

			doctors, err := repo.ListDoctors(ctx)
			if err != nil {
				t.Fatalf("list doctors: %v", err)
			}
			if len(doctors) != 5 {
				t.Fatalf("expected 5 seeded doctors, got %d", len(doctors))
			}
			if len(doctors[0].Languages) != 2 || len(doctors[0].AvailableSlots) != 3 {
				t.Fatalf("doctor slices did not round trip: %+v", doctors[0])
			}

			profile, err := repo.GetProfile(ctx, account.ID)
			if err != nil {
				t.Fatalf("get profile: %v", err)
			}
			if profile.EmergencyContact == nil || profile.EmergencyContact.Name != "Jane Doe" {
				t.Fatalf("unexpected emergency contact: %+v", profile.EmergencyContact)
			}
			if len(profile.Allergies) != 2 {
				t.Fatalf("expected 2 allergies, got %v", profile.Allergies)
			}
		})
	}
}

func TestUpdateRollsBackWhenMutateFails(t *testing.T) {
	for name, repo := range openRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := repo.CreatePrescription(ctx, model.Prescription{
				UserID:     7,
				Medication: "Ibuprofen",
				Doctor:     "Dr. Lee",
				Date:       "2025-01-01",
				Status:     model.PrescriptionActive,
				Dosage:     "As needed",
				Refills:    1,
				CreatedAt:  time.Now(),
			})
			if err != nil {
				t.Fatalf("create prescription: %v", err)
			}

			boom := errors.New("boom")
			_, err = repo.UpdatePrescription(ctx, 7, created.ID, func(rx *model.Prescription) error {
				rx.Refills = 50
				return boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("expected mutate error, got %v", err)
			}

			current, err := repo.GetPrescription(ctx, 7, created.ID)
			if err != nil {
				t.Fatalf("get prescription: %v", err)
			}
			if current.Refills != 1 {
				t.Fatalf("expected refills to stay 1, got %d", current.Refills)
			}

			updated, err := repo.UpdatePrescription(ctx, 7, created.ID, func(rx *model.Prescription) error {
				rx.Refills = 5
				rx.ID = 999
				return nil
			})
			if err != nil {
				t.Fatalf("update prescription: %v", err)
			}
			if updated.ID != created.ID || updated.Refills != 5 {
				t.Fatalf("unexpected updated prescription: %+v", updated)
			}
		})
	}
}

func TestRecordsAreScopedToOwner(t *testing.T) {
	for name, repo := range openRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			appt, err := repo.CreateAppointment(ctx, model.Appointment{
				UserID:     1,
				DoctorName: "Dr. Lee",
				Specialty:  "Cardiologist",
				Date:       "2030-01-01",
				Time:       "9:00 AM",
				Duration:   30,
				Status:     model.AppointmentPending,
				Type:       model.AppointmentInPerson,
				CreatedAt:  time.Now(),
			})
			if err != nil {
				t.Fatalf("create appointment: %v", err)
			}

			if _, err := repo.GetAppointment(ctx, 2, appt.ID); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected not found for other owner, got %v", err)
			}
			if err := repo.DeletePrescription(ctx, 1, 12345); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected not found deleting missing prescription, got %v", err)
			}

			n, err := repo.CreateNotification(ctx, model.Notification{
				UserID:       1,
				Title:        "Hello",
				Message:      "World",
				Type:         model.NotificationGeneral,
				Priority:     model.PriorityMedium,
				CreatedAt:    time.Now(),
				ScheduledFor: time.Now(),
			})
			if err != nil {
				t.Fatalf("create notification: %v", err)
			}
			if _, err := repo.UpdateNotification(ctx, 2, n.ID, func(*model.Notification) error { return nil }); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected not found marking other user's notification, got %v", err)
			}
			read, err := repo.UpdateNotification(ctx, 1, n.ID, func(n *model.Notification) error {
				n.Read = true
				return nil
			})
			if err != nil {
				t.Fatalf("mark notification read: %v", err)
			}
			if !read.Read {
				t.Fatalf("expected notification to be read")
			}
		})
	}
}

func TestCreateAccountRejectsDuplicateEmail(t *testing.T) {
	for name, repo := range openRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			account := Account{Email: "a@example.com", FirstName: "A", LastName: "B", PasswordHash: "x", CreatedAt: time.Now()}
			profile := model.UserProfile{FirstName: "A", LastName: "B", CreatedAt: time.Now(), UpdatedAt: time.Now()}
			if _, _, err := repo.CreateAccount(ctx, account, profile); err != nil {
				t.Fatalf("create account: %v", err)
			}
			account.Email = "A@Example.com"
			if _, _, err := repo.CreateAccount(ctx, account, profile); !errors.Is(err, ErrDuplicate) {
				t.Fatalf("expected duplicate error, got %v", err)
			}
		})
	}
}

func TestRebindNumbersPlaceholdersForPostgres(t *testing.T) {
	s := &SQL{dialect: DialectPostgres}
	got := s.rebind("SELECT 1 WHERE a = ? AND b = ?")
	if got != "SELECT 1 WHERE a = $1 AND b = $2" {
		t.Fatalf("unexpected rebind output: %s", got)
	}
	s.dialect = DialectSQLite
	if got := s.rebind("a = ?"); got != "a = ?" {
		t.Fatalf("sqlite queries should be left alone, got %s", got)
	}
}
