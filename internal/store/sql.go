package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/healthscript/healthscript-backend/internal/model"
)

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// SQL implements Repository on database/sql. Queries are written with ?
// placeholders and rebound for postgres.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// Open connects to the database named by driver ("sqlite" or "postgres")
// and makes sure the schema exists.
func Open(ctx context.Context, driver, dsn string) (*SQL, error) {
	var dialect Dialect
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		dialect = DialectSQLite
	case "postgres", "postgresql":
		dialect = DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		// A single connection keeps :memory: databases shared and avoids
		// SQLITE_BUSY between concurrent writers.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	if dialect == DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	if err := CreateSchema(ctx, db, dialect); err != nil {
		db.Close()
		return nil, err
	}
	return &SQL{db: db, dialect: dialect}, nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}

func (s *SQL) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// forUpdate locks the selected row on postgres. SQLite serializes writers
// through its single connection.
func (s *SQL) forUpdate() string {
	if s.dialect == DialectPostgres {
		return " FOR UPDATE"
	}
	return ""
}

func (s *SQL) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *SQL) CreateAccount(ctx context.Context, account Account, profile model.UserProfile) (Account, model.UserProfile, error) {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM accounts WHERE email = ?`), account.Email).Scan(&exists)
		switch {
		case err == nil:
			return ErrDuplicate
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("check account email: %w", err)
		}

		err = tx.QueryRowContext(ctx, s.rebind(`
			INSERT INTO accounts (email, first_name, last_name, phone, password_hash, created_at)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
			account.Email, account.FirstName, account.LastName, account.Phone,
			account.PasswordHash, formatTime(account.CreatedAt),
		).Scan(&account.ID)
		if err != nil {
			return fmt.Errorf("insert account: %w", err)
		}

		profile.ID = account.ID
		profile.Email = account.Email
		return s.writeProfile(ctx, tx, profile, true)
	})
	if err != nil {
		return Account{}, model.UserProfile{}, err
	}
	return account, cloneProfile(profile), nil
}

func (s *SQL) AccountByEmail(ctx context.Context, email string) (Account, error) {
	var account Account
	var created string
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, email, first_name, last_name, phone, password_hash, created_at
		FROM accounts WHERE email = ?`), strings.ToLower(strings.TrimSpace(email)),
	).Scan(&account.ID, &account.Email, &account.FirstName, &account.LastName, &account.Phone, &account.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("query account: %w", err)
	}
	if account.CreatedAt, err = parseTime(created); err != nil {
		return Account{}, err
	}
	return account, nil
}

const prescriptionColumns = `id, user_id, medication, doctor, pharmacy, issued_date, status, dosage,
	quantity, refills, instructions, strength, created_at, updated_at`

func scanPrescription(row scanner) (model.Prescription, error) {
	var rx model.Prescription
	var created string
	var updated sql.NullString
	err := row.Scan(&rx.ID, &rx.UserID, &rx.Medication, &rx.Doctor, &rx.Pharmacy, &rx.Date, &rx.Status,
		&rx.Dosage, &rx.Quantity, &rx.Refills, &rx.Instructions, &rx.Strength, &created, &updated)
	if err != nil {
		return model.Prescription{}, err
	}
	if rx.CreatedAt, err = parseTime(created); err != nil {
		return model.Prescription{}, err
	}
	if rx.UpdatedAt, err = parseNullTime(updated); err != nil {
		return model.Prescription{}, err
	}
	return rx, nil
}

func (s *SQL) ListPrescriptions(ctx context.Context, userID int64) ([]model.Prescription, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT `+prescriptionColumns+` FROM prescriptions WHERE user_id = ? ORDER BY id`), userID)
	if err != nil {
		return nil, fmt.Errorf("query prescriptions: %w", err)
	}
	defer rows.Close()

	out := make([]model.Prescription, 0)
	for rows.Next() {
		rx, err := scanPrescription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		out = append(out, rx)
	}
	return out, rows.Err()
}

func (s *SQL) getPrescription(ctx context.Context, q queryer, userID, id int64, lock string) (model.Prescription, error) {
	row := q.QueryRowContext(ctx, s.rebind(`SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = ? AND user_id = ?`+lock), id, userID)
	rx, err := scanPrescription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Prescription{}, ErrNotFound
	}
	if err != nil {
		return model.Prescription{}, fmt.Errorf("query prescription: %w", err)
	}
	return rx, nil
}

func (s *SQL) GetPrescription(ctx context.Context, userID, id int64) (model.Prescription, error) {
	return s.getPrescription(ctx, s.db, userID, id, "")
}

func (s *SQL) CreatePrescription(ctx context.Context, rx model.Prescription) (model.Prescription, error) {
	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO prescriptions (user_id, medication, doctor, pharmacy, issued_date, status, dosage,
			quantity, refills, instructions, strength, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		rx.UserID, rx.Medication, rx.Doctor, rx.Pharmacy, rx.Date, rx.Status, rx.Dosage,
		rx.Quantity, rx.Refills, rx.Instructions, rx.Strength, formatTime(rx.CreatedAt), formatNullTime(rx.UpdatedAt),
	).Scan(&rx.ID)
	if err != nil {
		return model.Prescription{}, fmt.Errorf("insert prescription: %w", err)
	}
	return rx, nil
}

func (s *SQL) UpdatePrescription(ctx context.Context, userID, id int64, mutate func(*model.Prescription) error) (model.Prescription, error) {
	var rx model.Prescription
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		rx, err = s.getPrescription(ctx, tx, userID, id, s.forUpdate())
		if err != nil {
			return err
		}
		if err := mutate(&rx); err != nil {
			return err
		}
		rx.ID = id
		rx.UserID = userID
		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE prescriptions SET medication = ?, doctor = ?, pharmacy = ?, issued_date = ?, status = ?,
				dosage = ?, quantity = ?, refills = ?, instructions = ?, strength = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`),
			rx.Medication, rx.Doctor, rx.Pharmacy, rx.Date, rx.Status, rx.Dosage, rx.Quantity,
			rx.Refills, rx.Instructions, rx.Strength, formatNullTime(rx.UpdatedAt), id, userID,
		)
		if err != nil {
			return fmt.Errorf("update prescription: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Prescription{}, err
	}
	return rx, nil
}

func (s *SQL) DeletePrescription(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM prescriptions WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return fmt.Errorf("delete prescription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete prescription: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const appointmentColumns = `id, user_id, doctor_name, specialty, scheduled_date, scheduled_time, duration,
	status, kind, location, notes, phone, created_at, updated_at`

func scanAppointment(row scanner) (model.Appointment, error) {
	var appt model.Appointment
	var created string
	var updated sql.NullString
	err := row.Scan(&appt.ID, &appt.UserID, &appt.DoctorName, &appt.Specialty, &appt.Date, &appt.Time,
		&appt.Duration, &appt.Status, &appt.Type, &appt.Location, &appt.Notes, &appt.Phone, &created, &updated)
	if err != nil {
		return model.Appointment{}, err
	}
	if appt.CreatedAt, err = parseTime(created); err != nil {
		return model.Appointment{}, err
	}
	if appt.UpdatedAt, err = parseNullTime(updated); err != nil {
		return model.Appointment{}, err
	}
	return appt, nil
}

func (s *SQL) ListAppointments(ctx context.Context, userID int64) ([]model.Appointment, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT `+appointmentColumns+` FROM appointments WHERE user_id = ? ORDER BY id`), userID)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	defer rows.Close()

	out := make([]model.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, appt)
	}
	return out, rows.Err()
}

func (s *SQL) getAppointment(ctx context.Context, q queryer, userID, id int64, lock string) (model.Appointment, error) {
	row := q.QueryRowContext(ctx, s.rebind(`SELECT `+appointmentColumns+` FROM appointments WHERE id = ? AND user_id = ?`+lock), id, userID)
	appt, err := scanAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Appointment{}, ErrNotFound
	}
	if err != nil {
		return model.Appointment{}, fmt.Errorf("query appointment: %w", err)
	}
	return appt, nil
}

func (s *SQL) GetAppointment(ctx context.Context, userID, id int64) (model.Appointment, error) {
	return s.getAppointment(ctx, s.db, userID, id, "")
}

func (s *SQL) CreateAppointment(ctx context.Context, appt model.Appointment) (model.Appointment, error) {
	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO appointments (user_id, doctor_name, specialty, scheduled_date, scheduled_time, duration,
			status, kind, location, notes, phone, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		appt.UserID, appt.DoctorName, appt.Specialty, appt.Date, appt.Time, appt.Duration, appt.Status,
		appt.Type, appt.Location, appt.Notes, appt.Phone, formatTime(appt.CreatedAt), formatNullTime(appt.UpdatedAt),
	).Scan(&appt.ID)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("insert appointment: %w", err)
	}
	return appt, nil
}

func (s *SQL) UpdateAppointment(ctx context.Context, userID, id int64, mutate func(*model.Appointment) error) (model.Appointment, error) {
	var appt model.Appointment
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		appt, err = s.getAppointment(ctx, tx, userID, id, s.forUpdate())
		if err != nil {
			return err
		}
		if err := mutate(&appt); err != nil {
			return err
		}
		appt.ID = id
		appt.UserID = userID
		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE appointments SET doctor_name = ?, specialty = ?, scheduled_date = ?, scheduled_time = ?,
				duration = ?, status = ?, kind = ?, location = ?, notes = ?, phone = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`),
			appt.DoctorName, appt.Specialty, appt.Date, appt.Time, appt.Duration, appt.Status, appt.Type,
			appt.Location, appt.Notes, appt.Phone, formatNullTime(appt.UpdatedAt), id, userID,
		)
		if err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Appointment{}, err
	}
	return appt, nil
}

const doctorColumns = `id, name, specialty, rating, experience, location, phone, email, bio, education,
	languages, accepts_insurance, available_slots, image`

func scanDoctor(row scanner) (model.Doctor, error) {
	var doctor model.Doctor
	var languages, slots string
	err := row.Scan(&doctor.ID, &doctor.Name, &doctor.Specialty, &doctor.Rating, &doctor.Experience,
		&doctor.Location, &doctor.Phone, &doctor.Email, &doctor.Bio, &doctor.Education, &languages,
		&doctor.AcceptsInsurance, &slots, &doctor.Image)
	if err != nil {
		return model.Doctor{}, err
	}
	if err := decodeColumn(languages, &doctor.Languages); err != nil {
		return model.Doctor{}, err
	}
	if err := decodeColumn(slots, &doctor.AvailableSlots); err != nil {
		return model.Doctor{}, err
	}
	if doctor.Languages == nil {
		doctor.Languages = []string{}
	}
	if doctor.AvailableSlots == nil {
		doctor.AvailableSlots = []model.TimeSlots{}
	}
	return doctor, nil
}

func (s *SQL) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+doctorColumns+` FROM doctors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query doctors: %w", err)
	}
	defer rows.Close()

	out := make([]model.Doctor, 0)
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor: %w", err)
		}
		out = append(out, doctor)
	}
	return out, rows.Err()
}

func (s *SQL) GetDoctor(ctx context.Context, id int64) (model.Doctor, error) {
	doctor, err := scanDoctor(s.db.QueryRowContext(ctx, s.rebind(`SELECT `+doctorColumns+` FROM doctors WHERE id = ?`), id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Doctor{}, ErrNotFound
	}
	if err != nil {
		return model.Doctor{}, fmt.Errorf("query doctor: %w", err)
	}
	return doctor, nil
}

func (s *SQL) CreateDoctor(ctx context.Context, doctor model.Doctor) (model.Doctor, error) {
	languages, err := encodeColumn(doctor.Languages)
	if err != nil {
		return model.Doctor{}, err
	}
	slots, err := encodeColumn(doctor.AvailableSlots)
	if err != nil {
		return model.Doctor{}, err
	}
	err = s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO doctors (name, specialty, rating, experience, location, phone, email, bio, education,
			languages, accepts_insurance, available_slots, image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		doctor.Name, doctor.Specialty, doctor.Rating, doctor.Experience, doctor.Location, doctor.Phone,
		doctor.Email, doctor.Bio, doctor.Education, languages, doctor.AcceptsInsurance, slots, doctor.Image,
	).Scan(&doctor.ID)
	if err != nil {
		return model.Doctor{}, fmt.Errorf("insert doctor: %w", err)
	}
	return doctor, nil
}

const notificationColumns = `id, user_id, title, message, kind, priority, is_read, created_at, scheduled_for`

func scanNotification(row scanner) (model.Notification, error) {
	var n model.Notification
	var created, scheduled string
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Priority, &n.Read, &created, &scheduled)
	if err != nil {
		return model.Notification{}, err
	}
	if n.CreatedAt, err = parseTime(created); err != nil {
		return model.Notification{}, err
	}
	if n.ScheduledFor, err = parseTime(scheduled); err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

func (s *SQL) ListNotifications(ctx context.Context, userID int64) ([]model.Notification, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT `+notificationColumns+` FROM notifications WHERE user_id = ? ORDER BY id`), userID)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	out := make([]model.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *SQL) CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error) {
	err := s.db.QueryRowContext(ctx, s.rebind(`
		INSERT INTO notifications (user_id, title, message, kind, priority, is_read, created_at, scheduled_for)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		n.UserID, n.Title, n.Message, n.Type, n.Priority, n.Read, formatTime(n.CreatedAt), formatTime(n.ScheduledFor),
	).Scan(&n.ID)
	if err != nil {
		return model.Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

func (s *SQL) UpdateNotification(ctx context.Context, userID, id int64, mutate func(*model.Notification) error) (model.Notification, error) {
	var n model.Notification
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, s.rebind(`SELECT `+notificationColumns+` FROM notifications WHERE id = ? AND user_id = ?`+s.forUpdate()), id, userID)
		var err error
		n, err = scanNotification(row)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("query notification: %w", err)
		}
		if err := mutate(&n); err != nil {
			return err
		}
		n.ID = id
		n.UserID = userID
		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE notifications SET title = ?, message = ?, kind = ?, priority = ?, is_read = ?, scheduled_for = ?
			WHERE id = ? AND user_id = ?`),
			n.Title, n.Message, n.Type, n.Priority, n.Read, formatTime(n.ScheduledFor), id, userID,
		)
		if err != nil {
			return fmt.Errorf("update notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

const profileColumns = `user_id, email, first_name, last_name, phone, date_of_birth, address,
	emergency_contact, insurance, medical_history, allergies, created_at, updated_at`

func scanProfile(row scanner) (model.UserProfile, error) {
	var p model.UserProfile
	var contact, insurance, history, allergies, created, updated string
	err := row.Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.Phone, &p.DateOfBirth, &p.Address,
		&contact, &insurance, &history, &allergies, &created, &updated)
	if err != nil {
		return model.UserProfile{}, err
	}
	for _, col := range []struct {
		raw string
		dst any
	}{
		{contact, &p.EmergencyContact},
		{insurance, &p.Insurance},
		{history, &p.MedicalHistory},
		{allergies, &p.Allergies},
	} {
		if err := decodeColumn(col.raw, col.dst); err != nil {
			return model.UserProfile{}, err
		}
	}
	if p.MedicalHistory == nil {
		p.MedicalHistory = []string{}
	}
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	if p.CreatedAt, err = parseTime(created); err != nil {
		return model.UserProfile{}, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return model.UserProfile{}, err
	}
	return p, nil
}

func (s *SQL) GetProfile(ctx context.Context, userID int64) (model.UserProfile, error) {
	return s.getProfile(ctx, s.db, userID, "")
}

func (s *SQL) getProfile(ctx context.Context, q queryer, userID int64, lock string) (model.UserProfile, error) {
	p, err := scanProfile(q.QueryRowContext(ctx, s.rebind(`SELECT `+profileColumns+` FROM profiles WHERE user_id = ?`+lock), userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.UserProfile{}, ErrNotFound
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("query profile: %w", err)
	}
	return p, nil
}

func (s *SQL) UpdateProfile(ctx context.Context, userID int64, mutate func(*model.UserProfile) error) (model.UserProfile, error) {
	var profile model.UserProfile
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := s.getProfile(ctx, tx, userID, s.forUpdate())
		if err != nil {
			return err
		}
		profile = cloneProfile(current)
		if err := mutate(&profile); err != nil {
			return err
		}
		profile.ID = userID
		profile.Email = current.Email
		return s.writeProfile(ctx, tx, profile, false)
	})
	if err != nil {
		return model.UserProfile{}, err
	}
	return profile, nil
}

func (s *SQL) writeProfile(ctx context.Context, tx *sql.Tx, p model.UserProfile, insert bool) error {
	contact, err := encodeColumn(p.EmergencyContact)
	if err != nil {
		return err
	}
	insurance, err := encodeColumn(p.Insurance)
	if err != nil {
		return err
	}
	history, err := encodeColumn(nonNil(p.MedicalHistory))
	if err != nil {
		return err
	}
	allergies, err := encodeColumn(nonNil(p.Allergies))
	if err != nil {
		return err
	}

	if insert {
		_, err = tx.ExecContext(ctx, s.rebind(`
			INSERT INTO profiles (user_id, email, first_name, last_name, phone, date_of_birth, address,
				emergency_contact, insurance, medical_history, allergies, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
			p.ID, p.Email, p.FirstName, p.LastName, p.Phone, p.DateOfBirth, p.Address,
			contact, insurance, history, allergies, formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
		)
	} else {
		_, err = tx.ExecContext(ctx, s.rebind(`
			UPDATE profiles SET first_name = ?, last_name = ?, phone = ?, date_of_birth = ?, address = ?,
				emergency_contact = ?, insurance = ?, medical_history = ?, allergies = ?, updated_at = ?
			WHERE user_id = ?`),
			p.FirstName, p.LastName, p.Phone, p.DateOfBirth, p.Address,
			contact, insurance, history, allergies, formatTime(p.UpdatedAt), p.ID,
		)
	}
	if err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func encodeColumn(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode column: %w", err)
	}
	return string(raw), nil
}

func decodeColumn(raw string, dst any) error {
	if raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode column: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	return t, nil
}

func parseNullTime(raw sql.NullString) (*time.Time, error) {
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	t, err := parseTime(raw.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
