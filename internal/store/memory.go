package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/healthscript/healthscript-backend/internal/model"
)

// Memory keeps every collection in maps guarded by one lock. Mutations work
// on a copy and are only stored when the callback succeeds.
type Memory struct {
	mu sync.RWMutex

	nextID map[string]int64

	accounts      map[int64]Account
	prescriptions map[int64]model.Prescription
	appointments  map[int64]model.Appointment
	doctors       map[int64]model.Doctor
	notifications map[int64]model.Notification
	profiles      map[int64]model.UserProfile
}

func NewMemory() *Memory {
	return &Memory{
		nextID:        make(map[string]int64),
		accounts:      make(map[int64]Account),
		prescriptions: make(map[int64]model.Prescription),
		appointments:  make(map[int64]model.Appointment),
		doctors:       make(map[int64]model.Doctor),
		notifications: make(map[int64]model.Notification),
		profiles:      make(map[int64]model.UserProfile),
	}
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) allocateLocked(kind string) int64 {
	m.nextID[kind]++
	return m.nextID[kind]
}

func (m *Memory) CreateAccount(_ context.Context, account Account, profile model.UserProfile) (Account, model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email := strings.ToLower(strings.TrimSpace(account.Email))
	for _, existing := range m.accounts {
		if strings.EqualFold(existing.Email, email) {
			return Account{}, model.UserProfile{}, ErrDuplicate
		}
	}

	account.ID = m.allocateLocked("account")
	account.Email = email
	m.accounts[account.ID] = account

	profile.ID = account.ID
	profile.Email = email
	m.profiles[profile.ID] = cloneProfile(profile)
	return account, cloneProfile(profile), nil
}

func (m *Memory) AccountByEmail(_ context.Context, email string) (Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, account := range m.accounts {
		if strings.EqualFold(account.Email, strings.TrimSpace(email)) {
			return account, nil
		}
	}
	return Account{}, ErrNotFound
}

func (m *Memory) ListPrescriptions(_ context.Context, userID int64) ([]model.Prescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Prescription, 0)
	for _, rx := range m.prescriptions {
		if rx.UserID == userID {
			out = append(out, rx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetPrescription(_ context.Context, userID, id int64) (model.Prescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rx, ok := m.prescriptions[id]
	if !ok || rx.UserID != userID {
		return model.Prescription{}, ErrNotFound
	}
	return rx, nil
}

func (m *Memory) CreatePrescription(_ context.Context, rx model.Prescription) (model.Prescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rx.ID = m.allocateLocked("prescription")
	m.prescriptions[rx.ID] = rx
	return rx, nil
}

func (m *Memory) UpdatePrescription(_ context.Context, userID, id int64, mutate func(*model.Prescription) error) (model.Prescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rx, ok := m.prescriptions[id]
	if !ok || rx.UserID != userID {
		return model.Prescription{}, ErrNotFound
	}
	if err := mutate(&rx); err != nil {
		return model.Prescription{}, err
	}
	rx.ID = id
	rx.UserID = userID
	m.prescriptions[id] = rx
	return rx, nil
}

func (m *Memory) DeletePrescription(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rx, ok := m.prescriptions[id]
	if !ok || rx.UserID != userID {
		return ErrNotFound
	}
	delete(m.prescriptions, id)
	return nil
}

func (m *Memory) ListAppointments(_ context.Context, userID int64) ([]model.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Appointment, 0)
	for _, appt := range m.appointments {
		if appt.UserID == userID {
			out = append(out, appt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetAppointment(_ context.Context, userID, id int64) (model.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	appt, ok := m.appointments[id]
	if !ok || appt.UserID != userID {
		return model.Appointment{}, ErrNotFound
	}
	return appt, nil
}

func (m *Memory) CreateAppointment(_ context.Context, appt model.Appointment) (model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appt.ID = m.allocateLocked("appointment")
	m.appointments[appt.ID] = appt
	return appt, nil
}

func (m *Memory) UpdateAppointment(_ context.Context, userID, id int64, mutate func(*model.Appointment) error) (model.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appt, ok := m.appointments[id]
	if !ok || appt.UserID != userID {
		return model.Appointment{}, ErrNotFound
	}
	if err := mutate(&appt); err != nil {
		return model.Appointment{}, err
	}
	appt.ID = id
	appt.UserID = userID
	m.appointments[id] = appt
	return appt, nil
}

func (m *Memory) ListDoctors(_ context.Context) ([]model.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Doctor, 0, len(m.doctors))
	for _, doctor := range m.doctors {
		out = append(out, cloneDoctor(doctor))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetDoctor(_ context.Context, id int64) (model.Doctor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doctor, ok := m.doctors[id]
	if !ok {
		return model.Doctor{}, ErrNotFound
	}
	return cloneDoctor(doctor), nil
}

func (m *Memory) CreateDoctor(_ context.Context, doctor model.Doctor) (model.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doctor.ID = m.allocateLocked("doctor")
	m.doctors[doctor.ID] = cloneDoctor(doctor)
	return doctor, nil
}

func (m *Memory) ListNotifications(_ context.Context, userID int64) ([]model.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Notification, 0)
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) CreateNotification(_ context.Context, n model.Notification) (model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.allocateLocked("notification")
	m.notifications[n.ID] = n
	return n, nil
}

func (m *Memory) UpdateNotification(_ context.Context, userID, id int64, mutate func(*model.Notification) error) (model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return model.Notification{}, ErrNotFound
	}
	if err := mutate(&n); err != nil {
		return model.Notification{}, err
	}
	n.ID = id
	n.UserID = userID
	m.notifications[id] = n
	return n, nil
}

func (m *Memory) GetProfile(_ context.Context, userID int64) (model.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	profile, ok := m.profiles[userID]
	if !ok {
		return model.UserProfile{}, ErrNotFound
	}
	return cloneProfile(profile), nil
}

func (m *Memory) UpdateProfile(_ context.Context, userID int64, mutate func(*model.UserProfile) error) (model.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.profiles[userID]
	if !ok {
		return model.UserProfile{}, ErrNotFound
	}
	profile := cloneProfile(current)
	if err := mutate(&profile); err != nil {
		return model.UserProfile{}, err
	}
	profile.ID = userID
	profile.Email = current.Email
	m.profiles[userID] = cloneProfile(profile)
	return profile, nil
}

func cloneDoctor(doctor model.Doctor) model.Doctor {
	out := doctor
	out.Languages = append([]string{}, doctor.Languages...)
	out.AvailableSlots = make([]model.TimeSlots, 0, len(doctor.AvailableSlots))
	for _, slot := range doctor.AvailableSlots {
		out.AvailableSlots = append(out.AvailableSlots, model.TimeSlots{
			Date:  slot.Date,
			Times: append([]string{}, slot.Times...),
		})
	}
	return out
}

func cloneProfile(profile model.UserProfile) model.UserProfile {
	out := profile
	if profile.EmergencyContact != nil {
		contact := *profile.EmergencyContact
		out.EmergencyContact = &contact
	}
	if profile.Insurance != nil {
		insurance := *profile.Insurance
		out.Insurance = &insurance
	}
	out.MedicalHistory = append([]string{}, profile.MedicalHistory...)
	out.Allergies = append([]string{}, profile.Allergies...)
	return out
}
