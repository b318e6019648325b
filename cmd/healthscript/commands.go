package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/healthscript/healthscript-backend/internal/model"
)

func (e *env) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.errOut)
	return fs
}

func parseID(args []string, what string) (int64, []string, error) {
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("%w: %s id is required", errUsage, what)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, nil, fmt.Errorf("%w: invalid %s id %q", errUsage, what, args[0])
	}
	return id, args[1:], nil
}

// subcommand splits "list"-style verbs off the argument list. A bare flag
// list means the default verb.
func subcommand(args []string, fallback string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return fallback, args
	}
	return args[0], args[1:]
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// optional returns nil for flags the user did not set so patches carry only
// supplied fields.
func optional(fs *flag.FlagSet, name, value string) *string {
	if !isSet(fs, name) {
		return nil
	}
	return &value
}

func optionalInt(fs *flag.FlagSet, name string, value int) *model.FlexInt {
	if !isSet(fs, name) {
		return nil
	}
	return model.IntPtr(value)
}

func (e *env) login(ctx context.Context, args []string) error {
	fs := e.flags("login")
	email := fs.String("email", os.Getenv("HEALTHSCRIPT_EMAIL"), "account email")
	password := fs.String("password", os.Getenv("HEALTHSCRIPT_PASSWORD"), "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := e.api.Auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "Signed in as %s <%s>\n", resp.User.Name, resp.User.Email)
	return nil
}

func (e *env) register(ctx context.Context, args []string) error {
	fs := e.flags("register")
	var req model.RegisterRequest
	fs.StringVar(&req.FirstName, "first-name", "", "first name (required)")
	fs.StringVar(&req.LastName, "last-name", "", "last name (required)")
	fs.StringVar(&req.Email, "email", "", "email (required)")
	fs.StringVar(&req.Password, "password", "", "password, at least 6 characters (required)")
	fs.StringVar(&req.Phone, "phone", "", "phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := e.api.Auth.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%s. Signed in as %s <%s>\n", resp.Message, resp.User.Name, resp.User.Email)
	return nil
}

func (e *env) forgotPassword(ctx context.Context, args []string) error {
	fs := e.flags("forgot-password")
	email := fs.String("email", "", "account email (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := e.api.Auth.ForgotPassword(ctx, *email)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, resp.Message)
	return nil
}

func (e *env) logout() error {
	if err := e.api.Auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "Signed out")
	return nil
}

func (e *env) prescriptions(ctx context.Context, args []string) error {
	verb, rest := subcommand(args, "list")
	switch verb {
	case "list":
		fs := e.flags("prescriptions list")
		status := fs.String("status", "", "Active, Expired or Cancelled")
		search := fs.String("search", "", "match medication, doctor or pharmacy")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		resp, err := e.api.Prescriptions.GetAll(ctx, prescriptionFilters(*status, *search))
		if err != nil {
			return err
		}
		printPrescriptions(e.out, resp.Prescriptions, resp.Total)
		return nil

	case "get":
		id, _, err := parseID(rest, "prescription")
		if err != nil {
			return err
		}
		resp, err := e.api.Prescriptions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		printPrescription(e.out, resp.Prescription)
		return nil

	case "add":
		fs := e.flags("prescriptions add")
		var in model.NewPrescription
		var refills int
		fs.StringVar(&in.Medication, "medication", "", "medication name (required)")
		fs.StringVar(&in.Doctor, "doctor", "", "prescribing doctor (required)")
		fs.StringVar(&in.Dosage, "dosage", "", "dosage instructions (required)")
		fs.StringVar(&in.Pharmacy, "pharmacy", "", "pharmacy")
		fs.StringVar(&in.Date, "date", "", "issue date YYYY-MM-DD (default today)")
		fs.StringVar(&in.Quantity, "quantity", "", "quantity")
		fs.StringVar(&in.Strength, "strength", "", "strength")
		fs.StringVar(&in.Instructions, "instructions", "", "instructions")
		fs.IntVar(&refills, "refills", 0, "refills remaining")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		in.Refills = optionalInt(fs, "refills", refills)
		resp, err := e.api.Prescriptions.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, resp.Message)
		printPrescription(e.out, resp.Prescription)
		return nil

	case "update":
		id, flags, err := parseID(rest, "prescription")
		if err != nil {
			return err
		}
		fs := e.flags("prescriptions update")
		medication := fs.String("medication", "", "medication name")
		doctor := fs.String("doctor", "", "prescribing doctor")
		pharmacy := fs.String("pharmacy", "", "pharmacy")
		status := fs.String("status", "", "Active, Expired or Cancelled")
		dosage := fs.String("dosage", "", "dosage instructions")
		instructions := fs.String("instructions", "", "instructions")
		refills := fs.Int("refills", 0, "refills remaining")
		if err := fs.Parse(flags); err != nil {
			return err
		}
		resp, err := e.api.Prescriptions.Update(ctx, id, model.PrescriptionPatch{
			Medication:   optional(fs, "medication", *medication),
			Doctor:       optional(fs, "doctor", *doctor),
			Pharmacy:     optional(fs, "pharmacy", *pharmacy),
			Status:       optional(fs, "status", *status),
			Dosage:       optional(fs, "dosage", *dosage),
			Instructions: optional(fs, "instructions", *instructions),
			Refills:      optionalInt(fs, "refills", *refills),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, resp.Message)
		printPrescription(e.out, resp.Prescription)
		return nil

	case "delete":
		id, _, err := parseID(rest, "prescription")
		if err != nil {
			return err
		}
		resp, err := e.api.Prescriptions.Delete(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, resp.Message)
		return nil
	}
	return fmt.Errorf("%w: unknown prescriptions command %q", errUsage, verb)
}

func (e *env) appointments(ctx context.Context, args []string) error {
	verb, rest := subcommand(args, "list")
	switch verb {
	case "list":
		fs := e.flags("appointments list")
		status := fs.String("status", "", "Pending, Confirmed, Completed or Cancelled")
		upcoming := fs.Bool("upcoming", false, "only future, active appointments")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		resp, err := e.api.Appointments.GetAll(ctx, appointmentFilters(*status, *upcoming))
		if err != nil {
			return err
		}
		printAppointments(e.out, resp.Appointments, resp.Total)
		return nil

	case "get":
		id, _, err := parseID(rest, "appointment")
		if err != nil {
			return err
		}
		resp, err := e.api.Appointments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		printAppointment(e.out, resp.Appointment)
		return nil

	case "book":
		fs := e.flags("appointments book")
		var in model.NewAppointment
		var duration int
		fs.StringVar(&in.DoctorName, "doctor", "", "doctor name (required)")
		fs.StringVar(&in.Specialty, "specialty", "", "specialty (required)")
		fs.StringVar(&in.Date, "date", "", "date YYYY-MM-DD (required)")
		fs.StringVar(&in.Time, "time", "", "time, e.g. 10:00 AM (required)")
		fs.StringVar(&in.Type, "type", "", "In-Person or Telemedicine")
		fs.StringVar(&in.Location, "location", "", "location")
		fs.StringVar(&in.Notes, "notes", "", "notes for the doctor")
		fs.StringVar(&in.Phone, "phone", "", "contact phone")
		fs.IntVar(&duration, "duration", 0, "duration in minutes (default 30)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		in.Duration = optionalInt(fs, "duration", duration)
		resp, err := e.api.Appointments.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, resp.Message)
		printAppointment(e.out, resp.Appointment)
		return nil

	case "update":
		id, flags, err := parseID(rest, "appointment")
		if err != nil {
			return err
		}
		fs := e.flags("appointments update")
		date := fs.String("date", "", "date YYYY-MM-DD")
		clock := fs.String("time", "", "time, e.g. 2:30 PM")
		status := fs.String("status", "", "Pending, Confirmed, Completed or Cancelled")
		kind := fs.String("type", "", "In-Person or Telemedicine")
		notes := fs.String("notes", "", "notes")
		if err := fs.Parse(flags); err != nil {
			return err
		}
		resp, err := e.api.Appointments.Update(ctx, id, model.AppointmentPatch{
			Date:   optional(fs, "date", *date),
			Time:   optional(fs, "time", *clock),
			Status: optional(fs, "status", *status),
			Type:   optional(fs, "type", *kind),
			Notes:  optional(fs, "notes", *notes),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, resp.Message)
		printAppointment(e.out, resp.Appointment)
		return nil

	case "cancel":
		id, _, err := parseID(rest, "appointment")
		if err != nil {
			return err
		}
		resp, err := e.api.Appointments.Cancel(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, resp.Message)
		return nil
	}
	return fmt.Errorf("%w: unknown appointments command %q", errUsage, verb)
}

func (e *env) doctors(ctx context.Context, args []string) error {
	verb, rest := subcommand(args, "list")
	switch verb {
	case "list":
		fs := e.flags("doctors list")
		specialty := fs.String("specialty", "", "specialty contains")
		search := fs.String("search", "", "match name, specialty or location")
		location := fs.String("location", "", "location contains")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		resp, err := e.api.Doctors.GetAll(ctx, doctorFilters(*specialty, *search, *location))
		if err != nil {
			return err
		}
		printDoctors(e.out, resp.Doctors, resp.Total)
		return nil

	case "get":
		id, _, err := parseID(rest, "doctor")
		if err != nil {
			return err
		}
		resp, err := e.api.Doctors.GetByID(ctx, id)
		if err != nil {
			return err
		}
		printDoctor(e.out, resp.Doctor)
		return nil
	}
	return fmt.Errorf("%w: unknown doctors command %q", errUsage, verb)
}

func (e *env) notifications(ctx context.Context, args []string) error {
	verb, rest := subcommand(args, "list")
	switch verb {
	case "list":
		fs := e.flags("notifications list")
		unread := fs.Bool("unread", false, "only unread notifications")
		kind := fs.String("type", "", "medication, appointment, refill or general")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		resp, err := e.api.Notifications.GetAll(ctx, notificationFilters(*unread, *kind))
		if err != nil {
			return err
		}
		printNotifications(e.out, resp.Notifications, resp.UnreadCount)
		return nil

	case "read":
		id, _, err := parseID(rest, "notification")
		if err != nil {
			return err
		}
		resp, err := e.api.Notifications.MarkAsRead(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, resp.Message)
		return nil

	case "add":
		fs := e.flags("notifications add")
		var in model.NewNotification
		fs.StringVar(&in.Title, "title", "", "title (required)")
		fs.StringVar(&in.Message, "message", "", "message (required)")
		fs.StringVar(&in.Type, "type", "", "medication, appointment, refill or general")
		fs.StringVar(&in.Priority, "priority", "", "low, medium or high")
		fs.StringVar(&in.ScheduledFor, "at", "", "RFC 3339 time to deliver")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		resp, err := e.api.Notifications.Create(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.out, "%s (#%d)\n", resp.Message, resp.Notification.ID)
		return nil
	}
	return fmt.Errorf("%w: unknown notifications command %q", errUsage, verb)
}

func (e *env) profile(ctx context.Context, args []string) error {
	verb, rest := subcommand(args, "show")
	switch verb {
	case "show":
		resp, err := e.api.User.GetProfile(ctx)
		if err != nil {
			return err
		}
		printProfile(e.out, resp.Profile)
		return nil

	case "update":
		fs := e.flags("profile update")
		firstName := fs.String("first-name", "", "first name")
		lastName := fs.String("last-name", "", "last name")
		phone := fs.String("phone", "", "phone")
		birth := fs.String("date-of-birth", "", "date of birth YYYY-MM-DD")
		address := fs.String("address", "", "address")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		resp, err := e.api.User.UpdateProfile(ctx, model.ProfilePatch{
			FirstName:   optional(fs, "first-name", *firstName),
			LastName:    optional(fs, "last-name", *lastName),
			Phone:       optional(fs, "phone", *phone),
			DateOfBirth: optional(fs, "date-of-birth", *birth),
			Address:     optional(fs, "address", *address),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(e.out, resp.Message)
		printProfile(e.out, resp.Profile)
		return nil
	}
	return fmt.Errorf("%w: unknown profile command %q", errUsage, verb)
}

func (e *env) stats(ctx context.Context) error {
	resp, err := e.api.Health.GetStats(ctx)
	if err != nil {
		return err
	}
	printStats(e.out, resp.Stats)
	return nil
}

func (e *env) ocr(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: ocr takes exactly one image path", errUsage)
	}
	file, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil {
		fmt.Fprintf(e.out, "Uploading %s (%s)\n", info.Name(), humanize.Bytes(uint64(info.Size())))
	}
	resp, err := e.api.OCR.ProcessImage(ctx, args[0], file)
	if err != nil {
		return err
	}
	printOCR(e.out, resp)
	return nil
}
