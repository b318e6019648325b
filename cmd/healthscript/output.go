package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/healthscript/healthscript-backend/internal/client"
	"github.com/healthscript/healthscript-backend/internal/model"
)

func prescriptionFilters(status, search string) client.PrescriptionFilters {
	return client.PrescriptionFilters{Status: strings.TrimSpace(status), Search: strings.TrimSpace(search)}
}

func appointmentFilters(status string, upcoming bool) client.AppointmentFilters {
	return client.AppointmentFilters{Status: strings.TrimSpace(status), Upcoming: upcoming}
}

func doctorFilters(specialty, search, location string) client.DoctorFilters {
	return client.DoctorFilters{
		Specialty: strings.TrimSpace(specialty),
		Search:    strings.TrimSpace(search),
		Location:  strings.TrimSpace(location),
	}
}

func notificationFilters(unread bool, kind string) client.NotificationFilters {
	return client.NotificationFilters{UnreadOnly: unread, Type: strings.TrimSpace(kind)}
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func ago(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func printPrescriptions(w io.Writer, prescriptions []model.Prescription, total int) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tMEDICATION\tSTATUS\tDOSAGE\tREFILLS\tDOCTOR\tADDED")
	for _, rx := range prescriptions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%s\n", rx.ID, rx.Medication, rx.Status, rx.Dosage, rx.Refills, rx.Doctor, ago(rx.CreatedAt))
	}
	tw.Flush()
	fmt.Fprintf(w, "%s total\n", humanize.Comma(int64(total)))
}

func printPrescription(w io.Writer, rx model.Prescription) {
	tw := table(w)
	fmt.Fprintf(tw, "ID\t%d\n", rx.ID)
	fmt.Fprintf(tw, "Medication\t%s\n", rx.Medication)
	fmt.Fprintf(tw, "Strength\t%s\n", orDash(rx.Strength))
	fmt.Fprintf(tw, "Status\t%s\n", rx.Status)
	fmt.Fprintf(tw, "Dosage\t%s\n", rx.Dosage)
	fmt.Fprintf(tw, "Quantity\t%s\n", orDash(rx.Quantity))
	fmt.Fprintf(tw, "Refills\t%d\n", rx.Refills)
	fmt.Fprintf(tw, "Doctor\t%s\n", rx.Doctor)
	fmt.Fprintf(tw, "Pharmacy\t%s\n", orDash(rx.Pharmacy))
	fmt.Fprintf(tw, "Issued\t%s\n", rx.Date)
	fmt.Fprintf(tw, "Instructions\t%s\n", orDash(rx.Instructions))
	if rx.UpdatedAt != nil {
		fmt.Fprintf(tw, "Updated\t%s\n", ago(*rx.UpdatedAt))
	}
	tw.Flush()
}

func printAppointments(w io.Writer, appointments []model.Appointment, total int) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tDOCTOR\tSPECIALTY\tTYPE\tSTATUS")
	for _, a := range appointments {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", a.ID, a.Date, a.Time, a.DoctorName, a.Specialty, a.Type, a.Status)
	}
	tw.Flush()
	fmt.Fprintf(w, "%s total\n", humanize.Comma(int64(total)))
}

func printAppointment(w io.Writer, a model.Appointment) {
	tw := table(w)
	fmt.Fprintf(tw, "ID\t%d\n", a.ID)
	fmt.Fprintf(tw, "Doctor\t%s (%s)\n", a.DoctorName, a.Specialty)
	fmt.Fprintf(tw, "When\t%s %s, %d min\n", a.Date, a.Time, a.Duration)
	if when, err := time.ParseInLocation(model.DateLayout, a.Date, time.Local); err == nil {
		fmt.Fprintf(tw, "\t%s\n", humanize.Time(when))
	}
	fmt.Fprintf(tw, "Type\t%s\n", a.Type)
	fmt.Fprintf(tw, "Status\t%s\n", a.Status)
	fmt.Fprintf(tw, "Location\t%s\n", orDash(a.Location))
	fmt.Fprintf(tw, "Notes\t%s\n", orDash(a.Notes))
	tw.Flush()
}

func printDoctors(w io.Writer, doctors []model.Doctor, total int) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIALTY\tRATING\tEXPERIENCE\tLOCATION")
	for _, d := range doctors {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%d yrs\t%s\n", d.ID, d.Name, d.Specialty, d.Rating, d.Experience, d.Location)
	}
	tw.Flush()
	fmt.Fprintf(w, "%s total\n", humanize.Comma(int64(total)))
}

func printDoctor(w io.Writer, d model.Doctor) {
	tw := table(w)
	fmt.Fprintf(tw, "Name\t%s\n", d.Name)
	fmt.Fprintf(tw, "Specialty\t%s\n", d.Specialty)
	fmt.Fprintf(tw, "Rating\t%.1f\n", d.Rating)
	fmt.Fprintf(tw, "Experience\t%d years\n", d.Experience)
	fmt.Fprintf(tw, "Location\t%s\n", d.Location)
	fmt.Fprintf(tw, "Contact\t%s, %s\n", d.Phone, d.Email)
	fmt.Fprintf(tw, "Education\t%s\n", orDash(d.Education))
	fmt.Fprintf(tw, "Languages\t%s\n", orDash(strings.Join(d.Languages, ", ")))
	fmt.Fprintf(tw, "Insurance\t%t\n", d.AcceptsInsurance)
	for _, slot := range d.AvailableSlots {
		fmt.Fprintf(tw, "Available %s\t%s\n", slot.Date, strings.Join(slot.Times, ", "))
	}
	tw.Flush()
	if d.Bio != "" {
		fmt.Fprintf(w, "\n%s\n", d.Bio)
	}
}

func printNotifications(w io.Writer, notifications []model.Notification, unread int) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\t\tPRIORITY\tTYPE\tTITLE\tRECEIVED")
	for _, n := range notifications {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", n.ID, marker, n.Priority, n.Type, n.Title, ago(n.CreatedAt))
	}
	tw.Flush()
	fmt.Fprintf(w, "%s unread\n", humanize.Comma(int64(unread)))
}

func printProfile(w io.Writer, p model.UserProfile) {
	tw := table(w)
	fmt.Fprintf(tw, "Name\t%s %s\n", p.FirstName, p.LastName)
	fmt.Fprintf(tw, "Email\t%s\n", orDash(p.Email))
	fmt.Fprintf(tw, "Phone\t%s\n", orDash(p.Phone))
	fmt.Fprintf(tw, "Date of birth\t%s\n", orDash(p.DateOfBirth))
	fmt.Fprintf(tw, "Address\t%s\n", orDash(p.Address))
	if c := p.EmergencyContact; c != nil {
		fmt.Fprintf(tw, "Emergency contact\t%s (%s) %s\n", c.Name, c.Relationship, c.Phone)
	}
	if ins := p.Insurance; ins != nil {
		fmt.Fprintf(tw, "Insurance\t%s, policy %s\n", ins.Provider, ins.PolicyNumber)
	}
	fmt.Fprintf(tw, "Medical history\t%s\n", orDash(strings.Join(p.MedicalHistory, ", ")))
	fmt.Fprintf(tw, "Allergies\t%s\n", orDash(strings.Join(p.Allergies, ", ")))
	fmt.Fprintf(tw, "Updated\t%s\n", ago(p.UpdatedAt))
	tw.Flush()
}

func printStats(w io.Writer, s model.HealthStats) {
	tw := table(w)
	fmt.Fprintf(tw, "Health score\t%d/100\n", s.HealthMetrics.HealthScore)
	fmt.Fprintf(tw, "Prescriptions\t%d total, %d active, %d expired, %d with refills\n",
		s.Prescriptions.Total, s.Prescriptions.Active, s.Prescriptions.Expired, s.Prescriptions.RefillsAvailable)
	fmt.Fprintf(tw, "Appointments\t%d total, %d upcoming, %d completed, %d cancelled\n",
		s.Appointments.Total, s.Appointments.Upcoming, s.Appointments.Completed, s.Appointments.Cancelled)
	fmt.Fprintf(tw, "Medications\t%d daily, %d as needed, %s doses this week\n",
		s.Medications.DailyMedications, s.Medications.AsNeededMedications, humanize.Comma(int64(s.Medications.TotalDosesThisWeek)))
	fmt.Fprintf(tw, "Last checkup\t%s\n", orDash(s.HealthMetrics.LastCheckup))
	fmt.Fprintf(tw, "Next appointment\t%s\n", orDash(s.HealthMetrics.NextAppointment))
	tw.Flush()

	if len(s.RecentActivity) == 0 {
		return
	}
	fmt.Fprintln(w, "\nRecent activity:")
	for _, activity := range s.RecentActivity {
		fmt.Fprintf(w, "  %s  %s\n", activity.Date, activity.Description)
	}
}

func printOCR(w io.Writer, resp model.OCRResponse) {
	fmt.Fprintf(w, "%s (confidence %.0f%%)\n", resp.Message, resp.Confidence*100)
	r := resp.ExtractedData
	tw := table(w)
	fmt.Fprintf(tw, "Medication\t%s %s\n", r.Medication, r.Strength)
	fmt.Fprintf(tw, "Dosage\t%s\n", r.Dosage)
	fmt.Fprintf(tw, "Quantity\t%s\n", r.Quantity)
	fmt.Fprintf(tw, "Refills\t%s\n", r.Refills)
	fmt.Fprintf(tw, "Doctor\t%s\n", r.Doctor)
	fmt.Fprintf(tw, "Pharmacy\t%s\n", r.Pharmacy)
	fmt.Fprintf(tw, "Date\t%s\n", r.Date)
	fmt.Fprintf(tw, "Instructions\t%s\n", r.Instructions)
	tw.Flush()
}
