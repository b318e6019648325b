package client

// API groups the resource façades over one Client and TokenStore.
type API struct {
	Client        *Client
	Auth          *AuthAPI
	Prescriptions *PrescriptionsAPI
	Appointments  *AppointmentsAPI
	Doctors       *DoctorsAPI
	Notifications *NotificationsAPI
	User          *UserAPI
	Health        *HealthAPI
	OCR           *OCRAPI
}

func New(cfg Config, tokens TokenStore) *API {
	c := NewClient(cfg, tokens)
	return &API{
		Client:        c,
		Auth:          &AuthAPI{client: c},
		Prescriptions: &PrescriptionsAPI{client: c},
		Appointments:  &AppointmentsAPI{client: c},
		Doctors:       &DoctorsAPI{client: c},
		Notifications: &NotificationsAPI{client: c},
		User:          &UserAPI{client: c},
		Health:        &HealthAPI{client: c},
		OCR:           &OCRAPI{client: c},
	}
}
