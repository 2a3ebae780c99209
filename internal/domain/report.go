package domain

import "time"

// MonthlyCertificateTarget is the number of deliveries within a calendar
// month that unlocks the printable acknowledgment.
const MonthlyCertificateTarget = 50

type ImpactStats struct {
	DonatedCount        int  `json:"donated_count"`
	DeliveredCount      int  `json:"delivered_count"`
	DeliveredThisMonth  int  `json:"delivered_this_month"`
	CertificateTarget   int  `json:"certificate_target"`
	ProgressPercent     int  `json:"progress_percent"`
	CertificateUnlocked bool `json:"certificate_unlocked"`
}

type Certificate struct {
	VolunteerName  string    `json:"volunteer_name"`
	Month          string    `json:"month"`
	DeliveredCount int       `json:"delivered_count"`
	IssuedAt       time.Time `json:"issued_at"`
}

type PublicStats struct {
	DonationsPosted int `json:"donations_posted"`
	MealsDelivered  int `json:"meals_delivered"`
}
