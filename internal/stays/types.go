package stays

import (
	"strconv"
	"strings"
)

// Partner identifies the channel a reservation came through (Airbnb,
// Booking.com, ...). Reservations booked directly carry no partner.
type Partner struct {
	Name string `json:"name"`
}

// Amount is a price field as upstream serializes it: a JSON number or a
// numeric string depending on the endpoint. Malformed or missing values
// read as absent, never as zero.
type Amount struct {
	value float64
	valid bool
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	a.value, a.valid = v, true
	return nil
}

// Value returns the amount and whether one was present.
func (a Amount) Value() (float64, bool) { return a.value, a.valid }

type HostingDetails struct {
	Total Amount `json:"_f_total"`
}

type Price struct {
	HostingDetails *HostingDetails `json:"hostingDetails"`
}

// Reservation is one booking as returned by the reservations endpoint. The
// same shape is used for cancellations (type=canceled) and for blocks.
type Reservation struct {
	ID           string   `json:"_id"`
	Type         string   `json:"type"`
	CheckInDate  string   `json:"checkInDate"`
	CheckOutDate string   `json:"checkOutDate"`
	Partner      *Partner `json:"partner"`
	Price        *Price   `json:"price"`
}

// SourceName returns the partner name, or "" for direct bookings.
func (r Reservation) SourceName() string {
	if r.Partner == nil {
		return ""
	}
	return r.Partner.Name
}

// Total returns the hosting total for the booking. The second return is
// false when any link of the nested price path is absent or non-numeric.
func (r Reservation) Total() (float64, bool) {
	if r.Price == nil || r.Price.HostingDetails == nil {
		return 0, false
	}
	return r.Price.HostingDetails.Total.Value()
}

type DayPrice struct {
	// _mcval maps currency code to amount, e.g. {"BRL": 250}.
	Currencies map[string]float64 `json:"_mcval"`
}

// CalendarDay is one day of the listing calendar. Avail is 0 or 1.
type CalendarDay struct {
	Date   string     `json:"date"`
	Avail  int        `json:"avail"`
	Prices []DayPrice `json:"prices"`
}

// Rate returns the nightly rate in the given currency, false when the day
// carries no price for it.
func (d CalendarDay) Rate(currency string) (float64, bool) {
	if len(d.Prices) == 0 {
		return 0, false
	}
	v, ok := d.Prices[0].Currencies[currency]
	return v, ok
}

// ListingDetails is the mapped subset of the listing content document that
// the dashboard card shows.
type ListingDetails struct {
	Title     string `json:"title"`
	ImageURL  string `json:"imageUrl"`
	State     string `json:"state"`
	MaxGuests int    `json:"maxGuests"`
	Rooms     int    `json:"rooms"`
}

// listingContent mirrors the raw upstream document.
type listingContent struct {
	Title struct {
		PtBR string `json:"pt_BR"`
	} `json:"_mstitle"`
	MainImageMeta struct {
		URL string `json:"url"`
	} `json:"_t_mainImageMeta"`
	Address struct {
		State string `json:"state"`
	} `json:"address"`
	MaxGuests int `json:"_i_maxGuests"`
	Rooms     int `json:"_i_rooms"`
}

type QuietHoursDetails struct {
	From int `json:"_i_from"`
	To   int `json:"_i_to"`
}

// HouseRules is the upstream house-rules document, read and patched as-is.
type HouseRules struct {
	SmokingAllowed    bool               `json:"smokingAllowed"`
	EventsAllowed     bool               `json:"eventsAllowed"`
	QuietHours        bool               `json:"quietHours"`
	QuietHoursDetails *QuietHoursDetails `json:"quietHoursDetails,omitempty"`
	PetsAllowed       bool               `json:"petsAllowed"`
	PetsPriceType     string             `json:"petsPriceType,omitempty"`
	RulesText         map[string]string  `json:"_mshouserules,omitempty"`
}

// Block is a calendar block request. Upstream models blocks as reservations
// of type "blocked"; the client sets the type.
type Block struct {
	ListingID    string
	CheckInDate  string
	CheckOutDate string
	InternalNote string
}

// BlockConfirmation is the reservation document upstream returns for a
// created block.
type BlockConfirmation struct {
	ID           string `json:"_id"`
	Type         string `json:"type"`
	ListingID    string `json:"listingId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}
