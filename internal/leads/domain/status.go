// Package domain holds the lead lifecycle rules of the leads bounded context.
package domain

// Status is the persisted lead status.
type Status string

const (
	StatusNew         Status = "new"
	StatusContacted   Status = "contacted"
	StatusFollowUp    Status = "follow_up"
	StatusNegotiation Status = "negotiation"
	StatusClosing     Status = "closing"
	StatusWon         Status = "won"
	StatusLost        Status = "lost"
)

// FunnelStages is the fixed pipeline order. Lost is a side branch and not part of it.
var FunnelStages = []Status{
	StatusNew,
	StatusContacted,
	StatusFollowUp,
	StatusNegotiation,
	StatusClosing,
	StatusWon,
}

// AllStatuses lists every status in display order.
var AllStatuses = append(append([]Status{}, FunnelStages...), StatusLost)

// InProgressStatuses are the open stages after first contact.
var InProgressStatuses = []Status{StatusContacted, StatusFollowUp, StatusNegotiation, StatusClosing}

var statusLabels = map[Status]string{
	StatusNew:         "Baru",
	StatusContacted:   "Dihubungi",
	StatusFollowUp:    "Follow Up",
	StatusNegotiation: "Negosiasi",
	StatusClosing:     "Closing",
	StatusWon:         "Berhasil",
	StatusLost:        "Gagal",
}

// Index returns the position of s in FunnelStages, or -1 (lost, unknown).
func Index(s Status) int {
	for i, stage := range FunnelStages {
		if stage == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusLost || Index(s) >= 0
}

// Terminal reports whether s ends the pipeline.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// InProgress reports whether s is one of InProgressStatuses.
func (s Status) InProgress() bool {
	switch s {
	case StatusContacted, StatusFollowUp, StatusNegotiation, StatusClosing:
		return true
	}
	return false
}

// Label is the Indonesian display label.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseStatus validates raw input.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.Valid()
}
