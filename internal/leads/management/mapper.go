package management

import (
	"umroh_travel_backend/internal/leads/repository"
	"umroh_travel_backend/internal/leads/transport"
	"umroh_travel_backend/platform/phone"
)

// ToLeadResponse converts a repository Lead to a transport LeadResponse.
func ToLeadResponse(lead repository.Lead) transport.LeadResponse {
	resp := transport.LeadResponse{
		ID:                 lead.ID,
		FullName:           lead.FullName,
		Phone:              lead.Phone,
		Email:              lead.Email,
		Source:             lead.Source,
		PackageID:          lead.PackageID,
		PackageName:        lead.PackageName,
		AssignedTo:         lead.AssignedTo,
		Status:             string(lead.Status),
		StatusLabel:        lead.Status.Label(),
		FollowUpDate:       transport.FormatDate(lead.FollowUpDate),
		ConvertedAt:        lead.ConvertedAt,
		ConvertedBookingID: lead.ConvertedBookingID,
		CreatedAt:          lead.CreatedAt,
		UpdatedAt:          lead.UpdatedAt,
	}
	if lead.Phone != nil {
		resp.WhatsAppLink = phone.WhatsAppLink(*lead.Phone)
	}
	return resp
}

func ToNoteResponse(note repository.LeadNote) transport.NoteResponse {
	return transport.NoteResponse{
		ID:           note.ID,
		AuthorID:     note.AuthorID,
		Body:         note.Body,
		FollowUpDate: transport.FormatDate(note.FollowUpDate),
		CreatedAt:    note.CreatedAt,
	}
}

func ToStatusEventResponse(ev repository.StatusEvent) transport.StatusEventResponse {
	return transport.StatusEventResponse{
		FromStatus: string(ev.FromStatus),
		ToStatus:   string(ev.ToStatus),
		ActorID:    ev.ActorID,
		Reason:     ev.Reason,
		OccurredAt: ev.OccurredAt,
	}
}
