package model

import "strings"

// NormalizeEvent trims string fields, drops empty tags, and defaults the
// status of records that arrive without one. Validation beyond structure is
// not this layer's job; scoring is total over partial records.
func NormalizeEvent(e Event) Event {
	e.ID = strings.TrimSpace(e.ID)
	e.Title = strings.TrimSpace(e.Title)
	e.Category = strings.TrimSpace(e.Category)
	e.Location = strings.TrimSpace(e.Location)
	e.OwnerID = strings.TrimSpace(e.OwnerID)

	var tags []string
	for _, t := range e.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	e.Tags = tags

	if !e.Status.Valid() {
		e.Status = StatusUpcoming
	}
	if e.MaxParticipants < 0 {
		e.MaxParticipants = 0
	}
	return e
}

// NormalizeParticipant trims identifiers and defaults the registration state.
func NormalizeParticipant(p Participant) Participant {
	p.ID = strings.TrimSpace(p.ID)
	p.EventID = strings.TrimSpace(p.EventID)
	p.UserID = strings.TrimSpace(p.UserID)
	if !p.Status.Valid() {
		p.Status = ParticipantRegistered
	}
	return p
}

// NormalizePreferences trims and drops empty entries.
func NormalizePreferences(prefs Preferences) Preferences {
	prefs.UserID = strings.TrimSpace(prefs.UserID)
	prefs.Categories = cleanList(prefs.Categories)
	prefs.Tags = cleanList(prefs.Tags)
	return prefs
}

func cleanList(list []string) []string {
	var out []string
	for _, v := range list {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
