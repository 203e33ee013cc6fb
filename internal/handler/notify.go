package handler

// Notification is the user-facing outcome message attached to workflow
// responses.  Severity is "success" or "destructive"; the presentation
// layer decides how to render it, typically as a toast.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

func success(title, description string) Notification {
	return Notification{Title: title, Description: description, Severity: "success"}
}

func destructive(title, description string) Notification {
	return Notification{Title: title, Description: description, Severity: "destructive"}
}
