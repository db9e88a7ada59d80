package types

// LinkRequest carries the raw site URL typed by the user
type LinkRequest struct {
	URL string `json:"url"`
}

// IconRequest identifies an icon by its src
type IconRequest struct {
	Src string `json:"src" binding:"required"`
}

// WSMessage is pushed to state stream subscribers
type WSMessage struct {
	Type     string `json:"type"`
	Mutation string `json:"mutation,omitempty"`
	State    *State `json:"state,omitempty"`
	Message  string `json:"message,omitempty"`
}
