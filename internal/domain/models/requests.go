package models

// ViewRequest is the query of a view load. Index wins when both are given.
type ViewRequest struct {
	Index    string `query:"index" json:"index"`
	Category string `query:"category" json:"category"`
	Mode     string `query:"mode" json:"mode" validate:"omitempty,oneof=trailing rolling"`
	Timeline string `query:"timeline" json:"timeline" validate:"omitempty,numeric"`
}

type SortRequest struct {
	Column string `query:"column" json:"column" validate:"required"`
}

type YearRequest struct {
	Year string `query:"year" json:"year" default:"all" validate:"required"`
}

// ViewCommand is a message on the websocket control channel.
type ViewCommand struct {
	Type     string `json:"type" validate:"required,oneof=load sort year"`
	Index    string `json:"index,omitempty"`
	Category string `json:"category,omitempty"`
	Mode     string `json:"mode,omitempty" validate:"omitempty,oneof=trailing rolling"`
	Timeline string `json:"timeline,omitempty" validate:"omitempty,numeric"`
	Column   string `json:"column,omitempty"`
	Year     string `json:"year,omitempty"`
}

// ViewRequest extracts the load parameters of a "load" command.
func (c ViewCommand) ViewRequest() ViewRequest {
	return ViewRequest{Index: c.Index, Category: c.Category, Mode: c.Mode, Timeline: c.Timeline}
}
