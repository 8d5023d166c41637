package model

// Request is one recomputation triggered by the UI or the CLI: up to three
// column pickers and the optional filter on the first selected column.
type Request struct {
	Levels []ColumnChoice `json:"-"`
	Filter FilterChoice   `json:"-"`
}

// NewRequest builds a request from raw picker strings.
func NewRequest(levels []string, filter string) Request {
	req := Request{Filter: ParseFilterChoice(filter)}
	for _, l := range levels {
		req.Levels = append(req.Levels, ParseColumnChoice(l))
	}
	return req
}

// Path derives the hierarchy path from the pickers.
func (r Request) Path() (HierarchyPath, error) {
	return NewHierarchyPath(r.Levels...)
}

// AggregateRequest is the JSON body accepted by the aggregate endpoint.
type AggregateRequest struct {
	Levels []string `json:"levels" example:"Theme,Sub-Theme,Channel"`
	Filter string   `json:"filter,omitempty" example:"Billing"`
}

// Request converts the body into a Request.
func (a AggregateRequest) Request() Request {
	return NewRequest(a.Levels, a.Filter)
}
