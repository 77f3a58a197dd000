package handler

// --- Request types ---
// The validate tags are the declarative rule table for book mutations.
// ISBN uniqueness is the one rule the tag grammar cannot express; handlers
// evaluate it alongside the tag rules so all violations report together.

type createBookRequest struct {
	Title   string `json:"title"   validate:"required,min=3,max=255"`
	Author  string `json:"author"  validate:"required,min=3,max=100"`
	Summary string `json:"summary" validate:"required,min=10,max=500"`
	ISBN    string `json:"isbn"    validate:"required,len=13"`
}

type updateBookRequest struct {
	Title   string `json:"title"   validate:"required,min=3,max=255"`
	Author  string `json:"author"  validate:"required,min=3,max=100"`
	Summary string `json:"summary" validate:"required,min=10,max=500"`
	ISBN    string `json:"isbn"    validate:"required,len=13"`
}

// --- Response types ---
// Response-only types owned by the transport layer, kept separate from
// domain types so the JSON contract is not coupled to internal changes.

type bookLinks struct {
	Self   string `json:"self"`
	Update string `json:"update"`
	Delete string `json:"delete"`
	All    string `json:"all"`
}

// bookResponse renders a single book. Author is upper-cased here, in the
// representation only; the stored record keeps its original casing.
type bookResponse struct {
	Title   string    `json:"title"`
	Author  string    `json:"author"`
	Summary string    `json:"summary"`
	ISBN    string    `json:"isbn"`
	Links   bookLinks `json:"_links"`
}

type listLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// listMeta mirrors the pagination envelope of the list endpoint. From and
// To are null when the page is empty.
type listMeta struct {
	CurrentPage int   `json:"current_page"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

type listBooksResponse struct {
	Data  []bookResponse `json:"data"`
	Links listLinks      `json:"links"`
	Meta  listMeta       `json:"meta"`
}
