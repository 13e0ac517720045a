// Package entryform serves the promo entry form over net/http.
//
// The page route renders the form on GET and accepts submissions on POST,
// answering 422 with inline errors when validation fails and 200 with the
// confirmation otherwise. A mask route applies the per-field input masks for
// each keystroke, and an assets route serves the embedded stylesheet and
// script. Requests that accept application/json receive JSON bodies instead
// of HTML.
package entryform
