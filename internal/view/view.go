// Package view defines the renderer consumed by the routing layer. The core
// supplies page data; producing HTML is an external concern.
package view

import (
	"context"
	"errors"
	"io"

	apperrors "github.com/louisbranch/userdesk/internal/platform/errors"
	"github.com/louisbranch/userdesk/internal/query"
	"github.com/louisbranch/userdesk/internal/user"
)

// ListView carries one result page plus the sort and filter state that
// produced it, so a renderer can echo the current selection back into links
// and form fields.
type ListView struct {
	Page            query.Page
	Sort            query.SortKey
	FilterFirstName string
	FilterLastName  string
}

// FormView carries a record being created or edited together with
// field-level validation messages keyed by field name.
type FormView struct {
	User   user.User
	Errors map[string]string
}

// NewListView pairs a result page with the parameters that produced it.
func NewListView(page query.Page, params query.Params) ListView {
	return ListView{
		Page:            page,
		Sort:            params.Sort,
		FilterFirstName: params.FirstName,
		FilterLastName:  params.LastName,
	}
}

// NewFormView builds a form for u, translating a validation failure into
// field-level messages. A nil err yields an empty Errors map.
func NewFormView(u user.User, err error) FormView {
	view := FormView{User: u, Errors: map[string]string{}}
	if err == nil {
		return view
	}
	var coded *apperrors.Error
	if errors.As(err, &coded) {
		if field, ok := coded.Metadata["field"]; ok {
			view.Errors[field] = coded.Message
			return view
		}
	}
	view.Errors["form"] = err.Error()
	return view
}

// Renderer produces the list, detail, and form surfaces.
type Renderer interface {
	RenderList(ctx context.Context, w io.Writer, view ListView) error
	RenderDetail(ctx context.Context, w io.Writer, u user.User) error
	RenderForm(ctx context.Context, w io.Writer, view FormView) error
}
