package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"weddingplanner-backend/models"
	"weddingplanner-backend/repository"
	"weddingplanner-backend/utils"
)

// crud serves the list/create/get/patch/delete routes of one entity kind.
// E is the model, C the create input and U the pointer-field update input.
type crud[E any, C any, U any] struct {
	h     *Handler
	label string
	repo  *repository.Repository[E]

	// parent resolves the row the entity hangs off. Nil means the wedding
	// itself.
	parent func(c *gin.Context, w *models.Wedding) (uuid.UUID, error)
	// build turns a create input into a row ready to insert.
	build func(ctx context.Context, w *models.Wedding, parentID uuid.UUID, in *C) (*E, error)
	// save replaces repo.Create when the row comes with children.
	save func(ctx context.Context, e *E, in *C) error
	// changes maps an update input to column updates. current is the row
	// as stored before the patch.
	changes func(ctx context.Context, w *models.Wedding, current *E, in *U) (map[string]any, error)
	// present shapes rows for output, e.g. attaching children.
	present func(c *gin.Context, w *models.Wedding, rows []E) ([]any, error)
}

func (r *crud[E, C, U]) scope(c *gin.Context) (*models.Wedding, uuid.UUID, bool) {
	w, ok := r.h.wedding(c)
	if !ok {
		return nil, uuid.Nil, false
	}
	if r.parent == nil {
		return w, w.ID, true
	}
	parentID, err := r.parent(c, w)
	if err != nil {
		return nil, uuid.Nil, false
	}
	return w, parentID, true
}

func (r *crud[E, C, U]) shape(c *gin.Context, w *models.Wedding, rows []E) (any, error) {
	if r.present == nil {
		return rows, nil
	}
	return r.present(c, w, rows)
}

func (r *crud[E, C, U]) List(c *gin.Context) {
	w, parentID, ok := r.scope(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	rows, err := r.repo.ListByParent(ctx, parentID, filterFrom(c, r.repo.Kind()))
	if err != nil {
		r.h.fail(c, err, r.label)
		return
	}
	out, err := r.shape(c, w, rows)
	if err != nil {
		r.h.fail(c, err, r.label)
		return
	}
	utils.RespondOK(c, out)
}

func (r *crud[E, C, U]) Create(c *gin.Context) {
	w, parentID, ok := r.scope(c)
	if !ok {
		return
	}
	var input C
	if !bindJSON(c, &input) {
		return
	}
	ctx := c.Request.Context()
	e, err := r.build(ctx, w, parentID, &input)
	if err == nil {
		if r.save != nil {
			err = r.save(ctx, e, &input)
		} else {
			err = r.repo.Create(ctx, e)
		}
	}
	if err != nil {
		r.h.fail(c, err, r.label)
		return
	}
	r.respondOne(c, w, e, http.StatusCreated)
}

func (r *crud[E, C, U]) Get(c *gin.Context) {
	w, parentID, ok := r.scope(c)
	if !ok {
		return
	}
	id, ok := parseID(c, r.idParam(), r.label)
	if !ok {
		return
	}
	e, err := r.repo.GetScoped(c.Request.Context(), parentID, id)
	if err != nil {
		r.h.fail(c, err, r.label)
		return
	}
	r.respondOne(c, w, e, http.StatusOK)
}

func (r *crud[E, C, U]) Patch(c *gin.Context) {
	w, parentID, ok := r.scope(c)
	if !ok {
		return
	}
	id, ok := parseID(c, r.idParam(), r.label)
	if !ok {
		return
	}
	var input U
	if !bindJSON(c, &input) {
		return
	}
	ctx := c.Request.Context()
	current, err := r.repo.GetScoped(ctx, parentID, id)
	if err != nil {
		r.h.fail(c, err, r.label)
		return
	}
	fields, err := r.changes(ctx, w, current, &input)
	if err != nil {
		r.h.fail(c, err, r.label)
		return
	}
	e, err := r.repo.Patch(ctx, parentID, id, fields)
	if err != nil {
		r.h.fail(c, err, r.label)
		return
	}
	r.respondOne(c, w, e, http.StatusOK)
}

func (r *crud[E, C, U]) Delete(c *gin.Context) {
	_, parentID, ok := r.scope(c)
	if !ok {
		return
	}
	id, ok := parseID(c, r.idParam(), r.label)
	if !ok {
		return
	}
	if err := r.repo.Delete(c.Request.Context(), parentID, id); err != nil {
		r.h.fail(c, err, r.label)
		return
	}
	utils.RespondMessage(c, capitalize(r.label)+" deleted successfully")
}

func (r *crud[E, C, U]) respondOne(c *gin.Context, w *models.Wedding, e *E, status int) {
	out := any(e)
	if r.present != nil {
		views, err := r.present(c, w, []E{*e})
		if err != nil {
			r.h.fail(c, err, r.label)
			return
		}
		if len(views) > 0 {
			out = views[0]
		}
	}
	c.JSON(status, utils.Envelope{Success: true, Data: out})
}

// idParam is "id" for top-level resources and "childId" for nested ones.
func (r *crud[E, C, U]) idParam() string {
	if r.parent == nil {
		return "id"
	}
	return "childId"
}

// parentIn returns a parent resolver that checks the :id path parameter
// names a live row of repo inside the wedding.
func parentIn[P any](h *Handler, repo *repository.Repository[P], label string) func(*gin.Context, *models.Wedding) (uuid.UUID, error) {
	return func(c *gin.Context, w *models.Wedding) (uuid.UUID, error) {
		id, ok := parseID(c, "id", label)
		if !ok {
			return uuid.Nil, repository.ErrNotFound
		}
		exists, err := repo.Exists(c.Request.Context(), w.ID, id)
		if err == nil && !exists {
			err = repository.ErrNotFound
		}
		if err != nil {
			h.fail(c, err, label)
			return uuid.Nil, err
		}
		return id, nil
	}
}

func views[V any](vs []V, err error) ([]any, error) {
	if err != nil {
		return nil, err
	}
	out := make([]any, len(vs))
	for i := range vs {
		out[i] = vs[i]
	}
	return out, nil
}
