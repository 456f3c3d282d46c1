package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"items-api/internal/models"
	"items-api/internal/store"
	"items-api/pkg/lambda"
)

// ItemHandler dispatches one request envelope to one storage operation. It is
// stateless across invocations apart from the shared store handle.
type ItemHandler struct {
	store  store.ItemStore
	logger *logrus.Logger

	// now is swappable so tests can control timestamps.
	now func() time.Time
}

// NewItemHandler creates an item handler over the given store.
func NewItemHandler(itemStore store.ItemStore, logger *logrus.Logger) *ItemHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &ItemHandler{
		store:  itemStore,
		logger: logger,
		now:    time.Now,
	}
}

// Dispatch routes a request envelope by method and the id path parameter.
// Every path through here returns a well-formed response; storage errors never
// escape as faults.
func (h *ItemHandler) Dispatch(ctx context.Context, req *lambda.Request) *lambda.Response {
	itemID := req.PathParams[models.FieldID]

	switch req.Method {
	case http.MethodGet:
		if itemID == "" {
			return lambda.Text(http.StatusBadRequest, "Invalid GET request")
		}
		return h.getItem(ctx, itemID)

	case http.MethodPost:
		item, err := models.ParseItem(req.Body)
		if err != nil {
			return lambda.Text(http.StatusBadRequest, "Invalid request body")
		}
		return h.createItem(ctx, item)

	case http.MethodPut:
		if itemID == "" {
			return lambda.Text(http.StatusBadRequest, "Invalid PUT request")
		}
		item, err := models.ParseItem(req.Body)
		if err != nil {
			return lambda.Text(http.StatusBadRequest, "Invalid request body")
		}
		return h.updateItem(ctx, itemID, item)

	case http.MethodDelete:
		if itemID == "" {
			return lambda.Text(http.StatusBadRequest, "Invalid DELETE request")
		}
		return h.deleteItem(ctx, itemID)

	default:
		return lambda.Text(http.StatusBadRequest, "Invalid HTTP method")
	}
}

// createItem stamps created == modified and inserts on the condition that the
// id is not taken.
func (h *ItemHandler) createItem(ctx context.Context, item models.Item) *lambda.Response {
	if err := item.Validate(); err != nil {
		return lambda.Text(http.StatusBadRequest, "Invalid request body")
	}

	item.StampCreated(h.now())

	err := h.store.PutIfAbsent(ctx, item)
	switch {
	case err == nil:
		return lambda.Text(http.StatusOK, "Item created successfully")
	case store.IsAlreadyExists(err):
		return lambda.Text(http.StatusBadRequest, "Item already exists.")
	default:
		h.logError("create", item.ID(), err)
		return lambda.Text(http.StatusInternalServerError, "Error creating item: "+err.Error())
	}
}

// getItem performs the point lookup; the found item is returned as the JSON
// body.
func (h *ItemHandler) getItem(ctx context.Context, itemID string) *lambda.Response {
	item, err := h.store.GetByKey(ctx, itemID)
	switch {
	case err == nil:
		body, merr := json.Marshal(item)
		if merr != nil {
			h.logError("get", itemID, merr)
			return lambda.Text(http.StatusInternalServerError, "Error getting item: "+merr.Error())
		}
		return lambda.JSON(http.StatusOK, body)
	case store.IsNotFound(err):
		return lambda.Text(http.StatusNotFound, "Item not found")
	default:
		h.logError("get", itemID, err)
		return lambda.Text(http.StatusInternalServerError, "Error getting item: "+err.Error())
	}
}

// updateItem stamps a fresh modified timestamp and writes it on the condition
// that the item exists. Only the modified field is persisted; other body
// fields are validated but never written.
func (h *ItemHandler) updateItem(ctx context.Context, itemID string, item models.Item) *lambda.Response {
	if bodyID := item.ID(); bodyID != "" && bodyID != itemID {
		return lambda.Text(http.StatusBadRequest, "Id in path does not match id in body")
	}

	err := h.store.UpdateIfPresent(ctx, itemID, map[string]interface{}{
		models.FieldModified: models.Timestamp(h.now()),
	})
	switch {
	case err == nil:
		return lambda.Text(http.StatusOK, "Item updated successfully")
	case store.IsNotFound(err):
		return lambda.Text(http.StatusNotFound, "Item does not exist.")
	default:
		h.logError("update", itemID, err)
		return lambda.Text(http.StatusInternalServerError, "Error updating item: "+err.Error())
	}
}

// deleteItem deletes unconditionally; deleting an absent id succeeds.
func (h *ItemHandler) deleteItem(ctx context.Context, itemID string) *lambda.Response {
	if err := h.store.DeleteByKey(ctx, itemID); err != nil {
		h.logError("delete", itemID, err)
		return lambda.Text(http.StatusInternalServerError, "Error deleting item: "+err.Error())
	}
	return lambda.Text(http.StatusOK, "Item deleted successfully")
}

func (h *ItemHandler) logError(op, itemID string, err error) {
	h.logger.WithFields(logrus.Fields{
		"operation": op,
		"item_id":   itemID,
	}).WithError(err).Error("storage operation failed")
}
