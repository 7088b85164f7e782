package referencescmd

import (
	"context"
	"encoding/json"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-external-content/content"
	"github.com/goliatone/go-external-content/internal/commands"
	"github.com/goliatone/go-external-content/internal/logging"
	"github.com/goliatone/go-external-content/pkg/interfaces"
	"github.com/goliatone/go-external-content/references"
	"github.com/google/uuid"
)

const refreshSnapshotMessageType = "extcontent.references.snapshot.refresh"

// RefreshSnapshotCommand refetches a referenced item and refreshes the
// reference's cached display snapshot.
type RefreshSnapshotCommand struct {
	ReferenceID string `json:"reference_id"`
}

// Type implements command.Message.
func (RefreshSnapshotCommand) Type() string { return refreshSnapshotMessageType }

// Validate satisfies command.Message.
func (c RefreshSnapshotCommand) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ReferenceID, validation.Required, validation.By(validUUID)),
	)
}

func validUUID(value any) error {
	raw, _ := value.(string)
	if _, err := uuid.Parse(raw); err != nil {
		return errors.New("must be a valid reference id")
	}
	return nil
}

// RefreshSnapshotHandler reloads a reference's snapshot from the remote source.
type RefreshSnapshotHandler struct {
	inner *commands.Handler[RefreshSnapshotCommand]
}

// NewRefreshSnapshotHandler constructs a handler wired to the reference and
// content services.
func NewRefreshSnapshotHandler(refs references.Service, contents content.Service, logger interfaces.Logger, opts ...commands.HandlerOption[RefreshSnapshotCommand]) *RefreshSnapshotHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg RefreshSnapshotCommand) error {
		referenceID, err := uuid.Parse(msg.ReferenceID)
		if err != nil {
			return err
		}

		reference, err := refs.GetByID(ctx, referenceID)
		if err != nil {
			return err
		}

		item, err := contents.GetByID(ctx, reference.TemplateID, reference.ExternalID)
		if err != nil {
			return err
		}

		payload, err := json.Marshal(item.Data)
		if err != nil {
			return err
		}

		if _, err := refs.Touch(ctx, referenceID, references.Snapshot{
			Title:        item.Title,
			ThumbnailURL: item.ThumbnailURL,
			Data:         string(payload),
		}); err != nil {
			return err
		}

		logging.WithFields(baseLogger, map[string]any{
			"operation":    "snapshot.refresh",
			"reference_id": msg.ReferenceID,
		}).Info("references.command.snapshot.refreshed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[RefreshSnapshotCommand]{
		commands.WithLogger[RefreshSnapshotCommand](baseLogger),
		commands.WithOperation[RefreshSnapshotCommand]("references.snapshot.refresh"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RefreshSnapshotHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RefreshSnapshotCommand].
func (h *RefreshSnapshotHandler) Execute(ctx context.Context, msg RefreshSnapshotCommand) error {
	return h.inner.Execute(ctx, msg)
}
