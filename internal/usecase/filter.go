package usecase

import (
	"context"
	"log/slog"
	"strings"

	"shopbot/internal/domain/catalog"
	"shopbot/internal/domain/filter"
	"shopbot/internal/pkg/errs"
)

type FilterCommands interface {
	// Set upserts the filter value. Setting the value "all" is equivalent to
	// removal: the record is deleted, never stored as a sentinel.
	Set(ctx context.Context, conversationID, name, value string) error

	// Remove deletes the filter record; removing an absent filter is a
	// logged no-op.
	Remove(ctx context.Context, conversationID, name string) error

	// Active lists the conversation's current filters.
	Active(ctx context.Context, conversationID string) ([]filter.Filter, error)

	// Selected returns the active filters as the name -> value map consumed
	// by catalog filtering.
	Selected(ctx context.Context, conversationID string) (map[string]string, error)
}

type filterCommandsImpl struct {
	filters FilterRepository
	logger  *slog.Logger
}

func NewFilterCommands(filters FilterRepository, logger *slog.Logger) FilterCommands {
	return &filterCommandsImpl{filters: filters, logger: logger}
}

func (f *filterCommandsImpl) Set(ctx context.Context, conversationID, name, value string) error {
	if !filter.IsKnownName(name) {
		f.logger.Warn("attempted to set unknown filter",
			"conversation_id", conversationID, "filter_name", name)
		return errs.ErrUnknownFilter
	}
	if strings.EqualFold(value, catalog.FilterValueAll) {
		return f.Remove(ctx, conversationID, name)
	}
	return f.filters.Set(ctx, conversationID, name, value)
}

func (f *filterCommandsImpl) Remove(ctx context.Context, conversationID, name string) error {
	if !filter.IsKnownName(name) {
		f.logger.Warn("attempted to remove unknown filter",
			"conversation_id", conversationID, "filter_name", name)
		return errs.ErrUnknownFilter
	}
	removed, err := f.filters.Remove(ctx, conversationID, name)
	if err != nil {
		return err
	}
	if !removed {
		f.logger.Warn("attempted removal of absent filter",
			"conversation_id", conversationID, "filter_name", name)
	}
	return nil
}

func (f *filterCommandsImpl) Active(ctx context.Context, conversationID string) ([]filter.Filter, error) {
	return f.filters.List(ctx, conversationID)
}

func (f *filterCommandsImpl) Selected(ctx context.Context, conversationID string) (map[string]string, error) {
	active, err := f.filters.List(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	selected := make(map[string]string, len(active))
	for _, fl := range active {
		selected[fl.Name] = fl.Value
	}
	return selected, nil
}
